// Package production computes upgrade costs, per-upgrade production rates and
// aggregate sips per drink. Everything here is a pure function of its inputs;
// callers write the results into the state store.
package production

import (
	"math"
	"time"

	"github.com/spikan/soda-clicker/internal/bignum"
	"github.com/spikan/soda-clicker/internal/config"
)

// Counts holds how many of each upgrade the player owns.
type Counts struct {
	Straws         int
	Cups           int
	Suctions       int
	CriticalClicks int
	FasterDrinks   int
	WiderStraws    int
	BetterCups     int
}

// Get returns the owned count for an upgrade ID.
func (c Counts) Get(id string) int {
	switch id {
	case config.UpgradeStraw:
		return c.Straws
	case config.UpgradeCup:
		return c.Cups
	case config.UpgradeSuction:
		return c.Suctions
	case config.UpgradeCriticalClick:
		return c.CriticalClicks
	case config.UpgradeFasterDrink:
		return c.FasterDrinks
	case config.UpgradeWiderStraw:
		return c.WiderStraws
	case config.UpgradeBetterCup:
		return c.BetterCups
	}
	return 0
}

// With returns a copy of c with the count for id replaced. Negative counts clamp to zero.
func (c Counts) With(id string, n int) Counts {
	if n < 0 {
		n = 0
	}
	switch id {
	case config.UpgradeStraw:
		c.Straws = n
	case config.UpgradeCup:
		c.Cups = n
	case config.UpgradeSuction:
		c.Suctions = n
	case config.UpgradeCriticalClick:
		c.CriticalClicks = n
	case config.UpgradeFasterDrink:
		c.FasterDrinks = n
	case config.UpgradeWiderStraw:
		c.WiderStraws = n
	case config.UpgradeBetterCup:
		c.BetterCups = n
	}
	return c
}

// Rates are the base per-unit values before multipliers.
type Rates struct {
	BaseSPD      bignum.Num
	StrawSPD     bignum.Num
	CupSPD       bignum.Num
	BaseClick    bignum.Num
	SuctionBonus bignum.Num

	BaseCriticalChance     float64
	CriticalChancePerLevel float64
	MaxCriticalChance      float64
	CriticalMultiplier     float64

	BaseDrinkRate        time.Duration
	MinDrinkRate         time.Duration
	FasterDrinkReduction float64
}

// Multipliers scale base rates by upgrade level and player level.
type Multipliers struct {
	WiderStraw float64 // Added to each straw's output per wider straw owned
	BetterCup  float64 // Added to each cup's output per better cup owned
	LevelBonus float64 // Added to upgrade output per player level above 1
	Level      int
}

// Result is the derived production for a set of holdings.
type Result struct {
	StrawSPD   bignum.Num // Per straw
	CupSPD     bignum.Num // Per cup
	StrawTotal bignum.Num
	CupTotal   bignum.Num
	SPD        bignum.Num // Sips awarded per drink

	ClickValue         bignum.Num
	CriticalChance     float64
	CriticalMultiplier float64

	DrinkRate time.Duration
}

// Recalc computes per-upgrade and aggregate production.
// With zero counts the SPD is exactly the base SPD, never zero.
func Recalc(counts Counts, rates Rates, mult Multipliers) Result {
	levelFactor := factor(mult.LevelBonus, mult.Level-1)

	strawPer := rates.StrawSPD.Mul(factor(mult.WiderStraw, counts.WiderStraws))
	cupPer := rates.CupSPD.Mul(factor(mult.BetterCup, counts.BetterCups))

	strawTotal := strawPer.MulInt(int64(counts.Straws)).Mul(levelFactor)
	cupTotal := cupPer.MulInt(int64(counts.Cups)).Mul(levelFactor)

	chance := rates.BaseCriticalChance + rates.CriticalChancePerLevel*float64(counts.CriticalClicks)
	if rates.MaxCriticalChance > 0 {
		chance = math.Min(chance, rates.MaxCriticalChance)
	}

	return Result{
		StrawSPD:           strawPer,
		CupSPD:             cupPer,
		StrawTotal:         strawTotal,
		CupTotal:           cupTotal,
		SPD:                rates.BaseSPD.Add(strawTotal).Add(cupTotal),
		ClickValue:         rates.BaseClick.Add(rates.SuctionBonus.MulInt(int64(counts.Suctions))),
		CriticalChance:     chance,
		CriticalMultiplier: rates.CriticalMultiplier,
		DrinkRate:          DrinkRate(rates, counts.FasterDrinks),
	}
}

// DrinkRate returns the drink interval after faster-drink upgrades, never
// below the configured minimum.
func DrinkRate(rates Rates, fasterDrinks int) time.Duration {
	scale := math.Pow(1-rates.FasterDrinkReduction, float64(fasterDrinks))
	rate := time.Duration(float64(rates.BaseDrinkRate) * scale).Round(time.Millisecond)
	if rate < rates.MinDrinkRate {
		return rates.MinDrinkRate
	}
	return rate
}

// RatesFromBalance builds base rates from the balance config.
func RatesFromBalance(b config.Balance) Rates {
	return Rates{
		BaseSPD:                num(b.Production.BaseSPD),
		StrawSPD:               num(b.Production.StrawSPD),
		CupSPD:                 num(b.Production.CupSPD),
		BaseClick:              num(b.Click.BaseValue),
		SuctionBonus:           num(b.Click.SuctionBonus),
		BaseCriticalChance:     b.Click.BaseCriticalChance,
		CriticalChancePerLevel: b.Click.CriticalChancePerLevel,
		MaxCriticalChance:      b.Click.MaxCriticalChance,
		CriticalMultiplier:     b.Click.CriticalMultiplier,
		BaseDrinkRate:          time.Duration(b.Drink.BaseRateMs) * time.Millisecond,
		MinDrinkRate:           time.Duration(b.Drink.MinRateMs) * time.Millisecond,
		FasterDrinkReduction:   b.Drink.FasterDrinkReduction,
	}
}

// MultipliersFromBalance builds multipliers for the given player level.
func MultipliersFromBalance(b config.Balance, level int) Multipliers {
	return Multipliers{
		WiderStraw: b.Production.WiderStrawMultiplier,
		BetterCup:  b.Production.BetterCupMultiplier,
		LevelBonus: b.Production.LevelBonus,
		Level:      level,
	}
}

// factor returns 1 + m*n in exact decimal arithmetic. Negative n counts as zero.
func factor(m float64, n int) bignum.Num {
	if n <= 0 {
		return bignum.One()
	}
	return bignum.One().Add(num(m).MulInt(int64(n)))
}

// num converts a validated config float; invalid values become zero.
func num(f float64) bignum.Num {
	n, err := bignum.FromFloat(f)
	if err != nil {
		return bignum.Zero()
	}
	return n
}
