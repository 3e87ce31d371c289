// Package config provides YAML-based balance configuration loading and the
// player options record.
package config

import (
	"errors"
	"fmt"
)

// Upgrade identifiers used as keys in the balance file and in saves.
const (
	UpgradeStraw         = "straw"
	UpgradeCup           = "cup"
	UpgradeSuction       = "suction"
	UpgradeCriticalClick = "critical_click"
	UpgradeFasterDrink   = "faster_drink"
	UpgradeWiderStraw    = "wider_straw"
	UpgradeBetterCup     = "better_cup"
)

// UpgradeOrder is the display and purchase-key order of upgrades.
var UpgradeOrder = []string{
	UpgradeStraw,
	UpgradeCup,
	UpgradeSuction,
	UpgradeCriticalClick,
	UpgradeFasterDrink,
	UpgradeWiderStraw,
	UpgradeBetterCup,
}

// Balance contains every tunable number of the game economy.
type Balance struct {
	Production ProductionBalance      `yaml:"production"`
	Click      ClickBalance           `yaml:"click"`
	Drink      DrinkBalance           `yaml:"drink"`
	Upgrades   map[string]UpgradeCost `yaml:"upgrades"`
	Level      LevelBalance           `yaml:"level"`
	Streak     StreakBalance          `yaml:"streak"`
	Save       SaveBalance            `yaml:"save"`
}

// ProductionBalance defines per-drink production rates.
type ProductionBalance struct {
	BaseSPD              float64 `yaml:"base_spd"`               // Sips per drink with no upgrades
	StrawSPD             float64 `yaml:"straw_spd"`              // Sips per drink per straw
	CupSPD               float64 `yaml:"cup_spd"`                // Sips per drink per cup
	WiderStrawMultiplier float64 `yaml:"wider_straw_multiplier"` // Added to straw output per wider straw
	BetterCupMultiplier  float64 `yaml:"better_cup_multiplier"`  // Added to cup output per better cup
	LevelBonus           float64 `yaml:"level_bonus"`            // Added to upgrade output per level above 1
}

// ClickBalance defines click value and critical clicks.
type ClickBalance struct {
	BaseValue              float64 `yaml:"base_value"`
	SuctionBonus           float64 `yaml:"suction_bonus"`
	BaseCriticalChance     float64 `yaml:"base_critical_chance"`
	CriticalChancePerLevel float64 `yaml:"critical_chance_per_level"`
	MaxCriticalChance      float64 `yaml:"max_critical_chance"`
	CriticalMultiplier     float64 `yaml:"critical_multiplier"`
}

// DrinkBalance defines the drink cycle interval.
type DrinkBalance struct {
	BaseRateMs           int     `yaml:"base_rate_ms"`
	MinRateMs            int     `yaml:"min_rate_ms"`
	FasterDrinkReduction float64 `yaml:"faster_drink_reduction"` // Fraction removed per faster drink
}

// UpgradeCost defines the exponential cost curve of one upgrade.
type UpgradeCost struct {
	BaseCost float64 `yaml:"base_cost"`
	Growth   float64 `yaml:"growth"`
}

// LevelBalance defines the level threshold curve on total sips earned.
type LevelBalance struct {
	BaseThreshold float64 `yaml:"base_threshold"`
	Growth        float64 `yaml:"growth"`
}

// StreakBalance defines the click streak window.
type StreakBalance struct {
	WindowMs int `yaml:"window_ms"`
	RingSize int `yaml:"ring_size"`
}

// SaveBalance defines persistence cadence.
type SaveBalance struct {
	DebounceMs int `yaml:"debounce_ms"`
}

// Validate checks that the balance describes a playable economy.
func (b Balance) Validate() error {
	var errs []error
	if b.Production.BaseSPD <= 0 {
		errs = append(errs, errors.New("production.base_spd must be positive"))
	}
	if b.Drink.BaseRateMs <= 0 || b.Drink.MinRateMs <= 0 {
		errs = append(errs, errors.New("drink rates must be positive"))
	}
	if b.Drink.FasterDrinkReduction < 0 || b.Drink.FasterDrinkReduction >= 1 {
		errs = append(errs, errors.New("drink.faster_drink_reduction must be in [0, 1)"))
	}
	if b.Level.BaseThreshold <= 0 || b.Level.Growth < 1 {
		errs = append(errs, errors.New("level curve must have a positive threshold and growth >= 1"))
	}
	for _, id := range UpgradeOrder {
		u, ok := b.Upgrades[id]
		if !ok {
			errs = append(errs, fmt.Errorf("upgrades.%s is missing", id))
			continue
		}
		if u.BaseCost <= 0 || u.Growth < 1 {
			errs = append(errs, fmt.Errorf("upgrades.%s needs base_cost > 0 and growth >= 1", id))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid balance: %w", errors.Join(errs...))
	}
	return nil
}
