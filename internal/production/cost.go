package production

import (
	"github.com/spikan/soda-clicker/internal/bignum"
	"github.com/spikan/soda-clicker/internal/config"
)

// maxLevelSteps bounds how many levels a single LevelFor call may advance.
const maxLevelSteps = 10000

// ComputeCost returns floor(baseCost * growthRate^owned).
// The power is computed exactly, so costs stay precise at any scale.
func ComputeCost(baseCost bignum.Num, growthRate float64, owned int) bignum.Num {
	if owned <= 0 {
		return baseCost.Floor()
	}
	g, err := bignum.PowFloat(growthRate, owned)
	if err != nil {
		return baseCost.Floor()
	}
	return baseCost.Mul(g).Floor()
}

// Upgrade describes a purchasable upgrade.
type Upgrade struct {
	ID          string
	Name        string
	Description string
	BaseCost    bignum.Num
	Growth      float64
}

// Cost returns the price of the next unit when owned units are already held.
func (u Upgrade) Cost(owned int) bignum.Num {
	return ComputeCost(u.BaseCost, u.Growth, owned)
}

var upgradeText = map[string][2]string{
	config.UpgradeStraw:         {"Straw", "sips every drink"},
	config.UpgradeCup:           {"Cup", "more sips every drink"},
	config.UpgradeSuction:       {"Suction", "adds to every click"},
	config.UpgradeCriticalClick: {"Critical Click", "raises critical click chance"},
	config.UpgradeFasterDrink:   {"Faster Drink", "shortens the drink cycle"},
	config.UpgradeWiderStraw:    {"Wider Straw", "boosts every straw"},
	config.UpgradeBetterCup:     {"Better Cup", "boosts every cup"},
}

// Catalog returns the upgrades defined by the balance, in display order.
func Catalog(b config.Balance) []Upgrade {
	out := make([]Upgrade, 0, len(config.UpgradeOrder))
	for _, id := range config.UpgradeOrder {
		c, ok := b.Upgrades[id]
		if !ok {
			continue
		}
		text := upgradeText[id]
		out = append(out, Upgrade{
			ID:          id,
			Name:        text[0],
			Description: text[1],
			BaseCost:    num(c.BaseCost),
			Growth:      c.Growth,
		})
	}
	return out
}

// Find returns the upgrade with the given ID.
func Find(catalog []Upgrade, id string) (Upgrade, bool) {
	for _, u := range catalog {
		if u.ID == id {
			return u, true
		}
	}
	return Upgrade{}, false
}

// LevelThreshold returns the total sips earned needed to leave level.
func LevelThreshold(b config.LevelBalance, level int) bignum.Num {
	if level < 1 {
		level = 1
	}
	return ComputeCost(num(b.BaseThreshold), b.Growth, level-1)
}

// LevelFor advances level past every threshold that totalEarned meets.
// The result is never lower than level.
func LevelFor(b config.LevelBalance, totalEarned bignum.Num, level int) int {
	if level < 1 {
		level = 1
	}
	for i := 0; i < maxLevelSteps; i++ {
		if totalEarned.LT(LevelThreshold(b, level)) {
			break
		}
		level++
	}
	return level
}
