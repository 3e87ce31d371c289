package config

import (
	_ "embed"
)

//go:embed defaults/balance.yaml
var defaultBalanceYAML []byte

// DefaultBalance returns the hardcoded balance, used when the embedded YAML
// cannot be parsed.
func DefaultBalance() Balance {
	return Balance{
		Production: ProductionBalance{
			BaseSPD:              1,
			StrawSPD:             0.6,
			CupSPD:               1.2,
			WiderStrawMultiplier: 0.5,
			BetterCupMultiplier:  0.4,
			LevelBonus:           0.1,
		},
		Click: ClickBalance{
			BaseValue:              1,
			SuctionBonus:           0.3,
			BaseCriticalChance:     0.001,
			CriticalChancePerLevel: 0.0005,
			MaxCriticalChance:      0.25,
			CriticalMultiplier:     5,
		},
		Drink: DrinkBalance{
			BaseRateMs:           5000,
			MinRateMs:            1000,
			FasterDrinkReduction: 0.1,
		},
		Upgrades: map[string]UpgradeCost{
			UpgradeStraw:         {BaseCost: 5, Growth: 1.08},
			UpgradeCup:           {BaseCost: 15, Growth: 1.15},
			UpgradeSuction:       {BaseCost: 40, Growth: 1.12},
			UpgradeCriticalClick: {BaseCost: 60, Growth: 1.15},
			UpgradeFasterDrink:   {BaseCost: 80, Growth: 1.1},
			UpgradeWiderStraw:    {BaseCost: 100, Growth: 1.2},
			UpgradeBetterCup:     {BaseCost: 150, Growth: 1.25},
		},
		Level: LevelBalance{
			BaseThreshold: 1000,
			Growth:        2.5,
		},
		Streak: StreakBalance{
			WindowMs: 3000,
			RingSize: 32,
		},
		Save: SaveBalance{
			DebounceMs: 1000,
		},
	}
}

// DefaultBalanceYAML returns the embedded default balance file.
func DefaultBalanceYAML() []byte {
	return defaultBalanceYAML
}
