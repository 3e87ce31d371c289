package config

// PacePreset represents a named economy speed.
type PacePreset string

const (
	PaceRelaxed PacePreset = "relaxed"
	PaceNormal  PacePreset = "normal"
	PaceHard    PacePreset = "hard"
)

// CostScaleForPreset returns the multiplier applied to every upgrade base cost.
func CostScaleForPreset(preset PacePreset) float64 {
	switch preset {
	case PaceRelaxed:
		return 0.5
	case PaceHard:
		return 2.0
	default:
		return 1.0
	}
}

// IsKnownPace reports whether preset names a supported pace. Empty means normal.
func IsKnownPace(preset PacePreset) bool {
	switch preset {
	case "", PaceRelaxed, PaceNormal, PaceHard:
		return true
	}
	return false
}

// ApplyPacePreset scales upgrade costs and the level curve for a preset.
// The upgrade map is copied so the caller's balance is left untouched.
func ApplyPacePreset(cfg *Balance, preset PacePreset) {
	scale := CostScaleForPreset(preset)
	if scale == 1.0 {
		return
	}

	upgrades := make(map[string]UpgradeCost, len(cfg.Upgrades))
	for id, u := range cfg.Upgrades {
		u.BaseCost *= scale
		upgrades[id] = u
	}
	cfg.Upgrades = upgrades
	cfg.Level.BaseThreshold *= scale
}
