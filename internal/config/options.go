package config

// Autosave interval bounds in seconds.
const (
	MinAutosaveInterval     = 5
	MaxAutosaveInterval     = 3600
	DefaultAutosaveInterval = 30
)

// Options is the user-mutable settings record, persisted separately from
// the game save.
type Options struct {
	AutosaveEnabled    bool `json:"autosaveEnabled"`
	AutosaveInterval   int  `json:"autosaveInterval"` // Seconds
	ClickSoundsEnabled bool `json:"clickSoundsEnabled"`
	MusicEnabled       bool `json:"musicEnabled"`
}

// DefaultOptions returns the options a new player starts with.
func DefaultOptions() Options {
	return Options{
		AutosaveEnabled:    true,
		AutosaveInterval:   DefaultAutosaveInterval,
		ClickSoundsEnabled: true,
		MusicEnabled:       true,
	}
}

// Normalize clamps the autosave interval into its supported range.
func (o Options) Normalize() Options {
	switch {
	case o.AutosaveInterval <= 0:
		o.AutosaveInterval = DefaultAutosaveInterval
	case o.AutosaveInterval < MinAutosaveInterval:
		o.AutosaveInterval = MinAutosaveInterval
	case o.AutosaveInterval > MaxAutosaveInterval:
		o.AutosaveInterval = MaxAutosaveInterval
	}
	return o
}
