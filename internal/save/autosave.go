package save

// AutosaveInput is the state the autosave counter works from.
type AutosaveInput struct {
	Enabled     bool
	Counter     int
	IntervalSec int
	DrinkRateMs int64
}

// AutosaveResult is the next counter value and whether to save now.
type AutosaveResult struct {
	NextCounter int
	ShouldSave  bool
}

// ComputeAutosaveCounter advances the per-drink autosave counter. A save is
// due on every ceil(interval / drinkRate)-th drink; the counter then restarts
// at 1. A zero counter counts the current drink as the first of its cycle.
// When autosave is disabled the counter is held at zero.
func ComputeAutosaveCounter(in AutosaveInput) AutosaveResult {
	if !in.Enabled {
		return AutosaveResult{}
	}
	current := max(in.Counter, 1)
	if current >= DrinksPerInterval(in.IntervalSec, in.DrinkRateMs) {
		return AutosaveResult{NextCounter: 1, ShouldSave: true}
	}
	return AutosaveResult{NextCounter: current + 1}
}

// DrinksPerInterval returns how many drinks fit in the autosave interval,
// rounded up and never less than one.
func DrinksPerInterval(intervalSec int, drinkRateMs int64) int {
	if intervalSec <= 0 || drinkRateMs <= 0 {
		return 1
	}
	ms := int64(intervalSec) * 1000
	n := (ms + drinkRateMs - 1) / drinkRateMs
	if n < 1 {
		return 1
	}
	return int(n)
}
