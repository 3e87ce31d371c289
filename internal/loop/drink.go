package loop

import "time"

// CheckDrink decides whether a drink is due. When at least one full interval
// has elapsed since last, it reports an award and returns the new last-drink
// time, which keeps the remainder (elapsed mod rate) so the cycle stays in
// phase with real time.
//
// A long gap still awards a single drink; missed intervals are not caught up.
func CheckDrink(now, last time.Time, rate time.Duration) (awarded bool, nextLast time.Time) {
	if rate <= 0 {
		return false, last
	}
	elapsed := now.Sub(last)
	if elapsed < rate {
		return false, last
	}
	return true, now.Add(-(elapsed % rate))
}

// Progress returns the elapsed fraction of the current drink cycle in [0, 1).
func Progress(now, last time.Time, rate time.Duration) float64 {
	if rate <= 0 {
		return 0
	}
	elapsed := now.Sub(last)
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= rate {
		elapsed %= rate
	}
	return float64(elapsed) / float64(rate)
}
