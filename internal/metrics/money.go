package metrics

import (
	"math"
	"time"
)

// WeekMs is how many milliseconds are in a week.
const WeekMs int64 = 7 * DayMs

// MoneySavedOpts are the inputs of the money-saved estimate.
type MoneySavedOpts struct {
	CreatedAt              *time.Time
	CostPerWeek            float64
	ManualSpendAdjustments float64
	Now                    time.Time
}

// MoneySaved estimates how much currency the user saved since account
// creation: costPerWeek times elapsed weeks, minus manual "I spent
// anyway" adjustments, rounded to whole units and floored at zero.
// Missing createdAt or a non-positive/non-finite cost yield 0 rather
// than an error, the value is display-only.
func MoneySaved(opts MoneySavedOpts) int64 {
	startMs := toMillis(opts.CreatedAt)
	if startMs == 0 || !isFinitePositive(opts.CostPerWeek) {
		return 0
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	weeks := math.Max(0, float64(now.UnixMilli()-startMs)/float64(WeekMs))
	saved := opts.CostPerWeek*weeks - opts.ManualSpendAdjustments
	return int64(math.Round(math.Max(0, saved)))
}

func isFinitePositive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
