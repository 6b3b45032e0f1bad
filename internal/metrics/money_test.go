package metrics_test

import (
	"math"
	"testing"
	"time"

	"github.com/limbo/breakfree/internal/metrics"
	"github.com/stretchr/testify/assert"
)

func TestMoneySaved(t *testing.T) {
	t0 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	testCases := []struct {
		Desc     string
		Opts     metrics.MoneySavedOpts
		Expected int64
	}{
		{
			Desc: "two weeks at 140 minus 50 adjustment",
			Opts: metrics.MoneySavedOpts{
				CreatedAt:              &t0,
				CostPerWeek:            140,
				ManualSpendAdjustments: 50,
				Now:                    t0.Add(14 * 24 * time.Hour),
			},
			Expected: 230,
		},
		{
			Desc: "adjustments can floor the estimate at zero",
			Opts: metrics.MoneySavedOpts{
				CreatedAt:              &t0,
				CostPerWeek:            140,
				ManualSpendAdjustments: 500,
				Now:                    t0.Add(14 * 24 * time.Hour),
			},
			Expected: 0,
		},
		{
			Desc: "zero cost always saves zero",
			Opts: metrics.MoneySavedOpts{
				CreatedAt:   &t0,
				CostPerWeek: 0,
				Now:         t0.Add(100 * 24 * time.Hour),
			},
			Expected: 0,
		},
		{
			Desc: "missing createdAt saves zero",
			Opts: metrics.MoneySavedOpts{
				CostPerWeek: 140,
				Now:         t0,
			},
			Expected: 0,
		},
		{
			Desc: "negative cost saves zero",
			Opts: metrics.MoneySavedOpts{
				CreatedAt:   &t0,
				CostPerWeek: -10,
				Now:         t0.Add(14 * 24 * time.Hour),
			},
			Expected: 0,
		},
		{
			Desc: "NaN cost saves zero",
			Opts: metrics.MoneySavedOpts{
				CreatedAt:   &t0,
				CostPerWeek: math.NaN(),
				Now:         t0.Add(14 * 24 * time.Hour),
			},
			Expected: 0,
		},
		{
			Desc: "createdAt in the future clamps elapsed weeks to zero",
			Opts: metrics.MoneySavedOpts{
				CreatedAt:   timePtr(t0.Add(24 * time.Hour)),
				CostPerWeek: 140,
				Now:         t0,
			},
			Expected: 0,
		},
		{
			Desc: "partial weeks round to the nearest unit",
			Opts: metrics.MoneySavedOpts{
				CreatedAt:   &t0,
				CostPerWeek: 100,
				Now:         t0.Add(3*24*time.Hour + 12*time.Hour),
			},
			Expected: 50,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			assert.Equal(t, tc.Expected, metrics.MoneySaved(tc.Opts))
		})
	}
}

func TestMoneySavedMonotonicInTime(t *testing.T) {
	t0 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	prev := int64(0)
	for day := 0; day <= 60; day++ {
		got := metrics.MoneySaved(metrics.MoneySavedOpts{
			CreatedAt:              &t0,
			CostPerWeek:            77,
			ManualSpendAdjustments: 120,
			Now:                    t0.Add(time.Duration(day) * 24 * time.Hour),
		})
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
}

func TestMoneySavedMonotonicInAdjustments(t *testing.T) {
	t0 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	now := t0.Add(30 * 24 * time.Hour)
	prev := metrics.MoneySaved(metrics.MoneySavedOpts{CreatedAt: &t0, CostPerWeek: 200, Now: now})
	for adj := float64(0); adj <= 2000; adj += 100 {
		got := metrics.MoneySaved(metrics.MoneySavedOpts{
			CreatedAt:              &t0,
			CostPerWeek:            200,
			ManualSpendAdjustments: adj,
			Now:                    now,
		})
		assert.LessOrEqual(t, got, prev)
		assert.GreaterOrEqual(t, got, int64(0))
		prev = got
	}
}
