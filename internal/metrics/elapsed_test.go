package metrics_test

import (
	"testing"
	"time"

	"github.com/limbo/breakfree/internal/metrics"
	"github.com/stretchr/testify/assert"
)

func TestFormatElapsed(t *testing.T) {
	testCases := []struct {
		D        time.Duration
		Expected string
	}{
		{0, "0h 0m 0s"},
		{42 * time.Second, "0h 0m 42s"},
		{3*time.Hour + 4*time.Minute + 5*time.Second, "3h 4m 5s"},
		{24 * time.Hour, "1d 0h 0m"},
		{49*time.Hour + 30*time.Minute, "2d 1h 30m"},
		{-time.Minute, "0h 0m 0s"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.Expected, metrics.FormatElapsed(tc.D))
	}
}
