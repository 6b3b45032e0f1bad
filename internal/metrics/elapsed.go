package metrics

import (
	"fmt"
	"time"
)

// FormatElapsed renders a duration the way the home-screen clock shows
// it: "Xd Yh Zm" once a full day passed, "Hh Mm Ss" before that.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	days := int64(d.Hours()) / 24
	if days >= 1 {
		hours := int64(d.Hours()) % 24
		minutes := int64(d.Minutes()) % 60
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	hours := int64(d.Hours())
	minutes := int64(d.Minutes()) % 60
	seconds := int64(d.Seconds()) % 60
	return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
}
