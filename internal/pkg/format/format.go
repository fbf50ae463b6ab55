package format

import (
	"fmt"
	"time"
)

// Percent renders a 0-1 ratio as a whole percentage.
func Percent(val float64) string {
	if val == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.0f%%", val*100)
}

// Duration renders a duration as compact hours/minutes/seconds.
func Duration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	if h > 0 {
		return fmt.Sprintf("%dh%dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%ds", m, d/time.Second)
	}
	return fmt.Sprintf("%ds", d/time.Second)
}
