package utils

import "time"

// DurationDays returns the number of billable days between start and end,
// rounding partial days up. A positive sub-day difference bills a full day.
// Callers guarantee end is strictly after start.
func DurationDays(start, end time.Time) int {
	diff := end.Sub(start)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}

// TotalPrice computes the booking price in credits from the per-day price
// snapshotted at creation time.
func TotalPrice(start, end time.Time, pricePerDay int) int {
	return DurationDays(start, end) * pricePerDay
}
