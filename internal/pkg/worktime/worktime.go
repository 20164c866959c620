// Package worktime holds the pure calculations behind every attendance and
// leave rollup: hours on site, inclusive leave days, rates and the rounding
// applied when a figure leaves the service.
package worktime

import (
	"time"

	"github.com/shopspring/decimal"
)

// HoursWorked returns the hours between checkIn and checkOut minus the break.
// An open shift (checkOut == nil) contributes nothing. A break longer than the
// shift yields 0 rather than a negative figure.
func HoursWorked(checkIn time.Time, checkOut *time.Time, breakMinutes int) float64 {
	if checkOut == nil {
		return 0
	}
	hours := checkOut.Sub(checkIn).Hours() - float64(breakMinutes)/60
	if hours < 0 {
		return 0
	}
	return hours
}

// LeaveDays counts calendar days from start to end, both inclusive.
func LeaveDays(start, end time.Time) int {
	s := dateOf(start)
	e := dateOf(end)
	return int(e.Sub(s).Hours()/24) + 1
}

// Overlaps reports whether [start,end] intersects [rangeStart,rangeEnd].
func Overlaps(start, end, rangeStart, rangeEnd time.Time) bool {
	return !start.After(rangeEnd) && !end.Before(rangeStart)
}

// Average divides total by count, returning 0 for an empty population.
func Average(total float64, count int) float64 {
	if count <= 0 {
		return 0
	}
	return total / float64(count)
}

// Rate expresses part as a percentage of whole, 0 when whole is empty.
func Rate(part, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// Round2 rounds v to two decimal places, half away from zero.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
