package clock

import "time"

// Clock supplies the current instant. Services receive one at construction so
// check-in dates and "today" windows can be pinned in tests.
type Clock interface {
	Now() time.Time
	// Today returns the current calendar day in the clock's location,
	// represented as midnight UTC of that day.
	Today() time.Time
}

type systemClock struct {
	loc *time.Location
}

// New returns a wall clock that resolves calendar days in loc.
// A nil location means UTC.
func New(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time {
	return time.Now().UTC()
}

func (c systemClock) Today() time.Time {
	return DateOf(time.Now().In(c.loc))
}

// Fixed always reports the same instant.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time {
	return f.At.UTC()
}

func (f Fixed) Today() time.Time {
	return DateOf(f.At)
}

// DateOf drops the time of day from t, keeping the calendar day of t's own
// location, and returns it as midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthStart returns the first day of the month containing day.
func MonthStart(day time.Time) time.Time {
	y, m, _ := day.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}
