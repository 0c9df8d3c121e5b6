package types

import "time"

// AddClampedDate adds years, months and days to t. When the target month is
// shorter than t's day of month the result is clamped to the month's last day,
// so Jan 31 + 1 month is Feb 28 (or 29) rather than early March.
func AddClampedDate(t time.Time, years, months, days int) time.Time {
	y, m, d := t.Date()
	h, min, sec := t.Clock()

	total := int(m) - 1 + months
	newY := y + years + floorDiv(total, 12)
	newM := time.Month(floorMod(total, 12) + 1)

	lastDay := daysIn(newY, newM, t.Location())
	if d > lastDay {
		d = lastDay
	}

	// days are applied after clamping so that day overflow rolls into the next month
	return time.Date(newY, newM, d+days, h, min, sec, t.Nanosecond(), t.Location())
}

// AddMonths is AddClampedDate restricted to calendar months.
func AddMonths(t time.Time, months int) time.Time {
	return AddClampedDate(t, 0, months, 0)
}

// DateOf returns midnight UTC of t's calendar day, read in t's own location.
// Dates stored without a time component compare correctly after DateOf.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the calendar date of now as seen in loc.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return DateOf(now.In(loc))
}

// CompareDates compares the calendar days of a and b and returns -1, 0 or 1.
func CompareDates(a, b time.Time) int {
	return DateOf(a).Compare(DateOf(b))
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
