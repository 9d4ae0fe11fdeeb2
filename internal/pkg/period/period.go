// Package period computes the calendar windows the roster navigates and
// aggregates over. All values are zone-less calendar dates: time.Time at
// midnight UTC, compared directly against shift dates and role schedule days,
// never converted through an instant.
package period

import "time"

type Granularity string

const (
	GranularityDay       Granularity = "day"
	GranularityWeek      Granularity = "week"
	GranularityFortnight Granularity = "fortnight"
	GranularityMonth     Granularity = "month"
)

var GranularityValues = []string{
	string(GranularityDay),
	string(GranularityWeek),
	string(GranularityFortnight),
	string(GranularityMonth),
}

// Range is an inclusive calendar window. Never persisted.
type Range struct {
	Start       time.Time
	End         time.Time
	Granularity Granularity
}

const day = 24 * time.Hour

// Truncate drops the clock and zone from t, keeping only the calendar date.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// weekAligned returns the most recent weekStart day on or before ref.
func weekAligned(ref time.Time, weekStart time.Weekday) time.Time {
	ref = Truncate(ref)
	offset := (int(ref.Weekday()) - int(weekStart) + 7) % 7
	return ref.AddDate(0, 0, -offset)
}

// Compute returns the window of the given granularity containing ref.
// Month routes to RollingMonth; display call sites wanting the literal
// calendar month must call CalendarMonth explicitly.
func Compute(ref time.Time, g Granularity, weekStart time.Weekday) Range {
	switch g {
	case GranularityDay:
		d := Truncate(ref)
		return Range{Start: d, End: d, Granularity: GranularityDay}
	case GranularityWeek:
		start := weekAligned(ref, weekStart)
		return Range{Start: start, End: start.AddDate(0, 0, 6), Granularity: GranularityWeek}
	case GranularityFortnight:
		start := weekAligned(ref, weekStart)
		// Keep "current fortnight" containing today when the aligned start
		// has drifted a full week behind the reference.
		if Truncate(ref).Sub(start) >= 7*day {
			start = start.AddDate(0, 0, -7)
		}
		return Range{Start: start, End: start.AddDate(0, 0, 13), Granularity: GranularityFortnight}
	case GranularityMonth:
		return RollingMonth(ref, weekStart)
	default:
		d := Truncate(ref)
		return Range{Start: d, End: d, Granularity: GranularityDay}
	}
}

// RollingMonth is the 4-week aggregation window ending with the week that
// contains ref: the week-aligned start minus three weeks, 28 days long.
func RollingMonth(ref time.Time, weekStart time.Weekday) Range {
	start := weekAligned(ref, weekStart).AddDate(0, 0, -21)
	return Range{Start: start, End: start.AddDate(0, 0, 27), Granularity: GranularityMonth}
}

// CalendarMonth is the literal month containing ref, used for display text.
// Not interchangeable with RollingMonth.
func CalendarMonth(ref time.Time) Range {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return Range{Start: first, End: last, Granularity: GranularityMonth}
}

// Length is the number of days in r, inclusive of both ends.
func (r Range) Length() int {
	return int(r.End.Sub(r.Start)/day) + 1
}

// Contains reports whether the calendar date d falls inside r.
func (r Range) Contains(d time.Time) bool {
	d = Truncate(d)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Previous shifts r backward by its own length.
func Previous(r Range) Range {
	n := r.Length()
	return Range{Start: r.Start.AddDate(0, 0, -n), End: r.End.AddDate(0, 0, -n), Granularity: r.Granularity}
}

// Next shifts r forward by its own length.
func Next(r Range) Range {
	n := r.Length()
	return Range{Start: r.Start.AddDate(0, 0, n), End: r.End.AddDate(0, 0, n), Granularity: r.Granularity}
}
