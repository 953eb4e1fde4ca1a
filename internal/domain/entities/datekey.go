package entities

import "time"

// DateKeyLayout is the canonical day format used for every day comparison.
const DateKeyLayout = "2006-01-02"

// DateKey formats t as YYYY-MM-DD in t's own location.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// YesterdayKey returns the date key of the calendar day before t.
func YesterdayKey(t time.Time) string {
	return DateKey(t.AddDate(0, 0, -1))
}

// ParseDateKey parses a date key as midnight UTC. UTC keeps day arithmetic
// free of DST shifts.
func ParseDateKey(key string) (time.Time, bool) {
	if key == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateKeyLayout, key)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DaysBetween returns the number of calendar days from a to b.
func DaysBetween(a, b string) (int, bool) {
	ta, ok := ParseDateKey(a)
	if !ok {
		return 0, false
	}
	tb, ok := ParseDateKey(b)
	if !ok {
		return 0, false
	}
	return int(tb.Sub(ta).Hours() / 24), true
}
