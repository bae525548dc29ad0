package timeutil

import "time"

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateOrNow returns the date unchanged when it is a valid YYYY-MM-DD string,
// otherwise the current date in the given location.
func DateOrNow(date string, now time.Time, loc *time.Location) string {
	if date != "" {
		if _, err := ParseDate(date); err == nil {
			return date
		}
	}
	if loc == nil {
		loc = time.UTC
	}
	return FormatDate(now.In(loc))
}
