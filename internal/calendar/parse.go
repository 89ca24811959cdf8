package calendar

import (
	"strings"
	"time"

	"hancal/internal/domain"
)

// DateRange is the [Start, End) interval an event occupies. Either side may
// be the invalid sentinel when the source strings did not parse.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// location anchors every parsed instant. It must match the zone reference
// clocks run in, or week windows and notification checks drift by the zone
// offset; main sets it to the configured timezone at startup.
var location = time.Local

// SetLocation changes the zone ParseDateTime anchors instants in.
func SetLocation(loc *time.Location) {
	if loc != nil {
		location = loc
	}
}

// ParseDateTime combines a YYYY-MM-DD date and an HH:MM time into a single
// instant in the configured location. Malformed input of any kind yields the
// zero time.Time as a sentinel; it never panics. Non-padded fields
// ("2024-7-1", "9:05") are accepted, extra digits are not.
func ParseDateTime(dateStr, timeStr string) time.Time {
	year, month, day, ok := parseDateParts(dateStr)
	if !ok {
		return time.Time{}
	}
	hour, minute, ok := parseTimeParts(timeStr)
	if !ok {
		return time.Time{}
	}
	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, location)
}

func parseDateParts(s string) (year, month, day int, ok bool) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 || len(parts[0]) != 4 {
		return 0, 0, 0, false
	}
	year, ok = parseField(parts[0], 4)
	if !ok {
		return 0, 0, 0, false
	}
	month, ok = parseField(parts[1], 2)
	if !ok || month < 1 || month > 12 {
		return 0, 0, 0, false
	}
	day, ok = parseField(parts[2], 2)
	if !ok || day < 1 {
		return 0, 0, 0, false
	}
	if max, err := DaysInMonth(year, float64(month)); err != nil || day > max {
		return 0, 0, 0, false
	}
	return year, month, day, true
}

func parseTimeParts(s string) (hour, minute int, ok bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, false
	}
	hour, ok = parseField(parts[0], 2)
	if !ok || hour > 23 {
		return 0, 0, false
	}
	minute, ok = parseField(parts[1], 2)
	if !ok || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// parseField parses a field of at most maxLen digits. Only digit bytes are
// accepted; signs and whitespace make the field invalid.
func parseField(s string, maxLen int) (int, bool) {
	if s == "" || len(s) > maxLen {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
		n = n*10 + int(s[i]-'0')
	}
	return n, true
}

// EventToRange converts an event into its [start, end) interval. The two
// sides are parsed independently: a malformed start time still leaves a
// valid end, and vice versa.
func EventToRange(e domain.Event) DateRange {
	return DateRange{
		Start: ParseDateTime(e.Date, e.StartTime),
		End:   ParseDateTime(e.Date, e.EndTime),
	}
}
