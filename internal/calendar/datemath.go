// Package calendar holds the scheduling core: date arithmetic, tolerant
// date/time parsing, interval overlap detection, view filtering and
// notification-window checks. Everything here is pure; inputs are never
// mutated and results are freshly allocated, so callers may share event
// slices across goroutines.
package calendar

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"hancal/internal/domain"
)

// DaysInMonth returns the number of days in the given month (1-12),
// accounting for leap years. The month is taken as float64 so that an
// out-of-domain fractional value can be reported back verbatim; valid
// input is always a whole number.
func DaysInMonth(year int, month float64) (int, error) {
	if month != math.Trunc(month) || month < 1 || month > 12 {
		return 0, fmt.Errorf("month must be an integer between 1 and 12, got %v", month)
	}

	m := int(month)
	switch m {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31, nil
	case 4, 6, 9, 11:
		return 30, nil
	}

	if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
		return 29, nil
	}
	return 28, nil
}

// WeekDates returns the seven dates (Sunday through Saturday) of the week
// containing ref, rolling over month and year boundaries as needed. Result
// dates keep ref's location at midnight.
func WeekDates(ref time.Time) []time.Time {
	y, m, d := ref.Date()
	sunday := time.Date(y, m, d, 0, 0, 0, 0, ref.Location()).
		AddDate(0, 0, -int(ref.Weekday()))

	week := make([]time.Time, 7)
	for i := range week {
		week[i] = sunday.AddDate(0, 0, i)
	}
	return week
}

// FillZero renders a non-negative number left-padded with zeros to at least
// size characters (2 when omitted). Fractional values keep their decimal
// part ("03.14"); values already wide enough come back unchanged.
func FillZero(value float64, size ...int) string {
	width := 2
	if len(size) > 0 {
		width = size[0]
	}
	s := strconv.FormatFloat(value, 'f', -1, 64)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// FormatDate renders d as YYYY-MM-DD. An optional day substitutes the
// day-of-month component.
func FormatDate(d time.Time, day ...int) string {
	dom := d.Day()
	if len(day) > 0 {
		dom = day[0]
	}
	return fmt.Sprintf("%d-%s-%s",
		d.Year(),
		FillZero(float64(d.Month()), 2),
		FillZero(float64(dom), 2),
	)
}

// FormatMonth renders d as "2006년 1월".
func FormatMonth(d time.Time) string {
	return fmt.Sprintf("%d년 %d월", d.Year(), int(d.Month()))
}

// FormatWeek renders d as "2006년 1월 N주" where N is the week-of-month
// ordinal of d's day.
func FormatWeek(d time.Time) string {
	week := (d.Day() + 6) / 7
	return fmt.Sprintf("%d년 %d월 %d주", d.Year(), int(d.Month()), week)
}

// WeeksAtMonth lays out the month containing d as calendar grid rows of
// seven cells, Sunday first. Empty leading and trailing cells are zero.
func WeeksAtMonth(d time.Time) [][7]int {
	first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
	days, _ := DaysInMonth(d.Year(), float64(d.Month()))
	offset := int(first.Weekday())

	var weeks [][7]int
	var week [7]int
	col := offset
	for day := 1; day <= days; day++ {
		week[col] = day
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = [7]int{}
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

// EventsForDay returns the events whose date falls on the given day of the
// month. Days outside 1..31 yield an empty slice.
func EventsForDay(events []domain.Event, day int) []domain.Event {
	result := []domain.Event{}
	if day < 1 || day > 31 {
		return result
	}
	for _, e := range events {
		if d := ParseDateTime(e.Date, "00:00"); !d.IsZero() && d.Day() == day {
			result = append(result, e)
		}
	}
	return result
}

// IsDateInRange reports whether d falls within [start, end], inclusive on
// both ends. An inverted range matches nothing, boundaries included.
func IsDateInRange(d, start, end time.Time) bool {
	if start.After(end) {
		return false
	}
	return !d.Before(start) && !d.After(end)
}
