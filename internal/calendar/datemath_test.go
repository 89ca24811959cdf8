package calendar

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hancal/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year  int
		month float64
		want  int
	}{
		{2024, 1, 31},
		{2024, 4, 30},
		{2024, 2, 29}, // leap year
		{2025, 2, 28},
		{2000, 2, 29}, // divisible by 400
		{1900, 2, 28}, // divisible by 100 only
		{2024, 12, 31},
	}
	for _, c := range cases {
		got, err := DaysInMonth(c.year, c.month)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "year=%d month=%v", c.year, c.month)
	}
}

func TestDaysInMonthInvalid(t *testing.T) {
	for _, month := range []float64{0, 13, 1.1, -3} {
		_, err := DaysInMonth(2024, month)
		require.Error(t, err, "month=%v", month)
		assert.Contains(t, err.Error(), fmt.Sprintf("%v", month))
	}

	// Offending value appears literally in the message.
	_, err := DaysInMonth(2024, 1.1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1.1")
}

func TestWeekDates(t *testing.T) {
	cases := []struct {
		name   string
		ref    time.Time
		sunday time.Time
	}{
		{"wednesday mid-week", date(2024, 11, 6), date(2024, 11, 3)},
		{"sunday itself", date(2024, 11, 3), date(2024, 11, 3)},
		{"saturday end of week", date(2024, 11, 9), date(2024, 11, 3)},
		{"year boundary from december", date(2024, 12, 31), date(2024, 12, 29)},
		{"year boundary from january", date(2025, 1, 1), date(2024, 12, 29)},
		{"leap day week", date(2024, 2, 29), date(2024, 2, 25)},
		{"month boundary", date(2024, 10, 31), date(2024, 10, 27)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			week := WeekDates(c.ref)
			require.Len(t, week, 7)
			for i, d := range week {
				assert.True(t, d.Equal(c.sunday.AddDate(0, 0, i)),
					"day %d: got %v", i, d)
			}
		})
	}
}

func TestWeekDatesContainsReference(t *testing.T) {
	for day := 1; day <= 28; day++ {
		ref := date(2024, 2, day)
		week := WeekDates(ref)
		require.Len(t, week, 7)
		assert.Equal(t, time.Sunday, week[0].Weekday())
		found := false
		for _, d := range week {
			if d.Equal(ref) {
				found = true
			}
		}
		assert.True(t, found, "week of %v must contain it", ref)
	}
}

func TestFillZero(t *testing.T) {
	cases := []struct {
		value float64
		size  int
		want  string
	}{
		{5, 2, "05"},
		{10, 2, "10"},
		{3, 3, "003"},
		{100, 2, "100"},
		{0, 2, "00"},
		{1, 5, "00001"},
		{3.14, 5, "03.14"},
		{7.1, 2, "7.1"}, // already wide enough, untouched
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FillZero(c.value, c.size))
	}

	// Size defaults to 2 when omitted.
	assert.Equal(t, "05", FillZero(5))
	assert.Equal(t, "100", FillZero(100))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2024-11-06", FormatDate(date(2024, 11, 6)))
	assert.Equal(t, "2024-11-01", FormatDate(date(2024, 11, 6), 1))
	assert.Equal(t, "2024-03-09", FormatDate(date(2024, 3, 9)))
}

func TestFormatMonthAndWeek(t *testing.T) {
	assert.Equal(t, "2024년 7월", FormatMonth(date(2024, 7, 10)))
	assert.Equal(t, "2024년 7월 2주", FormatWeek(date(2024, 7, 10)))
	assert.Equal(t, "2024년 7월 1주", FormatWeek(date(2024, 7, 1)))
	assert.Equal(t, "2024년 12월 5주", FormatWeek(date(2024, 12, 31)))
}

func TestWeeksAtMonth(t *testing.T) {
	// July 2024 begins on a Monday and has 31 days.
	weeks := WeeksAtMonth(date(2024, 7, 1))
	require.Len(t, weeks, 5)
	assert.Equal(t, [7]int{0, 1, 2, 3, 4, 5, 6}, weeks[0])
	assert.Equal(t, [7]int{7, 8, 9, 10, 11, 12, 13}, weeks[1])
	assert.Equal(t, [7]int{28, 29, 30, 31, 0, 0, 0}, weeks[4])
}

func TestEventsForDay(t *testing.T) {
	events := []domain.Event{
		testEvent("1", "첫째 날", "2024-07-01", "09:00", "10:00"),
		testEvent("2", "둘째 날", "2024-07-02", "09:00", "10:00"),
		testEvent("3", "또 첫째 날", "2024-08-01", "09:00", "10:00"),
	}

	day1 := EventsForDay(events, 1)
	require.Len(t, day1, 2)
	assert.Equal(t, "1", day1[0].ID)
	assert.Equal(t, "3", day1[1].ID)

	assert.Empty(t, EventsForDay(events, 15))
	assert.Empty(t, EventsForDay(events, 0))
	assert.Empty(t, EventsForDay(events, 32))
}

func TestIsDateInRange(t *testing.T) {
	start := date(2024, 7, 1)
	end := date(2024, 7, 31)

	assert.True(t, IsDateInRange(date(2024, 7, 10), start, end))
	assert.True(t, IsDateInRange(start, start, end))
	assert.True(t, IsDateInRange(end, start, end))
	assert.False(t, IsDateInRange(date(2024, 6, 30), start, end))
	assert.False(t, IsDateInRange(date(2024, 8, 1), start, end))

	// Inverted range matches nothing, boundaries included.
	assert.False(t, IsDateInRange(date(2024, 7, 10), end, start))
	assert.False(t, IsDateInRange(end, end, start))
	assert.False(t, IsDateInRange(start, end, start))
}
