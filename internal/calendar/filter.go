package calendar

import (
	"strings"
	"time"

	"hancal/internal/domain"
)

// FilterBySearch keeps events whose title, description or location contains
// the term, case-insensitively. An empty term matches everything.
func FilterBySearch(events []domain.Event, term string) []domain.Event {
	if term == "" {
		return append([]domain.Event{}, events...)
	}

	needle := strings.ToLower(term)
	matched := []domain.Event{}
	for _, e := range events {
		if strings.Contains(strings.ToLower(e.Title), needle) ||
			strings.Contains(strings.ToLower(e.Description), needle) ||
			strings.Contains(strings.ToLower(e.Location), needle) {
			matched = append(matched, e)
		}
	}
	return matched
}

// FilterByView keeps events visible in the given view around ref: the
// Sunday-to-Saturday week containing ref, or ref's calendar month.
func FilterByView(events []domain.Event, ref time.Time, view domain.View) []domain.Event {
	matched := []domain.Event{}
	switch view {
	case domain.ViewWeek:
		week := WeekDates(ref)
		for _, e := range events {
			d := ParseDateTime(e.Date, "00:00")
			if !d.IsZero() && IsDateInRange(d, week[0], week[6]) {
				matched = append(matched, e)
			}
		}
	case domain.ViewMonth:
		for _, e := range events {
			d := ParseDateTime(e.Date, "00:00")
			if !d.IsZero() && d.Year() == ref.Year() && d.Month() == ref.Month() {
				matched = append(matched, e)
			}
		}
	}
	return matched
}

// FilteredEvents applies the view window and then the search term,
// preserving the input's relative order. The input slice is never mutated.
func FilteredEvents(events []domain.Event, term string, ref time.Time, view domain.View) []domain.Event {
	return FilterBySearch(FilterByView(events, ref, view), term)
}
