package calendar

import "hancal/internal/domain"

// IsOverlapping reports whether two events' [start, end) intervals intersect
// with positive duration. Touching boundaries do not count. Any side that
// failed to parse makes the answer false rather than comparing the sentinel.
func IsOverlapping(a, b domain.Event) bool {
	ra := EventToRange(a)
	rb := EventToRange(b)
	if ra.Start.IsZero() || ra.End.IsZero() || rb.Start.IsZero() || rb.End.IsZero() {
		return false
	}
	return ra.Start.Before(rb.End) && rb.Start.Before(ra.End)
}

// FindOverlapping returns every event overlapping the candidate, in the
// input's original order. An event sharing the candidate's non-empty id is
// skipped so that editing an event does not conflict with itself.
func FindOverlapping(candidate domain.Event, events []domain.Event) []domain.Event {
	overlapping := []domain.Event{}
	for _, e := range events {
		if candidate.ID != "" && e.ID == candidate.ID {
			continue
		}
		if IsOverlapping(candidate, e) {
			overlapping = append(overlapping, e)
		}
	}
	return overlapping
}
