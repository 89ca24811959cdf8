package calendar

import (
	"fmt"
	"time"

	"hancal/internal/domain"
)

// UpcomingEvents returns the events whose notification window
// [start - notificationTime, start] contains now and whose id has not been
// notified yet. Events with an unparsable start never qualify. The function
// is pure: calling it again with the same arguments yields the same set.
func UpcomingEvents(events []domain.Event, now time.Time, notified map[string]struct{}) []domain.Event {
	upcoming := []domain.Event{}
	for _, e := range events {
		if _, done := notified[e.ID]; done {
			continue
		}
		start := ParseDateTime(e.Date, e.StartTime)
		if start.IsZero() {
			continue
		}
		windowStart := start.Add(-time.Duration(e.NotificationTime) * time.Minute)
		if !now.Before(windowStart) && !now.After(start) {
			upcoming = append(upcoming, e)
		}
	}
	return upcoming
}

// NotificationMessage builds the reminder text shown to the user. The exact
// wording is a compatibility contract with the client's rendered output.
func NotificationMessage(e domain.Event) string {
	return fmt.Sprintf("%d분 후 %s 일정이 시작됩니다.", e.NotificationTime, e.Title)
}
