package calendar

import (
	"fmt"

	"hancal/internal/domain"
)

// testEvent builds an event with sensible defaults so individual tests only
// spell out the fields they care about.
func testEvent(id, title, date, start, end string) domain.Event {
	return domain.Event{
		ID:               id,
		Title:            title,
		Date:             date,
		StartTime:        start,
		EndTime:          end,
		Description:      fmt.Sprintf("이벤트 %s 입니다.", id),
		Location:         fmt.Sprintf("이벤트 %s의 장소", id),
		Category:         "업무",
		Repeat:           domain.Repeat{Type: domain.RepeatNone, Interval: 0},
		NotificationTime: 10,
	}
}
