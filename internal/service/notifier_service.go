package service

import (
	"log"
	"sync"
	"time"

	"hancal/internal/calendar"
	"hancal/internal/domain"
	"hancal/internal/storage"
)

// Sender delivers a notification text to one outbound channel.
type Sender interface {
	Send(text string) error
}

// maxRecent bounds the notification log kept for the API.
const maxRecent = 50

// NotifierService polls the event collection and raises each event's
// reminder exactly once. It owns the cross-tick notified-id set; the
// decision itself lives in calendar.UpcomingEvents.
type NotifierService struct {
	storage *storage.Storage
	senders []Sender

	mu       sync.Mutex
	notified map[string]struct{}
	recent   []domain.Notification
}

func NewNotifierService(s *storage.Storage, senders ...Sender) *NotifierService {
	return &NotifierService{
		storage:  s,
		senders:  senders,
		notified: make(map[string]struct{}),
	}
}

// Tick evaluates the notification windows against now and fans the newly
// due reminders out to every sender. Safe to call from the cron goroutine
// and from tests concurrently.
func (s *NotifierService) Tick(now time.Time) ([]domain.Notification, error) {
	events, err := s.storage.ListEvents()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	due := calendar.UpcomingEvents(events, now, s.notified)
	notifications := make([]domain.Notification, 0, len(due))
	for _, e := range due {
		s.notified[e.ID] = struct{}{}
		n := domain.Notification{
			ID:      e.ID,
			Message: calendar.NotificationMessage(e),
			At:      now,
		}
		notifications = append(notifications, n)
		s.recent = append(s.recent, n)
	}
	if len(s.recent) > maxRecent {
		s.recent = s.recent[len(s.recent)-maxRecent:]
	}
	s.mu.Unlock()

	for _, n := range notifications {
		for _, sender := range s.senders {
			if err := sender.Send(n.Message); err != nil {
				log.Printf("Error sending notification for event %s: %v", n.ID, err)
			}
		}
	}

	return notifications, nil
}

// Recent returns the retained notifications, newest last.
func (s *NotifierService) Recent() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Notification{}, s.recent...)
}

// Forget drops an event from the notified set, so a rescheduled event can
// notify again.
func (s *NotifierService) Forget(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.notified, id)
}

// Reset clears all dedup state and the notification log.
func (s *NotifierService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notified = make(map[string]struct{})
	s.recent = nil
}
