package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"hancal/internal/calendar"
	"hancal/internal/domain"
	"hancal/internal/storage"
)

// EventService owns event CRUD and the two-phase save flow: a save attempt
// that finds overlapping events is suspended until the user confirms or
// abandons it.
type EventService struct {
	storage *storage.Storage
}

func NewEventService(s *storage.Storage) *EventService {
	return &EventService{storage: s}
}

// SaveResult is the outcome of a save attempt. Conflicts is non-empty when
// the save was suspended; Event is set when it was committed.
type SaveResult struct {
	Event     *domain.Event
	Conflicts []domain.Event
}

func (s *EventService) List() ([]domain.Event, error) {
	return s.storage.ListEvents()
}

func (s *EventService) Get(id string) (*domain.Event, error) {
	e, err := s.storage.GetEvent(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("event %s not found", id)
	}
	return e, nil
}

func (s *EventService) Delete(id string) error {
	return s.storage.DeleteEvent(id)
}

// AttemptSave validates the draft and checks it against the stored events.
// When overlapping events exist the draft is not written and the conflict
// list is returned for the caller to confirm.
func (s *EventService) AttemptSave(draft domain.Event) (*SaveResult, error) {
	if err := s.validate(draft); err != nil {
		return nil, err
	}

	events, err := s.storage.ListEvents()
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	if conflicts := calendar.FindOverlapping(draft, events); len(conflicts) > 0 {
		return &SaveResult{Conflicts: conflicts}, nil
	}

	saved, err := s.save(draft)
	if err != nil {
		return nil, err
	}
	return &SaveResult{Event: saved}, nil
}

// ForceSave writes the draft without the overlap check. Called after the
// user confirmed the conflict list.
func (s *EventService) ForceSave(draft domain.Event) (*domain.Event, error) {
	if err := s.validate(draft); err != nil {
		return nil, err
	}
	return s.save(draft)
}

func (s *EventService) save(draft domain.Event) (*domain.Event, error) {
	normalize(&draft)
	if draft.Repeat.Type == "" {
		draft.Repeat.Type = domain.RepeatNone
	}

	if draft.ID == "" {
		draft.ID = uuid.NewString()
		if err := s.storage.CreateEvent(&draft); err != nil {
			return nil, err
		}
		return &draft, nil
	}

	existing, err := s.storage.GetEvent(draft.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("event %s not found", draft.ID)
	}
	if err := s.storage.UpdateEvent(&draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// normalize zero-pads the date and time strings so stored events sort and
// compare consistently. Validation already guaranteed they parse.
func normalize(draft *domain.Event) {
	if d := calendar.ParseDateTime(draft.Date, "00:00"); !d.IsZero() {
		draft.Date = calendar.FormatDate(d)
	}
	if t := calendar.ParseDateTime("2000-01-01", draft.StartTime); !t.IsZero() {
		draft.StartTime = t.Format("15:04")
	}
	if t := calendar.ParseDateTime("2000-01-01", draft.EndTime); !t.IsZero() {
		draft.EndTime = t.Format("15:04")
	}
}

func (s *EventService) validate(draft domain.Event) error {
	if strings.TrimSpace(draft.Title) == "" {
		return fmt.Errorf("event title cannot be empty")
	}
	if calendar.ParseDateTime(draft.Date, draft.StartTime).IsZero() {
		return fmt.Errorf("invalid date or start time: %q %q", draft.Date, draft.StartTime)
	}
	if calendar.ParseDateTime(draft.Date, draft.EndTime).IsZero() {
		return fmt.Errorf("invalid end time: %q", draft.EndTime)
	}
	if r := calendar.ValidateTimeOrder(draft.StartTime, draft.EndTime); !r.Valid() {
		return fmt.Errorf("%s", r.StartTimeError)
	}
	if draft.NotificationTime < 0 {
		return fmt.Errorf("notification time cannot be negative")
	}
	return nil
}
