package service

import (
	"fmt"

	"hancal/internal/domain"
)

// SaveState is the phase of a pending save.
type SaveState string

const (
	SaveIdle                SaveState = "idle"
	SavePendingConfirmation SaveState = "pending_confirmation"
	SaveCommitted           SaveState = "committed"
	SaveAborted             SaveState = "aborted"
)

// SaveFlow drives a single draft through check, confirmation and commit.
// A flow whose attempt found conflicts parks in PendingConfirmation holding
// the draft unchanged; Confirm commits it past the overlap check, Abort
// discards it.
type SaveFlow struct {
	svc   *EventService
	state SaveState

	draft     domain.Event
	saved     *domain.Event
	conflicts []domain.Event
}

func NewSaveFlow(svc *EventService) *SaveFlow {
	return &SaveFlow{svc: svc, state: SaveIdle}
}

func (f *SaveFlow) State() SaveState          { return f.state }
func (f *SaveFlow) Saved() *domain.Event      { return f.saved }
func (f *SaveFlow) Conflicts() []domain.Event { return f.conflicts }

// Begin attempts to save the draft. Without conflicts the flow commits
// immediately; otherwise it waits for Confirm or Abort.
func (f *SaveFlow) Begin(draft domain.Event) error {
	if f.state != SaveIdle {
		return fmt.Errorf("save flow already started (state %s)", f.state)
	}

	result, err := f.svc.AttemptSave(draft)
	if err != nil {
		return err
	}

	if len(result.Conflicts) > 0 {
		f.draft = draft
		f.conflicts = result.Conflicts
		f.state = SavePendingConfirmation
		return nil
	}

	f.saved = result.Event
	f.state = SaveCommitted
	return nil
}

// Confirm commits a suspended draft, bypassing the overlap check.
func (f *SaveFlow) Confirm() error {
	if f.state != SavePendingConfirmation {
		return fmt.Errorf("nothing to confirm (state %s)", f.state)
	}

	saved, err := f.svc.ForceSave(f.draft)
	if err != nil {
		return err
	}
	f.saved = saved
	f.state = SaveCommitted
	return nil
}

// Abort discards a suspended draft without writing anything.
func (f *SaveFlow) Abort() error {
	if f.state != SavePendingConfirmation {
		return fmt.Errorf("nothing to abort (state %s)", f.state)
	}
	f.state = SaveAborted
	return nil
}
