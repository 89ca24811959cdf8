package domain

import "time"

// Notification is a reminder raised for an event whose notification window
// has opened. It carries no identity beyond the event id it references.
type Notification struct {
	ID      string    `json:"id"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}
