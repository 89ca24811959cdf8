// Package ics encodes calendar events into iCalendar documents for export
// and CalDAV upload.
package ics

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"

	cal "hancal/internal/calendar"
	"hancal/internal/domain"
)

// EventComponent builds a VEVENT for the given event. A VALARM carrying the
// notification lead is attached when the lead is positive.
func EventComponent(e domain.Event) *ical.Event {
	vevent := ical.NewEvent()
	vevent.Props.SetText(ical.PropUID, e.ID)
	vevent.Props.SetText(ical.PropSummary, e.Title)

	if e.Description != "" {
		vevent.Props.SetText(ical.PropDescription, e.Description)
	}
	if e.Location != "" {
		vevent.Props.SetText(ical.PropLocation, e.Location)
	}
	if e.Category != "" {
		vevent.Props.SetText(ical.PropCategories, e.Category)
	}

	r := cal.EventToRange(e)
	if !r.Start.IsZero() {
		vevent.Props.SetDateTime(ical.PropDateTimeStart, r.Start.UTC())
	}
	if !r.End.IsZero() {
		vevent.Props.SetDateTime(ical.PropDateTimeEnd, r.End.UTC())
	}
	vevent.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())

	if e.NotificationTime > 0 {
		alarm := &ical.Component{Name: ical.CompAlarm, Props: make(ical.Props)}
		alarm.Props.SetText(ical.PropAction, "DISPLAY")
		alarm.Props.SetText(ical.PropDescription, cal.NotificationMessage(e))
		alarm.Props.SetText(ical.PropTrigger, fmt.Sprintf("-PT%dM", e.NotificationTime))
		vevent.Children = append(vevent.Children, alarm)
	}

	return vevent
}

// Calendar wraps the given events in a VCALENDAR.
func Calendar(events []domain.Event) *ical.Calendar {
	c := ical.NewCalendar()
	c.Props.SetText(ical.PropVersion, "2.0")
	c.Props.SetText(ical.PropProductID, "-//hancal//calendar//KO")

	for _, e := range events {
		c.Children = append(c.Children, EventComponent(e).Component)
	}
	return c
}

// Encode serializes the events as an iCalendar document.
func Encode(events []domain.Event) ([]byte, error) {
	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(Calendar(events)); err != nil {
		return nil, fmt.Errorf("encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}
