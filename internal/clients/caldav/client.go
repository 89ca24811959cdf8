// Package caldav pushes saved events to an external CalDAV calendar so the
// user's phone calendar mirrors the planner.
package caldav

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/emersion/go-webdav/caldav"

	"hancal/internal/domain"
	"hancal/internal/ics"
)

// Client is a thin CalDAV client bound to one calendar collection.
type Client struct {
	baseURL      string
	username     string
	password     string
	calendarPath string
	client       *caldav.Client
}

func NewClient(baseURL, username, password, calendarPath string) *Client {
	return &Client{
		baseURL:      baseURL,
		username:     username,
		password:     password,
		calendarPath: calendarPath,
	}
}

// IsConfigured returns true if the client has credentials
func (c *Client) IsConfigured() bool {
	return c.baseURL != "" && c.username != "" && c.password != ""
}

// connect establishes connection to the CalDAV server
func (c *Client) connect() (*caldav.Client, error) {
	if c.client != nil {
		return c.client, nil
	}

	httpClient := &http.Client{
		Transport: &basicAuthTransport{
			username: c.username,
			password: c.password,
		},
		Timeout: 30 * time.Second,
	}

	client, err := caldav.NewClient(httpClient, c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to CalDAV: %w", err)
	}

	c.client = client
	return client, nil
}

// basicAuthTransport adds Basic Auth to HTTP requests
type basicAuthTransport struct {
	username string
	password string
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.SetBasicAuth(t.username, t.password)
	return http.DefaultTransport.RoundTrip(req)
}

// DiscoverCalendars returns all calendars for the user.
func (c *Client) DiscoverCalendars(ctx context.Context) ([]Calendar, error) {
	client, err := c.connect()
	if err != nil {
		return nil, err
	}

	principal, err := client.FindCurrentUserPrincipal(ctx)
	if err != nil {
		return nil, fmt.Errorf("find principal: %w", err)
	}

	homeSet, err := client.FindCalendarHomeSet(ctx, principal)
	if err != nil {
		return nil, fmt.Errorf("find home set: %w", err)
	}

	cals, err := client.FindCalendars(ctx, homeSet)
	if err != nil {
		return nil, fmt.Errorf("find calendars: %w", err)
	}

	result := make([]Calendar, 0, len(cals))
	for _, cal := range cals {
		result = append(result, Calendar{
			ID:          cal.Path,
			DisplayName: cal.Name,
			URL:         cal.Path,
		})
	}
	return result, nil
}

// PushEvent uploads a single event; PUT replaces, so updates reuse it.
func (c *Client) PushEvent(ctx context.Context, e domain.Event) error {
	client, err := c.connect()
	if err != nil {
		return err
	}
	if c.calendarPath == "" {
		return fmt.Errorf("calendar path not specified")
	}

	cal := ics.Calendar([]domain.Event{e})
	if _, err := client.PutCalendarObject(ctx, c.eventPath(e.ID), cal); err != nil {
		return fmt.Errorf("put event %s: %w", e.ID, err)
	}
	return nil
}

// PushAll uploads every event, reporting the first error after trying all.
func (c *Client) PushAll(ctx context.Context, events []domain.Event) (int, error) {
	var firstErr error
	pushed := 0
	for _, e := range events {
		if err := c.PushEvent(ctx, e); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		pushed++
	}
	return pushed, firstErr
}

// RemoveEvent deletes the event object for the given id.
func (c *Client) RemoveEvent(ctx context.Context, id string) error {
	client, err := c.connect()
	if err != nil {
		return err
	}
	if err := client.RemoveAll(ctx, c.eventPath(id)); err != nil {
		return fmt.Errorf("remove event %s: %w", id, err)
	}
	return nil
}

func (c *Client) eventPath(id string) string {
	path := c.calendarPath
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return path + id + ".ics"
}
