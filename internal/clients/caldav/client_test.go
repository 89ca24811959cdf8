package caldav

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hancal/internal/domain"
)

type recordedRequest struct {
	method string
	path   string
	auth   bool
	body   string
}

func newStubServer(t *testing.T) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	seen := &[]recordedRequest{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_, _, ok := r.BasicAuth()
		*seen = append(*seen, recordedRequest{r.Method, r.URL.Path, ok, string(body)})
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(ts.Close)
	return ts, seen
}

func TestIsConfigured(t *testing.T) {
	assert.False(t, NewClient("", "", "", "").IsConfigured())
	assert.False(t, NewClient("https://dav.example.com", "user", "", "/cal/").IsConfigured())
	assert.True(t, NewClient("https://dav.example.com", "user", "pass", "/cal/").IsConfigured())
}

func TestRemoveEventDeletesObject(t *testing.T) {
	ts, seen := newStubServer(t)
	c := NewClient(ts.URL, "user", "pass", "/calendars/personal")

	require.NoError(t, c.RemoveEvent(context.Background(), "abc-123"))

	require.Len(t, *seen, 1)
	got := (*seen)[0]
	assert.Equal(t, http.MethodDelete, got.method)
	assert.Equal(t, "/calendars/personal/abc-123.ics", got.path)
	assert.True(t, got.auth, "request carries basic auth")
}

func TestPushEventPutsICS(t *testing.T) {
	ts, seen := newStubServer(t)
	c := NewClient(ts.URL, "user", "pass", "/calendars/personal/")

	e := domain.Event{
		ID:        "evt-1",
		Title:     "동기화 회의",
		Date:      "2024-11-06",
		StartTime: "09:00",
		EndTime:   "10:00",
	}
	require.NoError(t, c.PushEvent(context.Background(), e))

	require.Len(t, *seen, 1)
	got := (*seen)[0]
	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, "/calendars/personal/evt-1.ics", got.path)
	assert.Contains(t, got.body, "BEGIN:VEVENT")
	assert.Contains(t, got.body, "동기화 회의")
}

func TestPushEventRequiresCalendarPath(t *testing.T) {
	ts, _ := newStubServer(t)
	c := NewClient(ts.URL, "user", "pass", "")

	err := c.PushEvent(context.Background(), domain.Event{ID: "evt-1"})
	require.Error(t, err)
}
