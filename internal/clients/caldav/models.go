package caldav

// Calendar is a calendar collection discovered on the server.
type Calendar struct {
	ID          string // Calendar path/URL
	DisplayName string
	URL         string
}
