package domain

// RepeatType enumerates recurrence kinds carried on an event. The server
// stores and echoes repeat settings; it never expands occurrences.
type RepeatType string

const (
	RepeatNone    RepeatType = "none"
	RepeatDaily   RepeatType = "daily"
	RepeatWeekly  RepeatType = "weekly"
	RepeatMonthly RepeatType = "monthly"
	RepeatYearly  RepeatType = "yearly"
)

// Repeat describes the recurrence settings of an event.
type Repeat struct {
	Type     RepeatType `json:"type"`
	Interval int        `json:"interval"`
	EndDate  string     `json:"endDate,omitempty"` // YYYY-MM-DD
}

// Event is a time-boxed calendar entry. Date is YYYY-MM-DD, StartTime and
// EndTime are HH:MM wall-clock times on that date. ID is empty on drafts
// that have not been saved yet.
type Event struct {
	ID               string `json:"id,omitempty"`
	Title            string `json:"title"`
	Date             string `json:"date"`
	StartTime        string `json:"startTime"`
	EndTime          string `json:"endTime"`
	Description      string `json:"description"`
	Location         string `json:"location"`
	Category         string `json:"category"`
	Repeat           Repeat `json:"repeat"`
	NotificationTime int    `json:"notificationTime"` // minutes before start
}

// View is the calendar display granularity.
type View string

const (
	ViewWeek  View = "week"
	ViewMonth View = "month"
)

// ParseView maps a query string value onto a View.
func ParseView(s string) (View, bool) {
	switch View(s) {
	case ViewWeek:
		return ViewWeek, true
	case ViewMonth:
		return ViewMonth, true
	}
	return "", false
}
