package calendar

// TimeOrderResult carries the per-field error messages for an event form's
// start/end times. Both fields are empty when the pair is acceptable.
type TimeOrderResult struct {
	StartTimeError string `json:"startTimeError,omitempty"`
	EndTimeError   string `json:"endTimeError,omitempty"`
}

// Messages surfaced on the event form; the client renders them as-is.
const (
	msgStartNotBeforeEnd = "시작 시간은 종료 시간보다 빨라야 합니다."
	msgEndNotAfterStart  = "종료 시간은 시작 시간보다 늦어야 합니다."
)

// ValidateTimeOrder checks that start is strictly earlier than end. Empty
// or unparsable inputs are not an error here; required-field checks belong
// to the form.
func ValidateTimeOrder(start, end string) TimeOrderResult {
	if start == "" || end == "" {
		return TimeOrderResult{}
	}

	// Anchor both on the same arbitrary date to compare wall-clock order.
	startAt := ParseDateTime("2000-01-01", start)
	endAt := ParseDateTime("2000-01-01", end)
	if startAt.IsZero() || endAt.IsZero() {
		return TimeOrderResult{}
	}

	if !startAt.Before(endAt) {
		return TimeOrderResult{
			StartTimeError: msgStartNotBeforeEnd,
			EndTimeError:   msgEndNotAfterStart,
		}
	}
	return TimeOrderResult{}
}

// Valid reports whether the result carries no errors.
func (r TimeOrderResult) Valid() bool {
	return r.StartTimeError == "" && r.EndTimeError == ""
}
