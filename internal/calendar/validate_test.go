package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTimeOrder(t *testing.T) {
	invalid := TimeOrderResult{
		StartTimeError: "시작 시간은 종료 시간보다 빨라야 합니다.",
		EndTimeError:   "종료 시간은 시작 시간보다 늦어야 합니다.",
	}

	assert.Equal(t, invalid, ValidateTimeOrder("09:00", "08:00"))
	assert.Equal(t, invalid, ValidateTimeOrder("09:00", "09:00"))

	assert.Equal(t, TimeOrderResult{}, ValidateTimeOrder("09:00", "10:00"))
	assert.Equal(t, TimeOrderResult{}, ValidateTimeOrder("", "10:00"))
	assert.Equal(t, TimeOrderResult{}, ValidateTimeOrder("09:00", ""))
	assert.Equal(t, TimeOrderResult{}, ValidateTimeOrder("", ""))

	assert.True(t, ValidateTimeOrder("09:00", "10:00").Valid())
	assert.False(t, ValidateTimeOrder("10:00", "09:00").Valid())
}
