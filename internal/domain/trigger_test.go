package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleTriggerValidate(t *testing.T) {
	tests := []struct {
		name    string
		trigger ScheduleTrigger
		wantErr bool
	}{
		{"valid", ScheduleTrigger{DayOfWeek: Friday, Hour: 9, Minute: 30}, false},
		{"midnight boundary", ScheduleTrigger{Hour: 0, Minute: 0}, false},
		{"last minute of day", ScheduleTrigger{Hour: 23, Minute: 59}, false},
		{"hour too high", ScheduleTrigger{Hour: 24}, true},
		{"negative hour", ScheduleTrigger{Hour: -1}, true},
		{"minute too high", ScheduleTrigger{Minute: 60}, true},
		// Out-of-range days pass validation; the scheduler adapter maps them
		// to Monday rather than rejecting the schedule.
		{"out of range day", ScheduleTrigger{DayOfWeek: 9, Hour: 9}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.trigger.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScheduleTriggerLocation(t *testing.T) {
	assert.Equal(t, "UTC", ScheduleTrigger{}.Location())
	assert.Equal(t, "Asia/Tokyo", ScheduleTrigger{Timezone: "Asia/Tokyo"}.Location())
}

func TestScheduleTriggerJSONRoundTrip(t *testing.T) {
	original := ScheduleTrigger{DayOfWeek: Sunday, Hour: 18, Minute: 45, Timezone: "Europe/Berlin"}

	body, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded ScheduleTrigger
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, original, decoded)
}

func TestWeekdayString(t *testing.T) {
	assert.Equal(t, "monday", Monday.String())
	assert.Equal(t, "sunday", Sunday.String())
	assert.Equal(t, "weekday(7)", Weekday(7).String())
	assert.False(t, Weekday(7).Valid())
	assert.True(t, Thursday.Valid())
}
