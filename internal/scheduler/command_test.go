package scheduler

import (
	"encoding/json"
	"testing"

	"lifeweeks/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadInt64AcceptsJSONNumbers(t *testing.T) {
	// After a queue round trip JSON numbers arrive as float64; before the
	// trip they are native ints. Both must decode.
	tests := []struct {
		name    string
		payload map[string]any
		want    int64
		wantErr bool
	}{
		{"int64", map[string]any{"user_id": int64(42)}, 42, false},
		{"int", map[string]any{"user_id": 42}, 42, false},
		{"float64", map[string]any{"user_id": float64(42)}, 42, false},
		{"json.Number", map[string]any{"user_id": json.Number("42")}, 42, false},
		{"string", map[string]any{"user_id": "42"}, 0, true},
		{"missing", map[string]any{}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := payloadInt64(tt.payload, "user_id")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPayloadTrigger(t *testing.T) {
	t.Run("decodes a round-tripped trigger map", func(t *testing.T) {
		payload := map[string]any{
			"trigger": map[string]any{
				"day_of_week": float64(5),
				"hour":        float64(18),
				"minute":      float64(30),
				"timezone":    "Asia/Tokyo",
			},
		}
		trigger, err := payloadTrigger(payload, "trigger")
		require.NoError(t, err)
		assert.Equal(t, domain.Saturday, trigger.DayOfWeek)
		assert.Equal(t, 18, trigger.Hour)
		assert.Equal(t, 30, trigger.Minute)
		assert.Equal(t, "Asia/Tokyo", trigger.Timezone)
	})

	t.Run("decodes a native trigger struct", func(t *testing.T) {
		payload := map[string]any{
			"trigger": domain.ScheduleTrigger{DayOfWeek: domain.Monday, Hour: 9},
		}
		trigger, err := payloadTrigger(payload, "trigger")
		require.NoError(t, err)
		assert.Equal(t, domain.Monday, trigger.DayOfWeek)
	})

	t.Run("rejects invalid clock fields", func(t *testing.T) {
		payload := map[string]any{
			"trigger": map[string]any{"hour": float64(99)},
		}
		_, err := payloadTrigger(payload, "trigger")
		assert.Error(t, err)
	})

	t.Run("missing key fails", func(t *testing.T) {
		_, err := payloadTrigger(map[string]any{}, "trigger")
		assert.Error(t, err)
	})
}

func TestResponseDataRoundTrip(t *testing.T) {
	info := domain.JobInfo{JobID: "job-1", CallbackName: "cb"}
	response, err := NewDataResponse("cmd-1", info)
	require.NoError(t, err)
	assert.True(t, response.Success)

	var decoded domain.JobInfo
	require.NoError(t, response.DecodeData(&decoded))
	assert.Equal(t, info.JobID, decoded.JobID)

	empty := NewResponse("cmd-2", true)
	assert.Error(t, empty.DecodeData(&decoded))
}
