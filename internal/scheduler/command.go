package scheduler

import (
	"encoding/json"
	"fmt"

	"lifeweeks/internal/domain"
)

// CommandType identifies the operation a Command asks the worker to perform.
type CommandType string

const (
	CommandScheduleJob   CommandType = "schedule_job"
	CommandRemoveJob     CommandType = "remove_job"
	CommandRescheduleJob CommandType = "reschedule_job"
	CommandGetJob        CommandType = "get_job"
	CommandGetAllJobs    CommandType = "get_all_jobs"
	CommandPause         CommandType = "pause"
	CommandResume        CommandType = "resume"
	CommandShutdown      CommandType = "shutdown"
	CommandHealthCheck   CommandType = "health_check"
)

// Command is a request sent to the scheduler worker. ID correlates the
// eventual Response; Payload carries only JSON-safe primitive values.
type Command struct {
	ID      string         `json:"id"`
	Type    CommandType    `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Response is the worker's answer to a single Command. Every command except
// shutdown produces exactly one Response.
type Response struct {
	CommandID string          `json:"command_id"`
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// NewResponse builds a plain success/failure response.
func NewResponse(commandID string, success bool) Response {
	return Response{CommandID: commandID, Success: success}
}

// NewErrorResponse builds a failure response carrying an error message.
func NewErrorResponse(commandID string, err error) Response {
	return Response{CommandID: commandID, Success: false, Error: err.Error()}
}

// NewDataResponse builds a success response with a JSON-encoded body.
func NewDataResponse(commandID string, data any) (Response, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return Response{}, fmt.Errorf("failed to marshal response data: %w", err)
	}
	return Response{CommandID: commandID, Success: true, Data: body}, nil
}

// DecodeData unmarshals the response body into v.
func (r Response) DecodeData(v any) error {
	if len(r.Data) == 0 {
		return fmt.Errorf("response has no data")
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

// Payload field keys shared by client and worker.
const (
	payloadKeyJobID   = "job_id"
	payloadKeyTrigger = "trigger"
	payloadKeyJobType = "job_type"
	payloadKeyUserID  = "user_id"
)

// payloadString extracts a required string field.
func payloadString(payload map[string]any, key string) (string, error) {
	raw, ok := payload[key]
	if !ok {
		return "", fmt.Errorf("payload missing %q", key)
	}
	value, ok := raw.(string)
	if !ok || value == "" {
		return "", fmt.Errorf("payload field %q is not a string", key)
	}
	return value, nil
}

// payloadInt64 extracts a required integer field. JSON decoding widens
// numbers to float64, so both native ints and floats are accepted.
func payloadInt64(payload map[string]any, key string) (int64, error) {
	raw, ok := payload[key]
	if !ok {
		return 0, fmt.Errorf("payload missing %q", key)
	}
	switch v := raw.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case json.Number:
		return v.Int64()
	default:
		return 0, fmt.Errorf("payload field %q is not a number", key)
	}
}

// payloadTrigger extracts and validates a nested ScheduleTrigger.
func payloadTrigger(payload map[string]any, key string) (domain.ScheduleTrigger, error) {
	raw, ok := payload[key]
	if !ok {
		return domain.ScheduleTrigger{}, fmt.Errorf("payload missing %q", key)
	}

	// The nested value arrives as a generic map after the queue round trip;
	// re-marshaling is the lossless way back to the struct.
	body, err := json.Marshal(raw)
	if err != nil {
		return domain.ScheduleTrigger{}, fmt.Errorf("payload field %q is not encodable: %w", key, err)
	}

	var trigger domain.ScheduleTrigger
	if err := json.Unmarshal(body, &trigger); err != nil {
		return domain.ScheduleTrigger{}, fmt.Errorf("payload field %q is not a trigger: %w", key, err)
	}
	if err := trigger.Validate(); err != nil {
		return domain.ScheduleTrigger{}, fmt.Errorf("invalid trigger in payload: %w", err)
	}
	return trigger, nil
}
