package domain

import "time"

// Notification message types.
const (
	MessageTypeWeeklySummary = "weekly_summary"
)

// NotificationPayload is transport-agnostic notification content. It can be
// delivered through any gateway (Telegram, delivery queue, mock).
type NotificationPayload struct {
	RecipientID int64          `json:"recipient_id"`
	MessageType string         `json:"message_type"`
	Title       string         `json:"title"`
	Body        string         `json:"body"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	ScheduledAt time.Time      `json:"scheduled_at"`
}
