package domain

import (
	"fmt"
	"time"
)

// Weekday numbers days Monday=0 through Sunday=6, matching how users pick a
// notification day in their settings.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// Valid reports whether the weekday is inside the Monday..Sunday range.
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

// ScheduleTrigger describes a weekly recurring schedule. It is a plain value
// type compared with == and carried across the scheduler boundary as JSON.
type ScheduleTrigger struct {
	DayOfWeek Weekday `json:"day_of_week"`
	Hour      int     `json:"hour"`
	Minute    int     `json:"minute"`
	Timezone  string  `json:"timezone"`
}

// Validate checks the clock fields. Day-of-week is deliberately not range
// checked here: the scheduler adapter maps out-of-range days to Monday as a
// documented fallback. Timezone is validated lazily by the adapter; an empty
// string means UTC.
func (t ScheduleTrigger) Validate() error {
	if t.Hour < 0 || t.Hour > 23 {
		return fmt.Errorf("hour out of range: %d", t.Hour)
	}
	if t.Minute < 0 || t.Minute > 59 {
		return fmt.Errorf("minute out of range: %d", t.Minute)
	}
	return nil
}

func (t ScheduleTrigger) String() string {
	return fmt.Sprintf("%s %02d:%02d %s", t.DayOfWeek, t.Hour, t.Minute, t.Location())
}

// Location returns the trigger timezone, defaulting to UTC when unset.
func (t ScheduleTrigger) Location() string {
	if t.Timezone == "" {
		return "UTC"
	}
	return t.Timezone
}

// JobInfo is the observable state of a scheduled job as reported by the
// scheduler adapter.
type JobInfo struct {
	JobID        string           `json:"job_id"`
	Trigger      *ScheduleTrigger `json:"trigger,omitempty"`
	NextRunTime  *time.Time       `json:"next_run_time,omitempty"`
	CallbackName string           `json:"callback_name"`
	Args         []any            `json:"args,omitempty"`
	Kwargs       map[string]any   `json:"kwargs,omitempty"`
}

// NotificationJobID derives the job id for a user's weekly notification.
// The id is a pure function of the telegram id, so a user can never own more
// than one notification job.
func NotificationJobID(telegramID int64) string {
	return fmt.Sprintf("weekly_notification_user_%d", telegramID)
}
