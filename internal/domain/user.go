package domain

import (
	"fmt"
	"time"
)

// ClockTime is a time of day without a date, as stored in user settings.
type ClockTime struct {
	Hour   int `json:"hour" dynamodbav:"hour"`
	Minute int `json:"minute" dynamodbav:"minute"`
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Settings holds a user's notification preferences. NotificationsDay and
// NotificationsTime are pointers because a user may have enabled
// notifications without finishing configuration.
type Settings struct {
	Notifications     bool       `json:"notifications" dynamodbav:"notifications"`
	NotificationsDay  *Weekday   `json:"notifications_day,omitempty" dynamodbav:"notifications_day,omitempty"`
	NotificationsTime *ClockTime `json:"notifications_time,omitempty" dynamodbav:"notifications_time,omitempty"`
	Timezone          string     `json:"timezone,omitempty" dynamodbav:"timezone,omitempty"`
	Language          string     `json:"language,omitempty" dynamodbav:"language,omitempty"`
	LifeExpectancy    int        `json:"life_expectancy,omitempty" dynamodbav:"life_expectancy,omitempty"`
}

// Profile is a user profile with settings, as stored in the user repository.
type Profile struct {
	TelegramID int64     `json:"telegram_id" dynamodbav:"telegram_id"`
	FirstName  string    `json:"first_name,omitempty" dynamodbav:"first_name,omitempty"`
	Username   string    `json:"username,omitempty" dynamodbav:"username,omitempty"`
	BirthDate  time.Time `json:"birth_date,omitempty" dynamodbav:"birth_date,omitempty"`
	Settings   *Settings `json:"settings,omitempty" dynamodbav:"settings,omitempty"`
}

// DeriveTrigger builds the weekly notification trigger from a profile's
// settings. It returns false when no job should exist for the user: settings
// missing, notifications disabled, or day/time not yet configured.
func DeriveTrigger(p *Profile) (ScheduleTrigger, bool) {
	if p == nil || p.Settings == nil {
		return ScheduleTrigger{}, false
	}
	s := p.Settings
	if !s.Notifications {
		return ScheduleTrigger{}, false
	}
	if s.NotificationsDay == nil || s.NotificationsTime == nil {
		return ScheduleTrigger{}, false
	}

	return ScheduleTrigger{
		DayOfWeek: *s.NotificationsDay,
		Hour:      s.NotificationsTime.Hour,
		Minute:    s.NotificationsTime.Minute,
		Timezone:  s.Timezone,
	}, true
}
