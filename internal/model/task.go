package model

import "time"

// Recurrence frequencies. A recurring task carrying any other value
// (including the legacy "daily") evaluates with weekly semantics
// against its stored day set.
const (
	FrequencyWeekly        = "weekly"
	FrequencyEveryOtherDay = "everyOtherDay"
)

// Alert modes.
const (
	AlertModeVibration = "vibration"
	AlertModeSound     = "sound"
	AlertModeBoth      = "both"
)

// Task represents a single habit or one-off item in the planner.
//
// Exactly one of the descriptor fields carries meaning: Days for
// recurring weekly tasks, StartDate for everyOtherDay, Date for
// one-offs. The unused fields may still be stored for display.
type Task struct {
	ID             uint `gorm:"primaryKey"`
	UserID         uint `gorm:"index"`
	Text           string
	Recurring      bool     `gorm:"default:false"`
	Frequency      string   // weekly or everyOtherDay
	Days           []int    `gorm:"serializer:json"` // weekdays 0=Sunday..6=Saturday
	StartDate      string   // YYYY-MM-DD, anchors the everyOtherDay cadence
	Date           string   // YYYY-MM-DD, non-recurring tasks only
	CompletedDates []string `gorm:"serializer:json"` // set of YYYY-MM-DD strings
	Priority       int
	Category       string // optional, resolved against the user's category list
	AlertEnabled   bool   `gorm:"default:false"`
	AlertTime      string `gorm:"index"` // HH:mm, zero-padded
	AlertMode      string `gorm:"default:both"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasDay reports whether weekday (0=Sunday) is in the task's day set.
func (t Task) HasDay(weekday int) bool {
	for _, d := range t.Days {
		if d == weekday {
			return true
		}
	}
	return false
}

// CompletedOn reports whether the task was marked done on the given
// local calendar date.
func (t Task) CompletedOn(date string) bool {
	for _, d := range t.CompletedDates {
		if d == date {
			return true
		}
	}
	return false
}
