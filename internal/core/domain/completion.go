package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidCompletion      = errors.New("invalid completion record data")
	ErrCompletionResolved     = errors.New("completion record already resolved")
	ErrCompletionWindowClosed = errors.New("completion window has closed")
)

// Statuses a routine-step occurrence can be in. A record is created as
// pending and transitions exactly once, either when the subscriber acts
// or when the missed worker sweeps it past its grace period.
const (
	StatusPending = "pending"
	StatusOnTime  = "on-time"
	StatusLate    = "late"
	StatusMissed  = "missed"
)

const (
	TimeOfDayMorning = "morning"
	TimeOfDayEvening = "evening"
)

// DateLayout is the wire and storage format for scheduled dates. Scheduled
// dates carry no time component: they are already normalized to the
// subscriber's local calendar day.
const DateLayout = "2006-01-02"

type CompletionRecord struct {
	ID            string `json:"id" db:"id"`
	UserProfileID string `json:"user_profile_id" db:"user_profile_id"`
	RoutineStepID string `json:"routine_step_id" db:"routine_step_id"`

	ScheduledDate string     `json:"scheduled_date" db:"scheduled_date"`
	TimeOfDay     string     `json:"time_of_day" db:"time_of_day"`
	Status        string     `json:"status" db:"status"`
	CompletedAt   *time.Time `json:"completed_at,omitempty" db:"completed_at"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func NewCompletionRecord(profileID, stepID, scheduledDate, timeOfDay string) *CompletionRecord {
	now := time.Now().UTC()

	return &CompletionRecord{
		UserProfileID: profileID,
		RoutineStepID: stepID,
		ScheduledDate: scheduledDate,
		TimeOfDay:     timeOfDay,
		Status:        StatusPending,

		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (r *CompletionRecord) Validate() error {
	if strings.TrimSpace(r.UserProfileID) == "" {
		return errors.New("user_profile_id is required")
	}
	if strings.TrimSpace(r.RoutineStepID) == "" {
		return errors.New("routine_step_id is required")
	}
	if _, err := time.Parse(DateLayout, r.ScheduledDate); err != nil {
		return errors.New("scheduled_date must be YYYY-MM-DD")
	}
	if r.TimeOfDay != TimeOfDayMorning && r.TimeOfDay != TimeOfDayEvening {
		return errors.New("time_of_day must be morning or evening")
	}
	if !IsValidStatus(r.Status) {
		return errors.New("unknown status")
	}
	return nil
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusOnTime, StatusLate, StatusMissed:
		return true
	}
	return false
}

// IsCompleted reports whether a status counts toward compliance numbers.
// Only on-time and late do; pending and missed never, even when a
// completed_at timestamp is present on the row.
func IsCompleted(status string) bool {
	return status == StatusOnTime || status == StatusLate
}
