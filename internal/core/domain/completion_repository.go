package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrCompletionNotFound = errors.New("completion record not found")
	ErrCompletionConflict = errors.New("completion record already scheduled for that slot")
)

type CompletionRepository interface {
	// Create persists a newly scheduled occurrence. A duplicate
	// (step, date, time-of-day) combination returns ErrCompletionConflict.
	Create(ctx context.Context, record *CompletionRecord) error

	// GetByID retrieves a single record.
	GetByID(ctx context.Context, id string) (*CompletionRecord, error)

	// UpdateStatus transitions a record's status, setting completed_at when
	// the new status is a completed one.
	UpdateStatus(ctx context.Context, id, status string, completedAt *time.Time) error

	// ListByProfile retrieves records for a profile over an inclusive
	// scheduled-date range, newest first.
	ListByProfile(ctx context.Context, profileID, from, to string) ([]*CompletionRecord, error)

	// MarkMissedBefore flips every pending record scheduled strictly before
	// the cutoff date to missed and reports how many rows changed.
	MarkMissedBefore(ctx context.Context, cutoffDate string) (int64, error)

	// GetDailyProgress counts scheduled and completed records for a profile
	// on one calendar date.
	GetDailyProgress(ctx context.Context, profileID, date string) (ProgressCount, error)

	// GetCompletionsByDay groups a profile's records by scheduled date for
	// every date <= upTo, newest date first. Feeds the streak walk.
	GetCompletionsByDay(ctx context.Context, profileID, upTo string) ([]DayCompletion, error)

	// GetRangeProgress counts scheduled and completed records over an
	// inclusive date range.
	GetRangeProgress(ctx context.Context, profileID, start, end string) (ProgressCount, error)
}
