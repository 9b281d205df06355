package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/glowtrack/routine-engine/internal/core/domain"
)

// A step may still be completed as "late" for one full day after its
// scheduled local day has passed. Past that, only the missed worker
// touches it.
const lateGracePeriod = 24 * time.Hour

type CompletionService struct {
	profiles    domain.UserProfileRepository
	completions domain.CompletionRepository
	now         Clock
}

func NewCompletionService(profiles domain.UserProfileRepository, completions domain.CompletionRepository, clock Clock) *CompletionService {
	if clock == nil {
		clock = time.Now
	}
	return &CompletionService{
		profiles:    profiles,
		completions: completions,
		now:         clock,
	}
}

type ScheduleStepInput struct {
	AuthUserID    string
	RoutineStepID string
	ScheduledDate string
	TimeOfDay     string
}

// ScheduleStep creates the pending occurrence of a routine step for one
// calendar date and slot. Exactly one record may exist per
// (step, date, slot); a duplicate surfaces as ErrCompletionConflict.
func (s *CompletionService) ScheduleStep(ctx context.Context, input ScheduleStepInput) (*domain.CompletionRecord, error) {
	profile, err := s.profiles.GetByAuthUserID(ctx, input.AuthUserID)
	if err != nil {
		return nil, err
	}

	record := domain.NewCompletionRecord(profile.ID, input.RoutineStepID, input.ScheduledDate, input.TimeOfDay)
	record.ID = uuid.NewString()

	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCompletion, err)
	}

	if err := s.completions.Create(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

type CompleteStepInput struct {
	AuthUserID string
	RecordID   string
}

// CompleteStep transitions a pending record to on-time or late. On-time
// while the scheduled day is still the current day in the subscriber's
// timezone, late within the grace period after it, rejected beyond that.
func (s *CompletionService) CompleteStep(ctx context.Context, input CompleteStepInput) (*domain.CompletionRecord, error) {
	profile, err := s.profiles.GetByAuthUserID(ctx, input.AuthUserID)
	if err != nil {
		return nil, err
	}

	record, err := s.completions.GetByID(ctx, input.RecordID)
	if err != nil {
		return nil, err
	}

	if record.UserProfileID != profile.ID {
		return nil, domain.ErrCompletionNotFound
	}
	if record.Status != domain.StatusPending {
		return nil, domain.ErrCompletionResolved
	}

	status, err := s.resolveStatus(record.ScheduledDate, profile.Location())
	if err != nil {
		return nil, err
	}

	completedAt := s.now().UTC()
	if err := s.completions.UpdateStatus(ctx, record.ID, status, &completedAt); err != nil {
		return nil, err
	}

	record.Status = status
	record.CompletedAt = &completedAt
	record.UpdatedAt = completedAt

	return record, nil
}

func (s *CompletionService) resolveStatus(scheduledDate string, loc *time.Location) (string, error) {
	localNow := s.now().In(loc)
	localToday := localNow.Format(domain.DateLayout)

	// ISO dates compare lexicographically; completing early still counts
	// as on-time.
	if localToday <= scheduledDate {
		return domain.StatusOnTime, nil
	}

	scheduled, err := time.ParseInLocation(domain.DateLayout, scheduledDate, loc)
	if err != nil {
		return "", fmt.Errorf("%w: bad scheduled_date %q", domain.ErrInvalidCompletion, scheduledDate)
	}

	deadline := scheduled.AddDate(0, 0, 1).Add(lateGracePeriod)
	if localNow.Before(deadline) {
		return domain.StatusLate, nil
	}

	return "", domain.ErrCompletionWindowClosed
}

// ListByProfile returns a subscriber's raw completion records over an
// inclusive scheduled-date range, newest first. Admin-dashboard read.
func (s *CompletionService) ListByProfile(ctx context.Context, profileID, from, to string) ([]*domain.CompletionRecord, error) {
	if _, err := time.Parse(domain.DateLayout, from); err != nil {
		return nil, fmt.Errorf("%w: from must be YYYY-MM-DD", domain.ErrInvalidCompletion)
	}
	if _, err := time.Parse(domain.DateLayout, to); err != nil {
		return nil, fmt.Errorf("%w: to must be YYYY-MM-DD", domain.ErrInvalidCompletion)
	}
	if from > to {
		return nil, fmt.Errorf("%w: from cannot be after to", domain.ErrInvalidCompletion)
	}

	if _, err := s.profiles.GetByID(ctx, profileID); err != nil {
		return nil, err
	}

	return s.completions.ListByProfile(ctx, profileID, from, to)
}
