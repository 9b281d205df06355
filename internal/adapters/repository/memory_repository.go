package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/glowtrack/routine-engine/internal/core/domain"
)

// In-memory implementations backing handler tests and local runs without a
// database. Aggregates mirror the SQL queries exactly.

type InMemoryProfileRepository struct {
	store map[string]*domain.UserProfile

	mu sync.RWMutex
}

func NewInMemoryProfileRepository() *InMemoryProfileRepository {
	return &InMemoryProfileRepository{
		store: make(map[string]*domain.UserProfile),
	}
}

func (r *InMemoryProfileRepository) Create(ctx context.Context, profile *domain.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.store {
		if p.AuthUserID == profile.AuthUserID {
			return domain.ErrProfileAlreadyExists
		}
	}

	copied := *profile
	r.store[profile.ID] = &copied
	return nil
}

func (r *InMemoryProfileRepository) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.store[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	copied := *profile
	return &copied, nil
}

func (r *InMemoryProfileRepository) GetByAuthUserID(ctx context.Context, authUserID string) (*domain.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.store {
		if p.AuthUserID == authUserID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (r *InMemoryProfileRepository) Update(ctx context.Context, profile *domain.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[profile.ID]; !ok {
		return domain.ErrProfileNotFound
	}

	copied := *profile
	r.store[profile.ID] = &copied
	return nil
}

type InMemoryCompletionRepository struct {
	store map[string]*domain.CompletionRecord

	mu sync.RWMutex
}

func NewInMemoryCompletionRepository() *InMemoryCompletionRepository {
	return &InMemoryCompletionRepository{
		store: make(map[string]*domain.CompletionRecord),
	}
}

func (r *InMemoryCompletionRepository) Create(ctx context.Context, record *domain.CompletionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range r.store {
		if rec.UserProfileID == record.UserProfileID &&
			rec.RoutineStepID == record.RoutineStepID &&
			rec.ScheduledDate == record.ScheduledDate &&
			rec.TimeOfDay == record.TimeOfDay {
			return domain.ErrCompletionConflict
		}
	}

	copied := *record
	r.store[record.ID] = &copied
	return nil
}

func (r *InMemoryCompletionRepository) GetByID(ctx context.Context, id string) (*domain.CompletionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.store[id]
	if !ok {
		return nil, domain.ErrCompletionNotFound
	}
	copied := *record
	return &copied, nil
}

func (r *InMemoryCompletionRepository) UpdateStatus(ctx context.Context, id, status string, completedAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.store[id]
	if !ok {
		return domain.ErrCompletionNotFound
	}

	record.Status = status
	record.CompletedAt = completedAt
	record.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *InMemoryCompletionRepository) ListByProfile(ctx context.Context, profileID, from, to string) ([]*domain.CompletionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []*domain.CompletionRecord
	for _, rec := range r.store {
		if rec.UserProfileID == profileID && rec.ScheduledDate >= from && rec.ScheduledDate <= to {
			copied := *rec
			records = append(records, &copied)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].ScheduledDate != records[j].ScheduledDate {
			return records[i].ScheduledDate > records[j].ScheduledDate
		}
		return records[i].TimeOfDay < records[j].TimeOfDay
	})

	return records, nil
}

func (r *InMemoryCompletionRepository) MarkMissedBefore(ctx context.Context, cutoffDate string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	now := time.Now().UTC()
	for _, rec := range r.store {
		if rec.Status == domain.StatusPending && rec.ScheduledDate < cutoffDate {
			rec.Status = domain.StatusMissed
			rec.UpdatedAt = now
			n++
		}
	}
	return n, nil
}

func (r *InMemoryCompletionRepository) GetDailyProgress(ctx context.Context, profileID, date string) (domain.ProgressCount, error) {
	return r.GetRangeProgress(ctx, profileID, date, date)
}

func (r *InMemoryCompletionRepository) GetCompletionsByDay(ctx context.Context, profileID, upTo string) ([]domain.DayCompletion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byDate := make(map[string]*domain.DayCompletion)
	for _, rec := range r.store {
		if rec.UserProfileID != profileID || rec.ScheduledDate > upTo {
			continue
		}

		group, ok := byDate[rec.ScheduledDate]
		if !ok {
			group = &domain.DayCompletion{Date: rec.ScheduledDate}
			byDate[rec.ScheduledDate] = group
		}
		group.Total++
		if domain.IsCompleted(rec.Status) {
			group.Completed++
		}
	}

	groups := make([]domain.DayCompletion, 0, len(byDate))
	for _, g := range byDate {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Date > groups[j].Date
	})

	return groups, nil
}

func (r *InMemoryCompletionRepository) GetRangeProgress(ctx context.Context, profileID, start, end string) (domain.ProgressCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count domain.ProgressCount
	for _, rec := range r.store {
		if rec.UserProfileID != profileID || rec.ScheduledDate < start || rec.ScheduledDate > end {
			continue
		}
		count.Total++
		if domain.IsCompleted(rec.Status) {
			count.Completed++
		}
	}
	return count, nil
}

type InMemoryCoachRepository struct {
	store map[string]*domain.Coach

	mu sync.RWMutex
}

func NewInMemoryCoachRepository() *InMemoryCoachRepository {
	return &InMemoryCoachRepository{
		store: make(map[string]*domain.Coach),
	}
}

func (r *InMemoryCoachRepository) Create(ctx context.Context, coach *domain.Coach) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.store {
		if c.Email == coach.Email {
			return domain.ErrEmailAlreadyExists
		}
	}

	copied := *coach
	r.store[coach.ID] = &copied
	return nil
}

func (r *InMemoryCoachRepository) GetByEmail(ctx context.Context, email string) (*domain.Coach, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.store {
		if c.Email == email {
			copied := *c
			return &copied, nil
		}
	}
	return nil, domain.ErrCoachNotFound
}

func (r *InMemoryCoachRepository) GetByID(ctx context.Context, id string) (*domain.Coach, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	coach, ok := r.store[id]
	if !ok {
		return nil, domain.ErrCoachNotFound
	}
	copied := *coach
	return &copied, nil
}
