package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/glowtrack/routine-engine/internal/core/domain"
)

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Create(ctx context.Context, profile *domain.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepo) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockProfileRepo) GetByAuthUserID(ctx context.Context, authUserID string) (*domain.UserProfile, error) {
	args := m.Called(ctx, authUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockProfileRepo) Update(ctx context.Context, profile *domain.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

type MockCompletionRepo struct {
	mock.Mock
}

func (m *MockCompletionRepo) Create(ctx context.Context, record *domain.CompletionRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockCompletionRepo) GetByID(ctx context.Context, id string) (*domain.CompletionRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompletionRecord), args.Error(1)
}

func (m *MockCompletionRepo) UpdateStatus(ctx context.Context, id, status string, completedAt *time.Time) error {
	args := m.Called(ctx, id, status, completedAt)
	return args.Error(0)
}

func (m *MockCompletionRepo) ListByProfile(ctx context.Context, profileID, from, to string) ([]*domain.CompletionRecord, error) {
	args := m.Called(ctx, profileID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CompletionRecord), args.Error(1)
}

func (m *MockCompletionRepo) MarkMissedBefore(ctx context.Context, cutoffDate string) (int64, error) {
	args := m.Called(ctx, cutoffDate)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCompletionRepo) GetDailyProgress(ctx context.Context, profileID, date string) (domain.ProgressCount, error) {
	args := m.Called(ctx, profileID, date)
	return args.Get(0).(domain.ProgressCount), args.Error(1)
}

func (m *MockCompletionRepo) GetCompletionsByDay(ctx context.Context, profileID, upTo string) ([]domain.DayCompletion, error) {
	args := m.Called(ctx, profileID, upTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DayCompletion), args.Error(1)
}

func (m *MockCompletionRepo) GetRangeProgress(ctx context.Context, profileID, start, end string) (domain.ProgressCount, error) {
	args := m.Called(ctx, profileID, start, end)
	return args.Get(0).(domain.ProgressCount), args.Error(1)
}

type MockCoachRepo struct {
	mock.Mock
}

func (m *MockCoachRepo) Create(ctx context.Context, coach *domain.Coach) error {
	args := m.Called(ctx, coach)
	return args.Error(0)
}

func (m *MockCoachRepo) GetByEmail(ctx context.Context, email string) (*domain.Coach, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coach), args.Error(1)
}

func (m *MockCoachRepo) GetByID(ctx context.Context, id string) (*domain.Coach, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coach), args.Error(1)
}

func fixedClock(instant time.Time) func() time.Time {
	return func() time.Time { return instant }
}
