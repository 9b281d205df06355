package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/glowtrack/routine-engine/internal/core/domain"
)

// ErrStatsFailed replaces any unexpected repository failure. The underlying
// error is logged server-side and never reaches the caller.
var ErrStatsFailed = errors.New("failed to fetch user stats")

// Clock supplies the current instant. Injected so tests can pin exact
// day-boundary and DST instants; production wires it to time.Now.
type Clock func() time.Time

type StatsService struct {
	profiles    domain.UserProfileRepository
	completions domain.CompletionRepository
	now         Clock
}

func NewStatsService(profiles domain.UserProfileRepository, completions domain.CompletionRepository, clock Clock) *StatsService {
	if clock == nil {
		clock = time.Now
	}
	return &StatsService{
		profiles:    profiles,
		completions: completions,
		now:         clock,
	}
}

// GetUserStats computes today's progress, the current streak and weekly
// compliance for the subscriber behind an external auth id. The three
// aggregate reads are independent and run concurrently; if any one fails
// the whole computation fails, there is no partial result.
func (s *StatsService) GetUserStats(ctx context.Context, authUserID string) (*domain.UserStats, error) {
	profile, err := s.profiles.GetByAuthUserID(ctx, authUserID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
		log.Printf("[STATS] profile lookup failed for auth user %s: %v", authUserID, err)
		return nil, ErrStatsFailed
	}

	todayDate := s.now().In(profile.Location()).Format(domain.DateLayout)
	weekStart := weekStartDate(todayDate)

	var (
		today  domain.ProgressCount
		groups []domain.DayCompletion
		week   domain.ProgressCount

		todayErr, streakErr, weekErr error
	)

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		today, todayErr = s.completions.GetDailyProgress(ctx, profile.ID, todayDate)
	}()
	go func() {
		defer wg.Done()
		groups, streakErr = s.completions.GetCompletionsByDay(ctx, profile.ID, todayDate)
	}()
	go func() {
		defer wg.Done()
		week, weekErr = s.completions.GetRangeProgress(ctx, profile.ID, weekStart, todayDate)
	}()

	wg.Wait()

	for _, qErr := range []error{todayErr, streakErr, weekErr} {
		if qErr != nil {
			log.Printf("[STATS] aggregate query failed for profile %s: %v", profile.ID, qErr)
			return nil, ErrStatsFailed
		}
	}

	return &domain.UserStats{
		TodayProgress: domain.TodayProgress{
			Completed:  today.Completed,
			Total:      today.Total,
			Percentage: domain.Percentage(today.Completed, today.Total),
		},
		CurrentStreak: domain.CurrentStreak{
			Days: domain.StreakDays(groups, todayDate),
		},
		WeeklyCompliance: domain.WeeklyCompliance{
			Percentage: domain.Percentage(week.Completed, week.Total),
			Completed:  week.Completed,
			Total:      week.Total,
		},
	}, nil
}

// weekStartDate returns the ISO-week Monday on or before the given date.
// The date string is already timezone-resolved and therefore naive; the
// re-parse is pinned to midday UTC so the back-walk arithmetic cannot be
// shifted a day by DST or offset reinterpretation.
func weekStartDate(date string) string {
	t, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return date
	}

	t = t.Add(12 * time.Hour)
	back := (int(t.Weekday()) + 6) % 7

	return t.AddDate(0, 0, -back).Format(domain.DateLayout)
}
