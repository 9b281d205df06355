package domain

import (
	"math"
	"time"
)

// UserStats is the payload served to the consumer app. Computed fresh on
// every request, never persisted.
type UserStats struct {
	TodayProgress    TodayProgress    `json:"todayProgress"`
	CurrentStreak    CurrentStreak    `json:"currentStreak"`
	WeeklyCompliance WeeklyCompliance `json:"weeklyCompliance"`
}

type TodayProgress struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

type CurrentStreak struct {
	Days int `json:"days"`
}

type WeeklyCompliance struct {
	Percentage int `json:"percentage"`
	Completed  int `json:"completed"`
	Total      int `json:"total"`
}

// ProgressCount is the raw aggregate a repository query returns for a
// single date or an inclusive date range.
type ProgressCount struct {
	Total     int `db:"total"`
	Completed int `db:"completed"`
}

// DayCompletion is one per-day group from the streak query: scheduled and
// completed counts for a single calendar date. Days with no scheduled
// records produce no group at all.
type DayCompletion struct {
	Date      string `db:"scheduled_date"`
	Total     int    `db:"total"`
	Completed int    `db:"completed"`
}

// Percentage converts an aggregate into a rounded whole percentage.
// Zero totals yield zero, never a division by zero.
func Percentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// StreakDays walks per-day groups, newest date first, counting consecutive
// perfect days starting from today. A day is perfect when every scheduled
// record completed and at least one existed. The walk stops at the first
// imperfect day and at any date gap: a day with zero scheduled records is
// never skipped over, it terminates the streak.
func StreakDays(groups []DayCompletion, today string) int {
	streak := 0
	expected := today

	for _, g := range groups {
		if g.Date != expected {
			break
		}
		if g.Total == 0 || g.Completed != g.Total {
			break
		}
		streak++
		expected = previousDay(expected)
	}

	return streak
}

func previousDay(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(DateLayout)
}
