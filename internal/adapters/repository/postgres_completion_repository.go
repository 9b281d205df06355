package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/glowtrack/routine-engine/internal/core/domain"
)

// scheduled_date is a DATE column; selecting it cast to text keeps the
// domain layer on plain YYYY-MM-DD strings with no time component to
// reinterpret.
const completionColumns = `
	id, user_profile_id, routine_step_id,
	scheduled_date::text AS scheduled_date,
	time_of_day, status, completed_at, created_at, updated_at`

type PostgresCompletionRepository struct {
	db *sqlx.DB
}

func NewPostgresCompletionRepository(db *sqlx.DB) *PostgresCompletionRepository {
	return &PostgresCompletionRepository{db: db}
}

func (r *PostgresCompletionRepository) Create(ctx context.Context, record *domain.CompletionRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	query := `
		INSERT INTO completion_records (
			id, user_profile_id, routine_step_id,
			scheduled_date, time_of_day, status,
			completed_at, created_at, updated_at
		) VALUES (
			:id, :user_profile_id, :routine_step_id,
			:scheduled_date, :time_of_day, :status,
			:completed_at, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, record)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" {
				return errors.New("referenced profile or routine step does not exist")
			}
			if pqErr.Code == "23505" {
				return domain.ErrCompletionConflict
			}
		}
		return err
	}
	return nil
}

func (r *PostgresCompletionRepository) GetByID(ctx context.Context, id string) (*domain.CompletionRecord, error) {
	var record domain.CompletionRecord
	query := `SELECT ` + completionColumns + ` FROM completion_records WHERE id = $1`

	err := r.db.GetContext(ctx, &record, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCompletionNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *PostgresCompletionRepository) UpdateStatus(ctx context.Context, id, status string, completedAt *time.Time) error {
	query := `
		UPDATE completion_records
		SET status = $1,
		    completed_at = $2,
		    updated_at = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, status, completedAt, time.Now().UTC(), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrCompletionNotFound
	}

	return nil
}

func (r *PostgresCompletionRepository) ListByProfile(ctx context.Context, profileID, from, to string) ([]*domain.CompletionRecord, error) {
	records := []*domain.CompletionRecord{}

	query := `
		SELECT ` + completionColumns + `
		FROM completion_records
		WHERE user_profile_id = $1
		  AND scheduled_date >= $2
		  AND scheduled_date <= $3
		ORDER BY scheduled_date DESC, time_of_day ASC`

	err := r.db.SelectContext(ctx, &records, query, profileID, from, to)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *PostgresCompletionRepository) MarkMissedBefore(ctx context.Context, cutoffDate string) (int64, error) {
	query := `
		UPDATE completion_records
		SET status = $1,
		    updated_at = $2
		WHERE status = $3
		  AND scheduled_date < $4`

	result, err := r.db.ExecContext(ctx, query, domain.StatusMissed, time.Now().UTC(), domain.StatusPending, cutoffDate)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresCompletionRepository) GetDailyProgress(ctx context.Context, profileID, date string) (domain.ProgressCount, error) {
	var count domain.ProgressCount

	query := `
		SELECT COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE status IN ('on-time', 'late')) AS completed
		FROM completion_records
		WHERE user_profile_id = $1
		  AND scheduled_date = $2`

	err := r.db.GetContext(ctx, &count, query, profileID, date)
	if err != nil {
		return domain.ProgressCount{}, err
	}
	return count, nil
}

func (r *PostgresCompletionRepository) GetCompletionsByDay(ctx context.Context, profileID, upTo string) ([]domain.DayCompletion, error) {
	groups := []domain.DayCompletion{}

	query := `
		SELECT scheduled_date::text AS scheduled_date,
		       COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE status IN ('on-time', 'late')) AS completed
		FROM completion_records
		WHERE user_profile_id = $1
		  AND scheduled_date <= $2
		GROUP BY scheduled_date
		ORDER BY scheduled_date DESC`

	err := r.db.SelectContext(ctx, &groups, query, profileID, upTo)
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *PostgresCompletionRepository) GetRangeProgress(ctx context.Context, profileID, start, end string) (domain.ProgressCount, error) {
	var count domain.ProgressCount

	query := `
		SELECT COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE status IN ('on-time', 'late')) AS completed
		FROM completion_records
		WHERE user_profile_id = $1
		  AND scheduled_date >= $2
		  AND scheduled_date <= $3`

	err := r.db.GetContext(ctx, &count, query, profileID, start, end)
	if err != nil {
		return domain.ProgressCount{}, err
	}
	return count, nil
}
