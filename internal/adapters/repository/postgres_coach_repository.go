package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/glowtrack/routine-engine/internal/core/domain"
)

type PostgresCoachRepository struct {
	db *sql.DB
}

func NewPostgresCoachRepository(db *sql.DB) *PostgresCoachRepository {
	return &PostgresCoachRepository{
		db: db,
	}
}

func (r *PostgresCoachRepository) Create(ctx context.Context, coach *domain.Coach) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `
		INSERT INTO coaches (id, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		coach.ID,
		coach.Email,
		coach.PasswordHash,
		coach.CreatedAt,
		coach.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code == "23505" {
				return domain.ErrEmailAlreadyExists
			}
		}
		return fmt.Errorf("repository: create coach failed: %w", err)
	}

	return nil
}

func (r *PostgresCoachRepository) GetByEmail(ctx context.Context, email string) (*domain.Coach, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `
		SELECT id, email, password_hash, created_at, updated_at
		FROM coaches
		WHERE email = $1
	`

	var coach domain.Coach

	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&coach.ID,
		&coach.Email,
		&coach.PasswordHash,
		&coach.CreatedAt,
		&coach.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrCoachNotFound
		}
		return nil, fmt.Errorf("repository: get coach by email failed: %w", err)
	}

	return &coach, nil
}

func (r *PostgresCoachRepository) GetByID(ctx context.Context, id string) (*domain.Coach, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `
		SELECT id, email, password_hash, created_at, updated_at
		FROM coaches
		WHERE id = $1
	`

	var coach domain.Coach

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&coach.ID,
		&coach.Email,
		&coach.PasswordHash,
		&coach.CreatedAt,
		&coach.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrCoachNotFound
		}
		return nil, fmt.Errorf("repository: get coach by id failed: %w", err)
	}

	return &coach, nil
}
