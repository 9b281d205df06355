package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/glowtrack/routine-engine/internal/core/domain"
)

type AuthService struct {
	repo domain.CoachRepository
}

func NewAuthService(repo domain.CoachRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

type RegisterInput struct {
	Email    string
	Password string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.Coach, error) {
	id := uuid.NewString()
	coach, err := domain.NewCoach(id, input.Email)
	if err != nil {
		return nil, err
	}

	if err := coach.SetPassword(input.Password); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, coach); err != nil {
		return nil, fmt.Errorf("auth service: failed to create coach: %w", err)
	}

	return coach, nil
}

// Login verifies credentials. A missing account and a wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Coach, error) {
	coach, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrCoachNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth service: failed to load coach: %w", err)
	}

	if err := coach.CheckPassword(password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return coach, nil
}
