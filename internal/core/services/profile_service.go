package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/glowtrack/routine-engine/internal/core/domain"
)

type ProfileService struct {
	repo domain.UserProfileRepository
}

func NewProfileService(repo domain.UserProfileRepository) *ProfileService {
	return &ProfileService{
		repo: repo,
	}
}

type CreateProfileInput struct {
	AuthUserID  string
	DisplayName string
	Timezone    string
}

func (s *ProfileService) Create(ctx context.Context, input CreateProfileInput) (*domain.UserProfile, error) {
	id := uuid.NewString()
	profile, err := domain.NewUserProfile(id, input.AuthUserID, input.DisplayName, input.Timezone)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("profile service: failed to create profile: %w", err)
	}

	return profile, nil
}

func (s *ProfileService) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	return s.repo.GetByID(ctx, id)
}

type UpdateProfileInput struct {
	ID          string
	DisplayName string
	Timezone    string
}

func (s *ProfileService) Update(ctx context.Context, input UpdateProfileInput) (*domain.UserProfile, error) {
	profile, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != "" {
		profile.DisplayName = input.DisplayName
	}
	if input.Timezone != "" {
		updated, err := domain.NewUserProfile(profile.ID, profile.AuthUserID, profile.DisplayName, input.Timezone)
		if err != nil {
			return nil, err
		}
		profile.Timezone = updated.Timezone
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}
