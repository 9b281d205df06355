package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/glowtrack/routine-engine/internal/core/domain"
	"github.com/glowtrack/routine-engine/internal/core/services"
)

func TestProfileService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns an id and leaves the timezone to the read-side fallback", func(t *testing.T) {
		repo := new(MockProfileRepo)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.UserProfile")).Return(nil)

		svc := services.NewProfileService(repo)
		profile, err := svc.Create(ctx, services.CreateProfileInput{
			AuthUserID:  "auth-1",
			DisplayName: "Iris",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, profile.ID)
		assert.Empty(t, profile.Timezone)
		assert.Equal(t, domain.DefaultTimezone, profile.Location().String())
		repo.AssertExpectations(t)
	})

	t.Run("rejects an unknown timezone before touching the repo", func(t *testing.T) {
		repo := new(MockProfileRepo)

		svc := services.NewProfileService(repo)
		_, err := svc.Create(ctx, services.CreateProfileInput{
			AuthUserID: "auth-1",
			Timezone:   "Atlantis/Lost_City",
		})

		assert.ErrorIs(t, err, domain.ErrInvalidTimezone)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("propagates duplicate-profile conflicts", func(t *testing.T) {
		repo := new(MockProfileRepo)
		repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrProfileAlreadyExists)

		svc := services.NewProfileService(repo)
		_, err := svc.Create(ctx, services.CreateProfileInput{AuthUserID: "auth-1"})

		assert.ErrorIs(t, err, domain.ErrProfileAlreadyExists)
	})
}

func TestProfileService_Update(t *testing.T) {
	ctx := context.Background()

	existing := func() *domain.UserProfile {
		p, err := domain.NewUserProfile("profile-1", "auth-1", "Iris", "Europe/London")
		require.NoError(t, err)
		return p
	}

	t.Run("changes only the provided fields", func(t *testing.T) {
		repo := new(MockProfileRepo)
		repo.On("GetByID", mock.Anything, "profile-1").Return(existing(), nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.UserProfile")).Return(nil)

		svc := services.NewProfileService(repo)
		updated, err := svc.Update(ctx, services.UpdateProfileInput{
			ID:       "profile-1",
			Timezone: "Pacific/Auckland",
		})

		require.NoError(t, err)
		assert.Equal(t, "Pacific/Auckland", updated.Timezone)
		assert.Equal(t, "Iris", updated.DisplayName)
	})

	t.Run("rejects a bad timezone without persisting", func(t *testing.T) {
		repo := new(MockProfileRepo)
		repo.On("GetByID", mock.Anything, "profile-1").Return(existing(), nil)

		svc := services.NewProfileService(repo)
		_, err := svc.Update(ctx, services.UpdateProfileInput{
			ID:       "profile-1",
			Timezone: "Not/A_Zone",
		})

		assert.ErrorIs(t, err, domain.ErrInvalidTimezone)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unknown profile surfaces ErrProfileNotFound", func(t *testing.T) {
		repo := new(MockProfileRepo)
		repo.On("GetByID", mock.Anything, "ghost").Return(nil, domain.ErrProfileNotFound)

		svc := services.NewProfileService(repo)
		_, err := svc.Update(ctx, services.UpdateProfileInput{ID: "ghost", DisplayName: "Nobody"})

		assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	})
}
