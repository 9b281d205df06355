package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowtrack/routine-engine/internal/core/domain"
)

func TestNewUserProfile(t *testing.T) {
	t.Run("Valid profile with timezone", func(t *testing.T) {
		p, err := domain.NewUserProfile("p-1", "auth-1", "Ada", "America/New_York")

		require.NoError(t, err)
		assert.Equal(t, "America/New_York", p.Timezone)
		assert.Equal(t, "auth-1", p.AuthUserID)
	})

	t.Run("Empty timezone is allowed", func(t *testing.T) {
		p, err := domain.NewUserProfile("p-1", "auth-1", "Ada", "")

		require.NoError(t, err)
		assert.Empty(t, p.Timezone)
	})

	t.Run("Bogus timezone rejected", func(t *testing.T) {
		_, err := domain.NewUserProfile("p-1", "auth-1", "Ada", "Mars/Olympus")

		assert.ErrorIs(t, err, domain.ErrInvalidTimezone)
	})

	t.Run("Missing auth user id rejected", func(t *testing.T) {
		_, err := domain.NewUserProfile("p-1", "  ", "Ada", "")

		assert.Error(t, err)
	})
}

func TestUserProfile_Location(t *testing.T) {
	t.Run("Resolves stored timezone", func(t *testing.T) {
		p := &domain.UserProfile{Timezone: "America/New_York"}

		loc := p.Location()

		want, err := time.LoadLocation("America/New_York")
		require.NoError(t, err)
		assert.Equal(t, want.String(), loc.String())
	})

	t.Run("Empty timezone falls back to default", func(t *testing.T) {
		p := &domain.UserProfile{}

		assert.Equal(t, domain.DefaultTimezone, p.Location().String())
	})

	t.Run("Unloadable timezone falls back to default", func(t *testing.T) {
		p := &domain.UserProfile{Timezone: "Not/AZone"}

		assert.Equal(t, domain.DefaultTimezone, p.Location().String())
	})
}
