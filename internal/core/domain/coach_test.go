package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowtrack/routine-engine/internal/core/domain"
)

func TestNewCoach(t *testing.T) {
	t.Run("Valid email is normalized", func(t *testing.T) {
		coach, err := domain.NewCoach("c-1", "  Erin@Clinic.COM ")

		require.NoError(t, err)
		assert.Equal(t, "erin@clinic.com", coach.Email)
	})

	t.Run("Invalid email rejected", func(t *testing.T) {
		_, err := domain.NewCoach("c-1", "not-an-email")

		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
	})
}

func TestCoach_Password(t *testing.T) {
	coach, err := domain.NewCoach("c-1", "erin@clinic.com")
	require.NoError(t, err)

	t.Run("Too short rejected", func(t *testing.T) {
		assert.ErrorIs(t, coach.SetPassword("short"), domain.ErrPasswordTooShort)
	})

	t.Run("Hash verifies and never stores plaintext", func(t *testing.T) {
		require.NoError(t, coach.SetPassword("correct-horse-battery"))

		assert.NotEqual(t, "correct-horse-battery", coach.PasswordHash)
		assert.NoError(t, coach.CheckPassword("correct-horse-battery"))
		assert.Error(t, coach.CheckPassword("wrong-password"))
	})
}
