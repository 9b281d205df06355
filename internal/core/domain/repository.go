package domain

import (
	"context"
)

type UserProfileRepository interface {
	// Create persists a new subscriber profile.
	Create(ctx context.Context, profile *UserProfile) error

	// GetByID retrieves a profile by its internal identifier.
	GetByID(ctx context.Context, id string) (*UserProfile, error)

	// GetByAuthUserID resolves the external auth identifier to the internal
	// profile. This is the only existence check in the stats subsystem:
	// everything downstream trusts the profile id it returns.
	GetByAuthUserID(ctx context.Context, authUserID string) (*UserProfile, error)

	// Update modifies an existing profile (display name, timezone).
	Update(ctx context.Context, profile *UserProfile) error
}

type CoachRepository interface {
	Create(ctx context.Context, coach *Coach) error
	GetByEmail(ctx context.Context, email string) (*Coach, error)
	GetByID(ctx context.Context, id string) (*Coach, error)
}
