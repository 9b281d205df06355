package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrProfileNotFound      = errors.New("user profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists for auth user")
	ErrInvalidTimezone      = errors.New("invalid IANA timezone name")
)

// DefaultTimezone is used whenever a profile has no stored timezone.
// Stats math must never fail on an empty timezone column.
const DefaultTimezone = "Europe/London"

// UserProfile is the subscriber as the consumer app sees them. ID is the
// internal identifier every completion record is keyed by; AuthUserID is
// the external identity the consumer app authenticates with.
type UserProfile struct {
	ID          string    `json:"id" db:"id"`
	AuthUserID  string    `json:"auth_user_id" db:"auth_user_id"`
	DisplayName string    `json:"display_name" db:"display_name"`
	Timezone    string    `json:"timezone" db:"timezone"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

func NewUserProfile(id, authUserID, displayName, timezone string) (*UserProfile, error) {
	authUserID = strings.TrimSpace(authUserID)
	if authUserID == "" {
		return nil, errors.New("auth_user_id is required")
	}

	timezone = strings.TrimSpace(timezone)
	if timezone != "" {
		if _, err := time.LoadLocation(timezone); err != nil {
			return nil, ErrInvalidTimezone
		}
	}

	now := time.Now().UTC()
	return &UserProfile{
		ID:          id,
		AuthUserID:  authUserID,
		DisplayName: strings.TrimSpace(displayName),
		Timezone:    timezone,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Location resolves the profile timezone, falling back to DefaultTimezone
// and finally UTC if the zone database cannot serve either.
func (p *UserProfile) Location() *time.Location {
	name := p.Timezone
	if name == "" {
		name = DefaultTimezone
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		loc, err = time.LoadLocation(DefaultTimezone)
		if err != nil {
			return time.UTC
		}
	}
	return loc
}
