package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/glowtrack/routine-engine/internal/core/domain"
)

var _ domain.UserProfileRepository = (*CachedProfileRepository)(nil)

// CachedProfileRepository caches auth-id lookups, which sit on the hot
// path of every stats request. Writes go straight through and invalidate.
type CachedProfileRepository struct {
	next  domain.UserProfileRepository
	cache *redis.Client
	ttl   time.Duration
}

func NewCachedProfileRepository(next domain.UserProfileRepository, cache *redis.Client) *CachedProfileRepository {
	return &CachedProfileRepository{
		next:  next,
		cache: cache,
		ttl:   15 * time.Minute,
	}
}

func (r *CachedProfileRepository) cacheKey(authUserID string) string {
	return fmt.Sprintf("profile:auth:%s", authUserID)
}

func (r *CachedProfileRepository) invalidate(ctx context.Context, authUserID string) {
	if err := r.cache.Del(ctx, r.cacheKey(authUserID)).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate profile for auth user %s: %v", authUserID, err)
	}
}

func (r *CachedProfileRepository) GetByAuthUserID(ctx context.Context, authUserID string) (*domain.UserProfile, error) {
	key := r.cacheKey(authUserID)

	val, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		var profile domain.UserProfile
		if err := json.Unmarshal([]byte(val), &profile); err == nil {
			return &profile, nil
		}

		log.Printf("[CACHE] Corrupted profile data for auth user %s, cleaning up key", authUserID)
		r.cache.Del(ctx, key)
	} else if err != redis.Nil {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	profile, err := r.next.GetByAuthUserID(ctx, authUserID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(profile); err == nil {
		if setErr := r.cache.Set(ctx, key, data, r.ttl).Err(); setErr != nil {
			log.Printf("[CACHE] Redis set error: %v", setErr)
		}
	}

	return profile, nil
}

func (r *CachedProfileRepository) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	return r.next.GetByID(ctx, id)
}

func (r *CachedProfileRepository) Create(ctx context.Context, profile *domain.UserProfile) error {
	if err := r.next.Create(ctx, profile); err != nil {
		return err
	}
	r.invalidate(ctx, profile.AuthUserID)
	return nil
}

func (r *CachedProfileRepository) Update(ctx context.Context, profile *domain.UserProfile) error {
	if err := r.next.Update(ctx, profile); err != nil {
		return err
	}
	r.invalidate(ctx, profile.AuthUserID)
	return nil
}
