// Package cache decorates a profile store with a Redis read-through cache
// for the latest-version query, the hot path behind screening API calls.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"aegis/internal/screening"
)

// DefaultTTL bounds staleness when invalidation is missed (for example a
// crash between the store write and the cache delete).
const DefaultTTL = 5 * time.Minute

// Store wraps an inner screening.Store. Writes invalidate; GetLatest is
// read-through. Cache failures degrade to the inner store, never to errors.
type Store struct {
	inner  screening.Store
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// New builds a caching store. A nil client returns the inner store unchanged
// so wiring stays unconditional at the call site.
func New(inner screening.Store, client *redis.Client, logger *slog.Logger) screening.Store {
	if client == nil {
		return inner
	}
	return &Store{inner: inner, client: client, ttl: DefaultTTL, logger: logger}
}

func key(entityID string) string {
	return "aegis:profile:latest:" + entityID
}

func (s *Store) Put(ctx context.Context, profile screening.Profile) error {
	if err := s.inner.Put(ctx, profile); err != nil {
		return err
	}
	if err := s.client.Del(ctx, key(profile.EntityID)).Err(); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "cache invalidation failed",
			"entity_id", profile.EntityID,
			"error", err,
		)
	}
	return nil
}

func (s *Store) GetLatest(ctx context.Context, entityID string) (screening.Profile, error) {
	cached, err := s.client.Get(ctx, key(entityID)).Bytes()
	if err == nil {
		var profile screening.Profile
		if err := json.Unmarshal(cached, &profile); err == nil {
			return profile, nil
		}
		// Corrupt entry: fall through to the store and rewrite below.
	} else if !errors.Is(err, redis.Nil) && s.logger != nil {
		s.logger.WarnContext(ctx, "cache read failed", "entity_id", entityID, "error", err)
	}

	profile, err := s.inner.GetLatest(ctx, entityID)
	if err != nil {
		return screening.Profile{}, err
	}

	if encoded, err := json.Marshal(profile); err == nil {
		if err := s.client.Set(ctx, key(entityID), encoded, s.ttl).Err(); err != nil && s.logger != nil {
			s.logger.WarnContext(ctx, "cache write failed", "entity_id", entityID, "error", err)
		}
	}
	return profile, nil
}

func (s *Store) GetHistory(ctx context.Context, entityID string, limit int) ([]screening.Profile, error) {
	// History reads are rare and unbounded in shape; serve them from the
	// store directly.
	return s.inner.GetHistory(ctx, entityID, limit)
}

var _ screening.Store = (*Store)(nil)

// Health pings the backing Redis, for readiness checks.
func (s *Store) Health(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("profile cache unhealthy: %w", err)
	}
	return nil
}
