// Package store provides Store implementations for risk profiles: an
// in-memory store for tests and single-node use, and a PostgreSQL store for
// production.
package store

import (
	"context"
	"sort"
	"sync"

	"aegis/internal/screening"
	"aegis/pkg/platform/sentinel"
)

// MemoryStore keeps profile versions per entity in memory. It favors clarity
// over performance and mirrors the Postgres store's semantics exactly:
// append-only, conflict on duplicate (entityId, asOfTs), descending reads.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string][]screening.Profile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string][]screening.Profile)}
}

func (s *MemoryStore) Put(_ context.Context, profile screening.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	versions := s.profiles[profile.EntityID]
	for _, existing := range versions {
		if existing.AsOfTs == profile.AsOfTs {
			return sentinel.ErrConflict
		}
	}
	s.profiles[profile.EntityID] = append(versions, profile)
	return nil
}

func (s *MemoryStore) GetLatest(_ context.Context, entityID string) (screening.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	versions := s.profiles[entityID]
	if len(versions) == 0 {
		return screening.Profile{}, sentinel.ErrNotFound
	}
	latest := versions[0]
	for _, v := range versions[1:] {
		if v.AsOfTs > latest.AsOfTs {
			latest = v
		}
	}
	return latest, nil
}

func (s *MemoryStore) GetHistory(_ context.Context, entityID string, limit int) ([]screening.Profile, error) {
	if limit <= 0 {
		limit = screening.DefaultHistoryLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	versions := s.profiles[entityID]
	out := make([]screening.Profile, len(versions))
	copy(out, versions)
	sort.Slice(out, func(i, j int) bool { return out[i].AsOfTs > out[j].AsOfTs })

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
