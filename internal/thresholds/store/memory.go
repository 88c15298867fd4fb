package store

import (
	"context"
	"sync"

	"aegis/internal/thresholds"
	"aegis/pkg/platform/sentinel"
)

// MemoryStore keeps threshold policy versions in memory. For tests and
// single-node deployments without Postgres.
type MemoryStore struct {
	mu       sync.RWMutex
	policies []thresholds.Policy
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, policy thresholds.Policy) (thresholds.Policy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	policy.Version = int64(len(s.policies)) + 1
	s.policies = append(s.policies, policy)
	return policy, nil
}

func (s *MemoryStore) Latest(_ context.Context) (thresholds.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.policies) == 0 {
		return thresholds.Policy{}, sentinel.ErrNotFound
	}
	return s.policies[len(s.policies)-1], nil
}
