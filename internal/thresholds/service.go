package thresholds

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"aegis/internal/audit"
	"aegis/internal/screening"
	dErrors "aegis/pkg/domain-errors"
	"aegis/pkg/platform/sentinel"
)

const defaultCacheTTL = 30 * time.Second

// Service resolves the threshold policy in effect and accepts audited
// updates. It implements screening.ThresholdSource: scoring reads go through
// a short-lived cache so a store outage degrades to the last known table
// (or the shipped defaults) instead of failing the scoring path.
type Service struct {
	store    Store
	defaults screening.ThresholdTable
	logger   *slog.Logger
	auditor  audit.Recorder
	ttl      time.Duration
	clock    func() time.Time

	mu        sync.RWMutex
	cached    screening.ThresholdTable
	fetchedAt time.Time
}

// Option configures optional service collaborators.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) { s.ttl = ttl }
}

func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// WithAudit records policy changes to the given audit trail.
func WithAudit(recorder audit.Recorder) Option {
	return func(s *Service) { s.auditor = recorder }
}

// New builds a threshold service backed by store, falling back to the
// shipped default table when no policy has been stored.
func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("thresholds: store is required")
	}
	s := &Service{
		store:    store,
		defaults: screening.DefaultThresholds(),
		logger:   slog.Default(),
		ttl:      defaultCacheTTL,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Current implements screening.ThresholdSource.
func (s *Service) Current(ctx context.Context) screening.ThresholdTable {
	s.mu.RLock()
	if s.cached != nil && s.clock().Sub(s.fetchedAt) < s.ttl {
		table := s.cached
		s.mu.RUnlock()
		return table
	}
	s.mu.RUnlock()

	policy, err := s.store.Latest(ctx)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			s.logger.WarnContext(ctx, "threshold policy lookup failed, using last known table", "error", err)
			s.mu.RLock()
			cached := s.cached
			s.mu.RUnlock()
			if cached != nil {
				return cached
			}
		}
		return s.defaults
	}

	table := policy.Table()
	s.mu.Lock()
	s.cached = table
	s.fetchedAt = s.clock()
	s.mu.Unlock()
	return table
}

// Active returns the policy in effect, synthesizing a version-zero policy
// from the defaults when nothing has been stored.
func (s *Service) Active(ctx context.Context) (Policy, error) {
	policy, err := s.store.Latest(ctx)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Policy{Version: 0, Bands: FromTable(s.defaults)}, nil
		}
		return Policy{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load threshold policy")
	}
	return policy, nil
}

// Update validates and stores a new policy version and makes it effective
// immediately by refreshing the cache.
func (s *Service) Update(ctx context.Context, bands []BandConfig, updatedBy string) (Policy, error) {
	if err := ValidateBands(bands); err != nil {
		return Policy{}, err
	}
	if updatedBy == "" {
		updatedBy = "unknown"
	}

	policy, err := s.store.Append(ctx, Policy{
		Bands:     bands,
		UpdatedBy: updatedBy,
		UpdatedAt: s.clock().UTC(),
	})
	if err != nil {
		return Policy{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store threshold policy")
	}

	table := policy.Table()
	s.mu.Lock()
	s.cached = table
	s.fetchedAt = s.clock()
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "threshold policy updated",
		"version", policy.Version,
		"bands", len(policy.Bands),
		"updated_by", policy.UpdatedBy,
	)
	if s.auditor != nil {
		s.auditor.Record(ctx, audit.Event{
			Action: audit.ActionThresholdsUpdated,
			Actor:  policy.UpdatedBy,
			Detail: map[string]any{
				"version": policy.Version,
				"bands":   len(policy.Bands),
			},
		})
	}
	return policy, nil
}

var _ screening.ThresholdSource = (*Service)(nil)
