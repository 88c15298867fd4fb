// Package service orchestrates the scoring pipeline: collaborator calls,
// signal normalization, aggregation, classification, evidence assembly,
// persistence, and event emission. Pure rules live in the screening package;
// everything that can fail or block lives here.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"aegis/internal/events"
	"aegis/internal/privacy"
	"aegis/internal/screening"
	"aegis/internal/screening/metrics"
	"aegis/internal/screening/ports"
	dErrors "aegis/pkg/domain-errors"
	"aegis/pkg/platform/sentinel"
)

// engineConfidence is the engine-level confidence attached to every profile.
// Independent of per-evidence confidence.
const engineConfidence = 0.85

// defaultParallelism bounds concurrent entity scorings in a batch.
const defaultParallelism = 8

// Service runs the risk scoring engine. Entities are scored independently;
// the service holds no mutable state shared between scoring runs.
type Service struct {
	store       screening.Store
	nlp         ports.NLPAnalyzer
	resolver    ports.Resolver
	publisher   events.Publisher
	thresholds  screening.ThresholdSource
	logger      *slog.Logger
	metrics     *metrics.Metrics
	tracer      trace.Tracer
	clock       func() time.Time
	parallelism int
}

// Option configures the Service.
type Option func(*Service)

// WithResolver sets the optional entity-resolution collaborator. When
// resolution succeeds its canonical identity overrides the derived one.
func WithResolver(r ports.Resolver) Option {
	return func(s *Service) { s.resolver = r }
}

// WithPublisher sets the risk-event publisher.
func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithThresholds sets the threshold source used by the classifier.
func WithThresholds(src screening.ThresholdSource) Option {
	return func(s *Service) { s.thresholds = src }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides the timestamp source. Tests use this to make AsOfTs
// deterministic; production can supply a monotonic clock to avoid
// second-resolution collisions under rapid rescoring.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithParallelism bounds concurrent entity scorings in ScoreBatch.
func WithParallelism(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.parallelism = n
		}
	}
}

// New constructs the scoring service. Store and NLP analyzer are required;
// everything else is optional.
func New(store screening.Store, nlp ports.NLPAnalyzer, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("profile store is required")
	}
	if nlp == nil {
		return nil, fmt.Errorf("nlp analyzer is required")
	}

	svc := &Service{
		store:       store,
		nlp:         nlp,
		thresholds:  screening.NewStaticThresholds(screening.DefaultThresholds()),
		tracer:      otel.Tracer("aegis/screening"),
		clock:       time.Now,
		parallelism: defaultParallelism,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// ScoreRecord scores a single entity: resolve identity, analyze text,
// normalize, aggregate, classify, assemble evidence, persist one immutable
// profile version, and emit a risk-updated event. Assembly happens fully in
// memory before the single Put; a failed run writes nothing.
func (s *Service) ScoreRecord(ctx context.Context, rec screening.Record) (*screening.Profile, error) {
	ctx, span := s.tracer.Start(ctx, "screening.ScoreRecord",
		trace.WithAttributes(attribute.String("entity.type", rec.Type)))
	defer span.End()

	start := time.Now()

	entityID, name, idMeta, err := s.resolveIdentity(ctx, rec)
	if err != nil {
		return nil, err
	}

	nlpStart := time.Now()
	signals, err := s.nlp.Analyze(ctx, rec.Text)
	s.metrics.ObserveCollaboratorLatency("nlp", time.Since(nlpStart))
	if err != nil {
		// Never default the signals: scoring without them would be a silent
		// correctness violation. Malformed payloads keep their bad-request
		// code; everything else from the collaborator reads as an outage.
		code := dErrors.CodeUnavailable
		if dErrors.HasCode(err, dErrors.CodeBadRequest) {
			code = dErrors.CodeBadRequest
		}
		return nil, dErrors.Wrap(err, code,
			fmt.Sprintf("nlp analysis failed for entity %s", entityID))
	}

	breakdown := screening.Normalize(signals)
	score := screening.Aggregate(breakdown)
	classification := s.thresholds.Current(ctx).Classify(score)
	evidence := redactEvidence(screening.AssembleEvidence(signals))

	profile := screening.Profile{
		EntityID:        entityID,
		AsOfTs:          s.clock().Unix(),
		Name:            name,
		OverallScore:    score,
		Status:          classification.Status,
		RiskLevel:       classification.Level,
		Breakdown:       breakdown,
		Evidence:        evidence,
		Recommendations: []string{classification.Recommendation},
		Confidence:      engineConfidence,
		Metadata:        s.profileMetadata(rec, signals, idMeta),
		ProcessedAt:     s.clock().UTC(),
	}

	if err := s.store.Put(ctx, profile); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			s.metrics.IncrementWriteConflict()
			return nil, dErrors.Wrap(err, dErrors.CodeConflict,
				fmt.Sprintf("profile version already exists for entity %s", entityID))
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal,
			fmt.Sprintf("failed to persist profile for entity %s", entityID))
	}

	s.emitRiskUpdated(ctx, profile)

	s.metrics.ObserveScoreLatency(time.Since(start))
	s.metrics.IncrementOutcome(string(profile.Status), string(profile.RiskLevel))

	if s.logger != nil {
		s.logger.InfoContext(ctx, "entity scored",
			"entity_id", profile.EntityID,
			"score", profile.OverallScore,
			"status", profile.Status,
			"risk_level", profile.RiskLevel,
			"evidence_count", len(profile.Evidence),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}

	return &profile, nil
}

// resolveIdentity asks the resolution collaborator for a canonical identity
// and falls back to the derived ID when none is known. Collaborator outages
// surface; an unknown entity does not.
func (s *Service) resolveIdentity(ctx context.Context, rec screening.Record) (entityID, name string, meta map[string]any, err error) {
	entityID = screening.DeriveEntityID(rec.Type, rec.Name)
	name = rec.Name

	if s.resolver == nil {
		return entityID, name, nil, nil
	}

	start := time.Now()
	resolved, err := s.resolver.Resolve(ctx, rec.Name, rec.Type)
	s.metrics.ObserveCollaboratorLatency("resolution", time.Since(start))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return entityID, name, nil, nil
		}
		return "", "", nil, dErrors.Wrap(err, dErrors.CodeUnavailable,
			fmt.Sprintf("entity resolution failed for entity %s", entityID))
	}
	if resolved.CanonicalID != "" {
		entityID = resolved.CanonicalID
	}
	if resolved.CanonicalName != "" {
		name = resolved.CanonicalName
	}

	meta = map[string]any{}
	if len(resolved.Aliases) > 0 {
		meta["aliases"] = resolved.Aliases
	}
	for k, v := range resolved.Metadata {
		meta[k] = v
	}
	return entityID, name, meta, nil
}

func (s *Service) profileMetadata(rec screening.Record, signals screening.Signals, idMeta map[string]any) map[string]any {
	md := map[string]any{
		"entityType":         rec.Type,
		"nlpEngine":          s.nlp.EngineName(),
		"sentiment":          string(signals.Sentiment.Label),
		"entitiesDetected":   len(signals.Entities),
		"keyPhrasesDetected": len(signals.KeyPhrases),
	}
	for k, v := range idMeta {
		md[k] = v
	}
	return md
}

// emitRiskUpdated publishes the risk-change event. The engine only emits;
// a publisher failure is logged, never propagated, so eventing outages do
// not fail completed scoring runs.
func (s *Service) emitRiskUpdated(ctx context.Context, profile screening.Profile) {
	if s.publisher == nil {
		return
	}
	event := events.RiskUpdated{
		EntityID:   profile.EntityID,
		EntityName: profile.Name,
		RiskScore:  profile.OverallScore,
		Status:     string(profile.Status),
		Timestamp:  profile.ProcessedAt,
	}
	if err := s.publisher.Publish(ctx, event); err != nil && s.logger != nil {
		s.logger.ErrorContext(ctx, "risk event publish failed",
			"entity_id", profile.EntityID,
			"error", err,
		)
	}
}

// redactEvidence strips PII from evidence text before persistence.
func redactEvidence(evidence []screening.Evidence) []screening.Evidence {
	for i := range evidence {
		if evidence[i].Text == "" {
			continue
		}
		redacted, _ := privacy.Redact(evidence[i].Text)
		evidence[i].Text = redacted
	}
	return evidence
}
