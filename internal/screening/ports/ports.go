// Package ports defines the collaborator interfaces the screening engine
// depends on. The engine never calls NLP or resolution transports directly;
// adapters implement these ports so tests can substitute fakes.
package ports

import (
	"context"

	"aegis/internal/screening"
)

//go:generate mockgen -source=ports.go -destination=mocks/ports-mocks.go -package=mocks

// NLPAnalyzer produces the fixed-shape signal bundle for one text. A
// collaborator outage must surface as an error (wrapped
// sentinel.ErrUnavailable), never as defaulted signals: scoring without real
// signals would be a silent correctness violation.
type NLPAnalyzer interface {
	Analyze(ctx context.Context, text string) (screening.Signals, error)

	// EngineName identifies the backing NLP engine for profile metadata.
	EngineName() string
}

// ResolvedEntity is the canonical identity supplied by the entity-resolution
// collaborator. Metadata and aliases are pass-through with no assumed schema.
type ResolvedEntity struct {
	CanonicalID   string
	CanonicalName string
	Type          string
	Aliases       []string
	Metadata      map[string]any
}

// Resolver disambiguates an entity to its canonical identity. Returning
// sentinel.ErrNotFound means no canonical identity is known and the engine
// falls back to the derived ID; any other error surfaces to the caller.
type Resolver interface {
	Resolve(ctx context.Context, name, entityType string) (*ResolvedEntity, error)
}
