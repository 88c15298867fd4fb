package screening

import "time"

// Profile is the persisted unit: one immutable, time-stamped risk assessment
// of one entity. Rescoring appends a new version at a new AsOfTs; existing
// versions are never mutated or deleted.
type Profile struct {
	// EntityID is the partition key: the stable idempotency key for the
	// entity lineage (derived or resolution-supplied).
	EntityID string `json:"entityId"`

	// AsOfTs is the sort key: Unix seconds, strictly increasing per entity.
	// (EntityID, AsOfTs) is unique; duplicates are a write conflict.
	AsOfTs int64 `json:"asOfTs"`

	Name string `json:"name"`

	OverallScore float64 `json:"overallScore"`

	Status    Status    `json:"status"`
	RiskLevel RiskLevel `json:"riskLevel"`

	Breakdown Breakdown `json:"riskBreakdown"`

	// Evidence is ordered most-indicative first; length is bounded by
	// construction (see AssembleEvidence).
	Evidence []Evidence `json:"evidence"`

	// Recommendations is non-empty for every scored profile.
	Recommendations []string `json:"recommendations"`

	// Confidence is the engine-level confidence in the score, independent of
	// per-evidence confidence.
	Confidence float64 `json:"confidence"`

	// Metadata is an opaque pass-through bag (entity type, engine identifier,
	// signal counts). No schema is assumed beyond string keys.
	Metadata map[string]any `json:"metadata,omitempty"`

	ProcessedAt time.Time `json:"processedAt"`
}
