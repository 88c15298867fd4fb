package handler

import (
	"time"

	"aegis/internal/screening"
	"aegis/internal/screening/service"
)

// ProfileResponse is the JSON shape of one risk profile version.
type ProfileResponse struct {
	EntityID        string               `json:"entityId"`
	AsOfTs          int64                `json:"asOfTs,omitempty"`
	Name            string               `json:"name"`
	RiskScore       float64              `json:"riskScore"`
	Status          string               `json:"status"`
	RiskLevel       string               `json:"riskLevel"`
	RiskBreakdown   screening.Breakdown  `json:"riskBreakdown"`
	Evidence        []screening.Evidence `json:"evidence"`
	Recommendations []string             `json:"recommendations"`
	Confidence      float64              `json:"confidence"`
	Metadata        map[string]any       `json:"metadata,omitempty"`
	ProcessedAt     time.Time            `json:"processedAt"`
}

// FromProfile converts a domain profile to its response shape.
func FromProfile(p *screening.Profile) *ProfileResponse {
	return &ProfileResponse{
		EntityID:        p.EntityID,
		AsOfTs:          p.AsOfTs,
		Name:            p.Name,
		RiskScore:       p.OverallScore,
		Status:          string(p.Status),
		RiskLevel:       string(p.RiskLevel),
		RiskBreakdown:   p.Breakdown,
		Evidence:        p.Evidence,
		Recommendations: p.Recommendations,
		Confidence:      p.Confidence,
		Metadata:        p.Metadata,
		ProcessedAt:     p.ProcessedAt,
	}
}

// HistoryResponse is the JSON shape for GET /v1/entities/{id}/history.
type HistoryResponse struct {
	EntityID string             `json:"entityId"`
	History  []*ProfileResponse `json:"history"`
	Count    int                `json:"count"`
}

// ScoreResponse is the JSON shape for POST /v1/score.
type ScoreResponse struct {
	Profiles []*ScoreOutcome `json:"profiles"`
	Summary  ScoreSummary    `json:"summary"`
}

// ScoreOutcome is the per-record outcome of a batch run.
type ScoreOutcome struct {
	Name     string           `json:"name"`
	EntityID string           `json:"entityId,omitempty"`
	Profile  *ProfileResponse `json:"profile,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// ScoreSummary aggregates a batch run.
type ScoreSummary struct {
	Total          int `json:"total"`
	Clear          int `json:"clear"`
	ReviewRequired int `json:"reviewRequired"`
	Failed         int `json:"failed"`
}

// FromBatch converts batch results to the response shape. Per-record errors
// are reduced to a generic message; details stay in the server logs.
func FromBatch(results []service.BatchResult, summary service.BatchSummary) *ScoreResponse {
	resp := &ScoreResponse{
		Profiles: make([]*ScoreOutcome, len(results)),
		Summary: ScoreSummary{
			Total:          summary.Total,
			Clear:          summary.Clear,
			ReviewRequired: summary.ReviewRequired,
			Failed:         summary.Failed,
		},
	}
	for i, res := range results {
		outcome := &ScoreOutcome{Name: res.Record.Name}
		if res.Err != nil {
			outcome.Error = "scoring failed"
		} else {
			outcome.EntityID = res.Profile.EntityID
			outcome.Profile = FromProfile(res.Profile)
		}
		resp.Profiles[i] = outcome
	}
	return resp
}
