package handler

import (
	"strings"

	"aegis/internal/screening"
	dErrors "aegis/pkg/domain-errors"
)

const (
	maxNameLength = 256
	maxTextLength = 100_000
	maxBatchSize  = 100
)

// ScreenRequest is the body for POST /v1/screen.
type ScreenRequest struct {
	EntityType string `json:"entityType"`
	Name       string `json:"name"`
}

// Validate implements httputil.Validatable.
func (r *ScreenRequest) Validate() error {
	r.EntityType = strings.TrimSpace(r.EntityType)
	r.Name = strings.TrimSpace(r.Name)

	if r.EntityType == "" {
		return dErrors.New(dErrors.CodeValidation, "entityType is required")
	}
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if len(r.Name) > maxNameLength {
		return dErrors.Newf(dErrors.CodeValidation, "name must be at most %d characters", maxNameLength)
	}
	return nil
}

// ScoreRequest is the body for POST /v1/score: a batch of raw entity records
// to run through the scoring engine.
type ScoreRequest struct {
	Records []ScoreRecord `json:"records"`
}

// ScoreRecord is one raw entity input.
type ScoreRecord struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Text string `json:"text"`
}

// Validate implements httputil.Validatable.
func (r *ScoreRequest) Validate() error {
	if len(r.Records) == 0 {
		return dErrors.New(dErrors.CodeValidation, "records is required and must be non-empty")
	}
	if len(r.Records) > maxBatchSize {
		return dErrors.Newf(dErrors.CodeValidation, "at most %d records per request", maxBatchSize)
	}
	for i := range r.Records {
		rec := &r.Records[i]
		rec.Name = strings.TrimSpace(rec.Name)
		rec.Type = strings.TrimSpace(rec.Type)
		if rec.Name == "" {
			return dErrors.Newf(dErrors.CodeValidation, "records[%d].name is required", i)
		}
		if rec.Type == "" {
			return dErrors.Newf(dErrors.CodeValidation, "records[%d].type is required", i)
		}
		if len(rec.Text) > maxTextLength {
			return dErrors.Newf(dErrors.CodeValidation, "records[%d].text must be at most %d characters", i, maxTextLength)
		}
	}
	return nil
}

// DomainRecords converts the request records into domain inputs.
func (r *ScoreRequest) DomainRecords() []screening.Record {
	records := make([]screening.Record, len(r.Records))
	for i, rec := range r.Records {
		records[i] = screening.Record{Name: rec.Name, Type: rec.Type, Text: rec.Text}
	}
	return records
}
