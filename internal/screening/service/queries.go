package service

import (
	"context"
	"errors"
	"fmt"

	"aegis/internal/screening"
	dErrors "aegis/pkg/domain-errors"
	"aegis/pkg/platform/sentinel"
)

// Screen returns the latest profile for an entity identified by type and
// name. A never-scored entity yields a synthetic CLEAR default rather than
// an error: absence of findings is a valid screening answer.
func (s *Service) Screen(ctx context.Context, entityType, name string) (*screening.Profile, error) {
	entityID := screening.DeriveEntityID(entityType, name)

	profile, err := s.store.GetLatest(ctx, entityID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			def := defaultProfile(entityID, name, entityType)
			return &def, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal,
			fmt.Sprintf("failed to load latest profile for entity %s", entityID))
	}
	return &profile, nil
}

// History returns profile versions for an entity, newest first, bounded by
// limit (default screening.DefaultHistoryLimit).
func (s *Service) History(ctx context.Context, entityID string, limit int) ([]screening.Profile, error) {
	if entityID == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "entity id is required")
	}
	history, err := s.store.GetHistory(ctx, entityID, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal,
			fmt.Sprintf("failed to load history for entity %s", entityID))
	}
	return history, nil
}

// defaultProfile is the synthetic CLEAR answer for a first-time screen.
// It is never persisted.
func defaultProfile(entityID, name, entityType string) screening.Profile {
	return screening.Profile{
		EntityID:        entityID,
		Name:            name,
		OverallScore:    0,
		Status:          screening.StatusClear,
		RiskLevel:       screening.RiskLow,
		Evidence:        []screening.Evidence{},
		Recommendations: []string{"Proceed with standard onboarding"},
		Confidence:      0,
		Metadata:        map[string]any{"entityType": entityType, "synthetic": true},
	}
}
