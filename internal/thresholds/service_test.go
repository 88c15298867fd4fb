package thresholds_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"aegis/internal/audit"
	"aegis/internal/screening"
	"aegis/internal/thresholds"
	"aegis/internal/thresholds/store"
	dErrors "aegis/pkg/domain-errors"
)

type ThresholdServiceSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *ThresholdServiceSuite) SetupSuite() {
	s.ctx = context.Background()
}

func TestThresholdServiceSuite(t *testing.T) {
	suite.Run(t, new(ThresholdServiceSuite))
}

func (s *ThresholdServiceSuite) newService() *thresholds.Service {
	svc, err := thresholds.New(store.NewMemoryStore())
	require.NoError(s.T(), err)
	return svc
}

func (s *ThresholdServiceSuite) TestDefaultsWhenNothingStored() {
	svc := s.newService()

	table := svc.Current(s.ctx)
	assert.Equal(s.T(), screening.DefaultThresholds(), table)

	policy, err := svc.Active(s.ctx)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(0), policy.Version)
	assert.Len(s.T(), policy.Bands, 4)
}

func (s *ThresholdServiceSuite) TestUpdateTakesEffectImmediately() {
	svc := s.newService()

	bands := []thresholds.BandConfig{
		{Min: 0.60, Status: "REVIEW_REQUIRED", RiskLevel: "CRITICAL", Recommendation: "REJECT - Do not onboard"},
		{Min: 0, Status: "CLEAR", RiskLevel: "LOW", Recommendation: "Proceed with standard onboarding"},
	}
	policy, err := svc.Update(s.ctx, bands, "admin@example.com")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), policy.Version)
	assert.Equal(s.T(), "admin@example.com", policy.UpdatedBy)

	got := svc.Current(s.ctx).Classify(0.65)
	assert.Equal(s.T(), screening.RiskCritical, got.Level)
}

func (s *ThresholdServiceSuite) TestUpdateVersionsAreMonotonic() {
	svc := s.newService()

	bands := []thresholds.BandConfig{
		{Min: 0, Status: "CLEAR", RiskLevel: "LOW", Recommendation: "Proceed with standard onboarding"},
	}
	first, err := svc.Update(s.ctx, bands, "a")
	require.NoError(s.T(), err)
	second, err := svc.Update(s.ctx, bands, "b")
	require.NoError(s.T(), err)
	assert.Greater(s.T(), second.Version, first.Version)
}

func (s *ThresholdServiceSuite) TestUpdateRejectsInvalidBands() {
	svc := s.newService()

	cases := []struct {
		name  string
		bands []thresholds.BandConfig
	}{
		{"empty", nil},
		{"ascending mins", []thresholds.BandConfig{
			{Min: 0, Status: "CLEAR", RiskLevel: "LOW", Recommendation: "ok"},
			{Min: 0.5, Status: "REVIEW_REQUIRED", RiskLevel: "HIGH", Recommendation: "edd"},
		}},
		{"no terminal zero band", []thresholds.BandConfig{
			{Min: 0.5, Status: "REVIEW_REQUIRED", RiskLevel: "HIGH", Recommendation: "edd"},
		}},
		{"unknown status", []thresholds.BandConfig{
			{Min: 0, Status: "MAYBE", RiskLevel: "LOW", Recommendation: "ok"},
		}},
		{"unknown level", []thresholds.BandConfig{
			{Min: 0, Status: "CLEAR", RiskLevel: "TRIVIAL", Recommendation: "ok"},
		}},
		{"min above one", []thresholds.BandConfig{
			{Min: 1.5, Status: "CLEAR", RiskLevel: "LOW", Recommendation: "ok"},
		}},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := svc.Update(s.ctx, tc.bands, "admin")
			require.Error(s.T(), err)
			assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}
}

func (s *ThresholdServiceSuite) TestCurrentCachesWithinTTL() {
	memStore := store.NewMemoryStore()
	now := time.Date(2025, 12, 3, 10, 0, 0, 0, time.UTC)
	svc, err := thresholds.New(memStore,
		thresholds.WithCacheTTL(time.Minute),
		thresholds.WithClock(func() time.Time { return now }),
	)
	require.NoError(s.T(), err)

	bands := []thresholds.BandConfig{
		{Min: 0, Status: "CLEAR", RiskLevel: "LOW", Recommendation: "Proceed with standard onboarding"},
	}
	_, err = svc.Update(s.ctx, bands, "admin")
	require.NoError(s.T(), err)

	// A second version written behind the cache's back stays invisible
	// until the TTL lapses.
	_, err = memStore.Append(s.ctx, thresholds.Policy{
		Bands: []thresholds.BandConfig{
			{Min: 0.1, Status: "REVIEW_REQUIRED", RiskLevel: "HIGH", Recommendation: "edd"},
			{Min: 0, Status: "CLEAR", RiskLevel: "LOW", Recommendation: "ok"},
		},
	})
	require.NoError(s.T(), err)

	assert.Len(s.T(), svc.Current(s.ctx), 1)

	now = now.Add(2 * time.Minute)
	assert.Len(s.T(), svc.Current(s.ctx), 2)
}

func (s *ThresholdServiceSuite) TestUpdateIsAudited() {
	recorder := audit.NewMemoryRecorder()
	svc, err := thresholds.New(store.NewMemoryStore(), thresholds.WithAudit(recorder))
	require.NoError(s.T(), err)

	bands := []thresholds.BandConfig{
		{Min: 0.50, Status: "REVIEW_REQUIRED", RiskLevel: "HIGH", Recommendation: "Enhanced Due Diligence required"},
		{Min: 0, Status: "CLEAR", RiskLevel: "LOW", Recommendation: "Proceed with standard onboarding"},
	}
	policy, err := svc.Update(s.ctx, bands, "alice@example.com")
	require.NoError(s.T(), err)

	events := recorder.Events()
	require.Len(s.T(), events, 1)
	assert.Equal(s.T(), audit.ActionThresholdsUpdated, events[0].Action)
	assert.Equal(s.T(), "alice@example.com", events[0].Actor)
	assert.Equal(s.T(), policy.Version, events[0].Detail["version"])
}
