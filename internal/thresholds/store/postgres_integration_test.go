//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"aegis/internal/thresholds"
	"aegis/internal/thresholds/store"
	"aegis/pkg/platform/sentinel"
	"aegis/pkg/testutil/containers"
)

type ThresholdPostgresSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestThresholdPostgresSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ThresholdPostgresSuite))
}

func (s *ThresholdPostgresSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.Pool)
}

func (s *ThresholdPostgresSuite) SetupTest() {
	ctx := context.Background()
	err := s.postgres.TruncateTables(ctx, "risk_thresholds")
	s.Require().NoError(err)
}

func policyFixture(updatedBy string) thresholds.Policy {
	return thresholds.Policy{
		Bands: []thresholds.BandConfig{
			{Min: 0.60, Status: "REVIEW_REQUIRED", RiskLevel: "CRITICAL", Recommendation: "REJECT - Do not onboard"},
			{Min: 0.40, Status: "REVIEW_REQUIRED", RiskLevel: "HIGH", Recommendation: "Enhanced Due Diligence required"},
			{Min: 0, Status: "CLEAR", RiskLevel: "LOW", Recommendation: "Proceed with standard onboarding"},
		},
		UpdatedBy: updatedBy,
		UpdatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func (s *ThresholdPostgresSuite) TestEmptyStoreReportsNotFound() {
	_, err := s.store.Latest(context.Background())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *ThresholdPostgresSuite) TestAppendAssignsMonotonicVersions() {
	ctx := context.Background()

	first, err := s.store.Append(ctx, policyFixture("alice"))
	s.Require().NoError(err)
	second, err := s.store.Append(ctx, policyFixture("bob"))
	s.Require().NoError(err)

	s.Equal(int64(1), first.Version)
	s.Equal(int64(2), second.Version)

	latest, err := s.store.Latest(ctx)
	s.Require().NoError(err)
	s.Equal(int64(2), latest.Version)
	s.Equal("bob", latest.UpdatedBy)
}

func (s *ThresholdPostgresSuite) TestBandsRoundTrip() {
	ctx := context.Background()
	policy := policyFixture("compliance-lead")

	_, err := s.store.Append(ctx, policy)
	s.Require().NoError(err)

	latest, err := s.store.Latest(ctx)
	s.Require().NoError(err)
	s.Equal(policy.Bands, latest.Bands)
	s.WithinDuration(policy.UpdatedAt, latest.UpdatedAt, time.Millisecond)
}
