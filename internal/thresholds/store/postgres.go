package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"aegis/internal/thresholds"
	"aegis/pkg/platform/sentinel"
)

// PostgresStore persists threshold policy versions in the risk_thresholds
// table. Versions are assigned by the sequence; rows are never updated.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Schema reference (migrations live in deploy/):
//
//	CREATE TABLE risk_thresholds (
//	    version    BIGSERIAL   PRIMARY KEY,
//	    bands      JSONB       NOT NULL,
//	    updated_by TEXT        NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL
//	);

func (s *PostgresStore) Append(ctx context.Context, policy thresholds.Policy) (thresholds.Policy, error) {
	bands, err := json.Marshal(policy.Bands)
	if err != nil {
		return thresholds.Policy{}, fmt.Errorf("marshal bands: %w", err)
	}

	err = s.pool.QueryRow(ctx, `
		INSERT INTO risk_thresholds (bands, updated_by, updated_at)
		VALUES ($1, $2, $3)
		RETURNING version`,
		bands, policy.UpdatedBy, policy.UpdatedAt,
	).Scan(&policy.Version)
	if err != nil {
		return thresholds.Policy{}, fmt.Errorf("insert threshold policy: %w", err)
	}
	return policy, nil
}

func (s *PostgresStore) Latest(ctx context.Context) (thresholds.Policy, error) {
	var (
		policy thresholds.Policy
		bands  []byte
	)
	err := s.pool.QueryRow(ctx, `
		SELECT version, bands, updated_by, updated_at
		FROM risk_thresholds
		ORDER BY version DESC
		LIMIT 1`,
	).Scan(&policy.Version, &bands, &policy.UpdatedBy, &policy.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return thresholds.Policy{}, sentinel.ErrNotFound
		}
		return thresholds.Policy{}, fmt.Errorf("select latest threshold policy: %w", err)
	}
	if err := json.Unmarshal(bands, &policy.Bands); err != nil {
		return thresholds.Policy{}, fmt.Errorf("unmarshal bands: %w", err)
	}
	return policy, nil
}
