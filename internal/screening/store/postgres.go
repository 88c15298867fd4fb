package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"aegis/internal/screening"
	"aegis/pkg/platform/sentinel"
)

// PostgresStore persists profiles in the risk_profiles table, keyed
// (entity_id, as_of_ts). Scores are NUMERIC so stored values round-trip as
// exact decimals instead of drifting through float encoding. The table has
// no UPDATE or DELETE path; the primary key enforces append-only versioning.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Schema reference (migrations live in deploy/):
//
//	CREATE TABLE risk_profiles (
//	    entity_id       TEXT        NOT NULL,
//	    as_of_ts        BIGINT      NOT NULL,
//	    name            TEXT        NOT NULL,
//	    overall_score   NUMERIC(6,4) NOT NULL,
//	    status          TEXT        NOT NULL,
//	    risk_level      TEXT        NOT NULL,
//	    breakdown       JSONB       NOT NULL,
//	    evidence        JSONB       NOT NULL,
//	    recommendations JSONB       NOT NULL,
//	    confidence      NUMERIC(6,4) NOT NULL,
//	    metadata        JSONB,
//	    processed_at    TIMESTAMPTZ NOT NULL,
//	    PRIMARY KEY (entity_id, as_of_ts)
//	);

func (s *PostgresStore) Put(ctx context.Context, profile screening.Profile) error {
	breakdown, err := json.Marshal(profile.Breakdown)
	if err != nil {
		return fmt.Errorf("marshal breakdown: %w", err)
	}
	evidence, err := json.Marshal(profile.Evidence)
	if err != nil {
		return fmt.Errorf("marshal evidence: %w", err)
	}
	recommendations, err := json.Marshal(profile.Recommendations)
	if err != nil {
		return fmt.Errorf("marshal recommendations: %w", err)
	}
	metadata, err := json.Marshal(profile.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	query := `
		INSERT INTO risk_profiles (
			entity_id, as_of_ts, name, overall_score, status, risk_level,
			breakdown, evidence, recommendations, confidence, metadata, processed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = s.pool.Exec(ctx, query,
		profile.EntityID,
		profile.AsOfTs,
		profile.Name,
		decimal(profile.OverallScore),
		string(profile.Status),
		string(profile.RiskLevel),
		breakdown,
		evidence,
		recommendations,
		decimal(profile.Confidence),
		metadata,
		profile.ProcessedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert risk profile: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetLatest(ctx context.Context, entityID string) (screening.Profile, error) {
	query := selectColumns + `
		WHERE entity_id = $1
		ORDER BY as_of_ts DESC
		LIMIT 1
	`
	profile, err := scanProfile(s.pool.QueryRow(ctx, query, entityID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return screening.Profile{}, sentinel.ErrNotFound
		}
		return screening.Profile{}, fmt.Errorf("query latest profile: %w", err)
	}
	return profile, nil
}

func (s *PostgresStore) GetHistory(ctx context.Context, entityID string, limit int) ([]screening.Profile, error) {
	if limit <= 0 {
		limit = screening.DefaultHistoryLimit
	}

	query := selectColumns + `
		WHERE entity_id = $1
		ORDER BY as_of_ts DESC
		LIMIT $2
	`
	rows, err := s.pool.Query(ctx, query, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("query profile history: %w", err)
	}
	defer rows.Close()

	var history []screening.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile history: %w", err)
		}
		history = append(history, profile)
	}
	return history, rows.Err()
}

const selectColumns = `
	SELECT entity_id, as_of_ts, name, overall_score, status, risk_level,
	       breakdown, evidence, recommendations, confidence, metadata, processed_at
	FROM risk_profiles
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (screening.Profile, error) {
	var (
		profile         screening.Profile
		status          string
		riskLevel       string
		score           float64
		confidence      float64
		breakdown       []byte
		evidence        []byte
		recommendations []byte
		metadata        []byte
	)
	err := row.Scan(
		&profile.EntityID,
		&profile.AsOfTs,
		&profile.Name,
		&score,
		&status,
		&riskLevel,
		&breakdown,
		&evidence,
		&recommendations,
		&confidence,
		&metadata,
		&profile.ProcessedAt,
	)
	if err != nil {
		return screening.Profile{}, err
	}

	profile.OverallScore = score
	profile.Confidence = confidence
	profile.Status = screening.Status(status)
	profile.RiskLevel = screening.RiskLevel(riskLevel)

	if err := json.Unmarshal(breakdown, &profile.Breakdown); err != nil {
		return screening.Profile{}, fmt.Errorf("unmarshal breakdown: %w", err)
	}
	if err := json.Unmarshal(evidence, &profile.Evidence); err != nil {
		return screening.Profile{}, fmt.Errorf("unmarshal evidence: %w", err)
	}
	if err := json.Unmarshal(recommendations, &profile.Recommendations); err != nil {
		return screening.Profile{}, fmt.Errorf("unmarshal recommendations: %w", err)
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &profile.Metadata); err != nil {
			return screening.Profile{}, fmt.Errorf("unmarshal metadata: %w", err)
		}
	}
	return profile, nil
}

// decimal renders a score as a fixed four-decimal string so NUMERIC columns
// store the exact value the engine computed.
func decimal(v float64) string {
	return fmt.Sprintf("%.4f", v)
}
