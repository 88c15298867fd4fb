package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"aegis/internal/screening"
)

// BatchResult is the outcome of scoring one record within a batch.
type BatchResult struct {
	Record  screening.Record
	Profile *screening.Profile
	Err     error
}

// BatchSummary aggregates a batch run for callers and logs.
type BatchSummary struct {
	Total          int
	Clear          int
	ReviewRequired int
	Failed         int
}

// ScoreBatch scores records concurrently with bounded parallelism. Entities
// are independent, so one failed scoring never aborts the others; failures
// are reported per record. Results are returned in input order.
func (s *Service) ScoreBatch(ctx context.Context, records []screening.Record) ([]BatchResult, BatchSummary) {
	results := make([]BatchResult, len(records))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)

	for i, rec := range records {
		g.Go(func() error {
			profile, err := s.ScoreRecord(ctx, rec)
			results[i] = BatchResult{Record: rec, Profile: profile, Err: err}
			// Per-entity isolation: errors stay in the result slot.
			return nil
		})
	}
	_ = g.Wait()

	var summary BatchSummary
	summary.Total = len(records)
	for _, res := range results {
		switch {
		case res.Err != nil:
			summary.Failed++
			s.metrics.IncrementBatchFailure()
			if s.logger != nil {
				s.logger.ErrorContext(ctx, "entity scoring failed in batch",
					"entity_name", res.Record.Name,
					"entity_type", res.Record.Type,
					"error", res.Err,
				)
			}
		case res.Profile.Status == screening.StatusClear:
			summary.Clear++
		default:
			summary.ReviewRequired++
		}
	}
	return results, summary
}
