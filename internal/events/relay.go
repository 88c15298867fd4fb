package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Relay drains the outbox and produces entries to Kafka. Kafka sees each
// event at least once; consumers must be idempotent on the event payload.
type Relay struct {
	db        *sql.DB
	client    *kgo.Client
	logger    *slog.Logger
	batchSize int
	interval  time.Duration
}

// RelayOption configures the Relay.
type RelayOption func(*Relay)

// WithBatchSize caps how many outbox rows one relay pass claims.
func WithBatchSize(n int) RelayOption {
	return func(r *Relay) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

// WithInterval sets the poll interval between relay passes.
func WithInterval(d time.Duration) RelayOption {
	return func(r *Relay) {
		if d > 0 {
			r.interval = d
		}
	}
}

// NewRelay builds a relay over an existing Kafka client.
func NewRelay(db *sql.DB, client *kgo.Client, logger *slog.Logger, opts ...RelayOption) *Relay {
	r := &Relay{
		db:        db,
		client:    client,
		logger:    logger,
		batchSize: 100,
		interval:  time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// EnsureTopic creates the risk-updated topic when it does not exist yet.
// Safe to call on every startup.
func (r *Relay) EnsureTopic(ctx context.Context, partitions int32, replication int16) error {
	adm := kadm.NewClient(r.client)
	resp, err := adm.CreateTopic(ctx, partitions, replication, nil, TopicRiskUpdated)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", TopicRiskUpdated, err)
	}
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create topic %s: %w", TopicRiskUpdated, resp.Err)
	}
	return nil
}

// Run polls the outbox until the context is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.relayOnce(ctx); err != nil {
				r.logger.ErrorContext(ctx, "outbox relay pass failed", "error", err)
			}
		}
	}
}

// relayOnce claims one batch, produces it synchronously, and marks the
// delivered rows. Produce failures leave rows unclaimed for the next pass.
func (r *Relay) relayOnce(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin relay tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	batch, err := fetchBatch(ctx, tx, r.batchSize)
	if err != nil {
		return err
	}
	if len(batch) == 0 {
		return nil
	}

	records := make([]*kgo.Record, len(batch))
	for i, row := range batch {
		records[i] = &kgo.Record{
			Topic: row.Topic,
			Key:   []byte(row.PartitionKey),
			Value: row.Payload,
		}
	}

	results := r.client.ProduceSync(ctx, records...)
	if err := results.FirstErr(); err != nil {
		return fmt.Errorf("produce outbox batch: %w", err)
	}

	delivered := make([]uuid.UUID, len(batch))
	for i, row := range batch {
		delivered[i] = row.ID
	}
	if err := markDelivered(ctx, tx, delivered); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit relay tx: %w", err)
	}

	r.logger.DebugContext(ctx, "relayed outbox batch", "count", len(batch))
	return nil
}
