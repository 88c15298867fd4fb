package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// OutboxPublisher implements Publisher using the transactional outbox
// pattern: events are written to the outbox table and relayed to Kafka by
// the Relay worker. The row insert shares the caller's connection pool so an
// event is only durable when the surrounding request succeeds.
type OutboxPublisher struct {
	db *sql.DB
}

func NewOutboxPublisher(db *sql.DB) *OutboxPublisher {
	return &OutboxPublisher{db: db}
}

func (p *OutboxPublisher) Publish(ctx context.Context, event RiskUpdated) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal risk event: %w", err)
	}

	query := `
		INSERT INTO outbox (id, topic, partition_key, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = p.db.ExecContext(ctx, query,
		uuid.New(),
		TopicRiskUpdated,
		event.EntityID,
		payload,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert outbox entry: %w", err)
	}
	return nil
}

// outboxRow is one undelivered entry claimed by the relay.
type outboxRow struct {
	ID           uuid.UUID
	Topic        string
	PartitionKey string
	Payload      []byte
}

// fetchBatch claims up to limit undelivered entries, oldest first. Rows are
// locked so concurrent relay instances never double-deliver.
func fetchBatch(ctx context.Context, tx *sql.Tx, limit int) ([]outboxRow, error) {
	query := `
		SELECT id, topic, partition_key, payload
		FROM outbox
		WHERE delivered_at IS NULL
		ORDER BY created_at
		LIMIT $1
		FOR UPDATE SKIP LOCKED
	`
	rows, err := tx.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("select outbox batch: %w", err)
	}
	defer rows.Close()

	var batch []outboxRow
	for rows.Next() {
		var row outboxRow
		if err := rows.Scan(&row.ID, &row.Topic, &row.PartitionKey, &row.Payload); err != nil {
			return nil, fmt.Errorf("scan outbox row: %w", err)
		}
		batch = append(batch, row)
	}
	return batch, rows.Err()
}

// markDelivered stamps the delivered rows inside the claiming transaction.
func markDelivered(ctx context.Context, tx *sql.Tx, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	idStrings := make([]string, len(ids))
	for i, id := range ids {
		idStrings[i] = id.String()
	}
	query := `UPDATE outbox SET delivered_at = $1 WHERE id = ANY($2::uuid[])`
	if _, err := tx.ExecContext(ctx, query, time.Now(), pq.Array(idStrings)); err != nil {
		return fmt.Errorf("mark outbox delivered: %w", err)
	}
	return nil
}
