//go:build integration

package events_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"aegis/internal/events"
	"aegis/pkg/testutil/containers"
)

// TestOutboxRelayDeliversToKafka drives the full path: publish into the
// outbox table, relay into Redpanda, and consume the event back.
func TestOutboxRelayDeliversToKafka(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	mgr := containers.GetManager()
	postgres := mgr.GetPostgres(t)
	redpanda := mgr.GetRedpanda(t)

	_, err := postgres.Pool.Exec(ctx, "TRUNCATE TABLE outbox")
	require.NoError(t, err)

	producer, err := kgo.NewClient(
		kgo.SeedBrokers(redpanda.Broker),
		kgo.AllowAutoTopicCreation(),
	)
	require.NoError(t, err)
	defer producer.Close()

	logger := slog.New(slog.NewTextHandler(testWriter{t}, nil))
	relay := events.NewRelay(postgres.DB, producer, logger,
		events.WithInterval(100*time.Millisecond),
	)
	require.NoError(t, relay.EnsureTopic(ctx, 1, 1))

	relayCtx, stopRelay := context.WithCancel(ctx)
	defer stopRelay()
	go func() { _ = relay.Run(relayCtx) }()

	published := events.RiskUpdated{
		EntityID:   "person:jane_doe",
		EntityName: "Jane Doe",
		RiskScore:  0.72,
		Status:     "REVIEW_REQUIRED",
		Timestamp:  time.Now().UTC(),
	}
	publisher := events.NewOutboxPublisher(postgres.DB)
	require.NoError(t, publisher.Publish(ctx, published))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(redpanda.Broker),
		kgo.ConsumeTopics(events.TopicRiskUpdated),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	record := pollOne(t, ctx, consumer)
	require.Equal(t, "person:jane_doe", string(record.Key))

	var got events.RiskUpdated
	require.NoError(t, json.Unmarshal(record.Value, &got))
	require.Equal(t, published.EntityID, got.EntityID)
	require.Equal(t, published.EntityName, got.EntityName)
	require.InDelta(t, published.RiskScore, got.RiskScore, 1e-9)
	require.Equal(t, published.Status, got.Status)

	// The relayed row must be stamped so a later pass cannot redeliver it.
	require.Eventually(t, func() bool {
		var undelivered int
		err := postgres.DB.QueryRowContext(ctx,
			"SELECT count(*) FROM outbox WHERE delivered_at IS NULL",
		).Scan(&undelivered)
		return err == nil && undelivered == 0
	}, 10*time.Second, 100*time.Millisecond)
}

func pollOne(t *testing.T, ctx context.Context, client *kgo.Client) *kgo.Record {
	t.Helper()

	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		pollCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		fetches := client.PollFetches(pollCtx)
		cancel()
		if records := fetches.Records(); len(records) > 0 {
			return records[0]
		}
	}
	t.Fatal("no record consumed before deadline")
	return nil
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}
