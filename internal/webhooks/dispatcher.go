// Package webhooks delivers risk-change events to registered HTTP endpoints.
package webhooks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"aegis/internal/events"
)

const eventRiskUpdated = "risk.updated"

// Endpoint is one registered webhook receiver.
type Endpoint struct {
	ID     string
	URL    string
	Secret string
	// Events lists subscribed event types; empty means all.
	Events []string
	Active bool
}

func (e Endpoint) subscribed(eventType string) bool {
	if !e.Active {
		return false
	}
	if len(e.Events) == 0 {
		return true
	}
	for _, ev := range e.Events {
		if ev == eventType {
			return true
		}
	}
	return false
}

// Dispatcher fans risk-change events out to subscribed endpoints with
// bounded retries. It implements events.Publisher so it can be chained
// alongside the Kafka outbox; delivery failures are logged and swallowed
// because notification loss must never fail a scoring run.
type Dispatcher struct {
	endpoints   []Endpoint
	client      *http.Client
	logger      *slog.Logger
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
	clock       func() time.Time
	sleep       func(ctx context.Context, d time.Duration) error
}

// Option configures optional dispatcher behavior.
type Option func(*Dispatcher)

func WithClient(client *http.Client) Option {
	return func(d *Dispatcher) { d.client = client }
}

func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = logger }
}

// WithRetryPolicy bounds delivery attempts per endpoint. Delays double from
// base up to max.
func WithRetryPolicy(maxAttempts int, base, max time.Duration) Option {
	return func(d *Dispatcher) {
		d.maxAttempts = maxAttempts
		d.baseDelay = base
		d.maxDelay = max
	}
}

func WithClock(clock func() time.Time) Option {
	return func(d *Dispatcher) { d.clock = clock }
}

// NewDispatcher builds a dispatcher over a fixed endpoint set.
func NewDispatcher(endpoints []Endpoint, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		endpoints:   endpoints,
		client:      &http.Client{Timeout: 10 * time.Second},
		logger:      slog.Default(),
		maxAttempts: 3,
		baseDelay:   500 * time.Millisecond,
		maxDelay:    10 * time.Second,
		clock:       time.Now,
	}
	d.sleep = func(ctx context.Context, delay time.Duration) error {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		}
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Publish implements events.Publisher. It always returns nil: per-endpoint
// failures are logged, not propagated.
func (d *Dispatcher) Publish(ctx context.Context, event events.RiskUpdated) error {
	payload, err := json.Marshal(event)
	if err != nil {
		d.logger.ErrorContext(ctx, "webhook payload marshal failed", "error", err)
		return nil
	}
	for _, endpoint := range d.endpoints {
		if !endpoint.subscribed(eventRiskUpdated) {
			continue
		}
		if err := d.deliver(ctx, endpoint, payload); err != nil {
			d.logger.WarnContext(ctx, "webhook delivery abandoned",
				"endpoint_id", endpoint.ID,
				"entity_id", event.EntityID,
				"error", err,
			)
		}
	}
	return nil
}

func (d *Dispatcher) deliver(ctx context.Context, endpoint Endpoint, payload []byte) error {
	var lastErr error
	delay := d.baseDelay
	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		if attempt > 1 {
			if err := d.sleep(ctx, delay); err != nil {
				return err
			}
			delay *= 2
			if delay > d.maxDelay {
				delay = d.maxDelay
			}
		}
		lastErr = d.attempt(ctx, endpoint, payload)
		if lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("after %d attempts: %w", d.maxAttempts, lastErr)
}

func (d *Dispatcher) attempt(ctx context.Context, endpoint Endpoint, payload []byte) error {
	timestamp := d.clock().Unix()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderEventType, eventRiskUpdated)
	req.Header.Set(HeaderTimestamp, fmt.Sprintf("%d", timestamp))
	req.Header.Set(HeaderSignature, Sign(endpoint.Secret, timestamp, payload))

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return fmt.Errorf("endpoint returned %d", resp.StatusCode)
}

var _ events.Publisher = (*Dispatcher)(nil)
