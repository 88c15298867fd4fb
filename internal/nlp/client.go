// Package nlp adapts an external text-analysis service to the analyzer port.
package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"aegis/internal/screening"
	"aegis/internal/screening/ports"
	dErrors "aegis/pkg/domain-errors"
	"aegis/pkg/platform/circuit"
	"aegis/pkg/platform/sentinel"
)

const maxResponseBytes = 4 * 1024 * 1024

// Client calls a remote analysis service over HTTP. Transient failures are
// retried with exponential backoff; a response that cannot be parsed into
// the signal shape is a bad-request error, never retried.
type Client struct {
	baseURL     string
	engine      string
	client      *http.Client
	breaker     *circuit.Breaker
	maxAttempts int
	baseDelay   time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
}

// Option configures optional client behavior.
type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) { c.client = client }
}

// WithRetryPolicy bounds attempts per analysis call. Delays double from base.
func WithRetryPolicy(maxAttempts int, base time.Duration) Option {
	return func(c *Client) {
		c.maxAttempts = maxAttempts
		c.baseDelay = base
	}
}

// WithBreaker replaces the default circuit breaker, for callers that want
// different trip thresholds.
func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Client) { c.breaker = b }
}

// NewClient builds an analyzer over the service at baseURL. The engine name
// is recorded in profile metadata.
func NewClient(baseURL, engine string, opts ...Option) *Client {
	c := &Client{
		baseURL:     baseURL,
		engine:      engine,
		client:      &http.Client{Timeout: 30 * time.Second},
		breaker:     circuit.New("analysis-service"),
		maxAttempts: 3,
		baseDelay:   250 * time.Millisecond,
	}
	c.sleep = func(ctx context.Context, delay time.Duration) error {
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
		opt(c)
	}
	return c
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type analyzeResponse struct {
	Entities []struct {
		Text  string  `json:"text"`
		Type  string  `json:"type"`
		Score float64 `json:"score"`
	} `json:"entities"`
	Sentiment      string             `json:"sentiment"`
	SentimentScore map[string]float64 `json:"sentimentScore"`
	KeyPhrases     []struct {
		Text  string  `json:"text"`
		Score float64 `json:"score"`
	} `json:"keyPhrases"`
}

// Analyze implements ports.NLPAnalyzer.
func (c *Client) Analyze(ctx context.Context, text string) (screening.Signals, error) {
	body, err := json.Marshal(analyzeRequest{Text: text})
	if err != nil {
		return screening.Signals{}, fmt.Errorf("marshal analyze request: %w", err)
	}

	// An open breaker means the service was recently down: probe once
	// instead of burning the full retry budget against it.
	maxAttempts := c.maxAttempts
	if c.breaker.IsOpen() {
		maxAttempts = 1
	}

	var lastErr error
	delay := c.baseDelay
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if err := c.sleep(ctx, delay); err != nil {
				return screening.Signals{}, err
			}
			delay *= 2
		}

		signals, retryable, err := c.analyzeOnce(ctx, text, body)
		if err == nil {
			c.breaker.RecordSuccess()
			return signals, nil
		}
		if !retryable {
			// Rejected input says nothing about service health.
			return screening.Signals{}, err
		}
		c.breaker.RecordFailure()
		lastErr = err
	}
	return screening.Signals{}, fmt.Errorf("analysis failed after %d attempts: %w", maxAttempts, lastErr)
}

func (c *Client) analyzeOnce(ctx context.Context, text string, body []byte) (screening.Signals, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/analyze", bytes.NewReader(body))
	if err != nil {
		return screening.Signals{}, false, fmt.Errorf("build analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return screening.Signals{}, true, fmt.Errorf("analysis service unreachable: %w: %w", sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
	case resp.StatusCode == http.StatusBadRequest:
		return screening.Signals{}, false, dErrors.Newf(dErrors.CodeBadRequest,
			"analysis service rejected the text")
	default:
		return screening.Signals{}, true, fmt.Errorf("analysis service returned %d: %w",
			resp.StatusCode, sentinel.ErrUnavailable)
	}

	var decoded analyzeResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&decoded); err != nil {
		return screening.Signals{}, false, dErrors.Wrap(err, dErrors.CodeBadRequest,
			"malformed signals payload from analysis service")
	}

	return toSignals(decoded, text), false, nil
}

func toSignals(decoded analyzeResponse, text string) screening.Signals {
	signals := screening.Signals{
		Entities:   make([]screening.EntityMention, len(decoded.Entities)),
		KeyPhrases: make([]screening.KeyPhrase, len(decoded.KeyPhrases)),
		SourceText: text,
	}
	for i, e := range decoded.Entities {
		signals.Entities[i] = screening.EntityMention{Text: e.Text, Type: e.Type, Confidence: e.Score}
	}
	for i, p := range decoded.KeyPhrases {
		signals.KeyPhrases[i] = screening.KeyPhrase{Text: p.Text, Confidence: p.Score}
	}

	dist := make(map[screening.SentimentLabel]float64, len(decoded.SentimentScore))
	for label, p := range decoded.SentimentScore {
		dist[screening.SentimentLabel(label)] = p
	}
	signals.Sentiment = screening.Sentiment{
		Label:        screening.SentimentLabel(decoded.Sentiment),
		Distribution: dist,
	}
	return signals
}

// EngineName implements ports.NLPAnalyzer.
func (c *Client) EngineName() string {
	return c.engine
}

var _ ports.NLPAnalyzer = (*Client)(nil)
