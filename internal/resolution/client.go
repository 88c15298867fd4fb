// Package resolution adapts an external entity-resolution service to the
// resolver port.
package resolution

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"aegis/internal/screening/ports"
	dErrors "aegis/pkg/domain-errors"
	"aegis/pkg/platform/sentinel"
)

// Client calls a remote resolution service over HTTP. An unknown entity is
// sentinel.ErrNotFound, which callers treat as "use the derived identity";
// anything else surfaces as an outage.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures optional client behavior.
type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) { c.client = client }
}

type resolveRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type resolveResponse struct {
	CanonicalID   string         `json:"canonicalId"`
	CanonicalName string         `json:"canonicalName"`
	Type          string         `json:"type"`
	Aliases       []string       `json:"aliases"`
	Metadata      map[string]any `json:"metadata"`
}

// Resolve implements ports.Resolver.
func (c *Client) Resolve(ctx context.Context, name, entityType string) (*ports.ResolvedEntity, error) {
	body, err := json.Marshal(resolveRequest{Name: name, Type: entityType})
	if err != nil {
		return nil, fmt.Errorf("marshal resolve request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/resolve", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build resolve request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("resolution service unreachable: %w: %w", sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, sentinel.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("resolution service returned %d: %w", resp.StatusCode, sentinel.ErrUnavailable)
	}

	var decoded resolveResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "malformed resolution payload")
	}

	return &ports.ResolvedEntity{
		CanonicalID:   decoded.CanonicalID,
		CanonicalName: decoded.CanonicalName,
		Type:          decoded.Type,
		Aliases:       decoded.Aliases,
		Metadata:      decoded.Metadata,
	}, nil
}

var _ ports.Resolver = (*Client)(nil)
