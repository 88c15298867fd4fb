// Package audit captures who changed what on the admin surface. Events are
// structured and append-only; the default sink is the process log, which
// ships to the log pipeline like any other line.
package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"aegis/pkg/requestcontext"
)

// Action names an auditable operation.
type Action string

const (
	ActionThresholdsUpdated Action = "thresholds_updated"
	ActionAdminLogin        Action = "admin_login"
	ActionAdminLoginFailed  Action = "admin_login_failed"
)

// Event is one audit record. Detail is a small bag of action-specific
// fields (policy version, band count); keep values JSON-encodable.
type Event struct {
	Action    Action
	Actor     string
	RequestID string
	Timestamp time.Time
	Detail    map[string]any
}

// Recorder accepts audit events. Implementations must not fail the calling
// operation: auditing is observability, not a write dependency.
type Recorder interface {
	Record(ctx context.Context, event Event)
}

// SlogRecorder writes audit events as structured log lines.
type SlogRecorder struct {
	logger *slog.Logger
	clock  func() time.Time
}

func NewSlogRecorder(logger *slog.Logger) *SlogRecorder {
	return &SlogRecorder{logger: logger, clock: time.Now}
}

func (r *SlogRecorder) Record(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = r.clock().UTC()
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}

	attrs := []any{
		"audit_action", string(event.Action),
		"actor", event.Actor,
		"request_id", event.RequestID,
		"timestamp", event.Timestamp,
	}
	for k, v := range event.Detail {
		attrs = append(attrs, k, v)
	}
	r.logger.InfoContext(ctx, "audit event", attrs...)
}

// MemoryRecorder collects events for assertions in tests.
type MemoryRecorder struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{}
}

func (r *MemoryRecorder) Record(_ context.Context, event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of everything recorded so far.
func (r *MemoryRecorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
