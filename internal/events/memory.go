package events

import (
	"context"
	"sync"
)

// MemoryPublisher buffers events in memory. Used in tests and when no
// event backbone is configured.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []RiskUpdated
}

func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

func (p *MemoryPublisher) Publish(_ context.Context, event RiskUpdated) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

// Events returns a copy of everything published so far.
func (p *MemoryPublisher) Events() []RiskUpdated {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]RiskUpdated, len(p.events))
	copy(out, p.events)
	return out
}
