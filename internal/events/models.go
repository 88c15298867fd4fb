// Package events carries risk-change notifications from the scoring engine to
// downstream consumers. The engine only emits; delivery (Kafka, webhooks) is
// owned by the relay and dispatcher, so a delivery outage never fails a
// scoring run.
package events

import (
	"context"
	"time"
)

// TopicRiskUpdated is the Kafka topic risk-change events are relayed to.
const TopicRiskUpdated = "aegis.risk.updated"

// RiskUpdated is emitted once per persisted profile version.
type RiskUpdated struct {
	EntityID   string    `json:"entityId"`
	EntityName string    `json:"entityName"`
	RiskScore  float64   `json:"riskScore"`
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
}

// Publisher accepts risk-change events for eventual delivery.
type Publisher interface {
	Publish(ctx context.Context, event RiskUpdated) error
}
