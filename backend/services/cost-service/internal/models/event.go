package models

import "time"

// Cost lifecycle event kinds.
const (
	EventCostCreated = "created"
	EventCostUpdated = "updated"
	EventCostDeleted = "deleted"
)

// CostEvent is published after a cost record was written.
type CostEvent struct {
	Kind       string     `json:"kind"`
	Record     CostRecord `json:"record"`
	OccurredAt time.Time  `json:"occurred_at"`
}
