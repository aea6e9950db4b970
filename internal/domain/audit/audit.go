// Package audit defines the change trail recorded for catalog mutations.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"stockmaster/internal/core/id"
)

// Action is the kind of audited operation.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Entry is one recorded change of an entity.
type Entry struct {
	ID         id.ID           `json:"id"`
	EntityType string          `json:"entityType"`
	EntityID   id.ID           `json:"entityId"`
	Action     Action          `json:"action"`
	Changes    json.RawMessage `json:"changes"`
	RequestID  string          `json:"requestId,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// Change is the before/after value of a single field.
type Change struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// Recorder persists and reads the audit trail. Record joins the transaction
// carried by ctx, so an entry commits or rolls back with the change itself.
type Recorder interface {
	Record(ctx context.Context, entityType string, entityID id.ID, action Action, changes map[string]Change) error
	History(ctx context.Context, entityType string, entityID id.ID, limit int) ([]Entry, error)
}

// Diff returns the fields that differ between two snapshots. A field missing
// on one side is reported with a nil value on that side.
func Diff(oldState, newState map[string]any) map[string]Change {
	changes := make(map[string]Change)

	for key, newVal := range newState {
		oldVal, exists := oldState[key]
		if !exists {
			changes[key] = Change{Old: nil, New: newVal}
			continue
		}
		if !sameValue(oldVal, newVal) {
			changes[key] = Change{Old: oldVal, New: newVal}
		}
	}

	for key, oldVal := range oldState {
		if _, exists := newState[key]; !exists {
			changes[key] = Change{Old: oldVal, New: nil}
		}
	}

	return changes
}

// Created describes a freshly created entity as a diff from nothing.
func Created(state map[string]any) map[string]Change {
	return Diff(nil, state)
}

// Deleted describes a removed entity as a diff to nothing.
func Deleted(state map[string]any) map[string]Change {
	return Diff(state, nil)
}

// Snapshots hold scalars already rendered for display, so their printed
// forms compare reliably (decimals included).
func sameValue(a, b any) bool {
	return fmt.Sprint(a) == fmt.Sprint(b)
}
