package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiff(t *testing.T) {
	oldState := map[string]any{"name": "Rice", "selling_price": "1500.00", "stock_quantity": 10, "gone": "x"}
	newState := map[string]any{"name": "Rice", "selling_price": "1750.00", "stock_quantity": 10, "added": true}

	changes := Diff(oldState, newState)

	assert.Equal(t, map[string]Change{
		"selling_price": {Old: "1500.00", New: "1750.00"},
		"gone":          {Old: "x", New: nil},
		"added":         {Old: nil, New: true},
	}, changes)
}

func TestDiff_NoChanges(t *testing.T) {
	state := map[string]any{"name": "Oil"}
	assert.Empty(t, Diff(state, state))
}

func TestCreatedAndDeleted(t *testing.T) {
	state := map[string]any{"name": "Sugar", "stock_quantity": 4}

	created := Created(state)
	assert.Equal(t, Change{Old: nil, New: "Sugar"}, created["name"])

	deleted := Deleted(state)
	assert.Equal(t, Change{Old: 4, New: nil}, deleted["stock_quantity"])
}
