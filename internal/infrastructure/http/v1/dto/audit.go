package dto

import (
	"encoding/json"
	"time"

	"stockmaster/internal/domain/audit"
)

// AuditEntryResponse is one item of GET /api/product/{id}/history.
type AuditEntryResponse struct {
	Action    audit.Action    `json:"action"`
	Changes   json.RawMessage `json:"changes"`
	RequestID string          `json:"request_id,omitempty"`
	At        time.Time       `json:"at"`
}

// FromAuditEntries maps the audit trail, keeping its order.
func FromAuditEntries(entries []audit.Entry) []AuditEntryResponse {
	out := make([]AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, AuditEntryResponse{
			Action:    e.Action,
			Changes:   e.Changes,
			RequestID: e.RequestID,
			At:        e.CreatedAt,
		})
	}
	return out
}
