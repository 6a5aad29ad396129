package models

import "time"

// Activity event types.
const (
	EventCreate = "CREATE"
	EventUpdate = "UPDATE"
	EventDelete = "DELETE"
	EventLogin  = "LOGIN"
)

// ContentEvent is a single entry of the admin activity log.
type ContentEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"` // CREATE | UPDATE | DELETE | LOGIN
	Collection  string    `json:"collection,omitempty"`
	DocumentID  string    `json:"document_id,omitempty"`
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
