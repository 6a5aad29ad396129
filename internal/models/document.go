package models

import "time"

// Base carries the system-managed fields shared by every content document.
type Base struct {
	ID        string    `json:"_id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Meta exposes the embedded Base so generic code can manage ids and timestamps.
func (b *Base) Meta() *Base { return b }

// Document is implemented by pointers to every stored content type.
type Document interface {
	Meta() *Base
}

// Defaulter fills optional fields before a document is validated and stored.
type Defaulter interface {
	ApplyDefaults()
}
