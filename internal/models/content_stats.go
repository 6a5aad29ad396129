package models

import "time"

// ContentStats is a snapshot of how much content each collection holds.
type ContentStats struct {
	Collections  map[string]int `json:"collections"`
	Total        int            `json:"total"`
	LastActivity *ContentEvent  `json:"last_activity,omitempty"`
	GeneratedAt  time.Time      `json:"generated_at"`
}
