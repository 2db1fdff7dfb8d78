package models

import "time"

// Company is a tenant. Names are unique case-insensitively after trimming;
// the storage layer enforces this with a functional unique index so two
// concurrent signups racing on the same name resolve atomically.
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
