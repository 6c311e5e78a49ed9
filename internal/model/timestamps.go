package model

import "time"

// Timestamps is embedded by every persisted entity. Only the store's save
// hook writes these fields.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
