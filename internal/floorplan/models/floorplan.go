package models

import "time"

// ============================================================
// Floor Plan Model
// ============================================================

// FloorPlan is a named, persisted snapshot of a scene. Data is the
// serialized scene and is opaque to the store.
type FloorPlan struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Data        string    `json:"data"`
}
