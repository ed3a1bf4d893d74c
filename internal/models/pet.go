package models

import (
	"time"

	"github.com/google/uuid"
)

type Pet struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	OwnerID       uuid.UUID  `json:"owner_id" db:"owner_id"`
	Name          string     `json:"name" db:"name"`
	Type          string     `json:"type" db:"type"`
	Age           int        `json:"age" db:"age"`
	ChildrenCount int        `json:"children_count" db:"children_count"`
	Notes         string     `json:"notes" db:"notes"`
	ImageURL      *string    `json:"image_url" db:"image_url"`
	Plan          string     `json:"plan" db:"plan"`
	ScanCount     int        `json:"scan_count" db:"scan_count"`
	LastScannedAt *time.Time `json:"last_scanned_at" db:"last_scanned_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

// PetUpdate carries a partial pet edit. Nil fields keep their stored values.
// The scan counter and its timestamp are only writable through the scan
// recording path.
type PetUpdate struct {
	Name          *string `json:"name,omitempty"`
	Type          *string `json:"type,omitempty"`
	Age           *int    `json:"age,omitempty"`
	ChildrenCount *int    `json:"children_count,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	ImageURL      *string `json:"image_url,omitempty"`
}
