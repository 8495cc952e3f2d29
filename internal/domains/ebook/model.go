package ebook

import (
	"time"

	"github.com/google/uuid"
)

// Ebook is the placeholder record a production Project is started against.
// An ebook stays a placeholder until it is fully published; InProgress
// marks that an active project currently claims it.
type Ebook struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	IsPlaceholder bool      `json:"is_placeholder" db:"is_placeholder"`
	InProgress    bool      `json:"in_progress" db:"in_progress"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
