package model

import (
	"time"

	"github.com/google/uuid"
)

// Category is a named grouping that products belong to. Deleting a category
// deletes every product that references it; callers are expected to surface
// that before executing the delete.
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
