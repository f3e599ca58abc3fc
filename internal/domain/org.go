package domain

import (
	"time"

	"github.com/google/uuid"
)

// Organization groups users. Membership is a many-to-many relation kept
// in the organization_users join table.
type Organization struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
