package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. Email doubles as the login
// identifier and is unique across the whole store.
type User struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	PasswordHash string
	IsSuperuser  bool
	IsAdmin      bool
	IsStaff      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
