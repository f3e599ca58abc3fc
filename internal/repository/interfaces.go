package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/devffery/task-two/internal/domain"
)

// UserRepository exposes persistence for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	// GetVisible returns the target user only when the viewer shares at
	// least one organization with it. Self-lookup always succeeds.
	GetVisible(ctx context.Context, viewerID, targetID uuid.UUID) (domain.User, error)
}

// OrgRepository exposes persistence for organizations and membership.
type OrgRepository interface {
	// CreateWithMember inserts the organization and the creator's
	// membership in one transaction.
	CreateWithMember(ctx context.Context, org domain.Organization, creatorID uuid.UUID) (domain.Organization, error)
	GetForUser(ctx context.Context, userID, orgID uuid.UUID) (domain.Organization, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Organization, error)
	// AddMember is idempotent; re-adding an existing member is a no-op.
	AddMember(ctx context.Context, orgID, userID uuid.UUID) error
}
