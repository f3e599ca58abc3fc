package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/devffery/task-two/internal/domain"
)

// OrganizationInput carries the organization creation payload.
type OrganizationInput struct {
	Name        string `json:"name" validate:"required,max=250"`
	Description string `json:"description" validate:"omitempty"`
}

// CreateOrganization creates an organization and attaches the creator as
// its first member, in one transaction.
func (s *IdentityService) CreateOrganization(ctx context.Context, creator domain.User, input OrganizationInput) (OrganizationView, error) {
	ctx, span := s.startSpan(ctx, "IdentityService.CreateOrganization")
	defer span.End()

	if verr := checkInput(input); verr != nil {
		return OrganizationView{}, verr
	}

	model := domain.Organization{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
	}

	created, err := s.orgs.CreateWithMember(ctx, model, creator.ID)
	if err != nil {
		span.RecordError(err)
		return OrganizationView{}, fmt.Errorf("create organization: %w", err)
	}

	s.audit("org.create.success", "org_id", created.ID.String(), "user_id", creator.ID.String())
	return newOrganizationView(created), nil
}

// ListOrganizations returns the organizations the caller belongs to.
func (s *IdentityService) ListOrganizations(ctx context.Context, caller domain.User) ([]OrganizationView, error) {
	ctx, span := s.startSpan(ctx, "IdentityService.ListOrganizations")
	defer span.End()

	orgs, err := s.orgs.ListForUser(ctx, caller.ID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list organizations: %w", err)
	}

	views := make([]OrganizationView, 0, len(orgs))
	for _, org := range orgs {
		views = append(views, newOrganizationView(org))
	}
	return views, nil
}

// GetOrganization returns the organization only when the caller is a
// member; otherwise it is reported as not found.
func (s *IdentityService) GetOrganization(ctx context.Context, caller domain.User, rawID string) (OrganizationView, error) {
	ctx, span := s.startSpan(ctx, "IdentityService.GetOrganization")
	defer span.End()

	org, err := s.memberOrganization(ctx, caller, rawID)
	if err != nil {
		span.RecordError(err)
		return OrganizationView{}, err
	}
	return newOrganizationView(org), nil
}

// AddMemberInput carries the add-member payload.
type AddMemberInput struct {
	UserID string `json:"userId" validate:"required"`
}

// AddMember adds a user to an organization the caller belongs to. Adding
// an existing member is a no-op.
func (s *IdentityService) AddMember(ctx context.Context, caller domain.User, rawOrgID string, input AddMemberInput) error {
	ctx, span := s.startSpan(ctx, "IdentityService.AddMember")
	defer span.End()

	if verr := checkInput(input); verr != nil {
		return verr
	}

	org, err := s.memberOrganization(ctx, caller, rawOrgID)
	if err != nil {
		span.RecordError(err)
		return err
	}

	userID, err := uuid.Parse(strings.TrimSpace(input.UserID))
	if err != nil {
		return newNotFoundError("User not found")
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return newNotFoundError("User not found")
		}
		span.RecordError(err)
		return fmt.Errorf("load user: %w", err)
	}

	if err := s.orgs.AddMember(ctx, org.ID, user.ID); err != nil {
		span.RecordError(err)
		return fmt.Errorf("add member: %w", err)
	}

	s.audit("org.member_added", "org_id", org.ID.String(), "user_id", user.ID.String(), "added_by", caller.ID.String())
	return nil
}

func (s *IdentityService) memberOrganization(ctx context.Context, caller domain.User, rawID string) (domain.Organization, error) {
	orgID, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return domain.Organization{}, newNotFoundError("Not found")
	}

	org, err := s.orgs.GetForUser(ctx, caller.ID, orgID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Organization{}, newNotFoundError("Not found")
		}
		return domain.Organization{}, fmt.Errorf("load organization: %w", err)
	}
	return org, nil
}
