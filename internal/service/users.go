package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/devffery/task-two/internal/domain"
)

// RegisterInput carries the registration payload.
type RegisterInput struct {
	FirstName string `json:"firstName" validate:"required,max=250"`
	LastName  string `json:"lastName" validate:"required,max=250"`
	Email     string `json:"email" validate:"required,email,max=250"`
	Password  string `json:"password" validate:"required,min=8"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
}

// SuperuserFlags enumerates the elevated capability flags. CreateSuperuser
// refuses any flag left false.
type SuperuserFlags struct {
	IsSuperuser bool
	IsAdmin     bool
	IsStaff     bool
}

// Register creates a user, hashes the supplied password, and issues an
// access token for the new account.
func (s *IdentityService) Register(ctx context.Context, input RegisterInput) (AuthData, error) {
	ctx, span := s.startSpan(ctx, "IdentityService.Register")
	defer span.End()

	user, err := s.createUser(ctx, input, SuperuserFlags{})
	if err != nil {
		span.RecordError(err)
		return AuthData{}, err
	}

	access, err := s.tokens.Issue(user)
	if err != nil {
		span.RecordError(err)
		return AuthData{}, fmt.Errorf("issue access token: %w", err)
	}

	s.audit("user.register.success", "user_id", user.ID.String(), "email", user.Email)
	return AuthData{AccessToken: access, User: newUserView(user)}, nil
}

// CreateSuperuser creates a user with all capability flags forced true.
// It fails if any flag is not explicitly set.
func (s *IdentityService) CreateSuperuser(ctx context.Context, input RegisterInput, flags SuperuserFlags) (UserView, error) {
	ctx, span := s.startSpan(ctx, "IdentityService.CreateSuperuser")
	defer span.End()

	if !flags.IsSuperuser {
		return UserView{}, fmt.Errorf("superuser must have IsSuperuser=true")
	}
	if !flags.IsAdmin {
		return UserView{}, fmt.Errorf("superuser must have IsAdmin=true")
	}
	if !flags.IsStaff {
		return UserView{}, fmt.Errorf("superuser must have IsStaff=true")
	}

	user, err := s.createUser(ctx, input, flags)
	if err != nil {
		span.RecordError(err)
		return UserView{}, err
	}

	s.audit("user.superuser_created", "user_id", user.ID.String(), "email", user.Email)
	return newUserView(user), nil
}

func (s *IdentityService) createUser(ctx context.Context, input RegisterInput, flags SuperuserFlags) (domain.User, error) {
	if verr := checkInput(input); verr != nil {
		return domain.User{}, verr
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	model := domain.User{
		ID:           uuid.New(),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        normalizeEmail(input.Email),
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: hashed,
		IsSuperuser:  flags.IsSuperuser,
		IsAdmin:      flags.IsAdmin,
		IsStaff:      flags.IsStaff,
	}

	created, err := s.users.Create(ctx, model)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return domain.User{}, newValidationError(FieldError{
				Field:   "email",
				Message: "user with this email already exists.",
			})
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// LoginInput carries the login payload.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials and issues an access token. Invalid
// credentials produce one uniform error that never reveals whether the
// email exists.
func (s *IdentityService) Login(ctx context.Context, input LoginInput) (AuthData, error) {
	ctx, span := s.startSpan(ctx, "IdentityService.Login")
	defer span.End()

	if verr := checkInput(input); verr != nil {
		return AuthData{}, verr
	}

	user, err := s.users.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			span.RecordError(err)
			return AuthData{}, invalidCredentialsError()
		}
		span.RecordError(err)
		return AuthData{}, fmt.Errorf("load user: %w", err)
	}

	valid, err := s.hasher.Verify(input.Password, user.PasswordHash)
	if err != nil || !valid {
		span.RecordError(fmt.Errorf("invalid password"))
		return AuthData{}, invalidCredentialsError()
	}

	access, err := s.tokens.Issue(user)
	if err != nil {
		span.RecordError(err)
		return AuthData{}, fmt.Errorf("issue access token: %w", err)
	}

	s.audit("user.login.success", "user_id", user.ID.String())
	return AuthData{AccessToken: access, User: newUserView(user)}, nil
}

// Authenticate resolves a bearer token to the user it was issued for.
func (s *IdentityService) Authenticate(ctx context.Context, bearer string) (domain.User, error) {
	ctx, span := s.startSpan(ctx, "IdentityService.Authenticate")
	defer span.End()

	userID, _, err := s.tokens.Validate(bearer)
	if err != nil {
		span.RecordError(err)
		return domain.User{}, newUnauthenticatedError()
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return domain.User{}, newUnauthenticatedError()
	}
	return user, nil
}

// GetVisibleUser returns the target user when the caller shares an
// organization with it, or when the caller looks itself up. Anything else
// is reported as not found, including nonexistent ids.
func (s *IdentityService) GetVisibleUser(ctx context.Context, caller domain.User, rawID string) (UserView, error) {
	ctx, span := s.startSpan(ctx, "IdentityService.GetVisibleUser")
	defer span.End()

	targetID, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return UserView{}, newNotFoundError("Not found")
	}

	user, err := s.users.GetVisible(ctx, caller.ID, targetID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return UserView{}, newNotFoundError("Not found")
		}
		span.RecordError(err)
		return UserView{}, fmt.Errorf("load visible user: %w", err)
	}
	return newUserView(user), nil
}

func invalidCredentialsError() *Error {
	return newValidationError(FieldError{
		Field:   "email",
		Message: "Authentication failed.",
	})
}

func normalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
