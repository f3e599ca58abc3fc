package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/devffery/task-two/internal/domain"
	"github.com/devffery/task-two/internal/password"
	"github.com/devffery/task-two/internal/repository"
	"github.com/devffery/task-two/internal/service"
	"github.com/devffery/task-two/internal/token"
)

func newTestService() (*service.IdentityService, *memoryStore) {
	store := newMemoryStore()
	hasher := password.NewHasher(password.Params{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16})
	issuer := token.NewIssuer("0123456789abcdef0123456789abcdef", "identity-api", time.Hour)
	return service.NewIdentityService(store, store, hasher, issuer, zap.NewNop()), store
}

func registerUser(t *testing.T, svc *service.IdentityService, email string) service.AuthData {
	t.Helper()
	data, err := svc.Register(context.Background(), service.RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		Password:  "analytical-engine",
	})
	require.NoError(t, err)
	return data
}

func TestRegisterIssuesTokenAndPersistsUser(t *testing.T) {
	svc, store := newTestService()

	data, err := svc.Register(context.Background(), service.RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "Ada@Example.com",
		Password:  "analytical-engine",
		Phone:     "555-0100",
	})
	require.NoError(t, err)
	require.NotEmpty(t, data.AccessToken)
	require.Equal(t, "ada@example.com", data.User.Email)
	require.Equal(t, "Ada", data.User.FirstName)

	stored, err := store.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, stored.PasswordHash)
	require.NotEqual(t, "analytical-engine", stored.PasswordHash)

	user, err := svc.Authenticate(context.Background(), data.AccessToken)
	require.NoError(t, err)
	require.Equal(t, stored.ID, user.ID)
}

func TestRegisterDuplicateEmailReturnsFieldError(t *testing.T) {
	svc, store := newTestService()
	registerUser(t, svc, "ada@example.com")

	_, err := svc.Register(context.Background(), service.RegisterInput{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "ada@example.com",
		Password:  "cobol-compiler",
	})
	require.Error(t, err)

	svcErr, ok := err.(*service.Error)
	require.True(t, ok)
	require.Equal(t, 422, svcErr.StatusCode)
	require.Len(t, svcErr.Fields, 1)
	require.Equal(t, "email", svcErr.Fields[0].Field)

	require.Equal(t, 1, store.userCount())
}

func TestRegisterCollectsAllFieldErrors(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), service.RegisterInput{Email: "not-an-email"})
	require.Error(t, err)

	svcErr, ok := err.(*service.Error)
	require.True(t, ok)
	require.Equal(t, 422, svcErr.StatusCode)

	violated := make(map[string]bool)
	for _, f := range svcErr.Fields {
		violated[f.Field] = true
	}
	require.True(t, violated["firstName"])
	require.True(t, violated["lastName"])
	require.True(t, violated["email"])
	require.True(t, violated["password"])
}

func TestLoginDoesNotLeakAccountExistence(t *testing.T) {
	svc, _ := newTestService()
	registerUser(t, svc, "ada@example.com")

	_, wrongPassword := authError(t, svc, "ada@example.com", "wrong-password")
	_, unknownEmail := authError(t, svc, "nobody@example.com", "analytical-engine")
	require.Equal(t, wrongPassword, unknownEmail)
}

func authError(t *testing.T, svc *service.IdentityService, email, pass string) (int, []service.FieldError) {
	t.Helper()
	_, err := svc.Login(context.Background(), service.LoginInput{Email: email, Password: pass})
	require.Error(t, err)
	svcErr, ok := err.(*service.Error)
	require.True(t, ok)
	return svcErr.StatusCode, svcErr.Fields
}

func TestLoginWithCorrectCredentials(t *testing.T) {
	svc, _ := newTestService()
	registered := registerUser(t, svc, "ada@example.com")

	data, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "ada@example.com",
		Password: "analytical-engine",
	})
	require.NoError(t, err)
	require.NotEmpty(t, data.AccessToken)
	require.Equal(t, registered.User.UserID, data.User.UserID)

	user, err := svc.Authenticate(context.Background(), data.AccessToken)
	require.NoError(t, err)
	require.Equal(t, registered.User.UserID, user.ID.String())
}

func TestGetVisibleUserScoping(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	registerUser(t, svc, "ada@example.com")
	grace := registerUser(t, svc, "grace@example.com")
	alan := registerUser(t, svc, "alan@example.com")

	adaUser, err := store.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)

	org, err := svc.CreateOrganization(ctx, adaUser, service.OrganizationInput{Name: "Engine Room"})
	require.NoError(t, err)
	require.NoError(t, svc.AddMember(ctx, adaUser, org.OrgID, service.AddMemberInput{UserID: grace.User.UserID}))

	// Shared org: visible.
	view, err := svc.GetVisibleUser(ctx, adaUser, grace.User.UserID)
	require.NoError(t, err)
	require.Equal(t, "grace@example.com", view.Email)

	// No shared org: reported as not found even though the user exists.
	_, err = svc.GetVisibleUser(ctx, adaUser, alan.User.UserID)
	requireNotFound(t, err)

	// Self-lookup succeeds without any membership.
	alanUser, err := store.GetByEmail(ctx, "alan@example.com")
	require.NoError(t, err)
	self, err := svc.GetVisibleUser(ctx, alanUser, alan.User.UserID)
	require.NoError(t, err)
	require.Equal(t, "alan@example.com", self.Email)

	// Nonexistent id behaves exactly like an invisible one.
	_, err = svc.GetVisibleUser(ctx, adaUser, uuid.NewString())
	requireNotFound(t, err)

	_, err = svc.GetVisibleUser(ctx, adaUser, "not-a-uuid")
	requireNotFound(t, err)
}

func TestCreateOrganizationAttachesCreator(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	registerUser(t, svc, "ada@example.com")
	adaUser, err := store.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)

	created, err := svc.CreateOrganization(ctx, adaUser, service.OrganizationInput{
		Name:        "Engine Room",
		Description: "difference engines only",
	})
	require.NoError(t, err)
	require.Equal(t, "Engine Room", created.Name)
	require.Equal(t, "difference engines only", created.Description)

	orgs, err := svc.ListOrganizations(ctx, adaUser)
	require.NoError(t, err)
	require.Len(t, orgs, 1)
	require.Equal(t, created.OrgID, orgs[0].OrgID)

	retrieved, err := svc.GetOrganization(ctx, adaUser, created.OrgID)
	require.NoError(t, err)
	require.Equal(t, created, retrieved)
}

func TestGetOrganizationOutsideMembershipIsNotFound(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	registerUser(t, svc, "ada@example.com")
	registerUser(t, svc, "grace@example.com")
	adaUser, err := store.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	graceUser, err := store.GetByEmail(ctx, "grace@example.com")
	require.NoError(t, err)

	org, err := svc.CreateOrganization(ctx, adaUser, service.OrganizationInput{Name: "Engine Room"})
	require.NoError(t, err)

	_, err = svc.GetOrganization(ctx, graceUser, org.OrgID)
	requireNotFound(t, err)

	orgs, err := svc.ListOrganizations(ctx, graceUser)
	require.NoError(t, err)
	require.Empty(t, orgs)
}

func TestAddMemberIsIdempotent(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	registerUser(t, svc, "ada@example.com")
	grace := registerUser(t, svc, "grace@example.com")
	adaUser, err := store.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)

	org, err := svc.CreateOrganization(ctx, adaUser, service.OrganizationInput{Name: "Engine Room"})
	require.NoError(t, err)

	require.NoError(t, svc.AddMember(ctx, adaUser, org.OrgID, service.AddMemberInput{UserID: grace.User.UserID}))
	require.Equal(t, 2, store.memberCount(org.OrgID))

	require.NoError(t, svc.AddMember(ctx, adaUser, org.OrgID, service.AddMemberInput{UserID: grace.User.UserID}))
	require.Equal(t, 2, store.memberCount(org.OrgID))
}

func TestAddMemberUnknownUser(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	registerUser(t, svc, "ada@example.com")
	adaUser, err := store.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)

	org, err := svc.CreateOrganization(ctx, adaUser, service.OrganizationInput{Name: "Engine Room"})
	require.NoError(t, err)

	err = svc.AddMember(ctx, adaUser, org.OrgID, service.AddMemberInput{UserID: uuid.NewString()})
	require.Error(t, err)
	svcErr, ok := err.(*service.Error)
	require.True(t, ok)
	require.Equal(t, 404, svcErr.StatusCode)
	require.Equal(t, "User not found", svcErr.Status)
	require.Equal(t, 1, store.memberCount(org.OrgID))
}

func TestCreateSuperuserForcesFlags(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	input := service.RegisterInput{
		FirstName: "Root",
		LastName:  "Admin",
		Email:     "root@example.com",
		Password:  "super-secret-pass",
	}

	_, err := svc.CreateSuperuser(ctx, input, service.SuperuserFlags{IsSuperuser: true, IsAdmin: true})
	require.Error(t, err)

	view, err := svc.CreateSuperuser(ctx, input, service.SuperuserFlags{IsSuperuser: true, IsAdmin: true, IsStaff: true})
	require.NoError(t, err)

	stored, err := store.GetByEmail(ctx, view.Email)
	require.NoError(t, err)
	require.True(t, stored.IsSuperuser)
	require.True(t, stored.IsAdmin)
	require.True(t, stored.IsStaff)
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Authenticate(context.Background(), "garbage")
	require.Error(t, err)
	svcErr, ok := err.(*service.Error)
	require.True(t, ok)
	require.Equal(t, 401, svcErr.StatusCode)
}

func requireNotFound(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	svcErr, ok := err.(*service.Error)
	require.True(t, ok)
	require.Equal(t, 404, svcErr.StatusCode)
}

// memoryStore implements both repositories against in-process maps.
type memoryStore struct {
	users   map[uuid.UUID]domain.User
	byEmail map[string]uuid.UUID
	orgs    map[uuid.UUID]domain.Organization
	members map[uuid.UUID]map[uuid.UUID]struct{}
}

var (
	_ repository.UserRepository = (*memoryStore)(nil)
	_ repository.OrgRepository  = (*memoryStore)(nil)
)

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:   make(map[uuid.UUID]domain.User),
		byEmail: make(map[string]uuid.UUID),
		orgs:    make(map[uuid.UUID]domain.Organization),
		members: make(map[uuid.UUID]map[uuid.UUID]struct{}),
	}
}

func (m *memoryStore) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if _, exists := m.byEmail[user.Email]; exists {
		return domain.User{}, domain.ErrEmailTaken
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	m.users[user.ID] = user
	m.byEmail[user.Email] = user.ID
	return user, nil
}

func (m *memoryStore) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	id, ok := m.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return m.users[id], nil
}

func (m *memoryStore) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return user, nil
}

func (m *memoryStore) GetVisible(ctx context.Context, viewerID, targetID uuid.UUID) (domain.User, error) {
	target, ok := m.users[targetID]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	if viewerID == targetID {
		return target, nil
	}
	for _, users := range m.members {
		_, hasViewer := users[viewerID]
		_, hasTarget := users[targetID]
		if hasViewer && hasTarget {
			return target, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (m *memoryStore) CreateWithMember(ctx context.Context, org domain.Organization, creatorID uuid.UUID) (domain.Organization, error) {
	now := time.Now()
	org.CreatedAt = now
	org.UpdatedAt = now
	m.orgs[org.ID] = org
	m.members[org.ID] = map[uuid.UUID]struct{}{creatorID: {}}
	return org, nil
}

func (m *memoryStore) GetForUser(ctx context.Context, userID, orgID uuid.UUID) (domain.Organization, error) {
	users, ok := m.members[orgID]
	if !ok {
		return domain.Organization{}, domain.ErrNotFound
	}
	if _, member := users[userID]; !member {
		return domain.Organization{}, domain.ErrNotFound
	}
	return m.orgs[orgID], nil
}

func (m *memoryStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Organization, error) {
	var orgs []domain.Organization
	for orgID, users := range m.members {
		if _, member := users[userID]; member {
			orgs = append(orgs, m.orgs[orgID])
		}
	}
	return orgs, nil
}

func (m *memoryStore) AddMember(ctx context.Context, orgID, userID uuid.UUID) error {
	users, ok := m.members[orgID]
	if !ok {
		users = make(map[uuid.UUID]struct{})
		m.members[orgID] = users
	}
	users[userID] = struct{}{}
	return nil
}

func (m *memoryStore) userCount() int { return len(m.users) }

func (m *memoryStore) memberCount(rawOrgID string) int {
	orgID, err := uuid.Parse(rawOrgID)
	if err != nil {
		return -1
	}
	return len(m.members[orgID])
}
