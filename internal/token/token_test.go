package token_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/devffery/task-two/internal/domain"
	"github.com/devffery/task-two/internal/token"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestIssueAndValidateRoundTrip(t *testing.T) {
	issuer := token.NewIssuer(testSecret, "identity-api", time.Hour)
	user := domain.User{ID: uuid.New(), Email: "user@example.com", IsAdmin: true}

	signed, err := issuer.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	userID, claims, err := issuer.Validate(signed)
	require.NoError(t, err)
	require.Equal(t, user.ID, userID)
	require.Equal(t, user.Email, claims.Email)
	require.True(t, claims.IsAdmin)
	require.False(t, claims.IsSuperuser)
}

func TestValidateRejectsForgedSignature(t *testing.T) {
	issuer := token.NewIssuer(testSecret, "identity-api", time.Hour)
	other := token.NewIssuer("ffffffffffffffffffffffffffffffff", "identity-api", time.Hour)

	signed, err := other.Issue(domain.User{ID: uuid.New(), Email: "user@example.com"})
	require.NoError(t, err)

	_, _, err = issuer.Validate(signed)
	require.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	issuer := token.NewIssuer(testSecret, "identity-api", -time.Minute)

	signed, err := issuer.Issue(domain.User{ID: uuid.New(), Email: "user@example.com"})
	require.NoError(t, err)

	_, _, err = issuer.Validate(signed)
	require.Error(t, err)
}

func TestValidateRejectsWrongIssuer(t *testing.T) {
	issuer := token.NewIssuer(testSecret, "identity-api", time.Hour)
	other := token.NewIssuer(testSecret, "someone-else", time.Hour)

	signed, err := other.Issue(domain.User{ID: uuid.New(), Email: "user@example.com"})
	require.NoError(t, err)

	_, _, err = issuer.Validate(signed)
	require.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	issuer := token.NewIssuer(testSecret, "identity-api", time.Hour)

	_, _, err := issuer.Validate("not.a.jwt")
	require.Error(t, err)
}
