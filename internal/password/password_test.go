package password_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/devffery/task-two/internal/password"
)

func TestHashAndVerify(t *testing.T) {
	hasher := password.NewHasher(password.DefaultParams)

	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := hasher.Verify("correct horse battery staple", hash)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = hasher.Verify("wrong password", hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashIsSalted(t *testing.T) {
	hasher := password.NewHasher(password.DefaultParams)

	first, err := hasher.Hash("secret")
	require.NoError(t, err)
	second, err := hasher.Hash("secret")
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	hasher := password.NewHasher(password.DefaultParams)

	_, err := hasher.Verify("secret", "not-a-hash")
	require.Error(t, err)

	_, err = hasher.Verify("secret", "$bcrypt$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA")
	require.Error(t, err)
}
