package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podryad/podryad/internal/auth"
	"github.com/podryad/podryad/internal/domain"
)

func TestIssueAndVerify(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", time.Hour)

	token, err := tm.Issue(&domain.User{ID: "11111111-1111-1111-1111-111111111111", IsStaff: true})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	actor, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", actor.ID)
	assert.True(t, actor.IsStaff)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := auth.NewTokenManager("secret-a", time.Hour).
		Issue(&domain.User{ID: "u-1"})
	require.NoError(t, err)

	_, err = auth.NewTokenManager("secret-b", time.Hour).Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", -time.Minute)
	token, err := tm.Issue(&domain.User{ID: "u-1"})
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", time.Hour)
	_, err := tm.Verify("not.a.token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, auth.CheckPassword(hash, "s3cret-pass"))
	assert.False(t, auth.CheckPassword(hash, "wrong"))
}
