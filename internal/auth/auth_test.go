package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmensah/signify/internal/auth"
	"github.com/kmensah/signify/internal/models"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := auth.HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.True(t, auth.CheckPassword(hash, "correct horse battery"))
	assert.False(t, auth.CheckPassword(hash, "wrong password"))
	assert.False(t, auth.CheckPassword("", "anything"))
}

func TestTokenIssueAndVerify(t *testing.T) {
	m := auth.NewTokenManager("test-secret", time.Hour)
	user := &models.User{ID: "user-1", Role: models.RoleTeacher}

	token, err := m.Issue(user)
	require.NoError(t, err)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.RoleTeacher, claims.Role)
}

func TestTokenExpired(t *testing.T) {
	m := auth.NewTokenManager("test-secret", -time.Minute)
	token, err := m.Issue(&models.User{ID: "user-1", Role: models.RoleStudent})
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := auth.NewTokenManager("secret-a", time.Hour).Issue(&models.User{ID: "u", Role: models.RoleIndividual})
	require.NoError(t, err)

	_, err = auth.NewTokenManager("secret-b", time.Hour).Verify(token)
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestTokenGarbage(t *testing.T) {
	m := auth.NewTokenManager("test-secret", time.Hour)
	_, err := m.Verify("not-a-token")
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestNewCode(t *testing.T) {
	code := auth.NewCode("TCHR")
	require.True(t, strings.HasPrefix(code, "TCHR-"))
	assert.Len(t, code, len("TCHR-")+5)

	// No ambiguous characters.
	for _, c := range strings.TrimPrefix(code, "TCHR-") {
		assert.NotContains(t, "0O1I", string(c))
	}

	// Vanishingly unlikely to collide.
	assert.NotEqual(t, auth.NewCode("STD"), auth.NewCode("STD"))
}
