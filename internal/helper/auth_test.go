package helper

import (
	"testing"

	"github.com/SemiSummit/registration_service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	auth := SetupAuth("test-secret")

	token, err := auth.GenerateToken(42, "dean@summit.edu", domain.RoleFaculty)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.VerifyToken("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "dean@summit.edu", claims.Email)
	assert.Equal(t, string(domain.RoleFaculty), claims.Role)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	token, err := SetupAuth("secret-a").GenerateToken(1, "a@b.c", domain.RoleParticipant)
	require.NoError(t, err)

	_, err = SetupAuth("secret-b").VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsMissing(t *testing.T) {
	auth := SetupAuth("test-secret")

	_, err := auth.VerifyToken("")
	assert.Error(t, err)

	_, err = auth.VerifyToken("Bearer ")
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	auth := SetupAuth("test-secret")

	hash, err := auth.HashPassword("Kd7mXp2Q")
	require.NoError(t, err)
	require.NotEqual(t, "Kd7mXp2Q", hash)

	assert.NoError(t, auth.VerifyPassword("Kd7mXp2Q", hash))
	assert.Error(t, auth.VerifyPassword("wrong", hash))
}
