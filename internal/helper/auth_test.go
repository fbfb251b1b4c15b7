package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	auth := SetupAuth("test-secret")

	token, err := auth.GenerateToken("65f1c0ffee0000000000beef", "student@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "65f1c0ffee0000000000beef", claims.UserID)
	assert.Equal(t, "student@example.com", claims.Email)

	// bearer prefix is accepted too
	claims, err = auth.VerifyToken("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "student@example.com", claims.Email)
}

func TestVerifyTokenRejectsBadInput(t *testing.T) {
	auth := SetupAuth("test-secret")

	_, err := auth.VerifyToken("")
	assert.Error(t, err)

	_, err = auth.VerifyToken("not-a-jwt")
	assert.Error(t, err)

	token, err := auth.GenerateToken("65f1c0ffee0000000000beef", "student@example.com")
	require.NoError(t, err)

	other := SetupAuth("different-secret")
	_, err = other.VerifyToken(token)
	assert.Error(t, err)
}

func TestGenerateTokenRequiresInputs(t *testing.T) {
	auth := SetupAuth("test-secret")

	_, err := auth.GenerateToken("", "student@example.com")
	assert.Error(t, err)

	_, err = auth.GenerateToken("65f1c0ffee0000000000beef", "")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	auth := SetupAuth("test-secret")

	hashed, err := auth.HashPassword("s3cure-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cure-pass", hashed)

	assert.NoError(t, auth.VerifyPassword("s3cure-pass", hashed))
	assert.Error(t, auth.VerifyPassword("wrong-pass", hashed))
}
