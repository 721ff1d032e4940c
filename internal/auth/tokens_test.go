package auth

import (
	"testing"
	"time"

	"fieldbook/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAccessSecret  = "test-access-secret"
	testRefreshSecret = "test-refresh-secret"
)

func testUser() *models.User {
	return &models.User{
		ID:          42,
		Email:       "ada@example.com",
		FirstName:   "Ada",
		LastName:    "Lovelace",
		PhoneNumber: "5551234567",
		IsAdmin:     true,
	}
}

func TestNewAccessToken_Claims(t *testing.T) {
	signed, jti, err := NewAccessToken(testUser(), testAccessSecret)
	require.NoError(t, err)
	require.NotEmpty(t, signed)
	require.NotEmpty(t, jti)

	token, err := jwt.Parse(signed, func(token *jwt.Token) (any, error) {
		return []byte(testAccessSecret), nil
	}, jwt.WithIssuer(Issuer), jwt.WithAudience(Audience))
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "42", claims["sub"])
	assert.Equal(t, true, claims["is_admin"])
	assert.Equal(t, "Ada", claims["first_name"])
	assert.Equal(t, "Lovelace", claims["last_name"])
	assert.Equal(t, "5551234567", claims["phone_number"])
	assert.Equal(t, jti, claims["jti"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	remaining := time.Until(exp.Time)
	assert.Greater(t, remaining, 14*time.Minute)
	assert.LessOrEqual(t, remaining, AccessTokenTTL)
}

func TestNewAccessToken_EmptySecret(t *testing.T) {
	_, _, err := NewAccessToken(testUser(), "")
	assert.Error(t, err)
}

func TestNewRefreshToken_RoundTrip(t *testing.T) {
	signed, jti, err := NewRefreshToken(42, testRefreshSecret)
	require.NoError(t, err)

	userID, parsedJTI, err := ParseRefreshToken(signed, testRefreshSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
	assert.Equal(t, jti, parsedJTI)
}

func TestNewRefreshToken_Expiry(t *testing.T) {
	signed, _, err := NewRefreshToken(7, testRefreshSecret)
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(token *jwt.Token) (any, error) {
		return []byte(testRefreshSecret), nil
	})
	require.NoError(t, err)

	exp, err := token.Claims.(jwt.MapClaims).GetExpirationTime()
	require.NoError(t, err)
	remaining := time.Until(exp.Time)
	assert.Greater(t, remaining, RefreshTokenTTL-time.Minute)
	assert.LessOrEqual(t, remaining, RefreshTokenTTL)
}

func TestParseRefreshToken_WrongSecret(t *testing.T) {
	signed, _, err := NewRefreshToken(7, testRefreshSecret)
	require.NoError(t, err)

	_, _, err = ParseRefreshToken(signed, "some-other-secret")
	assert.Error(t, err)
}

func TestParseRefreshToken_AccessTokenRejectedAcrossSecrets(t *testing.T) {
	// An access token must never pass refresh verification: the secrets differ.
	signed, _, err := NewAccessToken(testUser(), testAccessSecret)
	require.NoError(t, err)

	_, _, err = ParseRefreshToken(signed, testRefreshSecret)
	assert.Error(t, err)
}

func TestParseRefreshToken_Malformed(t *testing.T) {
	_, _, err := ParseRefreshToken("not-a-token", testRefreshSecret)
	assert.Error(t, err)
}

func TestNewJTI_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		jti := newJTI()
		assert.False(t, seen[jti])
		seen[jti] = true
	}
}
