package auth

import (
	"context"
	"testing"

	"github.com/phrazzld/libris-api/internal/config"
	"github.com/stretchr/testify/require"
)

// DefaultJWTConfig returns a standard configuration for JWT authentication suitable for testing.
func DefaultJWTConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            "test-jwt-secret-that-is-32-chars-long",
		TokenLifetimeMinutes: 60,
		BCryptCost:           4,
	}
}

// RequireTestJWTService creates a JWT service from DefaultJWTConfig and
// fails the test if that is not possible.
func RequireTestJWTService(t *testing.T) JWTService {
	t.Helper()
	svc, err := NewJWTService(DefaultJWTConfig())
	require.NoError(t, err, "Failed to create test JWT service")
	return svc
}

// GenerateAuthHeaderForTestingT creates an Authorization header value with
// a valid bearer token for the user, signed with DefaultJWTConfig.
func GenerateAuthHeaderForTestingT(t *testing.T, userID int64, username string) string {
	t.Helper()
	token, err := RequireTestJWTService(t).GenerateToken(context.Background(), userID, username)
	require.NoError(t, err, "Failed to generate auth header")
	return "Bearer " + token
}
