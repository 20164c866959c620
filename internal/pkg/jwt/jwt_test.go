package jwt

import (
	"context"
	"testing"

	"github.com/sitecrew/workforce-backend/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "15m")

	token, expiresAt, err := svc.GenerateAccessToken("user-1", user.RoleSupervisor)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotZero(t, expiresAt)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)

	requester, err := RequesterFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, user.Requester{ID: "user-1", Role: user.RoleSupervisor}, requester)
}

func TestGenerateAccessTokenBadDuration(t *testing.T) {
	svc := NewJWTService("test-secret", "forever")
	_, _, err := svc.GenerateAccessToken("user-1", user.RoleAdmin)
	assert.Error(t, err)
}

func TestRequesterFromClaims(t *testing.T) {
	_, err := RequesterFromClaims(map[string]interface{}{"user_id": "u", "role": "owner", "type": "access"})
	assert.ErrorIs(t, err, ErrInvalidClaims)

	_, err = RequesterFromClaims(map[string]interface{}{"role": "admin"})
	assert.ErrorIs(t, err, ErrInvalidClaims)

	_, err = RequesterFromClaims(map[string]interface{}{"user_id": "u", "role": "admin", "type": "refresh"})
	assert.ErrorIs(t, err, ErrInvalidClaims)
}
