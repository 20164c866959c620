package auth

import (
	"context"
	"testing"

	"github.com/sitecrew/workforce-backend/internal/domain/auth"
	"github.com/sitecrew/workforce-backend/internal/domain/user"
	"github.com/sitecrew/workforce-backend/internal/pkg/jwt"
	"github.com/sitecrew/workforce-backend/internal/pkg/validator"
	"github.com/sitecrew/workforce-backend/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret    = "test-secret-key-for-jwt"
	testAccessExp = "1h"
	testPassword  = "correct horse"
)

func setupAuth(t *testing.T) (auth.AuthService, jwt.Service) {
	t.Helper()
	ctx := context.Background()
	users := memory.NewUserRepository(memory.NewStore())

	hash, err := HashPassword(testPassword)
	require.NoError(t, err)

	_, err = users.Create(ctx, user.User{ID: "sup-1", Email: "foreman@example.com", PasswordHash: &hash, Role: user.RoleSupervisor, IsActive: true})
	require.NoError(t, err)
	_, err = users.Create(ctx, user.User{ID: "lab-9", Email: "former@example.com", PasswordHash: &hash, Role: user.RoleLaborer, IsActive: false})
	require.NoError(t, err)
	_, err = users.Create(ctx, user.User{ID: "lab-0", Email: "nopass@example.com", Role: user.RoleLaborer, IsActive: true})
	require.NoError(t, err)

	jwtService := jwt.NewJWTService(testSecret, testAccessExp)
	return NewAuthService(users, jwtService), jwtService
}

func TestLogin_Success(t *testing.T) {
	svc, jwtService := setupAuth(t)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{Email: "foreman@example.com", Password: testPassword})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.InDelta(t, 3600, resp.ExpiresIn, 5)
	assert.Equal(t, "sup-1", resp.User.ID)
	assert.Equal(t, "supervisor", resp.User.Role)

	token, err := jwtService.JWTAuth().Decode(resp.AccessToken)
	require.NoError(t, err)
	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)

	requester, err := jwt.RequesterFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, user.Requester{ID: "sup-1", Role: user.RoleSupervisor}, requester)
}

func TestLogin_Failures(t *testing.T) {
	svc, _ := setupAuth(t)

	tests := []struct {
		name    string
		req     auth.LoginRequest
		wantErr error
	}{
		{"unknown email", auth.LoginRequest{Email: "nobody@example.com", Password: testPassword}, auth.ErrInvalidCredentials},
		{"wrong password", auth.LoginRequest{Email: "foreman@example.com", Password: "wrong"}, auth.ErrInvalidCredentials},
		{"no password set", auth.LoginRequest{Email: "nopass@example.com", Password: testPassword}, auth.ErrInvalidCredentials},
		{"inactive account", auth.LoginRequest{Email: "former@example.com", Password: testPassword}, auth.ErrAccountInactive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "not-an-email"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
}
