package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/sitecrew/workforce-backend/internal/domain/user"
	"github.com/sitecrew/workforce-backend/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (http.Handler, jwt.Service) {
	t.Helper()
	jwtService := jwt.NewJWTService("middleware-test-secret", "1h")

	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
	r.Use(AuthRequired(jwtService.JWTAuth()))
	r.Get("/whoami", func(w http.ResponseWriter, r *http.Request) {
		requester, ok := RequesterFrom(r.Context())
		require.True(t, ok)
		w.Write([]byte(requester.ID + ":" + string(requester.Role)))
	})
	r.With(RequirePermission(user.PermissionReportsView)).Get("/reports", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r, jwtService
}

func doRequest(h http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired(t *testing.T) {
	h, jwtService := newTestRouter(t)

	rec := doRequest(h, "/whoami", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(h, "/whoami", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, _, err := jwtService.GenerateAccessToken("lab-1", user.RoleLaborer)
	require.NoError(t, err)
	rec = doRequest(h, "/whoami", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "lab-1:laborer", rec.Body.String())

	_, foreign, err := jwtauth.New("HS256", []byte("other-secret"), nil).Encode(map[string]interface{}{"user_id": "x", "role": "admin", "type": "access"})
	require.NoError(t, err)
	rec = doRequest(h, "/whoami", foreign)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequirePermission(t *testing.T) {
	h, jwtService := newTestRouter(t)

	laborer, _, err := jwtService.GenerateAccessToken("lab-1", user.RoleLaborer)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, doRequest(h, "/reports", laborer).Code)

	supervisor, _, err := jwtService.GenerateAccessToken("sup-1", user.RoleSupervisor)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, doRequest(h, "/reports", supervisor).Code)
}
