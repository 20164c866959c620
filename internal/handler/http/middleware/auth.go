package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/sitecrew/workforce-backend/internal/domain/auth"
	"github.com/sitecrew/workforce-backend/internal/domain/user"
	"github.com/sitecrew/workforce-backend/internal/handler/http/response"
	"github.com/sitecrew/workforce-backend/internal/pkg/jwt"
)

type requesterKey struct{}

// WithRequester stores the authenticated caller in ctx.
func WithRequester(ctx context.Context, requester user.Requester) context.Context {
	return context.WithValue(ctx, requesterKey{}, requester)
}

// RequesterFrom returns the caller stored by AuthRequired.
func RequesterFrom(ctx context.Context) (user.Requester, bool) {
	requester, ok := ctx.Value(requesterKey{}).(user.Requester)
	return requester, ok
}

// AuthRequired rejects requests without a valid access token and stores the
// token's user id and role for downstream handlers. It must run after
// jwtauth.Verifier.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			requester, err := jwt.RequesterFromClaims(claims)
			if err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithRequester(r.Context(), requester)))
		}
		return http.HandlerFunc(hfn)
	}
}
