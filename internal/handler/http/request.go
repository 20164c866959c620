package http

import (
	"net/http"
	"strconv"

	"github.com/sitecrew/workforce-backend/internal/domain/auth"
	"github.com/sitecrew/workforce-backend/internal/domain/user"
	"github.com/sitecrew/workforce-backend/internal/handler/http/middleware"
	"github.com/sitecrew/workforce-backend/internal/handler/http/response"
	"github.com/sitecrew/workforce-backend/internal/pkg/validator"
)

// requester returns the authenticated caller, writing a 401 when missing.
func requester(w http.ResponseWriter, r *http.Request) (user.Requester, bool) {
	req, ok := middleware.RequesterFrom(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
	}
	return req, ok
}

func queryString(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

// queryInt returns 0 for a missing value so DTO defaults apply. A value
// that is not an integer is recorded in errs.
func queryInt(r *http.Request, key string, errs *validator.ValidationErrors) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, validator.ValidationError{Field: key, Message: key + " must be a number"})
		return 0
	}
	return n
}

func queryBool(r *http.Request, key string, errs *validator.ValidationErrors) *bool {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, validator.ValidationError{Field: key, Message: key + " must be true or false"})
		return nil
	}
	return &b
}
