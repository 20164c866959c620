package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sitecrew/workforce-backend/internal/domain/access"
	"github.com/sitecrew/workforce-backend/internal/domain/attendance"
	"github.com/sitecrew/workforce-backend/internal/domain/auth"
	"github.com/sitecrew/workforce-backend/internal/domain/leave"
	"github.com/sitecrew/workforce-backend/internal/domain/team"
	"github.com/sitecrew/workforce-backend/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", validator.ValidationErrors{{Field: "date", Message: "date is required"}}, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"wrapped denial", fmt.Errorf("%w: %w", access.ErrPermissionDenied, access.ErrReportsNotAllowed), http.StatusForbidden, "FORBIDDEN"},
		{"not found", attendance.ErrAttendanceNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"duplicate check-in", attendance.ErrDuplicateCheckIn, http.StatusConflict, "CONFLICT"},
		{"already processed", leave.ErrLeaveRequestAlreadyProcessed, http.StatusConflict, "CONFLICT"},
		{"business rule", fmt.Errorf("assign: %w", team.ErrNotALaborer), http.StatusBadRequest, "BAD_REQUEST"},
		{"credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestHandleErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, errors.New("pq: password authentication failed for user app"))
	assert.NotContains(t, rec.Body.String(), "password")
}
