package postgresql

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sitecrew/workforce-backend/internal/domain/access"
	"github.com/sitecrew/workforce-backend/internal/pkg/database"
	"github.com/sitecrew/workforce-backend/internal/pkg/validator"
)

// scopePredicate returns the WHERE fragment restricting column to scope and
// the extended argument list. ok is false when the scope cannot match any
// row, in which case callers skip the query. Ids that are not uuids can
// never match and are dropped before they reach the cast.
func scopePredicate(scope access.Scope, column string, args []interface{}) (clause string, out []interface{}, ok bool) {
	if scope.IsEmpty() {
		return "", args, false
	}
	if scope.IsUnrestricted() {
		return "TRUE", args, true
	}

	requested := scope.EmployeeIDs()
	ids := make([]string, 0, len(requested))
	for _, id := range requested {
		if validator.IsValidUUID(id) {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return "", args, false
	}
	args = append(args, ids)
	return fmt.Sprintf("%s = ANY($%d::uuid[])", column, len(args)), args, true
}

// isNoRows treats a malformed id like a missing row.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || database.IsInvalidTextRepresentation(err)
}
