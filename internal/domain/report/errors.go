package report

import "errors"

var ErrInvalidStatus = errors.New("status must be one of: pending, approved, rejected")
