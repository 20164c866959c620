package validator

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

var uuidRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// IsValidUUID accepts the canonical hyphenated form of any version.
func IsValidUUID(id string) bool {
	return uuidRegex.MatchString(strings.ToLower(id))
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse(DateLayout, dateStr)
	return date, err == nil
}

// DateRange validates a required YYYY-MM-DD range and appends any problems
// to errs. The parsed bounds are returned even when errs grows.
func DateRange(errs *ValidationErrors, startStr, endStr string) (start, end time.Time) {
	var startOK, endOK bool

	if IsEmpty(startStr) {
		*errs = append(*errs, ValidationError{Field: "start_date", Message: "start_date is required"})
	} else if start, startOK = IsValidDate(startStr); !startOK {
		*errs = append(*errs, ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
	}

	if IsEmpty(endStr) {
		*errs = append(*errs, ValidationError{Field: "end_date", Message: "end_date is required"})
	} else if end, endOK = IsValidDate(endStr); !endOK {
		*errs = append(*errs, ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
	}

	if startOK && endOK && end.Before(start) {
		*errs = append(*errs, ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}
	return start, end
}

// OptionalString trims s and returns nil when nothing is left.
func OptionalString(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// MaxPage bounds page so (page-1)*limit cannot overflow an offset.
const MaxPage = 100000

// Pagination applies the default page (1) and limit (20) and rejects
// out-of-range values. The caps follow the list endpoints' contract.
func Pagination(errs *ValidationErrors, page, limit *int) {
	if *page < 0 {
		*errs = append(*errs, ValidationError{Field: "page", Message: "page must be a positive number"})
	}
	if *page > MaxPage {
		*errs = append(*errs, ValidationError{Field: "page", Message: fmt.Sprintf("page must not exceed %d", MaxPage)})
	}
	if *page == 0 {
		*page = 1
	}

	if *limit < 0 {
		*errs = append(*errs, ValidationError{Field: "limit", Message: "limit must be a positive number"})
	}
	if *limit == 0 {
		*limit = 20
	}
	if *limit > 100 {
		*errs = append(*errs, ValidationError{Field: "limit", Message: "limit must not exceed 100"})
	}
}
