// id.go validates document identifiers and caller-supplied dates.
//
// Identifiers and dates frequently arrive as text (CLI arguments, MCP tool
// arguments), so both have parse helpers that fail with *Error rather than
// a bare strconv or time error.

package validate

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the short date form accepted alongside RFC3339.
const DateLayout = "2006-01-02"

// ID checks that id is a positive store identifier.
func ID(id int64) error {
	if id <= 0 {
		return fail("id", ErrInvalidID)
	}
	return nil
}

// ParseID parses a textual document id.
func ParseID(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fail("id", ErrRequired)
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fail("id", ErrInvalidID)
	}
	return id, nil
}

// Date parses a YYYY-MM-DD or RFC3339 date. Short dates are taken as
// midnight UTC.
func Date(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fail("date", ErrRequired)
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fail("date", ErrInvalidDate)
	}
	return t, nil
}
