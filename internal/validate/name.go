// name.go validates document names.
//
// A document name becomes a folder segment and a filename stem during a
// rename, so it must be a single path segment.

package validate

import "strings"

// Name validates a document name.
//
// Validation rules:
//   - Empty or whitespace-only names rejected
//   - Leading or trailing whitespace rejected
//   - Null bytes and path separators rejected (the name is one segment)
//   - "." and ".." rejected (they would collapse during path normalisation)
//   - Max length enforced if maxLen > 0
func Name(n string, maxLen int) error {
	if strings.TrimSpace(n) == "" {
		return fail("name", ErrRequired)
	}
	if n != strings.TrimSpace(n) {
		return fail("name", ErrInvalidName)
	}
	if strings.ContainsRune(n, 0) || strings.ContainsAny(n, `/\`) {
		return fail("name", ErrInvalidName)
	}
	if n == "." || n == ".." {
		return fail("name", ErrInvalidName)
	}
	if maxLen > 0 && len(n) > maxLen {
		return fail("name", ErrTooLong)
	}
	return nil
}
