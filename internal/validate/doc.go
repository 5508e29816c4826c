// Package validate provides input validation for docver's domain types.
//
// This package enforces data integrity rules at the boundary between caller
// input and the storage layer. Every check runs before any statement is
// issued, so a rejected call performs zero writes.
//
// # Validation Functions
//
// Struct applies the validate tags on an input struct (required fields,
// positive identifiers). Name validates a document name. FilePath validates
// and normalises a version's stored path. ID and ParseID check document
// identifiers, and Date parses caller-supplied timestamps.
//
// # Error Handling
//
// All failures are returned as *Error, which records the offending field
// and wraps one of the sentinel errors defined in errors.go. Every *Error
// also matches ErrInvalid, so callers can branch on the category alone:
//
//	if errors.Is(err, validate.ErrInvalid) {
//	    // reject the request, nothing was written
//	}
package validate
