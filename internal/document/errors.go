// errors.go defines the error returned for store failures.
//
// Callers see a generic message so driver and SQL details do not leak into
// CLI output or MCP responses. The cause is logged before wrapping and stays
// reachable through errors.Is and errors.As.

package document

import "fmt"

// StoreError reports a failed store operation.
type StoreError struct {
	Op  string // operation name, e.g. "rename"
	Err error  // underlying cause
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: store operation failed", e.Op)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
