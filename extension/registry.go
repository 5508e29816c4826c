// registry.go holds the process-wide set of extensions and delivers events
// to them.
//
// Extensions self-register during init(), before main() runs. Registering
// the same name twice panics, following database/sql.Register. Registration
// order is kept so commands, MCP tools and event handlers run in the same
// order on every invocation.

package extension

import "sync"

var (
	mu       sync.RWMutex
	registry = make(map[string]Extension)
	order    []string // registration order
)

// Register adds an extension. Call from init().
func Register(e Extension) {
	mu.Lock()
	defer mu.Unlock()

	name := e.Name()
	if _, exists := registry[name]; exists {
		panic("extension already registered: " + name)
	}

	registry[name] = e
	order = append(order, name)
}

// All returns registered extensions in registration order.
func All() []Extension {
	mu.RLock()
	defer mu.RUnlock()

	exts := make([]Extension, 0, len(order))
	for _, name := range order {
		exts = append(exts, registry[name])
	}
	return exts
}

// Names returns extension names in registration order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, len(order))
	copy(names, order)
	return names
}

// HandlerError records a failed event handler.
type HandlerError struct {
	Extension string
	Err       error
}

func (e *HandlerError) Error() string { return e.Extension + ": " + e.Err.Error() }
func (e *HandlerError) Unwrap() error { return e.Err }

// Dispatch delivers e to every extension implementing EventHandler. A
// failing handler does not stop delivery to the rest; failures are
// returned in registration order.
func Dispatch(ctx Context, e Event) []*HandlerError {
	var failed []*HandlerError
	for _, ext := range All() {
		h, ok := ext.(EventHandler)
		if !ok {
			continue
		}
		if err := h.HandleEvent(ctx, e); err != nil {
			failed = append(failed, &HandlerError{Extension: ext.Name(), Err: err})
		}
	}
	return failed
}
