// Package testutil holds small helpers shared by the test suites.
package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds a single unit test.
const DefaultTimeout = 5 * time.Second

// Context returns a context that expires with the test deadline, or
// after DefaultTimeout when the test has none.
func Context(t testing.TB) context.Context {
	t.Helper()
	timeout := DefaultTimeout
	if d, ok := t.(interface{ Deadline() (time.Time, bool) }); ok {
		if deadline, ok := d.Deadline(); ok {
			if remaining := time.Until(deadline) - time.Second; remaining > 0 && remaining < timeout {
				timeout = remaining
			}
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}
