// Package promise provides a single-resolution value that many goroutines can
// wait on.
//
// A Promise is resolved exactly once; a second Resolve is reported as
// ErrAlreadyResolved so callers can treat it as an internal consistency
// failure. Waiters block in Await until the value arrives or their context
// ends. Group hands out one shared Promise per key, so a waiter and the
// eventual resolver meet on the same instance regardless of which arrives first.
package promise
