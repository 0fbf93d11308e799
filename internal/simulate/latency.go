// Package simulate provides the artificial network latency the storefront
// applies to store and session operations. Latency is a UX affordance only;
// with a zero duration every call completes immediately.
package simulate

import (
	"context"
	"time"
)

// Latency blocks for d or until the context is done.
func Latency(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
