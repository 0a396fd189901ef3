package port

import "context"

// TransitionGuard tracks orders with an in-flight status transition and
// rejects a second attempt on the same order until the first releases.
type TransitionGuard interface {
	// TryAcquire returns false when a transition for orderID is
	// already in flight.
	TryAcquire(ctx context.Context, orderID int64) (bool, error)

	// Release removes orderID from the in-flight set. It must be
	// called on every exit path of a transition.
	Release(ctx context.Context, orderID int64) error
}
