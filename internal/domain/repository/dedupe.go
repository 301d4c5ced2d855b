package repository

import "context"

// InteractionDeduper screens out redelivered button interactions before they
// reach the vote path, keyed by the platform's interaction ID. The
// store-level vote guard remains authoritative.
type InteractionDeduper interface {
	// FirstDelivery reports whether this interaction ID has not been seen yet.
	FirstDelivery(ctx context.Context, interactionID string) (bool, error)
}

// Pinger reports reachability of the backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}
