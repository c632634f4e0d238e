package dedupe

import "context"

// Store remembers event keys for a TTL
type Store interface {
	// Seen records key and reports whether it was already recorded within
	// the TTL.
	Seen(ctx context.Context, key string) (bool, error)
	// Forget drops key so the next Seen for it returns false
	Forget(ctx context.Context, key string) error
	Close() error
}
