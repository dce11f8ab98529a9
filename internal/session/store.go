package session

import (
	"context"
	"errors"
)

// ErrUnavailable is returned by stores that cannot reach their backing service.
var ErrUnavailable = errors.New("session: storage unavailable")

// Store is one browser's persistent key-value storage.
// Get reports ok=false for a missing key; that is not an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// Backend hands out the Store belonging to a client identifier.
// Implementations must be safe for concurrent use.
type Backend interface {
	Client(clientID string) Store
}
