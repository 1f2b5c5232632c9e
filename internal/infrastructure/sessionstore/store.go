package sessionstore

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("session not found")

// Store persists session state as JSON blobs with a TTL. Sessions are the
// only server-held state; losing one simply forces the client to reopen.
type Store interface {
	Put(ctx context.Context, key string, v any, ttl time.Duration) error
	Get(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, key string) error
}
