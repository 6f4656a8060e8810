// Package ratelimit provides a bounded-TTL request counter keyed by
// client identity, with in-memory and redis backends. It lives entirely
// outside the grading engine; the engine itself is pure computation.
package ratelimit

import "context"

// Store answers whether a key may make another request within the
// configured sliding window. Implementations record the request as a
// side effect when they allow it.
type Store interface {
	Allow(ctx context.Context, key string) (bool, error)
}
