// Package store defines the key-value command surface parsecache needs from
// its backing store.
//
// The surface is deliberately small: PING, GET, SET, SET-with-expiry (single
// and pipelined), variadic DEL, KEYS and INCR. Any store speaking these
// commands is substitutable; the canonical implementation is store/redis.
//
// Implementations must be value-transparent: Get must return exactly the
// string previously passed to Set/SetWithTTL for a key, with no added
// metadata or re-encoding.
package store

import (
	"context"
	"time"
)

// Entry is one key/value pair in a pipelined batch write.
type Entry struct {
	Key   string
	Value string
}

// Store is a minimal string store with TTLs. Implementations must be safe
// for concurrent use. Mutations are visible to every client of the same
// database as soon as the call returns. Only single commands are atomic: a
// Get followed by a SetWithTTL is not atomic as a pair, while Incr is.
type Store interface {
	// Ping probes connectivity. A store whose Ping has not succeeded must
	// not be used.
	Ping(ctx context.Context) error

	// Get returns (value, true, nil) on hit and ("", false, nil) on miss.
	// IO/remote errors return ("", false, err).
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value without expiry.
	Set(ctx context.Context, key, value string) error

	// SetWithTTL stores value with expiry; the store's own clock owns the
	// entry from then on. ttl <= 0 means no expiry.
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error

	// SetBatch submits all entries under one TTL in a single round trip.
	// A failure aborts the batch as a whole; callers cannot learn which
	// entries, if any, were applied before the fault.
	SetBatch(ctx context.Context, entries []Entry, ttl time.Duration) error

	// DeleteMany removes the keys in one call and returns how many existed.
	DeleteMany(ctx context.Context, keys []string) (int64, error)

	// KeysMatching lists keys matching a glob-style pattern.
	KeysMatching(ctx context.Context, pattern string) ([]string, error)

	// Incr atomically increments the integer at key, creating it at 0.
	Incr(ctx context.Context, key string) (int64, error)

	// Close releases resources.
	Close(ctx context.Context) error
}
