package parsecache

import (
	"context"
	"time"

	c "github.com/unkn0wn-root/parsecache/codec"
	st "github.com/unkn0wn-root/parsecache/store"
)

// Cache is the high-level memoization facade over a shared key-value store.
// V is the caller's parsed-result type. Serialization is handled by a
// pluggable Codec[V]; JSON is the default.
//
// Every read/write operation degrades to its documented zero result when the
// store is unreachable or fails mid-call. Close is the only method that
// reports an error.
type Cache[V any] interface {
	// Enabled reports whether the construction-time connectivity probe
	// succeeded. A disabled client never becomes enabled again.
	Enabled() bool

	// Get returns the cached result for content, or ok=false on a miss.
	// Presence/absence is counted against the shared hit/miss counters.
	Get(ctx context.Context, content string) (v V, ok bool)

	// Set stores the result for content. ttl <= 0 uses the client default.
	// A later Set on the same content overwrites (last write wins).
	Set(ctx context.Context, content string, value V, ttl time.Duration) bool

	// SetBatch writes all items in one pipelined round trip and returns the
	// number of items submitted. Accounting is all-or-nothing: any failure
	// aborts the batch and returns 0, with no partial-success reporting.
	// An empty slice returns 0 without touching the store.
	SetBatch(ctx context.Context, items []Item[V], ttl time.Duration) int

	// Invalidate deletes every key matching the glob-style pattern and
	// returns the number deleted. An empty pattern means the whole content
	// namespace ("<prefix>:*"). Stats counters are not part of the
	// namespace and survive.
	Invalidate(ctx context.Context, pattern string) int

	// Stats reads the shared counters. On a disabled client the snapshot
	// has Enabled=false, which is distinct from "no traffic yet".
	Stats(ctx context.Context) Stats

	// ResetStats zeroes both counters. The two writes are not atomic as a
	// pair; a concurrent increment between them can be lost.
	ResetStats(ctx context.Context) bool

	// Close releases the underlying store connection.
	Close(ctx context.Context) error
}

// Item pairs raw content with its computed result for batch writes.
type Item[V any] struct {
	Content string
	Result  V
}

// Options tune a cache client. The zero value is usable: configuration
// resolves from the environment and a Redis store is dialed from it.
type Options[V any] struct {
	// Config addresses the store and sets the default TTL. Zero fields
	// resolve env-first, then to built-in defaults (see ConfigFromEnv).
	Config Config

	// Prefix namespaces every content key. Empty => DefaultPrefix.
	Prefix string

	Codec  c.Codec[V] // nil => codec.JSON[V]{}
	Logger Logger     // nil => NopLogger
	Hooks  Hooks      // nil => NopHooks

	// Store overrides the dialed Redis store. Mostly for tests, or for
	// substituting another backend that speaks the same command surface.
	// The client still probes it with Ping before first use.
	Store st.Store
}

// New builds a cache client and probes connectivity once. A failed probe
// yields a permanently disabled client rather than an error: callers must
// be able to run uncached without special-casing construction.
func New[V any](opts Options[V]) Cache[V] {
	return newClient[V](opts)
}
