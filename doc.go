// Package parsecache memoizes an expensive, deterministic parsing step in a
// shared Redis database.
//
// Content is hashed into a namespaced key ("sanskrit_parse:<hex16>" by
// default), parsed results are stored as JSON text with a TTL, and hit/miss
// counters live in the same logical database so every process pointed at it
// shares one set of metrics.
//
// The cache is strictly an optimization layer. A client that cannot reach
// the store at construction time is permanently disabled and every operation
// becomes a cheap no-op; a call that fails mid-flight degrades to its
// documented zero result (miss, false, 0). Callers never see an error on the
// read/write path; cache trouble shows up as a lower hit rate, not a crash.
//
// Typical use wraps the parser once:
//
//	cache := parsecache.New[Verse](parsecache.Options[Verse]{})
//	defer cache.Close(ctx)
//
//	parse := parsecache.Memoize(cache, parseVerse)
//	v, err := parse(ctx, content) // computed once, served from Redis after
package parsecache
