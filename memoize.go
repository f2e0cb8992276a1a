package parsecache

import "context"

// ComputeFunc produces the parsed result for one piece of content. It must
// be deterministic in content: the cache stores its output keyed by the
// content alone, so nothing else may influence the result.
type ComputeFunc[V any] func(ctx context.Context, content string) (V, error)

// Memoize wraps compute so repeated calls with the same content are served
// from the cache. On a miss the result is computed and written back with the
// client's default TTL (best effort; a failed write only costs a future
// recomputation). A compute error is returned as-is and nothing is cached.
//
// A disabled cache is short-circuited before any store round trip, so the
// wrapper adds no overhead when caching is off.
//
// No lock guards the get-compute-set sequence: two callers racing on the
// same content may both compute and both write. The later write wins, which
// is harmless for a deterministic, side-effect-free compute.
func Memoize[V any](cache Cache[V], compute ComputeFunc[V]) ComputeFunc[V] {
	return func(ctx context.Context, content string) (V, error) {
		if !cache.Enabled() {
			return compute(ctx, content)
		}
		if v, ok := cache.Get(ctx, content); ok {
			return v, nil
		}
		v, err := compute(ctx, content)
		if err != nil {
			return v, err
		}
		cache.Set(ctx, content, v, 0)
		return v, nil
	}
}
