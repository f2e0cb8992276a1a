package parsecache

import (
	"context"
	"fmt"
	"strconv"

	st "github.com/unkn0wn-root/parsecache/store"
)

// Counter keys. Fixed and un-namespaced: every client pointed at the same
// logical database shares one pair, so hit rate is meaningful across
// processes. Callers sharing the database must not collide with them.
const (
	hitsKey   = "cache_hits"
	missesKey = "cache_misses"
)

// Stats is a point-in-time view of the shared counters. Enabled=false marks
// an inactive cache, not "no traffic yet".
type Stats struct {
	Enabled bool
	Hits    int64
	Misses  int64
	Total   int64
	HitRate string // two-decimal percentage, e.g. "66.67%"
}

func (s Stats) String() string {
	if !s.Enabled {
		return "cache disabled"
	}
	return fmt.Sprintf("hits=%d misses=%d total=%d hit rate %s", s.Hits, s.Misses, s.Total, s.HitRate)
}

// tracker maintains the counters through the store's atomic INCR. It never
// reads before writing, so concurrent recorders cannot lose increments.
type tracker struct {
	store st.Store
	log   Logger
	hooks Hooks
}

func (t *tracker) hit(ctx context.Context)  { t.incr(ctx, hitsKey) }
func (t *tracker) miss(ctx context.Context) { t.incr(ctx, missesKey) }

func (t *tracker) incr(ctx context.Context, key string) {
	if _, err := t.store.Incr(ctx, key); err != nil {
		t.hooks.StoreError("incr", key, err)
		t.log.Debug("counter increment failed", Fields{"key": key, "err": err})
	}
}

func (t *tracker) snapshot(ctx context.Context) Stats {
	hits := t.counter(ctx, hitsKey)
	misses := t.counter(ctx, missesKey)
	total := hits + misses
	rate := "0.00%"
	if total > 0 {
		rate = fmt.Sprintf("%.2f%%", float64(hits)/float64(total)*100)
	}
	return Stats{Enabled: true, Hits: hits, Misses: misses, Total: total, HitRate: rate}
}

// counter reads one counter; absent or unreadable counts as 0.
func (t *tracker) counter(ctx context.Context, key string) int64 {
	raw, ok, err := t.store.Get(ctx, key)
	if err != nil {
		t.hooks.StoreError("get", key, err)
		t.log.Debug("counter read failed", Fields{"key": key, "err": err})
		return 0
	}
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		t.log.Warn("counter holds non-integer value", Fields{"key": key, "value": raw})
		return 0
	}
	return n
}

// reset zeroes both counters with two plain SETs. The pair is not atomic;
// an increment landing between the writes can be lost.
func (t *tracker) reset(ctx context.Context) bool {
	for _, key := range []string{hitsKey, missesKey} {
		if err := t.store.Set(ctx, key, "0"); err != nil {
			t.hooks.StoreError("reset", key, err)
			t.log.Warn("counter reset failed", Fields{"key": key, "err": err})
			return false
		}
	}
	return true
}
