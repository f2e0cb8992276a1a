package parsecache

import (
	"context"
	"time"

	c "github.com/unkn0wn-root/parsecache/codec"
	"github.com/unkn0wn-root/parsecache/internal/keys"
	st "github.com/unkn0wn-root/parsecache/store"
	redisstore "github.com/unkn0wn-root/parsecache/store/redis"
)

// DefaultPrefix namespaces content keys on the wire.
const DefaultPrefix = "sanskrit_parse"

// dialProbeTimeout bounds the construction-time Ping.
const dialProbeTimeout = 5 * time.Second

// DeriveKey returns the wire key a client with the given prefix uses for
// content. Empty prefix means DefaultPrefix. Exposed so callers sharing the
// database can correlate or pre-seed entries.
func DeriveKey(content, prefix string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return keys.Derive(content, prefix)
}

type client[V any] struct {
	prefix  string
	store   st.Store
	codec   c.Codec[V]
	log     Logger
	hooks   Hooks
	enabled bool
	ttl     time.Duration
	stats   *tracker
}

func newClient[V any](opts Options[V]) *client[V] {
	cfg := opts.Config.withDefaults()

	cl := &client[V]{
		prefix: coalesce(opts.Prefix, DefaultPrefix),
		ttl:    cfg.TTL,
	}
	cl.log = coalesce[Logger](opts.Logger, NopLogger{})
	cl.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	if opts.Codec != nil {
		cl.codec = opts.Codec
	} else {
		cl.codec = c.JSON[V]{}
	}

	store := opts.Store
	owned := false
	if store == nil {
		store = redisstore.New(redisstore.Config{
			Addr:     cfg.Addr(),
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		owned = true
	}

	// Probe once. A store whose Ping never succeeded must not be used, so a
	// failed probe disables the client for its whole lifetime.
	ctx, cancel := context.WithTimeout(context.Background(), dialProbeTimeout)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		cl.log.Warn("store unreachable, caching disabled", Fields{"addr": cfg.Addr(), "err": err})
		cl.hooks.DialFailed(cfg.Addr(), err)
		if owned {
			_ = store.Close(ctx)
		}
		return cl
	}

	cl.store = store
	cl.enabled = true
	cl.stats = &tracker{store: store, log: cl.log, hooks: cl.hooks}
	return cl
}

func (cl *client[V]) Enabled() bool { return cl.enabled }

func (cl *client[V]) Close(ctx context.Context) error {
	if cl.store == nil {
		return nil
	}
	return cl.store.Close(ctx)
}

func (cl *client[V]) key(content string) string {
	return keys.Derive(content, cl.prefix)
}

func (cl *client[V]) Get(ctx context.Context, content string) (V, bool) {
	var zero V
	if !cl.enabled {
		return zero, false
	}
	k := cl.key(content)
	raw, ok, err := cl.store.Get(ctx, k)
	if err != nil {
		cl.hooks.StoreError("get", k, err)
		cl.log.Warn("cache get failed", Fields{"key": k, "err": err})
		return zero, false
	}
	if !ok {
		cl.stats.miss(ctx)
		return zero, false
	}
	// Accounting follows presence: a live entry counts as a hit even when
	// its payload turns out to be undecodable.
	cl.stats.hit(ctx)
	v, err := cl.codec.Decode([]byte(raw))
	if err != nil {
		cl.hooks.CodecError("decode", k, err)
		cl.log.Warn("cache payload decode failed", Fields{"key": k, "err": err})
		return zero, false
	}
	return v, true
}

func (cl *client[V]) Set(ctx context.Context, content string, value V, ttl time.Duration) bool {
	if !cl.enabled {
		return false
	}
	if ttl <= 0 {
		ttl = cl.ttl
	}
	k := cl.key(content)
	payload, err := cl.codec.Encode(value)
	if err != nil {
		cl.hooks.CodecError("encode", k, err)
		cl.log.Warn("cache payload encode failed", Fields{"key": k, "err": err})
		return false
	}
	if err := cl.store.SetWithTTL(ctx, k, string(payload), ttl); err != nil {
		cl.hooks.StoreError("set", k, err)
		cl.log.Warn("cache set failed", Fields{"key": k, "err": err})
		return false
	}
	return true
}

func (cl *client[V]) SetBatch(ctx context.Context, items []Item[V], ttl time.Duration) int {
	if !cl.enabled || len(items) == 0 {
		return 0
	}
	if ttl <= 0 {
		ttl = cl.ttl
	}

	// Encode everything before touching the store so an undecodable item
	// aborts with nothing written.
	entries := make([]st.Entry, 0, len(items))
	for _, it := range items {
		k := cl.key(it.Content)
		payload, err := cl.codec.Encode(it.Result)
		if err != nil {
			cl.hooks.CodecError("encode", k, err)
			cl.log.Warn("batch item encode failed, batch aborted", Fields{"key": k, "err": err})
			return 0
		}
		entries = append(entries, st.Entry{Key: k, Value: string(payload)})
	}

	if err := cl.store.SetBatch(ctx, entries, ttl); err != nil {
		cl.hooks.BatchAborted(len(items), err)
		cl.log.Warn("batch set failed", Fields{"items": len(items), "err": err})
		return 0
	}
	return len(items)
}

func (cl *client[V]) Invalidate(ctx context.Context, pattern string) int {
	if !cl.enabled {
		return 0
	}
	if pattern == "" {
		pattern = cl.prefix + ":*"
	}
	ks, err := cl.store.KeysMatching(ctx, pattern)
	if err != nil {
		cl.hooks.StoreError("keys", pattern, err)
		cl.log.Warn("invalidate key listing failed", Fields{"pattern": pattern, "err": err})
		return 0
	}
	if len(ks) == 0 {
		return 0
	}
	n, err := cl.store.DeleteMany(ctx, ks)
	if err != nil {
		cl.hooks.StoreError("del", pattern, err)
		cl.log.Warn("invalidate delete failed", Fields{"pattern": pattern, "keys": len(ks), "err": err})
		return 0
	}
	cl.log.Debug("invalidated keys", Fields{"pattern": pattern, "deleted": n})
	return int(n)
}

func (cl *client[V]) Stats(ctx context.Context) Stats {
	if !cl.enabled {
		return Stats{}
	}
	return cl.stats.snapshot(ctx)
}

func (cl *client[V]) ResetStats(ctx context.Context) bool {
	if !cl.enabled {
		return false
	}
	return cl.stats.reset(ctx)
}
