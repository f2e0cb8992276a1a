// Package redis implements store.Store over a Redis server using go-redis.
package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	st "github.com/unkn0wn-root/parsecache/store"
)

var ErrNilClient = errors.New("redis store: nil client")

// Config addresses one Redis endpoint and logical database. Timeouts and
// pool sizing are optional; zero values fall back to go-redis defaults.
type Config struct {
	Addr     string
	Password string
	DB       int

	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
}

type Redis struct {
	rdb         goredis.UniversalClient
	closeClient bool
}

var _ st.Store = (*Redis)(nil)

// New builds a store around a dedicated client for cfg. The store owns the
// client and closes it on Close. Connectivity is not checked here; callers
// probe with Ping before use.
func New(cfg Config) *Redis {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolSize:     cfg.PoolSize,
	})
	return &Redis{rdb: rdb, closeClient: true}
}

// Wrap adapts an existing client. Set closeClient true only if this store
// exclusively owns the client.
func Wrap(client goredis.UniversalClient, closeClient bool) (*Redis, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	return &Redis{rdb: client, closeClient: closeClient}, nil
}

func (s *Redis) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, key).Result()
	if err == goredis.Nil {
		return "", false, nil // miss
	}
	if err != nil {
		return "", false, err // transport/server error
	}
	return v, true, nil
}

func (s *Redis) Set(ctx context.Context, key, value string) error {
	return s.rdb.Set(ctx, key, value, 0).Err()
}

func (s *Redis) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0 // non-positive TTLs mean "no expiry" per store contract
	}
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

// SetBatch issues one SET-with-expiry per entry inside a single pipeline,
// so N entries cost one round trip instead of N.
func (s *Redis) SetBatch(ctx context.Context, entries []st.Entry, ttl time.Duration) error {
	if len(entries) == 0 {
		return nil
	}
	if ttl < 0 {
		ttl = 0
	}
	_, err := s.rdb.Pipelined(ctx, func(p goredis.Pipeliner) error {
		for _, e := range entries {
			p.Set(ctx, e.Key, e.Value, ttl)
		}
		return nil
	})
	return err
}

func (s *Redis) DeleteMany(ctx context.Context, keys []string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	return s.rdb.Del(ctx, keys...).Result()
}

func (s *Redis) KeysMatching(ctx context.Context, pattern string) ([]string, error) {
	return s.rdb.Keys(ctx, pattern).Result()
}

func (s *Redis) Incr(ctx context.Context, key string) (int64, error) {
	return s.rdb.Incr(ctx, key).Result()
}

// Close releases the underlying client only when this store owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (s *Redis) Close(context.Context) error {
	if s.closeClient {
		if err := s.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
