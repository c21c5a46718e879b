package cache

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

var cacheRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{Name: "cache_requests_total", Help: "Cache lookups by result"},
	[]string{"result"},
)

func init() { prometheus.MustRegister(cacheRequests) }

// DefaultLoadTimeout bounds a shared load when LoadTimeout is unset.
const DefaultLoadTimeout = 5 * time.Second

type Cache struct {
	RDB    *redis.Client
	Prefix string
	// LoadTimeout bounds one shared load, independent of the callers.
	LoadTimeout time.Duration
	sf          singleflight.Group
}

func New(addr, pass string, db int) *Cache {
	return &Cache{
		RDB:    redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		Prefix: "easy-matters:",
	}
}

func (c *Cache) loadTimeout() time.Duration {
	if c.LoadTimeout > 0 {
		return c.LoadTimeout
	}
	return DefaultLoadTimeout
}

func (c *Cache) key(k string) string { return c.Prefix + k }

func (c *Cache) Ping(ctx context.Context) error { return c.RDB.Ping(ctx).Err() }

func (c *Cache) Close() error { return c.RDB.Close() }

// GetOrLoad returns the cached bytes for key or calls load once per key
// across concurrent callers and stores the result for ttl.
// Redis failures fall back to load. The shared load does not inherit the
// first caller's cancellation, so one gone client cannot fail the others.
func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	full := c.key(key)
	b, err := c.RDB.Get(ctx, full).Bytes()
	switch {
	case err == nil:
		cacheRequests.WithLabelValues("hit").Inc()
		return b, nil
	case errors.Is(err, redis.Nil):
		cacheRequests.WithLabelValues("miss").Inc()
	default:
		cacheRequests.WithLabelValues("error").Inc()
	}
	v, err, _ := c.sf.Do(full, func() (any, error) {
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.loadTimeout())
		defer cancel()
		b, e := load(lctx)
		if e != nil {
			return nil, e
		}
		_ = c.RDB.Set(lctx, full, b, ttl).Err()
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Delete drops keys; missing keys are not an error.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	return c.RDB.Del(ctx, full...).Err()
}
