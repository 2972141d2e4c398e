package kvstore

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// cachedValue remembers misses as well as hits so absent keys do not hit the backend
type cachedValue struct {
	value   string
	present bool
}

// Cached is a read-through, write-through Store wrapper backed by an
// expiring LRU. Writes reach the inner store before the cache is touched,
// so a failed write never leaves the cache ahead of persistence. Key
// listings always go to the inner store.
type Cached struct {
	inner Store
	lru   *expirable.LRU[string, cachedValue]
}

// NewCached wraps inner with an LRU of the given size and TTL.
// A size of zero or less returns inner unchanged.
func NewCached(inner Store, size int, ttl time.Duration) Store {
	if size <= 0 {
		return inner
	}
	return &Cached{
		inner: inner,
		lru:   expirable.NewLRU[string, cachedValue](size, nil, ttl),
	}
}

func (c *Cached) Get(ctx context.Context, key string) (string, bool, error) {
	if v, ok := c.lru.Get(key); ok {
		return v.value, v.present, nil
	}
	value, ok, err := c.inner.Get(ctx, key)
	if err != nil {
		return "", false, err
	}
	c.lru.Add(key, cachedValue{value: value, present: ok})
	return value, ok, nil
}

func (c *Cached) Set(ctx context.Context, key, value string) error {
	if err := c.inner.Set(ctx, key, value); err != nil {
		c.lru.Remove(key)
		return err
	}
	c.lru.Add(key, cachedValue{value: value, present: true})
	return nil
}

func (c *Cached) Delete(ctx context.Context, key string) error {
	if err := c.inner.Delete(ctx, key); err != nil {
		c.lru.Remove(key)
		return err
	}
	c.lru.Add(key, cachedValue{})
	return nil
}

func (c *Cached) Keys(ctx context.Context) ([]string, error) {
	return c.inner.Keys(ctx)
}

func (c *Cached) KeysWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	return c.inner.KeysWithPrefix(ctx, prefix)
}

func (c *Cached) Ping(ctx context.Context) error {
	return c.inner.Ping(ctx)
}

// Purge drops every cached entry, e.g. after the backing store was edited externally
func (c *Cached) Purge() {
	c.lru.Purge()
}

func (c *Cached) Close() error {
	c.lru.Purge()
	return c.inner.Close()
}
