// Package kvstore defines the string key-value substrate the balance storage
// is persisted on, plus in-memory and caching implementations.
package kvstore

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// Store is a string key to string value store.
// A single Set or Delete is atomic and durable once it returns; callers must
// not assume atomicity across several keys.
type Store interface {
	// Get returns the value and true, or "" and false when the key is absent
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Keys returns every key in ascending order
	Keys(ctx context.Context) ([]string, error)
	// KeysWithPrefix returns every key starting with prefix in ascending order
	KeysWithPrefix(ctx context.Context, prefix string) ([]string, error)
	Ping(ctx context.Context) error
	Close() error
}

// Memory is a Store kept in process memory. It is safe for concurrent use.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *Memory) Keys(ctx context.Context) ([]string, error) {
	return m.KeysWithPrefix(ctx, "")
}

func (m *Memory) KeysWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *Memory) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *Memory) Close() error {
	return nil
}

// DeleteWithPrefix deletes every key starting with one of the prefixes and
// returns how many keys were removed. Keys are deleted one at a time.
func DeleteWithPrefix(ctx context.Context, s Store, prefixes ...string) (int, error) {
	removed := 0
	for _, prefix := range prefixes {
		keys, err := s.KeysWithPrefix(ctx, prefix)
		if err != nil {
			return removed, err
		}
		for _, k := range keys {
			if err := s.Delete(ctx, k); err != nil {
				return removed, err
			}
			removed++
		}
	}
	return removed, nil
}
