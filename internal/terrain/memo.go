package terrain

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// memo is a bounded, concurrency-safe cache of immutable values. Concurrent
// misses on one key share a single build.
type memo[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
	limit int
	group singleflight.Group

	// onEvict is told how many entries were dropped when the cache filled up.
	onEvict func(dropped int)
}

func newMemo[K comparable, V any](limit int) *memo[K, V] {
	return &memo[K, V]{
		items: make(map[K]V),
		limit: limit,
	}
}

func (m *memo[K, V]) lookup(key K) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok
}

func (m *memo[K, V]) get(key K, build func() (V, error)) (V, error) {
	if v, ok := m.lookup(key); ok {
		return v, nil
	}
	res, err, _ := m.group.Do(fmt.Sprint(key), func() (any, error) {
		if v, ok := m.lookup(key); ok {
			return v, nil
		}
		v, err := build()
		if err != nil {
			return nil, err
		}
		m.store(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(V), nil
}

func (m *memo[K, V]) store(key K, v V) {
	m.mu.Lock()
	dropped := 0
	if len(m.items) >= m.limit {
		// Entries are pure functions of their key; wiping is always safe.
		dropped = len(m.items)
		clear(m.items)
	}
	m.items[key] = v
	m.mu.Unlock()
	if dropped > 0 && m.onEvict != nil {
		m.onEvict(dropped)
	}
}

func (m *memo[K, V]) len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
