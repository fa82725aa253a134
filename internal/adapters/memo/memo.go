// Package memo implements ports.Memo with a bounded LRU and singleflight.
package memo

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// DefaultSize is the number of entries kept per memo.
const DefaultSize = 64

// Key is a comparable memo key with a stable digest.
type Key interface {
	comparable
	fmt.Stringer
}

type entry[V any] struct {
	value V
	err   error
}

type flight[K Key, V any] struct {
	key K
	entry[V]
}

// Memo is a bounded memoization store.
//
// Concurrent requests for the same key are collapsed onto one computation with
// singleflight, and finished results, errors included, are kept in an LRU.
type Memo[K Key, V any] struct {
	cache   *lru.Cache[K, entry[V]]
	group   singleflight.Group
	metrics *Metrics
	stage   string
}

// New creates a memo holding at most size entries. Metrics are reported under
// the given stage label; m may be nil.
func New[K Key, V any](stage string, size int, m *Metrics) (*Memo[K, V], error) {
	if size <= 0 {
		size = DefaultSize
	}
	memo := &Memo[K, V]{
		metrics: m,
		stage:   stage,
	}
	cache, err := lru.NewWithEvict(size, func(K, entry[V]) {
		memo.metrics.evicted(memo.stage)
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create memo cache"), "stage", stage)
	}
	memo.cache = cache
	return memo, nil
}

// GetOrCompute returns the stored result for key, running compute on a miss.
// For a fixed key compute runs at most once until the entry is evicted.
func (m *Memo[K, V]) GetOrCompute(key K, compute func() (V, error)) (V, error) {
	if e, ok := m.cache.Get(key); ok {
		m.metrics.hit(m.stage)
		return e.value, e.err
	}

	res, _, _ := m.group.Do(key.String(), func() (any, error) {
		// A flight that finished between the lookup above and Do already
		// stored the result.
		if e, ok := m.cache.Get(key); ok {
			m.metrics.hit(m.stage)
			return flight[K, V]{key: key, entry: e}, nil
		}
		m.metrics.missed(m.stage)

		done := m.metrics.timer(m.stage)
		value, err := compute()
		done()

		e := entry[V]{value: value, err: err}
		m.cache.Add(key, e)
		return flight[K, V]{key: key, entry: e}, nil
	})

	f := res.(flight[K, V])
	if f.key != key {
		// Digest collision with a different key in flight; its result is now
		// cached under its own key, so retry for ours.
		return m.GetOrCompute(key, compute)
	}
	return f.value, f.err
}

// Len returns the number of stored entries.
func (m *Memo[K, V]) Len() int {
	return m.cache.Len()
}

// Purge drops every stored entry.
func (m *Memo[K, V]) Purge() {
	m.cache.Purge()
}
