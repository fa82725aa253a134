package ports

// Memo is a memoization store.
//
// For a fixed key, compute runs at most once until the entry is evicted, and
// every caller holding that key receives the same value. Concurrent callers of
// a key that is being computed wait for the running computation instead of
// starting another one. Errors returned by compute are stored like values.
type Memo[K comparable, V any] interface {
	GetOrCompute(key K, compute func() (V, error)) (V, error)
}
