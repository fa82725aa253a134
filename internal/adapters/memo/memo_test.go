package memo_test

import (
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/chroma/internal/adapters/memo"
	"go.trai.ch/chroma/internal/core/domain"
	"go.trai.ch/chroma/internal/core/ports"
)

type testKey struct {
	id int
}

func (k testKey) String() string { return "key-" + strconv.Itoa(k.id) }

// collidingKey digests every key to the same string.
type collidingKey struct {
	id int
}

func (collidingKey) String() string { return "same" }

func counting[V any](calls *atomic.Int32, value V, err error) func() (V, error) {
	return func() (V, error) {
		calls.Add(1)
		return value, err
	}
}

func TestMemo_ImplementsPort(t *testing.T) {
	m, err := memo.New[domain.TableKey, domain.DerivedTable]("table", 4, nil)
	require.NoError(t, err)

	var _ ports.Memo[domain.TableKey, domain.DerivedTable] = m
}

func TestMemo_ComputesOncePerKey(t *testing.T) {
	m, err := memo.New[testKey, string]("test", 4, nil)
	require.NoError(t, err)

	var calls atomic.Int32
	for range 3 {
		v, err := m.GetOrCompute(testKey{1}, counting(&calls, "one", nil))
		require.NoError(t, err)
		assert.Equal(t, "one", v)
	}
	assert.Equal(t, int32(1), calls.Load())

	v, err := m.GetOrCompute(testKey{2}, counting(&calls, "two", nil))
	require.NoError(t, err)
	assert.Equal(t, "two", v)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, 2, m.Len())
}

func TestMemo_StoresErrors(t *testing.T) {
	m, err := memo.New[testKey, int]("test", 4, nil)
	require.NoError(t, err)

	boom := errors.New("boom")
	var calls atomic.Int32
	for range 2 {
		_, err := m.GetOrCompute(testKey{1}, counting(&calls, 0, boom))
		require.ErrorIs(t, err, boom)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestMemo_ConcurrentCallersShareOneComputation(t *testing.T) {
	m, err := memo.New[testKey, int]("test", 4, nil)
	require.NoError(t, err)

	var (
		calls   atomic.Int32
		release = make(chan struct{})
		wg      sync.WaitGroup
		results = make([]int, 16)
	)
	compute := func() (int, error) {
		calls.Add(1)
		<-release
		return 42, nil
	}

	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := m.GetOrCompute(testKey{1}, compute)
			assert.NoError(t, err)
			results[i] = v
		}()
	}
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Equal(t, 42, v)
	}
}

func TestMemo_EvictionRecomputes(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := memo.NewMetrics(reg)
	m, err := memo.New[testKey, int]("test", 1, metrics)
	require.NoError(t, err)

	var calls atomic.Int32
	_, _ = m.GetOrCompute(testKey{1}, counting(&calls, 1, nil))
	_, _ = m.GetOrCompute(testKey{2}, counting(&calls, 2, nil))
	_, _ = m.GetOrCompute(testKey{1}, counting(&calls, 1, nil))

	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, 1, m.Len())

	count, err := testutil.GatherAndCount(reg, "chroma_memo_evictions_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMemo_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := memo.NewMetrics(reg)
	m, err := memo.New[testKey, int]("plot", 4, metrics)
	require.NoError(t, err)

	var calls atomic.Int32
	for range 3 {
		_, _ = m.GetOrCompute(testKey{1}, counting(&calls, 1, nil))
	}

	problems, err := testutil.GatherAndLint(reg)
	require.NoError(t, err)
	assert.Empty(t, problems)

	count, err := testutil.GatherAndCount(reg, "chroma_memo_compute_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	families, err := reg.Gather()
	require.NoError(t, err)
	values := make(map[string]float64)
	for _, f := range families {
		for _, metric := range f.GetMetric() {
			if c := metric.GetCounter(); c != nil {
				values[f.GetName()] = c.GetValue()
			}
		}
	}
	assert.Equal(t, 2.0, values["chroma_memo_hits_total"])
	assert.Equal(t, 1.0, values["chroma_memo_misses_total"])
}

func TestMemo_DigestCollision(t *testing.T) {
	m, err := memo.New[collidingKey, int]("test", 4, nil)
	require.NoError(t, err)

	a, err := m.GetOrCompute(collidingKey{1}, func() (int, error) { return 1, nil })
	require.NoError(t, err)
	b, err := m.GetOrCompute(collidingKey{2}, func() (int, error) { return 2, nil })
	require.NoError(t, err)

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
}

func TestMemo_Purge(t *testing.T) {
	m, err := memo.New[testKey, int]("test", 0, nil)
	require.NoError(t, err)

	var calls atomic.Int32
	_, _ = m.GetOrCompute(testKey{1}, counting(&calls, 1, nil))
	m.Purge()
	assert.Zero(t, m.Len())

	_, _ = m.GetOrCompute(testKey{1}, counting(&calls, 1, nil))
	assert.Equal(t, int32(2), calls.Load())
}

func TestSnapshot(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := memo.NewMetrics(reg)
	tables, err := memo.New[testKey, int]("table", 1, metrics)
	require.NoError(t, err)
	plots, err := memo.New[testKey, int]("plot", 4, metrics)
	require.NoError(t, err)

	var calls atomic.Int32
	_, _ = tables.GetOrCompute(testKey{1}, counting(&calls, 1, nil))
	_, _ = tables.GetOrCompute(testKey{1}, counting(&calls, 1, nil))
	_, _ = tables.GetOrCompute(testKey{2}, counting(&calls, 2, nil))
	_, _ = plots.GetOrCompute(testKey{1}, counting(&calls, 1, nil))

	stats, err := memo.Snapshot(reg)
	require.NoError(t, err)
	assert.Equal(t, []memo.Stats{
		{Stage: "plot", Misses: 1},
		{Stage: "table", Hits: 1, Misses: 2, Evictions: 1},
	}, stats)
}

func TestSnapshot_Empty(t *testing.T) {
	stats, err := memo.Snapshot(prometheus.NewRegistry())
	require.NoError(t, err)
	assert.Empty(t, stats)
}
