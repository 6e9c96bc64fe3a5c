package parallel

import (
	"sort"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFor(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 8}

	seen := make([]int32, 1000)
	For(len(seen), func(i int) {
		atomic.AddInt32(&seen[i], 1)
	}, cfg)

	for i, v := range seen {
		require.Equal(t, int32(1), v, "row %d", i)
	}
}

func TestFor_Sequential(t *testing.T) {
	var order []int
	For(5, func(i int) {
		order = append(order, i)
	}, Config{Enabled: false})

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestChunks(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 3, MinChunkSize: 10}

	var mu sync.Mutex
	var ranges [][2]int
	Chunks(100, func(start, end int) {
		mu.Lock()
		ranges = append(ranges, [2]int{start, end})
		mu.Unlock()
	}, cfg)

	sort.Slice(ranges, func(i, j int) bool { return ranges[i][0] < ranges[j][0] })
	require.Len(t, ranges, 3)
	assert.Equal(t, [2]int{0, 34}, ranges[0])
	assert.Equal(t, [2]int{34, 68}, ranges[1])
	assert.Equal(t, [2]int{68, 100}, ranges[2])
}

func TestChunks_SmallInput(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 8, MinChunkSize: 64}

	calls := 0
	Chunks(63, func(start, end int) {
		calls++
		assert.Equal(t, 0, start)
		assert.Equal(t, 63, end)
	}, cfg)
	assert.Equal(t, 1, calls)

	Chunks(0, func(int, int) { t.Fatal("called for empty input") }, cfg)
}

func BenchmarkFor(b *testing.B) {
	cfg := DefaultConfig()
	rows := make([]float64, 60000)

	b.Run("parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			For(len(rows), func(i int) { rows[i] = float64(i) / 255 }, cfg)
		}
	})

	b.Run("sequential", func(b *testing.B) {
		seq := cfg
		seq.Enabled = false
		for i := 0; i < b.N; i++ {
			For(len(rows), func(i int) { rows[i] = float64(i) / 255 }, seq)
		}
	})
}
