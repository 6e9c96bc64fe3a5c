package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/ffnet/internal/tensor"
)

func labelsOf(batches []*Batch) []int {
	var out []int
	for _, b := range batches {
		out = append(out, b.Labels...)
	}
	return out
}

func TestLoader_Batches(t *testing.T) {
	ds := smallDataset(10)
	l, err := NewLoader(ds, LoaderConfig{BatchSize: 4})
	require.NoError(t, err)
	assert.Equal(t, 3, l.NumBatches())

	batches, err := l.Batches()
	require.NoError(t, err)
	require.Len(t, batches, 3)
	assert.Equal(t, tensor.Shape{4, 2}, batches[0].Inputs.Shape())
	assert.Equal(t, tensor.Shape{2, 2}, batches[2].Inputs.Shape(), "last batch may be short")
	assert.Equal(t, []float64{1, -1}, batches[0].Inputs.Row(1))
	assert.Equal(t, ds.Labels, labelsOf(batches))
}

func TestLoader_DropLast(t *testing.T) {
	l, err := NewLoader(smallDataset(10), LoaderConfig{BatchSize: 4, DropLast: true})
	require.NoError(t, err)
	batches, err := l.Batches()
	require.NoError(t, err)
	assert.Len(t, batches, 2)
	assert.Equal(t, 2, l.NumBatches())
}

func TestLoader_Shuffle(t *testing.T) {
	ds := smallDataset(50)
	a, err := NewLoader(ds, LoaderConfig{BatchSize: 8, Shuffle: true, Seed: 3})
	require.NoError(t, err)
	b, err := NewLoader(ds, LoaderConfig{BatchSize: 8, Shuffle: true, Seed: 3})
	require.NoError(t, err)

	first, err := a.Batches()
	require.NoError(t, err)
	mirror, err := b.Batches()
	require.NoError(t, err)
	assert.Equal(t, labelsOf(first), labelsOf(mirror), "same seed reproduces the order")

	second, err := a.Batches()
	require.NoError(t, err)
	assert.NotEqual(t, first[0].Inputs.Data(), second[0].Inputs.Data(), "each epoch reshuffles")
	assert.ElementsMatch(t, labelsOf(first), labelsOf(second))
}

func TestLoader_KeepsExampleShape(t *testing.T) {
	ds := &Dataset{
		Features: [][]float64{{1, 2, 3, 4}, {5, 6, 7, 8}},
		Labels:   []int{0, 1},
		Shape:    []int{2, 2},
	}
	l, err := NewLoader(ds, LoaderConfig{BatchSize: 2})
	require.NoError(t, err)
	batches, err := l.Batches()
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2, 2}, batches[0].Inputs.Shape())

	flat, err := Flatten(batches[0].Inputs)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 4}, flat.Shape())
}

func TestNewLoader_Errors(t *testing.T) {
	_, err := NewLoader(&Dataset{}, LoaderConfig{BatchSize: 1})
	assert.ErrorIs(t, err, ErrEmptyDataset)

	_, err = NewLoader(smallDataset(3), LoaderConfig{})
	assert.Error(t, err)
}
