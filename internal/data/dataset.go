package data

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/born-ml/ffnet/internal/parallel"
)

// Dataset holds flattened examples in memory.
//
// Shape is the per-example shape before flattening ([28, 28] for MNIST,
// [2] for a 2-feature set); len(Features[i]) equals its element count.
type Dataset struct {
	Features [][]float64
	Labels   []int
	Shape    []int
}

// Len returns the number of examples.
func (d *Dataset) Len() int {
	return len(d.Labels)
}

// NumFeatures returns the flattened feature count.
func (d *Dataset) NumFeatures() int {
	n := 1
	for _, s := range d.Shape {
		n *= s
	}
	return n
}

// NumClasses returns max(label)+1.
func (d *Dataset) NumClasses() int {
	maxLabel := -1
	for _, l := range d.Labels {
		maxLabel = max(maxLabel, l)
	}
	return maxLabel + 1
}

// Validate checks that every example matches Shape and has a label.
func (d *Dataset) Validate() error {
	if d.Len() == 0 {
		return ErrEmptyDataset
	}
	if len(d.Features) != len(d.Labels) {
		return fmt.Errorf("%d examples but %d labels", len(d.Features), len(d.Labels))
	}
	want := d.NumFeatures()
	for i, f := range d.Features {
		if len(f) != want {
			return fmt.Errorf("example %d has %d features, want %d", i, len(f), want)
		}
	}
	return nil
}

// Subset returns the first n examples (all of them when n <= 0 or n >= Len).
// Feature slices are shared.
func (d *Dataset) Subset(n int) *Dataset {
	if n <= 0 || n >= d.Len() {
		return d
	}
	return &Dataset{Features: d.Features[:n], Labels: d.Labels[:n], Shape: d.Shape}
}

// Split shuffles a copy of the example order with seed and divides it into
// a first part holding ratio of the examples and a second with the rest.
func (d *Dataset) Split(ratio float64, seed uint64) (*Dataset, *Dataset, error) {
	if ratio <= 0 || ratio >= 1 {
		return nil, nil, fmt.Errorf("split ratio must be in (0, 1), got %v", ratio)
	}
	n := int(float64(d.Len()) * ratio)
	if n == 0 || n == d.Len() {
		return nil, nil, fmt.Errorf("%w: split of %d examples at %v leaves one side empty", ErrEmptyDataset, d.Len(), ratio)
	}

	perm := rand.New(rand.NewPCG(seed, seed+1)).Perm(d.Len())
	pick := func(idx []int) *Dataset {
		out := &Dataset{
			Features: make([][]float64, len(idx)),
			Labels:   make([]int, len(idx)),
			Shape:    d.Shape,
		}
		for i, j := range idx {
			out.Features[i] = d.Features[j]
			out.Labels[i] = d.Labels[j]
		}
		return out
	}
	return pick(perm[:n]), pick(perm[n:]), nil
}

// Normalize applies (x - mean) / std to every feature in place.
// Normalize(0.5, 0.5) maps [0, 1] pixels onto [-1, 1].
func (d *Dataset) Normalize(mean, std float64) error {
	if std <= 0 {
		return fmt.Errorf("normalization std must be positive, got %v", std)
	}
	parallel.For(len(d.Features), func(i int) {
		floats.AddConst(-mean, d.Features[i])
		floats.Scale(1/std, d.Features[i])
	}, parallel.DefaultConfig())
	return nil
}

// MeanStd returns the mean and standard deviation over every feature value.
func (d *Dataset) MeanStd() (mean, std float64) {
	all := make([]float64, 0, d.Len()*d.NumFeatures())
	for _, f := range d.Features {
		all = append(all, f...)
	}
	return stat.MeanStdDev(all, nil)
}
