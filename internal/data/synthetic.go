package data

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// LinearlySeparable returns n deterministic 2-feature points labelled by
// the side of the line x0 + x1 = 0 they fall on. Every point is pushed at
// least margin 0.5 away from the boundary.
func LinearlySeparable(n int, seed uint64) *Dataset {
	src := rand.NewPCG(seed, seed^0x5851f42d4c957f2d)
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	const margin = 0.5
	ds := &Dataset{
		Features: make([][]float64, n),
		Labels:   make([]int, n),
		Shape:    []int{2},
	}
	for i := 0; i < n; i++ {
		x0, x1 := normal.Rand(), normal.Rand()
		label := 0
		if x0+x1 > 0 {
			label = 1
		}
		// Shift along the normal (1, 1)/√2 away from the boundary.
		shift := margin / math.Sqrt2
		if label == 0 {
			shift = -shift
		}
		ds.Features[i] = []float64{x0 + shift, x1 + shift}
		ds.Labels[i] = label
	}
	return ds
}

// Blobs returns n points in the given number of features, drawn from
// isotropic unit Gaussians around one random center per class. Labels cycle
// through the classes so every class is represented.
func Blobs(n, features, classes int, seed uint64) *Dataset {
	src := rand.NewPCG(seed, seed^0x5851f42d4c957f2d)
	centerDist := distuv.Uniform{Min: -5, Max: 5, Src: src}
	noise := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	centers := make([][]float64, classes)
	for c := range centers {
		centers[c] = make([]float64, features)
		for j := range centers[c] {
			centers[c][j] = centerDist.Rand()
		}
	}

	ds := &Dataset{
		Features: make([][]float64, n),
		Labels:   make([]int, n),
		Shape:    []int{features},
	}
	for i := 0; i < n; i++ {
		label := i % classes
		f := make([]float64, features)
		for j := range f {
			f[j] = centers[label][j] + noise.Rand()
		}
		ds.Features[i] = f
		ds.Labels[i] = label
	}
	return ds
}
