package nn

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/born-ml/ffnet/internal/tensor"
)

// DefaultInitStd is the standard deviation of the normal weight init.
const DefaultInitStd = 0.01

// InitScheme selects how Linear weights are initialized.
type InitScheme int

// Supported init schemes.
const (
	InitNormal InitScheme = iota // N(0, std²)
	InitXavier                   // U(-√(6/(fan_in+fan_out)), +√(6/(fan_in+fan_out)))
)

// String returns the config name of the scheme.
func (s InitScheme) String() string {
	switch s {
	case InitNormal:
		return "normal"
	case InitXavier:
		return "xavier"
	default:
		return fmt.Sprintf("InitScheme(%d)", int(s))
	}
}

// ParseInitScheme parses "normal" or "xavier".
func ParseInitScheme(s string) (InitScheme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return InitNormal, nil
	case "xavier", "glorot":
		return InitXavier, nil
	default:
		return 0, fmt.Errorf("%w: unknown init scheme %q", ErrInvalidConfig, s)
	}
}

// Initializer fills a weight tensor of the given fan-in and fan-out.
type Initializer func(fanIn, fanOut int, shape tensor.Shape, backend tensor.Backend) *tensor.Tensor

// Normal returns an Initializer drawing from N(0, std²).
func Normal(std float64, src rand.Source) Initializer {
	dist := distuv.Normal{Mu: 0, Sigma: std, Src: src}
	return func(_, _ int, shape tensor.Shape, backend tensor.Backend) *tensor.Tensor {
		return fill(shape, backend, dist.Rand)
	}
}

// Xavier returns a Glorot uniform Initializer.
//
// This initialization keeps activation variance roughly constant across
// layers.
func Xavier(src rand.Source) Initializer {
	return func(fanIn, fanOut int, shape tensor.Shape, backend tensor.Backend) *tensor.Tensor {
		bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
		dist := distuv.Uniform{Min: -bound, Max: bound, Src: src}
		return fill(shape, backend, dist.Rand)
	}
}

// NewInitializer builds the Initializer for scheme.
func NewInitializer(scheme InitScheme, std float64, src rand.Source) Initializer {
	if scheme == InitXavier {
		return Xavier(src)
	}
	if std <= 0 {
		std = DefaultInitStd
	}
	return Normal(std, src)
}

// Zeros creates a tensor filled with zeros.
//
// This is used for bias initialization.
func Zeros(shape tensor.Shape, backend tensor.Backend) *tensor.Tensor {
	return tensor.Zeros(shape, backend)
}

func fill(shape tensor.Shape, backend tensor.Backend, next func() float64) *tensor.Tensor {
	t := tensor.Zeros(shape, backend)
	data := t.Data()
	for i := range data {
		data[i] = next()
	}
	return t
}
