package data

import (
	"fmt"
	"math/rand/v2"

	"github.com/born-ml/ffnet/internal/tensor"
)

// LoaderConfig controls batching.
type LoaderConfig struct {
	BatchSize int
	Shuffle   bool
	Seed      uint64
	// DropLast discards a final batch smaller than BatchSize.
	DropLast bool
}

// Loader batches a Dataset. It implements Source: every call to Batches is
// one epoch, reshuffled from (Seed, epoch) when Shuffle is set, so a run is
// reproducible while epochs still see different orders.
//
// Inputs keep the dataset's per-example shape, so MNIST batches are
// [batch, 28, 28] and need Flatten before a dense layer.
type Loader struct {
	dataset *Dataset
	config  LoaderConfig
	epoch   uint64
}

// NewLoader validates the dataset and returns a Loader.
func NewLoader(ds *Dataset, cfg LoaderConfig) (*Loader, error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	if cfg.BatchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", cfg.BatchSize)
	}
	return &Loader{dataset: ds, config: cfg}, nil
}

// Dataset returns the underlying dataset.
func (l *Loader) Dataset() *Dataset {
	return l.dataset
}

// NumBatches returns how many batches one epoch yields.
func (l *Loader) NumBatches() int {
	n, bs := l.dataset.Len(), l.config.BatchSize
	if l.config.DropLast {
		return n / bs
	}
	return (n + bs - 1) / bs
}

// Batches returns the next epoch's batches.
func (l *Loader) Batches() ([]*Batch, error) {
	order := make([]int, l.dataset.Len())
	for i := range order {
		order[i] = i
	}
	if l.config.Shuffle {
		r := rand.New(rand.NewPCG(l.config.Seed, l.epoch))
		r.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	}
	l.epoch++

	features := l.dataset.NumFeatures()
	batches := make([]*Batch, 0, l.NumBatches())
	for start := 0; start < len(order); start += l.config.BatchSize {
		end := min(start+l.config.BatchSize, len(order))
		if l.config.DropLast && end-start < l.config.BatchSize {
			break
		}

		shape := append(tensor.Shape{end - start}, l.dataset.Shape...)
		inputs, err := tensor.NewRaw(shape, tensor.CPU)
		if err != nil {
			return nil, err
		}
		labels := make([]int, end-start)
		dst := inputs.Data()
		for i, idx := range order[start:end] {
			copy(dst[i*features:(i+1)*features], l.dataset.Features[idx])
			labels[i] = l.dataset.Labels[idx]
		}

		batch, err := NewBatch(inputs, labels)
		if err != nil {
			return nil, err
		}
		batches = append(batches, batch)
	}
	return batches, nil
}
