// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package data provides datasets, batching and the MNIST IDX reader.
//
// Example:
//
//	ds, err := data.LoadIDX("./data", data.SplitTrain, 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = ds.Normalize(0.5, 0.5)
//	loader, err := data.NewLoader(ds, data.LoaderConfig{BatchSize: 64, Shuffle: true})
package data

import (
	"github.com/born-ml/ffnet/internal/data"
)

// Errors.
var (
	ErrInvalidMagic = data.ErrInvalidMagic
	ErrEmptyDataset = data.ErrEmptyDataset
)

// Batch is one step's inputs and labels.
type Batch = data.Batch

// Source yields one epoch of batches per call.
type Source = data.Source

// SliceSource replays fixed batches.
type SliceSource = data.SliceSource

// Dataset holds examples in memory.
type Dataset = data.Dataset

// Loader batches a Dataset, reshuffling each epoch.
type Loader = data.Loader

// LoaderConfig controls batching.
type LoaderConfig = data.LoaderConfig

// NewLoader creates a loader.
func NewLoader(ds *Dataset, cfg LoaderConfig) (*Loader, error) {
	return data.NewLoader(ds, cfg)
}

// Split selects IDX training or test files.
type Split = data.Split

// Splits.
const (
	SplitTrain = data.SplitTrain
	SplitTest  = data.SplitTest
)

// LoadIDX reads an MNIST-layout dataset from dir.
func LoadIDX(dir string, split Split, limit int) (*Dataset, error) {
	return data.LoadIDX(dir, split, limit)
}

// LinearlySeparable returns n two-feature points in two classes.
func LinearlySeparable(n int, seed uint64) *Dataset {
	return data.LinearlySeparable(n, seed)
}

// Blobs returns Gaussian clusters, one per class.
func Blobs(n, features, classes int, seed uint64) *Dataset {
	return data.Blobs(n, features, classes, seed)
}
