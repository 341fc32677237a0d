// Copyright 2025 Sprout ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package dataset

import (
	"context"

	"github.com/born-ml/sprout/internal/dataset"
)

// Dataset is a finite collection of labeled feature vectors.
type Dataset = dataset.Dataset

// InMemory is a Dataset backed by slices.
type InMemory = dataset.InMemory

// Batch is one mini-batch of features and labels.
type Batch = dataset.Batch

// Loader yields shuffled mini-batches from a Dataset.
type Loader = dataset.Loader

// Prefetcher prepares batches in a background goroutine.
type Prefetcher = dataset.Prefetcher

// Constructors

// NewInMemory creates a dataset from feature rows and labels.
//
// Example:
//
//	data, err := dataset.NewInMemory([][]float64{{0, 1}, {1, 0}}, []int{0, 1})
func NewInMemory(features [][]float64, labels []int) (*InMemory, error) {
	return dataset.NewInMemory(features, labels)
}

// NewLoader creates a mini-batch loader over data.
//
// When shuffle is true the sample order is drawn from seed and
// reshuffled on every Reset.
//
// Example:
//
//	loader := dataset.NewLoader(data, 32, true, 42)
func NewLoader(data Dataset, batchSize int, shuffle bool, seed int64) *Loader {
	return dataset.NewLoader(data, batchSize, shuffle, seed)
}

// NewPrefetcher wraps loader with a background producer holding up to
// depth ready batches. Stop releases the producer goroutine.
//
// Example:
//
//	pf := dataset.NewPrefetcher(ctx, loader, 2)
//	defer pf.Stop()
func NewPrefetcher(ctx context.Context, loader *Loader, depth int) *Prefetcher {
	return dataset.NewPrefetcher(ctx, loader, depth)
}

// Synthetic generates a deterministic dataset of n samples with the
// given feature and class counts. The same seed always produces the
// same data.
func Synthetic(n, features, classes int, seed int64) *InMemory {
	return dataset.Synthetic(n, features, classes, seed)
}

// MNIST loaders

// LoadMNIST loads the MNIST IDX file pair from dataDir.
//
// With train true it reads train-images-idx3-ubyte and
// train-labels-idx1-ubyte, otherwise the t10k pair. maxSamples limits
// the number of samples read; zero means all.
func LoadMNIST(dataDir string, train bool, maxSamples int) (*InMemory, error) {
	return dataset.LoadMNIST(dataDir, train, maxSamples)
}

// LoadIDX loads an arbitrary IDX image/label file pair.
//
// Pixels are normalized to [0, 1].
func LoadIDX(imagesPath, labelsPath string, maxSamples int) (*InMemory, error) {
	return dataset.LoadIDX(imagesPath, labelsPath, maxSamples)
}

// LoadMNISTCSV loads MNIST from a CSV file where each row is a label
// followed by 784 pixel values.
func LoadMNISTCSV(filename string, maxSamples int) (*InMemory, error) {
	return dataset.LoadMNISTCSV(filename, maxSamples)
}
