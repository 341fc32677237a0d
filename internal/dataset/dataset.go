// Package dataset provides in-memory datasets and mini-batch loading
// for training classifiers.
//
// A Dataset is an indexable collection of feature vectors with integer
// class labels. A Loader turns a Dataset into shuffled mini-batches; a
// Prefetcher stages batches through a channel so the training loop
// never waits on batch assembly.
package dataset

import (
	"fmt"
)

// Dataset is an indexable collection of labeled feature vectors.
type Dataset interface {
	// Len returns the number of samples.
	Len() int

	// Sample returns the feature vector and label of sample i. The
	// returned slice must not be mutated by the caller.
	Sample(i int) ([]float64, int)
}

// InMemory is a Dataset backed by dense slices.
type InMemory struct {
	features [][]float64
	labels   []int
}

// NewInMemory creates a dataset from parallel feature and label slices.
//
// Every feature vector must have the same length, and there must be one
// label per vector.
func NewInMemory(features [][]float64, labels []int) (*InMemory, error) {
	if len(features) != len(labels) {
		return nil, fmt.Errorf("feature count (%d) != label count (%d)", len(features), len(labels))
	}
	if len(features) == 0 {
		return nil, fmt.Errorf("empty dataset")
	}

	width := len(features[0])
	for i, f := range features {
		if len(f) != width {
			return nil, fmt.Errorf("feature vector %d has %d values, want %d", i, len(f), width)
		}
	}

	return &InMemory{features: features, labels: labels}, nil
}

// Len returns the number of samples.
func (d *InMemory) Len() int {
	return len(d.features)
}

// Sample returns the feature vector and label of sample i.
func (d *InMemory) Sample(i int) ([]float64, int) {
	return d.features[i], d.labels[i]
}

// NumFeatures returns the width of the feature vectors.
func (d *InMemory) NumFeatures() int {
	return len(d.features[0])
}

// Split splits the dataset into train and validation sets.
//
// validationRatio is the fraction of samples held out at the end
// (e.g., 0.2 keeps the last 20% for validation). Both halves share the
// underlying storage.
func (d *InMemory) Split(validationRatio float64) (*InMemory, *InMemory) {
	splitIdx := int(float64(d.Len()) * (1.0 - validationRatio))

	train := &InMemory{
		features: d.features[:splitIdx],
		labels:   d.labels[:splitIdx],
	}
	val := &InMemory{
		features: d.features[splitIdx:],
		labels:   d.labels[splitIdx:],
	}
	return train, val
}
