// Copyright 2025 Sprout ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/born-ml/sprout/internal/nn"
	"github.com/born-ml/sprout/internal/tensor"
)

// Layer is the interface implemented by every pipeline stage.
type Layer = nn.Layer

// Parameter represents a trainable parameter in a neural network.
type Parameter = nn.Parameter

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter(name string, t *tensor.Dense) *Parameter {
	return nn.NewParameter(name, t)
}

// Layers

// Linear represents a fully connected (dense) layer.
type Linear = nn.Linear

// NewLinear creates a new linear layer with Xavier initialization.
//
// Example:
//
//	rng := tensor.NewRNG(42)
//	layer := nn.NewLinear(784, 128, rng)
func NewLinear(inFeatures, outFeatures int, rng *rand.Rand) *Linear {
	return nn.NewLinear(inFeatures, outFeatures, rng)
}

// Activations

// ReLU represents the Rectified Linear Unit activation function.
type ReLU = nn.ReLU

// NewReLU creates a new ReLU activation stage.
func NewReLU() *ReLU {
	return nn.NewReLU()
}

// LogSoftmax represents a numerically stable log-softmax over rows.
type LogSoftmax = nn.LogSoftmax

// NewLogSoftmax creates a new LogSoftmax stage.
func NewLogSoftmax() *LogSoftmax {
	return nn.NewLogSoftmax()
}

// Loss functions

// NLLLoss computes negative log-likelihood over log-probabilities.
type NLLLoss = nn.NLLLoss

// NewNLLLoss creates a new negative log-likelihood criterion.
//
// Example:
//
//	criterion := nn.NewNLLLoss()
//	loss := criterion.Forward(logProbs, labels)
func NewNLLLoss() *NLLLoss {
	return nn.NewNLLLoss()
}

// CrossEntropyLoss fuses LogSoftmax and NLLLoss over raw logits.
type CrossEntropyLoss = nn.CrossEntropyLoss

// NewCrossEntropyLoss creates a new cross-entropy criterion.
//
// Example:
//
//	criterion := nn.NewCrossEntropyLoss()
//	loss := criterion.Forward(logits, labels)
func NewCrossEntropyLoss() *CrossEntropyLoss {
	return nn.NewCrossEntropyLoss()
}

// Networks

// Network chains layers into a sequential pipeline with explicit
// forward and backward passes.
type Network = nn.Network

// NewNetwork builds a pipeline from the given stages.
//
// Example:
//
//	net := nn.NewNetwork(
//	    nn.NewLinear(784, 128, rng),
//	    nn.NewReLU(),
//	    nn.NewLinear(128, 10, rng),
//	    nn.NewLogSoftmax(),
//	)
func NewNetwork(layers ...Layer) *Network {
	return nn.NewNetwork(layers...)
}

// Initialization

// Xavier returns a tensor initialized with Xavier/Glorot uniform
// values.
func Xavier(fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand) *tensor.Dense {
	return nn.Xavier(fanIn, fanOut, shape, rng)
}

// Metrics

// Accuracy computes classification accuracy for a batch of scores.
func Accuracy(scores *tensor.Dense, labels []int) float64 {
	return nn.Accuracy(scores, labels)
}

// CountCorrect returns the number of rows whose argmax matches the
// label.
func CountCorrect(scores *tensor.Dense, labels []int) int {
	return nn.CountCorrect(scores, labels)
}
