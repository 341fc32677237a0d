// Copyright 2025 Sprout ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"math/rand"

	"github.com/born-ml/sprout/internal/tensor"
)

// Shape represents the dimensions of a tensor.
type Shape = tensor.Shape

// Dense is a dense float64 tensor with an accumulating gradient buffer.
type Dense = tensor.Dense

// New creates a tensor from a shape and a flat row-major buffer. The
// buffer is used directly, not copied.
//
// Example:
//
//	t := tensor.New(tensor.Shape{2, 2}, []float64{1, 2, 3, 4})
func New(shape Shape, data []float64) *Dense {
	return tensor.New(shape, data)
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape) *Dense {
	return tensor.Zeros(shape)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape) *Dense {
	return tensor.Ones(shape)
}

// Full creates a tensor filled with the given value.
func Full(shape Shape, value float64) *Dense {
	return tensor.Full(shape, value)
}

// FromRows creates a rank-2 tensor from equally sized rows.
func FromRows(rows [][]float64) *Dense {
	return tensor.FromRows(rows)
}

// NewRNG returns a seeded random source for reproducible tensor
// creation.
func NewRNG(seed int64) *rand.Rand {
	return tensor.NewRNG(seed)
}

// Randn creates a tensor with standard normal values drawn from rng.
//
// Example:
//
//	rng := tensor.NewRNG(42)
//	w := tensor.Randn(tensor.Shape{128, 784}, rng)
func Randn(shape Shape, rng *rand.Rand) *Dense {
	return tensor.Randn(shape, rng)
}

// Uniform creates a tensor with values uniform in [lo, hi).
func Uniform(shape Shape, lo, hi float64, rng *rand.Rand) *Dense {
	return tensor.Uniform(shape, lo, hi, rng)
}

// Matrix ops

// MatMul computes a @ b for rank-2 tensors.
func MatMul(a, b *Dense) *Dense {
	return tensor.MatMul(a, b)
}

// MatMulT computes a @ b.T for rank-2 tensors.
func MatMulT(a, b *Dense) *Dense {
	return tensor.MatMulT(a, b)
}

// TMatMul computes a.T @ b for rank-2 tensors.
func TMatMul(a, b *Dense) *Dense {
	return tensor.TMatMul(a, b)
}

// ColSums returns the column sums of a rank-2 tensor as a rank-1
// tensor.
func ColSums(t *Dense) *Dense {
	return tensor.ColSums(t)
}
