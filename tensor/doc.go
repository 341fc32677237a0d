// Copyright 2025 Sprout ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides dense float64 tensors with accumulating
// gradient buffers.
//
// # Overview
//
// This package contains:
//   - Dense: a flat row-major tensor with a lazily allocated gradient
//   - Shape: dimension handling and validation
//   - Creation: Zeros, Ones, Full, FromRows, Randn, Uniform
//   - Matrix ops: MatMul, MatMulT, TMatMul, ColSums
//
// # Basic Usage
//
//	import "github.com/born-ml/sprout/tensor"
//
//	func main() {
//	    a := tensor.New(tensor.Shape{2, 3}, []float64{1, 2, 3, 4, 5, 6})
//	    b := tensor.Ones(tensor.Shape{3, 2})
//
//	    c := tensor.MatMul(a, b) // shape (2, 2)
//	    fmt.Println(c.Data())
//	}
//
// # Gradients
//
// Every tensor can accumulate a gradient of its own shape. The buffer
// is allocated on first use and summed into on every call, so gradients
// from repeated backward passes add up until they are reset:
//
//	w := tensor.Randn(tensor.Shape{10, 4}, rng)
//	w.AccumulateGrad(g1)
//	w.AccumulateGrad(g2) // grad now holds g1 + g2
//	w.ZeroGrad()         // reset in place, buffer retained
//
// # Random Tensors
//
// Random creation is seeded explicitly so runs are reproducible:
//
//	rng := tensor.NewRNG(42)
//	w := tensor.Randn(tensor.Shape{128, 784}, rng)
//	u := tensor.Uniform(tensor.Shape{10}, -0.1, 0.1, rng)
package tensor
