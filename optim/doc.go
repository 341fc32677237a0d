// Copyright 2025 Sprout ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms for training neural
// networks.
//
// # Overview
//
// This package contains:
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Optimizer interface for custom optimizers
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/sprout/nn"
//	    "github.com/born-ml/sprout/optim"
//	)
//
//	func main() {
//	    optimizer := optim.NewSGD(net.Parameters(), optim.SGDConfig{
//	        LR:       0.01,
//	        Momentum: 0.9,
//	    })
//
//	    criterion := nn.NewNLLLoss()
//	    for epoch := 0; epoch < 10; epoch++ {
//	        optimizer.ZeroGrad()
//	        loss := criterion.Forward(net.Forward(x), labels)
//	        net.Backward(criterion.Backward())
//	        optimizer.Step()
//	    }
//	}
//
// # Optimizers
//
// SGD (Stochastic Gradient Descent):
//
//	optimizer := optim.NewSGD(net.Parameters(), optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
//
// Adam (Adaptive Moment Estimation):
//
//	optimizer := optim.NewAdam(net.Parameters(), optim.AdamConfig{
//	    LR:    0.001,
//	    Betas: [2]float64{0.9, 0.999},
//	    Eps:   1e-8,
//	})
//
// # Gradient Handling
//
// Optimizers read the gradient accumulators that backward passes fill
// in. Parameters whose accumulator was never allocated are skipped by
// Step, and ZeroGrad resets every accumulator in place before the next
// batch.
package optim
