// Copyright 2025 Sprout ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/born-ml/sprout/internal/nn"
	"github.com/born-ml/sprout/internal/optim"
)

// Optimizer is the base interface for all optimization algorithms.
type Optimizer = optim.Optimizer

// Optimizers

// SGD implements Stochastic Gradient Descent with optional momentum.
type SGD = optim.SGD

// SGDConfig holds the hyperparameters for SGD.
type SGDConfig = optim.SGDConfig

// Adam implements the Adam optimizer with bias-corrected moment
// estimates.
type Adam = optim.Adam

// AdamConfig holds the hyperparameters for Adam.
type AdamConfig = optim.AdamConfig

// NewSGD creates an SGD optimizer for the given parameters.
//
// Example:
//
//	optimizer := optim.NewSGD(net.Parameters(), optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
func NewSGD(params []*nn.Parameter, config SGDConfig) *SGD {
	return optim.NewSGD(params, config)
}

// NewAdam creates an Adam optimizer for the given parameters.
//
// Zero-valued config fields fall back to the standard defaults
// (lr=0.001, betas=(0.9, 0.999), eps=1e-8).
//
// Example:
//
//	optimizer := optim.NewAdam(net.Parameters(), optim.AdamConfig{
//	    LR: 0.001,
//	})
func NewAdam(params []*nn.Parameter, config AdamConfig) *Adam {
	return optim.NewAdam(params, config)
}
