// Copyright 2025 Sprout ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network layers and building blocks for
// classifier pipelines.
//
// # Overview
//
// This package contains:
//   - Layers: Linear
//   - Activations: ReLU, LogSoftmax
//   - Loss functions: NLLLoss, CrossEntropyLoss
//   - Utilities: Network, Layer interface, Parameter
//   - Initialization: Xavier
//   - Metrics: Accuracy, CountCorrect
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/sprout/nn"
//	    "github.com/born-ml/sprout/tensor"
//	)
//
//	func main() {
//	    rng := tensor.NewRNG(42)
//
//	    // Build a digit classifier
//	    net := nn.NewNetwork(
//	        nn.NewLinear(784, 128, rng),
//	        nn.NewReLU(),
//	        nn.NewLinear(128, 10, rng),
//	        nn.NewLogSoftmax(),
//	    )
//
//	    // Forward pass
//	    logProbs := net.Forward(input)
//	}
//
// # Backward Passes
//
// There is no gradient tape. Every layer memoizes what it needs during
// Forward and exposes an explicit Backward that consumes the gradient
// of its output and returns the gradient of its input. The Network
// walks its stages in reverse:
//
//	criterion := nn.NewNLLLoss()
//	loss := criterion.Forward(net.Forward(x), labels)
//	net.Backward(criterion.Backward())
//
// Parameter gradients accumulate across backward passes until the
// optimizer resets them.
//
// # Loss Functions
//
// NLLLoss expects log-probabilities, so it pairs with a LogSoftmax
// final stage:
//
//	criterion := nn.NewNLLLoss()
//	loss := criterion.Forward(logProbs, labels)
//
// CrossEntropyLoss fuses LogSoftmax and NLLLoss and consumes raw
// logits:
//
//	criterion := nn.NewCrossEntropyLoss()
//	loss := criterion.Forward(logits, labels)
//
// # Parameter Management
//
// Access model parameters for optimization:
//
//	params := net.Parameters()
//	for _, param := range params {
//	    fmt.Println(param.Name(), param.Tensor().Shape())
//	}
//
// State dicts copy parameters out of a network and back in:
//
//	state := net.StateDict()           // "0.weight", "0.bias", ...
//	err := net.LoadStateDict(state)
package nn
