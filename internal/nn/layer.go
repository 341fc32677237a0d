// Package nn implements neural network stages for the Sprout ML framework.
//
// This package provides building blocks for constructing feed-forward
// classifiers:
//   - Layer interface: a pipeline stage with explicit forward and backward
//   - Parameter: trainable tensors with gradient accumulators
//   - Linear: fully connected layer
//   - ReLU, LogSoftmax: activations
//   - Loss functions: NLL, CrossEntropy
//   - Network: ordered stage container
//
// There is no autodiff tape. Every stage memoizes what its own backward
// pass needs during Forward and exposes a local Backward, so the whole
// gradient computation stays inspectable stage by stage.
package nn

import (
	"github.com/born-ml/sprout/internal/tensor"
)

// Layer is the base interface for all pipeline stages.
//
// Forward computes the stage output and memoizes whatever the matching
// Backward needs. Backward consumes the gradient of the loss with
// respect to the stage output, accumulates parameter gradients, and
// returns the gradient with respect to the stage input. Calling
// Backward on a stage that has never run Forward panics.
type Layer interface {
	// Forward computes the output of the stage given an input tensor.
	//
	// For example, Linear expects [batch_size, in_features].
	Forward(input *tensor.Dense) *tensor.Dense

	// Backward propagates the output gradient through the stage using
	// the state memoized by the last Forward. Parameter gradients are
	// accumulated, never overwritten, so successive backward passes sum
	// until the optimizer resets them.
	Backward(grad *tensor.Dense) *tensor.Dense

	// Parameters returns all trainable parameters of this stage.
	//
	// Returns an empty slice for stages without trainable parameters
	// (e.g., activation functions).
	Parameters() []*Parameter
}

// stateful is implemented by layers that carry persistent state worth
// saving, such as weights.
type stateful interface {
	StateDict() map[string]*tensor.Dense
	LoadStateDict(stateDict map[string]*tensor.Dense) error
}
