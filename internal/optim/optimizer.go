// Package optim implements optimization algorithms for training neural networks.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with optional momentum
//   - Adam: adaptive moments with bias correction
//
// Optimizers read gradients straight from the parameter accumulators
// filled by the backward pass, so a training step is:
//
//	optimizer.ZeroGrad()
//	logProbs := model.Forward(input)
//	loss := criterion.Forward(logProbs, labels)
//	model.Backward(criterion.Backward())
//	optimizer.Step()
package optim

// Optimizer is the base interface for all optimization algorithms.
//
// Optimizers update model parameters in place based on the gradients
// accumulated by backward passes.
type Optimizer interface {
	// Step applies one gradient update to all parameters.
	//
	// A parameter whose gradient accumulator was never filled (it took
	// part in no backward pass) is skipped and keeps its value.
	Step()

	// ZeroGrad resets all parameter gradient accumulators.
	//
	// This should be called before each training iteration to prevent
	// gradient accumulation from previous iterations.
	ZeroGrad()

	// GetLR returns the current learning rate.
	//
	// Useful for monitoring and learning rate scheduling.
	GetLR() float64
}
