package nn

import (
	"github.com/born-ml/sprout/internal/tensor"
)

// Parameter represents a trainable parameter in a neural network.
//
// Parameters are tensors updated by an optimizer during training. They
// typically represent weights and biases of layers. The gradient lives
// on the tensor itself: it is allocated by the first backward pass and
// accumulates until reset.
//
// Example:
//
//	weight := nn.NewParameter("weight", weightTensor)
//
//	// Access the tensor
//	w := weight.Tensor()
//
//	// Get gradient after backward pass (nil before the first one)
//	grad := weight.Grad()
type Parameter struct {
	name   string        // Parameter name (e.g., "weight", "bias")
	tensor *tensor.Dense // The parameter tensor
}

// NewParameter creates a new trainable parameter.
//
// The tensor should be initialized before creating the Parameter.
func NewParameter(name string, t *tensor.Dense) *Parameter {
	return &Parameter{
		name:   name,
		tensor: t,
	}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter) Tensor() *tensor.Dense {
	return p.tensor
}

// Grad returns the gradient accumulator of the parameter tensor.
//
// Returns nil if no gradient has been computed yet.
func (p *Parameter) Grad() *tensor.Dense {
	return p.tensor.Grad()
}

// ZeroGrad resets the gradient accumulator to zero.
//
// This should be called before each training iteration to avoid
// carrying gradients over from previous iterations.
func (p *Parameter) ZeroGrad() {
	p.tensor.ZeroGrad()
}
