package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/sprout/internal/tensor"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = x @ W.T + b
// where:
//   - x is the input tensor with shape [batch_size, in_features]
//   - W is the weight matrix with shape [out_features, in_features]
//   - b is the bias vector with shape [out_features]
//   - y is the output tensor with shape [batch_size, out_features]
//
// Weights are initialized using Xavier/Glorot initialization.
// Biases are initialized to zeros.
//
// Forward memoizes its input; Backward uses it to accumulate parameter
// gradients and to compute the gradient for the preceding stage:
//
//	dL/dW += dL/dy.T @ x
//	dL/db += column sums of dL/dy
//	dL/dx  = dL/dy @ W
//
// Example:
//
//	layer := nn.NewLinear(784, 128, rng)
//
//	input := tensor.Randn(tensor.Shape{32, 784}, rng) // batch_size=32
//	output := layer.Forward(input)                    // shape: [32, 128]
type Linear struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter // [out_features, in_features]
	bias        *Parameter // [out_features]

	input *tensor.Dense // memoized by Forward, consumed by Backward
}

// NewLinear creates a new Linear layer.
//
// Weights are initialized using Xavier/Glorot uniform distribution
// drawn from rng. Biases are initialized to zeros.
func NewLinear(inFeatures, outFeatures int, rng *rand.Rand) *Linear {
	if inFeatures <= 0 || outFeatures <= 0 {
		panic(fmt.Sprintf("linear: invalid features in=%d, out=%d", inFeatures, outFeatures))
	}

	weightShape := tensor.Shape{outFeatures, inFeatures}
	weight := NewParameter("weight", Xavier(inFeatures, outFeatures, weightShape, rng))

	bias := NewParameter("bias", tensor.Zeros(tensor.Shape{outFeatures}))

	return &Linear{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      weight,
		bias:        bias,
	}
}

// Forward computes y = x @ W.T + b and memoizes x for the backward
// pass.
//
// Input shape: [batch_size, in_features]
// Output shape: [batch_size, out_features]
func (l *Linear) Forward(input *tensor.Dense) *tensor.Dense {
	inputShape := input.Shape()
	if len(inputShape) != 2 {
		panic(fmt.Sprintf("linear: expected 2D input [batch, features], got shape %v", inputShape))
	}
	if inputShape[1] != l.inFeatures {
		panic(fmt.Sprintf("linear: expected input with %d features, got %d", l.inFeatures, inputShape[1]))
	}

	l.input = input

	// [batch, in] @ [out, in]^T = [batch, out]
	return tensor.MatMulT(input, l.weight.Tensor()).AddRow(l.bias.Tensor())
}

// Backward accumulates weight and bias gradients from the output
// gradient and returns the gradient with respect to the layer input.
//
// Gradient shape: [batch_size, out_features], matching the last
// Forward output.
func (l *Linear) Backward(grad *tensor.Dense) *tensor.Dense {
	if l.input == nil {
		panic("linear: backward called before forward")
	}
	if len(grad.Shape()) != 2 || grad.Rows() != l.input.Rows() || grad.Cols() != l.outFeatures {
		panic(fmt.Sprintf("linear: gradient shape %v does not match output shape (%d, %d)",
			grad.Shape(), l.input.Rows(), l.outFeatures))
	}

	// dL/dW += g^T @ x: [out, batch] @ [batch, in] = [out, in]
	l.weight.Tensor().AccumulateGrad(tensor.TMatMul(grad, l.input))

	// dL/db += sum of g over the batch dimension.
	l.bias.Tensor().AccumulateGrad(tensor.ColSums(grad))

	// dL/dx = g @ W: [batch, out] @ [out, in] = [batch, in]
	return tensor.MatMul(grad, l.weight.Tensor())
}

// Parameters returns [weight, bias].
func (l *Linear) Parameters() []*Parameter {
	return []*Parameter{l.weight, l.bias}
}

// Weight returns the weight parameter.
func (l *Linear) Weight() *Parameter {
	return l.weight
}

// Bias returns the bias parameter.
func (l *Linear) Bias() *Parameter {
	return l.bias
}

// InFeatures returns the number of input features.
func (l *Linear) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Linear) OutFeatures() int {
	return l.outFeatures
}

// StateDict returns a map of parameter names to copies of their
// tensors.
func (l *Linear) StateDict() map[string]*tensor.Dense {
	return map[string]*tensor.Dense{
		"weight": l.weight.Tensor().Clone(),
		"bias":   l.bias.Tensor().Clone(),
	}
}

// LoadStateDict loads parameters from a state dictionary.
func (l *Linear) LoadStateDict(stateDict map[string]*tensor.Dense) error {
	weight, ok := stateDict["weight"]
	if !ok {
		return fmt.Errorf("missing weight in state dict")
	}
	expectedWeightShape := tensor.Shape{l.outFeatures, l.inFeatures}
	if !weight.Shape().Equal(expectedWeightShape) {
		return fmt.Errorf("weight shape mismatch: expected %v, got %v",
			expectedWeightShape, weight.Shape())
	}
	copy(l.weight.Tensor().Data(), weight.Data())

	bias, ok := stateDict["bias"]
	if !ok {
		return fmt.Errorf("missing bias in state dict")
	}
	expectedBiasShape := tensor.Shape{l.outFeatures}
	if !bias.Shape().Equal(expectedBiasShape) {
		return fmt.Errorf("bias shape mismatch: expected %v, got %v",
			expectedBiasShape, bias.Shape())
	}
	copy(l.bias.Tensor().Data(), bias.Data())

	return nil
}
