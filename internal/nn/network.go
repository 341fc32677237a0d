package nn

import (
	"fmt"

	"github.com/born-ml/sprout/internal/tensor"
)

// Network is a container that chains pipeline stages together.
//
// Each stage's output becomes the next stage's input. Backward walks
// the stages in reverse, handing each stage the gradient produced by
// the one above it.
//
// A Network starts fresh and becomes primed after Forward. Backward on
// a fresh network panics: the stages hold no memoized state to
// propagate through. Repeated Backward calls on a primed network reuse
// the state of the last Forward, which is how gradients from several
// backward passes accumulate.
//
// Example:
//
//	model := nn.NewNetwork(
//	    nn.NewLinear(784, 128, rng),
//	    nn.NewReLU(),
//	    nn.NewLinear(128, 10, rng),
//	    nn.NewLogSoftmax(),
//	)
//
//	logProbs := model.Forward(input)
//	model.Backward(criterion.Backward())
type Network struct {
	layers []Layer
	primed bool
}

// NewNetwork creates a new Network from the given stages.
func NewNetwork(layers ...Layer) *Network {
	return &Network{
		layers: layers,
	}
}

// Add appends a stage to the pipeline.
//
// This allows building models incrementally:
//
//	model := nn.NewNetwork()
//	model.Add(nn.NewLinear(784, 128, rng))
//	model.Add(nn.NewReLU())
func (n *Network) Add(layer Layer) {
	n.layers = append(n.layers, layer)
}

// Forward applies all stages in sequence and primes the network for a
// backward pass.
func (n *Network) Forward(input *tensor.Dense) *tensor.Dense {
	output := input

	for _, layer := range n.layers {
		output = layer.Forward(output)
	}

	n.primed = true
	return output
}

// Backward propagates the loss gradient through all stages in reverse
// order and returns the gradient with respect to the network input.
//
// Panics if the network has never run Forward.
func (n *Network) Backward(grad *tensor.Dense) *tensor.Dense {
	if !n.primed {
		panic("network: backward called before forward")
	}

	for i := len(n.layers) - 1; i >= 0; i-- {
		grad = n.layers[i].Backward(grad)
	}
	return grad
}

// Parameters returns all trainable parameters from all stages, in
// pipeline order.
func (n *Network) Parameters() []*Parameter {
	var params []*Parameter

	for _, layer := range n.layers {
		params = append(params, layer.Parameters()...)
	}
	return params
}

// Len returns the number of stages in the pipeline.
func (n *Network) Len() int {
	return len(n.layers)
}

// Layer returns the stage at the given index.
//
// Panics if index is out of bounds.
func (n *Network) Layer(index int) Layer {
	if index < 0 || index >= len(n.layers) {
		panic("network: layer index out of bounds")
	}
	return n.layers[index]
}

// StateDict returns a map of parameter names to tensor copies.
//
// Parameters are prefixed with their stage index (e.g., "0.weight",
// "0.bias", "2.weight") to avoid name collisions.
func (n *Network) StateDict() map[string]*tensor.Dense {
	stateDict := make(map[string]*tensor.Dense)

	for i, layer := range n.layers {
		s, ok := layer.(stateful)
		if !ok {
			continue
		}
		for name, t := range s.StateDict() {
			stateDict[fmt.Sprintf("%d.%s", i, name)] = t
		}
	}
	return stateDict
}

// LoadStateDict loads parameters from a state dictionary produced by
// StateDict.
func (n *Network) LoadStateDict(stateDict map[string]*tensor.Dense) error {
	for i, layer := range n.layers {
		s, ok := layer.(stateful)
		if !ok {
			continue
		}

		layerStateDict := make(map[string]*tensor.Dense)
		prefix := fmt.Sprintf("%d.", i)
		for key, t := range stateDict {
			if len(key) > len(prefix) && key[:len(prefix)] == prefix {
				layerStateDict[key[len(prefix):]] = t
			}
		}

		if len(layerStateDict) > 0 {
			if err := s.LoadStateDict(layerStateDict); err != nil {
				return fmt.Errorf("failed to load stage %d: %w", i, err)
			}
		}
	}
	return nil
}
