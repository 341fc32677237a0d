package optim

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/sprout/internal/nn"
	"github.com/born-ml/sprout/internal/tensor"
)

// SGD implements Stochastic Gradient Descent with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Momentum helps accelerate SGD in relevant directions and dampens
// oscillations.
//
// Example:
//
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
//
//	for epoch := range epochs {
//	    optimizer.ZeroGrad()
//	    loss := trainStep(model, batch)
//	    optimizer.Step()
//	}
type SGD struct {
	params     []*nn.Parameter
	lr         float64
	momentum   float64
	velocities map[*nn.Parameter]*tensor.Dense
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer over the given parameters.
//
// A zero LR falls back to the 0.01 default; a negative LR or a momentum
// outside [0, 1) panics.
func NewSGD(params []*nn.Parameter, config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}
	if config.LR < 0 {
		panic(fmt.Sprintf("sgd: negative learning rate %v", config.LR))
	}
	if config.Momentum < 0 || config.Momentum >= 1 {
		panic(fmt.Sprintf("sgd: momentum %v outside [0, 1)", config.Momentum))
	}

	return &SGD{
		params:     params,
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[*nn.Parameter]*tensor.Dense),
	}
}

// Step performs a single optimization step.
//
// Parameters with a nil gradient accumulator are skipped: a parameter
// that never took part in a backward pass keeps its value.
func (s *SGD) Step() {
	for _, param := range s.params {
		grad := param.Grad()
		if grad == nil {
			continue
		}

		if s.momentum == 0 {
			// param -= lr * grad
			floats.AddScaled(param.Tensor().Data(), -s.lr, grad.Data())
			continue
		}

		velocity, ok := s.velocities[param]
		if !ok {
			velocity = tensor.Zeros(param.Tensor().Shape().Clone())
			s.velocities[param] = velocity
		}

		// velocity = momentum * velocity + grad
		floats.Scale(s.momentum, velocity.Data())
		floats.Add(velocity.Data(), grad.Data())

		// param -= lr * velocity
		floats.AddScaled(param.Tensor().Data(), -s.lr, velocity.Data())
	}
}

// ZeroGrad resets the gradient accumulators of all parameters.
func (s *SGD) ZeroGrad() {
	for _, param := range s.params {
		param.ZeroGrad()
	}
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling during training.
func (s *SGD) SetLR(lr float64) {
	if lr <= 0 {
		panic(fmt.Sprintf("sgd: invalid learning rate %v", lr))
	}
	s.lr = lr
}

// StateDict returns a copy of the optimizer state.
//
// For SGD with momentum, this exports a copy of the velocity buffer for
// each parameter that has one, keyed "velocity.{param_index}". Without
// momentum the map is empty.
func (s *SGD) StateDict() map[string]*tensor.Dense {
	stateDict := make(map[string]*tensor.Dense)
	if s.momentum == 0 {
		return stateDict
	}

	for i, param := range s.params {
		velocity, ok := s.velocities[param]
		if !ok {
			continue // No velocity yet (parameter not stepped)
		}
		stateDict[fmt.Sprintf("velocity.%d", i)] = velocity.Clone()
	}
	return stateDict
}

// LoadStateDict restores velocity buffers exported by StateDict.
//
// If momentum is 0 the provided state is ignored. Parameters without an
// entry start with a fresh velocity on their next step.
func (s *SGD) LoadStateDict(stateDict map[string]*tensor.Dense) error {
	if s.momentum == 0 {
		return nil
	}

	s.velocities = make(map[*nn.Parameter]*tensor.Dense)
	for i, param := range s.params {
		velocity, ok := stateDict[fmt.Sprintf("velocity.%d", i)]
		if !ok {
			continue
		}
		if !velocity.Shape().Equal(param.Tensor().Shape()) {
			return fmt.Errorf("velocity shape mismatch for parameter %d: expected %v, got %v",
				i, param.Tensor().Shape(), velocity.Shape())
		}
		s.velocities[param] = velocity.Clone()
	}
	return nil
}
