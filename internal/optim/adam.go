package optim

import (
	"fmt"
	"math"

	"github.com/born-ml/sprout/internal/nn"
	"github.com/born-ml/sprout/internal/tensor"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Adam combines ideas from RMSprop and momentum:
//   - Maintains exponential moving averages of gradients (first moment)
//   - Maintains exponential moving averages of squared gradients (second moment)
//   - Applies bias correction to compensate for initialization at zero
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient       // First moment
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²      // Second moment
//	m_hat = m_t / (1 - beta1^t)                        // Bias correction
//	v_hat = v_t / (1 - beta2^t)                        // Bias correction
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)   // Parameter update
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
//
// Example:
//
//	optimizer := optim.NewAdam(model.Parameters(), optim.AdamConfig{
//	    LR: 0.001,
//	})
type Adam struct {
	params []*nn.Parameter
	lr     float64
	beta1  float64
	beta2  float64
	eps    float64
	t      int // Timestep for bias correction
	m      map[*nn.Parameter]*tensor.Dense // First moment estimates
	v      map[*nn.Parameter]*tensor.Dense // Second moment estimates
}

// AdamConfig holds configuration for the Adam optimizer.
type AdamConfig struct {
	LR    float64    // Learning rate (default: 0.001)
	Betas [2]float64 // Coefficients for the running averages (default: [0.9, 0.999])
	Eps   float64    // Term for numerical stability (default: 1e-8)
}

// NewAdam creates a new Adam optimizer over the given parameters.
//
// Zero-valued config fields fall back to the usual defaults:
// LR 0.001, Betas [0.9, 0.999], Eps 1e-8.
func NewAdam(params []*nn.Parameter, config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.LR < 0 {
		panic(fmt.Sprintf("adam: negative learning rate %v", config.LR))
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam{
		params: params,
		lr:     config.LR,
		beta1:  config.Betas[0],
		beta2:  config.Betas[1],
		eps:    config.Eps,
		m:      make(map[*nn.Parameter]*tensor.Dense),
		v:      make(map[*nn.Parameter]*tensor.Dense),
	}
}

// Step performs a single optimization step using the Adam algorithm.
//
// Parameters with a nil gradient accumulator are skipped.
func (a *Adam) Step() {
	a.t++

	biasCorrection1 := 1.0 - math.Pow(a.beta1, float64(a.t))
	biasCorrection2 := 1.0 - math.Pow(a.beta2, float64(a.t))

	for _, param := range a.params {
		grad := param.Grad()
		if grad == nil {
			continue
		}

		m, ok := a.m[param]
		if !ok {
			m = tensor.Zeros(param.Tensor().Shape().Clone())
			a.m[param] = m
		}
		v, ok := a.v[param]
		if !ok {
			v = tensor.Zeros(param.Tensor().Shape().Clone())
			a.v[param] = v
		}

		pd, gd := param.Tensor().Data(), grad.Data()
		md, vd := m.Data(), v.Data()
		for i := range pd {
			md[i] = a.beta1*md[i] + (1-a.beta1)*gd[i]
			vd[i] = a.beta2*vd[i] + (1-a.beta2)*gd[i]*gd[i]

			mHat := md[i] / biasCorrection1
			vHat := vd[i] / biasCorrection2
			pd[i] -= a.lr * mHat / (math.Sqrt(vHat) + a.eps)
		}
	}
}

// ZeroGrad resets the gradient accumulators of all parameters.
func (a *Adam) ZeroGrad() {
	for _, param := range a.params {
		param.ZeroGrad()
	}
}

// GetLR returns the current learning rate.
func (a *Adam) GetLR() float64 {
	return a.lr
}

// SetLR updates the learning rate.
func (a *Adam) SetLR(lr float64) {
	if lr <= 0 {
		panic(fmt.Sprintf("adam: invalid learning rate %v", lr))
	}
	a.lr = lr
}

// GetTimestep returns the number of steps taken, used by the bias
// correction terms.
func (a *Adam) GetTimestep() int {
	return a.t
}

// StateDict returns a copy of the optimizer state.
//
// This exports the bias-correction timestep keyed "t" as a one-element
// tensor, plus copies of the moment estimates keyed "m.{param_index}"
// and "v.{param_index}" for each parameter that has them.
func (a *Adam) StateDict() map[string]*tensor.Dense {
	stateDict := map[string]*tensor.Dense{
		"t": tensor.New(tensor.Shape{1}, []float64{float64(a.t)}),
	}

	for i, param := range a.params {
		if m, ok := a.m[param]; ok {
			stateDict[fmt.Sprintf("m.%d", i)] = m.Clone()
		}
		if v, ok := a.v[param]; ok {
			stateDict[fmt.Sprintf("v.%d", i)] = v.Clone()
		}
	}
	return stateDict
}

// LoadStateDict restores the timestep and moment estimates exported by
// StateDict.
//
// Parameters without an entry start with fresh moments on their next
// step.
func (a *Adam) LoadStateDict(stateDict map[string]*tensor.Dense) error {
	if t, ok := stateDict["t"]; ok {
		if t.NumElements() != 1 {
			return fmt.Errorf("timestep must hold a single value, got shape %v", t.Shape())
		}
		a.t = int(t.Data()[0])
	}

	a.m = make(map[*nn.Parameter]*tensor.Dense)
	a.v = make(map[*nn.Parameter]*tensor.Dense)
	for i, param := range a.params {
		if m, ok := stateDict[fmt.Sprintf("m.%d", i)]; ok {
			if !m.Shape().Equal(param.Tensor().Shape()) {
				return fmt.Errorf("first moment shape mismatch for parameter %d: expected %v, got %v",
					i, param.Tensor().Shape(), m.Shape())
			}
			a.m[param] = m.Clone()
		}
		if v, ok := stateDict[fmt.Sprintf("v.%d", i)]; ok {
			if !v.Shape().Equal(param.Tensor().Shape()) {
				return fmt.Errorf("second moment shape mismatch for parameter %d: expected %v, got %v",
					i, param.Tensor().Shape(), v.Shape())
			}
			a.v[param] = v.Clone()
		}
	}
	return nil
}
