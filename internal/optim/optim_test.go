package optim_test

import (
	"math"
	"testing"

	"github.com/born-ml/sprout/internal/nn"
	"github.com/born-ml/sprout/internal/optim"
	"github.com/born-ml/sprout/internal/tensor"
)

// Helper to check float equality with tolerance.
func floatEqual(a, b, eps float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < eps
}

// scalarParam builds a one-element parameter for update-rule tests.
func scalarParam(value float64) *nn.Parameter {
	return nn.NewParameter("x", tensor.New(tensor.Shape{1}, []float64{value}))
}

// accumulate writes a gradient into the parameter's accumulator.
func accumulate(p *nn.Parameter, grad float64) {
	p.Tensor().AccumulateGrad(tensor.New(tensor.Shape{1}, []float64{grad}))
}

// TestSGD_SimpleUpdate tests SGD without momentum.
func TestSGD_SimpleUpdate(t *testing.T) {
	param := scalarParam(2.0)
	optimizer := optim.NewSGD([]*nn.Parameter{param}, optim.SGDConfig{LR: 0.1})

	accumulate(param, 1.0)
	optimizer.Step()

	// x_new = x_old - lr * grad = 2.0 - 0.1 * 1.0 = 1.9
	if got := param.Tensor().Data()[0]; !floatEqual(got, 1.9, 1e-12) {
		t.Errorf("SGD update: got %f, want %f", got, 1.9)
	}
}

// TestSGD_WithMomentum tests SGD with momentum over two steps.
func TestSGD_WithMomentum(t *testing.T) {
	param := scalarParam(1.0)
	optimizer := optim.NewSGD([]*nn.Parameter{param}, optim.SGDConfig{LR: 0.1, Momentum: 0.9})

	// First step: v_1 = 0.9*0 + 1.0 = 1.0, x_1 = 1.0 - 0.1*1.0 = 0.9
	accumulate(param, 1.0)
	optimizer.Step()
	if got := param.Tensor().Data()[0]; !floatEqual(got, 0.9, 1e-12) {
		t.Errorf("SGD momentum step 1: got %f, want %f", got, 0.9)
	}

	// Second step: v_2 = 0.9*1.0 + 1.0 = 1.9, x_2 = 0.9 - 0.19 = 0.71
	optimizer.ZeroGrad()
	accumulate(param, 1.0)
	optimizer.Step()
	if got := param.Tensor().Data()[0]; !floatEqual(got, 0.71, 1e-12) {
		t.Errorf("SGD momentum step 2: got %f, want %f", got, 0.71)
	}
}

// TestSGD_SkipsParamsWithoutGrad verifies that a parameter whose
// gradient was never computed is left untouched by Step.
func TestSGD_SkipsParamsWithoutGrad(t *testing.T) {
	touched := scalarParam(1.0)
	untouched := scalarParam(5.0)
	optimizer := optim.NewSGD([]*nn.Parameter{touched, untouched}, optim.SGDConfig{LR: 0.5})

	accumulate(touched, 1.0)
	optimizer.Step()

	if got := touched.Tensor().Data()[0]; !floatEqual(got, 0.5, 1e-12) {
		t.Errorf("parameter with gradient: got %f, want 0.5", got)
	}
	if got := untouched.Tensor().Data()[0]; got != 5.0 {
		t.Errorf("parameter without gradient moved: got %f, want 5.0", got)
	}
	if untouched.Grad() != nil {
		t.Errorf("Step allocated a gradient accumulator")
	}
}

// TestSGD_ZeroGrad tests that ZeroGrad resets accumulators in place.
func TestSGD_ZeroGrad(t *testing.T) {
	param := scalarParam(1.0)
	optimizer := optim.NewSGD([]*nn.Parameter{param}, optim.SGDConfig{LR: 0.1})

	accumulate(param, 5.0)
	if param.Grad() == nil {
		t.Fatal("Grad should not be nil after accumulation")
	}

	optimizer.ZeroGrad()

	if param.Grad() == nil {
		t.Fatal("accumulator should be retained after ZeroGrad")
	}
	if got := param.Grad().Data()[0]; got != 0 {
		t.Errorf("Grad after ZeroGrad: got %f, want 0", got)
	}
}

// TestSGD_ZeroGradIdempotent verifies the reset sequence zero, step,
// zero, zero leaves both gradients and values stable.
func TestSGD_ZeroGradIdempotent(t *testing.T) {
	param := scalarParam(2.0)
	optimizer := optim.NewSGD([]*nn.Parameter{param}, optim.SGDConfig{LR: 0.1})

	accumulate(param, 1.0)
	optimizer.ZeroGrad()
	optimizer.Step() // zeroed gradient: no movement

	if got := param.Tensor().Data()[0]; got != 2.0 {
		t.Errorf("step on zeroed gradient moved parameter: got %f", got)
	}

	optimizer.ZeroGrad()
	optimizer.ZeroGrad()

	if got := param.Grad().Data()[0]; got != 0 {
		t.Errorf("repeated ZeroGrad: got %f, want 0", got)
	}
	if got := param.Tensor().Data()[0]; got != 2.0 {
		t.Errorf("repeated ZeroGrad changed parameter: got %f", got)
	}
}

// TestSGD_GetSetLR tests learning rate getter/setter.
func TestSGD_GetSetLR(t *testing.T) {
	optimizer := optim.NewSGD(nil, optim.SGDConfig{LR: 0.01})

	if optimizer.GetLR() != 0.01 {
		t.Errorf("GetLR: got %f, want 0.01", optimizer.GetLR())
	}

	optimizer.SetLR(0.001)
	if optimizer.GetLR() != 0.001 {
		t.Errorf("GetLR after SetLR: got %f, want 0.001", optimizer.GetLR())
	}
}

// TestSGD_Defaults tests the zero-config fallbacks and validation.
func TestSGD_Defaults(t *testing.T) {
	optimizer := optim.NewSGD(nil, optim.SGDConfig{})
	if optimizer.GetLR() != 0.01 {
		t.Errorf("default LR: got %f, want 0.01", optimizer.GetLR())
	}

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic for momentum >= 1")
		}
	}()
	optim.NewSGD(nil, optim.SGDConfig{Momentum: 1.0})
}

// TestSGD_StateDict tests velocity export and restore.
func TestSGD_StateDict(t *testing.T) {
	param := scalarParam(1.0)
	optimizer := optim.NewSGD([]*nn.Parameter{param}, optim.SGDConfig{LR: 0.1, Momentum: 0.9})

	accumulate(param, 1.0)
	optimizer.Step()

	state := optimizer.StateDict()
	velocity, ok := state["velocity.0"]
	if !ok {
		t.Fatal("missing velocity.0 in state dict")
	}
	if got := velocity.Data()[0]; !floatEqual(got, 1.0, 1e-12) {
		t.Errorf("exported velocity: got %f, want 1.0", got)
	}

	fresh := optim.NewSGD([]*nn.Parameter{param}, optim.SGDConfig{LR: 0.1, Momentum: 0.9})
	if err := fresh.LoadStateDict(state); err != nil {
		t.Fatalf("LoadStateDict: %v", err)
	}

	// Restored velocity feeds the next update: v = 0.9*1.0 + 1.0 = 1.9.
	optimizer.ZeroGrad()
	accumulate(param, 1.0)
	before := param.Tensor().Data()[0]
	fresh.Step()
	want := before - 0.1*1.9
	if got := param.Tensor().Data()[0]; !floatEqual(got, want, 1e-12) {
		t.Errorf("step after restore: got %f, want %f", got, want)
	}

	// Mismatched shapes are rejected.
	bad := map[string]*tensor.Dense{"velocity.0": tensor.Zeros(tensor.Shape{2})}
	if err := fresh.LoadStateDict(bad); err == nil {
		t.Errorf("expected shape mismatch error")
	}
}

// TestAdam_SimpleUpdate tests the first Adam step with bias correction.
func TestAdam_SimpleUpdate(t *testing.T) {
	param := scalarParam(1.0)
	optimizer := optim.NewAdam([]*nn.Parameter{param}, optim.AdamConfig{LR: 0.001})

	accumulate(param, 1.0)
	optimizer.Step()

	// m_hat = 1.0, v_hat = 1.0:
	// x_new = 1.0 - 0.001 * 1.0 / (sqrt(1.0) + 1e-8) ≈ 0.999
	if got := param.Tensor().Data()[0]; !floatEqual(got, 0.999, 1e-6) {
		t.Errorf("Adam first step: got %f, want %f", got, 0.999)
	}
}

// TestAdam_BiasCorrection tests timestep tracking across steps.
func TestAdam_BiasCorrection(t *testing.T) {
	param := scalarParam(1.0)
	optimizer := optim.NewAdam([]*nn.Parameter{param}, optim.AdamConfig{LR: 0.01})

	if optimizer.GetTimestep() != 0 {
		t.Errorf("Initial timestep: got %d, want 0", optimizer.GetTimestep())
	}

	for i := 1; i <= 3; i++ {
		optimizer.ZeroGrad()
		accumulate(param, 1.0)
		optimizer.Step()

		if optimizer.GetTimestep() != i {
			t.Errorf("After step %d, timestep: got %d, want %d", i, optimizer.GetTimestep(), i)
		}
	}

	if final := param.Tensor().Data()[0]; final >= 1.0 {
		t.Errorf("After 3 Adam steps with positive gradient, parameter should decrease: got %f", final)
	}
}

func TestAdam_StateDict(t *testing.T) {
	reference := scalarParam(1.0)
	continuous := optim.NewAdam([]*nn.Parameter{reference}, optim.AdamConfig{LR: 0.01})
	for i := 0; i < 2; i++ {
		continuous.ZeroGrad()
		accumulate(reference, 1.0)
		continuous.Step()
	}
	want := reference.Tensor().Data()[0]

	// Same two steps, but with a state round trip in between.
	param := scalarParam(1.0)
	first := optim.NewAdam([]*nn.Parameter{param}, optim.AdamConfig{LR: 0.01})
	accumulate(param, 1.0)
	first.Step()

	state := first.StateDict()
	if got := state["t"].Data()[0]; got != 1 {
		t.Errorf("exported timestep: got %f, want 1", got)
	}
	if got := state["m.0"].Data()[0]; !floatEqual(got, 0.1, 1e-12) {
		t.Errorf("exported first moment: got %f, want 0.1", got)
	}
	if got := state["v.0"].Data()[0]; !floatEqual(got, 0.001, 1e-12) {
		t.Errorf("exported second moment: got %f, want 0.001", got)
	}

	second := optim.NewAdam([]*nn.Parameter{param}, optim.AdamConfig{LR: 0.01})
	if err := second.LoadStateDict(state); err != nil {
		t.Fatalf("LoadStateDict: %v", err)
	}
	if second.GetTimestep() != 1 {
		t.Errorf("restored timestep: got %d, want 1", second.GetTimestep())
	}

	second.ZeroGrad()
	accumulate(param, 1.0)
	second.Step()
	if got := param.Tensor().Data()[0]; !floatEqual(got, want, 1e-12) {
		t.Errorf("step after restore: got %f, want %f", got, want)
	}

	// Mismatched shapes are rejected.
	bad := map[string]*tensor.Dense{"m.0": tensor.Zeros(tensor.Shape{2})}
	if err := second.LoadStateDict(bad); err == nil {
		t.Errorf("expected shape mismatch error")
	}
}

// TestConvergence_SimpleQuadratic minimizes f(x) = (x-3)^2 with each
// optimizer and checks it lands near the optimum.
func TestConvergence_SimpleQuadratic(t *testing.T) {
	tests := []struct {
		name  string
		build func(params []*nn.Parameter) optim.Optimizer
		steps int
		tol   float64
	}{
		{
			name: "SGD",
			build: func(params []*nn.Parameter) optim.Optimizer {
				return optim.NewSGD(params, optim.SGDConfig{LR: 0.1})
			},
			steps: 100,
			tol:   1e-6,
		},
		{
			name: "SGD_Momentum",
			build: func(params []*nn.Parameter) optim.Optimizer {
				return optim.NewSGD(params, optim.SGDConfig{LR: 0.05, Momentum: 0.9})
			},
			steps: 200,
			tol:   1e-3,
		},
		{
			name: "Adam",
			build: func(params []*nn.Parameter) optim.Optimizer {
				return optim.NewAdam(params, optim.AdamConfig{LR: 0.1})
			},
			steps: 300,
			tol:   0.05,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			param := scalarParam(1.0)
			optimizer := tt.build([]*nn.Parameter{param})

			for i := 0; i < tt.steps; i++ {
				optimizer.ZeroGrad()
				x := param.Tensor().Data()[0]
				accumulate(param, 2*(x-3)) // df/dx of (x-3)^2
				optimizer.Step()
			}

			x := param.Tensor().Data()[0]
			if math.Abs(x-3.0) > tt.tol {
				t.Errorf("converged to %f, want 3.0 within %v", x, tt.tol)
			}
		})
	}
}
