package nn_test

import (
	"math"
	"testing"

	"github.com/born-ml/sprout/internal/nn"
	"github.com/born-ml/sprout/internal/tensor"
)

// Helper to check float equality with tolerance.
func floatEqualLoss(a, b, eps float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < eps
}

// TestNLLLoss_Forward tests the forward pass on hand-computed values.
func TestNLLLoss_Forward(t *testing.T) {
	// log_softmax([2.0, 1.0]) = [-0.3133, -1.3133], target 0:
	// loss = 0.3133
	logProbs := tensor.New(tensor.Shape{1, 2}, []float64{-0.3133, -1.3133})

	criterion := nn.NewNLLLoss()
	loss := criterion.Forward(logProbs, []int{0})

	if !floatEqualLoss(loss, 0.3133, 1e-4) {
		t.Errorf("NLLLoss forward: got %f, want %f", loss, 0.3133)
	}
}

// TestNLLLoss_NearPerfectPrediction verifies the loss approaches zero
// when the true class holds almost all probability mass.
func TestNLLLoss_NearPerfectPrediction(t *testing.T) {
	// Probability of the true class is 1-1e-9.
	logProbs := tensor.New(tensor.Shape{1, 3}, []float64{-1e-9, -25.0, -25.0})

	criterion := nn.NewNLLLoss()
	loss := criterion.Forward(logProbs, []int{0})

	if loss < 0 || loss > 1e-6 {
		t.Errorf("near-perfect prediction: loss = %v, want ~0", loss)
	}
}

// TestNLLLoss_Batch tests averaging over the batch.
func TestNLLLoss_Batch(t *testing.T) {
	// Uniform log-probabilities over 4 classes: every row contributes
	// -log(0.25) = log(4).
	uniform := math.Log(0.25)
	logProbs := tensor.Full(tensor.Shape{2, 4}, uniform)

	criterion := nn.NewNLLLoss()
	loss := criterion.Forward(logProbs, []int{3, 1})

	if !floatEqualLoss(loss, math.Log(4), 1e-12) {
		t.Errorf("uniform batch: got %f, want %f", loss, math.Log(4))
	}
}

// TestNLLLoss_Backward tests the sparse gradient layout.
func TestNLLLoss_Backward(t *testing.T) {
	logProbs := tensor.Full(tensor.Shape{2, 3}, math.Log(1.0/3.0))

	criterion := nn.NewNLLLoss()
	criterion.Forward(logProbs, []int{2, 0})
	grad := criterion.Backward()

	if !grad.Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("gradient shape %v, want (2, 3)", grad.Shape())
	}

	want := []float64{0, 0, -0.5, -0.5, 0, 0}
	for i, v := range grad.Data() {
		if !floatEqualLoss(v, want[i], 1e-12) {
			t.Errorf("grad[%d] = %v, want %v", i, v, want[i])
		}
	}
}

// TestNLLLoss_BackwardBeforeForward verifies the loss panics with no
// memoized batch.
func TestNLLLoss_BackwardBeforeForward(t *testing.T) {
	criterion := nn.NewNLLLoss()

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic for backward before forward")
		}
	}()

	criterion.Backward()
}

// TestNLLLoss_InvalidTarget verifies out-of-range labels are fatal.
func TestNLLLoss_InvalidTarget(t *testing.T) {
	logProbs := tensor.Full(tensor.Shape{1, 3}, math.Log(1.0/3.0))
	criterion := nn.NewNLLLoss()

	// Should panic
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic for invalid target index")
		}
	}()

	criterion.Forward(logProbs, []int{3})
}

// TestNLLLoss_NegativeTarget verifies negative labels are fatal.
func TestNLLLoss_NegativeTarget(t *testing.T) {
	logProbs := tensor.Full(tensor.Shape{1, 3}, math.Log(1.0/3.0))
	criterion := nn.NewNLLLoss()

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic for negative target index")
		}
	}()

	criterion.Forward(logProbs, []int{-1})
}

// TestNLLLoss_LabelCountMismatch verifies the label slice must cover
// the batch.
func TestNLLLoss_LabelCountMismatch(t *testing.T) {
	logProbs := tensor.Full(tensor.Shape{2, 3}, math.Log(1.0/3.0))
	criterion := nn.NewNLLLoss()

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic for label count mismatch")
		}
	}()

	criterion.Forward(logProbs, []int{0})
}

// TestCrossEntropy_MatchesStagedPipeline verifies the fused loss agrees
// with LogSoftmax followed by NLLLoss, forward and backward.
func TestCrossEntropy_MatchesStagedPipeline(t *testing.T) {
	logits := tensor.Randn(tensor.Shape{4, 6}, tensor.NewRNG(11))
	labels := []int{2, 0, 5, 3}

	fused := nn.NewCrossEntropyLoss()
	fusedLoss := fused.Forward(logits, labels)
	fusedGrad := fused.Backward()

	ls := nn.NewLogSoftmax()
	criterion := nn.NewNLLLoss()
	stagedLoss := criterion.Forward(ls.Forward(logits), labels)
	stagedGrad := ls.Backward(criterion.Backward())

	if !floatEqualLoss(fusedLoss, stagedLoss, 1e-12) {
		t.Errorf("fused loss %v != staged loss %v", fusedLoss, stagedLoss)
	}
	for i := range fusedGrad.Data() {
		if !floatEqualLoss(fusedGrad.Data()[i], stagedGrad.Data()[i], 1e-12) {
			t.Errorf("grad[%d]: fused %v != staged %v",
				i, fusedGrad.Data()[i], stagedGrad.Data()[i])
		}
	}
}

// TestCrossEntropy_InvalidTarget verifies out-of-range labels are fatal.
func TestCrossEntropy_InvalidTarget(t *testing.T) {
	logits := tensor.Zeros(tensor.Shape{1, 3})
	criterion := nn.NewCrossEntropyLoss()

	// Should panic
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic for invalid target index")
		}
	}()

	criterion.Forward(logits, []int{7})
}

// TestAccuracy checks argmax-based accuracy on a small batch.
func TestAccuracy(t *testing.T) {
	scores := tensor.New(tensor.Shape{3, 3}, []float64{
		1, 2, 3, // argmax 2
		3, 1, 2, // argmax 0
		2, 3, 1, // argmax 1
	})

	if acc := nn.Accuracy(scores, []int{2, 0, 1}); !floatEqualLoss(acc, 1.0, 1e-12) {
		t.Errorf("accuracy = %v, want 1.0", acc)
	}
	if acc := nn.Accuracy(scores, []int{2, 1, 1}); !floatEqualLoss(acc, 2.0/3.0, 1e-12) {
		t.Errorf("accuracy = %v, want 2/3", acc)
	}
}
