package nn

import (
	"fmt"

	"github.com/born-ml/sprout/internal/tensor"
)

// NLLLoss computes the negative log-likelihood loss.
//
// Loss = -mean(logProbs[i, labels[i]])
//
// It consumes the log-probabilities a LogSoftmax stage produces, so the
// pair (LogSoftmax, NLLLoss) is cross-entropy split into two stages.
// The loss is the terminal stage of the pipeline: its Backward takes no
// incoming gradient (the seed gradient of the loss with respect to
// itself is 1) and emits the gradient for the stage below.
//
// Example:
//
//	criterion := nn.NewNLLLoss()
//	loss := criterion.Forward(logProbs, labels)
//	gradOut := criterion.Backward()
type NLLLoss struct {
	shape  tensor.Shape // shape of the last logProbs input
	labels []int        // labels of the last batch
}

// NewNLLLoss creates a new negative log-likelihood loss.
func NewNLLLoss() *NLLLoss {
	return &NLLLoss{}
}

// Forward computes the mean negative log-probability of the true
// labels.
//
// Parameters:
//   - logProbs: Log-probabilities with shape [batch_size, num_classes]
//   - labels: True class index per row, each in [0, num_classes)
//
// A label outside [0, num_classes) is a corrupt-input programmer error
// and panics.
func (n *NLLLoss) Forward(logProbs *tensor.Dense, labels []int) float64 {
	if len(logProbs.Shape()) != 2 {
		panic(fmt.Sprintf("nll: expected 2D input [batch, classes], got shape %v", logProbs.Shape()))
	}
	batch, classes := logProbs.Rows(), logProbs.Cols()
	if len(labels) != batch {
		panic(fmt.Sprintf("nll: %d labels for batch of %d", len(labels), batch))
	}

	var sum float64
	for i, label := range labels {
		if label < 0 || label >= classes {
			panic(fmt.Sprintf("nll: label %d out of range [0, %d)", label, classes))
		}
		sum += logProbs.At(i, label)
	}

	n.shape = logProbs.Shape().Clone()
	n.labels = append(n.labels[:0], labels...)

	return -sum / float64(batch)
}

// Backward returns the gradient of the loss with respect to the
// log-probabilities: -1/batch at each true-label position, zero
// elsewhere.
func (n *NLLLoss) Backward() *tensor.Dense {
	if n.labels == nil {
		panic("nll: backward called before forward")
	}

	out := tensor.Zeros(n.shape.Clone())
	scale := -1.0 / float64(n.shape[0])
	for i, label := range n.labels {
		out.Set(i, label, scale)
	}
	return out
}

// Parameters returns an empty slice (loss functions have no trainable parameters).
func (n *NLLLoss) Parameters() []*Parameter {
	return nil
}
