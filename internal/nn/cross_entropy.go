package nn

import (
	"fmt"
	"math"

	"github.com/born-ml/sprout/internal/tensor"
)

// CrossEntropyLoss computes cross-entropy loss for multi-class
// classification directly from raw logits.
//
// It fuses LogSoftmax and NLLLoss into one stage. Training pipelines
// that want the log-probabilities as an inspectable activation should
// use the separate stages instead; the results are identical.
//
// Mathematical formulation:
//
//	Loss = -mean(log_probs[i, labels[i]])
//	where log_probs = LogSoftmax(logits)
//
// Gradient (Backward):
//
//	dL/dlogits = (Softmax(logits) - y_one_hot) / batch_size
//
// Usage:
//
//	criterion := nn.NewCrossEntropyLoss()
//	logits := model.Forward(input)          // [batch_size, num_classes]
//	loss := criterion.Forward(logits, labels)
type CrossEntropyLoss struct {
	logits *tensor.Dense
	labels []int
}

// NewCrossEntropyLoss creates a new cross-entropy loss function.
func NewCrossEntropyLoss() *CrossEntropyLoss {
	return &CrossEntropyLoss{}
}

// Forward computes the mean cross-entropy over the batch.
//
// Parameters:
//   - logits: Unnormalized scores with shape [batch_size, num_classes]
//   - labels: True class index per row, each in [0, num_classes)
func (c *CrossEntropyLoss) Forward(logits *tensor.Dense, labels []int) float64 {
	if len(logits.Shape()) != 2 {
		panic(fmt.Sprintf("cross_entropy: expected 2D logits [batch, classes], got shape %v", logits.Shape()))
	}
	batch, classes := logits.Rows(), logits.Cols()
	if len(labels) != batch {
		panic(fmt.Sprintf("cross_entropy: %d labels for batch of %d", len(labels), batch))
	}

	data := logits.Data()
	var total float64
	for i, label := range labels {
		if label < 0 || label >= classes {
			panic(fmt.Sprintf("cross_entropy: label %d out of range [0, %d)", label, classes))
		}
		logProbs := logSoftmaxRow(data[i*classes : (i+1)*classes])
		total += -logProbs[label]
	}

	c.logits = logits
	c.labels = append(c.labels[:0], labels...)

	return total / float64(batch)
}

// Backward returns the gradient of the loss with respect to the logits:
// (softmax(logits) - one_hot) / batch_size.
func (c *CrossEntropyLoss) Backward() *tensor.Dense {
	if c.logits == nil {
		panic("cross_entropy: backward called before forward")
	}

	batch, classes := c.logits.Rows(), c.logits.Cols()
	out := tensor.Zeros(tensor.Shape{batch, classes})
	data, outData := c.logits.Data(), out.Data()

	for i, label := range c.labels {
		probs := softmaxRow(data[i*classes : (i+1)*classes])
		outRow := outData[i*classes : (i+1)*classes]
		for j, p := range probs {
			if j == label {
				p -= 1.0
			}
			outRow[j] = p / float64(batch)
		}
	}
	return out
}

// Parameters returns an empty slice (loss functions have no trainable parameters).
func (c *CrossEntropyLoss) Parameters() []*Parameter {
	return nil
}

// logSoftmaxRow computes log(softmax(z)) in a numerically stable way.
//
// Formula:
//
//	LogSoftmax(z)[i] = z[i] - (max(z) + log(sum(exp(z - max(z)))))
//
// Subtracting max(z) before exponentiating prevents overflow.
func logSoftmaxRow(z []float64) []float64 {
	maxZ := z[0]
	for _, v := range z[1:] {
		if v > maxZ {
			maxZ = v
		}
	}

	var sumExp float64
	for _, v := range z {
		sumExp += math.Exp(v - maxZ)
	}
	logSumExp := maxZ + math.Log(sumExp)

	result := make([]float64, len(z))
	for i, v := range z {
		result[i] = v - logSumExp
	}
	return result
}

// softmaxRow computes softmax(z) = exp(LogSoftmax(z)).
func softmaxRow(z []float64) []float64 {
	result := logSoftmaxRow(z)
	for i, lp := range result {
		result[i] = math.Exp(lp)
	}
	return result
}

// argmax returns the index of the maximum value in the slice.
func argmax(z []float64) int {
	maxIdx := 0
	for i, v := range z[1:] {
		if v > z[maxIdx] {
			maxIdx = i + 1
		}
	}
	return maxIdx
}

// CountCorrect returns the number of rows whose argmax matches the
// label.
//
// Scores may be raw logits or log-probabilities: argmax is unchanged by
// the monotone log-softmax transform.
func CountCorrect(scores *tensor.Dense, labels []int) int {
	batch, classes := scores.Rows(), scores.Cols()
	if len(labels) != batch {
		panic(fmt.Sprintf("accuracy: %d labels for batch of %d", len(labels), batch))
	}

	data := scores.Data()
	correct := 0
	for i, label := range labels {
		if argmax(data[i*classes:(i+1)*classes]) == label {
			correct++
		}
	}
	return correct
}

// Accuracy computes classification accuracy for a batch.
//
// Returns accuracy as a float between 0 and 1.
func Accuracy(scores *tensor.Dense, labels []int) float64 {
	return float64(CountCorrect(scores, labels)) / float64(len(labels))
}
