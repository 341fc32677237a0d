package nn

import (
	"fmt"
	"math"

	"github.com/born-ml/sprout/internal/tensor"
)

// ReLU is a Rectified Linear Unit activation stage.
//
// Applies the element-wise function: f(x) = max(0, x)
//
// Forward memoizes the sign mask of its input; Backward multiplies the
// incoming gradient by that mask, so gradients flow only through the
// positions that were positive on the way forward.
//
// Example:
//
//	relu := nn.NewReLU()
//	output := relu.Forward(input) // All negative values become 0
type ReLU struct {
	mask  []float64 // 1 where the last input was > 0
	shape tensor.Shape
}

// NewReLU creates a new ReLU activation stage.
func NewReLU() *ReLU {
	return &ReLU{}
}

// Forward applies ReLU activation: f(x) = max(0, x).
func (r *ReLU) Forward(input *tensor.Dense) *tensor.Dense {
	in := input.Data()
	out := tensor.Zeros(input.Shape().Clone())
	r.mask = make([]float64, len(in))
	r.shape = input.Shape().Clone()

	outData := out.Data()
	for i, v := range in {
		if v > 0 {
			outData[i] = v
			r.mask[i] = 1
		}
	}
	return out
}

// Backward gates the output gradient by the memoized sign mask.
func (r *ReLU) Backward(grad *tensor.Dense) *tensor.Dense {
	if r.mask == nil {
		panic("relu: backward called before forward")
	}
	if !grad.Shape().Equal(r.shape) {
		panic(fmt.Sprintf("relu: gradient shape %v does not match input shape %v", grad.Shape(), r.shape))
	}

	out := tensor.Zeros(r.shape.Clone())
	outData := out.Data()
	for i, g := range grad.Data() {
		outData[i] = g * r.mask[i]
	}
	return out
}

// Parameters returns an empty slice (ReLU has no trainable parameters).
func (r *ReLU) Parameters() []*Parameter {
	return nil
}

// LogSoftmax is a row-wise log-softmax stage.
//
// For each row x it computes y = x - max(x) - log(sum(exp(x - max(x)))).
// Subtracting the row maximum keeps exp from overflowing, so rows like
// [1000, 1000, 1000] stay finite.
//
// Forward memoizes the output; Backward uses softmax(x) = exp(y):
//
//	dL/dx = g - softmax(x) * rowsum(g)
type LogSoftmax struct {
	output *tensor.Dense // memoized log-probabilities
}

// NewLogSoftmax creates a new LogSoftmax stage.
func NewLogSoftmax() *LogSoftmax {
	return &LogSoftmax{}
}

// Forward computes row-wise log-softmax over a [batch, classes] tensor.
func (s *LogSoftmax) Forward(input *tensor.Dense) *tensor.Dense {
	if len(input.Shape()) != 2 {
		panic(fmt.Sprintf("logsoftmax: expected 2D input [batch, classes], got shape %v", input.Shape()))
	}

	rows, cols := input.Rows(), input.Cols()
	out := tensor.Zeros(tensor.Shape{rows, cols})
	in, outData := input.Data(), out.Data()

	for i := 0; i < rows; i++ {
		row := in[i*cols : (i+1)*cols]

		maxVal := row[0]
		for _, v := range row[1:] {
			if v > maxVal {
				maxVal = v
			}
		}

		var sumExp float64
		for _, v := range row {
			sumExp += math.Exp(v - maxVal)
		}
		logSumExp := math.Log(sumExp)

		outRow := outData[i*cols : (i+1)*cols]
		for j, v := range row {
			outRow[j] = v - maxVal - logSumExp
		}
	}

	s.output = out
	return out
}

// Backward computes g - softmax(x) * rowsum(g) from the memoized
// log-probabilities.
func (s *LogSoftmax) Backward(grad *tensor.Dense) *tensor.Dense {
	if s.output == nil {
		panic("logsoftmax: backward called before forward")
	}
	if !grad.Shape().Equal(s.output.Shape()) {
		panic(fmt.Sprintf("logsoftmax: gradient shape %v does not match output shape %v", grad.Shape(), s.output.Shape()))
	}

	rows, cols := s.output.Rows(), s.output.Cols()
	out := tensor.Zeros(tensor.Shape{rows, cols})
	g, y, outData := grad.Data(), s.output.Data(), out.Data()

	for i := 0; i < rows; i++ {
		gRow := g[i*cols : (i+1)*cols]
		yRow := y[i*cols : (i+1)*cols]
		outRow := outData[i*cols : (i+1)*cols]

		var gradSum float64
		for _, v := range gRow {
			gradSum += v
		}
		for j := range outRow {
			outRow[j] = gRow[j] - math.Exp(yRow[j])*gradSum
		}
	}
	return out
}

// Parameters returns an empty slice (LogSoftmax has no trainable parameters).
func (s *LogSoftmax) Parameters() []*Parameter {
	return nil
}
