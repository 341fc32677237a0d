package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Dense is a tensor of float64 values stored flat in row-major order.
// Rank 1 and rank 2 cover everything a feed-forward pipeline needs:
// activations and weights are matrices, biases are vectors.
//
// Each Dense owns an optional gradient accumulator of the same shape.
// The accumulator is allocated lazily on the first AccumulateGrad call
// and then sums every subsequent contribution until ZeroGrad resets it.
type Dense struct {
	shape Shape
	data  []float64
	grad  *Dense
}

// New creates a tensor wrapping the given data slice. The slice is used
// directly, not copied.
func New(shape Shape, data []float64) *Dense {
	if shape.NumElements() != len(data) {
		panic(fmt.Sprintf("tensor: shape %v requires %d elements, got %d", shape, shape.NumElements(), len(data)))
	}
	if err := shape.Validate(); err != nil {
		panic(fmt.Sprintf("tensor: %v", err))
	}
	return &Dense{shape: shape, data: data}
}

// Shape returns the tensor's shape.
func (t *Dense) Shape() Shape {
	return t.shape
}

// NumElements returns the total number of elements.
func (t *Dense) NumElements() int {
	return len(t.data)
}

// Data returns the underlying buffer, not a copy. Mutations are visible
// to every view of the tensor.
func (t *Dense) Data() []float64 {
	return t.data
}

// Rows returns the first dimension of a rank-2 tensor.
func (t *Dense) Rows() int {
	if len(t.shape) != 2 {
		panic(fmt.Sprintf("tensor: Rows on rank-%d tensor %v", len(t.shape), t.shape))
	}
	return t.shape[0]
}

// Cols returns the second dimension of a rank-2 tensor.
func (t *Dense) Cols() int {
	if len(t.shape) != 2 {
		panic(fmt.Sprintf("tensor: Cols on rank-%d tensor %v", len(t.shape), t.shape))
	}
	return t.shape[1]
}

// At returns the element at row i, column j of a rank-2 tensor.
func (t *Dense) At(i, j int) float64 {
	return t.data[i*t.Cols()+j]
}

// Set writes the element at row i, column j of a rank-2 tensor.
func (t *Dense) Set(i, j int, v float64) {
	t.data[i*t.Cols()+j] = v
}

// Clone returns a deep copy of the tensor values. The gradient
// accumulator is not cloned.
func (t *Dense) Clone() *Dense {
	data := make([]float64, len(t.data))
	copy(data, t.data)
	return &Dense{shape: t.shape.Clone(), data: data}
}

// Matrix returns a gonum view sharing the tensor's buffer. Valid for
// rank-2 tensors only.
func (t *Dense) Matrix() *mat.Dense {
	return mat.NewDense(t.Rows(), t.Cols(), t.data)
}

// fromMatrix wraps a freshly computed gonum matrix. A fresh mat.Dense
// has stride == cols, so its raw buffer is already flat row-major.
func fromMatrix(m *mat.Dense) *Dense {
	raw := m.RawMatrix()
	if raw.Stride == raw.Cols {
		return &Dense{shape: Shape{raw.Rows, raw.Cols}, data: raw.Data}
	}
	out := Zeros(Shape{raw.Rows, raw.Cols})
	for i := 0; i < raw.Rows; i++ {
		copy(out.data[i*raw.Cols:(i+1)*raw.Cols], raw.Data[i*raw.Stride:i*raw.Stride+raw.Cols])
	}
	return out
}

// AccumulateGrad adds g into the gradient accumulator, allocating a
// zero accumulator of the value's shape on first use. Successive calls
// sum, so gradients from multiple backward passes accumulate until
// ZeroGrad is called.
func (t *Dense) AccumulateGrad(g *Dense) {
	if !t.shape.Equal(g.shape) {
		panic(fmt.Sprintf("tensor: gradient shape %v does not match value shape %v", g.shape, t.shape))
	}
	if t.grad == nil {
		t.grad = Zeros(t.shape.Clone())
	}
	floats.Add(t.grad.data, g.data)
}

// Grad returns the gradient accumulator, or nil if no gradient has been
// accumulated since construction.
func (t *Dense) Grad() *Dense {
	return t.grad
}

// ZeroGrad resets the gradient accumulator to zero in place. The buffer
// is kept for reuse; a tensor whose gradient was never accumulated is
// left untouched. Calling ZeroGrad repeatedly is a no-op after the
// first call.
func (t *Dense) ZeroGrad() {
	if t.grad == nil {
		return
	}
	for i := range t.grad.data {
		t.grad.data[i] = 0
	}
}
