package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// MatMul computes a @ b for shapes (m, k) x (k, n) -> (m, n).
func MatMul(a, b *Dense) *Dense {
	if a.Cols() != b.Rows() {
		panic(fmt.Sprintf("tensor: matmul shape mismatch %v x %v", a.shape, b.shape))
	}
	var out mat.Dense
	out.Mul(a.Matrix(), b.Matrix())
	return fromMatrix(&out)
}

// MatMulT computes a @ b^T for shapes (m, k) x (n, k) -> (m, n).
func MatMulT(a, b *Dense) *Dense {
	if a.Cols() != b.Cols() {
		panic(fmt.Sprintf("tensor: matmul shape mismatch %v x %v^T", a.shape, b.shape))
	}
	var out mat.Dense
	out.Mul(a.Matrix(), b.Matrix().T())
	return fromMatrix(&out)
}

// TMatMul computes a^T @ b for shapes (k, m) x (k, n) -> (m, n).
func TMatMul(a, b *Dense) *Dense {
	if a.Rows() != b.Rows() {
		panic(fmt.Sprintf("tensor: matmul shape mismatch %v^T x %v", a.shape, b.shape))
	}
	var out mat.Dense
	out.Mul(a.Matrix().T(), b.Matrix())
	return fromMatrix(&out)
}

// AddRow adds the rank-1 vector v to every row of the rank-2 tensor in
// place and returns the receiver.
func (t *Dense) AddRow(v *Dense) *Dense {
	if len(v.shape) != 1 || v.shape[0] != t.Cols() {
		panic(fmt.Sprintf("tensor: cannot broadcast %v across rows of %v", v.shape, t.shape))
	}
	cols := t.Cols()
	for i := 0; i < t.Rows(); i++ {
		row := t.data[i*cols : (i+1)*cols]
		for j := range row {
			row[j] += v.data[j]
		}
	}
	return t
}

// ColSums returns the rank-1 vector of column sums of a rank-2 tensor.
func ColSums(t *Dense) *Dense {
	cols := t.Cols()
	out := Zeros(Shape{cols})
	for i := 0; i < t.Rows(); i++ {
		row := t.data[i*cols : (i+1)*cols]
		for j := range row {
			out.data[j] += row[j]
		}
	}
	return out
}
