package tensor

import (
	"math"
	"math/rand"
)

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape) *Dense {
	return New(shape, make([]float64, shape.NumElements()))
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape) *Dense {
	return Full(shape, 1)
}

// Full creates a tensor filled with a specific value.
func Full(shape Shape, value float64) *Dense {
	t := Zeros(shape)
	for i := range t.data {
		t.data[i] = value
	}
	return t
}

// FromRows creates a rank-2 tensor from row slices. All rows must have
// the same length. The data is copied.
func FromRows(rows [][]float64) *Dense {
	if len(rows) == 0 {
		panic("tensor: FromRows needs at least one row")
	}
	cols := len(rows[0])
	t := Zeros(Shape{len(rows), cols})
	for i, row := range rows {
		if len(row) != cols {
			panic("tensor: FromRows rows have unequal lengths")
		}
		copy(t.data[i*cols:(i+1)*cols], row)
	}
	return t
}

// NewRNG returns a seeded random source for deterministic runs.
func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed)) //nolint:gosec // G404: ML uses math/rand intentionally for reproducibility
}

// Randn creates a tensor with random values from a normal distribution
// (mean=0, std=1), using the Box-Muller transform.
func Randn(shape Shape, rng *rand.Rand) *Dense {
	t := Zeros(shape)
	for i := 0; i < len(t.data); i += 2 {
		u1 := rng.Float64()
		u2 := rng.Float64()
		z0 := math.Sqrt(-2.0*math.Log(u1)) * math.Cos(2.0*math.Pi*u2)
		z1 := math.Sqrt(-2.0*math.Log(u1)) * math.Sin(2.0*math.Pi*u2)
		t.data[i] = z0
		if i+1 < len(t.data) {
			t.data[i+1] = z1
		}
	}
	return t
}

// Uniform creates a tensor with random values uniformly distributed in
// [lo, hi).
func Uniform(shape Shape, lo, hi float64, rng *rand.Rand) *Dense {
	t := Zeros(shape)
	for i := range t.data {
		t.data[i] = lo + rng.Float64()*(hi-lo)
	}
	return t
}
