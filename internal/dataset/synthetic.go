package dataset

import (
	"fmt"

	"github.com/born-ml/sprout/internal/tensor"
)

// Synthetic generates a deterministic classification dataset of
// Gaussian blobs, one blob per class.
//
// Each class gets a random center drawn from N(0, 2²); samples scatter
// around their center with noise drawn from N(0, 0.5²). Labels are
// assigned round-robin so the classes stay balanced. The same seed
// always produces the same dataset.
//
// The blobs are linearly separable enough for a small classifier to
// make quick progress, which makes the dataset a fast stand-in for
// real data in examples and end-to-end tests.
func Synthetic(n, features, classes int, seed int64) *InMemory {
	if n <= 0 || features <= 0 || classes <= 0 {
		panic(fmt.Sprintf("dataset: invalid synthetic dimensions n=%d, features=%d, classes=%d", n, features, classes))
	}

	rng := tensor.NewRNG(seed)

	centers := make([][]float64, classes)
	for c := range centers {
		centers[c] = make([]float64, features)
		for j := range centers[c] {
			centers[c][j] = rng.NormFloat64() * 2.0
		}
	}

	samples := make([][]float64, n)
	labels := make([]int, n)
	for i := 0; i < n; i++ {
		label := i % classes
		labels[i] = label

		row := make([]float64, features)
		for j := range row {
			row[j] = centers[label][j] + rng.NormFloat64()*0.5
		}
		samples[i] = row
	}

	data, err := NewInMemory(samples, labels)
	if err != nil {
		panic(err) // Dimensions validated above
	}
	return data
}
