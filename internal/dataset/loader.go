package dataset

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/sprout/internal/tensor"
)

// Batch is one mini-batch of training data.
type Batch struct {
	Input  *tensor.Dense // [batch_size, num_features]
	Labels []int         // [batch_size]
}

// Size returns the number of samples in the batch.
func (b Batch) Size() int {
	return len(b.Labels)
}

// Loader iterates a Dataset in mini-batches.
//
// With shuffling enabled, every Reset reshuffles the sample order using
// a seeded source, so runs are reproducible end to end. The final batch
// of an epoch may be smaller than the configured batch size.
//
// Example:
//
//	loader := dataset.NewLoader(data, 64, true, 42)
//	for epoch := 0; epoch < epochs; epoch++ {
//	    loader.Reset()
//	    for batch, ok := loader.Next(); ok; batch, ok = loader.Next() {
//	        trainStep(batch)
//	    }
//	}
type Loader struct {
	data      Dataset
	batchSize int
	shuffle   bool
	rng       *rand.Rand
	indices   []int
	cursor    int
}

// NewLoader creates a Loader over the dataset.
//
// If shuffle is true the sample order is reshuffled on every Reset,
// drawing from a source seeded with seed. Panics if batchSize is not
// positive.
func NewLoader(data Dataset, batchSize int, shuffle bool, seed int64) *Loader {
	if batchSize <= 0 {
		panic(fmt.Sprintf("dataset: invalid batch size %d", batchSize))
	}

	indices := make([]int, data.Len())
	for i := range indices {
		indices[i] = i
	}

	l := &Loader{
		data:      data,
		batchSize: batchSize,
		shuffle:   shuffle,
		rng:       tensor.NewRNG(seed),
		indices:   indices,
	}
	l.Reset()
	return l
}

// Batches returns the number of batches per epoch, counting a trailing
// partial batch.
func (l *Loader) Batches() int {
	return (l.data.Len() + l.batchSize - 1) / l.batchSize
}

// Reset rewinds the loader to the start of an epoch, reshuffling the
// sample order when shuffling is enabled.
func (l *Loader) Reset() {
	if l.shuffle {
		// Fisher-Yates via the seeded source.
		l.rng.Shuffle(len(l.indices), func(i, j int) {
			l.indices[i], l.indices[j] = l.indices[j], l.indices[i]
		})
	}
	l.cursor = 0
}

// Next returns the next mini-batch. The second return value is false
// once the epoch is exhausted.
func (l *Loader) Next() (Batch, bool) {
	if l.cursor >= len(l.indices) {
		return Batch{}, false
	}

	end := l.cursor + l.batchSize
	if end > len(l.indices) {
		end = len(l.indices)
	}
	size := end - l.cursor

	first, _ := l.data.Sample(l.indices[l.cursor])
	width := len(first)

	input := tensor.Zeros(tensor.Shape{size, width})
	labels := make([]int, size)
	buf := input.Data()

	for row, idx := range l.indices[l.cursor:end] {
		features, label := l.data.Sample(idx)
		copy(buf[row*width:(row+1)*width], features)
		labels[row] = label
	}

	l.cursor = end
	return Batch{Input: input, Labels: labels}, true
}
