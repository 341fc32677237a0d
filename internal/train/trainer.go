// Package train runs the training loop: it wires a network, a loss
// criterion, and an optimizer together and drives them over mini-batches
// from a BatchSource.
//
// Each optimization step performs the canonical sequence:
//
//	opt.ZeroGrad()
//	output := net.Forward(batch.Input)
//	loss := criterion.Forward(output, batch.Labels)
//	net.Backward(criterion.Backward())
//	opt.Step()
package train

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/born-ml/sprout/internal/dataset"
	"github.com/born-ml/sprout/internal/nn"
	"github.com/born-ml/sprout/internal/optim"
	"github.com/born-ml/sprout/internal/tensor"
)

// BatchSource yields mini-batches, one pass at a time. Both
// dataset.Loader and dataset.Prefetcher satisfy it.
type BatchSource interface {
	// Reset starts a fresh pass over the data.
	Reset()

	// Next returns the next batch; ok is false once the pass is
	// exhausted.
	Next() (dataset.Batch, bool)

	// Batches returns the number of batches per pass.
	Batches() int
}

// Criterion is the loss stage closing a training pipeline. Both
// nn.NLLLoss and nn.CrossEntropyLoss satisfy it.
type Criterion interface {
	// Forward computes the mean loss for a batch of scores.
	Forward(scores *tensor.Dense, labels []int) float64

	// Backward returns the gradient of the loss with respect to the
	// scores passed to the latest Forward.
	Backward() *tensor.Dense
}

// Trainer drives a classification pipeline over training data.
//
// Example:
//
//	trainer := &train.Trainer{Net: net, Loss: nn.NewNLLLoss(), Opt: sgd}
//	history, err := trainer.Run(ctx, loader, 10)
type Trainer struct {
	Net  *nn.Network
	Loss Criterion
	Opt  optim.Optimizer

	// Logf receives progress lines. Defaults to log.Printf.
	Logf func(format string, args ...any)

	// LogEvery emits a mid-epoch throughput line every n batches.
	// Zero logs only per-epoch summaries.
	LogEvery int
}

// EpochStats summarizes one pass over the training data.
type EpochStats struct {
	Epoch    int
	MeanLoss float64 // mean of per-batch losses
	Accuracy float64 // fraction of correctly classified samples
	Batches  int
	Samples  int
	Duration time.Duration
}

func (t *Trainer) logf(format string, args ...any) {
	if t.Logf != nil {
		t.Logf(format, args...)
		return
	}
	log.Printf(format, args...)
}

// Step runs one optimization step on a single batch and returns the
// batch loss together with the network output for the batch.
func (t *Trainer) Step(batch dataset.Batch) (float64, *tensor.Dense) {
	t.Opt.ZeroGrad()
	output := t.Net.Forward(batch.Input)
	loss := t.Loss.Forward(output, batch.Labels)
	t.Net.Backward(t.Loss.Backward())
	t.Opt.Step()
	return loss, output
}

// Epoch runs one full pass over source and returns its stats.
func (t *Trainer) Epoch(epoch int, source BatchSource) EpochStats {
	start := time.Now()
	source.Reset()

	var meter Meter
	var totalLoss float64
	var correct, samples, batches int

	batchStart := time.Now()
	for batch, ok := source.Next(); ok; batch, ok = source.Next() {
		dataTime := time.Since(batchStart)

		computeStart := time.Now()
		loss, output := t.Step(batch)
		computeTime := time.Since(computeStart)

		totalLoss += loss
		correct += nn.CountCorrect(output, batch.Labels)
		samples += batch.Size()
		batches++

		meter.Record(batch.Size(), dataTime, computeTime, loss)
		if t.LogEvery > 0 && batches%t.LogEvery == 0 {
			snap := meter.Snapshot()
			t.logf("epoch=%d batch=%d/%d loss=%.4f samples_per_sec=%.1f data_ms=%.2f compute_ms=%.2f",
				epoch, batches, source.Batches(), snap.MeanLoss, snap.SamplesPerSec, snap.AvgDataMS, snap.AvgComputeMS)
		}
		batchStart = time.Now()
	}

	stats := EpochStats{
		Epoch:    epoch,
		Batches:  batches,
		Samples:  samples,
		Duration: time.Since(start),
	}
	if batches > 0 {
		stats.MeanLoss = totalLoss / float64(batches)
	}
	if samples > 0 {
		stats.Accuracy = float64(correct) / float64(samples)
	}
	return stats
}

// Run trains for the given number of epochs, logging one summary line
// per epoch. It stops early when ctx is canceled and returns the stats
// of the epochs that completed.
func (t *Trainer) Run(ctx context.Context, source BatchSource, epochs int) ([]EpochStats, error) {
	if epochs <= 0 {
		return nil, fmt.Errorf("train: epochs must be > 0 (got %d)", epochs)
	}

	history := make([]EpochStats, 0, epochs)
	for epoch := 1; epoch <= epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return history, err
		}

		stats := t.Epoch(epoch, source)
		history = append(history, stats)
		t.logf("epoch=%d/%d loss=%.4f acc=%.2f%% batches=%d dur=%s",
			epoch, epochs, stats.MeanLoss, stats.Accuracy*100, stats.Batches,
			stats.Duration.Round(time.Millisecond))
	}
	return history, nil
}

// Evaluate runs a forward-only pass over source and returns the mean
// loss and accuracy. Parameters are not updated, though the pipeline's
// memoized activations are refreshed by the forward passes.
func (t *Trainer) Evaluate(source BatchSource) (meanLoss, accuracy float64) {
	source.Reset()

	var totalLoss float64
	var correct, samples, batches int

	for batch, ok := source.Next(); ok; batch, ok = source.Next() {
		output := t.Net.Forward(batch.Input)
		totalLoss += t.Loss.Forward(output, batch.Labels)
		correct += nn.CountCorrect(output, batch.Labels)
		samples += batch.Size()
		batches++
	}

	if batches > 0 {
		meanLoss = totalLoss / float64(batches)
	}
	if samples > 0 {
		accuracy = float64(correct) / float64(samples)
	}
	return meanLoss, accuracy
}
