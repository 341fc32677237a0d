// Copyright 2025 Sprout ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package train

import "github.com/born-ml/sprout/internal/train"

// Training loop

// Trainer wires a network, a loss criterion and an optimizer into the
// canonical training step.
type Trainer = train.Trainer

// EpochStats summarizes one completed training epoch.
type EpochStats = train.EpochStats

// BatchSource yields the mini-batches of one epoch.
//
// Both dataset.Loader and dataset.Prefetcher satisfy it.
type BatchSource = train.BatchSource

// Criterion scores network output against labels and produces the
// gradient that seeds the backward pass.
//
// Both nn.NLLLoss and nn.CrossEntropyLoss satisfy it.
type Criterion = train.Criterion

// Configuration

// Config holds the run parameters for a training job.
type Config = train.Config

// Overrides carries command-line values layered over a Config.
type Overrides = train.Overrides

// DefaultConfig returns the baseline configuration.
func DefaultConfig() Config {
	return train.DefaultConfig()
}

// LoadConfig reads a YAML configuration file over the defaults.
// Unknown keys are rejected.
//
// Example:
//
//	cfg, err := train.LoadConfig("run.yaml")
func LoadConfig(path string) (Config, error) {
	return train.LoadConfig(path)
}

// Statistics

// Meter accumulates per-batch timing and loss.
type Meter = train.Meter

// Snapshot is a point-in-time summary of a Meter.
type Snapshot = train.Snapshot
