// Copyright 2025 Sprout ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train provides the training loop, run configuration and
// throughput accounting for classifier training.
//
// # Overview
//
// This package contains:
//   - Trainer: the canonical step, epoch and multi-epoch run loops
//   - Config: YAML run configuration with CLI overrides
//   - Meter: rolling throughput and loss statistics
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/sprout/dataset"
//	    "github.com/born-ml/sprout/nn"
//	    "github.com/born-ml/sprout/optim"
//	    "github.com/born-ml/sprout/train"
//	)
//
//	func main() {
//	    net := nn.NewNetwork(
//	        nn.NewLinear(784, 128, rng),
//	        nn.NewReLU(),
//	        nn.NewLinear(128, 10, rng),
//	        nn.NewLogSoftmax(),
//	    )
//
//	    trainer := &train.Trainer{
//	        Net:  net,
//	        Loss: nn.NewNLLLoss(),
//	        Opt:  optim.NewSGD(net.Parameters(), optim.SGDConfig{LR: 0.01}),
//	    }
//
//	    loader := dataset.NewLoader(data, cfg.BatchSize, true, cfg.Seed)
//	    history, err := trainer.Run(ctx, loader, cfg.Epochs)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # The Training Step
//
// Every optimization step follows the same order:
//
//	opt.ZeroGrad()
//	scores := net.Forward(batch.Input)
//	loss := criterion.Forward(scores, batch.Labels)
//	net.Backward(criterion.Backward())
//	opt.Step()
//
// Trainer.Step runs exactly this sequence for one batch. Epoch and Run
// build on it, accumulating loss and accuracy and emitting progress
// lines through the configured log function.
//
// # Configuration
//
// Config is loaded from YAML and then layered with command-line
// overrides, where only non-zero override fields win:
//
//	cfg, err := train.LoadConfig("run.yaml")
//	cfg.ApplyOverrides(train.Overrides{Epochs: *epochs, LR: *lr})
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package train
