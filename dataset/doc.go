// Copyright 2025 Sprout ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package dataset provides in-memory datasets and mini-batch loading
// for training.
//
// # Overview
//
// This package contains:
//   - Dataset interface and the InMemory implementation
//   - Loader: shuffled mini-batch iteration over a Dataset
//   - Prefetcher: background batch preparation over a Loader
//   - MNIST loaders for the IDX and CSV formats
//   - Synthetic: deterministic generated datasets for tests and demos
//
// # Basic Usage
//
//	import "github.com/born-ml/sprout/dataset"
//
//	func main() {
//	    data, err := dataset.LoadMNIST("./data", true, 0)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    trainSet, valSet := data.Split(0.2)
//
//	    loader := dataset.NewLoader(trainSet, 32, true, 42)
//	    for {
//	        batch, ok := loader.Next()
//	        if !ok {
//	            break
//	        }
//	        // batch.Input is a [batchSize, numFeatures] tensor,
//	        // batch.Labels the matching class indices.
//	    }
//	}
//
// # Batches
//
// A Loader walks the dataset once per epoch, yielding batches of the
// configured size with a smaller final batch when the dataset size is
// not a multiple. Reset rewinds the loader and reshuffles when
// shuffling is enabled, so every epoch sees a different order drawn
// from the same seed.
//
// # Prefetching
//
// A Prefetcher runs the loader in a background goroutine and keeps a
// bounded channel of ready batches, overlapping data preparation with
// the compute of the training step:
//
//	pf := dataset.NewPrefetcher(ctx, loader, 2)
//	defer pf.Stop()
//	for {
//	    batch, ok := pf.Next()
//	    if !ok {
//	        break
//	    }
//	}
package dataset
