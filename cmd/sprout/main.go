// Package main provides the Sprout ML command-line interface.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/born-ml/sprout/dataset"
	"github.com/born-ml/sprout/nn"
	"github.com/born-ml/sprout/optim"
	"github.com/born-ml/sprout/tensor"
	"github.com/born-ml/sprout/train"
)

const version = "v0.1.0-dev"

const (
	digitClasses     = 10
	prefetchDepth    = 2
	syntheticSamples = 2048
	syntheticPixels  = 784
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("Sprout ML %s\n", version)
	case "train":
		if err := runTrain(os.Args[2:]); err != nil {
			log.Fatal(err)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("Sprout ML - Digit Classifier Training in Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  train      Train a classifier on MNIST or synthetic data")
	fmt.Println("  version    Show version")
}

func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	epochs := fs.Int("epochs", 0, "Number of training epochs")
	batchSize := fs.Int("batch", 0, "Batch size")
	lr := fs.Float64("lr", 0, "Learning rate")
	momentum := fs.Float64("momentum", 0, "SGD momentum")
	seed := fs.Int64("seed", 0, "PRNG seed")
	logEvery := fs.Int("log-every", 0, "Log every N batches within an epoch")
	images := fs.String("images", "", "Path to an IDX image file")
	labels := fs.String("labels", "", "Path to an IDX label file")
	csvPath := fs.String("csv", "", "Path to an MNIST CSV file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := train.DefaultConfig()
	if *cfgPath != "" {
		var err error
		cfg, err = train.LoadConfig(*cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}
	cfg.ApplyOverrides(train.Overrides{
		Epochs:    *epochs,
		BatchSize: *batchSize,
		LR:        *lr,
		Momentum:  *momentum,
		Seed:      *seed,
		LogEvery:  *logEvery,
		Images:    *images,
		Labels:    *labels,
	})
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	data, name, err := loadData(cfg, *csvPath)
	if err != nil {
		return err
	}
	trainSet, valSet := data.Split(cfg.ValidationSplit)
	log.Printf("dataset=%s samples=%d train=%d val=%d features=%d",
		name, data.Len(), trainSet.Len(), valSet.Len(), data.NumFeatures())

	rng := tensor.NewRNG(cfg.Seed)
	net := nn.NewNetwork(
		nn.NewLinear(trainSet.NumFeatures(), 128, rng),
		nn.NewReLU(),
		nn.NewLinear(128, 64, rng),
		nn.NewReLU(),
		nn.NewLinear(64, digitClasses, rng),
		nn.NewLogSoftmax(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loader := dataset.NewLoader(trainSet, cfg.BatchSize, true, cfg.Seed)
	source := dataset.NewPrefetcher(ctx, loader, prefetchDepth)
	defer source.Stop()

	trainer := &train.Trainer{
		Net:      net,
		Loss:     nn.NewNLLLoss(),
		Opt:      optim.NewSGD(net.Parameters(), optim.SGDConfig{LR: cfg.LR, Momentum: cfg.Momentum}),
		LogEvery: cfg.LogEvery,
	}

	history, err := trainer.Run(ctx, source, cfg.Epochs)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if err != nil {
		log.Printf("interrupted after %d completed epochs", len(history))
	}

	if valSet.Len() > 0 {
		valLoader := dataset.NewLoader(valSet, cfg.BatchSize, false, 0)
		loss, acc := trainer.Evaluate(valLoader)
		log.Printf("validation loss=%.4f acc=%.2f%%", loss, acc*100)
	}
	return nil
}

// loadData picks the training data from the CSV flag, the IDX config
// fields, or a synthetic fallback, and returns it with a short name
// for logging.
func loadData(cfg train.Config, csvPath string) (*dataset.InMemory, string, error) {
	switch {
	case csvPath != "" && cfg.Images != "":
		return nil, "", errors.New("use either -csv or -images/-labels, not both")
	case csvPath != "":
		data, err := dataset.LoadMNISTCSV(csvPath, 0)
		if err != nil {
			return nil, "", fmt.Errorf("load csv: %w", err)
		}
		return data, "csv", nil
	case cfg.Images != "":
		data, err := dataset.LoadIDX(cfg.Images, cfg.Labels, 0)
		if err != nil {
			return nil, "", fmt.Errorf("load idx: %w", err)
		}
		return data, "idx", nil
	default:
		log.Printf("no dataset given, generating synthetic data (use -images/-labels or -csv for MNIST)")
		return dataset.Synthetic(syntheticSamples, syntheticPixels, digitClasses, cfg.Seed), "synthetic", nil
	}
}
