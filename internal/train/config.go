package train

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config captures the runtime knobs for a training run.
type Config struct {
	Epochs    int     `yaml:"epochs"`
	BatchSize int     `yaml:"batch_size"`
	LR        float64 `yaml:"lr"`
	Momentum  float64 `yaml:"momentum"`
	Seed      int64   `yaml:"seed"`
	LogEvery  int     `yaml:"log_every"`

	// Paths to MNIST IDX files. When empty, callers fall back to a
	// synthetic dataset.
	Images string `yaml:"images"`
	Labels string `yaml:"labels"`

	// ValidationSplit is the fraction of samples held out for
	// evaluation.
	ValidationSplit float64 `yaml:"validation_split"`
}

// Overrides captures CLI supplied values. Zero values leave the
// corresponding Config field untouched.
type Overrides struct {
	Epochs    int
	BatchSize int
	LR        float64
	Momentum  float64
	Seed      int64
	LogEvery  int
	Images    string
	Labels    string
}

// DefaultConfig returns the configuration used when no config file or
// flags are given.
func DefaultConfig() Config {
	return Config{
		Epochs:          10,
		BatchSize:       32,
		LR:              0.01,
		Momentum:        0,
		Seed:            42,
		LogEvery:        0,
		ValidationSplit: 0.2,
	}
}

// LoadConfig reads a Config from a YAML file. Missing keys keep their
// defaults; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Epochs > 0 {
		c.Epochs = o.Epochs
	}
	if o.BatchSize > 0 {
		c.BatchSize = o.BatchSize
	}
	if o.LR > 0 {
		c.LR = o.LR
	}
	if o.Momentum > 0 {
		c.Momentum = o.Momentum
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.LogEvery > 0 {
		c.LogEvery = o.LogEvery
	}
	if o.Images != "" {
		c.Images = o.Images
	}
	if o.Labels != "" {
		c.Labels = o.Labels
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c.Epochs <= 0 {
		return fmt.Errorf("epochs must be > 0 (got %d)", c.Epochs)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be > 0 (got %d)", c.BatchSize)
	}
	if c.LR <= 0 {
		return fmt.Errorf("lr must be > 0 (got %g)", c.LR)
	}
	if c.Momentum < 0 || c.Momentum >= 1 {
		return fmt.Errorf("momentum must be in [0, 1) (got %g)", c.Momentum)
	}
	if c.LogEvery < 0 {
		return fmt.Errorf("log_every must be >= 0 (got %d)", c.LogEvery)
	}
	if c.ValidationSplit < 0 || c.ValidationSplit >= 1 {
		return fmt.Errorf("validation_split must be in [0, 1) (got %g)", c.ValidationSplit)
	}
	if (c.Images == "") != (c.Labels == "") {
		return fmt.Errorf("images and labels must be set together")
	}
	return nil
}
