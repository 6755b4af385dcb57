package main

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Config holds the resolved command-line options. It is built once by
// parseConfig and never mutated afterwards.
type Config struct {
	Verbose    bool
	URL        string
	BatchSize  int
	NIter      int
	ModelName  string
	InputName  string
	OutputName string
	Preprocess bool
	Statistics bool
	Image      string
	ImageDir   string
}

func parseConfig(args []string) (Config, error) {
	var cfg Config

	fs := pflag.NewFlagSet("dali-grpc-client", pflag.ContinueOnError)
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable verbose output")
	fs.StringVarP(&cfg.URL, "url", "u", "localhost:8001", "Inference server URL")
	fs.IntVar(&cfg.BatchSize, "batch_size", 1, "Batch size")
	fs.IntVar(&cfg.NIter, "n_iter", -1,
		"Number of iterations, with batch_size size. Negative means a single pass over all images")
	fs.StringVarP(&cfg.ModelName, "model_name", "m", "dali_backend", "Model name")
	fs.StringVarP(&cfg.InputName, "input_name", "i", "INPUT", "Input name")
	fs.StringVarP(&cfg.OutputName, "output_name", "o", "OUTPUT", "Output name")
	fs.BoolVar(&cfg.Preprocess, "preprocess", false,
		"Perform the preprocessing on the client. Remember to target the proper model when this option is turned on")
	fs.BoolVar(&cfg.Statistics, "statistics", false, "Print server statistics after inferring")
	fs.StringVar(&cfg.Image, "img", "", "Path to a single image to infer")
	fs.StringVar(&cfg.ImageDir, "img_dir", "",
		"Directory with images that will be broken down into batches and inferred. The directory must contain images only")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.Image != "" && cfg.ImageDir != "" {
		return Config{}, fmt.Errorf("--img and --img_dir are mutually exclusive")
	}
	if cfg.Image == "" && cfg.ImageDir == "" {
		return Config{}, fmt.Errorf("one of --img or --img_dir is required")
	}
	if cfg.BatchSize < 1 {
		return Config{}, fmt.Errorf("--batch_size must be at least 1, got %d", cfg.BatchSize)
	}
	return cfg, nil
}

// ImagePath returns whichever image source was configured.
func (c Config) ImagePath() string {
	if c.ImageDir != "" {
		return c.ImageDir
	}
	return c.Image
}
