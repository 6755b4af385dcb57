package main

import "testing"

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := parseConfig([]string{"--img", "cat.jpg"})
	if err != nil {
		t.Fatalf("parseConfig failed: %v", err)
	}
	if cfg.URL != "localhost:8001" {
		t.Errorf("default url = %q, want localhost:8001", cfg.URL)
	}
	if cfg.BatchSize != 1 {
		t.Errorf("default batch_size = %d, want 1", cfg.BatchSize)
	}
	if cfg.NIter != -1 {
		t.Errorf("default n_iter = %d, want -1", cfg.NIter)
	}
	if cfg.ModelName != "dali_backend" {
		t.Errorf("default model_name = %q, want dali_backend", cfg.ModelName)
	}
	if cfg.InputName != "INPUT" || cfg.OutputName != "OUTPUT" {
		t.Errorf("default tensor names = %q/%q, want INPUT/OUTPUT", cfg.InputName, cfg.OutputName)
	}
	if cfg.Verbose || cfg.Preprocess || cfg.Statistics {
		t.Errorf("boolean flags should default to false, got %+v", cfg)
	}
	if cfg.ImagePath() != "cat.jpg" {
		t.Errorf("ImagePath() = %q, want cat.jpg", cfg.ImagePath())
	}
}

func TestParseConfigShortFlags(t *testing.T) {
	cfg, err := parseConfig([]string{
		"-v",
		"-u", "example.org:8001",
		"-m", "inception",
		"-i", "DATA",
		"-o", "PROB",
		"--batch_size", "8",
		"--n_iter", "32",
		"--preprocess",
		"--statistics",
		"--img_dir", "images",
	})
	if err != nil {
		t.Fatalf("parseConfig failed: %v", err)
	}
	if !cfg.Verbose || !cfg.Preprocess || !cfg.Statistics {
		t.Errorf("boolean flags not set: %+v", cfg)
	}
	if cfg.URL != "example.org:8001" || cfg.ModelName != "inception" {
		t.Errorf("unexpected url/model: %q/%q", cfg.URL, cfg.ModelName)
	}
	if cfg.InputName != "DATA" || cfg.OutputName != "PROB" {
		t.Errorf("unexpected tensor names: %q/%q", cfg.InputName, cfg.OutputName)
	}
	if cfg.BatchSize != 8 || cfg.NIter != 32 {
		t.Errorf("unexpected batch_size/n_iter: %d/%d", cfg.BatchSize, cfg.NIter)
	}
	if cfg.ImagePath() != "images" {
		t.Errorf("ImagePath() = %q, want images", cfg.ImagePath())
	}
}

func TestParseConfigMutuallyExclusiveSources(t *testing.T) {
	if _, err := parseConfig([]string{"--img", "a.jpg", "--img_dir", "images"}); err == nil {
		t.Fatal("expected an error when both --img and --img_dir are given")
	}
}

func TestParseConfigRequiresSource(t *testing.T) {
	if _, err := parseConfig(nil); err == nil {
		t.Fatal("expected an error when neither --img nor --img_dir is given")
	}
}

func TestParseConfigRejectsBadBatchSize(t *testing.T) {
	if _, err := parseConfig([]string{"--img", "a.jpg", "--batch_size", "0"}); err == nil {
		t.Fatal("expected an error for batch_size 0")
	}
}

func TestParseConfigRejectsUnknownFlag(t *testing.T) {
	if _, err := parseConfig([]string{"--img", "a.jpg", "--bogus"}); err == nil {
		t.Fatal("expected an error for an unknown flag")
	}
}
