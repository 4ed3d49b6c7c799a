package common

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()
	if cfg.OCR.TextThreshold != 50 {
		t.Errorf("OCR.TextThreshold = %d, want 50", cfg.OCR.TextThreshold)
	}
	if cfg.OCR.UpscaleFactor != 2.0 {
		t.Errorf("OCR.UpscaleFactor = %v, want 2.0", cfg.OCR.UpscaleFactor)
	}
	if cfg.OCR.Language != "por" {
		t.Errorf("OCR.Language = %q, want por", cfg.OCR.Language)
	}
	if cfg.Match.ScoreThreshold != 75 || cfg.Match.CandidateLimit != 5 {
		t.Errorf("Match defaults = %+v", cfg.Match)
	}
	if cfg.Match.UseFuzzy {
		t.Error("fuzzy matching must default to off")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SLIPSORT_OCR_THRESHOLD", "80")
	t.Setenv("SLIPSORT_FUZZY", "true")
	t.Setenv("SLIPSORT_OCR_LANG", "eng")

	cfg := LoadConfig()
	if cfg.OCR.TextThreshold != 80 {
		t.Errorf("OCR.TextThreshold = %d, want 80", cfg.OCR.TextThreshold)
	}
	if !cfg.Match.UseFuzzy {
		t.Error("SLIPSORT_FUZZY not applied")
	}
	if cfg.OCR.Language != "eng" {
		t.Errorf("OCR.Language = %q, want eng", cfg.OCR.Language)
	}
}

func TestLoadConfigIgnoresMalformedEnv(t *testing.T) {
	t.Setenv("SLIPSORT_OCR_THRESHOLD", "many")
	cfg := LoadConfig()
	if cfg.OCR.TextThreshold != 50 {
		t.Errorf("malformed env should keep default, got %d", cfg.OCR.TextThreshold)
	}
}

func TestLoadConfigFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "output:\n  root: /srv/payroll\nmatch:\n  use_fuzzy: true\n  score_threshold: 85\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFile(LoadConfig(), path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.Output.Root != "/srv/payroll" {
		t.Errorf("Output.Root = %q", cfg.Output.Root)
	}
	if !cfg.Match.UseFuzzy || cfg.Match.ScoreThreshold != 85 {
		t.Errorf("Match overlay = %+v", cfg.Match)
	}
	// untouched sections keep env defaults
	if cfg.OCR.Language != "por" {
		t.Errorf("OCR.Language = %q, want default por", cfg.OCR.Language)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults ok", mutate: func(c *Config) {}, wantErr: false},
		{name: "empty output root", mutate: func(c *Config) { c.Output.Root = "" }, wantErr: true},
		{name: "negative threshold", mutate: func(c *Config) { c.OCR.TextThreshold = -1 }, wantErr: true},
		{name: "score above 100", mutate: func(c *Config) { c.Match.ScoreThreshold = 101 }, wantErr: true},
		{name: "zero upscale", mutate: func(c *Config) { c.OCR.UpscaleFactor = 0 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := LoadConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
