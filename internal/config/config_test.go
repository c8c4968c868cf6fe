package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultModel != "openai/gpt-4o-mini" {
		t.Errorf("default_model = %q", cfg.DefaultModel)
	}
	if cfg.BaseURL != "https://openrouter.ai/api/v1" {
		t.Errorf("base_url = %q", cfg.BaseURL)
	}
	if !cfg.OracleEnabled {
		t.Error("oracle_enabled default should be true")
	}
	if cfg.HTTPTimeoutSec != 60 {
		t.Errorf("http_timeout_sec = %d, want 60", cfg.HTTPTimeoutSec)
	}
	if cfg.MaxTokens != 500 {
		t.Errorf("max_tokens = %d, want 500", cfg.MaxTokens)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	in := &Global{
		APIKey:         "sk-test",
		DefaultModel:   "anthropic/claude-3-haiku",
		BaseURL:        "http://localhost:9999/v1",
		OracleEnabled:  true,
		Temperature:    0.3,
		MaxTokens:      800,
		HTTPTimeoutSec: 15,
	}
	if err := Save(in, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.APIKey != in.APIKey {
		t.Errorf("api_key = %q, want %q", out.APIKey, in.APIKey)
	}
	if out.DefaultModel != in.DefaultModel {
		t.Errorf("default_model = %q, want %q", out.DefaultModel, in.DefaultModel)
	}
	if out.HTTPTimeoutSec != 15 {
		t.Errorf("http_timeout_sec = %d, want 15", out.HTTPTimeoutSec)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := Save(&Global{DefaultModel: "file-model"}, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	t.Setenv("TABLECHAT_DEFAULT_MODEL", "env-model")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultModel != "env-model" {
		t.Errorf("default_model = %q, want env-model", cfg.DefaultModel)
	}
	_ = os.Unsetenv("TABLECHAT_DEFAULT_MODEL")
}
