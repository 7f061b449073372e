package configs

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "llm:\n  model: custom-model\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LLM.Model != "custom-model" {
		t.Fatalf("override lost: %q", cfg.LLM.Model)
	}
	if cfg.Chunking.Size != 1200 || cfg.Chunking.Overlap != 150 {
		t.Fatalf("chunking defaults missing: %+v", cfg.Chunking)
	}
	if cfg.Retrieval.TopK != 5 || cfg.Prompt.MaxContextChars != 12000 {
		t.Fatalf("retrieval/prompt defaults missing")
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("TEST_LLM_KEY", "sk-from-env")
	path := writeConfig(t, "llm:\n  api_key: ${TEST_LLM_KEY}\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LLM.APIKey != "sk-from-env" {
		t.Fatalf("env not expanded: %q", cfg.LLM.APIKey)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"overlap_not_below_size", func(c *Config) { c.Chunking = Chunking{Size: 100, Overlap: 100} }},
		{"zero_top_k", func(c *Config) { c.Retrieval.TopK = 0 }},
		{"unknown_backend", func(c *Config) { c.Index.Backend = "postgres" }},
		{"zero_attempts", func(c *Config) { c.LLM.MaxAttempts = 0 }},
		{"qdrant_without_host", func(c *Config) { c.Index.Host = "" }},
	}
	for _, cse := range cases {
		t.Run(cse.name, func(t *testing.T) {
			cfg := Default()
			cse.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
