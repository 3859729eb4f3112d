package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "server:\n  port: \"9100\"\nllm:\n  model: test-model\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("PORT", "")
	t.Setenv("LLM_MODEL", "")

	config := loadConfig()
	if config.Server.Port != "9100" {
		t.Errorf("port = %q, want 9100", config.Server.Port)
	}
	if config.LLM.Model != "test-model" {
		t.Errorf("model = %q, want test-model", config.LLM.Model)
	}
}

func TestLoadConfigMalformedFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [not: a: mapping"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("PORT", "")

	config := loadConfig()
	if config.Server.Port != "8000" {
		t.Errorf("port = %q, want default 8000", config.Server.Port)
	}
	if config.Database.DSN != "./data/slidesmith.db" {
		t.Errorf("dsn = %q, want default", config.Database.DSN)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("llm:\n  model: from-file\n"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("LLM_MODEL", "from-env")

	config := loadConfig()
	if config.LLM.Model != "from-env" {
		t.Errorf("model = %q, want from-env", config.LLM.Model)
	}
}
