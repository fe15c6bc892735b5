package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 3000 {
		t.Errorf("expected default port 3000, got %d", cfg.Port)
	}
	if !cfg.IsDev() {
		t.Error("expected development mode by default")
	}
	if cfg.RetentionDays != 7 {
		t.Errorf("expected 7 retention days, got %d", cfg.RetentionDays)
	}
	if len(cfg.Prefetch.Hours) != 2 || cfg.Prefetch.Hours[0] != 8 || cfg.Prefetch.Hours[1] != 17 {
		t.Errorf("expected default prefetch hours [8 17], got %v", cfg.Prefetch.Hours)
	}
}

func TestLoadYAMLAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	body := "port: 8080\nenv: production\nanthropic:\n  api_key: from-file\nprefetch:\n  hours: [6]\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("ANTHROPIC_API_KEY", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
	if cfg.IsDev() {
		t.Error("expected production mode")
	}
	if cfg.Anthropic.APIKey != "from-env" {
		t.Errorf("env should override file, got %q", cfg.Anthropic.APIKey)
	}
	if len(cfg.Prefetch.Hours) != 1 || cfg.Prefetch.Hours[0] != 6 {
		t.Errorf("expected prefetch hours [6], got %v", cfg.Prefetch.Hours)
	}
}

func TestLoadRejectsBadHour(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("prefetch:\n  hours: [25]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for out-of-range hour")
	}
}
