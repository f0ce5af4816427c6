package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	content := `{
  // comments are allowed
  base_url: "https://api.suitlink.test/api/v1/",
  default_limit: 25,
}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := loadFile(path, Config{BaseURL: DefaultBaseURL, DefaultLimit: 10, SearchDebounceMS: 500})
	if err != nil {
		t.Fatalf("loadFile() error = %v", err)
	}
	if cfg.BaseURL != "https://api.suitlink.test/api/v1" {
		t.Fatalf("BaseURL = %q, want trailing slash trimmed", cfg.BaseURL)
	}
	if cfg.DefaultLimit != 25 {
		t.Fatalf("DefaultLimit = %d, want 25", cfg.DefaultLimit)
	}
	if cfg.SearchDebounceMS != 500 {
		t.Fatalf("SearchDebounceMS = %d, want 500", cfg.SearchDebounceMS)
	}
}

func TestLoadFileMissingKeepsDefaults(t *testing.T) {
	cfg, err := loadFile(filepath.Join(t.TempDir(), "missing.json"), Config{DefaultLimit: 10})
	if err != nil {
		t.Fatalf("loadFile() error = %v", err)
	}
	if cfg.DefaultLimit != 10 {
		t.Fatalf("DefaultLimit = %d, want 10", cfg.DefaultLimit)
	}
}

func TestDefaultConfigFromEnv(t *testing.T) {
	t.Setenv("SUITLINK_BASE_URL", "http://example.test/api/v1")
	t.Setenv("SUITLINK_COUNT_CONCURRENCY", "3")
	t.Setenv("SUITLINK_DEFAULT_LIMIT", "not-a-number")

	cfg := DefaultConfig()
	if cfg.BaseURL != "http://example.test/api/v1" {
		t.Fatalf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.CountConcurrency != 3 {
		t.Fatalf("CountConcurrency = %d, want 3", cfg.CountConcurrency)
	}
	if cfg.DefaultLimit != 10 {
		t.Fatalf("DefaultLimit = %d, want fallback 10", cfg.DefaultLimit)
	}
}

func TestInitWritesConfigOnce(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SUITLINK_CONFIG_DIR", dir)

	created, err := Init()
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if len(created) != 1 || created[0] != filepath.Join(dir, ConfigFileName) {
		t.Fatalf("Init() created = %v", created)
	}

	created, err = Init()
	if err != nil {
		t.Fatalf("Init() (2nd) error = %v", err)
	}
	if len(created) != 0 {
		t.Fatalf("Init() (2nd) created = %v, want none", created)
	}
}
