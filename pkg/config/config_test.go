package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	cfg, err := Load("non-existent-config.yaml")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	assertDefaultConfig(t, cfg)
}

func TestLoadWithPartialConfigAppliesDefaults(t *testing.T) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  address: ":9090"
database:
  driver: ""
  sqlite: {}
survey:
  seed_on_startup: false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Address != ":9090" {
		t.Fatalf("expected server address :9090, got %s", cfg.Server.Address)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("expected database driver sqlite, got %s", cfg.Database.Driver)
	}
	if cfg.Database.SQLite.Path != "data/survey.db" {
		t.Fatalf("expected sqlite path data/survey.db, got %s", cfg.Database.SQLite.Path)
	}
	if cfg.Survey.SeedOnStartup {
		t.Fatalf("expected seed_on_startup to stay false")
	}
	if cfg.Survey.WriteLockKey != "risk_survey:migration_lock" {
		t.Fatalf("expected default write lock key, got %s", cfg.Survey.WriteLockKey)
	}
}

func TestNormalizeBasePath(t *testing.T) {
	cases := map[string]string{
		"":                "",
		"/":               "",
		" . ":             "",
		"survey":          "/survey",
		"/survey/":        "/survey",
		"/nested/prefix/": "/nested/prefix",
	}
	for input, want := range cases {
		if got := NormalizeBasePath(input); got != want {
			t.Fatalf("NormalizeBasePath(%q) = %q, want %q", input, got, want)
		}
	}
}

func assertDefaultConfig(t *testing.T, cfg *Config) {
	t.Helper()
	if cfg == nil {
		t.Fatalf("config is nil")
	}
	if cfg.Server.Address != ":8080" {
		t.Fatalf("expected default address :8080, got %s", cfg.Server.Address)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("expected default driver sqlite, got %s", cfg.Database.Driver)
	}
	if cfg.Database.SQLite.Path != "data/survey.db" {
		t.Fatalf("expected default sqlite path data/survey.db, got %s", cfg.Database.SQLite.Path)
	}
	if !cfg.Survey.SeedOnStartup {
		t.Fatalf("expected seed_on_startup default true")
	}
}
