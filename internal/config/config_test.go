package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8700 {
		t.Errorf("expected default port 8700, got %d", cfg.Port)
	}
	if cfg.Bundle != "data/bundle.json" {
		t.Errorf("unexpected default bundle: %q", cfg.Bundle)
	}
	if len(cfg.GalleryPatterns) != 4 {
		t.Errorf("unexpected default patterns: %v", cfg.GalleryPatterns)
	}
}

func TestLoadFileAndEnvOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curator.yml")
	content := "port: 9000\nadmin_password: file-secret\nbundle: site/bundle.json\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CURATOR_ADMIN_PASSWORD", "env-secret")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9000 {
		t.Errorf("expected file port 9000, got %d", cfg.Port)
	}
	if cfg.Bundle != "site/bundle.json" {
		t.Errorf("expected file bundle, got %q", cfg.Bundle)
	}
	// Environment beats the file.
	if cfg.AdminPassword != "env-secret" {
		t.Errorf("expected env override, got %q", cfg.AdminPassword)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curator.yml")

	cfg := DefaultConfig()
	cfg.AdminPassword = "secret"
	cfg.Port = 8123
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Port != 8123 || loaded.AdminPassword != "secret" {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestValidate(t *testing.T) {
	valid := DefaultConfig()
	valid.AdminPassword = "secret"
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}

	cases := []func(*Config){
		func(c *Config) { c.Bundle = "" },
		func(c *Config) { c.DataDir = "" },
		func(c *Config) { c.AdminPassword = "" },
		func(c *Config) { c.Port = 0 },
		func(c *Config) { c.Port = 99999 },
	}
	for i, mutate := range cases {
		c := DefaultConfig()
		c.AdminPassword = "secret"
		mutate(c)
		if err := c.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}
