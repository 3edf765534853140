package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "server:\n  port: 9500\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 9500 {
		t.Fatalf("server.port = %d, want 9500", cfg.Server.Port)
	}
	if cfg.Storage.Backend != "fs" || cfg.Storage.FS.Dir != "backups" {
		t.Fatalf("storage defaults = %+v", cfg.Storage)
	}
	if cfg.Admin.Username != "admin" {
		t.Fatalf("admin.username default = %q", cfg.Admin.Username)
	}
	if cfg.Admin.Password != "" {
		t.Fatalf("admin.password should have no default, got %q", cfg.Admin.Password)
	}
	if !cfg.RateLimit.Enabled || cfg.RateLimit.Requests != 30 {
		t.Fatalf("rate limit defaults = %+v", cfg.RateLimit)
	}
	if cfg.JWT.Secret != "dev-secret" || cfg.JWT.ExpMin != 60 {
		t.Fatalf("jwt fallbacks = %+v", cfg.JWT)
	}
}

func TestLoadAdminOverride(t *testing.T) {
	cfg, err := Load(writeConfig(t, "admin:\n  username: ops\n  password: s3cret\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Admin.Username != "ops" || cfg.Admin.Password != "s3cret" {
		t.Fatalf("admin = %+v", cfg.Admin)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
