package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Serve.Addr != ":8080" {
		t.Fatalf("Serve.Addr = %q, want %q", cfg.Serve.Addr, ":8080")
	}
}

func TestLoadParsesLibrariesAndServe(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coral.toml")
	content := `
libraries = ["math.coral", "lists.coral"]
snapshot_path = "cache.bin"

[serve]
addr = ":9090"
jwt_secret = "s3cret"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Libraries) != 2 || cfg.Libraries[0] != "math.coral" {
		t.Fatalf("Libraries = %v", cfg.Libraries)
	}
	if cfg.SnapshotPath != "cache.bin" {
		t.Fatalf("SnapshotPath = %q", cfg.SnapshotPath)
	}
	if cfg.Serve.Addr != ":9090" || cfg.Serve.JWTSecret != "s3cret" {
		t.Fatalf("Serve = %+v", cfg.Serve)
	}
}
