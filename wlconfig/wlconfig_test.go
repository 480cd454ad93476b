package wlconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	if len(cfg.Globals) != len(want.Globals) {
		t.Fatalf("Globals = %v, want %v", cfg.Globals, want.Globals)
	}
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Globals) == 0 {
		t.Fatal("Default config has no globals")
	}
}

func TestLoadOverridesSocketDirAndGlobals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wlcore.yaml")
	const data = `
socket_dir: /tmp/custom-runtime
globals:
  - interface: wl_compositor
    version: 2
  - interface: wl_shm
    version: 1
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SocketDir != "/tmp/custom-runtime" {
		t.Fatalf("SocketDir = %q", cfg.SocketDir)
	}
	if len(cfg.Globals) != 2 || cfg.Globals[0].Interface != "wl_compositor" || cfg.Globals[0].Version != 2 {
		t.Fatalf("Globals = %+v", cfg.Globals)
	}
}

func TestLoadPartialOverrideKeepsDefaultGlobals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wlcore.yaml")
	if err := os.WriteFile(path, []byte("socket_dir: /tmp/only-dir\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SocketDir != "/tmp/only-dir" {
		t.Fatalf("SocketDir = %q", cfg.SocketDir)
	}
	if len(cfg.Globals) != len(Default().Globals) {
		t.Fatalf("Globals = %v, want defaults preserved", cfg.Globals)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("globals: [this is not valid: yaml: at all"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load on malformed YAML: expected error, got nil")
	}
}
