package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return p
}

func TestLoadFile_Basic(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "baseguard.yaml",
		"basefile: quality/baseline.json\nreports:\n  - out/*.sarif\n  - pylint.json\nstrict: true\ndetails: false\n")
	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Basefile == nil || *cfg.Basefile != "quality/baseline.json" {
		t.Fatalf("expected basefile, got %#v", cfg.Basefile)
	}
	if len(cfg.Reports) != 2 || cfg.Reports[0] != "out/*.sarif" {
		t.Fatalf("expected two reports, got %#v", cfg.Reports)
	}
	if cfg.Strict == nil || !*cfg.Strict {
		t.Fatalf("expected strict=true")
	}
	if cfg.Details == nil || *cfg.Details {
		t.Fatalf("expected details=false to be set explicitly")
	}
	if cfg.Audit != nil {
		t.Fatalf("expected audit unset, got %v", *cfg.Audit)
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "baseguard.yml", "reports: [unterminated\n")
	if _, err := LoadFile(p); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadLocal_PrefersDotfile(t *testing.T) {
	dir := t.TempDir()
	// place both, expect the dotfile to be picked first by search order
	writeTemp(t, dir, "baseguard.yaml", "basefile: plain.json\n")
	writeTemp(t, dir, ".baseguard.yaml", "basefile: dot.json\n")
	cfg, err := LoadLocal(dir)
	if err != nil {
		t.Fatalf("LoadLocal: %v", err)
	}
	if cfg.Basefile == nil || *cfg.Basefile != "dot.json" {
		t.Fatalf("expected basefile from .baseguard.yaml, got %#v", cfg.Basefile)
	}
}

func TestLoadLocal_NoConfig(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadLocal(dir)
	if !errors.Is(err, ErrNoConfig) {
		t.Fatalf("expected ErrNoConfig, got %v", err)
	}
}

func TestLoadGlobal_XDG_Config(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "baseguard")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeTemp(t, cfgDir, "config.yml", "no_color: true\n")
	t.Setenv("XDG_CONFIG_HOME", dir)
	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	if cfg.NoColor == nil || !*cfg.NoColor {
		t.Fatalf("expected no_color=true from global config, got %#v", cfg.NoColor)
	}
}

func TestLoadGlobal_NoConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "")
	if _, err := LoadGlobal(); !errors.Is(err, ErrNoConfig) {
		t.Fatalf("expected ErrNoConfig, got %v", err)
	}
}
