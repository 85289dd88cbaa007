package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.LogLevel != LogNormal {
		t.Errorf("expected default log level %q, got %q", LogNormal, cfg.LogLevel)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if len(cfg.Include) != 1 || cfg.Include[0] != "**/navtreedata.js" {
		t.Errorf("unexpected default include %v", cfg.Include)
	}
	if cfg.Strings.SyncOn == "" || cfg.Strings.SyncOff == "" {
		t.Error("default toggle strings should be set")
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.doxynav.yml")

	original := DefaultConfig()
	original.RootDir = "firmware/projects"
	original.Include = []string{"**/html/navtreedata.js"}
	original.LogLevel = LogDebug
	original.Server.Port = 9000
	original.Server.Watch = true
	original.Strings.SyncOn = "on"

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.RootDir != original.RootDir {
		t.Errorf("root_dir: got %q, want %q", loaded.RootDir, original.RootDir)
	}
	if loaded.LogLevel != original.LogLevel {
		t.Errorf("log_level: got %q, want %q", loaded.LogLevel, original.LogLevel)
	}
	if loaded.Server.Port != 9000 || !loaded.Server.Watch {
		t.Errorf("server: got %+v", loaded.Server)
	}
	if loaded.Strings.SyncOn != "on" {
		t.Errorf("strings.sync_on: got %q", loaded.Strings.SyncOn)
	}
	if len(loaded.Include) != 1 || loaded.Include[0] != original.Include[0] {
		t.Errorf("include: got %v, want %v", loaded.Include, original.Include)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.OutputDir != "navtree" {
		t.Errorf("expected default output_dir, got %q", cfg.OutputDir)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("DOXYNAV_LOG_LEVEL", "debug")
	t.Setenv("DOXYNAV_SERVER__PORT", "9191")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.LogLevel != LogDebug {
		t.Errorf("env override failed: got %q, want %q", loaded.LogLevel, LogDebug)
	}
	if loaded.Server.Port != 9191 {
		t.Errorf("nested env override failed: got %d, want 9191", loaded.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"empty root", func(c *Config) { c.RootDir = "" }, true},
		{"no include", func(c *Config) { c.Include = nil }, true},
		{"empty output", func(c *Config) { c.OutputDir = "" }, true},
		{"empty db", func(c *Config) { c.DBPath = "" }, true},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewLoggerNone(t *testing.T) {
	log := NewLogger(LogNone, false)
	if log.Core().Enabled(0) {
		t.Error("none level should disable logging")
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"**/navtreedata.js", []string{"**/navtreedata.js"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}
