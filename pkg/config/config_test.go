package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Graphics.Width != 800 || cfg.Graphics.Height != 600 {
		t.Errorf("default window = %dx%d, want 800x600", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Engine.MaxFrameDelta != 0.1 {
		t.Errorf("default max frame delta = %v, want 0.1", cfg.Engine.MaxFrameDelta)
	}
	if cfg.Engine.InputQueueSize != 256 {
		t.Errorf("default input queue size = %d, want 256", cfg.Engine.InputQueueSize)
	}
	if cfg.Console.Capacity != 32 {
		t.Errorf("default console capacity = %d, want 32", cfg.Console.Capacity)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default log level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("missing file should report an error")
	}
	if cfg == nil || cfg.Graphics.Width != 800 {
		t.Error("missing file should still return defaults")
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Graphics.Width = 1280
	cfg.Graphics.Height = 720
	cfg.Engine.MaxFrameDelta = 0.05
	cfg.Console.Visible = true
	cfg.Logging.Level = "debug"

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Graphics.Width != 1280 || loaded.Graphics.Height != 720 {
		t.Errorf("window = %dx%d, want 1280x720", loaded.Graphics.Width, loaded.Graphics.Height)
	}
	if loaded.Engine.MaxFrameDelta != 0.05 {
		t.Errorf("max frame delta = %v, want 0.05", loaded.Engine.MaxFrameDelta)
	}
	if !loaded.Console.Visible {
		t.Error("console visibility not preserved")
	}
	if loaded.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", loaded.Logging.Level)
	}
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	partial := "graphics:\n  width: 1024\n"
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Graphics.Width != 1024 {
		t.Errorf("width = %d, want 1024 from file", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 600 {
		t.Errorf("height = %d, want default 600", cfg.Graphics.Height)
	}
	if cfg.Engine.InputQueueSize != 256 {
		t.Errorf("input queue size = %d, want default 256", cfg.Engine.InputQueueSize)
	}
}
