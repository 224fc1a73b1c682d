package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"rfpdesk/internal/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	if got, want := cfg.Server.Port, 20317; got != want {
		t.Fatalf("Port=%d, want %d", got, want)
	}
	if got, want := cfg.Detect.HeaderScanRows, 10; got != want {
		t.Fatalf("HeaderScanRows=%d, want %d", got, want)
	}
	if got, want := cfg.Detect.HeaderMaxCellLen, 40; got != want {
		t.Fatalf("HeaderMaxCellLen=%d, want %d", got, want)
	}
	if got, want := cfg.Batch.Ceiling, 25; got != want {
		t.Fatalf("Ceiling=%d, want %d", got, want)
	}
	if got, want := cfg.Batch.Floor, 20; got != want {
		t.Fatalf("Floor=%d, want %d", got, want)
	}
}

func TestConfigTomlRoundTrip(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.Port = 9090
	cfg.Data.DataDir = "/var/lib/rfpdesk"

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	loaded := config.DefaultConfig()
	if err := toml.Unmarshal(data, loaded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if loaded.Server.Port != 9090 {
		t.Fatalf("Port=%d, want 9090", loaded.Server.Port)
	}
	if loaded.Data.DataDir != "/var/lib/rfpdesk" {
		t.Fatalf("DataDir=%q", loaded.Data.DataDir)
	}
	if loaded.Batch.Ceiling != 25 {
		t.Fatalf("Ceiling=%d, want 25", loaded.Batch.Ceiling)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("RFPDESK_PORT", "9999")
	t.Setenv("RFPDESK_DATA_DIR", "/tmp/rfpdesk-data")

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Fatalf("Port=%d, want 9999", cfg.Server.Port)
	}
	if cfg.Data.DataDir != "/tmp/rfpdesk-data" {
		t.Fatalf("DataDir=%q", cfg.Data.DataDir)
	}
}

func TestEnsureDataDir(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Data.DataDir = filepath.Join(t.TempDir(), "data")

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		t.Fatalf("EnsureDataDir: %v", err)
	}
	for _, sub := range []string{"uploads", "exports"} {
		if _, err := os.Stat(filepath.Join(dataDir, sub)); err != nil {
			t.Fatalf("subdir %s missing: %v", sub, err)
		}
	}
}
