// Package config loads the application's config.toml, located next to
// the executable. A missing file means defaults.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig is the full application configuration.
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Detect DetectConfig `toml:"detect"`
	Batch  BatchConfig  `toml:"batch"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig configures on-disk storage.
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// DetectConfig bounds the column-role detection heuristics.
type DetectConfig struct {
	HeaderScanRows   int `toml:"header_scan_rows"`
	HeaderMinCells   int `toml:"header_min_cells"`
	HeaderMaxCellLen int `toml:"header_max_cell_len"`
	DividerMaxLen    int `toml:"divider_max_len"`
}

// BatchConfig bounds batch planning.
type BatchConfig struct {
	Ceiling int `toml:"ceiling"`
	Floor   int `toml:"floor"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20317,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Detect: DetectConfig{
			HeaderScanRows:   10,
			HeaderMinCells:   3,
			HeaderMaxCellLen: 40,
			DividerMaxLen:    80,
		},
		Batch: BatchConfig{
			Ceiling: 25,
			Floor:   20,
		},
	}
}

// GetExeDir returns the directory holding the running executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig reads config.toml from the executable's directory,
// falling back to defaults when absent. Environment variables
// RFPDESK_PORT and RFPDESK_DATA_DIR override the file.
func LoadConfig() (*AppConfig, error) {
	cfg := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	data, err := os.ReadFile(filepath.Join(exeDir, "config.toml"))
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("RFPDESK_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("RFPDESK_DATA_DIR"); v != "" {
		cfg.Data.DataDir = v
	}
}

// SaveConfig writes config.toml next to the executable.
func SaveConfig(cfg *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(exeDir, "config.toml"), data, 0644)
}

// EnsureDataDir creates the data directory and its subdirectories,
// returning the resolved path.
func EnsureDataDir(cfg *AppConfig) (string, error) {
	dataDir := cfg.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		exeDir, err := GetExeDir()
		if err != nil {
			exeDir = "."
		}
		dataDir = filepath.Join(exeDir, dataDir)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	for _, subdir := range []string{"uploads", "exports"} {
		if err := os.MkdirAll(filepath.Join(dataDir, subdir), 0755); err != nil {
			return "", err
		}
	}
	return dataDir, nil
}
