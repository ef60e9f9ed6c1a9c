package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the config file at the root of a ledger directory.
const FileName = "gagyebu.yaml"

// Config represents the top-level gagyebu.yaml configuration.
type Config struct {
	Ledger LedgerConfig `yaml:"ledger"`
	Import ImportConfig `yaml:"import"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

// LedgerConfig identifies the household ledger and its database.
type LedgerConfig struct {
	Name     string `yaml:"name"`
	Database string `yaml:"database"` // relative to the ledger root
}

// ImportConfig controls statement detection.
type ImportConfig struct {
	ScanRows int `yaml:"scan_rows"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr        string `yaml:"addr"`
	BodyLimitMB int    `yaml:"body_limit_mb"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
}

// Load reads a gagyebu.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new ledger.
func Default(name string) *Config {
	return &Config{
		Ledger: LedgerConfig{
			Name:     name,
			Database: "gagyebu.db",
		},
		Import: ImportConfig{
			ScanRows: 50,
		},
		Server: ServerConfig{
			Addr:        ":8080",
			BodyLimitMB: 32,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// ApplyEnv loads envFile when it exists and overrides fields from GAGYEBU_* variables.
func ApplyEnv(cfg *Config, envFile string) error {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return fmt.Errorf("loading %s: %w", envFile, err)
			}
		}
	}

	if v := os.Getenv("GAGYEBU_DATABASE"); v != "" {
		cfg.Ledger.Database = v
	}
	if v := os.Getenv("GAGYEBU_SCAN_ROWS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing GAGYEBU_SCAN_ROWS %q: %w", v, err)
		}
		cfg.Import.ScanRows = n
	}
	if v := os.Getenv("GAGYEBU_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("GAGYEBU_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("GAGYEBU_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	return nil
}
