// Package config loads runtime configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

type Config struct {
	// Addr is the HTTP listen address.
	Addr string
	// Storage selects the repository backend: memory, file, or sqlite.
	Storage string
	// DataDir is the base directory for the file backend.
	DataDir string
	// DBPath is the database file for the sqlite backend.
	DBPath string
}

func DefaultConfig() *Config {
	return &Config{
		Addr:    ":8080",
		Storage: StorageFile,
		DataDir: ".",
		DBPath:  "pulse.db",
	}
}

// Load reads configuration from the environment. A missing .env file is
// not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if addr := os.Getenv("PULSE_ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if storage := os.Getenv("PULSE_STORAGE"); storage != "" {
		cfg.Storage = storage
	}
	if dir := os.Getenv("PULSE_DATA_DIR"); dir != "" {
		cfg.DataDir = dir
	}
	if path := os.Getenv("PULSE_DB_PATH"); path != "" {
		cfg.DBPath = path
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage {
	case StorageMemory, StorageFile, StorageSQLite:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage)
	}
	if c.Addr == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	return nil
}
