package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// ServerRuntimeConfig holds the HTTP-facing knobs.
type ServerRuntimeConfig struct {
	Address            string `json:"address"`
	Port               int    `json:"port"`
	RateLimit          int    `json:"rate_limit"`
	GzipLevel          int    `json:"gzip_level"`
	BehindLoadBalancer bool   `json:"behind_load_balancer"`
}

// BereanConfig is the application configuration, decoded from config.json.
type BereanConfig struct {
	InstanceName string `json:"instance_name"`
	// Path of the SQLite bibles database.
	DatabasePath string `json:"database_path"`
	// Translations to search when a request names none. Empty means every
	// translation in storage.
	EnabledTranslations []string `json:"enabled_translations"`
	// Result page size for load-more batching.
	BatchSize      int                 `json:"batch_size"`
	TimeoutSeconds int                 `json:"timeout_seconds"`
	Server         ServerRuntimeConfig `json:"server"`
}

// Load reads and decodes the configuration file, applying defaults for
// omitted fields.
func Load(path string) (*BereanConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	conf := &BereanConfig{
		DatabasePath: "bibles.db",
		BatchSize:    100,
		Server: ServerRuntimeConfig{
			Address: "localhost",
			Port:    8080,
		},
	}
	if err := json.NewDecoder(f).Decode(conf); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}
	if conf.BatchSize <= 0 {
		conf.BatchSize = 100
	}
	return conf, nil
}
