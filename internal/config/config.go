// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"addon-catalog/internal/errors"
	"addon-catalog/internal/logging"
)

// DefaultCatalogURL is the vendor catalog used when none is configured.
const DefaultCatalogURL = "https://ftp.hp.com/pub/tcimages/EasyUpdate/Images/addoncatalog.xml"

// DefaultCachePath is where fetched catalog bytes are written.
const DefaultCachePath = ".cache/addon_catalog.xml"

// Config is the main application configuration
type Config struct {
	// CatalogURL is the default catalog XML source
	CatalogURL string `json:"catalog_url"`

	// CachePath is the destination for downloaded catalog bytes
	CachePath string `json:"cache_path"`

	// ListenAddr is the dashboard server bind address
	ListenAddr string `json:"listen_addr"`

	// TimeoutSeconds bounds the catalog fetch
	TimeoutSeconds int `json:"timeout_seconds"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// hclConfig mirrors Config for HCL decoding; absent attributes stay zero
// and are backfilled from defaults.
type hclConfig struct {
	CatalogURL     string          `hcl:"catalog_url,optional"`
	CachePath      string          `hcl:"cache_path,optional"`
	ListenAddr     string          `hcl:"listen_addr,optional"`
	TimeoutSeconds int             `hcl:"timeout_seconds,optional"`
	Logging        *logging.Config `hcl:"logging,block"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		CatalogURL:     DefaultCatalogURL,
		CachePath:      DefaultCachePath,
		ListenAddr:     ":8080",
		TimeoutSeconds: 10,
		Logging:        logging.DefaultConfig(),
	}
}

// Load reads configuration from a file. Files ending in .hcl are decoded
// as HCL; anything else is decoded as JSON. Missing fields keep defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if filepath.Ext(path) == ".hcl" {
		var raw hclConfig
		if err := hclsimple.DecodeFile(path, nil, &raw); err != nil {
			return nil, errors.Config("failed to decode HCL config", err)
		}
		mergeHCL(cfg, &raw)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Config("failed to read config file", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Config("failed to decode JSON config", err)
	}
	return cfg, nil
}

func mergeHCL(cfg *Config, raw *hclConfig) {
	if raw.CatalogURL != "" {
		cfg.CatalogURL = raw.CatalogURL
	}
	if raw.CachePath != "" {
		cfg.CachePath = raw.CachePath
	}
	if raw.ListenAddr != "" {
		cfg.ListenAddr = raw.ListenAddr
	}
	if raw.TimeoutSeconds > 0 {
		cfg.TimeoutSeconds = raw.TimeoutSeconds
	}
	if raw.Logging != nil {
		if raw.Logging.Level != "" {
			cfg.Logging.Level = raw.Logging.Level
		}
		if raw.Logging.Format != "" {
			cfg.Logging.Format = raw.Logging.Format
		}
		if raw.Logging.Output != "" {
			cfg.Logging.Output = raw.Logging.Output
		}
	}
}

var current = Default()

// Get returns the current configuration
func Get() *Config {
	return current
}

// Set replaces the current configuration
func Set(cfg *Config) {
	current = cfg
}
