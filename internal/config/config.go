//-------------------------------------------------------------------------
//
// salesdash - resilient e-commerce analytics dataset
//
// Copyright (c) 2025 - 2026, the salesdash authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for salesdash.
// Configuration is loaded from config files and CLI flags (no
// environment variables). CLI flags take precedence over config file
// values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/salesdash/salesdash/internal/datagen"
)

// Config holds all configuration for salesdash.
type Config struct {
	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Store holds store location configuration.
	Store StoreConfig `mapstructure:"store"`

	// Generate holds deterministic generation parameters.
	Generate GenerateConfig `mapstructure:"generate"`

	// Export holds configuration for the export subcommand.
	Export ExportConfig `mapstructure:"export"`
}

// StoreConfig holds store location configuration.
type StoreConfig struct {
	// Candidates are probed in order; the first writable one is used.
	Candidates []string `mapstructure:"candidates"`
}

// GenerateConfig holds the deterministic generation parameters. The
// same parameters drive store builds and the synthetic fallback.
type GenerateConfig struct {
	Seed      uint64 `mapstructure:"seed"`
	Customers int    `mapstructure:"customers"`
	Products  int    `mapstructure:"products"`
	Orders    int    `mapstructure:"orders"`

	// StatusVariant selects the third order status next to Completed
	// and Refunded: "pending" or "cancelled".
	StatusVariant string `mapstructure:"status_variant"`
}

// ExportConfig holds configuration for the export subcommand.
type ExportConfig struct {
	// Format is the output format: csv or xlsx.
	Format string `mapstructure:"format"`

	// Dir is the directory export files are written to.
	Dir string `mapstructure:"dir"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Store: StoreConfig{
			Candidates: []string{
				filepath.Join("data", "ecommerce.db"),
				filepath.Join(os.TempDir(), "salesdash", "ecommerce.db"),
			},
		},
		Generate: GenerateConfig{
			Seed:          42,
			Customers:     5000,
			Products:      500,
			Orders:        50000,
			StatusVariant: "pending",
		},
		Export: ExportConfig{
			Format: "csv",
			Dir:    "reports",
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./salesdash.yaml
// 3. ~/.config/salesdash/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("salesdash")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "salesdash"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if len(c.Store.Candidates) == 0 {
		return fmt.Errorf("at least one store candidate path is required")
	}
	if c.Generate.Customers < 0 || c.Generate.Products < 0 || c.Generate.Orders < 0 {
		return fmt.Errorf("generation counts must be non-negative")
	}
	switch c.Generate.StatusVariant {
	case "pending", "cancelled":
	default:
		return fmt.Errorf("status_variant must be 'pending' or 'cancelled'")
	}
	return nil
}

// ValidateExport checks configuration required for the export command.
func (c *Config) ValidateExport() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Export.Format != "csv" && c.Export.Format != "xlsx" {
		return fmt.Errorf("export format must be 'csv' or 'xlsx'")
	}
	if c.Export.Dir == "" {
		return fmt.Errorf("export dir is required")
	}
	return nil
}

// GenerationSpec maps the configuration onto a generator spec.
func (c *Config) GenerationSpec() datagen.Spec {
	spec := datagen.Spec{
		Seed:      c.Generate.Seed,
		Customers: c.Generate.Customers,
		Products:  c.Generate.Products,
		Orders:    c.Generate.Orders,
	}
	if c.Generate.StatusVariant == "cancelled" {
		spec.ThirdStatus = datagen.StatusCancelled
	} else {
		spec.ThirdStatus = datagen.StatusPending
	}
	return spec
}
