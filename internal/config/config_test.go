//-------------------------------------------------------------------------
//
// salesdash - resilient e-commerce analytics dataset
//
// Copyright (c) 2025 - 2026, the salesdash authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/salesdash/salesdash/internal/datagen"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LogLevel != "info" {
		t.Errorf("Expected log level 'info', got '%s'", cfg.LogLevel)
	}
	if len(cfg.Store.Candidates) != 2 {
		t.Fatalf("Expected 2 store candidates, got %d", len(cfg.Store.Candidates))
	}
	if cfg.Generate.Seed != 42 {
		t.Errorf("Expected seed 42, got %d", cfg.Generate.Seed)
	}
	if cfg.Generate.Customers != 5000 || cfg.Generate.Products != 500 || cfg.Generate.Orders != 50000 {
		t.Errorf("Unexpected generation counts: %+v", cfg.Generate)
	}
	if cfg.Generate.StatusVariant != "pending" {
		t.Errorf("Expected status variant 'pending', got '%s'", cfg.Generate.StatusVariant)
	}
	if cfg.Export.Format != "csv" {
		t.Errorf("Expected export format 'csv', got '%s'", cfg.Export.Format)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
	if err := cfg.ValidateExport(); err != nil {
		t.Errorf("Default config should pass export validation: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantError bool
	}{
		{
			name:      "valid default",
			modify:    func(c *Config) {},
			wantError: false,
		},
		{
			name:      "cancelled variant",
			modify:    func(c *Config) { c.Generate.StatusVariant = "cancelled" },
			wantError: false,
		},
		{
			name:      "no store candidates",
			modify:    func(c *Config) { c.Store.Candidates = nil },
			wantError: true,
		},
		{
			name:      "negative orders",
			modify:    func(c *Config) { c.Generate.Orders = -1 },
			wantError: true,
		},
		{
			name:      "unknown status variant",
			modify:    func(c *Config) { c.Generate.StatusVariant = "shipped" },
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantError && err == nil {
				t.Error("Expected validation error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("Expected no error, got: %v", err)
			}
		})
	}
}

func TestConfigValidateExport(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantError bool
	}{
		{
			name:      "csv format",
			modify:    func(c *Config) { c.Export.Format = "csv" },
			wantError: false,
		},
		{
			name:      "xlsx format",
			modify:    func(c *Config) { c.Export.Format = "xlsx" },
			wantError: false,
		},
		{
			name:      "unknown format",
			modify:    func(c *Config) { c.Export.Format = "parquet" },
			wantError: true,
		},
		{
			name:      "empty dir",
			modify:    func(c *Config) { c.Export.Dir = "" },
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := cfg.ValidateExport()
			if tt.wantError && err == nil {
				t.Error("Expected validation error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("Expected no error, got: %v", err)
			}
		})
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	defer func() { _ = os.Chdir(cwd) }()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Generate.Seed != 42 {
		t.Errorf("Expected default seed 42, got %d", cfg.Generate.Seed)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "salesdash.yaml")
	content := []byte("log_level: debug\ngenerate:\n  seed: 7\n  orders: 200\n  status_variant: cancelled\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level 'debug', got '%s'", cfg.LogLevel)
	}
	if cfg.Generate.Seed != 7 {
		t.Errorf("Expected seed 7, got %d", cfg.Generate.Seed)
	}
	if cfg.Generate.Orders != 200 {
		t.Errorf("Expected 200 orders, got %d", cfg.Generate.Orders)
	}
	// Values absent from the file keep their defaults.
	if cfg.Generate.Customers != 5000 {
		t.Errorf("Expected default customers 5000, got %d", cfg.Generate.Customers)
	}
}

func TestGenerationSpec(t *testing.T) {
	cfg := DefaultConfig()
	spec := cfg.GenerationSpec()

	want := datagen.DefaultSpec()
	if spec.Seed != want.Seed || spec.Customers != want.Customers ||
		spec.Products != want.Products || spec.Orders != want.Orders {
		t.Errorf("Default config should map to the default counts, got %+v", spec)
	}
	if spec.ThirdStatus != datagen.StatusPending {
		t.Errorf("Expected pending third status, got %s", spec.ThirdStatus)
	}

	cfg.Generate.StatusVariant = "cancelled"
	if got := cfg.GenerationSpec().ThirdStatus; got != datagen.StatusCancelled {
		t.Errorf("Expected cancelled third status, got %s", got)
	}
}
