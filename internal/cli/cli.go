//-------------------------------------------------------------------------
//
// salesdash - resilient e-commerce analytics dataset
//
// Copyright (c) 2025 - 2026, the salesdash authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for salesdash.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/salesdash/salesdash/internal/config"
	"github.com/salesdash/salesdash/internal/logging"
	"github.com/salesdash/salesdash/pkg/version"
)

var (
	// Global flags
	cfgFile   string
	storePath string
	logLevel  string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "salesdash",
		Short: "Resilient e-commerce analytics dataset backend",
		Long: `salesdash builds and serves the joined orders/products/customers
dataset behind the sales analytics dashboard. The dataset is generated
deterministically from a fixed seed, persisted to an embedded SQLite
store, and always loads: a missing or broken store is rebuilt once, and
a store that stays broken is replaced by the same dataset generated in
memory.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./salesdash.yaml)")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "",
		"store path (overrides configured candidates)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(kpiCmd)
	rootCmd.AddCommand(exportCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if storePath != "" {
		cfg.Store.Candidates = []string{storePath}
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}
