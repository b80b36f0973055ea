// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for passstore, a small
// client for an external password store program. Commands read, list,
// generate, insert and remove entries, copy entries to the OS keychain, and
// manage the TOML configuration file.
package cmd

import (
	"fmt"
	"os"

	"passstore/cli/internal/config"
	"passstore/cli/internal/keychain"
	"passstore/cli/internal/logging"
	"passstore/cli/internal/store"

	"github.com/spf13/cobra"
)

var (
	showVersion  bool
	flagProgram  string
	flagBackend  string
	flagLogLevel string
	noProgress   bool

	// settings is resolved before every subcommand runs.
	settings = config.Default()
)

// entryStore is the set of store operations the commands use.
type entryStore interface {
	Get(path string) (string, error)
	GetUsernames(path string) ([]string, error)
	Generate(path string, useSymbols bool, length int) error
	Insert(path, password string) error
	Remove(path string) error
}

// secretKeeper is the OS keychain surface the keyring commands use.
type secretKeeper interface {
	SaveEntry(path, secret string) error
	LoadEntry(path string) (string, error)
	RemoveEntry(path string) error
}

// Factories are replaced in tests.
var (
	newStore = func(c config.Config) entryStore {
		return store.New(c.StoreBackend(), c.Transport())
	}
	openKeychain = func() (secretKeeper, error) {
		m, err := keychain.GetManager()
		if err != nil {
			return nil, err
		}
		return m, nil
	}
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "passstore",
	Short:         "Client for the gopass password store",
	Long:          `passstore reads and writes password store entries by driving the gopass program, either through one-shot commands or through its JSON API listener.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return resolveSettings()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			printVersion(cmd)
			return nil
		}
		return cmd.Help()
	},
}

// resolveSettings loads the config file and applies command-line overrides.
func resolveSettings() error {
	c, err := config.Load()
	if err != nil {
		return err
	}
	if flagProgram != "" {
		c.Program = flagProgram
	}
	if flagBackend != "" {
		c.Backend = flagBackend
	}
	if flagLogLevel != "" {
		c.LogLevel = flagLogLevel
	}
	if err := c.Validate(); err != nil {
		return err
	}
	logging.Configure(c.LogLevel)
	settings = c
	return nil
}

// Execute runs the CLI application and exits with status 1 on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, logging.PresentError("passstore", err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show version information")
	rootCmd.PersistentFlags().StringVar(&flagProgram, "program", "", "Password store program to run (default from config, then gopass)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Store backend: jsonapi or cli")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: trace, debug, info, warn, error, off")
	rootCmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "Disable progress spinners")
}
