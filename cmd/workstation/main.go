// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the workstation CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/prompt-workstation/internal/logging"
	"github.com/pdiddy/prompt-workstation/internal/secrets"
	"github.com/pdiddy/prompt-workstation/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// secretsDir holds per-backend API key files.
const secretsDir = ".secrets/"

// Loaded once in PersistentPreRunE and read by subcommands.
var (
	cfg    types.Config
	logger *slog.Logger
)

// rootCmd is the base command for the workstation CLI.
var rootCmd = &cobra.Command{
	Use:   "workstation",
	Short: "Prompt-engineering workstation for AI-driven UI/UX specs",
	Long: `workstation chains three generative models into a project workflow:
requirement gathering, detailed spec drafting, and media generation. Each
stage writes its output to the artifacts directory.

Backends without an API key return a stub response, so the whole workflow
runs offline.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}

		l, err := logging.New(os.Stderr, c.Log)
		if err != nil {
			return err
		}

		s, err := secrets.Load(secretsDir, l)
		if err != nil {
			return err
		}
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			l.Debug("loaded secrets", "keys", keys)
		}
		secrets.Fill(&c, s)

		cfg, logger = c, l
		slog.SetDefault(l)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./workstation.yaml or ~/.config/workstation/workstation.yaml)")
	flags.String("output-dir", types.DefaultOutputDir, "directory for generated artifacts")
	flags.String("templates-dir", types.DefaultTemplatesDir, "directory of YAML/TOML prompt templates")
	flags.Bool("git-commit", false, "stage and commit each artifact after writing it")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", "console", "log format: console or json")

	bindFlags(viper.GetViper(), flags)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("workstation")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "workstation"))
		}
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
