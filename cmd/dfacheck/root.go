package main

import (
	"fmt"
	"os"

	"github.com/aretw0/dfacheck/internal/cli"
	"github.com/aretw0/dfacheck/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dfacheck",
	Short: "dfacheck validates deterministic finite automata and runs words through them",
	Long: `dfacheck loads a DFA description (text, YAML or JSON), checks that it is
a complete and deterministic machine over at most 26 lowercase letters, and
answers whether a word is accepted.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(cli.ExitUsage)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "dfacheck.yaml", "Configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides the config file)")
}

// loadConfig resolves the config file and the --log-level override.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	return cfg, nil
}
