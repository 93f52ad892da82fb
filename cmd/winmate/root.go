package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"winmate"
	"winmate/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "winmate",
	Short: "winmate is an AI-assisted Windows maintenance assistant",
	Long: `winmate maps natural language requests ("my pc is slow") onto a catalog
of maintenance actions: cleanup, health scans, network repair, privacy
profiles and common Windows tools. Dangerous actions always require
confirmation.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "winmate.yaml", "Path to the configuration file")
}

// buildApp loads configuration and assembles the application core.
func buildApp(cmd *cobra.Command) (*winmate.App, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return winmate.New(cfg)
}
