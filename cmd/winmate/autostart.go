package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"winmate/internal/autostart"
	"winmate/internal/logging"
)

var autostartCmd = &cobra.Command{
	Use:   "autostart",
	Short: "Manage starting the agent with Windows",
	Long: `Controls the per-user Run registry entry that launches 'winmate agent'
at login. Windows only.`,
}

func newAutostartManager() *autostart.Manager {
	return autostart.New(autostart.NewSystemRunKey(),
		autostart.WithLogger(logging.New(slog.LevelInfo)))
}

var autostartOnCmd = &cobra.Command{
	Use:   "on",
	Short: "Start the agent at login",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newAutostartManager().Enable(); err != nil {
			return err
		}
		fmt.Println("Autostart enabled. The agent will start at login.")
		return nil
	},
}

var autostartOffCmd = &cobra.Command{
	Use:   "off",
	Short: "Stop starting the agent at login",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newAutostartManager().Disable(); err != nil {
			return err
		}
		fmt.Println("Autostart disabled.")
		return nil
	},
}

var autostartStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the agent starts at login",
	RunE: func(cmd *cobra.Command, args []string) error {
		enabled, err := newAutostartManager().Enabled()
		if err != nil {
			return err
		}
		if enabled {
			fmt.Println("Autostart is enabled.")
		} else {
			fmt.Println("Autostart is disabled.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(autostartCmd)
	autostartCmd.AddCommand(autostartOnCmd, autostartOffCmd, autostartStatusCmd)
}
