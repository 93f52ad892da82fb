package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"winmate/internal/updater"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check the update feed for a newer version",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		result := app.Updater.Check(cmd.Context())
		fmt.Println(result.Message)

		download, _ := cmd.Flags().GetBool("download")
		if !download || result.Status != updater.StatusUpdateAvailable || result.Update == nil {
			return nil
		}

		dest, _ := cmd.Flags().GetString("dest")
		path, err := app.Updater.Download(cmd.Context(), *result.Update, dest)
		if err != nil {
			return fmt.Errorf("download update: %w", err)
		}
		fmt.Printf("Downloaded update to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().Bool("download", false, "Download the update when one is available")
	updateCmd.Flags().String("dest", "", "Directory to download into (defaults to a temp dir)")
}
