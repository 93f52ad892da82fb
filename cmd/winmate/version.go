package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"winmate"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of winmate",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("winmate version %s\n", winmate.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
