package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"winmate/internal/presentation"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered actions",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		md := presentation.ActionListMarkdown(app.Catalog.Summaries())
		render := presentation.NewMarkdownRenderer()
		out, err := render(md)
		if err != nil {
			out = md
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
