package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"winmate/internal/presentation"
	"winmate/pkg/domain"
	"winmate/pkg/executor"
)

var doCmd = &cobra.Command{
	Use:   "do <action-id> [action-id...]",
	Short: "Execute specific actions by ID",
	Long: `Executes the given actions in order. Dangerous actions prompt for
confirmation unless --yes is passed. A failing action does not stop the
remaining ones.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		var plan []domain.Action
		for _, id := range args {
			action, ok := app.Catalog.Lookup(id)
			if !ok {
				return fmt.Errorf("unknown action %q (try 'winmate list')", id)
			}
			plan = append(plan, action)
		}

		yes, _ := cmd.Flags().GetBool("yes")
		confirm := executor.ConfirmFunc(func(a domain.Action) bool {
			return presentation.Confirm(os.Stdin, os.Stdout, a)
		})
		if yes {
			confirm = executor.ConfirmAll
		}

		records := app.Executor.RunPlan(cmd.Context(), plan, confirm)
		for _, r := range records {
			fmt.Println(presentation.RecordLine(r))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doCmd)
	doCmd.Flags().BoolP("yes", "y", false, "Run dangerous actions without asking")
}
