package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"winmate"
	"winmate/internal/presentation"
	"winmate/pkg/domain"
	"winmate/pkg/executor"
)

var runCmd = &cobra.Command{
	Use:   "run [request...]",
	Short: "Resolve a natural language request and run the matching actions",
	Long: `With arguments, resolves and executes one request:

    winmate run my pc is slow

Without arguments, starts an interactive session that keeps accepting
requests until 'exit' or 'quit'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		yes, _ := cmd.Flags().GetBool("yes")

		if len(args) > 0 {
			handleRequest(cmd.Context(), app, strings.Join(args, " "), yes)
			return nil
		}

		fmt.Printf("winmate v%s. Describe what you need, or 'help' / 'exit'.\n", winmate.Version)
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())
			switch strings.ToLower(line) {
			case "":
				continue
			case "exit", "quit":
				fmt.Println("Bye!")
				return nil
			case "help":
				printHelp(app)
				continue
			}
			handleRequest(cmd.Context(), app, line, yes)
		}
	},
}

func handleRequest(ctx context.Context, app *winmate.App, request string, yes bool) {
	plan := app.Router.Resolve(ctx, request)
	if len(plan) == 0 {
		fmt.Println("I couldn't match that to any known action yet. Try rephrasing or be more specific.")
		return
	}

	fmt.Println("Plan:")
	for _, a := range plan {
		marker := ""
		if a.Dangerous {
			marker = " (requires confirmation)"
		}
		fmt.Printf("  - %s%s\n", a.Name, marker)
	}

	confirm := executor.ConfirmFunc(func(a domain.Action) bool {
		return presentation.Confirm(os.Stdin, os.Stdout, a)
	})
	if yes {
		confirm = executor.ConfirmAll
	}

	records := app.Executor.RunPlan(ctx, plan, confirm)
	for _, r := range records {
		fmt.Println(presentation.RecordLine(r))
	}
}

func printHelp(app *winmate.App) {
	md := presentation.ActionListMarkdown(app.Catalog.Summaries())
	render := presentation.NewMarkdownRenderer()
	out, err := render(md)
	if err != nil {
		out = md
	}
	fmt.Print(out)
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolP("yes", "y", false, "Run dangerous actions without asking")
}
