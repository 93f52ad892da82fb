// Package presentation formats CLI output: markdown rendering for action
// listings and summaries, colored status lines and the interactive
// confirmation prompt for dangerous actions.
package presentation

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"winmate/pkg/domain"
)

// NewMarkdownRenderer returns a function that renders markdown for the
// terminal, detecting light or dark background automatically.
func NewMarkdownRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// ActionListMarkdown renders the catalog as grouped markdown.
func ActionListMarkdown(summaries []domain.ActionSummary) string {
	groups := make(map[string][]domain.ActionSummary)
	var order []string
	for _, s := range summaries {
		if _, seen := groups[s.Group]; !seen {
			order = append(order, s.Group)
		}
		groups[s.Group] = append(groups[s.Group], s)
	}
	sort.Strings(order)

	var b strings.Builder
	b.WriteString("# Available Actions\n")
	for _, group := range order {
		fmt.Fprintf(&b, "\n## %s\n\n", group)
		for _, s := range groups[group] {
			marker := ""
			if s.Dangerous {
				marker = " ⚠"
			}
			fmt.Fprintf(&b, "- `%s`%s: %s\n", s.ID, marker, s.Description)
		}
	}
	return b.String()
}

// RecordLine renders one execution record with an outcome color.
func RecordLine(r domain.ExecutionRecord) string {
	p := termenv.ColorProfile()
	msg := termenv.String(r.Message())

	switch r.Outcome {
	case domain.OutcomeFailed:
		msg = msg.Foreground(p.Color("#f87171"))
	case domain.OutcomeSkipped:
		msg = msg.Foreground(p.Color("#fbbf24"))
	default:
		msg = msg.Foreground(p.Color("#4ade80"))
	}
	return msg.String()
}

// Confirm asks the user to approve a dangerous action. Anything other than
// "y" or "yes" declines.
func Confirm(in io.Reader, out io.Writer, action domain.Action) bool {
	p := termenv.ColorProfile()
	warn := termenv.String(fmt.Sprintf("%q may modify your system.", action.Name)).
		Foreground(p.Color("#fbbf24"))
	fmt.Fprintf(out, "%s Run it? [y/N]: ", warn)

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}
