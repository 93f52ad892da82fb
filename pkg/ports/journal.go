package ports

import "context"

// Action lifecycle statuses recorded in the journal.
const (
	StatusStart   = "START"
	StatusSuccess = "SUCCESS"
	StatusSkip    = "SKIP"
	StatusError   = "ERROR"
)

// Journal records discrete events and structured action-lifecycle entries.
// Formatting and durability belong to the adapter; callers only hand over
// the facts.
type Journal interface {
	// Event records a free-form informational message.
	Event(ctx context.Context, message string) error

	// Action records one action-lifecycle entry. status is one of the
	// Status* constants; detail may be empty.
	Action(ctx context.Context, name, status, detail string) error

	// Recent returns up to limit journal lines, oldest first.
	Recent(ctx context.Context, limit int) ([]string, error)

	// Close releases any underlying resources.
	Close() error
}
