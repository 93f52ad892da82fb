package domain

import "context"

// HandlerFunc performs the side effect behind an Action.
// It returns an optional human-readable summary of what happened.
// An empty summary with a nil error means "completed, nothing to report".
type HandlerFunc func(ctx context.Context) (string, error)

// Standard action groups. Extensions may introduce their own tags.
const (
	GroupCleanup = "cleanup"
	GroupHealth  = "health"
	GroupNetwork = "network"
	GroupTools   = "tools"
	GroupPrivacy = "privacy"
)

// Action represents a single executable maintenance operation.
type Action struct {
	// ID uniquely identifies the action within the catalog. It is the
	// vocabulary the remote planner selects from, so it must be stable.
	ID string

	// Name is the human-friendly display name.
	Name string

	// Description explains what the action does (shown by CLI and surfaces).
	Description string

	// Group is the logical category, e.g. GroupCleanup or GroupPrivacy.
	Group string

	// Dangerous marks actions that a surface must confirm with the user
	// before executing.
	Dangerous bool

	// Handler performs the action. Never nil for a registered action.
	Handler HandlerFunc `json:"-" yaml:"-"`
}

// ActionSummary is the compact, serializable view of an Action used when
// building the remote planner prompt and in API responses.
type ActionSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Group       string `json:"group"`
	Dangerous   bool   `json:"dangerous"`
}

// Summary returns the serializable view of the action.
func (a Action) Summary() ActionSummary {
	return ActionSummary{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		Group:       a.Group,
		Dangerous:   a.Dangerous,
	}
}
