// Package catalog manages the process-wide table of registered actions.
//
// The catalog is populated once at startup (built-ins first, then
// extensions) and is read-only afterwards; Register exists for the
// registration phase and for tests.
package catalog

import (
	"log/slog"
	"sort"
	"strings"
	"sync"

	"winmate/pkg/domain"
)

// Catalog manages the available actions.
type Catalog struct {
	mu      sync.RWMutex
	actions map[string]domain.Action
	logger  *slog.Logger
}

// New creates a new empty catalog.
func New(logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{
		actions: make(map[string]domain.Action),
		logger:  logger,
	}
}

// Register adds an action to the catalog. It never fails: if an action with
// the same id exists, it is overwritten and a warning is logged.
func (c *Catalog) Register(action domain.Action) domain.Action {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.actions[action.ID]; exists {
		c.logger.Warn("overwriting existing action", "id", action.ID)
	}
	c.actions[action.ID] = action
	c.logger.Debug("registered action", "id", action.ID, "name", action.Name)
	return action
}

// Lookup returns the action with the given id.
func (c *Catalog) Lookup(id string) (domain.Action, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	action, ok := c.actions[id]
	return action, ok
}

// ByGroup returns the actions belonging to the given group,
// sorted by name ascending (case-insensitive).
func (c *Catalog) ByGroup(group string) []domain.Action {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var actions []domain.Action
	for _, a := range c.actions {
		if a.Group == group {
			actions = append(actions, a)
		}
	}
	sort.Slice(actions, func(i, j int) bool {
		return strings.ToLower(actions[i].Name) < strings.ToLower(actions[j].Name)
	})
	return actions
}

// All returns every registered action, sorted by (group asc, name asc
// case-insensitive).
func (c *Catalog) All() []domain.Action {
	c.mu.RLock()
	defer c.mu.RUnlock()

	actions := make([]domain.Action, 0, len(c.actions))
	for _, a := range c.actions {
		actions = append(actions, a)
	}
	sort.Slice(actions, func(i, j int) bool {
		if actions[i].Group != actions[j].Group {
			return actions[i].Group < actions[j].Group
		}
		return strings.ToLower(actions[i].Name) < strings.ToLower(actions[j].Name)
	})
	return actions
}

// Summaries returns the serializable view of All, in the same order.
// This is the catalog summary handed to the remote planner prompt.
func (c *Catalog) Summaries() []domain.ActionSummary {
	all := c.All()
	summaries := make([]domain.ActionSummary, len(all))
	for i, a := range all {
		summaries[i] = a.Summary()
	}
	return summaries
}

// Len returns the number of registered actions.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.actions)
}
