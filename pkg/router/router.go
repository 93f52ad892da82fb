// Package router maps free-text user requests to an ordered plan of catalog
// actions. It tries the optional remote strategy first and falls back to a
// deterministic keyword rule chain; Resolve itself never fails.
package router

import (
	"context"
	"log/slog"
	"strings"

	"winmate/pkg/catalog"
	"winmate/pkg/domain"
)

// Router resolves one free-text request into an ordered, deduplicated list
// of known actions.
type Router struct {
	catalog *catalog.Catalog
	remote  Strategy
	logger  *slog.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithRemote sets the optional remote planning strategy.
func WithRemote(s Strategy) Option {
	return func(r *Router) { r.remote = s }
}

// WithLogger sets the router logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) { r.logger = l }
}

// New creates a Router over the given catalog.
func New(cat *catalog.Catalog, opts ...Option) *Router {
	r := &Router{
		catalog: cat,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve maps one request to an ordered plan of actions. It may return an
// empty plan; it never returns an error. Absence of a match is not a fault.
func (r *Router) Resolve(ctx context.Context, request string) []domain.Action {
	request = strings.TrimSpace(request)
	if request == "" {
		return nil
	}

	ids := r.remoteIDs(ctx, request)
	source := "remote"
	if len(ids) == 0 {
		ids = keywordActionIDs(request)
		source = "keyword"
	}

	plan := r.toPlan(ids)
	if len(plan) > 0 {
		planIDs := make([]string, len(plan))
		for i, a := range plan {
			planIDs[i] = a.ID
		}
		r.logger.Info("request resolved", "source", source, "plan", planIDs)
	} else {
		r.logger.Info("request resolved to no actions")
	}
	return plan
}

// remoteIDs asks the remote strategy for candidates. Every failure mode
// (unconfigured, network error, unparseable response) degrades to nil so
// the keyword rules get their turn.
func (r *Router) remoteIDs(ctx context.Context, request string) []string {
	if r.remote == nil || !r.remote.Configured() {
		return nil
	}

	ids, err := r.remote.Propose(ctx, request, r.catalog.Summaries())
	if err != nil {
		r.logger.Warn("remote planner failed, falling back to keyword rules", "err", err)
		return nil
	}
	return ids
}

// toPlan deduplicates ids preserving first occurrence, drops ids unknown to
// the catalog, and maps the survivors to actions in order.
func (r *Router) toPlan(ids []string) []domain.Action {
	seen := make(map[string]struct{}, len(ids))
	var plan []domain.Action
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if action, ok := r.catalog.Lookup(id); ok {
			plan = append(plan, action)
		}
	}
	return plan
}
