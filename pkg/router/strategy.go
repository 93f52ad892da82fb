package router

import (
	"context"

	"winmate/pkg/domain"
)

// Strategy proposes action ids for a natural-language request. It is an
// optional capability: when Configured reports false the router skips it
// entirely and goes straight to the keyword rules.
//
// Propose may fail structurally (network, parse, quota); the router treats
// every failure as "no suggestion" and never lets it propagate.
type Strategy interface {
	// Configured reports whether the backing inference service has the
	// credentials it needs. Absence of credentials is not an error.
	Configured() bool

	// Propose returns candidate action ids for the request, selected from
	// the supplied catalog summary. Ids outside the summary are allowed in
	// the raw response; the router validates and drops them.
	Propose(ctx context.Context, request string, actions []domain.ActionSummary) ([]string, error)
}
