package domain

import "errors"

// ErrActionNotFound is returned when an action id cannot be found in the catalog.
var ErrActionNotFound = errors.New("action not found")

// ErrUnsupportedPlatform is returned by handlers whose side effect only
// exists on Windows.
var ErrUnsupportedPlatform = errors.New("this action is only supported on Windows")

// ErrPlannerUnavailable is returned by remote planner adapters that are not
// configured. The router treats it as "no suggestion", never as a fault.
var ErrPlannerUnavailable = errors.New("remote planner not configured")
