package ports

import "context"

// Notifier delivers user-facing alerts (health warnings, action results)
// outside the request/response flow. The tray surface shows message boxes;
// the CLI agent logs them.
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, title, message string) error

// Notify implements Notifier.
func (f NotifierFunc) Notify(ctx context.Context, title, message string) error {
	return f(ctx, title, message)
}
