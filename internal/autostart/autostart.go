// Package autostart manages the "start the agent with Windows" toggle via
// the per-user Run registry key.
package autostart

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// RunKeyPath is the per-user autostart key, relative to HKCU.
const RunKeyPath = `Software\Microsoft\Windows\CurrentVersion\Run`

// ValueName is the Run key value owned by this application.
const ValueName = "WinMate"

// RunKey reads and writes this application's value under the Run key.
// The Windows implementation talks to the real registry; tests use a fake.
type RunKey interface {
	// Read returns the stored command. ok is false when the value (or the
	// Run key itself) does not exist.
	Read() (command string, ok bool, err error)

	// Write stores command as a string value, creating the key if needed.
	Write(command string) error

	// Delete removes the value. Deleting an absent value is not an error.
	Delete() error
}

// Manager toggles and inspects the autostart entry.
type Manager struct {
	key     RunKey
	command func() (string, error)
	logger  *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithCommand overrides how the stored launch command is built.
func WithCommand(command func() (string, error)) Option {
	return func(m *Manager) { m.command = command }
}

// New creates a Manager over the given Run key access.
func New(key RunKey, opts ...Option) *Manager {
	m := &Manager{
		key:     key,
		command: launchCommand,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// launchCommand builds the command stored in the Run key: the current
// executable, quoted, starting the agent.
func launchCommand() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable path: %w", err)
	}
	return `"` + exe + `" agent`, nil
}

// Enable creates or updates the Run key value so the agent starts at login.
func (m *Manager) Enable() error {
	cmd, err := m.command()
	if err != nil {
		return err
	}

	m.logger.Info("enabling autostart", "command", cmd)
	if err := m.key.Write(cmd); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	return nil
}

// Disable removes the Run key value. Disabling when it was never enabled
// succeeds.
func (m *Manager) Disable() error {
	m.logger.Info("disabling autostart")
	if err := m.key.Delete(); err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	return nil
}

// Enabled reports whether the Run key value exists and still launches the
// agent. A value overwritten by something else does not count.
func (m *Manager) Enabled() (bool, error) {
	cmd, ok, err := m.key.Read()
	if err != nil {
		return false, fmt.Errorf("read autostart entry: %w", err)
	}
	if !ok {
		return false, nil
	}
	return strings.Contains(cmd, " agent"), nil
}
