// Package actions implements the built-in maintenance actions: cleanup,
// health scans, network repair and Windows tool launchers. Everything that
// touches the OS goes through injectable runner functions so the aggregate
// and error paths stay testable on any platform.
package actions

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"winmate/pkg/domain"
)

// CommandResult carries the outcome of one external command.
type CommandResult struct {
	Code   int
	Stdout string
	Stderr string
}

// Output returns stdout if present, otherwise stderr.
func (r CommandResult) Output() string {
	if s := strings.TrimSpace(r.Stdout); s != "" {
		return s
	}
	return strings.TrimSpace(r.Stderr)
}

// CommandRunner runs a command to completion and captures its output.
// A non-zero exit code is reported in the result, not as an error; the
// error path is reserved for commands that fail to start.
type CommandRunner func(ctx context.Context, name string, args ...string) (CommandResult, error)

// Launcher starts a detached program without waiting for it to exit.
type Launcher func(ctx context.Context, name string, args ...string) error

func execRunner(ctx context.Context, name string, args ...string) (CommandResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.Code = exitErr.ExitCode()
		return result, nil
	}
	if err != nil {
		return result, err
	}
	return result, nil
}

func execLauncher(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// Detach: the launched tool outlives us.
	return cmd.Process.Release()
}

// Tools bundles the built-in action implementations with their OS hooks.
type Tools struct {
	run       CommandRunner
	launch    Launcher
	getenv    func(string) string
	isWindows bool
	logger    *slog.Logger
}

// ToolsOption configures a Tools instance, mainly for tests.
type ToolsOption func(*Tools)

// WithRunner replaces the command runner.
func WithRunner(run CommandRunner) ToolsOption {
	return func(t *Tools) { t.run = run }
}

// WithLauncher replaces the detached-program launcher.
func WithLauncher(launch Launcher) ToolsOption {
	return func(t *Tools) { t.launch = launch }
}

// WithEnv replaces environment lookups.
func WithEnv(getenv func(string) string) ToolsOption {
	return func(t *Tools) { t.getenv = getenv }
}

// WithPlatform overrides the Windows platform check.
func WithPlatform(isWindows bool) ToolsOption {
	return func(t *Tools) { t.isWindows = isWindows }
}

// WithToolsLogger sets the logger.
func WithToolsLogger(logger *slog.Logger) ToolsOption {
	return func(t *Tools) { t.logger = logger }
}

// NewTools creates a Tools wired to the real OS.
func NewTools(opts ...ToolsOption) *Tools {
	t := &Tools{
		run:       execRunner,
		launch:    execLauncher,
		getenv:    os.Getenv,
		isWindows: runtime.GOOS == "windows",
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tools) ensureWindows() error {
	if !t.isWindows {
		return domain.ErrUnsupportedPlatform
	}
	return nil
}

func (t *Tools) windir() string {
	if w := t.getenv("WINDIR"); w != "" {
		return w
	}
	return `C:\Windows`
}

