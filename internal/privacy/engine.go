package privacy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// recommendedSettings is the balanced profile: advertising ID, tailored
// experiences, app launch tracking, background apps and location.
var recommendedSettings = []Setting{
	{CurrentUser, `Software\Microsoft\Windows\CurrentVersion\AdvertisingInfo`, "Enabled", 0, DWord},
	{CurrentUser, `Software\Microsoft\Windows\CurrentVersion\Privacy`, "TailoredExperiencesWithDiagnosticDataEnabled", 0, DWord},
	{CurrentUser, `Software\Microsoft\Windows\CurrentVersion\Explorer\Advanced`, "Start_TrackProgs", 0, DWord},
	{CurrentUser, `Software\Microsoft\Windows\CurrentVersion\BackgroundAccessApplications`, "GlobalUserDisabled", 1, DWord},
	{LocalMachine, `SYSTEM\CurrentControlSet\Services\lfsvc\Service\Configuration`, "Status", 0, DWord},
}

// strictExtras extends the recommended profile with telemetry, error
// reporting, camera and microphone access. Some changes require a reboot.
var strictExtras = []Setting{
	{LocalMachine, `SOFTWARE\Policies\Microsoft\Windows\DataCollection`, "AllowTelemetry", 0, DWord},
	{LocalMachine, `SOFTWARE\Microsoft\Windows\Windows Error Reporting`, "Disabled", 1, DWord},
	{LocalMachine, `SOFTWARE\Microsoft\Windows\CurrentVersion\CapabilityAccessManager\ConsentStore\webcam`, "Value", 0, String},
	{LocalMachine, `SOFTWARE\Microsoft\Windows\CurrentVersion\CapabilityAccessManager\ConsentStore\microphone`, "Value", 0, String},
}

func strictSettings() []Setting {
	return append(append([]Setting{}, recommendedSettings...), strictExtras...)
}

type backupKey struct {
	root Root
	path string
	name string
}

type backupEntry struct {
	key     backupKey
	value   int
	existed bool
}

// Engine applies privacy profiles and keeps an in-session backup of the
// original values so RestoreDefaults can undo them. Only the first write to
// a value records a backup, so re-applying a profile never clobbers the
// true original.
type Engine struct {
	mu     sync.Mutex
	reg    Registry
	backed map[backupKey]struct{}
	backup []backupEntry
	logger *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) { e.logger = logger }
}

// NewEngine creates an Engine over the given registry.
func NewEngine(reg Registry, opts ...EngineOption) *Engine {
	e := &Engine{
		reg:    reg,
		backed: make(map[backupKey]struct{}),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// backupLocked records the original value of a setting once per session.
// Callers must hold e.mu.
func (e *Engine) backupLocked(s Setting) {
	key := backupKey{s.Root, s.Path, s.Name}
	if _, done := e.backed[key]; done {
		return
	}

	value, exists, err := e.reg.Read(s.Root, s.Path, s.Name)
	if err != nil {
		e.logger.Debug("failed to read registry value for backup",
			"path", s.Path, "name", s.Name, "err", err)
	}
	e.backed[key] = struct{}{}
	e.backup = append(e.backup, backupEntry{key: key, value: value, existed: exists})
	e.logger.Debug("backed up registry value",
		"path", s.Path, "name", s.Name, "value", value, "existed", exists)
}

// applyLocked applies one setting and returns a human-readable summary.
// Callers must hold e.mu.
func (e *Engine) applyLocked(s Setting) (string, error) {
	e.backupLocked(s)

	before, beforeExists, _ := e.reg.Read(s.Root, s.Path, s.Name)
	if err := e.reg.Write(s.Root, s.Path, s.Name, s.Value, s.Type); err != nil {
		return "", err
	}
	after, _, _ := e.reg.Read(s.Root, s.Path, s.Name)

	beforeText := "unset"
	if beforeExists {
		beforeText = fmt.Sprintf("%d", before)
	}
	msg := fmt.Sprintf(`%s\%s: %s -> %d`, s.Path, s.Name, beforeText, after)
	e.logger.Info("applied privacy setting", "setting", msg)
	return msg, nil
}

func (e *Engine) applyProfile(settings []Setting) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	var messages []string
	for _, s := range settings {
		msg, err := e.applyLocked(s)
		if err != nil {
			e.logger.Error("failed to apply privacy setting",
				"path", s.Path, "name", s.Name, "err", err)
			messages = append(messages, fmt.Sprintf(`ERROR: %s\%s: %v`, s.Path, s.Name, err))
			continue
		}
		messages = append(messages, msg)
	}
	return strings.Join(messages, "\n")
}

// ApplyRecommended applies the balanced privacy profile.
func (e *Engine) ApplyRecommended(_ context.Context) (string, error) {
	e.logger.Info("applying recommended privacy profile")
	return "Recommended privacy profile applied.\n\n" + e.applyProfile(recommendedSettings), nil
}

// ApplyStrict applies the strict privacy profile.
func (e *Engine) ApplyStrict(_ context.Context) (string, error) {
	e.logger.Info("applying strict privacy profile")
	return "Strict privacy profile applied.\n" +
		"(Some changes require reboot to take effect.)\n\n" + e.applyProfile(strictSettings()), nil
}

// RestoreDefaults restores the original values recorded during this
// session. Values that did not exist before are deleted.
func (e *Engine) RestoreDefaults(_ context.Context) (string, error) {
	e.logger.Info("restoring privacy defaults")

	e.mu.Lock()
	defer e.mu.Unlock()

	var messages []string
	for _, entry := range e.backup {
		k := entry.key
		if !entry.existed {
			err := e.reg.Delete(k.root, k.path, k.name)
			switch {
			case err == nil:
				messages = append(messages, fmt.Sprintf(`%s\%s: deleted (default)`, k.path, k.name))
			case errors.Is(err, ErrValueNotFound):
				messages = append(messages, fmt.Sprintf(`%s\%s: already missing`, k.path, k.name))
			default:
				e.logger.Error("failed to restore registry value", "path", k.path, "name", k.name, "err", err)
				messages = append(messages, fmt.Sprintf(`ERROR restoring %s\%s: %v`, k.path, k.name, err))
			}
			continue
		}

		if err := e.reg.Write(k.root, k.path, k.name, entry.value, DWord); err != nil {
			e.logger.Error("failed to restore registry value", "path", k.path, "name", k.name, "err", err)
			messages = append(messages, fmt.Sprintf(`ERROR restoring %s\%s: %v`, k.path, k.name, err))
			continue
		}
		messages = append(messages, fmt.Sprintf(`%s\%s: restored to %d`, k.path, k.name, entry.value))
	}

	if len(messages) == 0 {
		return "No previous privacy settings to restore.", nil
	}
	return "Privacy defaults restored.\n\n" + strings.Join(messages, "\n"), nil
}
