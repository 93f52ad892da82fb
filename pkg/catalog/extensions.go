package catalog

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"winmate/pkg/domain"
)

// Registrar is the narrow handle passed to extension loading. It exposes
// exactly one operation so extensions cannot reach the rest of the catalog.
type Registrar interface {
	Register(action domain.Action) domain.Action
}

// extensionFile is the decoded shape of one extension definition file.
type extensionFile struct {
	Name    string            `mapstructure:"name"`
	Actions []extensionAction `mapstructure:"actions"`
}

// extensionAction declares one command-backed action.
type extensionAction struct {
	ID          string        `mapstructure:"id"`
	Name        string        `mapstructure:"name"`
	Description string        `mapstructure:"description"`
	Group       string        `mapstructure:"group"`
	Dangerous   bool          `mapstructure:"dangerous"`
	Command     string        `mapstructure:"command"`
	Args        []string      `mapstructure:"args"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// LoadExtensions discovers extension definition files (*.yaml, *.yml) in dir
// and registers the actions they declare. Each file is attempted in
// isolation: a file that fails to parse or register is logged and skipped,
// and never prevents other extensions or built-ins from loading.
//
// A missing directory is not an error; it simply means no extensions.
// Returns the number of actions registered.
func LoadExtensions(dir string, reg Registrar, logger *slog.Logger) int {
	if logger == nil {
		logger = slog.Default()
	}
	if dir == "" {
		return 0
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("extensions directory not found", "dir", dir)
		} else {
			logger.Warn("failed to read extensions directory", "dir", dir, "err", err)
		}
		return 0
	}

	registered := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, "_") {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		path := filepath.Join(dir, name)
		n, err := loadExtensionFile(path, reg)
		if err != nil {
			logger.Warn("skipping extension", "file", name, "err", err)
			continue
		}
		logger.Info("extension registered", "file", name, "actions", n)
		registered += n
	}
	return registered
}

func loadExtensionFile(path string, reg Registrar) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read extension file: %w", err)
	}

	// Parse into a loose map first, then decode with mapstructure so that
	// frontmatter-style sloppiness (quoted booleans, "5m" durations) is
	// tolerated.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return 0, fmt.Errorf("parse extension yaml: %w", err)
	}

	var spec extensionFile
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &spec,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return 0, fmt.Errorf("build extension decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return 0, fmt.Errorf("decode extension spec: %w", err)
	}

	if len(spec.Actions) == 0 {
		return 0, fmt.Errorf("extension declares no actions")
	}

	// Validate the whole file before registering anything, so a partially
	// broken extension never half-registers.
	for _, decl := range spec.Actions {
		if decl.ID == "" || decl.Command == "" {
			return 0, fmt.Errorf("action %q missing id or command", decl.Name)
		}
	}

	count := 0
	for _, decl := range spec.Actions {
		group := decl.Group
		if group == "" {
			group = domain.GroupTools
		}
		reg.Register(domain.Action{
			ID:          decl.ID,
			Name:        decl.Name,
			Description: decl.Description,
			Group:       group,
			Dangerous:   decl.Dangerous,
			Handler:     commandHandler(decl.Command, decl.Args, decl.Timeout),
		})
		count++
	}
	return count, nil
}

// commandHandler builds a handler that shells out to the declared command
// and reports its trimmed output.
func commandHandler(command string, args []string, timeout time.Duration) domain.HandlerFunc {
	return func(ctx context.Context) (string, error) {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		cmd := exec.CommandContext(ctx, command, args...)
		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			detail := strings.TrimSpace(stderr.String())
			if detail == "" {
				detail = strings.TrimSpace(stdout.String())
			}
			if detail != "" {
				return "", fmt.Errorf("%s failed: %w: %s", command, err, detail)
			}
			return "", fmt.Errorf("%s failed: %w", command, err)
		}
		return strings.TrimSpace(stdout.String()), nil
	}
}
