//go:build windows

package autostart

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

// NewSystemRunKey returns a RunKey backed by the real Windows registry.
func NewSystemRunKey() RunKey {
	return systemRunKey{}
}

type systemRunKey struct{}

func (systemRunKey) Read() (string, bool, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, RunKeyPath, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("open HKCU\\%s: %w", RunKeyPath, err)
	}
	defer key.Close()

	value, _, err := key.GetStringValue(ValueName)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", ValueName, err)
	}
	return value, true, nil
}

func (systemRunKey) Write(command string) error {
	key, _, err := registry.CreateKey(registry.CURRENT_USER, RunKeyPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("create HKCU\\%s: %w", RunKeyPath, err)
	}
	defer key.Close()

	if err := key.SetStringValue(ValueName, command); err != nil {
		return fmt.Errorf("write %s: %w", ValueName, err)
	}
	return nil
}

func (systemRunKey) Delete() error {
	key, err := registry.OpenKey(registry.CURRENT_USER, RunKeyPath, registry.SET_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open HKCU\\%s: %w", RunKeyPath, err)
	}
	defer key.Close()

	if err := key.DeleteValue(ValueName); err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("delete %s: %w", ValueName, err)
	}
	return nil
}
