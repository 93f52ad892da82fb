//go:build windows

package privacy

import (
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/sys/windows/registry"
)

// NewSystemRegistry returns a Registry backed by the real Windows registry.
func NewSystemRegistry() Registry {
	return systemRegistry{}
}

type systemRegistry struct{}

func (systemRegistry) hive(root Root) registry.Key {
	if root == LocalMachine {
		return registry.LOCAL_MACHINE
	}
	return registry.CURRENT_USER
}

func (r systemRegistry) Read(root Root, path, name string) (int, bool, error) {
	key, err := registry.OpenKey(r.hive(root), path, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("open %s\\%s: %w", root, path, err)
	}
	defer key.Close()

	value, _, err := key.GetIntegerValue(name)
	if err == nil {
		return int(value), true, nil
	}
	if errors.Is(err, registry.ErrNotExist) {
		return 0, false, nil
	}
	// String values that hold a number still count as readable.
	if s, _, serr := key.GetStringValue(name); serr == nil {
		if n, perr := strconv.Atoi(s); perr == nil {
			return n, true, nil
		}
		return 0, true, nil
	}
	return 0, false, fmt.Errorf("read %s\\%s\\%s: %w", root, path, name, err)
}

func (r systemRegistry) Write(root Root, path, name string, value int, typ ValueType) error {
	key, _, err := registry.CreateKey(r.hive(root), path, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("create %s\\%s: %w", root, path, err)
	}
	defer key.Close()

	if typ == String {
		err = key.SetStringValue(name, strconv.Itoa(value))
	} else {
		err = key.SetDWordValue(name, uint32(value))
	}
	if err != nil {
		return fmt.Errorf("write %s\\%s\\%s = %d: %w", root, path, name, value, err)
	}
	return nil
}

func (r systemRegistry) Delete(root Root, path, name string) error {
	key, err := registry.OpenKey(r.hive(root), path, registry.SET_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return ErrValueNotFound
		}
		return fmt.Errorf("open %s\\%s: %w", root, path, err)
	}
	defer key.Close()

	if err := key.DeleteValue(name); err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return ErrValueNotFound
		}
		return fmt.Errorf("delete %s\\%s\\%s: %w", root, path, name, err)
	}
	return nil
}
