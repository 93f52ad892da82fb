// Package privacy applies Windows privacy profiles through the registry.
// Three profiles are exposed: a balanced recommended set, a strict set that
// may disable features, and a restore that undoes this session's changes.
package privacy

import "errors"

// Root identifies a registry hive.
type Root int

const (
	CurrentUser Root = iota
	LocalMachine
)

func (r Root) String() string {
	switch r {
	case CurrentUser:
		return "HKCU"
	case LocalMachine:
		return "HKLM"
	default:
		return "unknown"
	}
}

// ValueType identifies the registry value type to write.
type ValueType int

const (
	DWord ValueType = iota
	String
)

// Setting describes one registry value a profile wants to set.
type Setting struct {
	Root  Root
	Path  string
	Name  string
	Value int
	Type  ValueType
}

// ErrValueNotFound is returned by Registry.Delete when the value is already
// missing.
var ErrValueNotFound = errors.New("registry value not found")

// Registry abstracts the Windows registry so profiles can be tested
// anywhere. Read reports existence instead of failing on missing values.
type Registry interface {
	Read(root Root, path, name string) (value int, exists bool, err error)
	Write(root Root, path, name string, value int, typ ValueType) error
	Delete(root Root, path, name string) error
}
