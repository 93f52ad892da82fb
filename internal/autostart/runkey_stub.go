//go:build !windows

package autostart

import "winmate/pkg/domain"

// NewSystemRunKey returns a RunKey that rejects every operation, so the CLI
// surfaces a clear platform error instead of failing on a missing syscall.
func NewSystemRunKey() RunKey {
	return stubRunKey{}
}

type stubRunKey struct{}

func (stubRunKey) Read() (string, bool, error) {
	return "", false, domain.ErrUnsupportedPlatform
}

func (stubRunKey) Write(string) error {
	return domain.ErrUnsupportedPlatform
}

func (stubRunKey) Delete() error {
	return domain.ErrUnsupportedPlatform
}
