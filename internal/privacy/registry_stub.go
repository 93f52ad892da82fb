//go:build !windows

package privacy

import "winmate/pkg/domain"

// NewSystemRegistry returns a Registry that rejects every operation. The
// privacy actions surface a clear platform error instead of failing on a
// missing syscall.
func NewSystemRegistry() Registry {
	return stubRegistry{}
}

type stubRegistry struct{}

func (stubRegistry) Read(Root, string, string) (int, bool, error) {
	return 0, false, domain.ErrUnsupportedPlatform
}

func (stubRegistry) Write(Root, string, string, int, ValueType) error {
	return domain.ErrUnsupportedPlatform
}

func (stubRegistry) Delete(Root, string, string) error {
	return domain.ErrUnsupportedPlatform
}
