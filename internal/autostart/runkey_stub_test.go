//go:build !windows

package autostart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"winmate/internal/logging"
	"winmate/pkg/domain"
)

func TestSystemRunKey_UnsupportedPlatform(t *testing.T) {
	m := New(NewSystemRunKey(), WithCommand(testCommand), WithLogger(logging.NewNop()))

	assert.ErrorIs(t, m.Enable(), domain.ErrUnsupportedPlatform)
	assert.ErrorIs(t, m.Disable(), domain.ErrUnsupportedPlatform)
	_, err := m.Enabled()
	assert.ErrorIs(t, err, domain.ErrUnsupportedPlatform)
}
