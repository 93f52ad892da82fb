package ports

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunJournalContract runs a suite of tests to verify that a Journal
// implementation adheres to the defined interface contract.
func RunJournalContract(t *testing.T, journal Journal) {
	ctx := context.Background()

	t.Run("Event and Recent", func(t *testing.T) {
		require.NoError(t, journal.Event(ctx, "first event"))
		require.NoError(t, journal.Event(ctx, "second event"))

		lines, err := journal.Recent(ctx, 10)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(lines), 2)

		// Oldest first: "first event" must appear before "second event".
		firstIdx, secondIdx := -1, -1
		for i, line := range lines {
			if firstIdx == -1 && strings.Contains(line, "first event") {
				firstIdx = i
			}
			if strings.Contains(line, "second event") {
				secondIdx = i
			}
		}
		assert.NotEqual(t, -1, firstIdx, "first event should be recorded")
		assert.NotEqual(t, -1, secondIdx, "second event should be recorded")
		assert.Less(t, firstIdx, secondIdx, "entries should be ordered oldest first")
	})

	t.Run("Action entry", func(t *testing.T) {
		require.NoError(t, journal.Action(ctx, "Clean Temp Files", StatusSuccess, ""))
		require.NoError(t, journal.Action(ctx, "Reset Network Stack", StatusError, "netsh failed"))

		lines, err := journal.Recent(ctx, 10)
		require.NoError(t, err)

		var sawSuccess, sawError bool
		for _, line := range lines {
			if strings.Contains(line, StatusSuccess) && strings.Contains(line, "Clean Temp Files") {
				sawSuccess = true
			}
			if strings.Contains(line, StatusError) && strings.Contains(line, "netsh failed") {
				sawError = true
			}
		}
		assert.True(t, sawSuccess, "SUCCESS entry should be recorded with action name")
		assert.True(t, sawError, "ERROR entry should carry its detail")
	})

	t.Run("Recent respects limit", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			require.NoError(t, journal.Event(ctx, "filler"))
		}
		lines, err := journal.Recent(ctx, 3)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(lines), 3)
	})
}
