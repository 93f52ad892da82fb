package actions

import (
	"context"
	"fmt"
	"strings"
)

// networkResetCommands are run in order; each result is reported even when a
// previous command failed.
var networkResetCommands = [][]string{
	{"netsh", "winsock", "reset"},
	{"netsh", "int", "ip", "reset"},
	{"ipconfig", "/flushdns"},
}

// ResetNetworkStack resets Winsock and the IP stack and flushes DNS.
func (t *Tools) ResetNetworkStack(ctx context.Context) (string, error) {
	if err := t.ensureWindows(); err != nil {
		return "", err
	}

	var messages []string
	for _, cmd := range networkResetCommands {
		label := strings.Join(cmd, " ")
		result, err := t.run(ctx, cmd[0], cmd[1:]...)
		if err != nil {
			t.logger.Error("network command failed", "command", label, "err", err)
			messages = append(messages, fmt.Sprintf("%s: ERROR - %v", label, err))
			continue
		}
		messages = append(messages, fmt.Sprintf("%s (rc=%d): %s", label, result.Code, result.Output()))
	}

	return "Network reset sequence completed.\n\n" + strings.Join(messages, "\n"), nil
}
