package executor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winmate/internal/adapters/journal"
	"winmate/internal/logging"
	"winmate/pkg/domain"
	"winmate/pkg/ports"
)

func TestExecute_SummaryAndCompleted(t *testing.T) {
	e := New(WithLogger(logging.NewNop()))

	withOutput := domain.Action{
		ID: "cleanup_temp", Name: "Clean Temp Files",
		Handler: func(ctx context.Context) (string, error) {
			return "Removed 42 files.", nil
		},
	}
	record := e.Execute(context.Background(), withOutput)
	assert.Equal(t, domain.OutcomeSuccess, record.Outcome)
	assert.Equal(t, "Removed 42 files.", record.Summary)

	silent := domain.Action{
		ID: "tools_task_manager", Name: "Open Task Manager",
		Handler: func(ctx context.Context) (string, error) { return "", nil },
	}
	record = e.Execute(context.Background(), silent)
	assert.Equal(t, domain.OutcomeCompleted, record.Outcome)
	assert.Equal(t, "Open Task Manager: completed.", record.Message())
}

func TestExecute_FailureIsCapturedNotPropagated(t *testing.T) {
	e := New(WithLogger(logging.NewNop()))

	failing := domain.Action{
		ID: "network_reset", Name: "Reset Network Stack",
		Handler: func(ctx context.Context) (string, error) {
			return "", errors.New("netsh exited with code 1")
		},
	}
	record := e.Execute(context.Background(), failing)
	assert.Equal(t, domain.OutcomeFailed, record.Outcome)
	assert.Contains(t, record.Err, "netsh exited with code 1")
}

func TestExecute_HandlerPanicBecomesFailure(t *testing.T) {
	e := New(WithLogger(logging.NewNop()))

	record := e.Execute(context.Background(), domain.Action{
		ID: "boom", Name: "Boom",
		Handler: func(ctx context.Context) (string, error) { panic("unexpected") },
	})
	assert.Equal(t, domain.OutcomeFailed, record.Outcome)
	assert.Contains(t, record.Err, "handler panicked")
}

func TestRunPlan_ContinuesPastFailure(t *testing.T) {
	e := New(WithLogger(logging.NewNop()))

	var ran []string
	step := func(id string, fail bool) domain.Action {
		return domain.Action{
			ID: id, Name: id,
			Handler: func(ctx context.Context) (string, error) {
				ran = append(ran, id)
				if fail {
					return "", errors.New(id + " blew up")
				}
				return id + " ok", nil
			},
		}
	}

	plan := []domain.Action{
		step("step1", false),
		step("step2", true),
		step("step3", false),
		step("step4", false),
	}
	records := e.RunPlan(context.Background(), plan, nil)

	require.Len(t, records, 4)
	assert.Equal(t, []string{"step1", "step2", "step3", "step4"}, ran,
		"a failing step must not abort the remaining steps")

	combined := Summarize(records)
	assert.Contains(t, combined, "step2 blew up")
	assert.Contains(t, combined, "step1 ok")
	assert.Contains(t, combined, "step3 ok")
	assert.Contains(t, combined, "step4 ok")
}

func TestRunPlan_DangerousGatedByConfirm(t *testing.T) {
	j := journal.NewMemory()
	e := New(WithLogger(logging.NewNop()), WithJournal(j))

	executed := false
	plan := []domain.Action{
		{
			ID: "cleanup_recommended", Name: "Recommended Cleanup", Dangerous: true,
			Handler: func(ctx context.Context) (string, error) {
				executed = true
				return "done", nil
			},
		},
	}

	records := e.RunPlan(context.Background(), plan, DenyAll)
	require.Len(t, records, 1)
	assert.Equal(t, domain.OutcomeSkipped, records[0].Outcome)
	assert.False(t, executed, "declined dangerous action must not run")

	lines, err := j.Recent(context.Background(), 10)
	require.NoError(t, err)
	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, ports.StatusSkip)
}

func TestRunPlan_JournalsLifecycle(t *testing.T) {
	j := journal.NewMemory()
	e := New(WithLogger(logging.NewNop()), WithJournal(j))

	e.RunPlan(context.Background(), []domain.Action{
		{ID: "health_sfc", Name: "System File Checker (SFC)", Dangerous: true,
			Handler: func(ctx context.Context) (string, error) { return "scan ok", nil }},
		{ID: "health_dism", Name: "DISM Health Scan", Dangerous: true,
			Handler: func(ctx context.Context) (string, error) { return "", errors.New("dism failed") }},
	}, ConfirmAll)

	lines, err := j.Recent(context.Background(), 20)
	require.NoError(t, err)
	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, ports.StatusStart)
	assert.Contains(t, joined, ports.StatusSuccess)
	assert.Contains(t, joined, ports.StatusError)
	assert.Contains(t, joined, "dism failed")
}
