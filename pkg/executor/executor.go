// Package executor runs catalog actions and produces execution records.
//
// Confirmation of dangerous actions is a surface concern: callers pass a
// confirm callback to RunPlan, and the executor records a SKIP when the
// user declines. A failing step never aborts the rest of a plan.
package executor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"winmate/pkg/domain"
	"winmate/pkg/ports"
)

// ConfirmFunc decides whether a dangerous action may run. Surfaces implement
// it with a prompt; non-interactive callers pass executor.ConfirmAll or
// executor.DenyAll.
type ConfirmFunc func(action domain.Action) bool

// ConfirmAll approves every action without asking.
func ConfirmAll(domain.Action) bool { return true }

// DenyAll declines every dangerous action.
func DenyAll(domain.Action) bool { return false }

// Metrics receives execution observations. The prometheus adapter implements
// it; a nil Metrics disables instrumentation.
type Metrics interface {
	ObserveExecution(actionID string, outcome domain.Outcome, duration time.Duration)
}

// Executor invokes action handlers and journals their lifecycle.
type Executor struct {
	journal ports.Journal
	logger  *slog.Logger
	metrics Metrics
}

// Option configures an Executor.
type Option func(*Executor)

// WithJournal sets the journal that receives action-lifecycle entries.
func WithJournal(j ports.Journal) Option {
	return func(e *Executor) { e.journal = j }
}

// WithLogger sets the executor logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Executor) { e.logger = l }
}

// WithMetrics sets the execution metrics sink.
func WithMetrics(m Metrics) Option {
	return func(e *Executor) { e.metrics = m }
}

// New creates an Executor.
func New(opts ...Option) *Executor {
	e := &Executor{logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs one action's handler and returns its record. The handler's
// failure is captured, never propagated; a panic inside a handler is
// recovered and recorded as a failure.
func (e *Executor) Execute(ctx context.Context, action domain.Action) domain.ExecutionRecord {
	record := domain.ExecutionRecord{
		ActionID:   action.ID,
		ActionName: action.Name,
		Started:    time.Now(),
	}

	e.journalAction(ctx, action.Name, ports.StatusStart, "")

	summary, err := e.invoke(ctx, action)
	record.Duration = time.Since(record.Started)

	switch {
	case err != nil:
		record.Outcome = domain.OutcomeFailed
		record.Err = err.Error()
		e.journalAction(ctx, action.Name, ports.StatusError, err.Error())
		e.logger.Error("action failed", "id", action.ID, "err", err)
	case summary != "":
		record.Outcome = domain.OutcomeSuccess
		record.Summary = summary
		e.journalAction(ctx, action.Name, ports.StatusSuccess, "")
	default:
		record.Outcome = domain.OutcomeCompleted
		e.journalAction(ctx, action.Name, ports.StatusSuccess, "")
	}

	e.observe(record)
	return record
}

// RunPlan executes the plan strictly in order, one action at a time.
// Dangerous actions are gated by confirm; a declined action is recorded as
// skipped. A failure in one step is recorded but does not abort the
// remaining steps.
func (e *Executor) RunPlan(ctx context.Context, plan []domain.Action, confirm ConfirmFunc) []domain.ExecutionRecord {
	if confirm == nil {
		confirm = ConfirmAll
	}

	records := make([]domain.ExecutionRecord, 0, len(plan))
	for _, action := range plan {
		if action.Dangerous && !confirm(action) {
			record := domain.ExecutionRecord{
				ActionID:   action.ID,
				ActionName: action.Name,
				Outcome:    domain.OutcomeSkipped,
				Started:    time.Now(),
			}
			e.journalAction(ctx, action.Name, ports.StatusSkip, "user declined dangerous action")
			e.observe(record)
			records = append(records, record)
			continue
		}
		records = append(records, e.Execute(ctx, action))
	}
	return records
}

// Summarize aggregates the records of one plan into a combined human-readable
// summary, one line per step, failures inline.
func Summarize(records []domain.ExecutionRecord) string {
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = r.Message()
	}
	return strings.Join(lines, "\n")
}

func (e *Executor) invoke(ctx context.Context, action domain.Action) (summary string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	if action.Handler == nil {
		return "", fmt.Errorf("action %q has no handler", action.ID)
	}
	return action.Handler(ctx)
}

func (e *Executor) journalAction(ctx context.Context, name, status, detail string) {
	if e.journal == nil {
		return
	}
	if err := e.journal.Action(ctx, name, status, detail); err != nil {
		e.logger.Warn("journal write failed", "err", err)
	}
}

func (e *Executor) observe(record domain.ExecutionRecord) {
	if e.metrics != nil {
		e.metrics.ObserveExecution(record.ActionID, record.Outcome, record.Duration)
	}
}
