package domain

import "time"

// Outcome classifies the result of one action execution.
type Outcome string

const (
	// OutcomeSuccess means the handler finished and produced a summary.
	OutcomeSuccess Outcome = "success"

	// OutcomeCompleted means the handler finished with no output.
	OutcomeCompleted Outcome = "completed"

	// OutcomeSkipped means the user declined the confirmation prompt.
	// It is not an error.
	OutcomeSkipped Outcome = "skipped"

	// OutcomeFailed means the handler returned an error.
	OutcomeFailed Outcome = "failed"
)

// ExecutionRecord captures the result of running one Action once.
// It is scoped to a single invocation; durability is delegated to the
// journal adapter.
type ExecutionRecord struct {
	ActionID   string        `json:"action_id"`
	ActionName string        `json:"action_name"`
	Outcome    Outcome       `json:"outcome"`
	Summary    string        `json:"summary,omitempty"`
	Err        string        `json:"error,omitempty"`
	Started    time.Time     `json:"started"`
	Duration   time.Duration `json:"duration"`
}

// Message renders the record as one line for a combined plan summary,
// mirroring how surfaces display per-step results.
func (r ExecutionRecord) Message() string {
	switch r.Outcome {
	case OutcomeSuccess:
		return r.ActionName + ": " + r.Summary
	case OutcomeCompleted:
		return r.ActionName + ": completed."
	case OutcomeSkipped:
		return r.ActionName + ": skipped by user."
	case OutcomeFailed:
		return r.ActionName + ": ERROR - " + r.Err
	}
	return r.ActionName + ": " + string(r.Outcome)
}
