package harness

import "github.com/roach88/ordrec/internal/record"

// TraceEvent records one executed step.
type TraceEvent struct {
	Seq   int    `json:"seq"`
	Op    string `json:"op"`
	Key   string `json:"key,omitempty"` // key or dot path
	Index *int   `json:"index,omitempty"`
	Range string `json:"range,omitempty"`

	// Result is the step's plain value. Keys holds its key order when the
	// result is a record, since plain maps do not keep one.
	Result any      `json:"result,omitempty"`
	Keys   []string `json:"keys,omitempty"`

	// Error is the error code of a failed step.
	Error string `json:"error,omitempty"`
}

// Result is the outcome of a scenario run.
type Result struct {
	RunID string `json:"run_id"`

	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	Trace  []TraceEvent `json:"trace"`
	Errors []string     `json:"errors,omitempty"`

	// Final is the record after the last step.
	Final *record.Record `json:"-"`
}

// NewResult creates a passing result with an empty trace.
func NewResult(runID string) *Result {
	return &Result{
		RunID:  runID,
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Failed returns the trace events of steps that returned an error.
func (r *Result) Failed() []TraceEvent {
	var out []TraceEvent
	for _, ev := range r.Trace {
		if ev.Error != "" {
			out = append(out, ev)
		}
	}
	return out
}
