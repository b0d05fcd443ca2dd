package browser

import (
	"fmt"
	"strings"
)

// ElementNotResolvedError is returned when every candidate selector in a
// resolve chain failed to match a usable element. It carries the full list
// so the log shows exactly what was tried.
type ElementNotResolvedError struct {
	Target     string
	Candidates []Candidate
}

func (e *ElementNotResolvedError) Error() string {
	descs := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		descs[i] = c.Description
	}
	return fmt.Sprintf("could not resolve %s: tried %d candidates (%s)",
		e.Target, len(e.Candidates), strings.Join(descs, "; "))
}

// FlowError marks a failure in a named step of a multi-step flow. Callers
// use Step to report exactly where the flow aborted; later steps never run.
type FlowError struct {
	Flow string
	Step string
	Err  error
}

func (e *FlowError) Error() string {
	return fmt.Sprintf("%s failed at step %q: %v", e.Flow, e.Step, e.Err)
}

func (e *FlowError) Unwrap() error {
	return e.Err
}

// NewFlowError wraps a step failure with its flow and step names.
func NewFlowError(flow, step string, err error) *FlowError {
	return &FlowError{Flow: flow, Step: step, Err: err}
}
