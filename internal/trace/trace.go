// Package trace records the labeled snapshots produced while a block is
// encrypted and exposes them, in order, for replay.
package trace

import (
	"github.com/hashicorp/go-hclog"
)

// Trace is an ordered, read-only sequence of steps.
type Trace struct {
	steps []Step
}

// Len returns the number of steps.
func (t *Trace) Len() int {
	return len(t.steps)
}

// At returns step i.
func (t *Trace) At(i int) Step {
	return t.steps[i]
}

// Last returns the final step, or nil for an empty trace.
func (t *Trace) Last() Step {
	if len(t.steps) == 0 {
		return nil
	}
	return t.steps[len(t.steps)-1]
}

// Steps returns a copy of the step list.
func (t *Trace) Steps() []Step {
	return append([]Step(nil), t.steps...)
}

// Count returns how many steps have kind k.
func (t *Trace) Count(k Kind) int {
	n := 0
	for _, s := range t.steps {
		if s.Kind() == k {
			n++
		}
	}
	return n
}

// Recorder accumulates steps for a single run.
type Recorder struct {
	steps  []Step
	logger hclog.Logger
}

// NewRecorder returns an empty recorder. A nil logger discards output.
func NewRecorder(logger hclog.Logger) *Recorder {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Recorder{logger: logger}
}

// Record appends s. Steps hold their states by value, so later changes to
// the caller's working state never reach a recorded step.
func (r *Recorder) Record(s Step) {
	r.steps = append(r.steps, s)
	if r.logger.IsTrace() {
		r.logger.Trace("recorded step",
			"index", len(r.steps)-1,
			"kind", s.Kind().String(),
			"label", s.Label(),
			"state", s.State().Hex(),
		)
	}
}

// Len returns the number of steps recorded so far.
func (r *Recorder) Len() int {
	return len(r.steps)
}

// Finish hands the recorded steps over to a Trace and resets the recorder.
func (r *Recorder) Finish() *Trace {
	t := &Trace{steps: r.steps}
	r.steps = nil
	return t
}
