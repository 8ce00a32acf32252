package confect

import (
	"context"
	"fmt"
)

// Severity classifies a recorded problem.
// Warnings never fail a bind; a single error does.
type Severity string

const (
	// SeverityWarning marks a non-fatal problem, such as use of a
	// deprecated property key.
	SeverityWarning Severity = "warning"

	// SeverityError marks a fatal problem; one or more errors cause the
	// bind to fail with a *BindError.
	SeverityError Severity = "error"
)

// Problem is one diagnostic produced while deriving metadata or binding
// properties to an instance.
type Problem struct {
	Severity Severity
	Message  string
	Cause    error
}

// Monitor receives every problem as it is recorded, independent of whether
// the bind ultimately succeeds. Implementations must be safe for concurrent
// use when the owning binder is shared across goroutines.
type Monitor interface {
	Problem(ctx context.Context, p Problem)
}

// NopMonitor discards all problems.
type NopMonitor struct{}

func (NopMonitor) Problem(context.Context, Problem) {}

// SignalMonitor forwards every problem as a capitan signal. It is the
// default monitor for binders created with New.
type SignalMonitor struct{}

func (SignalMonitor) Problem(ctx context.Context, p Problem) {
	emitProblemRecorded(ctx, p)
}

// Problems accumulates warnings and errors for one metadata derivation or
// one bind pass, forwarding each entry to the monitor as it is added.
// Problems is not safe for concurrent use; each bind owns its own.
type Problems struct {
	monitor Monitor
	entries []Problem
}

// NewProblems creates an empty accumulator. A nil monitor is replaced with
// NopMonitor.
func NewProblems(monitor Monitor) *Problems {
	if monitor == nil {
		monitor = NopMonitor{}
	}
	return &Problems{monitor: monitor}
}

// Record appends one problem and forwards it to the monitor.
func (p *Problems) Record(ctx context.Context, severity Severity, cause error, format string, args ...any) {
	prob := Problem{
		Severity: severity,
		Message:  fmt.Sprintf(format, args...),
		Cause:    cause,
	}
	p.entries = append(p.entries, prob)
	p.monitor.Problem(ctx, prob)
}

// Warnf records a warning-severity problem.
func (p *Problems) Warnf(ctx context.Context, format string, args ...any) {
	p.Record(ctx, SeverityWarning, nil, format, args...)
}

// Errorf records an error-severity problem with an optional cause.
func (p *Problems) Errorf(ctx context.Context, cause error, format string, args ...any) {
	p.Record(ctx, SeverityError, cause, format, args...)
}

// HasErrors reports whether at least one error-severity entry exists.
func (p *Problems) HasErrors() bool {
	for _, prob := range p.entries {
		if prob.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Entries returns a copy of the recorded problems in order.
func (p *Problems) Entries() []Problem {
	out := make([]Problem, len(p.entries))
	copy(out, p.entries)
	return out
}

// Err returns the aggregated *BindError when at least one error-severity
// entry exists, nil otherwise.
func (p *Problems) Err() error {
	if !p.HasErrors() {
		return nil
	}
	return &BindError{Problems: p.Entries()}
}
