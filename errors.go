package confect

import (
	"errors"
	"strings"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrNilTarget indicates Populate was called without a usable target.
	ErrNilTarget = errors.New("nil bind target")

	// ErrStructural indicates a type's binding metadata is itself invalid,
	// independent of any property map.
	ErrStructural = errors.New("invalid binding metadata")

	// ErrInstantiation indicates the target type could not be instantiated.
	ErrInstantiation = errors.New("instantiation failed")

	// ErrConflict indicates two property keys disagree on the value of one
	// attribute.
	ErrConflict = errors.New("conflicting property values")

	// ErrCoercion indicates a property value could not be converted to the
	// attribute's declared type.
	ErrCoercion = errors.New("coercion failed")

	// ErrApplication indicates a setter rejected an already-coerced value.
	ErrApplication = errors.New("setter invocation failed")
)

// BindError aggregates every problem recorded during one bind pass or one
// metadata derivation. It is only returned when at least one error-severity
// problem exists; warnings ride along for context but never produce a
// BindError on their own.
type BindError struct {
	// Problems holds every recorded entry, warnings included, in the order
	// they were recorded.
	Problems []Problem
}

func (e *BindError) Error() string {
	var sb strings.Builder
	sb.WriteString("binding failed:")
	for _, p := range e.Problems {
		sb.WriteString("\n  ")
		sb.WriteString(string(p.Severity))
		sb.WriteString(": ")
		sb.WriteString(p.Message)
	}
	return sb.String()
}

// Unwrap returns the primary cause: the first error-severity problem's
// cause, so errors.Is can classify an aggregated failure.
func (e *BindError) Unwrap() error {
	for _, p := range e.Problems {
		if p.Severity == SeverityError && p.Cause != nil {
			return p.Cause
		}
	}
	return nil
}

// Errors returns only the error-severity problems.
func (e *BindError) Errors() []Problem {
	var out []Problem
	for _, p := range e.Problems {
		if p.Severity == SeverityError {
			out = append(out, p)
		}
	}
	return out
}
