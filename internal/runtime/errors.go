// Package runtime implements the Id-based runtime object model the
// native bridge operates on (component E): RuntimeObject allocation,
// typed attribute assertions, and the per-Evaluation instance table and
// operand-stack frames the interpreter drives natives through.
package runtime

import "fmt"

// FaultKind distinguishes the three native-runtime error kinds from the
// ordinary Problem diagnostics the validator produces — faults are
// raised through the host's fault channel, never accumulated as data
// (the strict separation the teacher's InterpreterError/ErrorCategory
// split models for compiler vs. runtime errors).
type FaultKind string

const (
	// TypeError: a null argument where non-null was required, an
	// assertIsX kind mismatch, or a duplicate insertion into a
	// uniqueness-bearing collection.
	TypeError FaultKind = "TypeError"
	// RangeError: a numeric argument outside its required range.
	RangeError FaultKind = "RangeError"
	// StateError: an illegal Sound transition, or play() before the
	// game is running.
	StateError FaultKind = "StateError"
)

// NativeFault is the error type every native and runtime-object
// assertion raises. It carries a kind and a message; the interpreter
// decides whether to surface it as a catchable throw or abort evaluation.
type NativeFault struct {
	Kind    FaultKind
	Message string
}

func (f *NativeFault) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func newTypeError(format string, args ...any) *NativeFault {
	return &NativeFault{Kind: TypeError, Message: fmt.Sprintf(format, args...)}
}
