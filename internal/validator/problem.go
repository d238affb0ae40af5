package validator

import (
	"fmt"

	"github.com/wollok-lang/wollok-go/pkg/ast"
)

// Level is a diagnostic's severity.
type Level int

const (
	Warning Level = iota
	Error
)

func (l Level) String() string {
	if l == Error {
		return "Error"
	}
	return "Warning"
}

// Problem is a single diagnostic: the stable code of the rule that
// produced it, its severity, and the offending node. Problems are pure
// data — never raised as exceptions (spec.md §7).
type Problem struct {
	Code  string
	Level Level
	Node  ast.Node
}

func (p Problem) String() string {
	return fmt.Sprintf("[%s] %s (node #%d, %s)", p.Level, p.Code, p.Node.NodeID(), p.Node.Kind())
}
