// Package ast defines the Abstract Syntax Tree node types produced by the
// (external) Language parser and consumed by the validator and, at
// runtime, by the native bridge.
//
// The model is a closed, tagged sum type: every node carries a stable,
// dense Id and a Kind discriminant (see NodeKind), and implements the
// shared Node interface. There is no inheritance hierarchy — callers
// switch on Kind (or do a Go type switch) rather than relying on dynamic
// dispatch, which keeps the validator's per-kind dispatch table (see
// internal/validator) exhaustively checkable.
package ast

import "fmt"

// Id is an opaque, dense identifier. AST and runtime-object Id spaces are
// disjoint; a runtime.Id is never mistaken for an ast.Id because the Go
// compiler treats them as distinct named types.
type Id int

// NodeKind discriminates the closed set of AST node variants. Adding a
// variant means adding a NodeKind constant and a branch everywhere this
// package and the validator switch over the set — both switches are
// exhaustiveness-checked by the accompanying tests.
type NodeKind int

const (
	KindEnvironment NodeKind = iota
	KindPackage
	KindImport
	KindClass
	KindSingleton
	KindMixin
	KindField
	KindMethod
	KindConstructor
	KindParameter
	KindBody
	KindVariable
	KindReturn
	KindAssignment
	KindReference
	KindSelf
	KindSuper
	KindNew
	KindLiteral
	KindSend
	KindIf
	KindThrow
	KindTry
	KindCatch
	KindProgram
	KindTest
	KindDescribe

	// numKinds is a sentinel, not a real kind: it lets the validator's
	// dispatch table be sized/validated as "one entry per kind" without
	// hand-maintaining the count in two places.
	numKinds
)

// NumKinds returns the number of NodeKind variants in the closed set.
func NumKinds() int { return int(numKinds) }

var kindNames = [...]string{
	"Environment", "Package", "Import", "Class", "Singleton", "Mixin",
	"Field", "Method", "Constructor", "Parameter", "Body", "Variable",
	"Return", "Assignment", "Reference", "Self", "Super", "New", "Literal",
	"Send", "If", "Throw", "Try", "Catch", "Program", "Test", "Describe",
}

// String renders the NodeKind's name, e.g. for diagnostic formatting.
func (k NodeKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
	return kindNames[k]
}

// Node is the base interface every AST variant implements.
type Node interface {
	// NodeID returns this node's stable, dense identity.
	NodeID() Id

	// Kind returns the node's discriminant.
	Kind() NodeKind

	// Children returns the node's direct children in source order. Leaf
	// nodes return nil. This is the sole primitive the tree-reduction
	// fold (internal/tree) uses to traverse the AST.
	Children() []Node
}

// Sentence is any node that may appear in a Body. Expression nodes are
// themselves Sentences, since the Language allows an expression to stand
// alone as a statement (spec.md's ExpressionStatement-equivalent).
type Sentence interface {
	Node
	sentenceNode()
}

// Expression is any node that produces a value.
type Expression interface {
	Sentence
	expressionNode()
}

// PackageMember is anything that can live directly inside a Package:
// nested packages, classes, singletons, mixins, programs, tests,
// describes, and imports.
type PackageMember interface {
	Node
	packageMemberNode()
}

// ClassMember is one of Field, Method, or Constructor.
type ClassMember interface {
	Node
	classMemberNode()
}
