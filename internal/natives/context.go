// Package natives implements the native bridge (component F): the
// calling convention host-provided functions use, a registry keyed by
// (moduleFQN, selector), and the game/Sound native catalogues
// themselves (spec.md §4.6-§4.7).
package natives

import (
	"github.com/wollok-lang/wollok-go/internal/runtime"
)

// Context is the minimal surface a NativeFunc needs from its host
// interpreter: access to the live Evaluation, the ability to re-enter
// evaluation via sendMessage, and a lookup from well-known module FQN
// to that module's singleton instance — mirroring the teacher's
// builtins.Context pattern (error/IO/conversion helpers passed in
// rather than the built-in reaching into the interpreter directly).
type Context interface {
	// Evaluation returns the live evaluation state: instance table and
	// frame stack.
	Evaluation() *runtime.Evaluation

	// SendMessage drives evaluation of selector on the object named by
	// receiver with the given argument Ids to completion, leaving
	// exactly one Id — the result — on the current frame's operand
	// stack. Natives may call this re-entrantly (spec.md §4.6).
	SendMessage(selector string, receiver runtime.Id, args ...runtime.Id) error

	// Singleton resolves a well-known module FQN (e.g.
	// runtime.FQNGameMirror) to its singleton RuntimeObject.
	Singleton(moduleFQN string) (*runtime.RuntimeObject, error)

	// HasZeroArgMethod reports whether moduleFQN declares a zero-arg
	// method or field named selector. Natives that accept a
	// library-defined "shape" (e.g. addVisual's requirement that its
	// argument resolve a zero-arg position method) consult this rather
	// than inspecting the AST directly, keeping this package free of an
	// ast/validator dependency.
	HasZeroArgMethod(moduleFQN, selector string) bool

	// Now returns the current time in milliseconds, as the `io` module
	// would report it via currentTime.
	Now() int64
}

// Thunk is the trailing `(Evaluation) → void` step of the calling
// convention: it must push exactly one Id onto the current frame's
// operand stack before returning nil, or return a *runtime.NativeFault
// without pushing anything (spec.md §4.6, §7).
type Thunk func(ctx Context) error

// NativeFunc is a host-provided function bound to a receiver's module
// FQN and a selector (spec.md §4.6): `(self, ...args) → Thunk`.
type NativeFunc func(self *runtime.RuntimeObject, args []*runtime.RuntimeObject) Thunk

// pushVoid is the Thunk every void-returning native ends with.
func pushVoid(ctx Context) error {
	ctx.Evaluation().CurrentFrame().Push(ctx.Evaluation().VoidID)
	return nil
}

func pushBool(ctx Context, value bool) error {
	eval := ctx.Evaluation()
	if value {
		eval.CurrentFrame().Push(eval.TrueID)
	} else {
		eval.CurrentFrame().Push(eval.FalseID)
	}
	return nil
}

func pushID(ctx Context, id runtime.Id) error {
	ctx.Evaluation().CurrentFrame().Push(id)
	return nil
}
