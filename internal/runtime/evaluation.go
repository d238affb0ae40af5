package runtime

import "fmt"

// Frame owns one call's operand stack of Ids. "Return a value" means
// push onto the current frame; "return void" means push VOID_ID
// (spec.md §3).
type Frame struct {
	operands []Id
}

func newFrame() *Frame { return &Frame{} }

// Push appends id to the top of the operand stack.
func (f *Frame) Push(id Id) { f.operands = append(f.operands, id) }

// Pop removes and returns the top of the operand stack. It panics on an
// empty stack: an unbalanced pop is a bridge contract violation, not a
// recoverable runtime condition (spec.md §5, "leave the operand stack
// balanced").
func (f *Frame) Pop() Id {
	n := len(f.operands)
	if n == 0 {
		panic("runtime: Pop on an empty operand stack")
	}
	id := f.operands[n-1]
	f.operands = f.operands[:n-1]
	return id
}

// Len reports the number of Ids currently on the operand stack.
func (f *Frame) Len() int { return len(f.operands) }

// Evaluation owns the instance table and the frame stack for one
// interpreter run (spec.md §3 "Evaluation state"). It is not safe for
// concurrent use: exactly one outstanding message send is permitted at
// a time per Evaluation (spec.md §5).
type Evaluation struct {
	instances map[Id]*RuntimeObject
	frames    []*Frame
	nextID    Id

	TrueID  Id
	FalseID Id
	NullID  Id
	VoidID  Id
}

// NewEvaluation creates an Evaluation with its four well-known sentinel
// objects already registered (spec.md §3: "the sole instances of their
// respective types"), plus one initial Frame.
func NewEvaluation() *Evaluation {
	e := &Evaluation{
		instances: make(map[Id]*RuntimeObject),
	}
	e.TrueID = e.register(newRuntimeObject(e.allocID(), FQNBoolean, nil))
	e.FalseID = e.register(newRuntimeObject(e.allocID(), FQNBoolean, nil))
	e.NullID = e.register(newRuntimeObject(e.allocID(), "wollok.lang.Object", nil))
	e.VoidID = e.register(newRuntimeObject(e.allocID(), "wollok.lang.Object", nil))
	e.frames = []*Frame{newFrame()}
	return e
}

func (e *Evaluation) allocID() Id {
	e.nextID++
	return e.nextID
}

func (e *Evaluation) register(o *RuntimeObject) Id {
	e.instances[o.Id] = o
	return o.Id
}

// CreateInstance allocates and registers a fresh RuntimeObject for
// moduleFQN with the given innerValue (nil when the module carries none).
func (e *Evaluation) CreateInstance(moduleFQN string, innerValue any) *RuntimeObject {
	o := newRuntimeObject(e.allocID(), moduleFQN, innerValue)
	e.register(o)
	return o
}

// Instance looks up a registered RuntimeObject by Id in O(1).
func (e *Evaluation) Instance(id Id) (*RuntimeObject, bool) {
	o, ok := e.instances[id]
	return o, ok
}

// Resolve follows one attribute hop: it resolves obj.attr to the
// RuntimeObject it points to, or (nil, false) if the attribute is
// unset or dangling.
func (e *Evaluation) Resolve(obj *RuntimeObject, attr string) (*RuntimeObject, bool) {
	if obj == nil {
		return nil, false
	}
	id, ok := obj.Get(attr)
	if !ok {
		return nil, false
	}
	return e.Instance(id)
}

// CurrentFrame returns the topmost Frame.
func (e *Evaluation) CurrentFrame() *Frame {
	return e.frames[len(e.frames)-1]
}

// PushFrame pushes a fresh Frame, for a native or the interpreter to
// evaluate a nested message send against.
func (e *Evaluation) PushFrame() *Frame {
	f := newFrame()
	e.frames = append(e.frames, f)
	return f
}

// PopFrame pops and discards the topmost Frame. It panics if called
// with only the root Frame remaining.
func (e *Evaluation) PopFrame() {
	if len(e.frames) <= 1 {
		panic("runtime: PopFrame called with no nested frame to pop")
	}
	e.frames = e.frames[:len(e.frames)-1]
}

func (e *Evaluation) String() string {
	return fmt.Sprintf("Evaluation(%d instances, %d frames)", len(e.instances), len(e.frames))
}
