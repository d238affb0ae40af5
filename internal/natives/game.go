package natives

import (
	"github.com/wollok-lang/wollok-go/internal/runtime"
)

// position resolves a visual's position, honoring the "fields take
// precedence over methods" rule from spec.md §4.6: a position field, if
// set, is read directly; otherwise the position selector is sent and
// its result popped off the current frame.
func position(ctx Context, visual *runtime.RuntimeObject) (*runtime.RuntimeObject, error) {
	eval := ctx.Evaluation()
	if id, ok := visual.Get("position"); ok {
		obj, found := eval.Instance(id)
		if !found {
			return nil, &runtime.NativeFault{Kind: runtime.TypeError, Message: "visual's position attribute points to no object"}
		}
		return obj, nil
	}
	if err := ctx.SendMessage("position", visual.Id); err != nil {
		return nil, err
	}
	id := eval.CurrentFrame().Pop()
	obj, found := eval.Instance(id)
	if !found {
		return nil, &runtime.NativeFault{Kind: runtime.TypeError, Message: "position selector returned no object"}
	}
	return obj, nil
}

// SamePosition implements the samePosition comparison predicate
// (spec.md §4.6): two visuals share a position when both their
// position.x and position.y attribute Ids are equal.
func SamePosition(ctx Context, a, b *runtime.RuntimeObject) (bool, error) {
	posA, err := position(ctx, a)
	if err != nil {
		return false, err
	}
	posB, err := position(ctx, b)
	if err != nil {
		return false, err
	}
	xA, okXA := posA.Get("x")
	xB, okXB := posB.Get("x")
	yA, okYA := posA.Get("y")
	yB, okYB := posB.Get("y")
	return okXA && okXB && okYA && okYB && xA == xB && yA == yB, nil
}

func visualsList(eval *runtime.Evaluation, self *runtime.RuntimeObject) (*runtime.RuntimeObject, []runtime.Id) {
	id, ok := self.Get("visuals")
	if !ok {
		list := eval.CreateInstance(runtime.FQNList, []runtime.Id{})
		self.Set("visuals", list.Id)
		return list, nil
	}
	list, _ := eval.Instance(id)
	ids, _ := list.InnerValue.([]runtime.Id)
	return list, ids
}

func containsID(ids []runtime.Id, target runtime.Id) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}

func requireNonNil(ctx Context, obj *runtime.RuntimeObject, what string) error {
	if obj == nil || obj.Id == ctx.Evaluation().NullID {
		return &runtime.NativeFault{Kind: runtime.TypeError, Message: what + " must not be null"}
	}
	return nil
}

// NativeAddVisual implements game#addVisual(visual).
func NativeAddVisual(self *runtime.RuntimeObject, args []*runtime.RuntimeObject) Thunk {
	return func(ctx Context) error {
		visual := args[0]
		if err := requireNonNil(ctx, visual, "visual"); err != nil {
			return err
		}
		if !ctx.HasZeroArgMethod(visual.ModuleFQN, "position") {
			return &runtime.NativeFault{Kind: runtime.TypeError, Message: "visual's module must resolve a zero-arg position method"}
		}
		eval := ctx.Evaluation()
		list, ids := visualsList(eval, self)
		if containsID(ids, visual.Id) {
			return &runtime.NativeFault{Kind: runtime.TypeError, Message: "visual already added to the game"}
		}
		list.InnerValue = append(ids, visual.Id)
		return pushVoid(ctx)
	}
}

// NativeAddVisualIn implements game#addVisualIn(visual, position).
func NativeAddVisualIn(self *runtime.RuntimeObject, args []*runtime.RuntimeObject) Thunk {
	return func(ctx Context) error {
		visual, pos := args[0], args[1]
		if err := requireNonNil(ctx, visual, "visual"); err != nil {
			return err
		}
		if err := requireNonNil(ctx, pos, "position"); err != nil {
			return err
		}
		visual.Set("position", pos.Id)
		return NativeAddVisual(self, args[:1])(ctx)
	}
}

// forwardToModule builds a native that sends selector, with the native's
// own arguments, to the singleton named by moduleFQN (spec.md §4.6:
// addVisualCharacter(In)/whenCollideDo/onCollideDo/onTick/schedule
// forward to gameMirror under their own selector; whenKeyPressedDo and
// removeTickEvent forward to io as addEventHandler/removeTimeHandler).
func forwardToModule(moduleFQN, selector string) NativeFunc {
	return func(_ *runtime.RuntimeObject, args []*runtime.RuntimeObject) Thunk {
		return func(ctx Context) error {
			target, err := ctx.Singleton(moduleFQN)
			if err != nil {
				return err
			}
			argIDs := make([]runtime.Id, len(args))
			for i, a := range args {
				if a != nil {
					argIDs[i] = a.Id
				}
			}
			return ctx.SendMessage(selector, target.Id, argIDs...)
		}
	}
}

// NativeRemoveVisual implements game#removeVisual(visual).
func NativeRemoveVisual(self *runtime.RuntimeObject, args []*runtime.RuntimeObject) Thunk {
	return func(ctx Context) error {
		visual := args[0]
		eval := ctx.Evaluation()
		id, ok := self.Get("visuals")
		if !ok || visual == nil {
			return pushVoid(ctx)
		}
		list, _ := eval.Instance(id)
		ids, _ := list.InnerValue.([]runtime.Id)
		out := ids[:0]
		for _, existing := range ids {
			if existing != visual.Id {
				out = append(out, existing)
			}
		}
		list.InnerValue = out
		return pushVoid(ctx)
	}
}

// NativeAllVisuals implements game#allVisuals().
func NativeAllVisuals(self *runtime.RuntimeObject, _ []*runtime.RuntimeObject) Thunk {
	return func(ctx Context) error {
		eval := ctx.Evaluation()
		_, ids := visualsList(eval, self)
		copied := append([]runtime.Id(nil), ids...)
		list := eval.CreateInstance(runtime.FQNList, copied)
		return pushID(ctx, list.Id)
	}
}

// NativeHasVisual implements game#hasVisual(visual).
func NativeHasVisual(self *runtime.RuntimeObject, args []*runtime.RuntimeObject) Thunk {
	return func(ctx Context) error {
		visual := args[0]
		eval := ctx.Evaluation()
		_, ids := visualsList(eval, self)
		return pushBool(ctx, visual != nil && containsID(ids, visual.Id))
	}
}

// NativeGetObjectsIn implements game#getObjectsIn(position).
func NativeGetObjectsIn(self *runtime.RuntimeObject, args []*runtime.RuntimeObject) Thunk {
	return func(ctx Context) error {
		// target is the Position itself (game#getObjectsIn(position)),
		// not a visual — compared directly against each visual's
		// resolved position.
		target := args[0]
		xt, okxt := target.Get("x")
		yt, okyt := target.Get("y")
		eval := ctx.Evaluation()
		_, ids := visualsList(eval, self)
		var matches []runtime.Id
		for _, id := range ids {
			visual, ok := eval.Instance(id)
			if !ok {
				continue
			}
			pos, err := position(ctx, visual)
			if err != nil {
				return err
			}
			xv, okxv := pos.Get("x")
			yv, okyv := pos.Get("y")
			if okxv && okxt && okyv && okyt && xv == xt && yv == yt {
				matches = append(matches, id)
			}
		}
		list := eval.CreateInstance(runtime.FQNList, matches)
		return pushID(ctx, list.Id)
	}
}

// NativeColliders implements game#colliders(visual): visuals sharing
// visual's position, excluding visual itself.
func NativeColliders(self *runtime.RuntimeObject, args []*runtime.RuntimeObject) Thunk {
	return func(ctx Context) error {
		visual := args[0]
		eval := ctx.Evaluation()
		_, ids := visualsList(eval, self)
		var matches []runtime.Id
		for _, id := range ids {
			if id == visual.Id {
				continue
			}
			other, ok := eval.Instance(id)
			if !ok {
				continue
			}
			same, err := SamePosition(ctx, visual, other)
			if err != nil {
				return err
			}
			if same {
				matches = append(matches, id)
			}
		}
		list := eval.CreateInstance(runtime.FQNList, matches)
		return pushID(ctx, list.Id)
	}
}

// NativeSay implements game#say(visual, message).
func NativeSay(_ *runtime.RuntimeObject, args []*runtime.RuntimeObject) Thunk {
	return func(ctx Context) error {
		visual, message := args[0], args[1]
		if err := requireNonNil(ctx, visual, "visual"); err != nil {
			return err
		}
		visual.Set("message", message.Id)
		io, err := ctx.Singleton(runtime.FQNIO)
		if err != nil {
			return err
		}
		if err := ctx.SendMessage("currentTime", io.Id); err != nil {
			return err
		}
		now, err := runtime.AssertIsNumber(mustPop(ctx))
		if err != nil {
			return err
		}
		deadline := ctx.Evaluation().CreateInstance(runtime.FQNNumber, now+2000)
		visual.Set("messageTime", deadline.Id)
		return pushVoid(ctx)
	}
}

func mustPop(ctx Context) *runtime.RuntimeObject {
	id := ctx.Evaluation().CurrentFrame().Pop()
	obj, _ := ctx.Evaluation().Instance(id)
	return obj
}

// NativeClear implements game#clear().
func NativeClear(self *runtime.RuntimeObject, _ []*runtime.RuntimeObject) Thunk {
	return func(ctx Context) error {
		io, err := ctx.Singleton(runtime.FQNIO)
		if err != nil {
			return err
		}
		if err := ctx.SendMessage("clear", io.Id); err != nil {
			return err
		}
		ctx.Evaluation().CurrentFrame().Pop() // discard io#clear's pushed void
		list := ctx.Evaluation().CreateInstance(runtime.FQNList, []runtime.Id{})
		self.Set("visuals", list.Id)
		return pushVoid(ctx)
	}
}

// propertyAccessor builds a getter/setter native for attr: present when
// the caller supplies a value, it sets and returns void; absent, it
// returns the current value or NULL_ID (spec.md §4.6).
func propertyAccessor(attr string) NativeFunc {
	return func(self *runtime.RuntimeObject, args []*runtime.RuntimeObject) Thunk {
		return func(ctx Context) error {
			if len(args) > 0 {
				self.Set(attr, args[0].Id)
				return pushVoid(ctx)
			}
			if id, ok := self.Get(attr); ok {
				return pushID(ctx, id)
			}
			return pushID(ctx, ctx.Evaluation().NullID)
		}
	}
}

// setterOnly builds a void-returning setter native for attr (used by
// ground/boardGround/doCellSize/errorReporter/hideAttributes/showAttributes).
func setterOnly(attr string) NativeFunc {
	return func(self *runtime.RuntimeObject, args []*runtime.RuntimeObject) Thunk {
		return func(ctx Context) error {
			self.Set(attr, args[0].Id)
			return pushVoid(ctx)
		}
	}
}

// NativeStop implements game#stop().
func NativeStop(self *runtime.RuntimeObject, _ []*runtime.RuntimeObject) Thunk {
	return func(ctx Context) error {
		self.Set("running", ctx.Evaluation().FalseID)
		return pushVoid(ctx)
	}
}

// NativeDoStart implements game#doStart(_isRepl).
func NativeDoStart(self *runtime.RuntimeObject, _ []*runtime.RuntimeObject) Thunk {
	return func(ctx Context) error {
		self.Set("running", ctx.Evaluation().TrueID)
		return pushVoid(ctx)
	}
}

// RegisterGameModule binds the full game-module native catalogue
// (spec.md §4.6) into reg.
func RegisterGameModule(reg *Registry) {
	fqn := runtime.FQNGame
	reg.Register(fqn, "addVisual", NativeAddVisual, "append a visual to the game, rejecting duplicates")
	reg.Register(fqn, "addVisualIn", NativeAddVisualIn, "position a visual and add it to the game")
	reg.Register(fqn, "addVisualCharacter", forwardToModule(runtime.FQNGameMirror, "addVisualCharacter"), "forwarded to gameMirror")
	reg.Register(fqn, "addVisualCharacterIn", forwardToModule(runtime.FQNGameMirror, "addVisualCharacterIn"), "forwarded to gameMirror")
	reg.Register(fqn, "whenCollideDo", forwardToModule(runtime.FQNGameMirror, "whenCollideDo"), "forwarded to gameMirror")
	reg.Register(fqn, "onCollideDo", forwardToModule(runtime.FQNGameMirror, "onCollideDo"), "forwarded to gameMirror")
	reg.Register(fqn, "onTick", forwardToModule(runtime.FQNGameMirror, "onTick"), "forwarded to gameMirror")
	reg.Register(fqn, "schedule", forwardToModule(runtime.FQNGameMirror, "schedule"), "forwarded to gameMirror")
	reg.Register(fqn, "whenKeyPressedDo", forwardToModule(runtime.FQNIO, "addEventHandler"), "forwarded to io#addEventHandler")
	reg.Register(fqn, "removeTickEvent", forwardToModule(runtime.FQNIO, "removeTimeHandler"), "forwarded to io#removeTimeHandler")
	reg.Register(fqn, "removeVisual", NativeRemoveVisual, "remove a visual by Id")
	reg.Register(fqn, "allVisuals", NativeAllVisuals, "a fresh List copy of the game's visuals")
	reg.Register(fqn, "hasVisual", NativeHasVisual, "boolean membership by Id")
	reg.Register(fqn, "getObjectsIn", NativeGetObjectsIn, "visuals positioned at the given position")
	reg.Register(fqn, "colliders", NativeColliders, "other visuals sharing a visual's position")
	reg.Register(fqn, "say", NativeSay, "set a visual's message and its expiry time")
	reg.Register(fqn, "clear", NativeClear, "clear the board and the visuals list")
	reg.Register(fqn, "title", propertyAccessor("title"), "game title getter/setter")
	reg.Register(fqn, "width", propertyAccessor("width"), "game board width getter/setter")
	reg.Register(fqn, "height", propertyAccessor("height"), "game board height getter/setter")
	reg.Register(fqn, "ground", setterOnly("ground"), "ground image setter")
	reg.Register(fqn, "boardGround", setterOnly("boardGround"), "board ground image setter")
	reg.Register(fqn, "doCellSize", setterOnly("cellSize"), "cell size setter")
	reg.Register(fqn, "errorReporter", setterOnly("errorReporter"), "error reporter setter")
	reg.Register(fqn, "hideAttributes", setterOnly("hideAttributes"), "hide-attributes flag setter")
	reg.Register(fqn, "showAttributes", setterOnly("showAttributes"), "show-attributes flag setter")
	reg.Register(fqn, "stop", NativeStop, "set running to false")
	reg.Register(fqn, "doStart", NativeDoStart, "set running to true")
}
