package natives

import (
	"testing"

	"github.com/wollok-lang/wollok-go/internal/runtime"
)

// fakeContext is a minimal Context for exercising natives without a
// real interpreter: sendMessage is stubbed by calling the requested
// native directly against the receiver, the way the interpreter would
// dispatch a message send to a host-bound method.
type fakeContext struct {
	eval           *runtime.Evaluation
	singletons     map[string]*runtime.RuntimeObject
	zeroArgMethods map[string]bool
	now            int64
	registry       *Registry
}

func newFakeContext() *fakeContext {
	eval := runtime.NewEvaluation()
	return &fakeContext{
		eval:           eval,
		singletons:     make(map[string]*runtime.RuntimeObject),
		zeroArgMethods: make(map[string]bool),
		registry:       NewRegistry(),
	}
}

func (f *fakeContext) Evaluation() *runtime.Evaluation { return f.eval }

func (f *fakeContext) Singleton(moduleFQN string) (*runtime.RuntimeObject, error) {
	obj, ok := f.singletons[moduleFQN]
	if !ok {
		obj = f.eval.CreateInstance(moduleFQN, nil)
		f.singletons[moduleFQN] = obj
	}
	return obj, nil
}

func (f *fakeContext) HasZeroArgMethod(moduleFQN, selector string) bool {
	return f.zeroArgMethods[moduleFQN+"#"+selector]
}

func (f *fakeContext) Now() int64 { return f.now }

func (f *fakeContext) SendMessage(selector string, receiver runtime.Id, args ...runtime.Id) error {
	obj, _ := f.eval.Instance(receiver)
	if selector == "currentTime" {
		now := f.eval.CreateInstance(runtime.FQNNumber, float64(f.now))
		f.eval.CurrentFrame().Push(now.Id)
		return nil
	}
	if selector == "clear" {
		return pushVoid(f)
	}
	fn, ok := f.registry.Lookup(obj.ModuleFQN, selector)
	if !ok {
		return pushVoid(f)
	}
	argObjs := make([]*runtime.RuntimeObject, len(args))
	for i, id := range args {
		o, _ := f.eval.Instance(id)
		argObjs[i] = o
	}
	return fn(obj, argObjs)(f)
}

func newVisual(ctx *fakeContext, x, y float64) *runtime.RuntimeObject {
	visual := ctx.eval.CreateInstance("aGame.Visual", nil)
	posX := ctx.eval.CreateInstance(runtime.FQNNumber, x)
	posY := ctx.eval.CreateInstance(runtime.FQNNumber, y)
	position := ctx.eval.CreateInstance("wollok.game.Position", nil)
	position.Set("x", posX.Id)
	position.Set("y", posY.Id)
	visual.Set("position", position.Id)
	ctx.zeroArgMethods["aGame.Visual#position"] = true
	return visual
}

func TestNativeAddVisualAndHasVisual(t *testing.T) {
	ctx := newFakeContext()
	game := ctx.eval.CreateInstance(runtime.FQNGame, nil)
	visual := newVisual(ctx, 1, 2)

	if err := NativeAddVisual(game, []*runtime.RuntimeObject{visual})(ctx); err != nil {
		t.Fatalf("addVisual: %v", err)
	}
	if ctx.eval.CurrentFrame().Pop() != ctx.eval.VoidID {
		t.Fatalf("addVisual should push VOID_ID")
	}

	if err := NativeHasVisual(game, []*runtime.RuntimeObject{visual})(ctx); err != nil {
		t.Fatalf("hasVisual: %v", err)
	}
	if got := ctx.eval.CurrentFrame().Pop(); got != ctx.eval.TrueID {
		t.Fatalf("hasVisual should push TRUE_ID after adding the visual")
	}
}

func TestNativeAddVisualRejectsDuplicate(t *testing.T) {
	ctx := newFakeContext()
	game := ctx.eval.CreateInstance(runtime.FQNGame, nil)
	visual := newVisual(ctx, 0, 0)

	if err := NativeAddVisual(game, []*runtime.RuntimeObject{visual})(ctx); err != nil {
		t.Fatalf("addVisual: %v", err)
	}
	ctx.eval.CurrentFrame().Pop()

	err := NativeAddVisual(game, []*runtime.RuntimeObject{visual})(ctx)
	if err == nil {
		t.Fatalf("adding the same visual twice should fail")
	}
	fault, ok := err.(*runtime.NativeFault)
	if !ok || fault.Kind != runtime.TypeError {
		t.Fatalf("expected a TypeError NativeFault, got %v", err)
	}
}

func TestNativeAddVisualRequiresPositionMethod(t *testing.T) {
	ctx := newFakeContext()
	game := ctx.eval.CreateInstance(runtime.FQNGame, nil)
	visual := ctx.eval.CreateInstance("aGame.NotAVisual", nil)

	err := NativeAddVisual(game, []*runtime.RuntimeObject{visual})(ctx)
	if err == nil {
		t.Fatalf("addVisual should require a zero-arg position method")
	}
}

func TestNativeRemoveVisual(t *testing.T) {
	ctx := newFakeContext()
	game := ctx.eval.CreateInstance(runtime.FQNGame, nil)
	visual := newVisual(ctx, 0, 0)
	NativeAddVisual(game, []*runtime.RuntimeObject{visual})(ctx)
	ctx.eval.CurrentFrame().Pop()

	if err := NativeRemoveVisual(game, []*runtime.RuntimeObject{visual})(ctx); err != nil {
		t.Fatalf("removeVisual: %v", err)
	}
	ctx.eval.CurrentFrame().Pop()

	NativeHasVisual(game, []*runtime.RuntimeObject{visual})(ctx)
	if got := ctx.eval.CurrentFrame().Pop(); got != ctx.eval.FalseID {
		t.Fatalf("hasVisual should push FALSE_ID after removal")
	}
}

func TestSamePosition(t *testing.T) {
	ctx := newFakeContext()
	a := newVisual(ctx, 1, 1)
	b := newVisual(ctx, 1, 1)
	c := newVisual(ctx, 2, 1)

	// SamePosition compares the x/y attribute Ids, not the numbers they
	// hold: b reuses a's x and y objects, c reuses only a's y object.
	posA, _ := ctx.eval.Resolve(a, "position")
	xA, _ := posA.Get("x")
	yA, _ := posA.Get("y")
	posB, _ := ctx.eval.Resolve(b, "position")
	posB.Set("x", xA)
	posB.Set("y", yA)
	posC, _ := ctx.eval.Resolve(c, "position")
	posC.Set("y", yA)

	same, err := SamePosition(ctx, a, b)
	if err != nil {
		t.Fatalf("SamePosition: %v", err)
	}
	if !same {
		t.Fatalf("visuals at the same x/y should share a position")
	}

	same, err = SamePosition(ctx, a, c)
	if err != nil {
		t.Fatalf("SamePosition: %v", err)
	}
	if same {
		t.Fatalf("visuals at different x should not share a position")
	}
}

func TestNativeTitlePropertyAccessor(t *testing.T) {
	ctx := newFakeContext()
	game := ctx.eval.CreateInstance(runtime.FQNGame, nil)

	// getter before any set returns NULL_ID
	NativeTitleGetter := propertyAccessor("title")
	if err := NativeTitleGetter(game, nil)(ctx); err != nil {
		t.Fatalf("title getter: %v", err)
	}
	if got := ctx.eval.CurrentFrame().Pop(); got != ctx.eval.NullID {
		t.Fatalf("unset title should read as NULL_ID")
	}

	title := ctx.eval.CreateInstance(runtime.FQNString, "My Game")
	if err := NativeTitleGetter(game, []*runtime.RuntimeObject{title})(ctx); err != nil {
		t.Fatalf("title setter: %v", err)
	}
	if got := ctx.eval.CurrentFrame().Pop(); got != ctx.eval.VoidID {
		t.Fatalf("title setter should push VOID_ID")
	}

	if err := NativeTitleGetter(game, nil)(ctx); err != nil {
		t.Fatalf("title getter: %v", err)
	}
	if got := ctx.eval.CurrentFrame().Pop(); got != title.Id {
		t.Fatalf("title getter should return the value set earlier")
	}
}

func TestSoundStateMachine(t *testing.T) {
	ctx := newFakeContext()
	game := ctx.eval.CreateInstance(runtime.FQNGame, nil)
	ctx.singletons[runtime.FQNGame] = game
	game.Set("running", ctx.eval.TrueID)

	sound := ctx.eval.CreateInstance("wollok.game.Sound", nil)

	if err := NativePlayed(sound, nil)(ctx); err != nil {
		t.Fatalf("played: %v", err)
	}
	if got := ctx.eval.CurrentFrame().Pop(); got != ctx.eval.FalseID {
		t.Fatalf("an Idle sound should report played() == false")
	}

	if err := NativePlay(sound, nil)(ctx); err != nil {
		t.Fatalf("play: %v", err)
	}
	ctx.eval.CurrentFrame().Pop()

	if err := NativePlayed(sound, nil)(ctx); err != nil {
		t.Fatalf("played: %v", err)
	}
	if got := ctx.eval.CurrentFrame().Pop(); got != ctx.eval.TrueID {
		t.Fatalf("a Played sound should report played() == true")
	}

	if err := NativePause(sound, nil)(ctx); err != nil {
		t.Fatalf("pause: %v", err)
	}
	ctx.eval.CurrentFrame().Pop()

	if err := NativePlay(sound, nil)(ctx); err == nil {
		t.Fatalf("play() from Paused should fail")
	}

	if err := NativeResume(sound, nil)(ctx); err != nil {
		t.Fatalf("resume: %v", err)
	}
	ctx.eval.CurrentFrame().Pop()

	if err := NativeStopSound(sound, nil)(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
	ctx.eval.CurrentFrame().Pop()

	if err := NativePlay(sound, nil)(ctx); err != nil {
		t.Fatalf("play() from Stopped should succeed: %v", err)
	}
}

func TestSoundPlayRequiresGameRunning(t *testing.T) {
	ctx := newFakeContext()
	game := ctx.eval.CreateInstance(runtime.FQNGame, nil)
	ctx.singletons[runtime.FQNGame] = game
	game.Set("running", ctx.eval.FalseID)

	sound := ctx.eval.CreateInstance("wollok.game.Sound", nil)
	err := NativePlay(sound, nil)(ctx)
	if err == nil {
		t.Fatalf("play() should fail when the game is not running")
	}
	fault, ok := err.(*runtime.NativeFault)
	if !ok || fault.Kind != runtime.StateError {
		t.Fatalf("expected a StateError NativeFault, got %v", err)
	}
}

func TestNativeVolumeRangeValidation(t *testing.T) {
	ctx := newFakeContext()
	sound := ctx.eval.CreateInstance("wollok.game.Sound", nil)

	tooLoud := ctx.eval.CreateInstance(runtime.FQNNumber, 1.5)
	err := NativeVolume(sound, []*runtime.RuntimeObject{tooLoud})(ctx)
	if err == nil {
		t.Fatalf("volume(1.5) should fail")
	}
	fault, ok := err.(*runtime.NativeFault)
	if !ok || fault.Kind != runtime.RangeError {
		t.Fatalf("expected a RangeError NativeFault, got %v", err)
	}

	ok1 := ctx.eval.CreateInstance(runtime.FQNNumber, 0.5)
	if err := NativeVolume(sound, []*runtime.RuntimeObject{ok1})(ctx); err != nil {
		t.Fatalf("volume(0.5): %v", err)
	}
}

func TestRegistryListIsSorted(t *testing.T) {
	reg := NewRegistry()
	RegisterAll(reg)
	entries := reg.List()
	if len(entries) == 0 {
		t.Fatalf("RegisterAll should populate the registry")
	}
	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		if prev.ModuleFQN > cur.ModuleFQN || (prev.ModuleFQN == cur.ModuleFQN && prev.Selector > cur.Selector) {
			t.Fatalf("List() is not sorted at index %d: %v before %v", i, prev, cur)
		}
	}
}
