package natives

import "github.com/wollok-lang/wollok-go/internal/runtime"

// soundStatus reads the Sound's status attribute, returning "" for the
// Idle state (spec.md §4.7: "Idle (no status)").
func soundStatus(ctx Context, self *runtime.RuntimeObject) (string, error) {
	id, ok := self.Get("status")
	if !ok {
		return "", nil
	}
	obj, found := ctx.Evaluation().Instance(id)
	if !found {
		return "", nil
	}
	return runtime.AssertIsString(obj)
}

func setSoundStatus(ctx Context, self *runtime.RuntimeObject, status string) {
	str := ctx.Evaluation().CreateInstance(runtime.FQNString, status)
	self.Set("status", str.Id)
}

func visualsListNamed(eval *runtime.Evaluation, owner *runtime.RuntimeObject, attr string) *runtime.RuntimeObject {
	id, ok := owner.Get(attr)
	if !ok {
		list := eval.CreateInstance(runtime.FQNList, []runtime.Id{})
		owner.Set(attr, list.Id)
		return list
	}
	list, _ := eval.Instance(id)
	return list
}

// NativePlay implements Sound#play(): Idle/Stopped -> Played.
func NativePlay(self *runtime.RuntimeObject, _ []*runtime.RuntimeObject) Thunk {
	return func(ctx Context) error {
		status, err := soundStatus(ctx, self)
		if err != nil {
			return err
		}
		if status != "" && status != "stopped" {
			return &runtime.NativeFault{Kind: runtime.StateError, Message: "play() requires the sound to be Idle or Stopped, was " + status}
		}
		game, err := ctx.Singleton(runtime.FQNGame)
		if err != nil {
			return err
		}
		if running, ok := game.Get("running"); !ok || running != ctx.Evaluation().TrueID {
			return &runtime.NativeFault{Kind: runtime.StateError, Message: "play() requires the game to be running"}
		}
		list := visualsListNamed(ctx.Evaluation(), game, "sounds")
		ids, _ := list.InnerValue.([]runtime.Id)
		if !containsID(ids, self.Id) {
			list.InnerValue = append(ids, self.Id)
		}
		setSoundStatus(ctx, self, "played")
		return pushVoid(ctx)
	}
}

// NativeStopSound implements Sound#stop(): Played -> Stopped.
func NativeStopSound(self *runtime.RuntimeObject, _ []*runtime.RuntimeObject) Thunk {
	return func(ctx Context) error {
		status, err := soundStatus(ctx, self)
		if err != nil {
			return err
		}
		if status != "played" {
			return &runtime.NativeFault{Kind: runtime.StateError, Message: "stop() requires the sound to be Played, was " + orIdle(status)}
		}
		game, err := ctx.Singleton(runtime.FQNGame)
		if err != nil {
			return err
		}
		list := visualsListNamed(ctx.Evaluation(), game, "sounds")
		ids, _ := list.InnerValue.([]runtime.Id)
		out := ids[:0]
		for _, id := range ids {
			if id != self.Id {
				out = append(out, id)
			}
		}
		list.InnerValue = out
		setSoundStatus(ctx, self, "stopped")
		return pushVoid(ctx)
	}
}

// NativePause implements Sound#pause(): Played -> Paused.
func NativePause(self *runtime.RuntimeObject, _ []*runtime.RuntimeObject) Thunk {
	return func(ctx Context) error {
		status, err := soundStatus(ctx, self)
		if err != nil {
			return err
		}
		if status != "played" {
			return &runtime.NativeFault{Kind: runtime.StateError, Message: "pause() requires the sound to be Played, was " + orIdle(status)}
		}
		setSoundStatus(ctx, self, "paused")
		return pushVoid(ctx)
	}
}

// NativeResume implements Sound#resume(): Paused -> Played.
func NativeResume(self *runtime.RuntimeObject, _ []*runtime.RuntimeObject) Thunk {
	return func(ctx Context) error {
		status, err := soundStatus(ctx, self)
		if err != nil {
			return err
		}
		if status != "paused" {
			return &runtime.NativeFault{Kind: runtime.StateError, Message: "resume() requires the sound to be Paused, was " + orIdle(status)}
		}
		setSoundStatus(ctx, self, "played")
		return pushVoid(ctx)
	}
}

func orIdle(status string) string {
	if status == "" {
		return "Idle"
	}
	return status
}

// NativePlayed implements Sound#played().
func NativePlayed(self *runtime.RuntimeObject, _ []*runtime.RuntimeObject) Thunk {
	return func(ctx Context) error {
		status, err := soundStatus(ctx, self)
		if err != nil {
			return err
		}
		return pushBool(ctx, status == "played")
	}
}

// NativePaused implements Sound#paused().
func NativePaused(self *runtime.RuntimeObject, _ []*runtime.RuntimeObject) Thunk {
	return func(ctx Context) error {
		status, err := soundStatus(ctx, self)
		if err != nil {
			return err
		}
		return pushBool(ctx, status == "paused")
	}
}

// NativeVolume implements Sound#volume(v?): a getter/setter pair where
// the setter requires 0 <= v <= 1 (spec.md §4.7).
func NativeVolume(self *runtime.RuntimeObject, args []*runtime.RuntimeObject) Thunk {
	return func(ctx Context) error {
		if len(args) == 0 {
			if id, ok := self.Get("volume"); ok {
				return pushID(ctx, id)
			}
			return pushID(ctx, ctx.Evaluation().NullID)
		}
		v, err := runtime.AssertIsNumber(args[0])
		if err != nil {
			return err
		}
		if v < 0 || v > 1 {
			return &runtime.NativeFault{Kind: runtime.RangeError, Message: "volume must be between 0 and 1"}
		}
		self.Set("volume", args[0].Id)
		return pushVoid(ctx)
	}
}

// NativeShouldLoop implements Sound#shouldLoop(b?), a plain boolean
// property accessor.
func NativeShouldLoop(self *runtime.RuntimeObject, args []*runtime.RuntimeObject) Thunk {
	return propertyAccessor("shouldLoop")(self, args)
}

// RegisterSoundModule binds the Sound native catalogue (spec.md §4.7)
// into reg. Sound instances share one module FQN across every loaded
// sound file, so these natives are bound once, not per-file.
func RegisterSoundModule(reg *Registry, soundFQN string) {
	reg.Register(soundFQN, "play", NativePlay, "Idle/Stopped -> Played")
	reg.Register(soundFQN, "stop", NativeStopSound, "Played -> Stopped")
	reg.Register(soundFQN, "pause", NativePause, "Played -> Paused")
	reg.Register(soundFQN, "resume", NativeResume, "Paused -> Played")
	reg.Register(soundFQN, "played", NativePlayed, "true iff status is played")
	reg.Register(soundFQN, "paused", NativePaused, "true iff status is paused")
	reg.Register(soundFQN, "volume", NativeVolume, "volume getter/setter, range [0,1]")
	reg.Register(soundFQN, "shouldLoop", NativeShouldLoop, "loop flag getter/setter")
}
