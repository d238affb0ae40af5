package natives

// DefaultRegistry is the process-wide registry of every native the
// bridge ships with, populated once at package initialization — the
// natives-package counterpart of the teacher's builtins.DefaultRegistry.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry()
	RegisterAll(DefaultRegistry)
}

// RegisterAll registers the full native catalogue — game and Sound —
// into reg. Exposed separately from DefaultRegistry so a caller (tests,
// or an embedder wanting a reduced catalogue) can build a fresh
// Registry instead of sharing the global one.
func RegisterAll(reg *Registry) {
	RegisterGameModule(reg)
	RegisterSoundModule(reg, "wollok.game.Sound")
}
