package natives

import (
	"fmt"
	"sort"
	"sync"
)

// entry holds a registered native alongside the metadata the
// `wollok-lint natives` CLI subcommand lists (mirrors the teacher's
// FunctionInfo: a registry entry is never just a bare function value).
type entry struct {
	Selector    string
	Func        NativeFunc
	Description string
}

// Registry maps (moduleFQN, selector) to a NativeFunc, the way the
// teacher's builtins.Registry maps a function name to its
// implementation — generalized here to a two-level key since natives
// are scoped per receiving module rather than globally named (spec.md
// §4.6, "bound to a receiver's module FQN and method name").
type Registry struct {
	mu      sync.RWMutex
	modules map[string]map[string]*entry
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]map[string]*entry)}
}

// Register binds fn as moduleFQN's native implementation of selector.
// A second registration for the same (moduleFQN, selector) pair
// replaces the first.
func (r *Registry) Register(moduleFQN, selector string, fn NativeFunc, description string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	selectors, ok := r.modules[moduleFQN]
	if !ok {
		selectors = make(map[string]*entry)
		r.modules[moduleFQN] = selectors
	}
	selectors[selector] = &entry{Selector: selector, Func: fn, Description: description}
}

// Lookup resolves the native bound to (moduleFQN, selector), if any.
func (r *Registry) Lookup(moduleFQN, selector string) (NativeFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	selectors, ok := r.modules[moduleFQN]
	if !ok {
		return nil, false
	}
	e, ok := selectors[selector]
	if !ok {
		return nil, false
	}
	return e.Func, true
}

// Catalogue describes one registered native, for listing purposes.
type Catalogue struct {
	ModuleFQN   string
	Selector    string
	Description string
}

// List returns every registered native, sorted by (moduleFQN, selector)
// for stable output — the registry equivalent of the teacher's
// category-grouped, alphabetized built-in listing.
func (r *Registry) List() []Catalogue {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Catalogue
	for fqn, selectors := range r.modules {
		for selector, e := range selectors {
			out = append(out, Catalogue{ModuleFQN: fqn, Selector: selector, Description: e.Description})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ModuleFQN != out[j].ModuleFQN {
			return out[i].ModuleFQN < out[j].ModuleFQN
		}
		return out[i].Selector < out[j].Selector
	})
	return out
}

// String renders the catalogue as a human-readable listing.
func (c Catalogue) String() string {
	return fmt.Sprintf("%s#%s — %s", c.ModuleFQN, c.Selector, c.Description)
}
