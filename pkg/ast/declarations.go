package ast

import "fmt"

// Environment is the AST root. It owns the full tree reachable from Root
// and a parent-pointer index built once at construction (spec.md §4.2,
// §9 "Parent back-edges"): rather than storing parent pointers on every
// node (which would complicate immutability and equality-by-Id), a
// separate id -> parent index is built alongside an id -> node table and
// an fqn -> id table, all sharing the Environment's lifetime.
type Environment struct {
	Root *Package

	parents map[Id]Id
	nodes   map[Id]Node
	fqns    map[string]Id
}

// NewEnvironment builds an Environment rooted at root, indexing every
// reachable node. It returns an error if the structural invariants from
// spec.md §3 are violated: an Id repeated across the tree, or (defensive,
// should be unreachable given a well-formed parser) a nil node reached
// during the walk.
func NewEnvironment(root *Package) (*Environment, error) {
	env := &Environment{
		Root:    root,
		parents: make(map[Id]Id),
		nodes:   make(map[Id]Node),
		fqns:    make(map[string]Id),
	}
	if root == nil {
		return env, nil
	}
	if err := env.index(root, -1, ""); err != nil {
		return nil, err
	}
	return env, nil
}

func (e *Environment) index(n Node, parent Id, fqnPrefix string) error {
	if n == nil {
		return fmt.Errorf("ast: nil node encountered while indexing environment")
	}
	id := n.NodeID()
	if _, dup := e.nodes[id]; dup {
		return fmt.Errorf("ast: duplicate node id %d (kind %s)", id, n.Kind())
	}
	e.nodes[id] = n
	if parent >= 0 {
		e.parents[id] = parent
	}

	if named, ok := n.(interface{ qualifiedName(prefix string) string }); ok {
		fqn := named.qualifiedName(fqnPrefix)
		if fqn != "" {
			e.fqns[fqn] = id
			fqnPrefix = fqn
		}
	}

	for _, child := range n.Children() {
		if err := e.index(child, id, fqnPrefix); err != nil {
			return err
		}
	}
	return nil
}

// ParentOf returns the parent of node. It fails only when called on a
// node that is not reachable from this Environment (a "detached" node,
// spec.md §4.2) — a node belonging to a different Environment, or one
// that was constructed but never attached to the tree passed to
// NewEnvironment.
func (e *Environment) ParentOf(node Node) (Node, error) {
	if node == nil {
		return nil, fmt.Errorf("ast: ParentOf called with a nil node")
	}
	pid, ok := e.parents[node.NodeID()]
	if !ok {
		if node.NodeID() == e.Root.NodeID() {
			return nil, fmt.Errorf("ast: the root node has no parent")
		}
		return nil, fmt.Errorf("ast: node %d (kind %s) is detached from this environment", node.NodeID(), node.Kind())
	}
	parent, ok := e.nodes[pid]
	if !ok {
		return nil, fmt.Errorf("ast: internal inconsistency: parent id %d not indexed", pid)
	}
	return parent, nil
}

// GetNodeByFQN resolves a fully-qualified name (dotted path of Package
// and Class/Singleton/Mixin names) to the node it names.
func (e *Environment) GetNodeByFQN(fqn string) (Node, error) {
	id, ok := e.fqns[fqn]
	if !ok {
		return nil, fmt.Errorf("ast: no node found for fully-qualified name %q", fqn)
	}
	return e.nodes[id], nil
}

// NodeID, Kind and Children make Environment itself a Node, so the
// validator's reduce-based traversal can be started at the Environment
// (spec.md §4.4 "Inputs: a Node (usually the Environment)").
func (e *Environment) NodeID() Id      { return e.Root.NodeID() }
func (e *Environment) Kind() NodeKind  { return KindEnvironment }
func (e *Environment) Children() []Node {
	if e.Root == nil {
		return nil
	}
	return []Node{e.Root}
}

// Package is a named container of members: nested packages, classes,
// singletons, mixins, programs, tests, describes, and imports, all
// preserved in source order (spec.md §3 structural invariant).
type Package struct {
	Id      Id
	Name    string
	Members []PackageMember
}

func (p *Package) NodeID() Id     { return p.Id }
func (p *Package) Kind() NodeKind { return KindPackage }
func (p *Package) Children() []Node {
	out := make([]Node, len(p.Members))
	for i, m := range p.Members {
		out[i] = m
	}
	return out
}
func (p *Package) packageMemberNode() {}

func (p *Package) qualifiedName(prefix string) string {
	if prefix == "" {
		return p.Name
	}
	return prefix + "." + p.Name
}

// Reference is a (possibly dotted) name appearing in expression or
// import position. A dotted Name (e.g. "a.b.c") is a fully-qualified
// reference; nonAsignationOfFullyQualifiedReferences (spec.md §4.3)
// forbids assigning through one.
type Reference struct {
	Id   Id
	Name string
}

func (r *Reference) NodeID() Id        { return r.Id }
func (r *Reference) Kind() NodeKind    { return KindReference }
func (r *Reference) Children() []Node  { return nil }
func (r *Reference) sentenceNode()     {}
func (r *Reference) expressionNode()   {}

// Import binds a Reference (possibly a fully-qualified one) into the
// enclosing Package's scope, optionally under a local alias.
type Import struct {
	Id        Id
	Reference *Reference
	Alias     string // local binding name from an "as" clause; empty when none is used (see LocalName)
}

func (i *Import) NodeID() Id     { return i.Id }
func (i *Import) Kind() NodeKind { return KindImport }
func (i *Import) Children() []Node {
	if i.Reference == nil {
		return nil
	}
	return []Node{i.Reference}
}
func (i *Import) packageMemberNode() {}

// LocalName is the name this import binds in the enclosing Package's
// scope: the alias if present, otherwise the last dotted segment of the
// imported reference.
func (i *Import) LocalName() string {
	if i.Alias != "" {
		return i.Alias
	}
	if i.Reference == nil {
		return ""
	}
	name := i.Reference.Name
	for idx := len(name) - 1; idx >= 0; idx-- {
		if name[idx] == '.' {
			return name[idx+1:]
		}
	}
	return name
}

// Mixin is a named bundle of members that Classes can be composed with.
type Mixin struct {
	Id      Id
	Name    string
	Members []ClassMember
}

func (m *Mixin) NodeID() Id     { return m.Id }
func (m *Mixin) Kind() NodeKind { return KindMixin }
func (m *Mixin) Children() []Node {
	out := make([]Node, len(m.Members))
	for i, mem := range m.Members {
		out[i] = mem
	}
	return out
}
func (m *Mixin) packageMemberNode() {}

func (m *Mixin) qualifiedName(prefix string) string {
	if prefix == "" {
		return m.Name
	}
	return prefix + "." + m.Name
}

// Program is a named, top-level runnable entry point.
type Program struct {
	Id   Id
	Name string
	Body *Body
}

func (p *Program) NodeID() Id     { return p.Id }
func (p *Program) Kind() NodeKind { return KindProgram }
func (p *Program) Children() []Node {
	if p.Body == nil {
		return nil
	}
	return []Node{p.Body}
}
func (p *Program) packageMemberNode() {}

// Test is a named, independently-runnable assertion block. A Test is
// both a PackageMember (it can sit directly in a Package) and a Sentence
// (it can nest inside a Describe's Body, the shape a Describe actually
// takes at runtime).
type Test struct {
	Id   Id
	Name string
	Body *Body
}

func (t *Test) NodeID() Id     { return t.Id }
func (t *Test) Kind() NodeKind { return KindTest }
func (t *Test) Children() []Node {
	if t.Body == nil {
		return nil
	}
	return []Node{t.Body}
}
func (t *Test) packageMemberNode() {}
func (t *Test) sentenceNode()      {}

// Describe groups related Tests (and shared setup) under a shared name —
// like Program and Test, a named container with a Body (spec.md §3).
type Describe struct {
	Id   Id
	Name string
	Body *Body
}

func (d *Describe) NodeID() Id     { return d.Id }
func (d *Describe) Kind() NodeKind { return KindDescribe }
func (d *Describe) Children() []Node {
	if d.Body == nil {
		return nil
	}
	return []Node{d.Body}
}
func (d *Describe) packageMemberNode() {}
