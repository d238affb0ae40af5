package ast

// Class is a named type with an optional superclass reference, zero or
// more mixed-in Mixins, and an ordered member list (Fields, Methods,
// Constructors, preserved in source order per spec.md §3).
type Class struct {
	Id         Id
	Name       string
	Superclass *Reference // nil for root classes
	Mixins     []*Reference
	Members    []ClassMember
}

func (c *Class) NodeID() Id     { return c.Id }
func (c *Class) Kind() NodeKind { return KindClass }
func (c *Class) Children() []Node {
	out := make([]Node, 0, len(c.Members)+len(c.Mixins)+1)
	if c.Superclass != nil {
		out = append(out, c.Superclass)
	}
	for _, m := range c.Mixins {
		out = append(out, m)
	}
	for _, m := range c.Members {
		out = append(out, m)
	}
	return out
}
func (c *Class) packageMemberNode() {}

func (c *Class) qualifiedName(prefix string) string {
	if prefix == "" {
		return c.Name
	}
	return prefix + "." + c.Name
}

// Methods returns the Class's Method members, in declaration order.
func (c *Class) Methods() []*Method {
	var out []*Method
	for _, m := range c.Members {
		if method, ok := m.(*Method); ok {
			out = append(out, method)
		}
	}
	return out
}

// Constructors returns the Class's Constructor members, in declaration order.
func (c *Class) Constructors() []*Constructor {
	var out []*Constructor
	for _, m := range c.Members {
		if ctor, ok := m.(*Constructor); ok {
			out = append(out, ctor)
		}
	}
	return out
}

// Fields returns the Class's Field members, in declaration order.
func (c *Class) Fields() []*Field {
	var out []*Field
	for _, m := range c.Members {
		if field, ok := m.(*Field); ok {
			out = append(out, field)
		}
	}
	return out
}

// Singleton is a Language object literal: a class with exactly one
// instance. Its parent may be a Package (a named, top-level singleton —
// the only shape singletonIsNotUnnamed checks, spec.md §9.5) or an
// expression context (an anonymous object literal used inline).
type Singleton struct {
	Id      Id
	Name    string // empty for anonymous singletons
	Members []ClassMember
}

func (s *Singleton) NodeID() Id     { return s.Id }
func (s *Singleton) Kind() NodeKind { return KindSingleton }
func (s *Singleton) Children() []Node {
	out := make([]Node, len(s.Members))
	for i, m := range s.Members {
		out[i] = m
	}
	return out
}
func (s *Singleton) packageMemberNode() {}
func (s *Singleton) sentenceNode()      {}
func (s *Singleton) expressionNode()    {}

func (s *Singleton) qualifiedName(prefix string) string {
	if s.Name == "" {
		return ""
	}
	if prefix == "" {
		return s.Name
	}
	return prefix + "." + s.Name
}

// Parameter is a formal parameter of a Method or Constructor. IsVarArg
// marks a trailing parameter that absorbs zero or more arguments;
// onlyLastParameterIsVarArg (spec.md §4.3) constrains where it may appear.
type Parameter struct {
	Id       Id
	Name     string
	IsVarArg bool
}

func (p *Parameter) NodeID() Id       { return p.Id }
func (p *Parameter) Kind() NodeKind   { return KindParameter }
func (p *Parameter) Children() []Node { return nil }

// Field is a class member variable with an initializer expression.
type Field struct {
	Id          Id
	Name        string
	Initializer Expression
}

func (f *Field) NodeID() Id     { return f.Id }
func (f *Field) Kind() NodeKind { return KindField }
func (f *Field) Children() []Node {
	if f.Initializer == nil {
		return nil
	}
	return []Node{f.Initializer}
}
func (f *Field) classMemberNode() {}

// Method is a class member function. A Method with a nil Body is
// abstract; Native marks a method whose implementation is supplied by
// the host (see internal/natives) rather than by Language source.
type Method struct {
	Id         Id
	Name       string
	Parameters []*Parameter
	Body       *Body // nil for abstract or native methods
	Override   bool
	Native     bool
}

func (m *Method) NodeID() Id     { return m.Id }
func (m *Method) Kind() NodeKind { return KindMethod }
func (m *Method) Children() []Node {
	out := make([]Node, 0, len(m.Parameters)+1)
	for _, p := range m.Parameters {
		out = append(out, p)
	}
	if m.Body != nil {
		out = append(out, m.Body)
	}
	return out
}
func (m *Method) classMemberNode() {}
func (m *Method) sentenceNode()    {}

// Constructor initializes a Class instance. BaseCall, when present, is
// the explicit call to the superclass's constructor.
type Constructor struct {
	Id         Id
	Parameters []*Parameter
	Body       *Body
	BaseCall   *Send // nil when no explicit base-constructor call is present
}

func (c *Constructor) NodeID() Id     { return c.Id }
func (c *Constructor) Kind() NodeKind { return KindConstructor }
func (c *Constructor) Children() []Node {
	out := make([]Node, 0, len(c.Parameters)+2)
	for _, p := range c.Parameters {
		out = append(out, p)
	}
	if c.BaseCall != nil {
		out = append(out, c.BaseCall)
	}
	if c.Body != nil {
		out = append(out, c.Body)
	}
	return out
}
func (c *Constructor) classMemberNode() {}
