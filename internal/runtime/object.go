package runtime

// Id identifies a RuntimeObject. It is a distinct named type from
// ast.Id: the two spaces are disjoint by construction, so a value from
// one is never accidentally used as the other.
type Id int64

// Well-known module FQNs the native bridge and the standard library
// contract agree on (spec.md §6).
const (
	FQNList       = "wollok.lang.List"
	FQNSet        = "wollok.lang.Set"
	FQNString     = "wollok.lang.String"
	FQNNumber     = "wollok.lang.Number"
	FQNBoolean    = "wollok.lang.Boolean"
	FQNGameMirror = "wollok.gameMirror.gameMirror"
	FQNIO         = "wollok.io.io"
	FQNGame       = "wollok.game.game"
)

// RuntimeObject is a live instance: a module FQN naming its class or
// singleton in the AST, a mapping from attribute name to the Id of the
// referent object, and an optional innerValue whose Go type is
// dictated by moduleFQN (spec.md §3).
type RuntimeObject struct {
	Id         Id
	ModuleFQN  string
	Attributes map[string]Id
	InnerValue any // float64, string, []Id (List/Set), or nil
}

func newRuntimeObject(id Id, fqn string, inner any) *RuntimeObject {
	return &RuntimeObject{
		Id:         id,
		ModuleFQN:  fqn,
		Attributes: make(map[string]Id),
		InnerValue: inner,
	}
}

// Get returns the Id bound to attr, if any.
func (o *RuntimeObject) Get(attr string) (Id, bool) {
	id, ok := o.Attributes[attr]
	return id, ok
}

// Set binds attr to id, overwriting any previous binding.
func (o *RuntimeObject) Set(attr string, id Id) {
	o.Attributes[attr] = id
}

// assertIsNumber fails with a TypeError unless o holds a numeric
// innerValue, returning the scalar on success.
func assertIsNumber(o *RuntimeObject) (float64, error) {
	n, ok := o.InnerValue.(float64)
	if !ok {
		return 0, newTypeError("expected a %s, got %s", FQNNumber, o.ModuleFQN)
	}
	return n, nil
}

// assertIsString fails with a TypeError unless o holds a string
// innerValue, returning it on success.
func assertIsString(o *RuntimeObject) (string, error) {
	s, ok := o.InnerValue.(string)
	if !ok {
		return "", newTypeError("expected a %s, got %s", FQNString, o.ModuleFQN)
	}
	return s, nil
}

// assertIsCollection fails with a TypeError unless o holds a List/Set
// innerValue ([]Id), returning the slice on success.
func assertIsCollection(o *RuntimeObject) ([]Id, error) {
	ids, ok := o.InnerValue.([]Id)
	if !ok {
		return nil, newTypeError("expected a %s or %s, got %s", FQNList, FQNSet, o.ModuleFQN)
	}
	return ids, nil
}

// AssertIsNumber, AssertIsString and AssertIsCollection are the
// exported typed assertions natives call (spec.md §4.5); they wrap
// the unexported forms so the receiver-is-nil case reads as a TypeError
// rather than a Go nil-pointer panic.
func AssertIsNumber(o *RuntimeObject) (float64, error) {
	if o == nil {
		return 0, newTypeError("expected a %s, got null", FQNNumber)
	}
	return assertIsNumber(o)
}

func AssertIsString(o *RuntimeObject) (string, error) {
	if o == nil {
		return "", newTypeError("expected a %s, got null", FQNString)
	}
	return assertIsString(o)
}

func AssertIsCollection(o *RuntimeObject) ([]Id, error) {
	if o == nil {
		return nil, newTypeError("expected a %s or %s, got null", FQNList, FQNSet)
	}
	return assertIsCollection(o)
}
