package validator

import (
	"testing"

	"github.com/wollok-lang/wollok-go/pkg/ast"
)

// TestBuildDispatchTableCoversEveryKind mirrors the teacher's habit of
// asserting a registry is exhaustively populated rather than trusting a
// hand-maintained list (internal/interp/builtins/registry.go).
func TestBuildDispatchTableCoversEveryKind(t *testing.T) {
	table := BuildDispatchTable()
	if len(table) != ast.NumKinds() {
		t.Fatalf("dispatch table has %d entries, want one per kind (%d)", len(table), ast.NumKinds())
	}
	for k := ast.NodeKind(0); int(k) < ast.NumKinds(); k++ {
		if _, ok := table[k]; !ok {
			t.Errorf("dispatch table missing an entry for %s", k)
		}
	}
}

func mustEnv(t *testing.T, root *ast.Package) *ast.Environment {
	t.Helper()
	env, err := ast.NewEnvironment(root)
	if err != nil {
		t.Fatalf("NewEnvironment: %v", err)
	}
	return env
}

func codesOf(problems []Problem) []string {
	var out []string
	for _, p := range problems {
		out = append(out, p.Code)
	}
	return out
}

func containsCode(problems []Problem, code string) bool {
	for _, p := range problems {
		if p.Code == code {
			return true
		}
	}
	return false
}

func TestRuleNameIsPascalCaseWarnsOnLowercaseClass(t *testing.T) {
	class := &ast.Class{Id: 2, Name: "point"}
	pkg := &ast.Package{Id: 1, Name: "p", Members: []ast.PackageMember{class}}
	env := mustEnv(t, pkg)

	problems := Validate(env, env)
	if !containsCode(problems, "nameIsPascalCase") {
		t.Fatalf("expected nameIsPascalCase among %v", codesOf(problems))
	}
}

func TestRuleNameIsNotKeywordFlagsReservedVariableName(t *testing.T) {
	v := &ast.Variable{Id: 3, Name: "self"}
	body := &ast.Body{Id: 4, Sentences: []ast.Sentence{v}}
	program := &ast.Program{Id: 2, Name: "main", Body: body}
	pkg := &ast.Package{Id: 1, Name: "p", Members: []ast.PackageMember{program}}
	env := mustEnv(t, pkg)

	problems := Validate(env, env)
	if !containsCode(problems, "nameIsNotKeyword") {
		t.Fatalf("expected nameIsNotKeyword among %v", codesOf(problems))
	}
}

func TestRuleHasCatchOrAlwaysRejectsBareTry(t *testing.T) {
	try := &ast.Try{Id: 3, Body: &ast.Body{Id: 4, Sentences: []ast.Sentence{&ast.Self{Id: 5}}}}
	body := &ast.Body{Id: 6, Sentences: []ast.Sentence{try}}
	program := &ast.Program{Id: 2, Name: "main", Body: body}
	pkg := &ast.Package{Id: 1, Name: "p", Members: []ast.PackageMember{program}}
	env := mustEnv(t, pkg)

	problems := Validate(env, env)
	if !containsCode(problems, "hasCatchOrAlways") {
		t.Fatalf("a try with neither catch nor always should violate hasCatchOrAlways, got %v", codesOf(problems))
	}
}

func TestRuleHasCatchOrAlwaysAcceptsCatch(t *testing.T) {
	catch := &ast.Catch{Id: 7, Name: "e", Body: &ast.Body{Id: 8}}
	try := &ast.Try{Id: 3, Body: &ast.Body{Id: 4}, Catches: []*ast.Catch{catch}}
	body := &ast.Body{Id: 6, Sentences: []ast.Sentence{try}}
	program := &ast.Program{Id: 2, Name: "main", Body: body}
	pkg := &ast.Package{Id: 1, Name: "p", Members: []ast.PackageMember{program}}
	env := mustEnv(t, pkg)

	problems := Validate(env, env)
	if containsCode(problems, "hasCatchOrAlways") {
		t.Fatalf("a try with a catch clause should satisfy hasCatchOrAlways, got %v", codesOf(problems))
	}
}

// onlyLastParameterIsVarArg is intentionally specified to flag every
// non-empty parameter list that has no varArg parameter at all (spec.md
// §9.1); this test documents that as-specified behavior rather than what
// a "fixed" rule would do.
func TestRuleOnlyLastParameterIsVarArgFlagsNoVarArgParams(t *testing.T) {
	param := &ast.Parameter{Id: 3, Name: "x"}
	method := &ast.Method{Id: 2, Name: "m", Parameters: []*ast.Parameter{param}}
	class := &ast.Class{Id: 4, Name: "A", Members: []ast.ClassMember{method}}
	pkg := &ast.Package{Id: 1, Name: "p", Members: []ast.PackageMember{class}}
	env := mustEnv(t, pkg)

	problems := Validate(env, env)
	if !containsCode(problems, "onlyLastParameterIsVarArg") {
		t.Fatalf("expected onlyLastParameterIsVarArg among %v", codesOf(problems))
	}
}

func TestRuleOnlyLastParameterIsVarArgAcceptsEmptyParams(t *testing.T) {
	method := &ast.Method{Id: 2, Name: "m"}
	class := &ast.Class{Id: 4, Name: "A", Members: []ast.ClassMember{method}}
	pkg := &ast.Package{Id: 1, Name: "p", Members: []ast.PackageMember{class}}
	env := mustEnv(t, pkg)

	problems := Validate(env, env)
	if containsCode(problems, "onlyLastParameterIsVarArg") {
		t.Fatalf("a method with no parameters should satisfy onlyLastParameterIsVarArg, got %v", codesOf(problems))
	}
}

func TestRuleTestIsNotEmptyWarnsOnEmptyBody(t *testing.T) {
	test := &ast.Test{Id: 2, Name: "should work", Body: &ast.Body{Id: 3}}
	pkg := &ast.Package{Id: 1, Name: "p", Members: []ast.PackageMember{test}}
	env := mustEnv(t, pkg)

	problems := Validate(env, env)
	if !containsCode(problems, "testIsNotEmpty") {
		t.Fatalf("expected testIsNotEmpty among %v", codesOf(problems))
	}
}

func TestRuleProgramIsNotEmptyWarnsOnEmptyBody(t *testing.T) {
	program := &ast.Program{Id: 2, Name: "main", Body: &ast.Body{Id: 3}}
	pkg := &ast.Package{Id: 1, Name: "p", Members: []ast.PackageMember{program}}
	env := mustEnv(t, pkg)

	problems := Validate(env, env)
	if !containsCode(problems, "programIsNotEmpty") {
		t.Fatalf("expected programIsNotEmpty among %v", codesOf(problems))
	}
}

func TestRuleImportHasNotLocalReferenceFlagsShadowing(t *testing.T) {
	imp := &ast.Import{Id: 2, Reference: &ast.Reference{Id: 3, Name: "a.b.Point"}}
	class := &ast.Class{Id: 4, Name: "Point"}
	pkg := &ast.Package{Id: 1, Name: "p", Members: []ast.PackageMember{imp, class}}
	env := mustEnv(t, pkg)

	problems := Validate(env, env)
	if !containsCode(problems, "importHasNotLocalReference") {
		t.Fatalf("an import shadowed by a local class should be flagged, got %v", codesOf(problems))
	}
}

func TestRuleNonAsignationOfFullyQualifiedReferencesFlagsDottedTarget(t *testing.T) {
	assign := &ast.Assignment{
		Id:        2,
		Reference: &ast.Reference{Id: 3, Name: "a.b"},
		Value:     &ast.Self{Id: 4},
	}
	body := &ast.Body{Id: 6, Sentences: []ast.Sentence{assign}}
	program := &ast.Program{Id: 5, Name: "main", Body: body}
	pkg := &ast.Package{Id: 1, Name: "p", Members: []ast.PackageMember{program}}
	env := mustEnv(t, pkg)

	problems := Validate(env, env)
	if !containsCode(problems, "nonAsignationOfFullyQualifiedReferences") {
		t.Fatalf("expected nonAsignationOfFullyQualifiedReferences among %v", codesOf(problems))
	}
}

// methodsHaveDistinctSignatures is intentionally specified to require
// every member of the class to be a Method (spec.md §9.3); a class mixing
// in a Field always violates it, independent of whether any methods
// actually clash.
func TestRuleMethodsHaveDistinctSignaturesFlagsMixedMembers(t *testing.T) {
	field := &ast.Field{Id: 2, Name: "x"}
	method := &ast.Method{Id: 3, Name: "m"}
	class := &ast.Class{Id: 4, Name: "A", Members: []ast.ClassMember{field, method}}
	pkg := &ast.Package{Id: 1, Name: "p", Members: []ast.PackageMember{class}}
	env := mustEnv(t, pkg)

	problems := Validate(env, env)
	if !containsCode(problems, "methodsHaveDistinctSignatures") {
		t.Fatalf("a class with a field and a method should violate methodsHaveDistinctSignatures, got %v", codesOf(problems))
	}
}

func TestRuleMethodsHaveDistinctSignaturesFlagsSameArityOverload(t *testing.T) {
	m1 := &ast.Method{Id: 2, Name: "m", Parameters: []*ast.Parameter{{Id: 10, Name: "x"}}}
	m2 := &ast.Method{Id: 3, Name: "m", Parameters: []*ast.Parameter{{Id: 11, Name: "y"}}}
	class := &ast.Class{Id: 4, Name: "A", Members: []ast.ClassMember{m1, m2}}
	pkg := &ast.Package{Id: 1, Name: "p", Members: []ast.PackageMember{class}}
	env := mustEnv(t, pkg)

	problems := Validate(env, env)
	if !containsCode(problems, "methodsHaveDistinctSignatures") {
		t.Fatalf("two same-name, same-arity methods should clash, got %v", codesOf(problems))
	}
}

func TestRuleFieldNameDifferentFromTheMethodsFlagsCollision(t *testing.T) {
	field := &ast.Field{Id: 2, Name: "size"}
	method := &ast.Method{Id: 3, Name: "size"}
	class := &ast.Class{Id: 4, Name: "A", Members: []ast.ClassMember{field, method}}
	pkg := &ast.Package{Id: 1, Name: "p", Members: []ast.PackageMember{class}}
	env := mustEnv(t, pkg)

	problems := Validate(env, env)
	if !containsCode(problems, "fieldNameDifferentFromTheMethods") {
		t.Fatalf("a field named the same as a method should be flagged, got %v", codesOf(problems))
	}
}

func TestRuleSingletonIsNotUnnamedFlagsAnonymousTopLevelSingleton(t *testing.T) {
	singleton := &ast.Singleton{Id: 2}
	pkg := &ast.Package{Id: 1, Name: "p", Members: []ast.PackageMember{singleton}}
	env := mustEnv(t, pkg)

	problems := Validate(env, env)
	if !containsCode(problems, "singletonIsNotUnnamed") {
		t.Fatalf("an anonymous top-level singleton should be flagged, got %v", codesOf(problems))
	}
}

func TestValidateIsDeterministic(t *testing.T) {
	class := &ast.Class{Id: 2, Name: "point"}
	pkg := &ast.Package{Id: 1, Name: "p", Members: []ast.PackageMember{class}}
	env := mustEnv(t, pkg)

	first := Validate(env, env)
	second := Validate(env, env)
	if len(first) != len(second) {
		t.Fatalf("Validate should be deterministic across repeated calls, got %d then %d problems", len(first), len(second))
	}
	for i := range first {
		if first[i].Code != second[i].Code || first[i].Node.NodeID() != second[i].Node.NodeID() {
			t.Fatalf("Validate produced different diagnostics across repeated calls at index %d", i)
		}
	}
}
