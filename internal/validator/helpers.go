package validator

import (
	"github.com/wollok-lang/wollok-go/pkg/ast"
)

// memberName extracts the name a PackageMember or Import binds in its
// enclosing Package's scope, for use by importHasNotLocalReference.
func memberName(n ast.Node) (string, bool) {
	switch m := n.(type) {
	case *ast.Package:
		return m.Name, true
	case *ast.Class:
		return m.Name, true
	case *ast.Singleton:
		if m.Name == "" {
			return "", false
		}
		return m.Name, true
	case *ast.Mixin:
		return m.Name, true
	case *ast.Program:
		return m.Name, true
	case *ast.Test:
		return m.Name, true
	case *ast.Describe:
		return m.Name, true
	case *ast.Import:
		return m.LocalName(), true
	default:
		return "", false
	}
}

// isASCIIUpper/isASCIILower classify the first byte of a name. The
// Language's names are ASCII identifiers; this mirrors spec.md §4.3's
// "first character is an ASCII uppercase/lowercase letter" wording
// exactly rather than reaching for unicode-aware casing.
func isASCIIUpper(b byte) bool { return b >= 'A' && b <= 'Z' }
func isASCIILower(b byte) bool { return b >= 'a' && b <= 'z' }

// arityBearing abstracts over Method and Constructor parameter lists so
// compatibleArity can be shared between methodsHaveDistinctSignatures
// and constructorsHaveDistinctArity.
type arityBearing struct {
	id     ast.Id
	params []*ast.Parameter
}

func methodArity(m *ast.Method) arityBearing {
	return arityBearing{id: m.NodeID(), params: m.Parameters}
}

func constructorArity(c *ast.Constructor) arityBearing {
	return arityBearing{id: c.NodeID(), params: c.Parameters}
}

// compatibleArity implements spec.md §4.3's "compatible arity" overload
// clash: m1 != m2 AND either m2's last parameter is varArg and m1 has at
// least as many parameters as m2, or they have exactly the same number
// of parameters. The check is directional on purpose (only m2's
// trailing varArg is consulted) — callers that need the symmetric
// overload-clash meaning call it both ways, see hasArityClash.
func compatibleArity(m1, m2 arityBearing) bool {
	if m1.id == m2.id {
		return false
	}
	if n := len(m2.params); n > 0 && m2.params[n-1].IsVarArg {
		if len(m1.params) >= len(m2.params) {
			return true
		}
	}
	return len(m1.params) == len(m2.params)
}

// hasArityClash reports whether a and b clash under spec.md's
// "compatible arity" definition, checked in both directions since
// neither member is privileged as "m1" or "m2".
func hasArityClash(a, b arityBearing) bool {
	return compatibleArity(a, b) || compatibleArity(b, a)
}
