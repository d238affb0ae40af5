package tree

import "github.com/wollok-lang/wollok-go/pkg/ast"

// ParentOf is a thin, O(1) wrapper around the Environment's own parent
// index (built once at construction, see ast.NewEnvironment). It exists
// alongside Environment.ParentOf so this package offers parent lookup,
// FQN lookup and Reduce together; the validator rules call
// Environment.ParentOf directly.
func ParentOf(env *ast.Environment, node ast.Node) (ast.Node, error) {
	return env.ParentOf(node)
}

// GetNodeByFQN resolves a fully-qualified name to the node it names.
func GetNodeByFQN(env *ast.Environment, fqn string) (ast.Node, error) {
	return env.GetNodeByFQN(fqn)
}
