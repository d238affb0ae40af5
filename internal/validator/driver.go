package validator

import (
	"sync"

	"github.com/wollok-lang/wollok-go/internal/tree"
	"github.com/wollok-lang/wollok-go/pkg/ast"
)

var (
	defaultTableOnce sync.Once
	defaultTable     map[ast.NodeKind][]Rule
)

func sharedDispatchTable() map[ast.NodeKind][]Rule {
	defaultTableOnce.Do(func() {
		defaultTable = BuildDispatchTable()
	})
	return defaultTable
}

// Validate runs the full rule catalogue over the subtree rooted at root
// (usually env.Root wrapped in env itself — callers typically pass env
// directly since *ast.Environment implements ast.Node), returning
// diagnostics in pre-order traversal order crossed with each kind's
// rule-declaration order (spec.md §4.4). The result is deterministic:
// repeated calls against the same, unmodified Environment produce the
// same ordered list (spec.md §8, property 3).
func Validate(root ast.Node, env *ast.Environment) []Problem {
	table := sharedDispatchTable()
	return tree.Reduce(func(acc []Problem, node ast.Node) []Problem {
		for _, rule := range table[node.Kind()] {
			if problem, violated := rule.evaluate(node, env); violated {
				acc = append(acc, problem)
			}
		}
		return acc
	}, nil, root)
}

// ValidateEnvironment is a convenience entry point equivalent to
// Validate(env, env).
func ValidateEnvironment(env *ast.Environment) []Problem {
	return Validate(env, env)
}
