// Package tree provides the generic traversal primitive the validator
// driver folds over the AST with (spec.md §4.2, component B).
package tree

import "github.com/wollok-lang/wollok-go/pkg/ast"

// Reduce performs a depth-first, pre-order fold over the subtree rooted
// at root, visiting each node exactly once and in the source order its
// Children() report. step receives the accumulator and the currently
// visited node and returns the new accumulator.
//
// This is the sole traversal primitive used by the validator driver
// (internal/validator); keeping it the only place that walks the tree
// keeps traversal order — and therefore diagnostic order — deterministic
// (spec.md §4.4).
func Reduce[T any](step func(acc T, node ast.Node) T, seed T, root ast.Node) T {
	if root == nil {
		return seed
	}
	acc := step(seed, root)
	for _, child := range root.Children() {
		acc = Reduce(step, acc, child)
	}
	return acc
}

// Walk visits every node in the subtree rooted at root, pre-order, in
// source order, calling visit once per node. It is Reduce specialized to
// a side-effecting visitor when no accumulator is needed.
func Walk(root ast.Node, visit func(ast.Node)) {
	Reduce(func(_ struct{}, n ast.Node) struct{} {
		visit(n)
		return struct{}{}
	}, struct{}{}, root)
}
