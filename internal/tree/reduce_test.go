package tree

import (
	"reflect"
	"testing"

	"github.com/wollok-lang/wollok-go/pkg/ast"
)

func sampleTree() *ast.Package {
	return &ast.Package{
		Id:   1,
		Name: "p",
		Members: []ast.PackageMember{
			&ast.Class{
				Id:   2,
				Name: "A",
				Members: []ast.ClassMember{
					&ast.Field{Id: 3, Name: "x"},
					&ast.Method{Id: 4, Name: "m"},
				},
			},
			&ast.Program{Id: 5, Name: "main", Body: &ast.Body{Id: 6}},
		},
	}
}

func TestReducePreOrder(t *testing.T) {
	root := sampleTree()

	ids := Reduce(func(acc []ast.Id, n ast.Node) []ast.Id {
		return append(acc, n.NodeID())
	}, nil, root)

	want := []ast.Id{1, 2, 3, 4, 5, 6}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("Reduce order = %v, want %v", ids, want)
	}
}

func TestReduceNilRoot(t *testing.T) {
	var root ast.Node
	result := Reduce(func(acc int, _ ast.Node) int { return acc + 1 }, 0, root)
	if result != 0 {
		t.Fatalf("Reduce(nil root) = %d, want 0", result)
	}
}

func TestWalkVisitsEveryNode(t *testing.T) {
	root := sampleTree()
	count := 0
	Walk(root, func(ast.Node) { count++ })
	if count != 6 {
		t.Fatalf("Walk visited %d nodes, want 6", count)
	}
}
