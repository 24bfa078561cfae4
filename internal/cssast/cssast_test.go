package cssast

import (
	"testing"

	"github.com/go-sass/sass/internal/logger"
	"github.com/go-sass/sass/internal/selector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blankRange() logger.Range { return logger.Range{} }

func TestAppendChildSetsParent(t *testing.T) {
	tree := NewTree()
	sel, err := selector.Parse(".a")
	require.NoError(t, err)
	rule := tree.AddStyleRule(tree.Root(), sel, blankRange())
	decl := tree.AddDeclaration(rule, DeclarationData{Property: "color", Value: "red"}, blankRange())

	assert.Equal(t, tree.Root(), tree.Node(rule).Parent)
	assert.Equal(t, rule, tree.Node(decl).Parent)
	assert.Equal(t, []NodeIndex{decl}, tree.Node(rule).Children)
}

func TestRemoveEmptyDescendantsPrunesEmptyRule(t *testing.T) {
	tree := NewTree()
	sel, _ := selector.Parse(".empty")
	tree.AddStyleRule(tree.Root(), sel, blankRange())

	sel2, _ := selector.Parse(".full")
	rule2 := tree.AddStyleRule(tree.Root(), sel2, blankRange())
	tree.AddDeclaration(rule2, DeclarationData{Property: "color", Value: "blue"}, blankRange())

	tree.RemoveEmptyDescendants(tree.Root())
	require.Len(t, tree.Node(tree.Root()).Children, 1)
	assert.Equal(t, rule2, tree.Node(tree.Root()).Children[0])
}

func TestRemoveEmptyDescendantsKeepsChildlessAtRule(t *testing.T) {
	tree := NewTree()
	tree.AddAtRule(tree.Root(), AtRuleData{Name: "charset", Params: `"UTF-8"`, HasBlock: false}, blankRange())
	tree.RemoveEmptyDescendants(tree.Root())
	assert.Len(t, tree.Node(tree.Root()).Children, 1)
}

func TestWalkVisitsInPreOrder(t *testing.T) {
	tree := NewTree()
	sel, _ := selector.Parse(".a")
	rule := tree.AddStyleRule(tree.Root(), sel, blankRange())
	decl := tree.AddDeclaration(rule, DeclarationData{Property: "color", Value: "red"}, blankRange())

	var visited []NodeIndex
	tree.Walk(tree.Root(), func(idx NodeIndex, n *Node) {
		visited = append(visited, idx)
	})
	assert.Equal(t, []NodeIndex{tree.Root(), rule, decl}, visited)
}
