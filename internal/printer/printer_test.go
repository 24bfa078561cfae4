package printer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-sass/sass/internal/cssast"
	"github.com/go-sass/sass/internal/logger"
	"github.com/go-sass/sass/internal/selector"
)

func buildSampleTree(t *testing.T) *cssast.Tree {
	t.Helper()
	tree := cssast.NewTree()
	sel, err := selector.Parse("a.btn")
	require.NoError(t, err)
	rule := tree.AddStyleRule(tree.Root(), sel, logger.Range{})
	tree.AddDeclaration(rule, cssast.DeclarationData{Property: "color", Value: "red"}, logger.Range{})
	tree.AddDeclaration(rule, cssast.DeclarationData{Property: "margin", Value: "0", Important: true}, logger.Range{})
	return tree
}

func TestPrintExpanded(t *testing.T) {
	tree := buildSampleTree(t)
	result := Print(tree, Options{Style: Expanded})
	require.Equal(t, "a.btn {\n  color: red;\n  margin: 0 !important;\n}\n", result.CSS)
	require.Empty(t, result.SourceMapJSON)
}

func TestPrintCompressed(t *testing.T) {
	tree := buildSampleTree(t)
	result := Print(tree, Options{Style: Compressed})
	require.Equal(t, "a.btn{color:red;margin:0 !important;}", result.CSS)
}

func TestPrintOmitsEmptyRule(t *testing.T) {
	tree := cssast.NewTree()
	sel, err := selector.Parse(".empty")
	require.NoError(t, err)
	tree.AddStyleRule(tree.Root(), sel, logger.Range{})

	result := Print(tree, Options{Style: Expanded})
	require.Empty(t, result.CSS)
}

func TestPrintEmitsSourceMapMappings(t *testing.T) {
	source := &logger.Source{KeyPath: "in.scss", PrettyPath: "in.scss", Contents: ".a{color:red}"}
	tree := cssast.NewTree()
	sel, err := selector.Parse("a")
	require.NoError(t, err)
	rule := tree.AddStyleRule(tree.Root(), sel, logger.Range{Loc: logger.Loc{Start: 0}})
	tree.AddDeclaration(rule, cssast.DeclarationData{Property: "color", Value: "red"}, logger.Range{Loc: logger.Loc{Start: 4}})

	result := Print(tree, Options{Style: Expanded, Source: source, EmitSourceMap: true})
	require.NotEmpty(t, result.SourceMapJSON)
	require.Contains(t, result.SourceMapJSON, `"version":3`)
	require.Contains(t, result.SourceMapJSON, "in.scss")
}
