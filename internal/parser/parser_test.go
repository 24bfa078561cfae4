package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-sass/sass/internal/env"
	"github.com/go-sass/sass/internal/sassast"
)

func TestParseStyleRuleAndDeclaration(t *testing.T) {
	sheet, err := Parse(`a:hover { color: red; font: 12px/1.4 sans-serif; }`, env.SyntaxSCSS, "test.scss")
	require.NoError(t, err)
	require.Len(t, sheet.Body, 1)

	rule, ok := sheet.Body[0].(*sassast.StyleRule)
	require.True(t, ok, "expected a style rule, got %T", sheet.Body[0])
	require.Len(t, rule.Body, 2)

	decl, ok := rule.Body[0].(*sassast.Declaration)
	require.True(t, ok)
	require.False(t, decl.Important)
}

func TestParseVarDeclAndExpression(t *testing.T) {
	sheet, err := Parse(`$x: 1px + 2px !default;`, env.SyntaxSCSS, "test.scss")
	require.NoError(t, err)
	require.Len(t, sheet.Body, 1)

	decl, ok := sheet.Body[0].(*sassast.VarDecl)
	require.True(t, ok)
	require.Equal(t, "x", decl.Name)
	require.True(t, decl.Default)

	bin, ok := decl.Value.(*sassast.BinaryOp)
	require.True(t, ok, "expected a binary expression, got %T", decl.Value)
	require.Equal(t, "+", bin.Op)
}

func TestParseIfElseChain(t *testing.T) {
	sheet, err := Parse(`
@if $a == 1 {
  x: 1;
} @else if $a == 2 {
  x: 2;
} @else {
  x: 3;
}
`, env.SyntaxSCSS, "test.scss")
	require.NoError(t, err)
	require.Len(t, sheet.Body, 1)

	ifStmt, ok := sheet.Body[0].(*sassast.IfStmt)
	require.True(t, ok)
	require.Len(t, ifStmt.Clauses, 2)
	require.NotNil(t, ifStmt.Else)
}

func TestParseMixinWithContent(t *testing.T) {
	sheet, err := Parse(`
@mixin wrap($name) {
  .#{$name} {
    @content;
  }
}
`, env.SyntaxSCSS, "test.scss")
	require.NoError(t, err)
	mixin, ok := sheet.Body[0].(*sassast.MixinDecl)
	require.True(t, ok)
	require.Equal(t, "wrap", mixin.Name)
	require.True(t, mixin.AcceptsContent)
}

func TestParseUseWithNamespace(t *testing.T) {
	sheet, err := Parse(`@use "sass:math" as m;`, env.SyntaxSCSS, "test.scss")
	require.NoError(t, err)
	use, ok := sheet.Body[0].(*sassast.UseStmt)
	require.True(t, ok)
	require.Equal(t, "m", use.Namespace)
}

func TestParseSupportsCondition(t *testing.T) {
	sheet, err := Parse(`
@supports (display: grid) and (not (display: inline-grid)) {
  a { color: red; }
}
`, env.SyntaxSCSS, "test.scss")
	require.NoError(t, err)
	supports, ok := sheet.Body[0].(*sassast.SupportsStmt)
	require.True(t, ok)
	cond, ok := supports.Condition.(*sassast.SupportsCondition)
	require.True(t, ok, "expected a supports condition, got %T", supports.Condition)
	require.Equal(t, "and", cond.Kind)
	require.Len(t, cond.Operands, 2)
}

func TestParseIndentedSyntax(t *testing.T) {
	sheet, err := Parse("a\n  color: red\n  font-size: 12px\n", env.SyntaxIndented, "test.sass")
	require.NoError(t, err)
	require.Len(t, sheet.Body, 1)
	rule, ok := sheet.Body[0].(*sassast.StyleRule)
	require.True(t, ok)
	require.Len(t, rule.Body, 2)
}

func TestParseSyntaxErrorHasRange(t *testing.T) {
	_, err := Parse(`a { color: ; }`, env.SyntaxSCSS, "bad.scss")
	require.Error(t, err)
	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
}
