package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-sass/sass/internal/cssast"
	"github.com/go-sass/sass/internal/env"
	"github.com/go-sass/sass/internal/logger"
	"github.com/go-sass/sass/internal/sassast"
	"github.com/go-sass/sass/internal/value"
)

type fakeLogger struct {
	warnings []string
	debugs   []string
}

func (l *fakeLogger) Warn(message string, span logger.Range, stack []StackFrame) {
	l.warnings = append(l.warnings, message)
}
func (l *fakeLogger) Debug(message string, span logger.Range) {
	l.debugs = append(l.debugs, message)
}

func newTestEvaluator() *Evaluator {
	mod := env.NewModule("test:entry")
	graph := env.NewGraph(nil)
	return NewEvaluator(graph, &fakeLogger{}, nil, mod, nil)
}

func blankRange() logger.Range { return logger.Range{} }

func ptext(s string) sassast.Interpolation { return sassast.PlainInterpolation(s) }

func styleRule(selector string, body sassast.Block) *sassast.StyleRule {
	return &sassast.StyleRule{Selector: ptext(selector), Body: body}
}

func decl(name string, v sassast.Expr) *sassast.Declaration {
	return &sassast.Declaration{Name: ptext(name), Value: v}
}

func numLit(n float64) *sassast.NumberLit { return sassast.NewNumber(blankRange(), value.Unitless(n)) }

func TestEvaluateSimpleStyleRule(t *testing.T) {
	e := newTestEvaluator()
	sheet := &sassast.Stylesheet{Body: sassast.Block{
		styleRule(".a", sassast.Block{decl("color", sassast.NewBool(blankRange(), true))}),
	}}
	tree, _, err := e.Evaluate(sheet)
	require.NoError(t, err)

	root := tree.Node(tree.Root())
	require.Len(t, root.Children, 1)
	rule := tree.Node(root.Children[0])
	assert.Equal(t, cssast.KindStyleRule, rule.Kind)
	require.Len(t, rule.Children, 1)
	declNode := tree.Node(rule.Children[0])
	assert.Equal(t, "color", declNode.Declaration.Property)
	assert.Equal(t, "true", declNode.Declaration.Value)
}

func TestAmpersandNestingJoinsCompounds(t *testing.T) {
	e := newTestEvaluator()
	inner := &sassast.StyleRule{
		Selector: ptext("&:hover"),
		Body:     sassast.Block{decl("color", sassast.NewBool(blankRange(), true))},
	}
	sheet := &sassast.Stylesheet{Body: sassast.Block{
		styleRule(".btn", sassast.Block{inner}),
	}}
	tree, _, err := e.Evaluate(sheet)
	require.NoError(t, err)

	root := tree.Node(tree.Root())
	outer := tree.Node(root.Children[0])
	nested := tree.Node(outer.Children[0])
	assert.Equal(t, ".btn:hover", nested.StyleRule.Selector.String())
}

func TestVarDeclAndArithmetic(t *testing.T) {
	e := newTestEvaluator()
	sheet := &sassast.Stylesheet{Body: sassast.Block{
		&sassast.VarDecl{Name: "x", Value: numLit(2)},
		styleRule(".a", sassast.Block{
			decl("width", &sassast.BinaryOp{
				Left:  sassast.NewVariableRef(blankRange(), "", "x"),
				Op:    "+",
				Right: numLit(3),
			}),
		}),
	}}
	tree, _, err := e.Evaluate(sheet)
	require.NoError(t, err)
	root := tree.Node(tree.Root())
	rule := tree.Node(root.Children[0])
	d := tree.Node(rule.Children[0])
	assert.Equal(t, "5", d.Declaration.Value)
}

func TestExtendRegistersExtension(t *testing.T) {
	e := newTestEvaluator()
	sheet := &sassast.Stylesheet{Body: sassast.Block{
		styleRule(".error", sassast.Block{
			&sassast.ExtendStmt{Target: ptext("%message")},
			decl("color", sassast.NewBool(blankRange(), true)),
		}),
	}}
	_, extensions, err := e.Evaluate(sheet)
	require.NoError(t, err)
	require.Len(t, extensions, 1)
	assert.False(t, extensions[0].Optional)
}

func TestIfStmtPicksTrueBranch(t *testing.T) {
	e := newTestEvaluator()
	sheet := &sassast.Stylesheet{Body: sassast.Block{
		styleRule(".a", sassast.Block{
			&sassast.IfStmt{
				Clauses: []sassast.IfClause{
					{Cond: sassast.NewBool(blankRange(), true), Body: sassast.Block{decl("color", sassast.NewBool(blankRange(), true))}},
				},
				Else: sassast.Block{decl("color", sassast.NewBool(blankRange(), false))},
			},
		}),
	}}
	tree, _, err := e.Evaluate(sheet)
	require.NoError(t, err)
	root := tree.Node(tree.Root())
	rule := tree.Node(root.Children[0])
	d := tree.Node(rule.Children[0])
	assert.Equal(t, "true", d.Declaration.Value)
}

func TestBuiltinPercentage(t *testing.T) {
	e := newTestEvaluator()
	v, err := e.CallFunction("", "percentage", sassast.ArgInvocation{Positional: []sassast.Expr{numLit(0.5)}}, blankRange())
	require.NoError(t, err)
	n, ok := v.(*value.Number)
	require.True(t, ok)
	assert.InDelta(t, 50, n.Val, 1e-9)
	assert.Equal(t, "%", n.Unit())
}

func TestBuiltinMapGetMissingReturnsNull(t *testing.T) {
	e := newTestEvaluator()
	args := sassast.ArgInvocation{Positional: []sassast.Expr{
		&sassast.MapExpr{Pairs: []sassast.MapPair{{Key: stringLit("a"), Value: numLit(1)}}},
		stringLit("b"),
	}}
	v, err := e.CallFunction("", "map-get", args, blankRange())
	require.NoError(t, err)
	assert.True(t, value.IsNull(v))
}

func stringLit(s string) *sassast.StringExpr {
	return &sassast.StringExpr{Quoted: true, Text: ptext(s)}
}

func TestUserFunctionReturnsValue(t *testing.T) {
	e := newTestEvaluator()
	fn := &sassast.FuncDecl{
		Name: "double",
		Sig:  sassast.Signature{Params: []sassast.ParamDefault{{Name: "n"}}},
		Body: sassast.Block{
			&sassast.ReturnStmt{Value: &sassast.BinaryOp{
				Left:  sassast.NewVariableRef(blankRange(), "", "n"),
				Op:    "*",
				Right: numLit(2),
			}},
		},
	}
	e.env.DeclareFunction(fn)
	v, err := e.CallFunction("", "double", sassast.ArgInvocation{Positional: []sassast.Expr{numLit(21)}}, blankRange())
	require.NoError(t, err)
	n := v.(*value.Number)
	assert.Equal(t, float64(42), n.Val)
}

func TestUseSassMathBindsBuiltinModule(t *testing.T) {
	e := newTestEvaluator()
	err := e.execStmt(&sassast.UseStmt{URL: ptext("sass:math"), Namespace: "m"})
	require.NoError(t, err)

	v, err := e.CallFunction("m", "div", sassast.ArgInvocation{Positional: []sassast.Expr{numLit(1), numLit(4)}}, blankRange())
	require.NoError(t, err)
	n := v.(*value.Number)
	assert.InDelta(t, 0.25, n.Val, 1e-9)

	pi, err := e.lookupVariable(sassast.NewVariableRef(blankRange(), "m", "pi"))
	require.NoError(t, err)
	assert.InDelta(t, 3.14159, pi.(*value.Number).Val, 1e-4)
}

func TestUseSassMathWithRejectsConfiguration(t *testing.T) {
	e := newTestEvaluator()
	err := e.execStmt(&sassast.UseStmt{
		URL:  ptext("sass:math"),
		With: []sassast.Configuration{{Name: "foo", Value: numLit(1)}},
	})
	require.Error(t, err)
}

func TestSelectorModuleIsSuperselector(t *testing.T) {
	e := newTestEvaluator()
	require.NoError(t, e.execStmt(&sassast.UseStmt{URL: ptext("sass:selector"), Namespace: "sel"}))

	args := sassast.ArgInvocation{Positional: []sassast.Expr{stringLit(".a"), stringLit(".a.b")}}
	v, err := e.CallFunction("sel", "is-superselector", args, blankRange())
	require.NoError(t, err)
	assert.Equal(t, value.True, v)
}

func TestSelectorModuleNest(t *testing.T) {
	e := newTestEvaluator()
	require.NoError(t, e.execStmt(&sassast.UseStmt{URL: ptext("sass:selector"), Namespace: "sel"}))

	args := sassast.ArgInvocation{Positional: []sassast.Expr{stringLit(".a"), stringLit("&:hover")}}
	v, err := e.CallFunction("sel", "selector-nest", args, blankRange())
	require.NoError(t, err)
	s, ok := v.(*value.List)
	require.True(t, ok)
	require.Len(t, s.Items, 1)
}

func TestMetaGetFunctionAndCall(t *testing.T) {
	e := newTestEvaluator()
	fn := &sassast.FuncDecl{
		Name: "double",
		Sig:  sassast.Signature{Params: []sassast.ParamDefault{{Name: "n"}}},
		Body: sassast.Block{
			&sassast.ReturnStmt{Value: &sassast.BinaryOp{
				Left:  sassast.NewVariableRef(blankRange(), "", "n"),
				Op:    "*",
				Right: numLit(2),
			}},
		},
	}
	e.env.DeclareFunction(fn)

	ref, err := e.CallFunction("", "get-function", sassast.ArgInvocation{Positional: []sassast.Expr{stringLit("double")}}, blankRange())
	require.NoError(t, err)
	require.IsType(t, &value.FunctionRef{}, ref)

	refLit := sassast.NewVariableRef(blankRange(), "", "fn")
	e.env.SetVariable("fn", ref, false)
	args := sassast.ArgInvocation{Positional: []sassast.Expr{refLit, numLit(21)}}
	result, err := e.CallFunction("", "call", args, blankRange())
	require.NoError(t, err)
	assert.Equal(t, float64(42), result.(*value.Number).Val)
}

func TestErrorStmtRaisesUserErrorKind(t *testing.T) {
	e := newTestEvaluator()
	err := e.execStmt(&sassast.ErrorStmt{Message: stringLit("boom")})
	require.Error(t, err)
	evalErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, UserError, evalErr.Kind)
}

func TestAtRootDefaultPreservesMediaWrapper(t *testing.T) {
	e := newTestEvaluator()
	atRoot := &sassast.AtRootStmt{
		Body: sassast.Block{styleRule(".lifted", sassast.Block{decl("color", sassast.NewBool(blankRange(), true))})},
	}
	sheet := &sassast.Stylesheet{Body: sassast.Block{
		&sassast.MediaStmt{
			Query: ptext("screen"),
			Body: sassast.Block{
				styleRule(".a", sassast.Block{atRoot}),
			},
		},
	}}
	tree, _, err := e.Evaluate(sheet)
	require.NoError(t, err)

	root := tree.Node(tree.Root())
	require.Len(t, root.Children, 1)
	media := tree.Node(root.Children[0])
	assert.Equal(t, cssast.KindAtRule, media.Kind)

	var found bool
	for _, childIdx := range media.Children {
		child := tree.Node(childIdx)
		if child.Kind == cssast.KindStyleRule && child.StyleRule.Selector.String() == ".lifted" {
			found = true
		}
	}
	assert.True(t, found, "@at-root's lifted rule should still be nested under the enclosing @media")
}

func TestMixinContentRunsInCallSiteScope(t *testing.T) {
	e := newTestEvaluator()
	mixin := &sassast.MixinDecl{
		Name:           "wrap",
		AcceptsContent: true,
		Body:           sassast.Block{&sassast.ContentStmt{}},
	}
	e.env.DeclareMixin(mixin)
	e.env.SetVariable("outer", value.Unitless(7), false)

	sheet := &sassast.Stylesheet{Body: sassast.Block{
		styleRule(".a", sassast.Block{
			&sassast.Include{
				Name:       "wrap",
				HasContent: true,
				Content: sassast.Block{
					decl("width", sassast.NewVariableRef(blankRange(), "", "outer")),
				},
			},
		}),
	}}
	tree, _, err := e.Evaluate(sheet)
	require.NoError(t, err)
	root := tree.Node(tree.Root())
	rule := tree.Node(root.Children[0])
	d := tree.Node(rule.Children[0])
	assert.Equal(t, "7", d.Declaration.Value)
}
