package sassast

import (
	"github.com/go-sass/sass/internal/logger"
	"github.com/go-sass/sass/internal/value"
)

// Expr is implemented by every SassScript expression node (spec §3.3). The
// method is never called; it exists only to close the variant set the way
// evanw-esbuild/internal/css_ast.R closes its rule variants.
type Expr interface {
	isExpr()
	Range() logger.Range
}

type exprBase struct{ Loc logger.Range }

func (e exprBase) Range() logger.Range { return e.Loc }

// NumberLit is a literal number, e.g. "10px".
type NumberLit struct {
	exprBase
	Value *value.Number
}

// ColorLit is a literal color, e.g. "#fff" or "rebeccapurple".
type ColorLit struct {
	exprBase
	Value *value.Color
}

type BoolLit struct {
	exprBase
	Value bool
}

type NullLit struct{ exprBase }

// StringExpr is a (possibly) interpolated string literal; Quoted tracks
// whether it was written with quotes.
type StringExpr struct {
	exprBase
	Quoted bool
	Text   Interpolation
}

// ListExpr is a list literal, e.g. "(1, 2, 3)" or "1 2 3".
type ListExpr struct {
	exprBase
	Items    []Expr
	Sep      value.Separator
	Brackets bool
}

type MapPair struct {
	Key   Expr
	Value Expr
}

type MapExpr struct {
	exprBase
	Pairs []MapPair
}

// VariableRef is "$name" or "namespace.$name".
type VariableRef struct {
	exprBase
	Namespace string
	Name      string
}

// NamedArg is "$name: value" inside a call's argument list.
type NamedArg struct {
	Name  string
	Value Expr
}

// ArgInvocation is the argument list of a function/mixin call: positional
// args, named args, and optional rest/rest-keyword spreads ("...").
type ArgInvocation struct {
	Positional []Expr
	Named      []NamedArg
	Rest       Expr // may be nil
	RestIsKeywordOnly bool
}

// FuncCall is a function invocation; Name may be interpolated (e.g.
// "url(#{$path})"), and IsPlainCSS marks calls the evaluator should pass
// through untouched (unknown CSS functions) rather than dispatch to the
// builtin/user function tables.
type FuncCall struct {
	exprBase
	Namespace  string
	Name       Interpolation
	Args       ArgInvocation
	IsPlainCSS bool
}

type UnaryOp struct {
	exprBase
	Op      string // "-", "+", "not"
	Operand Expr
}

// Precedence table (spec §3.3), lowest to highest:
//
//	or
//	and
//	==  !=
//	<  >  <=  >=
//	+  -
//	*  /  %
const (
	PrecOr = iota
	PrecAnd
	PrecEquality
	PrecRelational
	PrecAdditive
	PrecMultiplicative
)

func PrecedenceOf(op string) int {
	switch op {
	case "or":
		return PrecOr
	case "and":
		return PrecAnd
	case "==", "!=":
		return PrecEquality
	case "<", ">", "<=", ">=":
		return PrecRelational
	case "+", "-":
		return PrecAdditive
	case "*", "/", "%":
		return PrecMultiplicative
	default:
		return -1
	}
}

type BinaryOp struct {
	exprBase
	Op          string
	Left, Right Expr
}

type ParenExpr struct {
	exprBase
	Inner Expr
}

// IfExpr is the if(cond, then, else) ternary special form: only the chosen
// branch is evaluated (spec §4.4).
type IfExpr struct {
	exprBase
	Cond, Then, Else Expr
}

// SelectorExpr is a bare "&" reference used inside a declaration value or
// function argument (as opposed to appearing in a style rule's selector,
// which is parsed separately).
type SelectorExpr struct{ exprBase }

// SupportsCondition is the unevaluated condition of an @supports query,
// built as a small tree so "and"/"or"/"not" and parenthesization survive
// until the query is merged with its enclosing context (spec §4.4).
type SupportsCondition struct {
	exprBase
	Kind     string // "decl", "and", "or", "not", "raw"
	Decl     *NamedArg
	Operands []SupportsCondition
	Raw      Interpolation
}

// CalcExpr is an unevaluated calc()/min()/max()/clamp() call; its arguments
// are expressions rather than resolved operands because they may contain
// variables or nested calc() calls evaluated at eval time (spec §3.1).
type CalcExpr struct {
	exprBase
	Name string
	Args []Expr
}

func (*NumberLit) isExpr()         {}
func (*ColorLit) isExpr()          {}
func (*BoolLit) isExpr()           {}
func (*NullLit) isExpr()           {}
func (*StringExpr) isExpr()        {}
func (*ListExpr) isExpr()          {}
func (*MapExpr) isExpr()           {}
func (*VariableRef) isExpr()       {}
func (*FuncCall) isExpr()          {}
func (*UnaryOp) isExpr()           {}
func (*BinaryOp) isExpr()          {}
func (*ParenExpr) isExpr()         {}
func (*IfExpr) isExpr()            {}
func (*SelectorExpr) isExpr()      {}
func (*SupportsCondition) isExpr() {}
func (*CalcExpr) isExpr()          {}

func NewNumber(r logger.Range, v *value.Number) *NumberLit { return &NumberLit{exprBase{r}, v} }
func NewBool(r logger.Range, v bool) *BoolLit               { return &BoolLit{exprBase{r}, v} }
func NewNull(r logger.Range) *NullLit                        { return &NullLit{exprBase{r}} }
func NewVariableRef(r logger.Range, ns, name string) *VariableRef {
	return &VariableRef{exprBase{r}, ns, name}
}
