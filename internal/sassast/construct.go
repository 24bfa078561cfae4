package sassast

import (
	"github.com/go-sass/sass/internal/logger"
	"github.com/go-sass/sass/internal/value"
)

// The remaining constructors below exist for the same reason NewNumber,
// NewBool, NewNull and NewVariableRef do in expr.go: exprBase/stmtBase are
// unexported types, so a builder outside this package (the parser, or a
// hand-assembled test fixture) cannot name them in a composite literal and
// attaches a node's source span through a constructor declared here.

func NewColor(r logger.Range, v *value.Color) *ColorLit { return &ColorLit{exprBase{r}, v} }

func NewString(r logger.Range, quoted bool, text Interpolation) *StringExpr {
	return &StringExpr{exprBase{r}, quoted, text}
}

func NewList(r logger.Range, items []Expr, sep value.Separator, brackets bool) *ListExpr {
	return &ListExpr{exprBase{r}, items, sep, brackets}
}

func NewMapExpr(r logger.Range, pairs []MapPair) *MapExpr {
	return &MapExpr{exprBase{r}, pairs}
}

func NewFuncCall(r logger.Range, namespace string, name Interpolation, args ArgInvocation, isPlainCSS bool) *FuncCall {
	return &FuncCall{exprBase{r}, namespace, name, args, isPlainCSS}
}

func NewUnary(r logger.Range, op string, operand Expr) *UnaryOp {
	return &UnaryOp{exprBase{r}, op, operand}
}

func NewBinary(r logger.Range, op string, left, right Expr) *BinaryOp {
	return &BinaryOp{exprBase{r}, op, left, right}
}

func NewParen(r logger.Range, inner Expr) *ParenExpr { return &ParenExpr{exprBase{r}, inner} }

func NewIf(r logger.Range, cond, then, els Expr) *IfExpr {
	return &IfExpr{exprBase{r}, cond, then, els}
}

func NewSelectorExpr(r logger.Range) *SelectorExpr { return &SelectorExpr{exprBase{r}} }

func NewSupportsCondition(r logger.Range, kind string, decl *NamedArg, operands []SupportsCondition, raw Interpolation) *SupportsCondition {
	return &SupportsCondition{exprBase{r}, kind, decl, operands, raw}
}

func NewCalc(r logger.Range, name string, args []Expr) *CalcExpr {
	return &CalcExpr{exprBase{r}, name, args}
}

func NewVarDecl(r logger.Range, namespace, name string, value Expr, isDefault, global bool) *VarDecl {
	return &VarDecl{stmtBase{r}, namespace, name, value, isDefault, global}
}

func NewStyleRule(r logger.Range, selector Interpolation, body Block) *StyleRule {
	return &StyleRule{stmtBase{r}, selector, body}
}

func NewKnownAtRule(r logger.Range, name string, prelude Interpolation, body Block, hasBody bool) *KnownAtRule {
	return &KnownAtRule{stmtBase{r}, name, prelude, body, hasBody}
}

func NewDeclaration(r logger.Range, name Interpolation, value Expr, body Block, important bool, isCustom bool, customRaw Interpolation) *Declaration {
	return &Declaration{stmtBase{r}, name, value, body, important, isCustom, customRaw}
}

func NewFuncDecl(r logger.Range, namespace, name string, sig Signature, body Block) *FuncDecl {
	return &FuncDecl{stmtBase{r}, namespace, name, sig, body}
}

func NewMixinDecl(r logger.Range, namespace, name string, sig Signature, body Block, acceptsContent bool) *MixinDecl {
	return &MixinDecl{stmtBase{r}, namespace, name, sig, body, acceptsContent}
}

func NewInclude(r logger.Range, namespace, name string, args ArgInvocation, contentArgs Signature, content Block, hasContent bool) *Include {
	return &Include{stmtBase{r}, namespace, name, args, contentArgs, content, hasContent}
}

func NewContent(r logger.Range, args ArgInvocation) *ContentStmt { return &ContentStmt{stmtBase{r}, args} }

func NewIf_(r logger.Range, clauses []IfClause, els Block) *IfStmt {
	return &IfStmt{stmtBase{r}, clauses, els}
}

func NewEach(r logger.Range, vars []string, in Expr, body Block) *EachStmt {
	return &EachStmt{stmtBase{r}, vars, in, body}
}

func NewFor(r logger.Range, v string, from, to Expr, inclusive bool, body Block) *ForStmt {
	return &ForStmt{stmtBase{r}, v, from, to, inclusive, body}
}

func NewWhile(r logger.Range, cond Expr, body Block) *WhileStmt {
	return &WhileStmt{stmtBase{r}, cond, body}
}

func NewExtend(r logger.Range, target Interpolation, optional bool) *ExtendStmt {
	return &ExtendStmt{stmtBase{r}, target, optional}
}

func NewAtRoot(r logger.Range, query Expr, body Block) *AtRootStmt {
	return &AtRootStmt{stmtBase{r}, query, body}
}

func NewMediaStmt(r logger.Range, query Interpolation, body Block) *MediaStmt {
	return &MediaStmt{stmtBase{r}, query, body}
}

func NewSupportsStmt(r logger.Range, condition Expr, body Block) *SupportsStmt {
	return &SupportsStmt{stmtBase{r}, condition, body}
}

func NewImportStmt(r logger.Range, targets []ImportTarget) *ImportStmt {
	return &ImportStmt{stmtBase{r}, targets}
}

func NewUse(r logger.Range, url Interpolation, namespace string, with []Configuration) *UseStmt {
	return &UseStmt{stmtBase{r}, url, namespace, with}
}

func NewForward(r logger.Range, url Interpolation, prefix string, vis VisibilitySpec, with []Configuration) *ForwardStmt {
	return &ForwardStmt{stmtBase{r}, url, prefix, vis, with}
}

func NewReturn(r logger.Range, value Expr) *ReturnStmt { return &ReturnStmt{stmtBase{r}, value} }

func NewWarn(r logger.Range, message Expr) *WarnStmt { return &WarnStmt{stmtBase{r}, message} }

func NewError(r logger.Range, message Expr) *ErrorStmt { return &ErrorStmt{stmtBase{r}, message} }

func NewDebug(r logger.Range, message Expr) *DebugStmt { return &DebugStmt{stmtBase{r}, message} }

func NewLoudComment(r logger.Range, text string) *LoudComment { return &LoudComment{stmtBase{r}, text} }

func NewSilentComment(r logger.Range, text string) *SilentComment {
	return &SilentComment{stmtBase{r}, text}
}
