package eval

import (
	"strings"

	"github.com/go-sass/sass/internal/logger"
	"github.com/go-sass/sass/internal/sassast"
	"github.com/go-sass/sass/internal/value"
)

// evalExpr is the "evaluate_expression(expr, environment) → Value"
// boundary operation (spec §4.4). Evaluation is strict except for the
// if() special form and the short-circuiting and/or operators.
func (e *Evaluator) evalExpr(expr sassast.Expr) (value.Value, error) {
	switch ex := expr.(type) {
	case *sassast.NumberLit:
		return ex.Value, nil
	case *sassast.ColorLit:
		return ex.Value, nil
	case *sassast.BoolLit:
		return value.FromBool(ex.Value), nil
	case *sassast.NullLit:
		return value.Null, nil
	case *sassast.StringExpr:
		text, err := e.evalInterpolation(ex.Text)
		if err != nil {
			return nil, err
		}
		if ex.Quoted {
			return value.Quoted(text), nil
		}
		return value.Unquoted(text), nil
	case *sassast.ListExpr:
		items := make([]value.Value, 0, len(ex.Items))
		for _, item := range ex.Items {
			v, err := e.evalExpr(item)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return value.NewList(items, ex.Sep, ex.Brackets), nil
	case *sassast.MapExpr:
		m := value.NewMap()
		for _, pair := range ex.Pairs {
			k, err := e.evalExpr(pair.Key)
			if err != nil {
				return nil, err
			}
			v, err := e.evalExpr(pair.Value)
			if err != nil {
				return nil, err
			}
			m.Set(k, v)
		}
		return m, nil
	case *sassast.VariableRef:
		return e.lookupVariable(ex)
	case *sassast.UnaryOp:
		return e.evalUnary(ex)
	case *sassast.BinaryOp:
		return e.evalBinary(ex)
	case *sassast.ParenExpr:
		return e.evalExpr(ex.Inner)
	case *sassast.IfExpr:
		cond, err := e.evalExpr(ex.Cond)
		if err != nil {
			return nil, err
		}
		if value.IsTruthy(cond) {
			return e.evalExpr(ex.Then)
		}
		return e.evalExpr(ex.Else)
	case *sassast.FuncCall:
		return e.evalFuncCall(ex)
	case *sassast.SelectorExpr:
		return value.Unquoted(e.currentSelector().String()), nil
	case *sassast.CalcExpr:
		return e.evalCalc(ex)
	default:
		return nil, newError(TypeError, expr.Range(), "unsupported expression node")
	}
}

func (e *Evaluator) lookupVariable(ref *sassast.VariableRef) (value.Value, error) {
	if ref.Namespace != "" {
		if modName, ok := e.env.Current.BuiltinUses[ref.Namespace]; ok {
			if v, ok := builtinModuleVars[modName][ref.Name]; ok {
				return v, nil
			}
			return nil, newError(UndefinedVariable, ref.Range(), "undefined variable $%s.%s", ref.Namespace, ref.Name)
		}
		mod := e.env.Namespace(ref.Namespace)
		if mod == nil {
			return nil, newError(UndefinedVariable, ref.Range(), "undefined namespace %q", ref.Namespace)
		}
		slot, ok := mod.LookupVariable(ref.Name)
		if !ok {
			return nil, newError(UndefinedVariable, ref.Range(), "undefined variable $%s.%s", ref.Namespace, ref.Name)
		}
		return slot.Value, nil
	}
	v, ok := e.env.GetVariable(ref.Name)
	if !ok {
		return nil, newError(UndefinedVariable, ref.Range(), "undefined variable $%s", ref.Name)
	}
	return v, nil
}

func (e *Evaluator) evalUnary(u *sassast.UnaryOp) (value.Value, error) {
	v, err := e.evalExpr(u.Operand)
	if err != nil {
		return nil, err
	}
	switch u.Op {
	case "not":
		return value.FromBool(!value.IsTruthy(v)), nil
	case "-":
		if n, ok := v.(*value.Number); ok {
			return value.NegateNumber(n), nil
		}
		return value.Unquoted("-" + value.ToCSS(v)), nil
	case "+":
		if _, ok := v.(*value.Number); ok {
			return v, nil
		}
		return value.Unquoted("+" + value.ToCSS(v)), nil
	default:
		return nil, newError(TypeError, u.Range(), "unknown unary operator %q", u.Op)
	}
}

func (e *Evaluator) evalBinary(b *sassast.BinaryOp) (value.Value, error) {
	if b.Op == "or" || b.Op == "and" {
		left, err := e.evalExpr(b.Left)
		if err != nil {
			return nil, err
		}
		truthy := value.IsTruthy(left)
		if b.Op == "or" && truthy {
			return left, nil
		}
		if b.Op == "and" && !truthy {
			return left, nil
		}
		return e.evalExpr(b.Right)
	}

	left, err := e.evalExpr(b.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.evalExpr(b.Right)
	if err != nil {
		return nil, err
	}

	switch b.Op {
	case "==":
		return value.FromBool(value.Equals(left, right)), nil
	case "!=":
		return value.FromBool(!value.Equals(left, right)), nil
	case "<", ">", "<=", ">=":
		cmp, opErr := value.Compare(left, right)
		if opErr != nil {
			return nil, opErrorToEval(opErr, b.Range())
		}
		switch b.Op {
		case "<":
			return value.FromBool(cmp < 0), nil
		case ">":
			return value.FromBool(cmp > 0), nil
		case "<=":
			return value.FromBool(cmp <= 0), nil
		default:
			return value.FromBool(cmp >= 0), nil
		}
	case "+":
		result, opErr := value.Add(left, right)
		return result, opErrorToEval(opErr, b.Range())
	case "-":
		result, opErr := value.Sub(left, right)
		return result, opErrorToEval(opErr, b.Range())
	case "*":
		result, opErr := value.Mul(left, right)
		return result, opErrorToEval(opErr, b.Range())
	case "/":
		result, opErr := value.Div(left, right)
		return result, opErrorToEval(opErr, b.Range())
	case "%":
		result, opErr := value.Mod(left, right)
		return result, opErrorToEval(opErr, b.Range())
	default:
		return nil, newError(TypeError, b.Range(), "unknown binary operator %q", b.Op)
	}
}

// opErrorToEval maps the value package's arithmetic errors onto the
// evaluator's typed error taxonomy; returns nil if opErr is nil so callers
// can write "return result, opErrorToEval(opErr, span)" directly.
func opErrorToEval(opErr *value.OpError, span logger.Range) error {
	if opErr == nil {
		return nil
	}
	kind := TypeError
	switch opErr.Kind {
	case "IncompatibleUnits":
		kind = IncompatibleUnits
	case "DivisionByZero":
		kind = DivisionByZero
	}
	return newError(kind, span, "%s", opErr.Message)
}

func (e *Evaluator) evalInterpolation(in sassast.Interpolation) (string, error) {
	if in.IsPlainText() {
		return in.PlainText(), nil
	}
	var sb strings.Builder
	for _, seg := range in {
		if !seg.IsExpr {
			sb.WriteString(seg.Text)
			continue
		}
		v, err := e.evalExpr(seg.Expr)
		if err != nil {
			return "", err
		}
		sb.WriteString(interpolatedString(v))
	}
	return sb.String(), nil
}

// interpolatedString renders a value the way interpolation does: quoted
// strings lose their quotes, everything else uses its normal CSS form.
func interpolatedString(v value.Value) string {
	if s, ok := v.(*value.SassString); ok {
		return s.Text
	}
	return value.ToCSS(v)
}

// evalFuncCall resolves a call to either a plain-CSS passthrough or the
// builtin/user function dispatch in call.go (spec §4.4).
func (e *Evaluator) evalFuncCall(ex *sassast.FuncCall) (value.Value, error) {
	name, err := e.evalInterpolation(ex.Name)
	if err != nil {
		return nil, err
	}
	if ex.IsPlainCSS {
		return e.renderPlainCSSCall(name, ex.Args)
	}
	return e.CallFunction(ex.Namespace, name, ex.Args, ex.Range())
}

// renderPlainCSSCall renders an unrecognized CSS function call (e.g.
// "rotate3d(...)") as unquoted text with its arguments evaluated but not
// otherwise interpreted, per spec §4.4's "unknown CSS functions pass
// through untouched".
func (e *Evaluator) renderPlainCSSCall(name string, args sassast.ArgInvocation) (value.Value, error) {
	parts := make([]string, 0, len(args.Positional)+len(args.Named))
	for _, p := range args.Positional {
		v, err := e.evalExpr(p)
		if err != nil {
			return nil, err
		}
		parts = append(parts, interpolatedString(v))
	}
	for _, n := range args.Named {
		v, err := e.evalExpr(n.Value)
		if err != nil {
			return nil, err
		}
		parts = append(parts, n.Name+": "+interpolatedString(v))
	}
	return value.Unquoted(name + "(" + strings.Join(parts, ", ") + ")"), nil
}

func (e *Evaluator) evalCalc(c *sassast.CalcExpr) (value.Value, error) {
	operands := make([]value.CalcOperand, 0, len(c.Args))
	for _, arg := range c.Args {
		v, err := e.evalExpr(arg)
		if err != nil {
			return nil, err
		}
		switch vv := v.(type) {
		case *value.Number:
			operands = append(operands, value.NumberOperand(vv))
		case *value.Calculation:
			operands = append(operands, value.TextOperand(value.FormatCalculation(vv)))
		default:
			operands = append(operands, value.TextOperand(interpolatedString(v)))
		}
	}
	calc := &value.Calculation{Name: c.Name, Args: operands}
	return value.SimplifyCalc(calc), nil
}
