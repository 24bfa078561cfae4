package value

import "strings"

// Calculation preserves the CSS calc() algebra (spec §3.1): it is not
// eagerly reduced to a Number because its arguments may contain unresolved
// CSS custom properties or environment() references that only plain-CSS
// output understands, and because calc(1px + 1%) cannot be folded at all.
type Calculation struct {
	Name string // "calc", "min", "max", "clamp", ...
	Args []CalcOperand
}

// CalcOperand is one argument slot inside a Calculation: a resolved number,
// a nested calculation, or an unquoted string fallback for anything the
// evaluator couldn't fold (e.g. a bare CSS keyword like "infinity").
type CalcOperand struct {
	Number      *Number
	Calculation *Calculation
	Operator    string // "+", "-", "*", "/", or "" for a leaf operand
	Text        string // used when Number and Calculation are both nil
}

func NumberOperand(n *Number) CalcOperand { return CalcOperand{Number: n} }
func TextOperand(s string) CalcOperand    { return CalcOperand{Text: s} }

// FormatCalculation renders a calc()-family value back to CSS text.
func FormatCalculation(c *Calculation) string {
	var sb strings.Builder
	sb.WriteString(c.Name)
	sb.WriteByte('(')
	for i, arg := range c.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(formatCalcOperand(arg))
	}
	sb.WriteByte(')')
	return sb.String()
}

func formatCalcOperand(op CalcOperand) string {
	switch {
	case op.Number != nil:
		return FormatNumber(op.Number.Val) + op.Number.Unit()
	case op.Calculation != nil:
		return FormatCalculation(op.Calculation)
	default:
		return op.Text
	}
}

// SimplifyCalc collapses a calc() whose single argument is a fully-resolved
// Number to that Number. Every other calculation is returned unchanged:
// numeric operands are not folded against each other, even when their
// units are compatible.
func SimplifyCalc(c *Calculation) Value {
	if c.Name == "calc" && len(c.Args) == 1 && c.Args[0].Number != nil && c.Args[0].Operator == "" {
		return c.Args[0].Number
	}
	return c
}
