// Package sassast defines the immutable Sass syntax tree consumed by the
// evaluator (spec §3.3). In the full system this tree is built by an
// external parser from SCSS or indented-syntax source; this package only
// defines the node types and the builders a parser (or, in tests, a
// hand-assembled fixture) uses to construct them.
package sassast

// Segment is one element of an Interpolation: either a plain-text run or an
// embedded expression. Exactly one of Text/Expr is meaningful, selected by
// IsExpr.
type Segment struct {
	IsExpr bool
	Text   string
	Expr   Expr
}

// Interpolation is a sequence of alternating plain-text and expression
// segments (spec §3.3). Builders must never push two adjacent plain
// segments; InterpBuilder enforces that invariant by merging them.
type Interpolation []Segment

// IsPlainText reports whether the interpolation contains no expressions,
// letting callers skip expression evaluation entirely for static text.
func (in Interpolation) IsPlainText() bool {
	for _, seg := range in {
		if seg.IsExpr {
			return false
		}
	}
	return true
}

// PlainText returns the concatenated text of a plain-text-only
// interpolation. Expression segments contribute nothing to the result, so
// callers check IsPlainText first.
func (in Interpolation) PlainText() string {
	s := ""
	for _, seg := range in {
		s += seg.Text
	}
	return s
}

// InterpBuilder assembles an Interpolation while enforcing the "no two
// adjacent plain segments" invariant (spec §9 design notes).
type InterpBuilder struct {
	segments Interpolation
}

func (b *InterpBuilder) AddText(text string) *InterpBuilder {
	if text == "" {
		return b
	}
	if n := len(b.segments); n > 0 && !b.segments[n-1].IsExpr {
		b.segments[n-1].Text += text
		return b
	}
	b.segments = append(b.segments, Segment{Text: text})
	return b
}

func (b *InterpBuilder) AddExpr(e Expr) *InterpBuilder {
	b.segments = append(b.segments, Segment{IsExpr: true, Expr: e})
	return b
}

func (b *InterpBuilder) Build() Interpolation {
	return b.segments
}

// PlainInterpolation is a convenience constructor for interpolation-shaped
// fields that are, in a given test fixture, always static text.
func PlainInterpolation(text string) Interpolation {
	if text == "" {
		return nil
	}
	return Interpolation{{Text: text}}
}
