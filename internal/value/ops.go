package value

import "fmt"

// Add implements Sass "+" across the documented variant combinations (spec
// §4.1): numbers add with unit algebra, strings concatenate, legacy rgb
// colors add channel-wise with clamping, and a value plus a string
// coerces the left side to its CSS text and concatenates.
func Add(a, b Value) (Value, *OpError) {
	switch av := a.(type) {
	case *Number:
		if bv, ok := b.(*Number); ok {
			return AddNumbers(av, bv)
		}
		if bv, ok := b.(*SassString); ok {
			return &SassString{Quoted: bv.Quoted, Text: FormatNumber(av.Val) + av.Unit() + bv.Text}, nil
		}
	case *SassString:
		return ConcatStrings(av, ToCSS(b)), nil
	case *Color:
		if bv, ok := b.(*Color); ok && av.Legacy && bv.Legacy {
			return addColors(av, bv)
		}
	}
	if _, ok := a.(*SassString); !ok {
		if bv, ok := b.(*SassString); ok {
			return &SassString{Quoted: bv.Quoted, Text: ToCSS(a) + bv.Text}, nil
		}
	}
	return nil, typeError("%s + %s is not supported", a.TypeName(), b.TypeName())
}

func addColors(a, b *Color) (Value, *OpError) {
	clamp := func(v float64) float64 { return clamp01(v) }
	return &Color{
		Space: SpaceRGB, Legacy: true,
		C1: clamp(a.C1 + b.C1), C2: clamp(a.C2 + b.C2), C3: clamp(a.C3 + b.C3),
		Alpha: a.Alpha,
	}, nil
}

func Sub(a, b Value) (Value, *OpError) {
	if av, ok := a.(*Number); ok {
		if bv, ok := b.(*Number); ok {
			return SubNumbers(av, bv)
		}
	}
	if av, ok := a.(*Color); ok {
		if bv, ok := b.(*Color); ok && av.Legacy && bv.Legacy {
			return &Color{Space: SpaceRGB, Legacy: true,
				C1: clamp01(av.C1 - bv.C1), C2: clamp01(av.C2 - bv.C2), C3: clamp01(av.C3 - bv.C3), Alpha: av.Alpha}, nil
		}
	}
	// Sass treats "a - b" on non-numeric, non-color operands as string
	// concatenation with a literal "-" in between, e.g. `bold - italic`.
	return &SassString{Text: ToCSS(a) + "-" + ToCSS(b)}, nil
}

func Mul(a, b Value) (Value, *OpError) {
	av, ok := a.(*Number)
	if !ok {
		return nil, typeError("%s * %s is not supported", a.TypeName(), b.TypeName())
	}
	bv, ok := b.(*Number)
	if !ok {
		return nil, typeError("%s * %s is not supported", a.TypeName(), b.TypeName())
	}
	return MulNumbers(av, bv)
}

func Div(a, b Value) (Value, *OpError) {
	if av, ok := a.(*Number); ok {
		if bv, ok := b.(*Number); ok {
			return DivNumbers(av, bv)
		}
	}
	// Slash division outside of math context falls back to an unquoted
	// string join, matching Sass's "slash as separator" legacy behavior.
	return &SassString{Text: ToCSS(a) + "/" + ToCSS(b)}, nil
}

func Mod(a, b Value) (Value, *OpError) {
	av, ok := a.(*Number)
	if !ok {
		return nil, typeError("%s %% %s is not supported", a.TypeName(), b.TypeName())
	}
	bv, ok := b.(*Number)
	if !ok {
		return nil, typeError("%s %% %s is not supported", a.TypeName(), b.TypeName())
	}
	return ModNumbers(av, bv)
}

func Negate(a Value) (Value, *OpError) {
	if av, ok := a.(*Number); ok {
		return NegateNumber(av), nil
	}
	return &SassString{Text: "-" + ToCSS(a)}, nil
}

// Compare implements "<", "<=", ">", ">=": only numbers have a total order.
func Compare(a, b Value) (int, *OpError) {
	av, ok := a.(*Number)
	if !ok {
		return 0, typeError("%s is not a number", a.TypeName())
	}
	bv, ok := b.(*Number)
	if !ok {
		return 0, typeError("%s is not a number", b.TypeName())
	}
	return CompareNumbers(av, bv)
}

// Inspect renders a value for @debug/meta.inspect: unlike ToCSS, strings
// keep their quotes and maps render as "(k: v, ...)".
func Inspect(v Value) string {
	switch v := v.(type) {
	case *SassString:
		if v.Quoted {
			return FormatString(v)
		}
		return v.Text
	case *Map:
		if v.Len() == 0 {
			return "()"
		}
		s := "("
		for i, k := range v.Keys {
			if i > 0 {
				s += ", "
			}
			s += fmt.Sprintf("%s: %s", Inspect(k), Inspect(v.Values[i]))
		}
		return s + ")"
	case *List:
		return inspectList(v.Items, v.Separator, v.Brackets)
	case *ArgumentList:
		return inspectList(v.Items, v.Separator, false)
	case nullValue:
		return "null"
	default:
		return ToCSS(v)
	}
}

func inspectList(items []Value, sep Separator, brackets bool) string {
	open, close := "", ""
	if brackets {
		open, close = "[", "]"
	}
	if len(items) == 0 {
		if brackets {
			return "[]"
		}
		return "()"
	}
	s := open
	sepStr := " "
	switch sep {
	case SepComma:
		sepStr = ", "
	case SepSlash:
		sepStr = " / "
	}
	for i, it := range items {
		if i > 0 {
			s += sepStr
		}
		s += Inspect(it)
	}
	return s + close
}
