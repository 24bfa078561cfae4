package value

// ToCSS writes the canonical CSS representation of v (spec §4.1's
// `to_css(ctx)` hook). Compressed-vs-expanded formatting differences for
// numbers/colors are handled by the printer package, which calls
// FormatNumber/FormatColor directly where style matters; ToCSS gives the
// expanded-equivalent text used by string interpolation and concatenation.
func ToCSS(v Value) string {
	switch v := v.(type) {
	case *Number:
		return FormatNumber(v.Val) + v.Unit()
	case *SassString:
		return FormatString(v)
	case *Color:
		return FormatColor(v, false)
	case Boolean:
		if v {
			return "true"
		}
		return "false"
	case nullValue:
		return ""
	case *List:
		return listToCSS(v.Items, v.Separator, v.Brackets)
	case *ArgumentList:
		return listToCSS(v.Items, v.Separator, false)
	case *Map:
		// Maps have no CSS representation; callers should reject this
		// before reaching a declaration value. Used only for errors/debug.
		return Inspect(v)
	case *Calculation:
		return FormatCalculation(v)
	case *FunctionRef:
		return "get-function(\"" + v.Name + "\")"
	default:
		return ""
	}
}

func listToCSS(items []Value, sep Separator, brackets bool) string {
	var visible []Value
	for _, it := range items {
		if IsNull(it) {
			continue
		}
		visible = append(visible, it)
	}
	sepStr := " "
	if sep == SepComma {
		sepStr = ", "
	} else if sep == SepSlash {
		sepStr = "/"
	}
	s := ""
	if brackets {
		s += "["
	}
	for i, it := range visible {
		if i > 0 {
			s += sepStr
		}
		s += ToCSS(it)
	}
	if brackets {
		s += "]"
	}
	return s
}
