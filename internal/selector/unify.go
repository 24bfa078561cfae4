package selector

// UnifyCompounds merges two compound selectors into one that matches only
// elements matched by both, failing when they make contradictory demands
// (two distinct type selectors, or two distinct IDs) (spec §4.2:
// "unify(a,b) → SelectorList?").
func UnifyCompounds(a, b Compound) (Compound, bool) {
	var out Compound
	seen := map[string]bool{}
	var typeSel *TypeSelector
	var idSel *IDSelector

	add := func(c Compound) bool {
		for _, s := range c.Simples {
			switch t := s.(type) {
			case *TypeSelector:
				if typeSel != nil && typeSel.String() != t.String() {
					return false
				}
				if typeSel == nil {
					typeSel = t
				}
			case *IDSelector:
				if idSel != nil && idSel.String() != t.String() {
					return false
				}
				if idSel == nil {
					idSel = t
				}
			case *UniversalSelector:
				// contributes nothing beyond what's already required
			default:
				key := s.String()
				if !seen[key] {
					seen[key] = true
					out.Simples = append(out.Simples, s)
				}
			}
		}
		return true
	}

	if !add(a) || !add(b) {
		return Compound{}, false
	}

	result := Compound{}
	if typeSel != nil {
		result.Simples = append(result.Simples, typeSel)
	}
	if idSel != nil {
		result.Simples = append(result.Simples, idSel)
	}
	result.Simples = append(result.Simples, out.Simples...)
	return result, true
}

// Unify merges two complex selectors by unifying their trailing compounds
// and requiring the remaining compounds of each to form a valid descendant
// chain around the merged compound. It returns ok=false for combinations
// that would require general weave permutation (distinct non-descendant
// prefixes on both sides), which this implementation doesn't attempt.
func Unify(a, b Complex) (Complex, bool) {
	if len(a.Compounds) == 0 || len(b.Compounds) == 0 {
		return Complex{}, false
	}
	aLast := a.Compounds[len(a.Compounds)-1]
	bLast := b.Compounds[len(b.Compounds)-1]
	merged, ok := UnifyCompounds(aLast, bLast)
	if !ok {
		return Complex{}, false
	}
	switch {
	case len(a.Compounds) == 1 && len(b.Compounds) == 1:
		return Complex{Compounds: []Compound{merged}}, true
	case len(a.Compounds) == 1:
		compounds := append(append([]Compound{}, b.Compounds[:len(b.Compounds)-1]...), merged)
		return Complex{Compounds: compounds, Combinators: b.Combinators}, true
	case len(b.Compounds) == 1:
		compounds := append(append([]Compound{}, a.Compounds[:len(a.Compounds)-1]...), merged)
		return Complex{Compounds: compounds, Combinators: a.Combinators}, true
	default:
		return Complex{}, false
	}
}
