package selector

// IsSuperselector reports whether every element matched by b is also
// matched by a (spec §4.2: "is_superselector(a,b) → bool"). Matching
// proceeds from the rightmost compound backward, since that's the compound
// that determines which elements a complex selector matches.
func IsSuperselector(a, b Complex) bool {
	if len(a.Compounds) == 0 {
		return true
	}
	if len(b.Compounds) == 0 {
		return false
	}
	return complexSuperselector(a.Compounds, a.Combinators, b.Compounds, b.Combinators)
}

// ListIsSuperselector reports whether a is a superselector of b: every
// complex selector in b is matched by at least one complex selector in a.
func ListIsSuperselector(a, b List) bool {
	for _, bc := range b.Complexes {
		covered := false
		for _, ac := range a.Complexes {
			if IsSuperselector(ac, bc) {
				covered = true
				break
			}
		}
		if !covered {
			return false
		}
	}
	return true
}

func complexSuperselector(aComp []Compound, aComb []Combinator, bComp []Compound, bComb []Combinator) bool {
	ai := len(aComp) - 1
	bi := len(bComp) - 1
	for {
		if bi < 0 {
			return false
		}
		if !compoundIsSuperselector(aComp[ai], bComp[bi]) {
			return false
		}
		if ai == 0 {
			return true
		}
		combinator := aComb[ai-1]
		ai--
		switch combinator {
		case Descendant:
			bi--
			matched := false
			for bi >= 0 {
				if compoundIsSuperselector(aComp[ai], bComp[bi]) {
					matched = true
					break
				}
				bi--
			}
			if !matched {
				return false
			}
		case Child:
			if bi == 0 || bComb[bi-1] != Child {
				return false
			}
			bi--
		case NextSibling:
			if bi == 0 || bComb[bi-1] != NextSibling {
				return false
			}
			bi--
		case FollowingSibling:
			if bi == 0 || (bComb[bi-1] != FollowingSibling && bComb[bi-1] != NextSibling) {
				return false
			}
			bi--
		}
	}
}

// compoundIsSuperselector reports whether every constraint in a is also
// present in b, so that anything matching b also matches a.
func compoundIsSuperselector(a, b Compound) bool {
	for _, s := range a.Simples {
		switch s.(type) {
		case *Ampersand, *UniversalSelector:
			continue
		}
		if !compoundSatisfies(b, s) {
			return false
		}
	}
	return true
}

func compoundSatisfies(b Compound, target Simple) bool {
	targetStr := target.String()
	for _, s := range b.Simples {
		if s.String() == targetStr {
			return true
		}
	}
	if pc, ok := target.(*PseudoClass); ok && pc.Nested != nil {
		for _, complex := range pc.Nested.Complexes {
			if len(complex.Compounds) == 1 && compoundIsSuperselector(complex.Compounds[0], b) {
				return true
			}
		}
	}
	return false
}
