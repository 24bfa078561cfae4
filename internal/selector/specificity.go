package selector

// Specificity is the (id, class, element) triple used to rank selectors
// (spec §3.5, glossary). Pseudo-classes count as classes except for
// pseudo-elements, which count as elements; nested selector arguments
// (":not(...)" etc.) contribute the specificity of their most specific
// branch per the CSS Selectors spec.
type Specificity struct {
	IDs, Classes, Elements int
}

func (a Specificity) Less(b Specificity) bool {
	if a.IDs != b.IDs {
		return a.IDs < b.IDs
	}
	if a.Classes != b.Classes {
		return a.Classes < b.Classes
	}
	return a.Elements < b.Elements
}

func (a Specificity) GreaterOrEqual(b Specificity) bool {
	return !a.Less(b)
}

func (a Specificity) Add(b Specificity) Specificity {
	return Specificity{a.IDs + b.IDs, a.Classes + b.Classes, a.Elements + b.Elements}
}

// zeroSpecificityPseudoClasses lists the pseudo-classes that count as zero
// specificity: ":where()", which the CSS spec defines as
// zero-specificity.
var zeroSpecificityPseudoClasses = map[string]bool{
	"where": true,
}

func simpleSpecificity(s Simple) Specificity {
	switch s := s.(type) {
	case *TypeSelector:
		return Specificity{0, 0, 1}
	case *UniversalSelector, *Ampersand:
		return Specificity{}
	case *ClassSelector, *AttributeSelector:
		return Specificity{0, 1, 0}
	case *IDSelector:
		return Specificity{1, 0, 0}
	case *Placeholder:
		return Specificity{0, 1, 0}
	case *PseudoClass:
		if s.Element {
			return Specificity{0, 0, 1}
		}
		if zeroSpecificityPseudoClasses[s.Name] {
			if s.Nested != nil {
				return Specificity{}
			}
		}
		if s.Nested != nil {
			return nestedMaxSpecificity(*s.Nested)
		}
		return Specificity{0, 1, 0}
	default:
		return Specificity{}
	}
}

func nestedMaxSpecificity(list List) Specificity {
	var max Specificity
	for _, complex := range list.Complexes {
		s := ComplexSpecificity(complex)
		if max.Less(s) {
			max = s
		}
	}
	return max
}

func CompoundSpecificity(c Compound) Specificity {
	var total Specificity
	for _, s := range c.Simples {
		total = total.Add(simpleSpecificity(s))
	}
	return total
}

// ComplexSpecificity sums every compound's specificity (spec §4.2:
// "specificity(selector) → (u32,u32,u32)").
func ComplexSpecificity(c Complex) Specificity {
	var total Specificity
	for _, comp := range c.Compounds {
		total = total.Add(CompoundSpecificity(comp))
	}
	return total
}
