package selector

import "fmt"

// MaxExtendDepth bounds the chained-extend recursion (spec §4.2's cycle
// guard: "ExtendCycle, suggested N=10000").
const MaxExtendDepth = 10000

// ExtendCycleError is returned when resolving @extend exceeds
// MaxExtendDepth, indicating the extensions form a cycle.
type ExtendCycleError struct {
	msg string
}

func (e *ExtendCycleError) Error() string { return e.msg }

// Extension is one "@extend target" (spec §4.2). Target is the simple
// selector being extended (a placeholder, class, id, or attribute
// selector); Extender is the complex selector doing the extending.
type Extension struct {
	Target   Simple
	Extender Complex
	Optional bool
}

// Extend resolves every extension against list, weaving each extender in
// place of the compound containing its target and returning the extended
// selectors together with the originals, except that an extended original
// containing a placeholder is not kept (spec §4.2: "extend(list, extensions,
// mode) → SelectorList"). Complex selectors left containing an unextended
// placeholder are the caller's responsibility to drop via
// List.WithoutPlaceholders before serialization.
func Extend(list List, extensions []Extension) (List, error) {
	var out List
	for _, c := range list.Complexes {
		woven, err := extendComplex(c, extensions, 0)
		if err != nil {
			return List{}, err
		}
		out.Complexes = append(out.Complexes, woven...)
	}
	out.Complexes = dedupComplexes(out.Complexes)
	return out, nil
}

// ExtendOptionalUnsatisfied returns the required (non-optional) extensions
// that matched nothing, i.e. those not marked in matched; optional ones are
// never returned. Surfacing them as a compile error is left to the caller;
// this helper only classifies.
func ExtendOptionalUnsatisfied(extensions []Extension, matched map[*Extension]bool) []*Extension {
	var unsatisfied []*Extension
	for i := range extensions {
		ext := &extensions[i]
		if !ext.Optional && !matched[ext] {
			unsatisfied = append(unsatisfied, ext)
		}
	}
	return unsatisfied
}

func extendComplex(c Complex, extensions []Extension, depth int) ([]Complex, error) {
	if depth > MaxExtendDepth {
		return nil, &ExtendCycleError{fmt.Sprintf("extend chain exceeded %d levels; selectors likely form a cycle", MaxExtendDepth)}
	}

	var woven []Complex
	anyMatch := false

	for i, comp := range c.Compounds {
		for _, ext := range extensions {
			if !compoundHasSimple(comp, ext.Target) {
				continue
			}
			extenderCompounds := ext.Extender.Compounds
			if len(extenderCompounds) == 0 {
				continue
			}
			withoutTarget := removeSimple(comp, ext.Target)
			last := extenderCompounds[len(extenderCompounds)-1]
			unified, ok := UnifyCompounds(withoutTarget, last)
			if !ok {
				continue
			}
			anyMatch = true
			result := buildWovenComplex(c, i, ext.Extender, unified)
			sub, err := extendComplex(result, extensions, depth+1)
			if err != nil {
				return nil, err
			}
			woven = append(woven, sub...)
		}
	}

	if !anyMatch {
		return []Complex{c}, nil
	}
	if !c.HasPlaceholder() {
		woven = append(woven, c)
	}
	return dedupComplexes(woven), nil
}

// buildWovenComplex splices extender in place of compound index idx of
// original, joining the extender's own ancestor compounds to what remains
// of original with a descendant combinator. Full weave (exploring every
// valid interleaving of two independent ancestor chains) is not attempted;
// the common case of extending with a single compound or a chain anchored
// at idx==0 is exact, other shapes degrade to a safe descendant join.
func buildWovenComplex(original Complex, idx int, extender Complex, unified Compound) Complex {
	var compounds []Compound
	var combinators []Combinator

	extPrefix := extender.Compounds[:len(extender.Compounds)-1]
	if len(extPrefix) > 0 {
		compounds = append(compounds, extPrefix...)
		combinators = append(combinators, extender.Combinators[:len(extPrefix)-1]...)
	}

	origPrefix := original.Compounds[:idx]
	if len(origPrefix) > 0 {
		if len(compounds) > 0 {
			combinators = append(combinators, Descendant)
		}
		compounds = append(compounds, origPrefix...)
		if idx > 1 {
			combinators = append(combinators, original.Combinators[:idx-1]...)
		}
	}

	if len(compounds) > 0 {
		if idx > 0 {
			combinators = append(combinators, original.Combinators[idx-1])
		} else {
			combinators = append(combinators, extender.Combinators[len(extPrefix)-1])
		}
	}
	compounds = append(compounds, unified)

	if idx < len(original.Compounds)-1 {
		combinators = append(combinators, original.Combinators[idx:]...)
		compounds = append(compounds, original.Compounds[idx+1:]...)
	}

	return Complex{Compounds: compounds, Combinators: combinators}
}

func compoundHasSimple(c Compound, target Simple) bool {
	targetStr := target.String()
	for _, s := range c.Simples {
		if s.String() == targetStr {
			return true
		}
	}
	return false
}

func removeSimple(c Compound, target Simple) Compound {
	targetStr := target.String()
	var out Compound
	for _, s := range c.Simples {
		if s.String() != targetStr {
			out.Simples = append(out.Simples, s)
		}
	}
	return out
}

func dedupComplexes(in []Complex) []Complex {
	seen := map[string]bool{}
	var out []Complex
	for _, c := range in {
		key := c.String()
		if !seen[key] {
			seen[key] = true
			out = append(out, c)
		}
	}
	return out
}
