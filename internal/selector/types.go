// Package selector implements the selector model and the @extend engine
// (spec §3.5, §4.2): parsing, specificity, superselector checks, unify, and
// the weave-based extension algorithm.
package selector

import "strings"

// Combinator joins two compound selectors inside a ComplexSelector.
type Combinator uint8

const (
	Descendant Combinator = iota // whitespace
	Child                        // ">"
	NextSibling                  // "+"
	FollowingSibling             // "~"
)

func (c Combinator) String() string {
	switch c {
	case Child:
		return ">"
	case NextSibling:
		return "+"
	case FollowingSibling:
		return "~"
	default:
		return ""
	}
}

// Simple is implemented by every simple-selector variant (spec §3.5).
type Simple interface {
	isSimple()
	String() string
}

type TypeSelector struct {
	Namespace *string
	Name      string
}

type UniversalSelector struct {
	Namespace *string
}

type ClassSelector struct{ Name string }
type IDSelector struct{ Name string }

type AttributeSelector struct {
	Namespace       *string
	Name            string
	Op              string // "", "=", "~=", "|=", "^=", "$=", "*="
	Value           string
	CaseInsensitive bool
}

// PseudoClass covers both pseudo-classes and pseudo-elements (Element is
// true for "::foo" / legacy single-colon element forms). Nested may hold a
// nested selector list for ":not/:is/:where/:has/:nth-*(of S)"; Arg holds
// the raw argument text otherwise (e.g. the "2n+1" of ":nth-child").
type PseudoClass struct {
	Name    string
	Element bool
	Arg     string
	Nested  *List
}

// Placeholder is "%name": never emitted unless extended (spec §4.2).
type Placeholder struct{ Name string }

// Ampersand is the Sass parent-selector reference "&".
type Ampersand struct{}

func (*TypeSelector) isSimple()      {}
func (*UniversalSelector) isSimple() {}
func (*ClassSelector) isSimple()     {}
func (*IDSelector) isSimple()        {}
func (*AttributeSelector) isSimple() {}
func (*PseudoClass) isSimple()       {}
func (*Placeholder) isSimple()       {}
func (*Ampersand) isSimple()         {}

func (s *TypeSelector) String() string {
	if s.Namespace != nil {
		return *s.Namespace + "|" + s.Name
	}
	return s.Name
}
func (s *UniversalSelector) String() string {
	if s.Namespace != nil {
		return *s.Namespace + "|*"
	}
	return "*"
}
func (s *ClassSelector) String() string { return "." + s.Name }
func (s *IDSelector) String() string    { return "#" + s.Name }
func (s *AttributeSelector) String() string {
	if s.Op == "" {
		return "[" + s.Name + "]"
	}
	ci := ""
	if s.CaseInsensitive {
		ci = " i"
	}
	return "[" + s.Name + s.Op + `"` + s.Value + `"` + ci + "]"
}
func (s *PseudoClass) String() string {
	colon := ":"
	if s.Element {
		colon = "::"
	}
	if s.Nested != nil {
		return colon + s.Name + "(" + s.Nested.String() + ")"
	}
	if s.Arg != "" {
		return colon + s.Name + "(" + s.Arg + ")"
	}
	return colon + s.Name
}
func (s *Placeholder) String() string { return "%" + s.Name }
func (s *Ampersand) String() string   { return "&" }

// Compound is a sequence of simple selectors with no combinators between
// them (spec glossary: "Compound selector").
type Compound struct {
	Simples []Simple
}

func (c Compound) String() string {
	var sb strings.Builder
	for _, s := range c.Simples {
		sb.WriteString(s.String())
	}
	return sb.String()
}

func (c Compound) HasPlaceholder() bool {
	for _, s := range c.Simples {
		if _, ok := s.(*Placeholder); ok {
			return true
		}
	}
	return false
}

func (c Compound) HasAmpersand() bool {
	for _, s := range c.Simples {
		if _, ok := s.(*Ampersand); ok {
			return true
		}
	}
	return false
}

// Complex is a sequence of compounds joined by combinators (spec glossary:
// "Complex selector"). Combinators[i] joins Compounds[i] to Compounds[i+1];
// len(Combinators) == len(Compounds)-1.
type Complex struct {
	Compounds   []Compound
	Combinators []Combinator
}

func (c Complex) String() string {
	var sb strings.Builder
	for i, comp := range c.Compounds {
		if i > 0 {
			combinator := c.Combinators[i-1]
			if combinator == Descendant {
				sb.WriteString(" ")
			} else {
				sb.WriteString(" " + combinator.String() + " ")
			}
		}
		sb.WriteString(comp.String())
	}
	return sb.String()
}

func (c Complex) HasPlaceholder() bool {
	for _, comp := range c.Compounds {
		if comp.HasPlaceholder() {
			return true
		}
	}
	return false
}

// List is a comma-separated SelectorList (spec glossary).
type List struct {
	Complexes []Complex
}

func (l List) String() string {
	parts := make([]string, len(l.Complexes))
	for i, c := range l.Complexes {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}

func (l List) HasPlaceholder() bool {
	for _, c := range l.Complexes {
		if c.HasPlaceholder() {
			return true
		}
	}
	return false
}

// WithoutPlaceholders drops every complex selector that still contains an
// unextended placeholder, and returns ok=false if nothing survives (spec
// §4.2's "placeholder rule").
func (l List) WithoutPlaceholders() (List, bool) {
	var out List
	for _, c := range l.Complexes {
		if !c.HasPlaceholder() {
			out.Complexes = append(out.Complexes, c)
		}
	}
	return out, len(out.Complexes) > 0
}
