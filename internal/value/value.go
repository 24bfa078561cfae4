// Package value implements the SassScript runtime value lattice: the closed
// set of variants a Sass expression can evaluate to, plus their equality,
// ordering, arithmetic, and CSS serialization rules (spec §3.1, §4.1).
//
// Every variant is immutable once constructed, matching the teacher's CSS
// AST convention of treating tree nodes as read-only value objects that get
// replaced rather than mutated in place.
package value

// Separator is how a List's items are printed between each other.
type Separator uint8

const (
	SepUndecided Separator = iota
	SepSpace
	SepComma
	SepSlash
)

// Value is implemented by every variant in the lattice. The method is never
// called; its only purpose is to close the type switch the way
// evanw-esbuild/internal/css_ast.R closes its rule variants.
type Value interface {
	isValue()
	// TypeName returns the Sass-visible type name, e.g. "number", "color".
	TypeName() string
}

func (*Number) isValue()       {}
func (*SassString) isValue()   {}
func (*Color) isValue()        {}
func (Boolean) isValue()       {}
func (nullValue) isValue()     {}
func (*List) isValue()         {}
func (*Map) isValue()          {}
func (*FunctionRef) isValue()  {}
func (*Calculation) isValue()  {}
func (*ArgumentList) isValue() {}

func (*Number) TypeName() string       { return "number" }
func (*SassString) TypeName() string   { return "string" }
func (*Color) TypeName() string        { return "color" }
func (Boolean) TypeName() string       { return "bool" }
func (nullValue) TypeName() string     { return "null" }
func (*List) TypeName() string         { return "list" }
func (*Map) TypeName() string          { return "map" }
func (*FunctionRef) TypeName() string  { return "function" }
func (*Calculation) TypeName() string  { return "calculation" }
func (*ArgumentList) TypeName() string { return "arglist" }

// Boolean is a singleton: use True or False, never construct one directly.
type Boolean bool

const True Boolean = Boolean(true)
const False Boolean = Boolean(false)

func FromBool(b bool) Boolean {
	if b {
		return True
	}
	return False
}

func (b Boolean) IsTruthy() bool { return bool(b) }

// IsTruthy implements Sass truthiness: everything except "false" and "null"
// is truthy, including 0 and the empty string.
func IsTruthy(v Value) bool {
	switch v := v.(type) {
	case Boolean:
		return bool(v)
	case nullValue:
		return false
	default:
		return true
	}
}

type nullValue struct{}

// Null is the sole instance of Sass's null value.
var Null Value = nullValue{}

func IsNull(v Value) bool {
	_, ok := v.(nullValue)
	return ok
}

// FunctionRef is a first-class reference to a callable function, produced by
// meta.get-function and consumed by meta.call. Callable carries whatever
// the eval package needs to invoke it again (a *sassast.FuncDecl or a
// builtin name); it's opaque here to avoid an import cycle.
type FunctionRef struct {
	Name     string
	Callable interface{}
}
