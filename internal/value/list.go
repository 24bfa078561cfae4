package value

// List is an ordered sequence of values with a separator and an optional
// bracket flag (spec §3.1). An empty list has an undecided separator.
type List struct {
	Items     []Value
	Separator Separator
	Brackets  bool
}

func NewList(items []Value, sep Separator, brackets bool) *List {
	if len(items) == 0 {
		sep = SepUndecided
	}
	return &List{Items: items, Separator: sep, Brackets: brackets}
}

// Singleton wraps a single value as a one-element list, used where Sass
// silently treats a bare value as a length-1 list (e.g. map values, @each
// iteration over a non-list).
func Singleton(v Value) *List {
	return &List{Items: []Value{v}, Separator: SepUndecided}
}

// AsList coerces any value to a list the way Sass's list functions do: a
// List passes through, everything else becomes a one-element list.
func AsList(v Value) *List {
	if l, ok := v.(*List); ok {
		return l
	}
	if al, ok := v.(*ArgumentList); ok {
		return al.List
	}
	return Singleton(v)
}

func (l *List) SeparatorString() string {
	switch l.Separator {
	case SepComma:
		return ","
	case SepSlash:
		return "/"
	default:
		return " "
	}
}

// ListsEqual implements list equality from spec §4.1: same separator,
// brackets, length, and pairwise equal elements.
func ListsEqual(a, b *List) bool {
	if a.Separator != b.Separator || a.Brackets != b.Brackets || len(a.Items) != len(b.Items) {
		return false
	}
	for i := range a.Items {
		if !Equals(a.Items[i], b.Items[i]) {
			return false
		}
	}
	return true
}
