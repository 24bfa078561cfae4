package value

// ArgumentList is produced by a rest parameter ("$args..."): it behaves
// like a List for positional consumers but also carries the named
// arguments that were passed alongside the collected positional ones
// (spec §3.1).
type ArgumentList struct {
	*List
	Keywords *Map
}

func NewArgumentList(items []Value, sep Separator, keywords *Map) *ArgumentList {
	if keywords == nil {
		keywords = NewMap()
	}
	return &ArgumentList{List: NewList(items, sep, false), Keywords: keywords}
}
