package value

// Map is an ordered association of unique (by value equality) keys to
// values, preserving insertion order (spec §3.1).
type Map struct {
	Keys   []Value
	Values []Value
}

func NewMap() *Map { return &Map{} }

// Get returns the value for a key, using value equality (numbers fuzzy,
// colors space-normalized).
func (m *Map) Get(key Value) (Value, bool) {
	for i, k := range m.Keys {
		if Equals(k, key) {
			return m.Values[i], true
		}
	}
	return nil, false
}

// Set inserts or overwrites a key, preserving the original insertion
// position when the key already exists.
func (m *Map) Set(key, val Value) {
	for i, k := range m.Keys {
		if Equals(k, key) {
			m.Values[i] = val
			return
		}
	}
	m.Keys = append(m.Keys, key)
	m.Values = append(m.Values, val)
}

func (m *Map) Remove(key Value) {
	for i, k := range m.Keys {
		if Equals(k, key) {
			m.Keys = append(m.Keys[:i], m.Keys[i+1:]...)
			m.Values = append(m.Values[:i], m.Values[i+1:]...)
			return
		}
	}
}

func (m *Map) Len() int { return len(m.Keys) }

// Clone returns a shallow copy whose key/value slices can be mutated
// independently of the original (maps are logically immutable values; every
// mutating map.* builtin clones first).
func (m *Map) Clone() *Map {
	return &Map{Keys: append([]Value(nil), m.Keys...), Values: append([]Value(nil), m.Values...)}
}

// MapsEqual implements map equality: same entries, order-insensitive under
// key equality (spec §4.1).
func MapsEqual(a, b *Map) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i, k := range a.Keys {
		v, ok := b.Get(k)
		if !ok || !Equals(a.Values[i], v) {
			return false
		}
	}
	return true
}

// AsMap coerces a value to a map if possible: a Map passes through, and an
// empty List coerces to an empty Map (Sass treats "()" as both).
func AsMap(v Value) (*Map, bool) {
	switch v := v.(type) {
	case *Map:
		return v, true
	case *List:
		if len(v.Items) == 0 {
			return NewMap(), true
		}
	}
	return nil, false
}
