package value

// Equals implements Sass value equality (spec §4.1): numbers fuzzy-equal
// across convertible units, colors compare channel-wise after space
// normalization, lists/maps compare structurally, everything else compares
// by identity of variant plus payload.
func Equals(a, b Value) bool {
	switch av := a.(type) {
	case *Number:
		bv, ok := b.(*Number)
		return ok && NumbersEqual(av, bv)
	case *SassString:
		bv, ok := b.(*SassString)
		return ok && av.Text == bv.Text
	case *Color:
		bv, ok := b.(*Color)
		return ok && ColorsEqual(av, bv)
	case Boolean:
		bv, ok := b.(Boolean)
		return ok && av == bv
	case nullValue:
		_, ok := b.(nullValue)
		return ok
	case *List:
		if bv, ok := b.(*List); ok {
			return ListsEqual(av, bv)
		}
		if bv, ok := b.(*ArgumentList); ok {
			return ListsEqual(av, bv.List)
		}
		return false
	case *ArgumentList:
		return Equals(av.List, b)
	case *Map:
		bv, ok := b.(*Map)
		return ok && MapsEqual(av, bv)
	case *FunctionRef:
		bv, ok := b.(*FunctionRef)
		return ok && av.Name == bv.Name
	case *Calculation:
		bv, ok := b.(*Calculation)
		return ok && calcsEqual(av, bv)
	default:
		return false
	}
}

func calcsEqual(a, b *Calculation) bool {
	if a.Name != b.Name || len(a.Args) != len(b.Args) {
		return false
	}
	for i := range a.Args {
		x, y := a.Args[i], b.Args[i]
		switch {
		case x.Number != nil && y.Number != nil:
			if !NumbersEqual(x.Number, y.Number) {
				return false
			}
		case x.Calculation != nil && y.Calculation != nil:
			if !calcsEqual(x.Calculation, y.Calculation) {
				return false
			}
		case x.Number == nil && x.Calculation == nil && y.Number == nil && y.Calculation == nil:
			if x.Text != y.Text {
				return false
			}
		default:
			return false
		}
	}
	return true
}
