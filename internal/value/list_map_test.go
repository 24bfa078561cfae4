package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListEqualityRequiresSameSeparator(t *testing.T) {
	a := NewList([]Value{Unitless(1), Unitless(2)}, SepComma, false)
	b := NewList([]Value{Unitless(1), Unitless(2)}, SepSpace, false)
	require.False(t, Equals(a, b))
	c := NewList([]Value{Unitless(1), Unitless(2)}, SepComma, false)
	require.True(t, Equals(a, c))
}

func TestMapPreservesInsertionOrder(t *testing.T) {
	m := NewMap()
	m.Set(Unquoted("b"), Unitless(2))
	m.Set(Unquoted("a"), Unitless(1))
	require.Equal(t, "b", m.Keys[0].(*SassString).Text)
	require.Equal(t, "a", m.Keys[1].(*SassString).Text)
}

func TestMapEqualityIsOrderInsensitive(t *testing.T) {
	a := NewMap()
	a.Set(Unquoted("a"), Unitless(1))
	a.Set(Unquoted("b"), Unitless(2))
	b := NewMap()
	b.Set(Unquoted("b"), Unitless(2))
	b.Set(Unquoted("a"), Unitless(1))
	require.True(t, MapsEqual(a, b))
}

func TestToCSSJoinsListWithSeparator(t *testing.T) {
	l := NewList([]Value{Unitless(1), Unitless(2), Unitless(3)}, SepComma, false)
	require.Equal(t, "1, 2, 3", ToCSS(l))
}

func TestInspectKeepsQuotesAndMapSyntax(t *testing.T) {
	m := NewMap()
	m.Set(Quoted("a"), Unitless(1))
	require.Equal(t, `("a": 1)`, Inspect(m))
}
