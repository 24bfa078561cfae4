package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimpleCompound(t *testing.T) {
	list, err := Parse(".a.b")
	require.NoError(t, err)
	require.Len(t, list.Complexes, 1)
	require.Len(t, list.Complexes[0].Compounds, 1)
	assert.Equal(t, ".a.b", list.String())
}

func TestParseCombinators(t *testing.T) {
	list, err := Parse("ul > li.item + span")
	require.NoError(t, err)
	require.Len(t, list.Complexes, 1)
	complex := list.Complexes[0]
	require.Len(t, complex.Compounds, 3)
	require.Equal(t, []Combinator{Child, NextSibling}, complex.Combinators)
}

func TestParseList(t *testing.T) {
	list, err := Parse(".a, .b > .c")
	require.NoError(t, err)
	assert.Len(t, list.Complexes, 2)
}

func TestParsePlaceholderAndAmpersand(t *testing.T) {
	list, err := Parse("%button")
	require.NoError(t, err)
	_, ok := list.Complexes[0].Compounds[0].Simples[0].(*Placeholder)
	assert.True(t, ok)
	assert.True(t, list.HasPlaceholder())

	list, err = Parse("&.active")
	require.NoError(t, err)
	assert.True(t, list.Complexes[0].Compounds[0].HasAmpersand())
}

func TestParseAttribute(t *testing.T) {
	list, err := Parse(`[data-state="open" i]`)
	require.NoError(t, err)
	attr, ok := list.Complexes[0].Compounds[0].Simples[0].(*AttributeSelector)
	require.True(t, ok)
	assert.Equal(t, "data-state", attr.Name)
	assert.Equal(t, "=", attr.Op)
	assert.Equal(t, "open", attr.Value)
	assert.True(t, attr.CaseInsensitive)
}

func TestParsePseudoWithNestedSelector(t *testing.T) {
	list, err := Parse(":not(.a, .b)")
	require.NoError(t, err)
	pc, ok := list.Complexes[0].Compounds[0].Simples[0].(*PseudoClass)
	require.True(t, ok)
	require.NotNil(t, pc.Nested)
	assert.Len(t, pc.Nested.Complexes, 2)
}

func TestParsePseudoNthChildOf(t *testing.T) {
	list, err := Parse(":nth-child(2n+1 of .item)")
	require.NoError(t, err)
	pc := list.Complexes[0].Compounds[0].Simples[0].(*PseudoClass)
	assert.Equal(t, "2n+1", pc.Arg)
	require.NotNil(t, pc.Nested)
	assert.Equal(t, ".item", pc.Nested.String())
}

func TestParseInvalidSelectorReturnsError(t *testing.T) {
	_, err := Parse(".a[")
	assert.Error(t, err)
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestSpecificity(t *testing.T) {
	list, err := Parse("#id .class element")
	require.NoError(t, err)
	spec := ComplexSpecificity(list.Complexes[0])
	assert.Equal(t, Specificity{IDs: 1, Classes: 1, Elements: 1}, spec)
}

func TestSpecificityOrdering(t *testing.T) {
	id := Specificity{IDs: 1}
	class := Specificity{Classes: 100}
	assert.True(t, class.Less(id))
	assert.True(t, id.GreaterOrEqual(class))
}

func TestIsSuperselectorDescendant(t *testing.T) {
	a, _ := Parse(".b")
	b, _ := Parse(".a .b")
	assert.True(t, IsSuperselector(a.Complexes[0], b.Complexes[0]))
	assert.False(t, IsSuperselector(b.Complexes[0], a.Complexes[0]))
}

func TestIsSuperselectorChild(t *testing.T) {
	a, _ := Parse(".a > .b")
	b, _ := Parse(".a > .b")
	c, _ := Parse(".a .b")
	assert.True(t, IsSuperselector(a.Complexes[0], b.Complexes[0]))
	assert.False(t, IsSuperselector(a.Complexes[0], c.Complexes[0]))
}

func TestUnifyCompoundsConflictingTypes(t *testing.T) {
	a, _ := Parse("div.a")
	b, _ := Parse("span.a")
	_, ok := UnifyCompounds(a.Complexes[0].Compounds[0], b.Complexes[0].Compounds[0])
	assert.False(t, ok)
}

func TestUnifyCompoundsMerge(t *testing.T) {
	a, _ := Parse("div.a")
	b, _ := Parse(".b")
	merged, ok := UnifyCompounds(a.Complexes[0].Compounds[0], b.Complexes[0].Compounds[0])
	require.True(t, ok)
	assert.Equal(t, "div.a.b", merged.String())
}

func TestExtendSimpleClass(t *testing.T) {
	list, err := Parse(".btn")
	require.NoError(t, err)
	extenderList, _ := Parse(".fancy-btn")
	ext := Extension{
		Target:   &ClassSelector{Name: "btn"},
		Extender: extenderList.Complexes[0],
	}
	result, err := Extend(list, []Extension{ext})
	require.NoError(t, err)
	var strs []string
	for _, c := range result.Complexes {
		strs = append(strs, c.String())
	}
	assert.Contains(t, strs, ".btn")
	assert.Contains(t, strs, ".fancy-btn")
}

func TestExtendPlaceholderDropsOriginal(t *testing.T) {
	list, err := Parse("%message")
	require.NoError(t, err)
	extenderList, _ := Parse(".alert")
	ext := Extension{
		Target:   &Placeholder{Name: "message"},
		Extender: extenderList.Complexes[0],
	}
	result, err := Extend(list, []Extension{ext})
	require.NoError(t, err)
	result, ok := result.WithoutPlaceholders()
	require.True(t, ok)
	assert.Equal(t, ".alert", result.String())
}

func TestExtendCycleGuard(t *testing.T) {
	aList, _ := Parse(".a")
	bList, _ := Parse(".b")
	extensions := []Extension{
		{Target: &ClassSelector{Name: "a"}, Extender: bList.Complexes[0]},
		{Target: &ClassSelector{Name: "b"}, Extender: aList.Complexes[0]},
	}
	_, err := Extend(aList, extensions)
	require.Error(t, err)
	var cycleErr *ExtendCycleError
	assert.ErrorAs(t, err, &cycleErr)
}
