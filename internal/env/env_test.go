package env

import (
	"testing"

	"github.com/go-sass/sass/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariableLookupWalksOuterScopes(t *testing.T) {
	module := NewModule("test.scss")
	e := NewEnvironment(module)
	e.SetVariable("x", value.Unitless(1), false)

	e.Push()
	v, ok := e.GetVariable("x")
	require.True(t, ok)
	assert.Equal(t, value.Unitless(1), v)
	e.Pop()
}

func TestSetVariableModifiesInnermostDeclaringScope(t *testing.T) {
	module := NewModule("test.scss")
	e := NewEnvironment(module)
	e.SetVariable("x", value.Unitless(1), false)

	e.Push()
	e.SetVariable("x", value.Unitless(2), false)
	v, _ := e.GetVariable("x")
	assert.Equal(t, value.Unitless(2), v)
	e.Pop()

	v, _ = e.GetVariable("x")
	assert.Equal(t, value.Unitless(2), v, "assignment should have found and mutated the outer scope's slot")
}

func TestGlobalAssignmentTargetsModuleScope(t *testing.T) {
	module := NewModule("test.scss")
	e := NewEnvironment(module)
	e.Push()
	e.SetVariable("y", value.Unitless(5), true)
	e.Pop()

	_, ok := module.Variables["y"]
	assert.True(t, ok)
}

func TestDefaultDeclarationDoesNotOverwrite(t *testing.T) {
	module := NewModule("test.scss")
	e := NewEnvironment(module)
	e.SetVariable("z", value.Unitless(1), false)
	e.DeclareDefault("z", value.Unitless(99), false)

	v, _ := e.GetVariable("z")
	assert.Equal(t, value.Unitless(1), v)
}

func TestConfigureDefaultRejectsNonDefaultedVariable(t *testing.T) {
	module := NewModule("lib.scss")
	module.Variables["base"] = &VarSlot{Value: value.Unitless(10), Default: false}

	err := module.ConfigureDefault("base", value.Unitless(20))
	assert.Error(t, err)
}

func TestConfigureDefaultAcceptsDefaultedVariable(t *testing.T) {
	module := NewModule("lib.scss")
	module.Variables["base"] = &VarSlot{Value: value.Unitless(10), Default: true}

	err := module.ConfigureDefault("base", value.Unitless(20))
	require.NoError(t, err)
	assert.Equal(t, value.Unitless(20), module.Variables["base"].Value)
}

func TestForwardedLookupAppliesPrefixAndVisibility(t *testing.T) {
	lib := NewModule("lib.scss")
	lib.Variables["color"] = &VarSlot{Value: value.Unitless(1)}
	lib.Variables["_hidden"] = &VarSlot{Value: value.Unitless(2)}
	lib.MarkPrivate("_hidden")

	entry := NewModule("entry.scss")
	entry.Forwarded = append(entry.Forwarded, &ForwardedModule{Module: lib, Prefix: "lib-"})

	slot, ok := entry.LookupVariable("lib-color")
	require.True(t, ok)
	assert.Equal(t, value.Unitless(1), slot.Value)

	_, ok = entry.LookupVariable("lib-_hidden")
	assert.False(t, ok)
}

type fakeImporter struct {
	calls int
}

func (f *fakeImporter) Canonicalize(url, containing string) (string, bool) {
	f.calls++
	return "canon:" + url, true
}

func (f *fakeImporter) Load(canonicalURL string) (LoadResult, error) {
	return LoadResult{Contents: "/* " + canonicalURL + " */", Syntax: SyntaxSCSS}, nil
}

func TestGraphMemoizesCanonicalize(t *testing.T) {
	importer := &fakeImporter{}
	g := NewGraph(importer)

	url1, _ := g.Canonicalize("foo", "entry.scss")
	url2, _ := g.Canonicalize("foo", "entry.scss")
	assert.Equal(t, url1, url2)
	assert.Equal(t, 1, importer.calls)
}

func TestGraphDetectsImportCycle(t *testing.T) {
	g := NewGraph(&fakeImporter{})
	_, err := g.BeginLoad("a.scss")
	require.NoError(t, err)

	_, err = g.BeginLoad("a.scss")
	assert.Error(t, err)
	var cycleErr *ImportCycleError
	assert.ErrorAs(t, err, &cycleErr)
}

func TestGraphCachesCompletedModule(t *testing.T) {
	g := NewGraph(&fakeImporter{})
	_, _ = g.BeginLoad("a.scss")
	m := NewModule("a.scss")
	g.CacheModule("a.scss", m)

	cached, err := g.BeginLoad("a.scss")
	require.NoError(t, err)
	assert.Same(t, m, cached)
}
