package env

import (
	"fmt"

	"github.com/google/uuid"
)

// Syntax names which grammar a loaded stylesheet uses.
type Syntax uint8

const (
	SyntaxSCSS Syntax = iota
	SyntaxIndented
	SyntaxCSS
)

// LoadResult is what an Importer hands back for a canonical URL (spec
// §6.1: "load(canonical_url) → { contents, syntax, source_map_url? }").
type LoadResult struct {
	Contents     string
	Syntax       Syntax
	SourceMapURL string
}

// Importer is the synchronous collaborator the evaluator suspends on at
// @use/@forward/@import boundaries (spec §5, §6.1). canonicalize is
// queried at most once per (parent, requested) pair per compilation; the
// Graph below owns that memoization so concrete Importer implementations
// stay simple and side-effect free.
type Importer interface {
	Canonicalize(url string, containingURL string) (canonical string, ok bool)
	Load(canonicalURL string) (LoadResult, error)
}

// AsyncImporter is the awaiting counterpart used by the async evaluation
// flavor (spec §5): identical contract, Go channels standing in for the
// future/promise the spec describes.
type AsyncImporter interface {
	CanonicalizeAsync(url string, containingURL string) <-chan CanonicalizeResult
	LoadAsync(canonicalURL string) <-chan LoadAsyncResult
}

type CanonicalizeResult struct {
	Canonical string
	OK        bool
}

type LoadAsyncResult struct {
	Result LoadResult
	Err    error
}

// canonKey is a (parent, requested) pair: the unit of canonicalize
// memoization (spec §4.3: "queried at most once per (parent, requested)
// pair within a compilation").
type canonKey struct {
	parent    string
	requested string
}

// Graph owns the per-compilation module cache and canonicalization
// memo (spec §4.3 invariant: "a module is evaluated at most once per
// distinct canonical URL per compilation").
type Graph struct {
	Importer Importer

	// ID uniquely identifies this compilation so a caller embedding the
	// library in a larger pipeline (a watch-mode driver or a build system
	// running several compilations against one shared logger) can
	// correlate messages and errors back to the compilation that produced
	// them.
	ID string

	modules map[CanonicalURL]*Module
	canon   map[canonKey]canonicalizeEntry
	loading map[CanonicalURL]bool // cycle guard for @use/@forward
}

type canonicalizeEntry struct {
	url string
	ok  bool
}

func NewGraph(importer Importer) *Graph {
	return &Graph{
		Importer: importer,
		ID:       uuid.NewString(),
		modules:  map[CanonicalURL]*Module{},
		canon:    map[canonKey]canonicalizeEntry{},
		loading:  map[CanonicalURL]bool{},
	}
}

// Canonicalize resolves a requested URL relative to a containing one,
// memoizing so repeated @use of the same target doesn't re-query the
// importer.
func (g *Graph) Canonicalize(requested, containing string) (string, bool) {
	key := canonKey{parent: containing, requested: requested}
	if entry, ok := g.canon[key]; ok {
		return entry.url, entry.ok
	}
	url, ok := g.Importer.Canonicalize(requested, containing)
	g.canon[key] = canonicalizeEntry{url: url, ok: ok}
	return url, ok
}

// ImportCycleError is returned when a module transitively @use/@forward's
// itself before finishing its own evaluation.
type ImportCycleError struct {
	URL CanonicalURL
}

func (e *ImportCycleError) Error() string {
	return fmt.Sprintf("module loop: %q is already being loaded", e.URL)
}

// BeginLoad marks url as in progress; callers must call CacheModule,
// which clears that mark, once the module is fully evaluated. Returns an ImportCycleError if url is already loading, or
// the cached module if it was already loaded to completion.
func (g *Graph) BeginLoad(url CanonicalURL) (*Module, error) {
	if m, ok := g.modules[url]; ok {
		return m, nil
	}
	if g.loading[url] {
		return nil, &ImportCycleError{URL: url}
	}
	g.loading[url] = true
	return nil, nil
}

// CacheModule records the fully-evaluated module for url and clears its
// in-progress marker.
func (g *Graph) CacheModule(url CanonicalURL, m *Module) {
	g.modules[url] = m
	delete(g.loading, url)
}

func (g *Graph) Lookup(url CanonicalURL) (*Module, bool) {
	m, ok := g.modules[url]
	return m, ok
}

// LoadedURLs returns every canonical URL evaluated so far, for the
// CompileResult's loaded-URLs set (spec §6.1).
func (g *Graph) LoadedURLs() []CanonicalURL {
	urls := make([]CanonicalURL, 0, len(g.modules))
	for u := range g.modules {
		urls = append(urls, u)
	}
	return urls
}
