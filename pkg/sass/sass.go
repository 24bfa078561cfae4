// Package sass is the public library surface (spec §6.1): CompileString
// and CompileFile compile one entry stylesheet, driving the parser,
// evaluator, extend pass, and printer internally. Its shape mirrors
// evanw-esbuild/pkg/api: a plain Options struct in, a plain Result struct
// out, no hidden global state, one call per compilation.
package sass

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-sass/sass/internal/env"
	"github.com/go-sass/sass/internal/eval"
	"github.com/go-sass/sass/internal/logger"
	"github.com/go-sass/sass/internal/parser"
	"github.com/go-sass/sass/internal/printer"
)

// Syntax names which grammar the entry source (or an imported file) uses.
type Syntax = env.Syntax

const (
	SyntaxSCSS     = env.SyntaxSCSS
	SyntaxIndented = env.SyntaxIndented
	SyntaxCSS      = env.SyntaxCSS
)

// Style selects the serializer's output formatting (spec §4.5).
type Style = printer.Style

const (
	Expanded   = printer.Expanded
	Compressed = printer.Compressed
)

// Importer resolves @use/@forward/@import targets (spec §6.1). A nil
// Importer on Options falls back to a load-path filesystem importer.
type Importer = env.Importer

// LoadResult is what Importer.Load returns for one canonical URL.
type LoadResult = env.LoadResult

// Logger receives @warn/@debug delivery in source order (spec §6.1).
type Logger = eval.Logger

// StackFrame is one entry of a Sass call stack attached to an Error.
type StackFrame = eval.StackFrame

// Options controls a single CompileString/CompileFile call. It has no
// default-importer-building side effects until Compile runs: a zero
// Options compiles with the default filesystem importer (resolving
// @use/@forward/@import targets relative to the requesting file), expanded
// style, and a discarding Logger.
type Options struct {
	// Syntax selects the entry file's grammar. CompileFile infers it from
	// the path's extension when left zero-valued and the inferred syntax
	// isn't SyntaxSCSS; CompileString always uses the given value.
	Syntax Syntax

	// Importer resolves @use/@forward/@import. If nil, a load-path
	// filesystem importer rooted at LoadPaths (and, for CompileFile, the
	// entry file's own directory) is used.
	Importer Importer

	// LoadPaths are additional directories the default filesystem importer
	// searches, in order, after the requesting file's own directory.
	LoadPaths []string

	Style            Style
	SourceMapEnabled bool
	EmbedSources     bool

	// Charset prepends "@charset "UTF-8";" (expanded) or a UTF-8 BOM
	// (compressed) whenever non-ASCII bytes would otherwise be emitted.
	Charset bool

	Logger Logger
}

// CompileResult is the successful outcome of a compilation (spec §6.1).
type CompileResult struct {
	CSS        string
	SourceMap  string
	LoadedURLs []string
}

type discardLogger struct{}

func (discardLogger) Warn(string, logger.Range, []eval.StackFrame) {}
func (discardLogger) Debug(string, logger.Range)                  {}

// CompileString compiles source text directly; url identifies it for
// error messages, source maps, and as the base for relative @use targets.
func CompileString(source string, url string, opts Options) (*CompileResult, error) {
	return compile(source, url, opts)
}

// CompileFile reads path and compiles it, adding its directory to the
// default importer's search path ahead of opts.LoadPaths.
func CompileFile(path string, opts Options) (*CompileResult, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sass: %w", err)
	}
	if opts.Syntax == SyntaxSCSS {
		opts.Syntax = syntaxForExt(path)
	}
	if opts.Importer == nil {
		dir := filepath.Dir(path)
		paths := append([]string{dir}, opts.LoadPaths...)
		opts.Importer = NewFileImporter(paths)
	}
	return compile(string(contents), path, opts)
}

func compile(source, url string, opts Options) (*CompileResult, error) {
	log := opts.Logger
	if log == nil {
		log = discardLogger{}
	}
	importer := opts.Importer
	if importer == nil {
		importer = NewFileImporter(opts.LoadPaths)
	}

	src := &logger.Source{Index: 0, KeyPath: url, PrettyPath: url, Contents: source}
	graph := env.NewGraph(importer)

	sheet, err := parser.Parse(source, opts.Syntax, url)
	if err != nil {
		return nil, translateSyntaxError(err, graph.ID)
	}

	mod := env.NewModule(env.CanonicalURL(url))
	evaluator := eval.NewEvaluator(graph, log, src, mod, parser.Parse)

	tree, extensions, err := evaluator.Evaluate(sheet)
	if err != nil {
		return nil, translateEvalError(err, graph.ID)
	}

	if err := applyExtensions(tree, extensions); err != nil {
		return nil, &Error{Kind: "ExtendCycle", Message: err.Error(), URL: url, CompilationID: graph.ID}
	}

	result := printer.Print(tree, printer.Options{
		Style:         opts.Style,
		Source:        src,
		EmitSourceMap: opts.SourceMapEnabled,
		EmbedSources:  opts.EmbedSources,
	})

	urls := graph.LoadedURLs()
	loaded := make([]string, len(urls))
	for i, u := range urls {
		loaded[i] = string(u)
	}

	return &CompileResult{
		CSS:        withCharset(result.CSS, opts.Charset, opts.Style),
		SourceMap:  result.SourceMapJSON,
		LoadedURLs: loaded,
	}, nil
}

func withCharset(css string, charset bool, style Style) string {
	if !charset || isASCII(css) {
		return css
	}
	if style == Compressed {
		return "﻿" + css
	}
	return "@charset \"UTF-8\";\n" + css
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7f {
			return false
		}
	}
	return true
}

func syntaxForExt(path string) Syntax {
	switch filepath.Ext(path) {
	case ".sass":
		return SyntaxIndented
	case ".css":
		return SyntaxCSS
	default:
		return SyntaxSCSS
	}
}
