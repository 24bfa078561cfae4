// Package eval is the tree-walking evaluator (spec §4.4): it walks a Sass
// stylesheet, executes statements against a live Environment, and builds a
// plain-CSS output tree plus an extension context for the selector/extend
// pass that runs after evaluation finishes.
package eval

import (
	"github.com/go-sass/sass/internal/cssast"
	"github.com/go-sass/sass/internal/env"
	"github.com/go-sass/sass/internal/logger"
	"github.com/go-sass/sass/internal/sassast"
	"github.com/go-sass/sass/internal/selector"
	"github.com/go-sass/sass/internal/value"
)

// Logger is the evaluator's sink for @warn/@debug (spec §6.1).
type Logger interface {
	Warn(message string, span logger.Range, stack []StackFrame)
	Debug(message string, span logger.Range)
}

// mediaContext models one level of the active @media nesting context the
// evaluator threads through statement execution (spec §4.4's "state
// machine during a visit"); @supports conditions are kept as plain strings
// in Evaluator.supportsStack.
type mediaContext struct {
	query       string
	unmergeable bool
}

type contentBinding struct {
	body Block
	env  *env.Environment
	args sassast.Signature
}

// Block is an alias kept local to eval so statement execution code doesn't
// need to import sassast just to spell []sassast.Stmt.
type Block = sassast.Block

// frame is one active mixin/function/content invocation, used to
// reconstruct the Sass call stack on error (spec §7) and to resolve
// @content against the environment captured at the @include call site.
type frame struct {
	name    string
	call    logger.Range
	content *contentBinding
}

// Evaluator carries all state for one compilation (spec §4.4). It is not
// safe for concurrent use; a compilation is single-threaded (spec §5).
type Evaluator struct {
	Graph  *env.Graph
	Log    Logger
	Source *logger.Source

	Tree *cssast.Tree

	env   *env.Environment
	parse ParseFunc

	selectorStack []selector.List
	mediaStack    []mediaContext
	supportsStack []string
	callStack     []frame

	currentNode cssast.NodeIndex // where declarations/nested rules attach
	extensions  []selector.Extension

	// returning/returnVal implement @return's unwind: the returned value is
	// stored and statement execution stops until the function body exits.
	returning  bool
	returnVal  value.Value
}

// Options controls a single Evaluate call (spec §6.1's compile_string
// options, minus the parts owned by the printer).
type Options struct {
	SourceMapEnabled bool
}

// ParseFunc parses one loaded stylesheet's source text into an AST. It is
// injected rather than imported directly so this package doesn't need to
// depend on the concrete parser package (spec §4.3: module loading needs a
// parse step, but eval only cares about the resulting Stylesheet).
type ParseFunc func(contents string, syntax env.Syntax, url string) (*sassast.Stylesheet, error)

// NewEvaluator constructs an evaluator for one entry-point module. Callers
// load and parse the entry stylesheet themselves (out of this package's
// scope) and pass it to Evaluate.
func NewEvaluator(graph *env.Graph, log Logger, source *logger.Source, module *env.Module, parse ParseFunc) *Evaluator {
	e := &Evaluator{
		Graph:       graph,
		Log:         log,
		Source:      source,
		Tree:        cssast.NewTree(),
		env:         env.NewEnvironment(module),
		currentNode: 0,
		parse:       parse,
	}
	return e
}

// Evaluate runs the full stylesheet (spec §4.4: "evaluate(stylesheet,
// importer, logger, source_map_enabled) → (CssStylesheet, extension_context,
// source_map?)"; the importer/source-map plumbing lives in pkg/sass, which
// owns module loading and printer invocation around this call).
func (e *Evaluator) Evaluate(sheet *sassast.Stylesheet) (*cssast.Tree, []selector.Extension, error) {
	if err := e.execBlock(sheet.Body); err != nil {
		return nil, nil, err
	}
	e.Tree.RemoveEmptyDescendants(e.Tree.Root())
	return e.Tree, e.extensions, nil
}

func (e *Evaluator) currentSelector() selector.List {
	if len(e.selectorStack) == 0 {
		return selector.List{}
	}
	return e.selectorStack[len(e.selectorStack)-1]
}

func (e *Evaluator) pushFrame(name string, call logger.Range) {
	e.callStack = append(e.callStack, frame{name: name, call: call})
}

func (e *Evaluator) popFrame() {
	e.callStack = e.callStack[:len(e.callStack)-1]
}

func (e *Evaluator) stackFrames() []StackFrame {
	frames := make([]StackFrame, len(e.callStack))
	for i, f := range e.callStack {
		frames[i] = StackFrame{Name: f.name, Call: f.call}
	}
	return frames
}

// wrapError attaches the live call stack to an *Error before it propagates
// past a function/mixin boundary. An error that already carries a stack
// keeps it, so the frames recorded at the innermost boundary survive.
func (e *Evaluator) wrapError(err error) error {
	if err == nil {
		return nil
	}
	if evalErr, ok := err.(*Error); ok {
		if len(evalErr.Stack) > 0 {
			return err
		}
		cp := *evalErr
		cp.Stack = e.stackFrames()
		return &cp
	}
	return err
}
