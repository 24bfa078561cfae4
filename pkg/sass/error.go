package sass

import (
	"fmt"
	"strings"

	"github.com/go-sass/sass/internal/eval"
	"github.com/go-sass/sass/internal/logger"
	"github.com/go-sass/sass/internal/parser"
)

// Error is every failure CompileString/CompileFile can return: a parser
// SyntaxError or an evaluator Error, normalized to one shape so callers
// don't need to know which package raised it (spec §7's unified
// taxonomy).
type Error struct {
	Kind    string
	Message string
	Span    logger.Range
	URL     string
	Stack   []StackFrame

	// CompilationID is the env.Graph.ID of the compilation that raised
	// this error, letting a caller running several compilations against
	// one shared Logger correlate an error back to its compilation.
	CompilationID string
}

func (e *Error) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s: %s", e.URL, e.Kind, e.Message)
	for _, f := range e.Stack {
		fmt.Fprintf(&sb, "\n  from %s", f.Name)
	}
	return sb.String()
}

func translateSyntaxError(err error, compilationID string) error {
	se, ok := err.(*parser.SyntaxError)
	if !ok {
		return err
	}
	return &Error{Kind: "SyntaxError", Message: se.Message, Span: se.Range, URL: se.URL, CompilationID: compilationID}
}

func translateEvalError(err error, compilationID string) error {
	ee, ok := err.(*eval.Error)
	if !ok {
		return err
	}
	return &Error{
		Kind:          ee.Kind.String(),
		Message:       ee.Message,
		Span:          ee.Primary,
		Stack:         ee.Stack,
		CompilationID: compilationID,
	}
}
