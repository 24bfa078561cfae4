package eval

import (
	"fmt"
	"strings"

	"github.com/go-sass/sass/internal/logger"
)

// Kind discriminates the evaluator's error taxonomy (spec §4.6, plus the
// import/parse kinds spec §7 adds on top).
type Kind uint8

const (
	TypeError Kind = iota
	IncompatibleUnits
	InvalidArgument
	MissingArgument
	DuplicateArgument
	UndefinedVariable
	UndefinedFunction
	UndefinedMixin
	InvalidNesting
	InvalidSelector
	ExtendCycle
	ImportCycleKind
	ImportNotFound
	DivisionByZero
	MissingReturn
	ContentOutsideMixin
	AtRootInvalid
	SyntaxError
	Usage
	UserError
)

func (k Kind) String() string {
	switch k {
	case TypeError:
		return "TypeError"
	case IncompatibleUnits:
		return "IncompatibleUnits"
	case InvalidArgument:
		return "InvalidArgument"
	case MissingArgument:
		return "MissingArgument"
	case DuplicateArgument:
		return "DuplicateArgument"
	case UndefinedVariable:
		return "UndefinedVariable"
	case UndefinedFunction:
		return "UndefinedFunction"
	case UndefinedMixin:
		return "UndefinedMixin"
	case InvalidNesting:
		return "InvalidNesting"
	case InvalidSelector:
		return "InvalidSelector"
	case ExtendCycle:
		return "ExtendCycle"
	case ImportCycleKind:
		return "ImportCycle"
	case ImportNotFound:
		return "ImportNotFound"
	case DivisionByZero:
		return "DivisionByZero"
	case MissingReturn:
		return "MissingReturn"
	case ContentOutsideMixin:
		return "ContentOutsideMixin"
	case AtRootInvalid:
		return "AtRootInvalid"
	case SyntaxError:
		return "SyntaxError"
	case Usage:
		return "Usage"
	case UserError:
		return "UserError"
	default:
		return "Error"
	}
}

// StackFrame is one entry of the reconstructed Sass call stack (spec §7):
// the name of the mixin/function being invoked and the call-site span.
type StackFrame struct {
	Name string
	Call logger.Range
}

// Error is every error the evaluator raises. It always carries a primary
// span; secondary spans add labeled context (e.g. "mixin was declared
// here"), and Stack is the chain of mixin/function invocations active when
// the error was raised, outermost first.
type Error struct {
	Kind      Kind
	Message   string
	Primary   logger.Range
	Secondary []logger.MsgLocation
	Stack     []StackFrame
}

func (e *Error) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s", e.Kind, e.Message)
	for _, frame := range e.Stack {
		fmt.Fprintf(&sb, "\n  from %s", frame.Name)
	}
	return sb.String()
}

func newError(kind Kind, span logger.Range, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Primary: span}
}

// WithFrame returns a copy of e with frame prepended to its call chain,
// used as the evaluator unwinds through mixin/function invocation frames.
func (e *Error) WithFrame(frame StackFrame) *Error {
	cp := *e
	cp.Stack = append([]StackFrame{frame}, e.Stack...)
	return &cp
}
