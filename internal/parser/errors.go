package parser

import (
	"fmt"

	"github.com/go-sass/sass/internal/logger"
)

// SyntaxError is everything this package returns; pkg/sass wraps it into
// the evaluator's own error taxonomy (kept separate so parser never has to
// import eval).
type SyntaxError struct {
	URL     string
	Range   logger.Range
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.URL, e.Message)
}

func (s *scanner) errorf(span logger.Range, format string, args ...interface{}) error {
	return &SyntaxError{URL: s.url, Range: span, Message: fmt.Sprintf(format, args...)}
}
