package cli

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/go-sass/sass/internal/eval"
	"github.com/go-sass/sass/internal/logger"
)

// cliLogger delivers @warn/@debug to stderr in source order (spec §6.1),
// honoring --quiet.
type cliLogger struct {
	quiet bool
}

func (l *cliLogger) Warn(message string, span logger.Range, stack []eval.StackFrame) {
	if l.quiet {
		return
	}
	fmt.Fprintf(os.Stderr, "Warning: %s\n", message)
	for _, f := range stack {
		fmt.Fprintf(os.Stderr, "  from %s\n", f.Name)
	}
}

func (l *cliLogger) Debug(message string, span logger.Range) {
	if l.quiet {
		return
	}
	fmt.Fprintf(os.Stderr, "Debug: %s\n", message)
}

func base64Encode(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}
