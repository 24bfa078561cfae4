// Package cli implements the sass command-line tool (spec §6.2): flag
// parsing on top of cobra, colorized error reporting on top of lipgloss,
// and the exit-code policy (0/64/65/66) spec §6.2/§7 require.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-sass/sass/internal/logger"
	"github.com/go-sass/sass/pkg/sass"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	pathStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	lineNoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	caretStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	frameStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
)

// reportError renders err as a highlighted span snippet plus call stack
// (spec §7's "user-visible behavior"). color disables the lipgloss
// styling for --no-color / non-terminal output.
func reportError(src *logger.Source, err *sass.Error, color bool) string {
	var sb strings.Builder

	line, col, lineText := 0, 0, ""
	if src != nil {
		line, col, lineText = src.LineAndColumn(err.Span.Loc.Start)
	}

	header := fmt.Sprintf("Error: %s", err.Message)
	loc := fmt.Sprintf("%s:%d:%d", err.URL, line, col+1)
	if color {
		header = headerStyle.Render(header)
		loc = pathStyle.Render(loc)
	}
	fmt.Fprintf(&sb, "%s\n  %s\n", header, loc)

	if lineText != "" {
		gutter := fmt.Sprintf("%d | ", line)
		caret := strings.Repeat(" ", len(gutter)+col) + strings.Repeat("^", max1(int(err.Span.Len)))
		if color {
			gutter = lineNoStyle.Render(gutter)
			caret = caretStyle.Render(caret)
		}
		fmt.Fprintf(&sb, "%s%s\n%s\n", gutter, lineText, caret)
	}

	for _, f := range err.Stack {
		frame := fmt.Sprintf("  from %s", f.Name)
		if color {
			frame = frameStyle.Render(frame)
		}
		fmt.Fprintln(&sb, frame)
	}

	return sb.String()
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// errorCSS builds the --error-css fallback stylesheet (spec §7): the
// failure preserved as a comment plus a rule that forces visible output
// from any downstream consumer of the destination file.
func errorCSS(err *sass.Error) string {
	return fmt.Sprintf("/* %s: %s */\nbody::before {\n  content: %q;\n}\n",
		err.Kind, strings.ReplaceAll(err.Message, "*/", "* /"), err.Error())
}
