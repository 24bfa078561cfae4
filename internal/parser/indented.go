package parser

import "strings"

// convertIndentedToSCSS rewrites indentation-based syntax source into the
// brace-and-semicolon form the shared statement parser understands (spec
// §3.2's "two surface syntaxes" requirement). Rather than writing a second,
// fully independent grammar for the indented syntax, this preprocessor
// reduces it to whitespace-significant block structure and lets the SCSS
// scanner/parser do everything else; multi-line selectors joined by a
// trailing comma and the indented syntax's own comment-shorthand forms
// beyond line comments and balanced block comments are not supported by
// this preprocessing pass.
func convertIndentedToSCSS(contents string) string {
	lines := splitLinesKeepRaw(contents)
	var out strings.Builder
	var stack []int

	closeTo := func(indent int) {
		for len(stack) > 0 && indent <= stack[len(stack)-1] {
			stack = stack[:len(stack)-1]
			out.WriteString("}\n")
		}
	}

	i := 0
	for i < len(lines) {
		raw := lines[i]
		trimmedRight := strings.TrimRight(raw, " \t\r")
		stripped := strings.TrimLeft(trimmedRight, " \t")
		indent := len(trimmedRight) - len(stripped)

		if stripped == "" {
			out.WriteByte('\n')
			i++
			continue
		}

		closeTo(indent)

		if strings.HasPrefix(stripped, "//") {
			out.WriteString(stripped)
			out.WriteByte('\n')
			i++
			continue
		}

		if strings.HasPrefix(stripped, "/*") {
			block, consumed := collectBlockComment(lines, i, indent)
			out.WriteString(block)
			out.WriteByte('\n')
			i += consumed
			continue
		}

		nextIndent, ok := peekNextContentIndent(lines, i+1)
		if ok && nextIndent > indent {
			stack = append(stack, indent)
			out.WriteString(stripped)
			out.WriteString(" {\n")
		} else if strings.HasSuffix(stripped, "{") || strings.HasSuffix(stripped, ";") {
			out.WriteString(stripped)
			out.WriteByte('\n')
		} else {
			out.WriteString(stripped)
			out.WriteString(";\n")
		}
		i++
	}
	closeTo(-1)
	return out.String()
}

func splitLinesKeepRaw(contents string) []string {
	return strings.Split(strings.ReplaceAll(contents, "\r\n", "\n"), "\n")
}

// peekNextContentIndent finds the indentation of the next line that isn't
// blank, skipping blank lines but not comments (a comment nested under a
// selector still signals that the selector has a body).
func peekNextContentIndent(lines []string, from int) (int, bool) {
	for j := from; j < len(lines); j++ {
		trimmedRight := strings.TrimRight(lines[j], " \t\r")
		stripped := strings.TrimLeft(trimmedRight, " \t")
		if stripped == "" {
			continue
		}
		return len(trimmedRight) - len(stripped), true
	}
	return 0, false
}

// collectBlockComment copies a "/* ... */" run verbatim, including any
// continuation lines, so its content (and any loud-comment markers inside)
// reach the shared scanner unmodified.
func collectBlockComment(lines []string, start, indent int) (string, int) {
	var sb strings.Builder
	i := start
	for i < len(lines) {
		line := lines[i]
		sb.WriteString(strings.TrimLeft(strings.TrimRight(line, "\r"), " \t"))
		if strings.Contains(line, "*/") {
			i++
			break
		}
		sb.WriteByte('\n')
		i++
	}
	return sb.String(), i - start
}
