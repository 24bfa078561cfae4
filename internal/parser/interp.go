package parser

import (
	"github.com/go-sass/sass/internal/sassast"
)

// readInterpolatedUntil reads raw text up to (but not including) a
// terminator byte at nesting depth zero, splicing in "#{...}" expressions
// as it goes (spec §3.3: almost every textual position accepts
// interpolation). stopAt reports whether the current position is a
// terminator; it sees raw, unescaped bytes so callers can match on "{",
// ";", ":" etc.
func (s *scanner) readInterpolatedUntil(stopAt func(*scanner) bool) (sassast.Interpolation, error) {
	var b sassast.InterpBuilder
	var text []byte
	flush := func() {
		if len(text) > 0 {
			b.AddText(string(text))
			text = text[:0]
		}
	}
	depth := 0
	for !s.eof() {
		if depth == 0 && stopAt(s) {
			break
		}
		c := s.peekByte()
		switch {
		case c == '#' && s.peekAt(1) == '{':
			flush()
			s.pos += 2
			expr, err := s.parseExpr()
			if err != nil {
				return nil, err
			}
			s.skipWhitespaceAndComments()
			if s.peekByte() != '}' {
				return nil, s.errorf(s.rangeFrom(s.loc()), "expected \"}\" to close interpolation")
			}
			s.pos++
			b.AddExpr(expr)
		case c == '(' || c == '[':
			depth++
			text = append(text, c)
			s.pos++
		case c == ')' || c == ']':
			if depth > 0 {
				depth--
			}
			text = append(text, c)
			s.pos++
		case c == '\'' || c == '"':
			start := s.pos
			s.skipQuotedLiteral(c)
			text = append(text, s.contents[start:s.pos]...)
		case c == '\\':
			s.pos++
			if !s.eof() {
				text = append(text, s.advance())
			}
		default:
			text = append(text, c)
			s.pos++
		}
	}
	flush()
	return b.Build(), nil
}

// skipQuotedLiteral advances past a quoted run (including any nested
// interpolation) without interpreting it, used when scanning raw text that
// merely needs to not be confused by a quote's internal punctuation.
func (s *scanner) skipQuotedLiteral(quote byte) {
	s.pos++ // opening quote
	for !s.eof() {
		c := s.peekByte()
		if c == '\\' {
			s.pos += 2
			continue
		}
		if c == quote {
			s.pos++
			return
		}
		if c == '#' && s.peekAt(1) == '{' {
			s.pos += 2
			depth := 1
			for !s.eof() && depth > 0 {
				switch s.peekByte() {
				case '{':
					depth++
				case '}':
					depth--
				}
				s.pos++
			}
			continue
		}
		s.pos++
	}
}

// readPlainRun reads identifier-ish raw text (used for at-rule names and
// similar contexts where interpolation isn't legal) up to the first byte
// that fails isIdentPart.
func (s *scanner) readPlainRun() string {
	start := s.pos
	for !s.eof() && isIdentPart(s.peekByte()) {
		s.pos++
	}
	return s.contents[start:s.pos]
}
