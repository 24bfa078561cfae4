// Package parser turns SCSS or indented-syntax source text into the
// sassast tree the evaluator walks (spec §3.2, §4.2). It runs as a single
// recursive-descent pass over the source, switching between "raw text"
// mode (selectors, at-rule preludes) and SassScript expression mode as the
// grammar requires, mirroring the hand-written, no-generated-tables style
// of evanw-esbuild's css_parser.
package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/go-sass/sass/internal/logger"
)

// scanner is the shared cursor both the statement parser and the
// expression parser advance; it never backtracks further than a single
// saved position, matching the teacher's single-pass lexing style.
type scanner struct {
	url      string
	contents string
	pos      int
}

func newScanner(url, contents string) *scanner {
	return &scanner{url: url, contents: contents}
}

func (s *scanner) eof() bool { return s.pos >= len(s.contents) }

func (s *scanner) peekByte() byte {
	if s.eof() {
		return 0
	}
	return s.contents[s.pos]
}

func (s *scanner) peekAt(offset int) byte {
	if s.pos+offset >= len(s.contents) {
		return 0
	}
	return s.contents[s.pos+offset]
}

func (s *scanner) advance() byte {
	c := s.contents[s.pos]
	s.pos++
	return c
}

func (s *scanner) loc() logger.Loc { return logger.Loc{Start: int32(s.pos)} }

func (s *scanner) rangeFrom(start logger.Loc) logger.Range {
	return logger.Range{Loc: start, Len: int32(s.pos) - start.Start}
}

func (s *scanner) hasPrefix(prefix string) bool {
	return strings.HasPrefix(s.contents[s.pos:], prefix)
}

// skipWhitespaceAndComments consumes spaces, tabs, newlines, "/* ... */"
// block comments and "// ..." line comments, returning the loud comments it
// passed over (spec §3.3: loud comments survive into CSS output wherever
// they appear between statements).
func (s *scanner) skipWhitespaceAndComments() []loudCommentText {
	var comments []loudCommentText
	for !s.eof() {
		c := s.peekByte()
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			s.pos++
		case c == '/' && s.peekAt(1) == '/':
			for !s.eof() && s.peekByte() != '\n' {
				s.pos++
			}
		case c == '/' && s.peekAt(1) == '*':
			start := s.loc()
			s.pos += 2
			for !s.eof() && !s.hasPrefix("*/") {
				s.pos++
			}
			if !s.eof() {
				s.pos += 2
			}
			comments = append(comments, loudCommentText{
				text:  s.contents[start.Start:s.pos],
				span:  s.rangeFrom(start),
			})
		default:
			return comments
		}
	}
	return comments
}

type loudCommentText struct {
	text string
	span logger.Range
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '-' || c == '\\' || (c|0x20 >= 'a' && c|0x20 <= 'z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// readIdent reads a CSS/Sass identifier, decoding "\XX" escapes the way
// selectors and property names allow.
func (s *scanner) readIdent() string {
	var sb strings.Builder
	for !s.eof() {
		c := s.peekByte()
		if c == '\\' {
			s.pos++
			sb.WriteByte(s.readEscape())
			continue
		}
		if !isIdentPart(c) {
			break
		}
		if c >= 0x80 {
			r, size := utf8.DecodeRuneInString(s.contents[s.pos:])
			sb.WriteRune(r)
			s.pos += size
			continue
		}
		sb.WriteByte(c)
		s.pos++
	}
	return sb.String()
}

func (s *scanner) readEscape() byte {
	if s.eof() {
		return '\\'
	}
	return s.advance()
}

func (s *scanner) skipInlineSpace() {
	for !s.eof() {
		c := s.peekByte()
		if c == ' ' || c == '\t' {
			s.pos++
			continue
		}
		break
	}
}
