package selector

import (
	"fmt"
	"strings"
	"unicode"
)

// ParseError is returned by Parse on malformed selector text (spec §4.2:
// "fails with InvalidSelector").
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string { return e.Message }

// Parse reads a selector list from text, e.g. ".a.b > %c, &:hover".
// (spec §4.2 public contract: "parse(selector_text) → SelectorList").
func Parse(text string) (List, error) {
	p := &parser{src: text}
	list, err := p.parseList()
	if err != nil {
		return List{}, err
	}
	p.skipSpace()
	if !p.eof() {
		return List{}, &ParseError{fmt.Sprintf("unexpected trailing text %q in selector %q", p.rest(), text)}
	}
	return list, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) eof() bool   { return p.pos >= len(p.src) }
func (p *parser) rest() string { return p.src[p.pos:] }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) skipSpace() {
	for !p.eof() && isSpace(p.src[p.pos]) {
		p.pos++
	}
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }

func isNameStart(c byte) bool {
	return c == '_' || c == '-' || unicode.IsLetter(rune(c)) || c >= 0x80
}

func isNameChar(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9')
}

func (p *parser) readName() (string, error) {
	start := p.pos
	if p.eof() || !isNameStart(p.peek()) {
		return "", &ParseError{fmt.Sprintf("expected a name at %q", p.rest())}
	}
	for !p.eof() && isNameChar(p.peek()) {
		p.pos++
	}
	return p.src[start:p.pos], nil
}

func (p *parser) parseList() (List, error) {
	var list List
	for {
		p.skipSpace()
		complex, err := p.parseComplex()
		if err != nil {
			return List{}, err
		}
		list.Complexes = append(list.Complexes, complex)
		p.skipSpace()
		if !p.eof() && p.peek() == ',' {
			p.pos++
			continue
		}
		break
	}
	return list, nil
}

func (p *parser) parseComplex() (Complex, error) {
	var complex Complex
	first, err := p.parseCompound()
	if err != nil {
		return Complex{}, err
	}
	complex.Compounds = append(complex.Compounds, first)

	for {
		savedPos := p.pos
		p.skipSpace()
		if p.eof() || p.peek() == ',' || p.peek() == ')' {
			p.pos = savedPos
			break
		}
		combinator := Descendant
		sawCombinatorToken := false
		switch p.peek() {
		case '>':
			combinator, sawCombinatorToken = Child, true
			p.pos++
		case '+':
			combinator, sawCombinatorToken = NextSibling, true
			p.pos++
		case '~':
			combinator, sawCombinatorToken = FollowingSibling, true
			p.pos++
		}
		if sawCombinatorToken {
			p.skipSpace()
		}
		if p.eof() || p.peek() == ',' || p.peek() == ')' {
			if sawCombinatorToken {
				return Complex{}, &ParseError{"expected a compound selector after combinator"}
			}
			break
		}
		compound, err := p.parseCompound()
		if err != nil {
			return Complex{}, err
		}
		complex.Compounds = append(complex.Compounds, compound)
		complex.Combinators = append(complex.Combinators, combinator)
	}
	return complex, nil
}

func (p *parser) parseCompound() (Compound, error) {
	var compound Compound
	sawAny := false
	for !p.eof() {
		c := p.peek()
		switch {
		case c == '&':
			p.pos++
			compound.Simples = append(compound.Simples, &Ampersand{})
			sawAny = true
		case c == '*':
			p.pos++
			compound.Simples = append(compound.Simples, &UniversalSelector{})
			sawAny = true
		case c == '.':
			p.pos++
			name, err := p.readName()
			if err != nil {
				return Compound{}, err
			}
			compound.Simples = append(compound.Simples, &ClassSelector{Name: name})
			sawAny = true
		case c == '#':
			p.pos++
			name, err := p.readName()
			if err != nil {
				return Compound{}, err
			}
			compound.Simples = append(compound.Simples, &IDSelector{Name: name})
			sawAny = true
		case c == '%':
			p.pos++
			name, err := p.readName()
			if err != nil {
				return Compound{}, err
			}
			compound.Simples = append(compound.Simples, &Placeholder{Name: name})
			sawAny = true
		case c == '[':
			attr, err := p.parseAttribute()
			if err != nil {
				return Compound{}, err
			}
			compound.Simples = append(compound.Simples, attr)
			sawAny = true
		case c == ':':
			pc, err := p.parsePseudo()
			if err != nil {
				return Compound{}, err
			}
			compound.Simples = append(compound.Simples, pc)
			sawAny = true
		case isNameStart(c):
			name, err := p.readName()
			if err != nil {
				return Compound{}, err
			}
			compound.Simples = append(compound.Simples, &TypeSelector{Name: name})
			sawAny = true
		default:
			if !sawAny {
				return Compound{}, &ParseError{fmt.Sprintf("unexpected character %q in selector", string(c))}
			}
			return compound, nil
		}
	}
	if !sawAny {
		return Compound{}, &ParseError{"expected a compound selector"}
	}
	return compound, nil
}

func (p *parser) parseAttribute() (*AttributeSelector, error) {
	p.pos++ // '['
	p.skipSpace()
	name, err := p.readName()
	if err != nil {
		return nil, err
	}
	attr := &AttributeSelector{Name: name}
	p.skipSpace()
	if !p.eof() && p.peek() != ']' {
		var op strings.Builder
		for _, c := range []byte{'~', '|', '^', '$', '*'} {
			if p.peek() == c {
				op.WriteByte(c)
				p.pos++
				break
			}
		}
		if p.peek() != '=' {
			return nil, &ParseError{"expected '=' in attribute selector"}
		}
		op.WriteByte('=')
		p.pos++
		attr.Op = op.String()
		p.skipSpace()
		attr.Value, err = p.readAttributeValue()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if !p.eof() && (p.peek() == 'i' || p.peek() == 'I') {
			attr.CaseInsensitive = true
			p.pos++
			p.skipSpace()
		}
	}
	if p.eof() || p.peek() != ']' {
		return nil, &ParseError{"expected ']' to close attribute selector"}
	}
	p.pos++
	return attr, nil
}

func (p *parser) readAttributeValue() (string, error) {
	if !p.eof() && (p.peek() == '"' || p.peek() == '\'') {
		quote := p.peek()
		p.pos++
		start := p.pos
		for !p.eof() && p.peek() != quote {
			p.pos++
		}
		if p.eof() {
			return "", &ParseError{"unterminated string in attribute selector"}
		}
		value := p.src[start:p.pos]
		p.pos++
		return value, nil
	}
	start := p.pos
	for !p.eof() && p.peek() != ']' && !isSpace(p.peek()) {
		p.pos++
	}
	return p.src[start:p.pos], nil
}

var selectorsWithSelectorArgs = map[string]bool{
	"not": true, "is": true, "where": true, "has": true, "matches": true,
	"nth-child": true, "nth-last-child": true, "host": true, "host-context": true, "slotted": true,
}

func (p *parser) parsePseudo() (*PseudoClass, error) {
	p.pos++ // ':'
	element := false
	if !p.eof() && p.peek() == ':' {
		element = true
		p.pos++
	}
	name, err := p.readName()
	if err != nil {
		return nil, err
	}
	pc := &PseudoClass{Name: name, Element: element}
	if !p.eof() && p.peek() == '(' {
		p.pos++
		p.skipSpace()
		if selectorsWithSelectorArgs[strings.ToLower(name)] {
			// ":nth-child(2n+1 of S)" mixes a raw index with a nested
			// selector list; keep the raw prefix in Arg and parse the
			// suffix after " of " as the nested list when present.
			argStart := p.pos
			ofIdx := findTopLevelOf(p.src, p.pos)
			closeIdx := findMatchingParen(p.src, p.pos-1)
			if ofIdx >= 0 && closeIdx >= 0 && ofIdx < closeIdx {
				pc.Arg = strings.TrimSpace(p.src[argStart:ofIdx])
				p.pos = ofIdx + len("of")
				nested, err := p.parseList()
				if err != nil {
					return nil, err
				}
				pc.Nested = &nested
				p.skipSpace()
			} else {
				nested, err := p.parseList()
				if err != nil {
					// Not a selector list (e.g. ":nth-child(2n+1)"); fall
					// back to raw text up to the matching close paren.
					p.pos = argStart
					pc.Arg = p.readRawUntilCloseParen()
				} else {
					pc.Nested = &nested
				}
			}
		} else {
			pc.Arg = p.readRawUntilCloseParen()
		}
		p.skipSpace()
		if p.eof() || p.peek() != ')' {
			return nil, &ParseError{fmt.Sprintf("expected ')' to close :%s(...)", name)}
		}
		p.pos++
	}
	return pc, nil
}

func (p *parser) readRawUntilCloseParen() string {
	depth := 0
	start := p.pos
	for !p.eof() {
		switch p.peek() {
		case '(':
			depth++
		case ')':
			if depth == 0 {
				return strings.TrimSpace(p.src[start:p.pos])
			}
			depth--
		}
		p.pos++
	}
	return strings.TrimSpace(p.src[start:p.pos])
}

func findTopLevelOf(src string, start int) int {
	depth := 0
	for i := start; i < len(src); i++ {
		switch src[i] {
		case '(':
			depth++
		case ')':
			if depth == 0 {
				return -1
			}
			depth--
		default:
			if depth == 0 && i+4 <= len(src) && src[i:i+4] == " of " {
				return i + 1
			}
		}
	}
	return -1
}

func findMatchingParen(src string, openIdx int) int {
	depth := 0
	for i := openIdx; i < len(src); i++ {
		switch src[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
