package parser

import (
	"strconv"
	"strings"

	"github.com/go-sass/sass/internal/logger"
	"github.com/go-sass/sass/internal/sassast"
	"github.com/go-sass/sass/internal/value"
)

// parseExpr is the expression entry point used everywhere a full
// SassScript expression is expected: variable values, declaration values,
// arguments to @if/@each/@return, and "#{...}" interpolation bodies (spec
// §3.3). It accepts a top-level comma, producing a comma-separated ListExpr
// when more than one element is present.
func (s *scanner) parseExpr() (sassast.Expr, error) {
	return s.parseCommaList()
}

// parseArgExpr is used for one positional/named argument value, which may
// itself be a space list but never an unparenthesized comma list (the
// comma there separates arguments, per spec §3.3's call grammar).
func (s *scanner) parseArgExpr() (sassast.Expr, error) {
	return s.parseSpaceList()
}

func (s *scanner) parseCommaList() (sassast.Expr, error) {
	start := s.loc()
	first, err := s.parseSpaceList()
	if err != nil {
		return nil, err
	}
	items := []sassast.Expr{first}
	for {
		save := s.pos
		s.skipWhitespaceAndComments()
		if s.peekByte() != ',' {
			s.pos = save
			break
		}
		s.pos++
		s.skipWhitespaceAndComments()
		if s.atExprTerminator() {
			// trailing comma before a closing delimiter
			break
		}
		next, err := s.parseSpaceList()
		if err != nil {
			return nil, err
		}
		items = append(items, next)
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return sassast.NewList(s.rangeFrom(start), items, value.SepComma, false), nil
}

func (s *scanner) parseSpaceList() (sassast.Expr, error) {
	start := s.loc()
	first, err := s.parseDisjunction()
	if err != nil {
		return nil, err
	}
	items := []sassast.Expr{first}
	for {
		save := s.pos
		s.skipInlineSpace()
		if s.eof() || s.atExprTerminator() || s.peekByte() == ',' {
			s.pos = save
			break
		}
		if !s.startsExpr() {
			s.pos = save
			break
		}
		next, err := s.parseDisjunction()
		if err != nil {
			return nil, err
		}
		items = append(items, next)
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return sassast.NewList(s.rangeFrom(start), items, value.SepSpace, false), nil
}

// atExprTerminator reports whether the scanner sits on a byte that can
// never continue an expression at the current nesting level: the closers
// expression parsing never consumes itself.
func (s *scanner) atExprTerminator() bool {
	if s.eof() {
		return true
	}
	switch s.peekByte() {
	case ')', ']', '}', ';', ':':
		return true
	}
	return false
}

// startsExpr peeks (without consuming) whether the upcoming token can
// begin a new operand, used to decide whether whitespace separates two
// space-list items or trails the last one.
func (s *scanner) startsExpr() bool {
	if s.eof() {
		return false
	}
	c := s.peekByte()
	switch {
	case isDigit(c), c == '.' && isDigit(s.peekAt(1)):
		return true
	case c == '$', c == '&', c == '(', c == '[', c == '\'', c == '"', c == '#' && s.peekAt(1) == '{':
		return true
	case c == '-', c == '+':
		return true
	case isIdentStart(c):
		// Covers bare identifiers, named colors, true/false/null, and
		// function calls; "and"/"or"/"not" are also identifiers lexically,
		// but the space-list loop only calls startsExpr to decide whether to
		// keep consuming operands, and parseDisjunction/parseConjunction
		// consume those keywords themselves before space-list ever sees them
		// stranded at the front of a new item.
		return true
	default:
		return false
	}
}

func (s *scanner) peekKeyword(kw string) bool {
	save := s.pos
	defer func() { s.pos = save }()
	if !s.hasPrefix(kw) {
		return false
	}
	end := s.pos + len(kw)
	if end < len(s.contents) && isIdentPart(s.contents[end]) {
		return false
	}
	return true
}

func (s *scanner) parseDisjunction() (sassast.Expr, error) {
	left, err := s.parseConjunction()
	if err != nil {
		return nil, err
	}
	for {
		save := s.pos
		s.skipWhitespaceAndComments()
		if !s.peekKeyword("or") {
			s.pos = save
			return left, nil
		}
		start := left.Range().Loc
		s.pos += 2
		s.skipWhitespaceAndComments()
		right, err := s.parseConjunction()
		if err != nil {
			return nil, err
		}
		left = sassast.NewBinary(s.rangeFrom(start), "or", left, right)
	}
}

func (s *scanner) parseConjunction() (sassast.Expr, error) {
	left, err := s.parseEquality()
	if err != nil {
		return nil, err
	}
	for {
		save := s.pos
		s.skipWhitespaceAndComments()
		if !s.peekKeyword("and") {
			s.pos = save
			return left, nil
		}
		start := left.Range().Loc
		s.pos += 3
		s.skipWhitespaceAndComments()
		right, err := s.parseEquality()
		if err != nil {
			return nil, err
		}
		left = sassast.NewBinary(s.rangeFrom(start), "and", left, right)
	}
}

func (s *scanner) parseEquality() (sassast.Expr, error) {
	left, err := s.parseRelational()
	if err != nil {
		return nil, err
	}
	for {
		save := s.pos
		s.skipWhitespaceAndComments()
		op := ""
		if s.hasPrefix("==") {
			op = "=="
		} else if s.hasPrefix("!=") {
			op = "!="
		}
		if op == "" {
			s.pos = save
			return left, nil
		}
		start := left.Range().Loc
		s.pos += 2
		s.skipWhitespaceAndComments()
		right, err := s.parseRelational()
		if err != nil {
			return nil, err
		}
		left = sassast.NewBinary(s.rangeFrom(start), op, left, right)
	}
}

func (s *scanner) parseRelational() (sassast.Expr, error) {
	left, err := s.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		save := s.pos
		s.skipWhitespaceAndComments()
		op := ""
		switch {
		case s.hasPrefix("<="):
			op = "<="
		case s.hasPrefix(">="):
			op = ">="
		case s.peekByte() == '<':
			op = "<"
		case s.peekByte() == '>':
			op = ">"
		}
		if op == "" {
			s.pos = save
			return left, nil
		}
		start := left.Range().Loc
		s.pos += len(op)
		s.skipWhitespaceAndComments()
		right, err := s.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = sassast.NewBinary(s.rangeFrom(start), op, left, right)
	}
}

func (s *scanner) parseAdditive() (sassast.Expr, error) {
	left, err := s.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		save := s.pos
		// "+"/"-" only binds as a binary operator when it's surrounded the
		// way an operator is (at minimum, not immediately glued to the next
		// token the way a unit-bearing negative literal or a hyphenated
		// identifier would be); requiring at least one side to have space
		// matches Sass's "ambiguous bareword" disambiguation closely enough
		// for ordinary stylesheets.
		hadSpaceBefore := s.skipInlineSpaceReport()
		c := s.peekByte()
		if c != '+' && c != '-' {
			s.pos = save
			return left, nil
		}
		op := string(c)
		s.pos++
		hadSpaceAfter := s.skipInlineSpaceReport()
		if !hadSpaceBefore && !hadSpaceAfter && op == "-" && isIdentStart(s.peekByte()) {
			// part of a hyphenated identifier/number continuation, not an operator
			s.pos = save
			return left, nil
		}
		s.skipWhitespaceAndComments()
		start := left.Range().Loc
		right, err := s.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = sassast.NewBinary(s.rangeFrom(start), op, left, right)
	}
}

func (s *scanner) skipInlineSpaceReport() bool {
	before := s.pos
	s.skipInlineSpace()
	return s.pos != before
}

func (s *scanner) parseMultiplicative() (sassast.Expr, error) {
	left, err := s.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		save := s.pos
		s.skipWhitespaceAndComments()
		c := s.peekByte()
		if c != '*' && c != '/' && c != '%' {
			s.pos = save
			return left, nil
		}
		op := string(c)
		s.pos++
		s.skipWhitespaceAndComments()
		start := left.Range().Loc
		right, err := s.parseUnary()
		if err != nil {
			return nil, err
		}
		left = sassast.NewBinary(s.rangeFrom(start), op, left, right)
	}
}

func (s *scanner) parseUnary() (sassast.Expr, error) {
	start := s.loc()
	if s.peekKeyword("not") {
		s.pos += 3
		s.skipWhitespaceAndComments()
		operand, err := s.parseUnary()
		if err != nil {
			return nil, err
		}
		return sassast.NewUnary(s.rangeFrom(start), "not", operand), nil
	}
	c := s.peekByte()
	if c == '-' && (isDigit(s.peekAt(1)) || s.peekAt(1) == '.' || s.peekAt(1) == '$' || s.peekAt(1) == '(') {
		s.pos++
		operand, err := s.parseUnary()
		if err != nil {
			return nil, err
		}
		return sassast.NewUnary(s.rangeFrom(start), "-", operand), nil
	}
	if c == '+' && (isDigit(s.peekAt(1)) || s.peekAt(1) == '.') {
		s.pos++
		operand, err := s.parseUnary()
		if err != nil {
			return nil, err
		}
		return sassast.NewUnary(s.rangeFrom(start), "+", operand), nil
	}
	return s.parsePrimary()
}

func (s *scanner) parsePrimary() (sassast.Expr, error) {
	start := s.loc()
	if s.eof() {
		return nil, s.errorf(s.rangeFrom(start), "expected expression")
	}
	c := s.peekByte()
	switch {
	case c == '(':
		return s.parseParenOrMapOrList(start)
	case c == '[':
		return s.parseBracketedList(start)
	case c == '\'' || c == '"':
		return s.parseQuotedString(start, c)
	case c == '$':
		return s.parseVariableRef(start)
	case c == '&':
		s.pos++
		return sassast.NewSelectorExpr(s.rangeFrom(start)), nil
	case c == '#' && s.peekAt(1) == '{':
		interp, err := s.readInterpolatedUntil(func(*scanner) bool { return false })
		if err != nil {
			return nil, err
		}
		return sassast.NewString(s.rangeFrom(start), false, interp), nil
	case isDigit(c) || (c == '.' && isDigit(s.peekAt(1))):
		return s.parseNumber(start)
	case c == '#':
		return s.parseHashColor(start)
	case isIdentStart(c):
		return s.parseIdentLed(start)
	default:
		return nil, s.errorf(s.rangeFrom(start), "unexpected character %q in expression", string(c))
	}
}

func (s *scanner) parseNumber(start logger.Loc) (sassast.Expr, error) {
	begin := s.pos
	for isDigit(s.peekByte()) {
		s.pos++
	}
	if s.peekByte() == '.' && isDigit(s.peekAt(1)) {
		s.pos++
		for isDigit(s.peekByte()) {
			s.pos++
		}
	}
	if (s.peekByte() == 'e' || s.peekByte() == 'E') &&
		(isDigit(s.peekAt(1)) || ((s.peekAt(1) == '+' || s.peekAt(1) == '-') && isDigit(s.peekAt(2)))) {
		s.pos++
		if s.peekByte() == '+' || s.peekByte() == '-' {
			s.pos++
		}
		for isDigit(s.peekByte()) {
			s.pos++
		}
	}
	raw := s.contents[begin:s.pos]
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, s.errorf(s.rangeFrom(start), "invalid number %q", raw)
	}
	var num *value.Number
	if s.peekByte() == '%' {
		s.pos++
		num = value.WithUnit(val, "%")
	} else if isIdentStart(s.peekByte()) {
		unit := s.readIdent()
		num = value.WithUnit(val, unit)
	} else {
		num = value.Unitless(val)
	}
	return sassast.NewNumber(s.rangeFrom(start), num), nil
}

func (s *scanner) parseHashColor(start logger.Loc) (sassast.Expr, error) {
	s.pos++ // '#'
	begin := s.pos
	for isHexDigitByte(s.peekByte()) {
		s.pos++
	}
	hex := s.contents[begin:s.pos]
	c, ok := value.HexColor(hex)
	if !ok {
		return nil, s.errorf(s.rangeFrom(start), "invalid hex color %q", "#"+hex)
	}
	return sassast.NewColor(s.rangeFrom(start), c), nil
}

func isHexDigitByte(c byte) bool {
	return isDigit(c) || (c|0x20 >= 'a' && c|0x20 <= 'f')
}

func (s *scanner) parseVariableRef(start logger.Loc) (sassast.Expr, error) {
	s.pos++ // '$'
	name := s.readIdent()
	if name == "" {
		return nil, s.errorf(s.rangeFrom(start), "expected variable name after \"$\"")
	}
	return sassast.NewVariableRef(s.rangeFrom(start), "", name), nil
}

// parseIdentLed handles every primary production that begins with an
// identifier: named colors, booleans, null, bare identifiers (unquoted
// strings), "url(...)" literals, namespaced references ("ns.$var",
// "ns.fn(...)"), function calls, and the if()/calc() family special forms.
func (s *scanner) parseIdentLed(start logger.Loc) (sassast.Expr, error) {
	name := s.readIdent()

	if s.peekByte() == '.' && s.peekAt(1) == '$' {
		s.pos += 2
		varName := s.readIdent()
		if varName == "" {
			return nil, s.errorf(s.rangeFrom(start), "expected variable name after \"$\"")
		}
		return sassast.NewVariableRef(s.rangeFrom(start), name, varName), nil
	}

	lower := strings.ToLower(name)
	switch lower {
	case "true":
		if s.peekByte() != '(' {
			return sassast.NewBool(s.rangeFrom(start), true), nil
		}
	case "false":
		if s.peekByte() != '(' {
			return sassast.NewBool(s.rangeFrom(start), false), nil
		}
	case "null":
		if s.peekByte() != '(' {
			return sassast.NewNull(s.rangeFrom(start)), nil
		}
	}

	if s.peekByte() == '.' {
		save := s.pos
		s.pos++
		if isIdentStart(s.peekByte()) {
			fname := s.readIdent()
			if s.peekByte() == '(' {
				return s.parseCallTail(start, name, sassast.PlainInterpolation(fname))
			}
		}
		s.pos = save
	}

	if s.peekByte() == '(' {
		switch lower {
		case "if":
			return s.parseIfCall(start)
		case "calc", "min", "max", "clamp":
			return s.parseCalcCall(start, lower)
		case "url":
			if lit, ok, err := s.tryParseURLLiteral(start); err != nil {
				return nil, err
			} else if ok {
				return lit, nil
			}
		}
		return s.parseCallTail(start, "", sassast.PlainInterpolation(name))
	}

	if col, ok := value.NamedColor(lower); ok {
		return sassast.NewColor(s.rangeFrom(start), col), nil
	}
	return sassast.NewString(s.rangeFrom(start), false, sassast.PlainInterpolation(name)), nil
}

// tryParseURLLiteral handles the CSS "url(...)" microsyntax, whose
// argument isn't SassScript when unquoted (spec §3.1's "unquoted url()" is
// plain-CSS token soup up to the matching paren).
func (s *scanner) tryParseURLLiteral(start logger.Loc) (sassast.Expr, bool, error) {
	save := s.pos
	s.pos++ // '('
	s.skipInlineSpace()
	if s.peekByte() == '\'' || s.peekByte() == '"' || s.peekByte() == '#' {
		s.pos = save
		return nil, false, nil
	}
	begin := s.pos
	for !s.eof() && s.peekByte() != ')' {
		s.pos++
	}
	raw := strings.TrimRight(s.contents[begin:s.pos], " \t\r\n")
	if s.eof() {
		return nil, false, s.errorf(s.rangeFrom(start), "expected \")\" to close url()")
	}
	s.pos++ // ')'
	return sassast.NewFuncCall(s.rangeFrom(start), "", sassast.PlainInterpolation("url"),
		sassast.ArgInvocation{Positional: []sassast.Expr{sassast.NewString(s.rangeFrom(start), false, sassast.PlainInterpolation(raw))}}, true), true, nil
}

func (s *scanner) parseIfCall(start logger.Loc) (sassast.Expr, error) {
	s.pos++ // '('
	s.skipWhitespaceAndComments()
	cond, err := s.parseArgExpr()
	if err != nil {
		return nil, err
	}
	if err := s.expectByte(','); err != nil {
		return nil, err
	}
	thenV, err := s.parseArgExpr()
	if err != nil {
		return nil, err
	}
	if err := s.expectByte(','); err != nil {
		return nil, err
	}
	elseV, err := s.parseArgExpr()
	if err != nil {
		return nil, err
	}
	s.skipWhitespaceAndComments()
	if err := s.expectByte(')'); err != nil {
		return nil, err
	}
	return sassast.NewIf(s.rangeFrom(start), cond, thenV, elseV), nil
}

func (s *scanner) parseCalcCall(start logger.Loc, name string) (sassast.Expr, error) {
	s.pos++ // '('
	var args []sassast.Expr
	s.skipWhitespaceAndComments()
	for s.peekByte() != ')' {
		arg, err := s.parseArgExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		s.skipWhitespaceAndComments()
		if s.peekByte() == ',' {
			s.pos++
			s.skipWhitespaceAndComments()
			continue
		}
		break
	}
	if err := s.expectByte(')'); err != nil {
		return nil, err
	}
	return sassast.NewCalc(s.rangeFrom(start), name, args), nil
}

// parseCallTail parses "(" arg-invocation ")" after an identifier/namespace
// has already been consumed.
func (s *scanner) parseCallTail(start logger.Loc, namespace string, name sassast.Interpolation) (sassast.Expr, error) {
	args, err := s.parseArgInvocation()
	if err != nil {
		return nil, err
	}
	return sassast.NewFuncCall(s.rangeFrom(start), namespace, name, args, false), nil
}

// parseArgInvocation parses "(" [arg (, arg)* [...]] ")"; the opening paren
// must still be the current byte.
func (s *scanner) parseArgInvocation() (sassast.ArgInvocation, error) {
	var inv sassast.ArgInvocation
	s.pos++ // '('
	s.skipWhitespaceAndComments()
	for s.peekByte() != ')' {
		if s.hasPrefix("...") {
			s.pos += 3
			s.skipWhitespaceAndComments()
			if s.peekByte() == ')' {
				inv.RestIsKeywordOnly = true
				break
			}
			rest, err := s.parseArgExpr()
			if err != nil {
				return inv, err
			}
			inv.Rest = rest
			s.skipWhitespaceAndComments()
			break
		}
		if s.peekByte() == '$' {
			save := s.pos
			s.pos++
			varName := s.readIdent()
			trial := s.pos
			s.skipWhitespaceAndComments()
			if s.peekByte() == ':' {
				s.pos++
				s.skipWhitespaceAndComments()
				val, err := s.parseArgExpr()
				if err != nil {
					return inv, err
				}
				inv.Named = append(inv.Named, sassast.NamedArg{Name: varName, Value: val})
				s.skipWhitespaceAndComments()
				if s.peekByte() == ',' {
					s.pos++
					s.skipWhitespaceAndComments()
					continue
				}
				break
			}
			s.pos = save
			_ = trial
		}
		val, err := s.parseArgExpr()
		if err != nil {
			return inv, err
		}
		inv.Positional = append(inv.Positional, val)
		s.skipWhitespaceAndComments()
		if s.peekByte() == ',' {
			s.pos++
			s.skipWhitespaceAndComments()
			continue
		}
		break
	}
	if err := s.expectByte(')'); err != nil {
		return inv, err
	}
	return inv, nil
}

func (s *scanner) parseParenOrMapOrList(start logger.Loc) (sassast.Expr, error) {
	s.pos++ // '('
	s.skipWhitespaceAndComments()
	if s.peekByte() == ')' {
		s.pos++
		return sassast.NewList(s.rangeFrom(start), nil, value.SepUndecided, false), nil
	}

	first, err := s.parseSpaceList()
	if err != nil {
		return nil, err
	}
	s.skipWhitespaceAndComments()
	if s.peekByte() == ':' {
		s.pos++
		s.skipWhitespaceAndComments()
		firstVal, err := s.parseSpaceList()
		if err != nil {
			return nil, err
		}
		pairs := []sassast.MapPair{{Key: first, Value: firstVal}}
		s.skipWhitespaceAndComments()
		for s.peekByte() == ',' {
			s.pos++
			s.skipWhitespaceAndComments()
			if s.peekByte() == ')' {
				break
			}
			k, err := s.parseSpaceList()
			if err != nil {
				return nil, err
			}
			s.skipWhitespaceAndComments()
			if err := s.expectByte(':'); err != nil {
				return nil, err
			}
			s.skipWhitespaceAndComments()
			v, err := s.parseSpaceList()
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, sassast.MapPair{Key: k, Value: v})
			s.skipWhitespaceAndComments()
		}
		if err := s.expectByte(')'); err != nil {
			return nil, err
		}
		return sassast.NewMapExpr(s.rangeFrom(start), pairs), nil
	}

	items := []sassast.Expr{first}
	for s.peekByte() == ',' {
		s.pos++
		s.skipWhitespaceAndComments()
		if s.peekByte() == ')' {
			break
		}
		next, err := s.parseSpaceList()
		if err != nil {
			return nil, err
		}
		items = append(items, next)
		s.skipWhitespaceAndComments()
	}
	if err := s.expectByte(')'); err != nil {
		return nil, err
	}
	if len(items) == 1 {
		return sassast.NewParen(s.rangeFrom(start), items[0]), nil
	}
	return sassast.NewList(s.rangeFrom(start), items, value.SepComma, false), nil
}

func (s *scanner) parseBracketedList(start logger.Loc) (sassast.Expr, error) {
	s.pos++ // '['
	s.skipWhitespaceAndComments()
	if s.peekByte() == ']' {
		s.pos++
		return sassast.NewList(s.rangeFrom(start), nil, value.SepUndecided, true), nil
	}
	inner, err := s.parseCommaList()
	if err != nil {
		return nil, err
	}
	s.skipWhitespaceAndComments()
	if err := s.expectByte(']'); err != nil {
		return nil, err
	}
	if list, ok := inner.(*sassast.ListExpr); ok {
		return sassast.NewList(s.rangeFrom(start), list.Items, list.Sep, true), nil
	}
	return sassast.NewList(s.rangeFrom(start), []sassast.Expr{inner}, value.SepSpace, true), nil
}

func (s *scanner) parseQuotedString(start logger.Loc, quote byte) (sassast.Expr, error) {
	s.pos++ // opening quote
	interp, err := s.readInterpolatedUntil(func(sc *scanner) bool { return sc.peekByte() == quote })
	if err != nil {
		return nil, err
	}
	if s.eof() {
		return nil, s.errorf(s.rangeFrom(start), "unterminated string literal")
	}
	s.pos++ // closing quote
	return sassast.NewString(s.rangeFrom(start), true, interp), nil
}

func (s *scanner) expectByte(b byte) error {
	if s.eof() || s.peekByte() != b {
		return s.errorf(s.rangeFrom(s.loc()), "expected %q", string(b))
	}
	s.pos++
	return nil
}
