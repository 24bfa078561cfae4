package parser

import (
	"strings"

	"github.com/go-sass/sass/internal/logger"
	"github.com/go-sass/sass/internal/sassast"
)

// parseBlock parses a brace-delimited sequence of statements; the opening
// "{" must still be the current byte. Used for every construct with a
// nested body (style rules, at-rules, control flow, mixin/function bodies).
func (s *scanner) parseBlock() (sassast.Block, error) {
	s.pos++ // '{'
	body, err := s.parseStmtsUntilBrace()
	if err != nil {
		return nil, err
	}
	if err := s.expectByte('}'); err != nil {
		return nil, err
	}
	return body, nil
}

func (s *scanner) parseStmtsUntilBrace() (sassast.Block, error) {
	var block sassast.Block
	for {
		comments := s.skipWhitespaceAndComments()
		for _, c := range comments {
			block = append(block, sassast.NewLoudComment(c.span, c.text))
		}
		if s.eof() || s.peekByte() == '}' {
			return block, nil
		}
		stmt, err := s.parseStmt()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			block = append(block, stmt)
		}
	}
}

// parseTopLevelBlock parses an entire stylesheet body (no enclosing braces).
func (s *scanner) parseTopLevelBlock() (sassast.Block, error) {
	var block sassast.Block
	for {
		comments := s.skipWhitespaceAndComments()
		for _, c := range comments {
			block = append(block, sassast.NewLoudComment(c.span, c.text))
		}
		if s.eof() {
			return block, nil
		}
		stmt, err := s.parseStmt()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			block = append(block, stmt)
		}
	}
}

func (s *scanner) parseStmt() (sassast.Stmt, error) {
	start := s.loc()
	c := s.peekByte()

	switch {
	case c == '@':
		return s.parseAtRule(start)
	case c == '$':
		return s.parseVarDecl(start)
	case c == '+':
		s.pos++
		s.skipInlineSpace()
		return s.parseIncludeTail(start)
	case c == '%' || c == '&' || c == '.' || c == '#' || c == '*' || c == '[' || c == ':' || isIdentStart(c):
		return s.parseStyleRuleOrDeclaration(start)
	default:
		return nil, s.errorf(s.rangeFrom(start), "unexpected character %q at statement position", string(c))
	}
}

func (s *scanner) parseVarDecl(start logger.Loc) (sassast.Stmt, error) {
	s.pos++ // '$'
	name := s.readIdent()
	s.skipWhitespaceAndComments()
	if err := s.expectByte(':'); err != nil {
		return nil, err
	}
	s.skipWhitespaceAndComments()
	val, err := s.parseExpr()
	if err != nil {
		return nil, err
	}
	isDefault, global := false, false
	for {
		save := s.pos
		s.skipInlineSpace()
		if s.peekByte() != '!' {
			s.pos = save
			break
		}
		s.pos++
		flag := s.readIdent()
		switch flag {
		case "default":
			isDefault = true
		case "global":
			global = true
		default:
			return nil, s.errorf(s.rangeFrom(start), "unknown flag !%s", flag)
		}
	}
	s.skipInlineSpace()
	s.consumeStmtTerminator()
	return sassast.NewVarDecl(s.rangeFrom(start), "", name, val, isDefault, global), nil
}

// consumeStmtTerminator consumes an optional trailing ";", matching the
// grammar's rule that the statement immediately before a closing brace may
// omit its semicolon. It consumes nothing else.
func (s *scanner) consumeStmtTerminator() {
	if s.peekByte() == ';' {
		s.pos++
	}
}

// parseStyleRuleOrDeclaration disambiguates "selector { ... }" from
// "property: value { ... }" by scanning the interpolated header up to the
// first unnested "{", ";", or "}" and checking whether the first top-level
// ":" is immediately followed by whitespace (spec §3.2's declaration-vs-
// rule ambiguity). "font: { ... }" and "width: 1px { ... }" both have a
// space after their colon; "a:hover { ... }" does not, which is what marks
// it as a selector rather than a nested declaration header.
func (s *scanner) parseStyleRuleOrDeclaration(start logger.Loc) (sassast.Stmt, error) {
	header, declLike, err := s.readHeaderInterpolation()
	if err != nil {
		return nil, err
	}
	switch s.peekByte() {
	case '{':
		if declLike {
			return s.parseNestedDeclaration(start, header)
		}
		body, err := s.parseBlock()
		if err != nil {
			return nil, err
		}
		return sassast.NewStyleRule(s.rangeFrom(start), header, body), nil
	case ';', '}':
		s.consumeStmtTerminator()
		return s.declarationFromHeader(start, header)
	default:
		return nil, s.errorf(s.rangeFrom(start), "expected \"{\" or \";\"")
	}
}

func headerPreview(header sassast.Interpolation) string {
	var sb strings.Builder
	for _, seg := range header {
		if !seg.IsExpr {
			sb.WriteString(seg.Text)
		}
	}
	return sb.String()
}

// readHeaderInterpolation reads up to (but not past) the first top-level
// "{", ";" or "}" and reports whether the first top-level ":" encountered
// was immediately followed by whitespace or end-of-header, which is the
// declaration-vs-selector signal parseStyleRuleOrDeclaration uses.
func (s *scanner) readHeaderInterpolation() (sassast.Interpolation, bool, error) {
	declLike := false
	seenColon := false
	interp, err := s.readInterpolatedUntil(func(sc *scanner) bool {
		switch sc.peekByte() {
		case '{', ';', '}':
			return true
		case ':':
			if !seenColon {
				seenColon = true
				next := sc.peekAt(1)
				declLike = next == ' ' || next == '\t' || next == '\n' || next == '\r' || next == 0
			}
		}
		return false
	})
	return interp, declLike, err
}

func (s *scanner) declarationFromHeader(start logger.Loc, header sassast.Interpolation) (sassast.Stmt, error) {
	text := header
	if !text.IsPlainText() {
		return nil, s.errorf(s.rangeFrom(start), "declarations with interpolated property/value pairs must use \"prop: value\" form")
	}
	raw := text.PlainText()
	idx := strings.IndexByte(raw, ':')
	if idx < 0 {
		return nil, s.errorf(s.rangeFrom(start), "expected \":\"")
	}
	name := strings.TrimSpace(raw[:idx])
	valueText := strings.TrimSpace(raw[idx+1:])
	isCustom := strings.HasPrefix(name, "--")
	important := false
	if strings.HasSuffix(valueText, "!important") {
		important = true
		valueText = strings.TrimSpace(strings.TrimSuffix(valueText, "!important"))
	}
	if isCustom {
		return sassast.NewDeclaration(s.rangeFrom(start), sassast.PlainInterpolation(name), nil, nil, important, true, sassast.PlainInterpolation(valueText)), nil
	}
	sub := newScanner(s.url, valueText)
	val, err := sub.parseExpr()
	if err != nil {
		return nil, err
	}
	return sassast.NewDeclaration(s.rangeFrom(start), sassast.PlainInterpolation(name), val, nil, important, false, nil), nil
}

// parseNestedDeclaration handles "font: { size: 1px; weight: bold; }",
// where a property groups several sub-declarations under itself instead of
// (or in addition to) carrying its own value.
func (s *scanner) parseNestedDeclaration(start logger.Loc, header sassast.Interpolation) (sassast.Stmt, error) {
	if !header.IsPlainText() {
		return nil, s.errorf(s.rangeFrom(start), "nested declaration name must not be interpolated")
	}
	raw := header.PlainText()
	idx := strings.IndexByte(raw, ':')
	name := strings.TrimSpace(raw[:idx])
	valueText := strings.TrimSpace(raw[idx+1:])
	var val sassast.Expr
	if valueText != "" {
		sub := newScanner(s.url, valueText)
		v, err := sub.parseExpr()
		if err != nil {
			return nil, err
		}
		val = v
	}
	body, err := s.parseBlock()
	if err != nil {
		return nil, err
	}
	return sassast.NewDeclaration(s.rangeFrom(start), sassast.PlainInterpolation(name), val, body, false, false, nil), nil
}

func (s *scanner) parseSignature() (sassast.Signature, error) {
	var sig sassast.Signature
	s.skipWhitespaceAndComments()
	if err := s.expectByte('('); err != nil {
		return sig, err
	}
	s.skipWhitespaceAndComments()
	for s.peekByte() != ')' {
		if s.hasPrefix("...") {
			s.pos += 3
			s.skipWhitespaceAndComments()
			// allow an optional rest-parameter name for forms where "$args..."
			// already consumed the name before the ellipsis
			break
		}
		if s.peekByte() != '$' {
			return sig, s.errorf(s.rangeFrom(s.loc()), "expected parameter name")
		}
		s.pos++
		name := s.readIdent()
		s.skipWhitespaceAndComments()
		if s.hasPrefix("...") {
			s.pos += 3
			sig.RestArg = name
			s.skipWhitespaceAndComments()
			break
		}
		var def sassast.Expr
		if s.peekByte() == ':' {
			s.pos++
			s.skipWhitespaceAndComments()
			v, err := s.parseArgExpr()
			if err != nil {
				return sig, err
			}
			def = v
			s.skipWhitespaceAndComments()
		}
		sig.Params = append(sig.Params, sassast.ParamDefault{Name: name, Default: def})
		if s.peekByte() == ',' {
			s.pos++
			s.skipWhitespaceAndComments()
			continue
		}
		break
	}
	s.skipWhitespaceAndComments()
	if err := s.expectByte(')'); err != nil {
		return sig, err
	}
	return sig, nil
}

func (s *scanner) parseAtRule(start logger.Loc) (sassast.Stmt, error) {
	s.pos++ // '@'
	name := s.readIdent()
	switch name {
	case "use":
		return s.parseUse(start)
	case "forward":
		return s.parseForward(start)
	case "import":
		return s.parseImport(start)
	case "mixin":
		return s.parseMixinDecl(start)
	case "function":
		return s.parseFuncDecl(start)
	case "include":
		s.skipInlineSpace()
		return s.parseIncludeTail(start)
	case "content":
		return s.parseContent(start)
	case "return":
		s.skipWhitespaceAndComments()
		val, err := s.parseExpr()
		if err != nil {
			return nil, err
		}
		s.consumeStmtTerminator()
		return sassast.NewReturn(s.rangeFrom(start), val), nil
	case "if":
		return s.parseIf(start)
	case "each":
		return s.parseEach(start)
	case "for":
		return s.parseFor(start)
	case "while":
		return s.parseWhile(start)
	case "extend":
		return s.parseExtend(start)
	case "at-root":
		return s.parseAtRoot(start)
	case "media":
		return s.parseMedia(start)
	case "supports":
		return s.parseSupports(start)
	case "warn":
		return s.parseMessageStmt(start, sassast.NewWarn)
	case "error":
		return s.parseMessageStmt(start, sassast.NewError)
	case "debug":
		return s.parseMessageStmt(start, sassast.NewDebug)
	case "else":
		return nil, s.errorf(s.rangeFrom(start), "@else without a preceding @if")
	default:
		return s.parseKnownAtRule(start, name)
	}
}

func (s *scanner) parseMessageStmt(start logger.Loc, build func(logger.Range, sassast.Expr) sassast.Stmt) (sassast.Stmt, error) {
	s.skipWhitespaceAndComments()
	val, err := s.parseExpr()
	if err != nil {
		return nil, err
	}
	s.consumeStmtTerminator()
	return build(s.rangeFrom(start), val), nil
}

func (s *scanner) parseKnownAtRule(start logger.Loc, name string) (sassast.Stmt, error) {
	s.skipInlineSpace()
	prelude, _, err := s.readHeaderInterpolation()
	if err != nil {
		return nil, err
	}
	switch s.peekByte() {
	case '{':
		body, err := s.parseBlock()
		if err != nil {
			return nil, err
		}
		return sassast.NewKnownAtRule(s.rangeFrom(start), name, prelude, body, true), nil
	case ';', '}':
		s.consumeStmtTerminator()
		return sassast.NewKnownAtRule(s.rangeFrom(start), name, prelude, nil, false), nil
	default:
		return nil, s.errorf(s.rangeFrom(start), "expected \"{\" or \";\" after @%s", name)
	}
}

func (s *scanner) parseUrlOrString(start logger.Loc) (sassast.Interpolation, error) {
	s.skipWhitespaceAndComments()
	if s.peekByte() == '\'' || s.peekByte() == '"' {
		quote := s.peekByte()
		s.pos++
		interp, err := s.readInterpolatedUntil(func(sc *scanner) bool { return sc.peekByte() == quote })
		if err != nil {
			return nil, err
		}
		s.pos++ // closing quote
		return interp, nil
	}
	return nil, s.errorf(s.rangeFrom(start), "expected quoted URL")
}

func (s *scanner) parseUse(start logger.Loc) (sassast.Stmt, error) {
	url, err := s.parseUrlOrString(start)
	if err != nil {
		return nil, err
	}
	namespace := ""
	var with []sassast.Configuration
	for {
		save := s.pos
		s.skipInlineSpace()
		if s.hasPrefix("as") && !isIdentPart(s.peekAt(2)) {
			s.pos += 2
			s.skipWhitespaceAndComments()
			if s.peekByte() == '*' {
				s.pos++
				namespace = "*"
			} else {
				namespace = s.readIdent()
			}
			continue
		}
		if s.hasPrefix("with") && !isIdentPart(s.peekAt(4)) {
			s.pos += 4
			s.skipWhitespaceAndComments()
			cfg, err := s.parseWithClause()
			if err != nil {
				return nil, err
			}
			with = cfg
			continue
		}
		s.pos = save
		break
	}
	s.skipInlineSpace()
	s.consumeStmtTerminator()
	return sassast.NewUse(s.rangeFrom(start), url, namespace, with), nil
}

func (s *scanner) parseWithClause() ([]sassast.Configuration, error) {
	if err := s.expectByte('('); err != nil {
		return nil, err
	}
	var cfgs []sassast.Configuration
	s.skipWhitespaceAndComments()
	for s.peekByte() != ')' {
		if err := s.expectByte('$'); err != nil {
			return nil, err
		}
		name := s.readIdent()
		s.skipWhitespaceAndComments()
		if err := s.expectByte(':'); err != nil {
			return nil, err
		}
		s.skipWhitespaceAndComments()
		val, err := s.parseArgExpr()
		if err != nil {
			return nil, err
		}
		isDefault := false
		save := s.pos
		s.skipInlineSpace()
		if s.peekByte() == '!' {
			s.pos++
			if s.readIdent() == "default" {
				isDefault = true
			}
		} else {
			s.pos = save
		}
		cfgs = append(cfgs, sassast.Configuration{Name: name, Value: val, Default: isDefault})
		s.skipWhitespaceAndComments()
		if s.peekByte() == ',' {
			s.pos++
			s.skipWhitespaceAndComments()
			continue
		}
		break
	}
	return cfgs, s.expectByte(')')
}

func (s *scanner) parseForward(start logger.Loc) (sassast.Stmt, error) {
	url, err := s.parseUrlOrString(start)
	if err != nil {
		return nil, err
	}
	prefix := ""
	var vis sassast.VisibilitySpec
	var with []sassast.Configuration
	for {
		save := s.pos
		s.skipInlineSpace()
		switch {
		case s.hasPrefix("as") && !isIdentPart(s.peekAt(2)):
			s.pos += 2
			s.skipWhitespaceAndComments()
			prefix = s.readIdent()
			if s.peekByte() == '*' {
				s.pos++
			}
		case s.hasPrefix("show") && !isIdentPart(s.peekAt(4)):
			s.pos += 4
			s.skipWhitespaceAndComments()
			vis.IsShow = true
			vis.Show = s.parseIdentList()
		case s.hasPrefix("hide") && !isIdentPart(s.peekAt(4)):
			s.pos += 4
			s.skipWhitespaceAndComments()
			vis.Hide = s.parseIdentList()
		case s.hasPrefix("with") && !isIdentPart(s.peekAt(4)):
			s.pos += 4
			s.skipWhitespaceAndComments()
			cfg, err := s.parseWithClause()
			if err != nil {
				return nil, err
			}
			with = cfg
		default:
			s.pos = save
			goto done
		}
	}
done:
	s.skipInlineSpace()
	s.consumeStmtTerminator()
	return sassast.NewForward(s.rangeFrom(start), url, prefix, vis, with), nil
}

func (s *scanner) parseIdentList() []string {
	var names []string
	for {
		if s.peekByte() == '$' {
			s.pos++
		}
		names = append(names, s.readIdent())
		save := s.pos
		s.skipWhitespaceAndComments()
		if s.peekByte() == ',' {
			s.pos++
			s.skipWhitespaceAndComments()
			continue
		}
		s.pos = save
		break
	}
	return names
}

func (s *scanner) parseImport(start logger.Loc) (sassast.Stmt, error) {
	var targets []sassast.ImportTarget
	for {
		s.skipWhitespaceAndComments()
		var url sassast.Interpolation
		if s.peekByte() == '\'' || s.peekByte() == '"' {
			u, err := s.parseUrlOrString(start)
			if err != nil {
				return nil, err
			}
			url = u
		} else {
			u, err := s.readInterpolatedUntil(func(sc *scanner) bool {
				switch sc.peekByte() {
				case ',', ';', '}':
					return true
				}
				return false
			})
			if err != nil {
				return nil, err
			}
			url = u
		}
		targets = append(targets, sassast.ImportTarget{URL: url})
		s.skipWhitespaceAndComments()
		if s.peekByte() == ',' {
			s.pos++
			continue
		}
		break
	}
	s.consumeStmtTerminator()
	return sassast.NewImportStmt(s.rangeFrom(start), targets), nil
}

func (s *scanner) parseMixinDecl(start logger.Loc) (sassast.Stmt, error) {
	s.skipWhitespaceAndComments()
	namespace, name := s.readMaybeNamespacedIdent()
	s.skipWhitespaceAndComments()
	var sig sassast.Signature
	if s.peekByte() == '(' {
		sg, err := s.parseSignature()
		if err != nil {
			return nil, err
		}
		sig = sg
	}
	s.skipWhitespaceAndComments()
	body, err := s.parseBlock()
	if err != nil {
		return nil, err
	}
	acceptsContent := bodyUsesContent(body)
	return sassast.NewMixinDecl(s.rangeFrom(start), namespace, name, sig, body, acceptsContent), nil
}

func bodyUsesContent(body sassast.Block) bool {
	for _, stmt := range body {
		switch st := stmt.(type) {
		case *sassast.ContentStmt:
			return true
		case *sassast.IfStmt:
			for _, cl := range st.Clauses {
				if bodyUsesContent(cl.Body) {
					return true
				}
			}
			if bodyUsesContent(st.Else) {
				return true
			}
		case *sassast.EachStmt:
			if bodyUsesContent(st.Body) {
				return true
			}
		case *sassast.ForStmt:
			if bodyUsesContent(st.Body) {
				return true
			}
		case *sassast.WhileStmt:
			if bodyUsesContent(st.Body) {
				return true
			}
		case *sassast.StyleRule:
			if bodyUsesContent(st.Body) {
				return true
			}
		case *sassast.MediaStmt:
			if bodyUsesContent(st.Body) {
				return true
			}
		case *sassast.SupportsStmt:
			if bodyUsesContent(st.Body) {
				return true
			}
		}
	}
	return false
}

func (s *scanner) parseFuncDecl(start logger.Loc) (sassast.Stmt, error) {
	s.skipWhitespaceAndComments()
	namespace, name := s.readMaybeNamespacedIdent()
	sig, err := s.parseSignature()
	if err != nil {
		return nil, err
	}
	s.skipWhitespaceAndComments()
	body, err := s.parseBlock()
	if err != nil {
		return nil, err
	}
	return sassast.NewFuncDecl(s.rangeFrom(start), namespace, name, sig, body), nil
}

func (s *scanner) readMaybeNamespacedIdent() (namespace, name string) {
	first := s.readIdent()
	if s.peekByte() == '.' && isIdentStart(s.peekAt(1)) {
		s.pos++
		return first, s.readIdent()
	}
	return "", first
}

func (s *scanner) parseIncludeTail(start logger.Loc) (sassast.Stmt, error) {
	namespace, name := s.readMaybeNamespacedIdent()
	var args sassast.ArgInvocation
	s.skipInlineSpace()
	if s.peekByte() == '(' {
		a, err := s.parseArgInvocation()
		if err != nil {
			return nil, err
		}
		args = a
	}
	var contentArgs sassast.Signature
	hasUsing := false
	save := s.pos
	s.skipWhitespaceAndComments()
	if s.hasPrefix("using") && !isIdentPart(s.peekAt(5)) {
		s.pos += 5
		sg, err := s.parseSignature()
		if err != nil {
			return nil, err
		}
		contentArgs = sg
		hasUsing = true
	} else {
		s.pos = save
	}
	save = s.pos
	s.skipWhitespaceAndComments()
	var content sassast.Block
	hasContent := false
	if s.peekByte() == '{' {
		body, err := s.parseBlock()
		if err != nil {
			return nil, err
		}
		content = body
		hasContent = true
	} else {
		s.pos = save
		s.consumeStmtTerminator()
	}
	_ = hasUsing
	return sassast.NewInclude(s.rangeFrom(start), namespace, name, args, contentArgs, content, hasContent), nil
}

func (s *scanner) parseContent(start logger.Loc) (sassast.Stmt, error) {
	var args sassast.ArgInvocation
	s.skipInlineSpace()
	if s.peekByte() == '(' {
		a, err := s.parseArgInvocation()
		if err != nil {
			return nil, err
		}
		args = a
	}
	s.skipInlineSpace()
	s.consumeStmtTerminator()
	return sassast.NewContent(s.rangeFrom(start), args), nil
}

func (s *scanner) parseIf(start logger.Loc) (sassast.Stmt, error) {
	s.skipWhitespaceAndComments()
	cond, err := s.parseExpr()
	if err != nil {
		return nil, err
	}
	s.skipWhitespaceAndComments()
	body, err := s.parseBlock()
	if err != nil {
		return nil, err
	}
	clauses := []sassast.IfClause{{Cond: cond, Body: body}}
	var elseBody sassast.Block
	for {
		save := s.pos
		s.skipWhitespaceAndComments()
		if !s.hasPrefix("@else") {
			s.pos = save
			break
		}
		s.pos += 5
		s.skipWhitespaceAndComments()
		if s.hasPrefix("if") && !isIdentPart(s.peekAt(2)) {
			s.pos += 2
			s.skipWhitespaceAndComments()
			c, err := s.parseExpr()
			if err != nil {
				return nil, err
			}
			s.skipWhitespaceAndComments()
			b, err := s.parseBlock()
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, sassast.IfClause{Cond: c, Body: b})
			continue
		}
		b, err := s.parseBlock()
		if err != nil {
			return nil, err
		}
		elseBody = b
		break
	}
	return sassast.NewIf_(s.rangeFrom(start), clauses, elseBody), nil
}

func (s *scanner) parseEach(start logger.Loc) (sassast.Stmt, error) {
	s.skipWhitespaceAndComments()
	var vars []string
	for {
		if err := s.expectByte('$'); err != nil {
			return nil, err
		}
		vars = append(vars, s.readIdent())
		save := s.pos
		s.skipWhitespaceAndComments()
		if s.peekByte() == ',' {
			s.pos++
			s.skipWhitespaceAndComments()
			continue
		}
		s.pos = save
		break
	}
	s.skipWhitespaceAndComments()
	if s.hasPrefix("in") && !isIdentPart(s.peekAt(2)) {
		s.pos += 2
	} else {
		return nil, s.errorf(s.rangeFrom(start), "expected \"in\"")
	}
	s.skipWhitespaceAndComments()
	in, err := s.parseExpr()
	if err != nil {
		return nil, err
	}
	s.skipWhitespaceAndComments()
	body, err := s.parseBlock()
	if err != nil {
		return nil, err
	}
	return sassast.NewEach(s.rangeFrom(start), vars, in, body), nil
}

func (s *scanner) parseFor(start logger.Loc) (sassast.Stmt, error) {
	s.skipWhitespaceAndComments()
	if err := s.expectByte('$'); err != nil {
		return nil, err
	}
	varName := s.readIdent()
	s.skipWhitespaceAndComments()
	if s.hasPrefix("from") && !isIdentPart(s.peekAt(4)) {
		s.pos += 4
	} else {
		return nil, s.errorf(s.rangeFrom(start), "expected \"from\"")
	}
	s.skipWhitespaceAndComments()
	from, err := s.parseArgExpr()
	if err != nil {
		return nil, err
	}
	s.skipWhitespaceAndComments()
	inclusive := false
	if s.hasPrefix("through") && !isIdentPart(s.peekAt(7)) {
		s.pos += 7
		inclusive = true
	} else if s.hasPrefix("to") && !isIdentPart(s.peekAt(2)) {
		s.pos += 2
	} else {
		return nil, s.errorf(s.rangeFrom(start), "expected \"to\" or \"through\"")
	}
	s.skipWhitespaceAndComments()
	to, err := s.parseExpr()
	if err != nil {
		return nil, err
	}
	s.skipWhitespaceAndComments()
	body, err := s.parseBlock()
	if err != nil {
		return nil, err
	}
	return sassast.NewFor(s.rangeFrom(start), varName, from, to, inclusive, body), nil
}

func (s *scanner) parseWhile(start logger.Loc) (sassast.Stmt, error) {
	s.skipWhitespaceAndComments()
	cond, err := s.parseExpr()
	if err != nil {
		return nil, err
	}
	s.skipWhitespaceAndComments()
	body, err := s.parseBlock()
	if err != nil {
		return nil, err
	}
	return sassast.NewWhile(s.rangeFrom(start), cond, body), nil
}

func (s *scanner) parseExtend(start logger.Loc) (sassast.Stmt, error) {
	s.skipWhitespaceAndComments()
	target, err := s.readInterpolatedUntil(func(sc *scanner) bool {
		switch sc.peekByte() {
		case ';', '}':
			return true
		}
		return false
	})
	if err != nil {
		return nil, err
	}
	optional := false
	text := strings.TrimRight(headerPreview(target), " \t")
	if strings.HasSuffix(text, "!optional") {
		optional = true
		target = sassast.PlainInterpolation(strings.TrimSpace(strings.TrimSuffix(text, "!optional")))
	}
	s.consumeStmtTerminator()
	return sassast.NewExtend(s.rangeFrom(start), target, optional), nil
}

func (s *scanner) parseAtRoot(start logger.Loc) (sassast.Stmt, error) {
	s.skipInlineSpace()
	var query sassast.Expr
	if s.peekByte() == '(' {
		q, err := s.parseExpr()
		if err != nil {
			return nil, err
		}
		query = q
		s.skipWhitespaceAndComments()
	}
	body, err := s.parseBlock()
	if err != nil {
		return nil, err
	}
	return sassast.NewAtRoot(s.rangeFrom(start), query, body), nil
}

func (s *scanner) parseMedia(start logger.Loc) (sassast.Stmt, error) {
	s.skipInlineSpace()
	query, _, err := s.readHeaderInterpolation()
	if err != nil {
		return nil, err
	}
	body, err := s.parseBlock()
	if err != nil {
		return nil, err
	}
	return sassast.NewMediaStmt(s.rangeFrom(start), query, body), nil
}

func (s *scanner) parseSupports(start logger.Loc) (sassast.Stmt, error) {
	s.skipWhitespaceAndComments()
	cond, err := s.parseSupportsCondition()
	if err != nil {
		return nil, err
	}
	s.skipWhitespaceAndComments()
	body, err := s.parseBlock()
	if err != nil {
		return nil, err
	}
	return sassast.NewSupportsStmt(s.rangeFrom(start), cond, body), nil
}

// parseSupportsCondition parses the small and/or/not/decl grammar of
// @supports queries (spec §4.4); it stays a hand-rolled recursive descent
// over the same scanner rather than routing through parseExpr since
// "(prop: value)" isn't SassScript. Every return value is a
// *sassast.SupportsCondition, which already implements sassast.Expr, so
// callers needing an Expr can use the result directly.
func (s *scanner) parseSupportsCondition() (*sassast.SupportsCondition, error) {
	start := s.loc()
	if s.hasPrefix("not") && !isIdentPart(s.peekAt(3)) {
		s.pos += 3
		s.skipWhitespaceAndComments()
		operand, err := s.parseSupportsConditionInParens()
		if err != nil {
			return nil, err
		}
		return sassast.NewSupportsCondition(s.rangeFrom(start), "not", nil, []sassast.SupportsCondition{*operand}, nil), nil
	}
	left, err := s.parseSupportsConditionInParens()
	if err != nil {
		return nil, err
	}
	operands := []sassast.SupportsCondition{*left}
	kind := ""
	for {
		save := s.pos
		s.skipWhitespaceAndComments()
		var op string
		if s.hasPrefix("and") && !isIdentPart(s.peekAt(3)) {
			op = "and"
		} else if s.hasPrefix("or") && !isIdentPart(s.peekAt(2)) {
			op = "or"
		}
		if op == "" {
			s.pos = save
			break
		}
		if kind == "" {
			kind = op
		}
		s.pos += len(op)
		s.skipWhitespaceAndComments()
		next, err := s.parseSupportsConditionInParens()
		if err != nil {
			return nil, err
		}
		operands = append(operands, *next)
	}
	if len(operands) == 1 {
		return &operands[0], nil
	}
	return sassast.NewSupportsCondition(s.rangeFrom(start), kind, nil, operands, nil), nil
}

// parseSupportsConditionInParens parses a single parenthesized operand: a
// nested "(cond)", a "(not cond)", or a "(prop: value)" declaration pair.
// Anything else degrades to an opaque "raw" condition carrying its source
// text, so an unusual but valid @supports feature query still round-trips.
func (s *scanner) parseSupportsConditionInParens() (*sassast.SupportsCondition, error) {
	start := s.loc()
	if err := s.expectByte('('); err != nil {
		return nil, err
	}
	s.skipWhitespaceAndComments()
	if s.hasPrefix("not") && !isIdentPart(s.peekAt(3)) {
		s.pos += 3
		s.skipWhitespaceAndComments()
		inner, err := s.parseSupportsConditionInParens()
		if err != nil {
			return nil, err
		}
		s.skipWhitespaceAndComments()
		if err := s.expectByte(')'); err != nil {
			return nil, err
		}
		return sassast.NewSupportsCondition(s.rangeFrom(start), "not", nil, []sassast.SupportsCondition{*inner}, nil), nil
	}
	if s.peekByte() == '(' {
		inner, err := s.parseSupportsCondition()
		if err != nil {
			return nil, err
		}
		s.skipWhitespaceAndComments()
		if err := s.expectByte(')'); err != nil {
			return nil, err
		}
		return inner, nil
	}
	raw, err := s.readInterpolatedUntil(func(sc *scanner) bool { return sc.peekByte() == ')' })
	if err != nil {
		return nil, err
	}
	text := headerPreview(raw)
	if err := s.expectByte(')'); err != nil {
		return nil, err
	}
	idx := strings.IndexByte(text, ':')
	if idx < 0 {
		return sassast.NewSupportsCondition(s.rangeFrom(start), "raw", nil, nil, raw), nil
	}
	name := strings.TrimSpace(text[:idx])
	valueText := strings.TrimSpace(text[idx+1:])
	sub := newScanner(s.url, valueText)
	val, err := sub.parseExpr()
	if err != nil {
		return nil, err
	}
	decl := &sassast.NamedArg{Name: name, Value: val}
	return sassast.NewSupportsCondition(s.rangeFrom(start), "decl", decl, nil, nil), nil
}
