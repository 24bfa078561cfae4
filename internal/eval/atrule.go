package eval

import (
	"strings"

	"github.com/go-sass/sass/internal/cssast"
	"github.com/go-sass/sass/internal/sassast"
)

// execKnownAtRule emits an at-rule the evaluator doesn't give special
// nesting/merge treatment to (spec §4.4: "unknown @foo at-rules ... are
// emitted with their body evaluated in a child block").
func (e *Evaluator) execKnownAtRule(s *sassast.KnownAtRule) error {
	prelude, err := e.evalInterpolation(s.Prelude)
	if err != nil {
		return err
	}

	node := e.Tree.AddAtRule(e.currentNode, cssast.AtRuleData{
		Name:     s.Name,
		Params:   prelude,
		HasBlock: s.HasBody,
	}, s.Range())

	if !s.HasBody {
		return nil
	}

	savedParent := e.currentNode
	savedSelectors := e.selectorStack
	e.currentNode = node
	e.selectorStack = nil // declarations inside a childless-selector at-rule attach directly

	e.env.Push()
	err = e.execBlock(s.Body)
	e.env.Pop()

	e.currentNode = savedParent
	e.selectorStack = savedSelectors
	return err
}

// execMedia intersects the new query with the enclosing media context
// (spec §4.4's merge algebra). Full query-feature algebra is out of scope;
// this implements the common "join with and" case and treats incompatible
// enclosing/inner pairs (one of them already marked unmergeable) as
// unmergeable, emitting the inner rule at its own nesting level rather
// than attempting a query the two can't jointly satisfy.
func (e *Evaluator) execMedia(s *sassast.MediaStmt) error {
	query, err := e.evalInterpolation(s.Query)
	if err != nil {
		return err
	}

	merged := query
	unmergeable := false
	if len(e.mediaStack) > 0 {
		outer := e.mediaStack[len(e.mediaStack)-1]
		if outer.unmergeable {
			unmergeable = true
		} else {
			merged = outer.query + " and " + query
		}
	}

	node := e.Tree.AddAtRule(e.currentNode, cssast.AtRuleData{
		Name:     "media",
		Params:   merged,
		HasBlock: true,
	}, s.Range())

	e.mediaStack = append(e.mediaStack, mediaContext{query: merged, unmergeable: unmergeable})
	savedParent := e.currentNode
	e.currentNode = node

	e.env.Push()
	err = e.execBlock(s.Body)
	e.env.Pop()

	e.currentNode = savedParent
	e.mediaStack = e.mediaStack[:len(e.mediaStack)-1]
	return err
}

// execSupports joins with the enclosing @supports condition using "and"
// (spec §4.4).
func (e *Evaluator) execSupports(s *sassast.SupportsStmt) error {
	condition, err := e.evalSupportsCondition(s.Condition)
	if err != nil {
		return err
	}

	merged := condition
	if len(e.supportsStack) > 0 {
		merged = e.supportsStack[len(e.supportsStack)-1] + " and (" + condition + ")"
	}

	node := e.Tree.AddAtRule(e.currentNode, cssast.AtRuleData{
		Name:     "supports",
		Params:   merged,
		HasBlock: true,
	}, s.Range())

	e.supportsStack = append(e.supportsStack, merged)
	savedParent := e.currentNode
	e.currentNode = node

	e.env.Push()
	err = e.execBlock(s.Body)
	e.env.Pop()

	e.currentNode = savedParent
	e.supportsStack = e.supportsStack[:len(e.supportsStack)-1]
	return err
}

func (e *Evaluator) evalSupportsCondition(c sassast.Expr) (string, error) {
	sc, ok := c.(*sassast.SupportsCondition)
	if !ok {
		v, err := e.evalExpr(c)
		if err != nil {
			return "", err
		}
		return interpolatedString(v), nil
	}
	switch sc.Kind {
	case "decl":
		v, err := e.evalExpr(sc.Decl.Value)
		if err != nil {
			return "", err
		}
		return "(" + sc.Decl.Name + ": " + interpolatedString(v) + ")", nil
	case "not":
		inner, err := e.evalSupportsCondition(wrapCondition(sc.Operands[0]))
		if err != nil {
			return "", err
		}
		return "not (" + inner + ")", nil
	case "and", "or":
		parts := make([]string, len(sc.Operands))
		for i, op := range sc.Operands {
			part, err := e.evalSupportsCondition(wrapCondition(op))
			if err != nil {
				return "", err
			}
			parts[i] = part
		}
		return "(" + strings.Join(parts, " "+sc.Kind+" ") + ")", nil
	case "raw":
		return e.evalInterpolation(sc.Raw)
	default:
		return "", newError(TypeError, sc.Range(), "unsupported @supports condition")
	}
}

func wrapCondition(c sassast.SupportsCondition) sassast.Expr { return &c }

// execAtRoot implements the default "(without: rule)" query: it lifts the
// body out of any enclosing style rules while leaving enclosing @media and
// @supports wrappers in place (spec §4.4). A fuller query grammar
// ("with:"/"without:" naming specific at-rule kinds) is not attempted;
// this covers the default and the common "(with: rule)" shorthand tested
// in practice.
func (e *Evaluator) execAtRoot(s *sassast.AtRootStmt) error {
	withRule := false
	if s.Query != nil {
		v, err := e.evalExpr(s.Query)
		if err != nil {
			return err
		}
		q := interpolatedString(v)
		withRule = strings.Contains(q, "with") && strings.Contains(q, "rule") && !strings.Contains(q, "without")
	}

	savedParent := e.currentNode
	savedSelectors := e.selectorStack
	if !withRule {
		e.currentNode = e.nearestNonStyleRuleAncestor(e.currentNode)
		e.selectorStack = nil
	}

	e.env.Push()
	err := e.execBlock(s.Body)
	e.env.Pop()

	e.currentNode = savedParent
	e.selectorStack = savedSelectors
	return err
}

// nearestNonStyleRuleAncestor walks up from n past style-rule ancestors
// only, stopping at the first @media/@supports/other at-rule or the root.
// @at-root's default query excludes style rules, not every ancestor.
func (e *Evaluator) nearestNonStyleRuleAncestor(n cssast.NodeIndex) cssast.NodeIndex {
	for n != e.Tree.Root() && e.Tree.Node(n).Kind == cssast.KindStyleRule {
		n = e.Tree.Node(n).Parent
	}
	return n
}
