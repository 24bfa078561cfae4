package eval

import (
	"github.com/go-sass/sass/internal/cssast"
	"github.com/go-sass/sass/internal/logger"
	"github.com/go-sass/sass/internal/sassast"
	"github.com/go-sass/sass/internal/selector"
	"github.com/go-sass/sass/internal/value"
)

func (e *Evaluator) execBlock(stmts Block) error {
	for _, stmt := range stmts {
		if err := e.execStmt(stmt); err != nil {
			return err
		}
		if e.returning {
			return nil
		}
	}
	return nil
}

// execStmt executes one Sass statement against the evaluator's current
// state (spec §4.4): "statements produce zero or more CSS nodes attached
// to a current parent".
func (e *Evaluator) execStmt(stmt sassast.Stmt) error {
	switch s := stmt.(type) {
	case *sassast.VarDecl:
		return e.execVarDecl(s)
	case *sassast.StyleRule:
		return e.execStyleRule(s)
	case *sassast.Declaration:
		return e.execDeclaration(s)
	case *sassast.KnownAtRule:
		return e.execKnownAtRule(s)
	case *sassast.FuncDecl:
		e.env.DeclareFunction(s)
		return nil
	case *sassast.MixinDecl:
		e.env.DeclareMixin(s)
		return nil
	case *sassast.Include:
		return e.execInclude(s)
	case *sassast.ContentStmt:
		return e.execContent(s)
	case *sassast.IfStmt:
		return e.execIf(s)
	case *sassast.EachStmt:
		return e.execEach(s)
	case *sassast.ForStmt:
		return e.execFor(s)
	case *sassast.WhileStmt:
		return e.execWhile(s)
	case *sassast.ExtendStmt:
		return e.execExtend(s)
	case *sassast.AtRootStmt:
		return e.execAtRoot(s)
	case *sassast.MediaStmt:
		return e.execMedia(s)
	case *sassast.SupportsStmt:
		return e.execSupports(s)
	case *sassast.ImportStmt:
		return e.execImport(s)
	case *sassast.UseStmt:
		return e.execUse(s)
	case *sassast.ForwardStmt:
		return e.execForward(s)
	case *sassast.ReturnStmt:
		v, err := e.evalExpr(s.Value)
		if err != nil {
			return err
		}
		e.returning = true
		e.returnVal = v
		return nil
	case *sassast.WarnStmt:
		v, err := e.evalExpr(s.Message)
		if err != nil {
			return err
		}
		e.Log.Warn(interpolatedString(v), s.Range(), e.stackFrames())
		return nil
	case *sassast.ErrorStmt:
		v, err := e.evalExpr(s.Message)
		if err != nil {
			return err
		}
		return e.wrapError(newError(UserError, s.Range(), "%s", interpolatedString(v)))
	case *sassast.DebugStmt:
		v, err := e.evalExpr(s.Message)
		if err != nil {
			return err
		}
		e.Log.Debug(interpolatedString(v), s.Range())
		return nil
	case *sassast.LoudComment:
		e.Tree.AddComment(e.currentNode, s.Text, s.Range())
		return nil
	case *sassast.SilentComment:
		return nil
	default:
		return newError(TypeError, stmt.Range(), "unsupported statement node")
	}
}

func (e *Evaluator) execVarDecl(s *sassast.VarDecl) error {
	v, err := e.evalExpr(s.Value)
	if err != nil {
		return err
	}
	if s.Default {
		e.env.DeclareDefault(s.Name, v, s.Global)
	} else {
		e.env.SetVariable(s.Name, v, s.Global)
	}
	return nil
}

// execStyleRule resolves the "&" nesting algorithm against the enclosing
// selector stack, parses the result, opens a CSS style-rule node, executes
// the body against it, and pops the selector stack (spec §4.4).
func (e *Evaluator) execStyleRule(s *sassast.StyleRule) error {
	text, err := e.evalInterpolation(s.Selector)
	if err != nil {
		return err
	}
	parsed, perr := selector.Parse(text)
	if perr != nil {
		return newError(InvalidSelector, s.Range(), "invalid selector %q: %v", text, perr)
	}

	parent := e.currentSelector()
	resolved, err := nestSelector(parsed, parent, s.Range())
	if err != nil {
		return err
	}

	node := e.Tree.AddStyleRule(e.currentNode, resolved, s.Range())
	e.selectorStack = append(e.selectorStack, resolved)
	savedParent := e.currentNode
	e.currentNode = node

	e.env.Push()
	err = e.execBlock(s.Body)
	e.env.Pop()

	e.currentNode = savedParent
	e.selectorStack = e.selectorStack[:len(e.selectorStack)-1]
	return err
}

// nestSelector implements the "&" nesting algorithm (spec §4.4): each "&"
// in child is replaced by each complex of parent (Cartesian product);
// absent any "&", child nests as a descendant of parent (also Cartesian).
func nestSelector(child, parent selector.List, span logger.Range) (selector.List, error) {
	if len(parent.Complexes) == 0 {
		return child, nil
	}
	if !hasAmpersand(child) {
		var out selector.List
		for _, p := range parent.Complexes {
			for _, c := range child.Complexes {
				out.Complexes = append(out.Complexes, selector.Complex{
					Compounds:   append(append([]selector.Compound{}, p.Compounds...), c.Compounds...),
					Combinators: append(append(append([]selector.Combinator{}, p.Combinators...), selector.Descendant), c.Combinators...),
				})
			}
		}
		return out, nil
	}

	var out selector.List
	for _, c := range child.Complexes {
		for _, p := range parent.Complexes {
			substituted, ok := substituteAmpersand(c, p)
			if !ok {
				return selector.List{}, &Error{Kind: InvalidNesting, Message: "\"&\" may not be nested inside a compound selector with a type selector before it", Primary: span}
			}
			out.Complexes = append(out.Complexes, substituted)
		}
	}
	return out, nil
}

func hasAmpersand(l selector.List) bool {
	for _, c := range l.Complexes {
		for _, comp := range c.Compounds {
			if comp.HasAmpersand() {
				return true
			}
		}
	}
	return false
}

// substituteAmpersand replaces every Ampersand simple selector in child's
// compounds with parentComplex's own compounds, splicing them in place.
func substituteAmpersand(child, parentComplex selector.Complex) (selector.Complex, bool) {
	var outCompounds []selector.Compound
	var outCombinators []selector.Combinator
	for i, comp := range child.Compounds {
		if i > 0 {
			outCombinators = append(outCombinators, child.Combinators[i-1])
		}
		if !comp.HasAmpersand() {
			outCompounds = append(outCompounds, comp)
			continue
		}
		if len(comp.Simples) != 1 {
			return selector.Complex{}, false
		}
		if len(parentComplex.Compounds) == 0 {
			continue
		}
		outCompounds = append(outCompounds, parentComplex.Compounds...)
		for range parentComplex.Compounds[1:] {
			outCombinators = append(outCombinators, selector.Descendant)
		}
	}
	return selector.Complex{Compounds: outCompounds, Combinators: outCombinators}, true
}

func (e *Evaluator) execDeclaration(s *sassast.Declaration) error {
	name, err := e.evalInterpolation(s.Name)
	if err != nil {
		return err
	}
	isCustom := s.IsCustom || (len(name) > 1 && name[0] == '-' && name[1] == '-')

	var text string
	if s.Value != nil {
		if isCustom && s.CustomRaw != nil {
			text, err = e.evalInterpolation(s.CustomRaw)
		} else {
			var v value.Value
			v, err = e.evalExpr(s.Value)
			if err == nil {
				text = value.ToCSS(v)
			}
		}
		if err != nil {
			return err
		}
		if text != "" || isCustom {
			e.Tree.AddDeclaration(e.currentNode, cssast.DeclarationData{
				Property:  name,
				Value:     text,
				Important: s.Important,
				Custom:    isCustom,
			}, s.Range())
		}
	}

	if len(s.Body) > 0 {
		savedPrefix := name
		for _, child := range s.Body {
			if decl, ok := child.(*sassast.Declaration); ok {
				nested := *decl
				nested.Name = prependInterpolation(savedPrefix+"-", decl.Name)
				if err := e.execDeclaration(&nested); err != nil {
					return err
				}
				continue
			}
			if err := e.execStmt(child); err != nil {
				return err
			}
		}
	}
	return nil
}

func prependInterpolation(prefix string, in sassast.Interpolation) sassast.Interpolation {
	var b sassast.InterpBuilder
	b.AddText(prefix)
	for _, seg := range in {
		if seg.IsExpr {
			b.AddExpr(seg.Expr)
		} else {
			b.AddText(seg.Text)
		}
	}
	return b.Build()
}

func (e *Evaluator) execIf(s *sassast.IfStmt) error {
	for _, clause := range s.Clauses {
		v, err := e.evalExpr(clause.Cond)
		if err != nil {
			return err
		}
		if value.IsTruthy(v) {
			e.env.Push()
			err := e.execBlock(clause.Body)
			e.env.Pop()
			return err
		}
	}
	if s.Else != nil {
		e.env.Push()
		err := e.execBlock(s.Else)
		e.env.Pop()
		return err
	}
	return nil
}

func (e *Evaluator) execEach(s *sassast.EachStmt) error {
	iterable, err := e.evalExpr(s.In)
	if err != nil {
		return err
	}
	items := toIterable(iterable)
	for _, item := range items {
		e.env.Push()
		bindEachVars(e, s.Vars, item)
		err := e.execBlock(s.Body)
		e.env.Pop()
		if err != nil {
			return err
		}
		if e.returning {
			return nil
		}
	}
	return nil
}

// toIterable normalizes @each's source into a slice of per-iteration
// values (spec §4.4): lists iterate their items, maps iterate as
// [key, value] pairs, anything else is a single-item iteration.
func toIterable(v value.Value) []value.Value {
	switch vv := v.(type) {
	case *value.List:
		return vv.Items
	case *value.ArgumentList:
		return vv.Items
	case *value.Map:
		items := make([]value.Value, vv.Len())
		for i := range vv.Keys {
			items[i] = value.NewList([]value.Value{vv.Keys[i], vv.Values[i]}, value.SepSpace, false)
		}
		return items
	default:
		return []value.Value{v}
	}
}

func bindEachVars(e *Evaluator, vars []string, item value.Value) {
	if len(vars) == 1 {
		e.env.SetVariable(vars[0], item, false)
		return
	}
	parts := toIterable(item)
	for i, name := range vars {
		if i < len(parts) {
			e.env.SetVariable(name, parts[i], false)
		} else {
			e.env.SetVariable(name, value.Null, false)
		}
	}
}

func (e *Evaluator) execFor(s *sassast.ForStmt) error {
	fromV, err := e.evalExpr(s.From)
	if err != nil {
		return err
	}
	toV, err := e.evalExpr(s.To)
	if err != nil {
		return err
	}
	fromN, ok1 := fromV.(*value.Number)
	toN, ok2 := toV.(*value.Number)
	if !ok1 || !ok2 {
		return newError(TypeError, s.Range(), "@for bounds must be numbers")
	}
	from, to := int(fromN.Val), int(toN.Val)
	step := 1
	if from > to {
		step = -1
	}
	end := to
	if !s.Inclusive {
		end -= step
	}
	for i := from; (step > 0 && i <= end) || (step < 0 && i >= end); i += step {
		e.env.Push()
		e.env.SetVariable(s.Var, value.Unitless(float64(i)), false)
		err := e.execBlock(s.Body)
		e.env.Pop()
		if err != nil {
			return err
		}
		if e.returning {
			return nil
		}
	}
	return nil
}

func (e *Evaluator) execWhile(s *sassast.WhileStmt) error {
	for {
		v, err := e.evalExpr(s.Cond)
		if err != nil {
			return err
		}
		if !value.IsTruthy(v) {
			return nil
		}
		e.env.Push()
		err = e.execBlock(s.Body)
		e.env.Pop()
		if err != nil {
			return err
		}
		if e.returning {
			return nil
		}
	}
}

func (e *Evaluator) execExtend(s *sassast.ExtendStmt) error {
	text, err := e.evalInterpolation(s.Target)
	if err != nil {
		return err
	}
	targetList, perr := selector.Parse(text)
	if perr != nil || len(targetList.Complexes) != 1 || len(targetList.Complexes[0].Compounds) != 1 {
		return newError(InvalidSelector, s.Range(), "@extend target must be a single compound selector, got %q", text)
	}
	target := targetList.Complexes[0].Compounds[0]
	if len(target.Simples) != 1 {
		return newError(InvalidSelector, s.Range(), "@extend target must be a single simple selector, got %q", text)
	}

	current := e.currentSelector()
	for _, extender := range current.Complexes {
		e.extensions = append(e.extensions, selector.Extension{
			Target:   target.Simples[0],
			Extender: extender,
			Optional: s.Optional,
		})
	}
	return nil
}

func (e *Evaluator) execInclude(s *sassast.Include) error {
	return e.CallMixin(s.Namespace, s.Name, s.Args, s.Content, s.ContentArgs, s.Range())
}
