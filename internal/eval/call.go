package eval

import (
	"github.com/go-sass/sass/internal/env"
	"github.com/go-sass/sass/internal/logger"
	"github.com/go-sass/sass/internal/sassast"
	"github.com/go-sass/sass/internal/value"
)

// boundArgs is the result of matching an ArgInvocation against a
// Signature (spec §4.4's "Function/mixin invocation").
type boundArgs struct {
	values map[string]value.Value
	rest   *value.ArgumentList // non-nil only if sig has a rest parameter
}

// bind resolves positional and named arguments against sig, applying
// defaults and collecting the rest parameter (spec §4.4).
func (e *Evaluator) bind(sig sassast.Signature, args sassast.ArgInvocation, span logger.Range, funcName string) (boundArgs, error) {
	positional := make([]value.Value, 0, len(args.Positional))
	for _, p := range args.Positional {
		v, err := e.evalExpr(p)
		if err != nil {
			return boundArgs{}, err
		}
		positional = append(positional, v)
	}

	named := map[string]value.Value{}
	for _, n := range args.Named {
		v, err := e.evalExpr(n.Value)
		if err != nil {
			return boundArgs{}, err
		}
		named[n.Name] = v
	}

	if args.Rest != nil {
		restVal, err := e.evalExpr(args.Rest)
		if err != nil {
			return boundArgs{}, err
		}
		switch rv := restVal.(type) {
		case *value.ArgumentList:
			positional = append(positional, rv.Items...)
			if rv.Keywords != nil {
				for i, k := range rv.Keywords.Keys {
					if s, ok := k.(*value.SassString); ok {
						named[s.Text] = rv.Keywords.Values[i]
					}
				}
			}
		case *value.List:
			positional = append(positional, rv.Items...)
		case *value.Map:
			for i, k := range rv.Keys {
				if s, ok := k.(*value.SassString); ok {
					named[s.Text] = rv.Values[i]
				}
			}
		default:
			positional = append(positional, restVal)
		}
	}

	return e.bindValues(sig, positional, named, span, funcName)
}

// bindValues matches already-evaluated positional/named arguments against
// sig. It is the shared core bind delegates to once an ArgInvocation's
// expressions have been evaluated; meta.call reaches it directly, since its
// arguments are already values by the time they get here.
func (e *Evaluator) bindValues(sig sassast.Signature, positional []value.Value, named map[string]value.Value, span logger.Range, funcName string) (boundArgs, error) {
	bound := boundArgs{values: map[string]value.Value{}}

	paramIdx := 0
	usedNamed := map[string]bool{}
	for ; paramIdx < len(sig.Params) && paramIdx < len(positional); paramIdx++ {
		name := sig.Params[paramIdx].Name
		if _, dup := named[name]; dup {
			return bound, newError(DuplicateArgument, span, "argument $%s was passed both by position and by name in call to %s", name, funcName)
		}
		bound.values[name] = positional[paramIdx]
	}

	for ; paramIdx < len(sig.Params); paramIdx++ {
		p := sig.Params[paramIdx]
		if v, ok := named[p.Name]; ok {
			bound.values[p.Name] = v
			usedNamed[p.Name] = true
			continue
		}
		if p.Default != nil {
			v, err := e.evalExpr(p.Default)
			if err != nil {
				return bound, err
			}
			bound.values[p.Name] = v
			continue
		}
		return bound, newError(MissingArgument, span, "missing required argument $%s in call to %s", p.Name, funcName)
	}

	if sig.RestArg != "" {
		var restItems []value.Value
		if paramIdx < len(positional) {
			restItems = append(restItems, positional[paramIdx:]...)
		}
		kwMap := value.NewMap()
		for name, v := range named {
			found := false
			for _, p := range sig.Params {
				if p.Name == name {
					found = true
					break
				}
			}
			if !found {
				kwMap.Set(value.Quoted(name), v)
			}
		}
		bound.rest = value.NewArgumentList(restItems, value.SepComma, kwMap)
		bound.values[sig.RestArg] = bound.rest
	} else if paramIdx < len(positional) {
		return bound, newError(InvalidArgument, span, "%s was passed too many positional arguments", funcName)
	} else {
		for name := range named {
			if !usedNamed[name] {
				found := false
				for _, p := range sig.Params {
					if p.Name == name {
						found = true
						break
					}
				}
				if !found {
					return bound, newError(InvalidArgument, span, "%s has no argument named $%s", funcName, name)
				}
			}
		}
	}

	return bound, nil
}

// CallFunction is the "call_function(name, arg_invocation, environment) →
// Value" boundary operation (spec §4.4). It dispatches to the builtin
// library first (the global namespace, or a built-in module bound by
// "@use sass:xxx"), then user-defined functions.
func (e *Evaluator) CallFunction(namespace, name string, args sassast.ArgInvocation, span logger.Range) (value.Value, error) {
	if namespace == "" {
		if builtin, ok := builtinFunctions[name]; ok {
			return e.callBuiltin(builtin, args, span, name)
		}
		if name == "get-function" || name == "call" {
			return e.callBuiltin(builtinModules["meta"][name], args, span, name)
		}
	} else if modName, ok := e.env.Current.BuiltinUses[namespace]; ok {
		if builtin, ok := builtinModules[modName][name]; ok {
			return e.callBuiltin(builtin, args, span, modName+"."+name)
		}
		return nil, newError(UndefinedFunction, span, "undefined function %s.%s", modName, name)
	}

	var mod *env.Module
	if namespace != "" {
		mod = e.env.Namespace(namespace)
		if mod == nil {
			return nil, newError(UndefinedFunction, span, "undefined namespace %q", namespace)
		}
	}

	var fn *sassast.FuncDecl
	var ok bool
	if mod != nil {
		fn, ok = mod.LookupFunction(name)
	} else {
		fn, ok = e.env.GetFunction(name)
	}
	if !ok {
		return nil, newError(UndefinedFunction, span, "undefined function %s", name)
	}

	bound, err := e.bind(fn.Sig, args, span, name)
	if err != nil {
		return nil, err
	}
	return e.invokeUserFunction(fn, bound, span, name)
}

// invokeUserFunction runs fn's body against already-bound arguments,
// pushing a call-stack frame for @warn/@debug/error reporting (spec §7).
func (e *Evaluator) invokeUserFunction(fn *sassast.FuncDecl, bound boundArgs, span logger.Range, name string) (value.Value, error) {
	e.pushFrame(name, span)
	defer e.popFrame()

	e.env.Push()
	for pname, v := range bound.values {
		e.env.SetVariable(pname, v, false)
	}
	result, err := e.execFunctionBody(fn.Body)
	e.env.Pop()
	if err != nil {
		return nil, e.wrapError(err)
	}
	if result == nil {
		return nil, e.wrapError(newError(MissingReturn, span, "function %s finished without @return", name))
	}
	return result, nil
}

// funcRefTarget is what a *value.FunctionRef's Callable holds: either a
// user-defined function or the name of a builtin (global, or scoped to one
// of the sass: modules), produced by meta.get-function and resolved again
// by meta.call (spec §4.4's meta module).
type funcRefTarget struct {
	decl   *sassast.FuncDecl
	module string // "" for the global builtin namespace
	name   string
}

// callUserFunctionValues binds already-evaluated arguments against fn and
// runs it, the FunctionRef-reference analog of CallFunction's user-defined
// branch.
func (e *Evaluator) callUserFunctionValues(fn *sassast.FuncDecl, positional []value.Value, named map[string]value.Value, span logger.Range, name string) (value.Value, error) {
	bound, err := e.bindValues(fn.Sig, positional, named, span, name)
	if err != nil {
		return nil, err
	}
	return e.invokeUserFunction(fn, bound, span, name)
}

// invokeFunctionRef is meta.call's dispatch: it resolves a FunctionRef back
// to either a builtin table entry or a user-defined declaration and invokes
// it against already-evaluated arguments.
func (e *Evaluator) invokeFunctionRef(ref *value.FunctionRef, positional []value.Value, named map[string]value.Value, span logger.Range) (value.Value, error) {
	target, ok := ref.Callable.(funcRefTarget)
	if !ok {
		return nil, newError(TypeError, span, "call: %s is not callable", ref.Name)
	}
	if target.decl != nil {
		return e.callUserFunctionValues(target.decl, positional, named, span, ref.Name)
	}
	var b builtinFunc
	if target.module != "" {
		b, ok = builtinModules[target.module][target.name]
	} else {
		b, ok = builtinFunctions[target.name]
	}
	if !ok {
		return nil, newError(UndefinedFunction, span, "undefined function %s", ref.Name)
	}
	bound, err := bindBuiltinValues(b, positional, named, span, ref.Name)
	if err != nil {
		return nil, err
	}
	return b.fn(e, bound, span)
}

// execFunctionBody runs stmts looking only for the @return that ends the
// function; nested control flow is handled by execStmt itself via
// e.returning.
func (e *Evaluator) execFunctionBody(stmts Block) (value.Value, error) {
	e.returning = false
	e.returnVal = nil
	for _, stmt := range stmts {
		if err := e.execStmt(stmt); err != nil {
			return nil, err
		}
		if e.returning {
			v := e.returnVal
			e.returning = false
			e.returnVal = nil
			return v, nil
		}
	}
	return nil, nil
}

// CallMixin invokes a mixin by name, binding its content block (if any)
// for @content to pick up (spec §4.4).
func (e *Evaluator) CallMixin(namespace, name string, args sassast.ArgInvocation, content Block, contentArgs sassast.Signature, span logger.Range) error {
	var mod *env.Module
	if namespace != "" {
		mod = e.env.Namespace(namespace)
		if mod == nil {
			return newError(UndefinedMixin, span, "undefined namespace %q", namespace)
		}
	}

	var mx *sassast.MixinDecl
	var ok bool
	if mod != nil {
		mx, ok = mod.LookupMixin(name)
	} else {
		mx, ok = e.env.GetMixin(name)
	}
	if !ok {
		return newError(UndefinedMixin, span, "undefined mixin %s", name)
	}

	bound, err := e.bind(mx.Sig, args, span, name)
	if err != nil {
		return err
	}

	var binding *contentBinding
	if content != nil {
		binding = &contentBinding{body: content, env: e.env, args: contentArgs}
	}

	e.pushFrame(name, span)
	e.callStack[len(e.callStack)-1].content = binding
	defer e.popFrame()

	e.env.Push()
	for pname, v := range bound.values {
		e.env.SetVariable(pname, v, false)
	}
	err = e.execBlock(mx.Body)
	e.env.Pop()
	if err != nil {
		return e.wrapError(err)
	}
	return nil
}

// execContent runs a @content statement's block against the environment
// captured at the nearest enclosing @include call site (spec §4.4).
func (e *Evaluator) execContent(stmt *sassast.ContentStmt) error {
	var binding *contentBinding
	for i := len(e.callStack) - 1; i >= 0; i-- {
		if e.callStack[i].content != nil {
			binding = e.callStack[i].content
			break
		}
	}
	if binding == nil {
		return newError(ContentOutsideMixin, stmt.Range(), "@content is only valid inside a mixin that accepts a content block")
	}

	bound, err := e.bind(binding.args, stmt.Args, stmt.Range(), "@content")
	if err != nil {
		return err
	}

	savedEnv := e.env
	e.env = binding.env
	e.env.Push()
	for pname, v := range bound.values {
		e.env.SetVariable(pname, v, false)
	}
	err = e.execBlock(binding.body)
	e.env.Pop()
	e.env = savedEnv
	return err
}
