package env

import (
	"github.com/go-sass/sass/internal/sassast"
	"github.com/go-sass/sass/internal/value"
)

// scope is one lexical level: a mixin/function body, a control-flow
// block, or the module top level (scopes[0]).
type scope struct {
	variables map[string]*VarSlot
	functions map[string]*sassast.FuncDecl
	mixins    map[string]*sassast.MixinDecl
}

func newScope() *scope {
	return &scope{
		variables: map[string]*VarSlot{},
		functions: map[string]*sassast.FuncDecl{},
		mixins:    map[string]*sassast.MixinDecl{},
	}
}

// Environment is the evaluator's live scope stack plus a pointer to the
// module currently being evaluated (spec §3.6: "a stack of scopes plus a
// reference to the current module"). scopes[0] always mirrors the current
// module's own members; pushing a scope models entering a mixin, function,
// @each/@for/@while body, or a nested style rule.
type Environment struct {
	scopes  []*scope
	Current *Module
}

func NewEnvironment(module *Module) *Environment {
	root := newScope()
	root.variables = module.Variables
	root.functions = module.Functions
	root.mixins = module.Mixins
	return &Environment{scopes: []*scope{root}, Current: module}
}

// Push opens a new lexical scope, e.g. on entering a mixin/function call
// or a control-flow body.
func (e *Environment) Push() {
	e.scopes = append(e.scopes, newScope())
}

// Pop closes the innermost scope.
func (e *Environment) Pop() {
	e.scopes = e.scopes[:len(e.scopes)-1]
}

// GetVariable walks the scope stack outward (spec §3.6: "Variable lookup
// walks the stack outward").
func (e *Environment) GetVariable(name string) (value.Value, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if slot, ok := e.scopes[i].variables[name]; ok {
			return slot.Value, true
		}
	}
	if slot, ok := e.Current.LookupVariable(name); ok {
		return slot.Value, true
	}
	return nil, false
}

// SetVariable assigns $name := v. Per spec §3.6, an ordinary assignment
// modifies the innermost scope that already declares the variable,
// falling back to declaring it fresh in the innermost scope when no
// enclosing scope has it. "!global" instead targets the module's own
// top-level scope.
func (e *Environment) SetVariable(name string, v value.Value, global bool) {
	if global {
		if slot, ok := e.Current.Variables[name]; ok {
			slot.Value = v
			slot.Default = false
			return
		}
		e.Current.Variables[name] = &VarSlot{Value: v}
		return
	}
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if slot, ok := e.scopes[i].variables[name]; ok {
			slot.Value = v
			slot.Default = false
			return
		}
	}
	innermost := e.scopes[len(e.scopes)-1]
	innermost.variables[name] = &VarSlot{Value: v}
}

// DeclareDefault implements "$name: value !default": assigns only if the
// variable is currently unset in the reachable scope chain.
func (e *Environment) DeclareDefault(name string, v value.Value, global bool) {
	if _, ok := e.GetVariable(name); ok {
		return
	}
	if global {
		e.Current.Variables[name] = &VarSlot{Value: v, Default: true}
		return
	}
	innermost := e.scopes[len(e.scopes)-1]
	innermost.variables[name] = &VarSlot{Value: v, Default: true}
}

func (e *Environment) GetFunction(name string) (*sassast.FuncDecl, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if fn, ok := e.scopes[i].functions[name]; ok {
			return fn, true
		}
	}
	return e.Current.LookupFunction(name)
}

func (e *Environment) DeclareFunction(fn *sassast.FuncDecl) {
	e.scopes[len(e.scopes)-1].functions[fn.Name] = fn
}

func (e *Environment) GetMixin(name string) (*sassast.MixinDecl, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if mx, ok := e.scopes[i].mixins[name]; ok {
			return mx, true
		}
	}
	return e.Current.LookupMixin(name)
}

func (e *Environment) DeclareMixin(mx *sassast.MixinDecl) {
	e.scopes[len(e.scopes)-1].mixins[mx.Name] = mx
}

// Namespace resolves a "namespace.member" lookup against a @use'd module,
// returning nil when the namespace isn't in scope.
func (e *Environment) Namespace(ns string) *Module {
	if ns == "" {
		return e.Current
	}
	if m, ok := e.Current.Uses[ns]; ok {
		return m
	}
	return nil
}
