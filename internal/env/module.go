// Package env implements the lexical scope stack and the module graph
// that resolves @use/@forward/@import (spec §3.6, §4.3).
package env

import (
	"fmt"

	"github.com/go-sass/sass/internal/sassast"
	"github.com/go-sass/sass/internal/selector"
	"github.com/go-sass/sass/internal/value"
)

// CanonicalURL identifies a module uniquely within a compilation. The
// importer is responsible for producing these; env only compares them.
type CanonicalURL string

// VarSlot holds one variable binding. Default marks a binding made with
// "!default" that a later "!default" assignment, or a @use ... with (...)
// configuration, is allowed to override.
type VarSlot struct {
	Value   value.Value
	Default bool
}

// memberKind names the things a module can export: a variable, function, or mixin.
// Visibility trims which of these a dependent module sees.
type memberKind uint8

const (
	memberVariable memberKind = iota
	memberFunction
	memberMixin
)

// Module is the evaluated result of one stylesheet (spec §3.6): it owns a
// variable scope, a function scope, a mixin scope, and the extensions it
// registered via @extend. URL is the canonical URL used to key the module
// cache.
type Module struct {
	URL CanonicalURL

	Variables map[string]*VarSlot
	Functions map[string]*sassast.FuncDecl
	Mixins    map[string]*sassast.MixinDecl

	// private holds member names hidden by a leading "_" (or "-"), which
	// @forward can never re-export regardless of show/hide.
	private map[string]bool

	// Upstream modules reached via @use inside this module, keyed by the
	// namespace under which this module sees them ("" for @use ... as *
	// loaded into the global namespace).
	Uses map[string]*Module

	// BuiltinUses tracks "@use sass:xxx" bindings, keyed the same way as
	// Uses but naming a built-in module (e.g. "math") the eval package
	// dispatches to directly rather than through a *Module.
	BuiltinUses map[string]string

	// Forwarded tracks modules reached via @forward, together with the
	// prefix and visibility filter applied to their members, so that a
	// dependent "@use" of this module also sees the forwarded names.
	Forwarded []*ForwardedModule

	Extensions []selector.Extension
}

type ForwardedModule struct {
	Module     *Module
	Prefix     string
	Visibility sassast.VisibilitySpec
}

func NewModule(url CanonicalURL) *Module {
	return &Module{
		URL:         url,
		Variables:   map[string]*VarSlot{},
		Functions:   map[string]*sassast.FuncDecl{},
		Mixins:      map[string]*sassast.MixinDecl{},
		private:     map[string]bool{},
		BuiltinUses: map[string]string{},
	}
}

func isPrivateName(name string) bool {
	return len(name) > 0 && (name[0] == '_' || name[0] == '-')
}

func (m *Module) MarkPrivate(name string) { m.private[name] = true }

// visible reports whether name passes this module's own privacy rule and,
// when forwarded through vis, the forwarding module's show/hide filter.
func visible(name string, private map[string]bool, vis *sassast.VisibilitySpec) bool {
	if private[name] || (vis != nil && isPrivateName(name)) {
		return false
	}
	if vis == nil {
		return true
	}
	if vis.IsShow {
		for _, n := range vis.Show {
			if n == name {
				return true
			}
		}
		return false
	}
	for _, n := range vis.Hide {
		if n == name {
			return false
		}
	}
	return true
}

// LookupVariable resolves name (bare, no namespace prefix) against this
// module's own members, then against every @forward'd module in
// registration order, honoring privacy and show/hide and applying each
// forward's prefix. LookupFunction and LookupMixin do the same for their
// member kinds.
func (m *Module) LookupVariable(name string) (*VarSlot, bool) {
	if slot, ok := m.Variables[name]; ok && visible(name, m.private, nil) {
		return slot, true
	}
	for _, fwd := range m.Forwarded {
		unprefixed := stripPrefix(name, fwd.Prefix)
		if unprefixed == "" {
			continue
		}
		if slot, ok := fwd.Module.Variables[unprefixed]; ok && visible(unprefixed, fwd.Module.private, &fwd.Visibility) {
			return slot, true
		}
		if slot, ok := fwd.Module.LookupVariable(unprefixed); ok && visible(unprefixed, nil, &fwd.Visibility) {
			return slot, true
		}
	}
	return nil, false
}

func (m *Module) LookupFunction(name string) (*sassast.FuncDecl, bool) {
	if fn, ok := m.Functions[name]; ok && visible(name, m.private, nil) {
		return fn, true
	}
	for _, fwd := range m.Forwarded {
		unprefixed := stripPrefix(name, fwd.Prefix)
		if unprefixed == "" {
			continue
		}
		if fn, ok := fwd.Module.Functions[unprefixed]; ok && visible(unprefixed, fwd.Module.private, &fwd.Visibility) {
			return fn, true
		}
		if fn, ok := fwd.Module.LookupFunction(unprefixed); ok && visible(unprefixed, nil, &fwd.Visibility) {
			return fn, true
		}
	}
	return nil, false
}

func (m *Module) LookupMixin(name string) (*sassast.MixinDecl, bool) {
	if mx, ok := m.Mixins[name]; ok && visible(name, m.private, nil) {
		return mx, true
	}
	for _, fwd := range m.Forwarded {
		unprefixed := stripPrefix(name, fwd.Prefix)
		if unprefixed == "" {
			continue
		}
		if mx, ok := fwd.Module.Mixins[unprefixed]; ok && visible(unprefixed, fwd.Module.private, &fwd.Visibility) {
			return mx, true
		}
		if mx, ok := fwd.Module.LookupMixin(unprefixed); ok && visible(unprefixed, nil, &fwd.Visibility) {
			return mx, true
		}
	}
	return nil, false
}

// stripPrefix returns name with the forward's prefix removed, or "" if
// name doesn't start with it (a non-match, distinguished from a legitimate
// empty result since Sass identifiers are never empty).
func stripPrefix(name, prefix string) string {
	if prefix == "" {
		return name
	}
	if len(name) <= len(prefix) || name[:len(prefix)] != prefix {
		return ""
	}
	return name[len(prefix):]
}

// ConfigureDefault applies a "@use ... with ($name: value)" override. It
// fails unless the target variable exists and was declared with !default
// (spec §4.3 invariant).
func (m *Module) ConfigureDefault(name string, v value.Value) error {
	slot, ok := m.Variables[name]
	if !ok {
		return fmt.Errorf("module has no variable $%s to configure", name)
	}
	if !slot.Default {
		return fmt.Errorf("$%s was not declared with !default and cannot be configured", name)
	}
	slot.Value = v
	slot.Default = false
	return nil
}
