package eval

import (
	"strings"

	"github.com/go-sass/sass/internal/env"
	"github.com/go-sass/sass/internal/logger"
	"github.com/go-sass/sass/internal/sassast"
)

// loadModule resolves, parses, and evaluates the module at requested
// relative to containingURL, returning its cached Module on a repeat
// request (spec §4.3's "a module is evaluated at most once per distinct
// canonical URL per compilation").
func (e *Evaluator) loadModule(requested, containingURL string, span logger.Range) (*env.Module, error) {
	canon, ok := e.Graph.Canonicalize(requested, containingURL)
	if !ok {
		return nil, newError(ImportNotFound, span, "could not resolve url %q", requested)
	}
	url := env.CanonicalURL(canon)

	cached, err := e.Graph.BeginLoad(url)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return cached, nil
	}

	loaded, err := e.Graph.Importer.Load(canon)
	if err != nil {
		return nil, err
	}

	sheet, err := e.parse(loaded.Contents, loaded.Syntax, canon)
	if err != nil {
		return nil, err
	}

	mod := env.NewModule(url)
	child := &Evaluator{
		Graph:  e.Graph,
		Log:    e.Log,
		Source: e.Source,
		Tree:   e.Tree,
		env:    env.NewEnvironment(mod),
		parse:  e.parse,
	}
	if err := child.execBlock(sheet.Body); err != nil {
		return nil, err
	}
	mod.Extensions = child.extensions

	e.Graph.CacheModule(url, mod)
	return mod, nil
}

// applyConfiguration runs a @use/@forward "with (...)" clause against a
// freshly loaded module, before any of its members are visible to anyone
// else (spec §4.3).
func (e *Evaluator) applyConfiguration(mod *env.Module, with []sassast.Configuration) error {
	for _, cfg := range with {
		v, err := e.evalExpr(cfg.Value)
		if err != nil {
			return err
		}
		if err := mod.ConfigureDefault(cfg.Name, v); err != nil {
			return newError(InvalidArgument, cfg.Value.Range(), "%s", err.Error())
		}
	}
	return nil
}

// execUse implements "@use url [as namespace|*] [with (...)]" (spec §4.3):
// the loaded module's members become reachable only through its namespace
// (or, for "as *", unnamespaced but still distinct from the current
// module's own members).
func (e *Evaluator) execUse(s *sassast.UseStmt) error {
	url, err := e.evalInterpolation(s.URL)
	if err != nil {
		return err
	}

	if modName, ok := builtinModuleName(url); ok {
		if len(s.With) > 0 {
			return newError(InvalidArgument, s.Range(), "built-in module %s cannot be configured with \"with\"", url)
		}
		ns := s.Namespace
		if ns == "" {
			ns = modName
		}
		if e.env.Current.BuiltinUses == nil {
			e.env.Current.BuiltinUses = map[string]string{}
		}
		e.env.Current.BuiltinUses[ns] = modName
		return nil
	}

	mod, err := e.loadModule(url, string(e.env.Current.URL), s.Range())
	if err != nil {
		return err
	}
	if err := e.applyConfiguration(mod, s.With); err != nil {
		return err
	}

	ns := s.Namespace
	if ns == "" {
		ns = defaultNamespace(url)
	}
	if e.env.Current.Uses == nil {
		e.env.Current.Uses = map[string]*env.Module{}
	}
	e.env.Current.Uses[ns] = mod
	return nil
}

// execForward implements "@forward url [as prefix-*] [show|hide ...]
// [with (...)]" (spec §4.3): the loaded module's members become visible,
// filtered and prefixed, to anyone who later @use's the current module.
func (e *Evaluator) execForward(s *sassast.ForwardStmt) error {
	url, err := e.evalInterpolation(s.URL)
	if err != nil {
		return err
	}
	mod, err := e.loadModule(url, string(e.env.Current.URL), s.Range())
	if err != nil {
		return err
	}
	if err := e.applyConfiguration(mod, s.With); err != nil {
		return err
	}
	e.env.Current.Forwarded = append(e.env.Current.Forwarded, &env.ForwardedModule{
		Module:     mod,
		Prefix:     s.Prefix,
		Visibility: s.Visibility,
	})
	return nil
}

// execImport implements the legacy "@import url, url, ...": each target is
// textually merged into the current module's own scope, so its members
// become visible without namespacing and its style rules are emitted
// in-place (spec §4.3, "Supplemented features").
func (e *Evaluator) execImport(s *sassast.ImportStmt) error {
	for _, target := range s.Targets {
		url, err := e.evalInterpolation(target.URL)
		if err != nil {
			return err
		}
		canon, ok := e.Graph.Canonicalize(url, string(e.env.Current.URL))
		if !ok {
			return newError(ImportNotFound, s.Range(), "could not resolve url %q", url)
		}
		loaded, err := e.Graph.Importer.Load(canon)
		if err != nil {
			return err
		}
		sheet, err := e.parse(loaded.Contents, loaded.Syntax, canon)
		if err != nil {
			return err
		}
		if err := e.execBlock(sheet.Body); err != nil {
			return err
		}
	}
	return nil
}

// defaultNamespace derives a @use namespace from its URL per spec §4.3:
// the final path segment, minus extension and any leading underscore.
func defaultNamespace(url string) string {
	base := url
	if idx := strings.LastIndexAny(base, "/\\"); idx >= 0 {
		base = base[idx+1:]
	}
	base = strings.TrimPrefix(base, "_")
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	return base
}
