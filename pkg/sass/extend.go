package sass

import (
	"github.com/go-sass/sass/internal/cssast"
	"github.com/go-sass/sass/internal/selector"
)

// applyExtensions runs the selector extension pass (spec §4.2, and the
// pipeline spec.md §2 names: "... evaluator ... → plain-CSS tree →
// selector extension pass → serializer ..."): every style rule's selector
// is rewoven against the extensions the evaluator collected while walking
// @extend statements, and any complex selector left containing an
// unextended placeholder is dropped before the selector ever reaches the
// printer.
//
// Detecting a required (non-"!optional") @extend whose target never
// matched anything is intentionally out of scope here: doing so correctly
// requires tracking, per extension, whether any rewoven selector actually
// used it, which selector.Extend doesn't currently surface — see
// DESIGN.md.
func applyExtensions(tree *cssast.Tree, extensions []selector.Extension) error {
	if len(extensions) == 0 {
		return nil
	}
	for i := range tree.Nodes {
		n := &tree.Nodes[i]
		if n.Kind != cssast.KindStyleRule {
			continue
		}
		woven, err := selector.Extend(n.StyleRule.Selector, extensions)
		if err != nil {
			return err
		}
		trimmed, _ := woven.WithoutPlaceholders()
		n.StyleRule.Selector = trimmed
	}
	return nil
}
