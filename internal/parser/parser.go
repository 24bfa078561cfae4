package parser

import (
	"github.com/go-sass/sass/internal/env"
	"github.com/go-sass/sass/internal/sassast"
)

// Parse turns SCSS or indented-syntax source into a Stylesheet. Its
// signature matches eval.ParseFunc exactly so pkg/sass can wire it straight
// into eval.NewEvaluator without an adapter.
func Parse(contents string, syntax env.Syntax, url string) (*sassast.Stylesheet, error) {
	src := contents
	if syntax == env.SyntaxIndented {
		src = convertIndentedToSCSS(contents)
	}
	s := newScanner(url, src)
	body, err := s.parseTopLevelBlock()
	if err != nil {
		return nil, err
	}
	return &sassast.Stylesheet{Body: body}, nil
}
