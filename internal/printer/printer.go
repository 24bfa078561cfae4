// Package printer serializes the plain-CSS output tree (spec §4.5) into
// text, in expanded or compressed style, optionally emitting a source-map
// v3 document alongside it. The structure (a stateful printer walking a
// tree and tracking generated-output position for source maps) mirrors
// evanw-esbuild/internal/css_printer; the grammar it emits is plain CSS,
// the terminal output of this compiler rather than an input language.
package printer

import (
	"strconv"
	"strings"

	"github.com/go-sass/sass/internal/cssast"
	"github.com/go-sass/sass/internal/logger"
	"github.com/go-sass/sass/internal/sourcemap"
)

type Style uint8

const (
	Expanded Style = iota
	Compressed
)

type Options struct {
	Style Style

	// Source is the primary input file spans are resolved against. Mapping
	// output that originates from a different @use/@forward/@import'd file
	// is out of scope for this printer: cssast.Node.Span carries only a byte
	// offset, not a source index, so only single-entry-file compilations get
	// accurate source-mapped output today.
	Source *logger.Source

	// EmitSourceMap turns on mapping collection; Result.SourceMapJSON is
	// empty when false.
	EmitSourceMap bool

	// EmbedSources copies Source.Contents into the source map's
	// sourcesContent entry (spec §6.2's --embed-sources).
	EmbedSources bool
}

type Result struct {
	CSS           string
	SourceMapJSON string
}

type printer struct {
	opts    Options
	sb      strings.Builder
	pos     sourcemap.LineColumnOffset
	builder *sourcemap.Builder
	srcIdx  int32
}

// Print renders tree starting from its root's children (the root itself
// carries no output).
func Print(tree *cssast.Tree, opts Options) Result {
	p := &printer{opts: opts}
	if opts.EmitSourceMap {
		p.builder = sourcemap.NewBuilder()
		if opts.Source != nil {
			p.srcIdx = p.builder.AddSource(opts.Source, opts.EmbedSources)
		}
	}
	root := tree.Node(tree.Root())
	p.printChildren(tree, root.Children, 0)
	result := Result{CSS: p.sb.String()}
	if opts.EmitSourceMap {
		result.SourceMapJSON = p.builder.JSON("")
	}
	return result
}

func (p *printer) write(s string) {
	p.sb.WriteString(s)
	p.pos.AdvanceString(s)
}

func (p *printer) writeIndent(level int) {
	if p.opts.Style == Compressed {
		return
	}
	p.write(strings.Repeat("  ", level))
}

func (p *printer) newline() {
	if p.opts.Style != Compressed {
		p.write("\n")
	}
}

func (p *printer) mark(span logger.Range) {
	if !p.opts.EmitSourceMap || p.opts.Source == nil {
		return
	}
	line, col, _ := p.opts.Source.LineAndColumn(span.Loc.Start)
	p.builder.AddMapping(sourcemap.Mapping{
		GeneratedLine:   p.pos.Lines,
		GeneratedColumn: p.pos.Columns,
		SourceIndex:     p.srcIdx,
		OriginalLine:    int32(line - 1),
		OriginalColumn:  int32(col),
	})
}

func (p *printer) printChildren(tree *cssast.Tree, children []cssast.NodeIndex, level int) {
	for _, idx := range children {
		n := tree.Node(idx)
		p.printNode(tree, idx, n, level)
		if p.opts.Style == Expanded && n.IsGroupEnd {
			p.write("\n")
		}
	}
}

func (p *printer) printNode(tree *cssast.Tree, idx cssast.NodeIndex, n *cssast.Node, level int) {
	switch n.Kind {
	case cssast.KindStyleRule:
		p.printStyleRule(tree, n, level)
	case cssast.KindAtRule:
		p.printAtRule(tree, n, level)
	case cssast.KindDeclaration:
		p.printDeclaration(n, level)
	case cssast.KindComment:
		if p.opts.Style != Compressed {
			p.writeIndent(level)
			p.mark(n.Span)
			p.write(n.Comment.Text)
			p.write("\n")
		}
	case cssast.KindImport:
		p.printImport(n, level)
	}
}

func (p *printer) printStyleRule(tree *cssast.Tree, n *cssast.Node, level int) {
	if len(n.Children) == 0 || len(n.StyleRule.Selector.Complexes) == 0 {
		return
	}
	p.writeIndent(level)
	p.mark(n.Span)
	p.write(n.StyleRule.Selector.String())
	p.openBrace()
	p.printChildren(tree, n.Children, level+1)
	p.closeBrace(level)
}

func (p *printer) printAtRule(tree *cssast.Tree, n *cssast.Node, level int) {
	data := n.AtRule
	if data.Name == "keyframes" && data.Keyframes != nil {
		p.writeIndent(level)
		p.mark(n.Span)
		p.write("@" + data.Name)
		if data.Params != "" {
			p.write(" " + data.Params)
		}
		p.openBrace()
		for _, block := range data.Keyframes {
			p.writeIndent(level + 1)
			p.write(strings.Join(block.Selectors, p.listSep()))
			p.openBrace()
			p.printChildren(tree, block.Children, level+2)
			p.closeBrace(level + 1)
		}
		p.closeBrace(level)
		return
	}

	if !data.HasBlock {
		p.writeIndent(level)
		p.mark(n.Span)
		p.write("@" + data.Name)
		if data.Params != "" {
			p.write(" " + data.Params)
		}
		p.write(";")
		p.newline()
		return
	}
	if len(n.Children) == 0 {
		return
	}
	p.writeIndent(level)
	p.mark(n.Span)
	p.write("@" + data.Name)
	if data.Params != "" {
		p.write(" " + data.Params)
	}
	p.openBrace()
	p.printChildren(tree, n.Children, level+1)
	p.closeBrace(level)
}

func (p *printer) printDeclaration(n *cssast.Node, level int) {
	d := n.Declaration
	p.writeIndent(level)
	p.mark(n.Span)
	p.write(d.Property)
	p.write(":")
	if p.opts.Style != Compressed {
		p.write(" ")
	}
	p.write(d.Value)
	if d.Important {
		p.write(" !important")
	}
	p.write(";")
	p.newline()
}

func (p *printer) printImport(n *cssast.Node, level int) {
	d := n.Import
	p.writeIndent(level)
	p.mark(n.Span)
	p.write("@import ")
	p.write(strconv.Quote(d.URL))
	if d.HasLayer {
		if d.Layer == "" {
			p.write(" layer")
		} else {
			p.write(" layer(" + d.Layer + ")")
		}
	}
	if d.Supports != "" {
		p.write(" supports(" + d.Supports + ")")
	}
	if d.Media != "" {
		p.write(" " + d.Media)
	}
	p.write(";")
	p.newline()
}

func (p *printer) openBrace() {
	if p.opts.Style == Compressed {
		p.write("{")
		return
	}
	p.write(" {\n")
}

func (p *printer) closeBrace(level int) {
	p.writeIndent(level)
	p.write("}")
	p.newline()
}

func (p *printer) listSep() string {
	if p.opts.Style == Compressed {
		return ","
	}
	return ", "
}
