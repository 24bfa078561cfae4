// Package cssast is the mutable plain-CSS output tree (spec §3.4): an
// arena of nodes addressed by index, with parent pointers instead of
// pointer-cyclic trees, so the evaluator can build structure incrementally
// (append a child, then keep appending to its parent) without Go's
// ownership rules getting in the way.
package cssast

import (
	"github.com/go-sass/sass/internal/logger"
	"github.com/go-sass/sass/internal/selector"
)

// NodeIndex addresses a node inside a Tree's arena. InvalidNodeIndex
// (0xffffffff) never refers to a real node; Root is always index 0.
type NodeIndex uint32

const InvalidNodeIndex NodeIndex = 0xffffffff

// Kind discriminates the variant stored in a Node's Data field, mirroring
// the tagged-interface pattern used for Sass-side AST nodes but kept as an
// explicit enum here because nodes are stored by value in a slice arena
// rather than boxed behind an interface.
type Kind uint8

const (
	KindRoot Kind = iota
	KindStyleRule
	KindAtRule // @media, @supports, @keyframes, @font-face, unknown at-rules, ...
	KindDeclaration
	KindComment
	KindImport
)

// Node is one element of the output tree. Children holds this node's
// direct children in emission order; Parent is InvalidNodeIndex only for
// the root. IsGroupEnd marks the last node emitted from a given Sass style
// rule body, which the printer uses to decide whether a blank line
// separates adjacent rules in expanded output.
type Node struct {
	Kind       Kind
	Parent     NodeIndex
	Children   []NodeIndex
	Span       logger.Range
	IsGroupEnd bool

	StyleRule   *StyleRuleData
	AtRule      *AtRuleData
	Declaration *DeclarationData
	Comment     *CommentData
	Import      *ImportData
}

type StyleRuleData struct {
	Selector selector.List
}

// AtRuleData covers every at-rule shape: @media/@supports carry Params as
// already-serialized text (the query/condition grammar is evaluated
// upstream of this tree); @font-face, @page and unrecognized at-rules also
// fit here since their "body" is just declarations or nothing.
type AtRuleData struct {
	Name     string // without the leading "@"
	Params   string
	HasBlock bool

	Keyframes []KeyframeBlock // non-nil only when Name == "keyframes"
}

// KeyframeBlock is one "<selectors> { ... }" entry inside @keyframes;
// its declarations are ordinary child Declaration nodes appended under a
// synthetic node, so a KeyframeBlock only needs to remember the selector text
// and which children belong to it.
type KeyframeBlock struct {
	Selectors []string // "0%", "from", "to", "12.5%", ...
	Children  []NodeIndex
}

type DeclarationData struct {
	Property  string
	Value     string
	Important bool
	Custom    bool // custom property ("--x"): Value is raw token text
}

type CommentData struct {
	Text string
}

type ImportData struct {
	URL      string
	Supports string
	Media    string
	Layer    string
	HasLayer bool
}

// Tree is the arena: Nodes[0] is always the root.
type Tree struct {
	Nodes []Node
}

func NewTree() *Tree {
	t := &Tree{}
	t.Nodes = append(t.Nodes, Node{Kind: KindRoot, Parent: InvalidNodeIndex})
	return t
}

func (t *Tree) Root() NodeIndex { return 0 }

func (t *Tree) Node(idx NodeIndex) *Node { return &t.Nodes[idx] }

func (t *Tree) alloc(n Node) NodeIndex {
	idx := NodeIndex(len(t.Nodes))
	t.Nodes = append(t.Nodes, n)
	return idx
}

// AppendChild allocates a new node as the last child of parent and returns
// its index.
func (t *Tree) AppendChild(parent NodeIndex, n Node) NodeIndex {
	n.Parent = parent
	idx := t.alloc(n)
	t.Nodes[parent].Children = append(t.Nodes[parent].Children, idx)
	return idx
}

// AddStyleRule appends an (initially empty) style rule node.
func (t *Tree) AddStyleRule(parent NodeIndex, sel selector.List, span logger.Range) NodeIndex {
	return t.AppendChild(parent, Node{
		Kind:      KindStyleRule,
		Span:      span,
		StyleRule: &StyleRuleData{Selector: sel},
	})
}

func (t *Tree) AddAtRule(parent NodeIndex, data AtRuleData, span logger.Range) NodeIndex {
	return t.AppendChild(parent, Node{
		Kind:   KindAtRule,
		Span:   span,
		AtRule: &data,
	})
}

func (t *Tree) AddDeclaration(parent NodeIndex, data DeclarationData, span logger.Range) NodeIndex {
	return t.AppendChild(parent, Node{
		Kind:        KindDeclaration,
		Span:        span,
		Declaration: &data,
	})
}

func (t *Tree) AddComment(parent NodeIndex, text string, span logger.Range) NodeIndex {
	return t.AppendChild(parent, Node{
		Kind:    KindComment,
		Span:    span,
		Comment: &CommentData{Text: text},
	})
}

func (t *Tree) AddImport(parent NodeIndex, data ImportData, span logger.Range) NodeIndex {
	return t.AppendChild(parent, Node{
		Kind:   KindImport,
		Span:   span,
		Import: &data,
	})
}

// RemoveEmptyDescendants deletes style rules and block at-rules that are
// left with no children, working bottom-up so that emptied parents are
// pruned in the same pass (spec §4.5: a style rule or at-rule with no
// output is not printed). Any remaining child, a comment included, keeps
// its parent; childless at-rules without a block are always kept. Root is
// never removed.
func (t *Tree) RemoveEmptyDescendants(idx NodeIndex) bool {
	n := &t.Nodes[idx]
	var kept []NodeIndex
	for _, c := range n.Children {
		if t.RemoveEmptyDescendants(c) {
			kept = append(kept, c)
		}
	}
	n.Children = kept

	switch n.Kind {
	case KindStyleRule:
		return len(n.Children) > 0
	case KindAtRule:
		if !n.AtRule.HasBlock {
			return true
		}
		return len(n.Children) > 0
	default: // root, declaration, comment, import: always kept
		return true
	}
}

// Walk visits idx and every descendant in pre-order.
func (t *Tree) Walk(idx NodeIndex, visit func(NodeIndex, *Node)) {
	visit(idx, &t.Nodes[idx])
	for _, c := range t.Nodes[idx].Children {
		t.Walk(c, visit)
	}
}
