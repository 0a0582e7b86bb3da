// Package makefile parses Android-style makefiles into a structural tree of
// text blocks, conditional-directive blocks, and comment-header blocks.
//
// The parser has no understanding of the macro language itself. Its job is
// to expose just enough structure to excise whole sections (a comment header
// and everything it documents, a conditional and its body) while guaranteeing
// that serializing an untouched tree reproduces the input byte for byte.
// Every node stores verbatim source text, line terminators included, and
// serialization is pure concatenation.
//
// Parsing runs in three passes:
//
//  1. split the document on conditional directives (ifeq/ifneq/ifdef/ifndef
//     ... endif), recursively; `else` is not structural
//  2. split each text block on decorated comment headers
//  3. group siblings so a header owns everything up to the next header
package makefile

import (
	"strings"

	"buildtrim/internal/classify"
)

// Node is one element of the parsed tree. The set of implementations is
// closed: Block, *BlockList, *CommentBlock, and *DirectiveBlock.
type Node interface {
	// String returns the node's verbatim source text.
	String() string

	// filter applies keep to this node and its children, pruning children
	// in place, and reports whether the node itself survives.
	filter(keep Predicate) bool

	node()
}

// Predicate decides whether a node is kept by Filter.
type Predicate func(Node) bool

// Block is an opaque run of original text with no directives or comment
// headers at its top level.
type Block string

func (b Block) String() string { return string(b) }

func (b Block) filter(keep Predicate) bool { return keep(b) }

func (Block) node() {}

// BlockList is an ordered sequence of sibling nodes.
type BlockList []Node

func (l *BlockList) String() string {
	var sb strings.Builder
	for _, n := range *l {
		sb.WriteString(n.String())
	}
	return sb.String()
}

func (l *BlockList) filter(keep Predicate) bool {
	kept := (*l)[:0]
	for _, n := range *l {
		if n.filter(keep) {
			kept = append(kept, n)
		}
	}
	*l = kept
	return len(*l) > 0
}

func (*BlockList) node() {}

// CommentBlock is a decorated comment header together with everything it
// documents, up to the next header or the end of the enclosing scope.
// Comment holds the verbatim header text (needed for exact re-emission);
// Title holds the header's text with comment markers stripped.
type CommentBlock struct {
	Comment string
	Title   string
	Child   Node
}

func (c *CommentBlock) String() string { return c.Comment + c.Child.String() }

func (c *CommentBlock) filter(keep Predicate) bool {
	if !keep(c) {
		return false
	}
	ok := c.Child.filter(keep)
	c.flattenSingle()
	return ok
}

func (c *CommentBlock) flattenSingle() {
	if l, ok := c.Child.(*BlockList); ok && len(*l) == 1 {
		c.Child = (*l)[0]
	}
}

// IsTest reports whether the header's title names a test section.
func (c *CommentBlock) IsTest() bool { return classify.IsTest(c.Title) }

// IsBenchmark reports whether the header's title names a benchmark section.
func (c *CommentBlock) IsBenchmark() bool { return classify.IsBenchmark(c.Title) }

// IsDev reports whether the header's title names a test or benchmark section.
func (c *CommentBlock) IsDev() bool { return c.IsTest() || c.IsBenchmark() }

func (*CommentBlock) node() {}

// DirectiveBlock is a conditional construct. Start is the verbatim opening
// line (ifeq/ifneq/ifdef/ifndef ...); End is the verbatim closing endif
// line, or empty when the enclosing scope ended before one was found (an
// accepted, unbalanced directive). The condition itself is never inspected.
type DirectiveBlock struct {
	Start string
	End   string
	Child Node
}

func (d *DirectiveBlock) String() string { return d.Start + d.Child.String() + d.End }

// Unterminated reports whether the directive reached end of input without a
// matching endif.
func (d *DirectiveBlock) Unterminated() bool { return d.End == "" }

// filter keeps the conjunctive contract: the directive survives only if the
// predicate accepts it and its body still has surviving content.
func (d *DirectiveBlock) filter(keep Predicate) bool {
	if !keep(d) {
		return false
	}
	ok := d.Child.filter(keep)
	d.flattenSingle()
	return ok
}

func (d *DirectiveBlock) flattenSingle() {
	if l, ok := d.Child.(*BlockList); ok && len(*l) == 1 {
		d.Child = (*l)[0]
	}
}

func (*DirectiveBlock) node() {}

// IsTest reports whether n is a comment block whose title names a test
// section. Only comment headers carry classification.
func IsTest(n Node) bool {
	c, ok := n.(*CommentBlock)
	return ok && c.IsTest()
}

// IsBenchmark reports whether n is a comment block whose title names a
// benchmark section.
func IsBenchmark(n Node) bool {
	c, ok := n.(*CommentBlock)
	return ok && c.IsBenchmark()
}

// IsDev reports whether n is a comment block for a test or benchmark section.
func IsDev(n Node) bool { return IsTest(n) || IsBenchmark(n) }

// Classify returns the classification of a node's title, or KindNone for
// nodes without one.
func Classify(n Node) classify.Kind {
	if c, ok := n.(*CommentBlock); ok {
		return classify.Classify(c.Title)
	}
	return classify.KindNone
}

// blockListChild returns a node's child when that child is a sibling list.
func blockListChild(n Node) (*BlockList, bool) {
	switch b := n.(type) {
	case *CommentBlock:
		l, ok := b.Child.(*BlockList)
		return l, ok
	case *DirectiveBlock:
		l, ok := b.Child.(*BlockList)
		return l, ok
	default:
		return nil, false
	}
}
