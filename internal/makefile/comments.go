package makefile

import (
	"regexp"
	"strings"
)

// Comment headers come in three separator styles and three arrangements.
// Separators: `# ` + 5 or more `=`, `# ` + 5 or more `-`, or 6 or more `#`
// (shorter runs falsely match ordinary comments). Arrangements: the title
// lines can be sandwiched between two separator lines, prefixed by one, or
// suffixed by one. Sandwich must be tried before prefix and suffix so a
// full box is never half-matched.
const (
	headerSP = `[ \t]`
	headerNL = `(?:\r\n|\r|\n)`
	// any text allowed on a title line; tabs allowed, other control
	// characters not ("#" alone gives an empty title)
	headerText = `[^\x00-\x08\x0A-\x1F]*`
)

var headerSeps = []string{`#\s+={5,}`, `#\s+-{5,}`, `#{6,}`}

var headerPattern = regexp.MustCompile(buildHeaderPattern())

// titleMarker strips the leading comment marker from each title line.
var titleMarker = regexp.MustCompile(`[ \t]*#[ \t]*`)

func titlePattern() string {
	line := headerSP + `*#` + headerSP + `*` + headerText
	return `(?:(?:` + line + headerNL + `)*` + line + `)`
}

// headerAlternatives builds the sandwich/prefix/suffix alternation for one
// separator style. Each arrangement captures its title lines in its own
// group; exactly one group participates per match.
func headerAlternatives(sep string) string {
	title := titlePattern()
	sandwich := headerSP + `*` + sep + headerNL + `(` + title + `)` + headerNL + headerSP + `*` + sep
	prefix := headerSP + `*` + sep + headerNL + `(` + title + `)`
	suffix := `(` + title + `)` + headerNL + headerSP + `*` + sep
	return `(?:` + sandwich + `)|(?:` + prefix + `)|(?:` + suffix + `)`
}

func buildHeaderPattern() string {
	groups := make([]string, len(headerSeps))
	for i, sep := range headerSeps {
		groups[i] = `(?:` + headerAlternatives(sep) + `)`
	}
	// group 1 is the verbatim header; the optional trailing newline is
	// part of the match (and so of the stored comment) but not of group 1
	return `(?m)^(` + strings.Join(groups, `|`) + `)` + headerNL + `?`
}

// splitComments is pass two: it breaks one run of plain text on comment
// headers. Text before the first header stays a plain Block; each header
// takes the text up to the next header (or end of text) as its child.
// All byte offsets come straight from the match, so concatenating the
// resulting nodes reproduces contents exactly.
func splitComments(contents string) *BlockList {
	blocks := &BlockList{}
	if contents == "" {
		return blocks
	}

	matches := headerPattern.FindAllStringSubmatchIndex(contents, -1)
	if len(matches) == 0 {
		*blocks = append(*blocks, Block(contents))
		return blocks
	}

	if start := matches[0][0]; start > 0 {
		*blocks = append(*blocks, Block(contents[:start]))
	}
	for i, m := range matches {
		end := len(contents)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		*blocks = append(*blocks, newCommentBlock(contents, m, end))
	}
	return blocks
}

func newCommentBlock(contents string, m []int, end int) *CommentBlock {
	comment := contents[m[0]:m[1]]
	var titles []string
	for g := 2; 2*g < len(m); g++ {
		lo, hi := m[2*g], m[2*g+1]
		if lo >= 0 {
			titles = append(titles, titleMarker.ReplaceAllString(contents[lo:hi], ""))
		}
	}
	return &CommentBlock{
		Comment: comment,
		Title:   strings.Join(titles, "\n"),
		Child:   Block(contents[m[1]:end]),
	}
}

// splitComments applies pass two below every directive already produced by
// pass one, splicing each Block's split into a flat sibling list.
func (l *BlockList) splitComments() *BlockList {
	out := &BlockList{}
	for _, n := range *l {
		switch b := n.(type) {
		case Block:
			*out = append(*out, *splitComments(string(b))...)
		case *DirectiveBlock:
			b.splitComments()
			*out = append(*out, b)
		default:
			*out = append(*out, n)
		}
	}
	return out
}

func (d *DirectiveBlock) splitComments() {
	switch c := d.Child.(type) {
	case Block:
		d.Child = splitComments(string(c))
	case *BlockList:
		d.Child = c.splitComments()
	}
	d.flattenSingle()
}

// groupComments is pass three: a left-to-right fold in which each comment
// header becomes the accumulator and absorbs every following sibling until
// the next header. A directive appearing after a header therefore ends up
// inside that header's subtree, matching the intuition that the comment
// documents everything up to the next comment.
func groupComments(blocks *BlockList) *BlockList {
	result := &BlockList{}
	var current *CommentBlock
	finish := func() {
		if current != nil {
			current.flattenSingle()
			*result = append(*result, current)
			current = nil
		}
	}

	for _, n := range *blocks {
		if d, ok := n.(*DirectiveBlock); ok {
			d.groupComments()
		}
		if c, ok := n.(*CommentBlock); ok {
			finish()
			current = startGroup(c)
			continue
		}
		if current != nil {
			list := current.Child.(*BlockList)
			*list = append(*list, n)
		} else {
			*result = append(*result, n)
		}
	}

	finish()
	return result
}

// startGroup turns a freshly split comment block into a grouping
// accumulator, dropping an empty body so headers back to back do not
// accumulate empty blocks.
func startGroup(c *CommentBlock) *CommentBlock {
	child := &BlockList{}
	if b, ok := c.Child.(Block); !ok || b != "" {
		*child = append(*child, c.Child)
	}
	return &CommentBlock{Comment: c.Comment, Title: c.Title, Child: child}
}

func (d *DirectiveBlock) groupComments() {
	if l, ok := d.Child.(*BlockList); ok {
		d.Child = groupComments(l)
	}
	d.flattenSingle()
}
