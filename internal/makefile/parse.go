package makefile

import (
	"iter"
	"strings"
)

// Makefile is the parsed form of one document.
type Makefile struct {
	Blocks BlockList
}

// Parse converts makefile text into a structural tree. It never fails:
// quirky-but-harmless input (unbalanced directives, stray endif lines,
// decorations that almost look like headers) is accepted as plain text or
// as an unterminated directive rather than rejected.
func Parse(text string) *Makefile {
	cur := &lineCursor{lines: splitLinesAfter(text)}
	blocks, _ := splitDirectives(cur, false)
	blocks = blocks.splitComments()
	blocks = groupComments(blocks)
	return &Makefile{Blocks: *blocks}
}

// String serializes the tree. For an unfiltered tree this is exactly the
// parsed input.
func (m *Makefile) String() string { return m.Blocks.String() }

// Filter removes, in place, every node for which keep is false. Sibling
// order is preserved, comment and directive wrappers whose bodies empty out
// are removed, and single-element child lists are flattened.
func (m *Makefile) Filter(keep Predicate) { m.Blocks.filter(keep) }

// Recurse returns a pre-order traversal of the tree, descending only into
// children that are sibling lists. maxDepth bounds the descent; a negative
// value means unbounded.
func (m *Makefile) Recurse(maxDepth int) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		recurseList(&m.Blocks, maxDepth, 0, yield)
	}
}

func recurseList(l *BlockList, maxDepth, depth int, yield func(Node) bool) bool {
	if depth == maxDepth {
		return true
	}
	for _, n := range *l {
		if !yield(n) {
			return false
		}
		if child, ok := blockListChild(n); ok {
			if !recurseList(child, maxDepth, depth+1, yield) {
				return false
			}
		}
	}
	return true
}

// Conditional keywords. A line whose left-trimmed text starts with one of
// the start keywords opens a scope; endif closes it. else stays ordinary
// text: removing a branch without evaluating the condition is not possible,
// so the whole conditional is the smallest removable unit.
var startDirectives = []string{"ifeq", "ifneq", "ifdef", "ifndef"}

const endDirective = "endif"

func isDirectiveStart(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	for _, d := range startDirectives {
		if strings.HasPrefix(trimmed, d) {
			return true
		}
	}
	return false
}

func isDirectiveEnd(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), endDirective)
}

// lineCursor walks lines once; nested directive scopes share it so that a
// recursive call consumes the lines of its scope.
type lineCursor struct {
	lines []string
	pos   int
}

func (c *lineCursor) next() (string, bool) {
	if c.pos >= len(c.lines) {
		return "", false
	}
	line := c.lines[c.pos]
	c.pos++
	return line, true
}

// splitLinesAfter splits text after each newline, keeping the terminator on
// the line. CRLF endings stay intact as part of the line text.
func splitLinesAfter(text string) []string {
	var lines []string
	for len(text) > 0 {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			lines = append(lines, text)
			break
		}
		lines = append(lines, text[:i+1])
		text = text[i+1:]
	}
	return lines
}

// splitDirectives is pass one: it separates directive blocks from plain
// text, recursing into each opened scope. When input runs out inside a
// scope the scope's end line stays empty — the directive is unbalanced but
// accepted.
func splitDirectives(cur *lineCursor, inScope bool) (*BlockList, string) {
	blocks := &BlockList{}
	var current []string
	flush := func() {
		if len(current) > 0 {
			*blocks = append(*blocks, Block(strings.Join(current, "")))
			current = nil
		}
	}

	for {
		line, ok := cur.next()
		if !ok {
			break
		}
		switch {
		case isDirectiveStart(line):
			flush()
			child, end := splitDirectives(cur, true)
			d := &DirectiveBlock{Start: line, End: end, Child: child}
			d.flattenSingle()
			*blocks = append(*blocks, d)
		case inScope && isDirectiveEnd(line):
			flush()
			return blocks, line
		default:
			current = append(current, line)
		}
	}

	flush()
	return blocks, ""
}
