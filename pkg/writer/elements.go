package writer

import (
	"fmt"
	"strings"

	"github.com/yaklabco/orgtree/pkg/orgast"
)

// element renders the body of one element, always ending with a newline.
// PostBlank newlines and affiliated lines are added by Render.
func (w *Writer) element(n *orgast.Node) string {
	switch n.Kind {
	case orgast.NodeHeadline:
		return w.headline(n)
	case orgast.NodeInlinetask:
		return w.inlinetask(n)
	case orgast.NodeSection:
		return w.renderChildren(n)
	case orgast.NodeParagraph:
		return ensureNewline(w.normalizeIndent(w.renderChildren(n), firstLineInline(n)))
	case orgast.NodePlainList:
		return w.renderChildren(n)
	case orgast.NodeItem:
		return w.item(n)
	case orgast.NodeCenterBlock:
		return "#+BEGIN_CENTER\n" + w.renderChildren(n) + "#+END_CENTER\n"
	case orgast.NodeQuoteBlock:
		return "#+BEGIN_QUOTE\n" + w.renderChildren(n) + "#+END_QUOTE\n"
	case orgast.NodeSpecialBlock:
		head := "#+BEGIN_" + n.Block.Name
		if n.Block.Parameters != "" {
			head += " " + n.Block.Parameters
		}
		return head + "\n" + w.renderChildren(n) + "#+END_" + n.Block.Name + "\n"
	case orgast.NodeVerseBlock:
		body := w.normalizeIndent(w.renderChildren(n), false)
		return "#+BEGIN_VERSE\n" + ensureNewline(body) + "#+END_VERSE\n"
	case orgast.NodeDynamicBlock:
		head := "#+BEGIN: " + n.Block.Name
		if n.Block.Parameters != "" {
			head += " " + n.Block.Parameters
		}
		return head + "\n" + w.renderChildren(n) + "#+END:\n"
	case orgast.NodeDrawer:
		return ":" + n.Raw + ":\n" + w.renderChildren(n) + ":END:\n"
	case orgast.NodePropertyDrawer:
		return ":PROPERTIES:\n" + w.renderChildren(n) + ":END:\n"
	case orgast.NodeNodeProperty:
		if n.Property.Value == "" {
			return ":" + n.Property.Key + ":\n"
		}
		return ":" + n.Property.Key + ": " + n.Property.Value + "\n"
	case orgast.NodeFootnoteDefinition:
		return w.footnoteDefinition(n)
	case orgast.NodeSrcBlock:
		head := "#+BEGIN_SRC"
		for _, part := range []string{n.Block.Language, n.Block.Switches, n.Block.Parameters} {
			if part != "" {
				head += " " + part
			}
		}
		return head + "\n" + rawBody(n.Raw) + "#+END_SRC\n"
	case orgast.NodeExampleBlock:
		head := "#+BEGIN_EXAMPLE"
		if n.Block.Switches != "" {
			head += " " + n.Block.Switches
		}
		return head + "\n" + rawBody(n.Raw) + "#+END_EXAMPLE\n"
	case orgast.NodeExportBlock:
		head := "#+BEGIN_EXPORT"
		if n.Block.Backend != "" {
			head += " " + n.Block.Backend
		}
		return head + "\n" + rawBody(n.Raw) + "#+END_EXPORT\n"
	case orgast.NodeCommentBlock:
		return "#+BEGIN_COMMENT\n" + rawBody(n.Raw) + "#+END_COMMENT\n"
	case orgast.NodeKeyword:
		if n.Raw == "" {
			return "#+" + n.Keyword.Key + ":\n"
		}
		return "#+" + n.Keyword.Key + ": " + n.Raw + "\n"
	case orgast.NodeBabelCall:
		return "#+CALL: " + n.Raw + "\n"
	case orgast.NodeComment:
		return prefixLines(n.Raw, "# ", "#") + "\n"
	case orgast.NodeFixedWidth:
		return prefixLines(n.Raw, ": ", ":") + "\n"
	case orgast.NodeHorizontalRule:
		return "-----\n"
	case orgast.NodeDiarySexp:
		return ensureNewline(n.Raw)
	case orgast.NodeLatexEnvironment:
		return ensureNewline(n.Raw)
	case orgast.NodeClock:
		return w.clock(n)
	case orgast.NodePlanning:
		return w.planning(n)
	case orgast.NodeTable:
		return w.table(n)
	case orgast.NodeTableRow:
		return w.tableRow(n)
	default:
		return ensureNewline(n.Raw)
	}
}

// rawBody returns a block body terminated with a newline, or empty.
func rawBody(s string) string {
	if s == "" {
		return ""
	}
	return ensureNewline(s)
}

// prefixLines prefixes every line of s; blank lines get the bare marker.
func prefixLines(s, prefix, bare string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = bare
		} else {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

// firstLineInline reports whether the element is the first child of an
// item or footnote definition, whose first line follows the bullet or
// label inline.
func firstLineInline(n *orgast.Node) bool {
	p := n.Parent
	if p == nil || p.FirstChild != n {
		return false
	}
	return p.Kind == orgast.NodeItem || p.Kind == orgast.NodeFootnoteDefinition
}

// normalizeIndent removes the minimum common indentation from the lines of
// body. When skipFirst is set the initial line is left untouched and does
// not participate in the minimum.
func (w *Writer) normalizeIndent(body string, skipFirst bool) string {
	lines := strings.Split(body, "\n")
	minIndent := -1
	for i, line := range lines {
		if skipFirst && i == 0 {
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if minIndent < 0 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent <= 0 {
		return body
	}
	for i, line := range lines {
		if skipFirst && i == 0 {
			continue
		}
		if len(line) >= minIndent {
			lines[i] = line[minIndent:]
		}
	}
	return strings.Join(lines, "\n")
}

func (w *Writer) headline(n *orgast.Node) string {
	a := n.Headline
	var b strings.Builder
	b.WriteString(strings.Repeat("*", a.Level))
	b.WriteString(" ")
	if a.TodoKeyword != "" {
		b.WriteString(a.TodoKeyword)
		b.WriteString(" ")
	}
	if a.Priority != 0 {
		fmt.Fprintf(&b, "[#%c] ", a.Priority)
	}
	if a.Commented {
		b.WriteString(w.Config.CommentKeyword)
		b.WriteString(" ")
	}
	title := a.RawValue
	if a.Title != nil {
		title = w.renderSecondary(a.Title)
	}
	b.WriteString(title)

	if len(a.Tags) > 0 {
		tags := ":" + strings.Join(a.Tags, ":") + ":"
		b.WriteString(w.tagPadding(b.Len(), len(tags)))
		b.WriteString(tags)
	}
	b.WriteString("\n")
	b.WriteString(strings.Repeat("\n", a.PreBlank))
	b.WriteString(w.renderChildren(n))
	return b.String()
}

// tagPadding computes the spacing before a headline tag string per the
// tags-column setting. Always at least one space.
func (w *Writer) tagPadding(lineLen, tagsLen int) string {
	col := w.Config.TagsColumn
	pad := 1
	switch {
	case col < 0:
		pad = -col - lineLen - tagsLen
	case col > 0:
		pad = col - lineLen
	}
	if pad < 1 {
		pad = 1
	}
	return strings.Repeat(" ", pad)
}

func (w *Writer) inlinetask(n *orgast.Node) string {
	head := w.headlineLineOnly(n)
	if !n.HasChildren() && n.ContentsBegin < 0 {
		return head
	}
	stars := strings.Repeat("*", n.Headline.Level)
	return head + w.renderChildren(n) + stars + " END\n"
}

// headlineLineOnly renders just the heading line of a headline-shaped node.
func (w *Writer) headlineLineOnly(n *orgast.Node) string {
	full := w.headline(n)
	if i := strings.Index(full, "\n"); i >= 0 {
		return full[:i+1]
	}
	return full
}

func (w *Writer) item(n *orgast.Node) string {
	a := n.Item
	var b strings.Builder
	b.WriteString(a.Bullet)
	b.WriteString(" ")
	if a.Counter != "" {
		b.WriteString("[@" + a.Counter + "] ")
	}
	switch a.Checkbox {
	case orgast.CheckboxOff:
		b.WriteString("[ ] ")
	case orgast.CheckboxOn:
		b.WriteString("[X] ")
	case orgast.CheckboxTrans:
		b.WriteString("[-] ")
	}
	if a.RawTag != "" {
		tag := a.RawTag
		if a.Tag != nil {
			tag = w.renderSecondary(a.Tag)
		}
		b.WriteString(tag)
		b.WriteString(" :: ")
	}
	contents := w.renderChildren(n)
	if contents == "" {
		b.WriteString("\n")
		return b.String()
	}
	// Continuation lines are indented to the bullet width.
	b.WriteString(indentBody(contents, len(a.Bullet)+1))
	return b.String()
}

func (w *Writer) footnoteDefinition(n *orgast.Node) string {
	head := "[fn:" + n.Footnote.Label + "] "
	contents := w.renderChildren(n)
	if contents == "" {
		return ensureNewline(head)
	}
	return head + contents
}

// indentBody indents every line of body except the first, which follows
// the item bullet inline.
func indentBody(body string, indent int) string {
	lines := strings.Split(body, "\n")
	pad := strings.Repeat(" ", indent)
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = pad + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

func (w *Writer) clock(n *orgast.Node) string {
	a := n.Clock
	out := "CLOCK: "
	if a.Value != nil {
		out += w.timestamp(a.Value)
	}
	if a.Status == orgast.ClockClosed && a.Duration != "" {
		out += " => " + a.Duration
	}
	return out + "\n"
}

func (w *Writer) planning(n *orgast.Node) string {
	a := n.Planning
	var parts []string
	if a.Scheduled != nil {
		parts = append(parts, "SCHEDULED: "+w.timestamp(a.Scheduled))
	}
	if a.Deadline != nil {
		parts = append(parts, "DEADLINE: "+w.timestamp(a.Deadline))
	}
	if a.Closed != nil {
		parts = append(parts, "CLOSED: "+w.timestamp(a.Closed))
	}
	return strings.Join(parts, " ") + "\n"
}

func (w *Writer) table(n *orgast.Node) string {
	out := w.renderChildren(n)
	for _, fm := range n.Table.TblFm {
		out += "#+TBLFM: " + fm + "\n"
	}
	return out
}

func (w *Writer) tableRow(n *orgast.Node) string {
	if n.TableRow.Rule {
		return "|---|\n"
	}
	var cells []string
	for c := n.FirstChild; c != nil; c = c.Next {
		cells = append(cells, strings.TrimRight(w.renderChildren(c), " "))
	}
	if len(cells) == 0 {
		return "| |\n"
	}
	return "| " + strings.Join(cells, " | ") + " |\n"
}
