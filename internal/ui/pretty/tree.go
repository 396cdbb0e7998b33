package pretty

import (
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/orgtree/pkg/orgast"
)

// TreeRenderer renders a parsed document as an indented kind tree.
type TreeRenderer struct {
	styles *Styles
	width  int
}

// NewTreeRenderer creates a renderer with the given styles and maximum
// line width.
func NewTreeRenderer(styles *Styles, width int) *TreeRenderer {
	if width <= 0 {
		width = 100
	}
	return &TreeRenderer{styles: styles, width: width}
}

// Render writes the tree rooted at n to w.
func (r *TreeRenderer) Render(w io.Writer, n *orgast.Node) error {
	return r.render(w, n, 0)
}

func (r *TreeRenderer) render(w io.Writer, n *orgast.Node, depth int) error {
	s := r.styles
	indent := strings.Repeat("  ", depth)

	line := indent + s.Branch.Render("- ") + s.Kind.Render(n.Kind.String())
	if n.Kind != orgast.NodeDocument {
		line += " " + s.Position.Render(fmt.Sprintf("[%d, %d)", n.Begin, n.End))
	}
	if ann := annotate(n); ann != "" {
		line += " " + s.Annotation.Render(ann)
	}
	if val := shortValue(n); val != "" {
		avail := r.width - len(indent) - 20
		line += " " + s.Value.Render(truncate(val, avail))
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}

	for _, sec := range n.SecondaryStrings() {
		for _, obj := range sec {
			if err := r.render(w, obj, depth+1); err != nil {
				return err
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.Next {
		if err := r.render(w, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// annotate summarizes the kind-specific attributes worth showing.
func annotate(n *orgast.Node) string {
	switch {
	case n.Headline != nil:
		parts := []string{fmt.Sprintf("level=%d", n.Headline.Level)}
		if n.Headline.TodoKeyword != "" {
			parts = append(parts, "todo="+n.Headline.TodoKeyword)
		}
		if len(n.Headline.Tags) > 0 {
			parts = append(parts, "tags="+strings.Join(n.Headline.Tags, ","))
		}
		return strings.Join(parts, " ")
	case n.List != nil:
		return "type=" + n.List.Type.String()
	case n.Block != nil && n.Block.Language != "":
		return "lang=" + n.Block.Language
	case n.Link != nil:
		return n.Link.LinkType + ":" + n.Link.Path
	case n.Keyword != nil:
		return "key=" + n.Keyword.Key
	case n.Timestamp != nil:
		return n.Timestamp.RawValue
	}
	return ""
}

// shortValue returns a one-line preview of a node's raw value.
func shortValue(n *orgast.Node) string {
	if n.Raw == "" {
		return ""
	}
	v := strings.ReplaceAll(n.Raw, "\n", "\\n")
	return fmt.Sprintf("%q", v)
}

func truncate(s string, max int) string {
	if max < 8 {
		max = 8
	}
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
