package pretty

import (
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/orgtree/pkg/orgast"
)

// OutlineRenderer renders the headline skeleton of a document.
type OutlineRenderer struct {
	styles *Styles
}

// NewOutlineRenderer creates an outline renderer.
func NewOutlineRenderer(styles *Styles) *OutlineRenderer {
	return &OutlineRenderer{styles: styles}
}

// Render writes one line per headline under root to w.
func (r *OutlineRenderer) Render(w io.Writer, root *orgast.Node) error {
	var err error
	orgast.Map(root, func(n *orgast.Node) bool {
		if err != nil {
			return false
		}
		if n.Kind != orgast.NodeHeadline {
			return true
		}
		err = r.renderHeadline(w, n)
		return true
	})
	return err
}

func (r *OutlineRenderer) renderHeadline(w io.Writer, n *orgast.Node) error {
	s := r.styles
	a := n.Headline

	var b strings.Builder
	b.WriteString(s.Stars.Render(strings.Repeat("*", a.Level)))
	b.WriteString(" ")
	if a.TodoKeyword != "" {
		style := s.Todo
		if a.TodoType == orgast.TodoDone {
			style = s.Done
		}
		b.WriteString(style.Render(a.TodoKeyword))
		b.WriteString(" ")
	}
	if a.Priority != 0 {
		b.WriteString(s.Priority.Render(fmt.Sprintf("[#%c]", a.Priority)))
		b.WriteString(" ")
	}
	b.WriteString(s.Title.Render(a.RawValue))
	if len(a.Tags) > 0 {
		b.WriteString(" ")
		b.WriteString(s.Tags.Render(":" + strings.Join(a.Tags, ":") + ":"))
	}
	_, err := fmt.Fprintln(w, b.String())
	return err
}
