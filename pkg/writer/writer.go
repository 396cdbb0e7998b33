// Package writer converts a syntax tree back to markup text. The contract
// is bit-stable structure: parsing the interpreted text yields a tree
// structurally equal to the one interpreted, and interpreting again yields
// the same text.
package writer

import (
	"strings"

	"github.com/yaklabco/orgtree/pkg/orgast"
	"github.com/yaklabco/orgtree/pkg/syntax"
)

// Writer interprets nodes under a grammar configuration.
type Writer struct {
	Config *syntax.Config
}

// New creates a writer. A nil cfg uses the defaults.
func New(cfg *syntax.Config) *Writer {
	if cfg == nil {
		cfg = syntax.Default()
	}
	return &Writer{Config: cfg}
}

// Interpret renders a tree (or subtree) to markup text.
func Interpret(n *orgast.Node, cfg *syntax.Config) string {
	return New(cfg).Render(n)
}

// Render renders any node.
func (w *Writer) Render(n *orgast.Node) string {
	if n == nil {
		return ""
	}
	switch {
	case n.Kind == orgast.NodeDocument:
		return w.renderChildren(n)
	case n.Kind.IsElement():
		return w.affiliatedLines(n) + w.element(n) + strings.Repeat("\n", n.PostBlank)
	default:
		return w.object(n) + strings.Repeat(" ", n.PostBlank)
	}
}

func (w *Writer) renderChildren(n *orgast.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.Next {
		b.WriteString(w.Render(c))
	}
	return b.String()
}

// renderSecondary renders a secondary string.
func (w *Writer) renderSecondary(objs []*orgast.Node) string {
	var b strings.Builder
	for _, o := range objs {
		b.WriteString(w.Render(o))
	}
	return b.String()
}

// affiliatedLines re-emits the affiliated metadata of an element, key by key
// in sorted key order; the values of one key come out in their original
// order (storage is most-recent-first).
func (w *Writer) affiliatedLines(n *orgast.Node) string {
	if n.Affiliated.IsEmpty() {
		return ""
	}
	var b strings.Builder
	for _, key := range sortedKeys(n.Affiliated.Entries) {
		vs := n.Affiliated.Entries[key]
		upper := strings.ToUpper(key)
		for i := len(vs) - 1; i >= 0; i-- {
			v := vs[i]
			b.WriteString("#+")
			b.WriteString(upper)
			if v.Secondary != "" || v.ParsedSecondary != nil {
				b.WriteString("[")
				if v.ParsedSecondary != nil {
					b.WriteString(w.renderSecondary(v.ParsedSecondary))
				} else {
					b.WriteString(v.Secondary)
				}
				b.WriteString("]")
			}
			b.WriteString(":")
			value := v.Value
			if v.Parsed != nil {
				value = w.renderSecondary(v.Parsed)
			}
			if value != "" {
				b.WriteString(" ")
				b.WriteString(value)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func sortedKeys(m map[string][]orgast.AffiliatedValue) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Deterministic output order.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}

// ensureNewline terminates s with exactly one newline.
func ensureNewline(s string) string {
	s = strings.TrimRight(s, "\n")
	return s + "\n"
}
