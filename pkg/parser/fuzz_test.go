package parser_test

import (
	"testing"

	"github.com/yaklabco/orgtree/pkg/buffer"
	"github.com/yaklabco/orgtree/pkg/orgast"
	"github.com/yaklabco/orgtree/pkg/parser"
	"github.com/yaklabco/orgtree/pkg/writer"
)

// FuzzParseInvariants checks the structural invariants that must hold for
// any input: ordered span and contents bounds, parent consistency, and a
// stable second interpretation.
func FuzzParseInvariants(f *testing.F) {
	seeds := []string{
		"",
		"\n",
		"plain\n",
		"* H\ntext\n",
		"- a\n- b\n  - c\n",
		"#+BEGIN_SRC\nunclosed\n",
		"#+BEGIN_QUOTE\nq\n#+END_QUOTE\n",
		"| a | b |\n|---|\n",
		"*bold* /ital/ ~code~\n",
		"[[https://x.org][d]] <2024-01-02 Tue>\n",
		":PROPERTIES:\n:K: v\n:END:\n",
		"#+CAPTION: c\n| x |\n",
		"[fn:1] note\n",
		"* a\n** b\n* c\n",
		"\t- tabbed\n",
		"$x$ \\alpha x_2\n",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		if len(input) > 1<<16 {
			t.Skip()
		}
		p := parser.New(buffer.NewViewString(input), nil)
		doc := p.Parse()

		orgast.Map(doc, func(n *orgast.Node) bool {
			if n.Kind == orgast.NodeDocument {
				return true
			}
			if n.Begin > n.End {
				t.Fatalf("%s has begin %d > end %d", n.Kind, n.Begin, n.End)
			}
			if n.ContentsBegin >= 0 && n.ContentsEnd >= 0 {
				if n.ContentsBegin > n.ContentsEnd {
					t.Fatalf("%s has contents-begin %d > contents-end %d",
						n.Kind, n.ContentsBegin, n.ContentsEnd)
				}
			}
			for c := n.FirstChild; c != nil; c = c.Next {
				if c.Parent != n {
					t.Fatalf("child %s of %s carries wrong parent", c.Kind, n.Kind)
				}
			}
			return true
		})

		// Interpretation must be stable from the first normalized form.
		once := writer.Interpret(doc, nil)
		doc2 := parser.New(buffer.NewViewString(once), nil).Parse()
		twice := writer.Interpret(doc2, nil)
		if once != twice {
			t.Fatalf("interpretation not idempotent:\nfirst:  %q\nsecond: %q", once, twice)
		}
	})
}
