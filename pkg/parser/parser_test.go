package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/orgtree/pkg/buffer"
	"github.com/yaklabco/orgtree/pkg/orgast"
	"github.com/yaklabco/orgtree/pkg/parser"
	"github.com/yaklabco/orgtree/pkg/syntax"
)

func parse(t *testing.T, input string) *orgast.Node {
	t.Helper()
	p := parser.New(buffer.NewViewString(input), nil)
	return p.Parse()
}

// kinds flattens the pre-order element kind sequence of a subtree, skipping
// the document and section scaffolding and all objects.
func kinds(n *orgast.Node) []string {
	var out []string
	orgast.Map(n, func(m *orgast.Node) bool {
		switch m.Kind {
		case orgast.NodeDocument, orgast.NodeSection:
			return true
		}
		if m.Kind.IsObject() {
			return true
		}
		out = append(out, m.Kind.String())
		return true
	})
	return out
}

func firstOfKind(t *testing.T, root *orgast.Node, kind orgast.NodeKind) *orgast.Node {
	t.Helper()
	var found *orgast.Node
	orgast.Map(root, func(n *orgast.Node) bool {
		if found == nil && n.Kind == kind {
			found = n
		}
		return found == nil
	})
	require.NotNil(t, found, "no %s in tree", kind)
	return found
}

func TestParagraphWithBold(t *testing.T) {
	t.Parallel()

	doc := parse(t, "Hello *world*.\n")

	para := firstOfKind(t, doc, orgast.NodeParagraph)
	assert.Equal(t, 0, para.Begin)
	assert.Equal(t, 15, para.End)

	children := para.Children()
	require.Len(t, children, 3)
	assert.Equal(t, orgast.NodeText, children[0].Kind)
	assert.Equal(t, "Hello ", children[0].Raw)
	assert.Equal(t, orgast.NodeBold, children[1].Kind)
	assert.Equal(t, orgast.NodeText, children[2].Kind)
	assert.Equal(t, ".", children[2].Raw)

	bold := children[1]
	require.Len(t, bold.Children(), 1)
	assert.Equal(t, "world", bold.FirstChild.Raw)
	assert.Equal(t, 6, bold.Begin)
	assert.Equal(t, 13, bold.End)
}

func TestUnclosedBlockFallsBackToParagraph(t *testing.T) {
	t.Parallel()

	doc := parse(t, "#+BEGIN_SRC\nfoo\n")

	assert.Equal(t, []string{"paragraph"}, kinds(doc))
	para := firstOfKind(t, doc, orgast.NodeParagraph)
	assert.Equal(t, 0, para.Begin)
	assert.Equal(t, 16, para.End)
}

func TestUnclosedDrawerFallsBackToParagraph(t *testing.T) {
	t.Parallel()

	doc := parse(t, ":DRAWER:\ntext\n")
	assert.Equal(t, []string{"paragraph"}, kinds(doc))
}

func TestNestedList(t *testing.T) {
	t.Parallel()

	doc := parse(t, "- a\n- b\n  - c\n")

	list := firstOfKind(t, doc, orgast.NodePlainList)
	assert.Equal(t, orgast.ListUnordered, list.List.Type)

	items := list.Children()
	require.Len(t, items, 2)
	assert.Equal(t, orgast.NodeItem, items[0].Kind)
	assert.Equal(t, orgast.NodeItem, items[1].Kind)
	assert.Equal(t, "-", items[0].Item.Bullet)

	// The second item holds a sublist with one item.
	sub := firstOfKind(t, items[1], orgast.NodePlainList)
	require.NotEqual(t, list, sub)
	subItems := sub.Children()
	require.Len(t, subItems, 1)
	assert.Equal(t, orgast.NodeItem, subItems[0].Kind)

	// The structure is shared between the outer and inner lists.
	assert.Same(t, list.List.Structure, sub.List.Structure)
	assert.Same(t, list.List.Structure, items[0].Item.Structure)
}

func TestOrderedAndDescriptiveLists(t *testing.T) {
	t.Parallel()

	doc := parse(t, "1. one\n2. two\n")
	list := firstOfKind(t, doc, orgast.NodePlainList)
	assert.Equal(t, orgast.ListOrdered, list.List.Type)

	doc = parse(t, "- term :: definition\n")
	list = firstOfKind(t, doc, orgast.NodePlainList)
	assert.Equal(t, orgast.ListDescriptive, list.List.Type)

	item := firstOfKind(t, doc, orgast.NodeItem)
	assert.Equal(t, "term", item.Item.RawTag)
	require.NotNil(t, item.Item.Tag)
}

func TestItemCheckboxAndCounter(t *testing.T) {
	t.Parallel()

	doc := parse(t, "- [@3] [X] done thing\n")
	item := firstOfKind(t, doc, orgast.NodeItem)
	assert.Equal(t, "3", item.Item.Counter)
	assert.Equal(t, orgast.CheckboxOn, item.Item.Checkbox)
}

func TestHeadlineWithTodoTagsAndPlanning(t *testing.T) {
	t.Parallel()

	doc := parse(t, "* TODO Task :work:\nSCHEDULED: <2024-01-02 Tue>\n")

	h := firstOfKind(t, doc, orgast.NodeHeadline)
	assert.Equal(t, 1, h.Headline.Level)
	assert.Equal(t, "TODO", h.Headline.TodoKeyword)
	assert.Equal(t, orgast.TodoActive, h.Headline.TodoType)
	assert.Equal(t, []string{"work"}, h.Headline.Tags)
	assert.Equal(t, "Task", h.Headline.RawValue)

	planning := firstOfKind(t, doc, orgast.NodePlanning)
	require.NotNil(t, planning.Planning.Scheduled)
	ts := planning.Planning.Scheduled.Timestamp
	assert.Equal(t, orgast.TimestampActive, ts.Type)
	assert.Equal(t, 2024, ts.YearStart)
	assert.Equal(t, 1, ts.MonthStart)
	assert.Equal(t, 2, ts.DayStart)
	assert.Equal(t, -1, ts.HourStart)
}

func TestHeadlinePriorityAndComment(t *testing.T) {
	t.Parallel()

	doc := parse(t, "** DONE [#A] COMMENT Secret :x:y:\n")
	h := firstOfKind(t, doc, orgast.NodeHeadline)
	assert.Equal(t, 2, h.Headline.Level)
	assert.Equal(t, orgast.TodoDone, h.Headline.TodoType)
	assert.Equal(t, byte('A'), h.Headline.Priority)
	assert.True(t, h.Headline.Commented)
	assert.Equal(t, []string{"x", "y"}, h.Headline.Tags)
	assert.Equal(t, "Secret", h.Headline.RawValue)
}

func TestHeadlineArchivedTag(t *testing.T) {
	t.Parallel()

	doc := parse(t, "* Old :ARCHIVE:\n")
	h := firstOfKind(t, doc, orgast.NodeHeadline)
	assert.True(t, h.Headline.Archived)
}

func TestHeadlineSubtreeExtent(t *testing.T) {
	t.Parallel()

	input := "* one\nbody\n** sub\n* two\n"
	doc := parse(t, input)

	headlines := orgast.FindByKind(doc, orgast.NodeHeadline)
	require.Len(t, headlines, 3)
	one, sub, two := headlines[0], headlines[1], headlines[2]

	assert.Equal(t, 0, one.Begin)
	assert.Equal(t, 18, one.End)
	assert.Equal(t, one, sub.Parent)
	assert.Equal(t, 18, two.Begin)
	assert.Equal(t, len(input), two.End)
}

func TestPreBlankAfterHeadline(t *testing.T) {
	t.Parallel()

	doc := parse(t, "* H\n\ntext\n")
	h := firstOfKind(t, doc, orgast.NodeHeadline)
	assert.Equal(t, 1, h.Headline.PreBlank)
	assert.Equal(t, 5, h.ContentsBegin)
}

func TestSrcBlockHeader(t *testing.T) {
	t.Parallel()

	doc := parse(t, "#+BEGIN_SRC go -n :tangle yes\nfmt.Println()\n#+END_SRC\n")
	src := firstOfKind(t, doc, orgast.NodeSrcBlock)
	assert.Equal(t, "go", src.Block.Language)
	assert.Equal(t, "-n", src.Block.Switches)
	assert.Equal(t, ":tangle yes", src.Block.Parameters)
	assert.Equal(t, "fmt.Println()\n", src.Raw)
}

func TestQuoteBlockContainsElements(t *testing.T) {
	t.Parallel()

	doc := parse(t, "#+BEGIN_QUOTE\nquoted text\n#+END_QUOTE\n")
	quote := firstOfKind(t, doc, orgast.NodeQuoteBlock)
	assert.Equal(t, orgast.NodeParagraph, quote.FirstChild.Kind)
}

func TestSpecialAndDynamicBlocks(t *testing.T) {
	t.Parallel()

	doc := parse(t, "#+BEGIN_warning\ncareful\n#+END_warning\n")
	sp := firstOfKind(t, doc, orgast.NodeSpecialBlock)
	assert.Equal(t, "warning", sp.Block.Name)

	doc = parse(t, "#+BEGIN: clocktable :scope file\n| data |\n#+END:\n")
	dyn := firstOfKind(t, doc, orgast.NodeDynamicBlock)
	assert.Equal(t, "clocktable", dyn.Block.Name)
	assert.Equal(t, ":scope file", dyn.Block.Parameters)
	assert.Equal(t, orgast.NodeTable, dyn.FirstChild.Kind)
}

func TestPropertyDrawer(t *testing.T) {
	t.Parallel()

	doc := parse(t, "* H\n:PROPERTIES:\n:Custom_ID: foo\n:END:\n")
	pd := firstOfKind(t, doc, orgast.NodePropertyDrawer)
	np := pd.FirstChild
	require.NotNil(t, np)
	assert.Equal(t, orgast.NodeNodeProperty, np.Kind)
	assert.Equal(t, "Custom_ID", np.Property.Key)
	assert.Equal(t, "foo", np.Property.Value)
}

func TestDrawer(t *testing.T) {
	t.Parallel()

	doc := parse(t, ":LOGBOOK:\nnote\n:END:\n")
	drawer := firstOfKind(t, doc, orgast.NodeDrawer)
	assert.Equal(t, "LOGBOOK", drawer.Raw)
	assert.Equal(t, orgast.NodeParagraph, drawer.FirstChild.Kind)
}

func TestKeywordElement(t *testing.T) {
	t.Parallel()

	doc := parse(t, "#+TITLE: My Document\n")
	kw := firstOfKind(t, doc, orgast.NodeKeyword)
	assert.Equal(t, "TITLE", kw.Keyword.Key)
	assert.Equal(t, "My Document", kw.Raw)
}

func TestAffiliatedMetadata(t *testing.T) {
	t.Parallel()

	doc := parse(t, "#+NAME: tbl\n#+CAPTION[short]: Long caption\n| a |\n")
	table := firstOfKind(t, doc, orgast.NodeTable)

	require.NotNil(t, table.Affiliated)
	assert.Equal(t, 0, table.Begin)
	assert.Greater(t, table.PostAffiliated, 0)

	name, ok := table.Affiliated.Get("name")
	require.True(t, ok)
	assert.Equal(t, "tbl", name.Value)

	caption, ok := table.Affiliated.Get("caption")
	require.True(t, ok)
	assert.Equal(t, "Long caption", caption.Value)
	assert.Equal(t, "short", caption.Secondary)
	assert.NotNil(t, caption.Parsed)
}

func TestAffiliatedAliasTranslation(t *testing.T) {
	t.Parallel()

	doc := parse(t, "#+TBLNAME: legacy\n| a |\n")
	table := firstOfKind(t, doc, orgast.NodeTable)
	name, ok := table.Affiliated.Get("name")
	require.True(t, ok)
	assert.Equal(t, "legacy", name.Value)
}

func TestOrphanedAffiliatedBecomesKeyword(t *testing.T) {
	t.Parallel()

	doc := parse(t, "#+CAPTION: lost\n\npara\n")
	got := kinds(doc)
	assert.Equal(t, []string{"keyword", "paragraph"}, got)
}

func TestMultipleCaptionAccumulates(t *testing.T) {
	t.Parallel()

	doc := parse(t, "#+CAPTION: one\n#+CAPTION: two\n| a |\n")
	table := firstOfKind(t, doc, orgast.NodeTable)
	vs := table.Affiliated.Entries["caption"]
	require.Len(t, vs, 2)
	// Most recent first in storage.
	assert.Equal(t, "two", vs[0].Value)
	assert.Equal(t, "one", vs[1].Value)
}

func TestTableWithRuleAndFormulas(t *testing.T) {
	t.Parallel()

	doc := parse(t, "| a | b |\n|---|\n| c | d |\n#+TBLFM: $2=$1*2\n")
	table := firstOfKind(t, doc, orgast.NodeTable)
	assert.Equal(t, []string{"$2=$1*2"}, table.Table.TblFm)

	rows := table.Children()
	require.Len(t, rows, 3)
	assert.False(t, rows[0].TableRow.Rule)
	assert.True(t, rows[1].TableRow.Rule)

	cells := rows[0].Children()
	require.Len(t, cells, 2)
	assert.Equal(t, orgast.NodeTableCell, cells[0].Kind)
	assert.Equal(t, "a", cells[0].FirstChild.Raw)
	assert.Equal(t, "b", cells[1].FirstChild.Raw)
}

func TestFootnoteDefinition(t *testing.T) {
	t.Parallel()

	doc := parse(t, "[fn:1] The note.\n")
	def := firstOfKind(t, doc, orgast.NodeFootnoteDefinition)
	assert.Equal(t, "1", def.Footnote.Label)
	assert.Equal(t, orgast.NodeParagraph, def.FirstChild.Kind)
}

func TestFootnoteReferences(t *testing.T) {
	t.Parallel()

	doc := parse(t, "See note[fn:1] and inline[fn::right here].\n")
	refs := orgast.FindByKind(doc, orgast.NodeFootnoteReference)
	require.Len(t, refs, 2)
	assert.Equal(t, "1", refs[0].Footnote.Label)
	assert.Equal(t, orgast.FootnoteStandard, refs[0].Footnote.Type)
	assert.Equal(t, orgast.FootnoteInline, refs[1].Footnote.Type)
	require.NotEmpty(t, refs[1].Footnote.Definition)
}

func TestCommentAndFixedWidth(t *testing.T) {
	t.Parallel()

	doc := parse(t, "# one\n# two\n")
	c := firstOfKind(t, doc, orgast.NodeComment)
	assert.Equal(t, "one\ntwo", c.Raw)

	doc = parse(t, ": fixed\n")
	fw := firstOfKind(t, doc, orgast.NodeFixedWidth)
	assert.Equal(t, "fixed", fw.Raw)
}

func TestHorizontalRuleAndDiary(t *testing.T) {
	t.Parallel()

	doc := parse(t, "-----\n")
	firstOfKind(t, doc, orgast.NodeHorizontalRule)

	doc = parse(t, "%%(diary-float t 4 2)\n")
	d := firstOfKind(t, doc, orgast.NodeDiarySexp)
	assert.Equal(t, "%%(diary-float t 4 2)", d.Raw)
}

func TestLatexEnvironment(t *testing.T) {
	t.Parallel()

	input := "\\begin{align}\nx = 1\n\\end{align}\n"
	doc := parse(t, input)
	env := firstOfKind(t, doc, orgast.NodeLatexEnvironment)
	assert.Equal(t, input, env.Raw)
}

func TestClock(t *testing.T) {
	t.Parallel()

	doc := parse(t, "CLOCK: [2024-01-01 Mon 10:00]--[2024-01-01 Mon 11:00] => 1:00\n")
	clock := firstOfKind(t, doc, orgast.NodeClock)
	assert.Equal(t, orgast.ClockClosed, clock.Clock.Status)
	assert.Equal(t, "1:00", clock.Clock.Duration)
	require.NotNil(t, clock.Clock.Value)
	assert.Equal(t, orgast.TimestampInactiveRange, clock.Clock.Value.Timestamp.Type)
}

func TestBabelCall(t *testing.T) {
	t.Parallel()

	doc := parse(t, "#+CALL: square(x=4)\n")
	call := firstOfKind(t, doc, orgast.NodeBabelCall)
	assert.Equal(t, "square", call.Call.Call)
	assert.Equal(t, "x=4", call.Call.Arguments)
}

func TestInlinetask(t *testing.T) {
	t.Parallel()

	stars := "***************"
	input := stars + " Small task\nbody\n" + stars + " END\n"
	doc := parse(t, input)
	task := firstOfKind(t, doc, orgast.NodeInlinetask)
	assert.Equal(t, 15, task.Headline.Level)
	assert.Equal(t, "Small task", task.Headline.RawValue)
	assert.Equal(t, orgast.NodeParagraph, task.FirstChild.Kind)
}

func TestDegenerateInlinetask(t *testing.T) {
	t.Parallel()

	doc := parse(t, "*************** Lone task\n")
	task := firstOfKind(t, doc, orgast.NodeInlinetask)
	assert.False(t, task.HasChildren())
}

func TestGranularityElementSkipsObjects(t *testing.T) {
	t.Parallel()

	p := parser.New(buffer.NewViewString("Hello *world*.\n"), nil)
	p.Granularity = parser.GranularityElement
	doc := p.Parse()

	para := firstOfKind(t, doc, orgast.NodeParagraph)
	assert.False(t, para.HasChildren())
}

func TestGranularityHeadlineStopsAtSections(t *testing.T) {
	t.Parallel()

	p := parser.New(buffer.NewViewString("* H\ntext\n"), nil)
	p.Granularity = parser.GranularityHeadline
	doc := p.Parse()

	h := firstOfKind(t, doc, orgast.NodeHeadline)
	section := h.FirstChild
	require.NotNil(t, section)
	assert.Equal(t, orgast.NodeSection, section.Kind)
	assert.False(t, section.HasChildren())
}

func TestCoverageInvariant(t *testing.T) {
	t.Parallel()

	input := "* H\ntext with *markup*\n\n- item\n\n| a |\n"
	doc := parse(t, input)

	for pos := 0; pos < len(input); pos++ {
		found := false
		orgast.Map(doc, func(n *orgast.Node) bool {
			if n.Kind.IsElement() && n.Begin <= pos && pos < n.End {
				found = true
			}
			return true
		})
		assert.True(t, found, "position %d not covered by any element", pos)
	}
}

func TestParentConsistency(t *testing.T) {
	t.Parallel()

	doc := parse(t, "* H :tag:\n- a :: b\ntext *bold* [[https://x.org][desc]]\n")

	orgast.Map(doc, func(n *orgast.Node) bool {
		for c := n.FirstChild; c != nil; c = c.Next {
			assert.Equal(t, n, c.Parent, "child %s of %s has wrong parent", c.Kind, n.Kind)
		}
		for _, sec := range n.SecondaryStrings() {
			for _, obj := range sec {
				assert.Equal(t, n, obj.Parent)
				assert.True(t, n.InSecondaryString(obj))
			}
		}
		return true
	})
}

func TestObjectRestrictionInvariant(t *testing.T) {
	t.Parallel()

	doc := parse(t, "para *bold /ital/* [[https://x.org][desc *b*]] x_i\n| cell *b* |\n")

	orgast.Map(doc, func(n *orgast.Node) bool {
		if n.Parent == nil || !n.Kind.IsObject() || n.Kind == orgast.NodeText {
			return true
		}
		assert.True(t, orgast.AllowedIn(n.Kind, n.Parent.Kind),
			"%s not allowed in %s", n.Kind, n.Parent.Kind)
		return true
	})
}

func TestVisibleOnlySkipsMaskedRegions(t *testing.T) {
	t.Parallel()

	input := "one\n* hidden\nthree\n"
	p := parser.New(buffer.NewViewString(input), nil)
	p.VisibleOnly = true
	p.Visibility = maskRange{from: 4, to: 13}
	doc := p.Parse()

	// The masked heading line is skipped entirely.
	assert.Empty(t, orgast.FindByKind(doc, orgast.NodeHeadline))
	paras := orgast.FindByKind(doc, orgast.NodeParagraph)
	require.Len(t, paras, 2)
	assert.Equal(t, 0, paras[0].Begin)
	assert.Equal(t, 13, paras[1].Begin)
}

type maskRange struct{ from, to int }

func (m maskRange) InvisibleAt(pos int) bool { return pos >= m.from && pos < m.to }
func (m maskRange) FindVisible(pos int) int {
	if m.InvisibleAt(pos) {
		return m.to
	}
	return pos
}

func TestTabsExpandedInPlainText(t *testing.T) {
	t.Parallel()

	cfg := syntax.Default()
	cfg.TabWidth = 4
	p := parser.New(buffer.NewViewString("a\tb\n"), cfg)
	doc := p.Parse()

	para := firstOfKind(t, doc, orgast.NodeParagraph)
	require.NotNil(t, para.FirstChild)
	assert.Equal(t, "a   b", para.FirstChild.Raw)
}
