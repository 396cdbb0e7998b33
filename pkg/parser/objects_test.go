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

func TestEmphasisObjects(t *testing.T) {
	t.Parallel()

	doc := parse(t, "*b* /i/ _u_ +s+ ~c~ =v=\n")
	para := firstOfKind(t, doc, orgast.NodeParagraph)

	var got []orgast.NodeKind
	for c := para.FirstChild; c != nil; c = c.Next {
		if c.Kind != orgast.NodeText {
			got = append(got, c.Kind)
		}
	}
	assert.Equal(t, []orgast.NodeKind{
		orgast.NodeBold, orgast.NodeItalic, orgast.NodeUnderline,
		orgast.NodeStrikeThrough, orgast.NodeCode, orgast.NodeVerbatim,
	}, got)

	code := firstOfKind(t, doc, orgast.NodeCode)
	assert.Equal(t, "c", code.Raw)
	assert.False(t, code.HasChildren())
}

func TestEmphasisPostBlankCountsSpacesOnly(t *testing.T) {
	t.Parallel()

	doc := parse(t, "word *bold*  \n")
	bold := firstOfKind(t, doc, orgast.NodeBold)
	assert.Equal(t, 2, bold.PostBlank)
	// The newline stays with the enclosing element.
	assert.Equal(t, 13, bold.End)
}

func TestEmphasisNeedsBorders(t *testing.T) {
	t.Parallel()

	// A star inside a word opens nothing.
	doc := parse(t, "not*bold* here\n")
	assert.Empty(t, orgast.FindByKind(doc, orgast.NodeBold))

	// Content may not start with whitespace.
	doc = parse(t, "a * b* c\n")
	assert.Empty(t, orgast.FindByKind(doc, orgast.NodeBold))
}

func TestNestedEmphasis(t *testing.T) {
	t.Parallel()

	doc := parse(t, "*bold /italic/ tail*\n")
	bold := firstOfKind(t, doc, orgast.NodeBold)
	ital := firstOfKind(t, bold, orgast.NodeItalic)
	assert.Equal(t, bold, ital.Parent)
}

func TestBracketLink(t *testing.T) {
	t.Parallel()

	doc := parse(t, "see [[https://example.org][the site]] now\n")
	link := firstOfKind(t, doc, orgast.NodeLink)
	assert.Equal(t, "https", link.Link.LinkType)
	assert.Equal(t, "//example.org", link.Link.Path)
	assert.Equal(t, "https://example.org", link.Link.RawLink)
	assert.Equal(t, orgast.LinkBracket, link.Link.Format)
	require.NotNil(t, link.FirstChild)
	assert.Equal(t, "the site", link.FirstChild.Raw)
}

func TestFuzzyAndCustomIDLinks(t *testing.T) {
	t.Parallel()

	doc := parse(t, "[[Some Heading]] and [[#custom]]\n")
	links := orgast.FindByKind(doc, orgast.NodeLink)
	require.Len(t, links, 2)
	assert.Equal(t, "fuzzy", links[0].Link.LinkType)
	assert.Equal(t, "Some Heading", links[0].Link.Path)
	assert.Equal(t, "custom-id", links[1].Link.LinkType)
	assert.Equal(t, "custom", links[1].Link.Path)
}

func TestPlainAndAngleLinks(t *testing.T) {
	t.Parallel()

	doc := parse(t, "go to https://example.org or <mailto:x@y.z>\n")
	links := orgast.FindByKind(doc, orgast.NodeLink)
	require.Len(t, links, 2)
	assert.Equal(t, orgast.LinkPlain, links[0].Link.Format)
	assert.Equal(t, "https", links[0].Link.LinkType)
	assert.Equal(t, orgast.LinkAngle, links[1].Link.Format)
	assert.Equal(t, "mailto", links[1].Link.LinkType)
}

func TestFileLinkSearchOption(t *testing.T) {
	t.Parallel()

	doc := parse(t, "[[file:notes.txt::target]]\n")
	link := firstOfKind(t, doc, orgast.NodeLink)
	assert.Equal(t, "file", link.Link.LinkType)
	assert.Equal(t, "notes.txt", link.Link.Path)
	assert.Equal(t, "target", link.Link.SearchOption)
}

func TestRadioTargetAndRadioLink(t *testing.T) {
	t.Parallel()

	cfg := syntax.Default()
	cfg.RadioTargets = []string{"radio term"}
	p := parser.New(buffer.NewViewString("mentioning radio term here\n"), cfg)
	doc := p.Parse()

	link := firstOfKind(t, doc, orgast.NodeLink)
	assert.Equal(t, "radio", link.Link.LinkType)
	assert.Equal(t, orgast.LinkRadio, link.Link.Format)
	assert.Equal(t, "radio term", link.Link.Path)

	doc = parse(t, "<<<radio term>>>\n")
	rt := firstOfKind(t, doc, orgast.NodeRadioTarget)
	assert.Equal(t, "radio term", rt.Target.Value)
}

func TestTargetObject(t *testing.T) {
	t.Parallel()

	doc := parse(t, "jump to <<anchor>> later\n")
	target := firstOfKind(t, doc, orgast.NodeTarget)
	assert.Equal(t, "anchor", target.Target.Value)
}

func TestEntityAndLatexFragment(t *testing.T) {
	t.Parallel()

	doc := parse(t, "x \\alpha{} and $a+b$ and \\frac{1}{2}\n")

	entity := firstOfKind(t, doc, orgast.NodeEntity)
	assert.Equal(t, "alpha", entity.Entity.Name)
	assert.True(t, entity.Entity.UseBrackets)
	assert.Equal(t, "α", entity.Entity.UTF8)

	frags := orgast.FindByKind(doc, orgast.NodeLatexFragment)
	require.Len(t, frags, 2)
	assert.Equal(t, "$a+b$", frags[0].Raw)
	assert.Equal(t, "\\frac{1}{2}", frags[1].Raw)
}

func TestSubAndSuperscript(t *testing.T) {
	t.Parallel()

	doc := parse(t, "x_i and y^{2n}\n")

	sub := firstOfKind(t, doc, orgast.NodeSubscript)
	assert.False(t, sub.Script.UseBrackets)
	assert.Equal(t, "i", sub.FirstChild.Raw)

	sup := firstOfKind(t, doc, orgast.NodeSuperscript)
	assert.True(t, sup.Script.UseBrackets)
	assert.Equal(t, "2n", sup.FirstChild.Raw)
}

func TestScriptRequiresAttachment(t *testing.T) {
	t.Parallel()

	doc := parse(t, "lone _word pair\n")
	assert.Empty(t, orgast.FindByKind(doc, orgast.NodeSubscript))
	assert.Empty(t, orgast.FindByKind(doc, orgast.NodeUnderline))
}

func TestMacroObject(t *testing.T) {
	t.Parallel()

	doc := parse(t, "value is {{{version(2, beta)}}}\n")
	macro := firstOfKind(t, doc, orgast.NodeMacro)
	assert.Equal(t, "version", macro.Macro.Key)
	assert.Equal(t, []string{"2", "beta"}, macro.Macro.Args)
}

func TestExportSnippet(t *testing.T) {
	t.Parallel()

	doc := parse(t, "mix @@html:<b>bold</b>@@ in\n")
	sn := firstOfKind(t, doc, orgast.NodeExportSnippet)
	assert.Equal(t, "html", sn.Snippet.Backend)
	assert.Equal(t, "<b>bold</b>", sn.Raw)
}

func TestStatisticsCookie(t *testing.T) {
	t.Parallel()

	doc := parse(t, "* Tasks [1/3]\n")
	h := firstOfKind(t, doc, orgast.NodeHeadline)
	var cookie *orgast.Node
	for _, obj := range h.Headline.Title {
		if obj.Kind == orgast.NodeStatisticsCookie {
			cookie = obj
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, "[1/3]", cookie.Cookie.Value)
}

func TestLineBreakObject(t *testing.T) {
	t.Parallel()

	doc := parse(t, "first\\\\\nsecond\n")
	lb := firstOfKind(t, doc, orgast.NodeLineBreak)
	assert.Equal(t, 5, lb.Begin)
	assert.Equal(t, 8, lb.End)
}

func TestTimestampObjects(t *testing.T) {
	t.Parallel()

	doc := parse(t, "meet <2024-03-05 Tue 14:30-15:45 +1w -2d> ok\n")
	ts := firstOfKind(t, doc, orgast.NodeTimestamp).Timestamp

	assert.Equal(t, orgast.TimestampActiveRange, ts.Type)
	assert.Equal(t, 14, ts.HourStart)
	assert.Equal(t, 30, ts.MinuteStart)
	assert.Equal(t, 15, ts.HourEnd)
	assert.Equal(t, 45, ts.MinuteEnd)
	assert.Equal(t, orgast.RepeaterCumulate, ts.RepeaterType)
	assert.Equal(t, 1, ts.RepeaterValue)
	assert.Equal(t, byte('w'), ts.RepeaterUnit)
	assert.Equal(t, orgast.WarningAll, ts.WarningType)
	assert.Equal(t, 2, ts.WarningValue)
	assert.Equal(t, byte('d'), ts.WarningUnit)
}

func TestDoubleTimestampRange(t *testing.T) {
	t.Parallel()

	doc := parse(t, "<2024-01-01 Mon>--<2024-01-05 Fri>\n")
	ts := firstOfKind(t, doc, orgast.NodeTimestamp).Timestamp
	assert.Equal(t, orgast.TimestampActiveRange, ts.Type)
	assert.Equal(t, 1, ts.DayStart)
	assert.Equal(t, 5, ts.DayEnd)
}

func TestDiaryTimestamp(t *testing.T) {
	t.Parallel()

	doc := parse(t, "on <%%(diary-float t 4 2)> we meet\n")
	ts := firstOfKind(t, doc, orgast.NodeTimestamp).Timestamp
	assert.Equal(t, orgast.TimestampDiary, ts.Type)
	assert.Equal(t, "<%%(diary-float t 4 2)>", ts.RawValue)
}

func TestInlineSrcAndCall(t *testing.T) {
	t.Parallel()

	doc := parse(t, "run src_go[:exports code]{fmt.Println()} or call_f[:a 1](x=2)[:b 2]\n")

	src := firstOfKind(t, doc, orgast.NodeInlineSrcBlock)
	assert.Equal(t, "go", src.InlineSrc.Language)
	assert.Equal(t, ":exports code", src.InlineSrc.Parameters)
	assert.Equal(t, "fmt.Println()", src.Raw)

	call := firstOfKind(t, doc, orgast.NodeInlineBabelCall)
	assert.Equal(t, "f", call.Call.Call)
	assert.Equal(t, ":a 1", call.Call.InsideHeader)
	assert.Equal(t, "x=2", call.Call.Arguments)
	assert.Equal(t, ":b 2", call.Call.EndHeader)
}

func TestLinkDescriptionExcludesNestedLinks(t *testing.T) {
	t.Parallel()

	doc := parse(t, "[[https://a.org][see https://b.org now]]\n")
	links := orgast.FindByKind(doc, orgast.NodeLink)
	require.Len(t, links, 1)
	assert.Equal(t, "//a.org", links[0].Link.Path)
}
