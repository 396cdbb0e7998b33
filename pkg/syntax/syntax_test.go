package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/orgtree/pkg/syntax"
)

func TestOutlineRegex(t *testing.T) {
	t.Parallel()

	assert.True(t, syntax.Outline.MatchString("* Heading"))
	assert.True(t, syntax.Outline.MatchString("*** Deep"))
	assert.False(t, syntax.Outline.MatchString("*bold* start"))
	assert.False(t, syntax.Outline.MatchString(" * indented"))

	// Multiline anchoring finds headings mid-buffer.
	m := syntax.Outline.FindStringIndex("text\n** h\n")
	assert.Equal(t, []int{5, 8}, m)
}

func TestItemRegex(t *testing.T) {
	t.Parallel()

	assert.True(t, syntax.Item.MatchString("- item"))
	assert.True(t, syntax.Item.MatchString("  + item"))
	assert.True(t, syntax.Item.MatchString("1. item"))
	assert.True(t, syntax.Item.MatchString("12) item"))
	assert.True(t, syntax.Item.MatchString("a) item"))
	assert.False(t, syntax.Item.MatchString("-- not an item"))
}

func TestDrawerRegexes(t *testing.T) {
	t.Parallel()

	assert.True(t, syntax.Drawer.MatchString(":LOGBOOK:"))
	assert.True(t, syntax.Drawer.MatchString("  :PROPERTIES:  "))
	assert.False(t, syntax.Drawer.MatchString(":not a drawer: text"))
	assert.True(t, syntax.DrawerEnd.MatchString(":END:"))
	assert.True(t, syntax.DrawerEnd.MatchString("  :end:"))
}

func TestBlockRegexes(t *testing.T) {
	t.Parallel()

	m := syntax.BlockBegin.FindStringSubmatch("#+BEGIN_SRC go -n :tangle yes")
	assert.NotNil(t, m)
	assert.Equal(t, "SRC", m[1])
	assert.Equal(t, "go -n :tangle yes", m[2])

	assert.True(t, syntax.BlockEnd("SRC").MatchString("#+END_SRC"))
	assert.True(t, syntax.BlockEnd("SRC").MatchString("  #+end_src  "))
	assert.False(t, syntax.BlockEnd("SRC").MatchString("#+END_QUOTE"))
	assert.True(t, syntax.BlockEndAny.MatchString("#+END_QUOTE"))
	assert.True(t, syntax.BlockEndAny.MatchString("#+END:"))
}

func TestKeywordNormalization(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "NAME", syntax.NormalizeKeyword("tblname"))
	assert.Equal(t, "RESULTS", syntax.NormalizeKeyword("result"))
	assert.Equal(t, "HEADER", syntax.NormalizeKeyword("HEADERS"))
	assert.Equal(t, "CAPTION", syntax.NormalizeKeyword("caption"))

	assert.True(t, syntax.IsAffiliatedKeyword("CAPTION"))
	assert.True(t, syntax.IsAffiliatedKeyword("attr_html"))
	assert.True(t, syntax.IsAffiliatedKeyword("SRCNAME"))
	assert.False(t, syntax.IsAffiliatedKeyword("TITLE"))

	assert.True(t, syntax.IsMultipleKeyword("CAPTION"))
	assert.True(t, syntax.IsMultipleKeyword("ATTR_LATEX"))
	assert.False(t, syntax.IsMultipleKeyword("NAME"))
}

func TestTimestampRegexes(t *testing.T) {
	t.Parallel()

	assert.True(t, syntax.TimestampDate.MatchString("2024-01-02 Tue"))
	assert.True(t, syntax.TimestampTime.MatchString("9:30"))
	assert.True(t, syntax.TimestampTime.MatchString("09:30-10:45"))
	assert.False(t, syntax.TimestampTime.MatchString("9:30x"))

	m := syntax.TimestampModifier.FindStringSubmatch("++2w")
	assert.NotNil(t, m)
	assert.Equal(t, "++", m[1])
	assert.Equal(t, "2", m[2])
	assert.Equal(t, "w", m[3])

	assert.True(t, syntax.TimestampModifier.MatchString("-3d"))
	assert.True(t, syntax.TimestampModifier.MatchString(".+1m"))
}

func TestTodoKeywords(t *testing.T) {
	t.Parallel()

	cfg := syntax.Default()
	known, done := cfg.IsTodoKeyword("TODO")
	assert.True(t, known)
	assert.False(t, done)

	known, done = cfg.IsTodoKeyword("DONE")
	assert.True(t, known)
	assert.True(t, done)

	known, _ = cfg.IsTodoKeyword("MAYBE")
	assert.False(t, known)
}

func TestExpandTabs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "        x", syntax.ExpandTabs("\tx", 8))
	assert.Equal(t, "ab  cd", syntax.ExpandTabs("ab\tcd", 4))
	assert.Equal(t, "no tabs", syntax.ExpandTabs("no tabs", 8))
	assert.Equal(t, "a\n    b", syntax.ExpandTabs("a\n\tb", 4))
}

func TestLookupEntity(t *testing.T) {
	t.Parallel()

	e, ok := syntax.LookupEntity("alpha")
	assert.True(t, ok)
	assert.Equal(t, "α", e.UTF8)
	assert.True(t, e.LatexMath)

	_, ok = syntax.LookupEntity("nosuchentity")
	assert.False(t, ok)
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1:05", syntax.FormatDuration(65))
	assert.Equal(t, "0:00", syntax.FormatDuration(0))
	assert.Equal(t, "10:30", syntax.FormatDuration(630))
}
