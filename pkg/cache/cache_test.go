package cache_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/orgtree/pkg/buffer"
	"github.com/yaklabco/orgtree/pkg/cache"
	"github.com/yaklabco/orgtree/pkg/orgast"
	"github.com/yaklabco/orgtree/pkg/parser"
)

func newCache(t *testing.T, input string) (*buffer.View, *cache.Cache) {
	t.Helper()
	v := buffer.NewViewString(input)
	c := cache.New(v, cache.Options{})
	return v, c
}

// freshElementAt computes the reference answer by fully parsing the
// buffer and walking the tree for the innermost element containing pos.
func freshElementAt(v *buffer.View, pos int) *orgast.Node {
	doc := parser.New(v, nil).Parse()
	var best *orgast.Node
	orgast.Map(doc, func(n *orgast.Node) bool {
		if n.Kind.IsElement() && n.Begin <= pos && pos < n.End {
			best = n
		}
		return true
	})
	// The very start of a list or table resolves to the container, same
	// as the cache query.
	for best != nil && best.Parent != nil && best.Parent.Begin == pos &&
		best.Begin == pos &&
		(best.Parent.Kind == orgast.NodePlainList || best.Parent.Kind == orgast.NodeTable) {
		best = best.Parent
	}
	return best
}

func TestElementAtBasic(t *testing.T) {
	t.Parallel()

	_, c := newCache(t, "Hello *world*.\n")
	el := c.ElementAt(0)
	require.NotNil(t, el)
	assert.Equal(t, orgast.NodeParagraph, el.Kind)
	assert.Equal(t, 0, el.Begin)
	assert.Equal(t, 15, el.End)
}

func TestElementAtUnclosedBlock(t *testing.T) {
	t.Parallel()

	_, c := newCache(t, "#+BEGIN_SRC\nfoo\n")
	el := c.ElementAt(0)
	require.NotNil(t, el)
	assert.Equal(t, orgast.NodeParagraph, el.Kind)
}

func TestElementAtDescendsIntoList(t *testing.T) {
	t.Parallel()

	_, c := newCache(t, "- a\n- b\n  - c\n")

	// Inside "c": the innermost item is the sublist's single item.
	el := c.ElementAt(12)
	require.NotNil(t, el)
	item := el
	for item != nil && item.Kind != orgast.NodeItem {
		item = item.Parent
	}
	require.NotNil(t, item)
	assert.Equal(t, 8, item.Begin)

	// The very start of the list resolves to the list, not its first
	// item.
	el = c.ElementAt(0)
	require.NotNil(t, el)
	assert.Equal(t, orgast.NodePlainList, el.Kind)
}

func TestElementAtBufferEnd(t *testing.T) {
	t.Parallel()

	input := "para\n"
	_, c := newCache(t, input)
	el := c.ElementAt(len(input))
	require.NotNil(t, el)
	assert.Equal(t, orgast.NodeParagraph, el.Kind)
}

func TestElementAtCoverage(t *testing.T) {
	t.Parallel()

	input := "* H\ntext\n\n- item\n\n| a |\n"
	v, c := newCache(t, input)
	for pos := 0; pos < len(input); pos++ {
		el := c.ElementAt(pos)
		require.NotNil(t, el, "position %d", pos)
		assert.True(t, el.Begin <= pos && pos < el.End,
			"position %d outside [%d,%d) of %s", pos, el.Begin, el.End, el.Kind)

		want := freshElementAt(v, pos)
		require.NotNil(t, want)
		assert.Equal(t, want.Kind, el.Kind, "kind at %d", pos)
		assert.Equal(t, want.Begin, el.Begin, "begin at %d", pos)
		assert.Equal(t, want.End, el.End, "end at %d", pos)
	}
}

func TestIncrementalInsert(t *testing.T) {
	t.Parallel()

	v, c := newCache(t, "para1\n\npara2\n")

	before := c.ElementAt(2)
	require.NotNil(t, before)
	require.Equal(t, orgast.NodeParagraph, before.Kind)
	require.Equal(t, 7, before.End)

	v.Apply(buffer.NewInsert(2, "X"))

	after := c.ElementAt(2)
	require.NotNil(t, after)
	assert.Equal(t, orgast.NodeParagraph, after.Kind)
	assert.Equal(t, 8, after.End, "end grew by the inserted length")

	second := c.ElementAt(9)
	require.NotNil(t, second)
	assert.Equal(t, orgast.NodeParagraph, second.Kind)
	assert.Equal(t, 8, second.Begin)
	assert.Equal(t, 14, second.End)

	// The incrementally maintained answers match a fresh parse.
	for pos := 0; pos < v.Len(); pos++ {
		want := freshElementAt(v, pos)
		got := c.ElementAt(pos)
		require.NotNil(t, got, "position %d", pos)
		assert.Equal(t, want.Kind, got.Kind, "kind at %d", pos)
		assert.Equal(t, want.Begin, got.Begin, "begin at %d", pos)
		assert.Equal(t, want.End, got.End, "end at %d", pos)
	}
}

func TestIncrementalInsertShiftsLaterHeadlines(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&b, "* h%02d\ntext %02d\n", i, i)
	}
	input := b.String()
	v, c := newCache(t, input)

	// Populate the index at both ends.
	require.NotNil(t, c.ElementAt(0))
	require.NotNil(t, c.ElementAt(len(input)-2))

	// Insert inside the first section's text line.
	v.Apply(buffer.NewInsert(8, "XYZ"))

	for _, pos := range []int{0, 8, 20, len(input) / 2, v.Len() - 2} {
		want := freshElementAt(v, pos)
		got := c.ElementAt(pos)
		require.NotNil(t, got, "position %d", pos)
		assert.Equal(t, want.Kind, got.Kind, "kind at %d", pos)
		assert.Equal(t, want.Begin, got.Begin, "begin at %d", pos)
		assert.Equal(t, want.End, got.End, "end at %d", pos)
	}
}

func TestInterruptAndResume(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	for i := 0; i < 200; i++ {
		fmt.Fprintf(&b, "* h%03d\nline one %03d\n", i, i)
	}
	input := b.String()
	v := buffer.NewViewString(input)
	c := cache.New(v, cache.Options{SyncDuration: time.Nanosecond})

	require.NotNil(t, c.ElementAt(0))
	require.NotNil(t, c.ElementAt(len(input)-2))

	v.Apply(buffer.NewInsert(8, "Q"))
	require.True(t, c.Pending())

	// Drive the synchronizer with an expired deadline: each tick still
	// makes progress, and resumed work converges to the same result.
	ticks := 0
	for c.Pending() {
		c.Sync(time.Now().Add(-time.Second), -1)
		ticks++
		require.Less(t, ticks, 100000, "synchronizer failed to converge")
	}
	assert.Greater(t, ticks, 1, "expected at least one interruption")

	last := v.Len() - 2
	want := freshElementAt(v, last)
	got := c.ElementAt(last)
	require.NotNil(t, got)
	assert.Equal(t, want.Kind, got.Kind)
	assert.Equal(t, want.Begin, got.Begin)
	assert.Equal(t, want.End, got.End)
}

func TestQueryDrivesBoundedSync(t *testing.T) {
	t.Parallel()

	v, c := newCache(t, "* one\ntext\n* two\nmore\n")
	require.NotNil(t, c.ElementAt(v.Len()-2))

	v.Apply(buffer.NewInsert(7, "zz"))
	require.True(t, c.Pending())

	// A query inside the edited region forces enough synchronization to
	// answer it.
	el := c.ElementAt(7)
	require.NotNil(t, el)
	want := freshElementAt(v, 7)
	assert.Equal(t, want.Kind, el.Kind)
	assert.Equal(t, want.Begin, el.Begin)
	assert.Equal(t, want.End, el.End)
}

func TestMultipleEdits(t *testing.T) {
	t.Parallel()

	v, c := newCache(t, "* one\naaaa\n* two\nbbbb\n* three\ncccc\n")
	require.NotNil(t, c.ElementAt(v.Len()-2))

	v.Apply(buffer.NewInsert(7, "11"))
	v.Apply(buffer.NewInsert(v.Len()-2, "22"))
	c.SyncAll()

	for pos := 0; pos < v.Len(); pos++ {
		want := freshElementAt(v, pos)
		got := c.ElementAt(pos)
		require.NotNil(t, got, "position %d", pos)
		assert.Equal(t, want.Kind, got.Kind, "kind at %d", pos)
		assert.Equal(t, want.Begin, got.Begin, "begin at %d", pos)
		assert.Equal(t, want.End, got.End, "end at %d", pos)
	}
}

func TestDeleteEdit(t *testing.T) {
	t.Parallel()

	v, c := newCache(t, "* one\nhello world\n* two\nmore\n")
	require.NotNil(t, c.ElementAt(8))
	require.NotNil(t, c.ElementAt(v.Len()-2))

	v.Apply(buffer.NewDelete(6, 12))
	c.SyncAll()

	for pos := 0; pos < v.Len(); pos++ {
		want := freshElementAt(v, pos)
		got := c.ElementAt(pos)
		require.NotNil(t, got, "position %d", pos)
		assert.Equal(t, want.Kind, got.Kind, "kind at %d", pos)
		assert.Equal(t, want.Begin, got.Begin, "begin at %d", pos)
	}
}

func TestOutlineEditInvalidatesStructure(t *testing.T) {
	t.Parallel()

	v, c := newCache(t, "* one\ntext\nmore\n")
	require.NotNil(t, c.ElementAt(8))

	// Turning a text line into a heading splits the subtree.
	v.Apply(buffer.NewInsert(6, "* "))
	c.SyncAll()

	el := c.ElementAt(8)
	require.NotNil(t, el)
	want := freshElementAt(v, 8)
	assert.Equal(t, want.Kind, el.Kind)
	assert.Equal(t, want.Begin, el.Begin)
}

func TestContextAtObjects(t *testing.T) {
	t.Parallel()

	_, c := newCache(t, "Hello *world* again\n")

	ctx := c.ContextAt(8)
	require.NotNil(t, ctx)
	assert.Equal(t, orgast.NodeBold, ctx.Kind)

	// Plain text resolves to the element.
	ctx = c.ContextAt(1)
	require.NotNil(t, ctx)
	assert.Equal(t, orgast.NodeParagraph, ctx.Kind)
}

func TestContextAtHeadlineTitle(t *testing.T) {
	t.Parallel()

	_, c := newCache(t, "* see *bold* title\n")
	ctx := c.ContextAt(8)
	require.NotNil(t, ctx)
	assert.Equal(t, orgast.NodeBold, ctx.Kind)
}

func TestContextAtPlanningTimestamp(t *testing.T) {
	t.Parallel()

	_, c := newCache(t, "* H\nSCHEDULED: <2024-01-02 Tue>\n")
	ctx := c.ContextAt(17)
	require.NotNil(t, ctx)
	assert.Equal(t, orgast.NodeTimestamp, ctx.Kind)
}

func TestCacheReset(t *testing.T) {
	t.Parallel()

	v, c := newCache(t, "para\n")
	require.NotNil(t, c.ElementAt(0))
	require.Greater(t, c.Len(), 0)

	c.Reset(true)
	assert.Equal(t, 0, c.Len())
	assert.False(t, c.Pending())

	// Queries after a reset rebuild the index.
	el := c.ElementAt(0)
	require.NotNil(t, el)
	assert.Equal(t, orgast.NodeParagraph, el.Kind)
	_ = v
}

func TestDisabledCacheSkipsMaintenance(t *testing.T) {
	t.Parallel()

	v, c := newCache(t, "para one\n")
	c.SetEnabled(false)
	v.Apply(buffer.NewInsert(0, "x"))
	assert.False(t, c.Pending())
}

func TestMonotonicKeys(t *testing.T) {
	t.Parallel()

	v, c := newCache(t, "* one\ntext\n* two\nmore\n* three\nlast\n")
	for pos := 0; pos < v.Len(); pos += 3 {
		require.NotNil(t, c.ElementAt(pos))
	}

	v.Apply(buffer.NewInsert(7, "pad "))
	c.SyncAll()
	for pos := 0; pos < v.Len(); pos += 3 {
		require.NotNil(t, c.ElementAt(pos))
	}

	// Key order must agree with begin order across all indexed nodes.
	assertMonotonic(t, c, v)
}

func assertMonotonic(t *testing.T, c *cache.Cache, v *buffer.View) {
	t.Helper()
	type pair struct {
		begin int
		key   cache.Key
	}
	var pairs []pair
	for pos := 0; pos < v.Len(); pos++ {
		el := c.ElementAt(pos)
		if el == nil {
			continue
		}
		if k, ok := c.KeyFor(el); ok {
			pairs = append(pairs, pair{begin: el.Begin, key: k})
		}
	}
	for i := 1; i < len(pairs); i++ {
		if pairs[i-1].begin < pairs[i].begin {
			assert.Equal(t, -1, cache.Compare(pairs[i-1].key, pairs[i].key),
				"keys out of order for begins %d < %d", pairs[i-1].begin, pairs[i].begin)
		}
	}
}
