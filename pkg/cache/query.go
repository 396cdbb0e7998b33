package cache

import (
	"time"

	"github.com/yaklabco/orgtree/pkg/orgast"
	"github.com/yaklabco/orgtree/pkg/parser"
)

// objectState is the per-element object sub-cache: the objects found so
// far inside an element's object-bearing range and whether the stream has
// been fully enumerated.
type objectState struct {
	complete bool
	objects  []*orgast.Node
	begin    int
	end      int
}

func (s *objectState) shift(delta int) {
	s.begin += delta
	s.end += delta
	for _, o := range s.objects {
		shiftSubtree(o, delta)
	}
}

// syncUpTo drives pending synchronization far enough to answer a query at
// pos, resuming across deadline expirations until the relevant requests
// drain.
func (c *Cache) syncUpTo(pos int) {
	for len(c.requests) > 0 && c.requests[0].Beg <= pos {
		if c.Sync(time.Now().Add(c.syncDuration), pos) {
			return
		}
	}
}

// ElementAt returns the innermost element containing pos, synchronizing
// the cache as far as the query requires. A pos at the buffer end resolves
// to the innermost element ending there. At the very start of the first
// item of a list (or first row of a table) the list (table) is returned.
func (c *Cache) ElementAt(pos int) *orgast.Node {
	c.ensureTopLevel()
	c.syncUpTo(pos)

	v := c.view
	if pos >= v.PositionMax() {
		pos = v.PositionMax() - 1
	}
	if pos < v.PositionMin() {
		pos = v.PositionMin()
	}
	if v.PositionMax() == v.PositionMin() {
		return nil
	}

	el := c.root
	for {
		next := c.childContaining(el, pos)
		if next == nil {
			break
		}
		el = next
		if !el.Kind.IsGreaterElement() || !el.InContents(pos) {
			break
		}
	}
	if el == c.root {
		return nil
	}

	// The very start of a list's first item belongs to the list.
	for el.Parent != nil && el.Parent != c.root && el.Parent.Begin == pos &&
		el.Begin == pos &&
		(el.Parent.Kind == orgast.NodePlainList || el.Parent.Kind == orgast.NodeTable) {
		el = el.Parent
	}
	return el
}

// childContaining returns the child element of container holding pos,
// parsing and indexing unexplored gaps on demand. Returns nil when pos
// falls outside container's element-bearing contents.
func (c *Cache) childContaining(container *orgast.Node, pos int) *orgast.Node {
	begin, limit := container.ContentsBegin, container.ContentsEnd
	if container == c.root {
		begin, limit = c.view.PositionMin(), c.view.PositionMax()
	} else if !container.Kind.IsGreaterElement() || begin < 0 || !container.InContents(pos) {
		return nil
	}

	var prev *orgast.Node
	nextChild := container.FirstChild
	for ch := container.FirstChild; ch != nil; ch = ch.Next {
		if pos < ch.Begin {
			nextChild = ch
			break
		}
		if pos < ch.End {
			return ch
		}
		prev = ch
		nextChild = ch.Next
	}

	// Unparsed gap: recognize elements from the last known boundary up
	// to pos.
	start := begin
	mode := parser.ChildMode(container.Kind)
	if container == c.root {
		mode = parser.ModeFirstSection
	}
	if prev != nil {
		start = prev.End
		mode = parser.NextMode(mode, prev.Kind)
	}
	bound := limit
	if nextChild != nil && nextChild.Begin < bound {
		bound = nextChild.Begin
	}
	if start >= bound {
		return nil
	}

	var structure *orgast.ListStruct
	switch {
	case container.Kind == orgast.NodePlainList && container.List != nil:
		structure = container.List.Structure
	case container.Kind == orgast.NodeItem && container.Item != nil:
		structure = container.Item.Structure
	}

	var found *orgast.Node
	cur := start
	for cur < bound {
		next := c.view.SkipBlankLinesForward(cur, bound)
		if next >= bound {
			break
		}
		cur = next
		el := c.parser.CurrentElement(cur, bound, mode, structure)
		if el == nil || el.End <= cur {
			break
		}
		c.attachChild(container, el, nextChild)
		cur = el.End
		mode = parser.NextMode(mode, el.Kind)
		if pos < el.End {
			if el.Contains(pos) {
				found = el
			}
			break
		}
	}
	return found
}

// attachChild links el under container before anchor (nil appends) and
// indexes it with a key that preserves total order among its neighbours.
func (c *Cache) attachChild(container, el *orgast.Node, anchor *orgast.Node) {
	if anchor != nil {
		// The anchor is attached to container by construction.
		_ = orgast.InsertBefore(el, anchor)
	} else {
		orgast.Adopt(container, el)
	}

	var prevKey, nextKey Key
	if p := el.Prev; p != nil {
		if k, ok := c.lastIndexedKeyIn(p); ok {
			prevKey = k
		}
	}
	if prevKey == nil {
		if k, ok := c.keys[container]; ok {
			prevKey = k
		}
	}
	if prevKey != nil {
		if k, ok := c.successorKey(prevKey); ok {
			nextKey = k
		}
	} else if a := anchor; a != nil {
		if k, ok := c.keys[a]; ok {
			nextKey = k
		}
	}

	natural := c.naturalKey(el)
	key := natural
	if (prevKey != nil && !Less(prevKey, natural)) ||
		(nextKey != nil && !Less(natural, nextKey)) {
		key = Generate(prevKey, nextKey)
	}
	c.register(el, key)
}

// lastIndexedKeyIn returns the largest key in n's indexed subtree.
func (c *Cache) lastIndexedKeyIn(n *orgast.Node) (Key, bool) {
	k, ok := c.keys[n]
	for ch := n.LastChild; ch != nil; ch = ch.LastChild {
		if kk, okk := c.keys[ch]; okk {
			k, ok = kk, true
		}
	}
	return k, ok
}

// successorKey returns the smallest indexed key strictly greater than k.
func (c *Cache) successorKey(k Key) (Key, bool) {
	var out Key
	found := false
	c.index.Ascend(entry{key: k}, func(e entry) bool {
		if Compare(e.key, k) <= 0 {
			return true
		}
		out = e.key
		found = true
		return false
	})
	return out, found
}

// ContextAt returns the innermost object containing pos, or the element
// itself when pos sits in plain element text. Object parsing inside the
// element is memoized in the object sub-cache.
func (c *Cache) ContextAt(pos int) *orgast.Node {
	el := c.ElementAt(pos)
	if el == nil {
		return nil
	}

	// Planning and clock lines carry their timestamps as attributes.
	switch el.Kind {
	case orgast.NodePlanning:
		for _, ts := range []*orgast.Node{el.Planning.Scheduled, el.Planning.Deadline, el.Planning.Closed} {
			if ts != nil && ts.Contains(pos) {
				return ts
			}
		}
		return el
	case orgast.NodeClock:
		if ts := el.Clock.Value; ts != nil && ts.Contains(pos) {
			return ts
		}
		return el
	}

	begin, end, restriction, ok := c.objectRange(el, pos)
	if !ok {
		return el
	}

	objs := c.objectsIn(el, begin, end, restriction)
	obj := innermostObject(objs, pos)
	if obj == nil || obj.Kind == orgast.NodeText {
		return el
	}
	return obj
}

// objectRange narrows an element to the sub-range that may contain objects
// around pos, with its restriction set.
func (c *Cache) objectRange(el *orgast.Node, pos int) (int, int, orgast.KindSet, bool) {
	switch el.Kind {
	case orgast.NodeHeadline, orgast.NodeInlinetask:
		a := el.Headline
		if pos >= a.TitleBegin && pos < a.TitleEnd {
			return a.TitleBegin, a.TitleEnd, orgast.Restriction(el.Kind), true
		}
	case orgast.NodeItem:
		a := el.Item
		if a.RawTag != "" && pos >= a.TagBegin && pos < a.TagEnd {
			return a.TagBegin, a.TagEnd, orgast.Restriction(el.Kind), true
		}
	case orgast.NodeParagraph, orgast.NodeVerseBlock, orgast.NodeTableRow, orgast.NodeTableCell:
		if el.InContents(pos) {
			return el.ContentsBegin, el.ContentsEnd, orgast.Restriction(el.Kind), true
		}
	case orgast.NodeKeyword:
		// Parsed keyword values live in the affiliated ranges of the
		// element the keywords belong to. A standalone keyword has no
		// object range of its own: its value is never object-lexed.
	}
	if el.Affiliated != nil {
		for _, vs := range el.Affiliated.Entries {
			for _, v := range vs {
				if pos >= v.ValueBegin && pos < v.ValueEnd {
					return v.ValueBegin, v.ValueEnd,
						orgast.Restriction(orgast.NodeKeyword), true
				}
				if pos >= v.SecondaryBegin && pos < v.SecondaryEnd {
					return v.SecondaryBegin, v.SecondaryEnd,
						orgast.Restriction(orgast.NodeKeyword), true
				}
			}
		}
	}
	return 0, 0, 0, false
}

// objectsIn returns the objects of el within [begin, end), consulting and
// filling the object sub-cache.
func (c *Cache) objectsIn(el *orgast.Node, begin, end int, restriction orgast.KindSet) []*orgast.Node {
	st := c.objects[el]
	if st != nil && st.complete && st.begin == begin && st.end == end {
		return st.objects
	}
	objs := c.parser.ParseObjects(begin, end, restriction)
	objs = orgast.AdoptSecondary(el, objs)
	c.objects[el] = &objectState{complete: true, objects: objs, begin: begin, end: end}
	return objs
}

// innermostObject descends through recursive objects to the deepest one
// containing pos.
func innermostObject(objs []*orgast.Node, pos int) *orgast.Node {
	for _, o := range objs {
		if !o.Contains(pos) {
			continue
		}
		if o.Kind.IsRecursiveObject() && o.HasChildren() {
			if inner := innermostObject(o.Children(), pos); inner != nil &&
				inner.Kind != orgast.NodeText {
				return inner
			}
		}
		if o.Footnote != nil && o.Footnote.Definition != nil {
			if inner := innermostObject(o.Footnote.Definition, pos); inner != nil &&
				inner.Kind != orgast.NodeText {
				return inner
			}
		}
		return o
	}
	return nil
}
