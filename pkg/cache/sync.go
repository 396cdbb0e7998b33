package cache

import (
	"regexp"
	"time"

	"github.com/yaklabco/orgtree/pkg/orgast"
	"github.com/yaklabco/orgtree/pkg/syntax"
)

// sensitivity classifies a pending change per the before-change scan.
type sensitivity uint8

const (
	sensNone sensitivity = iota
	sensLine
	sensOutline
)

// Phase identifies the synchronization stage of a request.
type Phase uint8

const (
	// PhasePrune removes elements overlapping the changed region.
	PhasePrune Phase = iota

	// PhaseLocate finds the parent of the first surviving element.
	PhaseLocate

	// PhaseShift shifts and re-parents the elements past the change.
	PhaseShift

	// PhaseDone marks a completed request.
	PhaseDone
)

// Request is one pending edit reconciliation. Its fields double as the
// resumable state of the phase machine.
type Request struct {
	// Key is the index key the current phase walks from.
	Key Key

	// Beg and End delimit the changed region (pre-change positions).
	Beg int
	End int

	// Offset is the length delta of the change.
	Offset int

	// Parent is the re-parenting anchor found by PhaseLocate.
	Parent *orgast.Node

	// Shielded are the robust wrappers whose ends were already shifted
	// at submit time; prune and shift leave them alone.
	Shielded []*orgast.Node

	// Removed accumulates the nodes pruned so far, so orphan detection
	// stays correct across interruptions.
	Removed map[*orgast.Node]bool

	// Phase is the next phase to run.
	Phase Phase
}

// Pending reports whether edits await synchronization.
func (c *Cache) Pending() bool { return len(c.requests) > 0 }

// beforeChange scans the region about to change, plus the full lines
// holding its endpoints, for sensitive lines whose alteration invalidates
// structure beyond the edit.
func (c *Cache) beforeChange(beg, end int) {
	if !c.enabled {
		return
	}
	v := c.view
	scanBeg := v.LineStartOf(beg)
	scanEnd := v.LineEndOf(end)

	c.warn = sensNone
	if v.SearchForward(syntax.Outline, scanBeg, scanEnd) != nil {
		c.warn = sensOutline
		return
	}
	for _, re := range sensitiveRes {
		if v.SearchForward(re, scanBeg, scanEnd) != nil {
			c.warn = sensLine
			return
		}
	}
}

// sensitiveRes are the block, drawer and latex open/close line patterns.
var sensitiveRes = []*regexp.Regexp{
	syntax.BlockBegin,
	syntax.BlockEndAny,
	syntax.DynamicBlockBegin,
	syntax.DynamicBlockEnd,
	syntax.Drawer,
	syntax.LatexEnvBegin,
	syntax.LatexEnvEndAny,
}

// afterChange expands the changed region per the recorded sensitivity and
// queues a synchronization request.
func (c *Cache) afterChange(beg, end, preLen int) {
	if !c.enabled || !c.topLevelParsed {
		return
	}
	v := c.view
	offset := (end - beg) - preLen
	if c.root != nil {
		c.root.End = v.PositionMax()
		c.root.ContentsEnd = c.root.End
	}

	// Re-scan the new text: an edit that introduces a sensitive line is
	// as structural as one that removes it.
	if c.warn != sensOutline {
		if v.SearchForward(syntax.Outline, v.LineStartOf(beg), v.LineEndOf(end)) != nil {
			c.warn = sensOutline
		}
	}

	var reqBeg, reqEnd int
	if c.warn == sensOutline {
		reqBeg = c.previousHeading(v.LineStartOf(beg))
		reqEnd = c.nextHeadingPos(end) - offset
	} else {
		reqBeg = v.LineStartOf(beg)
		reqEnd = v.LineEndOf(end) - offset
	}
	if reqEnd < reqBeg {
		reqEnd = reqBeg
	}

	// Map the region into cached coordinates: pending requests to the
	// left hold offsets the index has not absorbed yet.
	reqBeg = c.toCached(reqBeg)
	reqEnd = c.toCached(reqEnd)

	req := &Request{
		Key:    KeyOf(reqBeg),
		Beg:    reqBeg,
		End:    reqEnd,
		Offset: offset,
		Phase:  PhasePrune,
	}
	c.submit(req)
	c.warn = sensNone
	c.armIdle()
}

// toCached maps a current-buffer position back into the coordinate space
// of the unsynchronized index by undoing pending offsets to its left.
func (c *Cache) toCached(pos int) int {
	q := pos
	for _, r := range c.requests {
		if r.End <= q-r.Offset {
			q -= r.Offset
		} else {
			break
		}
	}
	return q
}

// submit inserts a request into the queue, which stays sorted by region
// start. A request overlapping an existing one merges into it instead.
func (c *Cache) submit(req *Request) {
	for _, r := range c.requests {
		if req.Beg <= r.End && req.End >= r.Beg {
			if req.Beg < r.Beg {
				r.Beg = req.Beg
				r.Key = KeyOf(r.Beg)
			}
			if req.End > r.End {
				r.End = req.End
			}
			// Wrappers shielded earlier already absorbed r's previous
			// offset; they still need the new one.
			for _, s := range r.Shielded {
				s.End += req.Offset
				s.ContentsEnd += req.Offset
			}
			r.Offset += req.Offset
			r.Phase = PhasePrune
			c.adjustWrappers(r)
			return
		}
	}
	c.adjustWrappers(req)
	idx := len(c.requests)
	for i, r := range c.requests {
		if req.Beg < r.Beg {
			idx = i
			break
		}
	}
	c.requests = append(c.requests, nil)
	copy(c.requests[idx+1:], c.requests[idx:])
	c.requests[idx] = req
}

// previousHeading returns the start of the last heading line at or before
// pos, or the buffer start.
func (c *Cache) previousHeading(pos int) int {
	m := c.view.SearchBackward(syntax.Outline, pos, c.view.PositionMin())
	if m == nil {
		return c.view.PositionMin()
	}
	return m[0]
}

// nextHeadingPos returns the start of the first heading line after pos, or
// the buffer end.
func (c *Cache) nextHeadingPos(pos int) int {
	v := c.view
	m := v.SearchForward(syntax.Outline, v.NextLine(pos), v.PositionMax())
	if m == nil {
		return v.PositionMax()
	}
	return m[0]
}

// wrapperRobust reports whether an element of kind k survives a change it
// wraps, given the recorded sensitivity. The block/drawer family is robust
// only when no sensitive line was touched (their own delimiters are
// sensitive lines); headlines and sections additionally survive any
// non-outline edit.
func (c *Cache) wrapperRobust(k orgast.NodeKind) bool {
	switch k {
	case orgast.NodeCenterBlock, orgast.NodeDrawer, orgast.NodeDynamicBlock,
		orgast.NodeInlinetask, orgast.NodePropertyDrawer,
		orgast.NodeQuoteBlock, orgast.NodeSpecialBlock:
		return c.warn == sensNone
	case orgast.NodeHeadline, orgast.NodeSection:
		return c.warn != sensOutline
	default:
		return false
	}
}

// adjustWrappers reconciles the request with the indexed elements starting
// before its region. Robust wrappers are preserved: their ends shift
// immediately and stay out of the prune. Any other element intersecting
// the region extends the region down to its begin, so it is reparsed.
func (c *Cache) adjustWrappers(req *Request) {
	for {
		var extend *orgast.Node
		c.index.Scan(func(e entry) bool {
			n := e.node
			if n.Begin >= req.Beg {
				return false
			}
			if n.End <= req.Beg || req.isShielded(n) {
				return true
			}
			if c.wrapperRobust(n.Kind) && n.ContentsBegin >= 0 &&
				n.ContentsBegin <= req.Beg && n.ContentsEnd >= req.End {
				n.ContentsEnd += req.Offset
				n.End += req.Offset
				req.Shielded = append(req.Shielded, n)
				return true
			}
			extend = n
			return false
		})
		if extend == nil {
			return
		}
		req.Beg = extend.Begin
		if k, ok := c.keys[extend]; ok {
			req.Key = k.Clone()
		} else {
			req.Key = KeyOf(req.Beg)
		}
	}
}

// Sync drives synchronization until the queue drains, the deadline
// expires, or input is pending. threshold bounds the work for queries: a
// negative threshold means full synchronization. Returns true when the
// queue drained.
func (c *Cache) Sync(deadline time.Time, threshold int) bool {
	if !c.enabled {
		c.requests = nil
		return true
	}
	first := true
	for len(c.requests) > 0 {
		if !first && c.expired(deadline) {
			c.armIdle()
			return false
		}
		first = false
		req := c.requests[0]
		if threshold >= 0 && req.Beg > threshold && req.Phase == PhasePrune {
			// The query does not need this region yet.
			return false
		}
		if !c.step(req, deadline) {
			c.armIdle()
			return false
		}
		// Completed: the successor inherits the offset, since every
		// element past its own region still lacks both shifts.
		c.logger.Debug("sync request complete",
			"beg", req.Beg, "end", req.End, "offset", req.Offset,
			"indexed", c.index.Len(), "pending", len(c.requests)-1)
		c.requests = c.requests[1:]
		if len(c.requests) > 0 {
			c.requests[0].Offset += req.Offset
		}
	}
	return true
}

// armIdle schedules a resumption of pending synchronization after the
// configured idle time. The scheduler must deliver on the owning
// goroutine.
func (c *Cache) armIdle() {
	if c.scheduler == nil || len(c.requests) == 0 {
		return
	}
	if c.cancelIdle != nil {
		c.cancelIdle()
	}
	c.cancelIdle = c.scheduler.Schedule(c.syncIdleTime, func() {
		c.cancelIdle = nil
		c.Sync(time.Now().Add(c.syncDuration), -1)
	})
}

// SyncAll runs synchronization to completion with a fresh full budget per
// tick, never yielding. Intended for tests and batch callers.
func (c *Cache) SyncAll() {
	for !c.Sync(time.Now().Add(24*time.Hour), -1) {
	}
}

func (c *Cache) expired(deadline time.Time) bool {
	if c.inputPending() {
		return true
	}
	return !deadline.IsZero() && time.Now().After(deadline)
}

// step advances one request through its phases. Returns false when
// interrupted; the request carries the resumable state.
func (c *Cache) step(req *Request, deadline time.Time) bool {
	for {
		switch req.Phase {
		case PhasePrune:
			if !c.phasePrune(req, deadline) {
				return false
			}
			req.Phase = PhaseLocate
		case PhaseLocate:
			c.phaseLocate(req)
			req.Phase = PhaseShift
			req.Key = KeyOf(req.Beg)
		case PhaseShift:
			if !c.phaseShift(req, deadline) {
				return false
			}
			req.Phase = PhaseDone
		default:
			return true
		}
	}
}

// phasePrune removes every indexed element whose begin lies within the
// changed region, plus orphans whose ancestors were removed.
func (c *Cache) phasePrune(req *Request, deadline time.Time) bool {
	if req.Removed == nil {
		req.Removed = make(map[*orgast.Node]bool)
	}
	removed := req.Removed

	var doomed []*orgast.Node
	interrupted := false
	visited := 0
	c.index.Ascend(entry{key: req.Key}, func(e entry) bool {
		// Guarantee progress: at least one element per tick.
		if visited > 0 && c.expired(deadline) {
			req.Key = e.key.Clone()
			interrupted = true
			return false
		}
		visited++
		n := e.node
		if n.Begin > req.End {
			return false
		}
		if req.isShielded(n) {
			return true
		}
		if n.Begin >= req.Beg {
			doomed = append(doomed, n)
			removed[n] = true
		}
		return true
	})
	if interrupted {
		c.pruneNodes(doomed, removed)
		return false
	}

	// Orphans: indexed elements whose ancestry includes a removed node.
	c.index.Scan(func(e entry) bool {
		for p := e.node.Parent; p != nil; p = p.Parent {
			if removed[p] {
				doomed = append(doomed, e.node)
				break
			}
		}
		return true
	})
	c.pruneNodes(doomed, removed)
	return true
}

func (c *Cache) pruneNodes(doomed []*orgast.Node, removed map[*orgast.Node]bool) {
	for _, n := range doomed {
		c.remove(n)
		if n.Parent != nil && !removed[n.Parent] {
			orgast.Extract(n)
		}
	}
}

func (r *Request) isShielded(n *orgast.Node) bool {
	for _, s := range r.Shielded {
		if s == n {
			return true
		}
	}
	return false
}

// phaseLocate determines the element that becomes the parent of the first
// element surviving after the change.
func (c *Cache) phaseLocate(req *Request) {
	probe := req.End + req.Offset
	if probe > c.view.PositionMax() {
		probe = c.view.PositionMax()
	}
	req.Parent = c.deepestContaining(probe, req)
}

// deepestContaining finds the innermost surviving indexed element whose
// post-shift span will contain pos. Elements before the change keep their
// positions; elements after it are consulted with the shift applied.
func (c *Cache) deepestContaining(pos int, req *Request) *orgast.Node {
	var best *orgast.Node
	c.index.Scan(func(e entry) bool {
		n := e.node
		begin, end := n.Begin, n.End
		if begin >= req.Beg {
			begin += req.Offset
			end += req.Offset
		} else if end >= req.Beg && !req.isShielded(n) {
			// Shielded wrappers absorbed the offset at submit time.
			end += req.Offset
		}
		if begin > pos {
			return false
		}
		if end > pos && (best == nil || begin >= best.Begin) {
			best = n
		}
		return true
	})
	return best
}

// phaseShift walks the index from the stashed key, shifting every
// position-bearing property by the offset and re-parenting as it goes.
func (c *Cache) phaseShift(req *Request, deadline time.Time) bool {
	var stopKey Key
	if len(c.requests) > 1 {
		stopKey = c.requests[1].Key
	}

	shiftedStructs := make(map[*orgast.ListStruct]bool)
	var pending []*orgast.Node
	interrupted := false

	visited := 0
	c.index.Ascend(entry{key: req.Key}, func(e entry) bool {
		if visited > 0 && c.expired(deadline) {
			req.Key = e.key.Clone()
			interrupted = true
			return false
		}
		visited++
		if stopKey != nil && Compare(e.key, stopKey) >= 0 {
			return false
		}
		n := e.node
		if n.Begin < req.Beg {
			// A shielded wrapper or an element preceding the change:
			// already adjusted.
			return true
		}
		pending = append(pending, n)
		return true
	})

	for _, n := range pending {
		c.shiftNode(n, req.Offset, shiftedStructs)
		c.reparent(n, req)
	}
	return !interrupted
}

// shiftNode shifts one node and its associated side state. The shared list
// structure shifts only through the top-most plain list owning it.
func (c *Cache) shiftNode(n *orgast.Node, offset int, done map[*orgast.ListStruct]bool) {
	n.Shift(offset)
	if n.Kind == orgast.NodePlainList && n.List != nil && n.List.Structure != nil {
		topmost := n.Parent == nil || n.Parent.Kind != orgast.NodeItem
		if topmost && !done[n.List.Structure] {
			n.List.Structure.Shift(offset)
			done[n.List.Structure] = true
		} else {
			done[n.List.Structure] = true
		}
	}
	if st, ok := c.objects[n]; ok {
		st.shift(offset)
	}
	// Timestamps held in planning and clock attributes are not linked as
	// children.
	if n.Planning != nil {
		for _, ts := range []*orgast.Node{n.Planning.Scheduled, n.Planning.Deadline, n.Planning.Closed} {
			if ts != nil {
				shiftSubtree(ts, offset)
			}
		}
	}
	if n.Clock != nil && n.Clock.Value != nil {
		shiftSubtree(n.Clock.Value, offset)
	}
	// Shift the node's already-parsed subtree: children not indexed
	// separately still carry positions.
	for ch := n.FirstChild; ch != nil; ch = ch.Next {
		if _, indexed := c.keys[ch]; !indexed {
			c.shiftNode(ch, offset, done)
		}
	}
	for _, sec := range n.SecondaryStrings() {
		for _, obj := range sec {
			shiftSubtree(obj, offset)
		}
	}
}

func shiftSubtree(n *orgast.Node, offset int) {
	n.Shift(offset)
	for ch := n.FirstChild; ch != nil; ch = ch.Next {
		shiftSubtree(ch, offset)
	}
}

// reparent attaches n to the most recent ancestor whose post-shift span
// still encloses it.
func (c *Cache) reparent(n *orgast.Node, req *Request) {
	p := n.Parent
	for p != nil && p.Kind != orgast.NodeDocument {
		if p.End > n.Begin && p.Begin < n.Begin {
			break
		}
		p = p.Parent
	}
	anchor := req.Parent
	if anchor != nil && anchor != n &&
		anchor.End > n.Begin && anchor.Begin < n.Begin &&
		(p == nil || p.Kind == orgast.NodeDocument || anchor.Begin >= p.Begin) {
		p = anchor
	}
	if p != nil && p != n.Parent {
		orgast.Adopt(p, n)
	}
}
