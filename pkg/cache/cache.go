package cache

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tidwall/btree"

	"github.com/yaklabco/orgtree/pkg/buffer"
	"github.com/yaklabco/orgtree/pkg/orgast"
	"github.com/yaklabco/orgtree/pkg/parser"
	"github.com/yaklabco/orgtree/pkg/syntax"
)

// DefaultSyncDuration is the wall-clock budget of one synchronization
// tick.
const DefaultSyncDuration = 40 * time.Millisecond

// DefaultSyncIdleTime is the idle delay before a pending sync resumes.
const DefaultSyncIdleTime = 600 * time.Millisecond

// InputProbe is the editor's fast input-pending check; a sync tick yields
// as soon as it reports true.
type InputProbe func() bool

// IdleScheduler arms the resumption timer after a partial sync.
type IdleScheduler interface {
	Schedule(delay time.Duration, fn func()) (cancel func())
}

// TimerScheduler is the stock IdleScheduler over time.AfterFunc.
type TimerScheduler struct{}

// Schedule arms fn after delay and returns a cancel function.
func (TimerScheduler) Schedule(delay time.Duration, fn func()) func() {
	t := time.AfterFunc(delay, fn)
	return func() { t.Stop() }
}

// entry is one indexed element.
type entry struct {
	key  Key
	node *orgast.Node
}

// Options configures a Cache.
type Options struct {
	Config       *syntax.Config
	SyncDuration time.Duration
	SyncIdleTime time.Duration
	InputPending InputProbe
	Scheduler    IdleScheduler
	Logger       *log.Logger
}

// Cache is the buffer-local incremental element cache. It is owned by a
// single goroutine: the one applying edits to the view and issuing
// queries. No internal locking is performed.
type Cache struct {
	view   *buffer.View
	parser *parser.Parser
	cfg    *syntax.Config

	index *btree.BTreeG[entry]
	keys  map[*orgast.Node]Key

	// requests is the pending queue, kept sorted by region start.
	requests []*Request

	// warn is the sensitivity recorded by the before-change observer.
	warn sensitivity

	objects map[*orgast.Node]*objectState

	syncDuration time.Duration
	syncIdleTime time.Duration
	inputPending InputProbe
	scheduler    IdleScheduler
	cancelIdle   func()
	logger       *log.Logger
	enabled      bool

	// root is the document sentinel covering the whole buffer.
	root *orgast.Node

	// topLevelParsed is set once the top level has been indexed.
	topLevelParsed bool
}

// New creates a cache over view and registers its change observers.
func New(view *buffer.View, opts Options) *Cache {
	cfg := opts.Config
	if cfg == nil {
		cfg = syntax.Default()
	}
	c := &Cache{
		view:         view,
		cfg:          cfg,
		parser:       parser.New(view, cfg),
		keys:         make(map[*orgast.Node]Key),
		objects:      make(map[*orgast.Node]*objectState),
		syncDuration: opts.SyncDuration,
		syncIdleTime: opts.SyncIdleTime,
		inputPending: opts.InputPending,
		scheduler:    opts.Scheduler,
		logger:       opts.Logger,
		enabled:      true,
	}
	c.index = btree.NewBTreeG(func(a, b entry) bool {
		return Less(a.key, b.key)
	})
	if c.syncDuration == 0 {
		c.syncDuration = DefaultSyncDuration
	}
	if c.syncIdleTime == 0 {
		c.syncIdleTime = DefaultSyncIdleTime
	}
	if c.inputPending == nil {
		c.inputPending = func() bool { return false }
	}
	if opts.Logger == nil {
		c.logger = log.New(io.Discard)
	}
	view.OnChange(c.beforeChange, c.afterChange)
	return c
}

// Enabled reports whether cache maintenance is active.
func (c *Cache) Enabled() bool { return c.enabled }

// SetEnabled toggles cache maintenance. Disabling resets all state.
func (c *Cache) SetEnabled(on bool) {
	c.enabled = on
	if !on {
		c.Reset(true)
	}
}

// Len returns the number of indexed elements.
func (c *Cache) Len() int { return c.index.Len() }

// Reset drops cached state. With all set, pending requests are dropped
// too; otherwise they are kept so a later sync stays correct.
func (c *Cache) Reset(all bool) {
	c.index = btree.NewBTreeG(func(a, b entry) bool {
		return Less(a.key, b.key)
	})
	c.keys = make(map[*orgast.Node]Key)
	c.objects = make(map[*orgast.Node]*objectState)
	c.root = nil
	c.topLevelParsed = false
	if all {
		c.requests = nil
	}
	if c.cancelIdle != nil {
		c.cancelIdle()
		c.cancelIdle = nil
	}
}

// register indexes node under key, replacing any previous key.
func (c *Cache) register(node *orgast.Node, key Key) {
	if old, ok := c.keys[node]; ok {
		c.index.Delete(entry{key: old})
	}
	c.keys[node] = key
	c.index.Set(entry{key: key, node: node})
}

// naturalKey computes the key a freshly parsed element gets: its begin
// position, nudged past the parent for the first row of a table or the
// first item of a list so the parent sorts strictly first.
func (c *Cache) naturalKey(node *orgast.Node) Key {
	begin := node.Begin
	if p := node.Parent; p != nil && p.Begin == begin {
		if (p.Kind == orgast.NodePlainList && node.Kind == orgast.NodeItem) ||
			(p.Kind == orgast.NodeTable && node.Kind == orgast.NodeTableRow) {
			return Key{int64(begin), 1}
		}
	}
	return KeyOf(begin)
}

// remove drops node from the index and all side tables.
func (c *Cache) remove(node *orgast.Node) {
	if key, ok := c.keys[node]; ok {
		c.index.Delete(entry{key: key})
		delete(c.keys, node)
	}
	delete(c.objects, node)
}

// KeyFor returns the synthetic key of an indexed node.
func (c *Cache) KeyFor(node *orgast.Node) (Key, bool) {
	k, ok := c.keys[node]
	return k, ok
}

// ensureTopLevel parses and indexes the buffer's top level on first use.
func (c *Cache) ensureTopLevel() {
	if c.topLevelParsed {
		return
	}
	c.topLevelParsed = true

	doc := orgast.NewNode(orgast.NodeDocument)
	doc.Begin = c.view.PositionMin()
	doc.End = c.view.PositionMax()
	doc.ContentsBegin = doc.Begin
	doc.ContentsEnd = doc.End
	c.root = doc

	pos := doc.Begin
	mode := parser.ModeFirstSection
	for pos < doc.End {
		next := c.view.SkipBlankLinesForward(pos, doc.End)
		if next >= doc.End {
			break
		}
		pos = next
		el := c.parser.CurrentElement(pos, doc.End, mode, nil)
		if el == nil || el.End <= pos {
			break
		}
		orgast.Adopt(doc, el)
		c.register(el, c.naturalKey(el))
		pos = el.End
		mode = parser.ModeNone
	}
}
