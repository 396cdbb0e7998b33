// Package parser implements the two-tier recognizer for the markup: an
// element dispatcher working line-wise at the block level, and an object
// lexer working inside element contents under per-container restriction
// sets. The recursive parser assembles both tiers into a document tree.
package parser

import (
	"strings"

	"github.com/yaklabco/orgtree/pkg/buffer"
	"github.com/yaklabco/orgtree/pkg/orgast"
	"github.com/yaklabco/orgtree/pkg/syntax"
)

// Granularity bounds how deep a parse descends, coarse to fine.
type Granularity uint8

const (
	// GranularityHeadline stops at headlines and sections.
	GranularityHeadline Granularity = iota

	// GranularityGreaterElement descends into greater elements only.
	GranularityGreaterElement

	// GranularityElement parses every element but no objects.
	GranularityElement

	// GranularityObject parses everything, objects included.
	GranularityObject
)

// String returns a human-readable name for the granularity.
func (g Granularity) String() string {
	switch g {
	case GranularityHeadline:
		return "headline"
	case GranularityGreaterElement:
		return "greater-element"
	case GranularityElement:
		return "element"
	case GranularityObject:
		return "object"
	default:
		return "unknown"
	}
}

// GranularityByName resolves a granularity name.
func GranularityByName(name string) (Granularity, bool) {
	switch name {
	case "headline":
		return GranularityHeadline, true
	case "greater-element":
		return GranularityGreaterElement, true
	case "element":
		return GranularityElement, true
	case "object":
		return GranularityObject, true
	}
	return 0, false
}

// Mode hints the dispatcher about the construct expected at point.
type Mode uint8

const (
	// ModeNone applies the full dispatch order.
	ModeNone Mode = iota

	// ModeFirstSection expects the section opening the document.
	ModeFirstSection

	// ModeSection expects the section under a headline.
	ModeSection

	// ModeItem expects a list item.
	ModeItem

	// ModeNodeProperty expects a :KEY: value line.
	ModeNodeProperty

	// ModeTableRow expects a table row.
	ModeTableRow
)

// VisibilityMask is the editor's folding predicate, consulted only when a
// full-buffer parse runs in visible-only mode.
type VisibilityMask interface {
	// InvisibleAt reports whether the character at pos is hidden.
	InvisibleAt(pos int) bool

	// FindVisible returns the first visible position at or after pos.
	FindVisible(pos int) int
}

// Parser parses a buffer view into a document tree.
type Parser struct {
	View        *buffer.View
	Config      *syntax.Config
	Granularity Granularity

	// Visibility, when non-nil together with VisibleOnly, makes the
	// full-buffer parse skip invisible regions.
	Visibility  VisibilityMask
	VisibleOnly bool
}

// New creates a parser over view with the given configuration. A nil cfg
// uses the defaults.
func New(view *buffer.View, cfg *syntax.Config) *Parser {
	if cfg == nil {
		cfg = syntax.Default()
	}
	return &Parser{
		View:        view,
		Config:      cfg,
		Granularity: GranularityObject,
	}
}

// Parse parses the whole buffer and returns the document sentinel node.
func (p *Parser) Parse() *orgast.Node {
	doc := orgast.NewNode(orgast.NodeDocument)
	doc.Begin = p.View.PositionMin()
	doc.End = p.View.PositionMax()
	doc.ContentsBegin = doc.Begin
	doc.ContentsEnd = doc.End

	children := p.ParseRange(doc.Begin, doc.End, ModeFirstSection, nil)
	orgast.Adopt(doc, children...)
	return doc
}

// ParseRange parses [begin, end) into a forest of elements. The mode hint
// applies to the first element; subsequent elements derive their mode from
// the parent context.
func (p *Parser) ParseRange(begin, end int, mode Mode, structure *orgast.ListStruct) []*orgast.Node {
	var out []*orgast.Node
	pos := begin
	for pos < end {
		// Leading blank lines before the first element at this level
		// belong to no element; skip to the next line start holding
		// content. The dispatcher re-attaches trailing blanks.
		next := p.View.SkipBlankLinesForward(pos, end)
		if next >= end {
			// A trailing blank region: attribute it to the last
			// element parsed at this level, if any.
			if len(out) > 0 {
				last := out[len(out)-1]
				last.PostBlank += p.View.CountLines(pos, end) - 1
				last.End = end
			}
			break
		}
		pos = next
		if p.VisibleOnly && p.Visibility != nil && p.Visibility.InvisibleAt(pos) {
			pos = p.View.LineStartOf(p.Visibility.FindVisible(pos))
			continue
		}

		el := p.CurrentElement(pos, end, mode, structure)
		if el == nil || el.End <= pos {
			// Defensive: never loop on a recognizer that made no
			// progress.
			pos = p.View.NextLine(pos)
			continue
		}
		p.descend(el)
		out = append(out, el)
		pos = el.End
		mode = NextMode(mode, el.Kind)
	}
	return out
}

// NextMode derives the mode for the element following one of kind prev at
// the same level.
func NextMode(current Mode, prev orgast.NodeKind) Mode {
	switch current {
	case ModeItem, ModeTableRow, ModeNodeProperty:
		// Siblings inside a plain list, table or property drawer all
		// share their parent-imposed mode.
		return current
	}
	_ = prev
	return ModeNone
}

// ChildMode returns the mode imposed on the children of a container kind.
func ChildMode(kind orgast.NodeKind) Mode {
	switch kind {
	case orgast.NodeHeadline:
		return ModeSection
	case orgast.NodePlainList:
		return ModeItem
	case orgast.NodePropertyDrawer:
		return ModeNodeProperty
	case orgast.NodeTable:
		return ModeTableRow
	default:
		return ModeNone
	}
}

// descend recurses into el per granularity: greater elements get their
// contents parsed as elements, object-bearing elements get their contents
// lexed as objects.
func (p *Parser) descend(el *orgast.Node) {
	if el.ContentsBegin < 0 || el.ContentsEnd < el.ContentsBegin {
		p.parseSecondary(el)
		return
	}

	switch {
	case el.Kind.IsGreaterElement():
		if !p.descendGreater(el.Kind) {
			break
		}
		var structure *orgast.ListStruct
		switch el.Kind {
		case orgast.NodePlainList:
			structure = el.List.Structure
		case orgast.NodeItem:
			structure = el.Item.Structure
		}
		children := p.ParseRange(el.ContentsBegin, el.ContentsEnd, ChildMode(el.Kind), structure)
		orgast.Adopt(el, children...)

	case el.Kind.HasObjectContents() || el.Kind.IsRecursiveObject():
		if p.Granularity < GranularityObject {
			break
		}
		objs := p.ParseObjects(el.ContentsBegin, el.ContentsEnd, orgast.Restriction(el.Kind))
		orgast.Adopt(el, objs...)
	}
	p.parseSecondary(el)
}

// descendGreater reports whether the current granularity recurses into a
// greater element of the given kind.
func (p *Parser) descendGreater(kind orgast.NodeKind) bool {
	switch p.Granularity {
	case GranularityHeadline:
		// Sections are produced but their contents stay unparsed.
		return kind == orgast.NodeHeadline
	default:
		return true
	}
}

// parseSecondary parses the secondary strings of el (title, item tag,
// inline footnote definitions, parsed affiliated values) when granularity
// reaches objects.
func (p *Parser) parseSecondary(el *orgast.Node) {
	if p.Granularity < GranularityObject {
		return
	}
	restriction := orgast.Restriction(el.Kind)

	switch {
	case el.Headline != nil && el.Headline.Title == nil && el.Headline.RawValue != "":
		if el.Headline.TitleEnd > el.Headline.TitleBegin {
			objs := p.ParseObjects(el.Headline.TitleBegin, el.Headline.TitleEnd, restriction)
			el.Headline.Title = orgast.AdoptSecondary(el, objs)
		}
	case el.Item != nil && el.Item.RawTag != "" && el.Item.Tag == nil:
		if el.Item.TagEnd > el.Item.TagBegin {
			objs := p.ParseObjects(el.Item.TagBegin, el.Item.TagEnd, restriction)
			el.Item.Tag = orgast.AdoptSecondary(el, objs)
		}
	}

	if el.Affiliated != nil {
		for key, vs := range el.Affiliated.Entries {
			if !syntax.ParsedKeywords[strings.ToUpper(key)] {
				continue
			}
			for i := range vs {
				// The collector recorded the buffer ranges of
				// parsed values.
				if vs[i].Parsed == nil && vs[i].ValueEnd > vs[i].ValueBegin {
					objs := p.ParseObjects(vs[i].ValueBegin, vs[i].ValueEnd,
						orgast.Restriction(orgast.NodeKeyword))
					vs[i].Parsed = orgast.AdoptSecondary(el, objs)
				}
				if vs[i].ParsedSecondary == nil && vs[i].SecondaryEnd > vs[i].SecondaryBegin {
					objs := p.ParseObjects(vs[i].SecondaryBegin, vs[i].SecondaryEnd,
						orgast.Restriction(orgast.NodeKeyword))
					vs[i].ParsedSecondary = orgast.AdoptSecondary(el, objs)
				}
			}
			el.Affiliated.Entries[key] = vs
		}
	}
}
