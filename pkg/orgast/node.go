package orgast

// Node represents a single node in the syntax tree. Nodes form a tree with
// parent/child/sibling links; positional fields are byte offsets into the
// buffer the node was parsed from, with End exclusive.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tree structure pointers. Parent is a navigation link, never an
	// ownership edge; the tree (or the cache) owns its nodes.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Universal span properties.
	Begin int
	End   int

	// Child range for container nodes. Both are -1 when the node has no
	// contents (e.g. a horizontal rule or an empty drawer).
	ContentsBegin int
	ContentsEnd   int

	// PostBlank counts trailing blank lines for elements, trailing spaces
	// for objects.
	PostBlank int

	// PostAffiliated is the position after the affiliated-metadata block
	// for elements that admit one; equal to Begin otherwise.
	PostAffiliated int

	// Affiliated holds the element's affiliated metadata, nil when absent.
	Affiliated *Affiliated

	// Raw holds the verbatim value for leaf elements, verbatim-valued
	// objects (code, verbatim, latex fragments) and plain text.
	Raw string

	// Per-family attributes; at most one is non-nil for a given kind.
	Headline  *HeadlineAttrs
	List      *ListAttrs
	Item      *ItemAttrs
	Block     *BlockAttrs
	Keyword   *KeywordAttrs
	Property  *PropertyAttrs
	Planning  *PlanningAttrs
	Clock     *ClockAttrs
	Timestamp *TimestampAttrs
	Link      *LinkAttrs
	Footnote  *FootnoteAttrs
	Call      *CallAttrs
	InlineSrc *InlineSrcAttrs
	Entity    *EntityAttrs
	Snippet   *SnippetAttrs
	Macro     *MacroAttrs
	Target    *TargetAttrs
	Cookie    *CookieAttrs
	TableRow  *TableRowAttrs
	Table     *TableAttrs
	Script    *ScriptAttrs
}

// NewNode creates a detached node of the given kind with empty spans.
func NewNode(kind NodeKind) *Node {
	return &Node{
		Kind:          kind,
		ContentsBegin: -1,
		ContentsEnd:   -1,
	}
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// Contains returns true if pos lies within the node's [Begin, End) span.
// The document sentinel contains every position.
func (n *Node) Contains(pos int) bool {
	if n.Kind == NodeDocument {
		return true
	}
	return pos >= n.Begin && pos < n.End
}

// InContents returns true if pos lies within [ContentsBegin, ContentsEnd).
func (n *Node) InContents(pos int) bool {
	return n.ContentsBegin >= 0 && pos >= n.ContentsBegin && pos < n.ContentsEnd
}

// Shift offsets the node's span fields, a headline's title range and an
// item's tag range by delta. List structures are shifted only through the
// top-most plain list owning them; the caller is responsible for calling
// ListStruct.Shift once per structure.
func (n *Node) Shift(delta int) {
	n.Begin += delta
	n.End += delta
	if n.ContentsBegin >= 0 {
		n.ContentsBegin += delta
	}
	if n.ContentsEnd >= 0 {
		n.ContentsEnd += delta
	}
	n.PostAffiliated += delta
	if n.Headline != nil {
		n.Headline.TitleBegin += delta
		n.Headline.TitleEnd += delta
	}
	if n.Item != nil && n.Item.RawTag != "" {
		n.Item.TagBegin += delta
		n.Item.TagEnd += delta
	}
}

// SecondaryStrings returns the node's secondary-string properties, if any.
// Each entry is the slice of objects stored under one of the node's
// secondary-valued properties.
func (n *Node) SecondaryStrings() [][]*Node {
	var out [][]*Node
	if n.Headline != nil && n.Headline.Title != nil {
		out = append(out, n.Headline.Title)
	}
	if n.Item != nil && n.Item.Tag != nil {
		out = append(out, n.Item.Tag)
	}
	if n.Footnote != nil && n.Footnote.Definition != nil {
		out = append(out, n.Footnote.Definition)
	}
	if n.Affiliated != nil {
		for _, vs := range n.Affiliated.Entries {
			for _, v := range vs {
				if v.Parsed != nil {
					out = append(out, v.Parsed)
				}
				if v.ParsedSecondary != nil {
					out = append(out, v.ParsedSecondary)
				}
			}
		}
	}
	return out
}

// InSecondaryString reports whether child is stored in one of n's
// secondary-string properties (as opposed to its contents).
func (n *Node) InSecondaryString(child *Node) bool {
	for _, sec := range n.SecondaryStrings() {
		for _, obj := range sec {
			if obj == child {
				return true
			}
		}
	}
	return false
}
