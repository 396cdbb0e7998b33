package orgast

//go:generate stringer -type=NodeKind -trimprefix=Node

// NodeKind classifies the type of an AST node.
type NodeKind uint16

// Node kinds cover the two syntax tiers of the markup: elements are
// block-level constructs recognized at the beginning of a line, objects are
// inline constructs embedded in element text. NodeDocument and NodeText are
// the sentinels closing the tree at the top and at the leaves.
const (
	NodeDocument NodeKind = iota

	// Greater elements: containers whose children are elements.
	NodeCenterBlock
	NodeDrawer
	NodeDynamicBlock
	NodeFootnoteDefinition
	NodeHeadline
	NodeInlinetask
	NodeItem
	NodePlainList
	NodePropertyDrawer
	NodeQuoteBlock
	NodeSection
	NodeSpecialBlock
	NodeTable

	// Leaf elements: contents are objects or opaque text.
	NodeBabelCall
	NodeClock
	NodeComment
	NodeCommentBlock
	NodeDiarySexp
	NodeExampleBlock
	NodeExportBlock
	NodeFixedWidth
	NodeHorizontalRule
	NodeKeyword
	NodeLatexEnvironment
	NodeNodeProperty
	NodeParagraph
	NodePlanning
	NodeSrcBlock
	NodeTableRow
	NodeVerseBlock

	// Objects.
	NodeBold
	NodeCode
	NodeEntity
	NodeExportSnippet
	NodeFootnoteReference
	NodeInlineBabelCall
	NodeInlineSrcBlock
	NodeItalic
	NodeLatexFragment
	NodeLineBreak
	NodeLink
	NodeMacro
	NodeRadioTarget
	NodeStatisticsCookie
	NodeStrikeThrough
	NodeSubscript
	NodeSuperscript
	NodeTableCell
	NodeTarget
	NodeTimestamp
	NodeUnderline
	NodeVerbatim

	// NodeText is a raw text fragment between objects.
	NodeText
)

var kindNames = [...]string{
	NodeDocument:           "document",
	NodeCenterBlock:        "center-block",
	NodeDrawer:             "drawer",
	NodeDynamicBlock:       "dynamic-block",
	NodeFootnoteDefinition: "footnote-definition",
	NodeHeadline:           "headline",
	NodeInlinetask:         "inlinetask",
	NodeItem:               "item",
	NodePlainList:          "plain-list",
	NodePropertyDrawer:     "property-drawer",
	NodeQuoteBlock:         "quote-block",
	NodeSection:            "section",
	NodeSpecialBlock:       "special-block",
	NodeTable:              "table",
	NodeBabelCall:          "babel-call",
	NodeClock:              "clock",
	NodeComment:            "comment",
	NodeCommentBlock:       "comment-block",
	NodeDiarySexp:          "diary-sexp",
	NodeExampleBlock:       "example-block",
	NodeExportBlock:        "export-block",
	NodeFixedWidth:         "fixed-width",
	NodeHorizontalRule:     "horizontal-rule",
	NodeKeyword:            "keyword",
	NodeLatexEnvironment:   "latex-environment",
	NodeNodeProperty:       "node-property",
	NodeParagraph:          "paragraph",
	NodePlanning:           "planning",
	NodeSrcBlock:           "src-block",
	NodeTableRow:           "table-row",
	NodeVerseBlock:         "verse-block",
	NodeBold:               "bold",
	NodeCode:               "code",
	NodeEntity:             "entity",
	NodeExportSnippet:      "export-snippet",
	NodeFootnoteReference:  "footnote-reference",
	NodeInlineBabelCall:    "inline-babel-call",
	NodeInlineSrcBlock:     "inline-src-block",
	NodeItalic:             "italic",
	NodeLatexFragment:      "latex-fragment",
	NodeLineBreak:          "line-break",
	NodeLink:               "link",
	NodeMacro:              "macro",
	NodeRadioTarget:        "radio-target",
	NodeStatisticsCookie:   "statistics-cookie",
	NodeStrikeThrough:      "strike-through",
	NodeSubscript:          "subscript",
	NodeSuperscript:        "superscript",
	NodeTableCell:          "table-cell",
	NodeTarget:             "target",
	NodeTimestamp:          "timestamp",
	NodeUnderline:          "underline",
	NodeVerbatim:           "verbatim",
	NodeText:               "plain-text",
}

// String returns the canonical lowercase name of the kind.
func (k NodeKind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// KindByName resolves a canonical kind name back to its NodeKind.
// Returns (0, false) if the name is unknown.
func KindByName(name string) (NodeKind, bool) {
	for k, n := range kindNames {
		if n == name {
			return NodeKind(k), true
		}
	}
	return 0, false
}

// IsGreaterElement returns true for container elements whose children are
// themselves elements.
func (k NodeKind) IsGreaterElement() bool {
	return k >= NodeCenterBlock && k <= NodeTable
}

// IsElement returns true for block-level kinds, greater or leaf.
func (k NodeKind) IsElement() bool {
	return k >= NodeCenterBlock && k <= NodeVerseBlock
}

// IsObject returns true for inline kinds, including plain text.
func (k NodeKind) IsObject() bool {
	return k >= NodeBold && k <= NodeText
}

// IsRecursiveObject returns true for objects whose contents are parsed as
// objects rather than kept verbatim.
func (k NodeKind) IsRecursiveObject() bool {
	switch k {
	case NodeBold, NodeItalic, NodeLink, NodeSubscript, NodeRadioTarget,
		NodeStrikeThrough, NodeSuperscript, NodeTableCell, NodeUnderline:
		return true
	default:
		return false
	}
}

// HasObjectContents returns true for elements whose contents are parsed as
// objects (as opposed to child elements or opaque text).
func (k NodeKind) HasObjectContents() bool {
	switch k {
	case NodeParagraph, NodeTableRow, NodeVerseBlock:
		return true
	default:
		return false
	}
}

// AdmitsAffiliated returns true for element kinds that may carry affiliated
// metadata lines. Headlines, sections and the constructs only valid inside a
// specific parent never do.
func (k NodeKind) AdmitsAffiliated() bool {
	switch k {
	case NodeHeadline, NodeSection, NodeItem, NodeTableRow, NodeNodeProperty,
		NodeInlinetask, NodePlanning, NodePropertyDrawer, NodeClock:
		return false
	default:
		return k.IsElement()
	}
}
