package orgast

// KindSet is a bitset over object kinds.
type KindSet uint32

const firstObjectKind = NodeBold

// Has reports whether kind is in the set.
func (s KindSet) Has(kind NodeKind) bool {
	if kind < firstObjectKind || kind > NodeVerbatim {
		return false
	}
	return s&(1<<uint(kind-firstObjectKind)) != 0
}

// With returns the set extended with the given kinds.
func (s KindSet) With(kinds ...NodeKind) KindSet {
	for _, k := range kinds {
		s |= 1 << uint(k-firstObjectKind)
	}
	return s
}

// Without returns the set with the given kinds removed.
func (s KindSet) Without(kinds ...NodeKind) KindSet {
	for _, k := range kinds {
		s &^= 1 << uint(k-firstObjectKind)
	}
	return s
}

// Kinds returns the members of the set in kind order.
func (s KindSet) Kinds() []NodeKind {
	var out []NodeKind
	for k := firstObjectKind; k <= NodeVerbatim; k++ {
		if s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

// NewKindSet builds a set from the given kinds.
func NewKindSet(kinds ...NodeKind) KindSet {
	var s KindSet
	return s.With(kinds...)
}

// Object restriction sets. The standard set admits every object except
// table cells, which only exist inside table rows. The minimal set is the
// textual markup admissible in constructs that must not themselves become
// link targets.
var (
	allObjectsSet = func() KindSet {
		var s KindSet
		for k := firstObjectKind; k <= NodeVerbatim; k++ {
			s = s.With(k)
		}
		return s
	}()

	standardSet            = allObjectsSet.Without(NodeTableCell)
	standardSetNoLineBreak = standardSet.Without(NodeLineBreak)

	minimalSet = NewKindSet(
		NodeBold, NodeCode, NodeEntity, NodeItalic, NodeLatexFragment,
		NodeStrikeThrough, NodeSubscript, NodeSuperscript, NodeUnderline,
		NodeVerbatim,
	)
)

// objectRestrictions maps a container kind to the object kinds allowed
// directly inside it.
var objectRestrictions = map[NodeKind]KindSet{
	NodeBold:              standardSet,
	NodeItalic:            standardSet,
	NodeStrikeThrough:     standardSet,
	NodeUnderline:         standardSet,
	NodeParagraph:         standardSet,
	NodeVerseBlock:        standardSet,
	NodeFootnoteReference: standardSet,

	NodeHeadline:   standardSetNoLineBreak,
	NodeInlinetask: standardSetNoLineBreak,
	NodeItem:       standardSetNoLineBreak,

	NodeFootnoteDefinition: standardSet,

	NodeKeyword: standardSet.Without(NodeFootnoteReference),

	// Link descriptions exclude anything that is itself a link target.
	NodeLink: standardSet.Without(NodeLink, NodeRadioTarget, NodeLineBreak,
		NodeFootnoteReference),

	NodeRadioTarget: minimalSet,

	NodeSubscript:   standardSet,
	NodeSuperscript: standardSet,

	NodeTableCell: standardSet.Without(NodeInlineBabelCall, NodeLineBreak),
	NodeTableRow:  NewKindSet(NodeTableCell),

	NodePlanning: NewKindSet(NodeTimestamp),
	NodeClock:    NewKindSet(NodeTimestamp),
}

// Restriction returns the set of object kinds allowed inside a container of
// the given kind. Containers with no entry admit no objects at all.
func Restriction(kind NodeKind) KindSet {
	return objectRestrictions[kind]
}

// AllowedIn reports whether an object of kind obj may appear directly
// inside a container of kind parent.
func AllowedIn(obj, parent NodeKind) bool {
	if obj == NodeText {
		return true
	}
	return objectRestrictions[parent].Has(obj)
}
