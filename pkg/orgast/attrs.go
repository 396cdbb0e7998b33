package orgast

// TodoType distinguishes not-done from done TODO keywords.
type TodoType uint8

const (
	// TodoNone means the headline carries no TODO keyword.
	TodoNone TodoType = iota

	// TodoActive is a not-done keyword (e.g. TODO).
	TodoActive

	// TodoDone is a done keyword (e.g. DONE).
	TodoDone
)

// HeadlineAttrs holds attributes for headline and inlinetask nodes.
type HeadlineAttrs struct {
	// Level is the number of outline prefix characters.
	Level int

	// TodoKeyword is the raw TODO keyword, empty when absent.
	TodoKeyword string

	// TodoType classifies TodoKeyword.
	TodoType TodoType

	// Priority is the priority cookie letter, 0 when absent.
	Priority byte

	// Commented is true when the title starts with the comment keyword.
	Commented bool

	// Archived is true when the archive tag is present.
	Archived bool

	// FootnoteSection is true when the title equals the configured
	// footnote section heading.
	FootnoteSection bool

	// Tags are the headline tags, without colons.
	Tags []string

	// RawValue is the title text before object parsing; TitleBegin and
	// TitleEnd delimit it in the buffer.
	RawValue   string
	TitleBegin int
	TitleEnd   int

	// Title is the parsed title, a secondary string.
	Title []*Node

	// PreBlank counts blank lines between the headline line and its
	// section.
	PreBlank int
}

// ListType classifies plain lists.
type ListType uint8

const (
	// ListUnordered is a bullet list (-, +, *).
	ListUnordered ListType = iota

	// ListOrdered is a numbered list (1. or 1)).
	ListOrdered

	// ListDescriptive is an unordered list whose items carry tags.
	ListDescriptive
)

// String returns a human-readable name for the list type.
func (t ListType) String() string {
	switch t {
	case ListUnordered:
		return "unordered"
	case ListOrdered:
		return "ordered"
	case ListDescriptive:
		return "descriptive"
	default:
		return "unknown"
	}
}

// ListStructRow describes one item line discovered during list structure
// analysis. Positions are buffer offsets and must be shifted together with
// the owning list.
type ListStructRow struct {
	Begin    int
	Indent   int
	Bullet   string
	Counter  string
	Checkbox string
	Tag      string
	End      int
}

// ListStruct is the shared structure of a plain list and all its items.
// A single instance is shared by the top-most list, its sublists and their
// items; only the top-most plain list shifts it during synchronization.
type ListStruct struct {
	Rows []ListStructRow
}

// Shift offsets every row position by delta.
func (s *ListStruct) Shift(delta int) {
	for i := range s.Rows {
		s.Rows[i].Begin += delta
		s.Rows[i].End += delta
	}
}

// ListAttrs holds attributes for plain-list nodes.
type ListAttrs struct {
	Type      ListType
	Structure *ListStruct
}

// Checkbox is the state of an item checkbox.
type Checkbox uint8

const (
	// CheckboxNone means the item has no checkbox.
	CheckboxNone Checkbox = iota

	// CheckboxOff is "[ ]".
	CheckboxOff

	// CheckboxOn is "[X]".
	CheckboxOn

	// CheckboxTrans is "[-]".
	CheckboxTrans
)

// ItemAttrs holds attributes for item nodes.
type ItemAttrs struct {
	Bullet   string
	Counter  string
	Checkbox Checkbox

	// Tag is the parsed descriptive-item tag, a secondary string; RawTag
	// is its text, delimited by TagBegin and TagEnd in the buffer.
	Tag      []*Node
	RawTag   string
	TagBegin int
	TagEnd   int

	Structure *ListStruct
}

// BlockAttrs holds attributes for the block-shaped elements: src, example,
// export, verse, quote, center, comment, special and dynamic blocks.
type BlockAttrs struct {
	// Name is the block name for special and dynamic blocks
	// (#+BEGIN_NAME / #+BEGIN: NAME).
	Name string

	// Language is the source language of a src or inline-src block.
	Language string

	// Switches holds src/example switches (-n, +n, -r ...).
	Switches string

	// Parameters is the trailing header/parameter string.
	Parameters string

	// Backend is the export backend of an export block.
	Backend string

	// PreserveIndent is true when indentation inside the block must not
	// be normalized (src/example with the -i switch).
	PreserveIndent bool
}

// KeywordAttrs holds attributes for keyword and babel-call elements.
type KeywordAttrs struct {
	Key string
}

// PropertyAttrs holds attributes for node-property elements.
type PropertyAttrs struct {
	Key   string
	Value string
}

// PlanningAttrs holds the planning line timestamps. Each slot is a
// timestamp node or nil.
type PlanningAttrs struct {
	Scheduled *Node
	Deadline  *Node
	Closed    *Node
}

// ClockStatus is the completion state of a clock line.
type ClockStatus uint8

const (
	// ClockRunning is an open clock (no end time).
	ClockRunning ClockStatus = iota

	// ClockClosed is a finished clock with a duration.
	ClockClosed
)

// ClockAttrs holds attributes for clock elements.
type ClockAttrs struct {
	Value    *Node // timestamp node
	Duration string
	Status   ClockStatus
}

// TimestampType classifies timestamps.
type TimestampType uint8

const (
	// TimestampActive is <...>.
	TimestampActive TimestampType = iota

	// TimestampInactive is [...].
	TimestampInactive

	// TimestampActiveRange is <...>--<...> or <... H:M-H:M ...>.
	TimestampActiveRange

	// TimestampInactiveRange is the [...] form of a range.
	TimestampInactiveRange

	// TimestampDiary is <%%(...)>.
	TimestampDiary
)

// RepeaterType classifies timestamp repeaters.
type RepeaterType uint8

const (
	// RepeaterNone means no repeater.
	RepeaterNone RepeaterType = iota

	// RepeaterCumulate is "+".
	RepeaterCumulate

	// RepeaterCatchUp is "++".
	RepeaterCatchUp

	// RepeaterRestart is ".+".
	RepeaterRestart
)

// WarningType classifies timestamp warning delays.
type WarningType uint8

const (
	// WarningNone means no warning delay.
	WarningNone WarningType = iota

	// WarningAll is "-".
	WarningAll

	// WarningFirst is "--".
	WarningFirst
)

// TimestampAttrs holds attributes for timestamp objects.
type TimestampAttrs struct {
	Type     TimestampType
	RawValue string

	YearStart   int
	MonthStart  int
	DayStart    int
	HourStart   int // -1 when the timestamp has no time part
	MinuteStart int

	YearEnd   int
	MonthEnd  int
	DayEnd    int
	HourEnd   int
	MinuteEnd int

	RepeaterType  RepeaterType
	RepeaterValue int
	RepeaterUnit  byte // one of h d w m y

	WarningType  WarningType
	WarningValue int
	WarningUnit  byte
}

// LinkFormat is the syntactic form a link was written in.
type LinkFormat uint8

const (
	// LinkBracket is [[target][description]].
	LinkBracket LinkFormat = iota

	// LinkPlain is a bare scheme:path link.
	LinkPlain

	// LinkAngle is <scheme:path>.
	LinkAngle

	// LinkRadio is text matching a declared radio target.
	LinkRadio
)

// LinkAttrs holds attributes for link nodes.
type LinkAttrs struct {
	// LinkType is the scheme ("https", "file", ...) or one of the
	// internal types "fuzzy", "custom-id", "coderef", "radio".
	LinkType string

	// Path is the link target without the scheme.
	Path string

	// RawLink is the full target as written.
	RawLink string

	// Format records the syntactic form.
	Format LinkFormat

	// SearchOption is the "::search" suffix of file links.
	SearchOption string

	// Application is the "+application" suffix of file links.
	Application string
}

// FootnoteType distinguishes reference styles.
type FootnoteType uint8

const (
	// FootnoteStandard is [fn:label].
	FootnoteStandard FootnoteType = iota

	// FootnoteInline is [fn:label:definition] or [fn::definition].
	FootnoteInline
)

// FootnoteAttrs holds attributes for footnote references and definitions.
type FootnoteAttrs struct {
	Label string
	Type  FootnoteType

	// Definition is the inline definition, a secondary string. Nil for
	// standard references and for footnote-definition elements (whose
	// definition is their contents).
	Definition []*Node
}

// CallAttrs holds attributes for babel-call and inline-babel-call nodes.
type CallAttrs struct {
	Call         string
	InsideHeader string
	Arguments    string
	EndHeader    string
}

// InlineSrcAttrs holds attributes for inline-src-block nodes.
type InlineSrcAttrs struct {
	Language   string
	Parameters string
}

// EntityAttrs holds attributes for entity nodes.
type EntityAttrs struct {
	Name        string
	Latex       string
	HTML        string
	ASCII       string
	UTF8        string
	LatexMath   bool
	UseBrackets bool
}

// SnippetAttrs holds attributes for export-snippet nodes.
type SnippetAttrs struct {
	Backend string
}

// MacroAttrs holds attributes for macro nodes.
type MacroAttrs struct {
	Key  string
	Args []string
}

// TargetAttrs holds attributes for target and radio-target nodes.
type TargetAttrs struct {
	Value string
}

// CookieAttrs holds attributes for statistics-cookie nodes.
type CookieAttrs struct {
	// Value is the raw cookie including brackets, e.g. "[3/5]" or "[60%]".
	Value string
}

// TableAttrs holds attributes for table nodes.
type TableAttrs struct {
	// TblFm holds the #+TBLFM: formula lines following the table.
	TblFm []string
}

// TableRowAttrs holds attributes for table-row nodes.
type TableRowAttrs struct {
	// Rule is true for horizontal separator rows (|---+---|).
	Rule bool
}

// ScriptAttrs holds attributes for subscript and superscript nodes.
type ScriptAttrs struct {
	// UseBrackets is true for the braced form x_{i}.
	UseBrackets bool
}
