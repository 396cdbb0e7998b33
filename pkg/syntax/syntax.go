// Package syntax holds the markup's syntactic fixtures: the precompiled
// regular expressions every recognizer keys off, and the tunable knobs
// (TODO keywords, tags column, outline bound, tab width). Regexes are
// compiled once as package constants of the core; recognizers never
// re-derive them per call.
package syntax

import (
	"fmt"
	"regexp"
	"strings"
)

// Config carries the tunable pieces of the grammar. The zero value is not
// usable; construct with Default and adjust.
type Config struct {
	// TodoKeywords are the not-done keywords recognized on headlines.
	TodoKeywords []string

	// DoneKeywords are the done keywords recognized on headlines.
	DoneKeywords []string

	// TagsColumn governs tag alignment on interpret: 0 emits a single
	// space, negative right-aligns at that column from the end, positive
	// aligns from the start. Always at least one space.
	TagsColumn int

	// InlinetaskMinLevel is the outline level bound: headings at this
	// level or deeper are inline tasks, not headlines.
	InlinetaskMinLevel int

	// ArchiveTag marks archived subtrees.
	ArchiveTag string

	// CommentKeyword marks commented headlines.
	CommentKeyword string

	// FootnoteSectionHeading is the title of the dedicated footnote
	// section, compared case-sensitively.
	FootnoteSectionHeading string

	// TabWidth is the column width of a TAB character.
	TabWidth int

	// LinkSchemes are the recognized link protocols for plain and angle
	// links.
	LinkSchemes []string

	// RadioTargets are the declared radio targets; plain text matching
	// one becomes a radio link.
	RadioTargets []string
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		TodoKeywords:           []string{"TODO"},
		DoneKeywords:           []string{"DONE"},
		TagsColumn:             -77,
		InlinetaskMinLevel:     15,
		ArchiveTag:             "ARCHIVE",
		CommentKeyword:         "COMMENT",
		FootnoteSectionHeading: "Footnotes",
		TabWidth:               8,
		LinkSchemes: []string{
			"https", "http", "ftp", "file", "mailto", "news", "shell",
			"elisp", "doi", "attachment", "id",
		},
	}
}

// IsTodoKeyword reports whether word is a known TODO keyword, and whether
// it is a done keyword.
func (c *Config) IsTodoKeyword(word string) (known, done bool) {
	for _, k := range c.TodoKeywords {
		if k == word {
			return true, false
		}
	}
	for _, k := range c.DoneKeywords {
		if k == word {
			return true, true
		}
	}
	return false, false
}

// SchemeKnown reports whether scheme is a recognized link protocol.
func (c *Config) SchemeKnown(scheme string) bool {
	for _, s := range c.LinkSchemes {
		if strings.EqualFold(s, scheme) {
			return true
		}
	}
	return false
}

// Element-level regexes. All are written to match at a line start; callers
// anchor them with MatchAt against the line-start cursor.
var (
	// Outline is the headline prefix: one or more stars then blank.
	Outline = regexp.MustCompile(`(?m)^(\*+)[ \t]`)

	// Priority is the priority cookie on a headline.
	Priority = regexp.MustCompile(`(?m)^\[#([A-Za-z])\][ \t]*`)

	// Tags matches the trailing tag string of a headline.
	Tags = regexp.MustCompile(`(?m)[ \t]+(:[[:alnum:]_@#%:]+:)[ \t]*$`)

	// Item matches a plain-list bullet with its indentation. A star
	// bullet is only valid when indented, which the recognizer checks.
	Item = regexp.MustCompile(`(?m)^([ \t]*)([-+*]|[0-9]+[.)]|[A-Za-z][.)])([ \t]+|$)`)

	// Counter matches the [@n] counter cookie after a bullet.
	Counter = regexp.MustCompile(`^\[@([0-9]+|[A-Za-z])\][ \t]*`)

	// CheckboxRe matches an item checkbox.
	CheckboxRe = regexp.MustCompile(`^\[([ X-])\](?:[ \t]+|$)`)

	// ItemTag matches the "tag :: " part of a descriptive item.
	ItemTag = regexp.MustCompile(`^(.*?)[ \t]+::(?:[ \t]+|$)`)

	// Drawer matches a drawer opening or closing line.
	Drawer = regexp.MustCompile(`(?m)^[ \t]*:([A-Za-z0-9_-]+):[ \t]*$`)

	// DrawerEnd matches the drawer terminator.
	DrawerEnd = regexp.MustCompile(`(?im)^[ \t]*:END:[ \t]*$`)

	// BlockBegin matches #+BEGIN_NAME with trailing parameters.
	BlockBegin = regexp.MustCompile(`(?im)^[ \t]*#\+BEGIN_(\S+)[ \t]*(.*)$`)

	// DynamicBlockBegin matches #+BEGIN: name parameters.
	DynamicBlockBegin = regexp.MustCompile(`(?im)^[ \t]*#\+BEGIN:[ \t]*(\S+)?[ \t]*(.*)$`)

	// DynamicBlockEnd matches #+END:.
	DynamicBlockEnd = regexp.MustCompile(`(?im)^[ \t]*#\+END:?[ \t]*$`)

	// Keyword matches a #+KEY: value line.
	Keyword = regexp.MustCompile(`(?m)^[ \t]*#\+(\S+?):([ \t]+.*|[ \t]*)$`)

	// BabelCall matches a #+CALL: line.
	BabelCall = regexp.MustCompile(`(?im)^[ \t]*#\+CALL:[ \t]*(.*)$`)

	// FixedWidth matches a colon line.
	FixedWidth = regexp.MustCompile(`(?m)^[ \t]*:([ \t]|$)`)

	// Comment matches a comment line.
	Comment = regexp.MustCompile(`(?m)^[ \t]*#([ \t]|$)`)

	// HorizontalRule matches five or more dashes alone on a line.
	HorizontalRule = regexp.MustCompile(`(?m)^[ \t]*-{5,}[ \t]*$`)

	// DiarySexp matches a %%( line.
	DiarySexp = regexp.MustCompile(`(?m)^%%\(`)

	// TableLine matches any table line.
	TableLine = regexp.MustCompile(`(?m)^[ \t]*\|`)

	// TableRule matches a horizontal separator row.
	TableRule = regexp.MustCompile(`(?m)^[ \t]*\|-`)

	// FootnoteDefinition matches the [fn:LABEL] opening a definition.
	FootnoteDefinition = regexp.MustCompile(`(?m)^\[fn:([-_[:word:]]+)\][ \t]*`)

	// LatexEnvBegin matches \begin{name}.
	LatexEnvBegin = regexp.MustCompile(`(?m)^[ \t]*\\begin\{([A-Za-z0-9*]+)\}`)

	// Planning matches the start of a planning line.
	Planning = regexp.MustCompile(`(?m)^[ \t]*(SCHEDULED:|DEADLINE:|CLOSED:)`)

	// PlanningKeyword matches one keyword/timestamp pair inside a
	// planning line.
	PlanningKeyword = regexp.MustCompile(`(SCHEDULED|DEADLINE|CLOSED):[ \t]*`)

	// Clock matches the start of a clock line.
	Clock = regexp.MustCompile(`(?m)^[ \t]*CLOCK:[ \t]*`)

	// ClockDuration matches the "=> H:MM" duration of a closed clock.
	ClockDuration = regexp.MustCompile(`[ \t]+=>[ \t]+([0-9]+:[0-9]{2})[ \t]*$`)

	// NodeProperty matches a :KEY: value line inside a property drawer.
	NodeProperty = regexp.MustCompile(`(?m)^[ \t]*:(\S+?)(\+)?:(?:[ \t]+(.*?))?[ \t]*$`)

	// Affiliated matches one affiliated keyword line: key, optional
	// bracketed secondary value, primary value.
	Affiliated = regexp.MustCompile(`(?im)^[ \t]*#\+(CAPTION|DATA|HEADER|HEADERS|LABEL|NAME|PLOT|RESNAME|RESULT|RESULTS|SOURCE|SRCNAME|TBLNAME|ATTR_[-_A-Za-z0-9]+)(?:\[(.*)\])?:(?:[ \t]+(.*?))?[ \t]*$`)

	// BlankLine matches an empty or whitespace-only line.
	BlankLine = regexp.MustCompile(`(?m)^[ \t]*$`)

	// BlockEndAny matches any #+END, #+END: or #+END_NAME line.
	BlockEndAny = regexp.MustCompile(`(?im)^[ \t]*#\+END(_\S+|:)?[ \t]*$`)

	// LatexEnvEndAny matches any \end{name} line.
	LatexEnvEndAny = regexp.MustCompile(`(?m)^[ \t]*\\end\{[A-Za-z0-9*]+\}[ \t]*$`)
)

// BlockEnd returns the terminator regex for a named block.
func BlockEnd(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)^[ \t]*#\+END_` + regexp.QuoteMeta(name) + `[ \t]*$`)
}

// LatexEnvEnd returns the terminator regex for a latex environment.
func LatexEnvEnd(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^[ \t]*\\end\{` + regexp.QuoteMeta(name) + `\}[ \t]*$`)
}

// Object-level regexes.
var (
	// ObjectCandidate is the coarse scanner the object lexer uses to skip
	// to potential object starts.
	ObjectCandidate = regexp.MustCompile(
		`[_^][-{(*+.,[:alnum:]\\]` + // sub/superscript
			`|[*~=+_/][^ \t\n]` + // emphasis markers
			`|\[(?:fn:|\[|[0-9]|%)` + // footnote, link, timestamp, cookie
			`|@@` + // export snippet
			`|\{\{\{` + // macro
			`|<(?:%%\(|<|[0-9]|[A-Za-z])` + // diary/target/timestamp/angle link
			`|\$` + // latex fragment
			`|\\[A-Za-z[(\\]` + // entity, latex, line break
			`|\b(?:call|src)_` + // inline call / inline src
			`|\b[A-Za-z][-A-Za-z0-9+.]*:`) // plain link scheme

	// Emphasis borders: the characters allowed before an opening marker
	// and after a closing marker.
	emphPre  = " \t\n\r-({'\""
	emphPost = " \t\n\r-.,:!?;'\")}[\\"

	// EmphasisMarkers are the recognized markup marker characters.
	EmphasisMarkers = "*/_+=~"

	// TimestampDate matches the date core of a timestamp.
	TimestampDate = regexp.MustCompile(`^([0-9]{4})-([0-9]{2})-([0-9]{2})`)

	// TimestampTime matches the time (or time range) word of a timestamp.
	TimestampTime = regexp.MustCompile(`^([0-9]{1,2}):([0-9]{2})(?:-([0-9]{1,2}):([0-9]{2}))?$`)

	// TimestampModifier matches one repeater or warning-delay cookie.
	TimestampModifier = regexp.MustCompile(`^(\+\+|\.\+|\+|--|-)([0-9]+)([hdwmy])$`)

	// DiaryTimestamp matches a diary sexp timestamp.
	DiaryTimestamp = regexp.MustCompile(`^<%%\(([^>\n]*)\)>`)

	// LinkBracket matches [[target][description]] and [[target]].
	LinkBracket = regexp.MustCompile(`^\[\[([^][]+)\](?:\[([^][]*(?:\[[^][]*\][^][]*)*)\])?\]`)

	// LinkPlain matches a bare scheme:path link. The scheme is validated
	// against Config.LinkSchemes by the recognizer.
	LinkPlain = regexp.MustCompile(`^([A-Za-z][-A-Za-z0-9+.]*):([^\s()<>\[\]]+[^\s()<>\[\].,;!?'"])`)

	// LinkAngle matches <scheme:path>.
	LinkAngle = regexp.MustCompile(`^<([A-Za-z][-A-Za-z0-9+.]*):([^>\n]+)>`)

	// Macro matches {{{name(args)}}}.
	Macro = regexp.MustCompile(`^\{\{\{([A-Za-z][-A-Za-z0-9_]*)(\(([^\n]*?)\))?\}\}\}`)

	// ExportSnippet matches @@backend:value@@.
	ExportSnippet = regexp.MustCompile(`^@@([-A-Za-z0-9]+):(.*?)@@`)

	// RadioTargetRe matches <<<contents>>>.
	RadioTargetRe = regexp.MustCompile(`^<<<([^<>\n]+)>>>`)

	// TargetRe matches <<contents>>.
	TargetRe = regexp.MustCompile(`^<<([^<>\n]+)>>`)

	// StatisticsCookie matches [n/m] and [n%].
	StatisticsCookie = regexp.MustCompile(`^\[([0-9]*%|[0-9]*/[0-9]*)\]`)

	// FootnoteReference matches the opening of a footnote reference.
	FootnoteReference = regexp.MustCompile(`^\[fn:([-_[:word:]]*)(:?)`)

	// LineBreakRe matches \\ at end of line.
	LineBreakRe = regexp.MustCompile(`^\\\\[ \t]*\n`)

	// EntityRe matches \name with an optional {} pair.
	EntityRe = regexp.MustCompile(`^\\([A-Za-z]+)(\{\})?`)

	// LatexFragmentCommand matches \command[opt]{arg} style fragments.
	LatexFragmentCommand = regexp.MustCompile(`^\\[A-Za-z]+\*?((\[[^\][\n{}]*\])|(\{[^{}\n]*\}))*`)

	// LatexFragmentParen matches \( ... \) and \[ ... \].
	LatexFragmentParen = regexp.MustCompile(`(?s)^\\\((.*?)\\\)|^\\\[(.*?)\\\]`)

	// LatexFragmentDollar matches $...$ with non-blank borders, and $$...$$.
	LatexFragmentDollar = regexp.MustCompile(`(?s)^\$\$(.*?)\$\$|^\$([^$ \t\n](?:[^$\n]*[^$ \t\n])?)\$`)

	// InlineCall matches call_name[inside](args)[end].
	InlineCall = regexp.MustCompile(`^call_([^()\s\[\]]+)(\[[^\]\n]*\])?\(([^)\n]*)\)(\[[^\]\n]*\])?`)

	// InlineSrc matches src_lang[options]{body}.
	InlineSrc = regexp.MustCompile(`^src_([^{\s\[]+)(\[[^\]\n]*\])?\{([^{}\n]*)\}`)

	// Subscript matches _x, _{...}, _* after a word character.
	Subscript = regexp.MustCompile(`^_(?:(\{[^{}\n]*\})|(\*)|([+-]?[[:alnum:].,\\]*[[:alnum:]]))`)

	// Superscript is the ^ form of Subscript.
	Superscript = regexp.MustCompile(`^\^(?:(\{[^{}\n]*\})|(\*)|([+-]?[[:alnum:].,\\]*[[:alnum:]]))`)
)

// EmphPreChar reports whether b may precede an opening emphasis marker.
func EmphPreChar(b byte) bool {
	return strings.IndexByte(emphPre, b) >= 0
}

// EmphPostChar reports whether b may follow a closing emphasis marker.
func EmphPostChar(b byte) bool {
	return strings.IndexByte(emphPost, b) >= 0
}

// BlockKindByName maps a block name (uppercased) to its element kind name.
// Unknown names yield a special block.
var BlockKindByName = map[string]string{
	"CENTER":  "center-block",
	"COMMENT": "comment-block",
	"EXAMPLE": "example-block",
	"EXPORT":  "export-block",
	"QUOTE":   "quote-block",
	"SRC":     "src-block",
	"VERSE":   "verse-block",
}

// KeywordTranslation normalizes historical affiliated keyword aliases.
var KeywordTranslation = map[string]string{
	"DATA":    "NAME",
	"LABEL":   "NAME",
	"RESNAME": "NAME",
	"SOURCE":  "NAME",
	"SRCNAME": "NAME",
	"TBLNAME": "NAME",
	"RESULT":  "RESULTS",
	"HEADERS": "HEADER",
}

// DualKeywords may carry a bracketed secondary value.
var DualKeywords = map[string]bool{"CAPTION": true, "RESULTS": true}

// ParsedKeywords have their value parsed as a secondary string.
var ParsedKeywords = map[string]bool{"CAPTION": true}

// MultipleKeywords may occur more than once, accumulating values.
var MultipleKeywords = map[string]bool{"CAPTION": true, "HEADER": true}

// NormalizeKeyword resolves aliases and upcases key.
func NormalizeKeyword(key string) string {
	key = strings.ToUpper(key)
	if t, ok := KeywordTranslation[key]; ok {
		return t
	}
	return key
}

// IsMultipleKeyword reports whether key (normalized) accumulates values.
// All ATTR_ keys do.
func IsMultipleKeyword(key string) bool {
	return MultipleKeywords[key] || strings.HasPrefix(key, "ATTR_")
}

// IsAffiliatedKeyword reports whether a raw keyword belongs to the
// affiliated set.
func IsAffiliatedKeyword(key string) bool {
	key = strings.ToUpper(key)
	if _, ok := KeywordTranslation[key]; ok {
		return true
	}
	switch key {
	case "CAPTION", "HEADER", "NAME", "PLOT", "RESULTS":
		return true
	}
	return strings.HasPrefix(key, "ATTR_")
}

// ExpandTabs replaces TABs with spaces up to the given tab width.
func ExpandTabs(s string, tabWidth int) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		switch r {
		case '\t':
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
		case '\n':
			b.WriteRune(r)
			col = 0
		default:
			b.WriteRune(r)
			col++
		}
	}
	return b.String()
}

// FormatDuration renders minutes as H:MM.
func FormatDuration(minutes int) string {
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}
