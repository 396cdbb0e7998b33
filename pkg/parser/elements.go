package parser

import (
	"regexp"
	"strings"

	"github.com/yaklabco/orgtree/pkg/orgast"
	"github.com/yaklabco/orgtree/pkg/syntax"
)

// trailingBlanks consumes the blank lines following rawEnd and returns the
// position after them together with their count.
func (p *Parser) trailingBlanks(rawEnd, limit int) (int, int) {
	v := p.View
	pos := rawEnd
	count := 0
	for pos < limit {
		le := v.LineEndOf(pos)
		if le > limit {
			le = limit
		}
		if strings.TrimSpace(v.Substring(pos, le)) != "" {
			break
		}
		count++
		if le >= limit {
			pos = limit
			break
		}
		pos = le + 1
	}
	return pos, count
}

// contentsBounds finds the end of the non-blank contents within
// [from, boundary) and the number of blank lines between it and boundary.
func (p *Parser) contentsBounds(from, boundary int) (contentsEnd, postBlank int) {
	v := p.View
	pos := from
	contentsEnd = from
	blanks := 0
	for pos < boundary {
		le := v.LineEndOf(pos)
		if le > boundary {
			le = boundary
		}
		if strings.TrimSpace(v.Substring(pos, le)) != "" {
			if le < boundary {
				contentsEnd = le + 1
			} else {
				contentsEnd = boundary
			}
			blanks = 0
		} else {
			blanks++
		}
		if le >= boundary {
			break
		}
		pos = le + 1
	}
	return contentsEnd, blanks
}

// newElement builds a node with the universal element fields set.
func newElement(kind orgast.NodeKind, begin, postAff int, aff *orgast.Affiliated) *orgast.Node {
	n := orgast.NewNode(kind)
	n.Begin = begin
	n.PostAffiliated = postAff
	n.Affiliated = aff
	return n
}

// parseHeadline recognizes a headline starting at pos with the given
// outline level.
func (p *Parser) parseHeadline(pos, limit, level int) *orgast.Node {
	v := p.View
	cfg := p.Config

	n := newElement(orgast.NodeHeadline, pos, pos, nil)
	attrs := &orgast.HeadlineAttrs{Level: level}
	n.Headline = attrs

	lineEnd := v.LineEndOf(pos)
	cur := v.SkipWhitespaceForward(pos+level, lineEnd)

	// TODO keyword.
	wordEnd := cur
	for wordEnd < lineEnd && v.CharAt(wordEnd) != ' ' && v.CharAt(wordEnd) != '\t' {
		wordEnd++
	}
	if word := v.Substring(cur, wordEnd); word != "" {
		if known, done := cfg.IsTodoKeyword(word); known {
			attrs.TodoKeyword = word
			if done {
				attrs.TodoType = orgast.TodoDone
			} else {
				attrs.TodoType = orgast.TodoActive
			}
			cur = v.SkipWhitespaceForward(wordEnd, lineEnd)
		}
	}

	// Priority cookie.
	if m := v.MatchAt(syntax.Priority, cur, lineEnd); m != nil {
		attrs.Priority = v.CharAt(m[2])
		cur = m[1]
	}

	// Comment keyword.
	ck := cfg.CommentKeyword
	if strings.HasPrefix(v.Substring(cur, lineEnd), ck) {
		after := cur + len(ck)
		if after == lineEnd || v.CharAt(after) == ' ' || v.CharAt(after) == '\t' {
			attrs.Commented = true
			cur = v.SkipWhitespaceForward(after, lineEnd)
		}
	}

	// Tags.
	titleEnd := lineEnd
	if m := v.SearchForward(syntax.Tags, cur, lineEnd); m != nil && m[1] == lineEnd {
		raw := v.Substring(m[2]+1, m[3]-1)
		attrs.Tags = strings.Split(raw, ":")
		titleEnd = m[0]
	}
	for _, t := range attrs.Tags {
		if t == cfg.ArchiveTag {
			attrs.Archived = true
		}
	}

	// Title.
	for titleEnd > cur && (v.CharAt(titleEnd-1) == ' ' || v.CharAt(titleEnd-1) == '\t') {
		titleEnd--
	}
	attrs.TitleBegin = cur
	attrs.TitleEnd = titleEnd
	attrs.RawValue = v.Substring(cur, titleEnd)
	attrs.FootnoteSection = attrs.RawValue == cfg.FootnoteSectionHeading

	// Subtree extent: up to the next heading at the same or a shallower
	// level.
	boundary := p.nextHeading(v.NextLine(pos), limit, level)

	contentsBegin := v.NextLine(pos)
	if contentsBegin >= boundary {
		n.End, n.PostBlank = boundary, 0
		return n
	}
	firstContent := v.SkipBlankLinesForward(contentsBegin, boundary)
	if firstContent >= boundary {
		// Only blank lines below the headline.
		n.End = boundary
		_, n.PostBlank = p.trailingBlanks(contentsBegin, boundary)
		return n
	}
	_, attrs.PreBlank = p.trailingBlanks(contentsBegin, firstContent)
	n.ContentsBegin = firstContent
	n.ContentsEnd, n.PostBlank = p.contentsBounds(firstContent, boundary)
	n.End = boundary
	return n
}

// nextHeading returns the position of the next heading at level maxLevel or
// shallower, or limit. A maxLevel of 0 accepts any heading level below the
// inlinetask bound.
func (p *Parser) nextHeading(pos, limit, maxLevel int) int {
	v := p.View
	for pos < limit {
		m := v.SearchForward(syntax.Outline, pos, limit)
		if m == nil {
			return limit
		}
		level := m[3] - m[2]
		if level < p.Config.InlinetaskMinLevel && (maxLevel == 0 || level <= maxLevel) {
			return m[0]
		}
		pos = v.NextLine(m[0])
	}
	return limit
}

// parseInlinetask recognizes an inline task: a heading at or beyond the
// outline bound, optionally closed by an END line of the same depth.
func (p *Parser) parseInlinetask(pos, limit, level int) *orgast.Node {
	v := p.View

	// Reuse the headline recognizer for the first line, bounded to it.
	lineLimit := v.NextLine(pos)
	n := p.parseHeadline(pos, lineLimit, level)
	n.Kind = orgast.NodeInlinetask
	n.ContentsBegin, n.ContentsEnd = -1, -1

	// Look for the closing END task before the next true heading.
	boundary := p.nextHeading(lineLimit, limit, 0)
	cur := lineLimit
	for cur < boundary {
		m := v.MatchAt(syntax.Outline, cur, boundary)
		if m != nil && m[3]-m[2] >= p.Config.InlinetaskMinLevel {
			rest := strings.TrimSpace(v.Substring(m[1], v.LineEndOf(cur)))
			if rest == "END" {
				n.ContentsBegin = lineLimit
				n.ContentsEnd = cur
				rawEnd := v.NextLine(cur)
				n.End, n.PostBlank = p.trailingBlanks(rawEnd, limit)
				return n
			}
			break
		}
		cur = v.NextLine(cur)
	}

	// Degenerate inline task: the single heading line.
	n.End, n.PostBlank = p.trailingBlanks(lineLimit, limit)
	return n
}

// parseSection recognizes the element run between pos and the next heading.
func (p *Parser) parseSection(pos, limit int) *orgast.Node {
	n := newElement(orgast.NodeSection, pos, pos, nil)
	boundary := p.nextHeading(pos, limit, 0)
	n.ContentsBegin = pos
	n.ContentsEnd, n.PostBlank = p.contentsBounds(pos, boundary)
	n.End = boundary
	return n
}

// parseParagraph recognizes a paragraph: the default element. It extends
// until a blank line or a line opening a well-formed different element.
func (p *Parser) parseParagraph(pos, limit, begin int, aff *orgast.Affiliated) *orgast.Node {
	v := p.View
	n := newElement(orgast.NodeParagraph, begin, pos, aff)
	n.ContentsBegin = pos

	cur := v.NextLine(pos)
	for cur < limit {
		if v.IsBlankLine(cur) {
			break
		}
		if p.interruptsParagraph(cur, limit) {
			break
		}
		cur = v.NextLine(cur)
	}

	// Contents stop before the trailing newline of the last line.
	contentsEnd := cur
	if contentsEnd > pos && v.CharAt(contentsEnd-1) == '\n' {
		contentsEnd--
	}
	n.ContentsEnd = contentsEnd
	n.End, n.PostBlank = p.trailingBlanks(cur, limit)
	return n
}

// interruptsParagraph reports whether the line at pos terminates a
// paragraph in progress. Ill-formed blocks, drawers and latex environments
// do not: they stay inside the paragraph.
func (p *Parser) interruptsParagraph(pos, limit int) bool {
	v := p.View
	switch {
	case v.MatchAt(syntax.Outline, pos, limit) != nil:
		return true
	case p.atItemLine(pos, limit):
		return true
	case v.MatchAt(syntax.TableLine, pos, limit) != nil:
		return true
	case v.MatchAt(syntax.FixedWidth, pos, limit) != nil:
		return true
	case v.MatchAt(syntax.HorizontalRule, pos, limit) != nil:
		return true
	case v.MatchAt(syntax.DiarySexp, pos, limit) != nil:
		return true
	case v.MatchAt(syntax.FootnoteDefinition, pos, limit) != nil:
		return true
	case v.MatchAt(syntax.Comment, pos, limit) != nil:
		return true
	}
	if m := v.MatchAt(syntax.BlockBegin, pos, limit); m != nil {
		name := v.Substring(m[2], m[3])
		return v.SearchForward(syntax.BlockEnd(name), v.NextLine(pos), limit) != nil
	}
	if v.MatchAt(syntax.DynamicBlockBegin, pos, limit) != nil {
		return v.SearchForward(syntax.DynamicBlockEnd, v.NextLine(pos), limit) != nil
	}
	if m := v.MatchAt(syntax.Drawer, pos, limit); m != nil {
		return v.SearchForward(syntax.DrawerEnd, v.NextLine(pos), limit) != nil
	}
	if m := v.MatchAt(syntax.LatexEnvBegin, pos, limit); m != nil {
		name := v.Substring(m[2], m[3])
		return v.SearchForward(syntax.LatexEnvEnd(name), pos, limit) != nil
	}
	// Keywords, babel calls and affiliated lines all start with #+.
	if v.MatchAt(syntax.Keyword, pos, limit) != nil {
		return true
	}
	return false
}

// blockKind resolves a #+BEGIN_NAME to its element kind. Unknown names are
// special blocks.
func blockKind(name string) orgast.NodeKind {
	switch strings.ToUpper(name) {
	case "CENTER":
		return orgast.NodeCenterBlock
	case "COMMENT":
		return orgast.NodeCommentBlock
	case "EXAMPLE":
		return orgast.NodeExampleBlock
	case "EXPORT":
		return orgast.NodeExportBlock
	case "QUOTE":
		return orgast.NodeQuoteBlock
	case "SRC":
		return orgast.NodeSrcBlock
	case "VERSE":
		return orgast.NodeVerseBlock
	default:
		return orgast.NodeSpecialBlock
	}
}

// parseBlock recognizes any #+BEGIN_NAME ... #+END_NAME block. Returns nil
// when the closing line is missing, yielding to the paragraph recognizer.
func (p *Parser) parseBlock(pos, limit int, name, params string, aff *orgast.Affiliated, begin int) *orgast.Node {
	v := p.View
	endRe := syntax.BlockEnd(name)
	m := v.SearchForward(endRe, v.NextLine(pos), limit)
	if m == nil {
		return nil
	}
	endLine := v.LineStartOf(m[0])

	kind := blockKind(name)
	n := newElement(kind, begin, pos, aff)
	contentsBegin := v.NextLine(pos)
	contentsEnd := endLine
	rawEnd := v.NextLine(m[0])
	n.End, n.PostBlank = p.trailingBlanks(rawEnd, limit)

	attrs := &orgast.BlockAttrs{}
	n.Block = attrs

	switch kind {
	case orgast.NodeCenterBlock, orgast.NodeQuoteBlock, orgast.NodeSpecialBlock:
		if kind == orgast.NodeSpecialBlock {
			attrs.Name = name
			attrs.Parameters = strings.TrimSpace(params)
		}
		if contentsBegin < contentsEnd {
			n.ContentsBegin = contentsBegin
			n.ContentsEnd = contentsEnd
		}
	case orgast.NodeVerseBlock:
		if contentsBegin < contentsEnd {
			n.ContentsBegin = contentsBegin
			n.ContentsEnd = contentsEnd
		}
	case orgast.NodeSrcBlock:
		lang, switches, rest := splitSrcHeader(params)
		attrs.Language = lang
		attrs.Switches = switches
		attrs.Parameters = rest
		attrs.PreserveIndent = strings.Contains(" "+switches+" ", " -i ")
		n.Raw = v.Substring(contentsBegin, contentsEnd)
	case orgast.NodeExportBlock:
		fields := strings.Fields(params)
		if len(fields) > 0 {
			attrs.Backend = fields[0]
		}
		n.Raw = v.Substring(contentsBegin, contentsEnd)
	case orgast.NodeExampleBlock:
		attrs.Switches = strings.TrimSpace(params)
		attrs.PreserveIndent = strings.Contains(" "+attrs.Switches+" ", " -i ")
		n.Raw = v.Substring(contentsBegin, contentsEnd)
	case orgast.NodeCommentBlock:
		n.Raw = v.Substring(contentsBegin, contentsEnd)
	}
	return n
}

// splitSrcHeader splits a src block header into language, switches and
// remaining parameters.
func splitSrcHeader(s string) (lang, switches, rest string) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "", "", ""
	}
	lang = fields[0]
	i := 1
	var sw []string
	for i < len(fields) {
		f := fields[i]
		if len(f) >= 2 && (f[0] == '-' || f[0] == '+') && f[1] >= 'a' && f[1] <= 'z' {
			sw = append(sw, f)
			// A switch may carry one quoted argument.
			if i+1 < len(fields) && strings.HasPrefix(fields[i+1], `"`) {
				sw = append(sw, fields[i+1])
				i++
			}
			i++
			continue
		}
		break
	}
	return lang, strings.Join(sw, " "), strings.Join(fields[i:], " ")
}

// parseDynamicBlock recognizes #+BEGIN: name params ... #+END:.
func (p *Parser) parseDynamicBlock(pos, limit int, aff *orgast.Affiliated, begin int) *orgast.Node {
	v := p.View
	m := v.MatchAt(syntax.DynamicBlockBegin, pos, limit)
	if m == nil {
		return nil
	}
	end := v.SearchForward(syntax.DynamicBlockEnd, v.NextLine(pos), limit)
	if end == nil {
		return nil
	}
	n := newElement(orgast.NodeDynamicBlock, begin, pos, aff)
	attrs := &orgast.BlockAttrs{}
	if m[2] >= 0 {
		attrs.Name = v.Substring(m[2], m[3])
	}
	attrs.Parameters = strings.TrimSpace(v.Substring(m[4], m[5]))
	n.Block = attrs

	contentsBegin := v.NextLine(pos)
	contentsEnd := v.LineStartOf(end[0])
	if contentsBegin < contentsEnd {
		n.ContentsBegin = contentsBegin
		n.ContentsEnd = contentsEnd
	}
	n.End, n.PostBlank = p.trailingBlanks(v.NextLine(end[0]), limit)
	return n
}

// parseDrawer recognizes :NAME: ... :END:. A :PROPERTIES: drawer becomes a
// property drawer whose children are node properties.
func (p *Parser) parseDrawer(pos, limit int, name string, aff *orgast.Affiliated, begin int) *orgast.Node {
	v := p.View
	end := v.SearchForward(syntax.DrawerEnd, v.NextLine(pos), p.nextHeading(pos, limit, 0))
	if end == nil {
		return nil
	}
	kind := orgast.NodeDrawer
	if strings.EqualFold(name, "PROPERTIES") {
		kind = orgast.NodePropertyDrawer
	}
	n := newElement(kind, begin, pos, aff)
	n.Raw = name

	contentsBegin := v.NextLine(pos)
	contentsEnd := v.LineStartOf(end[0])
	if contentsBegin < contentsEnd {
		n.ContentsBegin = contentsBegin
		n.ContentsEnd = contentsEnd
	}
	n.End, n.PostBlank = p.trailingBlanks(v.NextLine(end[0]), limit)
	return n
}

// parseNodeProperty recognizes one :KEY: value line in a property drawer.
func (p *Parser) parseNodeProperty(pos, limit int) *orgast.Node {
	v := p.View
	m := v.MatchAt(syntax.NodeProperty, pos, limit)
	if m == nil {
		return nil
	}
	n := newElement(orgast.NodeNodeProperty, pos, pos, nil)
	key := v.Substring(m[2], m[3])
	if m[4] >= 0 {
		key += v.Substring(m[4], m[5])
	}
	value := ""
	if m[6] >= 0 {
		value = v.Substring(m[6], m[7])
	}
	n.Property = &orgast.PropertyAttrs{Key: key, Value: value}
	n.End, n.PostBlank = p.trailingBlanks(v.NextLine(pos), limit)
	return n
}

// parseKeyword recognizes a #+KEY: value line.
func (p *Parser) parseKeyword(pos, limit int, aff *orgast.Affiliated, begin int) *orgast.Node {
	v := p.View
	m := v.MatchAt(syntax.Keyword, pos, limit)
	if m == nil {
		m = v.MatchAt(syntax.Affiliated, pos, limit)
		if m == nil {
			return p.parseParagraph(pos, limit, begin, aff)
		}
	}
	n := newElement(orgast.NodeKeyword, begin, pos, aff)
	n.Keyword = &orgast.KeywordAttrs{Key: strings.ToUpper(v.Substring(m[2], m[3]))}
	rest := strings.TrimSpace(v.Substring(m[3], v.LineEndOf(pos)))
	n.Raw = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
	n.End, n.PostBlank = p.trailingBlanks(v.NextLine(pos), limit)
	return n
}

// parseBabelCall recognizes a #+CALL: line.
func (p *Parser) parseBabelCall(pos, limit int, aff *orgast.Affiliated, begin int) *orgast.Node {
	v := p.View
	m := v.MatchAt(syntax.BabelCall, pos, limit)
	if m == nil {
		return nil
	}
	n := newElement(orgast.NodeBabelCall, begin, pos, aff)
	value := v.Substring(m[2], m[3])
	n.Raw = strings.TrimSpace(value)
	n.Call = parseCallSpec(n.Raw)
	n.End, n.PostBlank = p.trailingBlanks(v.NextLine(pos), limit)
	return n
}

// parseCallSpec splits "name[inside](args)[end]" into its components.
func parseCallSpec(s string) *orgast.CallAttrs {
	attrs := &orgast.CallAttrs{}
	rest := s
	if i := strings.IndexAny(rest, "[("); i >= 0 {
		attrs.Call = rest[:i]
		rest = rest[i:]
	} else {
		attrs.Call = rest
		return attrs
	}
	if strings.HasPrefix(rest, "[") {
		if j := strings.Index(rest, "]"); j >= 0 {
			attrs.InsideHeader = rest[1:j]
			rest = rest[j+1:]
		}
	}
	if strings.HasPrefix(rest, "(") {
		if j := strings.Index(rest, ")"); j >= 0 {
			attrs.Arguments = rest[1:j]
			rest = rest[j+1:]
		}
	}
	if strings.HasPrefix(rest, "[") {
		if j := strings.Index(rest, "]"); j >= 0 {
			attrs.EndHeader = rest[1:j]
		}
	}
	return attrs
}

// parseComment recognizes a run of consecutive comment lines.
func (p *Parser) parseComment(pos, limit int, aff *orgast.Affiliated, begin int) *orgast.Node {
	return p.parseLineRun(orgast.NodeComment, syntax.Comment, pos, limit, aff, begin, stripCommentMarker)
}

// parseFixedWidth recognizes a run of consecutive colon lines.
func (p *Parser) parseFixedWidth(pos, limit int, aff *orgast.Affiliated, begin int) *orgast.Node {
	return p.parseLineRun(orgast.NodeFixedWidth, syntax.FixedWidth, pos, limit, aff, begin, stripColonMarker)
}

func stripCommentMarker(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	trimmed = strings.TrimPrefix(trimmed, "#")
	return strings.TrimPrefix(trimmed, " ")
}

func stripColonMarker(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	trimmed = strings.TrimPrefix(trimmed, ":")
	return strings.TrimPrefix(trimmed, " ")
}

// parseLineRun collects the consecutive lines matching rx into a leaf
// element whose value is the concatenation of the stripped lines.
func (p *Parser) parseLineRun(kind orgast.NodeKind, rx *regexp.Regexp, pos, limit int, aff *orgast.Affiliated, begin int, strip func(string) string) *orgast.Node {
	v := p.View
	var lines []string
	cur := pos
	for cur < limit {
		if v.MatchAt(rx, cur, limit) == nil {
			break
		}
		lines = append(lines, strip(v.Line(cur)))
		cur = v.NextLine(cur)
	}
	n := newElement(kind, begin, pos, aff)
	n.Raw = strings.Join(lines, "\n")
	n.End, n.PostBlank = p.trailingBlanks(cur, limit)
	return n
}

// parseLatexEnvironment recognizes \begin{name} ... \end{name}. Returns
// nil when unclosed.
func (p *Parser) parseLatexEnvironment(pos, limit int, aff *orgast.Affiliated, begin int) *orgast.Node {
	v := p.View
	m := v.MatchAt(syntax.LatexEnvBegin, pos, limit)
	if m == nil {
		return nil
	}
	name := v.Substring(m[2], m[3])
	end := v.SearchForward(syntax.LatexEnvEnd(name), pos, limit)
	if end == nil {
		return nil
	}
	n := newElement(orgast.NodeLatexEnvironment, begin, pos, aff)
	rawEnd := v.NextLine(end[0])
	n.Raw = v.Substring(pos, rawEnd)
	n.End, n.PostBlank = p.trailingBlanks(rawEnd, limit)
	return n
}

// parseFootnoteDefinition recognizes [fn:LABEL] followed by its contents,
// which extend to the next definition, the next headline, or the second of
// two consecutive blank lines.
func (p *Parser) parseFootnoteDefinition(pos, limit int, aff *orgast.Affiliated, begin int) *orgast.Node {
	v := p.View
	m := v.MatchAt(syntax.FootnoteDefinition, pos, limit)
	if m == nil {
		return nil
	}
	n := newElement(orgast.NodeFootnoteDefinition, begin, pos, aff)
	n.Footnote = &orgast.FootnoteAttrs{Label: v.Substring(m[2], m[3]), Type: orgast.FootnoteStandard}

	boundary := limit
	blanks := 0
	cur := v.NextLine(pos)
	for cur < limit {
		if v.IsBlankLine(cur) {
			blanks++
			if blanks >= 2 {
				boundary = cur
				break
			}
		} else {
			blanks = 0
			if v.MatchAt(syntax.FootnoteDefinition, cur, limit) != nil ||
				v.MatchAt(syntax.Outline, cur, limit) != nil {
				boundary = cur
				break
			}
		}
		cur = v.NextLine(cur)
	}

	contentsBegin := m[1]
	contentsEnd, postBlank := p.contentsBounds(contentsBegin, boundary)
	if contentsEnd > contentsBegin {
		n.ContentsBegin = contentsBegin
		n.ContentsEnd = contentsEnd
	}
	n.PostBlank = postBlank
	n.End = boundary
	return n
}

// parseHorizontalRule recognizes a dashes-only line.
func (p *Parser) parseHorizontalRule(pos, limit int, aff *orgast.Affiliated, begin int) *orgast.Node {
	n := newElement(orgast.NodeHorizontalRule, begin, pos, aff)
	n.End, n.PostBlank = p.trailingBlanks(p.View.NextLine(pos), limit)
	return n
}

// parseDiarySexp recognizes a %%(...) line.
func (p *Parser) parseDiarySexp(pos, limit int, aff *orgast.Affiliated, begin int) *orgast.Node {
	v := p.View
	n := newElement(orgast.NodeDiarySexp, begin, pos, aff)
	n.Raw = v.Line(pos)
	n.End, n.PostBlank = p.trailingBlanks(v.NextLine(pos), limit)
	return n
}

// parseClock recognizes a CLOCK: line with its timestamp and optional
// duration.
func (p *Parser) parseClock(pos, limit int) *orgast.Node {
	v := p.View
	m := v.MatchAt(syntax.Clock, pos, limit)
	if m == nil {
		return nil
	}
	n := newElement(orgast.NodeClock, pos, pos, nil)
	attrs := &orgast.ClockAttrs{Status: orgast.ClockRunning}
	n.Clock = attrs

	lineEnd := v.LineEndOf(pos)
	if ts := p.parseTimestampAt(m[1], lineEnd); ts != nil {
		ts.Parent = n
		attrs.Value = ts
	}
	if dm := syntax.ClockDuration.FindStringSubmatch(v.Line(pos)); dm != nil {
		attrs.Duration = dm[1]
		attrs.Status = orgast.ClockClosed
	}
	n.End, n.PostBlank = p.trailingBlanks(v.NextLine(pos), limit)
	return n
}

// parsePlanning recognizes a SCHEDULED/DEADLINE/CLOSED line.
func (p *Parser) parsePlanning(pos, limit int) *orgast.Node {
	v := p.View
	lineEnd := v.LineEndOf(pos)
	attrs := &orgast.PlanningAttrs{}
	n := newElement(orgast.NodePlanning, pos, pos, nil)
	n.Planning = attrs

	found := false
	cur := pos
	for cur < lineEnd {
		m := v.SearchForward(syntax.PlanningKeyword, cur, lineEnd)
		if m == nil {
			break
		}
		ts := p.parseTimestampAt(m[1], lineEnd)
		if ts == nil {
			cur = m[1]
			continue
		}
		ts.Parent = n
		switch v.Substring(m[2], m[3]) {
		case "SCHEDULED":
			attrs.Scheduled = ts
		case "DEADLINE":
			attrs.Deadline = ts
		case "CLOSED":
			attrs.Closed = ts
		}
		found = true
		cur = ts.End
	}
	if !found {
		return nil
	}
	n.End, n.PostBlank = p.trailingBlanks(v.NextLine(pos), limit)
	return n
}
