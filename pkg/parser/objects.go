package parser

import (
	"strings"

	"github.com/yaklabco/orgtree/pkg/orgast"
	"github.com/yaklabco/orgtree/pkg/syntax"
)

// ParseObjects lexes [begin, end) into a sequence of objects and plain-text
// fragments, honoring the restriction set. The nodes are returned detached;
// callers adopt them into their container.
func (p *Parser) ParseObjects(begin, end int, restriction orgast.KindSet) []*orgast.Node {
	if restriction.Has(orgast.NodeTableCell) {
		return p.parseCells(begin, end)
	}

	v := p.View
	var out []*orgast.Node
	textStart := begin
	pos := begin

	flush := func(upto int) {
		if upto > textStart {
			t := orgast.NewNode(orgast.NodeText)
			t.Begin = textStart
			t.End = upto
			t.Raw = syntax.ExpandTabs(v.Substring(textStart, upto), p.Config.TabWidth)
			out = append(out, t)
		}
	}

	for pos < end {
		m := v.SearchForward(syntax.ObjectCandidate, pos, end)
		cand := end
		if m != nil {
			cand = m[0]
		}

		// A pending radio-target match is preferred only when every
		// regular candidate before it has been exhausted.
		if rIdx, rLen := p.findRadio(pos, cand, restriction); rIdx >= 0 {
			link := p.radioLink(rIdx, rLen, end)
			flush(rIdx)
			out = append(out, link)
			textStart = link.End
			pos = link.End
			continue
		}

		if m == nil {
			break
		}
		obj := p.tryObjectAt(cand, end, restriction)
		if obj == nil {
			pos = cand + 1
			continue
		}
		flush(obj.Begin)
		out = append(out, obj)
		textStart = obj.End
		pos = obj.End
	}
	flush(end)
	return out
}

// consumeObjectBlanks extends an object over its trailing spaces and tabs,
// recording their count as PostBlank. The newline consumed by the enclosing
// element is never included.
func (p *Parser) consumeObjectBlanks(n *orgast.Node, limit int) {
	v := p.View
	ws := 0
	for n.End+ws < limit {
		c := v.CharAt(n.End + ws)
		if c != ' ' && c != '\t' {
			break
		}
		ws++
	}
	n.PostBlank = ws
	n.End += ws
}

// tryObjectAt dispatches on the candidate character at pos to the specific
// recognizers, filtered by the restriction set. Returns nil when every
// recognizer declines.
func (p *Parser) tryObjectAt(pos, end int, restriction orgast.KindSet) *orgast.Node {
	v := p.View
	allowed := func(k orgast.NodeKind) bool { return restriction.Has(k) }

	switch c := v.CharAt(pos); c {
	case '_', '^':
		if allowed(orgast.NodeSubscript) || allowed(orgast.NodeSuperscript) {
			if n := p.parseScript(pos, end, c == '^', restriction); n != nil {
				kind := orgast.NodeSubscript
				if c == '^' {
					kind = orgast.NodeSuperscript
				}
				if allowed(kind) {
					return n
				}
			}
		}
		if c == '_' && allowed(orgast.NodeUnderline) {
			return p.parseEmphasis(pos, end, restriction)
		}
	case '*', '/', '+', '=', '~':
		return p.parseEmphasis(pos, end, restriction)
	case '[':
		rest := v.Substring(pos, min(pos+4, end))
		switch {
		case strings.HasPrefix(rest, "[fn:"):
			if allowed(orgast.NodeFootnoteReference) {
				return p.parseFootnoteReference(pos, end)
			}
		case strings.HasPrefix(rest, "[["):
			if allowed(orgast.NodeLink) {
				return p.parseBracketLink(pos, end)
			}
		default:
			if allowed(orgast.NodeTimestamp) {
				if n := p.parseTimestampAt(pos, end); n != nil {
					return n
				}
			}
			if allowed(orgast.NodeStatisticsCookie) {
				return p.parseStatisticsCookie(pos, end)
			}
		}
	case '@':
		if allowed(orgast.NodeExportSnippet) {
			return p.parseExportSnippet(pos, end)
		}
	case '{':
		if allowed(orgast.NodeMacro) {
			return p.parseMacro(pos, end)
		}
	case '<':
		next := v.CharAt(pos + 1)
		switch {
		case next == '%':
			if allowed(orgast.NodeTimestamp) {
				return p.parseTimestampAt(pos, end)
			}
		case next == '<':
			if v.CharAt(pos+2) == '<' {
				if allowed(orgast.NodeRadioTarget) {
					return p.parseRadioTarget(pos, end)
				}
			} else if allowed(orgast.NodeTarget) {
				return p.parseTarget(pos, end)
			}
		case next >= '0' && next <= '9':
			if allowed(orgast.NodeTimestamp) {
				return p.parseTimestampAt(pos, end)
			}
		default:
			if allowed(orgast.NodeLink) {
				return p.parseAngleLink(pos, end)
			}
		}
	case '$':
		if allowed(orgast.NodeLatexFragment) {
			return p.parseLatexFragment(pos, end)
		}
	case '\\':
		if allowed(orgast.NodeLineBreak) {
			if n := p.parseLineBreak(pos, end); n != nil {
				return n
			}
		}
		if allowed(orgast.NodeEntity) {
			if n := p.parseEntity(pos, end); n != nil {
				return n
			}
		}
		if allowed(orgast.NodeLatexFragment) {
			return p.parseLatexFragment(pos, end)
		}
	default:
		// call_, src_ and plain links all start with a letter.
		rest := v.Substring(pos, min(pos+5, end))
		switch {
		case strings.HasPrefix(rest, "call_"):
			if allowed(orgast.NodeInlineBabelCall) {
				return p.parseInlineCall(pos, end)
			}
		case strings.HasPrefix(rest, "src_"):
			if allowed(orgast.NodeInlineSrcBlock) {
				return p.parseInlineSrc(pos, end)
			}
		default:
			if allowed(orgast.NodeLink) {
				return p.parsePlainLink(pos, end)
			}
		}
	}
	return nil
}

// markupKind maps an emphasis marker to its object kind.
func markupKind(marker byte) orgast.NodeKind {
	switch marker {
	case '*':
		return orgast.NodeBold
	case '/':
		return orgast.NodeItalic
	case '_':
		return orgast.NodeUnderline
	case '+':
		return orgast.NodeStrikeThrough
	case '=':
		return orgast.NodeVerbatim
	case '~':
		return orgast.NodeCode
	default:
		return orgast.NodeText
	}
}

// parseEmphasis recognizes the six marker-delimited markup objects. The
// opening marker needs a permissive character (or nothing) before it and a
// non-blank character after; the closing marker mirrors that. Contents may
// span at most one newline and never a blank line.
func (p *Parser) parseEmphasis(pos, end int, restriction orgast.KindSet) *orgast.Node {
	v := p.View
	marker := v.CharAt(pos)
	kind := markupKind(marker)
	if kind == orgast.NodeText || !restriction.Has(kind) {
		return nil
	}

	if pos > v.PositionMin() && !syntax.EmphPreChar(v.CharAt(pos-1)) {
		return nil
	}
	first := v.CharAt(pos + 1)
	if pos+1 >= end || first == ' ' || first == '\t' || first == '\n' || first == marker {
		return nil
	}

	newlines := 0
	for i := pos + 2; i < end; i++ {
		c := v.CharAt(i)
		if c == '\n' {
			newlines++
			if newlines > 1 || (i+1 < end && v.CharAt(i+1) == '\n') {
				return nil
			}
			continue
		}
		if c != marker {
			continue
		}
		prev := v.CharAt(i - 1)
		if prev == ' ' || prev == '\t' || prev == '\n' {
			continue
		}
		if i+1 < end && !syntax.EmphPostChar(v.CharAt(i+1)) {
			continue
		}

		n := orgast.NewNode(kind)
		n.Begin = pos
		n.End = i + 1
		if kind == orgast.NodeCode || kind == orgast.NodeVerbatim {
			n.Raw = v.Substring(pos+1, i)
		} else {
			n.ContentsBegin = pos + 1
			n.ContentsEnd = i
			children := p.ParseObjects(n.ContentsBegin, n.ContentsEnd, orgast.Restriction(kind))
			orgast.Adopt(n, children...)
		}
		p.consumeObjectBlanks(n, end)
		return n
	}
	return nil
}

// parseScript recognizes subscript and superscript, which require a
// non-blank character immediately before the marker.
func (p *Parser) parseScript(pos, end int, super bool, restriction orgast.KindSet) *orgast.Node {
	v := p.View
	if pos <= v.PositionMin() {
		return nil
	}
	prev := v.CharAt(pos - 1)
	if prev == ' ' || prev == '\t' || prev == '\n' || prev == 0 {
		return nil
	}

	re := syntax.Subscript
	kind := orgast.NodeSubscript
	if super {
		re = syntax.Superscript
		kind = orgast.NodeSuperscript
	}
	m := v.MatchAt(re, pos, min(end, v.LineEndOf(pos)))
	if m == nil {
		return nil
	}

	n := orgast.NewNode(kind)
	n.Begin = pos
	n.End = m[1]
	attrs := &orgast.ScriptAttrs{}
	n.Script = attrs

	switch {
	case m[2] >= 0: // braced form
		attrs.UseBrackets = true
		n.ContentsBegin = m[2] + 1
		n.ContentsEnd = m[3] - 1
	case m[4] >= 0: // bare asterisk
		n.ContentsBegin = m[4]
		n.ContentsEnd = m[5]
	default:
		n.ContentsBegin = m[6]
		n.ContentsEnd = m[7]
	}
	if n.ContentsBegin < n.ContentsEnd {
		children := p.ParseObjects(n.ContentsBegin, n.ContentsEnd, orgast.Restriction(kind))
		orgast.Adopt(n, children...)
	}
	p.consumeObjectBlanks(n, end)
	return n
}

// parseBracketLink recognizes [[target][description]].
func (p *Parser) parseBracketLink(pos, end int) *orgast.Node {
	v := p.View
	m := v.MatchAt(syntax.LinkBracket, pos, end)
	if m == nil {
		return nil
	}
	n := orgast.NewNode(orgast.NodeLink)
	n.Begin = pos
	n.End = m[1]
	attrs := &orgast.LinkAttrs{Format: orgast.LinkBracket}
	n.Link = attrs

	raw := v.Substring(m[2], m[3])
	attrs.RawLink = raw
	p.classifyLinkTarget(attrs, raw)

	if m[4] >= 0 && m[5] > m[4] {
		n.ContentsBegin = m[4]
		n.ContentsEnd = m[5]
		children := p.ParseObjects(n.ContentsBegin, n.ContentsEnd,
			orgast.Restriction(orgast.NodeLink))
		orgast.Adopt(n, children...)
	}
	p.consumeObjectBlanks(n, end)
	return n
}

// classifyLinkTarget fills LinkType, Path, SearchOption and Application
// from a raw bracket-link target.
func (p *Parser) classifyLinkTarget(attrs *orgast.LinkAttrs, raw string) {
	switch {
	case strings.HasPrefix(raw, "#"):
		attrs.LinkType = "custom-id"
		attrs.Path = raw[1:]
	case strings.HasPrefix(raw, "(") && strings.HasSuffix(raw, ")"):
		attrs.LinkType = "coderef"
		attrs.Path = raw[1 : len(raw)-1]
	default:
		if i := strings.Index(raw, ":"); i > 0 {
			scheme := raw[:i]
			base := scheme
			if j := strings.Index(scheme, "+"); j > 0 {
				base = scheme[:j]
				attrs.Application = scheme[j+1:]
			}
			if p.Config.SchemeKnown(base) {
				attrs.LinkType = base
				attrs.Path = raw[i+1:]
				if base == "file" {
					if k := strings.Index(attrs.Path, "::"); k >= 0 {
						attrs.SearchOption = attrs.Path[k+2:]
						attrs.Path = attrs.Path[:k]
					}
				}
				return
			}
		}
		attrs.LinkType = "fuzzy"
		attrs.Path = raw
	}
}

// parsePlainLink recognizes a bare scheme:path link.
func (p *Parser) parsePlainLink(pos, end int) *orgast.Node {
	v := p.View
	if pos > v.PositionMin() {
		prev := v.CharAt(pos - 1)
		if isWordByte(prev) {
			return nil
		}
	}
	m := v.MatchAt(syntax.LinkPlain, pos, min(end, v.LineEndOf(pos)))
	if m == nil {
		return nil
	}
	scheme := v.Substring(m[2], m[3])
	if !p.Config.SchemeKnown(scheme) {
		return nil
	}
	n := orgast.NewNode(orgast.NodeLink)
	n.Begin = pos
	n.End = m[1]
	n.Link = &orgast.LinkAttrs{
		Format:   orgast.LinkPlain,
		LinkType: scheme,
		Path:     v.Substring(m[4], m[5]),
		RawLink:  v.Substring(m[0], m[1]),
	}
	p.consumeObjectBlanks(n, end)
	return n
}

// parseAngleLink recognizes <scheme:path>.
func (p *Parser) parseAngleLink(pos, end int) *orgast.Node {
	v := p.View
	m := v.MatchAt(syntax.LinkAngle, pos, end)
	if m == nil {
		return nil
	}
	scheme := v.Substring(m[2], m[3])
	if !p.Config.SchemeKnown(scheme) {
		return nil
	}
	n := orgast.NewNode(orgast.NodeLink)
	n.Begin = pos
	n.End = m[1]
	n.Link = &orgast.LinkAttrs{
		Format:   orgast.LinkAngle,
		LinkType: scheme,
		Path:     v.Substring(m[4], m[5]),
		RawLink:  scheme + ":" + v.Substring(m[4], m[5]),
	}
	p.consumeObjectBlanks(n, end)
	return n
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// findRadio locates the earliest declared radio target occurring in
// [pos, bound). Returns (-1, 0) when none applies.
func (p *Parser) findRadio(pos, bound int, restriction orgast.KindSet) (int, int) {
	if len(p.Config.RadioTargets) == 0 || !restriction.Has(orgast.NodeLink) {
		return -1, 0
	}
	v := p.View
	window := strings.ToLower(v.Substring(pos, bound))
	best, bestLen := -1, 0
	for _, target := range p.Config.RadioTargets {
		idx := strings.Index(window, strings.ToLower(target))
		if idx < 0 {
			continue
		}
		abs := pos + idx
		// Word boundaries on both sides.
		if abs > v.PositionMin() && isWordByte(v.CharAt(abs-1)) {
			continue
		}
		after := abs + len(target)
		if after < bound && isWordByte(v.CharAt(after)) {
			continue
		}
		if best < 0 || abs < best {
			best, bestLen = abs, len(target)
		}
	}
	return best, bestLen
}

// radioLink builds the link node for a radio-target match.
func (p *Parser) radioLink(pos, length, limit int) *orgast.Node {
	v := p.View
	text := v.Substring(pos, pos+length)
	n := orgast.NewNode(orgast.NodeLink)
	n.Begin = pos
	n.End = pos + length
	n.Link = &orgast.LinkAttrs{
		Format:   orgast.LinkRadio,
		LinkType: "radio",
		Path:     text,
		RawLink:  text,
	}
	p.consumeObjectBlanks(n, limit)
	return n
}

// parseFootnoteReference recognizes [fn:label], [fn:label:definition] and
// [fn::definition]. Inline definitions may nest square brackets.
func (p *Parser) parseFootnoteReference(pos, end int) *orgast.Node {
	v := p.View
	m := v.MatchAt(syntax.FootnoteReference, pos, end)
	if m == nil {
		return nil
	}
	label := v.Substring(m[2], m[3])
	cur := m[1]

	attrs := &orgast.FootnoteAttrs{Label: label, Type: orgast.FootnoteStandard}
	defBegin, defEnd := -1, -1

	if m[4] >= 0 && m[5] > m[4] {
		// Inline definition: scan to the matching close bracket.
		attrs.Type = orgast.FootnoteInline
		depth := 1
		defBegin = cur
		i := cur
		for i < end {
			switch v.CharAt(i) {
			case '[':
				depth++
			case ']':
				depth--
			}
			if depth == 0 {
				break
			}
			i++
		}
		if depth != 0 {
			return nil
		}
		defEnd = i
		cur = i + 1
	} else {
		if label == "" {
			return nil
		}
		if cur >= end || v.CharAt(cur) != ']' {
			return nil
		}
		cur++
	}

	n := orgast.NewNode(orgast.NodeFootnoteReference)
	n.Begin = pos
	n.End = cur
	n.Footnote = attrs
	if defBegin >= 0 && defEnd > defBegin {
		objs := p.ParseObjects(defBegin, defEnd,
			orgast.Restriction(orgast.NodeFootnoteReference))
		attrs.Definition = orgast.AdoptSecondary(n, objs)
	}
	p.consumeObjectBlanks(n, end)
	return n
}

// parseStatisticsCookie recognizes [n/m] and [n%].
func (p *Parser) parseStatisticsCookie(pos, end int) *orgast.Node {
	v := p.View
	m := v.MatchAt(syntax.StatisticsCookie, pos, end)
	if m == nil {
		return nil
	}
	n := orgast.NewNode(orgast.NodeStatisticsCookie)
	n.Begin = pos
	n.End = m[1]
	n.Cookie = &orgast.CookieAttrs{Value: v.Substring(m[0], m[1])}
	p.consumeObjectBlanks(n, end)
	return n
}

// parseExportSnippet recognizes @@backend:value@@.
func (p *Parser) parseExportSnippet(pos, end int) *orgast.Node {
	v := p.View
	m := v.MatchAt(syntax.ExportSnippet, pos, end)
	if m == nil {
		return nil
	}
	n := orgast.NewNode(orgast.NodeExportSnippet)
	n.Begin = pos
	n.End = m[1]
	n.Snippet = &orgast.SnippetAttrs{Backend: v.Substring(m[2], m[3])}
	n.Raw = v.Substring(m[4], m[5])
	p.consumeObjectBlanks(n, end)
	return n
}

// parseMacro recognizes {{{name(args)}}}.
func (p *Parser) parseMacro(pos, end int) *orgast.Node {
	v := p.View
	m := v.MatchAt(syntax.Macro, pos, end)
	if m == nil {
		return nil
	}
	n := orgast.NewNode(orgast.NodeMacro)
	n.Begin = pos
	n.End = m[1]
	attrs := &orgast.MacroAttrs{Key: strings.ToLower(v.Substring(m[2], m[3]))}
	if m[6] >= 0 {
		raw := v.Substring(m[6], m[7])
		if raw != "" {
			for _, a := range strings.Split(raw, ",") {
				attrs.Args = append(attrs.Args, strings.TrimSpace(a))
			}
		}
	}
	n.Macro = attrs
	n.Raw = v.Substring(m[0], m[1])
	p.consumeObjectBlanks(n, end)
	return n
}

// parseRadioTarget recognizes <<<contents>>>.
func (p *Parser) parseRadioTarget(pos, end int) *orgast.Node {
	v := p.View
	m := v.MatchAt(syntax.RadioTargetRe, pos, end)
	if m == nil {
		return nil
	}
	n := orgast.NewNode(orgast.NodeRadioTarget)
	n.Begin = pos
	n.End = m[1]
	n.Target = &orgast.TargetAttrs{Value: v.Substring(m[2], m[3])}
	n.ContentsBegin = m[2]
	n.ContentsEnd = m[3]
	children := p.ParseObjects(m[2], m[3], orgast.Restriction(orgast.NodeRadioTarget))
	orgast.Adopt(n, children...)
	p.consumeObjectBlanks(n, end)
	return n
}

// parseTarget recognizes <<contents>>.
func (p *Parser) parseTarget(pos, end int) *orgast.Node {
	v := p.View
	m := v.MatchAt(syntax.TargetRe, pos, end)
	if m == nil {
		return nil
	}
	n := orgast.NewNode(orgast.NodeTarget)
	n.Begin = pos
	n.End = m[1]
	n.Target = &orgast.TargetAttrs{Value: v.Substring(m[2], m[3])}
	p.consumeObjectBlanks(n, end)
	return n
}

// parseLineBreak recognizes \\ at end of line; the newline belongs to the
// object.
func (p *Parser) parseLineBreak(pos, end int) *orgast.Node {
	v := p.View
	m := v.MatchAt(syntax.LineBreakRe, pos, end)
	if m == nil {
		return nil
	}
	n := orgast.NewNode(orgast.NodeLineBreak)
	n.Begin = pos
	n.End = m[1]
	return n
}

// parseEntity recognizes \name for names in the entity table.
func (p *Parser) parseEntity(pos, end int) *orgast.Node {
	v := p.View
	m := v.MatchAt(syntax.EntityRe, pos, end)
	if m == nil {
		return nil
	}
	name := v.Substring(m[2], m[3])
	ent, ok := syntax.LookupEntity(name)
	if !ok {
		return nil
	}
	n := orgast.NewNode(orgast.NodeEntity)
	n.Begin = pos
	n.End = m[1]
	n.Entity = &orgast.EntityAttrs{
		Name:        name,
		Latex:       ent.Latex,
		HTML:        ent.HTML,
		ASCII:       ent.ASCII,
		UTF8:        ent.UTF8,
		LatexMath:   ent.LatexMath,
		UseBrackets: m[4] >= 0,
	}
	p.consumeObjectBlanks(n, end)
	return n
}

// parseLatexFragment recognizes $...$, \(...\), \[...\] and \command{...}
// fragments.
func (p *Parser) parseLatexFragment(pos, end int) *orgast.Node {
	v := p.View
	var m []int
	switch v.CharAt(pos) {
	case '$':
		m = v.MatchAt(syntax.LatexFragmentDollar, pos, end)
	case '\\':
		m = v.MatchAt(syntax.LatexFragmentParen, pos, end)
		if m == nil {
			m = v.MatchAt(syntax.LatexFragmentCommand, pos, end)
			if m != nil && m[1] == pos+1 {
				// A lone backslash is not a fragment.
				m = nil
			}
		}
	}
	if m == nil {
		return nil
	}
	n := orgast.NewNode(orgast.NodeLatexFragment)
	n.Begin = pos
	n.End = m[1]
	n.Raw = v.Substring(m[0], m[1])
	p.consumeObjectBlanks(n, end)
	return n
}

// parseInlineCall recognizes call_name[inside](args)[end].
func (p *Parser) parseInlineCall(pos, end int) *orgast.Node {
	v := p.View
	m := v.MatchAt(syntax.InlineCall, pos, end)
	if m == nil {
		return nil
	}
	attrs := &orgast.CallAttrs{Call: v.Substring(m[2], m[3])}
	if m[4] >= 0 {
		attrs.InsideHeader = v.Substring(m[4]+1, m[5]-1)
	}
	attrs.Arguments = v.Substring(m[6], m[7])
	if m[8] >= 0 {
		attrs.EndHeader = v.Substring(m[8]+1, m[9]-1)
	}
	n := orgast.NewNode(orgast.NodeInlineBabelCall)
	n.Begin = pos
	n.End = m[1]
	n.Call = attrs
	p.consumeObjectBlanks(n, end)
	return n
}

// parseInlineSrc recognizes src_lang[options]{body}.
func (p *Parser) parseInlineSrc(pos, end int) *orgast.Node {
	v := p.View
	m := v.MatchAt(syntax.InlineSrc, pos, end)
	if m == nil {
		return nil
	}
	attrs := &orgast.InlineSrcAttrs{Language: v.Substring(m[2], m[3])}
	if m[4] >= 0 {
		attrs.Parameters = v.Substring(m[4]+1, m[5]-1)
	}
	n := orgast.NewNode(orgast.NodeInlineSrcBlock)
	n.Begin = pos
	n.End = m[1]
	n.InlineSrc = attrs
	n.Raw = v.Substring(m[6], m[7])
	p.consumeObjectBlanks(n, end)
	return n
}

// parseCells splits a table-row contents range into table-cell objects.
func (p *Parser) parseCells(begin, end int) []*orgast.Node {
	v := p.View
	var out []*orgast.Node
	pos := begin
	for pos < end {
		// Locate the cell terminator.
		cellEnd := end
		for i := pos; i < end; i++ {
			if v.CharAt(i) == '|' {
				cellEnd = i
				break
			}
		}
		n := orgast.NewNode(orgast.NodeTableCell)
		n.Begin = pos
		if cellEnd < end {
			n.End = cellEnd + 1
		} else {
			n.End = end
		}

		// Contents exclude surrounding blanks.
		cb := pos
		for cb < cellEnd && (v.CharAt(cb) == ' ' || v.CharAt(cb) == '\t') {
			cb++
		}
		ce := cellEnd
		for ce > cb && (v.CharAt(ce-1) == ' ' || v.CharAt(ce-1) == '\t') {
			ce--
		}
		if cb < ce {
			n.ContentsBegin = cb
			n.ContentsEnd = ce
			children := p.ParseObjects(cb, ce, orgast.Restriction(orgast.NodeTableCell))
			orgast.Adopt(n, children...)
		}
		out = append(out, n)
		pos = n.End
	}
	return out
}
