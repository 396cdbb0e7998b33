package parser

import (
	"strings"

	"github.com/yaklabco/orgtree/pkg/orgast"
	"github.com/yaklabco/orgtree/pkg/syntax"
)

// CurrentElement recognizes exactly one element at pos, which must sit at
// the beginning of a line (or mid-line when parsing the first content line
// of an item or footnote definition). The returned node covers
// [Begin, End), with End at the line start following the element's
// trailing blank lines.
func (p *Parser) CurrentElement(pos, limit int, mode Mode, structure *orgast.ListStruct) *orgast.Node {
	v := p.View

	switch mode {
	case ModeItem:
		return p.parseItem(pos, limit, structure)
	case ModeTableRow:
		return p.parseTableRow(pos, limit)
	case ModeNodeProperty:
		if el := p.parseNodeProperty(pos, limit); el != nil {
			return el
		}
		// A malformed line inside a property drawer degrades to a
		// paragraph covering that line.
		return p.parseParagraph(pos, limit, pos, nil)
	}

	// Headline within the outline bound.
	if m := v.MatchAt(syntax.Outline, pos, limit); m != nil {
		level := m[3] - m[2]
		if level < p.Config.InlinetaskMinLevel {
			return p.parseHeadline(pos, limit, level)
		}
		return p.parseInlinetask(pos, limit, level)
	}

	switch mode {
	case ModeSection, ModeFirstSection:
		return p.parseSection(pos, limit)
	}

	// Mid-line cursor: only possible for the first content of an item or
	// footnote definition. The rest of the line is a paragraph.
	if v.Column(pos) != 0 {
		return p.parseParagraph(pos, limit, pos, nil)
	}

	// Planning and clock lines.
	if v.MatchAt(syntax.Clock, pos, limit) != nil {
		return p.parseClock(pos, limit)
	}
	if v.MatchAt(syntax.Planning, pos, limit) != nil {
		if el := p.parsePlanning(pos, limit); el != nil {
			return el
		}
	}

	// Collect affiliated metadata, then dispatch on the first non-blank
	// character of the line that follows it.
	aff, affBegin, postAff, ok := p.collectAffiliated(pos, limit)
	if !ok {
		// The whole affiliated block is not followed by an element:
		// reparse its first line as a plain keyword.
		return p.parseKeyword(pos, limit, nil, pos)
	}

	el := p.dispatchAt(postAff, limit, aff, affBegin, structure)
	if el == nil {
		el = p.parseParagraph(postAff, limit, affBegin, aff)
	}
	return el
}

// dispatchAt selects the element recognizer by the first non-whitespace
// character of the line at pos. Affiliated metadata has already been
// collected; begin is the element's start (first affiliated line).
func (p *Parser) dispatchAt(pos, limit int, aff *orgast.Affiliated, begin int, structure *orgast.ListStruct) *orgast.Node {
	v := p.View
	lineEnd := v.LineEndOf(pos)
	first := v.SkipWhitespaceForward(pos, lineEnd)
	if first >= lineEnd {
		return nil
	}

	switch v.CharAt(first) {
	case '\\':
		if v.MatchAt(syntax.LatexEnvBegin, pos, limit) != nil {
			if el := p.parseLatexEnvironment(pos, limit, aff, begin); el != nil {
				return el
			}
		}
	case ':':
		if m := v.MatchAt(syntax.Drawer, pos, limit); m != nil {
			name := v.Substring(m[2], m[3])
			if el := p.parseDrawer(pos, limit, name, aff, begin); el != nil {
				return el
			}
			return nil
		}
		if v.MatchAt(syntax.FixedWidth, pos, limit) != nil {
			return p.parseFixedWidth(pos, limit, aff, begin)
		}
	case '#':
		if m := v.MatchAt(syntax.BlockBegin, pos, limit); m != nil {
			name := v.Substring(m[2], m[3])
			if el := p.parseBlock(pos, limit, name, v.Substring(m[4], m[5]), aff, begin); el != nil {
				return el
			}
			return nil
		}
		if v.MatchAt(syntax.BabelCall, pos, limit) != nil {
			return p.parseBabelCall(pos, limit, aff, begin)
		}
		if v.MatchAt(syntax.DynamicBlockBegin, pos, limit) != nil {
			if el := p.parseDynamicBlock(pos, limit, aff, begin); el != nil {
				return el
			}
			return nil
		}
		if v.MatchAt(syntax.Keyword, pos, limit) != nil {
			return p.parseKeyword(pos, limit, aff, begin)
		}
		if v.MatchAt(syntax.Comment, pos, limit) != nil {
			return p.parseComment(pos, limit, aff, begin)
		}
	case '[':
		if v.MatchAt(syntax.FootnoteDefinition, pos, limit) != nil {
			return p.parseFootnoteDefinition(pos, limit, aff, begin)
		}
	case '%':
		if v.MatchAt(syntax.DiarySexp, pos, limit) != nil {
			return p.parseDiarySexp(pos, limit, aff, begin)
		}
	case '|':
		return p.parseTable(pos, limit, aff, begin)
	}

	if v.MatchAt(syntax.HorizontalRule, pos, limit) != nil {
		return p.parseHorizontalRule(pos, limit, aff, begin)
	}

	if p.atItemLine(pos, limit) {
		return p.parsePlainList(pos, limit, aff, begin, structure)
	}

	return nil
}

// atItemLine reports whether the line at pos opens a list item. A star
// bullet needs indentation to not be a headline.
func (p *Parser) atItemLine(pos, limit int) bool {
	m := p.View.MatchAt(syntax.Item, pos, limit)
	if m == nil {
		return false
	}
	indent := m[3] - m[2]
	bullet := p.View.Substring(m[4], m[5])
	if bullet == "*" && indent == 0 {
		return false
	}
	return true
}

// collectAffiliated harvests the affiliated-metadata lines at pos. It
// returns the metadata (nil when none), the position of the first
// affiliated line (the element's Begin), the post-affiliated position, and
// whether a recognizable element follows the block before limit.
func (p *Parser) collectAffiliated(pos, limit int) (*orgast.Affiliated, int, int, bool) {
	v := p.View
	begin := pos
	cur := pos
	var aff *orgast.Affiliated

	for cur < limit {
		m := v.MatchAt(syntax.Affiliated, cur, limit)
		if m == nil {
			break
		}
		lineEnd := v.LineEndOf(cur)
		if m[1] > lineEnd {
			break
		}

		rawKey := v.Substring(m[2], m[3])
		key := syntax.NormalizeKeyword(rawKey)
		val := orgast.AffiliatedValue{}
		if m[6] >= 0 {
			val.Value = v.Substring(m[6], m[7])
			if syntax.ParsedKeywords[key] {
				val.ValueBegin, val.ValueEnd = m[6], m[7]
			}
		}
		if m[4] >= 0 && syntax.DualKeywords[key] {
			val.Secondary = v.Substring(m[4], m[5])
			if syntax.ParsedKeywords[key] {
				val.SecondaryBegin, val.SecondaryEnd = m[4], m[5]
			}
		}

		if aff == nil {
			aff = orgast.NewAffiliated()
		}
		lower := strings.ToLower(key)
		if syntax.IsMultipleKeyword(key) {
			aff.Add(lower, val)
		} else {
			aff.Set(lower, val)
		}
		cur = v.NextLine(cur)
	}

	if aff == nil {
		return nil, begin, pos, true
	}
	if cur >= limit || v.IsBlankLine(cur) || v.MatchAt(syntax.Outline, cur, limit) != nil {
		// Orphaned affiliated keywords: nothing to affiliate with.
		return nil, begin, pos, false
	}
	return aff, begin, cur, true
}
