package parser

import (
	"strings"

	"github.com/yaklabco/orgtree/pkg/orgast"
	"github.com/yaklabco/orgtree/pkg/syntax"
)

// buildListStruct analyzes the plain list starting at pos and returns its
// shared structure: one row per item line, with positions, indentation,
// bullet, counter, checkbox and tag. The structure covers the whole list
// including sublists; a single instance is shared by every list and item
// node built from it.
func (p *Parser) buildListStruct(pos, limit int) *orgast.ListStruct {
	v := p.View
	st := &orgast.ListStruct{}

	topIndent := v.Indentation(pos, p.Config.TabWidth)
	blanks := 0
	contentEnd := pos
	cur := pos
	for cur < limit {
		if v.IsBlankLine(cur) {
			blanks++
			if blanks >= 2 {
				break
			}
			cur = v.NextLine(cur)
			continue
		}
		ind := v.Indentation(cur, p.Config.TabWidth)
		if p.atItemLine(cur, limit) {
			row := p.scanItemLine(cur, limit)
			if row.Indent < topIndent {
				break
			}
			st.Rows = append(st.Rows, row)
		} else if ind <= topIndent && cur != pos {
			break
		}
		blanks = 0
		contentEnd = v.NextLine(cur)
		cur = v.NextLine(cur)
	}

	// Row ends: the first subsequent non-blank list line at the same or a
	// shallower indentation, bounded by the list's content end.
	for i := range st.Rows {
		st.Rows[i].End = contentEnd
		scan := v.NextLine(st.Rows[i].Begin)
		for scan < contentEnd {
			if !v.IsBlankLine(scan) &&
				v.Indentation(scan, p.Config.TabWidth) <= st.Rows[i].Indent {
				st.Rows[i].End = scan
				break
			}
			scan = v.NextLine(scan)
		}
	}
	return st
}

// scanItemLine extracts one structure row from an item line.
func (p *Parser) scanItemLine(pos, limit int) orgast.ListStructRow {
	v := p.View
	row := orgast.ListStructRow{Begin: pos}
	row.Indent = v.Indentation(pos, p.Config.TabWidth)

	lineEnd := v.LineEndOf(pos)
	m := v.MatchAt(syntax.Item, pos, lineEnd)
	if m == nil {
		return row
	}
	row.Bullet = v.Substring(m[4], m[5])
	cur := m[1]

	if cm := v.MatchAt(syntax.Counter, cur, lineEnd); cm != nil {
		row.Counter = v.Substring(cm[2], cm[3])
		cur = cm[1]
	}
	if cm := v.MatchAt(syntax.CheckboxRe, cur, lineEnd); cm != nil {
		row.Checkbox = v.Substring(cm[2], cm[3])
		cur = cm[1]
	}
	rest := v.Substring(cur, lineEnd)
	if tm := syntax.ItemTag.FindStringSubmatch(rest); tm != nil {
		row.Tag = tm[1]
	}
	return row
}

// parsePlainList recognizes a plain list at pos. The structure is shared
// from the enclosing list when pos sits inside one already analyzed;
// otherwise it is computed here.
func (p *Parser) parsePlainList(pos, limit int, aff *orgast.Affiliated, begin int, structure *orgast.ListStruct) *orgast.Node {
	v := p.View
	if structure == nil || findRow(structure, v.LineStartOf(pos)) < 0 {
		structure = p.buildListStruct(pos, limit)
	}
	first := findRow(structure, v.LineStartOf(pos))
	if first < 0 {
		return p.parseParagraph(pos, limit, begin, aff)
	}

	rows := structure.Rows
	indent := rows[first].Indent

	// The list spans the consecutive run of rows at this indentation or
	// deeper; rows at exactly this indentation are its items.
	last := first
	hasTag := false
	ordered := false
	for i := first; i < len(rows) && rows[i].Begin < limit; i++ {
		if rows[i].Indent < indent {
			break
		}
		if rows[i].Indent == indent {
			last = i
			if rows[i].Tag != "" {
				hasTag = true
			}
			b := rows[i].Bullet
			if b != "" && b[0] >= '0' && b[0] <= '9' {
				ordered = true
			}
			if b != "" && len(b) == 2 && isAlpha(b[0]) {
				ordered = true
			}
		}
	}

	n := newElement(orgast.NodePlainList, begin, pos, aff)
	attrs := &orgast.ListAttrs{Structure: structure}
	switch {
	case ordered:
		attrs.Type = orgast.ListOrdered
	case hasTag:
		attrs.Type = orgast.ListDescriptive
	default:
		attrs.Type = orgast.ListUnordered
	}
	n.List = attrs

	contentsEnd := rows[last].End
	if contentsEnd > limit {
		contentsEnd = limit
	}
	n.ContentsBegin = pos
	n.ContentsEnd = contentsEnd
	n.End, n.PostBlank = p.trailingBlanks(contentsEnd, limit)
	return n
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func findRow(st *orgast.ListStruct, begin int) int {
	for i := range st.Rows {
		if st.Rows[i].Begin == begin {
			return i
		}
	}
	return -1
}

// parseItem recognizes one list item at pos using the shared structure.
func (p *Parser) parseItem(pos, limit int, structure *orgast.ListStruct) *orgast.Node {
	v := p.View
	lineStart := v.LineStartOf(pos)
	if structure == nil {
		structure = p.buildListStruct(lineStart, limit)
	}
	idx := findRow(structure, lineStart)
	if idx < 0 {
		return p.parseParagraph(pos, limit, pos, nil)
	}
	row := structure.Rows[idx]

	n := newElement(orgast.NodeItem, lineStart, lineStart, nil)
	attrs := &orgast.ItemAttrs{
		Bullet:    row.Bullet,
		Counter:   row.Counter,
		Structure: structure,
	}
	switch row.Checkbox {
	case "[ ]", " ":
		attrs.Checkbox = orgast.CheckboxOff
	case "[X]", "X":
		attrs.Checkbox = orgast.CheckboxOn
	case "[-]", "-":
		attrs.Checkbox = orgast.CheckboxTrans
	}
	n.Item = attrs

	// Contents begin after the bullet, counter, checkbox and tag.
	lineEnd := v.LineEndOf(lineStart)
	m := v.MatchAt(syntax.Item, lineStart, lineEnd)
	cur := lineEnd
	if m != nil {
		cur = m[1]
		if cm := v.MatchAt(syntax.Counter, cur, lineEnd); cm != nil {
			cur = cm[1]
		}
		if cm := v.MatchAt(syntax.CheckboxRe, cur, lineEnd); cm != nil {
			cur = cm[1]
		}
		if row.Tag != "" {
			rest := v.Substring(cur, lineEnd)
			if tm := syntax.ItemTag.FindStringSubmatchIndex(rest); tm != nil {
				attrs.RawTag = row.Tag
				attrs.TagBegin = cur + tm[2]
				attrs.TagEnd = cur + tm[3]
				cur += tm[1]
			}
		}
	}

	end := row.End
	if end > limit {
		end = limit
	}
	contentsBegin := cur
	if contentsBegin >= lineEnd {
		// Contents start on the next line, if any.
		contentsBegin = v.NextLine(lineStart)
	}
	contentsEnd, postBlank := p.contentsBounds(contentsBegin, end)
	if contentsEnd > contentsBegin {
		n.ContentsBegin = contentsBegin
		n.ContentsEnd = contentsEnd
	}
	n.PostBlank = postBlank
	n.End = end
	return n
}

// parseTable recognizes a table: consecutive pipe lines followed by
// optional #+TBLFM: formula lines.
func (p *Parser) parseTable(pos, limit int, aff *orgast.Affiliated, begin int) *orgast.Node {
	v := p.View
	n := newElement(orgast.NodeTable, begin, pos, aff)
	attrs := &orgast.TableAttrs{}
	n.Table = attrs

	cur := pos
	for cur < limit && v.MatchAt(syntax.TableLine, cur, limit) != nil {
		cur = v.NextLine(cur)
	}
	n.ContentsBegin = pos
	n.ContentsEnd = cur

	// Formula lines attach to the table.
	rawEnd := cur
	for rawEnd < limit {
		line := v.Line(rawEnd)
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(strings.ToUpper(trimmed), "#+TBLFM:") {
			break
		}
		attrs.TblFm = append(attrs.TblFm, strings.TrimSpace(trimmed[len("#+TBLFM:"):]))
		rawEnd = v.NextLine(rawEnd)
	}
	n.End, n.PostBlank = p.trailingBlanks(rawEnd, limit)
	return n
}

// parseTableRow recognizes one table line. Separator rows have no
// contents; standard rows contain table cells.
func (p *Parser) parseTableRow(pos, limit int) *orgast.Node {
	v := p.View
	n := newElement(orgast.NodeTableRow, pos, pos, nil)
	attrs := &orgast.TableRowAttrs{}
	n.TableRow = attrs

	lineEnd := v.LineEndOf(pos)
	if v.MatchAt(syntax.TableRule, pos, lineEnd) != nil {
		attrs.Rule = true
	} else {
		// Contents start after the first pipe.
		first := v.SkipWhitespaceForward(pos, lineEnd)
		contentsBegin := first + 1
		contentsEnd := lineEnd
		if contentsBegin < contentsEnd {
			n.ContentsBegin = contentsBegin
			n.ContentsEnd = contentsEnd
		}
	}
	n.End = v.NextLine(pos)
	n.PostBlank = 0
	return n
}
