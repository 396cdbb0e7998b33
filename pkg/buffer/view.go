// Package buffer provides the read-only buffer view the parser and cache
// operate on, plus the text-edit type the embedding editor applies.
package buffer

import (
	"regexp"
	"sort"
	"strings"
)

// View is a window onto a character buffer. Offsets are byte indices; a
// narrowing restricts the addressable range without changing offsets.
type View struct {
	content []byte

	// lineStarts[i] is the offset of the first byte of line i.
	// lineStarts[0] is always 0.
	lineStarts []int

	// Narrowing bounds. low <= high; the widened view has low = 0 and
	// high = len(content).
	low  int
	high int

	beforeChange []BeforeChangeFunc
	afterChange  []AfterChangeFunc
}

// NewView creates a view over content, widened to its full range.
func NewView(content []byte) *View {
	v := &View{content: content}
	v.reindex()
	v.low = 0
	v.high = len(content)
	return v
}

// NewViewString creates a view over a string.
func NewViewString(content string) *View {
	return NewView([]byte(content))
}

func (v *View) reindex() {
	v.lineStarts = v.lineStarts[:0]
	v.lineStarts = append(v.lineStarts, 0)
	for i, b := range v.content {
		if b == '\n' {
			v.lineStarts = append(v.lineStarts, i+1)
		}
	}
}

// Bytes returns the full underlying content, ignoring narrowing.
func (v *View) Bytes() []byte { return v.content }

// String returns the full content as a string.
func (v *View) String() string { return string(v.content) }

// PositionMin returns the lowest addressable offset.
func (v *View) PositionMin() int { return v.low }

// PositionMax returns the offset just past the highest addressable byte.
func (v *View) PositionMax() int { return v.high }

// Len returns the total content length, ignoring narrowing.
func (v *View) Len() int { return len(v.content) }

// CharAt returns the byte at pos, or 0 when pos is out of range.
func (v *View) CharAt(pos int) byte {
	if pos < v.low || pos >= v.high {
		return 0
	}
	return v.content[pos]
}

// Substring returns content in [a, b), clamped to the view's bounds.
func (v *View) Substring(a, b int) string {
	if a < v.low {
		a = v.low
	}
	if b > v.high {
		b = v.high
	}
	if a >= b {
		return ""
	}
	return string(v.content[a:b])
}

// LineStartOf returns the offset of the first byte of the line containing
// pos. A pos at end of buffer belongs to the last line.
func (v *View) LineStartOf(pos int) int {
	if pos <= v.low {
		ls := v.lineStartBefore(v.low)
		if ls < v.low {
			return v.low
		}
		return ls
	}
	if pos > v.high {
		pos = v.high
	}
	ls := v.lineStartBefore(pos)
	if ls < v.low {
		return v.low
	}
	return ls
}

func (v *View) lineStartBefore(pos int) int {
	idx := sort.Search(len(v.lineStarts), func(i int) bool {
		return v.lineStarts[i] > pos
	})
	return v.lineStarts[idx-1]
}

// LineEndOf returns the offset of the newline ending the line containing
// pos, or the view's upper bound when the line is unterminated.
func (v *View) LineEndOf(pos int) int {
	if pos < v.low {
		pos = v.low
	}
	for i := pos; i < v.high; i++ {
		if v.content[i] == '\n' {
			return i
		}
	}
	return v.high
}

// NextLine returns the offset of the first byte of the line following the
// one containing pos, or the view's upper bound.
func (v *View) NextLine(pos int) int {
	end := v.LineEndOf(pos)
	if end < v.high {
		return end + 1
	}
	return v.high
}

// Line returns the text of the line containing pos, without the newline.
func (v *View) Line(pos int) string {
	return v.Substring(v.LineStartOf(pos), v.LineEndOf(pos))
}

// CountLines returns one plus the number of newlines in [a, b).
func (v *View) CountLines(a, b int) int {
	if a > b {
		a, b = b, a
	}
	count := 1
	for i := a; i < b && i < v.high; i++ {
		if v.content[i] == '\n' {
			count++
		}
	}
	return count
}

// SearchForward finds the first match of re at or after pos, bounded by
// limit. Returns the match group offsets as regexp's FindSubmatchIndex,
// adjusted to absolute buffer offsets, or nil.
func (v *View) SearchForward(re *regexp.Regexp, pos, limit int) []int {
	if pos < v.low {
		pos = v.low
	}
	if limit > v.high {
		limit = v.high
	}
	if pos > limit {
		return nil
	}
	loc := re.FindSubmatchIndex(v.content[pos:limit])
	if loc == nil {
		return nil
	}
	out := make([]int, len(loc))
	for i, o := range loc {
		if o < 0 {
			out[i] = -1
		} else {
			out[i] = o + pos
		}
	}
	return out
}

// SearchBackward finds the last match of re starting before pos, bounded
// below by limit. Group offsets are absolute, or nil when no match exists.
func (v *View) SearchBackward(re *regexp.Regexp, pos, limit int) []int {
	if limit < v.low {
		limit = v.low
	}
	if pos > v.high {
		pos = v.high
	}
	if limit > pos {
		return nil
	}
	locs := re.FindAllSubmatchIndex(v.content[limit:pos], -1)
	if len(locs) == 0 {
		return nil
	}
	loc := locs[len(locs)-1]
	out := make([]int, len(loc))
	for i, o := range loc {
		if o < 0 {
			out[i] = -1
		} else {
			out[i] = o + limit
		}
	}
	return out
}

// MatchAt anchors re at exactly pos (bounded by limit) and returns absolute
// group offsets, or nil. The pattern need not be ^-anchored.
func (v *View) MatchAt(re *regexp.Regexp, pos, limit int) []int {
	loc := v.SearchForward(re, pos, limit)
	if loc == nil || loc[0] != pos {
		return nil
	}
	return loc
}

// NarrowTo restricts the addressable range to [a, b) and returns a restore
// function. Restores nest; use with defer so all exit paths widen.
func (v *View) NarrowTo(a, b int) func() {
	oldLow, oldHigh := v.low, v.high
	if a < 0 {
		a = 0
	}
	if b > len(v.content) {
		b = len(v.content)
	}
	v.low, v.high = a, b
	return func() {
		v.low, v.high = oldLow, oldHigh
	}
}

// WithWideBuffer runs fn with narrowing lifted, restoring it afterwards.
func (v *View) WithWideBuffer(fn func()) {
	oldLow, oldHigh := v.low, v.high
	v.low, v.high = 0, len(v.content)
	defer func() {
		v.low, v.high = oldLow, oldHigh
	}()
	fn()
}

// SkipWhitespaceForward returns the first offset >= pos holding a
// non-blank character, bounded by limit.
func (v *View) SkipWhitespaceForward(pos, limit int) int {
	for pos < limit && pos < v.high {
		switch v.content[pos] {
		case ' ', '\t', '\n', '\r':
			pos++
		default:
			return pos
		}
	}
	return pos
}

// SkipBlankLinesForward returns the start of the first non-blank line at or
// after pos, bounded by limit. Returns limit when only blank lines remain.
func (v *View) SkipBlankLinesForward(pos, limit int) int {
	for pos < limit {
		end := v.LineEndOf(pos)
		if strings.TrimSpace(v.Substring(pos, end)) != "" {
			return pos
		}
		if end >= limit {
			return limit
		}
		pos = end + 1
	}
	return limit
}

// IsBlankLine reports whether the line containing pos is empty or
// whitespace-only.
func (v *View) IsBlankLine(pos int) bool {
	ls := v.LineStartOf(pos)
	le := v.LineEndOf(pos)
	return strings.TrimSpace(v.Substring(ls, le)) == ""
}

// Column returns the 0-based column of pos within its line, with TABs
// counting as one character.
func (v *View) Column(pos int) int {
	return pos - v.LineStartOf(pos)
}

// Indentation returns the width of the leading whitespace of the line
// containing pos, expanding TABs to tabWidth columns.
func (v *View) Indentation(pos, tabWidth int) int {
	ls := v.LineStartOf(pos)
	col := 0
	for i := ls; i < v.high; i++ {
		switch v.content[i] {
		case ' ':
			col++
		case '\t':
			col += tabWidth - col%tabWidth
		default:
			return col
		}
	}
	return col
}
