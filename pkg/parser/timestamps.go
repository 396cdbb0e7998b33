package parser

import (
	"strconv"
	"strings"

	"github.com/yaklabco/orgtree/pkg/orgast"
	"github.com/yaklabco/orgtree/pkg/syntax"
)

// parseTimestampAt recognizes a timestamp object starting at pos, which
// must hold '<' or '['. Returns nil when no well-formed timestamp starts
// there. Handles time ranges within one stamp and the X--Y double form.
func (p *Parser) parseTimestampAt(pos, limit int) *orgast.Node {
	v := p.View

	if m := v.MatchAt(syntax.DiaryTimestamp, pos, limit); m != nil {
		n := orgast.NewNode(orgast.NodeTimestamp)
		n.Begin = pos
		n.End = m[1]
		n.Timestamp = &orgast.TimestampAttrs{
			Type:      orgast.TimestampDiary,
			RawValue:  v.Substring(pos, m[1]),
			HourStart: -1, HourEnd: -1,
		}
		p.consumeObjectBlanks(n, limit)
		return n
	}

	open := v.CharAt(pos)
	if open != '<' && open != '[' {
		return nil
	}
	close := byte('>')
	active := true
	if open == '[' {
		close = ']'
		active = false
	}

	attrs := &orgast.TimestampAttrs{HourStart: -1, HourEnd: -1}
	endPos, ranged, ok := p.scanStampPart(pos, limit, close, attrs, false)
	if !ok {
		return nil
	}

	if active {
		attrs.Type = orgast.TimestampActive
	} else {
		attrs.Type = orgast.TimestampInactive
	}
	if ranged {
		if active {
			attrs.Type = orgast.TimestampActiveRange
		} else {
			attrs.Type = orgast.TimestampInactiveRange
		}
	}

	// Double form: X--Y with a second stamp of the same flavor.
	if endPos+2 < limit && v.CharAt(endPos) == '-' && v.CharAt(endPos+1) == '-' &&
		v.CharAt(endPos+2) == open {
		if end2, _, ok2 := p.scanStampPart(endPos+2, limit, close, attrs, true); ok2 {
			endPos = end2
			if active {
				attrs.Type = orgast.TimestampActiveRange
			} else {
				attrs.Type = orgast.TimestampInactiveRange
			}
		}
	}

	attrs.RawValue = v.Substring(pos, endPos)
	n := orgast.NewNode(orgast.NodeTimestamp)
	n.Begin = pos
	n.End = endPos
	n.Timestamp = attrs
	p.consumeObjectBlanks(n, limit)
	return n
}

// scanStampPart parses one <...> or [...] stamp into attrs. With second
// set, date and time fill the end slots. Returns the position after the
// closing bracket, whether an intra-stamp time range was seen, and success.
func (p *Parser) scanStampPart(pos, limit int, close byte, attrs *orgast.TimestampAttrs, second bool) (int, bool, bool) {
	v := p.View
	lineEnd := v.LineEndOf(pos)
	if lineEnd > limit {
		lineEnd = limit
	}

	cur := pos + 1
	m := v.MatchAt(syntax.TimestampDate, cur, lineEnd)
	if m == nil {
		return 0, false, false
	}
	year, _ := strconv.Atoi(v.Substring(m[2], m[3]))
	month, _ := strconv.Atoi(v.Substring(m[4], m[5]))
	day, _ := strconv.Atoi(v.Substring(m[6], m[7]))
	if second {
		attrs.YearEnd, attrs.MonthEnd, attrs.DayEnd = year, month, day
	} else {
		attrs.YearStart, attrs.MonthStart, attrs.DayStart = year, month, day
		attrs.YearEnd, attrs.MonthEnd, attrs.DayEnd = year, month, day
	}
	cur = m[1]

	ranged := false
	// The remainder is whitespace-separated words: day name, time or
	// time range, repeater and warning cookies.
	for {
		// Locate the close bracket or next word.
		for cur < lineEnd && (v.CharAt(cur) == ' ' || v.CharAt(cur) == '\t') {
			cur++
		}
		if cur >= lineEnd {
			return 0, false, false
		}
		if v.CharAt(cur) == close {
			return cur + 1, ranged, true
		}
		wordEnd := cur
		for wordEnd < lineEnd {
			c := v.CharAt(wordEnd)
			if c == ' ' || c == '\t' || c == close {
				break
			}
			wordEnd++
		}
		word := v.Substring(cur, wordEnd)

		if tm := syntax.TimestampTime.FindStringSubmatch(word); tm != nil {
			h, _ := strconv.Atoi(tm[1])
			mi, _ := strconv.Atoi(tm[2])
			if second {
				attrs.HourEnd, attrs.MinuteEnd = h, mi
			} else {
				attrs.HourStart, attrs.MinuteStart = h, mi
				attrs.HourEnd, attrs.MinuteEnd = h, mi
				if tm[3] != "" {
					h2, _ := strconv.Atoi(tm[3])
					m2, _ := strconv.Atoi(tm[4])
					attrs.HourEnd, attrs.MinuteEnd = h2, m2
					ranged = true
				}
			}
		} else if mm := syntax.TimestampModifier.FindStringSubmatch(word); mm != nil {
			value, _ := strconv.Atoi(mm[2])
			unit := mm[3][0]
			switch mm[1] {
			case "+":
				attrs.RepeaterType = orgast.RepeaterCumulate
				attrs.RepeaterValue, attrs.RepeaterUnit = value, unit
			case "++":
				attrs.RepeaterType = orgast.RepeaterCatchUp
				attrs.RepeaterValue, attrs.RepeaterUnit = value, unit
			case ".+":
				attrs.RepeaterType = orgast.RepeaterRestart
				attrs.RepeaterValue, attrs.RepeaterUnit = value, unit
			case "-":
				attrs.WarningType = orgast.WarningAll
				attrs.WarningValue, attrs.WarningUnit = value, unit
			case "--":
				attrs.WarningType = orgast.WarningFirst
				attrs.WarningValue, attrs.WarningUnit = value, unit
			}
		} else if !isDayName(word) {
			return 0, false, false
		}
		cur = wordEnd
	}
}

// isDayName accepts the free-form day name word of a timestamp: any word
// not starting with a digit or a modifier sign.
func isDayName(word string) bool {
	if word == "" {
		return false
	}
	c := word[0]
	if c >= '0' && c <= '9' {
		return false
	}
	if c == '+' || c == '-' {
		return false
	}
	return !strings.ContainsAny(word, "<>[]")
}
