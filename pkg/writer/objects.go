package writer

import (
	"fmt"
	"time"

	"github.com/yaklabco/orgtree/pkg/orgast"
)

// object renders the body of one object; PostBlank spaces are added by
// Render.
func (w *Writer) object(n *orgast.Node) string {
	switch n.Kind {
	case orgast.NodeText:
		return n.Raw
	case orgast.NodeBold:
		return "*" + w.renderChildren(n) + "*"
	case orgast.NodeItalic:
		return "/" + w.renderChildren(n) + "/"
	case orgast.NodeUnderline:
		return "_" + w.renderChildren(n) + "_"
	case orgast.NodeStrikeThrough:
		return "+" + w.renderChildren(n) + "+"
	case orgast.NodeCode:
		return "~" + n.Raw + "~"
	case orgast.NodeVerbatim:
		return "=" + n.Raw + "="
	case orgast.NodeEntity:
		out := "\\" + n.Entity.Name
		if n.Entity.UseBrackets {
			out += "{}"
		}
		return out
	case orgast.NodeLatexFragment:
		return n.Raw
	case orgast.NodeLineBreak:
		return "\\\\\n"
	case orgast.NodeLink:
		return w.link(n)
	case orgast.NodeMacro:
		return n.Raw
	case orgast.NodeExportSnippet:
		return "@@" + n.Snippet.Backend + ":" + n.Raw + "@@"
	case orgast.NodeFootnoteReference:
		return w.footnoteReference(n)
	case orgast.NodeStatisticsCookie:
		return n.Cookie.Value
	case orgast.NodeTarget:
		return "<<" + n.Target.Value + ">>"
	case orgast.NodeRadioTarget:
		return "<<<" + w.renderChildren(n) + ">>>"
	case orgast.NodeTimestamp:
		return w.timestamp(n)
	case orgast.NodeSubscript:
		return w.script(n, "_")
	case orgast.NodeSuperscript:
		return w.script(n, "^")
	case orgast.NodeInlineSrcBlock:
		out := "src_" + n.InlineSrc.Language
		if n.InlineSrc.Parameters != "" {
			out += "[" + n.InlineSrc.Parameters + "]"
		}
		return out + "{" + n.Raw + "}"
	case orgast.NodeInlineBabelCall:
		out := "call_" + n.Call.Call
		if n.Call.InsideHeader != "" {
			out += "[" + n.Call.InsideHeader + "]"
		}
		out += "(" + n.Call.Arguments + ")"
		if n.Call.EndHeader != "" {
			out += "[" + n.Call.EndHeader + "]"
		}
		return out
	case orgast.NodeTableCell:
		return w.renderChildren(n)
	default:
		return n.Raw
	}
}

func (w *Writer) script(n *orgast.Node, marker string) string {
	body := w.renderChildren(n)
	if n.Script != nil && n.Script.UseBrackets {
		return marker + "{" + body + "}"
	}
	return marker + body
}

func (w *Writer) link(n *orgast.Node) string {
	a := n.Link
	switch a.Format {
	case orgast.LinkPlain:
		return a.RawLink
	case orgast.LinkAngle:
		return "<" + a.RawLink + ">"
	case orgast.LinkRadio:
		return a.Path
	default:
		out := "[[" + a.RawLink + "]"
		if n.HasChildren() {
			out += "[" + w.renderChildren(n) + "]"
		}
		return out + "]"
	}
}

func (w *Writer) footnoteReference(n *orgast.Node) string {
	a := n.Footnote
	out := "[fn:" + a.Label
	if a.Type == orgast.FootnoteInline {
		out += ":" + w.renderSecondary(a.Definition)
	}
	return out + "]"
}

// timestamp reconstructs the textual form of a timestamp from its parsed
// attributes.
func (w *Writer) timestamp(n *orgast.Node) string {
	a := n.Timestamp
	if a.Type == orgast.TimestampDiary {
		return a.RawValue
	}

	open, close := "<", ">"
	if a.Type == orgast.TimestampInactive || a.Type == orgast.TimestampInactiveRange {
		open, close = "[", "]"
	}

	hasTime := a.HourStart >= 0
	sameDate := a.YearStart == a.YearEnd && a.MonthStart == a.MonthEnd &&
		a.DayStart == a.DayEnd
	isRange := a.Type == orgast.TimestampActiveRange ||
		a.Type == orgast.TimestampInactiveRange

	stamp := func(year, month, day, hour, minute int, withTime bool) string {
		s := fmt.Sprintf("%04d-%02d-%02d %s", year, month, day,
			dayName(year, month, day))
		if withTime {
			s += fmt.Sprintf(" %d:%02d", hour, minute)
		}
		return s
	}

	cookies := ""
	switch a.RepeaterType {
	case orgast.RepeaterCumulate:
		cookies += fmt.Sprintf(" +%d%c", a.RepeaterValue, a.RepeaterUnit)
	case orgast.RepeaterCatchUp:
		cookies += fmt.Sprintf(" ++%d%c", a.RepeaterValue, a.RepeaterUnit)
	case orgast.RepeaterRestart:
		cookies += fmt.Sprintf(" .+%d%c", a.RepeaterValue, a.RepeaterUnit)
	}
	switch a.WarningType {
	case orgast.WarningAll:
		cookies += fmt.Sprintf(" -%d%c", a.WarningValue, a.WarningUnit)
	case orgast.WarningFirst:
		cookies += fmt.Sprintf(" --%d%c", a.WarningValue, a.WarningUnit)
	}

	if isRange && sameDate && hasTime {
		// Intra-stamp time range.
		s := stamp(a.YearStart, a.MonthStart, a.DayStart, a.HourStart, a.MinuteStart, true)
		s += fmt.Sprintf("-%d:%02d", a.HourEnd, a.MinuteEnd)
		return open + s + cookies + close
	}
	if isRange && !sameDate {
		first := open + stamp(a.YearStart, a.MonthStart, a.DayStart,
			a.HourStart, a.MinuteStart, hasTime) + cookies + close
		second := open + stamp(a.YearEnd, a.MonthEnd, a.DayEnd,
			a.HourEnd, a.MinuteEnd, a.HourEnd >= 0) + close
		return first + "--" + second
	}
	return open + stamp(a.YearStart, a.MonthStart, a.DayStart,
		a.HourStart, a.MinuteStart, hasTime) + cookies + close
}

// dayName returns the three-letter weekday of a date.
func dayName(year, month, day int) string {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Format("Mon")
}
