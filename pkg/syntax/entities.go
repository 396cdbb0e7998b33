package syntax

// Entity describes one named entity and its renderings.
type Entity struct {
	Name      string
	Latex     string
	HTML      string
	ASCII     string
	UTF8      string
	LatexMath bool
}

// Entities is the bundled entity table. It covers the names the
// interpreter and the tests exercise; hosts may extend it.
var Entities = map[string]Entity{
	"alpha":   {Name: "alpha", Latex: `\alpha`, HTML: "&alpha;", ASCII: "alpha", UTF8: "α", LatexMath: true},
	"beta":    {Name: "beta", Latex: `\beta`, HTML: "&beta;", ASCII: "beta", UTF8: "β", LatexMath: true},
	"gamma":   {Name: "gamma", Latex: `\gamma`, HTML: "&gamma;", ASCII: "gamma", UTF8: "γ", LatexMath: true},
	"delta":   {Name: "delta", Latex: `\delta`, HTML: "&delta;", ASCII: "delta", UTF8: "δ", LatexMath: true},
	"pi":      {Name: "pi", Latex: `\pi`, HTML: "&pi;", ASCII: "pi", UTF8: "π", LatexMath: true},
	"sigma":   {Name: "sigma", Latex: `\sigma`, HTML: "&sigma;", ASCII: "sigma", UTF8: "σ", LatexMath: true},
	"omega":   {Name: "omega", Latex: `\omega`, HTML: "&omega;", ASCII: "omega", UTF8: "ω", LatexMath: true},
	"dash":    {Name: "dash", Latex: "--", HTML: "&ndash;", ASCII: "--", UTF8: "–"},
	"mdash":   {Name: "mdash", Latex: "---", HTML: "&mdash;", ASCII: "---", UTF8: "—"},
	"hellip":  {Name: "hellip", Latex: `\ldots{}`, HTML: "&hellip;", ASCII: "...", UTF8: "…"},
	"nbsp":    {Name: "nbsp", Latex: "~", HTML: "&nbsp;", ASCII: " ", UTF8: " "},
	"amp":     {Name: "amp", Latex: `\&`, HTML: "&amp;", ASCII: "&", UTF8: "&"},
	"lt":      {Name: "lt", Latex: `<`, HTML: "&lt;", ASCII: "<", UTF8: "<"},
	"gt":      {Name: "gt", Latex: `>`, HTML: "&gt;", ASCII: ">", UTF8: ">"},
	"copy":    {Name: "copy", Latex: `\copyright{}`, HTML: "&copy;", ASCII: "(c)", UTF8: "©"},
	"deg":     {Name: "deg", Latex: `\textdegree{}`, HTML: "&deg;", ASCII: "deg", UTF8: "°"},
	"pm":      {Name: "pm", Latex: `\pm`, HTML: "&plusmn;", ASCII: "+-", UTF8: "±", LatexMath: true},
	"times":   {Name: "times", Latex: `\times`, HTML: "&times;", ASCII: "*", UTF8: "×", LatexMath: true},
	"div":     {Name: "div", Latex: `\div`, HTML: "&divide;", ASCII: "/", UTF8: "÷", LatexMath: true},
	"infin":   {Name: "infin", Latex: `\infty`, HTML: "&infin;", ASCII: "inf", UTF8: "∞", LatexMath: true},
	"rarr":    {Name: "rarr", Latex: `\rightarrow`, HTML: "&rarr;", ASCII: "->", UTF8: "→", LatexMath: true},
	"larr":    {Name: "larr", Latex: `\leftarrow`, HTML: "&larr;", ASCII: "<-", UTF8: "←", LatexMath: true},
	"le":      {Name: "le", Latex: `\le`, HTML: "&le;", ASCII: "<=", UTF8: "≤", LatexMath: true},
	"ge":      {Name: "ge", Latex: `\ge`, HTML: "&ge;", ASCII: ">=", UTF8: "≥", LatexMath: true},
	"ne":      {Name: "ne", Latex: `\ne`, HTML: "&ne;", ASCII: "!=", UTF8: "≠", LatexMath: true},
	"smiley":  {Name: "smiley", Latex: `\smiley{}`, HTML: "&#9786;", ASCII: ":-)", UTF8: "☺"},
	"checkmark": {Name: "checkmark", Latex: `\checkmark`, HTML: "&#10003;", ASCII: "[OK]", UTF8: "✓", LatexMath: true},
}

// LookupEntity returns the entity for name, if known.
func LookupEntity(name string) (Entity, bool) {
	e, ok := Entities[name]
	return e, ok
}
