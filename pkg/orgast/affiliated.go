package orgast

// AffiliatedValue is one occurrence of an affiliated keyword. For parsed
// keys the value is a secondary string; for all others it is raw text.
// Dual keys may additionally carry a bracketed secondary value.
type AffiliatedValue struct {
	Value           string
	Parsed          []*Node
	Secondary       string
	ParsedSecondary []*Node

	// Buffer ranges of the primary and secondary values, used to parse
	// them lazily as secondary strings. End-exclusive; zero when absent.
	ValueBegin     int
	ValueEnd       int
	SecondaryBegin int
	SecondaryEnd   int
}

// Affiliated holds the affiliated metadata collected in front of an
// element. Entries are keyed by the normalized keyword (lowercase, aliases
// resolved). Values for multi keys accumulate most-recent-first; the
// interpreter restores original order.
type Affiliated struct {
	Entries map[string][]AffiliatedValue
}

// NewAffiliated returns an empty metadata record.
func NewAffiliated() *Affiliated {
	return &Affiliated{Entries: make(map[string][]AffiliatedValue)}
}

// IsEmpty returns true when no keyword was collected.
func (a *Affiliated) IsEmpty() bool {
	return a == nil || len(a.Entries) == 0
}

// Get returns the most recent value recorded for key, and whether any was.
func (a *Affiliated) Get(key string) (AffiliatedValue, bool) {
	if a == nil {
		return AffiliatedValue{}, false
	}
	vs := a.Entries[key]
	if len(vs) == 0 {
		return AffiliatedValue{}, false
	}
	return vs[0], true
}

// Add prepends a value for key, so the most recent occurrence is first.
func (a *Affiliated) Add(key string, v AffiliatedValue) {
	a.Entries[key] = append([]AffiliatedValue{v}, a.Entries[key]...)
}

// Set replaces all values for key with a single one.
func (a *Affiliated) Set(key string, v AffiliatedValue) {
	a.Entries[key] = []AffiliatedValue{v}
}

// Shift offsets the positions of every parsed secondary string by delta.
func (a *Affiliated) Shift(delta int) {
	if a == nil {
		return
	}
	for _, vs := range a.Entries {
		for _, v := range vs {
			for _, obj := range v.Parsed {
				shiftObjects(obj, delta)
			}
			for _, obj := range v.ParsedSecondary {
				shiftObjects(obj, delta)
			}
		}
	}
}

func shiftObjects(n *Node, delta int) {
	n.Shift(delta)
	for c := n.FirstChild; c != nil; c = c.Next {
		shiftObjects(c, delta)
	}
}
