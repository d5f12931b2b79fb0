package vocab

import "strings"

// Filter selects the records eligible for a quiz. Zero values disable the
// corresponding constraint.
type Filter struct {
	From  int    // inclusive lower index bound (0 = unbounded)
	To    int    // inclusive upper index bound (0 = unbounded)
	Group string // exact group label, case-insensitive ("" = all groups)
}

// Match reports whether r satisfies the filter.
func (f Filter) Match(r WordRecord) bool {
	if f.From > 0 && r.Index < f.From {
		return false
	}
	if f.To > 0 && r.Index > f.To {
		return false
	}
	if f.Group != "" && !strings.EqualFold(strings.TrimSpace(r.Group), strings.TrimSpace(f.Group)) {
		return false
	}
	return true
}

// Apply returns the records matching the filter, preserving order.
func (f Filter) Apply(records []WordRecord) []WordRecord {
	out := make([]WordRecord, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
