package vocab

import (
	"context"
	"sort"
)

// WordRecord is a single vocabulary entry.
type WordRecord struct {
	// Index is the stable number of the entry in the source list. It is
	// unique within a corpus and drives range filtering.
	Index int

	// Term is the foreign-language headword.
	Term string

	// Meaning is the translation shown for Term.
	Meaning string

	// Group is an optional category or chapter label.
	Group string

	// Level is an optional CEFR level such as "A1" or "B2".
	Level string

	// Example is an optional example sentence using Term.
	Example string

	// ExampleTranslation is the translation of Example.
	ExampleTranslation string
}

// Source provides the full ordered word corpus.
type Source interface {
	All(ctx context.Context) ([]WordRecord, error)
}

// MemorySource serves records held in memory, e.g. loaded from files.
type MemorySource struct {
	records []WordRecord
}

// NewMemorySource creates a MemorySource. The records are copied and
// sorted by index.
func NewMemorySource(records []WordRecord) *MemorySource {
	cp := make([]WordRecord, len(records))
	copy(cp, records)
	SortByIndex(cp)
	return &MemorySource{records: cp}
}

// All returns a copy of the held records.
func (m *MemorySource) All(_ context.Context) ([]WordRecord, error) {
	out := make([]WordRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

// SortByIndex sorts records in place by ascending index. Records with the
// same index keep their relative order.
func SortByIndex(records []WordRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Index < records[j].Index
	})
}

// Groups returns the distinct non-empty group labels in order of first
// appearance.
func Groups(records []WordRecord) []string {
	seen := make(map[string]bool)
	var groups []string
	for _, r := range records {
		if r.Group == "" || seen[r.Group] {
			continue
		}
		seen[r.Group] = true
		groups = append(groups, r.Group)
	}
	return groups
}

// IndexBounds returns the smallest and largest index in records.
// Both are zero for an empty slice.
func IndexBounds(records []WordRecord) (lo, hi int) {
	for i, r := range records {
		if i == 0 || r.Index < lo {
			lo = r.Index
		}
		if i == 0 || r.Index > hi {
			hi = r.Index
		}
	}
	return lo, hi
}
