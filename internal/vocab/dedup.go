package vocab

import (
	"fmt"
	"sort"
	"strings"
)

// DuplicateIndexError reports indices that occur more than once in a
// corpus. Concatenated source sheets are the usual cause.
type DuplicateIndexError struct {
	Indices []int
}

func (e *DuplicateIndexError) Error() string {
	parts := make([]string, 0, len(e.Indices))
	for i, idx := range e.Indices {
		if i == 10 {
			parts = append(parts, fmt.Sprintf("... (%d more)", len(e.Indices)-10))
			break
		}
		parts = append(parts, fmt.Sprintf("%d", idx))
	}
	return fmt.Sprintf("duplicate word index: %s", strings.Join(parts, ", "))
}

// CheckUnique returns a *DuplicateIndexError if any index repeats.
func CheckUnique(records []WordRecord) error {
	seen := make(map[int]int, len(records))
	for _, r := range records {
		seen[r.Index]++
	}
	var dups []int
	for idx, n := range seen {
		if n > 1 {
			dups = append(dups, idx)
		}
	}
	if len(dups) == 0 {
		return nil
	}
	sort.Ints(dups)
	return &DuplicateIndexError{Indices: dups}
}

// DropDuplicates keeps the first record for each index and returns the
// kept records along with the ones that were dropped.
func DropDuplicates(records []WordRecord) (kept, dropped []WordRecord) {
	seen := make(map[int]bool, len(records))
	kept = make([]WordRecord, 0, len(records))
	for _, r := range records {
		if seen[r.Index] {
			dropped = append(dropped, r)
			continue
		}
		seen[r.Index] = true
		kept = append(kept, r)
	}
	return kept, dropped
}
