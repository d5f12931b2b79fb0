package vocab

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []WordRecord {
	return []WordRecord{
		{Index: 3, Term: "cat", Meaning: "猫", Group: "Animals"},
		{Index: 1, Term: "apple", Meaning: "りんご", Group: "Food"},
		{Index: 2, Term: "dog", Meaning: "犬", Group: "Animals"},
		{Index: 4, Term: "bread", Meaning: "パン", Group: "Food"},
		{Index: 5, Term: "run", Meaning: "走る"},
	}
}

func TestFilter_Apply(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		name   string
		filter Filter
		want   []int
	}{
		{"no constraints", Filter{}, []int{3, 1, 2, 4, 5}},
		{"inclusive range", Filter{From: 2, To: 4}, []int{3, 2, 4}},
		{"lower bound only", Filter{From: 4}, []int{4, 5}},
		{"upper bound only", Filter{To: 2}, []int{1, 2}},
		{"group case-insensitive", Filter{Group: "animals"}, []int{3, 2}},
		{"group and range", Filter{From: 3, Group: "Food"}, []int{4}},
		{"nothing matches", Filter{From: 10}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(records)
			indices := make([]int, 0, len(got))
			for _, r := range got {
				indices = append(indices, r.Index)
			}
			assert.Equal(t, tt.want, indices)
		})
	}
}

func TestGroups(t *testing.T) {
	assert.Equal(t, []string{"Animals", "Food"}, Groups(sampleRecords()))
	assert.Nil(t, Groups(nil))
}

func TestIndexBounds(t *testing.T) {
	lo, hi := IndexBounds(sampleRecords())
	assert.Equal(t, 1, lo)
	assert.Equal(t, 5, hi)

	lo, hi = IndexBounds(nil)
	assert.Zero(t, lo)
	assert.Zero(t, hi)
}

func TestMemorySource_SortsAndCopies(t *testing.T) {
	records := sampleRecords()
	src := NewMemorySource(records)

	got, err := src.All(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i, r := range got {
		assert.Equal(t, i+1, r.Index)
	}

	// Mutating the result must not leak into the source.
	got[0].Term = "changed"
	again, err := src.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "apple", again[0].Term)

	// Nor does mutating the input slice.
	assert.Equal(t, 3, records[0].Index)
}

func TestCheckUnique(t *testing.T) {
	require.NoError(t, CheckUnique(sampleRecords()))

	dup := append(sampleRecords(), WordRecord{Index: 2, Term: "dig"}, WordRecord{Index: 1, Term: "ape"})
	err := CheckUnique(dup)
	require.Error(t, err)

	var dupErr *DuplicateIndexError
	require.True(t, errors.As(err, &dupErr))
	assert.Equal(t, []int{1, 2}, dupErr.Indices)
	assert.Contains(t, err.Error(), "1, 2")
}

func TestDropDuplicates(t *testing.T) {
	records := []WordRecord{
		{Index: 1, Term: "first"},
		{Index: 2, Term: "two"},
		{Index: 1, Term: "second"},
	}
	kept, dropped := DropDuplicates(records)
	require.Len(t, kept, 2)
	assert.Equal(t, "first", kept[0].Term)
	require.Len(t, dropped, 1)
	assert.Equal(t, "second", dropped[0].Term)
}
