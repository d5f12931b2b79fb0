package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lexiz/internal/vocab"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testWords() []vocab.WordRecord {
	return []vocab.WordRecord{
		{Index: 3, Term: "cat", Meaning: "猫", Group: "Animals", Level: "A1"},
		{Index: 1, Term: "apple", Meaning: "りんご", Group: "Food", Level: "A1", Example: "An apple a day.", ExampleTranslation: "一日一個のりんご。"},
		{Index: 2, Term: "dog", Meaning: "犬", Group: "Animals"},
		{Index: 4, Term: "bread", Meaning: "パン", Group: "Food"},
		{Index: 5, Term: "abstract", Meaning: "抽象的な"},
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpen_MigrationIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.WordRepo().ReplaceAll(ctx, testWords()))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	n, err := s.WordRepo().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestWordRepo_ReplaceAllAndAll(t *testing.T) {
	repo := openTestStore(t).WordRepo()
	ctx := context.Background()

	empty, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, repo.ReplaceAll(ctx, testWords()))

	got, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i, r := range got {
		assert.Equal(t, i+1, r.Index)
	}
	assert.Equal(t, "An apple a day.", got[0].Example)
	assert.Equal(t, "一日一個のりんご。", got[0].ExampleTranslation)

	require.NoError(t, repo.ReplaceAll(ctx, testWords()[:2]))
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestWordRepo_ReplaceAllRejectsDuplicates(t *testing.T) {
	repo := openTestStore(t).WordRepo()
	ctx := context.Background()
	require.NoError(t, repo.ReplaceAll(ctx, testWords()))

	dup := append(testWords(), vocab.WordRecord{Index: 1, Term: "again", Meaning: "再び"})
	err := repo.ReplaceAll(ctx, dup)
	var dupErr *vocab.DuplicateIndexError
	require.True(t, errors.As(err, &dupErr))

	// The previous corpus is untouched.
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestWordRepo_Upsert(t *testing.T) {
	repo := openTestStore(t).WordRepo()
	ctx := context.Background()
	require.NoError(t, repo.ReplaceAll(ctx, testWords()))

	require.NoError(t, repo.Upsert(ctx, []vocab.WordRecord{
		{Index: 2, Term: "dog", Meaning: "いぬ", Group: "Animals"},
		{Index: 6, Term: "fish", Meaning: "魚", Group: "Animals"},
	}))

	got, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, got, 6)
	assert.Equal(t, "いぬ", got[1].Meaning)
	assert.Equal(t, "fish", got[5].Term)
}

func TestWordRepo_UpsertLargeBatch(t *testing.T) {
	repo := openTestStore(t).WordRepo()
	ctx := context.Background()

	records := make([]vocab.WordRecord, 1200)
	for i := range records {
		records[i] = vocab.WordRecord{Index: i + 1, Term: "t", Meaning: "m"}
	}
	require.NoError(t, repo.Upsert(ctx, records))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1200, n)
}

func TestWordRepo_Query(t *testing.T) {
	repo := openTestStore(t).WordRepo()
	ctx := context.Background()
	require.NoError(t, repo.ReplaceAll(ctx, testWords()))

	tests := []struct {
		name   string
		filter vocab.Filter
		want   []int
	}{
		{"no filter", vocab.Filter{}, []int{1, 2, 3, 4, 5}},
		{"from", vocab.Filter{From: 4}, []int{4, 5}},
		{"to", vocab.Filter{To: 2}, []int{1, 2}},
		{"range", vocab.Filter{From: 2, To: 4}, []int{2, 3, 4}},
		{"group case-insensitive", vocab.Filter{Group: " animals "}, []int{2, 3}},
		{"group and range", vocab.Filter{From: 2, Group: "Food"}, []int{4}},
		{"nothing", vocab.Filter{From: 10}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Query(ctx, tt.filter)
			require.NoError(t, err)
			idx := make([]int, 0, len(got))
			for _, r := range got {
				idx = append(idx, r.Index)
			}
			assert.Equal(t, tt.want, idx)

			// The database agrees with the in-memory filter.
			assert.Equal(t, tt.filter.Apply(mustAll(t, repo)), got)
		})
	}
}

func TestWordRepo_QueryGroupFoldsNonASCII(t *testing.T) {
	repo := openTestStore(t).WordRepo()
	ctx := context.Background()
	words := []vocab.WordRecord{
		{Index: 1, Term: "Ärger", Meaning: "anger", Group: "Ärger"},
		{Index: 2, Term: "Öl", Meaning: "oil", Group: "ÖL"},
		{Index: 3, Term: "Hund", Meaning: "dog", Group: "Tiere"},
	}
	require.NoError(t, repo.ReplaceAll(ctx, words))

	for _, group := range []string{"ärger", "öl", "ÄRGER"} {
		t.Run(group, func(t *testing.T) {
			f := vocab.Filter{Group: group}
			got, err := repo.Query(ctx, f)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, f.Apply(words), got)
		})
	}

	got, err := repo.Query(ctx, vocab.Filter{From: 2, Group: "ärger"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWordRepo_Groups(t *testing.T) {
	repo := openTestStore(t).WordRepo()
	ctx := context.Background()

	groups, err := repo.Groups(ctx)
	require.NoError(t, err)
	assert.Empty(t, groups)

	require.NoError(t, repo.ReplaceAll(ctx, testWords()))
	groups, err = repo.Groups(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Food", "Animals"}, groups)
	assert.Equal(t, vocab.Groups(mustAll(t, repo)), groups)
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("LEXIZ_DB", filepath.Join(dir, "custom", "words.db"))
	p, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "custom", "words.db"), p)
	assert.DirExists(t, filepath.Join(dir, "custom"))

	t.Setenv("LEXIZ_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "lexiz", "lexiz.db"), p)
}

func mustAll(t *testing.T, repo WordRepo) []vocab.WordRecord {
	t.Helper()
	all, err := repo.All(context.Background())
	require.NoError(t, err)
	return all
}
