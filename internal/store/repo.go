package store

import (
	"context"

	"github.com/abhisek/lexiz/internal/vocab"
)

// WordRepo stores the vocabulary corpus. It satisfies vocab.Source.
type WordRepo interface {
	// ReplaceAll swaps the whole corpus for records in one transaction.
	ReplaceAll(ctx context.Context, records []vocab.WordRecord) error

	// Upsert inserts records, overwriting existing rows with the same index.
	Upsert(ctx context.Context, records []vocab.WordRecord) error

	// All returns every record ordered by index.
	All(ctx context.Context) ([]vocab.WordRecord, error)

	// Query returns the records matching f ordered by index.
	Query(ctx context.Context, f vocab.Filter) ([]vocab.WordRecord, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// Groups returns the distinct non-empty groups in order of first
	// appearance by index.
	Groups(ctx context.Context) ([]string, error)
}

var _ vocab.Source = (WordRepo)(nil)
