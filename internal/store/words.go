package store

import (
	"context"
	"fmt"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/lexiz/internal/vocab"
)

const (
	tableWords = "words"

	colIdx                = "idx"
	colTerm               = "term"
	colMeaning            = "meaning"
	colGroup              = "grp"
	colLevel              = "level"
	colExample            = "example"
	colExampleTranslation = "example_translation"
)

var wordColumns = []string{
	colIdx, colTerm, colMeaning, colGroup, colLevel, colExample, colExampleTranslation,
}

// insertBatch bounds rows per INSERT to stay under SQLite's variable limit.
const insertBatch = 500

// wordRepo implements WordRepo with ent's SQL builders.
type wordRepo struct {
	drv *entsql.Driver
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *wordRepo) ReplaceAll(ctx context.Context, records []vocab.WordRecord) error {
	if err := vocab.CheckUnique(records); err != nil {
		return err
	}

	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	query, args := builder().Delete(tableWords).Query()
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		tx.Rollback()
		return fmt.Errorf("clear words: %w", err)
	}
	if err := insertWords(ctx, tx, records, false); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *wordRepo) Upsert(ctx context.Context, records []vocab.WordRecord) error {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := insertWords(ctx, tx, records, true); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func insertWords(ctx context.Context, ex dialect.ExecQuerier, records []vocab.WordRecord, upsert bool) error {
	for start := 0; start < len(records); start += insertBatch {
		end := min(start+insertBatch, len(records))

		ins := builder().Insert(tableWords).Columns(wordColumns...)
		for _, rec := range records[start:end] {
			ins.Values(rec.Index, rec.Term, rec.Meaning, strings.TrimSpace(rec.Group),
				rec.Level, rec.Example, rec.ExampleTranslation)
		}
		if upsert {
			ins.OnConflict(
				entsql.ConflictColumns(colIdx),
				entsql.ResolveWithNewValues(),
			)
		}

		query, args := ins.Query()
		if err := ex.Exec(ctx, query, args, nil); err != nil {
			return fmt.Errorf("insert words: %w", err)
		}
	}
	return nil
}

func (r *wordRepo) All(ctx context.Context) ([]vocab.WordRecord, error) {
	return r.Query(ctx, vocab.Filter{})
}

func (r *wordRepo) Query(ctx context.Context, f vocab.Filter) ([]vocab.WordRecord, error) {
	sel := builder().Select(wordColumns...).From(entsql.Table(tableWords))

	var preds []*entsql.Predicate
	if f.From > 0 {
		preds = append(preds, entsql.GTE(colIdx, f.From))
	}
	if f.To > 0 {
		preds = append(preds, entsql.LTE(colIdx, f.To))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	sel.OrderBy(colIdx)

	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
	defer rows.Close()

	out := []vocab.WordRecord{}
	for rows.Next() {
		var rec vocab.WordRecord
		if err := rows.Scan(&rec.Index, &rec.Term, &rec.Meaning, &rec.Group,
			&rec.Level, &rec.Example, &rec.ExampleTranslation); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate words: %w", err)
	}
	// Group matching stays in Go: SQLite's LOWER folds ASCII only.
	return f.Apply(out), nil
}

func (r *wordRepo) Count(ctx context.Context) (int, error) {
	query, args := builder().Select(entsql.Count("*")).From(entsql.Table(tableWords)).Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return 0, fmt.Errorf("count words: %w", err)
	}
	defer rows.Close()

	var n int
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, fmt.Errorf("scan count: %w", err)
		}
	}
	return n, rows.Err()
}

func (r *wordRepo) Groups(ctx context.Context) ([]string, error) {
	query, args := builder().Select(colGroup).
		From(entsql.Table(tableWords)).
		Where(entsql.NEQ(colGroup, "")).
		GroupBy(colGroup).
		OrderBy(entsql.Min(colIdx)).
		Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query groups: %w", err)
	}
	defer rows.Close()

	var groups []string
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}
