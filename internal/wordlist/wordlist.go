// Package wordlist loads vocabulary records from spreadsheet, CSV and JSON
// files.
package wordlist

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/abhisek/lexiz/internal/vocab"
)

// FormatError reports a file that could not be interpreted as a word list.
type FormatError struct {
	Path   string
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("word list %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("word list %s: %s", e.Path, e.Reason)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Options controls how LoadFiles treats the combined result.
type Options struct {
	// SkipDuplicates keeps the first record for each index instead of
	// failing with *vocab.DuplicateIndexError.
	SkipDuplicates bool
}

// Result is the outcome of loading one or more files.
type Result struct {
	Records []vocab.WordRecord
	// Skipped counts rows dropped for missing index, term or meaning.
	Skipped int
	// Duplicates lists records dropped because their index was already
	// seen. Only filled with SkipDuplicates.
	Duplicates []vocab.WordRecord
}

// LoadFile reads a single word list, picking the parser by extension.
func LoadFile(path string) ([]vocab.WordRecord, int, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return loadXLSX(path)
	case ".csv":
		return loadCSV(path)
	case ".json":
		return loadJSON(path)
	default:
		return nil, 0, &FormatError{Path: path, Reason: "unsupported file extension"}
	}
}

// LoadFiles reads paths in order and concatenates their records. Indices
// must be unique across all files unless opts.SkipDuplicates is set.
func LoadFiles(opts Options, paths ...string) (Result, error) {
	var res Result
	for _, p := range paths {
		recs, skipped, err := LoadFile(p)
		if err != nil {
			return Result{}, err
		}
		res.Records = append(res.Records, recs...)
		res.Skipped += skipped
	}

	if opts.SkipDuplicates {
		res.Records, res.Duplicates = vocab.DropDuplicates(res.Records)
	} else if err := vocab.CheckUnique(res.Records); err != nil {
		return Result{}, err
	}

	vocab.SortByIndex(res.Records)
	return res, nil
}

// column identifies a word record field in a tabular file.
type column int

const (
	colGroup column = iota
	colIndex
	colTerm
	colLevel
	colMeaning
	colExample
	colExampleTranslation
	numColumns
)

// headerAliases maps normalized header text to the column it names.
var headerAliases = map[string]column{
	"group":               colGroup,
	"chapter":             colGroup,
	"no":                  colIndex,
	"no.":                 colIndex,
	"index":               colIndex,
	"id":                  colIndex,
	"word":                colTerm,
	"term":                colTerm,
	"単語":                  colTerm,
	"cefr":                colLevel,
	"level":               colLevel,
	"meaning":             colMeaning,
	"definition":          colMeaning,
	"語の意味":                colMeaning,
	"example":             colExample,
	"example_en":          colExample,
	"用例（英語）":              colExample,
	"example_translation": colExampleTranslation,
	"example_ja":          colExampleTranslation,
	"用例（日本語）":             colExampleTranslation,
}

// positional is the column order used when the header names nothing we
// recognise.
var positional = [numColumns]int{0, 1, 2, 3, 4, 5, 6}

func normalizeHeader(h string) string {
	h = strings.TrimSpace(strings.ToLower(h))
	h = strings.ReplaceAll(h, " ", "_")
	// Half-width parentheses are common in hand-edited sheets.
	h = strings.NewReplacer("(", "（", ")", "）").Replace(h)
	return h
}

// mapHeader resolves the column positions for a header row. The index,
// term and meaning columns must be found for name-based mapping to be
// used; otherwise the positional layout applies.
func mapHeader(header []string) [numColumns]int {
	var idx [numColumns]int
	for i := range idx {
		idx[i] = -1
	}
	for i, h := range header {
		c, ok := headerAliases[normalizeHeader(h)]
		if ok && idx[c] < 0 {
			idx[c] = i
		}
	}
	if idx[colIndex] < 0 || idx[colTerm] < 0 || idx[colMeaning] < 0 {
		return positional
	}
	return idx
}

// recordFromRow builds a record from one data row. ok is false for rows
// without a numeric index or without term and meaning.
func recordFromRow(row []string, cols [numColumns]int) (vocab.WordRecord, bool) {
	cell := func(c column) string {
		i := cols[c]
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	index, err := parseIndex(cell(colIndex))
	if err != nil {
		return vocab.WordRecord{}, false
	}
	rec := vocab.WordRecord{
		Index:              index,
		Term:               cell(colTerm),
		Meaning:            cell(colMeaning),
		Group:              cell(colGroup),
		Level:              cell(colLevel),
		Example:            cell(colExample),
		ExampleTranslation: cell(colExampleTranslation),
	}
	if rec.Term == "" || rec.Meaning == "" {
		return vocab.WordRecord{}, false
	}
	return rec, true
}

// parseIndex accepts integers and integral floats ("12", "12.0"), which is
// how spreadsheet tools often export whole numbers.
func parseIndex(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("non-integral index %q", s)
	}
	return int(f), nil
}

// fromRows converts a header plus data rows into records.
func fromRows(rows [][]string) ([]vocab.WordRecord, int) {
	if len(rows) == 0 {
		return nil, 0
	}
	cols := mapHeader(rows[0])
	var (
		out     []vocab.WordRecord
		skipped int
	)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		rec, ok := recordFromRow(row, cols)
		if !ok {
			skipped++
			continue
		}
		out = append(out, rec)
	}
	return out, skipped
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
