package wordlist

import (
	"encoding/csv"
	"os"
	"strings"

	"github.com/abhisek/lexiz/internal/vocab"
)

func loadCSV(path string) ([]vocab.WordRecord, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, &FormatError{Path: path, Reason: "open file", Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, 0, &FormatError{Path: path, Reason: "parse csv", Err: err}
	}
	if len(rows) == 0 {
		return nil, 0, &FormatError{Path: path, Reason: "file is empty"}
	}
	// Excel's UTF-8 export prefixes a byte order mark.
	if len(rows[0]) > 0 {
		rows[0][0] = trimBOM(rows[0][0])
	}

	recs, skipped := fromRows(rows)
	return recs, skipped, nil
}

func trimBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}
