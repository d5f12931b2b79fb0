package wordlist

import (
	"github.com/xuri/excelize/v2"

	"github.com/abhisek/lexiz/internal/vocab"
)

// loadXLSX reads the first worksheet of an Excel workbook.
func loadXLSX(path string) ([]vocab.WordRecord, int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, 0, &FormatError{Path: path, Reason: "open workbook", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, 0, &FormatError{Path: path, Reason: "workbook has no sheets"}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, 0, &FormatError{Path: path, Reason: "read sheet " + sheets[0], Err: err}
	}
	if len(rows) == 0 {
		return nil, 0, &FormatError{Path: path, Reason: "sheet " + sheets[0] + " is empty"}
	}

	recs, skipped := fromRows(rows)
	return recs, skipped, nil
}

// WriteXLSX writes records to a new workbook using the English header
// names. The output can be read back with LoadFile.
func WriteXLSX(path string, records []vocab.WordRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := []any{"group", "no", "word", "cefr", "meaning", "example", "example_translation"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{r.Group, r.Index, r.Term, r.Level, r.Meaning, r.Example, r.ExampleTranslation}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}
