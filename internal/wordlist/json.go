package wordlist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"

	"github.com/abhisek/lexiz/internal/vocab"
)

// FormatVersion is written by EncodeJSON. Files with any v1 version load.
const FormatVersion = "v1.0.0"

type jsonFile struct {
	FormatVersion string     `json:"format_version"`
	Words         []jsonWord `json:"words"`
}

type jsonWord struct {
	Index              int    `json:"index"`
	Term               string `json:"term"`
	Meaning            string `json:"meaning"`
	Group              string `json:"group,omitempty"`
	Level              string `json:"level,omitempty"`
	Example            string `json:"example,omitempty"`
	ExampleTranslation string `json:"example_translation,omitempty"`
}

var fileSchema = map[string]any{
	"type":     "object",
	"required": []any{"format_version", "words"},
	"properties": map[string]any{
		"format_version": map[string]any{"type": "string", "pattern": "^v[0-9]+\\.[0-9]+\\.[0-9]+$"},
		"words": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"index", "term", "meaning"},
				"properties": map[string]any{
					"index":               map[string]any{"type": "integer"},
					"term":                map[string]any{"type": "string", "minLength": 1},
					"meaning":             map[string]any{"type": "string", "minLength": 1},
					"group":               map[string]any{"type": "string"},
					"level":               map[string]any{"type": "string"},
					"example":             map[string]any{"type": "string"},
					"example_translation": map[string]any{"type": "string"},
				},
			},
		},
	},
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	raw, err := json.Marshal(fileSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	const url = "schema://wordlist.json"
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(url)
})

func loadJSON(path string) ([]vocab.WordRecord, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, &FormatError{Path: path, Reason: "read file", Err: err}
	}
	recs, err := DecodeJSON(data)
	if err != nil {
		return nil, 0, &FormatError{Path: path, Reason: "decode", Err: err}
	}
	return recs, 0, nil
}

// DecodeJSON parses and validates a JSON word list.
func DecodeJSON(data []byte) ([]vocab.WordRecord, error) {
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	schema, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var f jsonFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if !semver.IsValid(f.FormatVersion) {
		return nil, fmt.Errorf("invalid format_version %q", f.FormatVersion)
	}
	if major := semver.Major(f.FormatVersion); major != semver.Major(FormatVersion) {
		return nil, fmt.Errorf("unsupported format_version %s (want %s.x.x)", f.FormatVersion, semver.Major(FormatVersion))
	}

	out := make([]vocab.WordRecord, 0, len(f.Words))
	for _, w := range f.Words {
		out = append(out, vocab.WordRecord{
			Index:              w.Index,
			Term:               w.Term,
			Meaning:            w.Meaning,
			Group:              w.Group,
			Level:              w.Level,
			Example:            w.Example,
			ExampleTranslation: w.ExampleTranslation,
		})
	}
	return out, nil
}

// EncodeJSON writes records in the JSON word list format.
func EncodeJSON(w io.Writer, records []vocab.WordRecord) error {
	f := jsonFile{FormatVersion: FormatVersion, Words: make([]jsonWord, 0, len(records))}
	for _, r := range records {
		f.Words = append(f.Words, jsonWord{
			Index:              r.Index,
			Term:               r.Term,
			Meaning:            r.Meaning,
			Group:              r.Group,
			Level:              r.Level,
			Example:            r.Example,
			ExampleTranslation: r.ExampleTranslation,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}
