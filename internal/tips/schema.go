package tips

import "github.com/abhisek/lexiz/internal/llm"

// Schema is the structured output contract for tip generation.
var Schema = &llm.Schema{
	Name:        "word-tips",
	Description: "One short memory aid per vocabulary word",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tips": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"index": map[string]any{
							"type":        "integer",
							"description": "The word number exactly as given",
						},
						"tip": map[string]any{
							"type":        "string",
							"description": "Memory aid, one or two sentences",
						},
					},
					"required":             []any{"index", "tip"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"tips"},
		"additionalProperties": false,
	},
}
