package llm

// ModelCost is USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of u.
func (c ModelCost) Cost(u Usage) float64 {
	return (float64(u.InputTokens)*c.InputPerMTok + float64(u.OutputTokens)*c.OutputPerMTok) / 1_000_000
}

// LookupCost returns pricing for a model ID, or nil if unknown.
func LookupCost(model string) *ModelCost {
	if c, ok := modelCosts[model]; ok {
		return &c
	}
	return nil
}

// modelCosts covers the default and alias models.
var modelCosts = map[string]ModelCost{
	"claude-haiku-4-5-20251001":   {1, 5},
	"claude-haiku-4-5":            {1, 5},
	"claude-sonnet-4-20250514":    {3, 15},
	"gpt-4o-mini":                 {0.15, 0.6},
	"gpt-4o":                      {2.5, 10},
	"gemini-2.0-flash":            {0.1, 0.4},
	"gemini-2.5-pro":              {1.25, 10},
	"google/gemini-2.0-flash-001": {0.1, 0.4},
}
