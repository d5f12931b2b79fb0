// Package tips asks an LLM for short memory aids for words the learner
// missed in a quiz.
package tips

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/lexiz/internal/llm"
	"github.com/abhisek/lexiz/internal/quiz"
	"github.com/abhisek/lexiz/internal/vocab"
)

// MaxItems caps how many missed words are sent in one request.
const MaxItems = 10

// Tip is a memory aid for one word.
type Tip struct {
	Index int
	Term  string
	Text  string
}

// Config holds generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the settings used by the summary screen.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.7,
	}
}

// Service generates tips through a provider.
type Service struct {
	provider llm.Provider
	cfg      Config
	log      *zap.Logger
}

// NewService creates a tip service. A nil logger discards output.
func NewService(provider llm.Provider, cfg Config, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{provider: provider, cfg: cfg, log: log.Named("tips")}
}

type tipsOutput struct {
	Tips []struct {
		Index int    `json:"index"`
		Tip   string `json:"tip"`
	} `json:"tips"`
}

// Generate returns one tip per missed record, in the order of missed.
// Tips the model returns for words that were not asked about are dropped.
// Records past MaxItems are ignored.
func (s *Service) Generate(ctx context.Context, direction quiz.Direction, missed []vocab.WordRecord) ([]Tip, error) {
	if len(missed) == 0 {
		return nil, nil
	}
	if len(missed) > MaxItems {
		missed = missed[:MaxItems]
	}

	ctx = llm.WithPurpose(ctx, "word-tips")
	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      buildPrompt(direction, missed),
		Schema:      Schema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("tip generation: %w", err)
	}

	var out tipsOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse tip response: %w", err)
	}

	byIndex := make(map[int]string, len(out.Tips))
	for _, t := range out.Tips {
		if t.Tip != "" {
			byIndex[t.Index] = t.Tip
		}
	}

	tips := make([]Tip, 0, len(missed))
	for _, r := range missed {
		text, ok := byIndex[r.Index]
		if !ok {
			continue
		}
		tips = append(tips, Tip{Index: r.Index, Term: r.Term, Text: text})
	}
	if len(tips) == 0 {
		return nil, errors.New("tip generation: no tips matched the missed words")
	}
	s.log.Debug("tips generated", zap.Int("requested", len(missed)), zap.Int("returned", len(tips)))
	return tips, nil
}

// MissedRecords resolves report mistakes back to their records.
// Mistakes whose index is not in records are skipped.
func MissedRecords(records []vocab.WordRecord, mistakes []quiz.Mistake) []vocab.WordRecord {
	byIndex := make(map[int]vocab.WordRecord, len(records))
	for _, r := range records {
		byIndex[r.Index] = r
	}
	out := make([]vocab.WordRecord, 0, len(mistakes))
	for _, m := range mistakes {
		if r, ok := byIndex[m.Index]; ok {
			out = append(out, r)
		}
	}
	return out
}
