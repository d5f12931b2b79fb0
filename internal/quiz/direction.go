package quiz

import (
	"fmt"
	"strings"

	"github.com/abhisek/lexiz/internal/vocab"
)

// Field names one of the two translatable faces of a word record.
type Field int

const (
	FieldTerm Field = iota
	FieldMeaning
)

// Value returns the field's value on r.
func (f Field) Value(r vocab.WordRecord) string {
	if f == FieldMeaning {
		return r.Meaning
	}
	return r.Term
}

func (f Field) String() string {
	if f == FieldMeaning {
		return "meaning"
	}
	return "term"
}

// Direction selects which face is the prompt and which is the answer.
type Direction int

const (
	// TermToMeaning prompts with the term and expects the meaning.
	TermToMeaning Direction = iota
	// MeaningToTerm prompts with the meaning and expects the term.
	MeaningToTerm
)

// PromptField returns the field shown to the learner.
func (d Direction) PromptField() Field {
	if d == MeaningToTerm {
		return FieldMeaning
	}
	return FieldTerm
}

// AnswerField returns the field the learner must pick.
func (d Direction) AnswerField() Field {
	if d == MeaningToTerm {
		return FieldTerm
	}
	return FieldMeaning
}

// String returns the canonical text form used in flags and config.
func (d Direction) String() string {
	if d == MeaningToTerm {
		return "meaning-to-term"
	}
	return "term-to-meaning"
}

// Label returns a short human-readable label.
func (d Direction) Label() string {
	if d == MeaningToTerm {
		return "Meaning → Term"
	}
	return "Term → Meaning"
}

// Toggle returns the other direction.
func (d Direction) Toggle() Direction {
	if d == MeaningToTerm {
		return TermToMeaning
	}
	return MeaningToTerm
}

// ParseDirection parses the text form of a direction. Short aliases
// "tm"/"mt" are accepted.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "term-to-meaning", "tm", "term":
		return TermToMeaning, nil
	case "meaning-to-term", "mt", "meaning":
		return MeaningToTerm, nil
	}
	return TermToMeaning, fmt.Errorf("unknown quiz direction %q", s)
}
