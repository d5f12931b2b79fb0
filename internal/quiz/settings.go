package quiz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/lexiz/internal/vocab"
)

// MaxQuestions caps the question count a learner can request.
const MaxQuestions = 50

var validate = validator.New()

// Settings is a learner's quiz configuration.
type Settings struct {
	Direction Direction `validate:"oneof=0 1"`
	From      int       `validate:"min=0"`                  // first word index, inclusive
	To        int       `validate:"omitempty,gtefield=From"` // last word index, inclusive (0 = end of list)
	Group     string    // "" = all groups
	Count     int       `validate:"min=1,max=50"`
}

// DefaultSettings returns the configuration used when nothing is set.
func DefaultSettings() Settings {
	return Settings{
		Direction: TermToMeaning,
		From:      1,
		Count:     10,
	}
}

// Validate checks the settings' field constraints.
func (s Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid quiz settings: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s must satisfy %s%s", fe.Field(), fe.Tag(), paramSuffix(fe.Param())))
	}
	return fmt.Errorf("invalid quiz settings: %s", strings.Join(msgs, "; "))
}

// Filter returns the pool filter for these settings.
func (s Settings) Filter() vocab.Filter {
	return vocab.Filter{From: s.From, To: s.To, Group: s.Group}
}

// Pool returns the records eligible under these settings.
func (s Settings) Pool(records []vocab.WordRecord) []vocab.WordRecord {
	return s.Filter().Apply(records)
}

// StartWithSettings validates s, builds the pool from records and starts a
// session.
func StartWithSettings(records []vocab.WordRecord, s Settings, opts ...Option) (*Session, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return Start(s.Pool(records), s.Count, s.Direction, opts...)
}

func paramSuffix(p string) string {
	if p == "" {
		return ""
	}
	return "=" + p
}
