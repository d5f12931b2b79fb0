package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/quiz"
)

// addQuizFlags registers the flags that override the configured quiz
// settings.
func addQuizFlags(c *cobra.Command) {
	f := c.Flags()
	f.String("direction", "", "Quiz direction: term-to-meaning or meaning-to-term")
	f.Int("from", 0, "First word index to include")
	f.Int("to", 0, "Last word index to include (0 = end of list)")
	f.String("group", "", "Only include words from this group")
	f.Int("count", 0, "Number of questions")
	f.Uint64("seed", 0, "Random seed for a reproducible quiz")
}

// quizSettings overlays the flags that were set on base and validates the
// result.
func quizSettings(c *cobra.Command, base quiz.Settings) (quiz.Settings, []quiz.Option, error) {
	f := c.Flags()
	s := base

	if f.Changed("direction") {
		v, _ := f.GetString("direction")
		dir, err := quiz.ParseDirection(v)
		if err != nil {
			return quiz.Settings{}, nil, err
		}
		s.Direction = dir
	}
	if f.Changed("from") {
		s.From, _ = f.GetInt("from")
	}
	if f.Changed("to") {
		s.To, _ = f.GetInt("to")
	}
	if f.Changed("group") {
		s.Group, _ = f.GetString("group")
	}
	if f.Changed("count") {
		s.Count, _ = f.GetInt("count")
	}

	var opts []quiz.Option
	if f.Changed("seed") {
		seed, _ := f.GetUint64("seed")
		opts = append(opts, quiz.WithSeed(seed))
	}

	if err := s.Validate(); err != nil {
		return quiz.Settings{}, nil, err
	}
	return s, opts, nil
}
