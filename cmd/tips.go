package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/quiz"
	"github.com/abhisek/lexiz/internal/tips"
	"github.com/abhisek/lexiz/internal/vocab"
)

var tipsCmd = &cobra.Command{
	Use:   "tips <index>...",
	Short: "Generate memory tips for words by index",
	Long: `Ask the configured LLM provider for a short mnemonic per word.

The provider is chosen with the llm.provider config key or discovered from
ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY or OPENROUTER_API_KEY.`,
	Args: cobra.RangeArgs(1, tips.MaxItems),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		dirVal, _ := cmd.Flags().GetString("direction")
		dir, err := quiz.ParseDirection(dirVal)
		if err != nil {
			return err
		}
		indices, err := parseIndices(args)
		if err != nil {
			return err
		}

		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		svc := rt.tipsService(ctx)
		if svc == nil {
			return errors.New("no LLM provider configured")
		}

		records, err := rt.words.All(ctx)
		if err != nil {
			return fmt.Errorf("load words: %w", err)
		}
		words, err := pickWords(records, indices)
		if err != nil {
			return err
		}

		generated, err := svc.Generate(ctx, dir, words)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, t := range generated {
			fmt.Fprintf(out, "#%d %s\n  %s\n", t.Index, t.Term, t.Text)
		}
		return nil
	},
}

func init() {
	tipsCmd.Flags().String("direction", "term-to-meaning", "Direction the words were asked in")
}

func parseIndices(args []string) ([]int, error) {
	out := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid word index %q", a)
		}
		out = append(out, n)
	}
	return out, nil
}

// pickWords returns the records for indices in the order given.
func pickWords(records []vocab.WordRecord, indices []int) ([]vocab.WordRecord, error) {
	byIndex := make(map[int]vocab.WordRecord, len(records))
	for _, r := range records {
		byIndex[r.Index] = r
	}
	out := make([]vocab.WordRecord, 0, len(indices))
	for _, i := range indices {
		r, ok := byIndex[i]
		if !ok {
			return nil, fmt.Errorf("no word with index %d", i)
		}
		out = append(out, r)
	}
	return out, nil
}
