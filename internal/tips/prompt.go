package tips

import (
	"fmt"
	"strings"

	"github.com/abhisek/lexiz/internal/quiz"
	"github.com/abhisek/lexiz/internal/vocab"
)

const systemPrompt = `You are a friendly vocabulary coach. A learner just finished a multiple-choice quiz and missed some words. Help them remember each one.`

func buildPrompt(direction quiz.Direction, missed []vocab.WordRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Quiz direction: %s\n", direction.Label())
	b.WriteString("\nMissed words:\n")
	for _, r := range missed {
		fmt.Fprintf(&b, "- #%d %s = %s", r.Index, r.Term, r.Meaning)
		if r.Example != "" {
			fmt.Fprintf(&b, " (example: %s)", r.Example)
		}
		b.WriteString("\n")
	}

	b.WriteString(`
Instructions:
1. Write exactly one tip for every word above, using its number as the index.
2. A tip is a mnemonic, word-part breakdown, or vivid image linking the word to its meaning.
3. Keep each tip to one or two short sentences.
4. Write the tip in the same language as the meaning.`)

	return b.String()
}
