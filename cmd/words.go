package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/vocab"
	"github.com/abhisek/lexiz/internal/wordlist"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "List stored words",
	Example: `  lexiz words --group Verbs
  lexiz words --from 1 --to 100 --json > words.json
  lexiz words --xlsx backup.xlsx
  lexiz words --groups`,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetInt("from")
		to, _ := cmd.Flags().GetInt("to")
		group, _ := cmd.Flags().GetString("group")
		asJSON, _ := cmd.Flags().GetBool("json")
		xlsxPath, _ := cmd.Flags().GetString("xlsx")
		listGroups, _ := cmd.Flags().GetBool("groups")

		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		out := cmd.OutOrStdout()
		if listGroups {
			groups, err := rt.groups(cmd.Context())
			if err != nil {
				return fmt.Errorf("list groups: %w", err)
			}
			if len(groups) == 0 {
				fmt.Fprintln(out, "No groups found.")
				return nil
			}
			for _, g := range groups {
				fmt.Fprintln(out, g)
			}
			return nil
		}

		records, err := rt.query(cmd.Context(), vocab.Filter{From: from, To: to, Group: group})
		if err != nil {
			return fmt.Errorf("query words: %w", err)
		}

		switch {
		case xlsxPath != "":
			if err := wordlist.WriteXLSX(xlsxPath, records); err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote %d words to %s.\n", len(records), xlsxPath)
			return nil
		case asJSON:
			return wordlist.EncodeJSON(out, records)
		}

		if len(records) == 0 {
			fmt.Fprintln(out, "No words found.")
			return nil
		}
		printWords(out, records)
		return nil
	},
}

func init() {
	wordsCmd.Flags().Int("from", 0, "First word index to list")
	wordsCmd.Flags().Int("to", 0, "Last word index to list (0 = end of list)")
	wordsCmd.Flags().String("group", "", "Only list words from this group")
	wordsCmd.Flags().Bool("json", false, "Write the words as a JSON word list")
	wordsCmd.Flags().String("xlsx", "", "Write the words to this spreadsheet file")
	wordsCmd.Flags().Bool("groups", false, "List the word groups instead of the words")
}

// query filters in the database when one is open, in memory otherwise.
func (rt *runtime) query(ctx context.Context, f vocab.Filter) ([]vocab.WordRecord, error) {
	if rt.store != nil {
		return rt.store.WordRepo().Query(ctx, f)
	}
	all, err := rt.words.All(ctx)
	if err != nil {
		return nil, err
	}
	return f.Apply(all), nil
}

// groups lists the distinct groups in order of first appearance by index.
func (rt *runtime) groups(ctx context.Context) ([]string, error) {
	if rt.store != nil {
		return rt.store.WordRepo().Groups(ctx)
	}
	all, err := rt.words.All(ctx)
	if err != nil {
		return nil, err
	}
	return vocab.Groups(all), nil
}

func printWords(out io.Writer, records []vocab.WordRecord) {
	fmt.Fprintf(out, "%-6s  %-24s  %-32s  %s\n", "#", "Term", "Meaning", "Group")
	fmt.Fprintln(out, strings.Repeat("─", 80))
	for _, r := range records {
		fmt.Fprintf(out, "%-6d  %-24s  %-32s  %s\n",
			r.Index, truncate(r.Term, 24), truncate(r.Meaning, 32), r.Group)
	}
	fmt.Fprintln(out, strings.Repeat("─", 80))
	fmt.Fprintf(out, "%d words\n", len(records))
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
