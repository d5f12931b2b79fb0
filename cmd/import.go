package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/lexiz/internal/wordlist"
)

var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import word lists into the database",
	Long: `Read one or more word lists (.xlsx, .csv or .json) and store them.

By default imported words are merged into the database, overwriting words
with the same index. With --replace the database is emptied first.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		replace, _ := cmd.Flags().GetBool("replace")
		skipDup, _ := cmd.Flags().GetBool("skip-duplicates")

		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		repo, err := rt.wordRepo()
		if err != nil {
			return err
		}

		res, err := wordlist.LoadFiles(wordlist.Options{SkipDuplicates: skipDup}, args...)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if replace {
			err = repo.ReplaceAll(ctx, res.Records)
		} else {
			err = repo.Upsert(ctx, res.Records)
		}
		if err != nil {
			return fmt.Errorf("save words: %w", err)
		}

		total, err := repo.Count(ctx)
		if err != nil {
			return fmt.Errorf("count words: %w", err)
		}
		rt.log.Info("imported word lists",
			zap.Strings("files", args),
			zap.Bool("replace", replace),
			zap.Int("imported", len(res.Records)),
			zap.Int("skipped", res.Skipped),
			zap.Int("duplicates", len(res.Duplicates)))

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Imported %d words (%d in database).\n", len(res.Records), total)
		if res.Skipped > 0 {
			fmt.Fprintf(out, "Skipped %d incomplete rows.\n", res.Skipped)
		}
		for _, d := range res.Duplicates {
			fmt.Fprintf(out, "Dropped duplicate #%d %q.\n", d.Index, d.Term)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().Bool("replace", false, "Replace the whole database instead of merging")
	importCmd.Flags().Bool("skip-duplicates", false, "Keep the first word for each repeated index instead of failing")
}
