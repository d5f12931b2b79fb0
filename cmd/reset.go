package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every word from the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		repo, err := rt.wordRepo()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		n, err := repo.Count(ctx)
		if err != nil {
			return fmt.Errorf("count words: %w", err)
		}

		out := cmd.OutOrStdout()
		if n == 0 {
			fmt.Fprintln(out, "The database is already empty.")
			return nil
		}
		if !yes {
			fmt.Fprintf(out, "Delete all %d words? [y/N] ", n)
			scanner := bufio.NewScanner(cmd.InOrStdin())
			if !scanner.Scan() || !strings.EqualFold(strings.TrimSpace(scanner.Text()), "y") {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}

		if err := repo.ReplaceAll(ctx, nil); err != nil {
			return fmt.Errorf("clear words: %w", err)
		}
		rt.log.Info("word database reset", zap.Int("deleted", n))
		fmt.Fprintf(out, "Deleted %d words.\n", n)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
