package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/lexiz/internal/quiz"
	"github.com/abhisek/lexiz/internal/tips"
)

var errInputClosed = errors.New("input closed")

var drillCmd = &cobra.Command{
	Use:   "drill",
	Short: "Run a quiz as plain text on standard input and output",
	Long: `Ask the quiz questions line by line without the full-screen interface.

Answer each question with the number of an option. Closing the input
(Ctrl+D) ends the drill early. Uses the same flags as play.`,
	RunE: runDrill,
}

func init() {
	addQuizFlags(drillCmd)
}

func runDrill(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	defaults, err := rt.cfg.QuizSettings()
	if err != nil {
		return fmt.Errorf("quiz defaults: %w", err)
	}
	settings, opts, err := quizSettings(cmd, defaults)
	if err != nil {
		return err
	}
	records, err := rt.words.All(ctx)
	if err != nil {
		return fmt.Errorf("load words: %w", err)
	}
	sess, err := quiz.StartWithSettings(records, settings, opts...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s, %d questions\n\n", settings.Direction.Label(), sess.Total())

	err = drill(cmd.InOrStdin(), out, sess)
	if errors.Is(err, errInputClosed) {
		fmt.Fprintf(out, "\nStopped after %d of %d questions (%d correct).\n", sess.Position(), sess.Total(), sess.CorrectCount())
		rt.log.Info("drill abandoned", zap.String("session", sess.ID()), zap.Int("position", sess.Position()))
		return nil
	}
	if err != nil {
		return err
	}

	report, err := sess.Report()
	if err != nil {
		return err
	}
	rt.log.Info("drill finished",
		zap.String("session", sess.ID()),
		zap.Int("correct", report.Correct),
		zap.Int("total", report.Total))
	printReport(out, report)

	if len(report.Mistakes) == 0 {
		return nil
	}
	svc := rt.tipsService(ctx)
	if svc == nil {
		return nil
	}
	missed := tips.MissedRecords(settings.Pool(records), report.Mistakes)
	fmt.Fprintln(out, "\nGenerating memory tips...")
	generated, err := svc.Generate(ctx, settings.Direction, missed)
	if err != nil {
		fmt.Fprintf(out, "Memory tips unavailable: %v\n", err)
		return nil
	}
	for _, t := range generated {
		fmt.Fprintf(out, "  #%d %s: %s\n", t.Index, t.Term, t.Text)
	}
	return nil
}

// drill asks every remaining question of sess, reading option numbers from
// in. It returns errInputClosed when in runs out before the session ends.
func drill(in io.Reader, out io.Writer, sess *quiz.Session) error {
	scanner := bufio.NewScanner(in)
	for !sess.Finished() {
		q, err := sess.CurrentQuestion()
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "── Question %d/%d ──\n", sess.Position()+1, sess.Total())
		fmt.Fprintln(out, q.Prompt)
		for i, opt := range q.Options {
			fmt.Fprintf(out, "  %d) %s\n", i+1, opt)
		}

		choice, err := readChoice(scanner, out, len(q.Options))
		if err != nil {
			return err
		}

		outcome, err := sess.SubmitAnswer(q.Options[choice])
		if err != nil {
			return err
		}
		if outcome.IsCorrect {
			fmt.Fprintln(out, "✓ Correct!")
		} else {
			fmt.Fprintf(out, "✗ Wrong. Answer: %s\n", outcome.Expected)
		}
		if q.Record.Example != "" {
			fmt.Fprintf(out, "Example: %s\n", q.Record.Example)
		}
		fmt.Fprintln(out)
	}
	return nil
}

// readChoice prompts until a number between 1 and n is entered and
// returns it zero-based.
func readChoice(scanner *bufio.Scanner, out io.Writer, n int) (int, error) {
	for {
		fmt.Fprint(out, "\nYour answer: ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, fmt.Errorf("read answer: %w", err)
			}
			return 0, errInputClosed
		}
		v, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err == nil && v >= 1 && v <= n {
			return v - 1, nil
		}
		fmt.Fprintf(out, "Enter a number from 1 to %d.", n)
	}
}

func printReport(out io.Writer, r quiz.Report) {
	fmt.Fprintf(out, "── Summary: %d/%d correct (%.0f%%) ──\n", r.Correct, r.Total, r.Accuracy*100)
	if len(r.Mistakes) == 0 {
		return
	}
	fmt.Fprintln(out, "Missed:")
	for _, m := range r.Mistakes {
		fmt.Fprintf(out, "  #%d %s → %s\n", m.Index, m.Prompt, m.Expected)
	}
}
