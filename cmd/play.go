package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/lexiz/internal/app"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz right away, skipping the setup screen",
	Example: `  lexiz play --count 20
  lexiz play --direction meaning-to-term --from 100 --to 200
  lexiz play --words verbs.xlsx --group Irregular --seed 7`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		env, err := rt.screenEnv(ctx)
		if err != nil {
			return err
		}
		settings, opts, err := quizSettings(cmd, env.Defaults)
		if err != nil {
			return err
		}
		env.QuizOptions = append(env.QuizOptions, opts...)

		records, err := env.Source.All(ctx)
		if err != nil {
			return fmt.Errorf("load words: %w", err)
		}
		rt.log.Debug("starting quiz",
			zap.Stringer("direction", settings.Direction),
			zap.Int("count", settings.Count),
			zap.Int("corpus", len(records)))

		return app.Play(env, records, settings)
	},
}

func init() {
	addQuizFlags(playCmd)
}
