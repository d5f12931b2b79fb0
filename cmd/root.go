package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lexiz",
	Short: "Vocabulary quizzes in the terminal",
	Long: `Lexiz is a terminal vocabulary trainer. Import a word list once, then
test yourself with multiple-choice quizzes in either direction.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides LEXIZ_DB env var)")
	pf.String("config", "", "Path to YAML config file (default $XDG_CONFIG_HOME/lexiz/config.yaml)")
	pf.StringSlice("words", nil, "Word list files (.xlsx, .csv, .json) to quiz from instead of the database")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(drillCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(tipsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}
