package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/app"
)

// runApp opens the word source, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	env, err := rt.screenEnv(cmd.Context())
	if err != nil {
		return err
	}
	return app.Run(env)
}
