package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"learnscript/internal/version"
)

func (app *App) addVersionCommand(rootCmd *cobra.Command) {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lsltest %s\n", version.GetFormattedVersion())
		},
	})
}
