// Package cli provides the command-line interface of lsltest.
package cli

import (
	"github.com/spf13/cobra"

	"learnscript/cmd/lsltest/internal/golden"
)

// App holds settings shared by lsltest's commands.
type App struct {
	Config *golden.Config
}

// NewApp creates an App with default settings.
func NewApp() *App {
	return &App{Config: golden.NewConfig()}
}

// CreateRootCommand creates the root command with every subcommand attached.
func (app *App) CreateRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lsltest",
		Short: "Golden file testing tool for LSL scripts",
		Long: `lsltest runs LSL scripts in test mode and compares their output with
recorded .expected files. It can record, run, accept and diff test cases.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&app.Config.Verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&app.Config.TestDir, "test-dir", golden.DefaultTestDir, "Test directory")
	rootCmd.PersistentFlags().DurationVar(&app.Config.Timeout, "timeout", golden.DefaultTimeout, "Per-test timeout")

	app.addGoldenFileCommands(rootCmd)
	app.addVersionCommand(rootCmd)
	return rootCmd
}
