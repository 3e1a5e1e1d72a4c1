package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"learnscript/cmd/lsltest/internal/golden"
)

func (app *App) addGoldenFileCommands(rootCmd *cobra.Command) {
	recordCmd := &cobra.Command{
		Use:   "record <testname>",
		Short: "Record a new test case",
		Long: `Record a test case by running its .lsl script and saving the output
as the .expected golden file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return golden.NewRecorder(app.Config, cmd.OutOrStdout()).RecordTest(cmd.Context(), args[0])
		},
	}

	runCmd := &cobra.Command{
		Use:   "run <testname>",
		Short: "Run a specific test case",
		Long: `Run a test case and compare its output with the expected golden file.
Returns exit code 0 if the test passes, non-zero if it fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return golden.NewRunner(app.Config, cmd.OutOrStdout()).RunTest(cmd.Context(), args[0])
		},
	}

	runAllCmd := &cobra.Command{
		Use:   "run-all",
		Short: "Run all test cases",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return golden.NewRunner(app.Config, cmd.OutOrStdout()).RunAllTests(cmd.Context())
		},
	}

	acceptCmd := &cobra.Command{
		Use:   "accept <testname>",
		Short: "Accept current output as golden",
		Long: `Replace the golden file of an existing test case with the current output.
Use this after verifying that the new behavior is correct.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return golden.NewRecorder(app.Config, cmd.OutOrStdout()).AcceptTest(cmd.Context(), args[0])
		},
	}

	diffCmd := &cobra.Command{
		Use:   "diff <testname>",
		Short: "Show differences between expected and actual output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return golden.NewDiffer(app.Config, cmd.OutOrStdout()).ShowDiff(cmd.Context(), args[0])
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List test cases",
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := golden.ListCases(app.Config.TestDir)
			if err != nil {
				return err
			}
			for _, name := range names {
				c, err := golden.LoadCase(app.Config.TestDir, name)
				if err != nil {
					return err
				}
				if c.Meta.Description != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", name, c.Meta.Description)
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(recordCmd, runCmd, runAllCmd, acceptCmd, diffCmd, listCmd)
}
