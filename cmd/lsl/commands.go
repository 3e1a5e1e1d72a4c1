package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/abiosoft/ishell/v2"
	"github.com/spf13/cobra"

	"learnscript/internal/config"
	"learnscript/internal/logger"
	"learnscript/internal/orchestration"
	"learnscript/internal/output"
	"learnscript/internal/packages"
	"learnscript/internal/server"
	"learnscript/internal/shell"
	"learnscript/internal/version"
)

// ScriptExtension is the expected extension of LSL script files.
const ScriptExtension = ".lsl"

var runCmd = &cobra.Command{
	Use:   "run <script.lsl|->",
	Short: "Execute an LSL script",
	Long: `Execute an LSL script and print one result per acted-upon line.
Use "-" to read the script from standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings(v)
		if err != nil {
			return err
		}
		quiet, _ := cmd.Flags().GetBool("quiet")
		return runScript(cmd.Context(), cfg, args[0], quiet, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive LSL shell",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := loadSettings(v)
		if err != nil {
			return err
		}
		return runShell(cfg)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interpreter over HTTP",
	Long: `Serve POST /execute and GET /api/libs/{name}.
The listen address, body limit and per-run timeout come from LSL_HTTP_ADDR,
LSL_MAX_SCRIPT_BYTES and LSL_RUN_TIMEOUT.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadSettings(v)
		if err != nil {
			return err
		}
		return runServer(cmd.Context(), cfg)
	},
}

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List LSL commands and their usage",
	RunE: func(cmd *cobra.Command, _ []string) error {
		runner := orchestration.NewRunner(orchestration.Options{})
		for _, h := range runner.Dispatcher().Handlers() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n  %s\n  %s\n\n", h.Name(), h.Description(),
				strings.ReplaceAll(h.Usage(), "\n", "\n  "))
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, _ []string) {
		if err := version.ValidateVersion(); err != nil {
			output.Warning(fmt.Sprintf("Version string is not semantic: %v", err))
		}
		if detailed, _ := cmd.Flags().GetBool("detailed"); detailed {
			fmt.Fprintln(cmd.OutOrStdout(), version.GetDetailedVersion())
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), version.GetFormattedVersion())
	},
}

func init() {
	runCmd.Flags().BoolP("quiet", "q", false, "Print nothing; report failures through the exit status only")
	versionCmd.Flags().Bool("detailed", false, "Show build details")
}

// runnerOptions maps settings onto runner options. A package endpoint
// switches package resolution to HTTP.
func runnerOptions(cfg *config.Config) orchestration.Options {
	opts := orchestration.Options{
		DuplicateModels: cfg.DuplicateModels,
		TestMode:        cfg.TestMode,
		AbortOnError:    cfg.AbortOnError,
		SilentUnknown:   cfg.SilentUnknown,
	}
	if cfg.PackageEndpoint != "" {
		opts.Fetcher = packages.NewHTTPFetcher(cfg.PackageEndpoint, nil)
	}
	return opts
}

func newPrinter(cfg *config.Config, w io.Writer, extra ...output.Option) *output.Printer {
	opts := append([]output.Option{output.WithWriter(w), output.WithMode(cfg.Output)}, extra...)
	return output.NewPrinter(opts...)
}

// runScript executes the script at path ("-" for stdin) and prints its
// results. A quiet run prints nothing, including the failure summary.
func runScript(ctx context.Context, cfg *config.Config, path string, quiet bool, stdin io.Reader, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	script, err := readScript(path, stdin)
	if err != nil {
		return err
	}

	logger.Info("Running script", "script", path, "version", version.Version)
	runner := orchestration.NewRunner(runnerOptions(cfg))
	ec := runner.NewContext()
	runErr := runner.RunIn(ctx, ec, script)
	results := ec.Results()

	var extra []output.Option
	if quiet {
		extra = append(extra, output.Silent())
	}
	if err := newPrinter(cfg, stdout, extra...).PrintResults(results.Entries()); err != nil {
		return err
	}
	if failed := results.Errors(); failed > 0 && !quiet {
		output.Warning(fmt.Sprintf("%d of %d lines failed", failed, results.Len()))
	}
	if runErr != nil {
		return fmt.Errorf("script stopped: %w", runErr)
	}
	return nil
}

func readScript(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read script from stdin: %w", err)
		}
		return string(data), nil
	}

	if ext := filepath.Ext(path); ext != ScriptExtension {
		logger.Warn("Unexpected script extension", "path", path, "expected", ScriptExtension)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("script file does not exist: %s", path)
		}
		return "", fmt.Errorf("failed to read script: %w", err)
	}
	return string(data), nil
}

func runShell(cfg *config.Config) error {
	logger.Info("Starting shell", "version", version.Version)

	runner := orchestration.NewRunner(runnerOptions(cfg))
	printer := newPrinter(cfg, os.Stdout)
	// Entries print one at a time in the shell, so only json and styled apply.
	if cfg.Output == output.ModePlain || cfg.Output == output.ModeMarkdown {
		printer.SetMode(output.ModeStyled)
	}
	session := shell.NewSession(runner, printer)

	sh := ishell.New()
	session.Install(sh)
	sh.Println(version.GetFormattedVersion())
	sh.Println("Type 'help' for commands or 'exit' to quit.")
	sh.Run()
	sh.Close()

	logger.Debug("Shell closed", "results", session.Context().Results().Len(), "errors", session.Context().Results().Errors())
	return nil
}

func runServer(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	srvCfg, err := server.LoadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := orchestration.NewRunner(runnerOptions(cfg))
	output.Info("Serving LSL on " + srvCfg.Addr)
	return server.New(srvCfg, runner, runner.Registry()).ListenAndServe(ctx)
}
