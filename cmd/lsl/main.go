// Package main provides the lsl command: it runs LSL scripts, hosts an
// interactive shell and serves the interpreter over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"learnscript/internal/config"
	"learnscript/internal/logger"
	"learnscript/internal/output"
	"learnscript/internal/version"
)

var (
	v          = config.New()
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "lsl",
	Short: "LearnScript interpreter",
	Long: `lsl executes LearnScript (LSL) programs: line-oriented scripts that declare
neural network models, add layers and trigger training, prediction and
deployment steps.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		output.Error(err.Error())
		os.Exit(1)
	}
}

func init() {
	configureMessages(false, output.ModeStyled)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Config file (default: ./lsl.yaml, then the user config directory)")
	flags.String(config.KeyLogLevel, "", "Set log level (debug|info|warn|error) [default: info]")
	flags.String(config.KeyLogFile, "", "Write logs to file instead of stderr")
	flags.Bool(config.KeyTestMode, false, "Run with deterministic IDs and timestamps")
	flags.String(config.KeyPackageEndpoint, "", "Fetch packages from this endpoint instead of the built-in registry")
	flags.Bool(config.KeyAbortOnError, false, "Stop a script at its first failing line")
	flags.String(config.KeyDuplicateModels, "overwrite", "What to do when a model name is reused (overwrite|fail)")
	flags.Bool(config.KeySilentUnknown, false, "Drop unrecognized lines instead of reporting them")
	flags.StringP(config.KeyOutput, "o", "plain", "Output mode (plain|styled|markdown|json)")

	for _, key := range []string{
		config.KeyLogLevel, config.KeyLogFile, config.KeyTestMode, config.KeyPackageEndpoint,
		config.KeyAbortOnError, config.KeyDuplicateModels, config.KeySilentUnknown, config.KeyOutput,
	} {
		if err := v.BindPFlag(key, flags.Lookup(key)); err != nil {
			output.Error(fmt.Sprintf("Error binding %s flag: %v", key, err))
			os.Exit(1)
		}
	}

	rootCmd.Version = version.GetFormattedVersion()
	rootCmd.AddCommand(runCmd, shellCmd, serveCmd, commandsCmd, versionCmd)
}

// loadSettings reads .env files and the config file, configures the logger
// and returns the resolved settings.
func loadSettings(v *viper.Viper) (*config.Config, error) {
	if wd, err := os.Getwd(); err == nil {
		if _, err := config.LoadDotEnv(wd); err != nil {
			return nil, err
		}
	}
	if err := config.ReadFile(v, configFile); err != nil {
		return nil, err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFile, cfg.TestMode); err != nil {
		return nil, fmt.Errorf("failed to configure logger: %w", err)
	}
	configureMessages(cfg.TestMode, cfg.Output)
	if cfg.ConfigFile != "" {
		logger.Debug("Loaded config file", "path", cfg.ConfigFile)
	}
	return cfg, nil
}

// configureMessages points the global printer at stderr, so status messages
// never mix with script results on stdout. JSON runs keep stderr unstyled.
func configureMessages(testMode bool, mode output.Mode) {
	opts := []output.Option{output.WithWriter(os.Stderr), output.WithMode(output.ModeStyled)}
	if mode == output.ModeJSON {
		opts = append(opts, output.WithStyles(output.NewPlainStyleProvider()))
	}
	if testMode {
		opts = append(opts, output.TestMode())
	}
	output.ConfigureGlobal(opts...)
}
