// Package config loads interpreter settings from flags, environment
// variables, an optional lsl.yaml file and .env files.
//
// Priority, highest first: flags, LSL_* environment variables (including
// those set from .env files), the config file, defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	lslcontext "learnscript/internal/context"
	"learnscript/internal/output"
)

// Configuration keys. Flags use the same names.
const (
	KeyLogLevel        = "log-level"
	KeyLogFile         = "log-file"
	KeyTestMode        = "test-mode"
	KeyPackageEndpoint = "package-endpoint"
	KeyAbortOnError    = "abort-on-error"
	KeyDuplicateModels = "duplicate-models"
	KeySilentUnknown   = "silent-unknown"
	KeyOutput          = "output"
)

// EnvPrefix is prepended to environment variable names: log-level is read
// from LSL_LOG_LEVEL.
const EnvPrefix = "LSL"

// FileName is the config file base name searched in the working directory
// and the user config directory.
const FileName = "lsl"

// Config holds resolved settings.
type Config struct {
	LogLevel        string
	LogFile         string
	TestMode        bool
	PackageEndpoint string
	AbortOnError    bool
	DuplicateModels lslcontext.DuplicatePolicy
	SilentUnknown   bool
	Output          output.Mode

	// ConfigFile is the file settings were read from, if any.
	ConfigFile string
}

// New creates a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyLogLevel, "")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyTestMode, false)
	v.SetDefault(KeyPackageEndpoint, "")
	v.SetDefault(KeyAbortOnError, false)
	v.SetDefault(KeyDuplicateModels, string(lslcontext.DuplicateOverwrite))
	v.SetDefault(KeySilentUnknown, false)
	v.SetDefault(KeyOutput, string(output.ModePlain))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// UserConfigDir returns ~/.config/lsl or its platform equivalent.
func UserConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "lsl"), nil
}

// ReadFile reads path into v. With an empty path, lsl.yaml is searched in
// the working directory and the user config directory; finding none is not
// an error.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := UserConfigDir(); err == nil {
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// LoadDotEnv loads the working directory .env and then the user config .env
// into the process environment. Variables that are already set are never
// overridden, so the local file wins over the user one. Missing files are
// skipped. Returns the files that were loaded.
func LoadDotEnv(workDir string) ([]string, error) {
	candidates := []string{filepath.Join(workDir, ".env")}
	if dir, err := UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, ".env"))
	}

	var loaded []string
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return loaded, fmt.Errorf("failed to parse .env file %s: %w", path, err)
		}
		loaded = append(loaded, path)
	}
	return loaded, nil
}

// Load resolves and validates settings from v.
func Load(v *viper.Viper) (*Config, error) {
	policy, err := lslcontext.ParseDuplicatePolicy(v.GetString(KeyDuplicateModels))
	if err != nil {
		return nil, err
	}
	mode, err := output.ParseMode(v.GetString(KeyOutput))
	if err != nil {
		return nil, err
	}

	return &Config{
		LogLevel:        v.GetString(KeyLogLevel),
		LogFile:         v.GetString(KeyLogFile),
		TestMode:        v.GetBool(KeyTestMode),
		PackageEndpoint: strings.TrimRight(v.GetString(KeyPackageEndpoint), "/"),
		AbortOnError:    v.GetBool(KeyAbortOnError),
		DuplicateModels: policy,
		SilentUnknown:   v.GetBool(KeySilentUnknown),
		Output:          mode,
		ConfigFile:      v.ConfigFileUsed(),
	}, nil
}
