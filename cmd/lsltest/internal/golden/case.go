// Package golden records and verifies the output of LSL scripts against
// expected files.
package golden

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	lslcontext "learnscript/internal/context"
	"learnscript/internal/orchestration"
	"learnscript/internal/output"
)

// File extensions of a test case.
const (
	ScriptExt   = ".lsl"
	ExpectedExt = ".expected"
	MetaExt     = ".yaml"
)

// Defaults for Config.
const (
	DefaultTestDir = "test/golden"
	DefaultTimeout = 10 * time.Second
)

// Config holds settings shared by the runner, recorder and differ.
type Config struct {
	TestDir string
	Timeout time.Duration
	Verbose bool
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		TestDir: DefaultTestDir,
		Timeout: DefaultTimeout,
	}
}

// Meta holds optional per-case settings from <name>.yaml.
type Meta struct {
	Description     string `yaml:"description"`
	AbortOnError    bool   `yaml:"abort_on_error"`
	DuplicateModels string `yaml:"duplicate_models"`
	SilentUnknown   bool   `yaml:"silent_unknown"`
	Output          string `yaml:"output"`
}

// Case is one golden test: a script, its expected output and its settings.
type Case struct {
	Name         string
	ScriptPath   string
	ExpectedPath string
	Meta         Meta
}

// LoadCase locates the files of test name under dir.
func LoadCase(dir, name string) (*Case, error) {
	name = strings.TrimSuffix(name, ScriptExt)
	c := &Case{
		Name:         name,
		ScriptPath:   filepath.Join(dir, name+ScriptExt),
		ExpectedPath: filepath.Join(dir, name+ExpectedExt),
	}

	if _, err := os.Stat(c.ScriptPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("test script not found: %s", c.ScriptPath)
		}
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(dir, name+MetaExt))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read metadata for %s: %w", name, err)
	default:
		if err := yaml.Unmarshal(data, &c.Meta); err != nil {
			return nil, fmt.Errorf("invalid metadata for %s: %w", name, err)
		}
	}
	return c, nil
}

// ListCases returns the names of all scripts in dir, sorted.
func ListCases(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+ScriptExt))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(filepath.Base(m), ScriptExt))
	}
	sort.Strings(names)
	return names, nil
}

// options maps case metadata onto runner options. Cases always run in test
// mode with the built-in package registry.
func (c *Case) options() (orchestration.Options, output.Mode, error) {
	policy, err := lslcontext.ParseDuplicatePolicy(c.Meta.DuplicateModels)
	if err != nil {
		return orchestration.Options{}, "", err
	}
	mode, err := output.ParseMode(c.Meta.Output)
	if err != nil {
		return orchestration.Options{}, "", err
	}
	return orchestration.Options{
		DuplicateModels: policy,
		TestMode:        true,
		AbortOnError:    c.Meta.AbortOnError,
		SilentUnknown:   c.Meta.SilentUnknown,
	}, mode, nil
}

// Expected reads the expected output with trailing newlines removed.
func (c *Case) Expected() (string, error) {
	data, err := os.ReadFile(c.ExpectedPath)
	if err != nil {
		return "", fmt.Errorf("failed to read expected file %s: %w", c.ExpectedPath, err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}
