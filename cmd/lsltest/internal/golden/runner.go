package golden

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"learnscript/internal/orchestration"
	"learnscript/internal/output"
)

// ErrMismatch is returned when a case's output differs from its expected
// file.
var ErrMismatch = errors.New("output doesn't match expected")

// Runner executes golden cases in-process.
type Runner struct {
	config *Config
	out    io.Writer
}

// NewRunner creates a runner that reports to out.
func NewRunner(config *Config, out io.Writer) *Runner {
	return &Runner{config: config, out: out}
}

// Output runs the case's script and returns its normalized printed output.
// A script stopped by abort_on_error still yields the output produced so far.
func (r *Runner) Output(ctx context.Context, c *Case) (string, error) {
	opts, mode, err := c.options()
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	out, err := output.CaptureResults(mode, func(p *output.Printer) error {
		entries, err := orchestration.ExecuteScript(ctx, c.ScriptPath, opts)
		var lineErr *orchestration.LineError
		if err != nil && !errors.As(err, &lineErr) {
			return err
		}
		if lineErr != nil && r.config.Verbose {
			fmt.Fprintf(r.out, "%s stopped at line %d\n", c.Name, lineErr.Line)
		}
		return p.PrintResults(entries)
	})
	if err != nil {
		return "", err
	}
	return Normalize(out), nil
}

// RunTest runs test name and compares it with its expected file.
func (r *Runner) RunTest(ctx context.Context, name string) error {
	if r.config.Verbose {
		fmt.Fprintf(r.out, "Running test: %s\n", name)
	}

	c, err := LoadCase(r.config.TestDir, name)
	if err != nil {
		return err
	}
	actual, err := r.Output(ctx, c)
	if err != nil {
		return err
	}
	expected, err := c.Expected()
	if err != nil {
		return err
	}

	if expected != actual {
		return fmt.Errorf("test %s failed: %w", name, ErrMismatch)
	}
	if r.config.Verbose {
		fmt.Fprintf(r.out, "Test passed: %s\n", name)
	}
	return nil
}

// RunAllTests runs every case in the test directory and prints a summary.
func (r *Runner) RunAllTests(ctx context.Context) error {
	names, err := ListCases(r.config.TestDir)
	if err != nil {
		return fmt.Errorf("failed to find tests: %w", err)
	}

	var failed []string
	for _, name := range names {
		if err := r.RunTest(ctx, name); err != nil {
			failed = append(failed, name)
			fmt.Fprintf(r.out, "FAIL %s: %v\n", name, err)
			continue
		}
		fmt.Fprintf(r.out, "PASS %s\n", name)
	}

	fmt.Fprintf(r.out, "\nResults: %d passed, %d failed\n", len(names)-len(failed), len(failed))
	if len(failed) > 0 {
		return fmt.Errorf("tests failed: %s", strings.Join(failed, ", "))
	}
	return nil
}

// Normalize strips ANSI escape sequences, trailing whitespace on each line
// and trailing blank lines, so styled cases compare on their text.
func Normalize(s string) string {
	s = ansi.Strip(s)
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
