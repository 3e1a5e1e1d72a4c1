package golden

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Recorder writes expected files from current output.
type Recorder struct {
	config *Config
	runner *Runner
	out    io.Writer
}

// NewRecorder creates a recorder that reports to out.
func NewRecorder(config *Config, out io.Writer) *Recorder {
	return &Recorder{config: config, runner: NewRunner(config, out), out: out}
}

// RecordTest runs test name and saves its output as the expected file.
func (r *Recorder) RecordTest(ctx context.Context, name string) error {
	if r.config.Verbose {
		fmt.Fprintf(r.out, "Recording test: %s\n", name)
	}

	c, err := LoadCase(r.config.TestDir, name)
	if err != nil {
		return err
	}
	actual, err := r.runner.Output(ctx, c)
	if err != nil {
		return err
	}

	if err := os.WriteFile(c.ExpectedPath, []byte(actual+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write expected file: %w", err)
	}
	if r.config.Verbose {
		fmt.Fprintf(r.out, "Recorded expected output for test: %s\n", name)
	}
	return nil
}

// AcceptTest replaces the expected file of an existing case.
func (r *Recorder) AcceptTest(ctx context.Context, name string) error {
	c, err := LoadCase(r.config.TestDir, name)
	if err != nil {
		return err
	}
	if _, err := os.Stat(c.ExpectedPath); err != nil {
		return fmt.Errorf("no expected file to accept for %s; use record", name)
	}
	return r.RecordTest(ctx, name)
}
