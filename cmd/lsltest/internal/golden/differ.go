package golden

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Differ shows how a case's output departs from its expected file.
type Differ struct {
	runner *Runner
	config *Config
	out    io.Writer
}

// NewDiffer creates a differ that writes to out.
func NewDiffer(config *Config, out io.Writer) *Differ {
	return &Differ{runner: NewRunner(config, out), config: config, out: out}
}

// ShowDiff runs test name and prints a line diff against its expected file.
func (d *Differ) ShowDiff(ctx context.Context, name string) error {
	c, err := LoadCase(d.config.TestDir, name)
	if err != nil {
		return err
	}
	actual, err := d.runner.Output(ctx, c)
	if err != nil {
		return err
	}
	expected, err := c.Expected()
	if err != nil {
		return err
	}

	fmt.Fprintf(d.out, "=== Test: %s ===\n", name)
	if expected == actual {
		fmt.Fprintln(d.out, "No differences found - test passes!")
		return nil
	}
	fmt.Fprint(d.out, LineDiff(expected, actual))
	return nil
}

// LineDiff renders a unified-style diff of two outputs, one line per
// change: "-" for expected-only lines, "+" for actual-only lines and two
// spaces for shared ones.
func LineDiff(expected, actual string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(expected+"\n", actual+"\n")
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, diff := range diffs {
		marker := "  "
		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			marker = "- "
		case diffmatchpatch.DiffInsert:
			marker = "+ "
		}
		for _, line := range strings.Split(strings.TrimSuffix(diff.Text, "\n"), "\n") {
			sb.WriteString(marker + line + "\n")
		}
	}
	return sb.String()
}
