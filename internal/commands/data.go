package commands

import (
	"context"
	"fmt"

	lslcontext "learnscript/internal/context"
	"learnscript/internal/parser"
	"learnscript/pkg/lsltypes"
)

// DefaultSplitRatio is the training share used by datasetSplit.
const DefaultSplitRatio = 0.8

// DatasetSplitCommand implements `split [ratio:<float>]`. It depends on the
// data package.
type DatasetSplitCommand struct{}

// Name returns CommandDatasetSplit.
func (c *DatasetSplitCommand) Name() lsltypes.Command {
	return lsltypes.CommandDatasetSplit
}

// Description returns a brief description of the split command.
func (c *DatasetSplitCommand) Description() string {
	return "Split the active dataset into training and test sets (resolves the data package)"
}

// Usage returns the syntax of the split command.
func (c *DatasetSplitCommand) Usage() string {
	return "split [ratio:0.8]"
}

// Execute validates the ratio, then resolves the data package.
func (c *DatasetSplitCommand) Execute(ctx context.Context, ec *lslcontext.ExecutionContext, line *parser.Line) (string, error) {
	if line.Params.Has("ratio") {
		ratio, ok := line.Params.Float("ratio")
		if !ok || ratio <= 0 || ratio >= 1 {
			return "", fmt.Errorf("%w: ratio must be between 0 and 1", lsltypes.ErrConfiguration)
		}
	}

	if err := requirePackage(ctx, ec, lsltypes.PackageData); err != nil {
		return "", err
	}
	return "Dataset split completed", nil
}
