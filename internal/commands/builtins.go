package commands

import (
	"context"
	"fmt"

	lslcontext "learnscript/internal/context"
	"learnscript/internal/parser"
	"learnscript/pkg/lsltypes"
)

// RegisterBuiltins registers one handler for every canonical command except
// model creation.
func RegisterBuiltins(d *Dispatcher) error {
	handlers := []Handler{
		&LayerCommand{},
		&TrainCommand{},
		&PredictCommand{},
		&SaveCommand{},
		&LoadCommand{},
		&VisualizeCommand{},
		&EnsembleCommand{},
		&TransferWeightsCommand{},
		&OptimizerCommand{},
		&DeployCommand{},
		&MergeCommand{},
		&QuickStartCommand{},
		&AutoTrainCommand{},
		&DatasetSplitCommand{},
		&statusCommand{
			name:        lsltypes.CommandEvaluateModel,
			description: "Evaluate a model on held-out data",
			usage:       `test ["<model>"]`,
			pkg:         lsltypes.PackageTensor,
			format:      "Model %s evaluated",
		},
		&statusCommand{
			name:        lsltypes.CommandHyperparameterTuning,
			description: "Start a hyperparameter search for a model",
			usage:       `tune ["<model>"] [trials:<int>]`,
			format:      "Hyperparameter tuning started for %s",
		},
		&statusCommand{
			name:        lsltypes.CommandModelExplanation,
			description: "Generate an explanation of a model's predictions",
			usage:       `explain ["<model>"]`,
			format:      "Model explanation generated for %s",
		},
		&statusCommand{
			name:        lsltypes.CommandModelCompression,
			description: "Compress a model",
			usage:       `compress ["<model>"] [method:<name>]`,
			format:      "Model compression completed for %s",
		},
		&statusCommand{
			name:        lsltypes.CommandModelValidation,
			description: "Validate a model",
			usage:       `check ["<model>"]`,
			format:      "Model validation completed for %s",
		},
		&dataCommand{
			name:        lsltypes.CommandDataCleaning,
			description: "Clean the active dataset",
			usage:       "clean [strategy:<name>]",
			message:     "Data cleaning completed",
		},
		&dataCommand{
			name:        lsltypes.CommandDataAugmentation,
			description: "Augment the active dataset",
			usage:       "augment [factor:<int>]",
			message:     "Data augmentation completed",
		},
	}

	for _, h := range handlers {
		if err := d.Register(h); err != nil {
			return err
		}
	}
	return nil
}

// statusCommand acts on a named or current model and reports completion.
// When pkg is set, the package is resolved before the model is reported.
type statusCommand struct {
	name        lsltypes.Command
	description string
	usage       string
	pkg         string
	format      string
}

func (c *statusCommand) Name() lsltypes.Command { return c.name }
func (c *statusCommand) Description() string    { return c.description }
func (c *statusCommand) Usage() string          { return c.usage }

func (c *statusCommand) Execute(ctx context.Context, ec *lslcontext.ExecutionContext, line *parser.Line) (string, error) {
	model, err := resolveModel(ec, line)
	if err != nil {
		return "", err
	}
	if c.pkg != "" {
		if err := requirePackage(ctx, ec, c.pkg); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf(c.format, model.Name), nil
}

// dataCommand operates on the dataset rather than a model and depends on
// the data package.
type dataCommand struct {
	name        lsltypes.Command
	description string
	usage       string
	message     string
}

func (c *dataCommand) Name() lsltypes.Command { return c.name }
func (c *dataCommand) Description() string    { return c.description }
func (c *dataCommand) Usage() string          { return c.usage }

func (c *dataCommand) Execute(ctx context.Context, ec *lslcontext.ExecutionContext, _ *parser.Line) (string, error) {
	if err := requirePackage(ctx, ec, lsltypes.PackageData); err != nil {
		return "", err
	}
	return c.message, nil
}
