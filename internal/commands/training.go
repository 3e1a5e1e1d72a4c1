package commands

import (
	"context"
	"fmt"

	lslcontext "learnscript/internal/context"
	"learnscript/internal/layers"
	"learnscript/internal/parser"
	"learnscript/pkg/lsltypes"
)

// Training defaults.
const (
	DefaultEpochs          = 10
	DefaultBatchSize       = 32
	DefaultLearningRate    = 0.01
	DefaultQuickStartName  = "quick_model"
	DefaultQuickStartUnits = 64
)

// TrainCommand implements `learn "<model>" epochs:<int> batch_size:<int> learning_rate:<float>`.
// It depends on the tensor package, which is resolved on first use.
type TrainCommand struct{}

// Name returns CommandTrain.
func (c *TrainCommand) Name() lsltypes.Command {
	return lsltypes.CommandTrain
}

// Description returns a brief description of the train command.
func (c *TrainCommand) Description() string {
	return "Start training a model (resolves the tensor package)"
}

// Usage returns the syntax of the train command.
func (c *TrainCommand) Usage() string {
	return `learn ["<model>"] [epochs:10] [batch_size:32] [learning_rate:0.01]`
}

// Execute records the training configuration on the model.
func (c *TrainCommand) Execute(ctx context.Context, ec *lslcontext.ExecutionContext, line *parser.Line) (string, error) {
	model, err := resolveModel(ec, line)
	if err != nil {
		return "", err
	}
	return startTraining(ctx, ec, model, line.Params)
}

func startTraining(ctx context.Context, ec *lslcontext.ExecutionContext, model *lsltypes.Model, params lsltypes.Params) (string, error) {
	cfg, err := trainingConfig(params)
	if err != nil {
		return "", err
	}

	if err := requirePackage(ctx, ec, lsltypes.PackageTensor); err != nil {
		return "", err
	}

	model.Config["training"] = cfg
	return fmt.Sprintf("Training started: %s", model.Name), nil
}

func trainingConfig(params lsltypes.Params) (map[string]any, error) {
	epochs, err := positiveIntParam(params, "epochs", DefaultEpochs)
	if err != nil {
		return nil, err
	}
	batchSize, err := positiveIntParam(params, "batch_size", DefaultBatchSize)
	if err != nil {
		return nil, err
	}

	learningRate := DefaultLearningRate
	if params.Has("learning_rate") {
		lr, ok := params.Float("learning_rate")
		if !ok || lr <= 0 {
			return nil, fmt.Errorf("%w: learning_rate must be a positive number", lsltypes.ErrConfiguration)
		}
		learningRate = lr
	}

	return map[string]any{
		"epochs":        epochs,
		"batch_size":    batchSize,
		"learning_rate": learningRate,
	}, nil
}

func positiveIntParam(params lsltypes.Params, key string, def int) (int, error) {
	if !params.Has(key) {
		return def, nil
	}
	n, ok := params.Int(key)
	if !ok || n <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", lsltypes.ErrConfiguration, key)
	}
	return n, nil
}

// PredictCommand implements `guess "<model>" ...`. It depends on the tensor
// package.
type PredictCommand struct{}

// Name returns CommandPredict.
func (c *PredictCommand) Name() lsltypes.Command {
	return lsltypes.CommandPredict
}

// Description returns a brief description of the predict command.
func (c *PredictCommand) Description() string {
	return "Run a prediction with a model (resolves the tensor package)"
}

// Usage returns the syntax of the predict command.
func (c *PredictCommand) Usage() string {
	return `guess ["<model>"] [input:<value>]`
}

// Execute checks the model and the tensor package.
func (c *PredictCommand) Execute(ctx context.Context, ec *lslcontext.ExecutionContext, line *parser.Line) (string, error) {
	model, err := resolveModel(ec, line)
	if err != nil {
		return "", err
	}
	if err := requirePackage(ctx, ec, lsltypes.PackageTensor); err != nil {
		return "", err
	}
	return fmt.Sprintf("Prediction made for model: %s", model.Name), nil
}

// QuickStartCommand implements `quickStart "<model>" input:<int> output:<int>`:
// a model with a hidden dense layer of 64 units and an output dense layer.
type QuickStartCommand struct{}

// Name returns CommandQuickStart.
func (c *QuickStartCommand) Name() lsltypes.Command {
	return lsltypes.CommandQuickStart
}

// Description returns a brief description of the quickStart command.
func (c *QuickStartCommand) Description() string {
	return "Create a two-layer dense model in one step"
}

// Usage returns the syntax of the quickStart command.
func (c *QuickStartCommand) Usage() string {
	return `quickStart ["<model>"] input:<int> output:<int>`
}

// Execute creates the model and makes it current.
func (c *QuickStartCommand) Execute(_ context.Context, ec *lslcontext.ExecutionContext, line *parser.Line) (string, error) {
	model, err := quickStart(ec, line)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Model %s created with %d layers", model.Name, model.LayerCount()), nil
}

func quickStart(ec *lslcontext.ExecutionContext, line *parser.Line) (*lsltypes.Model, error) {
	name := line.Name()
	if name == "" {
		name = DefaultQuickStartName
	}

	input, ok := line.Params.Int("input")
	if !ok {
		return nil, fmt.Errorf("%w: %s requires input", lsltypes.ErrConfiguration, line.Command)
	}
	output, ok := line.Params.Int("output")
	if !ok {
		return nil, fmt.Errorf("%w: %s requires output", lsltypes.ErrConfiguration, line.Command)
	}

	hidden, err := layers.New(string(lsltypes.LayerDense), lsltypes.Params{"input": input, "output": DefaultQuickStartUnits})
	if err != nil {
		return nil, err
	}
	out, err := layers.New(string(lsltypes.LayerDense), lsltypes.Params{"output": output})
	if err != nil {
		return nil, err
	}

	model, _, err := ec.Models().Create(name)
	if err != nil {
		return nil, err
	}
	model.AddLayer(hidden)
	model.AddLayer(out)
	return model, nil
}

// AutoTrainCommand implements `autoTrain "<model>" input:<int> output:<int> epochs:<int>`:
// quickStart followed by train.
type AutoTrainCommand struct{}

// Name returns CommandAutoTrain.
func (c *AutoTrainCommand) Name() lsltypes.Command {
	return lsltypes.CommandAutoTrain
}

// Description returns a brief description of the autoTrain command.
func (c *AutoTrainCommand) Description() string {
	return "Create a quick-start model and start training it (resolves the tensor package)"
}

// Usage returns the syntax of the autoTrain command.
func (c *AutoTrainCommand) Usage() string {
	return `autoTrain ["<model>"] input:<int> output:<int> [epochs:10]`
}

// Execute validates the training configuration before creating the model so
// that a bad line leaves the registry untouched.
func (c *AutoTrainCommand) Execute(ctx context.Context, ec *lslcontext.ExecutionContext, line *parser.Line) (string, error) {
	if _, err := trainingConfig(line.Params); err != nil {
		return "", err
	}
	model, err := quickStart(ec, line)
	if err != nil {
		return "", err
	}
	return startTraining(ctx, ec, model, line.Params)
}
