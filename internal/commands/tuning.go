package commands

import (
	"context"
	"fmt"

	lslcontext "learnscript/internal/context"
	"learnscript/internal/parser"
	"learnscript/pkg/lsltypes"
)

// Optimizer and deployment defaults.
const (
	DefaultOptimizer             = "adam"
	DefaultOptimizerLearningRate = 0.001
	DefaultDeployTarget          = "local"
)

// OptimizerCommand implements `optimize "<model>" [type:<name>] [learning_rate:<float>]`.
type OptimizerCommand struct{}

// Name returns CommandConfigureOptimizer.
func (c *OptimizerCommand) Name() lsltypes.Command {
	return lsltypes.CommandConfigureOptimizer
}

// Description returns a brief description of the optimizer command.
func (c *OptimizerCommand) Description() string {
	return "Configure the optimizer of a model"
}

// Usage returns the syntax of the optimizer command.
func (c *OptimizerCommand) Usage() string {
	return `optimize ["<model>"] [type:adam] [learning_rate:0.001]`
}

// Execute stores the optimizer settings in the model configuration.
func (c *OptimizerCommand) Execute(_ context.Context, ec *lslcontext.ExecutionContext, line *parser.Line) (string, error) {
	model, err := resolveModel(ec, line)
	if err != nil {
		return "", err
	}

	learningRate := DefaultOptimizerLearningRate
	if line.Params.Has("learning_rate") {
		lr, ok := line.Params.Float("learning_rate")
		if !ok || lr <= 0 {
			return "", fmt.Errorf("%w: learning_rate must be a positive number", lsltypes.ErrConfiguration)
		}
		learningRate = lr
	}

	model.Config["optimizer"] = map[string]any{
		"type":          line.Params.StringOr("type", DefaultOptimizer),
		"learning_rate": learningRate,
	}
	return fmt.Sprintf("Optimizer configured for %s", model.Name), nil
}

// DeployCommand implements `deploy "<model>" [target:<name>]`.
type DeployCommand struct{}

// Name returns CommandModelDeployment.
func (c *DeployCommand) Name() lsltypes.Command {
	return lsltypes.CommandModelDeployment
}

// Description returns a brief description of the deploy command.
func (c *DeployCommand) Description() string {
	return "Deploy a model to a target"
}

// Usage returns the syntax of the deploy command.
func (c *DeployCommand) Usage() string {
	return `deploy ["<model>"] [target:local]`
}

// Execute records the deployment target.
func (c *DeployCommand) Execute(_ context.Context, ec *lslcontext.ExecutionContext, line *parser.Line) (string, error) {
	model, err := resolveModel(ec, line)
	if err != nil {
		return "", err
	}

	target := line.Params.StringOr("target", DefaultDeployTarget)
	model.Config["deployment"] = target
	return fmt.Sprintf("Model %s deployed to %s", model.Name, target), nil
}
