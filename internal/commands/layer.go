package commands

import (
	"context"
	"fmt"

	lslcontext "learnscript/internal/context"
	"learnscript/internal/layers"
	"learnscript/internal/parser"
	"learnscript/pkg/lsltypes"
)

// LayerCommand implements `add <type> key:value ...`, appending a layer to
// the current model.
type LayerCommand struct{}

// Name returns CommandLayer.
func (c *LayerCommand) Name() lsltypes.Command {
	return lsltypes.CommandLayer
}

// Description returns a brief description of the layer command.
func (c *LayerCommand) Description() string {
	return "Append a layer to the current model"
}

// Usage returns the syntax of the layer command.
func (c *LayerCommand) Usage() string {
	return `add <dense|conv2d|dropout|batchnorm|lstm|attention> key:value ...

Examples:
  add dense input:784 output:128 activation:relu
  add conv2d filters:64 kernel:[5,5]
  add dropout rate:0.2
  add lstm units:64 return_sequences:true
  add attention heads:4`
}

// Execute builds the layer and appends it. The model is left untouched when
// construction fails.
func (c *LayerCommand) Execute(_ context.Context, ec *lslcontext.ExecutionContext, line *parser.Line) (string, error) {
	model, err := ec.Models().Resolve("")
	if err != nil {
		return "", err
	}

	tag := layers.TypeTag(line.Params, line.Words)
	layer, err := layers.New(tag, line.Params)
	if err != nil {
		return "", err
	}

	model.AddLayer(layer)
	return fmt.Sprintf("Layer added: %s", layer.Type()), nil
}
