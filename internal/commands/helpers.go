package commands

import (
	"context"
	"fmt"

	lslcontext "learnscript/internal/context"
	"learnscript/internal/parser"
	"learnscript/pkg/lsltypes"
)

// resolveModel returns the model named by the line's first quoted token, or
// the current model when the line names none.
func resolveModel(ec *lslcontext.ExecutionContext, line *parser.Line) (*lsltypes.Model, error) {
	return ec.Models().Resolve(line.Name())
}

// namedModels resolves every quoted name on the line; the line must carry at
// least atLeast names.
func namedModels(ec *lslcontext.ExecutionContext, line *parser.Line, atLeast int) ([]*lsltypes.Model, error) {
	if len(line.Names) < atLeast {
		return nil, fmt.Errorf("%w: %s needs at least %d quoted model names, got %d",
			lsltypes.ErrMissingModelContext, line.Command, atLeast, len(line.Names))
	}

	models := make([]*lsltypes.Model, 0, len(line.Names))
	for _, name := range line.Names {
		m, err := ec.Models().Resolve(name)
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	return models, nil
}

// requirePackage resolves name through the context's loader. The loader
// fetches on first use only.
func requirePackage(ctx context.Context, ec *lslcontext.ExecutionContext, name string) error {
	_, err := ec.Packages().Resolve(ctx, name)
	return err
}

func modelNames(models []*lsltypes.Model) []string {
	names := make([]string, len(models))
	for i, m := range models {
		names[i] = m.Name
	}
	return names
}
