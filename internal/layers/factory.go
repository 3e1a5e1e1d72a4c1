// Package layers builds immutable layer descriptors from parsed parameters.
// Construction is pure: it never touches a model or any other state.
package layers

import (
	"fmt"

	"learnscript/pkg/lsltypes"
)

// Default values applied when a parameter is omitted.
const (
	DefaultActivation     = "relu"
	DefaultConv2DFilters  = 32
	DefaultKernelSize     = 3
	DefaultDropoutRate    = 0.5
	DefaultBatchNormAxis  = -1
	DefaultAttentionHeads = 8
)

// TypeTag returns the layer type requested by a line: the `type` parameter
// when present, otherwise the first bare word.
func TypeTag(params lsltypes.Params, words []string) string {
	if tag, ok := params.String("type"); ok {
		return tag
	}
	if len(words) > 0 {
		return words[0]
	}
	return ""
}

// New constructs a layer of the given type from params.
func New(tag string, params lsltypes.Params) (lsltypes.Layer, error) {
	if tag == "" {
		return nil, fmt.Errorf("%w: layer type is required", lsltypes.ErrConfiguration)
	}

	layerType, ok := lsltypes.ParseLayerType(tag)
	if !ok {
		return nil, fmt.Errorf("%w: unknown layer type %q", lsltypes.ErrConfiguration, tag)
	}

	if params == nil {
		params = lsltypes.Params{}
	}

	switch layerType {
	case lsltypes.LayerDense:
		return newDense(params)
	case lsltypes.LayerConv2D:
		return newConv2D(params)
	case lsltypes.LayerDropout:
		return newDropout(params)
	case lsltypes.LayerBatchNorm:
		return newBatchNorm(params)
	case lsltypes.LayerLSTM:
		return newLSTM(params)
	case lsltypes.LayerAttention:
		return newAttention(params)
	}

	return nil, fmt.Errorf("%w: unhandled layer type %q", lsltypes.ErrConfiguration, tag)
}

func newDense(params lsltypes.Params) (lsltypes.Layer, error) {
	units, err := positiveInt(params, "dense", "output", "units")
	if err != nil {
		return nil, err
	}

	layer := lsltypes.DenseLayer{
		Units:      units,
		Activation: params.StringOr("activation", DefaultActivation),
	}

	if params.Has("input") {
		input, ok := params.Int("input")
		if !ok || input <= 0 {
			return nil, fmt.Errorf("%w: dense input must be a positive integer", lsltypes.ErrConfiguration)
		}
		layer.InputShape = []int{input}
	}

	return layer, nil
}

func newConv2D(params lsltypes.Params) (lsltypes.Layer, error) {
	filters := DefaultConv2DFilters
	if params.Has("filters") {
		f, err := positiveInt(params, "conv2d", "filters")
		if err != nil {
			return nil, err
		}
		filters = f
	}

	kernel := [2]int{DefaultKernelSize, DefaultKernelSize}
	if params.Has("kernel") {
		dims, ok := params.IntSlice("kernel")
		switch {
		case !ok:
			return nil, fmt.Errorf("%w: conv2d kernel must be an integer or [h,w]", lsltypes.ErrConfiguration)
		case len(dims) == 1:
			kernel = [2]int{dims[0], dims[0]}
		case len(dims) == 2:
			kernel = [2]int{dims[0], dims[1]}
		default:
			return nil, fmt.Errorf("%w: conv2d kernel must have 1 or 2 dimensions, got %d", lsltypes.ErrConfiguration, len(dims))
		}
		if kernel[0] <= 0 || kernel[1] <= 0 {
			return nil, fmt.Errorf("%w: conv2d kernel dimensions must be positive", lsltypes.ErrConfiguration)
		}
	}

	return lsltypes.Conv2DLayer{
		Filters:    filters,
		KernelSize: kernel,
		Activation: params.StringOr("activation", DefaultActivation),
	}, nil
}

func newDropout(params lsltypes.Params) (lsltypes.Layer, error) {
	rate := DefaultDropoutRate
	if params.Has("rate") {
		r, ok := params.Float("rate")
		if !ok || r < 0 || r >= 1 {
			return nil, fmt.Errorf("%w: dropout rate must be a number in [0, 1)", lsltypes.ErrConfiguration)
		}
		rate = r
	}
	return lsltypes.DropoutLayer{Rate: rate}, nil
}

func newBatchNorm(params lsltypes.Params) (lsltypes.Layer, error) {
	axis := DefaultBatchNormAxis
	if params.Has("axis") {
		a, ok := params.Int("axis")
		if !ok {
			return nil, fmt.Errorf("%w: batchnorm axis must be an integer", lsltypes.ErrConfiguration)
		}
		axis = a
	}
	return lsltypes.BatchNormLayer{Axis: axis}, nil
}

func newLSTM(params lsltypes.Params) (lsltypes.Layer, error) {
	units, err := positiveInt(params, "lstm", "units")
	if err != nil {
		return nil, err
	}

	returnSequences := false
	if params.Has("return_sequences") {
		rs, ok := params.Bool("return_sequences")
		if !ok {
			return nil, fmt.Errorf("%w: lstm return_sequences must be true or false", lsltypes.ErrConfiguration)
		}
		returnSequences = rs
	}

	return lsltypes.LSTMLayer{Units: units, ReturnSequences: returnSequences}, nil
}

func newAttention(params lsltypes.Params) (lsltypes.Layer, error) {
	if !params.Has("heads") && !params.Has("num_heads") {
		return lsltypes.AttentionLayer{NumHeads: DefaultAttentionHeads}, nil
	}
	heads, err := positiveInt(params, "attention", "heads", "num_heads")
	if err != nil {
		return nil, err
	}
	return lsltypes.AttentionLayer{NumHeads: heads}, nil
}

// positiveInt returns the first of keys present in params, which must be a
// positive integer.
func positiveInt(params lsltypes.Params, layer string, keys ...string) (int, error) {
	for _, key := range keys {
		if !params.Has(key) {
			continue
		}
		n, ok := params.Int(key)
		if !ok || n <= 0 {
			return 0, fmt.Errorf("%w: %s %s must be a positive integer", lsltypes.ErrConfiguration, layer, key)
		}
		return n, nil
	}

	if len(keys) == 1 {
		return 0, fmt.Errorf("%w: %s layer requires %s", lsltypes.ErrConfiguration, layer, keys[0])
	}
	return 0, fmt.Errorf("%w: %s layer requires %s or %s", lsltypes.ErrConfiguration, layer, keys[0], keys[1])
}
