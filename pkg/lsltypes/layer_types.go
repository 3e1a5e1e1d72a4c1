package lsltypes

import (
	"fmt"
	"strconv"
)

// LayerType tags one of the closed set of layer variants.
type LayerType string

// Supported layer variants.
const (
	LayerDense     LayerType = "dense"
	LayerConv2D    LayerType = "conv2d"
	LayerDropout   LayerType = "dropout"
	LayerBatchNorm LayerType = "batchnorm"
	LayerLSTM      LayerType = "lstm"
	LayerAttention LayerType = "attention"
)

// LayerTypes lists every layer variant in a stable order.
func LayerTypes() []LayerType {
	return []LayerType{LayerDense, LayerConv2D, LayerDropout, LayerBatchNorm, LayerLSTM, LayerAttention}
}

// ParseLayerType resolves a type tag to a known variant.
func ParseLayerType(tag string) (LayerType, bool) {
	for _, t := range LayerTypes() {
		if string(t) == tag {
			return t, true
		}
	}
	return "", false
}

// Layer is an immutable descriptor of a single network layer.
// The interface is sealed; the six variants below are the only implementations.
type Layer interface {
	Type() LayerType
	// Summary is a compact form used in model visualizations, e.g. "dense(64)".
	Summary() string
	sealed()
}

// DenseLayer is a fully connected layer.
type DenseLayer struct {
	Units      int    `json:"units" yaml:"units"`
	InputShape []int  `json:"inputShape,omitempty" yaml:"inputShape,omitempty"`
	Activation string `json:"activation" yaml:"activation"`
}

// Conv2DLayer is a 2D convolution layer.
type Conv2DLayer struct {
	Filters    int    `json:"filters" yaml:"filters"`
	KernelSize [2]int `json:"kernelSize" yaml:"kernelSize"`
	Activation string `json:"activation" yaml:"activation"`
}

// DropoutLayer randomly zeroes a fraction of its inputs during training.
type DropoutLayer struct {
	Rate float64 `json:"rate" yaml:"rate"`
}

// BatchNormLayer normalizes activations along Axis.
type BatchNormLayer struct {
	Axis int `json:"axis" yaml:"axis"`
}

// LSTMLayer is a long short-term memory recurrent layer.
type LSTMLayer struct {
	Units           int  `json:"units" yaml:"units"`
	ReturnSequences bool `json:"returnSequences" yaml:"returnSequences"`
}

// AttentionLayer is a multi-head attention layer.
type AttentionLayer struct {
	NumHeads int `json:"numHeads" yaml:"numHeads"`
}

// Type returns LayerDense.
func (DenseLayer) Type() LayerType { return LayerDense }

// Type returns LayerConv2D.
func (Conv2DLayer) Type() LayerType { return LayerConv2D }

// Type returns LayerDropout.
func (DropoutLayer) Type() LayerType { return LayerDropout }

// Type returns LayerBatchNorm.
func (BatchNormLayer) Type() LayerType { return LayerBatchNorm }

// Type returns LayerLSTM.
func (LSTMLayer) Type() LayerType { return LayerLSTM }

// Type returns LayerAttention.
func (AttentionLayer) Type() LayerType { return LayerAttention }

func (l DenseLayer) Summary() string     { return fmt.Sprintf("dense(%d)", l.Units) }
func (l Conv2DLayer) Summary() string    { return fmt.Sprintf("conv2d(%d)", l.Filters) }
func (l BatchNormLayer) Summary() string { return fmt.Sprintf("batchnorm(%d)", l.Axis) }
func (l LSTMLayer) Summary() string      { return fmt.Sprintf("lstm(%d)", l.Units) }
func (l AttentionLayer) Summary() string { return fmt.Sprintf("attention(%d)", l.NumHeads) }

func (l DropoutLayer) Summary() string {
	return "dropout(" + strconv.FormatFloat(l.Rate, 'g', -1, 64) + ")"
}

func (DenseLayer) sealed()     {}
func (Conv2DLayer) sealed()    {}
func (DropoutLayer) sealed()   {}
func (BatchNormLayer) sealed() {}
func (LSTMLayer) sealed()      {}
func (AttentionLayer) sealed() {}
