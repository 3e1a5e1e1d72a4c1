package lsltypes

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  Command
		found bool
	}{
		{name: "exact model", token: "model", want: CommandModel, found: true},
		{name: "exact modelMerge", token: "modelMerge", want: CommandModelMerge, found: true},
		{name: "prefix is not a match", token: "modelMer", found: false},
		{name: "longer token is not a match", token: "trainer", found: false},
		{name: "alias is not canonical", token: "learn", found: false},
		{name: "empty", token: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCommand(tt.token)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllCommands_ReturnsCopy(t *testing.T) {
	cmds := AllCommands()
	cmds[0] = "mutated"
	assert.Equal(t, CommandModel, AllCommands()[0])
}

func TestParseLayerType(t *testing.T) {
	for _, lt := range LayerTypes() {
		got, ok := ParseLayerType(string(lt))
		assert.True(t, ok)
		assert.Equal(t, lt, got)
	}

	_, ok := ParseLayerType("foo")
	assert.False(t, ok)
}

func TestLayerSummary(t *testing.T) {
	assert.Equal(t, "dense(5)", DenseLayer{Units: 5}.Summary())
	assert.Equal(t, "dropout(0.25)", DropoutLayer{Rate: 0.25}.Summary())
	assert.Equal(t, "batchnorm(-1)", BatchNormLayer{Axis: -1}.Summary())
	assert.Equal(t, "attention(8)", AttentionLayer{NumHeads: 8}.Summary())
}

func TestParams_Accessors(t *testing.T) {
	p := Params{
		"epochs":        50,
		"learning_rate": 0.001,
		"whole":         4.0,
		"name":          "abc",
		"flag":          true,
		"kernel":        []any{5, 5},
		"bad":           []any{1, "x"},
	}

	n, ok := p.Int("epochs")
	assert.True(t, ok)
	assert.Equal(t, 50, n)

	n, ok = p.Int("whole")
	assert.True(t, ok)
	assert.Equal(t, 4, n)

	_, ok = p.Int("learning_rate")
	assert.False(t, ok)

	f, ok := p.Float("epochs")
	assert.True(t, ok)
	assert.Equal(t, 50.0, f)

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, ok = Params{"x": v}.Float("x")
		assert.False(t, ok, v)
	}

	s, ok := p.String("name")
	assert.True(t, ok)
	assert.Equal(t, "abc", s)

	b, ok := p.Bool("flag")
	assert.True(t, ok)
	assert.True(t, b)

	ks, ok := p.IntSlice("kernel")
	assert.True(t, ok)
	assert.Equal(t, []int{5, 5}, ks)

	_, ok = p.IntSlice("bad")
	assert.False(t, ok)

	single, ok := p.IntSlice("epochs")
	assert.True(t, ok)
	assert.Equal(t, []int{50}, single)

	assert.Equal(t, 7, p.IntOr("missing", 7))
	assert.Equal(t, 0.5, p.FloatOr("missing", 0.5))
	assert.Equal(t, "adam", p.StringOr("missing", "adam"))
	assert.True(t, p.Has("flag"))
	assert.False(t, p.Has("missing"))
}

func TestModel_AddLayerKeepsOrder(t *testing.T) {
	m := NewModel("id", "m", time.Time{})
	l1 := DenseLayer{Units: 1}
	l2 := DropoutLayer{Rate: 0.5}
	l3 := DenseLayer{Units: 3}
	m.AddLayer(l1)
	m.AddLayer(l2)
	m.AddLayer(l3)

	assert.Equal(t, []Layer{l1, l2, l3}, m.Layers)
	assert.Equal(t, 3, m.LayerCount())
	assert.NotNil(t, m.Config)
}

func TestMessages(t *testing.T) {
	entries := []ResultEntry{
		{Line: 1, Status: StatusOK, Message: "a"},
		{Line: 2, Status: StatusError, Message: "b"},
	}
	assert.Equal(t, []string{"a", "b"}, Messages(entries))
	assert.Equal(t, "a", entries[0].String())
}

func TestPackageHandle_HasCapability(t *testing.T) {
	h := &PackageHandle{Capabilities: []string{"tensor.create"}}
	assert.True(t, h.HasCapability("tensor.create"))
	assert.False(t, h.HasCapability("tensor.matmul"))
}
