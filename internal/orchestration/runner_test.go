package orchestration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lslcontext "learnscript/internal/context"
	"learnscript/internal/testutils"
	"learnscript/pkg/lsltypes"
)

func newTestRunner(opts Options) (*Runner, *testutils.CountingFetcher) {
	fetcher := testutils.NewCountingFetcher()
	opts.Fetcher = fetcher
	opts.TestMode = true
	return NewRunner(opts), fetcher
}

func TestRun_CommentsAndBlankLinesOnly(t *testing.T) {
	r, fetcher := newTestRunner(Options{})

	entries, err := r.Run(context.Background(), "# header\n\n   \n  # indented comment\n")
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Zero(t, fetcher.TotalCalls())
}

func TestRun_PackageResolvedOnce(t *testing.T) {
	r, fetcher := newTestRunner(Options{})

	entries, err := r.Run(context.Background(), "package.add tensor\npackage.add tensor")
	require.NoError(t, err)
	assert.Equal(t, []string{"Package tensor loaded", "Package tensor loaded"}, lsltypes.Messages(entries))
	assert.Equal(t, 1, fetcher.Calls("tensor"))
}

func TestRun_PackageErrors(t *testing.T) {
	r, fetcher := newTestRunner(Options{})
	fetcher.FailWith("plot", errors.New("connection refused"))

	entries, err := r.Run(context.Background(), "package.add\npackage.add warp\npackage.add plot\npackage.add \"data\"")
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, lsltypes.StatusError, entries[0].Status)
	assert.Contains(t, entries[0].Message, "requires a package name")
	assert.Equal(t, "Error: package not found: warp", entries[1].Message)
	assert.Contains(t, entries[2].Message, "connection refused")
	assert.Equal(t, "Package data loaded", entries[3].Message)
	assert.Zero(t, fetcher.Calls("warp"))
}

func TestRun_DuplicateModelOverwrites(t *testing.T) {
	r, _ := newTestRunner(Options{})
	ec := r.NewContext()

	script := `new model "m"
add dense output:3
new model "m"
add dense output:7`
	require.NoError(t, r.RunIn(context.Background(), ec, script))

	assert.Equal(t, 1, ec.Models().Len())
	m, ok := ec.Models().Get("m")
	require.True(t, ok)
	require.Len(t, m.Layers, 1)
	assert.Equal(t, "dense(7)", m.Layers[0].Summary())
}

func TestRun_DuplicateModelFailPolicy(t *testing.T) {
	r, _ := newTestRunner(Options{DuplicateModels: lslcontext.DuplicateFail})

	entries, err := r.Run(context.Background(), "new model \"m\"\nnew model \"m\"")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Model m created", entries[0].Message)
	assert.Equal(t, lsltypes.StatusError, entries[1].Status)
	assert.Contains(t, entries[1].Message, "duplicate model")
}

func TestRun_LayerOrderPreserved(t *testing.T) {
	r, _ := newTestRunner(Options{})
	ec := r.NewContext()

	script := `model "m"
add dense input:10 output:5
add dropout rate:0.25
add batchnorm axis:1`
	require.NoError(t, r.RunIn(context.Background(), ec, script))

	m := ec.CurrentModel()
	require.NotNil(t, m)
	assert.Equal(t, []lsltypes.Layer{
		lsltypes.DenseLayer{Units: 5, InputShape: []int{10}, Activation: "relu"},
		lsltypes.DropoutLayer{Rate: 0.25},
		lsltypes.BatchNormLayer{Axis: 1},
	}, m.Layers)
}

func TestRun_UnknownLayerLeavesModelUntouched(t *testing.T) {
	r, _ := newTestRunner(Options{})
	ec := r.NewContext()

	require.NoError(t, r.RunIn(context.Background(), ec, "new model \"m\"\nadd dense output:2\nadd foo\nadd dropout"))

	entries := ec.Results().Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, lsltypes.StatusError, entries[2].Status)
	assert.Contains(t, entries[2].Message, "configuration error")
	assert.Equal(t, "Layer added: dropout", entries[3].Message)
	assert.Len(t, ec.CurrentModel().Layers, 2)
}

func TestRun_IdenticalAcrossContexts(t *testing.T) {
	script := `package.add tensor
new model "classifier"
add dense input:784 output:128
add dropout rate:0.2
learn epochs:5
show
bogus line`

	r, _ := newTestRunner(Options{})
	first, err := r.Run(context.Background(), script)
	require.NoError(t, err)
	second, err := r.Run(context.Background(), script)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, _ := newTestRunner(Options{})
	third, err := other.Run(context.Background(), script)
	require.NoError(t, err)
	assert.Equal(t, first, third)
}

func TestRun_EveryActedLineHasOneEntry(t *testing.T) {
	r, _ := newTestRunner(Options{})

	script := `# demo
new model "net"
add dense input:4 output:2

learn "net" epochs:3
launch rockets
add conv2d filters:"8
save`
	entries, err := r.Run(context.Background(), script)
	require.NoError(t, err)

	assert.Equal(t, []lsltypes.ResultEntry{
		{Line: 2, Source: `new model "net"`, Command: lsltypes.CommandModel, Status: lsltypes.StatusOK, Message: "Model net created"},
		{Line: 3, Source: "add dense input:4 output:2", Command: lsltypes.CommandLayer, Status: lsltypes.StatusOK, Message: "Layer added: dense"},
		{Line: 5, Source: `learn "net" epochs:3`, Command: lsltypes.CommandTrain, Status: lsltypes.StatusOK, Message: "Training started: net"},
		{Line: 6, Source: "launch rockets", Status: lsltypes.StatusIgnored, Message: "Ignored: launch rockets"},
		{Line: 7, Source: `add conv2d filters:"8`, Status: lsltypes.StatusError, Message: "Error: syntax error: unterminated quoted string"},
		{Line: 8, Source: "save", Command: lsltypes.CommandSaveModel, Status: lsltypes.StatusOK, Message: "Model net saved to net.lsm"},
	}, entries)
}

func TestRun_SilentUnknown(t *testing.T) {
	r, _ := newTestRunner(Options{SilentUnknown: true})

	entries, err := r.Run(context.Background(), "launch rockets\nnew model \"m\"")
	require.NoError(t, err)
	assert.Equal(t, []string{"Model m created"}, lsltypes.Messages(entries))
}

func TestRun_MissingModelName(t *testing.T) {
	r, _ := newTestRunner(Options{})
	ec := r.NewContext()

	require.NoError(t, r.RunIn(context.Background(), ec, "new model\nadd dense output:1"))
	entries := ec.Results().Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, lsltypes.StatusError, entries[0].Status)
	assert.Equal(t, lsltypes.StatusError, entries[1].Status)
	assert.Contains(t, entries[1].Message, "missing model context")
	assert.Zero(t, ec.Models().Len())
}

func TestRun_AbortOnError(t *testing.T) {
	r, _ := newTestRunner(Options{AbortOnError: true})

	entries, err := r.Run(context.Background(), "new model \"m\"\nadd foo\nadd dense output:1")
	require.Error(t, err)

	var lineErr *LineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, 2, lineErr.Line)
	assert.Equal(t, "add foo", lineErr.Source)
	assert.ErrorIs(t, err, lsltypes.ErrConfiguration)
	assert.Equal(t, `line 2: configuration error: unknown layer type "foo"`, err.Error())
	assert.Len(t, entries, 2)
}

func TestRun_AbortOnErrorKeepsErrorClass(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   error
	}{
		{name: "unknown package", script: "package.add sound", want: lsltypes.ErrPackageNotFound},
		{name: "no current model", script: "learn epochs:1", want: lsltypes.ErrMissingModelContext},
		{name: "unterminated quote", script: `new model "m`, want: lsltypes.ErrSyntax},
		{name: "duplicate model", script: "new model \"a\"\nnew model \"a\"", want: lsltypes.ErrDuplicateModel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRunner(Options{AbortOnError: true, DuplicateModels: lslcontext.DuplicateFail})
			_, err := r.Run(context.Background(), tt.script)
			assert.ErrorIs(t, err, tt.want)
			assert.NotContains(t, err.Error(), "Error:")
		})
	}
}

func TestRun_CancelledContext(t *testing.T) {
	r, fetcher := newTestRunner(Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	entries, err := r.Run(ctx, "package.add tensor")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, entries)
	assert.Zero(t, fetcher.TotalCalls())
}

func TestRun_AliasOnlyReplacesLeadingToken(t *testing.T) {
	r, _ := newTestRunner(Options{})
	ec := r.NewContext()

	require.NoError(t, r.RunIn(context.Background(), ec, "new model \"add learn\"\nsave path:\"add/learn.lsm\""))
	m, ok := ec.Models().Get("add learn")
	require.True(t, ok)
	assert.Equal(t, "add/learn.lsm", m.Config["saved_to"])
}

func TestExecuteScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.lsl")
	require.NoError(t, os.WriteFile(path, []byte("new model \"m\"\nadd dense output:2\n"), 0o644))

	entries, err := ExecuteScript(context.Background(), path, Options{TestMode: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Model m created", "Layer added: dense"}, lsltypes.Messages(entries))

	_, err = ExecuteScript(context.Background(), filepath.Join(t.TempDir(), "missing.lsl"), Options{})
	assert.Error(t, err)
}
