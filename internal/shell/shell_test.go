package shell

import (
	"context"
	"sort"
	"testing"

	"github.com/abiosoft/ishell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnscript/internal/orchestration"
	"learnscript/internal/output"
	"learnscript/internal/packages"
	"learnscript/internal/testutils"
	"learnscript/pkg/lsltypes"
)

func newTestSession(t *testing.T) (*Session, *output.CaptureBuffer, *testutils.CountingFetcher) {
	t.Helper()
	fetcher := testutils.NewCountingFetcher()
	runner := orchestration.NewRunner(orchestration.Options{Fetcher: fetcher, TestMode: true})
	buffer := output.NewCaptureBuffer()
	printer := output.NewPrinter(output.WithWriter(buffer), output.TestMode())
	return NewSession(runner, printer), buffer, fetcher
}

func TestSession_StatePersistsAcrossInputs(t *testing.T) {
	s, buffer, fetcher := newTestSession(t)
	ctx := context.Background()

	s.Execute(ctx, `new model "net"`)
	s.Execute(ctx, "add dense output:4")
	s.Execute(ctx, "# comment")
	entry, ok := s.Execute(ctx, "learn")
	require.True(t, ok)
	assert.Equal(t, "Training started: net", entry.Message)
	assert.Equal(t, 4, entry.Line)

	s.Execute(ctx, "learn")
	assert.Equal(t, 1, fetcher.Calls(lsltypes.PackageTensor))

	assert.Equal(t, []string{
		"Model net created",
		"Layer added: dense",
		"Training started: net",
		"Training started: net",
	}, buffer.Lines())
	assert.Equal(t, 4, s.Context().Results().Len())
}

func TestSession_Reset(t *testing.T) {
	s, _, _ := newTestSession(t)
	ctx := context.Background()

	s.Execute(ctx, `new model "net"`)
	s.Reset()

	assert.Zero(t, s.Context().Models().Len())
	entry, ok := s.Execute(ctx, "add dense output:1")
	require.True(t, ok)
	assert.Equal(t, lsltypes.StatusError, entry.Status)
	assert.Equal(t, 1, entry.Line)
}

func TestSession_ModelsAndPackagesText(t *testing.T) {
	s, _, _ := newTestSession(t)
	ctx := context.Background()

	assert.Equal(t, "No models.", s.ModelsText())
	assert.Equal(t, "No packages loaded.", s.PackagesText())

	s.Execute(ctx, `new model "a"`)
	s.Execute(ctx, "add dense output:1")
	s.Execute(ctx, `new model "b"`)
	s.Execute(ctx, "package.add plot")
	s.Execute(ctx, "package.add data")

	assert.Equal(t, "  a (1 layers)\n* b (0 layers)", s.ModelsText())
	assert.Equal(t, "Loaded: data, plot", s.PackagesText())
}

func TestSession_HelpAndUsage(t *testing.T) {
	s, _, _ := newTestSession(t)

	help := s.HelpText()
	assert.Contains(t, help, "model")
	assert.Contains(t, help, "learn")
	assert.Contains(t, help, lsltypes.PackageDirective)

	usage, ok := s.UsageText("learn")
	require.True(t, ok)
	assert.Contains(t, usage, "train")
	assert.Contains(t, usage, "epochs")

	_, ok = s.UsageText("saveModel")
	assert.True(t, ok)
	_, ok = s.UsageText("fly")
	assert.False(t, ok)
	_, ok = s.UsageText("new")
	assert.False(t, ok, "model creation has no handler")
}

func commandFunc(t *testing.T, s *Session, name string) func(*ishell.Context) {
	t.Helper()
	for _, c := range s.Commands() {
		if c.Name == name {
			return c.Func
		}
	}
	t.Fatalf("no shell command %s", name)
	return nil
}

func TestSession_BuiltinCommandsPrint(t *testing.T) {
	s, buffer, _ := newTestSession(t)
	s.Execute(context.Background(), `new model "a"`)
	buffer.Reset()

	commandFunc(t, s, "models")(&ishell.Context{})
	commandFunc(t, s, "packages")(&ishell.Context{})
	commandFunc(t, s, "help")(&ishell.Context{Args: []string{"fly"}})
	commandFunc(t, s, "reset")(&ishell.Context{})

	assert.Equal(t, []string{
		"* a (0 layers)",
		"No packages loaded.",
		"Unknown command: fly",
		"Session reset.",
	}, buffer.Lines())
	assert.Zero(t, s.Context().Models().Len())
}

func TestSession_ProcessInputJoinsWords(t *testing.T) {
	s, _, _ := newTestSession(t)

	s.ProcessInput(&ishell.Context{RawArgs: []string{"new", "model", `"my`, `model"`}})
	_, ok := s.Context().Models().Get("my model")
	assert.True(t, ok)
	assert.Contains(t, s.HelpText(), ReplNote)

	s.ProcessInput(&ishell.Context{})
	assert.Equal(t, 1, s.Context().Results().Len())
}

func TestSession_CommandsSorted(t *testing.T) {
	s, _, _ := newTestSession(t)

	var names []string
	for _, c := range s.Commands() {
		names = append(names, c.Name)
		assert.NotEmpty(t, c.Help)
		assert.NotNil(t, c.Func)
	}
	assert.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, "reset")
}

func TestCompleter(t *testing.T) {
	s, _, _ := newTestSession(t)
	c := NewCompleter(s.runner.Dispatcher(), packages.DefaultRegistry())

	tests := []struct {
		name       string
		line       string
		want       []string
		wantLength int
	}{
		{name: "verb prefix", line: "lea", want: []string{"rn "}, wantLength: 3},
		{name: "layer type", line: "add dr", want: []string{"opout "}, wantLength: 2},
		{name: "package", line: "package.add te", want: []string{"nsor ", "xt "}, wantLength: 2},
		{name: "no completions for params", line: "learn epo", want: nil, wantLength: 3},
		{name: "exact word", line: "learn", want: nil, wantLength: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, length := c.Do([]rune(tt.line), len([]rune(tt.line)))
			var suffixes []string
			for _, g := range got {
				suffixes = append(suffixes, string(g))
			}
			assert.Equal(t, tt.want, suffixes)
			assert.Equal(t, tt.wantLength, length)
		})
	}
}
