package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewApp().CreateRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewApp().CreateRootCommand()
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"record", "run", "run-all", "accept", "diff", "list", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestRecordRunList(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "one.lsl"), []byte("new model \"a\"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "one.yaml"), []byte("description: creates a model\n"), 0o644))

	_, err := execute(t, "--test-dir", dir, "record", "one")
	require.NoError(t, err)

	out, err := execute(t, "--test-dir", dir, "run-all")
	require.NoError(t, err)
	assert.Contains(t, out, "PASS one")

	out, err = execute(t, "--test-dir", dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "creates a model")
}

func TestRun_MissingCase(t *testing.T) {
	_, err := execute(t, "--test-dir", t.TempDir(), "run", "nope")
	assert.ErrorContains(t, err, "test script not found")
}
