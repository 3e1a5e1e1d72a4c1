package golden

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCase(t *testing.T, dir, name, script, meta string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+ScriptExt), []byte(script), 0o644))
	if meta != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+MetaExt), []byte(meta), 0o644))
	}
}

func testConfig(dir string) *Config {
	return &Config{TestDir: dir, Timeout: 5 * time.Second}
}

func TestLoadCase(t *testing.T) {
	dir := t.TempDir()
	writeCase(t, dir, "strict", "new model \"a\"\n", "abort_on_error: true\nduplicate_models: fail\n")

	c, err := LoadCase(dir, "strict.lsl")
	require.NoError(t, err)
	assert.Equal(t, "strict", c.Name)
	assert.True(t, c.Meta.AbortOnError)
	assert.Equal(t, "fail", c.Meta.DuplicateModels)

	_, err = LoadCase(dir, "missing")
	assert.ErrorContains(t, err, "test script not found")
}

func TestLoadCase_InvalidMeta(t *testing.T) {
	dir := t.TempDir()
	writeCase(t, dir, "bad", "new model \"a\"\n", "abort_on_error: [\n")

	_, err := LoadCase(dir, "bad")
	assert.ErrorContains(t, err, "invalid metadata")
}

func TestListCases(t *testing.T) {
	dir := t.TempDir()
	writeCase(t, dir, "b", "", "")
	writeCase(t, dir, "a", "", "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.expected"), nil, 0o644))

	names, err := ListCases(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestRecordThenRun(t *testing.T) {
	dir := t.TempDir()
	writeCase(t, dir, "flow", "new model \"m\"\nadd dense output:4\n", "")

	var out bytes.Buffer
	cfg := testConfig(dir)
	require.NoError(t, NewRecorder(cfg, &out).RecordTest(context.Background(), "flow"))

	data, err := os.ReadFile(filepath.Join(dir, "flow.expected"))
	require.NoError(t, err)
	assert.Equal(t, "Model m created\nLayer added: dense\n", string(data))

	assert.NoError(t, NewRunner(cfg, &out).RunTest(context.Background(), "flow"))
}

func TestRunTest_Mismatch(t *testing.T) {
	dir := t.TempDir()
	writeCase(t, dir, "flow", "new model \"m\"\n", "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flow.expected"), []byte("Model x created\n"), 0o644))

	err := NewRunner(testConfig(dir), &bytes.Buffer{}).RunTest(context.Background(), "flow")
	assert.ErrorIs(t, err, ErrMismatch)
}

func TestRunTest_MetaOptions(t *testing.T) {
	tests := []struct {
		name     string
		script   string
		meta     string
		expected string
	}{
		{
			name:     "abort on error",
			script:   "learn\nnew model \"a\"\n",
			meta:     "abort_on_error: true\n",
			expected: "Error: missing model context: no current model (create one with new model \"<name>\")",
		},
		{
			name:     "silent unknown",
			script:   "hello\nnew model \"a\"\n",
			meta:     "silent_unknown: true\n",
			expected: "Model a created",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeCase(t, dir, "case", tt.script, tt.meta)
			c, err := LoadCase(dir, "case")
			require.NoError(t, err)

			actual, err := NewRunner(testConfig(dir), &bytes.Buffer{}).Output(context.Background(), c)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestAcceptTest_RequiresExpected(t *testing.T) {
	dir := t.TempDir()
	writeCase(t, dir, "fresh", "new model \"a\"\n", "")

	err := NewRecorder(testConfig(dir), &bytes.Buffer{}).AcceptTest(context.Background(), "fresh")
	assert.ErrorContains(t, err, "use record")
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a\nb", Normalize("a  \r\nb\t\n\n"))
	assert.Equal(t, "", Normalize("\n"))
	assert.Equal(t, "Model a created", Normalize("\x1b[32mModel a created\x1b[0m\n"))
}

func TestLineDiff(t *testing.T) {
	diff := LineDiff("a\nb\nc", "a\nx\nc")
	assert.Equal(t, "  a\n- b\n+ x\n  c\n", diff)
}

func TestShowDiff(t *testing.T) {
	dir := t.TempDir()
	writeCase(t, dir, "flow", "new model \"m\"\n", "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flow.expected"), []byte("Model m created\n"), 0o644))

	var out bytes.Buffer
	require.NoError(t, NewDiffer(testConfig(dir), &out).ShowDiff(context.Background(), "flow"))
	assert.Contains(t, out.String(), "No differences found")
}

func TestRepositoryCases(t *testing.T) {
	dir := filepath.Join("..", "..", "..", "..", "test", "golden")
	if _, err := os.Stat(dir); err != nil {
		t.Skip("golden directory not available")
	}

	var out bytes.Buffer
	err := NewRunner(testConfig(dir), &out).RunAllTests(context.Background())
	assert.NoError(t, err, out.String())
}
