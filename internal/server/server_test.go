package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnscript/internal/orchestration"
	"learnscript/internal/packages"
	"learnscript/pkg/lsltypes"
)

func newTestServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	if cfg.MaxScriptBytes == 0 {
		cfg.MaxScriptBytes = 1 << 20
	}
	if cfg.RunTimeout == 0 {
		cfg.RunTimeout = 5 * time.Second
	}
	runner := orchestration.NewRunner(orchestration.Options{TestMode: true})
	ts := httptest.NewServer(New(cfg, runner, nil).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postScript(t *testing.T, url, script string) (*http.Response, ExecuteResponse) {
	t.Helper()
	body, err := json.Marshal(ExecuteRequest{Script: script})
	require.NoError(t, err)

	resp, err := http.Post(url+"/execute", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out ExecuteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, int64(1<<20), cfg.MaxScriptBytes)
	assert.Equal(t, 30*time.Second, cfg.RunTimeout)

	t.Setenv("LSL_HTTP_ADDR", ":9090")
	t.Setenv("LSL_RUN_TIMEOUT", "2s")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 2*time.Second, cfg.RunTimeout)

	t.Setenv("LSL_MAX_SCRIPT_BYTES", "0")
	_, err = LoadConfig()
	assert.Error(t, err)
}

func TestExecute(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, out := postScript(t, ts.URL, "package.add tensor\nnew model \"m\"\nadd dense output:2\nlearn")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"Package tensor loaded", "Model m created", "Layer added: dense", "Training started: m"}, out.Result)
	require.Len(t, out.Entries, 4)
	assert.Equal(t, lsltypes.CommandTrain, out.Entries[3].Command)
	assert.Empty(t, out.Error)
}

func TestExecute_RequestsAreIsolated(t *testing.T) {
	ts := newTestServer(t, Config{})

	postScript(t, ts.URL, "new model \"m\"")
	_, out := postScript(t, ts.URL, "add dense output:2")
	require.Len(t, out.Entries, 1)
	assert.Equal(t, lsltypes.StatusError, out.Entries[0].Status)
}

func TestExecute_BadBody(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, err := http.Post(ts.URL+"/execute", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExecute_TooLarge(t *testing.T) {
	ts := newTestServer(t, Config{MaxScriptBytes: 32})

	body, err := json.Marshal(ExecuteRequest{Script: strings.Repeat("# comment\n", 20)})
	require.NoError(t, err)
	resp, err := http.Post(ts.URL+"/execute", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestExecute_WrongMethod(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, err := http.Get(ts.URL + "/execute")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestLibEndpoint(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, err := http.Get(ts.URL + "/api/libs/tensor")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var lib packages.LibResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&lib))
	require.NotNil(t, lib.Lib)
	assert.Equal(t, "tensor", lib.Lib.Name)
	assert.NotEmpty(t, lib.Lib.Identifier)

	missing, err := http.Get(ts.URL + "/api/libs/warp")
	require.NoError(t, err)
	defer missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

// A runner configured with an HTTPFetcher resolves packages through another
// server's /api/libs route.
func TestLibEndpoint_ServesHTTPFetcher(t *testing.T) {
	ts := newTestServer(t, Config{})

	fetcher := packages.NewHTTPFetcher(ts.URL, ts.Client())
	runner := orchestration.NewRunner(orchestration.Options{Fetcher: fetcher, TestMode: true})

	entries, err := runner.Run(context.Background(), "package.add plot\npackage.add warp")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Package plot loaded", entries[0].Message)
	assert.Equal(t, lsltypes.StatusError, entries[1].Status)
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	srv := New(Config{Addr: "127.0.0.1:0", MaxScriptBytes: 1024, RunTimeout: time.Second},
		orchestration.NewRunner(orchestration.Options{TestMode: true}), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
