package packages

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"learnscript/internal/version"
	"learnscript/pkg/lsltypes"
)

// DefaultFetchTimeout bounds a single HTTP package fetch.
const DefaultFetchTimeout = 10 * time.Second

// StaticFetcher serves bundles from registry metadata without any I/O.
type StaticFetcher struct {
	registry *Registry
}

// NewStaticFetcher creates a fetcher backed by registry.
func NewStaticFetcher(registry *Registry) *StaticFetcher {
	return &StaticFetcher{registry: registry}
}

// Fetch returns a handle describing the registered entry.
func (f *StaticFetcher) Fetch(ctx context.Context, name, identifier string) (*lsltypes.PackageHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entry, ok := f.registry.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", lsltypes.ErrPackageNotFound, name)
	}
	return HandleFor(name, entry), nil
}

// HandleFor builds the handle advertised for a registry entry.
func HandleFor(name string, entry Entry) *lsltypes.PackageHandle {
	caps := make([]string, len(entry.Capabilities))
	copy(caps, entry.Capabilities)
	return &lsltypes.PackageHandle{
		Name:         name,
		Identifier:   entry.Identifier,
		Version:      entry.Version,
		Capabilities: caps,
	}
}

// LibResponse is the body of GET /api/libs/{name}.
type LibResponse struct {
	Lib *lsltypes.PackageHandle `json:"lib"`
}

// UserAgent identifies the interpreter to library endpoints.
func UserAgent() string {
	return version.ProductName + "/" + version.GetBaseVersion()
}

// HTTPFetcher fetches bundles from a library endpoint serving
// GET <base>/api/libs/<name>.
type HTTPFetcher struct {
	baseURL string
	client  *http.Client
}

// NewHTTPFetcher creates a fetcher for baseURL. A nil client gets a default
// one with DefaultFetchTimeout.
func NewHTTPFetcher(baseURL string, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}
	return &HTTPFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Fetch requests the bundle and decodes the `lib` field of the response.
func (f *HTTPFetcher) Fetch(ctx context.Context, name, identifier string) (*lsltypes.PackageHandle, error) {
	endpoint := f.baseURL + "/api/libs/" + url.PathEscape(name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent())

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", lsltypes.ErrPackageNotFound, name)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload LibResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode package %s: %w", name, err)
	}
	if payload.Lib == nil {
		return nil, fmt.Errorf("package %s: response has no lib", name)
	}

	if payload.Lib.Name == "" {
		payload.Lib.Name = name
	}
	if payload.Lib.Identifier == "" {
		payload.Lib.Identifier = identifier
	}
	return payload.Lib, nil
}
