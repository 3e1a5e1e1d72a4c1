package testutils

import (
	"context"
	"sync"

	"learnscript/pkg/lsltypes"
)

// CountingFetcher is an in-memory package fetcher that records how often each
// package was fetched. Failures can be injected per package name.
type CountingFetcher struct {
	mu       sync.Mutex
	calls    map[string]int
	failures map[string]error
}

// NewCountingFetcher creates a fetcher that succeeds for every name.
func NewCountingFetcher() *CountingFetcher {
	return &CountingFetcher{
		calls:    make(map[string]int),
		failures: make(map[string]error),
	}
}

// FailWith makes subsequent fetches of name return err.
func (f *CountingFetcher) FailWith(name string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[name] = err
}

// Fetch records the call and returns a handle echoing the identifier.
func (f *CountingFetcher) Fetch(ctx context.Context, name, identifier string) (*lsltypes.PackageHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls[name]++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := f.failures[name]; err != nil {
		return nil, err
	}

	return &lsltypes.PackageHandle{
		Name:       name,
		Identifier: identifier,
		Version:    "test",
	}, nil
}

// Calls returns how many times name was fetched.
func (f *CountingFetcher) Calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

// TotalCalls returns the number of fetches across all names.
func (f *CountingFetcher) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}
