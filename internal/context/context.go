// Package context provides the per-run execution state of the LSL interpreter.
// An ExecutionContext bundles the model registry, the current-model pointer,
// the package loader cache and the result log. It is owned by exactly one
// script run and is not safe for concurrent use.
package context

import (
	"learnscript/internal/packages"
	"learnscript/internal/testutils"
	"learnscript/pkg/lsltypes"
)

// Options configures a new ExecutionContext.
type Options struct {
	// Registry is the read-only package table. Defaults to the embedded registry.
	Registry *packages.Registry

	// Fetcher obtains bundles. Defaults to a StaticFetcher over Registry.
	Fetcher packages.Fetcher

	// DuplicateModels controls same-name model creation.
	DuplicateModels DuplicatePolicy

	// TestMode makes IDs and timestamps deterministic.
	TestMode bool
}

// ExecutionContext is the mutable state of a single script run.
type ExecutionContext struct {
	runID    string
	testMode bool
	models   *ModelRegistry
	packages *packages.Loader
	results  *ResultLog
}

// NewExecutionContext creates a fresh context. Nothing is shared with other
// contexts except the read-only registry and the fetcher.
func NewExecutionContext(opts Options) *ExecutionContext {
	registry := opts.Registry
	if registry == nil {
		registry = packages.DefaultRegistry()
	}
	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = packages.NewStaticFetcher(registry)
	}

	ids := testutils.NewIDSource(opts.TestMode)

	return &ExecutionContext{
		runID:    ids.NewID(),
		testMode: opts.TestMode,
		models:   NewModelRegistry(opts.DuplicateModels, ids),
		packages: packages.NewLoader(registry, fetcher),
		results:  NewResultLog(),
	}
}

// RunID identifies this run in logs.
func (c *ExecutionContext) RunID() string {
	return c.runID
}

// IsTestMode reports whether deterministic generators are in use.
func (c *ExecutionContext) IsTestMode() bool {
	return c.testMode
}

// Models returns the model registry.
func (c *ExecutionContext) Models() *ModelRegistry {
	return c.models
}

// CurrentModel is shorthand for Models().Current().
func (c *ExecutionContext) CurrentModel() *lsltypes.Model {
	return c.models.Current()
}

// Packages returns the package loader and its cache.
func (c *ExecutionContext) Packages() *packages.Loader {
	return c.packages
}

// Results returns the result log.
func (c *ExecutionContext) Results() *ResultLog {
	return c.results
}
