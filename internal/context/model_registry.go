package context

import (
	"fmt"
	"sort"

	"learnscript/internal/testutils"
	"learnscript/pkg/lsltypes"
)

// DuplicatePolicy decides what happens when a model is created under a name
// that is already registered.
type DuplicatePolicy string

const (
	// DuplicateOverwrite silently replaces the existing model.
	DuplicateOverwrite DuplicatePolicy = "overwrite"
	// DuplicateFail rejects the creation with ErrDuplicateModel.
	DuplicateFail DuplicatePolicy = "fail"
)

// ParseDuplicatePolicy accepts "overwrite", "fail" or "" (overwrite).
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch DuplicatePolicy(s) {
	case "", DuplicateOverwrite:
		return DuplicateOverwrite, nil
	case DuplicateFail:
		return DuplicateFail, nil
	}
	return "", fmt.Errorf("invalid duplicate model policy %q (expected overwrite or fail)", s)
}

// ModelRegistry owns the models of one run and the current-model pointer.
type ModelRegistry struct {
	models  map[string]*lsltypes.Model
	current *lsltypes.Model
	policy  DuplicatePolicy
	ids     testutils.IDSource
}

// NewModelRegistry creates an empty registry.
func NewModelRegistry(policy DuplicatePolicy, ids testutils.IDSource) *ModelRegistry {
	if policy == "" {
		policy = DuplicateOverwrite
	}
	return &ModelRegistry{
		models: make(map[string]*lsltypes.Model),
		policy: policy,
		ids:    ids,
	}
}

// Create registers an empty model under name and makes it current.
// replaced reports whether an existing model of the same name was dropped.
func (r *ModelRegistry) Create(name string) (model *lsltypes.Model, replaced bool, err error) {
	if name == "" {
		return nil, false, fmt.Errorf("%w: model name cannot be empty", lsltypes.ErrSyntax)
	}

	_, exists := r.models[name]
	if exists && r.policy == DuplicateFail {
		return nil, false, fmt.Errorf("%w: model %q already exists", lsltypes.ErrDuplicateModel, name)
	}

	model = lsltypes.NewModel(r.ids.NewID(), name, r.ids.Now())
	r.models[name] = model
	r.current = model

	return model, exists, nil
}

// Get returns the model registered under name.
func (r *ModelRegistry) Get(name string) (*lsltypes.Model, bool) {
	m, ok := r.models[name]
	return m, ok
}

// Current returns the current model, or nil before any model exists.
func (r *ModelRegistry) Current() *lsltypes.Model {
	return r.current
}

// Select makes the named model current.
func (r *ModelRegistry) Select(name string) (*lsltypes.Model, error) {
	m, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	r.current = m
	return m, nil
}

// Resolve returns the named model, or the current model when name is empty.
func (r *ModelRegistry) Resolve(name string) (*lsltypes.Model, error) {
	if name == "" {
		if r.current == nil {
			return nil, fmt.Errorf("%w: no current model (create one with new model \"<name>\")", lsltypes.ErrMissingModelContext)
		}
		return r.current, nil
	}

	m, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("%w: model %q not found", lsltypes.ErrMissingModelContext, name)
	}
	return m, nil
}

// Names returns registered model names in sorted order.
func (r *ModelRegistry) Names() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered models.
func (r *ModelRegistry) Len() int {
	return len(r.models)
}
