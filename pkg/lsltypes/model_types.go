package lsltypes

import "time"

// Model is a named network description assembled by a script run.
// Layers are append-only and kept in insertion order.
type Model struct {
	// ID is a unique identifier (UUID), deterministic in test mode.
	ID string `json:"id" yaml:"id"`

	// Name is the quoted identifier the model was created under.
	Name string `json:"name" yaml:"name"`

	// Layers holds the layer descriptors in the order they were added.
	Layers []Layer `json:"layers" yaml:"layers"`

	// Config collects settings written by configuration commands
	// (optimizer, training, deployment target, ...).
	Config map[string]any `json:"config" yaml:"config"`

	// CreatedAt is when the model was registered.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// NewModel returns an empty model with the given identity.
func NewModel(id, name string, createdAt time.Time) *Model {
	return &Model{
		ID:        id,
		Name:      name,
		Layers:    []Layer{},
		Config:    make(map[string]any),
		CreatedAt: createdAt,
	}
}

// AddLayer appends a layer descriptor.
func (m *Model) AddLayer(layer Layer) {
	m.Layers = append(m.Layers, layer)
}

// LayerCount returns the number of layers.
func (m *Model) LayerCount() int {
	return len(m.Layers)
}
