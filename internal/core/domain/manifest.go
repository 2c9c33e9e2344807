package domain

import "reflect"

// Export is one exported top-level binding of a loaded artifact.
type Export struct {
	Name  string
	Value reflect.Value
}

// ExportManifest is the ordered set of top-level bindings produced by loading
// an artifact. Order follows declaration order in the artifact. The manifest
// replaces reflective caller-scope discovery: merging it into a Scope is an
// explicit operation requested by the caller.
type ExportManifest struct {
	exports []Export
	index   map[string]int
}

// NewExportManifest returns an empty manifest.
func NewExportManifest() *ExportManifest {
	return &ExportManifest{index: make(map[string]int)}
}

// Add appends a binding, replacing an earlier one with the same name in place.
func (m *ExportManifest) Add(name string, value reflect.Value) {
	if i, ok := m.index[name]; ok {
		m.exports[i].Value = value
		return
	}
	m.index[name] = len(m.exports)
	m.exports = append(m.exports, Export{Name: name, Value: value})
}

// Get returns the value bound to name.
func (m *ExportManifest) Get(name string) (reflect.Value, bool) {
	i, ok := m.index[name]
	if !ok {
		return reflect.Value{}, false
	}
	return m.exports[i].Value, true
}

// Exports returns the bindings in declaration order.
func (m *ExportManifest) Exports() []Export {
	out := make([]Export, len(m.exports))
	copy(out, m.exports)
	return out
}

// Len returns the number of bindings.
func (m *ExportManifest) Len() int {
	return len(m.exports)
}
