package domain

import (
	"reflect"
	"strings"
)

// PrivatePrefix marks names that are never merged into a caller scope.
const PrivatePrefix = "_"

// infraNames is the fixed exclusion set of internal bookkeeping bindings.
// These exist in every artifact and must never leak into inlined code.
var infraNames = map[string]struct{}{
	"mycontext": {},
	"callfunc":  {},
	"callargs":  {},
	"weld":      {},
}

// IsInfraName reports whether name belongs to the infrastructure exclusion set.
func IsInfraName(name string) bool {
	_, ok := infraNames[name]
	return ok
}

// Scope is an explicit caller scope: an ordered mutable mapping of top-level
// names to values. The merge operation mutates it directly, emulating textual
// inclusion of the merged unit.
type Scope struct {
	names  []string
	values map[string]reflect.Value
}

// NewScope returns an empty scope.
func NewScope() *Scope {
	return &Scope{values: make(map[string]reflect.Value)}
}

// Bind sets name to value, inserting or overwriting.
func (s *Scope) Bind(name string, value reflect.Value) {
	if _, ok := s.values[name]; !ok {
		s.names = append(s.names, name)
	}
	s.values[name] = value
}

// Lookup returns the value bound to name.
func (s *Scope) Lookup(name string) (reflect.Value, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Names returns the bound names in insertion order.
func (s *Scope) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of bindings.
func (s *Scope) Len() int {
	return len(s.names)
}

// Merge copies the manifest's bindings into the scope.
// Names starting with the private prefix and names in the infrastructure
// exclusion set are skipped. A name already bound in the scope is overwritten
// unless preserveExisting is set, in which case the scope's binding survives.
func (s *Scope) Merge(m *ExportManifest, preserveExisting bool) {
	for _, exp := range m.Exports() {
		if strings.HasPrefix(exp.Name, PrivatePrefix) {
			continue
		}
		if IsInfraName(exp.Name) {
			continue
		}
		if _, exists := s.values[exp.Name]; exists && preserveExisting {
			continue
		}
		s.Bind(exp.Name, exp.Value)
	}
}
