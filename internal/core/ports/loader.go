package ports

import "go.trai.ch/weld/internal/core/domain"

// ArtifactLoader evaluates generated artifacts in the host runtime and
// exposes their top-level bindings as export manifests. All artifacts loaded
// through one ArtifactLoader share a single interpreter scope, so a unit can
// reference names defined by units loaded before it.
//
//go:generate go run go.uber.org/mock/mockgen -source=loader.go -destination=mocks/mock_loader.go -package=mocks
type ArtifactLoader interface {
	// Includes returns the unit names referenced by the artifact's generated
	// include calls, in order of appearance.
	Includes(artifactPath string) ([]string, error)

	// Load evaluates the artifact and returns its export manifest. The caller
	// is responsible for load-once bookkeeping per identifier.
	Load(identifier, artifactPath string) (*domain.ExportManifest, error)

	// OnInclude installs the handler invoked when artifact code calls the
	// runtime include function during evaluation.
	OnInclude(handler func(name string) error)

	// OnContext installs the provider of the shared context handed to
	// artifacts that request sharing.
	OnContext(provider func() domain.Context)
}
