package ports

import "go.trai.ch/weld/internal/core/domain"

// Generator emits artifacts from source units.
//
//go:generate go run go.uber.org/mock/mockgen -source=generator.go -destination=mocks/mock_generator.go -package=mocks
type Generator interface {
	// Generate writes the artifact described by req. On failure the partially
	// written artifact is removed best-effort so a later staleness check
	// cannot mistake it for a truncated but genuine generation.
	Generate(req domain.GenerationRequest) error
}
