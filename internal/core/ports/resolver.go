// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/weld/internal/core/domain"

// UnitResolver locates source units.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type UnitResolver interface {
	// Resolve locates the named source unit. A name containing a path
	// separator is treated as an explicit path; otherwise the search path is
	// scanned in order and the first entry containing the file wins.
	Resolve(name string, searchPath []string) (domain.ResolvedUnit, error)
}
