// Package fs implements filesystem-backed adapters: unit resolution,
// staleness checking and content hashing.
package fs

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/weld/internal/core/domain"
	"go.trai.ch/weld/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.UnitResolver = (*Resolver)(nil)

// Resolver implements ports.UnitResolver against the local filesystem.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve locates the named source unit.
func (r *Resolver) Resolve(name string, searchPath []string) (domain.ResolvedUnit, error) {
	if filepath.Base(name) != name {
		return r.resolveExplicit(name, searchPath)
	}
	return r.resolveSearchPath(name, searchPath)
}

// resolveExplicit honors a name that already carries a directory. The unit is
// read from exactly that path; the artifact goes to the first search-path
// entry by default.
func (r *Resolver) resolveExplicit(name string, searchPath []string) (domain.ResolvedUnit, error) {
	dir, err := filepath.Abs(filepath.Dir(name))
	if err != nil {
		return domain.ResolvedUnit{}, zerr.With(zerr.Wrap(err, "failed to resolve unit directory"), "name", name)
	}

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return domain.ResolvedUnit{}, zerr.With(zerr.Wrap(domain.ErrUnitDirNotFound, name), "dir", dir)
	}
	if info, err := os.Stat(name); err != nil || info.IsDir() {
		return domain.ResolvedUnit{}, zerr.Wrap(domain.ErrUnitNotFound, name)
	}

	if len(searchPath) == 0 {
		return domain.ResolvedUnit{}, zerr.Wrap(domain.ErrEmptySearchPath, name)
	}

	return domain.ResolvedUnit{
		SourcePath: filepath.Join(dir, filepath.Base(name)),
		OutputDir:  searchPath[0],
	}, nil
}

// resolveSearchPath scans the search path in order and picks the first entry
// containing a same-named file. The artifact is co-located by default.
func (r *Resolver) resolveSearchPath(name string, searchPath []string) (domain.ResolvedUnit, error) {
	if len(searchPath) == 0 {
		return domain.ResolvedUnit{}, zerr.Wrap(domain.ErrEmptySearchPath, name)
	}

	for _, entry := range searchPath {
		candidate := filepath.Join(entry, name)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			return domain.ResolvedUnit{}, zerr.With(zerr.Wrap(err, "failed to resolve unit path"), "path", candidate)
		}
		return domain.ResolvedUnit{SourcePath: abs, OutputDir: entry}, nil
	}

	return domain.ResolvedUnit{}, zerr.With(
		zerr.Wrap(domain.ErrUnitNotFound, name),
		"search_path", strings.Join(searchPath, string(filepath.ListSeparator)),
	)
}
