// Package domain contains the core domain models and business logic for
// translating source units into cached, loadable artifacts.
package domain

import "strings"

// ArtifactExt is the file extension of generated artifacts.
const ArtifactExt = ".go"

// ArtifactName derives the artifact identifier from a source unit's base name.
// Dots are replaced with underscores so the identifier is usable as a module
// path segment. The identifier is a pure function of the base name; the
// translator detects in-process collisions between distinct sources.
func ArtifactName(base string) string {
	return strings.ReplaceAll(base, ".", "_")
}

// ArtifactFileName returns the artifact file name for a source unit's base name.
func ArtifactFileName(base string) string {
	return ArtifactName(base) + ArtifactExt
}

// ResolvedUnit is the result of locating a source unit.
type ResolvedUnit struct {
	// SourcePath is the absolute path of the source unit.
	SourcePath string
	// OutputDir is the default directory for the generated artifact: the
	// search-path entry the unit was found under, or the first search-path
	// entry when the unit was named by an explicit path.
	OutputDir string
}

// TranslateOptions control artifact generation. They are silently ignored on
// a cache hit, except Force which always regenerates.
type TranslateOptions struct {
	// ShareContext binds the artifact's context to the process-wide shared
	// mapping instead of a fresh private one.
	ShareContext bool
	// CallFunc is the literal bound to the artifact's callfunc variable.
	CallFunc string
	// CallArgs is the literal list bound to the artifact's callargs variable.
	CallArgs []string
	// Force skips all staleness and foreign-file checks and overwrites
	// whatever is at the artifact path.
	Force bool
}

// DefaultTranslateOptions returns the options used when none are specified,
// matching the defaults of nested include expansion.
func DefaultTranslateOptions() TranslateOptions {
	return TranslateOptions{
		ShareContext: true,
		CallFunc:     "import",
	}
}

// MergeOptions control a translate-and-merge operation.
type MergeOptions struct {
	TranslateOptions

	// PreserveExisting keeps the caller's binding when a merged name collides
	// with one already in the scope. The default overwrites.
	PreserveExisting bool
}

// DefaultMergeOptions returns the merge options used for nested includes.
func DefaultMergeOptions() MergeOptions {
	return MergeOptions{TranslateOptions: DefaultTranslateOptions()}
}

// GenerationRequest describes one artifact generation.
type GenerationRequest struct {
	SourcePath   string
	ArtifactPath string
	ShareContext bool
	CallFunc     string
	CallArgs     []string
}

// Translation is the result of translating a source unit.
type Translation struct {
	// Identifier is the importable artifact identifier (not a path).
	Identifier string
	// SourcePath is the absolute path of the translated source unit.
	SourcePath string
	// ArtifactPath is the path of the generated (or reused) artifact.
	ArtifactPath string
	// Regenerated reports whether this call wrote the artifact, as opposed to
	// reusing a cached one untouched.
	Regenerated bool
}

// Config carries the externally owned translation settings.
type Config struct {
	// SearchPath is the ordered sequence of directories scanned for source units.
	SearchPath []string
	// CacheDir, when non-empty, overrides the default artifact output
	// directory. It must exist and be an entry of SearchPath.
	CacheDir string
}
