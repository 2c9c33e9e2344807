package domain

import "go.trai.ch/zerr"

// The three error kinds form the boundary contract: every failure raised by
// the translation pipeline matches exactly one of them via errors.Is.
var (
	// ErrTranslation covers every failure while checking, generating or
	// loading an artifact.
	ErrTranslation = zerr.New("translation failed")

	// ErrResolution is returned when a source unit or directory cannot be located.
	ErrResolution = zerr.New("resolution failed")

	// ErrConfiguration is returned for invalid cache-directory or
	// shared-context arguments.
	ErrConfiguration = zerr.New("invalid configuration")
)

var (
	// ErrSourceNotFound is returned when the source unit does not exist at check time.
	ErrSourceNotFound = zerr.Wrap(ErrTranslation, "source unit does not exist")

	// ErrArtifactUnreadable is returned when a candidate artifact cannot be opened.
	ErrArtifactUnreadable = zerr.Wrap(ErrTranslation, "cannot read candidate artifact")

	// ErrForeignArtifact is returned when a file at the artifact path was not
	// generated by weld. It is never overwritten without force.
	ErrForeignArtifact = zerr.Wrap(ErrTranslation, "file exists but was not generated by weld")

	// ErrGenerationFailed is returned on any I/O failure while writing an artifact.
	ErrGenerationFailed = zerr.Wrap(ErrTranslation, "artifact generation failed")

	// ErrLoadFailed is returned when a generated artifact cannot be evaluated
	// by the interpreter.
	ErrLoadFailed = zerr.Wrap(ErrTranslation, "failed to load artifact")

	// ErrIncludeCycle is returned when include expansion revisits a unit that
	// is still being merged.
	ErrIncludeCycle = zerr.Wrap(ErrTranslation, "include cycle detected")

	// ErrNameCollision is returned when two distinct source units map to the
	// same artifact identifier within one process run.
	ErrNameCollision = zerr.Wrap(ErrTranslation, "artifact identifier collision")

	// ErrUnitNotFound is returned when a source unit cannot be located on the search path.
	ErrUnitNotFound = zerr.Wrap(ErrResolution, "source unit not found")

	// ErrUnitDirNotFound is returned when the directory of an explicit unit path does not exist.
	ErrUnitDirNotFound = zerr.Wrap(ErrResolution, "source unit directory does not exist")

	// ErrEmptySearchPath is returned when an operation needs a search path and none was configured.
	ErrEmptySearchPath = zerr.Wrap(ErrResolution, "search path is empty")

	// ErrEntryNotFound is returned when the requested entry function is not
	// present in the merged scope.
	ErrEntryNotFound = zerr.Wrap(ErrResolution, "entry function not found in merged scope")

	// ErrCacheDirNotDir is returned when the cache directory override does not name a directory.
	ErrCacheDirNotDir = zerr.Wrap(ErrConfiguration, "cache directory is not a directory")

	// ErrCacheDirNotOnSearchPath is returned when the cache directory override
	// is not an entry of the search path.
	ErrCacheDirNotOnSearchPath = zerr.Wrap(ErrConfiguration, "cache directory is not on the search path")

	// ErrNilContext is returned when the shared context is replaced with nil.
	ErrNilContext = zerr.Wrap(ErrConfiguration, "shared context cannot be nil")
)
