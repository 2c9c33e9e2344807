package domain

import "time"

// GeneratedMarker is the fixed first line of every artifact. It follows the
// convention recognized by go tooling for generated files.
const GeneratedMarker = "// Code generated by weld. DO NOT EDIT."

// TagPrefix starts the translation tag line. The tag appears on line two and
// again as the last line of a complete artifact; the duplicated tag is the
// completeness fence used to detect interrupted generation.
const TagPrefix = "// weld:translation"

// TagLine builds the translation tag line for the given absolute source path.
func TagLine(absSourcePath string) string {
	return TagPrefix + " " + absSourcePath
}

// TranslationRecord is one entry of the translation state store.
type TranslationRecord struct {
	Identifier   string    `json:"identifier,omitzero"`
	SourcePath   string    `json:"source_path,omitzero"`
	ArtifactPath string    `json:"artifact_path,omitzero"`
	SourceDigest string    `json:"source_digest,omitzero"`
	TranslatedAt time.Time `json:"translated_at,omitzero"`
}

// UnitState classifies a recorded translation relative to the current
// filesystem contents.
type UnitState string

const (
	// UnitFresh means the recorded source digest still matches the source.
	UnitFresh UnitState = "fresh"
	// UnitStale means the source changed since the recorded translation.
	UnitStale UnitState = "stale"
	// UnitMissing means the source or the artifact no longer exists.
	UnitMissing UnitState = "missing"
)

// UnitStatus pairs a translation record with its current state.
type UnitStatus struct {
	Record TranslationRecord
	State  UnitState
}
