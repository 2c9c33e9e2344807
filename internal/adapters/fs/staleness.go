package fs

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/weld/internal/core/domain"
	"go.trai.ch/weld/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.StalenessChecker = (*StalenessChecker)(nil)

// StalenessChecker decides REGENERATE vs REUSE for a candidate artifact.
type StalenessChecker struct{}

// NewStalenessChecker creates a new StalenessChecker.
func NewStalenessChecker() *StalenessChecker {
	return &StalenessChecker{}
}

// NeedsRegeneration reports whether the artifact at artifactPath must be
// regenerated from sourcePath.
//
// The candidate is inspected by a streaming scan of its first two lines and
// its last non-empty line only. A file that matches neither the current
// marker+tag layout nor the legacy tag-only layout is foreign and rejected,
// so a hand-written file sharing the artifact's name is never overwritten.
func (c *StalenessChecker) NeedsRegeneration(sourcePath, artifactPath string) (bool, error) {
	srcInfo, err := os.Stat(sourcePath)
	if err != nil || srcInfo.IsDir() {
		return false, zerr.Wrap(domain.ErrSourceNotFound, sourcePath)
	}

	artInfo, err := os.Stat(artifactPath)
	if err != nil {
		return true, nil
	}

	first, second, last, err := c.scan(artifactPath)
	if err != nil {
		return false, err
	}

	legacy := false
	if first != domain.GeneratedMarker || !strings.HasPrefix(second, domain.TagPrefix) {
		// Artifacts from earlier versions carry the tag on line one.
		if !strings.HasPrefix(first, domain.TagPrefix) {
			return false, zerr.Wrap(domain.ErrForeignArtifact, artifactPath)
		}
		legacy = true
	}

	// A missing trailing tag means the previous generation was interrupted.
	if !strings.HasPrefix(last, domain.TagPrefix) {
		return true, nil
	}

	tagLine := second
	if legacy {
		tagLine = first
	}
	taggedSource := strings.TrimSpace(strings.TrimPrefix(tagLine, domain.TagPrefix))

	absSource, err := filepath.Abs(sourcePath)
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to resolve source path"), "path", sourcePath)
	}
	if taggedSource != absSource {
		// The artifact is a genuine translation, but of a different unit that
		// resolved to the same name.
		return true, nil
	}

	// Equal timestamps regenerate conservatively.
	if srcInfo.ModTime().Before(artInfo.ModTime()) {
		return false, nil
	}
	return true, nil
}

// scan reads the first two lines and the last non-empty line of the artifact
// without loading the whole file.
func (c *StalenessChecker) scan(path string) (first, second, last string, err error) {
	f, err := os.Open(path) //nolint:gosec // Path is computed by the translator
	if err != nil {
		return "", "", "", zerr.With(zerr.Wrap(domain.ErrArtifactUnreadable, err.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Read-only handle

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		text := scanner.Text()
		switch line {
		case 0:
			first = text
		case 1:
			second = text
		}
		if strings.TrimSpace(text) != "" {
			last = text
		}
		line++
	}
	if err := scanner.Err(); err != nil {
		return "", "", "", zerr.With(zerr.Wrap(domain.ErrArtifactUnreadable, err.Error()), "path", path)
	}
	return first, second, last, nil
}
