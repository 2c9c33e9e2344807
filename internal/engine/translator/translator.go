// Package translator implements the incremental translation engine. It turns
// a source unit name into a cached artifact, regenerating only when the
// artifact is stale, missing or forced.
package translator

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"go.trai.ch/weld/internal/core/domain"
	"go.trai.ch/weld/internal/core/ports"
	"go.trai.ch/zerr"
)

// Translator resolves, checks and generates artifacts for source units.
type Translator struct {
	resolver  ports.UnitResolver
	checker   ports.StalenessChecker
	generator ports.Generator
	hasher    ports.Hasher
	store     ports.TranslationStore
	logger    ports.Logger

	mu         sync.RWMutex
	searchPath []string
	cacheDir   string

	// identifiers maps each artifact identifier handed out in this process
	// to the source path it was derived from, so two distinct sources can
	// never silently share one artifact.
	identifiers map[string]string
}

// New creates a new Translator.
func New(
	resolver ports.UnitResolver,
	checker ports.StalenessChecker,
	generator ports.Generator,
	hasher ports.Hasher,
	store ports.TranslationStore,
	logger ports.Logger,
) *Translator {
	return &Translator{
		resolver:    resolver,
		checker:     checker,
		generator:   generator,
		hasher:      hasher,
		store:       store,
		logger:      logger,
		searchPath:  []string{"."},
		identifiers: make(map[string]string),
	}
}

// SetSearchPath replaces the ordered list of directories scanned for source
// units. An empty list resets to the current directory.
func (t *Translator) SetSearchPath(searchPath []string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(searchPath) == 0 {
		t.searchPath = []string{"."}
		return
	}
	t.searchPath = slices.Clone(searchPath)
}

// SearchPath returns a copy of the current search path.
func (t *Translator) SearchPath() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.searchPath)
}

// SetCacheDir sets the directory that overrides per-unit artifact output
// locations. The directory must exist and be an entry of the search path.
// An empty string clears the override.
func (t *Translator) SetCacheDir(dir string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if dir == "" {
		t.cacheDir = ""
		return nil
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return zerr.Wrap(domain.ErrCacheDirNotDir, dir)
	}
	if !slices.Contains(t.searchPath, dir) {
		return zerr.Wrap(domain.ErrCacheDirNotOnSearchPath, dir)
	}

	t.cacheDir = dir
	return nil
}

// CacheDir returns the current cache directory override, or "" when unset.
func (t *Translator) CacheDir() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cacheDir
}

// Configure applies an externally loaded configuration. The search path is
// applied before the cache directory so the containment check sees the new
// entries.
func (t *Translator) Configure(cfg domain.Config) error {
	t.SetSearchPath(cfg.SearchPath)
	if err := t.SetCacheDir(cfg.CacheDir); err != nil {
		return err
	}
	return nil
}

// Translate locates the named source unit and ensures a current artifact
// exists for it, generating one only when needed. The returned Translation
// reports whether this call wrote the artifact.
func (t *Translator) Translate(name string, opts domain.TranslateOptions) (domain.Translation, error) {
	t.mu.RLock()
	searchPath := slices.Clone(t.searchPath)
	cacheDir := t.cacheDir
	t.mu.RUnlock()

	unit, err := t.resolver.Resolve(name, searchPath)
	if err != nil {
		return domain.Translation{}, err
	}

	base := filepath.Base(unit.SourcePath)
	identifier := domain.ArtifactName(base)

	if err := t.register(identifier, unit.SourcePath); err != nil {
		return domain.Translation{}, err
	}

	outputDir := unit.OutputDir
	if cacheDir != "" {
		outputDir = cacheDir
	}
	artifactPath := filepath.Join(outputDir, domain.ArtifactFileName(base))

	regenerate := opts.Force
	if !regenerate {
		regenerate, err = t.checker.NeedsRegeneration(unit.SourcePath, artifactPath)
		if err != nil {
			return domain.Translation{}, err
		}
	}

	if regenerate {
		req := domain.GenerationRequest{
			SourcePath:   unit.SourcePath,
			ArtifactPath: artifactPath,
			ShareContext: opts.ShareContext,
			CallFunc:     opts.CallFunc,
			CallArgs:     opts.CallArgs,
		}
		if err := t.generator.Generate(req); err != nil {
			return domain.Translation{}, err
		}
	}

	// A cache hit with a matching record performs no state write; re-running
	// a fully cached translation leaves the filesystem untouched.
	if regenerate || !t.recorded(identifier, unit.SourcePath, artifactPath) {
		t.record(identifier, unit.SourcePath, artifactPath)
	}

	return domain.Translation{
		Identifier:   identifier,
		SourcePath:   unit.SourcePath,
		ArtifactPath: artifactPath,
		Regenerated:  regenerate,
	}, nil
}

// register claims the identifier for the given source. Claiming an identifier
// already held by a different source fails.
func (t *Translator) register(identifier, sourcePath string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if existing, ok := t.identifiers[identifier]; ok && existing != sourcePath {
		return zerr.With(
			zerr.With(zerr.Wrap(domain.ErrNameCollision, identifier), "source", sourcePath),
			"claimed_by", existing,
		)
	}
	t.identifiers[identifier] = sourcePath
	return nil
}

// recorded reports whether the store already holds a record matching the
// translation's paths.
func (t *Translator) recorded(identifier, sourcePath, artifactPath string) bool {
	rec, err := t.store.Get(identifier)
	if err != nil || rec == nil {
		return false
	}
	return rec.SourcePath == sourcePath && rec.ArtifactPath == artifactPath
}

// record persists the translation in the state store. Bookkeeping failures do
// not fail the translation itself.
func (t *Translator) record(identifier, sourcePath, artifactPath string) {
	digest, err := t.hasher.ComputeFileHash(sourcePath)
	if err != nil {
		t.logger.Warn(fmt.Sprintf("could not digest %s: %v", sourcePath, err))
		return
	}

	rec := domain.TranslationRecord{
		Identifier:   identifier,
		SourcePath:   sourcePath,
		ArtifactPath: artifactPath,
		SourceDigest: digest,
		TranslatedAt: time.Now().UTC(),
	}
	if err := t.store.Put(rec); err != nil {
		t.logger.Warn(fmt.Sprintf("could not record translation of %s: %v", identifier, err))
	}
}
