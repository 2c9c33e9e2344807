// Package session implements the translate-and-merge engine. A session owns
// the interpreter-backed loader, expands include references recursively and
// merges loaded exports into caller scopes, loading each unit at most once.
package session

import (
	"context"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/weld/internal/core/domain"
	"go.trai.ch/weld/internal/core/ports"
	"go.trai.ch/weld/internal/engine/translator"
	"go.trai.ch/zerr"
)

// Session drives recursive translation and merging for one process.
type Session struct {
	translator *translator.Translator
	loader     ports.ArtifactLoader
	logger     ports.Logger
	tracer     ports.Tracer

	mu     sync.Mutex
	shared domain.Context

	// loaded holds the manifest of every evaluated unit, keyed by artifact
	// identifier. A unit present here is merged but never evaluated again.
	loaded map[string]*domain.ExportManifest

	// visiting and stack track the units currently being merged, for cycle
	// detection and for reporting the cycle path.
	visiting map[string]struct{}
	stack    []string

	// target is the scope an eval-time include call merges into. It is set
	// for the duration of a TranslateAndMerge call.
	target *domain.Scope
}

// New creates a Session and installs its handlers on the loader.
func New(
	tr *translator.Translator,
	loader ports.ArtifactLoader,
	logger ports.Logger,
	tracer ports.Tracer,
) *Session {
	s := &Session{
		translator: tr,
		loader:     loader,
		logger:     logger,
		tracer:     tracer,
		shared:     domain.NewContext(),
		loaded:     make(map[string]*domain.ExportManifest),
		visiting:   make(map[string]struct{}),
	}
	loader.OnInclude(s.handleInclude)
	loader.OnContext(s.SharedContext)
	return s
}

// Translator returns the session's translation engine.
func (s *Session) Translator() *translator.Translator {
	return s.translator
}

// SharedContext returns the process-wide shared context. All units translated
// with sharing enabled observe the same instance by reference.
func (s *Session) SharedContext() domain.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shared
}

// SetSharedContext replaces the shared context. Units already loaded keep
// their reference to the old one; only later loads observe the replacement.
func (s *Session) SetSharedContext(c domain.Context) error {
	if c == nil {
		return domain.ErrNilContext
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shared = c
	return nil
}

// TranslateAndMerge translates the named unit, expands its includes
// depth-first, evaluates each unit at most once, and merges the resulting
// exports into scope. Includes are merged before the unit that references
// them, so their names are already bound when the unit is evaluated.
func (s *Session) TranslateAndMerge(ctx context.Context, name string, scope *domain.Scope, opts domain.MergeOptions) error {
	s.mu.Lock()
	prev := s.target
	s.target = scope
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.target = prev
		s.mu.Unlock()
	}()

	return s.merge(ctx, name, scope, opts)
}

func (s *Session) merge(ctx context.Context, name string, scope *domain.Scope, opts domain.MergeOptions) error {
	tr, err := s.translator.Translate(name, opts.TranslateOptions)
	if err != nil {
		return err
	}

	if _, ok := s.visiting[tr.Identifier]; ok {
		cycle := append(slices.Clone(s.stack), tr.Identifier)
		return zerr.Wrap(domain.ErrIncludeCycle, strings.Join(cycle, " -> "))
	}

	// Load-once: a unit evaluated earlier in this session is merged from its
	// recorded manifest without touching the interpreter again.
	if manifest, ok := s.loaded[tr.Identifier]; ok {
		scope.Merge(manifest, opts.PreserveExisting)
		return nil
	}

	s.visiting[tr.Identifier] = struct{}{}
	s.stack = append(s.stack, tr.Identifier)
	defer func() {
		delete(s.visiting, tr.Identifier)
		s.stack = s.stack[:len(s.stack)-1]
	}()

	includes, err := s.loader.Includes(tr.ArtifactPath)
	if err != nil {
		return err
	}
	for _, inc := range includes {
		if err := s.merge(ctx, inc, scope, domain.DefaultMergeOptions()); err != nil {
			return err
		}
	}
	if len(includes) > 0 {
		s.tracer.EmitIncludes(ctx, includes)
	}

	manifest, err := s.loader.Load(tr.Identifier, tr.ArtifactPath)
	if err != nil {
		return err
	}

	s.loaded[tr.Identifier] = manifest
	scope.Merge(manifest, opts.PreserveExisting)
	return nil
}

// handleInclude serves include calls raised by artifact code during
// evaluation. Includes are normally resolved before evaluation, so this
// usually hits the load-once path; it exists for artifacts generated by
// earlier versions whose includes were not pre-scanned.
func (s *Session) handleInclude(name string) error {
	s.mu.Lock()
	scope := s.target
	s.mu.Unlock()

	if scope == nil {
		scope = domain.NewScope()
	}
	return s.merge(context.Background(), name, scope, domain.DefaultMergeOptions())
}
