// Package app implements the application layer for weld.
package app

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"reflect"
	"runtime"
	"strings"

	"go.trai.ch/weld/internal/core/domain"
	"go.trai.ch/weld/internal/core/ports"
	"go.trai.ch/weld/internal/engine/session"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App exposes the translation pipeline to the CLI layer.
type App struct {
	session  *session.Session
	store    ports.TranslationStore
	hasher   ports.Hasher
	logger   ports.Logger
	tracer   ports.Tracer
	progress ports.Telemetry
}

// New creates a new App instance.
func New(
	sess *session.Session,
	store ports.TranslationStore,
	hasher ports.Hasher,
	logger ports.Logger,
	tracer ports.Tracer,
	progress ports.Telemetry,
) *App {
	return &App{
		session:  sess,
		store:    store,
		hasher:   hasher,
		logger:   logger,
		tracer:   tracer,
		progress: progress,
	}
}

// Session returns the merge engine, mainly for tests.
func (a *App) Session() *session.Session {
	return a.session
}

// Configure applies an externally loaded configuration to the pipeline.
func (a *App) Configure(cfg domain.Config) error {
	return a.session.Translator().Configure(cfg)
}

// Translate ensures a current artifact exists for the named unit.
func (a *App) Translate(ctx context.Context, name string, opts domain.TranslateOptions) (domain.Translation, error) {
	ctx, span := a.tracer.Start(ctx, "translate")
	defer span.End()
	span.SetAttribute("unit", name)

	_, vertex := a.progress.Record(ctx, fmt.Sprintf("translate %s", name))

	tr, err := a.session.Translator().Translate(name, opts)
	if err != nil {
		span.RecordError(err)
		vertex.Complete(err)
		return domain.Translation{}, err
	}

	if !tr.Regenerated {
		vertex.Cached()
	}
	vertex.Complete(nil)
	span.SetAttribute("artifact", tr.ArtifactPath)
	span.SetAttribute("regenerated", tr.Regenerated)
	return tr, nil
}

// TranslateAndMerge translates the named unit, expands its includes and
// merges every loaded export into scope.
func (a *App) TranslateAndMerge(ctx context.Context, name string, scope *domain.Scope, opts domain.MergeOptions) error {
	ctx, span := a.tracer.Start(ctx, "translate_and_merge")
	defer span.End()
	span.SetAttribute("unit", name)

	ctx, vertex := a.progress.Record(ctx, fmt.Sprintf("merge %s", name))

	err := a.session.TranslateAndMerge(ctx, name, scope, opts)
	if err != nil {
		span.RecordError(err)
	}
	vertex.Complete(err)
	return err
}

// Run merges the named unit into a fresh scope and invokes its entry
// function. The entry must be niladic or take a single []string parameter,
// which receives the call arguments.
func (a *App) Run(ctx context.Context, name, entry string, opts domain.MergeOptions) error {
	scope := domain.NewScope()
	if err := a.TranslateAndMerge(ctx, name, scope, opts); err != nil {
		return err
	}

	fn, ok := scope.Lookup(entry)
	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrEntryNotFound, entry), "unit", name)
	}

	return callEntry(fn, entry, opts.CallArgs)
}

var stringSliceType = reflect.TypeOf([]string(nil))

// callEntry invokes an interpreted entry function, converting panics raised
// inside the interpreter into errors.
func callEntry(fn reflect.Value, entry string, callArgs []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = zerr.With(
				zerr.With(zerr.Wrap(domain.ErrTranslation, "entry function panicked"), "entry", entry),
				"panic", fmt.Sprintf("%v", r),
			)
		}
	}()

	if fn.Kind() != reflect.Func {
		return zerr.With(zerr.Wrap(domain.ErrTranslation, "entry binding is not a function"), "entry", entry)
	}

	t := fn.Type()
	switch {
	case t.NumIn() == 0:
		fn.Call(nil)
	case t.NumIn() == 1 && t.In(0) == stringSliceType:
		fn.Call([]reflect.Value{reflect.ValueOf(append([]string{}, callArgs...))})
	default:
		return zerr.With(
			zerr.With(zerr.Wrap(domain.ErrTranslation, "entry function has unsupported signature"), "entry", entry),
			"signature", t.String(),
		)
	}
	return nil
}

// Status verifies every recorded translation against the current filesystem
// and reports whether its artifact is still fresh. Digests are recomputed
// concurrently, bounded by the CPU count.
func (a *App) Status(ctx context.Context) ([]domain.UnitStatus, error) {
	records, err := a.store.All()
	if err != nil {
		return nil, err
	}

	statuses := make([]domain.UnitStatus, len(records))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, rec := range records {
		g.Go(func() error {
			statuses[i] = domain.UnitStatus{Record: rec, State: a.unitState(rec)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return statuses, nil
}

func (a *App) unitState(rec domain.TranslationRecord) domain.UnitState {
	if _, err := os.Stat(rec.SourcePath); err != nil {
		return domain.UnitMissing
	}
	if _, err := os.Stat(rec.ArtifactPath); err != nil {
		return domain.UnitMissing
	}

	digest, err := a.hasher.ComputeFileHash(rec.SourcePath)
	if err != nil || digest != rec.SourceDigest {
		return domain.UnitStale
	}
	return domain.UnitFresh
}

// Clean removes every recorded artifact and its record. Files at recorded
// artifact paths that were not generated by weld are left untouched.
func (a *App) Clean(ctx context.Context) error {
	_, span := a.tracer.Start(ctx, "clean")
	defer span.End()

	records, err := a.store.All()
	if err != nil {
		span.RecordError(err)
		return err
	}

	for _, rec := range records {
		if err := a.cleanOne(rec); err != nil {
			span.RecordError(err)
			return err
		}
	}
	return nil
}

func (a *App) cleanOne(rec domain.TranslationRecord) error {
	switch generated, err := isGeneratedArtifact(rec.ArtifactPath); {
	case os.IsNotExist(err):
		// Artifact already gone, drop the record.
	case err != nil:
		return zerr.Wrap(domain.ErrArtifactUnreadable, rec.ArtifactPath)
	case !generated:
		a.logger.Warn(fmt.Sprintf("not removing %s: not generated by weld", rec.ArtifactPath))
		return nil
	default:
		if err := os.Remove(rec.ArtifactPath); err != nil {
			return zerr.Wrap(err, "failed to remove artifact")
		}
	}

	return a.store.Delete(rec.Identifier)
}

// isGeneratedArtifact reports whether the file carries the generated marker
// or, for the legacy layout, a leading translation tag.
func isGeneratedArtifact(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return false, scanner.Err()
	}
	first := scanner.Text()
	return first == domain.GeneratedMarker || strings.HasPrefix(first, domain.TagPrefix), nil
}
