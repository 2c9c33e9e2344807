package app_test

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/weld/internal/adapters/telemetry"
	"go.trai.ch/weld/internal/app"
	"go.trai.ch/weld/internal/core/domain"
	"go.trai.ch/weld/internal/core/ports"
	"go.trai.ch/weld/internal/core/ports/mocks"
	"go.trai.ch/weld/internal/engine/session"
	"go.trai.ch/weld/internal/engine/translator"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	resolver *mocks.MockUnitResolver
	checker  *mocks.MockStalenessChecker
	loader   *mocks.MockArtifactLoader
	hasher   *mocks.MockHasher
	store    *mocks.MockTranslationStore
	logger   *mocks.MockLogger
	progress *mocks.MockTelemetry
	vertex   *mocks.MockVertex
	app      *app.App
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	f := &fixture{
		resolver: mocks.NewMockUnitResolver(ctrl),
		checker:  mocks.NewMockStalenessChecker(ctrl),
		loader:   mocks.NewMockArtifactLoader(ctrl),
		hasher:   mocks.NewMockHasher(ctrl),
		store:    mocks.NewMockTranslationStore(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		progress: mocks.NewMockTelemetry(ctrl),
		vertex:   mocks.NewMockVertex(ctrl),
	}

	generator := mocks.NewMockGenerator(ctrl)
	f.hasher.EXPECT().ComputeFileHash(gomock.Any()).Return("00000000deadbeef", nil).AnyTimes()
	f.store.EXPECT().Get(gomock.Any()).Return(nil, nil).AnyTimes()
	f.store.EXPECT().Put(gomock.Any()).Return(nil).AnyTimes()
	f.logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	f.progress.EXPECT().Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ ...ports.VertexOption) (context.Context, ports.Vertex) {
			return ctx, f.vertex
		}).AnyTimes()
	f.vertex.EXPECT().Complete(gomock.Any()).AnyTimes()

	f.loader.EXPECT().OnInclude(gomock.Any())
	f.loader.EXPECT().OnContext(gomock.Any())

	tracer := telemetry.NewNoOpTracer()
	tr := translator.New(f.resolver, f.checker, generator, f.hasher, f.store, f.logger)
	sess := session.New(tr, f.loader, f.logger, tracer)
	f.app = app.New(sess, f.store, f.hasher, f.logger, tracer, f.progress)
	return f
}

func (f *fixture) expectCachedUnit(name string) string {
	source := "/u/" + name + ".r2py"
	artifact := filepath.Join("/u", name+"_r2py.go")
	f.resolver.EXPECT().Resolve(name+".r2py", gomock.Any()).
		Return(domain.ResolvedUnit{SourcePath: source, OutputDir: "/u"}, nil).AnyTimes()
	f.checker.EXPECT().NeedsRegeneration(source, artifact).Return(false, nil).AnyTimes()
	return artifact
}

func TestTranslate_CacheHitMarksVertexCached(t *testing.T) {
	f := newFixture(t)
	f.expectCachedUnit("rand")
	f.vertex.EXPECT().Cached()

	tr, err := f.app.Translate(context.Background(), "rand.r2py", domain.DefaultTranslateOptions())
	require.NoError(t, err)
	assert.False(t, tr.Regenerated)
}

func TestRun_InvokesNiladicEntry(t *testing.T) {
	f := newFixture(t)
	artifact := f.expectCachedUnit("prog")

	called := false
	manifest := domain.NewExportManifest()
	manifest.Add("main", reflect.ValueOf(func() { called = true }))

	f.loader.EXPECT().Includes(artifact).Return(nil, nil)
	f.loader.EXPECT().Load("prog_r2py", artifact).Return(manifest, nil)

	err := f.app.Run(context.Background(), "prog.r2py", "main", domain.DefaultMergeOptions())
	require.NoError(t, err)
	assert.True(t, called)
}

func TestRun_PassesCallArgs(t *testing.T) {
	f := newFixture(t)
	artifact := f.expectCachedUnit("prog")

	var got []string
	manifest := domain.NewExportManifest()
	manifest.Add("main", reflect.ValueOf(func(args []string) { got = args }))

	f.loader.EXPECT().Includes(artifact).Return(nil, nil)
	f.loader.EXPECT().Load("prog_r2py", artifact).Return(manifest, nil)

	opts := domain.DefaultMergeOptions()
	opts.CallArgs = []string{"one", "two"}
	require.NoError(t, f.app.Run(context.Background(), "prog.r2py", "main", opts))
	assert.Equal(t, []string{"one", "two"}, got)
}

func TestRun_EntryNotFound(t *testing.T) {
	f := newFixture(t)
	artifact := f.expectCachedUnit("prog")

	f.loader.EXPECT().Includes(artifact).Return(nil, nil)
	f.loader.EXPECT().Load("prog_r2py", artifact).Return(domain.NewExportManifest(), nil)

	err := f.app.Run(context.Background(), "prog.r2py", "main", domain.DefaultMergeOptions())
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)
}

func TestRun_UnsupportedEntrySignature(t *testing.T) {
	f := newFixture(t)
	artifact := f.expectCachedUnit("prog")

	manifest := domain.NewExportManifest()
	manifest.Add("main", reflect.ValueOf(func(a, b int) {}))

	f.loader.EXPECT().Includes(artifact).Return(nil, nil)
	f.loader.EXPECT().Load("prog_r2py", artifact).Return(manifest, nil)

	err := f.app.Run(context.Background(), "prog.r2py", "main", domain.DefaultMergeOptions())
	assert.ErrorIs(t, err, domain.ErrTranslation)
}

func TestRun_EntryIsNotAFunction(t *testing.T) {
	f := newFixture(t)
	artifact := f.expectCachedUnit("prog")

	manifest := domain.NewExportManifest()
	manifest.Add("main", reflect.ValueOf(42))

	f.loader.EXPECT().Includes(artifact).Return(nil, nil)
	f.loader.EXPECT().Load("prog_r2py", artifact).Return(manifest, nil)

	err := f.app.Run(context.Background(), "prog.r2py", "main", domain.DefaultMergeOptions())
	assert.ErrorIs(t, err, domain.ErrTranslation)
}

func TestRun_EntryPanicBecomesError(t *testing.T) {
	f := newFixture(t)
	artifact := f.expectCachedUnit("prog")

	manifest := domain.NewExportManifest()
	manifest.Add("main", reflect.ValueOf(func() { panic("boom") }))

	f.loader.EXPECT().Includes(artifact).Return(nil, nil)
	f.loader.EXPECT().Load("prog_r2py", artifact).Return(manifest, nil)

	err := f.app.Run(context.Background(), "prog.r2py", "main", domain.DefaultMergeOptions())
	assert.ErrorIs(t, err, domain.ErrTranslation)
}

func statusFixtureRecord(t *testing.T, dir, name, digest string) domain.TranslationRecord {
	t.Helper()
	source := filepath.Join(dir, name+".r2py")
	artifact := filepath.Join(dir, name+"_r2py.go")
	require.NoError(t, os.WriteFile(source, []byte("x = 1\n"), 0o600))
	require.NoError(t, os.WriteFile(artifact, []byte(domain.GeneratedMarker+"\n"), 0o600))
	return domain.TranslationRecord{
		Identifier:   name + "_r2py",
		SourcePath:   source,
		ArtifactPath: artifact,
		SourceDigest: digest,
	}
}

func TestStatus_ClassifiesRecords(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()

	fresh := statusFixtureRecord(t, dir, "fresh", "00000000deadbeef")
	stale := statusFixtureRecord(t, dir, "stale", "1111111111111111")
	missing := domain.TranslationRecord{
		Identifier:   "gone_r2py",
		SourcePath:   filepath.Join(dir, "gone.r2py"),
		ArtifactPath: filepath.Join(dir, "gone_r2py.go"),
		SourceDigest: "00000000deadbeef",
	}

	f.store.EXPECT().All().Return([]domain.TranslationRecord{fresh, missing, stale}, nil)

	statuses, err := f.app.Status(context.Background())
	require.NoError(t, err)
	require.Len(t, statuses, 3)

	byID := map[string]domain.UnitState{}
	for _, st := range statuses {
		byID[st.Record.Identifier] = st.State
	}
	assert.Equal(t, domain.UnitFresh, byID["fresh_r2py"])
	assert.Equal(t, domain.UnitStale, byID["stale_r2py"])
	assert.Equal(t, domain.UnitMissing, byID["gone_r2py"])
}

func TestClean_RemovesGeneratedArtifacts(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()
	rec := statusFixtureRecord(t, dir, "unit", "00000000deadbeef")

	f.store.EXPECT().All().Return([]domain.TranslationRecord{rec}, nil)
	f.store.EXPECT().Delete("unit_r2py").Return(nil)

	require.NoError(t, f.app.Clean(context.Background()))

	_, err := os.Stat(rec.ArtifactPath)
	assert.True(t, os.IsNotExist(err))
}

func TestClean_LeavesForeignFilesAlone(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()

	artifact := filepath.Join(dir, "unit_r2py.go")
	require.NoError(t, os.WriteFile(artifact, []byte("package main\n"), 0o600))
	rec := domain.TranslationRecord{Identifier: "unit_r2py", ArtifactPath: artifact}

	f.store.EXPECT().All().Return([]domain.TranslationRecord{rec}, nil)
	// No Delete expectation: the record survives alongside the foreign file.

	require.NoError(t, f.app.Clean(context.Background()))

	_, err := os.Stat(artifact)
	assert.NoError(t, err)
}

func TestClean_DropsRecordWhenArtifactAlreadyGone(t *testing.T) {
	f := newFixture(t)
	rec := domain.TranslationRecord{
		Identifier:   "unit_r2py",
		ArtifactPath: filepath.Join(t.TempDir(), "unit_r2py.go"),
	}

	f.store.EXPECT().All().Return([]domain.TranslationRecord{rec}, nil)
	f.store.EXPECT().Delete("unit_r2py").Return(nil)

	assert.NoError(t, f.app.Clean(context.Background()))
}
