package session_test

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/weld/internal/core/domain"
	"go.trai.ch/weld/internal/core/ports/mocks"
	"go.trai.ch/weld/internal/engine/session"
	"go.trai.ch/weld/internal/engine/translator"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	resolver *mocks.MockUnitResolver
	checker  *mocks.MockStalenessChecker
	loader   *mocks.MockArtifactLoader
	tracer   *mocks.MockTracer
	sess     *session.Session
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	f := &fixture{
		resolver: mocks.NewMockUnitResolver(ctrl),
		checker:  mocks.NewMockStalenessChecker(ctrl),
		loader:   mocks.NewMockArtifactLoader(ctrl),
		tracer:   mocks.NewMockTracer(ctrl),
	}

	generator := mocks.NewMockGenerator(ctrl)
	hasher := mocks.NewMockHasher(ctrl)
	store := mocks.NewMockTranslationStore(ctrl)
	logger := mocks.NewMockLogger(ctrl)

	hasher.EXPECT().ComputeFileHash(gomock.Any()).Return("00000000deadbeef", nil).AnyTimes()
	store.EXPECT().Get(gomock.Any()).Return(nil, nil).AnyTimes()
	store.EXPECT().Put(gomock.Any()).Return(nil).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	f.tracer.EXPECT().EmitIncludes(gomock.Any(), gomock.Any()).AnyTimes()

	f.loader.EXPECT().OnInclude(gomock.Any())
	f.loader.EXPECT().OnContext(gomock.Any())

	tr := translator.New(f.resolver, f.checker, generator, hasher, store, logger)
	f.sess = session.New(tr, f.loader, logger, f.tracer)
	return f
}

// expectUnit wires a cached unit named <name>.r2py living in /u.
func (f *fixture) expectUnit(name string) string {
	source := "/u/" + name + ".r2py"
	artifact := filepath.Join("/u", name+"_r2py.go")

	f.resolver.EXPECT().Resolve(name+".r2py", gomock.Any()).
		Return(domain.ResolvedUnit{SourcePath: source, OutputDir: "/u"}, nil).AnyTimes()
	f.checker.EXPECT().NeedsRegeneration(source, artifact).Return(false, nil).AnyTimes()
	return artifact
}

func manifestOf(pairs ...any) *domain.ExportManifest {
	m := domain.NewExportManifest()
	for i := 0; i < len(pairs); i += 2 {
		m.Add(pairs[i].(string), reflect.ValueOf(pairs[i+1]))
	}
	return m
}

func TestTranslateAndMerge_BindsExports(t *testing.T) {
	f := newFixture(t)
	artifact := f.expectUnit("rand")

	f.loader.EXPECT().Includes(artifact).Return(nil, nil)
	f.loader.EXPECT().Load("rand_r2py", artifact).Return(manifestOf("randomfloat", 1.0), nil)

	scope := domain.NewScope()
	err := f.sess.TranslateAndMerge(context.Background(), "rand.r2py", scope, domain.DefaultMergeOptions())
	require.NoError(t, err)

	_, ok := scope.Lookup("randomfloat")
	assert.True(t, ok)
}

func TestTranslateAndMerge_IncludesMergedFirst(t *testing.T) {
	f := newFixture(t)
	mainArtifact := f.expectUnit("main")
	helperArtifact := f.expectUnit("helper")

	f.loader.EXPECT().Includes(mainArtifact).Return([]string{"helper.r2py"}, nil)
	f.loader.EXPECT().Includes(helperArtifact).Return(nil, nil)

	// The helper must be evaluated before the unit that includes it.
	gomock.InOrder(
		f.loader.EXPECT().Load("helper_r2py", helperArtifact).Return(manifestOf("helpme", 1), nil),
		f.loader.EXPECT().Load("main_r2py", mainArtifact).Return(manifestOf("main", 2), nil),
	)

	scope := domain.NewScope()
	err := f.sess.TranslateAndMerge(context.Background(), "main.r2py", scope, domain.DefaultMergeOptions())
	require.NoError(t, err)

	_, ok := scope.Lookup("helpme")
	assert.True(t, ok)
	_, ok = scope.Lookup("main")
	assert.True(t, ok)
}

func TestTranslateAndMerge_LoadOnce(t *testing.T) {
	f := newFixture(t)
	artifact := f.expectUnit("rand")

	f.loader.EXPECT().Includes(artifact).Return(nil, nil).Times(1)
	f.loader.EXPECT().Load("rand_r2py", artifact).Return(manifestOf("randomfloat", 1.0), nil).Times(1)

	first := domain.NewScope()
	require.NoError(t, f.sess.TranslateAndMerge(context.Background(), "rand.r2py", first, domain.DefaultMergeOptions()))

	// Second merge reuses the recorded manifest without re-evaluating.
	second := domain.NewScope()
	require.NoError(t, f.sess.TranslateAndMerge(context.Background(), "rand.r2py", second, domain.DefaultMergeOptions()))

	_, ok := second.Lookup("randomfloat")
	assert.True(t, ok)
}

func TestTranslateAndMerge_SharedIncludeLoadedOnce(t *testing.T) {
	f := newFixture(t)
	aArtifact := f.expectUnit("a")
	bArtifact := f.expectUnit("b")
	commonArtifact := f.expectUnit("common")

	f.loader.EXPECT().Includes(aArtifact).Return([]string{"common.r2py", "b.r2py"}, nil)
	f.loader.EXPECT().Includes(bArtifact).Return([]string{"common.r2py"}, nil)
	f.loader.EXPECT().Includes(commonArtifact).Return(nil, nil).Times(1)

	f.loader.EXPECT().Load("common_r2py", commonArtifact).Return(manifestOf("shared", 1), nil).Times(1)
	f.loader.EXPECT().Load("b_r2py", bArtifact).Return(manifestOf("b", 2), nil)
	f.loader.EXPECT().Load("a_r2py", aArtifact).Return(manifestOf("a", 3), nil)

	scope := domain.NewScope()
	err := f.sess.TranslateAndMerge(context.Background(), "a.r2py", scope, domain.DefaultMergeOptions())
	require.NoError(t, err)
	assert.Equal(t, 3, scope.Len())
}

func TestTranslateAndMerge_CycleDetected(t *testing.T) {
	f := newFixture(t)
	aArtifact := f.expectUnit("a")
	bArtifact := f.expectUnit("b")

	f.loader.EXPECT().Includes(aArtifact).Return([]string{"b.r2py"}, nil)
	f.loader.EXPECT().Includes(bArtifact).Return([]string{"a.r2py"}, nil)

	scope := domain.NewScope()
	err := f.sess.TranslateAndMerge(context.Background(), "a.r2py", scope, domain.DefaultMergeOptions())
	assert.ErrorIs(t, err, domain.ErrIncludeCycle)
	assert.ErrorIs(t, err, domain.ErrTranslation)
}

func TestTranslateAndMerge_SelfIncludeIsACycle(t *testing.T) {
	f := newFixture(t)
	artifact := f.expectUnit("a")

	f.loader.EXPECT().Includes(artifact).Return([]string{"a.r2py"}, nil)

	scope := domain.NewScope()
	err := f.sess.TranslateAndMerge(context.Background(), "a.r2py", scope, domain.DefaultMergeOptions())
	assert.ErrorIs(t, err, domain.ErrIncludeCycle)
}

func TestTranslateAndMerge_PreserveExisting(t *testing.T) {
	f := newFixture(t)
	artifact := f.expectUnit("rand")

	f.loader.EXPECT().Includes(artifact).Return(nil, nil)
	f.loader.EXPECT().Load("rand_r2py", artifact).Return(manifestOf("x", 2), nil)

	scope := domain.NewScope()
	scope.Bind("x", reflect.ValueOf(1))

	opts := domain.DefaultMergeOptions()
	opts.PreserveExisting = true
	require.NoError(t, f.sess.TranslateAndMerge(context.Background(), "rand.r2py", scope, opts))

	v, _ := scope.Lookup("x")
	assert.Equal(t, int64(1), v.Int())
}

func TestSetSharedContext(t *testing.T) {
	f := newFixture(t)

	assert.ErrorIs(t, f.sess.SetSharedContext(nil), domain.ErrNilContext)
	assert.ErrorIs(t, f.sess.SetSharedContext(nil), domain.ErrConfiguration)

	replacement := domain.Context{"key": "value"}
	require.NoError(t, f.sess.SetSharedContext(replacement))
	assert.Equal(t, "value", f.sess.SharedContext()["key"])
}
