package session_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/weld/internal/adapters/codegen"
	"go.trai.ch/weld/internal/adapters/fs"
	"go.trai.ch/weld/internal/adapters/logger"
	"go.trai.ch/weld/internal/adapters/state"
	"go.trai.ch/weld/internal/adapters/telemetry"
	"go.trai.ch/weld/internal/adapters/yaegi"
	"go.trai.ch/weld/internal/core/domain"
	"go.trai.ch/weld/internal/engine/session"
	"go.trai.ch/weld/internal/engine/translator"
)

func newRealSession(t *testing.T, searchPath []string) *session.Session {
	t.Helper()

	store, err := state.NewStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	tr := translator.New(
		fs.NewResolver(),
		fs.NewStalenessChecker(),
		codegen.NewGenerator(),
		fs.NewHasher(),
		store,
		logger.New(),
	)
	tr.SetSearchPath(searchPath)

	return session.New(tr, yaegi.New(), logger.New(), telemetry.NewNoOpTracer())
}

func writeUnit(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	// Keep sources older than the artifacts generated moments later, so the
	// conservative equal-timestamp rule cannot trigger.
	old := time.Now().Add(-time.Minute)
	require.NoError(t, os.Chtimes(path, old, old))
	return path
}

func TestSession_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeUnit(t, dir, "helper.r2py", "func helpme() int { return 41 }\n")
	writeUnit(t, dir, "main.r2py", "include helper.r2py\nfunc run() int { return helpme() + 1 }\n")

	sess := newRealSession(t, []string{dir})

	scope := domain.NewScope()
	err := sess.TranslateAndMerge(context.Background(), "main.r2py", scope, domain.DefaultMergeOptions())
	require.NoError(t, err)

	// Both units' exports land in the scope; infrastructure stays out.
	_, ok := scope.Lookup("helpme")
	assert.True(t, ok)
	_, ok = scope.Lookup("mycontext")
	assert.False(t, ok)

	run, ok := scope.Lookup("run")
	require.True(t, ok)
	assert.EqualValues(t, 42, run.Call(nil)[0].Int())

	// Artifacts exist next to their sources.
	_, err = os.Stat(filepath.Join(dir, "main_r2py.go"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "helper_r2py.go"))
	assert.NoError(t, err)
}

func TestSession_SecondTranslationReusesArtifact(t *testing.T) {
	dir := t.TempDir()
	writeUnit(t, dir, "unit.r2py", "var x = 1\n")

	sess := newRealSession(t, []string{dir})

	first, err := sess.Translator().Translate("unit.r2py", domain.DefaultTranslateOptions())
	require.NoError(t, err)
	assert.True(t, first.Regenerated)

	second, err := sess.Translator().Translate("unit.r2py", domain.DefaultTranslateOptions())
	require.NoError(t, err)
	assert.False(t, second.Regenerated)
}

func TestSession_SourceChangeTriggersRegeneration(t *testing.T) {
	dir := t.TempDir()
	writeUnit(t, dir, "unit.r2py", "var x = 1\n")

	sess := newRealSession(t, []string{dir})

	_, err := sess.Translator().Translate("unit.r2py", domain.DefaultTranslateOptions())
	require.NoError(t, err)

	// Touch the source into the future relative to the artifact.
	future := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "unit.r2py"), future, future))

	again, err := sess.Translator().Translate("unit.r2py", domain.DefaultTranslateOptions())
	require.NoError(t, err)
	assert.True(t, again.Regenerated)
}

func TestSession_SharedContextFlowsBetweenUnits(t *testing.T) {
	dir := t.TempDir()
	writeUnit(t, dir, "producer.r2py",
		"var _ = func() bool { mycontext[\"token\"] = \"from-producer\"; return true }()\n")
	writeUnit(t, dir, "consumer.r2py",
		"include producer.r2py\nvar token = mycontext[\"token\"]\n")

	sess := newRealSession(t, []string{dir})

	scope := domain.NewScope()
	err := sess.TranslateAndMerge(context.Background(), "consumer.r2py", scope, domain.DefaultMergeOptions())
	require.NoError(t, err)

	token, ok := scope.Lookup("token")
	require.True(t, ok)
	assert.Equal(t, "from-producer", token.Interface())
}

func TestSession_ForeignFileIsNeverOverwritten(t *testing.T) {
	dir := t.TempDir()
	writeUnit(t, dir, "unit.r2py", "var x = 1\n")

	foreign := filepath.Join(dir, "unit_r2py.go")
	require.NoError(t, os.WriteFile(foreign, []byte("package main\n\n// hand-written\n"), 0o600))

	sess := newRealSession(t, []string{dir})

	_, err := sess.Translator().Translate("unit.r2py", domain.DefaultTranslateOptions())
	require.ErrorIs(t, err, domain.ErrForeignArtifact)

	data, readErr := os.ReadFile(foreign)
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "hand-written")
}

func TestSession_ForceOverwritesForeignFile(t *testing.T) {
	dir := t.TempDir()
	writeUnit(t, dir, "unit.r2py", "var x = 1\n")

	foreign := filepath.Join(dir, "unit_r2py.go")
	require.NoError(t, os.WriteFile(foreign, []byte("package main\n"), 0o600))

	sess := newRealSession(t, []string{dir})

	opts := domain.DefaultTranslateOptions()
	opts.Force = true
	tr, err := sess.Translator().Translate("unit.r2py", opts)
	require.NoError(t, err)
	assert.True(t, tr.Regenerated)

	data, err := os.ReadFile(foreign)
	require.NoError(t, err)
	assert.Contains(t, string(data), domain.GeneratedMarker)
}

func TestSession_TruncatedArtifactIsRegenerated(t *testing.T) {
	dir := t.TempDir()
	writeUnit(t, dir, "unit.r2py", "var x = 1\n")

	sess := newRealSession(t, []string{dir})

	first, err := sess.Translator().Translate("unit.r2py", domain.DefaultTranslateOptions())
	require.NoError(t, err)

	// Chop off the completeness fence as if generation had been interrupted.
	data, err := os.ReadFile(first.ArtifactPath)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(first.ArtifactPath, data[:len(data)/2], 0o600))

	again, err := sess.Translator().Translate("unit.r2py", domain.DefaultTranslateOptions())
	require.NoError(t, err)
	assert.True(t, again.Regenerated)
}
