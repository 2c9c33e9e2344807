package state_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/weld/internal/adapters/state"
	"go.trai.ch/weld/internal/core/domain"
)

func newRecord(identifier string) domain.TranslationRecord {
	return domain.TranslationRecord{
		Identifier:   identifier,
		SourcePath:   "/src/" + identifier,
		ArtifactPath: "/out/" + identifier + ".go",
		SourceDigest: "00000000deadbeef",
		TranslatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestStore_PutAndGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store, err := state.NewStore(path)
	require.NoError(t, err)

	rec := newRecord("unit_r2py")
	require.NoError(t, store.Put(rec))

	got, err := store.Get("unit_r2py")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec, *got)
}

func TestStore_GetMissingReturnsNil(t *testing.T) {
	store, err := state.NewStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	got, err := store.Get("absent")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	first, err := state.NewStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Put(newRecord("unit_r2py")))

	second, err := state.NewStore(path)
	require.NoError(t, err)

	got, err := second.Get("unit_r2py")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "unit_r2py", got.Identifier)
}

func TestStore_AllSortedByIdentifier(t *testing.T) {
	store, err := state.NewStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	require.NoError(t, store.Put(newRecord("zeta")))
	require.NoError(t, store.Put(newRecord("alpha")))

	all, err := store.All()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "alpha", all[0].Identifier)
	assert.Equal(t, "zeta", all[1].Identifier)
}

func TestStore_Delete(t *testing.T) {
	store, err := state.NewStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	require.NoError(t, store.Put(newRecord("unit_r2py")))
	require.NoError(t, store.Delete("unit_r2py"))

	got, err := store.Get("unit_r2py")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".weld", "state.json")
	store, err := state.NewStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Put(newRecord("unit_r2py")))

	reopened, err := state.NewStore(path)
	require.NoError(t, err)
	got, err := reopened.Get("unit_r2py")
	require.NoError(t, err)
	assert.NotNil(t, got)
}
