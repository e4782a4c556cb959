package store

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumninet/alumninet-be/internal/database"
)

func testStore(t *testing.T) *Store {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	return New(db)
}

type doc struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	Headline string `json:"headline,omitempty"`
}

func TestPutAndGet(t *testing.T) {
	t.Parallel()

	s := testStore(t)
	require.NoError(t, s.Put(CollectionProfiles, "p1", doc{ID: "p1", Name: "Maria"}))

	raw, err := s.Get(CollectionProfiles, "p1")
	require.NoError(t, err)

	var got doc
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "Maria", got.Name)
}

func TestGet_NotFound(t *testing.T) {
	t.Parallel()

	s := testStore(t)
	_, err := s.Get(CollectionProfiles, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPut_ReplacesExisting(t *testing.T) {
	t.Parallel()

	s := testStore(t)
	require.NoError(t, s.Put(CollectionProfiles, "p1", doc{ID: "p1", Name: "Maria", Location: "New York"}))
	require.NoError(t, s.Put(CollectionProfiles, "p1", doc{ID: "p1", Name: "Maria S."}))

	raw, err := s.Get(CollectionProfiles, "p1")
	require.NoError(t, err)
	var got doc
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "Maria S.", got.Name)
	assert.Empty(t, got.Location, "replace must not keep old fields")
}

func TestList_InsertionOrderAndIsolation(t *testing.T) {
	t.Parallel()

	s := testStore(t)
	require.NoError(t, s.Put(CollectionProfiles, "p1", doc{ID: "p1", Name: "Maria"}))
	require.NoError(t, s.Put(CollectionProfiles, "p2", doc{ID: "p2", Name: "David"}))
	require.NoError(t, s.Put(CollectionJobs, "j1", map[string]string{"id": "j1", "title": "SRE"}))

	docs, err := s.List(CollectionProfiles)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	var first doc
	require.NoError(t, json.Unmarshal(docs[0], &first))
	assert.Equal(t, "p1", first.ID)
}

func TestFindEqual(t *testing.T) {
	t.Parallel()

	s := testStore(t)
	require.NoError(t, s.Put(CollectionProfiles, "p1", doc{ID: "p1", Name: "Maria", Location: "New York"}))
	require.NoError(t, s.Put(CollectionProfiles, "p2", doc{ID: "p2", Name: "David", Location: "Seattle"}))
	require.NoError(t, s.Put(CollectionProfiles, "p3", doc{ID: "p3", Name: "Priya", Location: "New York"}))

	docs, err := s.FindEqual(CollectionProfiles, "location", "New York")
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	docs, err = s.FindEqual(CollectionProfiles, "location", "Austin")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestMerge_ShallowTopLevel(t *testing.T) {
	t.Parallel()

	s := testStore(t)
	require.NoError(t, s.Put(CollectionProfiles, "p1", doc{ID: "p1", Name: "Maria", Location: "New York", Headline: "Engineer"}))

	merged, err := s.Merge(CollectionProfiles, "p1", map[string]any{"headline": "Staff Engineer"})
	require.NoError(t, err)

	var got doc
	require.NoError(t, json.Unmarshal(merged, &got))
	assert.Equal(t, "Staff Engineer", got.Headline)
	assert.Equal(t, "New York", got.Location, "untouched fields survive the merge")

	// The merge is persisted, not just returned.
	raw, err := s.Get(CollectionProfiles, "p1")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "Staff Engineer", got.Headline)
}

func TestMerge_NotFound(t *testing.T) {
	t.Parallel()

	s := testStore(t)
	_, err := s.Merge(CollectionProfiles, "missing", map[string]any{"headline": "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	s := testStore(t)
	require.NoError(t, s.Put(CollectionJobs, "j1", map[string]string{"id": "j1"}))
	require.NoError(t, s.Delete(CollectionJobs, "j1"))

	_, err := s.Get(CollectionJobs, "j1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is not an error.
	assert.NoError(t, s.Delete(CollectionJobs, "j1"))
}

func TestExport(t *testing.T) {
	t.Parallel()

	s := testStore(t)
	require.NoError(t, s.Put(CollectionProfiles, "p1", doc{ID: "p1", Name: "Maria"}))
	require.NoError(t, s.Put(CollectionJobs, "j1", map[string]string{"id": "j1"}))

	out, err := s.Export()
	require.NoError(t, err)
	assert.Len(t, out[CollectionProfiles], 1)
	assert.Len(t, out[CollectionJobs], 1)
}
