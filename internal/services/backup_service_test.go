package services

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumninet/alumninet-be/internal/models"
	"github.com/alumninet/alumninet-be/internal/store"
)

func TestCreateSnapshot(t *testing.T) {
	t.Parallel()

	st := store.New(testDB(t))
	require.NoError(t, st.Put(store.CollectionProfiles, "p1", models.Profile{ID: "p1", UserID: "u1", Name: "Maria Santos"}))
	require.NoError(t, st.Put(store.CollectionJobs, "j1", models.Job{ID: "j1", Title: "Platform Engineer"}))

	svc, err := NewBackupService(st, nil, t.TempDir())
	require.NoError(t, err)

	path, err := svc.CreateSnapshot()
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var snapshot map[string][]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &snapshot))
	assert.Len(t, snapshot[store.CollectionProfiles], 1)
	assert.Len(t, snapshot[store.CollectionJobs], 1)
}

func TestListSnapshots_NewestFirst(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	st := store.New(testDB(t))
	svc, err := NewBackupService(st, nil, dir)
	require.NoError(t, err)

	names, err := svc.ListSnapshots()
	require.NoError(t, err)
	assert.Empty(t, names)

	// File names embed a sortable timestamp, so lexical order is time order.
	for _, name := range []string{"snapshot_20260101000000.json", "snapshot_20260301000000.json", "notes.txt"} {
		require.NoError(t, os.WriteFile(dir+"/"+name, []byte("{}"), 0644))
	}

	names, err = svc.ListSnapshots()
	require.NoError(t, err)
	assert.Equal(t, []string{"snapshot_20260301000000.json", "snapshot_20260101000000.json"}, names)
}
