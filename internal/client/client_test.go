package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumninet/alumninet-be/internal/models"
	"github.com/alumninet/alumninet-be/internal/session"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Store) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sess := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	return New(server.URL, sess), sess
}

func TestLogin_PersistsSession(t *testing.T) {
	t.Parallel()

	user := models.User{ID: "u1", Name: "Maria Santos", Email: "maria@example.com", Role: models.RoleAlumni}
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "maria@example.com", payload["email"])

		json.NewEncoder(w).Encode(map[string]any{"token": "tok-123", "user": user})
	}))

	got, err := c.Login(context.Background(), "maria@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, user, got)

	token, ok := sess.Token()
	require.True(t, ok)
	assert.Equal(t, "tok-123", token)
	stored, ok := sess.Current()
	require.True(t, ok)
	assert.Equal(t, user, stored)
}

func TestLogin_RejectionLeavesNoSession(t *testing.T) {
	t.Parallel()

	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid email or password"})
	}))

	_, err := c.Login(context.Background(), "maria@example.com", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "Invalid email or password")

	_, ok := sess.Token()
	assert.False(t, ok)
}

func TestLogin_IncompleteResponseNotPersisted(t *testing.T) {
	t.Parallel()

	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Token without user: the pair must be stored together or not at all.
		json.NewEncoder(w).Encode(map[string]any{"token": "tok-123"})
	}))

	_, err := c.Login(context.Background(), "maria@example.com", "pw")
	require.Error(t, err)
	_, ok := sess.Token()
	assert.False(t, ok)
}

func TestGatedRequestAttachesBearer(t *testing.T) {
	t.Parallel()

	var gotAuth string
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]models.Profile{{ID: "p1", Name: "Maria Santos"}})
	}))
	require.NoError(t, sess.Save("tok-123", models.User{ID: "u1"}))

	profiles, err := c.Profiles(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestGatedRequestWithoutSession(t *testing.T) {
	t.Parallel()

	var gotAuth string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Authorization token required"})
	}))

	_, err := c.Profiles(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, gotAuth, "no header is attached when no session exists")
}

func TestLogout_ClearsSessionEvenOnServerError(t *testing.T) {
	t.Parallel()

	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	require.NoError(t, sess.Save("tok-123", models.User{ID: "u1"}))

	require.NoError(t, c.Logout(context.Background()))

	_, ok := sess.Token()
	assert.False(t, ok)
	_, ok = sess.Current()
	assert.False(t, ok)
}

func TestUpdateProfile_SendsPatch(t *testing.T) {
	t.Parallel()

	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/profiles/p1", r.URL.Path)
		var patch map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
		assert.Equal(t, "Staff Engineer", patch["headline"])

		json.NewEncoder(w).Encode(models.Profile{ID: "p1", Headline: "Staff Engineer"})
	}))
	require.NoError(t, sess.Save("tok-123", models.User{ID: "u1"}))

	updated, err := c.UpdateProfile(context.Background(), "p1", map[string]any{"headline": "Staff Engineer"})
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", updated.Headline)
}
