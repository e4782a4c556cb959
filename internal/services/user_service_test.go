package services

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumninet/alumninet-be/internal/database"
	"github.com/alumninet/alumninet-be/internal/models"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func TestCreateAndGetUser(t *testing.T) {
	t.Parallel()

	svc := NewUserService(testDB(t))
	created, err := svc.CreateUser("u1", "Maria Santos", "maria@example.com", models.RoleAlumni, "", "hunter22")
	require.NoError(t, err)
	assert.Empty(t, created.PasswordHash)

	got, err := svc.GetUserByID("u1")
	require.NoError(t, err)
	assert.Equal(t, "Maria Santos", got.Name)
	assert.Equal(t, models.RoleAlumni, got.Role)
	assert.Empty(t, got.PasswordHash)
}

func TestGetUserByID_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewUserService(testDB(t))
	_, err := svc.GetUserByID("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAuthenticate_Success(t *testing.T) {
	t.Parallel()

	svc := NewUserService(testDB(t))
	_, err := svc.CreateUser("u1", "Maria Santos", "maria@example.com", models.RoleAlumni, "", "hunter22")
	require.NoError(t, err)

	user, err := svc.Authenticate("maria@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Empty(t, user.PasswordHash, "the hash never leaves the service")
}

func TestAuthenticate_UniformRejection(t *testing.T) {
	t.Parallel()

	// A wrong password and an unknown email must be indistinguishable.
	svc := NewUserService(testDB(t))
	_, err := svc.CreateUser("u1", "Maria Santos", "real@example.com", models.RoleAlumni, "", "correct")
	require.NoError(t, err)

	_, wrongPassword := svc.Authenticate("real@example.com", "wrong")
	_, unknownEmail := svc.Authenticate("nobody@example.com", "x")

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestCountUsers(t *testing.T) {
	t.Parallel()

	svc := NewUserService(testDB(t))
	n, err := svc.CountUsers()
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = svc.CreateUser("", "Maria Santos", "maria@example.com", models.RoleAlumni, "", "pw")
	require.NoError(t, err)

	n, err = svc.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
