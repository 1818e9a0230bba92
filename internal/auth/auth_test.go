// ABOUTME: Tests for the local user registry.
// ABOUTME: Covers registration, duplicate emails, generic sign-in failure, and identity.
package auth

import (
	"testing"

	"github.com/harperreed/treino/internal/kv"
	"github.com/harperreed/treino/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) (*Service, storage.Repository) {
	t.Helper()
	repo := storage.New(kv.NewMemory())
	return NewService(repo), repo
}

func TestRegisterSignsIn(t *testing.T) {
	svc, repo := setupService(t)

	u, err := svc.Register("ana", "Ana@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", u.Email)

	cur, err := svc.Current()
	require.NoError(t, err)
	assert.Equal(t, u.ID, cur.ID)

	users, err := repo.Users()
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
	}{
		{"empty username", "  ", "a@b.c"},
		{"bad email", "ana", "not-an-email"},
		{"empty email", "ana", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := setupService(t)
			_, err := svc.Register(tt.username, tt.email)
			assert.ErrorIs(t, err, ErrValidationFailed)

			users, _ := repo.Users()
			assert.Empty(t, users, "rejected registration must not change state")
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := setupService(t)
	_, err := svc.Register("ana", "ana@example.com")
	require.NoError(t, err)

	_, err = svc.Register("outra", "ANA@example.com")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestSignIn(t *testing.T) {
	svc, _ := setupService(t)
	u, err := svc.Register("ana", "ana@example.com")
	require.NoError(t, err)
	require.NoError(t, svc.SignOut())

	_, err = svc.Current()
	assert.ErrorIs(t, err, ErrNotSignedIn)

	_, err = svc.SignIn("ghost@example.com")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	assert.Equal(t, "authentication failed", err.Error(), "failure must not reveal whether the account exists")

	got, err := svc.SignIn("ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestIdentity(t *testing.T) {
	svc, _ := setupService(t)

	id, err := svc.Identity()
	require.NoError(t, err)
	assert.True(t, id.IsZero())

	u, err := svc.Register("ana", "ana@example.com")
	require.NoError(t, err)

	id, err = svc.Identity()
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: u.ID.String(), Name: "ana", Email: "ana@example.com"}, id)

	static := Static{UserID: "x", Name: "bot"}
	sid, err := static.Identity()
	require.NoError(t, err)
	assert.Equal(t, "bot", sid.Name)
}

func TestUpdateKeepsRegistryAndCurrentInSync(t *testing.T) {
	svc, repo := setupService(t)
	u, err := svc.Register("ana", "ana@example.com")
	require.NoError(t, err)

	u.Username = "ana maria"
	require.NoError(t, svc.Update(u))

	cur, err := svc.Current()
	require.NoError(t, err)
	assert.Equal(t, "ana maria", cur.Username)

	users, err := repo.Users()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "ana maria", users[0].Username)
}
