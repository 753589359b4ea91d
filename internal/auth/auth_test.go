package auth

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resepbunda/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Initialize(false))
	return NewService(store)
}

func TestRegisterNormalizesAndRejectsDuplicates(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register("Bunda", "  Foo@Bar.com ", "secret1")
	require.NoError(t, err)

	// The same address in different case is the same identity.
	_, err = svc.Register("Bunda", "foo@bar.com", "secret2")
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)

	u, err := svc.GetUser("FOO@BAR.COM")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "foo@bar.com", u.Email)
	assert.Equal(t, "Bunda", u.FullName)
	assert.NotEmpty(t, u.CreatedAt)
}

func TestRegisterDoesNotLogIn(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register("Bunda", "bunda@example.com", "Bunda123!")
	require.NoError(t, err)

	sess, err := svc.GetSession()
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.False(t, sess.IsLoggedIn)
}

func TestLoginErrors(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Register("Bunda", "bunda@example.com", "Bunda123!")
	require.NoError(t, err)

	err = svc.Login("nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrEmailNotFound)

	err = svc.Login("bunda@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidPassword)

	// Password comparison is exact, including case.
	err = svc.Login("bunda@example.com", "bunda123!")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestLoginLogoutScenario(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Register("Bunda", "bunda@example.com", "Bunda123!")
	require.NoError(t, err)

	require.NoError(t, svc.Login("Bunda@Example.com", "Bunda123!"))

	sess, err := svc.GetSession()
	require.NoError(t, err)
	assert.True(t, sess.IsLoggedIn)
	assert.Equal(t, "bunda@example.com", sess.Email)
	assert.NotEmpty(t, sess.LoggedInAt)

	// Logout is idempotent.
	for i := 0; i < 2; i++ {
		require.NoError(t, svc.Logout())
		sess, err = svc.GetSession()
		require.NoError(t, err)
		assert.False(t, sess.IsLoggedIn)
		assert.Empty(t, sess.Email)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc := newTestService(t)
	id, err := svc.Register("Bunda", "bunda@example.com", "Bunda123!")
	require.NoError(t, err)

	bio := "Ibu dua anak, hobi masak."
	badge := "Top Chef"
	require.NoError(t, svc.UpdateProfile(id, storage.ProfileUpdate{Bio: &bio, BadgePrimary: &badge}))

	u, err := svc.GetUser("bunda@example.com")
	require.NoError(t, err)
	assert.Equal(t, bio, u.Bio)
	assert.Equal(t, badge, u.BadgePrimary)
	assert.Equal(t, "Bunda", u.FullName)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "foo@bar.com", NormalizeEmail(" Foo@BAR.com\t"))
	assert.Equal(t, "", NormalizeEmail("   "))
}
