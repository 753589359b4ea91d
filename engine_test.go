package resepbunda

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, skipSeed bool) *Engine {
	t.Helper()
	engine, err := NewEngine(EngineConfig{
		DBPath:   filepath.Join(t.TempDir(), "test.db"),
		SkipSeed: skipSeed,
	})
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })
	return engine
}

func TestNewEngineSeedsOnce(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	engine, err := NewEngine(EngineConfig{DBPath: dbPath})
	require.NoError(t, err)
	feed, err := engine.ListPublic(Filter{})
	require.NoError(t, err)
	assert.Len(t, feed, 5)
	require.NoError(t, engine.Close())

	// Reopening the same database must not duplicate the samples.
	engine, err = NewEngine(EngineConfig{DBPath: dbPath})
	require.NoError(t, err)
	defer engine.Close()
	feed, err = engine.ListPublic(Filter{})
	require.NoError(t, err)
	assert.Len(t, feed, 5)
}

func TestRegisterLoginLogoutScenario(t *testing.T) {
	engine := newTestEngine(t, true)

	_, err := engine.Register("Bunda", "bunda@example.com", "Bunda123!")
	require.NoError(t, err)

	require.NoError(t, engine.Login("bunda@example.com", "Bunda123!"))

	sess, err := engine.Session()
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.True(t, sess.IsLoggedIn)
	assert.Equal(t, "bunda@example.com", sess.Email)

	require.NoError(t, engine.Logout())
	sess, err = engine.Session()
	require.NoError(t, err)
	assert.False(t, sess.IsLoggedIn)
	assert.Equal(t, "", sess.Email)
}

func TestDomainErrorsSurface(t *testing.T) {
	engine := newTestEngine(t, true)

	_, err := engine.Register("Bunda", "bunda@example.com", "Bunda123!")
	require.NoError(t, err)

	_, err = engine.Register("Bunda", "BUNDA@example.com", "other")
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)

	assert.ErrorIs(t, engine.Login("ghost@example.com", "x"), ErrEmailNotFound)
	assert.ErrorIs(t, engine.Login("bunda@example.com", "nope"), ErrInvalidPassword)

	_, err = engine.Recipe(12345)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestCreateRecipeSnapshotsCreator(t *testing.T) {
	engine := newTestEngine(t, true)

	_, err := engine.Register("Bunda Sari", "bunda@example.com", "Bunda123!")
	require.NoError(t, err)
	require.NoError(t, engine.Login("bunda@example.com", "Bunda123!"))

	id, err := engine.CreateRecipe(Draft{
		Title:       "Soto Ayam",
		CookingTime: "45 mnt",
		Category:    "lunch",
		Ingredients: []string{"1 ekor ayam", "2 batang serai"},
		Steps:       []string{"Rebus ayam", "Sajikan"},
	})
	require.NoError(t, err)

	rec, err := engine.Recipe(id)
	require.NoError(t, err)
	assert.Equal(t, "Bunda Sari", rec.Creator)
	assert.Equal(t, "bunda@example.com", rec.CreatorEmail)
	assert.Equal(t, "Home Cook", rec.CreatorType)
	assert.Equal(t, []string{"1 ekor ayam", "2 batang serai"}, rec.Ingredients)
	assert.Equal(t, []string{"Rebus ayam", "Sajikan"}, rec.Steps)
}

func TestCreateRequiresLogin(t *testing.T) {
	engine := newTestEngine(t, true)

	_, err := engine.CreateRecipe(Draft{Title: "Soto"})
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	_, err = engine.MyRecipes()
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	err = engine.SaveRecipe(1)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestMyRecipesAndBookmarks(t *testing.T) {
	engine := newTestEngine(t, false)

	_, err := engine.Register("Bunda", "bunda@example.com", "Bunda123!")
	require.NoError(t, err)
	require.NoError(t, engine.Login("bunda@example.com", "Bunda123!"))

	_, err = engine.CreateRecipe(Draft{Title: "Resep Rahasia", IsPrivate: true})
	require.NoError(t, err)

	mine, err := engine.MyRecipes()
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.True(t, mine[0].IsPrivate)

	// The private recipe stays out of the seeded public feed.
	feed, err := engine.ListPublic(Filter{})
	require.NoError(t, err)
	assert.Len(t, feed, 5)

	require.NoError(t, engine.SaveRecipe(feed[0].ID))
	saved, err := engine.SavedRecipes()
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, feed[0].ID, saved[0].ID)
}

func TestUpdateProfile(t *testing.T) {
	engine := newTestEngine(t, true)

	_, err := engine.Register("Bunda", "bunda@example.com", "Bunda123!")
	require.NoError(t, err)

	// Profile edits require a session.
	bio := "Suka masak"
	err = engine.UpdateProfile(ProfileUpdate{Bio: &bio})
	require.True(t, errors.Is(err, ErrNotLoggedIn))

	require.NoError(t, engine.Login("bunda@example.com", "Bunda123!"))
	require.NoError(t, engine.UpdateProfile(ProfileUpdate{Bio: &bio}))

	u, err := engine.CurrentUser()
	require.NoError(t, err)
	assert.Equal(t, "Suka masak", u.Bio)
	assert.Equal(t, "Bunda", u.FullName)
}
