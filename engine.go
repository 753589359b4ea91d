// Package resepbunda is the data-access core of the resepbunda recipe
// app: a local SQLite store with idempotent schema migration, a
// single-device session, account management, and the recipe repository.
// The UI layer talks only to the Engine.
package resepbunda

import (
	"errors"
	"fmt"

	"resepbunda/internal/auth"
	"resepbunda/internal/recipes"
	"resepbunda/internal/storage"
)

// Domain errors surfaced to the calling layer. Match with errors.Is.
var (
	ErrEmailAlreadyUsed = auth.ErrEmailAlreadyUsed
	ErrEmailNotFound    = auth.ErrEmailNotFound
	ErrInvalidPassword  = auth.ErrInvalidPassword
	ErrEmptyTitle       = recipes.ErrEmptyTitle
	ErrRecipeNotFound   = recipes.ErrNotFound
	ErrNotLoggedIn      = errors.New("not logged in")
)

// Engine is the public API over the data layer. NewEngine fully migrates
// the database before returning, so every method runs against the current
// schema.
type Engine struct {
	store   *storage.Store
	auth    *auth.Service
	recipes *recipes.Repository
}

// NewEngine opens the database at cfg.DBPath and brings it up to the
// current schema. Initialization failure is fatal: no Engine is returned
// and the application must not proceed.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.DBPath == "" {
		cfg.DBPath = storage.DefaultConfig().Database.Path
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := store.Initialize(!cfg.SkipSeed); err != nil {
		store.Close()
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	return &Engine{
		store:   store,
		auth:    auth.NewService(store),
		recipes: recipes.NewRepository(store),
	}, nil
}

// Close releases the database handle.
func (e *Engine) Close() error {
	return e.store.Close()
}

// Register creates a new account. The caller logs in separately.
func (e *Engine) Register(name, email, password string) (int64, error) {
	return e.auth.Register(name, email, password)
}

// Login verifies credentials and opens the device session.
func (e *Engine) Login(email, password string) error {
	return e.auth.Login(email, password)
}

// Logout closes the device session. Idempotent.
func (e *Engine) Logout() error {
	return e.auth.Logout()
}

// Session returns the current session state for cold-start restore.
func (e *Engine) Session() (*Session, error) {
	s, err := e.auth.GetSession()
	if err != nil || s == nil {
		return nil, err
	}
	return &Session{IsLoggedIn: s.IsLoggedIn, Email: s.Email, LoggedInAt: s.LoggedInAt}, nil
}

// CurrentUser returns the logged-in account, or ErrNotLoggedIn.
func (e *Engine) CurrentUser() (*User, error) {
	email, err := e.sessionEmail()
	if err != nil {
		return nil, err
	}
	u, err := e.auth.GetUser(email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotLoggedIn
	}
	pub := userFromInternal(u)
	return &pub, nil
}

// UpdateProfile updates the logged-in user's mutable profile fields.
func (e *Engine) UpdateProfile(p ProfileUpdate) error {
	u, err := e.CurrentUser()
	if err != nil {
		return err
	}
	return e.auth.UpdateProfile(u.ID, storage.ProfileUpdate{
		FullName:       p.FullName,
		Bio:            p.Bio,
		AvatarURL:      p.AvatarURL,
		BadgePrimary:   p.BadgePrimary,
		BadgeSecondary: p.BadgeSecondary,
	})
}

// ListPublic returns the public feed with search, category filter, and
// sort applied.
func (e *Engine) ListPublic(f Filter) ([]Recipe, error) {
	list, err := e.recipes.ListPublic(recipes.Filter{
		Query:    f.Query,
		Category: f.Category,
		Sort:     recipes.Sort(f.Sort),
	})
	if err != nil {
		return nil, err
	}
	return recipesFromInternal(list), nil
}

// Recipe returns one recipe by id, or ErrRecipeNotFound.
func (e *Engine) Recipe(id int64) (*Recipe, error) {
	rec, err := e.recipes.GetByID(id)
	if err != nil {
		return nil, err
	}
	pub := recipeFromInternal(*rec)
	return &pub, nil
}

// CreateRecipe stores a new recipe under the logged-in user, snapshotting
// their display name and email as the creator, and returns the new id.
func (e *Engine) CreateRecipe(d Draft) (int64, error) {
	email, err := e.sessionEmail()
	if err != nil {
		return 0, err
	}
	creator := "Anonymous"
	if u, err := e.auth.GetUser(email); err != nil {
		return 0, err
	} else if u != nil && u.FullName != "" {
		creator = u.FullName
	}

	return e.recipes.Create(recipes.Draft{
		Title:        d.Title,
		Description:  d.Description,
		Creator:      creator,
		CreatorEmail: email,
		CookingTime:  d.CookingTime,
		Category:     d.Category,
		IsPrivate:    d.IsPrivate,
		Calories:     d.Calories,
		Ingredients:  d.Ingredients,
		Steps:        d.Steps,
		Image:        d.Image,
	})
}

// MyRecipes returns the logged-in user's own recipes, private ones
// included.
func (e *Engine) MyRecipes() ([]Recipe, error) {
	email, err := e.sessionEmail()
	if err != nil {
		return nil, err
	}
	list, err := e.recipes.ListByCreator(email)
	if err != nil {
		return nil, err
	}
	return recipesFromInternal(list), nil
}

// SaveRecipe bookmarks a recipe for the logged-in user.
func (e *Engine) SaveRecipe(recipeID int64) error {
	email, err := e.sessionEmail()
	if err != nil {
		return err
	}
	return e.recipes.Save(email, recipeID)
}

// UnsaveRecipe removes a bookmark for the logged-in user.
func (e *Engine) UnsaveRecipe(recipeID int64) error {
	email, err := e.sessionEmail()
	if err != nil {
		return err
	}
	return e.recipes.Unsave(email, recipeID)
}

// SavedRecipes returns the logged-in user's bookmarks.
func (e *Engine) SavedRecipes() ([]Recipe, error) {
	email, err := e.sessionEmail()
	if err != nil {
		return nil, err
	}
	list, err := e.recipes.ListSaved(email)
	if err != nil {
		return nil, err
	}
	return recipesFromInternal(list), nil
}

func (e *Engine) sessionEmail() (string, error) {
	s, err := e.auth.GetSession()
	if err != nil {
		return "", err
	}
	if s == nil || !s.IsLoggedIn {
		return "", ErrNotLoggedIn
	}
	return s.Email, nil
}

func userFromInternal(u *storage.User) User {
	return User{
		ID:             u.ID,
		Email:          u.Email,
		FullName:       u.FullName,
		Bio:            u.Bio,
		AvatarURL:      u.AvatarURL,
		BadgePrimary:   u.BadgePrimary,
		BadgeSecondary: u.BadgeSecondary,
		CreatedAt:      u.CreatedAt,
	}
}

func recipeFromInternal(r storage.Recipe) Recipe {
	return Recipe{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Creator:      r.Creator,
		CreatorType:  r.CreatorType,
		CreatorEmail: r.CreatorEmail,
		CookingTime:  r.CookingTime,
		Category:     r.Category,
		IsPrivate:    r.IsPrivate,
		Rating:       r.Rating,
		Calories:     r.Calories,
		Ingredients:  storage.DecodeList(r.Ingredients),
		Steps:        storage.DecodeList(r.Steps),
		Image:        r.Image,
	}
}

func recipesFromInternal(list []storage.Recipe) []Recipe {
	out := make([]Recipe, len(list))
	for i, r := range list {
		out[i] = recipeFromInternal(r)
	}
	return out
}
