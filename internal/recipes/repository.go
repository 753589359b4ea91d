// Package recipes implements the recipe repository: the public feed with
// its search/filter/sort support, recipe detail lookup, creation, and
// bookmarks.
package recipes

import (
	"errors"
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"resepbunda/internal/storage"
)

var (
	ErrEmptyTitle = errors.New("recipe title must not be empty")
	ErrNotFound   = errors.New("recipe not found")
)

// Sort selects the ordering applied on top of the default corpus order.
type Sort string

const (
	SortRecommended Sort = "recommended" // rating desc then newest, as stored
	SortRating      Sort = "rating"
	SortTime        Sort = "time"
	SortCalories    Sort = "calories"
)

// Filter narrows and orders the public feed. The zero value returns the
// whole feed in recommended order.
type Filter struct {
	Query    string // case-insensitive substring over title and category
	Category string // category id; "" or "all" matches everything
	Sort     Sort
}

// Draft holds the caller-supplied fields of a new recipe. Creator and
// CreatorEmail are display/name snapshots taken at creation time, not
// foreign keys.
type Draft struct {
	Title        string
	Description  string
	Creator      string
	CreatorType  string
	CreatorEmail string
	CookingTime  string
	Category     string
	IsPrivate    bool
	Rating       *float64
	Calories     string
	Ingredients  []string
	Steps        []string
	Image        string
}

// Repository provides recipe operations over the shared store.
type Repository struct {
	store  *storage.Store
	policy *bluemonday.Policy
	now    func() time.Time
}

// NewRepository constructs a repository. The store must already be
// initialized.
func NewRepository(store *storage.Store) *Repository {
	return &Repository{
		store:  store,
		policy: bluemonday.StrictPolicy(),
		now:    time.Now,
	}
}

// clean strips any HTML from user-entered text. The policy escapes
// entities while sanitizing, so unescape to keep plain text like
// "Mie & Bakso" intact.
func (r *Repository) clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(r.policy.Sanitize(s)))
}

// ListPublic returns the public feed (isPrivate=0) with the filter
// applied. The corpus arrives from the store ordered by rating then id
// descending; search, category filtering, and the alternate sorts that the
// screens offer are applied here.
func (r *Repository) ListPublic(f Filter) ([]storage.Recipe, error) {
	corpus, err := r.store.ListPublicRecipes()
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(f.Query))
	category := f.Category
	if category == "all" {
		category = ""
	}

	var result []storage.Recipe
	for _, rec := range corpus {
		if category != "" && rec.Category != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(rec.Title), query) &&
			!strings.Contains(strings.ToLower(rec.Category), query) {
			continue
		}
		result = append(result, rec)
	}

	switch f.Sort {
	case SortRating:
		sort.SliceStable(result, func(i, j int) bool {
			return ratingOf(result[i]) > ratingOf(result[j])
		})
	case SortTime:
		sort.SliceStable(result, func(i, j int) bool {
			return LeadingNumber(result[i].CookingTime) < LeadingNumber(result[j].CookingTime)
		})
	case SortCalories:
		sort.SliceStable(result, func(i, j int) bool {
			return LeadingNumber(result[i].Calories) < LeadingNumber(result[j].Calories)
		})
	}
	return result, nil
}

func ratingOf(r storage.Recipe) float64 {
	if r.Rating == nil {
		return 0
	}
	return *r.Rating
}

// GetByID returns one recipe or ErrNotFound.
func (r *Repository) GetByID(id int64) (*storage.Recipe, error) {
	rec, err := r.store.GetRecipeByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("recipe %d: %w", id, ErrNotFound)
	}
	return rec, nil
}

// Create validates and stores a new recipe, returning its id. Only the
// title is required; everything else falls back to the defaults the create
// screen uses. Blank ingredient and step entries are dropped before
// serialization.
func (r *Repository) Create(d Draft) (int64, error) {
	title := r.clean(d.Title)
	if title == "" {
		return 0, ErrEmptyTitle
	}

	creatorType := r.clean(d.CreatorType)
	if creatorType == "" {
		creatorType = "Home Cook"
	}
	cookingTime := strings.TrimSpace(d.CookingTime)
	if cookingTime == "" {
		cookingTime = "- mnt"
	}

	ingredients := make([]string, 0, len(d.Ingredients))
	for _, it := range d.Ingredients {
		ingredients = append(ingredients, r.clean(it))
	}
	steps := make([]string, 0, len(d.Steps))
	for _, st := range d.Steps {
		steps = append(steps, r.clean(st))
	}

	rec := &storage.Recipe{
		Title:        title,
		Description:  r.clean(d.Description),
		Creator:      r.clean(d.Creator),
		CreatorType:  creatorType,
		CreatorEmail: d.CreatorEmail,
		CookingTime:  cookingTime,
		Category:     d.Category,
		IsPrivate:    d.IsPrivate,
		Rating:       d.Rating,
		Calories:     d.Calories,
		Ingredients:  storage.EncodeList(ingredients),
		Steps:        storage.EncodeList(steps),
		Image:        d.Image,
	}
	return r.store.InsertRecipe(rec)
}

// ListByCreator returns every recipe created under the given email,
// private ones included.
func (r *Repository) ListByCreator(email string) ([]storage.Recipe, error) {
	return r.store.ListRecipesByCreator(email)
}

// Save bookmarks a recipe for a user. Saving twice leaves one bookmark.
func (r *Repository) Save(userEmail string, recipeID int64) error {
	if _, err := r.GetByID(recipeID); err != nil {
		return err
	}
	return r.store.SaveRecipe(userEmail, recipeID, r.now().UTC().Format(time.RFC3339))
}

// Unsave removes a bookmark. Unsaving a recipe that was never saved is a
// no-op.
func (r *Repository) Unsave(userEmail string, recipeID int64) error {
	return r.store.UnsaveRecipe(userEmail, recipeID)
}

// ListSaved returns a user's bookmarked recipes, most recently saved
// first.
func (r *Repository) ListSaved(userEmail string) ([]storage.Recipe, error) {
	return r.store.ListSavedRecipes(userEmail)
}
