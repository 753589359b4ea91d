package resepbunda

// EngineConfig configures the resepbunda data engine.
type EngineConfig struct {
	DBPath   string
	SkipSeed bool // when true, never insert the sample recipes
}

// Session is the single current login state of the app instance.
type Session struct {
	IsLoggedIn bool   `json:"is_logged_in"`
	Email      string `json:"email"`
	LoggedInAt string `json:"logged_in_at,omitempty"`
}

// User is a registered account. The stored password is never exposed here.
type User struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	FullName       string `json:"full_name,omitempty"`
	Bio            string `json:"bio,omitempty"`
	AvatarURL      string `json:"avatar_url,omitempty"`
	BadgePrimary   string `json:"badge_primary,omitempty"`
	BadgeSecondary string `json:"badge_secondary,omitempty"`
	CreatedAt      string `json:"created_at"`
}

// Recipe is a recipe with its list fields decoded.
type Recipe struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Creator      string   `json:"creator,omitempty"`
	CreatorType  string   `json:"creator_type,omitempty"`
	CreatorEmail string   `json:"creator_email,omitempty"`
	CookingTime  string   `json:"cooking_time,omitempty"`
	Category     string   `json:"category,omitempty"`
	IsPrivate    bool     `json:"is_private"`
	Rating       *float64 `json:"rating,omitempty"`
	Calories     string   `json:"calories,omitempty"`
	Ingredients  []string `json:"ingredients"`
	Steps        []string `json:"steps"`
	Image        string   `json:"image,omitempty"`
}

// Sort selects the feed ordering.
type Sort string

const (
	SortRecommended Sort = "recommended"
	SortRating      Sort = "rating"
	SortTime        Sort = "time"
	SortCalories    Sort = "calories"
)

// Filter narrows and orders the public feed. The zero value returns the
// whole feed in recommended order.
type Filter struct {
	Query    string `json:"query,omitempty"`
	Category string `json:"category,omitempty"`
	Sort     Sort   `json:"sort,omitempty"`
}

// Draft holds the caller-supplied fields of a recipe being created. The
// creator snapshot is taken from the current session, not from the draft.
type Draft struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	CookingTime string   `json:"cooking_time,omitempty"`
	Category    string   `json:"category,omitempty"`
	IsPrivate   bool     `json:"is_private,omitempty"`
	Calories    string   `json:"calories,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	Steps       []string `json:"steps,omitempty"`
	Image       string   `json:"image,omitempty"`
}

// ProfileUpdate carries profile fields to change. Nil fields are left as
// they are.
type ProfileUpdate struct {
	FullName       *string `json:"full_name,omitempty"`
	Bio            *string `json:"bio,omitempty"`
	AvatarURL      *string `json:"avatar_url,omitempty"`
	BadgePrimary   *string `json:"badge_primary,omitempty"`
	BadgeSecondary *string `json:"badge_secondary,omitempty"`
}

// Category is one entry of the fixed recipe category set.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Categories is the fixed category set. "all" is a pseudo-category used
// only for filtering, never stored on a recipe.
var Categories = []Category{
	{ID: "all", Name: "Semua"},
	{ID: "breakfast", Name: "Sarapan"},
	{ID: "lunch", Name: "Makan Siang"},
	{ID: "dinner", Name: "Makan Malam"},
	{ID: "snack", Name: "Camilan"},
	{ID: "mpasi", Name: "MPASI"},
	{ID: "healthy", Name: "Sehat"},
	{ID: "traditional", Name: "Tradisional"},
	{ID: "special", Name: "Spesial"},
	{ID: "dessert", Name: "Dessert"},
}
