package storage

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "modernc.org/sqlite"
)

// Store wraps the single SQLite handle shared by every data-access
// operation in the process. All parameters are bound positionally; no
// statement text is ever built from user input.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// Session is the singleton device session (row id=1).
type Session struct {
	IsLoggedIn bool
	Email      string
	LoggedInAt string
}

// User is a registered account row.
type User struct {
	ID             int64
	Email          string
	Password       string
	FullName       string
	Bio            string
	AvatarURL      string
	BadgePrimary   string
	BadgeSecondary string
	CreatedAt      string
}

// Recipe is a recipe row. Ingredients and Steps hold the serialized list
// text as stored; use DecodeList to get the ordered []string back.
type Recipe struct {
	ID           int64
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
	Ingredients  string
	Steps        string
	Image        string
}

// ProfileUpdate carries the mutable user profile columns. Nil fields are
// left untouched.
type ProfileUpdate struct {
	FullName       *string
	Bio            *string
	AvatarURL      *string
	BadgePrimary   *string
	BadgeSecondary *string
}

// Stmt is one statement of an atomic batch.
type Stmt struct {
	SQL  string
	Args []any
}

// Open opens (or creates) the database file. The handle is shared for the
// process lifetime; callers must run Initialize before any other method.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_time_format=sqlite")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &Store{db: db, log: slog.Default()}, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Initialize brings the database up to the current schema and baseline
// data. It is safe to call on every start at any schema vintage: base
// tables are CREATE IF NOT EXISTS, column migrations swallow "duplicate
// column name", the session row is inserted only when absent, and seeding
// runs only while the recipes table is empty. A failure in base table
// creation is fatal; the caller must not proceed.
func (s *Store) Initialize(seed bool) error {
	if _, err := s.db.Exec(Schema); err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}

	for _, m := range Migrations {
		for _, stmt := range m.Statements {
			if _, err := s.db.Exec(stmt); err != nil {
				if !isDuplicateColumn(err) {
					return fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
				}
				s.log.Debug("migration already applied",
					"version", m.Version, "name", m.Name)
			}
		}
	}

	if err := s.ensureSessionRow(); err != nil {
		return err
	}

	if seed {
		if err := s.seedRecipes(); err != nil {
			return err
		}
	}
	return nil
}

// isDuplicateColumn reports whether err is SQLite's rejection of ALTER
// TABLE ... ADD COLUMN for a column that already exists. There is no
// portable "IF NOT EXISTS" for columns, so this is the re-run signal.
func isDuplicateColumn(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate column name")
}

func (s *Store) ensureSessionRow() error {
	var cnt int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM session WHERE id = 1").Scan(&cnt); err != nil {
		return fmt.Errorf("check session row: %w", err)
	}
	if cnt > 0 {
		return nil
	}
	if _, err := s.db.Exec(
		"INSERT INTO session (id, is_logged_in, email, logged_in_at) VALUES (1, 0, '', '')",
	); err != nil {
		return fmt.Errorf("create session row: %w", err)
	}
	return nil
}

// Exec runs a single statement.
func (s *Store) Exec(query string, args ...any) error {
	_, err := s.db.Exec(query, args...)
	return err
}

// Batch runs the given statements inside one transaction. Either all of
// them take effect or none do.
func (s *Store) Batch(stmts []Stmt) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	for _, st := range stmts {
		if _, err := tx.Exec(st.SQL, st.Args...); err != nil {
			tx.Rollback()
			return fmt.Errorf("batch statement: %w", err)
		}
	}
	return tx.Commit()
}

// Session state

// GetSession reads the singleton session row. It returns nil only when the
// row is missing entirely, which should not happen after Initialize.
func (s *Store) GetSession() (*Session, error) {
	var sess Session
	var loggedIn int
	var at sql.NullString
	err := s.db.QueryRow(
		"SELECT is_logged_in, email, logged_in_at FROM session WHERE id = 1",
	).Scan(&loggedIn, &sess.Email, &at)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	sess.IsLoggedIn = loggedIn != 0
	sess.LoggedInAt = at.String
	return &sess, nil
}

// SetLoggedIn marks the session as logged in for the given email.
func (s *Store) SetLoggedIn(email, at string) error {
	if _, err := s.db.Exec(
		"UPDATE session SET is_logged_in = 1, email = ?, logged_in_at = ? WHERE id = 1",
		email, at,
	); err != nil {
		return fmt.Errorf("set logged in: %w", err)
	}
	return nil
}

// ClearSession resets the session to logged out. Idempotent.
func (s *Store) ClearSession() error {
	if _, err := s.db.Exec(
		"UPDATE session SET is_logged_in = 0, email = '', logged_in_at = '' WHERE id = 1",
	); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Users

// CreateUser inserts a new account and returns its id.
func (s *Store) CreateUser(email, password, fullName, createdAt string) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO users (email, password, fullName, created_at) VALUES (?, ?, ?, ?)",
		email, password, fullName, createdAt,
	)
	if err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}
	return res.LastInsertId()
}

// GetUserByEmail returns the user with the given email, or nil when absent.
func (s *Store) GetUserByEmail(email string) (*User, error) {
	var u User
	var fullName, bio, avatar, badge1, badge2 sql.NullString
	err := s.db.QueryRow(
		`SELECT id, email, password, fullName, bio, avatarUrl, badgePrimary, badgeSecondary, created_at
		 FROM users WHERE email = ? LIMIT 1`, email,
	).Scan(&u.ID, &u.Email, &u.Password, &fullName, &bio, &avatar, &badge1, &badge2, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	u.FullName = fullName.String
	u.Bio = bio.String
	u.AvatarURL = avatar.String
	u.BadgePrimary = badge1.String
	u.BadgeSecondary = badge2.String
	return &u, nil
}

// UpdateUserProfile updates the mutable profile columns of one user.
// Fields left nil in the update are not touched.
func (s *Store) UpdateUserProfile(id int64, p ProfileUpdate) error {
	var sets []string
	var args []any
	add := func(col string, v *string) {
		if v != nil {
			sets = append(sets, col+" = ?")
			args = append(args, *v)
		}
	}
	add("fullName", p.FullName)
	add("bio", p.Bio)
	add("avatarUrl", p.AvatarURL)
	add("badgePrimary", p.BadgePrimary)
	add("badgeSecondary", p.BadgeSecondary)
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	if _, err := s.db.Exec(
		"UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...,
	); err != nil {
		return fmt.Errorf("update user profile: %w", err)
	}
	return nil
}

// Recipes

const recipeColumns = `id, title, description, creator, creatorType, creator_email,
	cookingTime, category, isPrivate, rating, calories, ingredients, steps, image`

// InsertRecipe stores a new recipe and returns its id.
func (s *Store) InsertRecipe(r *Recipe) (int64, error) {
	isPrivate := 0
	if r.IsPrivate {
		isPrivate = 1
	}
	res, err := s.db.Exec(
		`INSERT INTO recipes (title, description, creator, creatorType, creator_email,
		   cookingTime, category, isPrivate, rating, calories, ingredients, steps, image)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Title, r.Description, r.Creator, r.CreatorType, r.CreatorEmail,
		r.CookingTime, r.Category, isPrivate, r.Rating, r.Calories,
		r.Ingredients, r.Steps, nullable(r.Image),
	)
	if err != nil {
		return 0, fmt.Errorf("insert recipe: %w", err)
	}
	return res.LastInsertId()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// GetRecipeByID returns a single recipe, or nil when absent.
func (s *Store) GetRecipeByID(id int64) (*Recipe, error) {
	row := s.db.QueryRow("SELECT "+recipeColumns+" FROM recipes WHERE id = ? LIMIT 1", id)
	r, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get recipe %d: %w", id, err)
	}
	return r, nil
}

// ListPublicRecipes returns every recipe visible in the public feed,
// highest rated first, newest first among equals. SQLite sorts NULLs last
// under DESC, so unrated recipes trail the rated ones.
func (s *Store) ListPublicRecipes() ([]Recipe, error) {
	rows, err := s.db.Query(
		"SELECT " + recipeColumns + " FROM recipes WHERE isPrivate = 0 ORDER BY rating DESC, id DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("list public recipes: %w", err)
	}
	return collectRecipes(rows)
}

// ListRecipesByCreator returns all recipes created under the given email,
// private ones included, newest first.
func (s *Store) ListRecipesByCreator(email string) ([]Recipe, error) {
	rows, err := s.db.Query(
		"SELECT "+recipeColumns+" FROM recipes WHERE creator_email = ? ORDER BY id DESC", email,
	)
	if err != nil {
		return nil, fmt.Errorf("list recipes by creator: %w", err)
	}
	return collectRecipes(rows)
}

// CountRecipes returns the total number of recipe rows.
func (s *Store) CountRecipes() (int, error) {
	var cnt int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM recipes").Scan(&cnt); err != nil {
		return 0, fmt.Errorf("count recipes: %w", err)
	}
	return cnt, nil
}

// Bookmarks

// SaveRecipe bookmarks a recipe for a user. Saving an already-saved recipe
// is a no-op; the UNIQUE(user_email, recipe_id) constraint prevents
// duplicate bookmarks.
func (s *Store) SaveRecipe(userEmail string, recipeID int64, createdAt string) error {
	if _, err := s.db.Exec(
		"INSERT OR IGNORE INTO saved_recipes (user_email, recipe_id, created_at) VALUES (?, ?, ?)",
		userEmail, recipeID, createdAt,
	); err != nil {
		return fmt.Errorf("save recipe: %w", err)
	}
	return nil
}

// UnsaveRecipe removes a bookmark. Removing a missing bookmark is a no-op.
func (s *Store) UnsaveRecipe(userEmail string, recipeID int64) error {
	if _, err := s.db.Exec(
		"DELETE FROM saved_recipes WHERE user_email = ? AND recipe_id = ?",
		userEmail, recipeID,
	); err != nil {
		return fmt.Errorf("unsave recipe: %w", err)
	}
	return nil
}

// ListSavedRecipes returns a user's bookmarked recipes, most recently
// saved first.
func (s *Store) ListSavedRecipes(userEmail string) ([]Recipe, error) {
	rows, err := s.db.Query(
		`SELECT r.id, r.title, r.description, r.creator, r.creatorType, r.creator_email,
		        r.cookingTime, r.category, r.isPrivate, r.rating, r.calories,
		        r.ingredients, r.steps, r.image
		 FROM recipes r
		 JOIN saved_recipes sr ON sr.recipe_id = r.id
		 WHERE sr.user_email = ?
		 ORDER BY sr.id DESC`, userEmail,
	)
	if err != nil {
		return nil, fmt.Errorf("list saved recipes: %w", err)
	}
	return collectRecipes(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row rowScanner) (*Recipe, error) {
	var r Recipe
	var desc, creator, ctype, cemail, ctime, category, calories, ingredients, steps, image sql.NullString
	var isPrivate int
	var rating sql.NullFloat64
	err := row.Scan(&r.ID, &r.Title, &desc, &creator, &ctype, &cemail,
		&ctime, &category, &isPrivate, &rating, &calories, &ingredients, &steps, &image)
	if err != nil {
		return nil, err
	}
	r.Description = desc.String
	r.Creator = creator.String
	r.CreatorType = ctype.String
	r.CreatorEmail = cemail.String
	r.CookingTime = ctime.String
	r.Category = category.String
	r.IsPrivate = isPrivate != 0
	if rating.Valid {
		v := rating.Float64
		r.Rating = &v
	}
	r.Calories = calories.String
	r.Ingredients = ingredients.String
	r.Steps = steps.String
	r.Image = image.String
	return &r, nil
}

func collectRecipes(rows *sql.Rows) ([]Recipe, error) {
	defer rows.Close()
	var recipes []Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipes = append(recipes, *r)
	}
	return recipes, rows.Err()
}
