package storage

import (
	_ "embed"
	"fmt"

	"github.com/BurntSushi/toml"
)

//go:embed seeds.toml
var seedsTOML []byte

// SeedRecipe is one entry of the embedded sample catalog.
type SeedRecipe struct {
	Title       string   `toml:"title"`
	Description string   `toml:"description"`
	Creator     string   `toml:"creator"`
	CreatorType string   `toml:"creator_type"`
	CookingTime string   `toml:"cooking_time"`
	Category    string   `toml:"category"`
	Rating      float64  `toml:"rating"`
	Calories    string   `toml:"calories"`
	Ingredients []string `toml:"ingredients"`
	Steps       []string `toml:"steps"`
}

type seedCatalog struct {
	Recipes []SeedRecipe `toml:"recipes"`
}

// SeedRecipes decodes the embedded sample catalog.
func SeedRecipes() ([]SeedRecipe, error) {
	var cat seedCatalog
	if err := toml.Unmarshal(seedsTOML, &cat); err != nil {
		return nil, fmt.Errorf("decode seed catalog: %w", err)
	}
	return cat.Recipes, nil
}

// seedRecipes inserts the sample catalog, but only while the recipes table
// is completely empty. Any existing row, seeded or user-created, disables
// seeding forever, so restarts never duplicate the samples. The inserts
// run as one atomic batch: a crash mid-seed leaves the table empty and the
// next start retries cleanly.
func (s *Store) seedRecipes() error {
	cnt, err := s.CountRecipes()
	if err != nil {
		return err
	}
	if cnt > 0 {
		return nil
	}

	seeds, err := SeedRecipes()
	if err != nil {
		return err
	}

	stmts := make([]Stmt, 0, len(seeds))
	for _, sr := range seeds {
		rating := sr.Rating
		stmts = append(stmts, Stmt{
			SQL: `INSERT INTO recipes (title, description, creator, creatorType, creator_email,
			        cookingTime, category, isPrivate, rating, calories, ingredients, steps)
			      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			Args: []any{
				sr.Title, sr.Description, sr.Creator, sr.CreatorType, nil,
				sr.CookingTime, sr.Category, 0, rating, sr.Calories,
				EncodeList(sr.Ingredients), EncodeList(sr.Steps),
			},
		})
	}
	if err := s.Batch(stmts); err != nil {
		return fmt.Errorf("seed recipes: %w", err)
	}
	return nil
}
