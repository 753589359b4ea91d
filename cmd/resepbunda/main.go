package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"resepbunda"
	"resepbunda/internal/output"
	"resepbunda/internal/storage"
)

var (
	configPath   string
	cfg          *storage.Config
	outputFormat string
)

func loadConfig() error {
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	// Missing config file is fine; defaults apply.
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg = storage.DefaultConfig()
		return nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	cfg = storage.DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func openEngine() (*resepbunda.Engine, error) {
	return resepbunda.NewEngine(resepbunda.EngineConfig{
		DBPath:   cfg.Database.Path,
		SkipSeed: !cfg.Seed.Enabled,
	})
}

func formatter() *output.Formatter {
	return output.NewFormatter(output.Format(outputFormat))
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "resepbunda",
		Short: "Resep Bunda recipe store - local recipe sharing backed by SQLite",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "human", "output format: json, text, human")

	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(registerCmd())
	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(whoamiCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(createCmd())
	rootCmd.AddCommand(myRecipesCmd())
	rootCmd.AddCommand(saveCmd())
	rootCmd.AddCommand(unsaveCmd())
	rootCmd.AddCommand(savedCmd())
	rootCmd.AddCommand(profileCmd())
	rootCmd.AddCommand(initConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create or migrate the database and seed sample recipes",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := openEngine()
			if err != nil {
				return err
			}
			defer engine.Close()
			formatter().Message("Database ready: " + cfg.Database.Path)
			return nil
		},
	}
}

func registerCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "register <email> <password>",
		Short: "Create a new account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := openEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			if _, err := engine.Register(name, args[0], args[1]); err != nil {
				return err
			}
			formatter().Message("Account created. Log in to continue.")
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "full name for the new account")
	return cmd
}

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Log in and open the device session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := openEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			if err := engine.Login(args[0], args[1]); err != nil {
				return err
			}
			sess, err := engine.Session()
			if err != nil {
				return err
			}
			return formatter().OutputSession(sess)
		},
	}
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out of the device session",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := openEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			if err := engine.Logout(); err != nil {
				return err
			}
			formatter().Message("Logged out.")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := openEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			sess, err := engine.Session()
			if err != nil {
				return err
			}
			if sess == nil {
				formatter().Message("No session row. Run `resepbunda init` first.")
				return nil
			}
			return formatter().OutputSession(sess)
		},
	}
}

func listCmd() *cobra.Command {
	var search, category, sortBy string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Browse the public recipe feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := openEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			list, err := engine.ListPublic(resepbunda.Filter{
				Query:    search,
				Category: category,
				Sort:     resepbunda.Sort(sortBy),
			})
			if err != nil {
				return err
			}
			return formatter().OutputRecipeList(list)
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "search titles and categories")
	cmd.Flags().StringVar(&category, "category", "all", "category filter")
	cmd.Flags().StringVar(&sortBy, "sort", "recommended", "sort: recommended, rating, time, calories")
	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a recipe detail page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid recipe id %q", args[0])
			}
			engine, err := openEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			rec, err := engine.Recipe(id)
			if err != nil {
				return err
			}
			return formatter().OutputRecipe(rec)
		},
	}
}

func createCmd() *cobra.Command {
	var d resepbunda.Draft
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a recipe under the logged-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := openEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			id, err := engine.CreateRecipe(d)
			if err != nil {
				return err
			}
			formatter().Message(fmt.Sprintf("Recipe saved with id %d.", id))
			return nil
		},
	}
	cmd.Flags().StringVarP(&d.Title, "title", "t", "", "recipe title (required)")
	cmd.Flags().StringVarP(&d.Description, "description", "d", "", "short description")
	cmd.Flags().StringVar(&d.CookingTime, "time", "", `cooking time, e.g. "45 mnt"`)
	cmd.Flags().StringVar(&d.Category, "category", "special", "category id")
	cmd.Flags().StringVar(&d.Calories, "calories", "", `calories, e.g. "320 kcal"`)
	cmd.Flags().BoolVar(&d.IsPrivate, "private", false, "hide from the public feed")
	cmd.Flags().StringArrayVarP(&d.Ingredients, "ingredient", "i", nil, "ingredient (repeatable)")
	cmd.Flags().StringArrayVar(&d.Steps, "step", nil, "step (repeatable)")
	cmd.Flags().StringVar(&d.Image, "image", "", "image URI")
	return cmd
}

func myRecipesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List the logged-in account's own recipes, private included",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := openEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			list, err := engine.MyRecipes()
			if err != nil {
				return err
			}
			return formatter().OutputRecipeList(list)
		},
	}
}

func saveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <id>",
		Short: "Bookmark a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid recipe id %q", args[0])
			}
			engine, err := openEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			if err := engine.SaveRecipe(id); err != nil {
				return err
			}
			formatter().Message("Saved.")
			return nil
		},
	}
}

func unsaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unsave <id>",
		Short: "Remove a bookmark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid recipe id %q", args[0])
			}
			engine, err := openEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			if err := engine.UnsaveRecipe(id); err != nil {
				return err
			}
			formatter().Message("Removed.")
			return nil
		},
	}
}

func savedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "saved",
		Short: "List bookmarked recipes",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := openEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			list, err := engine.SavedRecipes()
			if err != nil {
				return err
			}
			return formatter().OutputRecipeList(list)
		},
	}
}

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit the logged-in account's profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := openEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			u, err := engine.CurrentUser()
			if err != nil {
				return err
			}
			return formatter().OutputUser(u)
		},
	}
	cmd.AddCommand(profileSetCmd())
	return cmd
}

func profileSetCmd() *cobra.Command {
	var fullName, bio, avatar, badge1, badge2 string
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := openEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			var p resepbunda.ProfileUpdate
			if cmd.Flags().Changed("name") {
				p.FullName = &fullName
			}
			if cmd.Flags().Changed("bio") {
				p.Bio = &bio
			}
			if cmd.Flags().Changed("avatar") {
				p.AvatarURL = &avatar
			}
			if cmd.Flags().Changed("badge") {
				p.BadgePrimary = &badge1
			}
			if cmd.Flags().Changed("badge2") {
				p.BadgeSecondary = &badge2
			}
			if err := engine.UpdateProfile(p); err != nil {
				return err
			}
			formatter().Message("Profile updated.")
			return nil
		},
	}
	cmd.Flags().StringVar(&fullName, "name", "", "display name")
	cmd.Flags().StringVar(&bio, "bio", "", "short bio")
	cmd.Flags().StringVar(&avatar, "avatar", "", "avatar URI")
	cmd.Flags().StringVar(&badge1, "badge", "", "primary badge")
	cmd.Flags().StringVar(&badge2, "badge2", "", "secondary badge")
	return cmd
}

func initConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if path == "" {
				path = "./config/config.yaml"
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config already exists at %s", path)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			data, err := yaml.Marshal(storage.DefaultConfig())
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return err
			}
			formatter().Message("Wrote " + path)
			return nil
		},
	}
}
