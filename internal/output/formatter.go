package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"resepbunda"
)

type Format string

const (
	FormatJSON  Format = "json"
	FormatText  Format = "text"
	FormatHuman Format = "human"
)

type Formatter struct {
	format Format
	out    io.Writer
	err    io.Writer
}

// NewFormatter creates a new output formatter
func NewFormatter(format Format) *Formatter {
	return &Formatter{
		format: format,
		out:    os.Stdout,
		err:    os.Stderr,
	}
}

// NewFormatterWithWriters creates a formatter with custom output writers for testability
func NewFormatterWithWriters(format Format, out, errW io.Writer) *Formatter {
	return &Formatter{
		format: format,
		out:    out,
		err:    errW,
	}
}

// OutputRecipeList renders a recipe feed in the configured format.
func (f *Formatter) OutputRecipeList(list []resepbunda.Recipe) error {
	switch f.format {
	case FormatJSON:
		return json.NewEncoder(f.out).Encode(list)
	case FormatText:
		for _, r := range list {
			fmt.Fprintf(f.out, "id=%d\ttitle=%s\tcategory=%s\trating=%s\ttime=%s\n",
				r.ID, r.Title, r.Category, ratingText(r.Rating), r.CookingTime)
		}
		return nil
	case FormatHuman:
		if len(list) == 0 {
			fmt.Fprintln(f.out, "No recipes found.")
			return nil
		}
		for _, r := range list {
			fmt.Fprintf(f.out, "[%d] %s (%s, %s)", r.ID, r.Title, r.Category, r.CookingTime)
			if r.Rating != nil {
				fmt.Fprintf(f.out, " ★%.1f", *r.Rating)
			}
			if r.IsPrivate {
				fmt.Fprint(f.out, " [private]")
			}
			fmt.Fprintln(f.out)
			if r.Creator != "" {
				fmt.Fprintf(f.out, "    by %s\n", r.Creator)
			}
		}
		return nil
	}
	return fmt.Errorf("unknown format: %s", f.format)
}

// OutputRecipe renders a single recipe detail page.
func (f *Formatter) OutputRecipe(r *resepbunda.Recipe) error {
	switch f.format {
	case FormatJSON:
		return json.NewEncoder(f.out).Encode(r)
	case FormatText:
		fmt.Fprintf(f.out, "id=%d\n", r.ID)
		fmt.Fprintf(f.out, "title=%s\n", r.Title)
		fmt.Fprintf(f.out, "category=%s\n", r.Category)
		fmt.Fprintf(f.out, "cooking_time=%s\n", r.CookingTime)
		fmt.Fprintf(f.out, "rating=%s\n", ratingText(r.Rating))
		fmt.Fprintf(f.out, "ingredients=%s\n", strings.Join(r.Ingredients, "|"))
		fmt.Fprintf(f.out, "steps=%s\n", strings.Join(r.Steps, "|"))
		return nil
	case FormatHuman:
		fmt.Fprintf(f.out, "%s\n", r.Title)
		if r.Description != "" {
			fmt.Fprintf(f.out, "%s\n", r.Description)
		}
		if r.Creator != "" {
			fmt.Fprintf(f.out, "by %s (%s)\n", r.Creator, r.CreatorType)
		}
		fmt.Fprintf(f.out, "%s · %s", r.Category, r.CookingTime)
		if r.Rating != nil {
			fmt.Fprintf(f.out, " · ★%.1f", *r.Rating)
		}
		if r.Calories != "" {
			fmt.Fprintf(f.out, " · %s", r.Calories)
		}
		fmt.Fprintln(f.out)
		if len(r.Ingredients) > 0 {
			fmt.Fprintln(f.out, "\nIngredients:")
			for _, it := range r.Ingredients {
				fmt.Fprintf(f.out, "  - %s\n", it)
			}
		}
		if len(r.Steps) > 0 {
			fmt.Fprintln(f.out, "\nSteps:")
			for i, st := range r.Steps {
				fmt.Fprintf(f.out, "  %d. %s\n", i+1, st)
			}
		}
		return nil
	}
	return fmt.Errorf("unknown format: %s", f.format)
}

// OutputSession renders the current session state.
func (f *Formatter) OutputSession(s *resepbunda.Session) error {
	switch f.format {
	case FormatJSON:
		return json.NewEncoder(f.out).Encode(s)
	case FormatText:
		fmt.Fprintf(f.out, "logged_in=%t\n", s.IsLoggedIn)
		fmt.Fprintf(f.out, "email=%s\n", s.Email)
		return nil
	case FormatHuman:
		if s.IsLoggedIn {
			fmt.Fprintf(f.out, "Logged in as %s (since %s)\n", s.Email, s.LoggedInAt)
		} else {
			fmt.Fprintln(f.out, "Not logged in.")
		}
		return nil
	}
	return fmt.Errorf("unknown format: %s", f.format)
}

// OutputUser renders an account profile.
func (f *Formatter) OutputUser(u *resepbunda.User) error {
	switch f.format {
	case FormatJSON:
		return json.NewEncoder(f.out).Encode(u)
	case FormatText:
		fmt.Fprintf(f.out, "id=%d\n", u.ID)
		fmt.Fprintf(f.out, "email=%s\n", u.Email)
		fmt.Fprintf(f.out, "full_name=%s\n", u.FullName)
		return nil
	case FormatHuman:
		name := u.FullName
		if name == "" {
			name = u.Email
		}
		fmt.Fprintf(f.out, "%s <%s>\n", name, u.Email)
		if u.Bio != "" {
			fmt.Fprintf(f.out, "%s\n", u.Bio)
		}
		if u.BadgePrimary != "" || u.BadgeSecondary != "" {
			fmt.Fprintf(f.out, "Badges: %s %s\n", u.BadgePrimary, u.BadgeSecondary)
		}
		return nil
	}
	return fmt.Errorf("unknown format: %s", f.format)
}

// Message prints a status line in the configured format.
func (f *Formatter) Message(msg string) {
	switch f.format {
	case FormatJSON:
		json.NewEncoder(f.out).Encode(map[string]string{"message": msg})
	default:
		fmt.Fprintln(f.out, msg)
	}
}

// Warning prints a non-fatal warning to the error stream.
func (f *Formatter) Warning(format string, args ...any) {
	fmt.Fprintf(f.err, "Warning: "+format+"\n", args...)
}

func ratingText(r *float64) string {
	if r == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *r)
}
