package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"resepbunda"
)

func render(t *testing.T, format Format, fn func(f *Formatter) error) string {
	t.Helper()
	var out, errW bytes.Buffer
	f := NewFormatterWithWriters(format, &out, &errW)
	if err := fn(f); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return out.String()
}

func sampleRecipe() resepbunda.Recipe {
	rating := 4.8
	return resepbunda.Recipe{
		ID:          1,
		Title:       "Nasi Goreng",
		Category:    "breakfast",
		CookingTime: "20 mnt",
		Creator:     "Bunda Sari",
		CreatorType: "Home Cook",
		Rating:      &rating,
		Ingredients: []string{"2 piring nasi", "1 butir telur"},
		Steps:       []string{"Tumis", "Aduk"},
	}
}

func TestOutputRecipeListJSON(t *testing.T) {
	got := render(t, FormatJSON, func(f *Formatter) error {
		return f.OutputRecipeList([]resepbunda.Recipe{sampleRecipe()})
	})

	var decoded []resepbunda.Recipe
	if err := json.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Title != "Nasi Goreng" {
		t.Errorf("unexpected decoded output: %+v", decoded)
	}
}

func TestOutputRecipeListText(t *testing.T) {
	got := render(t, FormatText, func(f *Formatter) error {
		return f.OutputRecipeList([]resepbunda.Recipe{sampleRecipe()})
	})
	if !strings.Contains(got, "id=1") || !strings.Contains(got, "title=Nasi Goreng") {
		t.Errorf("text output missing fields: %q", got)
	}
}

func TestOutputRecipeListHumanEmpty(t *testing.T) {
	got := render(t, FormatHuman, func(f *Formatter) error {
		return f.OutputRecipeList(nil)
	})
	if !strings.Contains(got, "No recipes found.") {
		t.Errorf("empty feed message missing: %q", got)
	}
}

func TestOutputRecipeHuman(t *testing.T) {
	r := sampleRecipe()
	got := render(t, FormatHuman, func(f *Formatter) error {
		return f.OutputRecipe(&r)
	})
	for _, want := range []string{"Nasi Goreng", "by Bunda Sari (Home Cook)", "Ingredients:", "1. Tumis"} {
		if !strings.Contains(got, want) {
			t.Errorf("human output missing %q:\n%s", want, got)
		}
	}
}

func TestOutputSession(t *testing.T) {
	loggedOut := &resepbunda.Session{}
	got := render(t, FormatHuman, func(f *Formatter) error {
		return f.OutputSession(loggedOut)
	})
	if !strings.Contains(got, "Not logged in.") {
		t.Errorf("logged-out session output wrong: %q", got)
	}

	loggedIn := &resepbunda.Session{IsLoggedIn: true, Email: "bunda@example.com", LoggedInAt: "2026-08-31T10:00:00Z"}
	got = render(t, FormatText, func(f *Formatter) error {
		return f.OutputSession(loggedIn)
	})
	if !strings.Contains(got, "logged_in=true") || !strings.Contains(got, "email=bunda@example.com") {
		t.Errorf("session text output wrong: %q", got)
	}
}

func TestUnknownFormat(t *testing.T) {
	var out bytes.Buffer
	f := NewFormatterWithWriters(Format("yaml"), &out, &out)
	if err := f.OutputRecipeList(nil); err == nil {
		t.Error("expected error for unknown format")
	}
}
