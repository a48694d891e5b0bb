package recipemd

import (
	"errors"
	"os"
	"testing"
)

func parseFixture(t *testing.T, name string) *Recipe {
	t.Helper()
	src, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("Failed to read fixture: %v", err)
	}
	r, err := Parse(string(src))
	if err != nil {
		t.Fatalf("Parse(%s) failed: %v", name, err)
	}
	return r
}

func TestParseGuacamole(t *testing.T) {
	r := parseFixture(t, "guacamole.md")

	if r.Title != "Guacamole" {
		t.Errorf("title = %q, want %q", r.Title, "Guacamole")
	}
	if r.Description != "" {
		t.Errorf("description = %q, want empty", r.Description)
	}
	if len(r.Ingredients) != 4 {
		t.Fatalf("got %d ingredients, want 4", len(r.Ingredients))
	}

	want := []Ingredient{
		{Name: "avocado", Amount: &Amount{Factor: dec("1")}},
		{Name: "salt", Amount: &Amount{Factor: dec("0.5"), Unit: "teaspoon"}},
		{Name: "red pepper flakes", Amount: &Amount{Factor: dec("1.5"), Unit: "pinches"}},
		{Name: "lemon juice"},
	}
	for i, w := range want {
		if !r.Ingredients[i].Equal(w) {
			t.Errorf("ingredient %d = %+v, want %+v", i, r.Ingredients[i], w)
		}
	}

	if r.Instructions != "Mash and season." {
		t.Errorf("instructions = %q, want %q", r.Instructions, "Mash and season.")
	}
}

func TestParseFlammkuchen(t *testing.T) {
	r := parseFixture(t, "flammkuchen.md")

	if r.Title != "Flammkuchen" {
		t.Errorf("title = %q, want %q", r.Title, "Flammkuchen")
	}
	// Inline markup in the description survives verbatim.
	if r.Description != "A _very_ crispy tarte from the Alsace." {
		t.Errorf("description = %q", r.Description)
	}

	wantTags := []string{"vegetarian", "oven"}
	if len(r.Tags) != len(wantTags) {
		t.Fatalf("tags = %v, want %v", r.Tags, wantTags)
	}
	for i, tag := range wantTags {
		if r.Tags[i] != tag {
			t.Errorf("tag %d = %q, want %q", i, r.Tags[i], tag)
		}
	}

	wantYields := []Amount{
		{Factor: dec("1"), Unit: "tarte"},
		{Factor: dec("4"), Unit: "servings"},
	}
	if len(r.Yields) != len(wantYields) {
		t.Fatalf("yields = %v, want %v", r.Yields, wantYields)
	}
	for i, y := range wantYields {
		if !r.Yields[i].Equal(y) {
			t.Errorf("yield %d = %v, want %v", i, r.Yields[i], y)
		}
	}

	if len(r.Ingredients) != 2 {
		t.Fatalf("got %d top-level ingredients, want 2", len(r.Ingredients))
	}
	if len(r.Groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(r.Groups))
	}

	dough := r.Groups[0]
	if dough.Title != "Dough" {
		t.Errorf("group 0 title = %q, want %q", dough.Title, "Dough")
	}
	if len(dough.Ingredients) != 3 || len(dough.Groups) != 1 {
		t.Fatalf("Dough has %d ingredients and %d subgroups, want 3 and 1",
			len(dough.Ingredients), len(dough.Groups))
	}

	variation := dough.Groups[0]
	if variation.Title != "Variation" {
		t.Errorf("subgroup title = %q, want %q", variation.Title, "Variation")
	}
	if len(variation.Ingredients) != 1 {
		t.Fatalf("Variation has %d ingredients, want 1", len(variation.Ingredients))
	}
	starter := variation.Ingredients[0]
	if starter.Name != "sourdough starter" || starter.Link != "starter.md" {
		t.Errorf("linked ingredient = %+v", starter)
	}
	if starter.Amount == nil || !starter.Amount.Equal(Amount{Factor: dec("0.5")}) {
		t.Errorf("linked ingredient amount = %v, want 0.5", starter.Amount)
	}

	if r.Groups[1].Title != "Topping" {
		t.Errorf("group 1 title = %q, want %q", r.Groups[1].Title, "Topping")
	}

	// Leaf traversal is document order: own-level ingredients before groups.
	leaves := r.LeafIngredients()
	wantOrder := []string{
		"red onion", "crème fraîche",
		"flour", "olive oil", "water", "sourdough starter",
		"bacon",
	}
	if len(leaves) != len(wantOrder) {
		t.Fatalf("got %d leaf ingredients, want %d", len(leaves), len(wantOrder))
	}
	for i, name := range wantOrder {
		if leaves[i].Name != name {
			t.Errorf("leaf %d = %q, want %q", i, leaves[i].Name, name)
		}
	}

	wantInstructions := "Roll out the dough **thinly**.\n\nBake at 250 °C for 12 minutes."
	if r.Instructions != wantInstructions {
		t.Errorf("instructions = %q, want %q", r.Instructions, wantInstructions)
	}
}

func TestParseGroupNesting(t *testing.T) {
	src := `# Nesting
---
- *1* base

## A

- *2* a1

#### Deep

- *3* deep1

## B

- *4* b1
`
	r, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(r.Ingredients) != 1 || r.Ingredients[0].Name != "base" {
		t.Fatalf("top-level ingredients = %+v", r.Ingredients)
	}
	if len(r.Groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(r.Groups))
	}
	a := r.Groups[0]
	if a.Title != "A" || len(a.Ingredients) != 1 || len(a.Groups) != 1 {
		t.Fatalf("group A = %+v", a)
	}
	// A level-4 heading nests under the preceding level-2 group; the next
	// level-2 heading pops back to the top.
	if a.Groups[0].Title != "Deep" || a.Groups[0].Ingredients[0].Name != "deep1" {
		t.Errorf("nested group = %+v", a.Groups[0])
	}
	if r.Groups[1].Title != "B" {
		t.Errorf("group 1 = %+v", r.Groups[1])
	}
}

func TestParseYieldsWithDecimalComma(t *testing.T) {
	src := `# Dough

**1,5 kg, 4 servings**

---

- *1* thing
`
	r, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(r.Yields) != 2 {
		t.Fatalf("yields = %v, want 2 entries", r.Yields)
	}
	// The comma inside "1,5" is a decimal separator, not a list separator.
	if !r.Yields[0].Equal(Amount{Factor: dec("1.5"), Unit: "kg"}) {
		t.Errorf("yield 0 = %v, want 1.5 kg", r.Yields[0])
	}
	if !r.Yields[1].Equal(Amount{Factor: dec("4"), Unit: "servings"}) {
		t.Errorf("yield 1 = %v, want 4 servings", r.Yields[1])
	}
}

func TestParseLinkedIngredients(t *testing.T) {
	src := `# Links
---
- *100 g* [butter](./butter.md)
- [egg](./egg.md) whites
- see [note](./note.md)

  second paragraph
`
	r, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(r.Ingredients) != 3 {
		t.Fatalf("got %d ingredients, want 3", len(r.Ingredients))
	}

	butter := r.Ingredients[0]
	if butter.Name != "butter" || butter.Link != "./butter.md" {
		t.Errorf("lone link should become a linked ingredient, got %+v", butter)
	}
	if butter.Amount == nil || !butter.Amount.Equal(Amount{Factor: dec("100"), Unit: "g"}) {
		t.Errorf("butter amount = %v", butter.Amount)
	}

	// Extra text next to the link keeps the raw markup as the name.
	egg := r.Ingredients[1]
	if egg.Link != "" || egg.Name != "[egg](./egg.md) whites" {
		t.Errorf("ingredient with trailing text = %+v", egg)
	}

	// A continuation paragraph also disqualifies the link interpretation.
	note := r.Ingredients[2]
	if note.Link != "" {
		t.Errorf("ingredient with continuation must not be linked, got %+v", note)
	}
	if note.Name != "see [note](./note.md)\n\n  second paragraph" {
		t.Errorf("continuation name = %q", note.Name)
	}
}

func TestParseDescriptionVerbatim(t *testing.T) {
	src := `# Salad

First paragraph with *emphasis* and _underscores_.

Second paragraph.

---

- *1* cucumber
`
	r, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := "First paragraph with *emphasis* and _underscores_.\n\nSecond paragraph."
	if r.Description != want {
		t.Errorf("description = %q, want %q", r.Description, want)
	}
}

func TestParseNoTrailingInstructions(t *testing.T) {
	src := `# Water
---
- *1 l* water
---
`
	r, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if r.Instructions != "" {
		t.Errorf("instructions = %q, want empty", r.Instructions)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		match func(error) bool
	}{
		{
			name:  "empty document",
			input: "",
			match: func(err error) bool {
				var e *MissingTitleError
				return errors.As(err, &e)
			},
		},
		{
			name:  "no heading",
			input: "just text\n\n---\n",
			match: func(err error) bool {
				var e *MissingTitleError
				return errors.As(err, &e)
			},
		},
		{
			name:  "wrong heading level",
			input: "## Too deep\n\n---\n",
			match: func(err error) bool {
				var e *MissingTitleError
				return errors.As(err, &e)
			},
		},
		{
			name:  "missing divider before ingredients",
			input: "# Title\n\nA description without any divider.\n",
			match: func(err error) bool {
				var e *MissingDividerError
				return errors.As(err, &e)
			},
		},
		{
			name:  "missing divider before instructions",
			input: "# Title\n\n---\n\n- *1* egg\n\ntrailing text\n",
			match: func(err error) bool {
				var e *MissingDividerError
				return errors.As(err, &e)
			},
		},
		{
			name:  "duplicate tags",
			input: "# Title\n\n*a*\n\n*b*\n\n---\n",
			match: func(err error) bool {
				var e *DuplicateTagsError
				return errors.As(err, &e)
			},
		},
		{
			name:  "duplicate yields",
			input: "# Title\n\n**1 loaf**\n\n**2 loaves**\n\n---\n",
			match: func(err error) bool {
				var e *DuplicateYieldsError
				return errors.As(err, &e)
			},
		},
		{
			name:  "ingredient without name",
			input: "# Title\n\n---\n\n- *1*\n",
			match: func(err error) bool {
				var e *MissingIngredientNameError
				return errors.As(err, &e)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatal("Parse succeeded, want error")
			}
			if !tt.match(err) {
				t.Errorf("Parse returned %T (%v), want a different error type", err, err)
			}
		})
	}
}
