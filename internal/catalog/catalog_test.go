package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gerunddev/recipemd/internal/logger"
)

const pancakes = `# Pancakes

*breakfast, sweet*

**4 servings**

---

- *2* eggs
- *250 ml* milk

---

Mix and fry.
`

const toast = `# Toast

*breakfast*

---

- *2 slices* bread
- butter
`

func writeRecipeDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"pancakes.md":        pancakes,
		"breakfast/toast.md": toast,
		"notes.md":           "not a recipe at all\n",
		"readme.txt":         "ignored, wrong extension\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return dir
}

func TestScan(t *testing.T) {
	dir := writeRecipeDir(t)

	entries, err := Scan(dir, logger.Discard())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	// The broken markdown file and the .txt file are skipped.
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(entries), entries)
	}

	titles := map[string]string{}
	for _, e := range entries {
		titles[e.Path] = e.Recipe.Title
	}
	if titles["pancakes.md"] != "Pancakes" {
		t.Errorf("pancakes.md title = %q", titles["pancakes.md"])
	}
	if titles[filepath.Join("breakfast", "toast.md")] != "Toast" {
		t.Errorf("toast.md title = %q", titles[filepath.Join("breakfast", "toast.md")])
	}
}

func TestScanMissingFolder(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "does-not-exist"), logger.Discard())
	if err == nil {
		t.Error("Scan of missing folder succeeded, want error")
	}
}

func TestTags(t *testing.T) {
	dir := writeRecipeDir(t)
	entries, err := Scan(dir, logger.Discard())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	tags := Tags(entries)
	want := []Count{
		{Value: "breakfast", Uses: 2},
		{Value: "sweet", Uses: 1},
	}
	if len(tags) != len(want) {
		t.Fatalf("tags = %+v, want %+v", tags, want)
	}
	for i, w := range want {
		if tags[i] != w {
			t.Errorf("tag %d = %+v, want %+v", i, tags[i], w)
		}
	}

	SortByUses(tags)
	if tags[0].Value != "breakfast" {
		t.Errorf("most used tag = %q, want breakfast", tags[0].Value)
	}
}

func TestUnits(t *testing.T) {
	dir := writeRecipeDir(t)
	entries, err := Scan(dir, logger.Discard())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	units := Units(entries)
	want := []Count{
		{Value: "ml", Uses: 1},
		{Value: "servings", Uses: 1},
		{Value: "slices", Uses: 1},
	}
	if len(units) != len(want) {
		t.Fatalf("units = %+v, want %+v", units, want)
	}
	for i, w := range want {
		if units[i] != w {
			t.Errorf("unit %d = %+v, want %+v", i, units[i], w)
		}
	}
}

func TestIngredients(t *testing.T) {
	dir := writeRecipeDir(t)
	entries, err := Scan(dir, logger.Discard())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	ingredients := Ingredients(entries)
	want := []string{"bread", "butter", "eggs", "milk"}
	if len(ingredients) != len(want) {
		t.Fatalf("ingredients = %+v, want %v", ingredients, want)
	}
	for i, name := range want {
		if ingredients[i].Value != name {
			t.Errorf("ingredient %d = %q, want %q", i, ingredients[i].Value, name)
		}
	}
}
