// Package catalog scans folders of recipe files and aggregates facts
// across them, such as the tags, ingredients and units in use.
package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gerunddev/recipemd/internal/logger"
	"github.com/gerunddev/recipemd/recipemd"
)

// Entry is a recipe found during a scan, with its path relative to the
// scanned folder.
type Entry struct {
	Path   string
	Recipe *recipemd.Recipe
}

// Scan walks folder recursively, parsing every *.md file. Files that fail
// to parse are logged and skipped; the scan itself only fails when the
// folder cannot be walked.
func Scan(folder string, log *logger.Logger) ([]Entry, error) {
	start := time.Now()

	var entries []Entry
	skipped := 0

	err := filepath.WalkDir(folder, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		rel, err := filepath.Rel(folder, path)
		if err != nil {
			rel = path
		}

		data, err := os.ReadFile(path)
		if err != nil {
			log.ParseFailed(rel, err)
			skipped++
			return nil
		}

		recipe, err := recipemd.Parse(string(data))
		if err != nil {
			log.ParseFailed(rel, err)
			skipped++
			return nil
		}

		log.RecipeParsed(rel, recipe.Title)
		entries = append(entries, Entry{Path: rel, Recipe: recipe})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", folder, err)
	}

	log.ScanCompleted(folder, len(entries), skipped, time.Since(start))
	return entries, nil
}

// Tags returns every tag used by the given recipes with its use count.
func Tags(entries []Entry) []Count {
	return count(entries, func(r *recipemd.Recipe) []string {
		return r.Tags
	})
}

// Ingredients returns every ingredient name used by the given recipes with
// its use count.
func Ingredients(entries []Entry) []Count {
	return count(entries, func(r *recipemd.Recipe) []string {
		var names []string
		for _, i := range r.LeafIngredients() {
			names = append(names, i.Name)
		}
		return names
	})
}

// Units returns every unit used by the given recipes, in ingredient amounts
// and yields, with its use count.
func Units(entries []Entry) []Count {
	return count(entries, func(r *recipemd.Recipe) []string {
		var units []string
		for _, i := range r.LeafIngredients() {
			if i.Amount != nil && i.Amount.Unit != "" {
				units = append(units, i.Amount.Unit)
			}
		}
		for _, y := range r.Yields {
			if y.Unit != "" {
				units = append(units, y.Unit)
			}
		}
		return units
	})
}

// Count is a value with the number of recipes-wide uses.
type Count struct {
	Value string
	Uses  int
}

func count(entries []Entry, extract func(*recipemd.Recipe) []string) []Count {
	uses := map[string]int{}
	for _, e := range entries {
		for _, v := range extract(e.Recipe) {
			uses[v]++
		}
	}

	counts := make([]Count, 0, len(uses))
	for v, n := range uses {
		counts = append(counts, Count{Value: v, Uses: n})
	}
	// Case-insensitive alphabetical, ties broken by the original value so
	// the order is deterministic.
	sort.Slice(counts, func(i, j int) bool {
		a, b := strings.ToLower(counts[i].Value), strings.ToLower(counts[j].Value)
		if a != b {
			return a < b
		}
		return counts[i].Value < counts[j].Value
	})
	return counts
}

// SortByUses reorders counts by descending use count, ties broken
// alphabetically.
func SortByUses(counts []Count) {
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Uses > counts[j].Uses
	})
}
