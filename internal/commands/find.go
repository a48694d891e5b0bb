package commands

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/gerunddev/recipemd/internal/catalog"
	"github.com/gerunddev/recipemd/internal/config"
	"github.com/gerunddev/recipemd/internal/logger"
	"github.com/gerunddev/recipemd/internal/styles"
)

// Recipes lists the paths of all recipes in a folder
func Recipes(args []string) {
	folder, cfg, _, quiet := parseFindArgs(args)

	entries := scanFolder(folder, cfg, quiet)
	for _, e := range entries {
		fmt.Println(e.Path)
	}
}

// Tags lists every tag used by the recipes in a folder
func Tags(args []string) {
	folder, cfg, count, quiet := parseFindArgs(args)
	printCounts(catalog.Tags(scanFolder(folder, cfg, quiet)), count)
}

// Ingredients lists every ingredient used by the recipes in a folder
func Ingredients(args []string) {
	folder, cfg, count, quiet := parseFindArgs(args)
	printCounts(catalog.Ingredients(scanFolder(folder, cfg, quiet)), count)
}

// Units lists every unit used by the recipes in a folder
func Units(args []string) {
	folder, cfg, count, quiet := parseFindArgs(args)
	printCounts(catalog.Units(scanFolder(folder, cfg, quiet)), count)
}

// parseFindArgs parses the shared flags of the folder listing commands.
// The folder defaults to the configured recipe directory.
func parseFindArgs(args []string) (folder string, cfg *config.Config, count, quiet bool) {
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-c", "--count":
			count = true
		case "-s", "--no-messages":
			quiet = true
		default:
			if folder != "" {
				fmt.Fprintf(os.Stderr, "Unexpected argument: %s\n", args[i])
				os.Exit(1)
			}
			folder = args[i]
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if folder == "" {
		folder = cfg.RecipeDir
	}
	return folder, cfg, count, quiet
}

// scanFolder scans a recipe folder, reporting unparseable files on stderr
// unless suppressed
func scanFolder(folder string, cfg *config.Config, quiet bool) []catalog.Entry {
	l, cleanup := scanLogger(cfg.LogFile, quiet)
	defer cleanup()

	l.ConfigLoaded(cfg.RecipeDir, cfg.Rounding)

	entries, err := catalog.Scan(folder, l)
	if err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ " + err.Error()))
		os.Exit(1)
	}
	return entries
}

// scanLogger builds the logger for a folder scan. When a log file is
// configured the structured scan log goes there; otherwise warnings go to
// stderr unless suppressed.
func scanLogger(logFile string, quiet bool) (*logger.Logger, func()) {
	if logFile != "" {
		l, cleanup, err := logger.NewFileLogger(logFile)
		if err == nil {
			return l, cleanup
		}
		// fall through to the terminal if the file cannot be opened
	}
	if quiet {
		return logger.Discard(), func() {}
	}
	return logger.NewWithLevel(os.Stderr, log.WarnLevel), func() {}
}

func printCounts(counts []catalog.Count, withCount bool) {
	if !withCount {
		for _, c := range counts {
			fmt.Println(c.Value)
		}
		return
	}

	catalog.SortByUses(counts)
	widest := 0
	for _, c := range counts {
		if w := len(fmt.Sprint(c.Uses)); w > widest {
			widest = w
		}
	}
	for _, c := range counts {
		fmt.Printf("%*d %s\n", widest, c.Uses, c.Value)
	}
}
