package commands

import (
	"fmt"
	"os"

	"github.com/gerunddev/recipemd/internal/config"
	"github.com/gerunddev/recipemd/internal/styles"
	"github.com/gerunddev/recipemd/internal/tui"
)

// Browse opens the interactive recipe browser
func Browse(args []string) {
	errorStyle := styles.ErrorStyle
	dimStyle := styles.DimStyle

	var folder string
	for _, arg := range args {
		if folder != "" {
			fmt.Fprintf(os.Stderr, "Unexpected argument: %s\n", arg)
			os.Exit(1)
		}
		folder = arg
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if folder == "" {
		folder = cfg.RecipeDir
	}

	// Parse errors would corrupt the TUI, keep the scan off stderr
	entries := scanFolder(folder, cfg, true)
	if len(entries) == 0 {
		fmt.Println(dimStyle.Render("No recipes found in " + folder))
		return
	}

	if err := tui.RunBrowse(entries, cfg.Rounding); err != nil {
		fmt.Println(errorStyle.Render("✗ Error: " + err.Error()))
		os.Exit(1)
	}
}
