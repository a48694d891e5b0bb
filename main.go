package main

import (
	"fmt"
	"os"

	"github.com/gerunddev/recipemd/internal/commands"
	"github.com/gerunddev/recipemd/internal/config"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "show":
		commands.Show(os.Args[2:])
	case "recipes", "list":
		commands.Recipes(os.Args[2:])
	case "tags":
		commands.Tags(os.Args[2:])
	case "ingredients":
		commands.Ingredients(os.Args[2:])
	case "units":
		commands.Units(os.Args[2:])
	case "browse":
		commands.Browse(os.Args[2:])
	case "version", "-v", "--version":
		fmt.Printf("recipemd v%s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	usage := fmt.Sprintf(`recipemd - Read, scale and browse RecipeMD recipes

Usage:
  recipemd <command> [options]

Commands:
  show         Display a recipe (scaled, as markdown, JSON or rendered)
  recipes      List recipe paths in a folder
  tags         List tags used by the recipes in a folder
  ingredients  List ingredients used by the recipes in a folder
  units        List units used by the recipes in a folder
  browse       Browse recipes interactively
  version      Show version information
  help         Show this help message

Show options:
  -t, --title        Display only the recipe title
  -i, --ingredients  Display only the flattened ingredient list
  -j, --json         Output the recipe as JSON
  -p, --pretty       Render the recipe for the terminal
  -m, --multiply N   Multiply the recipe by N
  -y, --yield Y      Scale the recipe for yield Y, e.g. "5 servings"
  -r, --round n      Round amounts to n digits, or "no" to disable

Listing options:
  -c, --count        Count uses instead of listing once
  -s, --no-messages  Suppress parse error messages

Examples:
  recipemd show dinner/flammkuchen.md
  recipemd show -y "2 servings" -p dinner/flammkuchen.md
  recipemd show -m 3 -i dinner/flammkuchen.md
  recipemd tags -c ~/recipes
  recipemd browse

Configuration:
  Config file: %s
`, config.ConfigPath())
	fmt.Print(usage)
}
