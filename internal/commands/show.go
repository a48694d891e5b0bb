package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/term"

	"github.com/gerunddev/recipemd/internal/config"
	"github.com/gerunddev/recipemd/internal/logger"
	"github.com/gerunddev/recipemd/internal/render"
	"github.com/gerunddev/recipemd/internal/styles"
	"github.com/gerunddev/recipemd/recipemd"
)

// Show reads a recipe file, optionally scales it, and prints it
func Show(args []string) {
	errorStyle := styles.ErrorStyle

	var (
		file            string
		titleOnly       bool
		ingredientsOnly bool
		asJSON          bool
		pretty          bool
		multiply        string
		requiredYield   string
		roundArg        string
	)

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-t", "--title":
			titleOnly = true
		case "-i", "--ingredients":
			ingredientsOnly = true
		case "-j", "--json":
			asJSON = true
		case "-p", "--pretty":
			pretty = true
		case "-m", "--multiply":
			if i+1 < len(args) {
				i++
				multiply = args[i]
			}
		case "-y", "--yield":
			if i+1 < len(args) {
				i++
				requiredYield = args[i]
			}
		case "-r", "--round":
			if i+1 < len(args) {
				i++
				roundArg = args[i]
			}
		default:
			if file != "" {
				fmt.Fprintf(os.Stderr, "Unexpected argument: %s\n", args[i])
				os.Exit(1)
			}
			file = args[i]
		}
	}

	if file == "" {
		fmt.Fprintln(os.Stderr, "Error: No recipe file specified")
		os.Exit(1)
	}
	if titleOnly && ingredientsOnly {
		fmt.Fprintln(os.Stderr, "Error: --title and --ingredients are mutually exclusive")
		os.Exit(1)
	}
	if multiply != "" && requiredYield != "" {
		fmt.Fprintln(os.Stderr, "Error: --multiply and --yield are mutually exclusive")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Discard()
	if cfg.LogFile != "" {
		if l, cleanup, err := logger.NewFileLogger(cfg.LogFile); err == nil {
			defer cleanup()
			log = l
		}
	}
	log.ConfigLoaded(cfg.RecipeDir, cfg.Rounding)

	rounding := cfg.Rounding
	if roundArg != "" {
		rounding, err = parseRounding(roundArg)
		if err != nil {
			fmt.Println(errorStyle.Render("✗ " + err.Error()))
			os.Exit(1)
		}
	}

	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Println(errorStyle.Render("✗ Failed to read recipe: " + err.Error()))
		os.Exit(1)
	}

	recipe, err := recipemd.Parse(string(src))
	if err != nil {
		log.ParseFailed(file, err)
		fmt.Println(errorStyle.Render("✗ Failed to parse recipe: " + err.Error()))
		os.Exit(1)
	}
	log.RecipeParsed(file, recipe.Title)

	recipe, err = scaleRecipe(recipe, multiply, requiredYield)
	if err != nil {
		fmt.Println(errorStyle.Render("✗ " + err.Error()))
		os.Exit(1)
	}

	switch {
	case titleOnly:
		fmt.Println(recipe.Title)
	case ingredientsOnly:
		for _, i := range recipe.LeafIngredients() {
			fmt.Println(ingredientLine(i, rounding))
		}
	case asJSON:
		data, err := json.MarshalIndent(recipe, "", "  ")
		if err != nil {
			fmt.Println(errorStyle.Render("✗ Failed to encode recipe: " + err.Error()))
			os.Exit(1)
		}
		fmt.Println(string(data))
	default:
		markdown := recipemd.Serialize(recipe, rounding)
		if pretty {
			width := 80
			if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				width = w
			}
			fmt.Print(render.Markdown(markdown, width))
		} else {
			fmt.Println(markdown)
		}
	}
}

// scaleRecipe applies --multiply or --yield to the recipe
func scaleRecipe(recipe *recipemd.Recipe, multiply, requiredYield string) (*recipemd.Recipe, error) {
	if requiredYield != "" {
		target := recipemd.ParseAmount(requiredYield)
		if target == nil || target.Factor == nil {
			return nil, fmt.Errorf("given yield %q is not valid", requiredYield)
		}
		return recipemd.ScaleToYield(recipe, *target)
	}

	if multiply != "" {
		factor := recipemd.ParseAmount(multiply)
		if factor == nil || factor.Factor == nil {
			return nil, fmt.Errorf("given multiplier %q is not valid", multiply)
		}
		if factor.Unit != "" {
			return nil, fmt.Errorf("a recipe can only be multiplied with a unitless amount")
		}
		return recipemd.Multiply(recipe, *factor.Factor), nil
	}

	return recipe, nil
}

// parseRounding parses the --round argument: a digit count, or "no" to
// disable rounding
func parseRounding(arg string) (int, error) {
	if arg == "no" {
		return recipemd.NoRounding, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid rounding %q: expected a digit count or \"no\"", arg)
	}
	return n, nil
}

// ingredientLine renders one ingredient for --ingredients output
func ingredientLine(i recipemd.Ingredient, rounding int) string {
	if i.Amount == nil {
		return i.Name
	}
	amount := *i.Amount
	if rounding != recipemd.NoRounding && amount.Factor != nil {
		f := amount.Factor.Round(int32(rounding))
		amount.Factor = &f
	}
	return amount.String() + " " + i.Name
}
