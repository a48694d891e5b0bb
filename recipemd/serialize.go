package recipemd

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NoRounding disables display rounding in Serialize.
const NoRounding = -1

// Serialize renders a recipe as canonical RecipeMD. The output is not
// byte-identical to arbitrary input (formatting is normalized) but parses
// back to an equal model. rounding is the number of decimal digits factors
// are rounded to for display; pass NoRounding to render exact values.
func Serialize(r *Recipe, rounding int) string {
	var b strings.Builder

	b.WriteString("# " + r.Title + "\n\n")
	if r.Description != "" {
		b.WriteString(r.Description + "\n\n")
	}
	if len(r.Tags) > 0 {
		b.WriteString("*" + strings.Join(r.Tags, ", ") + "*\n\n")
	}
	if len(r.Yields) > 0 {
		parts := make([]string, len(r.Yields))
		for i, y := range r.Yields {
			parts[i] = serializeAmount(y, rounding)
		}
		b.WriteString("**" + strings.Join(parts, ", ") + "**\n\n")
	}
	b.WriteString("---\n\n")

	var items []string
	for _, i := range r.Ingredients {
		items = append(items, serializeIngredient(i, rounding))
	}
	for _, g := range r.Groups {
		items = append(items, serializeGroup(g, 2, rounding))
	}
	b.WriteString(strings.TrimSpace(strings.Join(items, "\n")))

	if r.Instructions != "" {
		b.WriteString("\n\n---\n\n")
		b.WriteString(r.Instructions)
	}
	return b.String()
}

// serializeGroup renders a group as a heading of the given level followed
// by its own ingredients, then its subgroups one level deeper. Plain
// ingredients always come before groups; downstream consumers rely on that
// order.
func serializeGroup(g IngredientGroup, level, rounding int) string {
	parts := []string{"\n" + strings.Repeat("#", level) + " " + g.Title + "\n"}
	for _, i := range g.Ingredients {
		parts = append(parts, serializeIngredient(i, rounding))
	}
	for _, sub := range g.Groups {
		parts = append(parts, serializeGroup(sub, level+1, rounding))
	}
	return strings.Join(parts, "\n")
}

func serializeIngredient(i Ingredient, rounding int) string {
	text := i.Name
	if i.Link != "" {
		text = "[" + i.Name + "](" + i.Link + ")"
	}
	if i.Amount != nil {
		return "- *" + serializeAmount(*i.Amount, rounding) + "* " + text
	}
	return "- " + text
}

func serializeAmount(a Amount, rounding int) string {
	switch {
	case a.Factor != nil && a.Unit != "":
		return normalizeFactor(*a.Factor, rounding) + " " + a.Unit
	case a.Factor != nil:
		return normalizeFactor(*a.Factor, rounding)
	default:
		return a.Unit
	}
}

// normalizeFactor renders a factor for display: rounded to the requested
// number of digits, trailing fractional zeros stripped, integral values
// without a decimal point.
func normalizeFactor(f decimal.Decimal, rounding int) string {
	if rounding != NoRounding {
		f = f.Round(int32(rounding))
	}
	s := f.String()
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	return s
}
