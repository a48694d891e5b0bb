// Package recipemd parses the RecipeMD Markdown dialect into a structured
// recipe model, serializes the model back to canonical Markdown, and scales
// recipes by a multiplier or to a target yield.
package recipemd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is a scalable quantity: a numeric factor, a unit, or both.
// Factor and unit may not both be absent. A nil Factor means "no number"
// (e.g. "some salt"); an empty Unit means a bare number.
type Amount struct {
	Factor *decimal.Decimal
	Unit   string
}

// NewAmount builds an Amount, rejecting the all-absent case.
func NewAmount(factor *decimal.Decimal, unit string) (Amount, error) {
	if factor == nil && unit == "" {
		return Amount{}, errors.New("recipemd: factor and unit may not both be absent")
	}
	return Amount{Factor: factor, Unit: unit}, nil
}

// Equal reports whether two amounts have the same numeric value and unit.
// Factors are compared by decimal value, so 0.5 and 0.50 are equal.
func (a Amount) Equal(o Amount) bool {
	if (a.Factor == nil) != (o.Factor == nil) {
		return false
	}
	if a.Factor != nil && !a.Factor.Equal(*o.Factor) {
		return false
	}
	return a.Unit == o.Unit
}

// String renders the amount without rounding, e.g. "1.5 cups".
func (a Amount) String() string {
	return serializeAmount(a, NoRounding)
}

type amountJSON struct {
	Factor *decimal.Decimal `json:"factor,omitempty"`
	Unit   string           `json:"unit,omitempty"`
}

// MarshalJSON encodes the amount with the factor as a decimal string,
// omitting absent parts.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(amountJSON{Factor: a.Factor, Unit: a.Unit})
}

// UnmarshalJSON decodes an amount and enforces the not-both-absent invariant.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var raw amountJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	amount, err := NewAmount(raw.Factor, raw.Unit)
	if err != nil {
		return err
	}
	*a = amount
	return nil
}

// Ingredient is a single recipe ingredient. Name is required; Amount and
// Link (a URI to a linked recipe) are optional.
type Ingredient struct {
	Name   string
	Amount *Amount
	Link   string
}

// Equal reports whether two ingredients are structurally equal.
func (i Ingredient) Equal(o Ingredient) bool {
	if i.Name != o.Name || i.Link != o.Link {
		return false
	}
	if (i.Amount == nil) != (o.Amount == nil) {
		return false
	}
	return i.Amount == nil || i.Amount.Equal(*o.Amount)
}

type ingredientJSON struct {
	Type   string  `json:"type"`
	Name   string  `json:"name"`
	Amount *Amount `json:"amount,omitempty"`
	Link   string  `json:"link,omitempty"`
}

// MarshalJSON tags the ingredient with an explicit type discriminant so
// decoders never have to guess from field presence.
func (i Ingredient) MarshalJSON() ([]byte, error) {
	return json.Marshal(ingredientJSON{
		Type:   "ingredient",
		Name:   i.Name,
		Amount: i.Amount,
		Link:   i.Link,
	})
}

// UnmarshalJSON rejects payloads whose type tag is not "ingredient".
func (i *Ingredient) UnmarshalJSON(data []byte) error {
	var raw ingredientJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Type != "" && raw.Type != "ingredient" {
		return fmt.Errorf("recipemd: expected type %q, got %q", "ingredient", raw.Type)
	}
	i.Name = raw.Name
	i.Amount = raw.Amount
	i.Link = raw.Link
	return nil
}

// IngredientList holds the ingredients at one level of the recipe tree:
// plain ingredients first, then nested groups. A Recipe embeds the root
// list; groups own their children exclusively.
type IngredientList struct {
	Ingredients []Ingredient      `json:"ingredients,omitempty"`
	Groups      []IngredientGroup `json:"ingredient_groups,omitempty"`
}

// LeafIngredients returns all ingredients in document order: own-level
// ingredients first, then each nested group depth-first.
func (l IngredientList) LeafIngredients() []Ingredient {
	leaves := append([]Ingredient(nil), l.Ingredients...)
	for _, g := range l.Groups {
		leaves = append(leaves, g.LeafIngredients()...)
	}
	return leaves
}

// Equal reports whether two ingredient lists are structurally equal.
func (l IngredientList) Equal(o IngredientList) bool {
	if len(l.Ingredients) != len(o.Ingredients) || len(l.Groups) != len(o.Groups) {
		return false
	}
	for n, i := range l.Ingredients {
		if !i.Equal(o.Ingredients[n]) {
			return false
		}
	}
	for n, g := range l.Groups {
		if !g.Equal(o.Groups[n]) {
			return false
		}
	}
	return true
}

// IngredientGroup is a titled sub-collection of ingredients created from a
// heading inside the ingredient section. Groups nest without depth limit.
type IngredientGroup struct {
	Title string
	IngredientList
}

// Equal reports whether two groups are structurally equal.
func (g IngredientGroup) Equal(o IngredientGroup) bool {
	return g.Title == o.Title && g.IngredientList.Equal(o.IngredientList)
}

type ingredientGroupJSON struct {
	Type        string            `json:"type"`
	Title       string            `json:"title,omitempty"`
	Ingredients []Ingredient      `json:"ingredients,omitempty"`
	Groups      []IngredientGroup `json:"ingredient_groups,omitempty"`
}

// MarshalJSON tags the group with an explicit type discriminant.
func (g IngredientGroup) MarshalJSON() ([]byte, error) {
	return json.Marshal(ingredientGroupJSON{
		Type:        "group",
		Title:       g.Title,
		Ingredients: g.Ingredients,
		Groups:      g.Groups,
	})
}

// UnmarshalJSON rejects payloads whose type tag is not "group".
func (g *IngredientGroup) UnmarshalJSON(data []byte) error {
	var raw ingredientGroupJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Type != "" && raw.Type != "group" {
		return fmt.Errorf("recipemd: expected type %q, got %q", "group", raw.Type)
	}
	g.Title = raw.Title
	g.Ingredients = raw.Ingredients
	g.Groups = raw.Groups
	return nil
}

// Recipe is a parsed RecipeMD document. The tree is built once by Parse and
// never mutated afterwards; scaling returns a fresh copy.
type Recipe struct {
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Yields       []Amount `json:"yields,omitempty"`
	IngredientList
	Instructions string `json:"instructions,omitempty"`
}

// Equal reports whether two recipes are structurally equal. Amount factors
// are compared by decimal value.
func (r *Recipe) Equal(o *Recipe) bool {
	if r == nil || o == nil {
		return r == o
	}
	if r.Title != o.Title || r.Description != o.Description || r.Instructions != o.Instructions {
		return false
	}
	if len(r.Tags) != len(o.Tags) || len(r.Yields) != len(o.Yields) {
		return false
	}
	for n, tag := range r.Tags {
		if tag != o.Tags[n] {
			return false
		}
	}
	for n, y := range r.Yields {
		if !y.Equal(o.Yields[n]) {
			return false
		}
	}
	return r.IngredientList.Equal(o.IngredientList)
}
