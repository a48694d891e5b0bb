package recipemd

import "github.com/shopspring/decimal"

// Multiply returns a structurally identical copy of the recipe with every
// amount factor (yields and ingredient amounts at any depth) multiplied
// by k. Amounts without a factor (unit-only) cannot be scaled and are
// preserved unchanged.
func Multiply(r *Recipe, k decimal.Decimal) *Recipe {
	out := *r
	out.Tags = append([]string(nil), r.Tags...)
	if r.Yields != nil {
		out.Yields = make([]Amount, len(r.Yields))
		for i, y := range r.Yields {
			out.Yields[i] = multiplyAmount(y, k)
		}
	}
	out.IngredientList = multiplyList(r.IngredientList, k)
	return &out
}

// ScaleToYield scales the recipe so that the yield whose unit matches the
// target equals the target. A unit-less target with no matching yield
// treats the whole recipe as yielding one. Both the target and the matching
// yield must carry a factor.
func ScaleToYield(r *Recipe, target Amount) (*Recipe, error) {
	if target.Factor == nil {
		return nil, &MissingFactorError{What: "target yield"}
	}

	var matching *Amount
	for i := range r.Yields {
		if r.Yields[i].Unit == target.Unit {
			matching = &r.Yields[i]
			break
		}
	}
	if matching == nil {
		if target.Unit != "" {
			units := make([]string, len(r.Yields))
			for i, y := range r.Yields {
				units[i] = y.Unit
			}
			return nil, &NoMatchingYieldError{Unit: target.Unit, Available: units}
		}
		// No unit in the target means "this many whole recipes".
		one := decimal.NewFromInt(1)
		matching = &Amount{Factor: &one}
	}
	if matching.Factor == nil {
		return nil, &MissingFactorError{What: "matching recipe yield"}
	}

	return Multiply(r, target.Factor.Div(*matching.Factor)), nil
}

func multiplyList(l IngredientList, k decimal.Decimal) IngredientList {
	out := IngredientList{}
	if l.Ingredients != nil {
		out.Ingredients = make([]Ingredient, len(l.Ingredients))
		for i, ing := range l.Ingredients {
			out.Ingredients[i] = multiplyIngredient(ing, k)
		}
	}
	if l.Groups != nil {
		out.Groups = make([]IngredientGroup, len(l.Groups))
		for i, g := range l.Groups {
			out.Groups[i] = IngredientGroup{
				Title:          g.Title,
				IngredientList: multiplyList(g.IngredientList, k),
			}
		}
	}
	return out
}

func multiplyIngredient(i Ingredient, k decimal.Decimal) Ingredient {
	if i.Amount == nil {
		return i
	}
	amount := multiplyAmount(*i.Amount, k)
	i.Amount = &amount
	return i
}

func multiplyAmount(a Amount, k decimal.Decimal) Amount {
	if a.Factor == nil {
		return a
	}
	f := a.Factor.Mul(k)
	return Amount{Factor: &f, Unit: a.Unit}
}
