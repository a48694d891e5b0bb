package recipemd

import (
	"fmt"
	"strings"
)

// MissingTitleError is returned by Parse when the document does not start
// with a level-1 heading.
type MissingTitleError struct {
	// Got names the block kind found instead, or "nothing" for an empty
	// document.
	Got string
}

func (e *MissingTitleError) Error() string {
	return fmt.Sprintf("invalid recipe: title (level 1 heading) required, got %s instead", e.Got)
}

// MissingDividerError is returned by Parse when a required thematic break
// ("---") is absent.
type MissingDividerError struct {
	// Before names the section the divider should precede ("ingredient
	// list" or "instructions").
	Before string
	Got    string
}

func (e *MissingDividerError) Error() string {
	return fmt.Sprintf("invalid recipe: expected divider before %s, got %s instead", e.Before, e.Got)
}

// DuplicateTagsError is returned by Parse when more than one tags paragraph
// is present.
type DuplicateTagsError struct{}

func (e *DuplicateTagsError) Error() string {
	return "invalid recipe: tags may not be specified multiple times"
}

// DuplicateYieldsError is returned by Parse when more than one yields
// paragraph is present.
type DuplicateYieldsError struct{}

func (e *DuplicateYieldsError) Error() string {
	return "invalid recipe: yields may not be specified multiple times"
}

// MissingIngredientNameError is returned by Parse when a list item in the
// ingredient section has no name text.
type MissingIngredientNameError struct{}

func (e *MissingIngredientNameError) Error() string {
	return "invalid recipe: ingredient without a name"
}

// NoMatchingYieldError is returned by ScaleToYield when the recipe declares
// no yield with the requested unit.
type NoMatchingYieldError struct {
	Unit      string
	Available []string
}

func (e *NoMatchingYieldError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("recipe does not specify a yield in the unit %q and declares no yields", e.Unit)
	}
	quoted := make([]string, len(e.Available))
	for i, u := range e.Available {
		quoted[i] = fmt.Sprintf("%q", u)
	}
	return fmt.Sprintf("recipe does not specify a yield in the unit %q, available units: %s",
		e.Unit, strings.Join(quoted, ", "))
}

// MissingFactorError is returned by ScaleToYield when the target or the
// matching recipe yield has no numeric factor to scale by.
type MissingFactorError struct {
	// What names the amount lacking a factor ("target yield" or
	// "matching recipe yield").
	What string
}

func (e *MissingFactorError) Error() string {
	return fmt.Sprintf("%s must contain a factor", e.What)
}
