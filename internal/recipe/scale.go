package recipe

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var quantityPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ScaleIngredient multiplies every number in ingredient by to/from. Results
// keep one decimal, and a trailing ".0" is dropped. A non-positive from or
// to leaves ingredient unchanged.
func ScaleIngredient(ingredient string, from, to int) string {
	if from <= 0 || to <= 0 || from == to {
		return ingredient
	}
	ratio := float64(to) / float64(from)
	return quantityPattern.ReplaceAllStringFunc(ingredient, func(match string) string {
		n, err := strconv.ParseFloat(match, 64)
		if err != nil {
			return match
		}
		return strings.TrimSuffix(strconv.FormatFloat(n*ratio, 'f', 1, 64), ".0")
	})
}

// ScaleCalories returns the calories for to servings of a recipe that has
// calories for from servings, rounded to the nearest integer.
func ScaleCalories(calories, from, to int) int {
	if from <= 0 || to <= 0 {
		return calories
	}
	return int(math.Round(float64(calories*to) / float64(from)))
}
