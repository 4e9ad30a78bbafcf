package recipe

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
	"unicode/utf16"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/recetasfaciles/recetas/internal/mealdb"
)

const (
	defaultArea     = "Internacional"
	defaultServings = 4
	prepTime        = "10 min"
)

// Transformer converts external meal records into Recipes. The random source
// used for rating and nutrition is injected so callers can make output
// reproducible. A Transformer is safe for concurrent use.
type Transformer struct {
	mu    sync.Mutex
	rng   *rand.Rand
	lower cases.Caser
}

// NewTransformer seeds a PCG source with seed.
func NewTransformer(seed uint64) *Transformer {
	return NewTransformerWithSource(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewTimeSeededTransformer seeds from the wall clock.
func NewTimeSeededTransformer() *Transformer {
	return NewTransformer(uint64(time.Now().UnixNano()))
}

// NewTransformerWithSource uses src for every random value.
func NewTransformerWithSource(src rand.Source) *Transformer {
	return &Transformer{
		rng:   rand.New(src),
		lower: cases.Lower(language.Spanish),
	}
}

// Transform builds one Recipe from meal. It never fails: missing fields
// degrade to defaults.
func (t *Transformer) Transform(meal mealdb.Meal) Recipe {
	ingredients := Ingredients(meal)
	cookTime := EstimateTime(meal.Instructions)

	area := strings.TrimSpace(meal.Area)
	displayArea := area
	if displayArea == "" {
		displayArea = defaultArea
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	flavour := "casero"
	if area != "" {
		flavour = t.lower.String(area)
	}

	return Recipe{
		ID:           meal.ID,
		Title:        meal.Name,
		Category:     MapCategory(meal.Category),
		Area:         displayArea,
		Author:       "Chef " + displayArea,
		Description:  fmt.Sprintf("Deliciosa receta de %s con auténtico sabor %s", t.lower.String(meal.Name), flavour),
		Image:        meal.Thumb,
		Time:         cookTime,
		PrepTime:     prepTime,
		CookTime:     cookTime,
		Servings:     defaultServings,
		Difficulty:   EstimateDifficulty(len(ingredients)),
		Rating:       t.rating(),
		Tags:         Tags(area, meal.Category),
		Ingredients:  ingredients,
		Instructions: SplitInstructions(meal.Instructions),
		Nutrition:    t.nutrition(),
		YouTube:      meal.YouTube,
	}
}

// TransformAll maps every meal in order.
func (t *Transformer) TransformAll(meals []mealdb.Meal) []Recipe {
	if len(meals) == 0 {
		return nil
	}
	out := make([]Recipe, 0, len(meals))
	for _, m := range meals {
		out = append(out, t.Transform(m))
	}
	return out
}

// rating is in [4.0, 5.0] with one decimal. Caller holds t.mu.
func (t *Transformer) rating() float64 {
	return math.Round((t.rng.Float64()+4)*10) / 10
}

// Caller holds t.mu.
func (t *Transformer) nutrition() Nutrition {
	return Nutrition{
		Calories: 250 + t.rng.IntN(200),
		Protein:  fmt.Sprintf("%dg", 15+t.rng.IntN(20)),
		Carbs:    fmt.Sprintf("%dg", 25+t.rng.IntN(30)),
		Fat:      fmt.Sprintf("%dg", 10+t.rng.IntN(15)),
	}
}

// Ingredients scans the numbered slots in order and joins measure and name.
// Slots with a blank ingredient are skipped.
func Ingredients(meal mealdb.Meal) []string {
	var out []string
	for i := 1; i <= mealdb.SlotCount; i++ {
		ingredient, measure := meal.Slot(i)
		ingredient = strings.TrimSpace(ingredient)
		if ingredient == "" {
			continue
		}
		if measure = strings.TrimSpace(measure); measure != "" {
			ingredient = measure + " " + ingredient
		}
		out = append(out, ingredient)
	}
	return out
}

// SplitInstructions splits on \r\n, \r or \n and drops blank lines.
func SplitInstructions(blob string) []string {
	normalized := strings.ReplaceAll(blob, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	var steps []string
	for _, line := range strings.Split(normalized, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			steps = append(steps, line)
		}
	}
	return steps
}

// MapCategory resolves an external category to its display name.
func MapCategory(external string) string {
	if c, ok := CategoryByExternal(external); ok {
		return c.Name
	}
	return DefaultCategory
}

// Tags builds [area?, Vegetariano?, Vegano?, Dulce?, Rápido?, Casero].
func Tags(area, externalCategory string) []string {
	var tags []string
	if area != "" {
		tags = append(tags, area)
	}
	switch externalCategory {
	case "Vegetarian":
		tags = append(tags, TagVegetarian)
	case "Vegan":
		tags = append(tags, TagVegan)
	case "Dessert":
		tags = append(tags, TagSweet)
	case "Breakfast":
		tags = append(tags, TagQuick)
	}
	return append(tags, TagHomemade)
}

// EstimateDifficulty: more than 15 ingredients is hard, more than 10 medium.
func EstimateDifficulty(ingredientCount int) Difficulty {
	switch {
	case ingredientCount > 15:
		return DifficultyHard
	case ingredientCount > 10:
		return DifficultyMedium
	default:
		return DifficultyEasy
	}
}

// EstimateTime maps the instruction length, counted in UTF-16 code units,
// onto a duration label.
func EstimateTime(instructions string) string {
	n := utf16Len(instructions)
	switch {
	case n > 1500:
		return "60 min"
	case n > 1000:
		return "45 min"
	case n > 500:
		return "30 min"
	default:
		return "15 min"
	}
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
