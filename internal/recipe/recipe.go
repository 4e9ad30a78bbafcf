// Package recipe defines the normalized Recipe entity and the transformation
// from the flat TheMealDB record into it.
package recipe

// Difficulty is the effort label derived from the ingredient count.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Fácil"
	DifficultyMedium Difficulty = "Medio"
	DifficultyHard   Difficulty = "Difícil"
)

// Tags attached by the transformation.
const (
	TagVegetarian = "Vegetariano"
	TagVegan      = "Vegano"
	TagSweet      = "Dulce"
	TagQuick      = "Rápido"
	TagHomemade   = "Casero"
)

// Nutrition holds the (generated) nutrition facts of a recipe.
type Nutrition struct {
	Calories int    `json:"calories"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
	Fat      string `json:"fat"`
}

// Recipe is the normalized recipe record shown by the UI.
type Recipe struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Category     string     `json:"category"`
	Area         string     `json:"area"`
	Author       string     `json:"author"`
	Description  string     `json:"description"`
	Image        string     `json:"image"`
	Time         string     `json:"time"`
	PrepTime     string     `json:"prepTime"`
	CookTime     string     `json:"cookTime"`
	Servings     int        `json:"servings"`
	Difficulty   Difficulty `json:"difficulty"`
	Rating       float64    `json:"rating"`
	Tags         []string   `json:"tags"`
	Ingredients  []string   `json:"ingredients"`
	Instructions []string   `json:"instructions"`
	Nutrition    Nutrition  `json:"nutrition"`
	YouTube      string     `json:"youtube,omitempty"`
}

// HasTag reports whether tag is one of the recipe's tags.
func (r Recipe) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of r.
func (r Recipe) Clone() Recipe {
	r.Tags = cloneStrings(r.Tags)
	r.Ingredients = cloneStrings(r.Ingredients)
	r.Instructions = cloneStrings(r.Instructions)
	return r
}

// Dedupe keeps the first occurrence of every id and preserves order.
func Dedupe(recipes []Recipe) []Recipe {
	if len(recipes) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(recipes))
	out := make([]Recipe, 0, len(recipes))
	for _, r := range recipes {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	dup := make([]string, len(values))
	copy(dup, values)
	return dup
}
