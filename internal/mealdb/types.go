package mealdb

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// SlotCount is the number of numbered ingredient/measure pairs in a meal record.
const SlotCount = 20

// Meal mirrors the flat meal record returned by the lookup, search and random
// endpoints. The numbered strIngredientN/strMeasureN fields are folded into
// fixed arrays on decode.
type Meal struct {
	ID           string
	Name         string
	Category     string
	Area         string
	Instructions string
	Thumb        string
	YouTube      string
	Ingredients  [SlotCount]string
	Measures     [SlotCount]string
}

// Slot returns the ingredient and measure stored at the 1-based index i.
func (m Meal) Slot(i int) (ingredient, measure string) {
	if i < 1 || i > SlotCount {
		return "", ""
	}
	return m.Ingredients[i-1], m.Measures[i-1]
}

// UnmarshalJSON decodes the flat schema. Null or missing fields decode as "".
// A null record leaves m untouched.
func (m *Meal) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	get := func(key string) string {
		var v string
		if msg, ok := raw[key]; ok {
			// Non-string values (null, numbers) are treated as absent.
			_ = json.Unmarshal(msg, &v)
		}
		return v
	}

	*m = Meal{
		ID:           get("idMeal"),
		Name:         get("strMeal"),
		Category:     get("strCategory"),
		Area:         get("strArea"),
		Instructions: get("strInstructions"),
		Thumb:        get("strMealThumb"),
		YouTube:      get("strYoutube"),
	}
	for i := 1; i <= SlotCount; i++ {
		idx := strconv.Itoa(i)
		m.Ingredients[i-1] = get("strIngredient" + idx)
		m.Measures[i-1] = get("strMeasure" + idx)
	}
	return nil
}

// MarshalJSON encodes the meal back into the flat schema.
func (m Meal) MarshalJSON() ([]byte, error) {
	out := map[string]string{
		"idMeal":          m.ID,
		"strMeal":         m.Name,
		"strCategory":     m.Category,
		"strArea":         m.Area,
		"strInstructions": m.Instructions,
		"strMealThumb":    m.Thumb,
	}
	if m.YouTube != "" {
		out["strYoutube"] = m.YouTube
	}
	for i := 1; i <= SlotCount; i++ {
		idx := strconv.Itoa(i)
		out["strIngredient"+idx] = m.Ingredients[i-1]
		out["strMeasure"+idx] = m.Measures[i-1]
	}
	return json.Marshal(out)
}

// MealSummary is the reduced record returned by /filter.php.
type MealSummary struct {
	ID    string `json:"idMeal"`
	Name  string `json:"strMeal"`
	Thumb string `json:"strMealThumb"`
}

// Category describes one entry of /categories.php.
type Category struct {
	ID          string `json:"idCategory"`
	Name        string `json:"strCategory"`
	Thumb       string `json:"strCategoryThumb"`
	Description string `json:"strCategoryDescription"`
}

// MealsResponse wraps endpoints whose payload is {"meals": [...] | null}.
type MealsResponse struct {
	Meals []Meal `json:"meals"`
}

// UnmarshalJSON keeps only the entries that are records with an id; null
// entries in the array are dropped.
func (r *MealsResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		Meals []*Meal `json:"meals"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Meals = nil
	for _, m := range raw.Meals {
		if m != nil && strings.TrimSpace(m.ID) != "" {
			r.Meals = append(r.Meals, *m)
		}
	}
	return nil
}

// SummariesResponse mirrors /filter.php.
type SummariesResponse struct {
	Meals []MealSummary `json:"meals"`
}

// UnmarshalJSON drops null entries and summaries without an id.
func (r *SummariesResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		Meals []*MealSummary `json:"meals"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Meals = nil
	for _, m := range raw.Meals {
		if m != nil && strings.TrimSpace(m.ID) != "" {
			r.Meals = append(r.Meals, *m)
		}
	}
	return nil
}

// CategoriesResponse mirrors /categories.php.
type CategoriesResponse struct {
	Categories []Category `json:"categories"`
}
