package recipe

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/recetasfaciles/recetas/internal/mealdb"
)

func mealWithIngredients(n int) mealdb.Meal {
	m := mealdb.Meal{ID: "1", Name: "Test", Category: "Beef", Area: "Italian"}
	for i := 0; i < n; i++ {
		m.Ingredients[i] = fmt.Sprintf("ingredient %d", i+1)
	}
	return m
}

func TestIngredients_CountAndOrderMatchSlots(t *testing.T) {
	for n := 0; n <= mealdb.SlotCount; n++ {
		got := Ingredients(mealWithIngredients(n))
		if len(got) != n {
			t.Fatalf("len(Ingredients) with %d slots = %d", n, len(got))
		}
		for i, ing := range got {
			if want := fmt.Sprintf("ingredient %d", i+1); ing != want {
				t.Fatalf("Ingredients[%d] = %q, want %q", i, ing, want)
			}
		}
	}
}

func TestIngredients_SkipsBlankAndJoinsMeasure(t *testing.T) {
	var m mealdb.Meal
	m.Ingredients[0] = "  Flour "
	m.Measures[0] = " 2 cups "
	m.Ingredients[1] = "   "
	m.Measures[1] = "1 tsp"
	m.Ingredients[4] = "Salt"
	m.Measures[4] = "  "

	got := Ingredients(m)
	want := []string{"2 cups Flour", "Salt"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Ingredients = %#v, want %#v", got, want)
	}
}

func TestEstimateDifficulty_Thresholds(t *testing.T) {
	tests := []struct {
		count int
		want  Difficulty
	}{
		{0, DifficultyEasy},
		{10, DifficultyEasy},
		{11, DifficultyMedium},
		{12, DifficultyMedium},
		{15, DifficultyMedium},
		{16, DifficultyHard},
		{20, DifficultyHard},
	}
	for _, tt := range tests {
		if got := EstimateDifficulty(tt.count); got != tt.want {
			t.Fatalf("EstimateDifficulty(%d) = %q, want %q", tt.count, got, tt.want)
		}
	}

	tr := NewTransformer(1)
	if got := tr.Transform(mealWithIngredients(12)).Difficulty; got != "Medio" {
		t.Fatalf("difficulty for 12 ingredients = %q, want Medio", got)
	}
}

func TestEstimateTime_Thresholds(t *testing.T) {
	tests := []struct {
		length int
		want   string
	}{
		{0, "15 min"},
		{500, "15 min"},
		{501, "30 min"},
		{1000, "30 min"},
		{1001, "45 min"},
		{1500, "45 min"},
		{1501, "60 min"},
	}
	for _, tt := range tests {
		if got := EstimateTime(strings.Repeat("a", tt.length)); got != tt.want {
			t.Fatalf("EstimateTime(len %d) = %q, want %q", tt.length, got, tt.want)
		}
	}
}

func TestEstimateTime_CountsCodeUnitsNotBytes(t *testing.T) {
	// 400 two-byte runes are 800 bytes but 400 code units.
	if got := EstimateTime(strings.Repeat("ñ", 400)); got != "15 min" {
		t.Fatalf("EstimateTime = %q, want 15 min", got)
	}
}

func TestSplitInstructions(t *testing.T) {
	got := SplitInstructions("Step 1\r\nStep 2\n\nStep 3")
	want := []string{"Step 1", "Step 2", "Step 3"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitInstructions = %#v, want %#v", got, want)
	}

	got = SplitInstructions("  a \rb\r\n\r\n  \n c ")
	want = []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitInstructions = %#v, want %#v", got, want)
	}

	if got := SplitInstructions(""); len(got) != 0 {
		t.Fatalf("SplitInstructions(\"\") = %#v, want empty", got)
	}
}

func TestTags_Order(t *testing.T) {
	tests := []struct {
		area, category string
		want           []string
	}{
		{"Italian", "Vegetarian", []string{"Italian", "Vegetariano", "Casero"}},
		{"", "Vegan", []string{"Vegano", "Casero"}},
		{"French", "Dessert", []string{"French", "Dulce", "Casero"}},
		{"British", "Breakfast", []string{"British", "Rápido", "Casero"}},
		{"", "Beef", []string{"Casero"}},
	}
	for _, tt := range tests {
		if got := Tags(tt.area, tt.category); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("Tags(%q, %q) = %#v, want %#v", tt.area, tt.category, got, tt.want)
		}
	}
}

func TestMapCategory(t *testing.T) {
	tests := map[string]string{
		"Breakfast":  "Desayuno",
		"Chicken":    "Almuerzo",
		"Beef":       "Cena",
		"Dessert":    "Postres",
		"Side":       "Snacks",
		"Starter":    "Bebidas",
		"Vegetarian": DefaultCategory,
		"":           DefaultCategory,
	}
	for external, want := range tests {
		if got := MapCategory(external); got != want {
			t.Fatalf("MapCategory(%q) = %q, want %q", external, got, want)
		}
	}
}

func TestTransform_FieldsAndDefaults(t *testing.T) {
	m := mealdb.Meal{
		ID:           "52772",
		Name:         "Teriyaki Chicken Casserole",
		Category:     "Chicken",
		Instructions: "Preheat.\nBake.",
		Thumb:        "https://img/1.jpg",
	}
	m.Ingredients[0] = "soy sauce"
	m.Measures[0] = "3/4 cup"

	r := NewTransformer(7).Transform(m)

	if r.ID != "52772" || r.Title != m.Name || r.Image != m.Thumb {
		t.Fatalf("basic fields = %#v", r)
	}
	if r.Category != "Almuerzo" {
		t.Fatalf("Category = %q, want Almuerzo", r.Category)
	}
	if r.Area != "Internacional" || r.Author != "Chef Internacional" {
		t.Fatalf("Area/Author = %q/%q, want Internacional defaults", r.Area, r.Author)
	}
	if r.Description != "Deliciosa receta de teriyaki chicken casserole con auténtico sabor casero" {
		t.Fatalf("Description = %q", r.Description)
	}
	if !reflect.DeepEqual(r.Tags, []string{"Casero"}) {
		t.Fatalf("Tags = %#v, want [Casero]", r.Tags)
	}
	if r.Servings != 4 || r.PrepTime != "10 min" || r.Time != "15 min" || r.CookTime != r.Time {
		t.Fatalf("servings/times = %d %q %q %q", r.Servings, r.PrepTime, r.Time, r.CookTime)
	}
	if !reflect.DeepEqual(r.Ingredients, []string{"3/4 cup soy sauce"}) {
		t.Fatalf("Ingredients = %#v", r.Ingredients)
	}
	if !reflect.DeepEqual(r.Instructions, []string{"Preheat.", "Bake."}) {
		t.Fatalf("Instructions = %#v", r.Instructions)
	}
	if r.YouTube != "" {
		t.Fatalf("YouTube = %q, want empty", r.YouTube)
	}
}

func TestTransform_RandomValuesInRange(t *testing.T) {
	tr := NewTransformer(42)
	for i := 0; i < 500; i++ {
		r := tr.Transform(mealWithIngredients(3))
		if r.Rating < 4.0 || r.Rating > 5.0 {
			t.Fatalf("Rating = %v, want within [4.0, 5.0]", r.Rating)
		}
		if tenths := r.Rating * 10; math.Abs(tenths-math.Round(tenths)) > 1e-9 {
			t.Fatalf("Rating = %v, want one decimal", r.Rating)
		}
		n := r.Nutrition
		if n.Calories < 250 || n.Calories > 449 {
			t.Fatalf("Calories = %d, want 250..449", n.Calories)
		}
		assertGrams(t, "Protein", n.Protein, 15, 34)
		assertGrams(t, "Carbs", n.Carbs, 25, 54)
		assertGrams(t, "Fat", n.Fat, 10, 24)
	}
}

func assertGrams(t *testing.T, name, value string, lo, hi int) {
	t.Helper()
	var grams int
	if _, err := fmt.Sscanf(value, "%dg", &grams); err != nil || !strings.HasSuffix(value, "g") {
		t.Fatalf("%s = %q, want <n>g", name, value)
	}
	if grams < lo || grams > hi {
		t.Fatalf("%s = %d, want %d..%d", name, grams, lo, hi)
	}
}

func TestTransform_SameSeedIsReproducible(t *testing.T) {
	m := mealWithIngredients(5)
	a := NewTransformer(99).Transform(m)
	b := NewTransformer(99).Transform(m)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed produced different recipes:\n%#v\n%#v", a, b)
	}
}

func TestTransform_ConcurrentUse(t *testing.T) {
	tr := NewTransformer(3)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = tr.Transform(mealWithIngredients(j % 20))
			}
		}()
	}
	wg.Wait()
}

func TestTransformAll_PreservesOrder(t *testing.T) {
	meals := []mealdb.Meal{{ID: "b"}, {ID: "a"}, {ID: "b"}}
	got := NewTransformer(1).TransformAll(meals)
	if len(got) != 3 || got[0].ID != "b" || got[1].ID != "a" || got[2].ID != "b" {
		t.Fatalf("TransformAll ids = %#v", got)
	}
	if NewTransformer(1).TransformAll(nil) != nil {
		t.Fatalf("TransformAll(nil) should be nil")
	}
}
