package recipe

// DefaultCategory is used when the external category has no mapping.
const DefaultCategory = "Almuerzo"

// Category maps a display category to the external category it is fetched by.
type Category struct {
	Name     string
	Emoji    string
	External string
}

var categories = []Category{
	{Name: "Desayuno", Emoji: "🥞", External: "Breakfast"},
	{Name: "Almuerzo", Emoji: "🍽️", External: "Chicken"},
	{Name: "Cena", Emoji: "🍖", External: "Beef"},
	{Name: "Postres", Emoji: "🍰", External: "Dessert"},
	{Name: "Snacks", Emoji: "🍿", External: "Side"},
	{Name: "Bebidas", Emoji: "🥤", External: "Starter"},
}

// Categories returns the display categories in menu order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// CategoryByName finds a category by its display name.
func CategoryByName(name string) (Category, bool) {
	for _, c := range categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryByExternal finds the category mapped to an external category name.
func CategoryByExternal(external string) (Category, bool) {
	for _, c := range categories {
		if c.External == external {
			return c, true
		}
	}
	return Category{}, false
}
