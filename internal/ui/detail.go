package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/recetasfaciles/recetas/internal/recipe"
)

func (m *Model) initDetailViewport() {
	m.detailViewport = viewport.New(max(m.width-4, 1), max(m.height-chromeHeight-2, 1))
	m.detailViewport.Style = lipgloss.NewStyle()
}

// updateDetailViewport resizes the viewport and re-renders the current
// recipe into it.
func (m *Model) updateDetailViewport() {
	if !m.ready {
		return
	}
	m.detailViewport.Width = max(m.width-4, 1)
	m.detailViewport.Height = max(m.height-chromeHeight-2, 1)
	m.detailViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))
	m.detailViewport.SetContent(m.detailContent(m.detailViewport.Width))
}

// renderDetail renders the detail view box.
func (m Model) renderDetail(width, height int) string {
	title := "Receta"
	if cur := m.snapshot.Current; cur != nil {
		title = cur.Title
	}
	return m.renderTitledBox(title, m.detailViewport.View(), width, height, true)
}

// detailContent renders the current recipe for the viewport.
func (m Model) detailContent(width int) string {
	styles := m.theme.Styles()
	r := m.snapshot.Current
	if r == nil {
		if m.snapshot.Loading {
			return styles.MutedText.Render(m.statusLine())
		}
		return strings.Join([]string{
			styles.Text.Bold(true).Render("😵 Receta no encontrada"),
			styles.MutedText.Render("esc: Volver al inicio"),
		}, "\n")
	}

	servings := m.servings
	if servings <= 0 {
		servings = r.Servings
	}
	wrap := lipgloss.NewStyle().Width(max(width-2, 10))

	var b strings.Builder
	section := func(name string) {
		b.WriteString("\n")
		b.WriteString(styles.AccentText.Bold(true).Render(name))
		b.WriteString("\n")
	}

	heading := r.Title
	if m.browser.IsFavorite(r.ID) {
		heading = "♥ " + heading
	}
	b.WriteString(styles.Text.Bold(true).Render(heading))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(categoryLabel(r.Category) + " · " + r.Area + " · por " + r.Author))
	b.WriteString("\n")
	b.WriteString(wrap.Inherit(styles.Text).Render(r.Description))
	b.WriteString("\n\n")

	stats := []struct{ label, value string }{
		{"Tiempo", r.Time},
		{"Preparación", r.PrepTime},
		{"Cocción", r.CookTime},
		{"Porciones", fmt.Sprintf("%d", r.Servings)},
		{"Dificultad", string(r.Difficulty)},
		{"Valoración", formatRating(r.Rating)},
	}
	for _, s := range stats {
		value := styles.Text.Render(s.value)
		if s.label == "Dificultad" {
			value = styles.DifficultyStyle(r.Difficulty).Render(s.value)
		}
		b.WriteString(styles.FaintText.Render(padRight(s.label, 13)))
		b.WriteString(value)
		b.WriteString("\n")
	}
	if len(r.Tags) > 0 {
		b.WriteString(styles.FaintText.Render(padRight("Etiquetas", 13)))
		b.WriteString(styles.InfoText.Render(strings.Join(r.Tags, ", ")))
		b.WriteString("\n")
	}

	section(fmt.Sprintf("Ingredientes (%s)", plural(servings, "porción", "porciones")))
	for _, ing := range r.Ingredients {
		b.WriteString(wrap.Inherit(styles.Text).Render("• " + recipe.ScaleIngredient(ing, r.Servings, servings)))
		b.WriteString("\n")
	}

	section("Instrucciones")
	for i, step := range r.Instructions {
		b.WriteString(wrap.Inherit(styles.Text).Render(fmt.Sprintf("%d. %s", i+1, step)))
		b.WriteString("\n")
	}

	section("Información nutricional")
	nutrition := []struct{ label, value string }{
		{"Calorías", fmt.Sprintf("%d", recipe.ScaleCalories(r.Nutrition.Calories, r.Servings, servings))},
		{"Proteínas", r.Nutrition.Protein},
		{"Carbohidratos", r.Nutrition.Carbs},
		{"Grasas", r.Nutrition.Fat},
	}
	for _, n := range nutrition {
		b.WriteString(styles.FaintText.Render(padRight(n.label, 15)))
		b.WriteString(styles.Text.Render(n.value))
		b.WriteString("\n")
	}

	if r.YouTube != "" || r.Image != "" {
		section("Enlaces")
		if r.YouTube != "" {
			b.WriteString(styles.FaintText.Render(padRight("Video", 8)))
			b.WriteString(styles.InfoText.Render(r.YouTube))
			b.WriteString("\n")
		}
		if r.Image != "" {
			b.WriteString(styles.FaintText.Render(padRight("Imagen", 8)))
			b.WriteString(styles.InfoText.Render(r.Image))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// categoryLabel prefixes a local category name with its emoji.
func categoryLabel(name string) string {
	if c, ok := recipe.CategoryByName(name); ok {
		return c.Emoji + " " + c.Name
	}
	return name
}
