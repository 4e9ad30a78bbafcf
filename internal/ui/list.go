package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/recetasfaciles/recetas/internal/recipe"
)

// renderList renders the recipe or favorites list inside a titled box.
func (m Model) renderList(width, height int) string {
	styles := m.theme.Styles()
	title := "Recetas"
	if m.currentView == ViewFavorites {
		title = "Favoritas"
	}

	page, more := m.page()
	if len(page) == 0 {
		return m.renderTitledBox(title, m.emptyListMessage(width-4), width, height, true)
	}

	inner := width - 2
	perRow := 2
	if m.compact {
		perRow = 1
	}
	capacity := max((height-2-1)/perRow, 1)
	offset := max(m.selectedRow-capacity+1, 0)
	end := min(offset+capacity, len(page))

	var lines []string
	for i := offset; i < end; i++ {
		lines = append(lines, m.renderRow(page[i], inner, i == m.selectedRow)...)
	}
	if more {
		hidden := len(m.rows) - len(page)
		lines = append(lines, onSurface(m.theme.FocusBg).paint(
			fmt.Sprintf("m: Ver más recetas (%d más)", hidden), styles.AccentText))
	}
	return m.renderTitledBox(title, strings.Join(lines, "\n"), width, height, true)
}

// renderRow renders one recipe as one line, or two in the full layout.
func (m Model) renderRow(r recipe.Recipe, width int, selected bool) []string {
	bgColor := m.theme.FocusBg
	if selected {
		bgColor = m.theme.SelectionBg
	}
	bg := onSurface(bgColor)
	styles := m.theme.Styles()

	titleStyle, metaStyle, sepStyle := styles.Text.Bold(true), styles.MutedText, styles.FaintText
	diffStyle, favStyle := styles.DifficultyStyle(r.Difficulty), styles.Favorite
	if selected {
		sel := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		titleStyle, metaStyle, sepStyle, diffStyle, favStyle = sel.Bold(true), sel, sel, sel, sel.Bold(true)
	}

	marker := "  "
	if m.browser.IsFavorite(r.ID) {
		marker = "♥ "
	}

	meta := []string{
		bg.paint(r.Category, metaStyle),
		bg.paint(string(r.Difficulty), diffStyle),
		bg.paint(r.Time, metaStyle),
		bg.paint(formatRating(r.Rating), metaStyle),
	}
	metaText := strings.Join([]string{r.Category, string(r.Difficulty), r.Time, formatRating(r.Rating)}, " · ")
	titleWidth := width - 2
	if width >= LayoutCompactWidth {
		titleWidth = max(width-2-lipgloss.Width(metaText)-3, 10)
	}

	first := bg.paint(marker, favStyle) + bg.paint(truncate(r.Title, titleWidth), titleStyle)
	if width >= LayoutCompactWidth {
		first += bg.paint(" · ", sepStyle) + bg.joinWith(meta, " · ")
	}
	lines := []string{bg.fill(first, width)}

	if !m.compact {
		second := bg.gap(2) + bg.paint(truncate(r.Area+" · "+strings.Join(r.Tags, ", "), width-2), sepStyle)
		if width < LayoutCompactWidth {
			second = bg.gap(2) + bg.paint(truncate(metaText, width-2), metaStyle)
		}
		lines = append(lines, bg.fill(second, width))
	}
	return lines
}

// emptyListMessage explains an empty list.
func (m Model) emptyListMessage(width int) string {
	styles := m.theme.Styles()
	bg := onSurface(m.theme.FocusBg)
	if m.snapshot.Loading {
		return bg.paint(m.statusLine(), styles.MutedText)
	}
	if m.currentView == ViewFavorites {
		return strings.Join([]string{
			bg.paint("💔 Aún no tienes recetas favoritas", styles.Text.Bold(true)),
			bg.paint(truncate("Pulsa s sobre una receta para guardarla y cocinarla más tarde", width), styles.MutedText),
		}, "\n")
	}
	return strings.Join([]string{
		bg.paint("🤷 ¡Ups! No encontramos recetas", styles.Text.Bold(true)),
		bg.paint(truncate("Prueba con otros términos de búsqueda o categorías diferentes", width), styles.MutedText),
	}, "\n")
}

// renderTagPicker renders the tag filter overlay.
func (m Model) renderTagPicker() string {
	styles := m.theme.Styles()
	tags := m.browser.AvailableTags()
	sel := m.browser.Selection()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Filtros"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n")
	for i, tag := range tags {
		box := "[ ] "
		if sel.HasTag(tag) {
			box = "[x] "
		}
		line := box + tag
		if i == m.tagCursor {
			b.WriteString(styles.Selected.Render(padRight(line, 30)))
		} else {
			b.WriteString(styles.Text.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("space: marcar  x: limpiar  esc: cerrar"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(40)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
