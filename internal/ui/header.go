package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/recetasfaciles/recetas/internal/recipe"
)

const brandName = "RecetasFáciles"

// renderMain renders the full screen for the list and detail views.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderContent() string {
	height := max(m.height-chromeHeight, 3)
	if m.currentView == ViewDetail {
		return m.renderDetail(m.width, height)
	}
	return m.renderList(m.width, height)
}

// renderHeader renders the brand, the list summary and the last error.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := onSurface(m.theme.Surface)
	sep := bg.gap(2)

	parts := []string{
		bg.paint("🍳 "+brandName, styles.Logo),
		bg.paint(m.statusLine(), styles.Text),
	}
	if n := m.browser.FavoriteCount(); n > 0 {
		parts = append(parts, bg.paint("♥ "+plural(n, "favorita", "favoritas"), styles.Favorite))
	}
	if m.snapshot.Err != "" {
		parts = append(parts, bg.paint(m.snapshot.Err, styles.DangerText))
	}
	if m.notice != "" {
		parts = append(parts, bg.paint(m.notice, styles.WarningText))
	}
	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// renderFilterBar shows the search box while searching, otherwise the
// category chips and selected tags.
func (m Model) renderFilterBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := onSurface(m.theme.Surface)

	if m.searching {
		return styles.Header.Width(m.width).Render(m.searchInput.View())
	}

	switch m.currentView {
	case ViewFavorites:
		return styles.Header.Width(m.width).Render(
			bg.paint("Mis Recetas Favoritas ❤️", styles.AccentText.Bold(true)))
	case ViewDetail:
		return styles.Header.Width(m.width).Render(
			bg.paint("Receta", styles.AccentText.Bold(true)))
	}

	sel := m.browser.Selection()
	active := lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.SelectionBg)).
		Foreground(lipgloss.Color(m.theme.SelectionText)).
		Bold(true)
	var chips []string
	for i, c := range recipe.Categories() {
		label := string(rune('1'+i)) + " " + c.Emoji + " " + c.Name
		chips = append(chips, bg.chip(label, sel.HasCategory(c.Name), styles.MutedText, active))
	}
	line := strings.Join(chips, bg.gap(1))

	if tags := sel.Tags(); len(tags) > 0 {
		line += bg.gap(2) + bg.paint("Filtros ("+strconv.Itoa(len(tags))+"): "+strings.Join(tags, ", "), styles.InfoText)
	}
	if term := strings.TrimSpace(m.snapshot.SearchTerm); term != "" && m.snapshot.HasSearched {
		line += bg.gap(2) + bg.paint("/"+truncate(term, 24), styles.AccentText)
	}
	return styles.Header.Width(m.width).MaxWidth(m.width).Render(line)
}

// renderCommandBar lists the keys for the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := onSurface(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch {
	case m.searching:
		commands = []cmd{{"enter", "Buscar"}, {"esc", "Cancelar"}}
	case m.currentView == ViewDetail:
		commands = []cmd{
			{"esc", "Volver"},
			{"s", "Favorita"},
			{"+/-", "Porciones"},
			{"0", "Original"},
			{"j/k", "Desplazar"},
			{"?", "Más"},
		}
	default:
		commands = []cmd{
			{"/", "Buscar"},
			{"1-6", "Categorías"},
			{"f", "Filtros"},
			{"x", "Quitar filtros"},
			{"enter", "Ver"},
			{"s", "Favorita"},
		}
		if _, more := m.page(); more {
			commands = append(commands, cmd{"m", "Ver más"})
		}
		if m.currentView == ViewFavorites {
			commands = append(commands, cmd{"a", "Todas"})
		} else {
			commands = append(commands, cmd{"v", "Favoritas"})
		}
		commands = append(commands, cmd{"?", "Más"})
	}

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments, bg.hint(c.key, c.desc, styles.AccentText, styles.MutedText))
	}
	segments = append(segments, bg.hint("T", m.theme.Name, styles.AccentText, styles.FaintText))

	return styles.Header.Width(m.width).MaxWidth(m.width).Render(strings.Join(segments, bg.gap(2)))
}

// renderFooter renders the attribution line.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := onSurface(m.theme.Surface)
	return styles.Footer.Width(m.width).Align(lipgloss.Center).Render(
		bg.paint(footerText(m.authorName, m.authorURL), styles.FaintText))
}

// footerText builds "© 2025 - Hecho por <name> (<url>)", leaving out what
// is not configured.
func footerText(name, url string) string {
	name, url = strings.TrimSpace(name), strings.TrimSpace(url)
	text := brandName + " · Cocinando sonrisas desde 2025 🍽️✨ · © 2025"
	switch {
	case name != "" && url != "":
		return text + " - Hecho por " + name + " (" + url + ")"
	case name != "":
		return text + " - Hecho por " + name
	case url != "":
		return text + " - " + url
	}
	return text
}
