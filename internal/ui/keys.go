package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit          key.Binding
	Help          key.Binding
	CycleTheme    key.Binding
	ToggleCompact key.Binding
	Escape        key.Binding

	// View switching
	ViewRecipes   key.Binding
	ViewFavorites key.Binding
	Tab           key.Binding

	// Browsing
	Search         key.Binding
	Random         key.Binding
	Categories     [6]key.Binding
	Tags           key.Binding
	ClearFilters   key.Binding
	ShowMore       key.Binding
	ToggleFavorite key.Binding
	Open           key.Binding

	// Tag picker
	ToggleTag key.Binding

	// Detail
	MoreServings  key.Binding
	LessServings  key.Binding
	ResetServings key.Binding

	// Navigation
	Up           key.Binding
	Down         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding

	// Search/input
	Confirm key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	k := keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Salir"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Ayuda"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cambiar tema"),
		),
		ToggleCompact: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "Vista compacta"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "Volver"),
		),

		ViewRecipes: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Todas las recetas"),
		),
		ViewFavorites: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Favoritas"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Cambiar vista"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Buscar"),
		),
		Random: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Recetas al azar"),
		),
		Tags: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Filtros"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Quitar filtros"),
		),
		ShowMore: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Ver más recetas"),
		),
		ToggleFavorite: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Guardar favorita"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Ver receta"),
		),

		ToggleTag: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "Marcar filtro"),
		),

		MoreServings: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Más porciones"),
		),
		LessServings: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Menos porciones"),
		),
		ResetServings: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "Porciones originales"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Subir"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Bajar"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Inicio"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Final"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("ctrl+u", "Media página arriba"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("ctrl+d", "Media página abajo"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirmar"),
		),
	}
	for i := range k.Categories {
		n := string(rune('1' + i))
		k.Categories[i] = key.NewBinding(
			key.WithKeys(n),
			key.WithHelp(n, "Categoría"),
		)
	}
	return k
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ViewRecipes, k.ViewFavorites, k.Tab, k.Escape},
		{k.Up, k.Down, k.Top, k.Bottom, k.HalfPageDown, k.HalfPageUp},
		{k.Search, k.Random, k.Tags, k.ClearFilters, k.ShowMore, k.Open, k.ToggleFavorite},
		{k.MoreServings, k.LessServings, k.ResetServings},
		{k.CycleTheme, k.ToggleCompact, k.Help, k.Quit},
	}
}
