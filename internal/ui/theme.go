package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/recetasfaciles/recetas/internal/recipe"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header, command bar, footer
	SurfaceAlt string // Unfocused panes
	FocusBg    string // Focused pane

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	Text     string
	Muted    string
	Faint    string
	Accent   string
	Success  string
	Warning  string
	Danger   string
	Info     string
	Favorite string

	DifficultyColors map[recipe.Difficulty]string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		FaintText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		AccentText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		SuccessText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Bold(true),
		WarningText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		DangerText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),
		InfoText:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Info)),
		Favorite:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Favorite)).Bold(true),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		difficultyColors: t.DifficultyColors,
		muted:            t.Muted,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style
	Favorite    lipgloss.Style

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style

	difficultyColors map[recipe.Difficulty]string
	muted            string
}

// DifficultyStyle returns the foreground style for a difficulty label.
func (s Styles) DifficultyStyle(d recipe.Difficulty) lipgloss.Style {
	color := s.difficultyColors[d]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// WithBackground returns a copy of Styles with every style on bgColor.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	return Styles{
		Text:        s.Text.Background(bg),
		MutedText:   s.MutedText.Background(bg),
		FaintText:   s.FaintText.Background(bg),
		AccentText:  s.AccentText.Background(bg),
		SuccessText: s.SuccessText.Background(bg),
		WarningText: s.WarningText.Background(bg),
		DangerText:  s.DangerText.Background(bg),
		InfoText:    s.InfoText.Background(bg),
		Favorite:    s.Favorite.Background(bg),

		Header:   s.Header.Background(bg),
		Footer:   s.Footer.Background(bg),
		Logo:     s.Logo.Background(bg),
		Selected: s.Selected,

		difficultyColors: s.difficultyColors,
		muted:            s.muted,
	}
}

var themes = map[string]Theme{
	"Naranja": naranjaTheme(),
	"Noche":   nocheTheme(),
	"Menta":   mentaTheme(),
}

var themeOrder = []string{"Naranja", "Noche", "Menta"}

// GetTheme returns a theme by name, falling back to Naranja.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return naranjaTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return append([]string(nil), themeOrder...)
}

func naranjaTheme() Theme {
	// Tailwind orange/pink, the RecetasFáciles brand gradient
	return Theme{
		Name: "Naranja",

		Background: "#1c1210",
		Surface:    "#2a1a16",
		SurfaceAlt: "#231613",
		FocusBg:    "#33201b",

		SelectionBg:   "#ea580c", // orange-600
		SelectionText: "#fff7ed", // orange-50

		Border:      "#7c2d12", // orange-900
		BorderFocus: "#fb923c", // orange-400

		Text:     "#ffedd5", // orange-100
		Muted:    "#fdba74", // orange-300
		Faint:    "#9a3412", // orange-800
		Accent:   "#ec4899", // pink-500
		Success:  "#22c55e", // green-500
		Warning:  "#f59e0b", // amber-500
		Danger:   "#ef4444", // red-500
		Info:     "#f472b6", // pink-400
		Favorite: "#f43f5e", // rose-500

		DifficultyColors: map[recipe.Difficulty]string{
			recipe.DifficultyEasy:   "#22c55e",
			recipe.DifficultyMedium: "#f59e0b",
			recipe.DifficultyHard:   "#ef4444",
		},
	}
}

func nocheTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: "Noche",

		Background: "#131a24", // bg0
		Surface:    "#192330", // bg1
		SurfaceAlt: "#212e3f", // bg2
		FocusBg:    "#29394f", // bg3

		SelectionBg:   "#2b3b51", // sel0
		SelectionText: "#cdcecf", // fg1

		Border:      "#39506d", // bg4
		BorderFocus: "#719cd6", // blue

		Text:     "#cdcecf", // fg1
		Muted:    "#738091", // comment
		Faint:    "#71839b", // fg3
		Accent:   "#719cd6", // blue
		Success:  "#81b29a", // green
		Warning:  "#dbc074", // yellow
		Danger:   "#c94f6d", // red
		Info:     "#63cdcf", // cyan
		Favorite: "#d67ad2", // pink

		DifficultyColors: map[recipe.Difficulty]string{
			recipe.DifficultyEasy:   "#81b29a",
			recipe.DifficultyMedium: "#dbc074",
			recipe.DifficultyHard:   "#c94f6d",
		},
	}
}

func mentaTheme() Theme {
	// Tailwind emerald/teal palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Menta",

		Background: "#022c22", // emerald-950
		Surface:    "#064e3b", // emerald-900
		SurfaceAlt: "#053d30",
		FocusBg:    "#065f46", // emerald-800

		SelectionBg:   "#0d9488", // teal-600
		SelectionText: "#f0fdfa", // teal-50

		Border:      "#047857", // emerald-700
		BorderFocus: "#2dd4bf", // teal-400

		Text:     "#ecfdf5", // emerald-50
		Muted:    "#6ee7b7", // emerald-300
		Faint:    "#34d399", // emerald-400
		Accent:   "#2dd4bf", // teal-400
		Success:  "#a3e635", // lime-400
		Warning:  "#fbbf24", // amber-400
		Danger:   "#fb7185", // rose-400
		Info:     "#67e8f9", // cyan-300
		Favorite: "#fb7185", // rose-400

		DifficultyColors: map[recipe.Difficulty]string{
			recipe.DifficultyEasy:   "#a3e635",
			recipe.DifficultyMedium: "#fbbf24",
			recipe.DifficultyHard:   "#fb7185",
		},
	}
}
