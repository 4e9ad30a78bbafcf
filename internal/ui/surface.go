package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// surface paints segments onto one background. Each lipgloss render ends
// with a reset, so plain spaces between segments would show the terminal
// background; surface paints those spaces too.
// See: https://github.com/charmbracelet/lipgloss/discussions/78
type surface struct {
	bg    lipgloss.Color
	blank lipgloss.Style
}

func onSurface(color string) surface {
	bg := lipgloss.Color(color)
	return surface{bg: bg, blank: lipgloss.NewStyle().Background(bg)}
}

// paint renders text word by word in style, painting the spaces between
// words with the background.
func (s surface) paint(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	fg := style.Background(s.bg)
	space := s.blank.Render(" ")

	var b strings.Builder
	for {
		word, rest, found := strings.Cut(text, " ")
		if word != "" {
			b.WriteString(fg.Render(word))
		}
		if !found {
			return b.String()
		}
		b.WriteString(space)
		text = rest
	}
}

// gap returns n painted spaces.
func (s surface) gap(n int) string {
	if n <= 0 {
		return ""
	}
	return s.blank.Render(strings.Repeat(" ", n))
}

func (s surface) sep(text string) string {
	return s.blank.Render(text)
}

func (s surface) joinWith(parts []string, sep string) string {
	return strings.Join(parts, s.sep(sep))
}

// fill pads a rendered line to width with the background.
func (s surface) fill(line string, width int) string {
	return s.blank.Width(width).Render(line)
}

// chip renders a padded label, inverted when active.
func (s surface) chip(label string, active bool, idle, on lipgloss.Style) string {
	if active {
		return on.Render(" " + label + " ")
	}
	return s.paint(" "+label+" ", idle)
}

// hint renders "key:desc" for the command bar.
func (s surface) hint(key, desc string, keyStyle, descStyle lipgloss.Style) string {
	return s.paint(key, keyStyle) + s.sep(":") + s.paint(desc, descStyle)
}
