// Package themes holds the color themes of the interactive screen.
package themes

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Normal     lipgloss.Style
	Bold       lipgloss.Style
	Code       lipgloss.Style
	RoundedBox lipgloss.Style
	SpamLabel  lipgloss.Style
	HamLabel   lipgloss.Style
	StatusWarn lipgloss.Style
	StatusErr  lipgloss.Style
	StatusInfo lipgloss.Style
	StatusIdle lipgloss.Style
	Name       string
	Primary    lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Foreground lipgloss.Color
	Spam       lipgloss.Color
	Ham        lipgloss.Color
	Warning    lipgloss.Color
	Info       lipgloss.Color
}

type palette struct {
	name, primary, muted, border, fg, subtle, codeBg, spam, ham, warning, info string
}

func newTheme(p palette) Theme {
	return Theme{
		Name:       p.name,
		Primary:    lipgloss.Color(p.primary),
		Muted:      lipgloss.Color(p.muted),
		Border:     lipgloss.Color(p.border),
		Foreground: lipgloss.Color(p.fg),
		Spam:       lipgloss.Color(p.spam),
		Ham:        lipgloss.Color(p.ham),
		Warning:    lipgloss.Color(p.warning),
		Info:       lipgloss.Color(p.info),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.primary)).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.subtle)),
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.fg)),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.fg)),
		Code: lipgloss.NewStyle().
			Background(lipgloss.Color(p.codeBg)).
			Foreground(lipgloss.Color(p.fg)).
			Padding(0, 1),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.border)).
			Padding(1, 2),
		SpamLabel: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.spam)).
			Bold(true),
		HamLabel: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.ham)).
			Bold(true),
		StatusWarn: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.warning)).
			Bold(true),
		StatusErr: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.spam)).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.info)),
		StatusIdle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)).
			Italic(true),
	}
}

// Default is the default theme.
var Default = newTheme(palette{
	name:    "default",
	primary: "#7c3aed",
	muted:   "#737373",
	border:  "#404040",
	fg:      "#fafafa",
	subtle:  "#a3a3a3",
	codeBg:  "#262626",
	spam:    "#ef4444",
	ham:     "#10b981",
	warning: "#f59e0b",
	info:    "#3b82f6",
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(palette{
	name:    "catppuccin",
	primary: "#cba6f7",
	muted:   "#6c7086",
	border:  "#45475a",
	fg:      "#cdd6f4",
	subtle:  "#a6adc8",
	codeBg:  "#313244",
	spam:    "#f38ba8",
	ham:     "#a6e3a1",
	warning: "#f9e2af",
	info:    "#89dceb",
})

var registry = map[string]Theme{
	Default.Name:         Default,
	CatppuccinMocha.Name: CatppuccinMocha,
}

// ByName returns the theme with the given name.
func ByName(name string) (Theme, bool) {
	t, ok := registry[name]
	return t, ok
}

// Names lists the available theme names.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
