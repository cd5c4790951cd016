package render

import "github.com/charmbracelet/lipgloss"

// Theme holds the styles for one presentation mode
type Theme struct {
	Name        string
	Title       lipgloss.Style
	Heading     lipgloss.Style
	Muted       lipgloss.Style
	Accent      lipgloss.Style
	Busy        lipgloss.Style
	Notice      lipgloss.Style
	Box         lipgloss.Style
	Placeholder lipgloss.Style
}

// LightTheme is the default presentation
func LightTheme() Theme {
	return Theme{
		Name:    "light",
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4F46E5")),
		Heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#111827")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")),
		Busy:    lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#7C3AED")),
		Notice:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#B45309")),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#D1D5DB")).
			Foreground(lipgloss.Color("#111827")).
			Padding(0, 1),
		Placeholder: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#D1D5DB")).
			Foreground(lipgloss.Color("#6B7280")).
			Padding(0, 2),
	}
}

// DarkTheme mirrors LightTheme for dark terminals
func DarkTheme() Theme {
	return Theme{
		Name:    "dark",
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A78BFA")),
		Heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F9FAFB")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("#60A5FA")),
		Busy:    lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#C4B5FD")),
		Notice:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FACC15")),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4B5563")).
			Foreground(lipgloss.Color("#F9FAFB")).
			Padding(0, 1),
		Placeholder: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#4B5563")).
			Foreground(lipgloss.Color("#9CA3AF")).
			Padding(0, 2),
	}
}

// ThemeFor picks the theme for the dark flag
func ThemeFor(dark bool) Theme {
	if dark {
		return DarkTheme()
	}
	return LightTheme()
}
