package theme

import "github.com/charmbracelet/lipgloss"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Footer FooterTheme
	Panel  PanelTheme
	Editor EditorTheme
}

// FooterTheme groups styles used by the bottom status/help bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// EditorTheme styles the entry editor fields.
type EditorTheme struct {
	Label        lipgloss.Style
	FocusedLabel lipgloss.Style
	Mood         lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	return Theme{
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
		Editor: EditorTheme{
			Label:        label,
			FocusedLabel: label.Copy().Foreground(lipgloss.Color("212")).Bold(true),
			Mood:         lipgloss.NewStyle().Padding(0, 1),
		},
	}
}

// Tinted returns the panel frame with its border drawn in hex. An empty hex
// keeps the default border.
func (t Theme) Tinted(hex string) lipgloss.Style {
	if hex == "" {
		return t.Panel.Frame
	}
	return t.Panel.Frame.Copy().BorderForeground(lipgloss.Color(hex))
}

// Swatch renders label on a hex background, for mood chips.
func (t Theme) Swatch(hex, label string) string {
	style := t.Editor.Mood.Copy()
	if hex != "" {
		style = style.Background(lipgloss.Color(hex)).Foreground(lipgloss.Color("#333333"))
	}
	return style.Render(label)
}
