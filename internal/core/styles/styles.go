// Package styles holds the terminal palette and the lipgloss styles used for
// chrome around the chiclet grid. Chiclet colours themselves come from the
// slicer settings, not from the theme.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	DividerStyle       lipgloss.Style
	SuccessStyle       lipgloss.Style
	WarningStyle       lipgloss.Style
	ErrorStyle         lipgloss.Style

	// TUI chrome.
	ClearButtonStyle  lipgloss.Style
	SearchPromptStyle lipgloss.Style
	SpinnerStyle      lipgloss.Style
	StatusStyle       lipgloss.Style
	StatusErrorStyle  lipgloss.Style
	HelpStyle         lipgloss.Style
	EmptyStyle        lipgloss.Style

	// Text styles.
	TextForegroundStyle     lipgloss.Style
	TextForegroundBoldStyle lipgloss.Style
	TextMutedStyle          lipgloss.Style
	TextPrimaryBoldStyle    lipgloss.Style

	// Help dialog.
	HelpDialogModalStyle   lipgloss.Style
	HelpDialogSectionStyle lipgloss.Style
	HelpDialogHelpStyle    lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	ErrorStyle = lipgloss.NewStyle().Foreground(ColorError).Bold(true)

	ClearButtonStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)
	SearchPromptStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary)
	SpinnerStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)
	StatusStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError)
	HelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	EmptyStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)

	TextForegroundStyle = lipgloss.NewStyle().Foreground(ColorForeground)
	TextForegroundBoldStyle = TextForegroundStyle.Bold(true)
	TextMutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	TextPrimaryBoldStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)

	HelpDialogModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Background(ColorSurface).
		Padding(1, 2)
	HelpDialogSectionStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)
	HelpDialogHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)
}

// Apply activates the named theme, falling back to the default when the name
// is unknown. It reports whether the requested theme was found.
func Apply(name string) bool {
	p, ok := themes[name]
	if !ok {
		p = themes[DefaultTheme]
	}
	SetTheme(p)
	return ok
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
