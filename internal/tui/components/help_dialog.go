// Package components provides reusable TUI components.
package components

import (
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/chiclet/internal/core/styles"
)

// HelpEntry is one key and what it does.
type HelpEntry struct {
	Key  string
	Desc string
}

// HelpDialogSection groups related help entries under a title.
type HelpDialogSection struct {
	Title   string
	Entries []HelpEntry
}

// HelpDialog is a modal listing key bindings by section.
type HelpDialog struct {
	title    string
	sections []HelpDialogSection
	keyWidth int
}

// NewHelpDialog creates a help dialog. Keys are aligned across all sections.
func NewHelpDialog(title string, sections []HelpDialogSection) *HelpDialog {
	keyWidth := 0
	for _, s := range sections {
		for _, e := range s.Entries {
			keyWidth = max(keyWidth, lipgloss.Width(e.Key))
		}
	}
	return &HelpDialog{title: title, sections: sections, keyWidth: keyWidth}
}

// View renders the dialog with sections stacked.
func (h *HelpDialog) View() string {
	return h.render(lipgloss.JoinVertical(lipgloss.Left, h.columns(1)...))
}

// Overlay composites the dialog centred over background. Sections are laid
// out side by side when they fit within width.
func (h *HelpDialog) Overlay(background string, width, height int) string {
	modal := h.render(lipgloss.JoinHorizontal(lipgloss.Top, h.columns(2)...))
	if lipgloss.Width(modal) > width {
		modal = h.View()
	}

	x := max((width-lipgloss.Width(modal))/2, 0)
	y := max((height-lipgloss.Height(modal))/2, 0)

	return lipgloss.NewCompositor(
		lipgloss.NewLayer(background),
		lipgloss.NewLayer(modal).X(x).Y(y).Z(1),
	).Render()
}

// columns renders each section as a block separated by gap blank cells
// (horizontally) or lines (vertically).
func (h *HelpDialog) columns(gap int) []string {
	blocks := make([]string, 0, len(h.sections))
	for i, s := range h.sections {
		var b strings.Builder
		if i > 0 && gap == 1 {
			b.WriteString("\n")
		}
		if s.Title != "" {
			b.WriteString(styles.HelpDialogSectionStyle.Render(s.Title))
			b.WriteString("\n")
		}
		for j, e := range s.Entries {
			if j > 0 {
				b.WriteString("\n")
			}
			b.WriteString(h.entry(e))
		}

		block := b.String()
		if i > 0 && gap > 1 {
			block = lipgloss.NewStyle().PaddingLeft(gap * 2).Render(block)
		}
		blocks = append(blocks, block)
	}
	return blocks
}

func (h *HelpDialog) entry(e HelpEntry) string {
	key := e.Key + Pad(h.keyWidth-lipgloss.Width(e.Key)+2)
	return styles.TextPrimaryBoldStyle.Render(key) + styles.TextForegroundStyle.Render(e.Desc)
}

func (h *HelpDialog) render(body string) string {
	return styles.HelpDialogModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.TextForegroundBoldStyle.Render(h.title),
		"",
		body,
		styles.HelpDialogHelpStyle.Render("esc/? close"),
	))
}
