package tui

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/chiclet/internal/core/render"
	"github.com/colonyops/chiclet/internal/core/slicer"
	"github.com/colonyops/chiclet/internal/core/styles"
	"github.com/colonyops/chiclet/internal/tui/components"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// footerLines holds the status and help lines.
	footerLines = 2
)

// cutBorder draws chiclets with clipped corners.
var cutBorder = lipgloss.Border{
	Top:         "─",
	Bottom:      "─",
	Left:        "│",
	Right:       "│",
	TopLeft:     "╱",
	TopRight:    "╲",
	BottomLeft:  "╲",
	BottomRight: "╱",
}

// View renders the TUI.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	v := tea.NewView(m.content())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	v.WindowTitle = "chiclet"
	if title := m.title(); title != "" {
		v.WindowTitle += ": " + title
	}
	if bg := m.bodyBackground(); bg != "" {
		v.BackgroundColor = lipgloss.Color(bg)
	}
	return v
}

// content is the screen with the help dialog layered on top when open.
func (m Model) content() string {
	content := m.render()
	if !m.showHelp {
		return content
	}
	w, h := m.size()
	return components.NewHelpDialog("Keyboard shortcuts", m.keys.helpSections()).Overlay(content, w, h)
}

func (m Model) size() (int, int) {
	w, h := m.width, m.height
	if w == 0 {
		w = defaultWidth
	}
	if h == 0 {
		h = defaultHeight
	}
	return w, h
}

func (m Model) layout() gridLayout {
	w, h := m.size()
	top := m.gridTop()
	in := layoutInput{
		count:  len(m.display),
		width:  w,
		top:    top,
		height: max(h-top-footerLines, 1),
		scroll: m.scroll,
	}
	if m.res != nil {
		in.settings = m.res.Settings
		in.hasImages = slices.ContainsFunc(m.display, func(dp *slicer.DataPoint) bool {
			return dp.ImageURL != ""
		})
	}
	return computeLayout(in)
}

func (m Model) headerShown() bool {
	return m.res != nil && m.res.Settings.Header.Show
}

func (m Model) headerLines() int {
	if !m.headerShown() {
		return 0
	}
	hs := m.res.Settings.Header
	if outlineOf(hs.Outline, hs.OutlineWeight).bottom {
		return 2
	}
	return 1
}

func (m Model) searchShown() bool {
	return m.res != nil && m.res.Settings.General.SelfFilterEnabled
}

func (m Model) gridTop() int {
	top := m.headerLines()
	if m.searchShown() {
		top++
	}
	return top
}

// clearButton is the clickable area of the header's clear button.
func (m Model) clearButton() rect {
	if !m.headerShown() {
		return rect{}
	}
	w, _ := m.size()
	bw := ansi.StringWidth(styles.IconClear)
	return rect{x: w - bw, y: 0, w: bw, h: 1}
}

func (m Model) title() string {
	if m.res == nil {
		return ""
	}
	if t := m.res.Settings.Header.Title; t != "" {
		return t
	}
	return m.res.CategorySourceName
}

func (m Model) bodyBackground() string {
	if m.res == nil {
		return ""
	}
	return render.BodyBackground(m.res.Settings.Chiclet, styles.Hex(styles.ColorBackground))
}

func (m Model) render() string {
	w, h := m.size()

	if m.loading && m.view == nil {
		return m.spinner.View() + " Loading…"
	}

	var parts []string
	if m.headerShown() {
		parts = append(parts, m.renderHeader(w)...)
	}
	if m.searchShown() {
		parts = append(parts, m.search.View())
	}

	gridHeight := max(h-m.gridTop()-footerLines, 1)
	parts = append(parts,
		padLines(m.renderGrid(), gridHeight),
		m.renderStatus(w),
		styles.HelpStyle.Render(m.help.View(m.keys)),
	)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHeader(w int) []string {
	hs := m.res.Settings.Header
	bw := ansi.StringWidth(styles.IconClear)

	title := components.Fit(m.title(), max(w-bw-1, 0), styles.IconMore)
	titleStyle := withColors(lipgloss.NewStyle().Bold(true), hs.FontColor, hs.Background)
	lines := []string{titleStyle.Render(title) + " " + styles.ClearButtonStyle.Render(styles.IconClear)}

	if outlineOf(hs.Outline, hs.OutlineWeight).bottom {
		divider := withColors(lipgloss.NewStyle(), hs.OutlineColor, "")
		lines = append(lines, divider.Render(strings.Repeat("─", w)))
	}
	return lines
}

func (m Model) renderGrid() string {
	if m.res == nil {
		return styles.EmptyStyle.Render("No data to display")
	}
	if len(m.display) == 0 {
		return styles.EmptyStyle.Render("No matching items")
	}

	lay := m.layout()
	points := make([]*slicer.DataPoint, len(lay.visible))
	for i, c := range lay.visible {
		points[i] = m.display[c.pos]
	}
	attrs := render.Pass(points, m.machine.Selection(), m.machine.HasSelection(), m.res.Settings.Chiclet)

	outerH := lay.innerH + borderSize
	gap := strings.TrimSuffix(strings.Repeat(components.Pad(cellGap)+"\n", outerH), "\n")

	var (
		rows []string
		row  []string
		y    = -1
	)
	for i, c := range lay.visible {
		if c.y != y && row != nil {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
		y = c.y
		if row != nil {
			row = append(row, gap)
		}
		row = append(row, m.renderCell(points[i], attrs[i], lay))
	}
	if row != nil {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderCell(dp *slicer.DataPoint, attr render.Attributes, lay gridLayout) string {
	s := m.res.Settings

	lines := make([]string, lay.innerH)
	for i := range lines {
		lines[i] = components.Pad(lay.innerW)
	}

	textTop, textH := 0, lay.innerH-lay.imageLines
	if lay.imageLines > 0 {
		imageTop := 0
		if s.Images.BottomImage {
			imageTop = textH
		} else {
			textTop = lay.imageLines
		}
		if dp.ImageURL != "" {
			label := imageLabel(dp.ImageURL)
			line := components.Center(label, lay.innerW, styles.IconMore)
			if s.Images.StretchImage {
				line = components.Fit(label, lay.innerW, styles.IconMore)
			}
			lines[imageTop+(lay.imageLines-1)/2] = line
		}
	}
	lines[textTop+(textH-1)/2] = components.Center(dp.Category, lay.innerW, styles.IconMore)

	st := lipgloss.NewStyle().Border(chicletBorder(s.Chiclet))
	if c := s.Chiclet.OutlineColor; c != "" {
		st = st.BorderForeground(lipgloss.Color(c))
	}
	st = withColors(st, attr.Foreground, attr.Background)
	switch {
	case attr.Disabled:
		st = st.Faint(true)
	case attr.State == render.StateSelected:
		st = st.Bold(true)
	}
	return st.Render(strings.Join(lines, "\n"))
}

func (m Model) renderStatus(w int) string {
	if m.err != nil {
		return styles.StatusErrorStyle.Render(components.Fit("error: "+m.err.Error(), w, styles.IconMore))
	}

	var parts []string
	if m.res != nil {
		parts = append(parts,
			fmt.Sprintf("%d of %d", len(m.display), m.res.Points.Len()),
			fmt.Sprintf("%d selected", m.machine.Selection().Len()),
		)
	}
	if m.machine.Pending() {
		parts = append(parts, "syncing")
	}
	if m.view != nil && m.view.Metadata.Segment {
		parts = append(parts, "more available")
	}

	line := strings.Join(parts, " · ")
	if m.loadingMore {
		line = m.spinner.View() + " loading more " + line
	}
	return styles.StatusStyle.Render(components.Fit(line, w, styles.IconMore))
}

// sides says which edges of a box are outlined.
type sides struct {
	top, bottom, left, right bool
}

func outlineOf(outline string, weight int) sides {
	if weight <= 0 {
		return sides{}
	}
	switch outline {
	case "Frame":
		return sides{top: true, bottom: true, left: true, right: true}
	case "TopBottom":
		return sides{top: true, bottom: true}
	case "LeftRight":
		return sides{left: true, right: true}
	case "TopOnly":
		return sides{top: true}
	case "BottomOnly":
		return sides{bottom: true}
	case "LeftOnly":
		return sides{left: true}
	case "RightOnly":
		return sides{right: true}
	default:
		return sides{}
	}
}

// chicletBorder picks the border for the configured style and blanks the
// edges that are not outlined. Every edge keeps its cell, so chiclet
// geometry does not depend on the outline.
func chicletBorder(ch slicer.ChicletSettings) lipgloss.Border {
	var b lipgloss.Border
	switch ch.BorderStyle {
	case slicer.BorderRounded:
		b = lipgloss.RoundedBorder()
	case slicer.BorderSquare:
		b = lipgloss.NormalBorder()
		if ch.OutlineWeight > 1 {
			b = lipgloss.ThickBorder()
		}
	default:
		b = cutBorder
	}
	return maskBorder(b, outlineOf(ch.Outline, ch.OutlineWeight))
}

func maskBorder(b lipgloss.Border, s sides) lipgloss.Border {
	corner := func(c, horizontal, vertical string, h, v bool) string {
		switch {
		case h && v:
			return c
		case h:
			return horizontal
		case v:
			return vertical
		default:
			return " "
		}
	}

	return lipgloss.Border{
		Top:         edge(b.Top, s.top),
		Bottom:      edge(b.Bottom, s.bottom),
		Left:        edge(b.Left, s.left),
		Right:       edge(b.Right, s.right),
		TopLeft:     corner(b.TopLeft, b.Top, b.Left, s.top, s.left),
		TopRight:    corner(b.TopRight, b.Top, b.Right, s.top, s.right),
		BottomLeft:  corner(b.BottomLeft, b.Bottom, b.Left, s.bottom, s.left),
		BottomRight: corner(b.BottomRight, b.Bottom, b.Right, s.bottom, s.right),
	}
}

func edge(c string, shown bool) string {
	if shown {
		return c
	}
	return " "
}

// imageLabel stands in for an image the terminal cannot draw.
func imageLabel(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return styles.IconImage
	}
	return styles.IconImage + " " + u.Host
}

func withColors(st lipgloss.Style, fg, bg string) lipgloss.Style {
	if fg != "" {
		st = st.Foreground(lipgloss.Color(fg))
	}
	if bg != "" {
		st = st.Background(lipgloss.Color(bg))
	}
	return st
}

// padLines pads s with blank lines to at least n lines.
func padLines(s string, n int) string {
	count := strings.Count(s, "\n") + 1
	if count >= n {
		return s
	}
	return s + strings.Repeat("\n", n-count)
}
