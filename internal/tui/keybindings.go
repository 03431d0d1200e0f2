package tui

import (
	"charm.land/bubbles/v2/key"

	"github.com/colonyops/chiclet/internal/tui/components"
)

// KeyMap holds the slicer key bindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	Select key.Binding
	Toggle key.Binding
	Range  key.Binding
	Clear  key.Binding

	Search key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll back")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll forward")),

		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Toggle: key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "toggle")),
		Range:  key.NewBinding(key.WithKeys("a", "alt+enter"), key.WithHelp("a", "select range")),
		Clear:  key.NewBinding(key.WithKeys("c", "esc"), key.WithHelp("c", "clear")),

		Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Toggle, k.Range, k.Clear, k.Search, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.PageUp, k.PageDown},
		{k.Select, k.Toggle, k.Range, k.Clear},
		{k.Search, k.Help, k.Quit},
	}
}

// helpSections lists the enabled bindings for the help dialog.
func (k KeyMap) helpSections() []components.HelpDialogSection {
	titles := []string{"Navigation", "Selection", "General"}

	sections := make([]components.HelpDialogSection, 0, len(titles))
	for i, group := range k.FullHelp() {
		section := components.HelpDialogSection{Title: titles[i]}
		for _, b := range group {
			if !b.Enabled() {
				continue
			}
			section.Entries = append(section.Entries, components.HelpEntry{
				Key:  b.Help().Key,
				Desc: b.Help().Desc,
			})
		}
		if len(section.Entries) > 0 {
			sections = append(sections, section)
		}
	}

	sections = append(sections, components.HelpDialogSection{
		Title: "Mouse",
		Entries: []components.HelpEntry{
			{Key: "click", Desc: "select"},
			{Key: "ctrl+click", Desc: "toggle"},
			{Key: "alt+click", Desc: "select range"},
			{Key: "[x]", Desc: "clear"},
		},
	})
	return sections
}
