package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestPad(t *testing.T) {
	assert.Equal(t, "", Pad(-1))
	assert.Equal(t, "", Pad(0))
	assert.Equal(t, "   ", Pad(3))
	assert.Len(t, Pad(250), 250)
}

func TestFit(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{name: "pads", in: "ab", width: 4, want: "ab  "},
		{name: "exact", in: "abcd", width: 4, want: "abcd"},
		{name: "truncates", in: "abcdef", width: 4, want: "abc…"},
		{name: "zero width", in: "abc", width: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fit(tt.in, tt.width, "…")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCenter(t *testing.T) {
	assert.Equal(t, " ab  ", Center("ab", 5, "…"))
	assert.Equal(t, "ab…", Center("abcdef", 3, "…"))
}

func TestHelpDialog_View(t *testing.T) {
	d := NewHelpDialog("Keys", []HelpDialogSection{
		{Title: "Selection", Entries: []HelpEntry{{Key: "enter", Desc: "select"}}},
	})

	out := ansi.Strip(d.View())
	assert.Contains(t, out, "Keys")
	assert.Contains(t, out, "Selection")
	assert.Contains(t, out, "enter")
	assert.Contains(t, out, "select")
}

func TestHelpDialog_AlignsKeys(t *testing.T) {
	d := NewHelpDialog("Keys", []HelpDialogSection{
		{Title: "A", Entries: []HelpEntry{{Key: "q", Desc: "quit"}}},
		{Title: "B", Entries: []HelpEntry{{Key: "enter", Desc: "select"}}},
	})

	out := ansi.Strip(d.View())
	quit := strings.Index(lineWith(out, "quit"), "quit")
	sel := strings.Index(lineWith(out, "select"), "select")
	assert.Equal(t, quit, sel)
}

func TestHelpDialog_Overlay(t *testing.T) {
	d := NewHelpDialog("Keys", []HelpDialogSection{
		{Title: "A", Entries: []HelpEntry{{Key: "q", Desc: "quit"}}},
		{Title: "B", Entries: []HelpEntry{{Key: "enter", Desc: "select"}}},
	})
	bg := strings.TrimSuffix(strings.Repeat(strings.Repeat(".", 80)+"\n", 24), "\n")

	wide := ansi.Strip(d.Overlay(bg, 80, 24))
	assert.Equal(t, lineWith(wide, "quit"), lineWith(wide, "select"), "sections side by side")
	assert.Contains(t, wide, "....", "background shows around the modal")

	narrow := ansi.Strip(d.Overlay(bg, 20, 24))
	assert.NotEqual(t, lineWith(narrow, "quit"), lineWith(narrow, "select"), "sections stacked")
}

func lineWith(s, sub string) string {
	for _, line := range strings.Split(s, "\n") {
		if strings.Contains(line, sub) {
			return line
		}
	}
	return ""
}
