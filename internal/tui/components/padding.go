package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
)

const maxCachedPad = 200

var (
	paddingCache [maxCachedPad + 1]string
	paddingOnce  sync.Once
)

func initPaddingCache() {
	for i := 1; i <= maxCachedPad; i++ {
		paddingCache[i] = strings.Repeat(" ", i)
	}
}

// Pad returns a string of n spaces.
func Pad(n int) string {
	if n <= 0 {
		return ""
	}
	if n <= maxCachedPad {
		paddingOnce.Do(initPaddingCache)
		return paddingCache[n]
	}
	return strings.Repeat(" ", n)
}

// Fit truncates s to width cells, appending tail when it is cut, and pads the
// result with spaces so it occupies exactly width cells.
func Fit(s string, width int, tail string) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) > width {
		s = ansi.Truncate(s, width, tail)
	}
	return s + Pad(width-ansi.StringWidth(s))
}

// Center places s in the middle of width cells, truncating it when needed.
func Center(s string, width int, tail string) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) > width {
		s = ansi.Truncate(s, width, tail)
	}
	gap := width - ansi.StringWidth(s)
	left := gap / 2
	return Pad(left) + s + Pad(gap-left)
}
