// Package render computes the visual attributes of chiclets from the
// host's acknowledged selection. It holds no state between passes.
package render

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/colonyops/chiclet/internal/core/identity"
	"github.com/colonyops/chiclet/internal/core/slicer"
)

// State is the visible style state of a single chiclet.
type State int

const (
	StateUnselected State = iota
	StateSelected
	StateDisabled
)

func (s State) String() string {
	switch s {
	case StateSelected:
		return "selected"
	case StateDisabled:
		return "disabled"
	default:
		return "unselected"
	}
}

// StateOf derives the style state from selectability and set membership.
func StateOf(dp *slicer.DataPoint, set identity.Set) State {
	switch {
	case !dp.Selectable:
		return StateDisabled
	case set.Has(dp.Identity):
		return StateSelected
	default:
		return StateUnselected
	}
}

// Attributes are the computed visuals for one chiclet.
type Attributes struct {
	State      State
	Background string
	Foreground string
	Disabled   bool
}

// Style returns the attributes for dp given the selected identity set.
func Style(dp *slicer.DataPoint, set identity.Set, s slicer.ChicletSettings) Attributes {
	return attributes(dp, StateOf(dp, set), s)
}

// Pass styles every point. When nothing is selected anywhere, selectable
// points take the unselected colour without consulting the set.
func Pass(points []*slicer.DataPoint, set identity.Set, hasSelection bool, s slicer.ChicletSettings) []Attributes {
	out := make([]Attributes, len(points))
	for i, dp := range points {
		if !hasSelection {
			state := StateUnselected
			if !dp.Selectable {
				state = StateDisabled
			}
			out[i] = attributes(dp, state, s)
			continue
		}
		out[i] = Style(dp, set, s)
	}
	return out
}

func attributes(dp *slicer.DataPoint, state State, s slicer.ChicletSettings) Attributes {
	a := Attributes{
		State:      state,
		Foreground: s.FontColor,
		Disabled:   state == StateDisabled,
	}

	switch state {
	case StateDisabled:
		a.Background = s.DisabledColor
	case StateSelected:
		a.Background = s.SelectedColor
	default:
		a.Background = s.UnselectedColor
	}

	// Disabled chiclets never take the hover colour.
	if dp.Hovered && !a.Disabled {
		a.Foreground = s.HoverColor
	}
	return a
}

// BodyBackground returns the chiclet body background blended toward base by
// the transparency percentage. It returns "" when no background is set or
// the colour cannot be parsed.
func BodyBackground(s slicer.ChicletSettings, base string) string {
	if s.Background == "" {
		return ""
	}

	c, err := colorful.Hex(s.Background)
	if err != nil {
		return ""
	}
	if s.Transparency <= 0 {
		return c.Hex()
	}

	b, err := colorful.Hex(base)
	if err != nil {
		return c.Hex()
	}

	t := float64(min(s.Transparency, 100)) / 100
	return c.BlendRgb(b, t).Clamped().Hex()
}
