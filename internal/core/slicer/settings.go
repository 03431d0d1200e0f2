package slicer

import "github.com/colonyops/chiclet/internal/core/dataview"

// Orientation values.
const (
	OrientationHorizontal = "Horizontal"
	OrientationVertical   = "Vertical"
)

// ShowDisabled values control where non-selectable chiclets are placed.
const (
	ShowDisabledInplace = "Inplace"
	ShowDisabledBottom  = "Bottom"
	ShowDisabledHide    = "Hide"
)

// Border styles.
const (
	BorderRounded = "Rounded"
	BorderCut     = "Cut"
	BorderSquare  = "Square"
)

// Image split bounds, in percent.
const (
	MinImageSplit = 0
	MaxImageSplit = 100
)

// GeneralSettings holds layout and behaviour options.
type GeneralSettings struct {
	Orientation       string
	Columns           int
	Rows              int
	Multiselect       bool
	ShowDisabled      string
	Selection         string // JSON list of saved identity keys
	SelfFilterEnabled bool
}

// HeaderSettings styles the header above the grid.
type HeaderSettings struct {
	Show          bool
	Title         string
	FontColor     string
	Background    string
	TextSize      int
	Outline       string
	OutlineColor  string
	OutlineWeight int
}

// ChicletSettings styles individual chiclets.
type ChicletSettings struct {
	TextSize        int
	Height          int
	Width           int
	FontColor       string
	SelectedColor   string
	HoverColor      string
	UnselectedColor string
	DisabledColor   string
	Background      string
	Transparency    int
	Outline         string
	OutlineColor    string
	OutlineWeight   int
	BorderStyle     string
}

// ImageSettings controls the image part of a chiclet.
type ImageSettings struct {
	ImageSplit   int
	StretchImage bool
	BottomImage  bool
}

// Settings is the full set of slicer options.
type Settings struct {
	General GeneralSettings
	Header  HeaderSettings
	Chiclet ChicletSettings
	Images  ImageSettings
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		General: GeneralSettings{
			Orientation:  OrientationVertical,
			Columns:      3,
			Rows:         0,
			Multiselect:  true,
			ShowDisabled: ShowDisabledInplace,
		},
		Header: HeaderSettings{
			Show:          true,
			FontColor:     "#a6a6a6",
			TextSize:      10,
			Outline:       "BottomOnly",
			OutlineColor:  "#a6a6a6",
			OutlineWeight: 1,
		},
		Chiclet: ChicletSettings{
			TextSize:        10,
			FontColor:       "#666666",
			HoverColor:      "#212121",
			SelectedColor:   "#BDD7EE",
			UnselectedColor: "#ffffff",
			DisabledColor:   "#808080",
			Outline:         "Frame",
			OutlineColor:    "#000000",
			OutlineWeight:   1,
			BorderStyle:     BorderCut,
		},
		Images: ImageSettings{
			ImageSplit: 50,
		},
	}
}

// ParseSettings reads settings from view metadata objects over the defaults
// and normalises the result.
func ParseSettings(objects dataview.Objects) Settings {
	s := DefaultSettings()

	if objects != nil {
		g := &s.General
		g.Orientation = getString(objects, "general", "orientation", g.Orientation)
		g.Columns = getInt(objects, "general", "columns", g.Columns)
		g.Rows = getInt(objects, "general", "rows", g.Rows)
		g.Multiselect = getBool(objects, "general", "multiselect", g.Multiselect)
		g.ShowDisabled = getString(objects, "general", "showDisabled", g.ShowDisabled)
		g.Selection = getString(objects, "general", "selection", g.Selection)
		g.SelfFilterEnabled = getBool(objects, "general", "selfFilterEnabled", g.SelfFilterEnabled)

		h := &s.Header
		h.Show = getBool(objects, "header", "show", h.Show)
		h.Title = getString(objects, "header", "title", h.Title)
		h.FontColor = getFill(objects, "header", "fontColor", h.FontColor)
		h.Background = getFill(objects, "header", "background", h.Background)
		h.TextSize = getInt(objects, "header", "textSize", h.TextSize)
		h.Outline = getString(objects, "header", "outline", h.Outline)
		h.OutlineColor = getFill(objects, "header", "outlineColor", h.OutlineColor)
		h.OutlineWeight = getInt(objects, "header", "outlineWeight", h.OutlineWeight)

		c := &s.Chiclet
		c.TextSize = getInt(objects, "rows", "textSize", c.TextSize)
		c.Height = getInt(objects, "rows", "height", c.Height)
		c.Width = getInt(objects, "rows", "width", c.Width)
		c.SelectedColor = getFill(objects, "rows", "selectedColor", c.SelectedColor)
		c.HoverColor = getFill(objects, "rows", "hoverColor", c.HoverColor)
		c.UnselectedColor = getFill(objects, "rows", "unselectedColor", c.UnselectedColor)
		c.DisabledColor = getFill(objects, "rows", "disabledColor", c.DisabledColor)
		c.Background = getFill(objects, "rows", "background", c.Background)
		c.Transparency = getInt(objects, "rows", "transparency", c.Transparency)
		c.FontColor = getFill(objects, "rows", "fontColor", c.FontColor)
		c.Outline = getString(objects, "rows", "outline", c.Outline)
		c.OutlineColor = getFill(objects, "rows", "outlineColor", c.OutlineColor)
		c.OutlineWeight = getInt(objects, "rows", "outlineWeight", c.OutlineWeight)
		c.BorderStyle = getString(objects, "rows", "borderStyle", c.BorderStyle)

		i := &s.Images
		i.ImageSplit = getInt(objects, "images", "imageSplit", i.ImageSplit)
		i.StretchImage = getBool(objects, "images", "stretchImage", i.StretchImage)
		i.BottomImage = getBool(objects, "images", "bottomImage", i.BottomImage)
	}

	s.Normalize()
	return s
}

// Normalize clamps numeric options into their valid ranges.
func (s *Settings) Normalize() {
	s.Header.OutlineWeight = max(s.Header.OutlineWeight, 0)
	s.Chiclet.OutlineWeight = max(s.Chiclet.OutlineWeight, 0)
	s.Chiclet.Height = max(s.Chiclet.Height, 0)
	s.Chiclet.Width = max(s.Chiclet.Width, 0)
	s.Chiclet.Transparency = min(max(s.Chiclet.Transparency, 0), 100)
	s.General.Columns = max(s.General.Columns, 0)
	s.General.Rows = max(s.General.Rows, 0)
	s.Images.ImageSplit = ValidImageSplit(s.Images.ImageSplit)
}

// ValidImageSplit clamps an image split percentage to [MinImageSplit, MaxImageSplit].
func ValidImageSplit(split int) int {
	return min(max(split, MinImageSplit), MaxImageSplit)
}

func getString(o dataview.Objects, object, prop, def string) string {
	v, ok := o.Get(dataview.PropertyID{Object: object, Property: prop})
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		return def
	}
	return s
}

func getBool(o dataview.Objects, object, prop string, def bool) bool {
	v, ok := o.Get(dataview.PropertyID{Object: object, Property: prop})
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

func getInt(o dataview.Objects, object, prop string, def int) int {
	v, ok := o.Get(dataview.PropertyID{Object: object, Property: prop})
	if !ok {
		return def
	}
	f, ok := dataview.ToFloat(v)
	if !ok {
		return def
	}
	return int(f)
}

// getFill reads a colour given either as a plain string or as
// {solid: {color: "#rrggbb"}}.
func getFill(o dataview.Objects, object, prop, def string) string {
	v, ok := o.Get(dataview.PropertyID{Object: object, Property: prop})
	if !ok {
		return def
	}

	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		solid, ok := t["solid"].(map[string]any)
		if !ok {
			return def
		}
		if c, ok := solid["color"].(string); ok {
			return c
		}
	}
	return def
}
