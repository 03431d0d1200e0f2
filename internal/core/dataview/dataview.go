// Package dataview models the tabular data a host delivers to the slicer:
// one category column, zero or more measure series, and the metadata
// objects that carry persisted settings and the selection filter.
package dataview

// Objects holds property values keyed by object name, then property name.
// Values are whatever the host serialised (bool, number, string, or nested
// maps for fills and filters).
type Objects map[string]map[string]any

// PropertyID addresses a single property inside Objects.
type PropertyID struct {
	Object   string
	Property string
}

// Get returns the raw value of the property, if present.
func (o Objects) Get(prop PropertyID) (any, bool) {
	if o == nil {
		return nil, false
	}
	props, ok := o[prop.Object]
	if !ok || props == nil {
		return nil, false
	}
	v, ok := props[prop.Property]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// ColumnSource describes the column a category or series came from.
type ColumnSource struct {
	DisplayName  string `yaml:"display_name" json:"display_name"`
	FormatString string `yaml:"format_string" json:"format_string"`
	// GroupName is the grouping label of a series. The slicer reads image
	// URLs from it.
	GroupName any `yaml:"group_name" json:"group_name"`
}

// CategoryColumn is the column whose rows become chiclets.
type CategoryColumn struct {
	Source         ColumnSource `yaml:"source" json:"source"`
	Values         []any        `yaml:"values" json:"values"`
	Identity       []string     `yaml:"identity" json:"identity"`
	IdentityFields []string     `yaml:"identity_fields" json:"identity_fields"`
	// Objects holds per-row objects. A nil slice means the host sent no
	// per-row objects at all; a nil entry means that row has none.
	Objects []Objects `yaml:"objects" json:"objects"`
}

// Len returns the number of category rows.
func (c *CategoryColumn) Len() int {
	return len(c.Values)
}

// Series is one measure column, optionally carrying highlight values.
type Series struct {
	Source ColumnSource `yaml:"source" json:"source"`
	Values []any        `yaml:"values" json:"values"`
	// Highlights is nil when the host sends no highlights. A nil entry is an
	// explicit null and marks the row as filtered out by the host.
	Highlights []any `yaml:"highlights" json:"highlights"`
}

// ValueAt returns the raw value at row, or nil when out of range.
func (s *Series) ValueAt(row int) any {
	if row < 0 || row >= len(s.Values) {
		return nil
	}
	return s.Values[row]
}

// HighlightIsNull reports whether the series carries an explicit null
// highlight at row. Missing highlight arrays and out-of-range rows are not
// null.
func (s *Series) HighlightIsNull(row int) bool {
	if s.Highlights == nil || row < 0 || row >= len(s.Highlights) {
		return false
	}
	return s.Highlights[row] == nil
}

// Metadata carries view-level objects and paging state.
type Metadata struct {
	Objects Objects `yaml:"objects" json:"objects"`
	// Segment is true while the host has more rows to deliver.
	Segment bool `yaml:"segment" json:"segment"`
}

// DataView is one complete tabular snapshot delivered by the host.
type DataView struct {
	Metadata   Metadata         `yaml:"metadata" json:"metadata"`
	Categories []CategoryColumn `yaml:"categories" json:"categories"`
	Values     []Series         `yaml:"values" json:"values"`
}

// Category returns the first category column, or nil when there is none.
func (v *DataView) Category() *CategoryColumn {
	if v == nil || len(v.Categories) == 0 {
		return nil
	}
	return &v.Categories[0]
}

// SameCategoryIdentity reports whether two views address the same ordered
// set of categories. Hosts use it to decide whether scroll position resets.
func SameCategoryIdentity(a, b *DataView) bool {
	ca, cb := a.Category(), b.Category()
	if ca == nil || cb == nil {
		return ca == cb
	}
	if ca.Len() != cb.Len() {
		return false
	}

	if len(ca.Identity) > 0 || len(cb.Identity) > 0 {
		if len(ca.Identity) != len(cb.Identity) {
			return false
		}
		for i := range ca.Identity {
			if ca.Identity[i] != cb.Identity[i] {
				return false
			}
		}
		return true
	}

	for i := range ca.Values {
		if Format(ca.Values[i], "") != Format(cb.Values[i], "") {
			return false
		}
	}
	return true
}
