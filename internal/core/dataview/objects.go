package dataview

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Well-known properties read by the slicer.
var (
	SelectedProperty   = PropertyID{Object: "general", Property: "selected"}
	FilterProperty     = PropertyID{Object: "general", Property: "filter"}
	SelectionProperty  = PropertyID{Object: "general", Property: "selection"}
	SearchTextProperty = PropertyID{Object: "general", Property: "searchText"}
)

// RowFlag reads a boolean per-row property. ok is false when the column has
// no per-row objects, the row has none, or the property is absent or not a
// boolean. This is the only place per-row objects are inspected dynamically.
func RowFlag(col *CategoryColumn, row int, prop PropertyID) (value bool, ok bool) {
	if col == nil || col.Objects == nil || row < 0 || row >= len(col.Objects) {
		return false, false
	}
	raw, found := col.Objects[row].Get(prop)
	if !found {
		return false, false
	}
	b, isBool := raw.(bool)
	if !isBool {
		return false, false
	}
	return b, true
}

// Filter is the persisted selection filter: a list of scope ids, possibly
// negated ("everything except these").
type Filter struct {
	ScopeIDs []string `yaml:"scope_ids" json:"scope_ids"`
	IsNot    bool     `yaml:"is_not" json:"is_not"`
}

// Filter decodes general.filter. It returns nil when no filter is present.
func (m Metadata) Filter() (*Filter, error) {
	raw, ok := m.Objects.Get(FilterProperty)
	if !ok {
		return nil, nil
	}

	// Round-trip through yaml so maps decoded from either YAML or JSON land
	// in the typed struct.
	bits, err := yaml.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encode filter: %w", err)
	}

	var f Filter
	if err := yaml.Unmarshal(bits, &f); err != nil {
		return nil, fmt.Errorf("decode filter: %w", err)
	}
	return &f, nil
}

// Merge returns a copy of o with props layered over the named object. The
// receiver is not modified.
func (o Objects) Merge(object string, props map[string]any) Objects {
	out := make(Objects, len(o)+1)
	for name, p := range o {
		out[name] = p
	}

	merged := make(map[string]any, len(o[object])+len(props))
	for k, v := range o[object] {
		merged[k] = v
	}
	for k, v := range props {
		merged[k] = v
	}
	out[object] = merged
	return out
}

// WithObjects returns a shallow copy of v whose metadata objects include
// props under object. Host-persisted properties are applied this way before
// conversion.
func (v *DataView) WithObjects(object string, props map[string]any) *DataView {
	if v == nil || len(props) == 0 {
		return v
	}
	cp := *v
	cp.Metadata.Objects = v.Metadata.Objects.Merge(object, props)
	return &cp
}
