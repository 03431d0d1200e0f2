package slicer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/colonyops/chiclet/internal/core/dataview"
	"github.com/colonyops/chiclet/internal/core/identity"
)

var (
	// ErrNoData is returned when the view has no category column or no rows.
	// Callers render nothing.
	ErrNoData = errors.New("no category data")
	// ErrMissingIdentity is returned when the view carries a selection filter
	// but the category column has no identity fields. Conversion is aborted
	// so the selection cannot drift out of sync.
	ErrMissingIdentity = errors.New("selection filter present without identity fields")
)

// Resolver derives the identity of a category row.
type Resolver interface {
	Resolve(col *dataview.CategoryColumn, row int) identity.ID
}

// ColumnResolver is a Resolver that can resolve a whole column at once.
// Convert prefers it when available.
type ColumnResolver interface {
	Resolver
	ResolveColumn(col *dataview.CategoryColumn) []identity.ID
}

func resolveIdentities(resolver Resolver, col *dataview.CategoryColumn) []identity.ID {
	if cr, ok := resolver.(ColumnResolver); ok {
		if ids := cr.ResolveColumn(col); len(ids) == col.Len() {
			return ids
		}
	}
	ids := make([]identity.ID, col.Len())
	for row := range ids {
		ids[row] = resolver.Resolve(col, row)
	}
	return ids
}

// Result is the output of one conversion.
type Result struct {
	Points *Sequence
	// SelectedCount is the number of rows the host marks selected, with
	// inverted selection mode taken into account.
	SelectedCount int
	// HasSelectionOverride is true when the host filter references more
	// scope ids than rows found selected in this view. Selection rendering
	// then trusts the host filter over the local count.
	HasSelectionOverride bool
	Settings             Settings
	CategorySourceName   string
	FormatString         string
}

// Convert turns a data view into an ordered sequence of data points.
// Every point starts unselected; selection state is applied later from the
// host's selection store. Convert never mutates view and returns
// structurally identical results for identical inputs.
func Convert(view *dataview.DataView, searchText string, resolver Resolver) (*Result, error) {
	cat := view.Category()
	if cat == nil || cat.Len() == 0 {
		return nil, ErrNoData
	}

	filter, err := view.Metadata.Filter()
	if err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}

	var (
		inverted   bool
		scopeCount = -1
	)
	if filter != nil {
		if len(cat.IdentityFields) == 0 {
			return nil, ErrMissingIdentity
		}
		inverted = filter.IsNot
		scopeCount = len(filter.ScopeIDs)
	}

	// Without measures the row flags are taken as they are.
	var hasSelection, hasSignal bool
	if len(view.Values) > 0 {
		hasSelection, hasSignal = firstSelectedFlag(cat)
	}

	settings := ParseSettings(view.Metadata.Objects)
	search := ""
	if settings.General.SelfFilterEnabled {
		search = strings.ToLower(searchText)
	}

	ids := resolveIdentities(resolver, cat)
	selectedCount := 0
	points := make([]DataPoint, cat.Len())
	for row := range cat.Len() {
		if resolveSelected(cat, row, hasSelection, hasSignal, inverted) {
			selectedCount++
		}

		value, selectable, imageURL := measure(view.Values, row)
		label := dataview.Format(cat.Values[row], cat.Source.FormatString)

		points[row] = DataPoint{
			Identity:   ids[row],
			Category:   label,
			ImageURL:   imageURL,
			Value:      value,
			Selectable: selectable,
			Filtered:   search != "" && !strings.Contains(strings.ToLower(label), search),
		}
	}

	return &Result{
		Points:               NewSequence(points),
		SelectedCount:        selectedCount,
		HasSelectionOverride: scopeCount >= 0 && scopeCount > selectedCount,
		Settings:             settings,
		CategorySourceName:   cat.Source.DisplayName,
		FormatString:         cat.Source.FormatString,
	}, nil
}

// firstSelectedFlag scans rows for the first explicit selected flag.
func firstSelectedFlag(cat *dataview.CategoryColumn) (value bool, ok bool) {
	for row := range cat.Len() {
		if v, found := dataview.RowFlag(cat, row, dataview.SelectedProperty); found {
			return v, true
		}
	}
	return false, false
}

// resolveSelected combines the row flag with the view-wide selection signal.
// In inverted mode a present flag means "not excluded" and takes the value
// of the signal itself; an absent flag takes its negation. Outside inverted
// mode only absent flags are defaulted, to the negation of the signal.
func resolveSelected(cat *dataview.CategoryColumn, row int, hasSelection, hasSignal, inverted bool) bool {
	flag, present := dataview.RowFlag(cat, row, dataview.SelectedProperty)
	if !hasSignal {
		return present && flag
	}

	if inverted {
		if present {
			return hasSelection
		}
		return !hasSelection
	}

	if !present {
		return !hasSelection
	}
	return flag
}

// measure scans every series at row. The first numeric value wins. Any
// explicit null highlight disables the row. A contributing series whose
// group label is a valid URL supplies the image, later ones overwriting
// earlier ones.
func measure(series []dataview.Series, row int) (value float64, selectable bool, imageURL string) {
	value, selectable = NoValue, true
	contributed := false

	for i := range series {
		s := &series[i]
		if s.HighlightIsNull(row) {
			selectable = false
		}

		raw := s.ValueAt(row)
		if raw == nil {
			continue
		}

		if f, ok := dataview.ToFloat(raw); ok && !contributed {
			value = f
			contributed = true
		}

		if s.Source.GroupName != nil {
			label := dataview.Format(s.Source.GroupName, s.Source.FormatString)
			if label != "" && ValidImageURL(label) {
				imageURL = label
			}
		}
	}

	return value, selectable, imageURL
}
