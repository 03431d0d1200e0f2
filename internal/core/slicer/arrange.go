package slicer

import "slices"

// Arrange returns the points to display, in display order. It runs after
// selection state has been applied: disabled points are kept in place,
// moved to the bottom, or hidden according to showDisabled, and points
// marked Filtered by the search box are dropped. The returned points keep
// their source Index.
func Arrange(seq *Sequence, showDisabled string) []*DataPoint {
	points := seq.Points()

	switch showDisabled {
	case ShowDisabledBottom:
		slices.SortStableFunc(points, func(a, b *DataPoint) int {
			switch {
			case a.Selectable == b.Selectable:
				return 0
			case a.Selectable:
				return -1
			default:
				return 1
			}
		})
	case ShowDisabledHide:
		points = slices.DeleteFunc(points, func(d *DataPoint) bool { return !d.Selectable })
	}

	return slices.DeleteFunc(points, func(d *DataPoint) bool { return d.Filtered })
}
