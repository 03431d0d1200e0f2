// Package slicer converts host data views into chiclet data points and
// arranges them for display.
package slicer

import (
	"math"

	"github.com/colonyops/chiclet/internal/core/identity"
)

// NoValue is the value of a data point that no measure series contributes to.
// It means "no measure data", which is distinct from zero.
var NoValue = math.Inf(-1)

// DataPoint is the render-ready form of one category row.
type DataPoint struct {
	Identity identity.ID
	// Index is the row position in the source data view. It never changes
	// after conversion, including when the point is rearranged for display.
	Index    int
	Category string
	// ImageURL is empty unless the series label is a valid ftp/http/https URL.
	ImageURL string
	Value    float64
	// Selectable is false only when the host marked the row with an explicit
	// null highlight.
	Selectable bool
	Selected   bool
	Filtered   bool
	// Hovered is transient pointer state.
	Hovered bool
}

// HasValue reports whether any measure series contributed a value.
func (d *DataPoint) HasValue() bool {
	return !math.IsInf(d.Value, -1)
}

// Sequence is the ordered list of data points produced by one conversion.
// Position i always holds the point with Index i, so range selection can
// address points by index without consulting any display order.
type Sequence struct {
	points []DataPoint
	index  map[identity.ID]int
}

// NewSequence builds a sequence, assigning Index from position.
func NewSequence(points []DataPoint) *Sequence {
	s := &Sequence{
		points: points,
		index:  make(map[identity.ID]int, len(points)),
	}
	for i := range s.points {
		s.points[i].Index = i
		s.index[s.points[i].Identity] = i
	}
	return s
}

// Len returns the number of points. A nil sequence is empty.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.points)
}

// At returns the point at position i, or nil when out of range.
func (s *Sequence) At(i int) *DataPoint {
	if s == nil || i < 0 || i >= len(s.points) {
		return nil
	}
	return &s.points[i]
}

// IndexOf returns the position of the point carrying id.
func (s *Sequence) IndexOf(id identity.ID) (int, bool) {
	if s == nil {
		return 0, false
	}
	i, ok := s.index[id]
	return i, ok
}

// Identities returns the identities of the closed range [lo, hi], clamped to
// the sequence bounds.
func (s *Sequence) Identities(lo, hi int) []identity.ID {
	if s == nil || len(s.points) == 0 {
		return nil
	}
	lo = max(lo, 0)
	hi = min(hi, len(s.points)-1)
	if lo > hi {
		return nil
	}

	out := make([]identity.ID, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, s.points[i].Identity)
	}
	return out
}

// Points returns pointers to every point in source order.
func (s *Sequence) Points() []*DataPoint {
	if s == nil {
		return nil
	}
	out := make([]*DataPoint, len(s.points))
	for i := range s.points {
		out[i] = &s.points[i]
	}
	return out
}

// LastSelected returns the highest index among selected points, or 0 when
// nothing is selected.
func (s *Sequence) LastSelected() int {
	last := 0
	for i := range s.Len() {
		if s.points[i].Selected {
			last = i
		}
	}
	return last
}
