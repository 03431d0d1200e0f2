package slicer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/chiclet/internal/core/identity"
)

func sequenceOf(n int) *Sequence {
	points := make([]DataPoint, n)
	for i := range points {
		points[i] = DataPoint{
			Identity:   identity.ID(string(rune('a' + i))),
			Selectable: true,
			Value:      NoValue,
		}
	}
	return NewSequence(points)
}

func TestSequence(t *testing.T) {
	seq := sequenceOf(5)

	assert.Equal(t, 5, seq.Len())
	for i := range seq.Len() {
		assert.Equal(t, i, seq.At(i).Index)
	}
	assert.Nil(t, seq.At(-1))
	assert.Nil(t, seq.At(5))

	i, ok := seq.IndexOf("c")
	assert.True(t, ok)
	assert.Equal(t, 2, i)

	_, ok = seq.IndexOf("zz")
	assert.False(t, ok)
}

func TestSequence_Identities(t *testing.T) {
	seq := sequenceOf(5)

	assert.Equal(t, []identity.ID{"b", "c", "d"}, seq.Identities(1, 3))
	assert.Equal(t, []identity.ID{"a", "b"}, seq.Identities(-4, 1))
	assert.Equal(t, []identity.ID{"d", "e"}, seq.Identities(3, 99))
	assert.Nil(t, seq.Identities(3, 1))

	var empty *Sequence
	assert.Nil(t, empty.Identities(0, 1))
	assert.Equal(t, 0, empty.Len())
}

func TestSequence_LastSelected(t *testing.T) {
	seq := sequenceOf(6)
	assert.Equal(t, 0, seq.LastSelected(), "nothing selected")

	seq.At(1).Selected = true
	seq.At(4).Selected = true
	assert.Equal(t, 4, seq.LastSelected())
}

func TestArrange(t *testing.T) {
	build := func() *Sequence {
		seq := sequenceOf(5)
		seq.At(1).Selectable = false
		seq.At(3).Selectable = false
		seq.At(4).Filtered = true
		return seq
	}

	indexes := func(points []*DataPoint) []int {
		out := make([]int, len(points))
		for i, p := range points {
			out[i] = p.Index
		}
		return out
	}

	t.Run("inplace keeps order and drops filtered", func(t *testing.T) {
		assert.Equal(t, []int{0, 1, 2, 3}, indexes(Arrange(build(), ShowDisabledInplace)))
	})

	t.Run("bottom moves disabled to the end", func(t *testing.T) {
		assert.Equal(t, []int{0, 2, 1, 3}, indexes(Arrange(build(), ShowDisabledBottom)))
	})

	t.Run("hide drops disabled", func(t *testing.T) {
		assert.Equal(t, []int{0, 2}, indexes(Arrange(build(), ShowDisabledHide)))
	})

	t.Run("source sequence keeps its order", func(t *testing.T) {
		seq := build()
		Arrange(seq, ShowDisabledBottom)
		for i := range seq.Len() {
			assert.Equal(t, i, seq.At(i).Index)
		}
	})
}
