package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/chiclet/internal/core/dataview"
)

func TestSet(t *testing.T) {
	s := NewSet("b", "a", "b")

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("c"))
	assert.Equal(t, []ID{"a", "b"}, s.Slice())

	var empty Set
	assert.False(t, empty.Has("a"))
	assert.Equal(t, 0, empty.Len())
}

func TestStringsRoundTrip(t *testing.T) {
	ids := []ID{"x", "y"}
	assert.Equal(t, []string{"x", "y"}, Strings(ids))
	assert.Equal(t, ids, FromStrings([]string{"x", "y"}))
}

func TestHashResolver(t *testing.T) {
	col := &dataview.CategoryColumn{
		Source:   dataview.ColumnSource{DisplayName: "Region"},
		Values:   []any{"East", "West", "East"},
		Identity: []string{"host-east"},
	}

	r := HashResolver{}

	t.Run("host identity wins", func(t *testing.T) {
		assert.Equal(t, ID("host-east"), r.Resolve(col, 0))
	})

	t.Run("derived identity is stable", func(t *testing.T) {
		first := r.Resolve(col, 1)
		second := r.Resolve(col, 1)
		assert.Equal(t, first, second)
		assert.Len(t, string(first), 16)
	})

	t.Run("derived identity depends on value", func(t *testing.T) {
		assert.NotEqual(t, r.Resolve(col, 1), r.Resolve(col, 2))
	})

	t.Run("column resolution matches per row", func(t *testing.T) {
		ids := r.ResolveColumn(col)
		require.Len(t, ids, 3)
		for row, id := range ids {
			assert.Equal(t, r.Resolve(col, row), id)
		}
	})

	t.Run("derived identity depends on column", func(t *testing.T) {
		other := &dataview.CategoryColumn{
			Source: dataview.ColumnSource{DisplayName: "Country"},
			Values: []any{"East", "West"},
		}
		assert.NotEqual(t, r.Resolve(col, 1), r.Resolve(other, 1))
	})
}

func TestHashResolver_RepeatedLabels(t *testing.T) {
	col := &dataview.CategoryColumn{
		Source: dataview.ColumnSource{DisplayName: "Region"},
		Values: []any{"East", "West", "East", "East"},
	}
	r := HashResolver{}

	ids := r.ResolveColumn(col)
	assert.Equal(t, 4, NewSet(ids...).Len(), "every row is unique")
	assert.Equal(t, Derive("Region", "East"), ids[0], "first occurrence hashes the bare label")
	assert.Equal(t, Derive("Region", "East", "2"), ids[2])
	assert.Equal(t, Derive("Region", "East", "3"), r.Resolve(col, 3))

	// A literal label that looks like an occurrence suffix stays distinct.
	tricky := &dataview.CategoryColumn{
		Source: dataview.ColumnSource{DisplayName: "Region"},
		Values: []any{"East#2"},
	}
	assert.NotEqual(t, ids[2], r.Resolve(tricky, 0))

	// Rows with host identities do not count as occurrences.
	mixed := &dataview.CategoryColumn{
		Source:   dataview.ColumnSource{DisplayName: "Region"},
		Values:   []any{"East", "East"},
		Identity: []string{"host-east"},
	}
	assert.Equal(t, []ID{"host-east", Derive("Region", "East")}, r.ResolveColumn(mixed))
	assert.Equal(t, Derive("Region", "East"), r.Resolve(mixed, 1))
}
