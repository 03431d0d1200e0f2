package selection

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/chiclet/internal/core/dataview"
	"github.com/colonyops/chiclet/internal/core/identity"
)

type recordingPersister struct {
	object string
	props  map[string]any
	err    error
}

func (p *recordingPersister) Persist(_ context.Context, object string, props map[string]any) error {
	p.object = object
	p.props = props
	return p.err
}

func TestSavedSelection(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []identity.ID
	}{
		{name: "empty", raw: "", want: nil},
		{name: "list", raw: `["a","b"]`, want: []identity.ID{"a", "b"}},
		{name: "malformed", raw: `{"a":`, want: nil},
		{name: "wrong shape", raw: `{"a":1}`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SavedSelection(tt.raw))
		})
	}
}

func TestSaveSelection(t *testing.T) {
	p := &recordingPersister{}

	SaveSelection(context.Background(), p, zerolog.Nop(), []identity.ID{"east", "west"}, true)

	require.Equal(t, "general", p.object)
	assert.Equal(t, `["east","west"]`, p.props["selection"])

	// The persisted properties decode through the same paths the converter uses.
	md := dataview.Metadata{Objects: dataview.Objects{"general": p.props}}
	assert.Equal(t, []identity.ID{"east", "west"}, SavedSelectionOf(md))

	f, err := md.Filter()
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, []string{"east", "west"}, f.ScopeIDs)
	assert.False(t, f.IsNot)
}

func TestSaveSelection_FailureIsSwallowed(t *testing.T) {
	p := &recordingPersister{err: errors.New("disk full")}

	assert.NotPanics(t, func() {
		SaveSelection(context.Background(), p, zerolog.Nop(), nil, false)
	})
	assert.Equal(t, "[]", p.props["selection"])
	assert.NotContains(t, p.props, "filter", "no filter without identity fields")
}

func TestSelectionProperties(t *testing.T) {
	props := SelectionProperties([]identity.ID{"a"}, false)
	assert.Equal(t, map[string]any{"selection": `["a"]`}, props)

	props = SelectionProperties(nil, true)
	assert.Equal(t, "[]", props["selection"])
	assert.Equal(t, map[string]any{"scope_ids": []string{}, "is_not": false}, props["filter"])
}
