package selection

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/colonyops/chiclet/internal/core/dataview"
	"github.com/colonyops/chiclet/internal/core/identity"
)

// Persister writes visual properties back to the host.
type Persister interface {
	Persist(ctx context.Context, object string, props map[string]any) error
}

// SavedSelection decodes the JSON list stored in general.selection. Empty or
// malformed input yields no identities.
func SavedSelection(raw string) []identity.ID {
	if raw == "" {
		return nil
	}

	var keys []string
	if err := json.Unmarshal([]byte(raw), &keys); err != nil {
		return nil
	}
	return identity.FromStrings(keys)
}

// SavedSelectionOf reads the saved selection from a data view's metadata.
func SavedSelectionOf(md dataview.Metadata) []identity.ID {
	v, ok := md.Objects.Get(dataview.SelectionProperty)
	if !ok {
		return nil
	}
	raw, _ := v.(string)
	return SavedSelection(raw)
}

// SelectionProperties builds the general object properties that record ids
// as the saved selection. When withFilter is set a matching non-inverted
// filter is included; it should only be set for category columns that carry
// identity fields.
func SelectionProperties(ids []identity.ID, withFilter bool) map[string]any {
	keys := identity.Strings(ids)
	raw, _ := json.Marshal(keys)

	props := map[string]any{
		dataview.SelectionProperty.Property: string(raw),
	}
	if withFilter {
		props[dataview.FilterProperty.Property] = map[string]any{
			"scope_ids": keys,
			"is_not":    false,
		}
	}
	return props
}

// SaveSelection persists ids as general.selection, plus the filter when
// withFilter is set. Failures are logged and otherwise ignored.
func SaveSelection(ctx context.Context, p Persister, log zerolog.Logger, ids []identity.ID, withFilter bool) {
	props := SelectionProperties(ids, withFilter)
	if err := p.Persist(ctx, dataview.SelectionProperty.Object, props); err != nil {
		log.Warn().Ctx(ctx).Err(err).Int("ids", len(ids)).Msg("persist selection failed")
	}
}
