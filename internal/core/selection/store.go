// Package selection implements the chiclet selection state machine. The
// selected identity set lives in a host-owned Store; the machine turns
// pointer events into mutation requests and restyles from the host's
// acknowledged result.
package selection

import (
	"context"

	"github.com/colonyops/chiclet/internal/core/identity"
)

// Store is the host's system of record for selected identities.
//
// Select with additive=false replaces the selection with ids. With
// additive=true each id is toggled into or out of the current selection.
// Both mutations return the selection as the host resolved it, which may
// differ from the request (for example when a maximum selection count is
// enforced).
type Store interface {
	Select(ctx context.Context, ids []identity.ID, additive bool) ([]identity.ID, error)
	Clear(ctx context.Context) ([]identity.ID, error)
	HasSelection() bool
	// Selected returns a snapshot of the current selection in selection order.
	Selected() []identity.ID
}

// Kind identifies the mutation a request performs.
type Kind int

const (
	KindReplace Kind = iota
	KindToggle
	KindRange
	KindClear
	KindRestore
)

func (k Kind) String() string {
	switch k {
	case KindReplace:
		return "replace"
	case KindToggle:
		return "toggle"
	case KindRange:
		return "range"
	case KindClear:
		return "clear"
	case KindRestore:
		return "restore"
	default:
		return "unknown"
	}
}

// Request is one selection mutation issued by the machine. Tokens increase
// monotonically in issue order.
type Request struct {
	Token uint64
	Kind  Kind
	IDs   []identity.ID
}

// Resolution is the host's answer to a Request.
type Resolution struct {
	Token uint64
	IDs   []identity.ID
	Err   error
}

// Execute performs req against the store. It blocks until the store answers
// and is meant to run off the event loop. Range and restore requests clear
// the selection before selecting additively.
func Execute(ctx context.Context, store Store, req Request) Resolution {
	var (
		ids []identity.ID
		err error
	)

	switch req.Kind {
	case KindReplace:
		ids, err = store.Select(ctx, req.IDs, false)
	case KindToggle:
		ids, err = store.Select(ctx, req.IDs, true)
	case KindRange, KindRestore:
		if _, err = store.Clear(ctx); err == nil {
			ids, err = store.Select(ctx, req.IDs, true)
		}
	case KindClear:
		ids, err = store.Clear(ctx)
	}

	return Resolution{Token: req.Token, IDs: ids, Err: err}
}
