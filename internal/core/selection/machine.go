package selection

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/colonyops/chiclet/internal/core/identity"
	"github.com/colonyops/chiclet/internal/core/slicer"
)

// Modifiers are the keyboard modifiers held during a click.
type Modifiers struct {
	Ctrl bool
	Meta bool
	Alt  bool
}

// Machine interprets interaction events against the current data point
// sequence. It never guesses the outcome of a mutation: render state is
// derived from the identities the host last acknowledged.
type Machine struct {
	seq         *slicer.Sequence
	multiselect bool
	override    bool

	acked   identity.Set
	issued  uint64
	applied uint64

	log zerolog.Logger
}

// NewMachine creates a machine with no data bound.
func NewMachine(log zerolog.Logger) *Machine {
	return &Machine{
		acked: identity.NewSet(),
		log:   log,
	}
}

// Bind attaches a freshly converted sequence and restyles it against the
// host's current snapshot. override marks that the host filter references
// identities missing from seq, so the view counts as having a selection
// even when no visible point is selected.
func (m *Machine) Bind(seq *slicer.Sequence, multiselect bool, snapshot []identity.ID, override bool) {
	m.seq = seq
	m.multiselect = multiselect
	m.override = override
	m.acked = identity.NewSet(snapshot...)
	m.restyle()
}

// Sequence returns the bound sequence.
func (m *Machine) Sequence() *slicer.Sequence {
	return m.seq
}

// Selection returns the last acknowledged identity set.
func (m *Machine) Selection() identity.Set {
	return m.acked
}

// HasSelection reports whether anything is selected, including selections
// the host filter holds for rows outside the current view.
func (m *Machine) HasSelection() bool {
	return m.acked.Len() > 0 || m.override
}

// Pending reports whether a mutation has been issued but not yet resolved.
func (m *Machine) Pending() bool {
	return m.issued > m.applied
}

// HoverEnter marks the point at i as hovered. Disabled points ignore hover.
func (m *Machine) HoverEnter(i int) bool {
	return m.setHover(i, true)
}

// HoverLeave clears the hover mark on the point at i.
func (m *Machine) HoverLeave(i int) bool {
	return m.setHover(i, false)
}

func (m *Machine) setHover(i int, hovered bool) bool {
	dp := m.seq.At(i)
	if dp == nil || !dp.Selectable || dp.Hovered == hovered {
		return false
	}
	dp.Hovered = hovered
	return true
}

// Click interprets a primary click on the point at index i. It returns
// false when the point is missing or disabled.
//
// Alt selects the contiguous block between i and the highest selected index
// (0 when nothing is selected). Ctrl or Meta toggle i. Both require
// multiselect; otherwise the click replaces the selection with i.
func (m *Machine) Click(i int, mods Modifiers) (Request, bool) {
	dp := m.seq.At(i)
	if dp == nil || !dp.Selectable {
		return Request{}, false
	}

	switch {
	case mods.Alt && m.multiselect:
		lo, hi := m.seq.LastSelected(), i
		if lo > hi {
			lo, hi = hi, lo
		}
		return m.issue(KindRange, m.seq.Identities(lo, hi)), true
	case (mods.Ctrl || mods.Meta) && m.multiselect:
		return m.issue(KindToggle, []identity.ID{dp.Identity}), true
	default:
		return m.issue(KindReplace, []identity.ID{dp.Identity}), true
	}
}

// ClearClick empties the selection. It is always accepted.
func (m *Machine) ClearClick() Request {
	return m.issue(KindClear, nil)
}

// Restore reselects saved identities that exist in the bound sequence, in
// sequence order. It returns false when none of them are present.
func (m *Machine) Restore(saved []identity.ID) (Request, bool) {
	want := identity.NewSet(saved...)

	var ids []identity.ID
	for _, dp := range m.seq.Points() {
		if want.Has(dp.Identity) {
			ids = append(ids, dp.Identity)
		}
	}
	if len(ids) == 0 {
		return Request{}, false
	}
	return m.issue(KindRestore, ids), true
}

func (m *Machine) issue(kind Kind, ids []identity.ID) Request {
	m.issued++
	req := Request{Token: m.issued, Kind: kind, IDs: ids}
	m.log.Debug().
		Uint64("token", req.Token).
		Str("kind", kind.String()).
		Int("ids", len(ids)).
		Msg("selection request issued")
	return req
}

// Resolve applies a host resolution and restyles. Resolutions older than the
// last applied one are discarded, so a slow answer to an earlier request
// never overwrites a newer result. Superseded requests never touched the
// store and are discarded the same way. Failed resolutions leave the
// selection unchanged.
func (m *Machine) Resolve(res Resolution) bool {
	if res.Token < m.applied || errors.Is(res.Err, ErrSuperseded) {
		m.log.Debug().
			Uint64("token", res.Token).
			Uint64("applied", m.applied).
			Msg("discarding stale selection resolution")
		return false
	}
	m.applied = res.Token

	if res.Err != nil {
		m.log.Warn().Err(res.Err).Uint64("token", res.Token).Msg("selection request failed")
		return false
	}

	m.acked = identity.NewSet(res.IDs...)
	m.override = false
	m.restyle()
	return true
}

func (m *Machine) restyle() {
	for _, dp := range m.seq.Points() {
		dp.Selected = m.acked.Has(dp.Identity)
	}
}
