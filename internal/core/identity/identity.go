// Package identity provides the opaque keys used to address category rows
// for selection.
package identity

import "slices"

// ID is an opaque, host-issued key for a single category row. IDs are stable
// across data refreshes that do not change the underlying category set.
type ID string

// String returns the raw key.
func (id ID) String() string {
	return string(id)
}

// Set is an unordered collection of identities used for membership tests
// during a render pass.
type Set map[ID]struct{}

// NewSet builds a set from the given identities.
func NewSet(ids ...ID) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is a member of the set. A nil set has no members.
func (s Set) Has(id ID) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of identities in the set.
func (s Set) Len() int {
	return len(s)
}

// Slice returns the members sorted by key.
func (s Set) Slice() []ID {
	out := make([]ID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Strings converts identities into their raw keys, preserving order.
func Strings(ids []ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

// FromStrings converts raw keys into identities, preserving order.
func FromStrings(keys []string) []ID {
	out := make([]ID, len(keys))
	for i, k := range keys {
		out[i] = ID(k)
	}
	return out
}
