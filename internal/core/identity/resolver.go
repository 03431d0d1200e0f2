package identity

import (
	"encoding/binary"
	"encoding/hex"
	"strconv"

	"github.com/minio/highwayhash"

	"github.com/colonyops/chiclet/internal/core/dataview"
)

// hashKey is fixed so derived identities are stable across processes.
var hashKey = []byte("chiclet.identity.0123456789ABCDE")

// HashResolver issues identities for category rows. Host-issued identities
// on the column are returned verbatim; otherwise an identity is derived by
// hashing the column name and the formatted category value, which keeps it
// stable for as long as the category set does not change. A label that
// repeats within the column is hashed with its occurrence number,
// so every row gets its own identity.
type HashResolver struct{}

// Resolve returns the identity of the row.
func (HashResolver) Resolve(col *dataview.CategoryColumn, row int) ID {
	if id, ok := hostIdentity(col, row); ok {
		return id
	}

	label := rowLabel(col, row)
	n := 1
	for prev := range row {
		if _, ok := hostIdentity(col, prev); !ok && rowLabel(col, prev) == label {
			n++
		}
	}
	return derive(col, label, n)
}

// ResolveColumn returns the identity of every row in one pass.
func (HashResolver) ResolveColumn(col *dataview.CategoryColumn) []ID {
	ids := make([]ID, col.Len())
	seen := make(map[string]int)
	for row := range ids {
		if id, ok := hostIdentity(col, row); ok {
			ids[row] = id
			continue
		}
		label := rowLabel(col, row)
		seen[label]++
		ids[row] = derive(col, label, seen[label])
	}
	return ids
}

func hostIdentity(col *dataview.CategoryColumn, row int) (ID, bool) {
	if row < len(col.Identity) && col.Identity[row] != "" {
		return ID(col.Identity[row]), true
	}
	return "", false
}

func rowLabel(col *dataview.CategoryColumn, row int) string {
	var label any
	if row < len(col.Values) {
		label = col.Values[row]
	}
	return dataview.Format(label, "")
}

// derive hashes the nth occurrence of label. The first occurrence hashes the
// bare label; later ones add the occurrence number as its own part.
func derive(col *dataview.CategoryColumn, label string, n int) ID {
	if n == 1 {
		return Derive(col.Source.DisplayName, label)
	}
	return Derive(col.Source.DisplayName, label, strconv.Itoa(n))
}

// Derive hashes the given parts into an identity.
func Derive(parts ...string) ID {
	h, err := highwayhash.New64(hashKey)
	if err != nil {
		// Only returned for a key that is not 32 bytes long.
		panic(err)
	}

	var sep [1]byte
	for _, p := range parts {
		_, _ = h.Write([]byte(p))
		_, _ = h.Write(sep[:])
	}

	var sum [8]byte
	binary.BigEndian.PutUint64(sum[:], h.Sum64())
	return ID(hex.EncodeToString(sum[:]))
}
