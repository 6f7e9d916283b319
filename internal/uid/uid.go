// Package uid models VST3 class identifiers and the byte reordering that
// relates the legacy Wine-derived form to the current native form.
//
// Older bridge builds derived a plugin's class ID by reading the native
// Steinberg TUID structure (a 32-bit field, two 16-bit fields, then eight
// opaque bytes) as a flat byte string in Wine's on-disk byte order. The
// result is the same 16 bytes with the first three fields byte-swapped.
// Converting between the two forms is therefore a fixed permutation that
// never inspects the identifier's value.
package uid

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Size is the length of a class identifier in bytes.
const Size = 16

// HexLen is the length of a class identifier rendered as hexadecimal.
const HexLen = 32

// ClassID is a 16-byte VST3 class identifier. Hosts persist it as 32
// uppercase hexadecimal characters.
type ClassID [Size]byte

// Parse decodes a 32-character hexadecimal class identifier.
func Parse(s string) (ClassID, error) {
	var id ClassID
	if len(s) != HexLen {
		return id, fmt.Errorf("class id must be %d hex characters, got %d", HexLen, len(s))
	}
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return id, fmt.Errorf("decode class id %q: %w", s, err)
	}
	return id, nil
}

// ParseBytes decodes a class identifier from raw hexadecimal ASCII bytes.
func ParseBytes(b []byte) (ClassID, error) {
	return Parse(string(b))
}

// Hex renders the identifier as 32 uppercase hexadecimal characters, the
// form every supported project format stores.
func (id ClassID) Hex() string {
	return strings.ToUpper(hex.EncodeToString(id[:]))
}

// HexBytes renders the identifier as uppercase hexadecimal ASCII bytes.
func (id ClassID) HexBytes() []byte {
	return []byte(id.Hex())
}

// ToCurrent converts a legacy Wine-derived identifier to the current form:
// the first four bytes reversed, bytes 4/5 swapped, bytes 6/7 swapped, and
// the trailing eight bytes carried through unchanged.
func (id ClassID) ToCurrent() ClassID {
	var out ClassID
	out[0] = id[3]
	out[1] = id[2]
	out[2] = id[1]
	out[3] = id[0]

	out[4] = id[5]
	out[5] = id[4]
	out[6] = id[7]
	out[7] = id[6]

	copy(out[8:], id[8:])
	return out
}

// ToLegacy converts a current identifier back to the legacy form. The
// reordering swaps byte pairs and reverses a four-byte run, so applying it
// twice restores the original value.
func (id ClassID) ToLegacy() ClassID {
	return id.ToCurrent()
}
