// Package ident computes the short deterministic tokens used to fingerprint
// flow content.
//
// The hash is a 32-bit FNV-1a variant that must stay byte-for-byte compatible
// with the interchange format: the same payload has to produce the same token
// on every platform and in every tool that reads flowcopy exports. Do not
// change the seed, the shift combination, or the rendering.
package ident

import (
	"strconv"
	"strings"
)

// seed is the FNV-1a 32-bit offset basis.
const seed uint32 = 2166136261

// TokenWidth is the fixed width of a rendered token.
const TokenWidth = 7

// Hash computes the 32-bit rolling hash of text and renders it as an
// upper-case base-36 string left-padded with '0' to TokenWidth characters.
//
// Hash is total: it accepts any string, including the empty string, and
// never fails. The maximum 32-bit value is "1Z141Z3" in base 36, so seven
// characters always suffice.
func Hash(text string) string {
	h := seed
	for _, r := range text {
		h ^= uint32(r)
		// Multiply by the FNV prime 16777619 via shifts; uint32
		// arithmetic wraps, matching the interchange definition.
		h += (h << 1) + (h << 4) + (h << 7) + (h << 8) + (h << 24)
	}
	return pad(strings.ToUpper(strconv.FormatUint(uint64(h), 36)))
}

func pad(s string) string {
	if len(s) >= TokenWidth {
		return s
	}
	return strings.Repeat("0", TokenWidth-len(s)) + s
}
