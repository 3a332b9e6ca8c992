// Package types holds the decoded-object data model the core operates on:
// block/transaction/message identifiers and the intermediate and enriched
// records that flow through the filter → enrich → serialize pipeline.
//
// The wire-level cell codec and block/transaction decoder are out of scope
// (spec: "assumed available as a decoded object model"); this package models
// the shapes that codec would hand back, not the codec itself.
package types

import (
	"encoding/hex"
	"fmt"
)

// Hash256 is a 256-bit blockchain identifier: message/transaction
// representation hashes, account code hashes, block root/file hashes.
type Hash256 [32]byte

// ZeroHash256 is the all-zero identifier used when a hash is unavailable.
var ZeroHash256 Hash256

func (h Hash256) Hex() string {
	return hex.EncodeToString(h[:])
}

func (h Hash256) String() string {
	return h.Hex()
}

func (h Hash256) IsZero() bool {
	return h == ZeroHash256
}

// ParseHash256 parses a 64-character hex string (optionally 0x-prefixed).
func ParseHash256(s string) (Hash256, error) {
	var h Hash256
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return h, fmt.Errorf("parsing hash256 %q: %w", s, err)
	}
	if len(b) != 32 {
		return h, fmt.Errorf("hash256 %q: expected 32 bytes, got %d", s, len(b))
	}
	copy(h[:], b)
	return h, nil
}
