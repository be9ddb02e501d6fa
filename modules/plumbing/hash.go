// Copyright 2018 Sourced Technologies, S.L.
// SPDX-License-Identifier: Apache-2.0

package plumbing

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"hash"
	"sort"
)

const (
	// HashSize is the length in bytes of an object identifier.
	HashSize = sha1.Size
	// HashHexSize is the length in hex characters of an object identifier.
	HashHexSize = HashSize * 2
)

// Hash is a 40-hex-digit content hash identifying an Object. The digest
// algorithm is fixed to SHA-1: it is the only one in the surrounding
// ecosystem whose digest size (20 bytes) matches the wire format this
// package defines.
type Hash [HashSize]byte

// ZeroHash is the Hash with all bytes zero; it never names a real object.
var ZeroHash Hash

// NewHash decodes a hex string into a Hash. Malformed input yields ZeroHash;
// callers that must distinguish malformed input should call ValidateHashHex
// first, or use NewHashEx.
func NewHash(s string) Hash {
	b, _ := hex.DecodeString(s)
	var h Hash
	copy(h[:], b)
	return h
}

// NewHashEx decodes a hex string into a Hash, rejecting anything that is not
// exactly HashHexSize lowercase hex characters.
func NewHashEx(s string) (Hash, error) {
	if !ValidateHashHex(s) {
		return ZeroHash, fmt.Errorf("agit: %q is not a valid object id", s)
	}
	return NewHash(s), nil
}

// ValidateHashHex reports whether s is a syntactically valid object id.
func ValidateHashHex(s string) bool {
	if len(s) != HashHexSize {
		return false
	}
	for _, c := range []byte(s) {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		default:
			return false
		}
	}
	return true
}

// IsZero reports whether h is the zero hash.
func (h Hash) IsZero() bool {
	return h == ZeroHash
}

// String renders h as 40 lowercase hex digits.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// HashesSort sorts a slice of Hash in increasing byte order.
func HashesSort(a []Hash) {
	sort.Sort(HashSlice(a))
}

// HashSlice attaches sort.Interface to []Hash.
type HashSlice []Hash

func (p HashSlice) Len() int           { return len(p) }
func (p HashSlice) Less(i, j int) bool { return bytes.Compare(p[i][:], p[j][:]) < 0 }
func (p HashSlice) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }

// Hasher wraps the SHA-1 state used to derive an OID from a typed payload.
type Hasher struct {
	hash.Hash
}

// NewHasher returns a Hasher ready to absorb a "<type>\x00<bytes>" payload.
func NewHasher() Hasher {
	return Hasher{Hash: sha1.New()}
}

// Sum returns the Hash for everything written so far.
func (h Hasher) Sum() (out Hash) {
	copy(out[:], h.Hash.Sum(nil))
	return
}
