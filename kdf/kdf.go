// Package kdf implements the Umbral scheme's key derivation function:
// HKDF-SHA256 over the byte encoding of a KEM-derived curve point,
// with an empty salt and a fixed info string, producing a 32-byte DEM
// key.
package kdf

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

// KeySize is the size, in bytes, of a derived key.
const KeySize = 32

// info is the fixed HKDF info string required by spec.md §6.
const info = "NuCypher/Umbral/DEM"

// Derive extracts and expands secret (the serialized KEM-derived
// point) into a 32-byte DEM key.
func Derive(secret []byte) ([KeySize]byte, error) {
	var key [KeySize]byte

	r := hkdf.New(sha256.New, secret, nil, []byte(info))
	if _, err := io.ReadFull(r, key[:]); err != nil {
		return key, err
	}

	return key, nil
}
