package pre

import (
	"crypto/sha256"
	"fmt"

	"github.com/nucypher/umbral-go"
)

const domainSepParamsU = "UMBRAL-PARAMETERS-U"

// Parameters holds the single curve point `u` that acts as the
// Pedersen-style commitment base for every KeyFrag generated under
// this scheme instance, per spec.md §4.
type Parameters struct {
	U *secp256k1.Point
}

// NewParameters returns the scheme's fixed Parameters. `U` is derived
// deterministically via hash-to-curve (see DESIGN.md for why
// try-and-increment is used in place of the teacher's SWU-based
// implementation), so every caller constructing Parameters obtains the
// identical point, and nobody knows its discrete log relative to `G`.
func NewParameters() *Parameters {
	u := secp256k1.HashToPoint(func(counter byte) [32]byte {
		h := sha256.New()
		_, _ = h.Write([]byte(domainSepParamsU))
		_, _ = h.Write([]byte{counter})
		var out [32]byte
		copy(out[:], h.Sum(nil))
		return out
	})
	return &Parameters{U: u}
}

// Equal reports whether p and q are the same Parameters value.
func (p *Parameters) Equal(q *Parameters) bool {
	return p.U.Equal(q.U) == 1
}

// Bytes returns the fixed 33-byte encoding of p.
func (p *Parameters) Bytes() []byte {
	return encodePoint(p.U)
}

// ParametersFromBytes parses the fixed 33-byte encoding of Parameters.
func ParametersFromBytes(b []byte) (*Parameters, error) {
	if len(b) != ParametersSize {
		return nil, fmt.Errorf("%w: invalid Parameters length", ErrValidation)
	}
	u, err := decodePoint(b)
	if err != nil {
		return nil, err
	}
	return &Parameters{U: u}, nil
}
