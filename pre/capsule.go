package pre

import (
	"fmt"

	"github.com/nucypher/umbral-go"
)

// Capsule is the KEM part of an Umbral ciphertext: the ephemeral
// public values needed to derive the DEM key, satisfying
// `s·G == V + H_capsule(E,V)·E` (spec.md §3, §4.6).
type Capsule struct {
	E, V *secp256k1.Point
	S    *secp256k1.Scalar
}

// isConsistent reports whether the capsule satisfies its
// self-consistency equation.
func (c *Capsule) isConsistent() bool {
	lhs := secp256k1.NewIdentityPoint().ScalarBaseMult(c.S)
	h := hashCapsule(c.E, c.V)
	rhs := secp256k1.NewIdentityPoint().Add(c.V, secp256k1.NewIdentityPoint().ScalarMult(h, c.E))
	return lhs.Equal(rhs) == 1
}

// Equal reports whether c and other encode the same capsule.
func (c *Capsule) Equal(other *Capsule) bool {
	return c.E.Equal(other.E) == 1 && c.V.Equal(other.V) == 1 && c.S.Equal(other.S) == 1
}

// Bytes returns the fixed 98-byte encoding of c (E ‖ V ‖ s).
func (c *Capsule) Bytes() []byte {
	dst := make([]byte, 0, CapsuleSize)
	dst = append(dst, encodePoint(c.E)...)
	dst = append(dst, encodePoint(c.V)...)
	dst = append(dst, c.S.Bytes()...)
	return dst
}

// CapsuleFromBytes parses the fixed 98-byte encoding of a Capsule.
func CapsuleFromBytes(b []byte) (*Capsule, error) {
	if len(b) != CapsuleSize {
		return nil, fmt.Errorf("%w: invalid Capsule length", ErrValidation)
	}

	e, err := decodePoint(b[0:pointSize])
	if err != nil {
		return nil, err
	}
	v, err := decodePoint(b[pointSize : 2*pointSize])
	if err != nil {
		return nil, err
	}
	s, err := decodeScalar(b[2*pointSize : 2*pointSize+scalarSize])
	if err != nil {
		return nil, err
	}

	return &Capsule{E: e, V: v, S: s}, nil
}
