package secp256k1

import (
	"errors"
	"math/big"
)

// See: https://www.secg.org/sec1-v2.pdf, section 2.3.3/2.3.4.

const (
	// CompressedPointSize is the size of a compressed point in bytes,
	// in the SEC 1 encoding (`Y_EvenOrOdd | X`).
	CompressedPointSize = 33

	// CoordSize is the size, in bytes, of a single field element
	// (the X or Y coordinate of a point).
	CoordSize = 32

	// IdentityPointSize is the size of the point at infinity in
	// bytes, in the SEC 1 encoding (`0x00`).
	IdentityPointSize = 1

	prefixIdentity       = 0x00
	prefixCompressedEven = 0x02
	prefixCompressedOdd  = 0x03
)

// ErrInvalidPoint is returned when a byte string is not a valid SEC 1
// encoding of a point on the curve.
var ErrInvalidPoint = errors.New("secp256k1: invalid point encoding")

// CompressedBytes returns the SEC 1 compressed encoding of v.
func (v *Point) CompressedBytes() []byte {
	assertPointsValid(v)

	if v.IsIdentity() == 1 {
		return []byte{prefixIdentity}
	}

	dst := make([]byte, CompressedPointSize)
	if v.y.Bit(0) == 1 {
		dst[0] = prefixCompressedOdd
	} else {
		dst[0] = prefixCompressedEven
	}
	v.x.FillBytes(dst[1:])

	return dst
}

// SetBytes sets v = src, where src is a valid SEC 1 encoding of a
// point (compressed, or the 1-byte identity encoding). On failure,
// SetBytes returns nil and an error, and the receiver is left
// unchanged.
func (v *Point) SetBytes(src []byte) (*Point, error) {
	switch len(src) {
	case IdentityPointSize:
		if src[0] != prefixIdentity {
			return nil, ErrInvalidPoint
		}
		return v.Identity(), nil
	case CompressedPointSize:
		if src[0] != prefixCompressedOdd && src[0] != prefixCompressedEven {
			return nil, ErrInvalidPoint
		}

		var x big.Int
		x.SetBytes(src[1:])
		if x.Cmp(curveP) >= 0 {
			return nil, ErrInvalidPoint
		}

		rhs := new(big.Int).Mul(&x, &x)
		rhs.Mul(rhs, &x)
		rhs.Add(rhs, curveB)
		rhs.Mod(rhs, curveP)

		y, isSquare := sqrtModP(rhs)
		if !isSquare {
			return nil, ErrInvalidPoint
		}

		wantOdd := src[0] == prefixCompressedOdd
		if (y.Bit(0) == 1) != wantOdd {
			y.Sub(curveP, y)
		}

		v.x.Set(&x)
		v.y.Set(y)
		v.infinity = false
		v.isValid = true
		return v, nil
	default:
		return nil, ErrInvalidPoint
	}
}

// NewPointFromBytes is a convenience wrapper around SetBytes.
func NewPointFromBytes(src []byte) (*Point, error) {
	return new(Point).SetBytes(src)
}

// XBytes returns the big-endian encoding of v's affine X coordinate.
// v MUST NOT be the point at infinity.
func (v *Point) XBytes() ([]byte, error) {
	assertPointsValid(v)
	if v.IsIdentity() == 1 {
		return nil, ErrInvalidPoint
	}
	dst := make([]byte, CoordSize)
	v.x.FillBytes(dst)
	return dst, nil
}

// HashToPoint deterministically derives a point on the curve from an
// arbitrary-length byte string, via try-and-increment: a domain tag and
// an incrementing counter are hashed (by the caller-supplied digest
// function) into a candidate X coordinate, and the first candidate for
// which X^3+7 is a quadratic residue mod p is accepted, with the
// even-Y root chosen for determinism.
//
// The resulting point's discrete log relative to G is unknown to
// everyone, including the caller, which is what makes this suitable
// for deriving a Pedersen-style commitment base.
func HashToPoint(digest func(counter byte) [32]byte) *Point {
	for counter := byte(0); ; counter++ {
		cand := digest(counter)
		var x big.Int
		x.SetBytes(cand[:])
		x.Mod(&x, curveP)

		rhs := new(big.Int).Mul(&x, &x)
		rhs.Mul(rhs, &x)
		rhs.Add(rhs, curveB)
		rhs.Mod(rhs, curveP)

		y, isSquare := sqrtModP(rhs)
		if !isSquare {
			continue
		}
		if y.Bit(0) == 1 {
			y.Sub(curveP, y)
		}

		p := new(Point)
		p.x.Set(&x)
		p.y.Set(y)
		p.infinity = false
		p.isValid = true
		return p
	}
}
