package secp256k1

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"io"
	"math/big"
)

// ScalarSize is the size of a scalar in bytes.
const ScalarSize = 32

// ErrInvalidScalar is returned when a byte string is not the canonical
// big-endian encoding of an element of [0, n).
var ErrInvalidScalar = errors.New("secp256k1: invalid scalar encoding")

// Scalar is an integer modulo the order `n` of the secp256k1 group.
// All arguments and receivers are allowed to alias. The zero value is
// a valid representation of 0.
type Scalar struct {
	v big.Int
}

// NewScalar returns a new zero Scalar.
func NewScalar() *Scalar {
	return &Scalar{}
}

// NewScalarFrom creates a new Scalar from another.
func NewScalarFrom(other *Scalar) *Scalar {
	return NewScalar().Set(other)
}

// Zero sets s = 0 and returns s.
func (s *Scalar) Zero() *Scalar {
	s.v.SetInt64(0)
	return s
}

// One sets s = 1 and returns s.
func (s *Scalar) One() *Scalar {
	s.v.SetInt64(1)
	return s
}

// Set sets s = a and returns s.
func (s *Scalar) Set(a *Scalar) *Scalar {
	s.v.Set(&a.v)
	return s
}

// Add sets s = a + b (mod n) and returns s.
func (s *Scalar) Add(a, b *Scalar) *Scalar {
	s.v.Add(&a.v, &b.v)
	s.v.Mod(&s.v, curveN)
	return s
}

// Subtract sets s = a - b (mod n) and returns s.
func (s *Scalar) Subtract(a, b *Scalar) *Scalar {
	s.v.Sub(&a.v, &b.v)
	s.v.Mod(&s.v, curveN)
	return s
}

// Negate sets s = -a (mod n) and returns s.
func (s *Scalar) Negate(a *Scalar) *Scalar {
	s.v.Neg(&a.v)
	s.v.Mod(&s.v, curveN)
	return s
}

// Multiply sets s = a * b (mod n) and returns s.
func (s *Scalar) Multiply(a, b *Scalar) *Scalar {
	s.v.Mul(&a.v, &b.v)
	s.v.Mod(&s.v, curveN)
	return s
}

// Invert sets s = a^-1 (mod n) and returns s. a MUST be nonzero.
func (s *Scalar) Invert(a *Scalar) *Scalar {
	if a.IsZero() != 0 {
		panic("secp256k1: Invert of zero scalar")
	}
	s.v.ModInverse(&a.v, curveN)
	return s
}

// ConditionalNegate sets s = a iff ctrl == 0, s = -a otherwise, and
// returns s.
func (s *Scalar) ConditionalNegate(a *Scalar, ctrl uint64) *Scalar {
	neg := NewScalar().Negate(a)
	return s.ConditionalSelect(a, neg, ctrl)
}

// ConditionalSelect sets s = a iff ctrl == 0, s = b otherwise, and
// returns s.
func (s *Scalar) ConditionalSelect(a, b *Scalar, ctrl uint64) *Scalar {
	if ctrl != 0 {
		s.v.Set(&b.v)
	} else {
		s.v.Set(&a.v)
	}
	return s
}

// Equal returns 1 iff s == a, 0 otherwise, in constant time.
func (s *Scalar) Equal(a *Scalar) uint64 {
	var sb, ab [ScalarSize]byte
	s.getBytes(&sb)
	a.getBytes(&ab)
	if subtle.ConstantTimeCompare(sb[:], ab[:]) == 1 {
		return 1
	}
	return 0
}

// IsZero returns 1 iff s == 0, 0 otherwise.
func (s *Scalar) IsZero() uint64 {
	var zb [ScalarSize]byte
	s.getBytes(&zb)
	var acc byte
	for _, b := range zb {
		acc |= b
	}
	if acc == 0 {
		return 1
	}
	return 0
}

// IsGreaterThanHalfN returns 1 iff s > n/2, 0 otherwise.
func (s *Scalar) IsGreaterThanHalfN() uint64 {
	halfN := new(big.Int).Rsh(curveN, 1)
	if s.v.Cmp(halfN) > 0 {
		return 1
	}
	return 0
}

func (s *Scalar) getBytes(dst *[ScalarSize]byte) []byte {
	s.v.FillBytes(dst[:])
	return dst[:]
}

// Bytes returns the canonical big-endian encoding of s.
func (s *Scalar) Bytes() []byte {
	var dst [ScalarSize]byte
	return s.getBytes(&dst)
}

// SetBytes sets s = src, where src is a 32-byte big-endian encoding,
// reducing modulo n if necessary, and returns (s, didReduce).
func (s *Scalar) SetBytes(src *[ScalarSize]byte) (*Scalar, uint64) {
	s.v.SetBytes(src[:])
	var didReduce uint64
	if s.v.Cmp(curveN) >= 0 {
		didReduce = 1
		s.v.Mod(&s.v, curveN)
	}
	return s, didReduce
}

// SetCanonicalBytes sets s = src, where src MUST be the canonical
// big-endian encoding of an element of [0, n). On failure, returns nil
// and an error, leaving the receiver unchanged.
func (s *Scalar) SetCanonicalBytes(src *[ScalarSize]byte) (*Scalar, error) {
	var tmp big.Int
	tmp.SetBytes(src[:])
	if tmp.Cmp(curveN) >= 0 {
		return nil, ErrInvalidScalar
	}
	s.v.Set(&tmp)
	return s, nil
}

// NewScalarFromCanonicalBytes creates a new Scalar from its canonical
// big-endian byte representation.
func NewScalarFromCanonicalBytes(src *[ScalarSize]byte) (*Scalar, error) {
	return NewScalar().SetCanonicalBytes(src)
}

// RandomScalar returns a scalar sampled uniformly from [0, n) using rand.
// If rand is nil, crypto/rand.Reader is used.
func RandomScalar(rnd io.Reader) (*Scalar, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	for {
		var buf [ScalarSize]byte
		if _, err := io.ReadFull(rnd, buf[:]); err != nil {
			return nil, err
		}
		s, didReduce := NewScalar().SetBytes(&buf)
		// Reject and resample on reduction, to avoid biasing the
		// distribution towards small values.
		if didReduce == 0 {
			return s, nil
		}
	}
}

// RandomNonzeroScalar returns a nonzero scalar sampled uniformly from
// [1, n) using rand. If rand is nil, crypto/rand.Reader is used.
func RandomNonzeroScalar(rnd io.Reader) (*Scalar, error) {
	for {
		s, err := RandomScalar(rnd)
		if err != nil {
			return nil, err
		}
		if s.IsZero() == 0 {
			return s, nil
		}
	}
}

// Zeroize overwrites the scalar's value with zero, for use when
// releasing secret material.
//
// big.Int.SetInt64(0) only truncates the internal word slice's
// length, leaving the previous limbs intact in the backing array; the
// word slice is scrubbed explicitly first so the secret value does
// not linger in memory.
func (s *Scalar) Zeroize() {
	words := s.v.Bits()
	for i := range words {
		words[i] = 0
	}
	s.v.SetInt64(0)
}
