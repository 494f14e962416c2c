package pre

import (
	"fmt"
	"io"

	"github.com/nucypher/umbral-go"
	"github.com/nucypher/umbral-go/ecsig"
)

// SecretKey is a delegator's or delegatee's private key: a nonzero
// scalar, per spec.md §3. It never crosses the core's serialization
// boundary (spec.md §1).
type SecretKey struct {
	scalar *secp256k1.Scalar
}

// PublicKey is the point corresponding to a SecretKey, publicly
// shareable.
type PublicKey struct {
	point *secp256k1.Point
}

// GenerateSecretKey samples a new SecretKey using rand. If rand is
// nil, crypto/rand.Reader is used.
func GenerateSecretKey(rand io.Reader) (*SecretKey, error) {
	s, err := secp256k1.RandomNonzeroScalar(rand)
	if err != nil {
		return nil, err
	}
	return &SecretKey{scalar: s}, nil
}

// SecretKeyFromScalar wraps an existing nonzero scalar as a SecretKey.
func SecretKeyFromScalar(s *secp256k1.Scalar) (*SecretKey, error) {
	if s.IsZero() != 0 {
		return nil, fmt.Errorf("%w: zero secret key", ErrValidation)
	}
	return &SecretKey{scalar: secp256k1.NewScalarFrom(s)}, nil
}

// Scalar returns a copy of the scalar underlying sk.
func (sk *SecretKey) Scalar() *secp256k1.Scalar {
	return secp256k1.NewScalarFrom(sk.scalar)
}

// Zeroize overwrites sk's secret scalar with zero, per the lifecycle
// invariant of spec.md §3 ("must be zeroized on release").
func (sk *SecretKey) Zeroize() {
	sk.scalar.Zeroize()
}

// PublicKeyFromSecretKey derives the PublicKey corresponding to sk.
func PublicKeyFromSecretKey(sk *SecretKey) *PublicKey {
	return &PublicKey{point: secp256k1.NewIdentityPoint().ScalarBaseMult(sk.scalar)}
}

// Point returns a copy of the point underlying pk.
func (pk *PublicKey) Point() *secp256k1.Point {
	return secp256k1.NewPointFrom(pk.point)
}

// Equal reports whether pk and other are the same public key.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	return pk.point.Equal(other.point) == 1
}

// Bytes returns the compressed SEC 1 encoding of pk.
func (pk *PublicKey) Bytes() []byte {
	return pk.point.CompressedBytes()
}

// PublicKeyFromBytes parses the compressed SEC 1 encoding of a public
// key.
func PublicKeyFromBytes(b []byte) (*PublicKey, error) {
	p, err := decodePoint(b)
	if err != nil {
		return nil, err
	}
	return &PublicKey{point: p}, nil
}

// toEcsigPublicKey adapts pk for use by the ecsig signature layer.
func (pk *PublicKey) toEcsigPublicKey() (*ecsig.PublicKey, error) {
	return ecsig.NewPublicKeyFromPoint(pk.point)
}

// toEcsigPrivateKey adapts sk for use by the ecsig signature layer,
// when sk is acting in the signing-key role (spec.md §4.4's
// `sk_sign`). SecretKey/PublicKey double as both encryption keys and
// signing keys, matching the reference implementation's single
// SecretKey/PublicKey type used for both roles.
func (sk *SecretKey) toEcsigPrivateKey() (*ecsig.PrivateKey, error) {
	return ecsig.NewPrivateKeyFromScalar(sk.scalar)
}
