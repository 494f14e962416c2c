// Package ecsig implements deterministic ECDSA over secp256k1, bound
// to a 64-byte `r‖s` (low-s) signature encoding. It is a generalization
// of the teacher's secec package, trimmed to the single signing role
// the Umbral PRE scheme needs: signing and verifying kfrag/cfrag proof
// digests.
package ecsig

import (
	"errors"
	"io"

	"golang.org/x/crypto/sha3"

	"github.com/nucypher/umbral-go"
)

const domainSepECDSA = "Umbral-ECDSA-Sign"

var (
	// ErrInvalidDigest is returned when a digest is not ScalarSize
	// bytes long.
	ErrInvalidDigest = errors.New("ecsig: invalid digest size")
	// ErrInvalidSignature is returned when a signature fails to parse
	// or verify.
	ErrInvalidSignature = errors.New("ecsig: invalid signature")

	errRIsInfinity = errors.New("ecsig: R is the point at infinity")
	errVNeqR       = errors.New("ecsig: v does not equal r")
)

// SignatureSize is the fixed size, in bytes, of an encoded signature.
const SignatureSize = 64

// PrivateKey is a secp256k1 ECDSA signing key.
type PrivateKey struct {
	scalar    *secp256k1.Scalar
	publicKey *PublicKey
}

// PublicKey is a secp256k1 ECDSA verification key.
type PublicKey struct {
	point *secp256k1.Point
}

// Signature is an ECDSA signature over secp256k1, normalized to
// `s <= n/2`.
type Signature struct {
	R, S *secp256k1.Scalar
}

// GenerateKey generates a new PrivateKey using rand. If rand is nil,
// crypto/rand.Reader is used.
func GenerateKey(rand io.Reader) (*PrivateKey, error) {
	s, err := secp256k1.RandomNonzeroScalar(rand)
	if err != nil {
		return nil, err
	}
	return newPrivateKeyFromScalar(s), nil
}

// NewPrivateKeyFromScalar wraps an existing nonzero scalar as a
// PrivateKey.
func NewPrivateKeyFromScalar(s *secp256k1.Scalar) (*PrivateKey, error) {
	if s.IsZero() != 0 {
		return nil, errors.New("ecsig: zero private key")
	}
	return newPrivateKeyFromScalar(secp256k1.NewScalarFrom(s)), nil
}

func newPrivateKeyFromScalar(s *secp256k1.Scalar) *PrivateKey {
	return &PrivateKey{
		scalar: s,
		publicKey: &PublicKey{
			point: secp256k1.NewIdentityPoint().ScalarBaseMult(s),
		},
	}
}

// PublicKey returns the public key corresponding to k.
func (k *PrivateKey) PublicKey() *PublicKey {
	return k.publicKey
}

// Scalar returns a copy of the scalar underlying k.
func (k *PrivateKey) Scalar() *secp256k1.Scalar {
	return secp256k1.NewScalarFrom(k.scalar)
}

// Zeroize overwrites the private scalar with zero.
func (k *PrivateKey) Zeroize() {
	k.scalar.Zeroize()
}

// Point returns a copy of the point underlying k.
func (k *PublicKey) Point() *secp256k1.Point {
	return secp256k1.NewPointFrom(k.point)
}

// Bytes returns the compressed SEC 1 encoding of k.
func (k *PublicKey) Bytes() []byte {
	return k.point.CompressedBytes()
}

// NewPublicKeyFromPoint wraps a nonzero point as a PublicKey.
func NewPublicKeyFromPoint(point *secp256k1.Point) (*PublicKey, error) {
	p := secp256k1.NewPointFrom(point)
	if p.IsIdentity() != 0 {
		return nil, errors.New("ecsig: public key is the point at infinity")
	}
	return &PublicKey{point: p}, nil
}

// NewPublicKey parses the compressed SEC 1 encoding of a public key.
func NewPublicKey(b []byte) (*PublicKey, error) {
	p, err := secp256k1.NewPointFromBytes(b)
	if err != nil {
		return nil, err
	}
	return NewPublicKeyFromPoint(p)
}

// Sign deterministically signs `digest` (a ScalarSize-byte value,
// typically produced by a domain-separated hash) with k, following the
// ECDSA signing procedure of SEC 1, Version 2.0, Section 4.1.3, with
// the per-signature nonce `k` derived deterministically (in the manner
// of RFC 6979) rather than sampled, per spec.md §4.3.
func (k *PrivateKey) Sign(digest []byte) (*Signature, error) {
	if len(digest) != secp256k1.ScalarSize {
		return nil, ErrInvalidDigest
	}

	e, _ := secp256k1.NewScalar().SetBytes((*[secp256k1.ScalarSize]byte)(digest))

	nonceStream := deterministicNonceStream(domainSepECDSA, k, digest)

	var r, s *secp256k1.Scalar
	for {
		kNonce, err := secp256k1.RandomNonzeroScalar(nonceStream)
		if err != nil {
			return nil, err
		}
		R := secp256k1.NewIdentityPoint().ScalarBaseMult(kNonce)

		rBytes, err := R.XBytes()
		if err != nil {
			// R happened to be the point at infinity; retry with a
			// fresh nonce from the stream.
			continue
		}

		r, _ = secp256k1.NewScalar().SetBytes((*[secp256k1.ScalarSize]byte)(rBytes))
		if r.IsZero() != 0 {
			continue
		}

		kInv := secp256k1.NewScalar().Invert(kNonce)
		s = secp256k1.NewScalar()
		s.Multiply(r, k.scalar).Add(s, e).Multiply(s, kInv)
		if s.IsZero() == 0 {
			break
		}
	}

	// Normalize to low-s, as required by spec.md §4.3.
	if s.IsGreaterThanHalfN() != 0 {
		s.Negate(s)
	}

	return &Signature{R: r, S: s}, nil
}

// Verify verifies sig over digest using k, following the ECDSA
// verification procedure of SEC 1, Version 2.0, Section 4.1.4.
func (k *PublicKey) Verify(digest []byte, sig *Signature) bool {
	if len(digest) != secp256k1.ScalarSize {
		return false
	}
	if sig == nil || sig.R == nil || sig.S == nil {
		return false
	}
	return verify(k, digest, sig.R, sig.S) == nil
}

func verify(q *PublicKey, digest []byte, r, s *secp256k1.Scalar) error {
	if r.IsZero() != 0 || s.IsZero() != 0 {
		return ErrInvalidSignature
	}

	e, _ := secp256k1.NewScalar().SetBytes((*[secp256k1.ScalarSize]byte)(digest))

	sInv := secp256k1.NewScalar().Invert(s)
	u1 := secp256k1.NewScalar().Multiply(e, sInv)
	u2 := secp256k1.NewScalar().Multiply(r, sInv)

	R := secp256k1.NewIdentityPoint().DoubleScalarMultBasepointVartime(u1, u2, q.point)
	if R.IsIdentity() != 0 {
		return errRIsInfinity
	}

	xBytes, _ := R.XBytes()
	v, _ := secp256k1.NewScalar().SetBytes((*[secp256k1.ScalarSize]byte)(xBytes))

	if v.Equal(r) != 1 {
		return errVNeqR
	}
	return nil
}

// Bytes returns the fixed 64-byte `r‖s` encoding of sig.
func (sig *Signature) Bytes() []byte {
	dst := make([]byte, 0, SignatureSize)
	dst = append(dst, sig.R.Bytes()...)
	dst = append(dst, sig.S.Bytes()...)
	return dst
}

// SignatureFromBytes parses the fixed 64-byte `r‖s` encoding of a
// signature.
func SignatureFromBytes(b []byte) (*Signature, error) {
	if len(b) != SignatureSize {
		return nil, ErrInvalidSignature
	}
	r, err := secp256k1.NewScalarFromCanonicalBytes((*[secp256k1.ScalarSize]byte)(b[:32]))
	if err != nil {
		return nil, ErrInvalidSignature
	}
	s, err := secp256k1.NewScalarFromCanonicalBytes((*[secp256k1.ScalarSize]byte)(b[32:64]))
	if err != nil {
		return nil, ErrInvalidSignature
	}
	return &Signature{R: r, S: s}, nil
}

// deterministicNonceStream returns an io.Reader producing a
// deterministic stream of bytes derived from the signing key and the
// message digest, used to sample the ECDSA per-signature nonce without
// relying on external entropy.
//
// This generalizes the teacher's mitigateDebianAndSony cSHAKE256
// mixing (secec/ecdsa.go) by dropping its additional entropy read,
// since spec.md §4.3 requires Sign to be fully deterministic.
func deterministicNonceStream(ctx string, k *PrivateKey, digest []byte) io.Reader {
	xof := sha3.NewCShake256(nil, []byte(ctx))
	_, _ = xof.Write(k.scalar.Bytes())
	_, _ = xof.Write(digest)
	return xof
}
