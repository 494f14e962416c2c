package pre

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/nucypher/umbral-go"
	"github.com/nucypher/umbral-go/ecsig"
)

// maxSharedSecretRetries bounds the `H_shared == 0` restart loop of
// spec.md §4.4 step 3, per Design Note 2 of spec.md §9.
const maxSharedSecretRetries = 255

// KeyFragProof binds a KeyFrag's share value to a public commitment
// and two signatures, per spec.md §3.
type KeyFragProof struct {
	Commitment                       *secp256k1.Point
	SigProxy, SigBob                 *ecsig.Signature
	DelegatingSigned, ReceivingSigned bool
}

// Bytes returns the fixed 163-byte encoding of p.
func (p *KeyFragProof) Bytes() []byte {
	dst := make([]byte, 0, KeyFragProofSize)
	dst = append(dst, encodePoint(p.Commitment)...)
	dst = append(dst, p.SigProxy.Bytes()...)
	dst = append(dst, p.SigBob.Bytes()...)
	dst = append(dst, encodeBool(p.DelegatingSigned))
	dst = append(dst, encodeBool(p.ReceivingSigned))
	return dst
}

func keyFragProofFromBytes(b []byte) (*KeyFragProof, error) {
	if len(b) != KeyFragProofSize {
		return nil, fmt.Errorf("%w: invalid KeyFragProof length", ErrValidation)
	}

	off := 0
	commitment, err := decodePoint(b[off : off+pointSize])
	if err != nil {
		return nil, err
	}
	off += pointSize

	sigProxy, err := decodeSignature(b[off : off+sigSize])
	if err != nil {
		return nil, err
	}
	off += sigSize

	sigBob, err := decodeSignature(b[off : off+sigSize])
	if err != nil {
		return nil, err
	}
	off += sigSize

	delegatingSigned, err := decodeBool(b[off])
	if err != nil {
		return nil, err
	}
	off++

	receivingSigned, err := decodeBool(b[off])
	if err != nil {
		return nil, err
	}

	return &KeyFragProof{
		Commitment:       commitment,
		SigProxy:         sigProxy,
		SigBob:           sigBob,
		DelegatingSigned: delegatingSigned,
		ReceivingSigned:  receivingSigned,
	}, nil
}

// KeyFrag is a Shamir share of a blinded form of the delegator's
// secret key, held by a proxy (spec.md §3).
type KeyFrag struct {
	Params    *Parameters
	ID        [kfragIDSize]byte
	key       *secp256k1.Scalar
	Precursor *secp256k1.Point
	Proof     *KeyFragProof
}

// keyFragFactory holds the per-batch state shared by every KeyFrag
// produced by a single GenerateKeyFrags call, mirroring the teacher's
// (and the reference implementation's) factory/per-share split.
type keyFragFactory struct {
	params                    *Parameters
	signingSK                 *ecsig.PrivateKey
	precursor                 *secp256k1.Point
	pkBobPoint                *secp256k1.Point
	dhPoint                   *secp256k1.Point
	delegatingPK, receivingPK *PublicKey
	coefficients              []*secp256k1.Scalar
}

func newKeyFragFactory(rnd io.Reader, params *Parameters, delegatingSK *SecretKey, receivingPK *PublicKey, signingSK *ecsig.PrivateKey, threshold int) (*keyFragFactory, error) {
	if rnd == nil {
		rnd = rand.Reader
	}

	delegatingPK := PublicKeyFromSecretKey(delegatingSK)
	pkBobPoint := receivingPK.Point()

	var (
		d         *secp256k1.Scalar
		precursor *secp256k1.Point
		dhPoint   *secp256k1.Point
	)
	for attempt := 0; ; attempt++ {
		if attempt >= maxSharedSecretRetries {
			return nil, errSharedSecretExhausted
		}

		xA, err := secp256k1.RandomNonzeroScalar(rnd)
		if err != nil {
			return nil, err
		}
		precursor = secp256k1.NewIdentityPoint().ScalarBaseMult(xA)
		dhPoint = secp256k1.NewIdentityPoint().ScalarMult(xA, pkBobPoint)

		d = hashShared(precursor, pkBobPoint, dhPoint)
		if d.IsZero() == 0 {
			break
		}
	}

	coefficient0 := secp256k1.NewScalar().Multiply(delegatingSK.Scalar(), secp256k1.NewScalar().Invert(d))

	coefficients := make([]*secp256k1.Scalar, threshold)
	coefficients[0] = coefficient0
	for i := 1; i < threshold; i++ {
		c, err := secp256k1.RandomNonzeroScalar(rnd)
		if err != nil {
			return nil, err
		}
		coefficients[i] = c
	}

	return &keyFragFactory{
		params:       params,
		signingSK:    signingSK,
		precursor:    precursor,
		pkBobPoint:   pkBobPoint,
		dhPoint:      dhPoint,
		delegatingPK: delegatingPK,
		receivingPK:  receivingPK,
		coefficients: coefficients,
	}, nil
}

// polyEval evaluates the sharing polynomial at x via Horner's method,
// per spec.md §4.4 step 3 of the per-kfrag loop.
func polyEval(coefficients []*secp256k1.Scalar, x *secp256k1.Scalar) *secp256k1.Scalar {
	result := secp256k1.NewScalarFrom(coefficients[len(coefficients)-1])
	for i := len(coefficients) - 2; i >= 0; i-- {
		result.Multiply(result, x)
		result.Add(result, coefficients[i])
	}
	return result
}

func (f *keyFragFactory) newKeyFrag(rnd io.Reader, signDelegating, signReceiving bool) (*KeyFrag, error) {
	var id [kfragIDSize]byte
	if _, err := io.ReadFull(rnd, id[:]); err != nil {
		return nil, err
	}

	xi := hashPoly(f.precursor, f.pkBobPoint, f.dhPoint, id)
	rk := polyEval(f.coefficients, xi)

	commitment := secp256k1.NewIdentityPoint().ScalarMult(rk, f.params.U)

	digestBob := hashCfragSig(id, commitment, f.precursor, f.delegatingPK, f.receivingPK)
	sigBob, err := f.signingSK.Sign(digestBob)
	if err != nil {
		return nil, err
	}

	var maybeDelegating, maybeReceiving *PublicKey
	if signDelegating {
		maybeDelegating = f.delegatingPK
	}
	if signReceiving {
		maybeReceiving = f.receivingPK
	}
	digestProxy := hashCfragSig(id, commitment, f.precursor, maybeDelegating, maybeReceiving)
	sigProxy, err := f.signingSK.Sign(digestProxy)
	if err != nil {
		return nil, err
	}

	return &KeyFrag{
		Params:    f.params,
		ID:        id,
		key:       rk,
		Precursor: f.precursor,
		Proof: &KeyFragProof{
			Commitment:       commitment,
			SigProxy:         sigProxy,
			SigBob:           sigBob,
			DelegatingSigned: signDelegating,
			ReceivingSigned:  signReceiving,
		},
	}, nil
}

// GenerateKeyFrags creates `count` KeyFrags splitting delegatingSK into
// a `threshold`-of-`count` Shamir sharing, reencryptable towards
// receivingPK, with proofs signed by signingSK, per spec.md §4.4.
//
// If rnd is nil, crypto/rand.Reader is used. If signDelegatingKey or
// signReceivingKey is true, the corresponding public key must be
// supplied to KeyFrag.Verify for verification to succeed.
func GenerateKeyFrags(rnd io.Reader, params *Parameters, delegatingSK *SecretKey, receivingPK *PublicKey, signingSK *SecretKey, threshold, count int, signDelegatingKey, signReceivingKey bool) ([]*KeyFrag, error) {
	if threshold < 1 || threshold > count {
		return nil, ErrInvalidThreshold
	}
	if rnd == nil {
		rnd = rand.Reader
	}

	signingECKey, err := signingSK.toEcsigPrivateKey()
	if err != nil {
		return nil, err
	}

	factory, err := newKeyFragFactory(rnd, params, delegatingSK, receivingPK, signingECKey, threshold)
	if err != nil {
		return nil, err
	}

	kfrags := make([]*KeyFrag, count)
	for i := 0; i < count; i++ {
		kf, err := factory.newKeyFrag(rnd, signDelegatingKey, signReceivingKey)
		if err != nil {
			return nil, err
		}
		kfrags[i] = kf
	}

	return kfrags, nil
}

// Verify checks the integrity of kf against signingPK, and optionally
// the delegating/receiving public keys, per spec.md §4.4. The
// sub-checks (commitment, presence of the required keys, signature)
// are combined with a bitwise AND rather than short-circuit
// evaluation, so that timing does not reveal which one failed.
func (kf *KeyFrag) Verify(signingPK *PublicKey, maybeDelegatingPK, maybeReceivingPK *PublicKey) bool {
	correctCommitment := secp256k1.NewIdentityPoint().ScalarMult(kf.key, kf.Params.U).Equal(kf.Proof.Commitment) == 1

	delegatingProvided := !(maybeDelegatingPK == nil && kf.Proof.DelegatingSigned)
	receivingProvided := !(maybeReceivingPK == nil && kf.Proof.ReceivingSigned)

	var digelegating, direceiving *PublicKey
	if kf.Proof.DelegatingSigned {
		digelegating = maybeDelegatingPK
	}
	if kf.Proof.ReceivingSigned {
		direceiving = maybeReceivingPK
	}

	digest := hashCfragSig(kf.ID, kf.Proof.Commitment, kf.Precursor, digelegating, direceiving)

	signingECKey, err := signingPK.toEcsigPublicKey()
	validSignature := err == nil && signingECKey.Verify(digest, kf.Proof.SigProxy)

	keysProvided := delegatingProvided && receivingProvided

	return boolAnd(boolAnd(correctCommitment, keysProvided), validSignature)
}

func boolAnd(a, b bool) bool {
	var x, y byte
	if a {
		x = 1
	}
	if b {
		y = 1
	}
	return x&y == 1
}

// Equal reports whether kf and other have the same ID, share value,
// precursor, Parameters and commitment. The proof signatures and
// signing flags are not compared.
func (kf *KeyFrag) Equal(other *KeyFrag) bool {
	return kf.ID == other.ID &&
		kf.key.Equal(other.key) == 1 &&
		kf.Precursor.Equal(other.Precursor) == 1 &&
		kf.Params.Equal(other.Params) &&
		kf.Proof.Commitment.Equal(other.Proof.Commitment) == 1
}

// Bytes returns the fixed 293-byte encoding of kf.
func (kf *KeyFrag) Bytes() []byte {
	dst := make([]byte, 0, KeyFragSize)
	dst = append(dst, kf.Params.Bytes()...)
	dst = append(dst, kf.ID[:]...)
	dst = append(dst, kf.key.Bytes()...)
	dst = append(dst, encodePoint(kf.Precursor)...)
	dst = append(dst, kf.Proof.Bytes()...)
	return dst
}

// KeyFragFromBytes parses the fixed 293-byte encoding of a KeyFrag.
func KeyFragFromBytes(b []byte) (*KeyFrag, error) {
	if len(b) != KeyFragSize {
		return nil, fmt.Errorf("%w: invalid KeyFrag length", ErrValidation)
	}

	off := 0
	params, err := ParametersFromBytes(b[off : off+ParametersSize])
	if err != nil {
		return nil, err
	}
	off += ParametersSize

	var id [kfragIDSize]byte
	copy(id[:], b[off:off+kfragIDSize])
	off += kfragIDSize

	key, err := decodeScalar(b[off : off+scalarSize])
	if err != nil {
		return nil, err
	}
	off += scalarSize

	precursor, err := decodePoint(b[off : off+pointSize])
	if err != nil {
		return nil, err
	}
	off += pointSize

	proof, err := keyFragProofFromBytes(b[off : off+KeyFragProofSize])
	if err != nil {
		return nil, err
	}

	return &KeyFrag{
		Params:    params,
		ID:        id,
		key:       key,
		Precursor: precursor,
		Proof:     proof,
	}, nil
}
