package pre

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/nucypher/umbral-go"
	"github.com/nucypher/umbral-go/ecsig"
)

// CapsuleFragProof binds a CapsuleFrag's reencrypted values to the
// KeyFrag's commitment, via a Chaum-Pedersen-style proof of equal
// discrete logs, per spec.md §3.
//
// The byte layout of spec.md §6 (`E2‖V2‖U1‖commitment‖z3‖kfrag_sig`,
// 228 bytes) has only four curve points, not the five implied by the
// data-model table's separate `U2` field; the fourth point is the
// KeyFrag's own commitment, copied forward unchanged.
type CapsuleFragProof struct {
	E2, V2, U1 *secp256k1.Point
	Commitment *secp256k1.Point
	Z3         *secp256k1.Scalar
	KfragSig   *ecsig.Signature
}

// Bytes returns the fixed 228-byte encoding of p.
func (p *CapsuleFragProof) Bytes() []byte {
	dst := make([]byte, 0, CapsuleFragProofSize)
	dst = append(dst, encodePoint(p.E2)...)
	dst = append(dst, encodePoint(p.V2)...)
	dst = append(dst, encodePoint(p.U1)...)
	dst = append(dst, encodePoint(p.Commitment)...)
	dst = append(dst, p.Z3.Bytes()...)
	dst = append(dst, p.KfragSig.Bytes()...)
	return dst
}

func capsuleFragProofFromBytes(b []byte) (*CapsuleFragProof, error) {
	if len(b) != CapsuleFragProofSize {
		return nil, fmt.Errorf("%w: invalid CapsuleFragProof length", ErrValidation)
	}

	off := 0
	e2, err := decodePoint(b[off : off+pointSize])
	if err != nil {
		return nil, err
	}
	off += pointSize

	v2, err := decodePoint(b[off : off+pointSize])
	if err != nil {
		return nil, err
	}
	off += pointSize

	u1, err := decodePoint(b[off : off+pointSize])
	if err != nil {
		return nil, err
	}
	off += pointSize

	commitment, err := decodePoint(b[off : off+pointSize])
	if err != nil {
		return nil, err
	}
	off += pointSize

	z3, err := decodeScalar(b[off : off+scalarSize])
	if err != nil {
		return nil, err
	}
	off += scalarSize

	kfragSig, err := decodeSignature(b[off : off+sigSize])
	if err != nil {
		return nil, err
	}

	return &CapsuleFragProof{
		E2:         e2,
		V2:         v2,
		U1:         u1,
		Commitment: commitment,
		Z3:         z3,
		KfragSig:   kfragSig,
	}, nil
}

// CapsuleFrag is a proxy's reencryption of a Capsule under a single
// KeyFrag share, with an attached proof of correct reencryption, per
// spec.md §3.
type CapsuleFrag struct {
	E1, V1    *secp256k1.Point
	KfragID   [kfragIDSize]byte
	Precursor *secp256k1.Point
	Proof     *CapsuleFragProof
}

// Reencrypt applies kfrag's share to capsule, producing a CapsuleFrag
// together with a proof of correct reencryption, per spec.md §4.5. If
// rnd is nil, crypto/rand.Reader is used.
//
// capsule must have already passed its own consistency check
// (DecryptOriginal / the caller performs this before dispatching work
// to the proxy); Reencrypt does not re-verify it, mirroring the
// reference implementation's division of labor between the capsule
// owner and the proxy.
func Reencrypt(rnd io.Reader, capsule *Capsule, kfrag *KeyFrag, metadata []byte, metadataPresent bool) (*CapsuleFrag, error) {
	if rnd == nil {
		rnd = rand.Reader
	}

	e1 := secp256k1.NewIdentityPoint().ScalarMult(kfrag.key, capsule.E)
	v1 := secp256k1.NewIdentityPoint().ScalarMult(kfrag.key, capsule.V)

	t, err := secp256k1.RandomNonzeroScalar(rnd)
	if err != nil {
		return nil, err
	}

	e2 := secp256k1.NewIdentityPoint().ScalarMult(t, capsule.E)
	v2 := secp256k1.NewIdentityPoint().ScalarMult(t, capsule.V)
	u1 := secp256k1.NewIdentityPoint().ScalarMult(t, kfrag.Params.U)

	h := hashCfrag(capsule.E, capsule.V, e1, v1, e2, v2, kfrag.Proof.Commitment, u1, kfrag.Precursor, kfrag.ID, metadata, metadataPresent)

	z3 := secp256k1.NewScalar().Multiply(h, kfrag.key)
	z3.Add(z3, t)

	return &CapsuleFrag{
		E1:        e1,
		V1:        v1,
		KfragID:   kfrag.ID,
		Precursor: kfrag.Precursor,
		Proof: &CapsuleFragProof{
			E2:         e2,
			V2:         v2,
			U1:         u1,
			Commitment: kfrag.Proof.Commitment,
			Z3:         z3,
			KfragSig:   kfrag.Proof.SigBob,
		},
	}, nil
}

// Verify checks cf's reencryption proof against capsule and params,
// and checks kfrag_sig against signingPK over a digest that binds both
// the delegating and the receiving key; kfrag_sig always covers both
// keys, so a nil delegatingPK or receivingPK makes verification fail.
// metadata/metadataPresent must match the values
// supplied to the Reencrypt call that produced cf. The sub-checks are
// combined with a bitwise AND rather than short-circuit evaluation,
// per spec.md §4.5.
func (cf *CapsuleFrag) Verify(capsule *Capsule, params *Parameters, signingPK, delegatingPK, receivingPK *PublicKey, metadata []byte, metadataPresent bool) bool {
	h := hashCfrag(capsule.E, capsule.V, cf.E1, cf.V1, cf.Proof.E2, cf.Proof.V2, cf.Proof.Commitment, cf.Proof.U1, cf.Precursor, cf.KfragID, metadata, metadataPresent)

	lhsE := secp256k1.NewIdentityPoint().ScalarMult(cf.Proof.Z3, capsule.E)
	rhsE := secp256k1.NewIdentityPoint().Add(cf.Proof.E2, secp256k1.NewIdentityPoint().ScalarMult(h, cf.E1))
	correctRE := lhsE.Equal(rhsE) == 1

	lhsV := secp256k1.NewIdentityPoint().ScalarMult(cf.Proof.Z3, capsule.V)
	rhsV := secp256k1.NewIdentityPoint().Add(cf.Proof.V2, secp256k1.NewIdentityPoint().ScalarMult(h, cf.V1))
	correctRV := lhsV.Equal(rhsV) == 1

	lhsU := secp256k1.NewIdentityPoint().ScalarMult(cf.Proof.Z3, params.U)
	rhsU := secp256k1.NewIdentityPoint().Add(cf.Proof.U1, secp256k1.NewIdentityPoint().ScalarMult(h, cf.Proof.Commitment))
	correctRU := lhsU.Equal(rhsU) == 1

	digest := hashCfragSig(cf.KfragID, cf.Proof.Commitment, cf.Precursor, delegatingPK, receivingPK)
	signingECKey, err := signingPK.toEcsigPublicKey()
	validSignature := err == nil && signingECKey.Verify(digest, cf.Proof.KfragSig)

	return boolAnd(boolAnd(boolAnd(correctRE, correctRV), correctRU), validSignature)
}

// Equal reports whether cf and other have the same E1, V1, KeyFrag ID
// and precursor. The proof is not compared.
func (cf *CapsuleFrag) Equal(other *CapsuleFrag) bool {
	return cf.E1.Equal(other.E1) == 1 &&
		cf.V1.Equal(other.V1) == 1 &&
		cf.KfragID == other.KfragID &&
		cf.Precursor.Equal(other.Precursor) == 1
}

// Bytes returns the fixed 359-byte encoding of cf.
func (cf *CapsuleFrag) Bytes() []byte {
	dst := make([]byte, 0, CapsuleFragSize)
	dst = append(dst, encodePoint(cf.E1)...)
	dst = append(dst, encodePoint(cf.V1)...)
	dst = append(dst, cf.KfragID[:]...)
	dst = append(dst, encodePoint(cf.Precursor)...)
	dst = append(dst, cf.Proof.Bytes()...)
	return dst
}

// CapsuleFragFromBytes parses the fixed 359-byte encoding of a
// CapsuleFrag.
func CapsuleFragFromBytes(b []byte) (*CapsuleFrag, error) {
	if len(b) != CapsuleFragSize {
		return nil, fmt.Errorf("%w: invalid CapsuleFrag length", ErrValidation)
	}

	off := 0
	e1, err := decodePoint(b[off : off+pointSize])
	if err != nil {
		return nil, err
	}
	off += pointSize

	v1, err := decodePoint(b[off : off+pointSize])
	if err != nil {
		return nil, err
	}
	off += pointSize

	var kfragID [kfragIDSize]byte
	copy(kfragID[:], b[off:off+kfragIDSize])
	off += kfragIDSize

	precursor, err := decodePoint(b[off : off+pointSize])
	if err != nil {
		return nil, err
	}
	off += pointSize

	proof, err := capsuleFragProofFromBytes(b[off : off+CapsuleFragProofSize])
	if err != nil {
		return nil, err
	}

	return &CapsuleFrag{
		E1:        e1,
		V1:        v1,
		KfragID:   kfragID,
		Precursor: precursor,
		Proof:     proof,
	}, nil
}
