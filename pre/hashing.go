package pre

import (
	"crypto/sha256"

	"github.com/nucypher/umbral-go"
)

// Domain-separation tags for the hashers of spec.md §4.2, generalizing
// the teacher's single BIP-0340 tagged hash (secec/schnorr.go's
// schnorrTaggedHash) to the five hashers this scheme needs.
const (
	tagShared  = "umbral-shared-secret"
	tagPoly    = "umbral-poly-arg"
	tagCfrag   = "umbral-cfrag-challenge"
	tagCapsule = "umbral-capsule"
	tagCfragSig = "umbral-cfrag-signature"
)

func taggedHash(tag string, parts ...[]byte) []byte {
	h := sha256.New()
	_, _ = h.Write([]byte(tag))
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	return h.Sum(nil)
}

func hashToScalar(tag string, parts ...[]byte) *secp256k1.Scalar {
	digest := taggedHash(tag, parts...)
	s, _ := secp256k1.NewScalar().SetBytes((*[secp256k1.ScalarSize]byte)(digest))
	return s
}

// hashShared computes `d = H_shared(precursor, pk_bob, dh_point)`, the
// secret value that makes the scheme's non-interactive key-sharing
// possible (spec.md §4.4, step 3).
func hashShared(precursor, pkBob, dhPoint *secp256k1.Point) *secp256k1.Scalar {
	return hashToScalar(tagShared, encodePoint(precursor), encodePoint(pkBob), encodePoint(dhPoint))
}

// hashPoly computes the Shamir share index `x_i =
// H_poly(precursor, pk_bob, dh_point, kfrag_id)` (spec.md §4.4, step 2
// of the per-kfrag loop).
func hashPoly(precursor, pkBob, dhPoint *secp256k1.Point, kfragID [kfragIDSize]byte) *secp256k1.Scalar {
	return hashToScalar(tagPoly, encodePoint(precursor), encodePoint(pkBob), encodePoint(dhPoint), kfragID[:])
}

// hashCapsule computes `h = H_capsule(E, V)`, the capsule
// self-consistency binder (spec.md §4.6, step 3).
func hashCapsule(e, v *secp256k1.Point) *secp256k1.Scalar {
	return hashToScalar(tagCapsule, encodePoint(e), encodePoint(v))
}

// hashCfrag computes the re-encryption proof challenge `h`, over the
// full tuple named by spec.md §4.5, step 4.
func hashCfrag(e, v, e1, v1, e2, v2, commitment, u1, precursor *secp256k1.Point, kfragID [kfragIDSize]byte, metadata []byte, metadataPresent bool) *secp256k1.Scalar {
	return hashToScalar(
		tagCfrag,
		encodePoint(e), encodePoint(v),
		encodePoint(e1), encodePoint(v1),
		encodePoint(e2), encodePoint(v2),
		encodePoint(commitment), encodePoint(u1),
		encodePoint(precursor),
		kfragID[:],
		encodeMetadata(metadata, metadataPresent),
	)
}

// hashCfragSig computes the digest consumed by the signature layer
// when signing or verifying a KeyFrag's proof, per spec.md §4.2 and
// the Open Question resolution recorded in SPEC_FULL.md §4.1: optional
// keys are encoded as a presence tag followed by the compressed point
// when present, nothing when absent.
func hashCfragSig(kfragID [kfragIDSize]byte, commitment, precursor *secp256k1.Point, delegatingPK, receivingPK *PublicKey) []byte {
	return taggedHash(
		tagCfragSig,
		kfragID[:],
		encodePoint(commitment),
		encodePoint(precursor),
		encodeOptionalPublicKey(delegatingPK),
		encodeOptionalPublicKey(receivingPK),
	)
}
