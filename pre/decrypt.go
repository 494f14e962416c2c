package pre

import (
	"fmt"

	"github.com/nucypher/umbral-go"
	"github.com/nucypher/umbral-go/dem"
	"github.com/nucypher/umbral-go/kdf"
)

// lagrangeCoefficient computes the Lagrange basis coefficient for
// index cfrags[i] evaluated at x=0, over the set of `x_i =
// H_poly(precursor, pk_bob, dh_point, kfrag_id)` values of every
// fragment in cfrags, per spec.md §4.7.
func lagrangeCoefficient(xs []*secp256k1.Scalar, i int) *secp256k1.Scalar {
	coeff := secp256k1.NewScalar().One()
	for j, xj := range xs {
		if j == i {
			continue
		}
		// coeff *= xj / (xj - xi)
		denom := secp256k1.NewScalar().Subtract(xj, xs[i])
		coeff.Multiply(coeff, xj)
		coeff.Multiply(coeff, secp256k1.NewScalar().Invert(denom))
	}
	return coeff
}

// DecryptReencrypted recovers the plaintext from a threshold set of
// CapsuleFrags produced by distinct proxies holding distinct KeyFrags
// of a single delegation, per spec.md §4.7. cfrags must all share the
// same precursor (i.e. originate from the same GenerateKeyFrags
// batch); a mismatch, like every other failure in this function,
// collapses to the single opaque ErrDecryptionFailed.
func DecryptReencrypted(skBob *SecretKey, capsule *Capsule, cfrags []*CapsuleFrag, ciphertext []byte) ([]byte, error) {
	if len(cfrags) == 0 {
		return nil, fmt.Errorf("%w", ErrDecryptionFailed)
	}
	if !capsule.isConsistent() {
		return nil, fmt.Errorf("%w", ErrDecryptionFailed)
	}

	precursor := cfrags[0].Precursor
	for _, cf := range cfrags[1:] {
		if cf.Precursor.Equal(precursor) != 1 {
			return nil, fmt.Errorf("%w", ErrDecryptionFailed)
		}
	}

	skBobPoint := secp256k1.NewIdentityPoint().ScalarBaseMult(skBob.Scalar())
	dhPoint := secp256k1.NewIdentityPoint().ScalarMult(skBob.Scalar(), precursor)

	xs := make([]*secp256k1.Scalar, len(cfrags))
	for i, cf := range cfrags {
		xs[i] = hashPoly(precursor, skBobPoint, dhPoint, cf.KfragID)
	}

	e := secp256k1.NewIdentityPoint()
	v := secp256k1.NewIdentityPoint()
	for i, cf := range cfrags {
		lambda := lagrangeCoefficient(xs, i)
		e.Add(e, secp256k1.NewIdentityPoint().ScalarMult(lambda, cf.E1))
		v.Add(v, secp256k1.NewIdentityPoint().ScalarMult(lambda, cf.V1))
	}

	sum := secp256k1.NewIdentityPoint().Add(e, v)

	d := hashShared(precursor, skBobPoint, dhPoint)
	sharedPoint := secp256k1.NewIdentityPoint().ScalarMult(d, sum)

	key, err := kdf.Derive(encodePoint(sharedPoint))
	if err != nil {
		return nil, fmt.Errorf("%w", ErrDecryptionFailed)
	}

	plaintext, err := dem.Open(key, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w", ErrDecryptionFailed)
	}
	return plaintext, nil
}
