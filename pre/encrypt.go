package pre

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/nucypher/umbral-go"
	"github.com/nucypher/umbral-go/dem"
	"github.com/nucypher/umbral-go/kdf"
)

// Encrypt produces a Capsule and a DEM-encrypted ciphertext of
// plaintext under pk's owner, per spec.md §4.6. If rnd is nil,
// crypto/rand.Reader is used.
func Encrypt(rnd io.Reader, pk *PublicKey, plaintext []byte) (*Capsule, []byte, error) {
	if rnd == nil {
		rnd = rand.Reader
	}

	r, err := secp256k1.RandomNonzeroScalar(rnd)
	if err != nil {
		return nil, nil, err
	}
	u, err := secp256k1.RandomNonzeroScalar(rnd)
	if err != nil {
		return nil, nil, err
	}

	e := secp256k1.NewIdentityPoint().ScalarBaseMult(r)
	v := secp256k1.NewIdentityPoint().ScalarBaseMult(u)

	h := hashCapsule(e, v)

	s := secp256k1.NewScalar().Multiply(h, r)
	s.Add(s, u)

	sharedPoint := secp256k1.NewIdentityPoint().ScalarMult(secp256k1.NewScalar().Add(r, u), pk.Point())

	key, err := kdf.Derive(encodePoint(sharedPoint))
	if err != nil {
		return nil, nil, err
	}

	ciphertext, err := dem.Seal(rnd, key, plaintext)
	if err != nil {
		return nil, nil, err
	}

	return &Capsule{E: e, V: v, S: s}, ciphertext, nil
}

// DecryptOriginal recovers the plaintext directly with the delegator's
// own secret key, without any reencryption, per spec.md §4.6.
func DecryptOriginal(sk *SecretKey, capsule *Capsule, ciphertext []byte) ([]byte, error) {
	if !capsule.isConsistent() {
		return nil, ErrInvalidCapsule
	}

	sum := secp256k1.NewIdentityPoint().Add(capsule.E, capsule.V)
	sharedPoint := secp256k1.NewIdentityPoint().ScalarMult(sk.Scalar(), sum)

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
