// Package dem implements the Umbral scheme's data encapsulation
// mechanism: an authenticated symmetric cipher keyed by a 32-byte
// secret, used to protect the plaintext once the KEM-derived key has
// been established.
//
// Per spec.md §6, the wire layout is a random 12-byte nonce prepended
// to the ciphertext, with a 16-byte authentication tag appended —
// exactly the layout ChaCha20-Poly1305 produces when the nonce is
// carried alongside it, grounded in the same shape used by the
// session-key AEAD wrapper in other_examples (postalsys-Muti-Metroo).
package dem

import (
	"crypto/rand"
	"errors"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the size, in bytes, of a DEM key.
const KeySize = chacha20poly1305.KeySize

// NonceSize is the size, in bytes, of the random nonce prepended to
// every ciphertext.
const NonceSize = chacha20poly1305.NonceSize

// Overhead is the number of bytes a ciphertext carries beyond the
// plaintext (the prepended nonce plus the appended authentication
// tag).
const Overhead = NonceSize + chacha20poly1305.Overhead

// ErrAuthenticationFailed is returned by Open when the ciphertext
// fails to authenticate, or is too short to possibly be valid.
var ErrAuthenticationFailed = errors.New("dem: message authentication failed")

// Seal encrypts and authenticates plaintext under key, returning
// `nonce || ciphertext || tag`. The nonce is sampled from rand; if
// rand is nil, crypto/rand.Reader is used.
func Seal(rand_ io.Reader, key [KeySize]byte, plaintext []byte) ([]byte, error) {
	if rand_ == nil {
		rand_ = rand.Reader
	}

	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, err
	}

	dst := make([]byte, NonceSize, NonceSize+len(plaintext)+aead.Overhead())
	if _, err := io.ReadFull(rand_, dst[:NonceSize]); err != nil {
		return nil, err
	}

	return aead.Seal(dst, dst[:NonceSize], plaintext, nil), nil
}

// Open authenticates and decrypts ciphertext (as produced by Seal)
// under key. Any authentication failure, including a too-short
// ciphertext, is collapsed to ErrAuthenticationFailed, per spec.md §7's
// requirement that the core not leak which sub-cause fired.
func Open(key [KeySize]byte, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < Overhead {
		return nil, ErrAuthenticationFailed
	}

	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, err
	}

	nonce := ciphertext[:NonceSize]
	plaintext, err := aead.Open(nil, nonce, ciphertext[NonceSize:], nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}

	return plaintext, nil
}
