package ecsig

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"
)

func digestOf(msg string) []byte {
	h := sha256.Sum256([]byte(msg))
	return h[:]
}

func TestECDSA(t *testing.T) {
	sk, err := GenerateKey(nil)
	require.NoError(t, err, "GenerateKey")

	digest := digestOf("a message that needs signing")

	sig, err := sk.Sign(digest)
	require.NoError(t, err, "Sign")
	require.True(t, sk.PublicKey().Verify(digest, sig), "Verify")

	t.Run("Deterministic", func(t *testing.T) {
		sig2, err := sk.Sign(digest)
		require.NoError(t, err)
		require.EqualValues(t, sig.Bytes(), sig2.Bytes(), "signing is deterministic")
	})

	t.Run("LowS", func(t *testing.T) {
		require.EqualValues(t, 0, sig.S.IsGreaterThanHalfN())
	})

	t.Run("RoundTrip", func(t *testing.T) {
		b := sig.Bytes()
		require.Len(t, b, SignatureSize)

		back, err := SignatureFromBytes(b)
		require.NoError(t, err)
		require.True(t, sk.PublicKey().Verify(digest, back))
	})

	t.Run("RejectsWrongKey", func(t *testing.T) {
		other, err := GenerateKey(nil)
		require.NoError(t, err)
		require.False(t, other.PublicKey().Verify(digest, sig))
	})

	t.Run("RejectsTamperedDigest", func(t *testing.T) {
		tampered := digestOf("a different message")
		require.False(t, sk.PublicKey().Verify(tampered, sig))
	})
}
