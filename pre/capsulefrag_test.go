package pre

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReencryptAndVerify(t *testing.T) {
	params := NewParameters()
	delegatingSK, receivingPK, signingSK := testKeys(t)
	signingPK := PublicKeyFromSecretKey(signingSK)
	delegatingPK := PublicKeyFromSecretKey(delegatingSK)

	capsule, ciphertext, err := Encrypt(nil, delegatingPK, []byte("plaintext under threshold delegation"))
	require.NoError(t, err)
	_ = ciphertext

	kfrags, err := GenerateKeyFrags(nil, params, delegatingSK, receivingPK, signingSK, 2, 3, true, true)
	require.NoError(t, err)

	t.Run("VerifiesWithMatchingMetadata", func(t *testing.T) {
		metadata := []byte("context-bound-metadata")
		cf, err := Reencrypt(nil, capsule, kfrags[0], metadata, true)
		require.NoError(t, err)

		require.True(t, cf.Verify(capsule, params, signingPK, delegatingPK, receivingPK, metadata, true))
	})

	t.Run("RejectsMismatchedMetadata", func(t *testing.T) {
		cf, err := Reencrypt(nil, capsule, kfrags[0], []byte("original"), true)
		require.NoError(t, err)

		require.False(t, cf.Verify(capsule, params, signingPK, delegatingPK, receivingPK, []byte("tampered"), true))
	})

	t.Run("RejectsAbsentWhenPresentAtGeneration", func(t *testing.T) {
		cf, err := Reencrypt(nil, capsule, kfrags[0], []byte("original"), true)
		require.NoError(t, err)

		require.False(t, cf.Verify(capsule, params, signingPK, delegatingPK, receivingPK, nil, false))
	})

	t.Run("RejectsWrongCapsule", func(t *testing.T) {
		cf, err := Reencrypt(nil, capsule, kfrags[0], nil, false)
		require.NoError(t, err)

		otherCapsule, _, err := Encrypt(nil, delegatingPK, []byte("a different message"))
		require.NoError(t, err)

		require.False(t, cf.Verify(otherCapsule, params, signingPK, delegatingPK, receivingPK, nil, false))
	})
}

func TestCapsuleFragRoundTrip(t *testing.T) {
	params := NewParameters()
	delegatingSK, receivingPK, signingSK := testKeys(t)
	delegatingPK := PublicKeyFromSecretKey(delegatingSK)

	capsule, _, err := Encrypt(nil, delegatingPK, []byte("msg"))
	require.NoError(t, err)

	kfrags, err := GenerateKeyFrags(nil, params, delegatingSK, receivingPK, signingSK, 2, 3, false, false)
	require.NoError(t, err)

	cf, err := Reencrypt(nil, capsule, kfrags[0], nil, false)
	require.NoError(t, err)

	encoded := cf.Bytes()
	require.Len(t, encoded, CapsuleFragSize)

	decoded, err := CapsuleFragFromBytes(encoded)
	require.NoError(t, err)
	require.True(t, cf.Equal(decoded))
}

func TestCapsuleFragFromBytesRejectsTruncated(t *testing.T) {
	_, err := CapsuleFragFromBytes(make([]byte, CapsuleFragSize-1))
	require.ErrorIs(t, err, ErrValidation)
}
