package pre

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testKeys(t *testing.T) (delegatingSK *SecretKey, receivingPK *PublicKey, signingSK *SecretKey) {
	t.Helper()

	delegatingSK, err := GenerateSecretKey(nil)
	require.NoError(t, err)

	receivingSK, err := GenerateSecretKey(nil)
	require.NoError(t, err)
	receivingPK = PublicKeyFromSecretKey(receivingSK)

	signingSK, err = GenerateSecretKey(nil)
	require.NoError(t, err)

	return delegatingSK, receivingPK, signingSK
}

func TestGenerateKeyFrags(t *testing.T) {
	params := NewParameters()
	delegatingSK, receivingPK, signingSK := testKeys(t)
	signingPK := PublicKeyFromSecretKey(signingSK)
	delegatingPK := PublicKeyFromSecretKey(delegatingSK)

	t.Run("VerifiesWithBothKeys", func(t *testing.T) {
		kfrags, err := GenerateKeyFrags(nil, params, delegatingSK, receivingPK, signingSK, 2, 3, true, true)
		require.NoError(t, err)
		require.Len(t, kfrags, 3)

		for _, kf := range kfrags {
			require.True(t, kf.Verify(signingPK, delegatingPK, receivingPK))
		}
	})

	t.Run("VerifiesWithNoOptionalKeys", func(t *testing.T) {
		kfrags, err := GenerateKeyFrags(nil, params, delegatingSK, receivingPK, signingSK, 2, 3, false, false)
		require.NoError(t, err)

		for _, kf := range kfrags {
			require.True(t, kf.Verify(signingPK, nil, nil))
		}
	})

	t.Run("RejectsWrongSigningKey", func(t *testing.T) {
		kfrags, err := GenerateKeyFrags(nil, params, delegatingSK, receivingPK, signingSK, 2, 3, true, true)
		require.NoError(t, err)

		otherSK, err := GenerateSecretKey(nil)
		require.NoError(t, err)
		otherPK := PublicKeyFromSecretKey(otherSK)

		require.False(t, kfrags[0].Verify(otherPK, delegatingPK, receivingPK))
	})

	t.Run("RejectsMissingRequiredKey", func(t *testing.T) {
		kfrags, err := GenerateKeyFrags(nil, params, delegatingSK, receivingPK, signingSK, 2, 3, true, true)
		require.NoError(t, err)

		require.False(t, kfrags[0].Verify(signingPK, nil, receivingPK))
	})

	t.Run("RejectsBadThreshold", func(t *testing.T) {
		_, err := GenerateKeyFrags(nil, params, delegatingSK, receivingPK, signingSK, 0, 3, true, true)
		require.ErrorIs(t, err, ErrInvalidThreshold)

		_, err = GenerateKeyFrags(nil, params, delegatingSK, receivingPK, signingSK, 4, 3, true, true)
		require.ErrorIs(t, err, ErrInvalidThreshold)
	})

	t.Run("DistinctFragsDistinctIDs", func(t *testing.T) {
		kfrags, err := GenerateKeyFrags(nil, params, delegatingSK, receivingPK, signingSK, 2, 5, true, true)
		require.NoError(t, err)

		seen := make(map[[32]byte]bool)
		for _, kf := range kfrags {
			require.False(t, seen[kf.ID])
			seen[kf.ID] = true
		}
	})
}

func TestKeyFragRoundTrip(t *testing.T) {
	params := NewParameters()
	delegatingSK, receivingPK, signingSK := testKeys(t)

	kfrags, err := GenerateKeyFrags(nil, params, delegatingSK, receivingPK, signingSK, 2, 3, true, true)
	require.NoError(t, err)

	encoded := kfrags[0].Bytes()
	require.Len(t, encoded, KeyFragSize)

	decoded, err := KeyFragFromBytes(encoded)
	require.NoError(t, err)
	require.True(t, kfrags[0].Equal(decoded))
}

func TestKeyFragFromBytesRejectsTruncated(t *testing.T) {
	_, err := KeyFragFromBytes(make([]byte, KeyFragSize-1))
	require.ErrorIs(t, err, ErrValidation)
}
