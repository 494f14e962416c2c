package kdf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDerive(t *testing.T) {
	t.Run("Deterministic", func(t *testing.T) {
		secret := []byte("some shared point bytes")

		k1, err := Derive(secret)
		require.NoError(t, err)
		k2, err := Derive(secret)
		require.NoError(t, err)

		require.Equal(t, k1, k2)
	})

	t.Run("DistinctInputsDiverge", func(t *testing.T) {
		k1, err := Derive([]byte("input one"))
		require.NoError(t, err)
		k2, err := Derive([]byte("input two"))
		require.NoError(t, err)

		require.NotEqual(t, k1, k2)
	})
}
