package secp256k1

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScalar(t *testing.T) {
	t.Run("AddSubNegate", func(t *testing.T) {
		a, err := RandomNonzeroScalar(nil)
		require.NoError(t, err, "RandomNonzeroScalar a")
		b, err := RandomNonzeroScalar(nil)
		require.NoError(t, err, "RandomNonzeroScalar b")

		sum := NewScalar().Add(a, b)
		diff := NewScalar().Subtract(sum, b)
		require.EqualValues(t, 1, diff.Equal(a), "(a+b)-b == a")

		negA := NewScalar().Negate(a)
		zero := NewScalar().Add(a, negA)
		require.EqualValues(t, 1, zero.IsZero(), "a + -a == 0")
	})

	t.Run("MultiplyInvert", func(t *testing.T) {
		a, err := RandomNonzeroScalar(nil)
		require.NoError(t, err, "RandomNonzeroScalar")

		inv := NewScalar().Invert(a)
		one := NewScalar().Multiply(a, inv)
		require.EqualValues(t, 1, one.Equal(NewScalar().One()), "a * a^-1 == 1")
	})

	t.Run("RoundTrip", func(t *testing.T) {
		a, err := RandomScalar(nil)
		require.NoError(t, err, "RandomScalar")

		b := a.Bytes()
		require.Len(t, b, ScalarSize)

		back, err := NewScalarFromCanonicalBytes((*[ScalarSize]byte)(b))
		require.NoError(t, err, "NewScalarFromCanonicalBytes")
		require.EqualValues(t, 1, back.Equal(a))
	})

	t.Run("RejectNonCanonical", func(t *testing.T) {
		var tooBig [ScalarSize]byte
		for i := range tooBig {
			tooBig[i] = 0xff
		}
		_, err := NewScalarFromCanonicalBytes(&tooBig)
		require.ErrorIs(t, err, ErrInvalidScalar)
	})

	t.Run("IsGreaterThanHalfN", func(t *testing.T) {
		one := NewScalar().One()
		require.EqualValues(t, 0, one.IsGreaterThanHalfN())
	})
}
