package secp256k1

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoint(t *testing.T) {
	t.Run("GeneratorOnCurve", func(t *testing.T) {
		g := NewGeneratorPoint()
		require.True(t, g.IsOnCurve(), "generator is on curve")
		require.EqualValues(t, 0, g.IsIdentity())
	})

	t.Run("IdentityIsAdditiveUnit", func(t *testing.T) {
		g := NewGeneratorPoint()
		id := NewIdentityPoint()
		sum := NewIdentityPoint().Add(g, id)
		require.EqualValues(t, 1, sum.Equal(g))
	})

	t.Run("DoubleEqualsAddSelf", func(t *testing.T) {
		g := NewGeneratorPoint()
		viaDouble := NewIdentityPoint().Double(g)
		viaAdd := NewIdentityPoint().Add(g, g)
		require.EqualValues(t, 1, viaDouble.Equal(viaAdd))
	})

	t.Run("ScalarMultMatchesRepeatedAdd", func(t *testing.T) {
		g := NewGeneratorPoint()
		three := NewScalar().Add(NewScalar().One(), NewScalar().Add(NewScalar().One(), NewScalar().One()))

		viaMult := NewIdentityPoint().ScalarMult(three, g)

		viaAdd := NewIdentityPoint().Add(g, g)
		viaAdd.Add(viaAdd, g)

		require.EqualValues(t, 1, viaMult.Equal(viaAdd))
	})

	t.Run("NegateAndAddIsIdentity", func(t *testing.T) {
		g := NewGeneratorPoint()
		negG := NewIdentityPoint().Negate(g)
		sum := NewIdentityPoint().Add(g, negG)
		require.EqualValues(t, 1, sum.IsIdentity())
	})

	t.Run("CompressedRoundTrip", func(t *testing.T) {
		g := NewGeneratorPoint()
		cb := g.CompressedBytes()
		require.Len(t, cb, CompressedPointSize)

		back, err := NewPointFromBytes(cb)
		require.NoError(t, err)
		require.EqualValues(t, 1, back.Equal(g))
	})

	t.Run("IdentityRoundTrip", func(t *testing.T) {
		id := NewIdentityPoint()
		cb := id.CompressedBytes()
		require.Len(t, cb, IdentityPointSize)

		back, err := NewPointFromBytes(cb)
		require.NoError(t, err)
		require.EqualValues(t, 1, back.Equal(id))
	})

	t.Run("RejectTruncated", func(t *testing.T) {
		g := NewGeneratorPoint()
		cb := g.CompressedBytes()
		_, err := NewPointFromBytes(cb[:len(cb)-1])
		require.ErrorIs(t, err, ErrInvalidPoint)
	})

	t.Run("ScalarBaseMultMatchesScalarMult", func(t *testing.T) {
		s, err := RandomScalar(nil)
		require.NoError(t, err)

		viaBase := NewIdentityPoint().ScalarBaseMult(s)
		viaGeneric := NewIdentityPoint().ScalarMult(s, NewGeneratorPoint())
		require.EqualValues(t, 1, viaBase.Equal(viaGeneric))
	})
}
