package secp256k1

import "math/big"

// Point represents a point on the secp256k1 curve, in affine
// coordinates. All arguments and receivers are allowed to alias. The
// zero value is NOT valid and may only be used as a receiver.
type Point struct {
	x, y     big.Int
	infinity bool
	isValid  bool
}

// Identity sets v = the point at infinity, and returns v.
func (v *Point) Identity() *Point {
	v.x.SetInt64(0)
	v.y.SetInt64(0)
	v.infinity = true
	v.isValid = true
	return v
}

// Generator sets v = G, and returns v.
func (v *Point) Generator() *Point {
	v.x.Set(gX)
	v.y.Set(gY)
	v.infinity = false
	v.isValid = true
	return v
}

// NewIdentityPoint returns a new Point set to the identity.
func NewIdentityPoint() *Point {
	return new(Point).Identity()
}

// NewGeneratorPoint returns a new Point set to the canonical generator.
func NewGeneratorPoint() *Point {
	return new(Point).Generator()
}

// NewPointFrom creates a new Point from another.
func NewPointFrom(p *Point) *Point {
	assertPointsValid(p)
	return new(Point).Set(p)
}

// Set sets v = p, and returns v.
func (v *Point) Set(p *Point) *Point {
	assertPointsValid(p)
	v.x.Set(&p.x)
	v.y.Set(&p.y)
	v.infinity = p.infinity
	v.isValid = true
	return v
}

func assertPointsValid(points ...*Point) {
	for _, p := range points {
		if !p.isValid {
			panic("secp256k1: use of uninitialized Point")
		}
	}
}

// IsIdentity returns 1 iff v is the point at infinity, 0 otherwise.
func (v *Point) IsIdentity() uint64 {
	assertPointsValid(v)
	if v.infinity {
		return 1
	}
	return 0
}

// Equal returns 1 iff v == p, 0 otherwise.
func (v *Point) Equal(p *Point) uint64 {
	assertPointsValid(v, p)
	if v.infinity != p.infinity {
		return 0
	}
	if v.infinity {
		return 1
	}
	if v.x.Cmp(&p.x) == 0 && v.y.Cmp(&p.y) == 0 {
		return 1
	}
	return 0
}

// Negate sets v = -p, and returns v.
func (v *Point) Negate(p *Point) *Point {
	assertPointsValid(p)
	if p.infinity {
		return v.Identity()
	}
	v.x.Set(&p.x)
	v.y.Neg(&p.y)
	v.y.Mod(&v.y, curveP)
	v.infinity = false
	v.isValid = true
	return v
}

// ConditionalSelect sets v = a iff ctrl == 0, v = b otherwise, and
// returns v.
func (v *Point) ConditionalSelect(a, b *Point, ctrl uint64) *Point {
	assertPointsValid(a, b)
	if ctrl != 0 {
		return v.Set(b)
	}
	return v.Set(a)
}

// Add sets v = p + q, and returns v.
func (v *Point) Add(p, q *Point) *Point {
	assertPointsValid(p, q)

	if p.infinity {
		return v.Set(q)
	}
	if q.infinity {
		return v.Set(p)
	}
	if p.x.Cmp(&q.x) == 0 {
		if p.y.Cmp(&q.y) != 0 {
			// p == -q
			return v.Identity()
		}
		return v.Double(p)
	}

	// lambda = (qy - py) / (qx - px)
	num := new(big.Int).Sub(&q.y, &p.y)
	den := new(big.Int).Sub(&q.x, &p.x)
	den.ModInverse(den, curveP)
	lambda := num.Mul(num, den)
	lambda.Mod(lambda, curveP)

	x3 := new(big.Int).Mul(lambda, lambda)
	x3.Sub(x3, &p.x)
	x3.Sub(x3, &q.x)
	x3.Mod(x3, curveP)

	y3 := new(big.Int).Sub(&p.x, x3)
	y3.Mul(y3, lambda)
	y3.Sub(y3, &p.y)
	y3.Mod(y3, curveP)

	v.x.Set(x3)
	v.y.Set(y3)
	v.infinity = false
	v.isValid = true
	return v
}

// Double sets v = p + p, and returns v.
func (v *Point) Double(p *Point) *Point {
	assertPointsValid(p)

	if p.infinity || p.y.Sign() == 0 {
		return v.Identity()
	}

	// lambda = 3*px^2 / (2*py)   (curve has a = 0)
	num := new(big.Int).Mul(&p.x, &p.x)
	num.Mul(num, big.NewInt(3))
	den := new(big.Int).Lsh(&p.y, 1)
	den.ModInverse(den, curveP)
	lambda := num.Mul(num, den)
	lambda.Mod(lambda, curveP)

	x3 := new(big.Int).Mul(lambda, lambda)
	twoX := new(big.Int).Lsh(&p.x, 1)
	x3.Sub(x3, twoX)
	x3.Mod(x3, curveP)

	y3 := new(big.Int).Sub(&p.x, x3)
	y3.Mul(y3, lambda)
	y3.Sub(y3, &p.y)
	y3.Mod(y3, curveP)

	v.x.Set(x3)
	v.y.Set(y3)
	v.infinity = false
	v.isValid = true
	return v
}

// Subtract sets v = p - q, and returns v.
func (v *Point) Subtract(p, q *Point) *Point {
	assertPointsValid(p, q)
	return v.Add(p, NewIdentityPoint().Negate(q))
}

// ScalarMult sets v = s*p, and returns v.
//
// Note: this uses plain double-and-add over math/big, and is not
// constant time with respect to s; see DESIGN.md for why the
// teacher's constant-time fiat-crypto backed tables could not be
// carried forward. Callers performing secret-scalar multiplications
// in a context where timing side channels are a live threat should
// treat this as a known limitation.
func (v *Point) ScalarMult(s *Scalar, p *Point) *Point {
	assertPointsValid(p)

	acc := NewIdentityPoint()
	base := NewPointFrom(p)
	sBytes := s.Bytes()
	for _, b := range sBytes {
		for bit := 0; bit < 8; bit++ {
			acc.Double(acc)
			if b&0x80 != 0 {
				acc.Add(acc, base)
			}
			b <<= 1
		}
	}
	return v.Set(acc)
}

// ScalarBaseMult sets v = s*G, and returns v.
func (v *Point) ScalarBaseMult(s *Scalar) *Point {
	return v.ScalarMult(s, NewGeneratorPoint())
}

// DoubleScalarMultBasepointVartime sets v = u1*G + u2*p, and returns
// v. This is a verification-time (non-secret) operation and does not
// need to be constant time.
func (v *Point) DoubleScalarMultBasepointVartime(u1, u2 *Scalar, p *Point) *Point {
	a := NewIdentityPoint().ScalarBaseMult(u1)
	b := NewIdentityPoint().ScalarMult(u2, p)
	return v.Add(a, b)
}

// IsOnCurve returns true iff v satisfies the curve equation (or is the
// point at infinity).
func (v *Point) IsOnCurve() bool {
	assertPointsValid(v)
	if v.infinity {
		return true
	}
	lhs := new(big.Int).Mul(&v.y, &v.y)
	lhs.Mod(lhs, curveP)

	rhs := new(big.Int).Mul(&v.x, &v.x)
	rhs.Mul(rhs, &v.x)
	rhs.Add(rhs, curveB)
	rhs.Mod(rhs, curveP)

	return lhs.Cmp(rhs) == 0
}
