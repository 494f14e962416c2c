package secp256k1

import "math/big"

// Curve parameters for secp256k1: y^2 = x^3 + b over F_p, a group of
// prime order n generated by (gx, gy).
var (
	curveP = mustHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F")
	curveN = mustHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141")
	curveB = big.NewInt(7)
	gX     = mustHex("79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798")
	gY     = mustHex("483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8")

	// pPlus1Over4 is used to compute modular square roots mod p, valid
	// because p ≡ 3 (mod 4) for secp256k1.
	pPlus1Over4 = new(big.Int).Rsh(new(big.Int).Add(curveP, big.NewInt(1)), 2)
)

func mustHex(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("secp256k1: invalid constant")
	}
	return n
}

// sqrtModP returns y such that y^2 == x (mod p), if one exists, and
// reports whether x is a quadratic residue mod p.
func sqrtModP(x *big.Int) (*big.Int, bool) {
	y := new(big.Int).Exp(x, pPlus1Over4, curveP)
	check := new(big.Int).Mul(y, y)
	check.Mod(check, curveP)
	return y, check.Cmp(new(big.Int).Mod(x, curveP)) == 0
}
