// Package secp256k1 implements the arithmetic of the secp256k1 elliptic
// curve group: a prime-order scalar field modulo the curve order `n`,
// and the group of curve points, both exposed as value types that every
// higher layer of this module (ecsig, dem, kdf, pre) builds on.
//
// All arguments and receivers are allowed to alias unless documented
// otherwise. The zero value of Scalar is the additive identity; the
// zero value of Point is NOT valid and may only be used as a method
// receiver.
package secp256k1
