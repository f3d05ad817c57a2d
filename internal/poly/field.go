// Package poly implements arithmetic in Z_q[X]/(X^256+1) with
// q = 2^23 - 2^13 + 1, as used by ML-DSA.
//
// Polynomials in the standard domain have type Poly and those in the NTT
// domain have type NTTPoly, so that multiplication can only be applied to
// transformed operands.
package poly

const (
	N = 256     // degree of the polynomials
	Q = 8380417 // modulus
	D = 13      // number of bits dropped from t by Power2Round

	qInv = 58728449 // q^-1 mod 2^32
)

// Poly is a polynomial in the standard domain.
type Poly [N]int32

// NTTPoly is a polynomial in the NTT domain.
type NTTPoly [N]int32

// Elem is either domain.
type Elem interface {
	Poly | NTTPoly
}

// MontgomeryReduce returns r ≡ a 2^-32 mod q with -q < r < q, for
// -2^31 q <= a <= 2^31 q.
func MontgomeryReduce(a int64) int32 {
	t := int32(a) * qInv
	return int32((a - int64(t)*Q) >> 32)
}

// Reduce32 returns r ≡ a mod q with -6283008 <= r <= 6283008, for
// a <= 2^31 - 2^22 - 1.
func Reduce32(a int32) int32 {
	t := (a + (1 << 22)) >> 23
	return a - t*Q
}

// Caddq adds q if a is negative.
func Caddq(a int32) int32 {
	return a + ((a >> 31) & Q)
}

// Freeze returns the standard representative of a in [0, q).
func Freeze(a int32) int32 {
	return Caddq(Reduce32(a))
}
