package sha3

import "hash"

// Rates in bytes of the FIPS 202 instances.
const (
	RateShake128 = 168
	RateShake256 = 136
	Rate224      = 144
	Rate256      = 136
	Rate384      = 104
	Rate512      = 72
)

// New224 returns a SHA3-224 hash.
func New224() *State { return newState(Rate224, dsbyteSHA3, 28) }

// New256 returns a SHA3-256 hash.
func New256() *State { return newState(Rate256, dsbyteSHA3, 32) }

// New384 returns a SHA3-384 hash.
func New384() *State { return newState(Rate384, dsbyteSHA3, 48) }

// New512 returns a SHA3-512 hash.
func New512() *State { return newState(Rate512, dsbyteSHA3, 64) }

// NewShake128 returns a SHAKE128 extendable output function.
func NewShake128() *State { return newState(RateShake128, dsbyteShake, 0) }

// NewShake256 returns a SHAKE256 extendable output function.
func NewShake256() *State { return newState(RateShake256, dsbyteShake, 0) }

func hashOneShot(rate int, dsbyte byte, out, data []byte) {
	var d State
	d.init(rate, dsbyte, len(out))
	d.AbsorbOnce(data)
	d.Squeeze(out)
}

// Sum224 returns the SHA3-224 digest of data.
func Sum224(data []byte) (ret [28]byte) {
	hashOneShot(Rate224, dsbyteSHA3, ret[:], data)
	return
}

// Sum256 returns the SHA3-256 digest of data.
func Sum256(data []byte) (ret [32]byte) {
	hashOneShot(Rate256, dsbyteSHA3, ret[:], data)
	return
}

// Sum384 returns the SHA3-384 digest of data.
func Sum384(data []byte) (ret [48]byte) {
	hashOneShot(Rate384, dsbyteSHA3, ret[:], data)
	return
}

// Sum512 returns the SHA3-512 digest of data.
func Sum512(data []byte) (ret [64]byte) {
	hashOneShot(Rate512, dsbyteSHA3, ret[:], data)
	return
}

// ShakeSum128 fills out with the SHAKE128 output on data.
func ShakeSum128(out, data []byte) {
	hashOneShot(RateShake128, dsbyteShake, out, data)
}

// ShakeSum256 fills out with the SHAKE256 output on data.
func ShakeSum256(out, data []byte) {
	hashOneShot(RateShake256, dsbyteShake, out, data)
}

var _ hash.Hash = (*State)(nil)
