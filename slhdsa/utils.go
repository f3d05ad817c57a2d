package slhdsa

import (
	"crypto/subtle"
)

// Interpret in as a big endian integer.  in must be at most 8 bytes.
func toInt(in []byte) (ret uint64) {
	for i := 0; i < len(in); i++ {
		ret = ret<<8 | uint64(in[i])
	}
	return
}

// Encodes x into out in big endian, truncating the high bits.
func toByte(x uint64, out []byte) {
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = byte(x)
		x >>= 8
	}
}

// Splits in into len(out) b-bit integers, most significant bits first.
// b must be at most 24.
func base2b(in []byte, b int, out []uint32) {
	var total uint32
	bits := 0
	mask := uint32(1)<<uint(b) - 1
	for i := range out {
		for bits < b {
			total = total<<8 | uint32(in[0])
			in = in[1:]
			bits += 8
		}
		bits -= b
		out[i] = (total >> uint(bits)) & mask
	}
}

// Returns 2^e - 1 as a mask, also for e = 64.
func lowMask(e int) uint64 {
	if e >= 64 {
		return ^uint64(0)
	}
	return uint64(1)<<uint(e) - 1
}

// Compares a and b in constant time.
func subtleEqual(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
