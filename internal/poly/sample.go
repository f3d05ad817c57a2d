package poly

import (
	"encoding/binary"

	"github.com/bwesterb/go-pqc/sha3"
)

// UniformNTT samples a uniform polynomial in the NTT domain by rejection
// sampling on SHAKE128(rho || nonce).  Used for the entries of A.
func UniformNTT(rho []byte, nonce uint16) (a NTTPoly) {
	var seed [34]byte
	copy(seed[:32], rho)
	binary.LittleEndian.PutUint16(seed[32:], nonce)

	h := sha3.NewShake128()
	h.Write(seed[:])

	var buf [sha3.RateShake128]byte
	ctr := 0
	for ctr < N {
		h.Read(buf[:])
		for pos := 0; pos+3 <= len(buf) && ctr < N; pos += 3 {
			t := uint32(buf[pos]) | uint32(buf[pos+1])<<8 | uint32(buf[pos+2])<<16
			t &= 0x7fffff
			if t < Q {
				a[ctr] = int32(t)
				ctr++
			}
		}
	}
	return
}

// UniformEta samples a polynomial with coefficients in [-eta, eta] by
// rejection sampling on SHAKE256(seed || nonce).  eta is 2 or 4.
func UniformEta(seed []byte, nonce uint16, eta int) (a Poly) {
	var n [2]byte
	binary.LittleEndian.PutUint16(n[:], nonce)

	h := sha3.NewShake256()
	h.Write(seed)
	h.Write(n[:])

	var buf [sha3.RateShake256]byte
	ctr := 0
	for ctr < N {
		h.Read(buf[:])
		for pos := 0; pos < len(buf) && ctr < N; pos++ {
			if c, ok := etaCoeff(uint32(buf[pos]&0x0f), eta); ok {
				a[ctr] = c
				ctr++
			}
			if ctr == N {
				break
			}
			if c, ok := etaCoeff(uint32(buf[pos]>>4), eta); ok {
				a[ctr] = c
				ctr++
			}
		}
	}
	return
}

func etaCoeff(t uint32, eta int) (int32, bool) {
	if eta == 2 {
		if t < 15 {
			t -= (205 * t >> 10) * 5 // t mod 5
			return 2 - int32(t), true
		}
		return 0, false
	}
	if t < 9 {
		return 4 - int32(t), true
	}
	return 0, false
}

// UniformGamma1 samples the masking polynomial with coefficients in
// (-gamma1, gamma1] from SHAKE256(seed || nonce).
func UniformGamma1(seed []byte, nonce uint16, gamma1Bits int) Poly {
	var n [2]byte
	binary.LittleEndian.PutUint16(n[:], nonce)

	h := sha3.NewShake256()
	h.Write(seed)
	h.Write(n[:])

	buf := make([]byte, ZPackedBytes(gamma1Bits))
	h.Read(buf)
	return UnpackZ(buf, gamma1Bits)
}

// Challenge samples the polynomial with tau coefficients ±1 and the others
// zero from SHAKE256(seed).
func Challenge(seed []byte, tau int) (c Poly) {
	h := sha3.NewShake256()
	h.Write(seed)

	var buf [sha3.RateShake256]byte
	h.Read(buf[:])
	signs := binary.LittleEndian.Uint64(buf[:8])
	pos := 8

	for i := N - tau; i < N; i++ {
		var b int
		for {
			if pos >= len(buf) {
				h.Read(buf[:])
				pos = 0
			}
			b = int(buf[pos])
			pos++
			if b <= i {
				break
			}
		}
		c[i] = c[b]
		c[b] = 1 - 2*int32(signs&1)
		signs >>= 1
	}
	return
}
